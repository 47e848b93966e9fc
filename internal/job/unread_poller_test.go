package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type mockCounter struct {
	counts map[uuid.UUID]int64
	err    error
}

func (m *mockCounter) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.counts[userID], nil
}

type mockRegistry struct {
	active []uuid.UUID
	sent   map[uuid.UUID]int64
}

func (m *mockRegistry) ActiveUserIDs() []uuid.UUID {
	return m.active
}

func (m *mockRegistry) SendUnreadCount(userID uuid.UUID, count int64) {
	if m.sent == nil {
		m.sent = map[uuid.UUID]int64{}
	}
	m.sent[userID] = count
}

type mockPollerMetrics struct {
	ticks int
}

func (m *mockPollerMetrics) IncUnreadPolls() { m.ticks++ }

func TestUnreadPollerTick(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	u1 := uuid.New()
	u2 := uuid.New()

	t.Run("성공: 접속 중인 사용자 전원에게 전송", func(t *testing.T) {
		counter := &mockCounter{counts: map[uuid.UUID]int64{u1: 3, u2: 0}}
		registry := &mockRegistry{active: []uuid.UUID{u1, u2}}
		metrics := &mockPollerMetrics{}

		p := NewUnreadPoller(counter, registry, time.Second, metrics, logger)
		p.tick()

		assert.Equal(t, int64(3), registry.sent[u1])
		assert.Equal(t, int64(0), registry.sent[u2])
		assert.Equal(t, 1, metrics.ticks)
	})

	t.Run("성공: 조회 실패한 사용자는 건너뜀", func(t *testing.T) {
		counter := &mockCounter{err: errors.New("db down")}
		registry := &mockRegistry{active: []uuid.UUID{u1}}

		p := NewUnreadPoller(counter, registry, time.Second, nil, logger)
		p.tick()

		assert.Empty(t, registry.sent)
	})

	t.Run("성공: 접속자 없으면 no-op", func(t *testing.T) {
		counter := &mockCounter{}
		registry := &mockRegistry{}

		p := NewUnreadPoller(counter, registry, time.Second, nil, logger)
		p.tick()

		assert.Empty(t, registry.sent)
	})
}

func TestUnreadPollerDefaults(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	p := NewUnreadPoller(&mockCounter{}, &mockRegistry{}, 0, nil, logger)
	assert.Equal(t, 30*time.Second, p.interval)
}
