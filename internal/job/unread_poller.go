package job

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UnreadCounter serves unread counts per user
type UnreadCounter interface {
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

// ConnectionRegistry exposes the users currently connected
type ConnectionRegistry interface {
	ActiveUserIDs() []uuid.UUID
	SendUnreadCount(userID uuid.UUID, count int64)
}

// PollerMetrics counts poll ticks
type PollerMetrics interface {
	IncUnreadPolls()
}

// UnreadPoller pushes unread notification counts to every connected
// user on a fixed interval, independent of whether anything changed.
// Clients render the count directly and never compute it themselves.
type UnreadPoller struct {
	counter  UnreadCounter
	registry ConnectionRegistry
	interval time.Duration
	metrics  PollerMetrics
	logger   *zap.Logger
	stop     chan struct{}
}

// NewUnreadPoller creates a poller; Start launches its loop
func NewUnreadPoller(counter UnreadCounter, registry ConnectionRegistry, interval time.Duration, metrics PollerMetrics, logger *zap.Logger) *UnreadPoller {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &UnreadPoller{
		counter:  counter,
		registry: registry,
		interval: interval,
		metrics:  metrics,
		logger:   logger,
		stop:     make(chan struct{}),
	}
}

// Start runs the polling loop until Stop is called
func (p *UnreadPoller) Start() {
	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-p.stop:
				return
			case <-ticker.C:
				p.tick()
			}
		}
	}()
}

// Stop terminates the polling loop
func (p *UnreadPoller) Stop() {
	close(p.stop)
}

func (p *UnreadPoller) tick() {
	if p.metrics != nil {
		p.metrics.IncUnreadPolls()
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.interval)
	defer cancel()

	for _, userID := range p.registry.ActiveUserIDs() {
		count, err := p.counter.GetUnreadCount(ctx, userID)
		if err != nil {
			p.logger.Warn("unread count poll failed",
				zap.String("user_id", userID.String()),
				zap.Error(err))
			continue
		}
		p.registry.SendUnreadCount(userID, count)
	}
}
