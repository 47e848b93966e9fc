package events

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingRecorder struct {
	topics []string
}

func (r *countingRecorder) RecordEventPublished(topic string) {
	r.topics = append(r.topics, topic)
}

func TestBusPublish(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	t.Run("성공: 구독자에게 순서대로 전달", func(t *testing.T) {
		bus := NewBus(logger, nil)
		var order []int
		bus.Subscribe(TopicTaskChanged, func(Event) { order = append(order, 1) })
		bus.Subscribe(TopicTaskChanged, func(Event) { order = append(order, 2) })

		bus.Publish(TaskChanged{TaskID: uuid.New(), Action: "created"})
		assert.Equal(t, []int{1, 2}, order)
	})

	t.Run("성공: 다른 토픽 구독자는 받지 않음", func(t *testing.T) {
		bus := NewBus(logger, nil)
		received := 0
		bus.Subscribe(TopicUserChanged, func(Event) { received++ })

		bus.Publish(TaskChanged{TaskID: uuid.New()})
		assert.Equal(t, 0, received)
	})

	t.Run("성공: 구독 해제 후 전달 중단", func(t *testing.T) {
		bus := NewBus(logger, nil)
		received := 0
		unsubscribe := bus.Subscribe(TopicTaskChanged, func(Event) { received++ })

		bus.Publish(TaskChanged{TaskID: uuid.New()})
		unsubscribe()
		unsubscribe() // second call is a no-op
		bus.Publish(TaskChanged{TaskID: uuid.New()})

		assert.Equal(t, 1, received)
	})

	t.Run("성공: 핸들러 패닉은 다른 구독자에 전파 안 됨", func(t *testing.T) {
		bus := NewBus(logger, nil)
		survived := false
		bus.Subscribe(TopicTaskChanged, func(Event) { panic("boom") })
		bus.Subscribe(TopicTaskChanged, func(Event) { survived = true })

		require.NotPanics(t, func() {
			bus.Publish(TaskChanged{TaskID: uuid.New()})
		})
		assert.True(t, survived)
	})

	t.Run("성공: 발행 건수 기록", func(t *testing.T) {
		recorder := &countingRecorder{}
		bus := NewBus(logger, recorder)

		bus.Publish(TaskChanged{TaskID: uuid.New()})
		bus.Publish(UserChanged{UserID: uuid.New()})

		assert.Equal(t, []string{"task.changed", "user.changed"}, recorder.topics)
	})

	t.Run("성공: 이벤트 페이로드가 그대로 전달", func(t *testing.T) {
		bus := NewBus(logger, nil)
		taskID := uuid.New()
		var got TaskChanged
		bus.Subscribe(TopicTaskChanged, func(e Event) { got = e.(TaskChanged) })

		bus.Publish(TaskChanged{TaskID: taskID, Action: "updated"})
		assert.Equal(t, taskID, got.TaskID)
		assert.Equal(t, "updated", got.Action)
	})
}
