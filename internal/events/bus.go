package events

import (
	"sync"

	"go.uber.org/zap"
)

// Handler receives events published on a topic
type Handler func(Event)

// Recorder counts published events, implemented by the metrics package
type Recorder interface {
	RecordEventPublished(topic string)
}

// Bus is a synchronous in-process event bus. Handlers run on the
// publisher's goroutine in subscription order; a handler panic is
// recovered so one subscriber cannot poison the others.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Topic][]subscription
	nextID   int
	logger   *zap.Logger
	recorder Recorder
}

type subscription struct {
	id      int
	handler Handler
}

// NewBus creates an event bus
func NewBus(logger *zap.Logger, recorder Recorder) *Bus {
	return &Bus{
		handlers: make(map[Topic][]subscription),
		logger:   logger,
		recorder: recorder,
	}
}

// Subscribe registers a handler for a topic and returns an unsubscribe
// function. Unsubscribing twice is a no-op.
func (b *Bus) Subscribe(topic Topic, handler Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[topic] = append(b.handlers[topic], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.handlers[topic]
		for i, s := range subs {
			if s.id == id {
				b.handlers[topic] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers the event to every subscriber of its topic
func (b *Bus) Publish(event Event) {
	topic := event.Topic()

	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[topic]))
	copy(subs, b.handlers[topic])
	b.mu.RUnlock()

	if b.recorder != nil {
		b.recorder.RecordEventPublished(string(topic))
	}

	for _, s := range subs {
		b.dispatch(topic, s, event)
	}
}

func (b *Bus) dispatch(topic Topic, s subscription, event Event) {
	defer func() {
		if r := recover(); r != nil && b.logger != nil {
			b.logger.Error("event handler panicked",
				zap.String("topic", string(topic)),
				zap.Any("panic", r))
		}
	}()
	s.handler(event)
}
