package handler

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"project-hub-api/internal/events"
	"project-hub-api/internal/metrics"
)

// outboundMessage is the envelope written to websocket clients
type outboundMessage struct {
	Type    string      `json:"type"`
	Topic   string      `json:"topic,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}

// Hub maintains the set of active websocket clients and routes bus
// events to them. Broadcast topics go to every client; notification
// events go only to the recipient's connections.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool
	byUser  map[uuid.UUID]map[*Client]bool

	register   chan *Client
	unregister chan *Client

	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewHub creates a hub; call Run in a goroutine to start it
func NewHub(logger *zap.Logger, m *metrics.Metrics) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		byUser:     make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
		metrics:    m,
	}
}

// Run processes register and unregister requests
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			if h.byUser[client.userID] == nil {
				h.byUser[client.userID] = make(map[*Client]bool)
			}
			h.byUser[client.userID][client] = true
			h.mu.Unlock()
			if h.metrics != nil {
				h.metrics.WSConnectionsActive.Inc()
			}

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				if conns := h.byUser[client.userID]; conns != nil {
					delete(conns, client)
					if len(conns) == 0 {
						delete(h.byUser, client.userID)
					}
				}
				close(client.send)
				if h.metrics != nil {
					h.metrics.WSConnectionsActive.Dec()
				}
			}
			h.mu.Unlock()
		}
	}
}

// AttachBus subscribes the hub to the event topics it forwards
func (h *Hub) AttachBus(bus *events.Bus) {
	broadcast := func(e events.Event) {
		h.Broadcast(outboundMessage{Type: "event", Topic: string(e.Topic()), Payload: e})
	}
	bus.Subscribe(events.TopicTaskChanged, broadcast)
	bus.Subscribe(events.TopicActivityChanged, broadcast)
	bus.Subscribe(events.TopicUserChanged, broadcast)
	bus.Subscribe(events.TopicNotificationCreated, func(e events.Event) {
		n, ok := e.(events.NotificationCreated)
		if !ok {
			return
		}
		h.SendToUser(n.UserID, outboundMessage{Type: "event", Topic: string(e.Topic()), Payload: e})
	})
}

// Broadcast sends a message to every connected client
func (h *Hub) Broadcast(msg outboundMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Warn("failed to marshal broadcast message", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			// Slow consumer, drop the message rather than block the hub
		}
	}
}

// SendToUser sends a message to all of one user's connections
func (h *Hub) SendToUser(userID uuid.UUID, msg outboundMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Warn("failed to marshal user message", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.byUser[userID] {
		select {
		case client.send <- data:
		default:
		}
	}
}

// SendUnreadCount pushes an unread counter to one user's connections
func (h *Hub) SendUnreadCount(userID uuid.UUID, count int64) {
	h.SendToUser(userID, outboundMessage{
		Type:    "unread",
		Payload: map[string]int64{"count": count},
	})
}

// ActiveUserIDs returns the distinct users with at least one connection
func (h *Hub) ActiveUserIDs() []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]uuid.UUID, 0, len(h.byUser))
	for id := range h.byUser {
		out = append(out, id)
	}
	return out
}
