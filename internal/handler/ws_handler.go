package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"project-hub-api/internal/events"
	"project-hub-api/internal/panel"
	"project-hub-api/internal/response"
	"project-hub-api/internal/service"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	resolveTimeout = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one websocket connection with its own panel session.
// Panel state lives per connection: two tabs of the same user navigate
// independently, exactly as two browser windows would.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	userID   uuid.UUID
	panels   *panel.Manager
	resolver service.PanelEntityResolver
	logger   *zap.Logger
}

// inboundMessage is a command from the browser
type inboundMessage struct {
	Action string `json:"action"`
	Key    string `json:"key,omitempty"`
	ID     string `json:"id,omitempty"`
	Query  string `json:"query,omitempty"`
}

// panelState is the per-key state snapshot sent after every transition
type panelState struct {
	Open    bool   `json:"open"`
	ID      string `json:"id,omitempty"`
	Missing bool   `json:"missing,omitempty"`
}

// WSHandler upgrades connections and binds them to the hub
type WSHandler struct {
	hub      *Hub
	bus      *events.Bus
	resolver service.PanelEntityResolver
	logger   *zap.Logger
}

// NewWSHandler creates a websocket handler
func NewWSHandler(hub *Hub, bus *events.Bus, resolver service.PanelEntityResolver, logger *zap.Logger) *WSHandler {
	return &WSHandler{hub: hub, bus: bus, resolver: resolver, logger: logger}
}

// ServeWS 웹소켓 연결
// @Summary 웹소켓 연결
// @Description Upgrade to a websocket carrying events and panel commands
// @Tags events
// @Router /ws [get]
// @Security BearerAuth
func (h *WSHandler) ServeWS(c *gin.Context) {
	rawUserID, exists := c.Get("user_id")
	if !exists {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "user not authenticated")
		return
	}
	userID, ok := rawUserID.(uuid.UUID)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "user not authenticated")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		hub:      h.hub,
		conn:     conn,
		send:     make(chan []byte, 256),
		userID:   userID,
		panels:   panel.NewManager(panel.DefaultKeys, h.bus, h.logger),
		resolver: h.resolver,
		logger:   h.logger,
	}
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("websocket closed unexpectedly", zap.Error(err))
			}
			return
		}

		var msg inboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.logger.Debug("ignoring malformed websocket message", zap.Error(err))
			continue
		}
		c.handleCommand(msg)
	}
}

// handleCommand applies one panel navigation command and pushes the
// resulting panel snapshot back to this connection only
func (c *Client) handleCommand(msg inboundMessage) {
	switch msg.Action {
	case "mount":
		if err := c.panels.Mount(msg.Query); err != nil {
			c.logger.Debug("panel mount failed", zap.Error(err))
			return
		}
	case "open":
		id, err := uuid.Parse(msg.ID)
		if err != nil {
			return
		}
		c.panels.Open(msg.Key, id)
	case "close":
		c.panels.Close(msg.Key)
	case "back":
		c.panels.Back()
	case "forward":
		c.panels.Forward()
	default:
		return
	}
	c.resolveOpenPanels()
	c.pushPanelState()
}

// resolveOpenPanels checks every open panel's entity and records the
// outcome at the generation the check started from. A panel whose id
// resolves to nothing becomes missing; a result superseded by a newer
// transition is discarded by ResolveLoad.
func (c *Client) resolveOpenPanels() {
	if c.resolver == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	for _, key := range panel.DefaultKeys {
		p := c.panels.Panel(key)
		if p == nil {
			continue
		}
		state, id, gen := p.Snapshot()
		if state != panel.StateOpen {
			continue
		}
		found, err := c.resolver.Exists(ctx, key, id)
		if err != nil {
			c.logger.Debug("panel entity lookup failed",
				zap.String("key", key),
				zap.String("id", id.String()),
				zap.Error(err))
			continue
		}
		p.ResolveLoad(gen, found)
	}
}

func (c *Client) pushPanelState() {
	states := make(map[string]panelState, len(panel.DefaultKeys))
	for _, key := range panel.DefaultKeys {
		p := c.panels.Panel(key)
		if p == nil {
			continue
		}
		state, id, _ := p.Snapshot()
		s := panelState{Open: state == panel.StateOpen, Missing: p.Missing()}
		if s.Open {
			s.ID = id.String()
		}
		states[key] = s
	}

	data, err := json.Marshal(outboundMessage{
		Type:    "panel",
		Payload: gin.H{"query": c.panels.CurrentQuery(), "panels": states},
	})
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
