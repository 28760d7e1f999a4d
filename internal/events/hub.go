package events

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/plotwise/plotwise/pkg/logger"
)

const (
	writeTimeout    = 10 * time.Second
	clientSendDepth = 64
)

// Hub broadcasts pipeline events to connected WebSocket subscribers.
// Slow subscribers are disconnected rather than allowed to stall the
// pipeline.
type Hub struct {
	logger   *logger.Logger
	upgrader websocket.Upgrader

	clients map[*client]bool
	mu      sync.Mutex
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a new event hub
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		logger: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[*client]bool),
	}
}

// Publish broadcasts an event to all subscribers. Implements Sink.
func (h *Hub) Publish(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.WithError(err).Error("Failed to marshal event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Subscriber is not keeping up
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// HandleWS upgrades an HTTP request into an event subscription
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, clientSendDepth),
	}

	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()

	h.logger.WithField("remote", r.RemoteAddr).Info("Event subscriber connected")

	go h.writeLoop(c)
	go h.readLoop(c)
}

// writeLoop pushes queued events to one subscriber
func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()

	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.remove(c)
			return
		}
	}
}

// readLoop drains inbound frames so pings and close frames are handled
func (h *Hub) readLoop(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.remove(c)
			return
		}
	}
}

// remove drops a subscriber if still registered
func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[c] {
		delete(h.clients, c)
		close(c.send)
	}
}

// Close disconnects all subscribers
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
		c.conn.Close()
	}
}
