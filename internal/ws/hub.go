package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Hub owns the set of live websocket listeners and fans messages out to
// them. It makes no ordering guarantee across connections and no delivery
// guarantee at all; a failed write drops the client.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[string]*client
}

type client struct {
	id   string
	conn *websocket.Conn

	// writeMu serializes writes; gorilla allows one concurrent writer.
	writeMu sync.Mutex
}

func (c *client) writeJSON(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(v)
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[string]*client),
	}
}

// ClientCount returns the number of live connections.
func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends v to every connected client.
func (h *Hub) Broadcast(v any) {
	h.broadcastExcept("", v)
}

// SendTo sends v to a single client by id.
func (h *Hub) SendTo(id string, v any) error {
	if h == nil {
		return errors.New("ws: nil hub")
	}

	h.mu.Lock()
	c, ok := h.clients[id]
	h.mu.Unlock()
	if !ok {
		return fmt.Errorf("ws: no client %q", id)
	}

	if err := c.writeJSON(v); err != nil {
		h.drop(c)
		return fmt.Errorf("ws: send to %q: %w", id, err)
	}
	return nil
}

func (h *Hub) broadcastExcept(exceptID string, v any) {
	if h == nil {
		return
	}

	h.mu.Lock()
	targets := make([]*client, 0, len(h.clients))
	for id, c := range h.clients {
		if id == exceptID {
			continue
		}
		targets = append(targets, c)
	}
	h.mu.Unlock()

	for _, c := range targets {
		if err := c.writeJSON(v); err != nil {
			h.drop(c)
		}
	}
}

func (h *Hub) add(c *client) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
	return len(h.clients)
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	_, present := h.clients[c.id]
	delete(h.clients, c.id)
	h.mu.Unlock()

	if present {
		_ = c.conn.Close()
	}
}

type inboundMessage struct {
	Text string `json:"text"`
	Type string `json:"type,omitempty"`
}

type connectionMessage struct {
	Type        string `json:"type"`
	Message     string `json:"message"`
	ClientCount int    `json:"clientCount"`
	Timestamp   string `json:"timestamp"`
}

type echoMessage struct {
	Type            string `json:"type"`
	OriginalMessage string `json:"originalMessage"`
	ServerResponse  string `json:"serverResponse"`
	ClientCount     int    `json:"clientCount"`
	Timestamp       string `json:"timestamp"`
}

type broadcastMessage struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
}

type notificationMessage struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// HandleConnection upgrades the request and services the connection until
// the peer goes away: a welcome on connect, echo plus fan-out for inbound
// messages, and a notification to the remaining clients on disconnect.
func (h *Hub) HandleConnection(w http.ResponseWriter, r *http.Request) {
	if h == nil {
		http.Error(w, "hub not initialized", http.StatusInternalServerError)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws: upgrade: %v", err)
		return
	}

	c := &client{id: uuid.NewString(), conn: conn}
	count := h.add(c)

	_ = c.writeJSON(connectionMessage{
		Type:        "connection",
		Message:     "Connected to the evaluation server.",
		ClientCount: count,
		Timestamp:   timestamp(),
	})

	h.readLoop(c)

	h.drop(c)
	h.broadcastExcept(c.id, notificationMessage{
		Type:      "notification",
		Message:   fmt.Sprintf("A client disconnected. Current connections: %d", h.ClientCount()),
		Timestamp: timestamp(),
	})
}

func (h *Hub) readLoop(c *client) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg inboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			_ = c.writeJSON(errorMessage{
				Type:    "error",
				Message: "Error processing message",
			})
			continue
		}

		_ = c.writeJSON(echoMessage{
			Type:            "echo",
			OriginalMessage: msg.Text,
			ServerResponse:  fmt.Sprintf("Server received: %q", msg.Text),
			ClientCount:     h.ClientCount(),
			Timestamp:       timestamp(),
		})

		h.broadcastExcept(c.id, broadcastMessage{
			Type:      "broadcast",
			Message:   msg.Text,
			Source:    "broadcast",
			Timestamp: timestamp(),
		})
	}
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
