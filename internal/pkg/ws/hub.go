package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub fans notification events out to every connected UI window. The desktop
// frontend may hold several connections (multiple windows, reconnects).
type Hub struct {
	clients map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	Conn *websocket.Conn
	mu   sync.Mutex // serializes writes on the connection
}

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Event types pushed to the UI.
const (
	EventNotificationCreated = "notification.created"
	EventExpiryCheckDone     = "expiry.check_done"
	EventBackupDone          = "backup.done"
)

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = struct{}{}
	log.Printf("UI connected, connections: %d", len(h.clients))
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.clients, client)
	log.Printf("UI disconnected, connections: %d", len(h.clients))
}

// Broadcast sends the message to every connected client. Write failures are
// logged and skipped; the read loop handles closing dead connections.
func (h *Hub) Broadcast(msg *Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.mu.Lock()
		err := c.Conn.WriteMessage(websocket.TextMessage, data)
		c.mu.Unlock()
		if err != nil {
			log.Printf("Broadcast write error: %v", err)
		}
	}
	return nil
}

// ConnectionCount returns the number of live connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
