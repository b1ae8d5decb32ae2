package realtime

import (
	"encoding/json"
	"log"
	"sync"

	"limpflix/internal/usecase/interfaces"
)

// Hub fans realtime events out to a user's open websocket connections.
// Delivery is best-effort at-least-once: a client with a full send buffer
// misses the event and is expected to reconcile by re-fetching on reconnect.

type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
}

var _ interfaces.IEventPublisher = (*Hub)(nil)

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) Register(userID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*Client]struct{})
	}
	h.clients[userID][client] = struct{}{}
}

func (h *Hub) Unregister(userID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		return
	}
	delete(h.clients[userID], client)
	if len(h.clients[userID]) == 0 {
		delete(h.clients, userID)
	}
}

func (h *Hub) Publish(userID string, event interfaces.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("[realtime][hub] event marshal failed type=%s err=%v", event.Type, err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[userID] {
		select {
		case client.send <- payload:
		default:
			// Slow consumer; drop rather than block the publisher.
		}
	}
}
