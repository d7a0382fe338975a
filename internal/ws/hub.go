package ws

import (
	"encoding/json"
	"sync"

	"mines_backend/internal/logger"
)

// Hub fans room lifecycle events out to websocket subscribers. It implements
// the services' RoomNotifier interface; rooms that nobody watches cost
// nothing.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[*Client]bool // roomID -> clients
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[*Client]bool),
	}
}

// Subscribe attaches a client to a room's feed.
func (h *Hub) Subscribe(roomID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.subscribers[roomID]
	if !ok {
		clients = make(map[*Client]bool)
		h.subscribers[roomID] = clients
	}
	clients[c] = true
}

// Unsubscribe detaches a client, dropping the room entry once empty.
func (h *Hub) Unsubscribe(roomID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.subscribers[roomID]
	if !ok {
		return
	}
	delete(clients, c)
	if len(clients) == 0 {
		delete(h.subscribers, roomID)
	}
}

// NotifyRoom broadcasts an event to every subscriber of the room. Slow
// clients get skipped rather than block the caller.
func (h *Hub) NotifyRoom(roomID, event string, payload any) {
	msg, err := json.Marshal(Event{Type: event, RoomID: roomID, Payload: payload})
	if err != nil {
		logger.Error("failed to marshal room event", "event", event, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.subscribers[roomID] {
		select {
		case c.Send <- msg:
		default:
			logger.Warn("dropping room event for slow subscriber", "room_id", roomID, "event", event)
		}
	}
}

// SubscribersCount reports how many clients watch the room.
func (h *Hub) SubscribersCount(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[roomID])
}
