package checkin

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

const (
	// PingInterval and PongWait are used for heartbeat (seconds).
	PingInterval = 30
	PongWait     = 60
)

// Hub maintains event_id -> set of operator sessions and fans scan
// results out to every open scanner console for the event.
type Hub struct {
	events map[string]map[string]*Client
	mu     sync.RWMutex
	logger *zap.Logger
}

// NewHub creates a scanner session hub.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		events: make(map[string]map[string]*Client),
		logger: logger,
	}
}

// Register adds an operator session to an event room.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	if h.events[c.EventID] == nil {
		h.events[c.EventID] = make(map[string]*Client)
	}
	h.events[c.EventID][c.ID] = c
	h.mu.Unlock()
	h.logger.Debug("scanner session opened", zap.String("session_id", c.ID), zap.String("event_id", c.EventID))
}

// Unregister removes an operator session, dropping the event room when
// the last session leaves.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if m, ok := h.events[c.EventID]; ok {
		delete(m, c.ID)
		if len(m) == 0 {
			delete(h.events, c.EventID)
		}
	}
	h.mu.Unlock()
	h.logger.Debug("scanner session closed", zap.String("session_id", c.ID), zap.String("event_id", c.EventID))
}

// Broadcast sends a message to every operator session for an event.
func (h *Hub) Broadcast(eventID, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	msg := WSMessage{Event: event, Data: data}

	h.mu.RLock()
	clients := h.events[eventID]
	h.mu.RUnlock()

	for _, c := range clients {
		select {
		case c.send <- msg:
		default:
			// buffer full, skip
		}
	}
}

// SessionCount returns the number of open scanner sessions for an event.
func (h *Hub) SessionCount(eventID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.events[eventID])
}
