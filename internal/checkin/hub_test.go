package checkin

import (
	"encoding/json"
	"testing"
)

func newTestClient(id, eventID string, hub *Hub) *Client {
	return &Client{ID: id, EventID: eventID, hub: hub, send: make(chan WSMessage, 4)}
}

func TestHubSessionCount(t *testing.T) {
	hub := NewHub(nil)
	if hub.SessionCount("ev-1") != 0 {
		t.Fatal("empty hub must report zero sessions")
	}

	a := newTestClient("a", "ev-1", hub)
	b := newTestClient("b", "ev-1", hub)
	other := newTestClient("c", "ev-2", hub)
	hub.Register(a)
	hub.Register(b)
	hub.Register(other)

	if got := hub.SessionCount("ev-1"); got != 2 {
		t.Errorf("SessionCount(ev-1) = %d, want 2", got)
	}
	if got := hub.SessionCount("ev-2"); got != 1 {
		t.Errorf("SessionCount(ev-2) = %d, want 1", got)
	}

	hub.Unregister(a)
	if got := hub.SessionCount("ev-1"); got != 1 {
		t.Errorf("after unregister SessionCount(ev-1) = %d, want 1", got)
	}
	hub.Unregister(b)
	if got := hub.SessionCount("ev-1"); got != 0 {
		t.Errorf("after last unregister SessionCount(ev-1) = %d, want 0", got)
	}
}

func TestHubBroadcastReachesEventRoomOnly(t *testing.T) {
	hub := NewHub(nil)
	a := newTestClient("a", "ev-1", hub)
	other := newTestClient("b", "ev-2", hub)
	hub.Register(a)
	hub.Register(other)

	hub.Broadcast("ev-1", "presence", map[string]int{"sessions": 1})

	select {
	case msg := <-a.send:
		if msg.Event != "presence" {
			t.Errorf("event = %q, want presence", msg.Event)
		}
		var body struct {
			Sessions int `json:"sessions"`
		}
		if err := json.Unmarshal(msg.Data, &body); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if body.Sessions != 1 {
			t.Errorf("sessions = %d, want 1", body.Sessions)
		}
	default:
		t.Fatal("room member received nothing")
	}

	select {
	case msg := <-other.send:
		t.Errorf("other room received %q", msg.Event)
	default:
	}
}
