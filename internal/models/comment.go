package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is one entry in an event's gated archive discussion feed.
// Append-only from the guest's perspective.
type Comment struct {
	ID            uuid.UUID `json:"id"`
	EventID       string    `json:"event_id"`
	UID           string    `json:"uid"`
	UserName      string    `json:"user_name"`
	UserPhoto     string    `json:"user_photo,omitempty"`
	Body          string    `json:"body"`
	ResourceTitle string    `json:"resource_title,omitempty"`
	ResourceURL   string    `json:"resource_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
