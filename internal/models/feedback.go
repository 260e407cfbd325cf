package models

import (
	"time"

	"github.com/google/uuid"
)

// FeedbackStatus advances monotonically: new -> read -> answered.
// A reply can be edited after the item is answered.
type FeedbackStatus string

const (
	FeedbackNew      FeedbackStatus = "new"
	FeedbackRead     FeedbackStatus = "read"
	FeedbackAnswered FeedbackStatus = "answered"
)

// Feedback is one guest message to the support inbox. Each submission
// is an independent item; a guest's chronological items form their
// chat thread.
type Feedback struct {
	ID         uuid.UUID      `json:"id"`
	UID        string         `json:"uid"`
	UserName   string         `json:"user_name"`
	UserEmail  string         `json:"user_email"`
	Category   string         `json:"category"`
	Content    string         `json:"content"`
	Status     FeedbackStatus `json:"status"`
	AdminReply *string        `json:"admin_reply,omitempty"`
	ReplyAt    *time.Time     `json:"reply_at,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}
