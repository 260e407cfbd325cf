package models

import "time"

// EventStatus is the lifecycle phase of an event relative to now.
type EventStatus string

const (
	EventUpcoming EventStatus = "UPCOMING"
	EventLive     EventStatus = "LIVE"
	EventPast     EventStatus = "PAST"
)

// EventAsset is a downloadable resource attached to an event.
type EventAsset struct {
	Label string `json:"label"`
	Type  string `json:"type"` // pdf | link | code | video
	URL   string `json:"url"`
}

// VideoRefs holds optional live and replay video references.
type VideoRefs struct {
	Live   string `json:"live,omitempty"`
	Replay string `json:"replay,omitempty"`
}

// EventConfig is a compiled-in event definition. Immutable at runtime;
// only the capacity can be overridden through the events table.
type EventConfig struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	LongDescription string       `json:"long_description,omitempty"`
	Theme           string       `json:"theme"`
	StartsAt        time.Time    `json:"starts_at"`
	RevealAt        time.Time    `json:"reveal_at"`
	DurationHours   int          `json:"duration_hours"`
	Location        string       `json:"location"`
	Address         string       `json:"address"`
	Capacity        int          `json:"capacity"`
	Video           *VideoRefs   `json:"video,omitempty"`
	Assets          []EventAsset `json:"assets"`
	Takeaways       []string     `json:"takeaways,omitempty"`
}

// EndsAt returns the scheduled end time.
func (e *EventConfig) EndsAt() time.Time {
	return e.StartsAt.Add(time.Duration(e.DurationHours) * time.Hour)
}

// Status classifies the event at the given instant. An event counts as
// LIVE for a 3 hour buffer past its scheduled end so late streams keep
// working.
func (e *EventConfig) Status(now time.Time) EventStatus {
	if now.Before(e.StartsAt) {
		return EventUpcoming
	}
	if now.Before(e.EndsAt().Add(3 * time.Hour)) {
		return EventLive
	}
	return EventPast
}

// Revealed reports whether the event is publicly visible at now.
func (e *EventConfig) Revealed(now time.Time) bool {
	return !e.RevealAt.After(now)
}
