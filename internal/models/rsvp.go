package models

import (
	"fmt"
	"time"
)

// AttendanceType distinguishes a seat in the room from stream access.
type AttendanceType string

const (
	TypeInPerson AttendanceType = "in-person"
	TypeOnline   AttendanceType = "online"
)

// Valid reports whether t is a known attendance type.
func (t AttendanceType) Valid() bool {
	return t == TypeInPerson || t == TypeOnline
}

// StatusConfirmed is the only registration status in use; the field
// exists so the archive gate can query on it.
const StatusConfirmed = "confirmed"

// Attendee is one person on a registration. The first entry is the
// registering user by convention.
type Attendee struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	WhatsApp string `json:"whatsapp"`
}

// RSVP is a guest's registration for one event. The row id doubles as
// the document key: {event_id}_{uid}, which makes one-registration-per
// (event, user) a primary-key fact rather than a transaction.
type RSVP struct {
	ID         string         `json:"id"`
	EventID    string         `json:"event_id"`
	UID        string         `json:"uid"`
	UserName   string         `json:"user_name"`
	UserEmail  string         `json:"user_email"`
	UserPhoto  string         `json:"user_photo,omitempty"`
	Type       AttendanceType `json:"type"`
	Status     string         `json:"status"`
	Attendees  []Attendee     `json:"attendees"`
	AdminNotes string         `json:"admin_notes,omitempty"`
	IsManual   bool           `json:"is_manual,omitempty"`
	CheckedIn  bool           `json:"checked_in"`
	CreatedAt  time.Time      `json:"timestamp"`
}

// RSVPDocID builds the composite registration key.
func RSVPDocID(eventID, uid string) string {
	return fmt.Sprintf("%s_%s", eventID, uid)
}

// Headcount is the number of people this registration represents.
// Legacy rows without an attendee list count as 1.
func (r *RSVP) Headcount() int {
	if len(r.Attendees) == 0 {
		return 1
	}
	return len(r.Attendees)
}
