package models

import (
	"time"
)

// Role represents user role in the platform.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleGuest Role = "guest"
)

// User represents a signed-in guest or admin. UID is the opaque identity
// id issued at first sign-in (Google subject or a generated id for
// magic-link users), never an internal serial.
type User struct {
	UID         string    `json:"uid"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	Role        Role      `json:"role"`
	Password    string    `json:"-"`
	LastSeen    time.Time `json:"last_seen"`
	CreatedAt   time.Time `json:"created_at"`
}

// Label returns the name stored on denormalized author fields: the
// display name when the profile has one, the email otherwise. Magic-link
// profiles often carry no display name.
func (u *User) Label() string {
	if u == nil {
		return ""
	}
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Email
}
