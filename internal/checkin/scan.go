package checkin

import (
	"context"
	"errors"

	"github.com/momo-deepdive/backend/internal/models"
	"github.com/momo-deepdive/backend/internal/rsvps"
)

// Scan outcomes. Every decoded frame resolves to exactly one of these.
const (
	OutcomeCheckedIn        = "checked_in"
	OutcomeAlreadyCheckedIn = "already_checked_in"
	OutcomeNotFound         = "not_found"
	OutcomeInvalidFormat    = "invalid_format"
)

// Result is the operator-visible verdict for one scan.
type Result struct {
	Outcome  string `json:"outcome"`
	Ref      string `json:"ref,omitempty"`
	UserName string `json:"user_name,omitempty"`
	Party    int    `json:"party,omitempty"`
}

// Store marks a registration checked in if and only if it exists and
// is not already marked. Implementations must serialize concurrent
// scanners so exactly one succeeds per ticket.
type Store interface {
	CheckInByUID(ctx context.Context, eventID, uid string) (*models.RSVP, error)
}

// Service resolves decoded QR payloads into check-in verdicts against
// the authoritative registration store.
type Service struct {
	store Store
}

// NewService creates a scan service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Scan processes one decoded payload. Only the checked_in outcome
// mutates state; every other verdict leaves the registration untouched.
func (s *Service) Scan(ctx context.Context, eventID, payload string) (Result, error) {
	ref, ok := ExtractRef(payload)
	if !ok {
		return Result{Outcome: OutcomeInvalidFormat}, nil
	}

	rsvp, err := s.store.CheckInByUID(ctx, eventID, ref)
	switch {
	case errors.Is(err, rsvps.ErrNotFound):
		return Result{Outcome: OutcomeNotFound, Ref: ref}, nil
	case errors.Is(err, rsvps.ErrAlreadyCheckedIn):
		return Result{Outcome: OutcomeAlreadyCheckedIn, Ref: ref, UserName: rsvp.UserName, Party: rsvp.Headcount()}, nil
	case err != nil:
		return Result{}, err
	}
	return Result{Outcome: OutcomeCheckedIn, Ref: ref, UserName: rsvp.UserName, Party: rsvp.Headcount()}, nil
}
