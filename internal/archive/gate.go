package archive

import "context"

// RegistrationChecker reports whether a user holds at least one
// confirmed registration.
type RegistrationChecker interface {
	HasConfirmed(ctx context.Context, uid string) (bool, error)
}

// Gate grants archive access to past attendees only.
type Gate struct {
	registrations RegistrationChecker
}

// NewGate creates an archive gate.
func NewGate(registrations RegistrationChecker) *Gate {
	return &Gate{registrations: registrations}
}

// Allows reports whether the user may read the archive. A failed
// lookup denies access; the gate never fails open.
func (g *Gate) Allows(ctx context.Context, uid string) bool {
	ok, err := g.registrations.HasConfirmed(ctx, uid)
	if err != nil {
		return false
	}
	return ok
}
