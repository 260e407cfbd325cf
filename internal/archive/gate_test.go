package archive

import (
	"context"
	"errors"
	"testing"
)

type stubChecker struct {
	confirmed map[string]bool
	err       error
}

func (s *stubChecker) HasConfirmed(_ context.Context, uid string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.confirmed[uid], nil
}

func TestGateAllows(t *testing.T) {
	checker := &stubChecker{confirmed: map[string]bool{"attendee": true}}
	gate := NewGate(checker)
	ctx := context.Background()

	if !gate.Allows(ctx, "attendee") {
		t.Error("confirmed attendee denied")
	}
	if gate.Allows(ctx, "stranger") {
		t.Error("user without registration granted")
	}

	// A newly confirmed registration is picked up on the next check.
	checker.confirmed["stranger"] = true
	if !gate.Allows(ctx, "stranger") {
		t.Error("newly confirmed attendee still denied")
	}
}

func TestGateFailsClosed(t *testing.T) {
	gate := NewGate(&stubChecker{
		confirmed: map[string]bool{"attendee": true},
		err:       errors.New("store unavailable"),
	})
	if gate.Allows(context.Background(), "attendee") {
		t.Error("gate failed open on lookup error")
	}
}
