package checkin

import (
	"context"
	"testing"

	"github.com/momo-deepdive/backend/internal/models"
	"github.com/momo-deepdive/backend/internal/rsvps"
)

func TestExtractRef(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
		ok      bool
	}{
		{
			name:    "full ticket payload",
			payload: "BEGIN:VEVENT\nSUMMARY:Deep Dive\nDTSTART:20260212T180000Z\nLOCATION:Wien\nDESCRIPTION:Ref:abc123 | Support: office@example.com\nEND:VEVENT",
			want:    "abc123",
			ok:      true,
		},
		{
			name:    "ref terminated by pipe without space",
			payload: "DESCRIPTION:Ref:abc123|more",
			want:    "abc123",
			ok:      true,
		},
		{
			name:    "ref at end of string",
			payload: "DESCRIPTION:Ref:manual_1767225600",
			want:    "manual_1767225600",
			ok:      true,
		},
		{
			name:    "no marker",
			payload: "BEGIN:VEVENT\nSUMMARY:Some other QR code\nEND:VEVENT",
			ok:      false,
		},
		{
			name:    "random url",
			payload: "https://example.com/menu",
			ok:      false,
		},
		{
			name:    "empty string",
			payload: "",
			ok:      false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractRef(tt.payload)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("ref = %q, want %q", got, tt.want)
			}
		})
	}
}

// fakeStore mimics the conditional check-in semantics of the SQL store.
type fakeStore struct {
	rows map[string]*models.RSVP // uid -> registration
}

func (f *fakeStore) CheckInByUID(_ context.Context, _, uid string) (*models.RSVP, error) {
	r, ok := f.rows[uid]
	if !ok {
		return nil, rsvps.ErrNotFound
	}
	if r.CheckedIn {
		return r, rsvps.ErrAlreadyCheckedIn
	}
	r.CheckedIn = true
	return r, nil
}

func payloadFor(uid string) string {
	return "BEGIN:VEVENT\nDESCRIPTION:Ref:" + uid + " | Support\nEND:VEVENT"
}

func TestScanOutcomes(t *testing.T) {
	store := &fakeStore{rows: map[string]*models.RSVP{
		"alice-uid": {UID: "alice-uid", UserName: "Alice", Attendees: []models.Attendee{
			{Name: "Alice"}, {Name: "Bob"},
		}},
	}}
	svc := NewService(store)
	ctx := context.Background()

	// First scan succeeds and reports the party size.
	res, err := svc.Scan(ctx, "feb-2026-skills", payloadFor("alice-uid"))
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != OutcomeCheckedIn || res.UserName != "Alice" || res.Party != 2 {
		t.Errorf("first scan = %+v", res)
	}
	if !store.rows["alice-uid"].CheckedIn {
		t.Error("registration not marked checked in")
	}

	// Re-scanning the same ticket is a no-op verdict, not an error.
	res, err = svc.Scan(ctx, "feb-2026-skills", payloadFor("alice-uid"))
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != OutcomeAlreadyCheckedIn || res.UserName != "Alice" {
		t.Errorf("second scan = %+v", res)
	}

	// Unknown registrant reports the raw ref back.
	res, err = svc.Scan(ctx, "feb-2026-skills", payloadFor("stranger"))
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != OutcomeNotFound || res.Ref != "stranger" {
		t.Errorf("unknown scan = %+v", res)
	}

	// Garbage never mutates anything.
	res, err = svc.Scan(ctx, "feb-2026-skills", "https://example.com/not-a-ticket")
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != OutcomeInvalidFormat {
		t.Errorf("garbage scan = %+v", res)
	}
}

func TestScanLegacyRegistrationCountsOne(t *testing.T) {
	store := &fakeStore{rows: map[string]*models.RSVP{
		"legacy-uid": {UID: "legacy-uid", UserName: "Carol"},
	}}
	res, err := NewService(store).Scan(context.Background(), "feb-2026-skills", payloadFor("legacy-uid"))
	if err != nil {
		t.Fatal(err)
	}
	if res.Party != 1 {
		t.Errorf("party = %d, want 1", res.Party)
	}
}
