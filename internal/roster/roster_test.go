package roster

import (
	"strings"
	"testing"
	"time"

	"github.com/momo-deepdive/backend/internal/models"
)

func rsvp(name, email string, typ models.AttendanceType, checkedIn bool, attendees ...models.Attendee) *models.RSVP {
	return &models.RSVP{
		UserName:  name,
		UserEmail: email,
		Type:      typ,
		Status:    models.StatusConfirmed,
		CheckedIn: checkedIn,
		Attendees: attendees,
		CreatedAt: time.Date(2026, 2, 1, 10, 30, 0, 0, time.UTC),
	}
}

func TestComputeStats(t *testing.T) {
	rows := []*models.RSVP{
		// Alice brings Bob: one registration, two in-person seats.
		rsvp("Alice", "alice@x.com", models.TypeInPerson, true,
			models.Attendee{Name: "Alice", Email: "alice@x.com"},
			models.Attendee{Name: "Bob", Email: "bob@x.com"}),
		// Legacy row without a party still seats one.
		rsvp("Carol", "carol@x.com", models.TypeInPerson, false),
		// Online rows count registrations, not heads.
		rsvp("Dave", "dave@x.com", models.TypeOnline, false,
			models.Attendee{Name: "Dave", Email: "dave@x.com"},
			models.Attendee{Name: "Erin", Email: "erin@x.com"}),
	}

	got := ComputeStats(rows)
	want := Stats{Total: 3, CheckedIn: 1, Headcount: 5, InPersonHeadcount: 3, Online: 1}
	if got != want {
		t.Errorf("stats = %+v, want %+v", got, want)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	if got := ComputeStats(nil); got != (Stats{}) {
		t.Errorf("stats = %+v, want zero", got)
	}
}

func TestFilter(t *testing.T) {
	rows := []*models.RSVP{
		rsvp("Alice Meier", "alice@example.com", models.TypeInPerson, false),
		rsvp("Bob Huber", "bob@example.com", models.TypeOnline, false),
	}
	rows[1].AdminNotes = "VIP, invited by Alice"

	tests := []struct {
		term string
		want int
	}{
		{"", 2},
		{"alice", 2}, // name match on row 0, note match on row 1
		{"HUBER", 1},
		{"bob@", 1},
		{"nobody", 0},
		{"  alice  ", 2}, // term is trimmed
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			if got := Filter(rows, tt.term); len(got) != tt.want {
				t.Errorf("Filter(%q) returned %d rows, want %d", tt.term, len(got), tt.want)
			}
		})
	}
}

func TestExportCSVFlattensParties(t *testing.T) {
	rows := []*models.RSVP{
		rsvp("Alice", "alice@x.com", models.TypeInPerson, true,
			models.Attendee{Name: "Alice", Email: "alice@x.com", WhatsApp: "+43123"},
			models.Attendee{Name: "Bob", Email: "bob@x.com", WhatsApp: "+43456"}),
		rsvp("Carol", "carol@x.com", models.TypeOnline, false),
	}

	got := ExportCSV(rows, time.UTC)
	lines := strings.Split(got, "\n")

	if lines[0] != "GroupLeader,Name,Email,WhatsApp,Role,TicketType,CheckedIn,AdminNotes,Timestamp" {
		t.Fatalf("header = %q", lines[0])
	}
	// One row per attendee plus one legacy Leader row.
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), got)
	}
	if !strings.HasPrefix(lines[1], `"Alice","Alice","alice@x.com","+43123","Leader","in-person","YES"`) {
		t.Errorf("leader row = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], `"Alice","Bob","bob@x.com","+43456","Guest","in-person","YES"`) {
		t.Errorf("guest row = %q", lines[2])
	}
	if !strings.HasPrefix(lines[3], `"Carol","Carol","carol@x.com","","Leader","online","NO"`) {
		t.Errorf("legacy row = %q", lines[3])
	}
}

func TestExportCSVEscapesQuotes(t *testing.T) {
	row := rsvp("Alice", "alice@x.com", models.TypeInPerson, false)
	row.AdminNotes = `brings a "+1" maybe`

	got := ExportCSV([]*models.RSVP{row}, time.UTC)
	if !strings.Contains(got, `"brings a ""+1"" maybe"`) {
		t.Errorf("quotes not doubled:\n%s", got)
	}
}
