package roster

import (
	"strings"
	"time"

	"github.com/momo-deepdive/backend/internal/models"
)

// Stats are the roster console counters for one event.
//
// Online is a registration count while the headcounts sum party sizes;
// the asymmetry is deliberate and matches what the operators expect to
// see on the dashboard.
type Stats struct {
	Total             int `json:"total"`
	CheckedIn         int `json:"checked_in"`
	Headcount         int `json:"headcount"`
	InPersonHeadcount int `json:"in_person_headcount"`
	Online            int `json:"online"`
}

// ComputeStats aggregates a roster snapshot.
func ComputeStats(rows []*models.RSVP) Stats {
	var s Stats
	for _, r := range rows {
		s.Total++
		if r.CheckedIn {
			s.CheckedIn++
		}
		s.Headcount += r.Headcount()
		switch r.Type {
		case models.TypeInPerson:
			s.InPersonHeadcount += r.Headcount()
		case models.TypeOnline:
			s.Online++
		}
	}
	return s
}

// Filter keeps registrations whose name, email or admin note contains
// the term, case-insensitively. An empty term keeps everything.
func Filter(rows []*models.RSVP, term string) []*models.RSVP {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return rows
	}
	out := make([]*models.RSVP, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.UserName), term) ||
			strings.Contains(strings.ToLower(r.UserEmail), term) ||
			strings.Contains(strings.ToLower(r.AdminNotes), term) {
			out = append(out, r)
		}
	}
	return out
}

// csvHeaders is the export column order. Consumers parse by position,
// so it never changes.
var csvHeaders = []string{"GroupLeader", "Name", "Email", "WhatsApp", "Role", "TicketType", "CheckedIn", "AdminNotes", "Timestamp"}

func csvQuote(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}

// ExportCSV flattens registrations into one row per attendee. The
// first attendee of a party is the Leader; registrations without a
// party produce a single Leader row from the top-level name and email.
// Every value is quote-wrapped with internal quotes doubled.
func ExportCSV(rows []*models.RSVP, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	var b strings.Builder
	b.WriteString(strings.Join(csvHeaders, ","))

	writeRow := func(fields ...string) {
		b.WriteByte('\n')
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(csvQuote(f))
		}
	}

	for _, r := range rows {
		ts := r.CreatedAt.In(loc).Format("02.01.2006, 15:04:05")
		if len(r.Attendees) > 0 {
			for i, a := range r.Attendees {
				role := "Guest"
				if i == 0 {
					role = "Leader"
				}
				writeRow(r.UserName, a.Name, a.Email, a.WhatsApp, role, string(r.Type), yesNo(r.CheckedIn), r.AdminNotes, ts)
			}
		} else {
			writeRow(r.UserName, r.UserName, r.UserEmail, "", "Leader", string(r.Type), yesNo(r.CheckedIn), r.AdminNotes, ts)
		}
	}
	return b.String()
}
