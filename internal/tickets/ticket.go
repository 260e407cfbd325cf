package tickets

import (
	"fmt"
	"net/url"
	"time"

	"github.com/momo-deepdive/backend/internal/models"
)

// SupportContact is appended to the QR payload description after the
// scanner reference token.
const SupportContact = "Support: office@momofeichtinger.com / WA +4368181655313"

// calTime renders a timestamp in the compact UTC form calendar tools
// expect (basic ISO 8601).
func calTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// QRPayload builds the scannable calendar-style block for a ticket.
// The DESCRIPTION line carries the Ref:<uid> token the check-in
// scanner extracts; the token is terminated by the space before the
// pipe, so the uid must never contain whitespace or '|'.
func QRPayload(e *models.EventConfig, uid string) string {
	return fmt.Sprintf("BEGIN:VEVENT\nSUMMARY:%s\nDTSTART:%s\nLOCATION:%s\nDESCRIPTION:Ref:%s | %s\nEND:VEVENT",
		e.Title, calTime(e.StartsAt), e.Location, uid, SupportContact)
}

// ICS builds a downloadable calendar attachment for the event.
func ICS(e *models.EventConfig, pageURL string) string {
	return fmt.Sprintf("BEGIN:VCALENDAR\nVERSION:2.0\nBEGIN:VEVENT\nURL:%s\nDTSTART:%s\nDTEND:%s\nSUMMARY:%s\nDESCRIPTION:%s\nLOCATION:%s\nEND:VEVENT\nEND:VCALENDAR",
		pageURL, calTime(e.StartsAt), calTime(e.EndsAt()), e.Title, e.Description, e.Location)
}

// GoogleCalendarURL builds the prefilled "add to calendar" link.
func GoogleCalendarURL(e *models.EventConfig) string {
	return fmt.Sprintf("https://calendar.google.com/calendar/render?action=TEMPLATE&dates=%s/%s&details=%s&location=%s&text=%s",
		calTime(e.StartsAt), calTime(e.EndsAt()),
		url.QueryEscape(e.Description), url.QueryEscape(e.Location), url.QueryEscape(e.Title))
}
