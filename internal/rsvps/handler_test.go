package rsvps

import (
	"testing"

	"github.com/momo-deepdive/backend/internal/models"
)

func TestValidateAttendees(t *testing.T) {
	full := models.Attendee{Name: "Alice", Email: "alice@x.com", WhatsApp: "+43123"}

	tests := []struct {
		name      string
		attendees []models.Attendee
		wantErr   bool
	}{
		{"single complete row", []models.Attendee{full}, false},
		{"party of two", []models.Attendee{full, {Name: "Bob", Email: "bob@x.com", WhatsApp: "+43456"}}, false},
		{"empty list", nil, true},
		{"missing name", []models.Attendee{{Email: "a@x.com", WhatsApp: "+43"}}, true},
		{"missing email", []models.Attendee{{Name: "A", WhatsApp: "+43"}}, true},
		{"missing whatsapp", []models.Attendee{{Name: "A", Email: "a@x.com"}}, true},
		{"whitespace only counts as empty", []models.Attendee{{Name: "  ", Email: "a@x.com", WhatsApp: "+43"}}, true},
		{"second row incomplete", []models.Attendee{full, {Name: "Bob"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAttendees(tt.attendees)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateAttendees() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveRequestValidate(t *testing.T) {
	full := []models.Attendee{{Name: "Alice", Email: "alice@x.com", WhatsApp: "+43123"}}

	tests := []struct {
		name    string
		req     SaveRequest
		wantErr bool
	}{
		{"in-person with details", SaveRequest{Type: models.TypeInPerson, Attendees: full}, false},
		{"online with details", SaveRequest{Type: models.TypeOnline, Attendees: full}, false},
		{"online without attendees", SaveRequest{Type: models.TypeOnline}, true},
		{"online incomplete row", SaveRequest{Type: models.TypeOnline, Attendees: []models.Attendee{{Name: "Alice"}}}, true},
		{"unknown type", SaveRequest{Type: "hybrid", Attendees: full}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHeadcount(t *testing.T) {
	legacy := &models.RSVP{}
	if legacy.Headcount() != 1 {
		t.Error("legacy registration must count one head")
	}
	party := &models.RSVP{Attendees: []models.Attendee{{Name: "A"}, {Name: "B"}, {Name: "C"}}}
	if party.Headcount() != 3 {
		t.Errorf("party headcount = %d", party.Headcount())
	}
}
