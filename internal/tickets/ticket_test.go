package tickets

import (
	"strings"
	"testing"
	"time"

	"github.com/momo-deepdive/backend/internal/checkin"
	"github.com/momo-deepdive/backend/internal/models"
)

func testEvent() *models.EventConfig {
	return &models.EventConfig{
		ID:            "feb-2026-skills",
		Title:         "Deep Dive: AI Skills",
		Description:   "Ein Abend über praktische KI-Skills.",
		StartsAt:      time.Date(2026, 2, 12, 18, 0, 0, 0, time.UTC),
		DurationHours: 3,
		Location:      "Studio Momo, Wien",
	}
}

func TestQRPayload(t *testing.T) {
	got := QRPayload(testEvent(), "user-123")

	wantLines := []string{
		"BEGIN:VEVENT",
		"SUMMARY:Deep Dive: AI Skills",
		"DTSTART:20260212T180000Z",
		"LOCATION:Studio Momo, Wien",
		"DESCRIPTION:Ref:user-123 | " + SupportContact,
		"END:VEVENT",
	}
	if got != strings.Join(wantLines, "\n") {
		t.Errorf("payload mismatch:\n%s", got)
	}
}

func TestQRPayloadRoundTripsThroughScanner(t *testing.T) {
	tests := []struct {
		name string
		uid  string
	}{
		{"google uid", "x7GpQ2mNwRhT4kLsZ9vB"},
		{"manual uid", "manual_1767225600"},
		{"uuid style", "3f1a2b44-9c1d-4e55-8a2f-0c9d7e6b5a41"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, ok := checkin.ExtractRef(QRPayload(testEvent(), tt.uid))
			if !ok {
				t.Fatal("scanner did not find a reference token")
			}
			if ref != tt.uid {
				t.Errorf("extracted %q, want %q", ref, tt.uid)
			}
		})
	}
}

func TestICS(t *testing.T) {
	got := ICS(testEvent(), "https://example.com/events/feb-2026-skills")

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"URL:https://example.com/events/feb-2026-skills",
		"DTSTART:20260212T180000Z",
		"DTEND:20260212T210000Z",
		"SUMMARY:Deep Dive: AI Skills",
		"END:VCALENDAR",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("ICS missing %q:\n%s", want, got)
		}
	}
}

func TestGoogleCalendarURL(t *testing.T) {
	got := GoogleCalendarURL(testEvent())

	if !strings.HasPrefix(got, "https://calendar.google.com/calendar/render?action=TEMPLATE") {
		t.Fatalf("unexpected prefix: %s", got)
	}
	for _, want := range []string{
		"dates=20260212T180000Z/20260212T210000Z",
		"location=Studio+Momo%2C+Wien",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("URL missing %q:\n%s", want, got)
		}
	}
}
