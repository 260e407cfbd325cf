package events

import (
	"testing"
	"time"

	"github.com/momo-deepdive/backend/internal/models"
)

func TestByID(t *testing.T) {
	if e := ByID("feb-2026-skills"); e == nil || e.Capacity != 20 {
		t.Errorf("feb-2026-skills lookup = %+v", e)
	}
	if e := ByID("unknown"); e != nil {
		t.Errorf("unknown id returned %+v", e)
	}
}

func TestRevealed(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"before any reveal", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 0},
		{"first event revealed", time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), 1},
		{"both revealed", time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Revealed(tt.now); len(got) != tt.want {
				t.Errorf("Revealed() returned %d events, want %d", len(got), tt.want)
			}
		})
	}
}

func TestActive(t *testing.T) {
	if e := Active(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)); e != nil {
		t.Errorf("active before reveal = %+v", e)
	}
	if e := Active(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)); e == nil || e.ID != "feb-2026-skills" {
		t.Errorf("active in january = %+v", e)
	}
	// Once the march event is revealed it takes over, even while the
	// february one is still upcoming.
	if e := Active(time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC)); e == nil || e.ID != "mar-2026-rag" {
		t.Errorf("active in february = %+v", e)
	}
}

func TestEventStatus(t *testing.T) {
	e := ByID("feb-2026-skills")
	tests := []struct {
		name string
		now  time.Time
		want models.EventStatus
	}{
		{"before start", time.Date(2026, 2, 2, 18, 0, 0, 0, time.UTC), models.EventUpcoming},
		{"during", time.Date(2026, 2, 2, 19, 30, 0, 0, time.UTC), models.EventLive},
		{"within post-end buffer", time.Date(2026, 2, 2, 22, 0, 0, 0, time.UTC), models.EventLive},
		{"long after", time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC), models.EventPast},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Status(tt.now); got != tt.want {
				t.Errorf("Status(%s) = %s, want %s", tt.now, got, tt.want)
			}
		})
	}
}
