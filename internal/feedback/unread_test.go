package feedback

import "testing"

func TestUnread(t *testing.T) {
	tests := []struct {
		name     string
		answered int
		seen     int
		want     int
	}{
		{"never opened widget", 3, 0, 3},
		{"all caught up", 3, 3, 0},
		{"one new reply since last open", 4, 3, 1},
		{"no replies yet", 0, 0, 0},
		{"stale marker after deletion clamps to zero", 2, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Unread(tt.answered, tt.seen); got != tt.want {
				t.Errorf("Unread(%d, %d) = %d, want %d", tt.answered, tt.seen, got, tt.want)
			}
		})
	}
}
