package models

import "testing"

func TestUserLabel(t *testing.T) {
	tests := []struct {
		name string
		user *User
		want string
	}{
		{"display name wins", &User{DisplayName: "Momo F.", Email: "momo@x.com"}, "Momo F."},
		{"email fallback", &User{Email: "guest@x.com"}, "guest@x.com"},
		{"nil profile", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}
