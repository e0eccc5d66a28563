package validators

import "testing"

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{"plain address", "ana@example.com", true},
		{"subdomain", "ana@mail.clinic.example.org", true},
		{"plus tag", "ana+appointments@example.com", true},
		{"surrounding spaces trimmed", "  ana@example.com  ", true},
		{"empty", "", false},
		{"spaces only", "   ", false},
		{"no at sign", "ana.example.com", false},
		{"no local part", "@example.com", false},
		{"no domain dot", "ana@localhost", false},
		{"display name form", "Ana <ana@example.com>", false},
		{"two addresses", "ana@example.com, bia@example.com", false},
		{"trailing garbage", "ana@example.com>", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidEmail(tt.email); got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}
