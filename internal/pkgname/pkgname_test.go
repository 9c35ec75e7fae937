package pkgname

import "testing"

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"yay", true},
		{"pikaur", true},
		{"gtk2+extra", true},
		{"libc++", true},
		{"python-requests", true},
		{"zfs-dkms_git", true},
		{"a.b.c", true},
		{"0ad", true},

		{"", false},
		{"bad;rm -rf", false},
		{"pkg name", false},
		{"pkg\tname", false},
		{"pkg$(id)", false},
		{"pkg`id`", false},
		{"pkg|tee", false},
		{"pkg&bg", false},
		{"pkg>out", false},
		{"../etc/passwd", false},
		{"pkg/sub", false},
		{"naïve", false},
		{"pkg\x00", false},
		{"--flag", true}, // valid alphabet; neutralized by argv separators downstream
	}

	for _, tt := range tests {
		if got := Valid(tt.name); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
