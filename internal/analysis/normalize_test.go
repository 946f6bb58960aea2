package analysis

import "testing"

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"hyphenated", "ENGL-1010", "engl 1010"},
		{"spaced", "ENGL 1010", "engl 1010"},
		{"extra whitespace", "  ENGL   1010 ", "engl 1010"},
		{"no separator stays fused", "engl1010", "engl1010"},
		{"tabs collapse", "ACC\t120", "acc 120"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeCode(tt.in); got != tt.want {
				t.Errorf("NormalizeCode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		name  string
		title string
		code  string
		want  string
	}{
		{"title and code", "Prin of Financial Accounting", "ACC-120", "prin of financial accounting acc 120"},
		{"messy whitespace", "  Intro   to  CS ", "CS 101", "intro to cs cs 101"},
		{"missing code", "Some Class", "", "some class"},
		{"missing title", "", "ENGL 1010", "engl 1010"},
		{"both empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeLabel(tt.title, tt.code); got != tt.want {
				t.Errorf("NormalizeLabel(%q, %q) = %q, want %q", tt.title, tt.code, got, tt.want)
			}
		})
	}
}

// Re-normalizing already-normalized text must be a no-op.
func TestNormalizeIdempotent(t *testing.T) {
	inputs := [][2]string{
		{"Prin of Financial Accounting", "ACC-120"},
		{"Criminal Justice Ethics", "CRMJ 3250"},
		{"", "engl1010"},
	}

	for _, in := range inputs {
		once := NormalizeLabel(in[0], in[1])
		twice := NormalizeLabel(once, "")
		if once != twice {
			t.Errorf("NormalizeLabel not idempotent: %q -> %q", once, twice)
		}
		code := NormalizeCode(in[1])
		if NormalizeCode(code) != code {
			t.Errorf("NormalizeCode not idempotent: %q -> %q", code, NormalizeCode(code))
		}
	}
}
