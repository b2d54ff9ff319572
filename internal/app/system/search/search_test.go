package search

import (
	"regexp"
	"testing"
)

func TestPattern(t *testing.T) {
	tests := []struct {
		name    string
		term    string
		input   string
		matches bool
	}{
		{
			name:    "exact match",
			term:    "legday",
			input:   "legday",
			matches: true,
		},
		{
			name:    "single space in target",
			term:    "legday",
			input:   "Leg Day",
			matches: true,
		},
		{
			name:    "multiple spaces in target",
			term:    "ab",
			input:   "a   b",
			matches: true,
		},
		{
			name:    "substring of longer name",
			term:    "core",
			input:   "Hardcore Circuit",
			matches: true,
		},
		{
			name:    "no match",
			term:    "yoga",
			input:   "Leg Day",
			matches: false,
		},
		{
			name:    "regex metacharacters are literal",
			term:    "a.b",
			input:   "axb",
			matches: false,
		},
		{
			name:    "whitespace in the term is ignored",
			term:    "leg day",
			input:   "legday",
			matches: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Pattern(tt.term)
			if p == "" {
				t.Fatalf("Pattern(%q) returned empty", tt.term)
			}
			re := regexp.MustCompile("(?i)" + p)
			if got := re.MatchString(tt.input); got != tt.matches {
				t.Errorf("pattern %q against %q: got %v, want %v", p, tt.input, got, tt.matches)
			}
		})
	}
}

func TestRegex_EmptyTerm(t *testing.T) {
	if _, ok := Regex("   "); ok {
		t.Error("expected ok=false for blank term")
	}
	if _, ok := Regex(""); ok {
		t.Error("expected ok=false for empty term")
	}
}

func TestRegex_Options(t *testing.T) {
	re, ok := Regex("LegDay")
	if !ok {
		t.Fatal("expected ok=true")
	}
	if re.Options != "i" {
		t.Errorf("expected case-insensitive option, got %q", re.Options)
	}
}
