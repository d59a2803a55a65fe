package ui

import (
	"testing"

	"github.com/vanderheijden86/polarcraft/pkg/relation"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"fits", "short", 10, "short"},
		{"exact", "exact", 5, "exact"},
		{"truncated", "a longer label", 8, "a longe…"},
		{"zero width", "anything", 0, ""},
		{"wide runes", "偏光の科学", 6, "偏光…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.in, tt.max); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 5); got != "ab   " {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("abcdef", 3); got != "abcdef" {
		t.Errorf("padRight should not shorten, got %q", got)
	}
}

func TestCheckbox(t *testing.T) {
	tests := []struct {
		status relation.Status
		want   string
	}{
		{relation.StatusNone, "[ ]"},
		{relation.StatusPartial, "[~]"},
		{relation.StatusFull, "[x]"},
	}
	for _, tt := range tests {
		if got := Checkbox(tt.status); got != tt.want {
			t.Errorf("Checkbox(%s) = %q, want %q", tt.status, got, tt.want)
		}
	}

	if LeafCheckbox(true) != "[x]" || LeafCheckbox(false) != "[ ]" {
		t.Error("LeafCheckbox glyphs wrong")
	}
}
