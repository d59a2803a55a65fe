package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/polarcraft/pkg/relation"
)

// truncateRunesHelper truncates a string to max visual width (cells), adding
// suffix if needed. Uses go-runewidth to handle wide characters correctly.
func truncateRunesHelper(s string, maxWidth int, suffix string) string {
	if maxWidth <= 0 {
		return ""
	}

	width := runewidth.StringWidth(s)
	if width <= maxWidth {
		return s
	}

	suffixWidth := runewidth.StringWidth(suffix)
	if suffixWidth > maxWidth {
		return runewidth.Truncate(suffix, maxWidth, "")
	}

	return runewidth.Truncate(s, maxWidth-suffixWidth, "") + suffix
}

// truncate truncates string s to maxWidth cells with an ellipsis.
func truncate(s string, maxWidth int) string {
	return truncateRunesHelper(s, maxWidth, "…")
}

// padRight pads string s with spaces on the right to length width
func padRight(s string, width int) string {
	runeCount := utf8.RuneCountInString(s)
	if runeCount >= width {
		return s
	}
	return s + strings.Repeat(" ", width-runeCount)
}

// Checkbox returns the tri-state glyph rendered in front of an ancestor row.
func Checkbox(status relation.Status) string {
	switch status {
	case relation.StatusFull:
		return "[x]"
	case relation.StatusPartial:
		return "[~]"
	default:
		return "[ ]"
	}
}

// LeafCheckbox returns the two-state glyph rendered in front of a leaf row.
func LeafCheckbox(selected bool) string {
	if selected {
		return "[x]"
	}
	return "[ ]"
}
