package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the color palette and the pre-computed styles the panes share.
// Styles are created once at startup instead of per-frame.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor

	// Selection states
	Full    lipgloss.AdaptiveColor
	Partial lipgloss.AdaptiveColor
	None    lipgloss.AdaptiveColor

	// Timeline tracks
	Polarization     lipgloss.AdaptiveColor
	Optics           lipgloss.AdaptiveColor
	Electromagnetism lipgloss.AdaptiveColor

	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor

	Base     lipgloss.Style
	Selected lipgloss.Style
	Header   lipgloss.Style

	MutedText     lipgloss.Style
	SecondaryText lipgloss.Style
	PrimaryBold   lipgloss.Style
	PrimaryMark   lipgloss.Style // primary-relevance badge
	HighlightRow  lipgloss.Style // reverse-highlighted course rows
}

// DefaultTheme returns the standard adaptive theme.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary:   lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"},
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"},

		Full:    lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"},
		Partial: lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"},
		None:    lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},

		Polarization:     lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"},
		Optics:           lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"},
		Electromagnetism: lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"},

		Border:    lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#44475A"},
		Muted:     lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"})

	t.Selected = r.NewStyle().
		Background(t.Highlight).
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(t.Primary).
		PaddingLeft(1).
		Bold(true)

	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true).
		Padding(0, 1)

	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.SecondaryText = r.NewStyle().Foreground(t.Secondary)
	t.PrimaryBold = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.PrimaryMark = r.NewStyle().Foreground(t.Full).Bold(true)
	t.HighlightRow = r.NewStyle().Background(t.Highlight)

	return t
}

// StatusColor maps a tri-state selection status to its badge color.
func (t Theme) StatusColor(status string) lipgloss.AdaptiveColor {
	switch status {
	case "full":
		return t.Full
	case "partial":
		return t.Partial
	default:
		return t.None
	}
}

// TrackColor maps a timeline track to its lane color.
func (t Theme) TrackColor(track string) lipgloss.AdaptiveColor {
	switch track {
	case "polarization":
		return t.Polarization
	case "optics":
		return t.Optics
	case "electromagnetism":
		return t.Electromagnetism
	default:
		return t.Subtext
	}
}

// TestTheme returns a theme suitable for use in tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
