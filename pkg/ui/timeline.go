package ui

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/polarcraft/pkg/loader"
	"github.com/vanderheijden86/polarcraft/pkg/model"
	"github.com/vanderheijden86/polarcraft/pkg/relation"
)

// TimelinePane renders the historical events matching the navigator's
// selection. It owns a cursor over the projected keys and the primary-only
// toggle; the projector and catalog are shared read-only.
type TimelinePane struct {
	projector *relation.Projector
	catalog   loader.EventCatalog
	theme     Theme

	keys        []model.EventKey
	primaryOnly bool
	cursor      int

	width  int
	height int
}

// NewTimelinePane builds a timeline pane over the given projector.
func NewTimelinePane(projector *relation.Projector, catalog loader.EventCatalog, theme Theme) *TimelinePane {
	return &TimelinePane{
		projector: projector,
		catalog:   catalog,
		theme:     theme,
	}
}

// SetSize updates the pane dimensions.
func (p *TimelinePane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetProjector swaps in a rebuilt projector after a content reload.
func (p *TimelinePane) SetProjector(projector *relation.Projector, catalog loader.EventCatalog) {
	p.projector = projector
	p.catalog = catalog
}

// Refresh recomputes the projected event keys from the selection. Called
// after every selection change and after a reload.
func (p *TimelinePane) Refresh(sel *relation.Selection) {
	if p.primaryOnly {
		p.keys = p.projector.PrimaryEventsMatchingSelection(sel)
	} else {
		p.keys = p.projector.EventsMatchingSelection(sel)
	}
	if p.cursor >= len(p.keys) {
		p.cursor = len(p.keys) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// TogglePrimaryOnly flips the primary-only filter. The caller refreshes.
func (p *TimelinePane) TogglePrimaryOnly() {
	p.primaryOnly = !p.primaryOnly
}

// PrimaryOnly reports whether the primary-only filter is active.
func (p *TimelinePane) PrimaryOnly() bool { return p.primaryOnly }

// Keys returns the projected event keys in display order.
func (p *TimelinePane) Keys() []model.EventKey {
	out := make([]model.EventKey, len(p.keys))
	copy(out, p.keys)
	return out
}

// CursorUp moves the cursor one event up.
func (p *TimelinePane) CursorUp() {
	if p.cursor > 0 {
		p.cursor--
	}
}

// CursorDown moves the cursor one event down.
func (p *TimelinePane) CursorDown() {
	if p.cursor < len(p.keys)-1 {
		p.cursor++
	}
}

// Selected returns the event key under the cursor.
func (p *TimelinePane) Selected() (model.EventKey, bool) {
	if p.cursor < 0 || p.cursor >= len(p.keys) {
		return model.EventKey{}, false
	}
	return p.keys[p.cursor], true
}

// View renders the visible window of the projected events.
func (p *TimelinePane) View() string {
	if len(p.keys) == 0 {
		if p.primaryOnly {
			return p.theme.MutedText.Render("no primary events match the selection")
		}
		return p.theme.MutedText.Render("select course modules to filter the timeline")
	}

	height := p.height
	if height <= 0 {
		height = len(p.keys)
	}
	start := 0
	if p.cursor >= height {
		start = p.cursor - height + 1
	}
	end := start + height
	if end > len(p.keys) {
		end = len(p.keys)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(p.renderEvent(p.keys[i], i == p.cursor))
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (p *TimelinePane) renderEvent(key model.EventKey, cursor bool) string {
	year := p.theme.Renderer.NewStyle().
		Foreground(p.theme.TrackColor(key.Track)).
		Bold(true).
		Render(fmt.Sprintf("%4d", key.Year))

	width := p.width - 8
	if width < 12 {
		width = 12
	}
	title := truncate(p.catalog.Title(key), width)

	line := year + "  " + title
	if cursor {
		return p.theme.Selected.Render(line)
	}
	return p.theme.Base.Render(line)
}
