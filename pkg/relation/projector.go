package relation

import (
	"sort"

	"github.com/vanderheijden86/polarcraft/pkg/metrics"
	"github.com/vanderheijden86/polarcraft/pkg/model"
)

// Projector is the bidirectional bridge between leaf space (the navigator's
// selection) and event space (the timeline). Pure functions over the store
// plus a selection; relation sizes are tens of leaves and at most a few
// hundred events, so nothing here caches.
type Projector struct {
	store *Store
}

// NewProjector creates a projector over the given store.
func NewProjector(store *Store) *Projector {
	return &Projector{store: store}
}

// EventsMatchingSelection returns the distinct event keys linked from any
// selected leaf, sorted by year then track. An empty selection yields an
// empty result; the timeline view interprets that as "no filter applied".
func (p *Projector) EventsMatchingSelection(sel *Selection) []model.EventKey {
	return p.matchingEvents(sel, func(model.EventLink) bool { return true })
}

// PrimaryEventsMatchingSelection is EventsMatchingSelection restricted to
// links tagged primary. Used where only core connections should surface,
// like the compact badge row.
func (p *Projector) PrimaryEventsMatchingSelection(sel *Selection) []model.EventKey {
	return p.matchingEvents(sel, func(l model.EventLink) bool { return l.Relevance.IsPrimary() })
}

func (p *Projector) matchingEvents(sel *Selection, keep func(model.EventLink) bool) []model.EventKey {
	defer metrics.Timer(metrics.Projection)()

	seen := make(map[model.EventKey]bool)
	collect := func(leafID string) {
		for _, link := range p.store.EventsOf(leafID) {
			if keep(link) {
				seen[link.Key()] = true
			}
		}
	}
	// A selected section contributes its demos' links too, mirroring how
	// the hierarchy counts events reachable from a section.
	sel.Each(func(leafID string) {
		collect(leafID)
		if _, ok := p.store.Section(leafID); ok {
			for _, demoID := range p.store.DemosOf(leafID) {
				collect(demoID)
			}
		}
	})

	keys := make([]model.EventKey, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// LeavesMatchingEvent returns the sorted leaf ids linked to the event. Used
// to highlight course modules when the user picks an event card.
func (p *Projector) LeavesMatchingEvent(year int, track string) []string {
	return p.store.LeavesOf(year, track)
}
