package relation

import (
	"sync"

	"github.com/vanderheijden86/polarcraft/pkg/metrics"
	"github.com/vanderheijden86/polarcraft/pkg/model"
)

// Hierarchy is a cached aggregate view over a Store: per-node distinct event
// counts and leaf counts for the Unit -> Section -> Demo tree.
//
// Counts are pull-memoized: the first query after construction (or after
// Invalidate) computes and caches, later queries are map lookups. The store
// itself is immutable, so the memo only needs dropping when the application
// swaps in a rebuilt store.
type Hierarchy struct {
	store *Store

	mu          sync.Mutex
	eventCounts map[string]int
	leafCounts  map[string]int
}

// NewHierarchy creates an aggregate view over the given store.
func NewHierarchy(store *Store) *Hierarchy {
	return &Hierarchy{
		store:       store,
		eventCounts: make(map[string]int),
		leafCounts:  make(map[string]int),
	}
}

// Invalidate drops the memoized counts. Call after replacing the underlying
// content (live reload rebuilds the store and the hierarchy with it).
func (h *Hierarchy) Invalidate() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.eventCounts = make(map[string]int)
	h.leafCounts = make(map[string]int)
}

// EventCount returns the number of distinct events reachable from the node:
// for a demo its own links, for a section its own links plus its demos', for
// a unit everything reachable through its sections. The same event reachable
// through two demos counts once. Unknown ids count zero.
func (h *Hierarchy) EventCount(nodeID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n, ok := h.eventCounts[nodeID]; ok {
		return n
	}
	defer metrics.Timer(metrics.HierarchyCount)()
	n := len(h.reachableEvents(nodeID))
	h.eventCounts[nodeID] = n
	return n
}

// LeafCount returns the number of sections a unit contains, or the number of
// demos a section references. Demos and unknown ids count zero.
func (h *Hierarchy) LeafCount(nodeID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n, ok := h.leafCounts[nodeID]; ok {
		return n
	}
	var n int
	if _, ok := h.store.Unit(nodeID); ok {
		n = len(h.store.SectionsOf(nodeID))
	} else if _, ok := h.store.Section(nodeID); ok {
		n = len(h.store.DemosOf(nodeID))
	}
	h.leafCounts[nodeID] = n
	return n
}

// reachableEvents collects the distinct event keys reachable from a node.
// Caller holds h.mu.
func (h *Hierarchy) reachableEvents(nodeID string) map[model.EventKey]bool {
	events := make(map[model.EventKey]bool)

	addLeaf := func(leafID string) {
		for _, link := range h.store.EventsOf(leafID) {
			events[link.Key()] = true
		}
	}
	addSection := func(sectionID string) {
		addLeaf(sectionID)
		for _, demoID := range h.store.DemosOf(sectionID) {
			addLeaf(demoID)
		}
	}

	switch {
	case h.hasUnit(nodeID):
		for _, sectionID := range h.store.SectionsOf(nodeID) {
			addSection(sectionID)
		}
	case h.hasSection(nodeID):
		addSection(nodeID)
	default:
		addLeaf(nodeID) // demo, or unknown (yields zero)
	}
	return events
}

func (h *Hierarchy) hasUnit(id string) bool {
	_, ok := h.store.Unit(id)
	return ok
}

func (h *Hierarchy) hasSection(id string) bool {
	_, ok := h.store.Section(id)
	return ok
}
