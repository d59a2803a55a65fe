// Package relation holds the canonical, queryable form of the course
// content: the Unit -> Section -> Demo containment tree, the many-to-many
// Section/Demo and leaf/event relations, and the filter machinery built on
// top of them. Stores are built once at startup and are read-only afterward;
// every consuming view shares the same store by reference.
package relation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vanderheijden86/polarcraft/pkg/metrics"
	"github.com/vanderheijden86/polarcraft/pkg/model"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// MalformedContentError reports every relational-integrity violation found
// while building a store. It is fatal to startup: downstream counts and
// filters silently depend on the invariants it guards, so the caller should
// fail fast rather than render from a partially built index.
type MalformedContentError struct {
	Problems []string
}

func (e *MalformedContentError) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("malformed content: %s", e.Problems[0])
	}
	return fmt.Sprintf("malformed content: %d problems:\n  %s",
		len(e.Problems), strings.Join(e.Problems, "\n  "))
}

// OwnedLink is an event link paired with the section or demo id that owns
// it. Content sources that keep links in a flat table (the SQLite reader)
// produce these; BuildStore folds them into the owning leaf.
type OwnedLink struct {
	OwnerID string          `json:"owner_id"`
	Link    model.EventLink `json:"link"`
}

// Store is the canonical indexed form of the static course content.
// All lookups are total: unknown ids yield empty results, never errors.
type Store struct {
	units    map[string]model.Unit
	sections map[string]model.Section
	demos    map[string]model.Demo

	unitOrder []string // by ordinal, then id

	sectionsByDemo map[string][]string          // demo id -> sorted section ids
	linksByLeaf    map[string][]model.EventLink // leaf id -> links in authored order
	leavesByEvent  map[model.EventKey][]string  // event key -> sorted leaf ids
}

// BuildStore validates the content invariants and builds the forward and
// reverse indices. Extra flat links (from tabular sources) may be passed in
// addition to the links embedded in sections and demos; pass nil when the
// content embeds everything.
//
// Returns a *MalformedContentError listing every violation found: duplicate
// id within a kind, reference to a missing unit/demo, a link owned by no
// known leaf, or a containment cycle.
func BuildStore(units []model.Unit, sections []model.Section, demos []model.Demo, links []OwnedLink) (*Store, error) {
	defer metrics.Timer(metrics.StoreBuild)()

	var problems []string

	s := &Store{
		units:          make(map[string]model.Unit, len(units)),
		sections:       make(map[string]model.Section, len(sections)),
		demos:          make(map[string]model.Demo, len(demos)),
		sectionsByDemo: make(map[string][]string),
		linksByLeaf:    make(map[string][]model.EventLink),
		leavesByEvent:  make(map[model.EventKey][]string),
	}

	for _, u := range units {
		if err := u.Validate(); err != nil {
			problems = append(problems, err.Error())
			continue
		}
		if _, dup := s.units[u.ID]; dup {
			problems = append(problems, fmt.Sprintf("duplicate unit ID: %s", u.ID))
			continue
		}
		s.units[u.ID] = u
		s.unitOrder = append(s.unitOrder, u.ID)
	}
	sort.Slice(s.unitOrder, func(i, j int) bool {
		a, b := s.units[s.unitOrder[i]], s.units[s.unitOrder[j]]
		if a.Ordinal != b.Ordinal {
			return a.Ordinal < b.Ordinal
		}
		return a.ID < b.ID
	})

	for _, d := range demos {
		if err := d.Validate(); err != nil {
			problems = append(problems, err.Error())
			continue
		}
		if _, dup := s.demos[d.ID]; dup {
			problems = append(problems, fmt.Sprintf("duplicate demo ID: %s", d.ID))
			continue
		}
		if _, ok := s.units[d.UnitID]; !ok {
			problems = append(problems, fmt.Sprintf("demo %s references missing unit %s", d.ID, d.UnitID))
			continue
		}
		s.demos[d.ID] = d
	}

	for _, sec := range sections {
		if err := sec.Validate(); err != nil {
			problems = append(problems, err.Error())
			continue
		}
		if _, dup := s.sections[sec.ID]; dup {
			problems = append(problems, fmt.Sprintf("duplicate section ID: %s", sec.ID))
			continue
		}
		if _, ok := s.units[sec.UnitID]; !ok {
			problems = append(problems, fmt.Sprintf("section %s references missing unit %s", sec.ID, sec.UnitID))
			continue
		}
		for _, demoID := range sec.Demos {
			if _, ok := s.demos[demoID]; !ok {
				problems = append(problems, fmt.Sprintf("section %s references missing demo %s", sec.ID, demoID))
			}
		}
		s.sections[sec.ID] = sec
	}

	for _, id := range s.unitOrder {
		for _, secID := range s.units[id].Sections {
			if _, ok := s.sections[secID]; !ok {
				problems = append(problems, fmt.Sprintf("unit %s references missing section %s", id, secID))
			}
		}
	}

	if cycles := containmentCycles(s); len(cycles) > 0 {
		problems = append(problems, cycles...)
	}

	// Links embedded in sections and demos carry their owner implicitly.
	for _, sec := range s.sections {
		s.linksByLeaf[sec.ID] = append(s.linksByLeaf[sec.ID], sec.Events...)
	}
	for _, d := range s.demos {
		s.linksByLeaf[d.ID] = append(s.linksByLeaf[d.ID], d.Events...)
	}
	// Flat links must name a known leaf.
	for _, ol := range links {
		_, isSection := s.sections[ol.OwnerID]
		_, isDemo := s.demos[ol.OwnerID]
		if !isSection && !isDemo {
			problems = append(problems, fmt.Sprintf("event link %s owned by unknown leaf %s", ol.Link.Key(), ol.OwnerID))
			continue
		}
		s.linksByLeaf[ol.OwnerID] = append(s.linksByLeaf[ol.OwnerID], ol.Link)
	}

	if len(problems) > 0 {
		return nil, &MalformedContentError{Problems: problems}
	}

	// Reverse indices. Built once; O(1) lookups thereafter.
	for _, sec := range s.sections {
		for _, demoID := range sec.Demos {
			s.sectionsByDemo[demoID] = append(s.sectionsByDemo[demoID], sec.ID)
		}
	}
	for demoID := range s.sectionsByDemo {
		sort.Strings(s.sectionsByDemo[demoID])
	}
	for leafID, leafLinks := range s.linksByLeaf {
		seen := make(map[model.EventKey]bool, len(leafLinks))
		for _, link := range leafLinks {
			key := link.Key()
			if seen[key] {
				continue
			}
			seen[key] = true
			s.leavesByEvent[key] = append(s.leavesByEvent[key], leafID)
		}
	}
	for key := range s.leavesByEvent {
		sort.Strings(s.leavesByEvent[key])
	}

	return s, nil
}

// containmentCycles checks that the Unit -> Section -> Demo containment
// graph is acyclic. With well-formed content the layering makes cycles
// impossible, but hand-authored ids can collide across kinds and close a
// loop, so the check runs on the raw id namespace.
func containmentCycles(s *Store) []string {
	g := simple.NewDirectedGraph()
	nodeOf := make(map[string]int64)
	intern := func(id string) int64 {
		if n, ok := nodeOf[id]; ok {
			return n
		}
		n := g.NewNode()
		g.AddNode(n)
		nodeOf[id] = n.ID()
		return n.ID()
	}

	var problems []string
	addEdge := func(from, to string) {
		if from == to {
			problems = append(problems, fmt.Sprintf("containment cycle: %s contains itself", from))
			return
		}
		g.SetEdge(g.NewEdge(g.Node(intern(from)), g.Node(intern(to))))
	}

	for _, u := range s.units {
		for _, secID := range u.Sections {
			addEdge(u.ID, secID)
		}
	}
	for _, sec := range s.sections {
		addEdge(sec.UnitID, sec.ID)
		for _, demoID := range sec.Demos {
			addEdge(sec.ID, demoID)
		}
	}

	if _, err := topo.Sort(g); err != nil {
		problems = append(problems, fmt.Sprintf("cyclic containment: %v", err))
	}
	return problems
}

// UnitIDs returns unit ids ordered by ordinal, then id.
func (s *Store) UnitIDs() []string {
	out := make([]string, len(s.unitOrder))
	copy(out, s.unitOrder)
	return out
}

// Unit returns the unit record for the given id.
func (s *Store) Unit(id string) (model.Unit, bool) {
	u, ok := s.units[id]
	return u, ok
}

// Section returns the section record for the given id.
func (s *Store) Section(id string) (model.Section, bool) {
	sec, ok := s.sections[id]
	return sec, ok
}

// Demo returns the demo record for the given id.
func (s *Store) Demo(id string) (model.Demo, bool) {
	d, ok := s.demos[id]
	return d, ok
}

// SectionsOf returns the section ids a unit owns, in authored order. Units
// that do not carry an explicit section list fall back to the sections that
// declare the unit as owner, sorted by id.
func (s *Store) SectionsOf(unitID string) []string {
	u, ok := s.units[unitID]
	if !ok {
		return nil
	}
	if len(u.Sections) > 0 {
		out := make([]string, len(u.Sections))
		copy(out, u.Sections)
		return out
	}
	var out []string
	for id, sec := range s.sections {
		if sec.UnitID == unitID {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// DemosOf returns the demo ids a section references, in authored order.
func (s *Store) DemosOf(sectionID string) []string {
	sec, ok := s.sections[sectionID]
	if !ok {
		return nil
	}
	out := make([]string, len(sec.Demos))
	copy(out, sec.Demos)
	return out
}

// SectionsReferencing returns the sorted ids of every section that
// references the demo. A demo referenced by no section returns empty.
func (s *Store) SectionsReferencing(demoID string) []string {
	refs := s.sectionsByDemo[demoID]
	out := make([]string, len(refs))
	copy(out, refs)
	return out
}

// EventsOf returns the event links owned by a leaf (section or demo), in
// authored order. A leaf with zero links is a normal state, not an error.
func (s *Store) EventsOf(leafID string) []model.EventLink {
	links := s.linksByLeaf[leafID]
	out := make([]model.EventLink, len(links))
	copy(out, links)
	return out
}

// LeavesOf returns the sorted ids of every leaf linked to the event.
func (s *Store) LeavesOf(year int, track string) []string {
	leaves := s.leavesByEvent[model.EventKey{Year: year, Track: track}]
	out := make([]string, len(leaves))
	copy(out, leaves)
	return out
}

// HasLeaf reports whether the id names a known section or demo.
func (s *Store) HasLeaf(id string) bool {
	if _, ok := s.sections[id]; ok {
		return true
	}
	_, ok := s.demos[id]
	return ok
}

// SectionCount returns the number of sections in the store.
func (s *Store) SectionCount() int { return len(s.sections) }

// DemoCount returns the number of demos in the store.
func (s *Store) DemoCount() int { return len(s.demos) }
