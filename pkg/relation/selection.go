package relation

// Status is the tri-state selection status of an ancestor node.
type Status int

const (
	StatusNone Status = iota
	StatusPartial
	StatusFull
)

// String returns the lowercase name used in badges and tests.
func (s Status) String() string {
	switch s {
	case StatusPartial:
		return "partial"
	case StatusFull:
		return "full"
	default:
		return "none"
	}
}

// Scope enumerates the leaves an ancestor owns. The selection engine is
// parametric over leaf kind: the course navigator selects sections under
// units, the demo navigator selects demos under sections. Both are the same
// machine with a different scope.
type Scope interface {
	Leaves(ancestorID string) []string
}

// SectionScope returns a scope whose ancestors are units and whose leaves
// are the sections they own.
func (s *Store) SectionScope() Scope {
	return scopeFunc(s.SectionsOf)
}

// DemoScope returns a scope whose ancestors are sections and whose leaves
// are the demos they reference.
func (s *Store) DemoScope() Scope {
	return scopeFunc(s.DemosOf)
}

type scopeFunc func(ancestorID string) []string

func (f scopeFunc) Leaves(ancestorID string) []string { return f(ancestorID) }

// SelectionOption configures a Selection.
type SelectionOption func(*Selection)

// WithOnChange sets a callback invoked after every mutating call that
// changed the selection. The owning view uses it to trigger a re-render;
// the selection itself has no other side effects.
func WithOnChange(fn func()) SelectionOption {
	return func(sel *Selection) {
		sel.onChange = fn
	}
}

// Selection tracks the set of currently selected leaf ids and answers
// hierarchical status queries against a Scope. It is owned by a single view
// instance and must not be mutated from two call sites concurrently.
type Selection struct {
	scope    Scope
	selected map[string]struct{}
	onChange func()
}

// NewSelection creates an empty selection over the given scope.
func NewSelection(scope Scope, opts ...SelectionOption) *Selection {
	sel := &Selection{
		scope:    scope,
		selected: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(sel)
	}
	return sel
}

// ToggleLeaf flips membership of a single leaf. Toggling an id that was
// never selected adds it; toggling it again removes it. Always succeeds.
func (sel *Selection) ToggleLeaf(id string) {
	if _, ok := sel.selected[id]; ok {
		delete(sel.selected, id)
	} else {
		sel.selected[id] = struct{}{}
	}
	sel.notify()
}

// ToggleAncestor applies the select-all-or-clear-all rule: if every leaf of
// the ancestor is selected, all are removed; otherwise every missing leaf is
// added. A partial selection therefore always moves to full, never to the
// partial complement. Ancestors with no leaves are a no-op.
func (sel *Selection) ToggleAncestor(ancestorID string) {
	leaves := sel.scope.Leaves(ancestorID)
	if len(leaves) == 0 {
		return
	}

	all := true
	for _, id := range leaves {
		if _, ok := sel.selected[id]; !ok {
			all = false
			break
		}
	}

	if all {
		for _, id := range leaves {
			delete(sel.selected, id)
		}
	} else {
		for _, id := range leaves {
			sel.selected[id] = struct{}{}
		}
	}
	sel.notify()
}

// Clear empties the selection. Idempotent.
func (sel *Selection) Clear() {
	if len(sel.selected) == 0 {
		return
	}
	sel.selected = make(map[string]struct{})
	sel.notify()
}

// StatusOf reports the tri-state status of an ancestor: none if no owned
// leaf is selected, full if every one is, partial otherwise. Recomputed from
// the live set on each call; the branching factor is a few dozen leaves at
// most, so no caching is needed.
func (sel *Selection) StatusOf(ancestorID string) Status {
	leaves := sel.scope.Leaves(ancestorID)
	if len(leaves) == 0 {
		return StatusNone
	}
	var hit int
	for _, id := range leaves {
		if _, ok := sel.selected[id]; ok {
			hit++
		}
	}
	switch hit {
	case 0:
		return StatusNone
	case len(leaves):
		return StatusFull
	default:
		return StatusPartial
	}
}

// IsSelected reports whether a single leaf is selected.
func (sel *Selection) IsSelected(id string) bool {
	_, ok := sel.selected[id]
	return ok
}

// Len returns the number of selected leaves.
func (sel *Selection) Len() int { return len(sel.selected) }

// Each calls fn for every selected leaf id, in map order. Projection code
// that needs determinism sorts its own output instead.
func (sel *Selection) Each(fn func(id string)) {
	for id := range sel.selected {
		fn(id)
	}
}

// Prune drops every selected id the predicate rejects. Used after a content
// reload so the selection never holds ids the new store doesn't know.
func (sel *Selection) Prune(valid func(id string) bool) {
	var dropped bool
	for id := range sel.selected {
		if !valid(id) {
			delete(sel.selected, id)
			dropped = true
		}
	}
	if dropped {
		sel.notify()
	}
}

func (sel *Selection) notify() {
	if sel.onChange != nil {
		sel.onChange()
	}
}
