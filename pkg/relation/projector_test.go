package relation

import (
	"testing"

	"github.com/vanderheijden86/polarcraft/pkg/model"
	"github.com/vanderheijden86/polarcraft/pkg/testutil"
)

// TestSingleSectionUnitRoundTrip walks the canonical single-unit shape end
// to end: counts, selection, both projections, and the ancestor badge.
func TestSingleSectionUnitRoundTrip(t *testing.T) {
	store := buildFixture(t, testutil.TinyCourse())
	h := NewHierarchy(store)
	sel := NewSelection(store.SectionScope())
	p := NewProjector(store)

	if got := h.EventCount("u1"); got != 2 {
		t.Fatalf("EventCount(u1) = %d, want 2", got)
	}

	sel.ToggleLeaf("s1")

	got := p.EventsMatchingSelection(sel)
	want := []model.EventKey{
		{Year: 1669, Track: "polarization"},
		{Year: 1808, Track: "polarization"},
	}
	testutil.AssertKeysEqual(t, got, want)

	primary := p.PrimaryEventsMatchingSelection(sel)
	testutil.AssertKeysEqual(t, primary, []model.EventKey{{Year: 1808, Track: "polarization"}})

	// A single-section unit with its one section selected is fully selected.
	if got := sel.StatusOf("u1"); got != StatusFull {
		t.Errorf("StatusOf(u1) = %v, want full", got)
	}
}

func TestEmptySelectionProjectsNothing(t *testing.T) {
	store := buildFixture(t, testutil.TinyCourse())
	sel := NewSelection(store.SectionScope())
	p := NewProjector(store)

	if got := p.EventsMatchingSelection(sel); len(got) != 0 {
		t.Errorf("empty selection projected %v", got)
	}
	if got := p.PrimaryEventsMatchingSelection(sel); len(got) != 0 {
		t.Errorf("empty selection projected primaries %v", got)
	}
}

func TestEventsSortedByYearThenTrack(t *testing.T) {
	units := []model.Unit{{ID: "u1", Ordinal: 1, Title: "A"}}
	sections := []model.Section{
		{ID: "s1", UnitID: "u1", Title: "S", Events: []model.EventLink{
			{Year: 1850, Track: "optics"},
			{Year: 1808, Track: "polarization"},
			{Year: 1850, Track: "electromagnetism"},
		}},
	}
	store, err := BuildStore(units, sections, nil, nil)
	if err != nil {
		t.Fatalf("BuildStore: %v", err)
	}
	sel := NewSelection(store.SectionScope())
	sel.ToggleLeaf("s1")

	got := NewProjector(store).EventsMatchingSelection(sel)
	want := []model.EventKey{
		{Year: 1808, Track: "polarization"},
		{Year: 1850, Track: "electromagnetism"},
		{Year: 1850, Track: "optics"},
	}
	testutil.AssertKeysEqual(t, got, want)
}

func TestSharedEventCountedOnce(t *testing.T) {
	store := buildFixture(t, testutil.TwoSectionCourse())
	sel := NewSelection(store.SectionScope())
	sel.ToggleLeaf("s1")
	sel.ToggleLeaf("s2")

	got := NewProjector(store).EventsMatchingSelection(sel)
	// (1816, optics) is linked from both sections; it must appear once.
	want := []model.EventKey{
		{Year: 1669, Track: "polarization"},
		{Year: 1816, Track: "optics"},
	}
	testutil.AssertKeysEqual(t, got, want)
}

func TestLeavesMatchingEvent(t *testing.T) {
	store := buildFixture(t, testutil.TwoSectionCourse())
	p := NewProjector(store)

	testutil.AssertStringsEqual(t, p.LeavesMatchingEvent(1816, "optics"), []string{"s1", "s2"})
	testutil.AssertStringsEqual(t, p.LeavesMatchingEvent(1669, "polarization"), []string{"s2"})

	if got := p.LeavesMatchingEvent(2000, "nothing"); len(got) != 0 {
		t.Errorf("unknown event matched %v", got)
	}
}

func TestReverseProjectionConsistentWithForward(t *testing.T) {
	fx := testutil.NewDefault().Course(2, 3, 2)
	store := buildFixture(t, fx)
	sel := NewSelection(store.SectionScope())
	p := NewProjector(store)

	// Select everything, then check each projected event maps back to at
	// least one selected leaf or one of its demos.
	for _, unitID := range store.UnitIDs() {
		sel.ToggleAncestor(unitID)
	}

	for _, key := range p.EventsMatchingSelection(sel) {
		leaves := p.LeavesMatchingEvent(key.Year, key.Track)
		if len(leaves) == 0 {
			t.Errorf("projected event %s has no linked leaves", key)
		}
	}
}
