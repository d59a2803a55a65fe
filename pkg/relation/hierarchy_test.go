package relation

import (
	"testing"

	"github.com/vanderheijden86/polarcraft/pkg/testutil"
)

func TestEventCountDistinctUnion(t *testing.T) {
	// u1 reaches the section's 1808 link plus the demo's 1669 link.
	store := buildFixture(t, testutil.TinyCourse())
	h := NewHierarchy(store)

	cases := []struct {
		node string
		want int
	}{
		{"u1", 2},
		{"s1", 2}, // section's own link plus its demo's
		{"d1", 1},
		{"unknown", 0},
	}
	for _, tc := range cases {
		if got := h.EventCount(tc.node); got != tc.want {
			t.Errorf("EventCount(%s) = %d, want %d", tc.node, got, tc.want)
		}
	}
}

func TestEventCountDeduplicatesAcrossLeaves(t *testing.T) {
	fx := testutil.TwoSectionCourse()
	// s1 and s2 both link (1816, optics); the unit counts it once.
	store := buildFixture(t, fx)
	h := NewHierarchy(store)

	if got := h.EventCount("u1"); got != 2 {
		t.Errorf("EventCount(u1) = %d, want 2 (1816/optics shared, 1669/polarization)", got)
	}
}

func TestLeafCount(t *testing.T) {
	store := buildFixture(t, testutil.TinyCourse())
	h := NewHierarchy(store)

	cases := []struct {
		node string
		want int
	}{
		{"u1", 1},
		{"s1", 1},
		{"d1", 0}, // demos have no children
		{"unknown", 0},
	}
	for _, tc := range cases {
		if got := h.LeafCount(tc.node); got != tc.want {
			t.Errorf("LeafCount(%s) = %d, want %d", tc.node, got, tc.want)
		}
	}
}

func TestCountsAreMemoized(t *testing.T) {
	store := buildFixture(t, testutil.TinyCourse())
	h := NewHierarchy(store)

	first := h.EventCount("u1")
	second := h.EventCount("u1")
	if first != second {
		t.Errorf("memoized count changed: %d then %d", first, second)
	}

	h.Invalidate()
	if got := h.EventCount("u1"); got != first {
		t.Errorf("count after Invalidate = %d, want %d", got, first)
	}
}

func TestEventCountConsistentWithGeneratedCourse(t *testing.T) {
	fx := testutil.NewDefault().Course(2, 3, 2)
	store := buildFixture(t, fx)
	h := NewHierarchy(store)

	// A unit's count can never be below any of its sections' counts.
	for _, unitID := range store.UnitIDs() {
		unitCount := h.EventCount(unitID)
		for _, sectionID := range store.SectionsOf(unitID) {
			if sc := h.EventCount(sectionID); sc > unitCount {
				t.Errorf("section %s counts %d events, exceeds unit %s's %d", sectionID, sc, unitID, unitCount)
			}
		}
	}
}
