package relation

import (
	"strings"
	"testing"

	"github.com/vanderheijden86/polarcraft/pkg/model"
	"github.com/vanderheijden86/polarcraft/pkg/testutil"
)

func buildFixture(t *testing.T, fx testutil.CourseFixture) *Store {
	t.Helper()
	store, err := BuildStore(fx.Units, fx.Sections, fx.Demos, nil)
	if err != nil {
		t.Fatalf("BuildStore(%s): %v", fx.Description, err)
	}
	return store
}

func TestBuildStoreTinyCourse(t *testing.T) {
	store := buildFixture(t, testutil.TinyCourse())

	testutil.AssertStringsEqual(t, store.UnitIDs(), []string{"u1"})
	testutil.AssertStringsEqual(t, store.SectionsOf("u1"), []string{"s1"})
	testutil.AssertStringsEqual(t, store.DemosOf("s1"), []string{"d1"})
	testutil.AssertStringsEqual(t, store.SectionsReferencing("d1"), []string{"s1"})

	if got := store.SectionCount(); got != 1 {
		t.Errorf("SectionCount = %d, want 1", got)
	}
	if got := store.DemoCount(); got != 1 {
		t.Errorf("DemoCount = %d, want 1", got)
	}
}

func TestBuildStoreGeneratedCourse(t *testing.T) {
	fx := testutil.NewDefault().Course(3, 4, 2)
	testutil.AssertAllValid(t, fx)
	testutil.AssertNoDuplicateIDs(t, fx)

	store := buildFixture(t, fx)

	if got := len(store.UnitIDs()); got != 3 {
		t.Fatalf("expected 3 units, got %d", got)
	}
	if got := store.SectionCount(); got != 12 {
		t.Errorf("SectionCount = %d, want 12", got)
	}
	if got := store.DemoCount(); got != 6 {
		t.Errorf("DemoCount = %d, want 6", got)
	}
}

func TestBuildStoreUnitOrdering(t *testing.T) {
	units := []model.Unit{
		{ID: "u-late", Ordinal: 3, Title: "Scattering"},
		{ID: "u-b", Ordinal: 1, Title: "Waves"},
		{ID: "u-a", Ordinal: 1, Title: "Light"},
	}
	store, err := BuildStore(units, nil, nil, nil)
	if err != nil {
		t.Fatalf("BuildStore: %v", err)
	}
	// Ordinal first, id breaks ties.
	testutil.AssertStringsEqual(t, store.UnitIDs(), []string{"u-a", "u-b", "u-late"})
}

func TestBuildStoreCollectsAllProblems(t *testing.T) {
	units := []model.Unit{
		{ID: "u1", Ordinal: 1, Title: "A"},
		{ID: "u1", Ordinal: 2, Title: "B"}, // duplicate
	}
	sections := []model.Section{
		{ID: "s1", UnitID: "u-missing", Title: "Orphan"},
		{ID: "s2", UnitID: "u1", Title: "Bad demo ref", Demos: []string{"d-missing"}},
	}
	demos := []model.Demo{
		{ID: "d1", UnitID: "u-gone", Title: "Orphan demo"},
	}
	links := []OwnedLink{
		{OwnerID: "nobody", Link: model.EventLink{Year: 1808, Track: "polarization"}},
	}

	_, err := BuildStore(units, sections, demos, links)
	if err == nil {
		t.Fatal("expected error for malformed content")
	}
	var mce *MalformedContentError
	ok := false
	if e, isMCE := err.(*MalformedContentError); isMCE {
		mce, ok = e, true
	}
	if !ok {
		t.Fatalf("expected *MalformedContentError, got %T: %v", err, err)
	}

	// All violations reported at once, not just the first.
	wantFragments := []string{
		"duplicate unit ID: u1",
		"missing unit u-missing",
		"missing demo d-missing",
		"missing unit u-gone",
		"unknown leaf nobody",
	}
	joined := mce.Error()
	for _, frag := range wantFragments {
		if !strings.Contains(joined, frag) {
			t.Errorf("error missing %q:\n%s", frag, joined)
		}
	}
}

func TestBuildStoreUnitReferencesMissingSection(t *testing.T) {
	units := []model.Unit{
		{ID: "u1", Ordinal: 1, Title: "A", Sections: []string{"s-gone"}},
	}
	_, err := BuildStore(units, nil, nil, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "missing section s-gone") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestBuildStoreCyclicContainment(t *testing.T) {
	// Ids that collide across kinds can close a loop in the raw namespace:
	// the unit contains a "section" named x, and x (a real section) claims
	// the unit as its own child demo.
	units := []model.Unit{
		{ID: "u1", Ordinal: 1, Title: "A", Sections: []string{"x"}},
	}
	sections := []model.Section{
		{ID: "x", UnitID: "u1", Title: "Loop", Demos: []string{"d1"}},
	}
	demos := []model.Demo{
		{ID: "d1", UnitID: "u1", Title: "D"},
	}
	// Sanity: this well-layered shape has no cycle.
	if _, err := BuildStore(units, sections, demos, nil); err != nil {
		t.Fatalf("acyclic content rejected: %v", err)
	}

	// A demo that reuses the unit's id closes the loop u1 -> x -> u1.
	sections[0].Demos = []string{"u1"}
	demos[0] = model.Demo{ID: "u1", UnitID: "u1", Title: "D"}
	_, err := BuildStore(units, sections, demos, nil)
	if err == nil {
		t.Fatal("expected cycle to be rejected")
	}
	if !strings.Contains(err.Error(), "cyclic containment") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestBuildStoreSelfContainment(t *testing.T) {
	units := []model.Unit{
		{ID: "same", Ordinal: 1, Title: "A", Sections: []string{"same"}},
	}
	sections := []model.Section{
		{ID: "same", UnitID: "same", Title: "Self"},
	}
	_, err := BuildStore(units, sections, nil, nil)
	if err == nil {
		t.Fatal("expected self-containment to be rejected")
	}
	if !strings.Contains(err.Error(), "contains itself") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLookupsAreTotal(t *testing.T) {
	store := buildFixture(t, testutil.TinyCourse())

	if got := store.SectionsOf("no-such-unit"); len(got) != 0 {
		t.Errorf("SectionsOf(unknown) = %v, want empty", got)
	}
	if got := store.DemosOf("no-such-section"); len(got) != 0 {
		t.Errorf("DemosOf(unknown) = %v, want empty", got)
	}
	if got := store.SectionsReferencing("no-such-demo"); len(got) != 0 {
		t.Errorf("SectionsReferencing(unknown) = %v, want empty", got)
	}
	if got := store.EventsOf("no-such-leaf"); len(got) != 0 {
		t.Errorf("EventsOf(unknown) = %v, want empty", got)
	}
	if got := store.LeavesOf(9999, "nope"); len(got) != 0 {
		t.Errorf("LeavesOf(unknown) = %v, want empty", got)
	}
	if store.HasLeaf("no-such-leaf") {
		t.Error("HasLeaf(unknown) = true, want false")
	}
}

func TestSectionsOfFallsBackToOwnership(t *testing.T) {
	// Units without an explicit section list derive it from the sections
	// that declare them as owner, sorted by id.
	units := []model.Unit{{ID: "u1", Ordinal: 1, Title: "A"}}
	sections := []model.Section{
		{ID: "s-b", UnitID: "u1", Title: "B"},
		{ID: "s-a", UnitID: "u1", Title: "A"},
	}
	store, err := BuildStore(units, sections, nil, nil)
	if err != nil {
		t.Fatalf("BuildStore: %v", err)
	}
	testutil.AssertStringsEqual(t, store.SectionsOf("u1"), []string{"s-a", "s-b"})
}

func TestReverseIndexBidirectionalConsistency(t *testing.T) {
	fx := testutil.NewDefault().Course(2, 3, 3)
	store := buildFixture(t, fx)

	// Forward: every link owned by a leaf appears in the reverse index.
	for _, sec := range fx.Sections {
		for _, link := range sec.Events {
			leaves := store.LeavesOf(link.Year, link.Track)
			if !containsString(leaves, sec.ID) {
				t.Errorf("event %s missing owner %s in reverse index", link.Key(), sec.ID)
			}
		}
	}
	// Reverse: every leaf the index names really owns the event.
	for _, d := range fx.Demos {
		for _, link := range d.Events {
			for _, leafID := range store.LeavesOf(link.Year, link.Track) {
				found := false
				for _, owned := range store.EventsOf(leafID) {
					if owned.Key() == link.Key() {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("reverse index names %s for %s but forward lookup disagrees", leafID, link.Key())
				}
			}
		}
	}
}

func TestFlatLinksFoldIntoLeaf(t *testing.T) {
	fx := testutil.TinyCourse()
	extra := []OwnedLink{
		{OwnerID: "d1", Link: model.EventLink{Year: 1845, Track: "electromagnetism", Relevance: model.RelevancePrimary}},
	}
	store, err := BuildStore(fx.Units, fx.Sections, fx.Demos, extra)
	if err != nil {
		t.Fatalf("BuildStore: %v", err)
	}

	events := store.EventsOf("d1")
	if len(events) != 2 {
		t.Fatalf("expected embedded + flat link on d1, got %v", events)
	}
	testutil.AssertStringsEqual(t, store.LeavesOf(1845, "electromagnetism"), []string{"d1"})
}

func TestEventsOfReturnsCopy(t *testing.T) {
	store := buildFixture(t, testutil.TinyCourse())

	events := store.EventsOf("s1")
	events[0].Year = 1

	fresh := store.EventsOf("s1")
	if fresh[0].Year != 1669 {
		t.Error("mutating the returned slice leaked into the store")
	}
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
