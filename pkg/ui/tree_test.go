package ui

import (
	"strings"
	"testing"

	"github.com/vanderheijden86/polarcraft/pkg/relation"
	"github.com/vanderheijden86/polarcraft/pkg/testutil"
)

func buildTree(t *testing.T, fx testutil.CourseFixture) *CourseTree {
	t.Helper()
	store, err := relation.BuildStore(fx.Units, fx.Sections, fx.Demos, nil)
	if err != nil {
		t.Fatalf("BuildStore: %v", err)
	}
	return NewCourseTree(store, relation.NewHierarchy(store), TestTheme())
}

func TestTreeRows(t *testing.T) {
	tree := buildTree(t, testutil.TwoSectionCourse())

	// One unit row plus two section rows.
	if tree.RowCount() != 3 {
		t.Fatalf("RowCount = %d, want 3", tree.RowCount())
	}
	row, ok := tree.CursorRow()
	if !ok || row.Kind != rowUnit || row.ID != "u1" {
		t.Errorf("cursor row = %+v", row)
	}
}

func TestTreeCursorClamps(t *testing.T) {
	tree := buildTree(t, testutil.TwoSectionCourse())

	tree.CursorUp() // already at top
	if row, _ := tree.CursorRow(); row.ID != "u1" {
		t.Errorf("cursor moved above top: %+v", row)
	}

	for i := 0; i < 10; i++ {
		tree.CursorDown()
	}
	if row, _ := tree.CursorRow(); row.ID != "s2" {
		t.Errorf("cursor should stop at last row, got %+v", row)
	}
}

func TestTreeToggleSection(t *testing.T) {
	tree := buildTree(t, testutil.TwoSectionCourse())

	tree.CursorDown() // s1
	tree.Toggle()

	if !tree.Selection().IsSelected("s1") {
		t.Error("s1 should be selected after toggle")
	}
	if got := tree.Selection().StatusOf("u1"); got != relation.StatusPartial {
		t.Errorf("unit status = %s, want partial", got)
	}

	tree.Toggle()
	if tree.Selection().Len() != 0 {
		t.Error("second toggle should deselect")
	}
}

func TestTreeToggleUnit(t *testing.T) {
	tree := buildTree(t, testutil.TwoSectionCourse())

	tree.Toggle() // unit row: selects both sections
	if got := tree.Selection().StatusOf("u1"); got != relation.StatusFull {
		t.Errorf("unit status = %s, want full", got)
	}

	tree.Toggle()
	if tree.Selection().Len() != 0 {
		t.Error("toggling a full unit should clear it")
	}
}

func TestTreeFold(t *testing.T) {
	tree := buildTree(t, testutil.TwoSectionCourse())

	tree.ToggleFold()
	if tree.RowCount() != 1 {
		t.Fatalf("RowCount after fold = %d, want 1", tree.RowCount())
	}

	// Folding from a section row folds the owning unit.
	tree.ToggleFold()
	if tree.RowCount() != 3 {
		t.Fatalf("RowCount after unfold = %d, want 3", tree.RowCount())
	}
	tree.CursorDown()
	tree.ToggleFold()
	if tree.RowCount() != 1 {
		t.Errorf("fold from section row should fold the unit")
	}
	if row, _ := tree.CursorRow(); row.ID != "u1" {
		t.Errorf("cursor should land on the folded unit, got %+v", row)
	}
}

func TestTreeSetStorePreservesSelection(t *testing.T) {
	tree := buildTree(t, testutil.TwoSectionCourse())
	tree.CursorDown()
	tree.Toggle() // select s1

	fx := testutil.TwoSectionCourse()
	store, err := relation.BuildStore(fx.Units, fx.Sections, fx.Demos, nil)
	if err != nil {
		t.Fatalf("BuildStore: %v", err)
	}
	tree.SetStore(store, relation.NewHierarchy(store))

	if !tree.Selection().IsSelected("s1") {
		t.Error("selection should survive a reload of identical content")
	}
}

func TestTreeSetStoreDropsStaleIDs(t *testing.T) {
	tree := buildTree(t, testutil.TwoSectionCourse())
	tree.CursorDown()
	tree.CursorDown()
	tree.Toggle() // select s2, which TinyCourse doesn't have

	fx := testutil.TinyCourse()
	store, err := relation.BuildStore(fx.Units, fx.Sections, fx.Demos, nil)
	if err != nil {
		t.Fatalf("BuildStore: %v", err)
	}
	tree.SetStore(store, relation.NewHierarchy(store))

	if tree.Selection().IsSelected("s2") {
		t.Error("selection should drop ids the new store doesn't know")
	}
}

func TestTreeHighlight(t *testing.T) {
	tree := buildTree(t, testutil.TwoSectionCourse())

	tree.SetHighlight([]string{"s2"})
	if !tree.highlight["s2"] || !tree.highlight["u1"] {
		t.Error("highlight should include the leaf and its owning unit")
	}

	tree.ClearHighlight()
	if len(tree.highlight) != 0 {
		t.Error("ClearHighlight should empty the set")
	}
}

func TestTreeView(t *testing.T) {
	tree := buildTree(t, testutil.TwoSectionCourse())
	tree.SetSize(60, 10)

	out := tree.View()
	for _, want := range []string{"Waves", "Transverse Waves", "Double Refraction"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
	// Both sections link events, so badges render.
	if !strings.Contains(out, "(") {
		t.Error("view missing event-count badge")
	}
}
