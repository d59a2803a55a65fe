package ui

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/polarcraft/pkg/relation"
)

type rowKind int

const (
	rowUnit rowKind = iota
	rowSection
)

// treeRow is one visible line of the course tree: a unit header or a
// section leaf under it.
type treeRow struct {
	Kind  rowKind
	ID    string
	Depth int
}

// CourseTree is the navigator pane over the Unit -> Section tree. It owns
// the cursor, per-unit fold state, and the section selection; the store and
// hierarchy are shared read-only with the other panes.
type CourseTree struct {
	store     *relation.Store
	hierarchy *relation.Hierarchy
	selection *relation.Selection
	theme     Theme

	rows      []treeRow
	cursor    int
	collapsed map[string]bool
	highlight map[string]bool // leaf ids lit up by reverse projection

	width  int
	height int
}

// NewCourseTree builds a tree pane over the given store. The selection is
// created here with a SectionScope; callers read it through Selection().
func NewCourseTree(store *relation.Store, hierarchy *relation.Hierarchy, theme Theme) *CourseTree {
	t := &CourseTree{
		store:     store,
		hierarchy: hierarchy,
		theme:     theme,
		collapsed: make(map[string]bool),
		highlight: make(map[string]bool),
	}
	t.selection = relation.NewSelection(store.SectionScope())
	t.rebuildRows()
	return t
}

// Selection exposes the section selection for projection by the timeline.
func (t *CourseTree) Selection() *relation.Selection { return t.selection }

// SetSize updates the pane dimensions.
func (t *CourseTree) SetSize(width, height int) {
	t.width = width
	t.height = height
}

// SetStore swaps in a rebuilt store after a content reload. The cursor is
// clamped and the selection pruned so it never holds ids the new store
// doesn't know.
func (t *CourseTree) SetStore(store *relation.Store, hierarchy *relation.Hierarchy) {
	t.store = store
	t.hierarchy = hierarchy
	prev := t.selection
	t.selection = relation.NewSelection(store.SectionScope())
	prev.Each(func(id string) {
		if store.HasLeaf(id) {
			t.selection.ToggleLeaf(id)
		}
	})
	t.rebuildRows()
	t.clampCursor()
}

// SetHighlight replaces the reverse-projection highlight set: the leaf ids
// linked to the event the user picked on the timeline. Ancestor units of a
// highlighted section light up too.
func (t *CourseTree) SetHighlight(leafIDs []string) {
	t.highlight = make(map[string]bool, len(leafIDs))
	for _, id := range leafIDs {
		t.highlight[id] = true
		if sec, ok := t.store.Section(id); ok {
			t.highlight[sec.UnitID] = true
		}
	}
}

// ClearHighlight removes the reverse-projection highlight.
func (t *CourseTree) ClearHighlight() {
	t.highlight = make(map[string]bool)
}

// CursorUp moves the cursor one visible row up.
func (t *CourseTree) CursorUp() {
	if t.cursor > 0 {
		t.cursor--
	}
}

// CursorDown moves the cursor one visible row down.
func (t *CourseTree) CursorDown() {
	if t.cursor < len(t.rows)-1 {
		t.cursor++
	}
}

// CursorRow returns the row under the cursor.
func (t *CourseTree) CursorRow() (treeRow, bool) {
	if t.cursor < 0 || t.cursor >= len(t.rows) {
		return treeRow{}, false
	}
	return t.rows[t.cursor], true
}

// Toggle flips selection at the cursor: sections toggle as leaves, units
// apply the select-all-or-clear-all rule.
func (t *CourseTree) Toggle() {
	row, ok := t.CursorRow()
	if !ok {
		return
	}
	switch row.Kind {
	case rowSection:
		t.selection.ToggleLeaf(row.ID)
	case rowUnit:
		t.selection.ToggleAncestor(row.ID)
	}
}

// ToggleFold collapses or expands the unit under the cursor. On a section
// row it folds the owning unit instead, keeping the key useful anywhere in
// the subtree.
func (t *CourseTree) ToggleFold() {
	row, ok := t.CursorRow()
	if !ok {
		return
	}
	unitID := row.ID
	if row.Kind == rowSection {
		if sec, ok := t.store.Section(row.ID); ok {
			unitID = sec.UnitID
		}
	}
	t.collapsed[unitID] = !t.collapsed[unitID]
	t.rebuildRows()
	t.clampCursor()

	// Keep the cursor on the folded unit rather than whatever slid into
	// its old position.
	for i, r := range t.rows {
		if r.Kind == rowUnit && r.ID == unitID {
			t.cursor = i
			break
		}
	}
}

// ClearSelection empties the section selection.
func (t *CourseTree) ClearSelection() {
	t.selection.Clear()
}

// RowCount returns the number of visible rows.
func (t *CourseTree) RowCount() int { return len(t.rows) }

func (t *CourseTree) rebuildRows() {
	t.rows = t.rows[:0]
	for _, unitID := range t.store.UnitIDs() {
		t.rows = append(t.rows, treeRow{Kind: rowUnit, ID: unitID})
		if t.collapsed[unitID] {
			continue
		}
		for _, sectionID := range t.store.SectionsOf(unitID) {
			t.rows = append(t.rows, treeRow{Kind: rowSection, ID: sectionID, Depth: 1})
		}
	}
}

func (t *CourseTree) clampCursor() {
	if t.cursor >= len(t.rows) {
		t.cursor = len(t.rows) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
}

// View renders the visible window of the tree.
func (t *CourseTree) View() string {
	if len(t.rows) == 0 {
		return t.theme.MutedText.Render("no course content")
	}

	height := t.height
	if height <= 0 {
		height = len(t.rows)
	}
	start := 0
	if t.cursor >= height {
		start = t.cursor - height + 1
	}
	end := start + height
	if end > len(t.rows) {
		end = len(t.rows)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		line := t.renderRow(t.rows[i], i == t.cursor)
		b.WriteString(line)
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (t *CourseTree) renderRow(row treeRow, cursor bool) string {
	var label, box string
	switch row.Kind {
	case rowUnit:
		u, _ := t.store.Unit(row.ID)
		label = u.Title
		if label == "" {
			label = row.ID
		}
		status := t.selection.StatusOf(row.ID)
		box = t.theme.Renderer.NewStyle().
			Foreground(t.theme.StatusColor(status.String())).
			Render(Checkbox(status))
		if t.collapsed[row.ID] {
			label += " …"
		}
	case rowSection:
		sec, _ := t.store.Section(row.ID)
		label = sec.Title
		if label == "" {
			label = row.ID
		}
		box = LeafCheckbox(t.selection.IsSelected(row.ID))
		if t.selection.IsSelected(row.ID) {
			box = t.theme.Renderer.NewStyle().
				Foreground(t.theme.Full).
				Render(box)
		}
	}

	badge := ""
	if n := t.hierarchy.EventCount(row.ID); n > 0 {
		badge = t.theme.SecondaryText.Render(fmt.Sprintf(" (%d)", n))
	}

	indent := strings.Repeat("  ", row.Depth)
	width := t.width - len(indent) - 4
	if width < 8 {
		width = 8
	}
	line := indent + box + " " + truncate(label, width) + badge

	switch {
	case cursor:
		return t.theme.Selected.Render(line)
	case t.highlight[row.ID]:
		return t.theme.HighlightRow.Render(line)
	case row.Kind == rowUnit:
		return t.theme.PrimaryBold.Render(line)
	default:
		return t.theme.Base.Render(line)
	}
}
