package ui

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/polarcraft/pkg/model"
	"github.com/vanderheijden86/polarcraft/pkg/netgraph"
)

// edgeFilterCycle is the order the edge-type filter steps through.
var edgeFilterCycle = []model.EdgeType{
	model.EdgeTypeAll,
	model.EdgeInfluenced,
	model.EdgeExtended,
	model.EdgeDisputed,
	model.EdgeUnified,
}

// GraphView renders one relation graph (scientists or concepts) as a node
// list with a cursor. Terminal real estate doesn't allow a spatial render;
// the authored coordinates are used only by the snapshot exporter.
type GraphView struct {
	graph *netgraph.Graph
	theme Theme

	nodes  []model.NetNode
	cursor int

	width  int
	height int
}

// NewGraphView builds a view over the given graph.
func NewGraphView(graph *netgraph.Graph, theme Theme) *GraphView {
	return &GraphView{
		graph: graph,
		theme: theme,
		nodes: graph.Nodes(),
	}
}

// Graph exposes the underlying graph, mainly for snapshot export.
func (v *GraphView) Graph() *netgraph.Graph { return v.graph }

// SetSize updates the pane dimensions.
func (v *GraphView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// CursorUp moves the cursor one node up and hovers it.
func (v *GraphView) CursorUp() {
	if v.cursor > 0 {
		v.cursor--
	}
	v.hoverCursor()
}

// CursorDown moves the cursor one node down and hovers it.
func (v *GraphView) CursorDown() {
	if v.cursor < len(v.nodes)-1 {
		v.cursor++
	}
	v.hoverCursor()
}

func (v *GraphView) hoverCursor() {
	if v.cursor >= 0 && v.cursor < len(v.nodes) {
		v.graph.SetHover(v.nodes[v.cursor].ID)
	}
}

// Toggle focuses the node under the cursor, or clears focus when it was
// already focused (a true toggle, unlike the navigator's ancestor rule).
func (v *GraphView) Toggle() {
	if v.cursor < 0 || v.cursor >= len(v.nodes) {
		return
	}
	v.graph.Select(v.nodes[v.cursor].ID)
}

// CycleEdgeFilter steps the edge-type filter to the next type.
func (v *GraphView) CycleEdgeFilter() {
	current := v.graph.EdgeFilter()
	for i, t := range edgeFilterCycle {
		if t == current {
			v.graph.SetEdgeFilter(edgeFilterCycle[(i+1)%len(edgeFilterCycle)])
			return
		}
	}
	v.graph.SetEdgeFilter(model.EdgeTypeAll)
}

// View renders the node list with the highlight set emphasized.
func (v *GraphView) View() string {
	if len(v.nodes) == 0 {
		return v.theme.MutedText.Render("no graph content")
	}

	highlighted := make(map[string]bool)
	for _, id := range v.graph.HighlightedSet() {
		highlighted[id] = true
	}

	height := v.height
	if height > 0 {
		height-- // status line
	}
	if height <= 0 {
		height = len(v.nodes)
	}
	start := 0
	if v.cursor >= height {
		start = v.cursor - height + 1
	}
	end := start + height
	if end > len(v.nodes) {
		end = len(v.nodes)
	}

	var b strings.Builder
	b.WriteString(v.statusLine())
	b.WriteByte('\n')
	for i := start; i < end; i++ {
		b.WriteString(v.renderNode(v.nodes[i], i == v.cursor, highlighted[v.nodes[i].ID]))
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (v *GraphView) statusLine() string {
	focus := v.graph.Focus()
	if focus == "" {
		focus = "none"
	}
	return v.theme.SecondaryText.Render(
		fmt.Sprintf("focus: %s  filter: %s", focus, v.graph.EdgeFilter()))
}

func (v *GraphView) renderNode(n model.NetNode, cursor, highlighted bool) string {
	marker := "  "
	if n.ID == v.graph.Focus() {
		marker = v.theme.PrimaryBold.Render("● ")
	} else if highlighted {
		marker = v.theme.PrimaryMark.Render("○ ")
	}

	width := v.width - 4
	if width < 12 {
		width = 12
	}
	line := marker + truncate(n.Label, width)

	switch {
	case cursor:
		return v.theme.Selected.Render(line)
	case highlighted:
		return v.theme.HighlightRow.Render(line)
	default:
		return v.theme.Base.Render(line)
	}
}
