package netgraph

import (
	"testing"

	"github.com/vanderheijden86/polarcraft/pkg/model"
	"github.com/vanderheijden86/polarcraft/pkg/testutil"
)

// scientistGraph builds the small fixture used throughout: Malus influenced
// by Newton, Fresnel extending Young, Fresnel disputing Newton, and an
// isolated Bartholin.
func scientistGraph(t *testing.T) *Graph {
	t.Helper()
	nodes := []model.NetNode{
		{ID: "newton", Label: "Isaac Newton", X: 10, Y: 10},
		{ID: "young", Label: "Thomas Young", X: 40, Y: 10},
		{ID: "malus", Label: "Étienne-Louis Malus", X: 10, Y: 40},
		{ID: "fresnel", Label: "Augustin-Jean Fresnel", X: 40, Y: 40},
		{ID: "bartholin", Label: "Rasmus Bartholin", X: 70, Y: 10},
	}
	edges := []model.NetEdge{
		{From: "newton", To: "malus", Type: model.EdgeInfluenced},
		{From: "young", To: "fresnel", Type: model.EdgeExtended},
		{From: "fresnel", To: "newton", Type: model.EdgeDisputed},
	}
	g, err := New(nodes, edges)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestNewRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		nodes []model.NetNode
		edges []model.NetEdge
	}{
		{
			"duplicate node id",
			[]model.NetNode{{ID: "a"}, {ID: "a"}},
			nil,
		},
		{
			"edge to missing node",
			[]model.NetNode{{ID: "a"}},
			[]model.NetEdge{{From: "a", To: "ghost", Type: model.EdgeInfluenced}},
		},
		{
			"invalid edge type",
			[]model.NetNode{{ID: "a"}, {ID: "b"}},
			[]model.NetEdge{{From: "a", To: "b", Type: "mentored"}},
		},
		{
			"empty node id",
			[]model.NetNode{{ID: ""}},
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.nodes, tt.edges); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSelectIsTrueToggle(t *testing.T) {
	g := scientistGraph(t)

	g.Select("newton")
	if g.Focus() != "newton" {
		t.Fatalf("Focus = %q, want newton", g.Focus())
	}

	// Selecting the focused node again clears focus.
	g.Select("newton")
	if g.Focus() != "" {
		t.Fatalf("Focus = %q after re-select, want empty", g.Focus())
	}

	// Selecting a different node moves focus.
	g.Select("newton")
	g.Select("fresnel")
	if g.Focus() != "fresnel" {
		t.Fatalf("Focus = %q, want fresnel", g.Focus())
	}

	// Unknown ids clear focus rather than erroring.
	g.Select("nobody")
	if g.Focus() != "" {
		t.Fatalf("Focus = %q after unknown select, want empty", g.Focus())
	}
}

func TestHighlightedSet(t *testing.T) {
	g := scientistGraph(t)

	if got := g.HighlightedSet(); len(got) != 0 {
		t.Fatalf("idle highlight = %v, want empty", got)
	}

	// newton touches malus (influenced, outgoing) and fresnel (disputed,
	// incoming). Direction does not matter for highlighting.
	g.Select("newton")
	testutil.AssertStringsEqual(t, g.HighlightedSet(), []string{"fresnel", "malus", "newton"})

	// Hover unions in without touching focus.
	g.SetHover("young")
	testutil.AssertStringsEqual(t, g.HighlightedSet(), []string{"fresnel", "malus", "newton", "young"})
	if g.Focus() != "newton" {
		t.Errorf("hover changed focus to %q", g.Focus())
	}

	g.SetHover("")
	testutil.AssertStringsEqual(t, g.HighlightedSet(), []string{"fresnel", "malus", "newton"})
}

func TestEdgeFilterRestrictsHighlight(t *testing.T) {
	g := scientistGraph(t)
	g.Select("newton")

	g.SetEdgeFilter(model.EdgeInfluenced)
	// Only the influenced edge to malus passes the filter now.
	testutil.AssertStringsEqual(t, g.HighlightedSet(), []string{"malus", "newton"})

	g.SetEdgeFilter(model.EdgeTypeAll)
	testutil.AssertStringsEqual(t, g.HighlightedSet(), []string{"fresnel", "malus", "newton"})
}

func TestEdgesMatchingType(t *testing.T) {
	g := scientistGraph(t)

	if got := g.EdgesMatchingType(model.EdgeTypeAll); len(got) != 3 {
		t.Errorf("all edges = %d, want 3", len(got))
	}
	got := g.EdgesMatchingType(model.EdgeDisputed)
	if len(got) != 1 || got[0].From != "fresnel" {
		t.Errorf("disputed edges = %v", got)
	}
	if got := g.EdgesMatchingType(model.EdgeUnified); len(got) != 0 {
		t.Errorf("unified edges = %v, want empty", got)
	}
}

func TestReachableFrom(t *testing.T) {
	g := scientistGraph(t)

	// newton, malus, fresnel, young form one component through undirected
	// chains; bartholin is isolated.
	testutil.AssertStringsEqual(t, g.ReachableFrom("malus"), []string{"fresnel", "malus", "newton", "young"})
	testutil.AssertStringsEqual(t, g.ReachableFrom("bartholin"), []string{"bartholin"})

	if got := g.ReachableFrom("nobody"); got != nil {
		t.Errorf("ReachableFrom(unknown) = %v, want nil", got)
	}
}

func TestComponents(t *testing.T) {
	g := scientistGraph(t)

	comps := g.Components()
	if len(comps) != 2 {
		t.Fatalf("components = %d, want 2", len(comps))
	}
	testutil.AssertStringsEqual(t, comps[0], []string{"bartholin"})
	testutil.AssertStringsEqual(t, comps[1], []string{"fresnel", "malus", "newton", "young"})
}

func TestNodesKeepAuthoredOrder(t *testing.T) {
	g := scientistGraph(t)

	nodes := g.Nodes()
	wantOrder := []string{"newton", "young", "malus", "fresnel", "bartholin"}
	if len(nodes) != len(wantOrder) {
		t.Fatalf("got %d nodes", len(nodes))
	}
	for i, id := range wantOrder {
		if nodes[i].ID != id {
			t.Errorf("node %d = %s, want %s", i, nodes[i].ID, id)
		}
	}
}
