package model

import "fmt"

// EdgeType categorizes a relation-graph edge.
type EdgeType string

const (
	EdgeInfluenced EdgeType = "influenced"
	EdgeExtended   EdgeType = "extended"
	EdgeDisputed   EdgeType = "disputed"
	EdgeUnified    EdgeType = "unified"
)

// EdgeTypeAll is the filter value that matches every edge type.
const EdgeTypeAll EdgeType = "all"

// IsValid returns true if the edge type is a recognized value
func (t EdgeType) IsValid() bool {
	switch t {
	case EdgeInfluenced, EdgeExtended, EdgeDisputed, EdgeUnified:
		return true
	}
	return false
}

// NetNode is a node in a scientist or concept relation graph. Layout
// coordinates are authored data, not computed.
type NetNode struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Validate checks if the node data is logically valid
func (n *NetNode) Validate() error {
	if n.ID == "" {
		return fmt.Errorf("graph node ID cannot be empty")
	}
	return nil
}

// NetEdge is a typed directed edge between two relation-graph nodes.
type NetEdge struct {
	From string   `json:"from"`
	To   string   `json:"to"`
	Type EdgeType `json:"type"`
}

// Validate checks if the edge data is logically valid
func (e *NetEdge) Validate() error {
	if e.From == "" || e.To == "" {
		return fmt.Errorf("graph edge endpoints cannot be empty")
	}
	if !e.Type.IsValid() {
		return fmt.Errorf("invalid edge type: %s", e.Type)
	}
	return nil
}
