package graph

import (
	"errors"
	"fmt"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Node types for biomedical entities.
const (
	TypeDrug       = "drug"
	TypeProtein    = "protein"
	TypeSideEffect = "side_effect"
)

// Visual encoding constants shared by the scene and all exporters.
// Restoration after hover recomputes values from these, never from snapshots.
const (
	// DefaultRadius is the rendered radius for nodes without a Val.
	DefaultRadius = 10.0

	// ValRadiusScale and ValRadiusBase derive the radius from Val: val*3+8.
	ValRadiusScale = 3.0
	ValRadiusBase  = 8.0
)

// Fill colors keyed by node type. The palette is fixed; unknown types fall
// back to ColorDefault.
const (
	ColorDrug       = "#4f8ff7"
	ColorProtein    = "#34c28b"
	ColorSideEffect = "#f7734f"
	ColorDefault    = "#9aa0a6"
)

// Sentinel errors returned by [Graph.Validate] and [ReadGraph].
var (
	// ErrInvalidNodeID is returned when a node has an empty ID.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned when two nodes share an ID.
	// Identity is the ID, so uniqueness must hold across the input set.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownLinkSource is returned when a link's source ID does not
	// resolve to a node in the set.
	ErrUnknownLinkSource = errors.New("unknown link source node")

	// ErrUnknownLinkTarget is returned when a link's target ID does not
	// resolve to a node in the set.
	ErrUnknownLinkTarget = errors.New("unknown link target node")
)

// =============================================================================
// Node - Biomedical Entity
// =============================================================================

// Node is a biomedical entity in the interaction graph: a drug, a protein,
// or a side effect. Identity is the ID; all link resolution happens by ID
// exactly once when a scene is built.
type Node struct {
	ID          string  `json:"id" bson:"id"`
	Label       string  `json:"label,omitempty" bson:"label,omitempty"` // Display label (defaults to ID)
	Type        string  `json:"type" bson:"type"`                       // "drug", "protein", "side_effect"
	Val         float64 `json:"val,omitempty" bson:"val,omitempty"`     // Relative magnitude, drives radius
	Description string  `json:"description,omitempty" bson:"description,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Radius returns the rendered radius: val*3+8 when Val is set, otherwise
// the default. This is the single formula used at initial render and again
// when hover emphasis is removed.
func (n *Node) Radius() float64 {
	if n.Val > 0 {
		return n.Val*ValRadiusScale + ValRadiusBase
	}
	return DefaultRadius
}

// Color returns the fill color for the node's type.
func (n *Node) Color() string {
	switch n.Type {
	case TypeDrug:
		return ColorDrug
	case TypeProtein:
		return ColorProtein
	case TypeSideEffect:
		return ColorSideEffect
	default:
		return ColorDefault
	}
}

// =============================================================================
// Link - Typed Relationship
// =============================================================================

// Link is a typed relationship between two nodes, referenced by ID.
type Link struct {
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
	Type   string `json:"type,omitempty" bson:"type,omitempty"` // Relationship label, e.g. "inhibits"
}

// Key returns a stable identity for the link, used to key visual primitives.
func (l Link) Key() string {
	return l.Source + "\x00" + l.Target + "\x00" + l.Type
}

// =============================================================================
// Graph - Node/Link Set
// =============================================================================

// Graph is the canonical serialization format for interaction graphs.
// Used for dataset files, API responses, snapshot storage, and caching.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Links []Link `json:"links" bson:"links"`
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.Nodes) }

// LinkCount returns the number of links.
func (g *Graph) LinkCount() int { return len(g.Links) }

// Node returns the node with the given ID and true, or nil and false.
func (g *Graph) Node(id string) (*Node, bool) {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i], true
		}
	}
	return nil, false
}

// Validate checks the graph's structural invariants: every node has a
// non-empty unique ID, and every link endpoint resolves to a node. A link
// referencing a missing node is an error, not a silent drop - proceeding
// with a partially connected graph would misrepresent the data.
func (g *Graph) Validate() error {
	ids := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			return ErrInvalidNodeID
		}
		if _, exists := ids[n.ID]; exists {
			return fmt.Errorf("%w: %q", ErrDuplicateNodeID, n.ID)
		}
		ids[n.ID] = struct{}{}
	}
	for _, l := range g.Links {
		if _, ok := ids[l.Source]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownLinkSource, l.Source)
		}
		if _, ok := ids[l.Target]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownLinkTarget, l.Target)
		}
	}
	return nil
}

// Clone returns a shallow working copy of the graph: fresh node and link
// slices over copied structs. Scene construction clones its input so
// simulation never mutates the caller's data.
func (g *Graph) Clone() Graph {
	out := Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Links: make([]Link, len(g.Links)),
	}
	copy(out.Nodes, g.Nodes)
	copy(out.Links, g.Links)
	return out
}
