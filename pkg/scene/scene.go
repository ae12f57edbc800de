package scene

import (
	"fmt"

	"github.com/chazu/interlace/pkg/mirror"
)

// Defaults contains scene-wide default settings.
type Defaults struct {
	Step       float64 `json:"step"`        // orbit step size
	MaxSteps   int     `json:"max_steps"`   // orbit iteration bound
	Spacing    float64 `json:"spacing"`     // grid spacing
	TubeRadius float64 `json:"tube_radius"` // solid export radius
}

// DefaultSettings returns the defaults used by New.
func DefaultSettings() Defaults {
	return Defaults{
		Step:       mirror.DefaultStep,
		MaxSteps:   mirror.DefaultMaxSteps,
		Spacing:    1,
		TubeRadius: 0.1,
	}
}

// Scene is the top-level data structure produced by script evaluation.
// It is never mutated after evaluation; each evaluation produces a new one.
type Scene struct {
	Nodes     map[NodeID]*Node  `json:"nodes"`
	Order     []NodeID          `json:"order"` // creation order
	Roots     []NodeID          `json:"roots"`
	NameIndex map[string]NodeID `json:"name_index"`
	Defaults  Defaults          `json:"defaults"`
}

// New creates an empty Scene with default settings.
func New() *Scene {
	return &Scene{
		Nodes:     make(map[NodeID]*Node),
		NameIndex: make(map[string]NodeID),
		Defaults:  DefaultSettings(),
	}
}

// AddNode adds a node to the scene. Re-adding an existing ID replaces the
// node but keeps its original position in the creation order.
func (s *Scene) AddNode(n *Node) {
	if _, exists := s.Nodes[n.ID]; !exists {
		s.Order = append(s.Order, n.ID)
	}
	s.Nodes[n.ID] = n
	if n.Name != "" {
		s.NameIndex[n.Name] = n.ID
	}
}

// AddRoot registers a node ID as a root of the scene.
func (s *Scene) AddRoot(id NodeID) {
	for _, r := range s.Roots {
		if r == id {
			return
		}
	}
	s.Roots = append(s.Roots, id)
}

// Lookup returns the node with the given user-assigned name, or nil.
func (s *Scene) Lookup(name string) *Node {
	id, ok := s.NameIndex[name]
	if !ok {
		return nil
	}
	return s.Nodes[id]
}

// MustLookup returns the node with the given name, or panics.
func (s *Scene) MustLookup(name string) *Node {
	n := s.Lookup(name)
	if n == nil {
		panic(fmt.Sprintf("scene: no node named %q", name))
	}
	return n
}

// Get returns the node with the given ID, or nil.
func (s *Scene) Get(id NodeID) *Node {
	return s.Nodes[id]
}

// Children returns the child nodes of n in declaration order.
func (s *Scene) Children(n *Node) []*Node {
	children := make([]*Node, 0, len(n.Children))
	for _, cid := range n.Children {
		if c := s.Nodes[cid]; c != nil {
			children = append(children, c)
		}
	}
	return children
}

// Patterns returns every geometry-emitting node in creation order.
func (s *Scene) Patterns() []*Node {
	var out []*Node
	for _, id := range s.Order {
		if n := s.Nodes[id]; n != nil && n.Kind.IsPattern() {
			out = append(out, n)
		}
	}
	return out
}

// NodeCount returns the total number of nodes.
func (s *Scene) NodeCount() int {
	return len(s.Nodes)
}

// Referenced returns the set of IDs that appear as some node's child.
func (s *Scene) Referenced() map[NodeID]bool {
	ref := make(map[NodeID]bool)
	for _, n := range s.Nodes {
		for _, c := range n.Children {
			ref[c] = true
		}
	}
	return ref
}
