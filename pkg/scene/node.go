package scene

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// NodeID is a content-addressed identifier derived from a node's path.
type NodeID [32]byte

// ZeroID is the unset NodeID.
var ZeroID NodeID

// NewNodeID hashes path into a stable identifier.
func NewNodeID(path string) NodeID {
	return NodeID(sha256.Sum256([]byte(path)))
}

// IsZero reports whether id is unset.
func (id NodeID) IsZero() bool {
	return id == ZeroID
}

// Short returns the first eight hex digits, for messages.
func (id NodeID) Short() string {
	return hex.EncodeToString(id[:4])
}

func (id NodeID) String() string {
	return hex.EncodeToString(id[:])
}

// MarshalText encodes the ID as hex.
func (id NodeID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText decodes a hex ID.
func (id *NodeID) UnmarshalText(b []byte) error {
	raw, err := hex.DecodeString(string(b))
	if err != nil {
		return fmt.Errorf("scene: invalid node id: %w", err)
	}
	if len(raw) != len(id) {
		return fmt.Errorf("scene: node id has %d bytes, want %d", len(raw), len(id))
	}
	copy(id[:], raw)
	return nil
}

// NodeKind enumerates the types of nodes in the scene.
type NodeKind int

const (
	NodeKnot      NodeKind = iota // interlace of crossing tiles and caps
	NodeOrbit                     // reflection trace
	NodeGrid                      // lattice vertex cloud
	NodeCell                      // dense unit-cell samples
	NodeTransform                 // rotation and translation of children
	NodeGroup                     // logical grouping
)

func (k NodeKind) String() string {
	switch k {
	case NodeKnot:
		return "knot"
	case NodeOrbit:
		return "orbit"
	case NodeGrid:
		return "grid"
	case NodeCell:
		return "cell"
	case NodeTransform:
		return "transform"
	case NodeGroup:
		return "group"
	default:
		return "unknown"
	}
}

// IsPattern reports whether nodes of this kind emit geometry themselves.
func (k NodeKind) IsPattern() bool {
	switch k {
	case NodeKnot, NodeOrbit, NodeGrid, NodeCell:
		return true
	}
	return false
}

// Node is the fundamental element of the scene.
type Node struct {
	ID       NodeID   `json:"id"`
	Kind     NodeKind `json:"kind"`
	Name     string   `json:"name,omitempty"`
	Children []NodeID `json:"children,omitempty"`
	Data     NodeData `json:"data"`
}

// DisplayName returns the node name, or its short ID when unnamed.
func (n *Node) DisplayName() string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID.Short()
}

// NodeData is the interface for kind-specific node payloads.
type NodeData interface {
	nodeData() // marker method restricting implementations to this package
}
