package scene

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/chazu/interlace/pkg/lattice"
	"github.com/chazu/interlace/pkg/mirror"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/samber/lo"
)

func knotNode(name string, d lattice.Dims) *Node {
	return &Node{ID: NewNodeID(name), Kind: NodeKnot, Name: name, Data: KnotData{Lattice: d, Caps: true}}
}

func orbitNode(name string, data OrbitData) *Node {
	return &Node{ID: NewNodeID(name), Kind: NodeOrbit, Name: name, Data: data}
}

func referenceOrbit() OrbitData {
	return OrbitData{
		Lattice:   lattice.Dims{N: 4, M: 2, P: 3},
		Start:     v3.Vec{X: 3, Y: 1, Z: 2},
		Direction: v3.Vec{X: 1, Y: 1, Z: 1},
		Step:      lo.ToPtr(0.5),
	}
}

func TestNodeID(t *testing.T) {
	a, b := NewNodeID("knot/celtic"), NewNodeID("knot/celtic")
	if a != b {
		t.Error("NewNodeID is not deterministic")
	}
	if a == NewNodeID("knot/other") {
		t.Error("different paths hashed to the same ID")
	}
	if a.IsZero() || !ZeroID.IsZero() {
		t.Error("IsZero is wrong")
	}
	if len(a.Short()) != 8 {
		t.Errorf("Short() = %q, want 8 hex digits", a.Short())
	}

	raw, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var back NodeID
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back != a {
		t.Errorf("round trip gave %s, want %s", back.Short(), a.Short())
	}
	if err := back.UnmarshalText([]byte("abcd")); err == nil {
		t.Error("short id accepted")
	}
}

func TestSceneOrderAndLookup(t *testing.T) {
	s := New()
	s.AddNode(knotNode("b", lattice.Dims{N: 1, M: 1, P: 2}))
	s.AddNode(knotNode("a", lattice.Dims{N: 1, M: 1, P: 2}))
	s.AddNode(knotNode("b", lattice.Dims{N: 2, M: 2, P: 2}))

	if s.NodeCount() != 2 {
		t.Fatalf("NodeCount() = %d, want 2", s.NodeCount())
	}
	if s.Order[0] != NewNodeID("b") || s.Order[1] != NewNodeID("a") {
		t.Error("re-adding a node changed the creation order")
	}
	if got := s.MustLookup("b").Data.(KnotData).Lattice.N; got != 2 {
		t.Errorf("replacement not stored, N = %d", got)
	}
	if s.Lookup("missing") != nil {
		t.Error("Lookup of missing name returned a node")
	}
	pats := s.Patterns()
	if len(pats) != 2 || pats[0].Name != "b" {
		t.Errorf("Patterns() = %v", pats)
	}

	s.AddRoot(NewNodeID("a"))
	s.AddRoot(NewNodeID("a"))
	if len(s.Roots) != 1 {
		t.Errorf("duplicate root added: %d roots", len(s.Roots))
	}
}

func TestMustLookupPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustLookup did not panic")
		}
	}()
	New().MustLookup("nothing")
}

func TestTransformDataDefaultsToIdentity(t *testing.T) {
	tr := TransformData{}.Transform()
	p := v3.Vec{X: 1, Y: 2, Z: 3}
	if got := tr.Apply(p); got != p {
		t.Errorf("zero TransformData moved %v to %v", p, got)
	}
}

func TestValidateValidScene(t *testing.T) {
	s := New()
	s.AddNode(knotNode("knot", lattice.Dims{N: 4, M: 2, P: 3}))
	s.AddNode(orbitNode("orbit", referenceOrbit()))
	s.AddRoot(NewNodeID("knot"))
	s.AddRoot(NewNodeID("orbit"))

	res := Validate(s)
	if !res.OK() {
		t.Fatalf("unexpected errors: %v", res.Err())
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
}

func TestValidatePatternErrors(t *testing.T) {
	tests := []struct {
		name     string
		node     *Node
		code     string
		sentinel error
	}{
		{
			name:     "knot with zero dimension",
			node:     knotNode("k", lattice.Dims{N: 0, M: 1, P: 1}),
			code:     CodeInvalidLattice,
			sentinel: lattice.ErrInvalidConfiguration,
		},
		{
			name: "orbit zero direction",
			node: orbitNode("o", func() OrbitData {
				d := referenceOrbit()
				d.Direction = v3.Vec{}
				return d
			}()),
			code:     CodeDegenerateOrbit,
			sentinel: mirror.ErrDegenerateOrbit,
		},
		{
			name: "orbit bad step",
			node: orbitNode("o", func() OrbitData {
				d := referenceOrbit()
				d.Step = lo.ToPtr(0.75)
				return d
			}()),
			code:     CodeInvalidOrbit,
			sentinel: lattice.ErrInvalidConfiguration,
		},
		{
			name: "orbit explicit zero step",
			node: orbitNode("o", func() OrbitData {
				d := referenceOrbit()
				d.Step = lo.ToPtr(0.0)
				return d
			}()),
			code:     CodeInvalidOrbit,
			sentinel: lattice.ErrInvalidConfiguration,
		},
		{
			name: "orbit negative step limit",
			node: orbitNode("o", func() OrbitData {
				d := referenceOrbit()
				d.MaxSteps = lo.ToPtr(-1)
				return d
			}()),
			code:     CodeInvalidOrbit,
			sentinel: lattice.ErrInvalidConfiguration,
		},
		{
			name: "orbit bad lattice",
			node: orbitNode("o", func() OrbitData {
				d := referenceOrbit()
				d.Lattice.P = -1
				return d
			}()),
			code:     CodeInvalidLattice,
			sentinel: lattice.ErrInvalidConfiguration,
		},
		{
			name:     "grid negative spacing",
			node:     &Node{ID: NewNodeID("g"), Kind: NodeGrid, Data: GridData{Lattice: lattice.Dims{N: 1, M: 1, P: 1}, Spacing: -1}},
			code:     CodeInvalidGrid,
			sentinel: lattice.ErrInvalidConfiguration,
		},
		{
			name:     "odd cell subdivisions",
			node:     &Node{ID: NewNodeID("c"), Kind: NodeCell, Data: CellData{Subdivisions: 3}},
			code:     CodeInvalidCell,
			sentinel: lattice.ErrInvalidConfiguration,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.AddNode(tt.node)
			s.AddRoot(tt.node.ID)
			res := Validate(s)
			if len(res.Errors) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(res.Errors), res.Errors)
			}
			if res.Errors[0].Code != tt.code {
				t.Errorf("code = %s, want %s", res.Errors[0].Code, tt.code)
			}
			if !errors.Is(res.Err(), tt.sentinel) {
				t.Errorf("Err() = %v, does not match %v", res.Err(), tt.sentinel)
			}
		})
	}
}

func TestValidateWarnings(t *testing.T) {
	s := New()
	// A 1x1x1 lattice has no interior site with i+k odd.
	s.AddNode(knotNode("tiny", lattice.Dims{N: 1, M: 1, P: 1}))
	s.AddNode(&Node{ID: NewNodeID("empty"), Kind: NodeGroup, Name: "empty", Data: GroupData{}})
	res := Validate(s)
	if !res.OK() {
		t.Fatalf("warnings reported as errors: %v", res.Errors)
	}
	codes := map[string]bool{}
	for _, w := range res.Warnings {
		codes[w.Code] = true
	}
	if !codes[CodeEmptyKnot] || !codes[CodeEmptyGroup] {
		t.Errorf("warnings = %v, want EMPTY_KNOT and EMPTY_GROUP", res.Warnings)
	}
}

func TestValidateStructure(t *testing.T) {
	t.Run("missing child", func(t *testing.T) {
		s := New()
		s.AddNode(&Node{ID: NewNodeID("g"), Kind: NodeGroup, Children: []NodeID{NewNodeID("ghost")}, Data: GroupData{}})
		res := Validate(s)
		if res.OK() || res.Errors[0].Code != CodeMissingReference {
			t.Errorf("errors = %v, want MISSING_REFERENCE", res.Errors)
		}
	})
	t.Run("missing root", func(t *testing.T) {
		s := New()
		s.AddRoot(NewNodeID("ghost"))
		res := Validate(s)
		if res.OK() || res.Errors[0].Code != CodeMissingRoot {
			t.Errorf("errors = %v, want MISSING_ROOT", res.Errors)
		}
	})
	t.Run("cycle", func(t *testing.T) {
		s := New()
		a, b := NewNodeID("a"), NewNodeID("b")
		s.AddNode(&Node{ID: a, Kind: NodeGroup, Children: []NodeID{b}, Data: GroupData{}})
		s.AddNode(&Node{ID: b, Kind: NodeGroup, Children: []NodeID{a}, Data: GroupData{}})
		res := Validate(s)
		found := false
		for _, e := range res.Errors {
			if e.Code == CodeCycle {
				found = true
			}
		}
		if !found {
			t.Errorf("errors = %v, want CYCLE", res.Errors)
		}
	})
}

func TestOrbitConfigDefaults(t *testing.T) {
	d := referenceOrbit()
	d.Step = nil
	cfg := OrbitConfig(d, DefaultSettings())
	if cfg.Step != mirror.DefaultStep || cfg.MaxSteps != mirror.DefaultMaxSteps {
		t.Errorf("OrbitConfig = %+v, want defaults filled", cfg)
	}

	d.Step, d.MaxSteps = lo.ToPtr(0.0), lo.ToPtr(0)
	cfg = OrbitConfig(d, DefaultSettings())
	if cfg.Step != 0 || cfg.MaxSteps != 0 {
		t.Errorf("OrbitConfig = %+v, explicit values must not be replaced", cfg)
	}
}
