// Package assemble walks a scene and produces line meshes using the
// pattern generators. One mesh is produced per placed pattern.
package assemble

import (
	"fmt"

	"github.com/chazu/interlace/pkg/geom"
	"github.com/chazu/interlace/pkg/lattice"
	"github.com/chazu/interlace/pkg/mesh"
	"github.com/chazu/interlace/pkg/mirror"
	"github.com/chazu/interlace/pkg/motif"
	"github.com/chazu/interlace/pkg/scene"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/samber/lo"
)

// transformStack accumulates placements during scene traversal.
// The innermost transform is applied first.
type transformStack struct {
	frames []geom.Transform
}

func (ts *transformStack) push(t geom.Transform) {
	ts.frames = append(ts.frames, t)
}

func (ts *transformStack) pop() {
	if len(ts.frames) > 0 {
		ts.frames = ts.frames[:len(ts.frames)-1]
	}
}

func (ts *transformStack) apply(v v3.Vec) v3.Vec {
	for i := len(ts.frames) - 1; i >= 0; i-- {
		v = ts.frames[i].Apply(v)
	}
	return v
}

// assembler holds per-call state: the scene, local geometry already
// generated for each pattern node, and how often each name was emitted.
type assembler struct {
	s     *scene.Scene
	ts    transformStack
	local map[scene.NodeID]*mesh.LineMesh
	seen  map[string]int
}

// Assemble validates the scene and walks it from its roots, producing one
// line mesh per pattern occurrence in traversal order. A pattern placed
// twice yields two meshes; the second is named "<name>.2". The scene is
// never mutated.
func Assemble(s *scene.Scene) ([]*mesh.LineMesh, error) {
	if s == nil {
		return nil, nil
	}
	if err := scene.Validate(s).Err(); err != nil {
		return nil, fmt.Errorf("assemble: invalid scene: %w", err)
	}

	a := &assembler{
		s:     s,
		local: make(map[scene.NodeID]*mesh.LineMesh),
		seen:  make(map[string]int),
	}

	var meshes []*mesh.LineMesh
	for _, rootID := range s.Roots {
		root := s.Get(rootID)
		if root == nil {
			continue
		}
		collected, err := a.walk(root)
		if err != nil {
			return nil, fmt.Errorf("assemble: error walking root %s: %w", root.DisplayName(), err)
		}
		meshes = append(meshes, collected...)
	}
	return meshes, nil
}

// walk recursively traverses a node and its children, collecting meshes.
func (a *assembler) walk(n *scene.Node) ([]*mesh.LineMesh, error) {
	switch n.Kind {
	case scene.NodeKnot, scene.NodeOrbit, scene.NodeGrid, scene.NodeCell:
		return a.handlePattern(n)

	case scene.NodeTransform:
		td, ok := n.Data.(scene.TransformData)
		if !ok {
			return nil, fmt.Errorf("transform node %s has unexpected data type %T", n.DisplayName(), n.Data)
		}
		a.ts.push(td.Transform())
		defer a.ts.pop()
		return a.walkChildren(n)

	case scene.NodeGroup:
		return a.walkChildren(n)

	default:
		return nil, fmt.Errorf("unknown node kind: %v", n.Kind)
	}
}

func (a *assembler) walkChildren(n *scene.Node) ([]*mesh.LineMesh, error) {
	var meshes []*mesh.LineMesh
	for _, child := range a.s.Children(n) {
		collected, err := a.walk(child)
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, collected...)
	}
	return meshes, nil
}

// handlePattern places the node's local geometry under the current
// transforms.
func (a *assembler) handlePattern(n *scene.Node) ([]*mesh.LineMesh, error) {
	local, ok := a.local[n.ID]
	if !ok {
		var err error
		local, err = Generate(n, a.s.Defaults)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", n.Kind, n.DisplayName(), err)
		}
		a.local[n.ID] = local
	}

	name := n.DisplayName()
	a.seen[name]++
	if c := a.seen[name]; c > 1 {
		name = fmt.Sprintf("%s.%d", name, c)
	}

	return []*mesh.LineMesh{{
		Name:     name,
		Vertices: lo.Map(local.Vertices, func(v v3.Vec, _ int) v3.Vec { return a.ts.apply(v) }),
		Lines:    lo.Map(local.Lines, func(l []int, _ int) []int { return append([]int(nil), l...) }),
	}}, nil
}

// Generate produces the untransformed geometry of a single pattern node.
func Generate(n *scene.Node, def scene.Defaults) (*mesh.LineMesh, error) {
	m := mesh.New(n.DisplayName())
	switch d := n.Data.(type) {
	case scene.KnotData:
		segs, err := motif.Knot(d.Lattice, motif.Options{Caps: d.Caps})
		if err != nil {
			return nil, err
		}
		m.AddSegments(segs)

	case scene.OrbitData:
		orbit, err := mirror.Simulate(scene.OrbitConfig(d, def))
		if err != nil {
			return nil, err
		}
		m.AddPolyline(orbit.Polyline())

	case scene.GridData:
		points, err := lattice.GridPoints(d.Lattice, scene.GridSpacing(d, def))
		if err != nil {
			return nil, err
		}
		m.AddPoints(points)

	case scene.CellData:
		points, err := lattice.CellSamples(d.Subdivisions)
		if err != nil {
			return nil, err
		}
		m.AddPoints(points)

	default:
		return nil, fmt.Errorf("node %s is not a pattern (data %T)", n.DisplayName(), n.Data)
	}
	return m, nil
}

// Merge concatenates meshes into a single mesh with the given name.
func Merge(name string, meshes []*mesh.LineMesh) *mesh.LineMesh {
	out := mesh.New(name)
	for _, m := range meshes {
		out.Append(m)
	}
	return out
}
