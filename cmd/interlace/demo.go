package main

import (
	"fmt"

	"github.com/chazu/interlace/pkg/geom"
	"github.com/chazu/interlace/pkg/lattice"
	"github.com/chazu/interlace/pkg/scene"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// referenceDims is the 4x2x3 lattice used by both demos.
var referenceDims = lattice.Dims{N: 4, M: 2, P: 3}

// demoScene builds a named scene directly, without a script.
func demoScene(name string) (*scene.Scene, error) {
	s := scene.New()
	switch name {
	case "celtic":
		knot := &scene.Node{
			ID:   scene.NewNodeID("knot/celtic"),
			Kind: scene.NodeKnot,
			Name: "celtic",
			Data: scene.KnotData{Lattice: referenceDims, Caps: true},
		}
		s.AddNode(knot)
		shift := v3.Vec{X: 12}
		turned := &scene.Node{
			ID:       scene.NewNodeID("place/celtic/turned"),
			Kind:     scene.NodeTransform,
			Children: []scene.NodeID{knot.ID},
			Data:     scene.TransformData{Translation: &shift, Rotation: geom.RZ()},
		}
		s.AddNode(turned)
		s.AddRoot(knot.ID)
		s.AddRoot(turned.ID)

	case "mirror":
		for _, o := range []struct {
			name       string
			start, dir v3.Vec
		}{
			{"mirror", v3.Vec{X: 3, Y: 1, Z: 2}, v3.Vec{X: 1, Y: 1, Z: 1}},
			{"mirror-down", v3.Vec{X: 3, Y: 1, Z: 2}, v3.Vec{X: 1, Y: -1, Z: 1}},
			{"mirror-high", v3.Vec{X: 3, Y: 3, Z: 2}, v3.Vec{X: 1, Y: 1, Z: 1}},
			{"mirror-high-down", v3.Vec{X: 3, Y: 3, Z: 2}, v3.Vec{X: 1, Y: -1, Z: 1}},
		} {
			orbit := &scene.Node{
				ID:   scene.NewNodeID("orbit/" + o.name),
				Kind: scene.NodeOrbit,
				Name: o.name,
				Data: scene.OrbitData{Lattice: referenceDims, Start: o.start, Direction: o.dir},
			}
			s.AddNode(orbit)
			s.AddRoot(orbit.ID)
		}

	default:
		return nil, fmt.Errorf("unknown demo %q, expected celtic or mirror", name)
	}
	return s, nil
}
