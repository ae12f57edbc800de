// Package motif expands lattice sites into line segments: the four space
// diagonals of a crossing, the flat cross of a face cap, and the straight
// run of an edge cap.
package motif

import (
	"github.com/chazu/interlace/pkg/geom"
	"github.com/chazu/interlace/pkg/lattice"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// half is the offset from a motif center to the corners of its unit cell.
const half = 0.5

// crossCorners lists the sign patterns of the four space diagonals of the
// unit cube. The order is part of the output format.
var crossCorners = [4][2]v3.Vec{
	{{X: -1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: 1}},
	{{X: 1, Y: -1, Z: -1}, {X: -1, Y: 1, Z: 1}},
	{{X: 1, Y: 1, Z: -1}, {X: -1, Y: -1, Z: 1}},
	{{X: -1, Y: 1, Z: -1}, {X: 1, Y: -1, Z: 1}},
}

func corner(c, sign v3.Vec) v3.Vec {
	return v3.Vec{X: c.X + half*sign.X, Y: c.Y + half*sign.Y, Z: c.Z + half*sign.Z}
}

// CrossTile returns the four space diagonals of the unit cube centered at c.
func CrossTile(c v3.Vec) [4]geom.Segment {
	var segs [4]geom.Segment
	for i, d := range crossCorners {
		segs[i] = geom.Segment{A: corner(c, d[0]), B: corner(c, d[1])}
	}
	return segs
}

// FaceCapTile returns the two diagonals of the unit square centered at the
// cap, lying in the plane of the cap's fixed axis.
func FaceCapTile(fc lattice.FaceCap) [2]geom.Segment {
	u, v := freeAxes(fc.Axis)
	c := fc.Center
	at := func(su, sv float64) v3.Vec {
		p := geom.WithComponent(c, u, geom.Component(c, u)+half*su)
		return geom.WithComponent(p, v, geom.Component(c, v)+half*sv)
	}
	return [2]geom.Segment{
		{A: at(-1, -1), B: at(1, 1)},
		{A: at(1, -1), B: at(-1, 1)},
	}
}

// EdgeCapTile returns the unit segment along the cap's free axis.
func EdgeCapTile(ec lattice.EdgeCap) geom.Segment {
	f := int(ec.Free)
	c := ec.Center
	return geom.Segment{
		A: geom.WithComponent(c, f, geom.Component(c, f)-half),
		B: geom.WithComponent(c, f, geom.Component(c, f)+half),
	}
}

func freeAxes(fixed lattice.Axis) (int, int) {
	switch fixed {
	case lattice.AxisX:
		return 1, 2
	case lattice.AxisY:
		return 0, 2
	default:
		return 0, 1
	}
}
