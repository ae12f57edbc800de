package motif

import (
	"errors"
	"testing"

	"github.com/chazu/interlace/pkg/geom"
	"github.com/chazu/interlace/pkg/lattice"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

func TestCrossTileCorners(t *testing.T) {
	for _, c := range []v3.Vec{{X: 1, Y: 1, Z: 2}, {X: 3, Y: 1, Z: 4}, {X: 0.5, Y: 2, Z: 3}} {
		tile := CrossTile(c)
		corners := map[v3.Vec]int{}
		for _, s := range tile {
			corners[s.A]++
			corners[s.B]++
			// Each diagonal passes through the center.
			mid := v3.Vec{X: (s.A.X + s.B.X) / 2, Y: (s.A.Y + s.B.Y) / 2, Z: (s.A.Z + s.B.Z) / 2}
			if mid != c {
				t.Errorf("diagonal %s midpoint %v, want %v", s, mid, c)
			}
		}
		if len(corners) != 8 {
			t.Fatalf("tile at %v touches %d distinct corners, want 8", c, len(corners))
		}
		for _, sx := range []float64{-0.5, 0.5} {
			for _, sy := range []float64{-0.5, 0.5} {
				for _, sz := range []float64{-0.5, 0.5} {
					k := v3.Vec{X: c.X + sx, Y: c.Y + sy, Z: c.Z + sz}
					if corners[k] != 1 {
						t.Errorf("corner %v used %d times, want 1", k, corners[k])
					}
				}
			}
		}
	}
}

func TestCrossTileOrder(t *testing.T) {
	tile := CrossTile(v3.Vec{})
	want := [4]geom.Segment{
		{A: v3.Vec{X: -0.5, Y: -0.5, Z: -0.5}, B: v3.Vec{X: 0.5, Y: 0.5, Z: 0.5}},
		{A: v3.Vec{X: 0.5, Y: -0.5, Z: -0.5}, B: v3.Vec{X: -0.5, Y: 0.5, Z: 0.5}},
		{A: v3.Vec{X: 0.5, Y: 0.5, Z: -0.5}, B: v3.Vec{X: -0.5, Y: -0.5, Z: 0.5}},
		{A: v3.Vec{X: -0.5, Y: 0.5, Z: -0.5}, B: v3.Vec{X: 0.5, Y: -0.5, Z: 0.5}},
	}
	if tile != want {
		t.Errorf("CrossTile(origin) = %v, want %v", tile, want)
	}
}

func TestFaceCapTileFlat(t *testing.T) {
	fc := lattice.FaceCap{
		Boundary: lattice.Point{I: 1, J: 1, K: 0},
		Axis:     lattice.AxisZ,
		Center:   v3.Vec{X: 1, Y: 1, Z: 0.5},
	}
	tile := FaceCapTile(fc)
	want := [2]geom.Segment{
		{A: v3.Vec{X: 0.5, Y: 0.5, Z: 0.5}, B: v3.Vec{X: 1.5, Y: 1.5, Z: 0.5}},
		{A: v3.Vec{X: 1.5, Y: 0.5, Z: 0.5}, B: v3.Vec{X: 0.5, Y: 1.5, Z: 0.5}},
	}
	if tile != want {
		t.Errorf("FaceCapTile = %v, want %v", tile, want)
	}
}

func TestFaceCapTileStaysInPlane(t *testing.T) {
	d := lattice.Dims{N: 4, M: 2, P: 3}
	caps, err := lattice.FaceCaps(d)
	if err != nil {
		t.Fatalf("FaceCaps: %v", err)
	}
	for fc := range caps {
		ax := int(fc.Axis)
		want := geom.Component(fc.Center, ax)
		for _, s := range FaceCapTile(fc) {
			if geom.Component(s.A, ax) != want || geom.Component(s.B, ax) != want {
				t.Errorf("cap segment %s leaves the %s = %g plane", s, fc.Axis, want)
			}
		}
	}
}

func TestEdgeCapTile(t *testing.T) {
	ec := lattice.EdgeCap{
		Boundary: lattice.Point{I: 0, J: 4, K: 3},
		Free:     lattice.AxisZ,
		Center:   v3.Vec{X: 0.5, Y: 3.5, Z: 3},
	}
	got := EdgeCapTile(ec)
	want := geom.Segment{A: v3.Vec{X: 0.5, Y: 3.5, Z: 2.5}, B: v3.Vec{X: 0.5, Y: 3.5, Z: 3.5}}
	if got != want {
		t.Errorf("EdgeCapTile = %s, want %s", got, want)
	}
}

func TestKnotCounts(t *testing.T) {
	d := lattice.Dims{N: 4, M: 2, P: 3}
	crossings, err := CrossingCount(d)
	if err != nil {
		t.Fatalf("CrossingCount: %v", err)
	}
	plain, err := Knot(d, Options{})
	if err != nil {
		t.Fatalf("Knot: %v", err)
	}
	if len(plain) != 4*crossings {
		t.Errorf("plain knot has %d segments, want %d", len(plain), 4*crossings)
	}

	faces, _ := lattice.FaceCaps(d)
	nFaces := 0
	for range faces {
		nFaces++
	}
	capped, err := Knot(d, Options{Caps: true})
	if err != nil {
		t.Fatalf("Knot(caps): %v", err)
	}
	want := 4*crossings + 2*nFaces + 4*(d.N+d.M+d.P)
	if len(capped) != want {
		t.Errorf("capped knot has %d segments, want %d", len(capped), want)
	}
	for i := range plain {
		if plain[i] != capped[i] {
			t.Fatalf("capped knot diverges from plain knot at segment %d", i)
		}
	}
}

func TestKnotInvalidDims(t *testing.T) {
	if _, err := Knot(lattice.Dims{N: 1, M: 0, P: 1}, Options{Caps: true}); !errors.Is(err, lattice.ErrInvalidConfiguration) {
		t.Errorf("Knot error = %v, want ErrInvalidConfiguration", err)
	}
}

func TestKnotDeterministic(t *testing.T) {
	d := lattice.Dims{N: 2, M: 2, P: 2}
	a, _ := Knot(d, Options{Caps: true})
	b, _ := Knot(d, Options{Caps: true})
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("segment %d differs: %s vs %s", i, a[i], b[i])
		}
	}
}
