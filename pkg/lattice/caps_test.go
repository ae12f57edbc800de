package lattice

import (
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

func component(v v3.Vec, a Axis) float64 {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	}
	return v.Z
}

func TestFaceCapsOnBoundary(t *testing.T) {
	for _, d := range []Dims{{1, 1, 2}, {4, 2, 3}, {2, 3, 1}} {
		seq, err := FaceCaps(d)
		if err != nil {
			t.Fatalf("FaceCaps(%s): %v", d, err)
		}
		perAxis := map[Axis]int{}
		for fc := range seq {
			perAxis[fc.Axis]++
			size := d.Size(fc.Axis)
			b := fc.Boundary.Get(fc.Axis)
			if b != 0 && b != size {
				t.Errorf("%s: cap %v not on an %s face", d, fc.Boundary, fc.Axis)
				continue
			}
			c := component(fc.Center, fc.Axis)
			if b == 0 && c != 0.5 {
				t.Errorf("%s: min-face cap center %v, want 0.5 along %s", d, fc.Center, fc.Axis)
			}
			if b == size && c != float64(size)-0.5 {
				t.Errorf("%s: max-face cap center %v, want %d-0.5 along %s", d, fc.Center, size, fc.Axis)
			}
			if !IsCrossing(fc.Boundary.I, fc.Boundary.J, fc.Boundary.K) {
				t.Errorf("%s: boundary site %v fails the parity rule", d, fc.Boundary)
			}
			for _, a := range Axes {
				if a == fc.Axis {
					continue
				}
				v := fc.Boundary.Get(a)
				if v < 1 || v > d.Size(a)-1 {
					t.Errorf("%s: free index %d of %v out of range", d, v, fc.Boundary)
				}
				if component(fc.Center, a) != float64(v) {
					t.Errorf("%s: center %v disagrees with site %v on %s", d, fc.Center, fc.Boundary, a)
				}
			}
		}
		t.Logf("%s: face caps per axis %v", d, perAxis)
	}
}

func TestFaceCapsExample(t *testing.T) {
	// For (1,1,2) an X face at i=0 needs k odd and j even; j only ranges
	// over {1}, so no X caps. The Z faces at k=0 and k=4 need i, j odd.
	seq, _ := FaceCaps(Dims{1, 1, 2})
	var got []FaceCap
	for fc := range seq {
		got = append(got, fc)
	}
	want := []FaceCap{
		{Boundary: Point{1, 1, 0}, Axis: AxisZ, Center: v3.Vec{X: 1, Y: 1, Z: 0.5}},
		{Boundary: Point{1, 1, 4}, Axis: AxisZ, Center: v3.Vec{X: 1, Y: 1, Z: 3.5}},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d caps %v, want %v", len(got), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cap %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestEdgeCapsOnEdges(t *testing.T) {
	d := Dims{4, 2, 3}
	seq, err := EdgeCaps(d)
	if err != nil {
		t.Fatalf("EdgeCaps: %v", err)
	}
	count := 0
	for ec := range seq {
		count++
		for _, a := range Axes {
			v := ec.Boundary.Get(a)
			c := component(ec.Center, a)
			if a == ec.Free {
				if v%2 != 1 {
					t.Errorf("free index %d of %v is even", v, ec.Boundary)
				}
				if c != float64(v) {
					t.Errorf("center %v disagrees on free axis", ec.Center)
				}
				continue
			}
			size := d.Size(a)
			switch v {
			case 0:
				if c != 0.5 {
					t.Errorf("center %v not 0.5 inside min %s face", ec.Center, a)
				}
			case size:
				if c != float64(size)-0.5 {
					t.Errorf("center %v not 0.5 inside max %s face", ec.Center, a)
				}
			default:
				t.Errorf("%v is not on an edge", ec.Boundary)
			}
		}
	}
	// Four edges per axis with N, M, P odd runs each.
	want := 4*d.N + 4*d.M + 4*d.P
	if count != want {
		t.Errorf("got %d edge caps, want %d", count, want)
	}
}

func TestEdgeCapsOrder(t *testing.T) {
	seq, _ := EdgeCaps(Dims{1, 1, 1})
	var got []Point
	for ec := range seq {
		got = append(got, ec.Boundary)
	}
	want := []Point{
		{1, 0, 0}, {1, 0, 2}, {1, 2, 0}, {1, 2, 2},
		{0, 1, 0}, {0, 1, 2}, {2, 1, 0}, {2, 1, 2},
		{0, 0, 1}, {0, 2, 1}, {2, 0, 1}, {2, 2, 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d caps, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("edge cap %d = %v, want %v", i, got[i], want[i])
		}
	}
}
