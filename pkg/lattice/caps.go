package lattice

import (
	"iter"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// FaceCap is a would-be crossing whose tile is cut off by one face of the
// box. Boundary holds the unclamped site, with the fixed axis at 0 or its
// full size; Center pulls that coordinate half a unit inside the box.
type FaceCap struct {
	Boundary Point
	Axis     Axis
	Center   v3.Vec
}

// EdgeCap is a unit run along one of the twelve box edges. Boundary has both
// fixed axes at 0 or full size and the odd free index; Center clamps the
// fixed axes half a unit inward.
type EdgeCap struct {
	Boundary Point
	Free     Axis
	Center   v3.Vec
}

// clampInward maps a boundary coordinate (0 or size) half a unit inside.
func clampInward(v, size int) float64 {
	if v == 0 {
		return 0.5
	}
	return float64(size) - 0.5
}

// FaceCaps yields the caps on all six faces, ordered X-min, X-max, Y-min,
// Y-max, Z-min, Z-max. On each face the free indices run lexicographically
// in ascending axis order, and the parity rule is evaluated with the
// unclamped boundary value.
func FaceCaps(d Dims) (iter.Seq[FaceCap], error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return func(yield func(FaceCap) bool) {
		for _, axis := range Axes {
			size := d.Size(axis)
			u, v := axis.others()
			for _, b := range [2]int{0, size} {
				for a := 1; a < d.Size(u); a++ {
					for c := 1; c < d.Size(v); c++ {
						p := Point{}.With(axis, b).With(u, a).With(v, c)
						if !IsCrossing(p.I, p.J, p.K) {
							continue
						}
						fc := FaceCap{
							Boundary: p,
							Axis:     axis,
							Center:   clampPoint(p, axis, clampInward(b, size)),
						}
						if !yield(fc) {
							return
						}
					}
				}
			}
		}
	}, nil
}

// EdgeCaps yields one cap per odd free index along each of the twelve box
// edges, ordered by free axis, then by the (min, max) combination of the two
// fixed axes, then by free index.
func EdgeCaps(d Dims) (iter.Seq[EdgeCap], error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return func(yield func(EdgeCap) bool) {
		for _, free := range Axes {
			u, v := free.others()
			su, sv := d.Size(u), d.Size(v)
			for _, bu := range [2]int{0, su} {
				for _, bv := range [2]int{0, sv} {
					for f := 1; f < d.Size(free); f += 2 {
						p := Point{}.With(u, bu).With(v, bv).With(free, f)
						c := p.Vec()
						c = setAxis(c, u, clampInward(bu, su))
						c = setAxis(c, v, clampInward(bv, sv))
						if !yield(EdgeCap{Boundary: p, Free: free, Center: c}) {
							return
						}
					}
				}
			}
		}
	}, nil
}

func clampPoint(p Point, axis Axis, x float64) v3.Vec {
	return setAxis(p.Vec(), axis, x)
}

func setAxis(v v3.Vec, a Axis, x float64) v3.Vec {
	switch a {
	case AxisX:
		v.X = x
	case AxisY:
		v.Y = x
	case AxisZ:
		v.Z = x
	}
	return v
}
