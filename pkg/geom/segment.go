package geom

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Segment is a straight line primitive between two points.
type Segment struct {
	A v3.Vec `json:"a"`
	B v3.Vec `json:"b"`
}

func (s Segment) String() string {
	return fmt.Sprintf("%s-%s", FormatVec(s.A), FormatVec(s.B))
}

// Reversed returns the segment with its endpoints swapped.
func (s Segment) Reversed() Segment {
	return Segment{A: s.B, B: s.A}
}

// Polyline is an ordered run of points. It is implicitly closed: the last
// point connects back to the first.
type Polyline []v3.Vec

// Segments expands the polyline into its closing segments, including the
// edge from the last point back to the first.
func (p Polyline) Segments() []Segment {
	if len(p) < 2 {
		return nil
	}
	segs := make([]Segment, 0, len(p))
	for i := range p {
		segs = append(segs, Segment{A: p[i], B: p[(i+1)%len(p)]})
	}
	return segs
}

// FormatVec prints a vector as (x, y, z).
func FormatVec(v v3.Vec) string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Component returns the coordinate of v along axis 0 (X), 1 (Y) or 2 (Z).
func Component(v v3.Vec, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	}
	panic(fmt.Sprintf("geom: invalid axis %d", axis))
}

// WithComponent returns v with the coordinate along axis replaced by x.
func WithComponent(v v3.Vec, axis int, x float64) v3.Vec {
	switch axis {
	case 0:
		v.X = x
	case 1:
		v.Y = x
	case 2:
		v.Z = x
	default:
		panic(fmt.Sprintf("geom: invalid axis %d", axis))
	}
	return v
}
