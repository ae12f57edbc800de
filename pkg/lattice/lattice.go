// Package lattice enumerates the integer sites of a rectangular half-unit
// lattice: interior crossings selected by a three-way parity rule, and the
// boundary caps on the six faces and twelve edges of the enclosing box.
//
// A lattice of Dims (N, M, P) spans the box [0,2N]x[0,2M]x[0,2P]. Every
// enumerator is pure, lazy and restartable: ranging over the returned
// sequence twice yields the same points in the same order.
package lattice

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ErrInvalidConfiguration is returned for lattice dimensions, step sizes
// and other generator parameters that cannot produce well-formed geometry.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Axis names one of the three coordinate axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Axes lists the coordinate axes in ascending order.
var Axes = [3]Axis{AxisX, AxisY, AxisZ}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "unknown"
	}
}

// others returns the two axes other than a, in ascending order.
func (a Axis) others() (Axis, Axis) {
	switch a {
	case AxisX:
		return AxisY, AxisZ
	case AxisY:
		return AxisX, AxisZ
	default:
		return AxisX, AxisY
	}
}

// Dims is the number of lattice nodes along each axis.
type Dims struct {
	N, M, P int
}

func (d Dims) String() string {
	return fmt.Sprintf("%dx%dx%d", d.N, d.M, d.P)
}

// Validate reports ErrInvalidConfiguration unless every dimension is positive.
func (d Dims) Validate() error {
	if d.N <= 0 || d.M <= 0 || d.P <= 0 {
		return fmt.Errorf("%w: lattice dimensions %s must be positive", ErrInvalidConfiguration, d)
	}
	return nil
}

// Size returns the extent of the box along axis a, which is twice the node
// count on that axis.
func (d Dims) Size(a Axis) int {
	switch a {
	case AxisX:
		return 2 * d.N
	case AxisY:
		return 2 * d.M
	case AxisZ:
		return 2 * d.P
	}
	panic(fmt.Sprintf("lattice: invalid axis %d", a))
}

// Bounds returns the axis-aligned box [0,2N]x[0,2M]x[0,2P].
func Bounds(d Dims) (sdf.Box3, error) {
	if err := d.Validate(); err != nil {
		return sdf.Box3{}, err
	}
	return sdf.Box3{
		Min: v3.Vec{},
		Max: v3.Vec{X: float64(2 * d.N), Y: float64(2 * d.M), Z: float64(2 * d.P)},
	}, nil
}

// Point is an integer lattice site.
type Point struct {
	I, J, K int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.I, p.J, p.K)
}

// Get returns the index of p along axis a.
func (p Point) Get(a Axis) int {
	switch a {
	case AxisX:
		return p.I
	case AxisY:
		return p.J
	case AxisZ:
		return p.K
	}
	panic(fmt.Sprintf("lattice: invalid axis %d", a))
}

// With returns p with the index along axis a replaced by v.
func (p Point) With(a Axis, v int) Point {
	switch a {
	case AxisX:
		p.I = v
	case AxisY:
		p.J = v
	case AxisZ:
		p.K = v
	default:
		panic(fmt.Sprintf("lattice: invalid axis %d", a))
	}
	return p
}

// Vec converts p to real coordinates.
func (p Point) Vec() v3.Vec {
	return v3.Vec{X: float64(p.I), Y: float64(p.J), Z: float64(p.K)}
}

// IsCrossing reports whether (i, j, k) hosts a crossing: i+k and j+k are
// odd while i+j is even. No two crossings are adjacent in any coordinate
// plane, so their tiles interlock without overlapping.
func IsCrossing(i, j, k int) bool {
	xzOdd := mod2(i+k) == 1
	yzOdd := mod2(j+k) == 1
	xyEven := mod2(i+j) == 0
	return xzOdd && yzOdd && xyEven
}

// mod2 is a non-negative remainder.
func mod2(n int) int {
	return ((n % 2) + 2) % 2
}
