// Package mirror traces a point bouncing inside the lattice box. The point
// moves a fixed step along a signed unit direction; whenever it lands
// exactly on a wall the matching direction component flips. The trace ends
// when position and direction both return to their starting values.
package mirror

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/chazu/interlace/pkg/geom"
	"github.com/chazu/interlace/pkg/lattice"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultStep is the step size scenes use when none is given.
const DefaultStep = 0.5

// DefaultMaxSteps bounds the simulation when Config.MaxSteps is zero.
const DefaultMaxSteps = 1 << 20

var (
	// ErrDegenerateOrbit is returned when the start direction is zero.
	ErrDegenerateOrbit = errors.New("degenerate orbit: zero direction")
	// ErrCycleNotClosed is returned when the trace does not return to its
	// start state within the step limit.
	ErrCycleNotClosed = errors.New("orbit did not close")
)

// Config describes one trace. Direction components must be -1, 0 or 1 and
// Step must be positive and divide every box size, so that every orbit is
// periodic. A zero MaxSteps means DefaultMaxSteps.
type Config struct {
	Dims      lattice.Dims
	Start     v3.Vec
	Direction v3.Vec
	Step      float64
	MaxSteps  int
}

func (c Config) maxSteps() int {
	if c.MaxSteps == 0 {
		return DefaultMaxSteps
	}
	return c.MaxSteps
}

// Validate checks the periodicity preconditions without running the trace.
func (c Config) Validate() error {
	b, err := lattice.Bounds(c.Dims)
	if err != nil {
		return err
	}
	step := c.Step
	if !(step > 0) || math.IsInf(step, 0) {
		return fmt.Errorf("%w: step size %g must be positive", lattice.ErrInvalidConfiguration, step)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("%w: step limit %d is negative", lattice.ErrInvalidConfiguration, c.MaxSteps)
	}
	for _, a := range lattice.Axes {
		size := float64(c.Dims.Size(a))
		if !isMultiple(size, step) {
			return fmt.Errorf("%w: step size %g does not divide box size %g along %s",
				lattice.ErrInvalidConfiguration, step, size, a)
		}
	}

	dir := toVec(c.Direction)
	if dir == (mgl64.Vec3{}) {
		return ErrDegenerateOrbit
	}
	for i, d := range dir {
		if d != -1 && d != 0 && d != 1 {
			return fmt.Errorf("%w: direction component %s = %g, must be -1, 0 or 1",
				lattice.ErrInvalidConfiguration, lattice.Axis(i), d)
		}
	}

	box := newAABB(b)
	start := toVec(c.Start)
	if !box.ContainsPoint(start) {
		return fmt.Errorf("%w: start %s lies outside the box %s",
			lattice.ErrInvalidConfiguration, geom.FormatVec(c.Start), c.Dims)
	}
	for i, x := range start {
		if !isMultiple(x, step) {
			return fmt.Errorf("%w: start %s coordinate %s is not a multiple of step %g",
				lattice.ErrInvalidConfiguration, geom.FormatVec(c.Start), lattice.Axis(i), step)
		}
	}
	return nil
}

func isMultiple(x, step float64) bool {
	q := x / step
	return q == math.Trunc(q)
}

// Orbit is a closed trace. Points[0] is the (clamped) start position.
type Orbit struct {
	Points []v3.Vec
	// Steps is the number of transitions taken before the start state recurred.
	Steps int
}

// Polyline returns the trace as an implicitly closed polyline.
func (o *Orbit) Polyline() geom.Polyline {
	return geom.Polyline(o.Points)
}

// All yields the orbit points in order.
func (o *Orbit) All() iter.Seq[v3.Vec] {
	return func(yield func(v3.Vec) bool) {
		for _, p := range o.Points {
			if !yield(p) {
				return
			}
		}
	}
}

// Simulate runs the trace to completion. Each emitted point is the current
// position clamped into the box shrunk by one step on every side, so that
// orbit vertices never sit on the outer walls.
func Simulate(cfg Config) (*Orbit, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b, _ := lattice.Bounds(cfg.Dims)
	box := newAABB(b)
	step := cfg.Step
	inner := box.Shrink(step)
	limit := cfg.maxSteps()

	startPos, startDir := toVec(cfg.Start), toVec(cfg.Direction)
	pos, dir := startPos, startDir

	var points []v3.Vec
	for n := 1; n <= limit; n++ {
		points = append(points, fromVec(inner.Clamp(pos)))

		pos = pos.Add(dir.Mul(step))
		dir = box.Bounce(pos, dir)

		if pos == startPos && dir == startDir {
			return &Orbit{Points: points, Steps: n}, nil
		}
	}
	return nil, fmt.Errorf("%w after %d steps from %s heading %s",
		ErrCycleNotClosed, limit, geom.FormatVec(cfg.Start), geom.FormatVec(cfg.Direction))
}

func toVec(v v3.Vec) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromVec(v mgl64.Vec3) v3.Vec {
	return v3.Vec{X: v[0], Y: v[1], Z: v[2]}
}
