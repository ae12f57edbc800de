package geom

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

var axisLabels = [3]string{"x", "y", "z"}

// CubeRotation is one of the rotations mapping the axis-aligned cube onto
// itself. Component i of a rotated vector is Orientations[i] times component
// Axes[i] of the input.
type CubeRotation struct {
	Axes         [3]int
	Orientations [3]int
}

// Identity returns the rotation that leaves every vector unchanged.
func Identity() CubeRotation {
	return CubeRotation{Axes: [3]int{0, 1, 2}, Orientations: [3]int{1, 1, 1}}
}

// RX is a quarter turn about the X axis.
func RX() CubeRotation {
	return CubeRotation{Axes: [3]int{0, 2, 1}, Orientations: [3]int{1, -1, 1}}
}

// RY is a quarter turn about the Y axis.
func RY() CubeRotation {
	return CubeRotation{Axes: [3]int{2, 1, 0}, Orientations: [3]int{1, 1, -1}}
}

// RZ is a quarter turn about the Z axis.
func RZ() CubeRotation {
	return CubeRotation{Axes: [3]int{1, 0, 2}, Orientations: [3]int{-1, 1, 1}}
}

// RotationByName maps "identity", "rx", "ry" and "rz" to their rotations.
func RotationByName(name string) (CubeRotation, error) {
	switch name {
	case "identity", "i":
		return Identity(), nil
	case "rx":
		return RX(), nil
	case "ry":
		return RY(), nil
	case "rz":
		return RZ(), nil
	}
	return CubeRotation{}, fmt.Errorf("unknown rotation %q, expected identity, rx, ry or rz", name)
}

// Mul composes two rotations so that r.Mul(o).Apply(v) == r.Apply(o.Apply(v)).
func (r CubeRotation) Mul(o CubeRotation) CubeRotation {
	var out CubeRotation
	for i := 0; i < 3; i++ {
		ax := r.Axes[i]
		out.Axes[i] = o.Axes[ax]
		out.Orientations[i] = r.Orientations[i] * o.Orientations[ax]
	}
	return out
}

// Apply rotates v.
func (r CubeRotation) Apply(v v3.Vec) v3.Vec {
	return v3.Vec{
		X: float64(r.Orientations[0]) * Component(v, r.Axes[0]),
		Y: float64(r.Orientations[1]) * Component(v, r.Axes[1]),
		Z: float64(r.Orientations[2]) * Component(v, r.Axes[2]),
	}
}

// IsIdentity reports whether r leaves every vector unchanged.
func (r CubeRotation) IsIdentity() bool {
	return r == Identity()
}

// String renders the rotation as the images of the three axes, e.g. [-y x z].
func (r CubeRotation) String() string {
	var labels [3]string
	for i := 0; i < 3; i++ {
		sign := ""
		if r.Orientations[i] < 0 {
			sign = "-"
		}
		labels[i] = sign + axisLabels[r.Axes[i]]
	}
	return fmt.Sprintf("[%s %s %s]", labels[0], labels[1], labels[2])
}

// Transform is a cube rotation followed by a translation.
type Transform struct {
	Rotation    CubeRotation
	Translation v3.Vec
}

// IdentityTransform returns the transform that leaves every point in place.
func IdentityTransform() Transform {
	return Transform{Rotation: Identity()}
}

// Apply rotates then translates v.
func (t Transform) Apply(v v3.Vec) v3.Vec {
	return t.Rotation.Apply(v).Add(t.Translation)
}

// ApplySegment transforms both endpoints of s.
func (t Transform) ApplySegment(s Segment) Segment {
	return Segment{A: t.Apply(s.A), B: t.Apply(s.B)}
}
