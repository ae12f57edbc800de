// Package kernel defines the abstract solid kernel used to thicken line
// art into printable geometry. Implementations (sdfx) sweep segments into
// tubes, union them, and tessellate the result into a triangle mesh.
package kernel

import v3 "github.com/deadsy/sdfx/vec/v3"

// Solid is an opaque handle to a kernel solid.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract solid kernel interface.
type Kernel interface {
	// Primitives
	Tube(a, b v3.Vec, radius float64) (Solid, error)
	Ball(center v3.Vec, radius float64) (Solid, error)

	// Boolean operations
	Union(solids ...Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
