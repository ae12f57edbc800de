package mirror

import (
	"github.com/deadsy/sdfx/sdf"
	"github.com/go-gl/mathgl/mgl64"
)

// aabb is the box the trace bounces in.
type aabb struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

func newAABB(b sdf.Box3) aabb {
	return aabb{Min: toVec(b.Min), Max: toVec(b.Max)}
}

// ContainsPoint checks if a point is inside the box, walls included.
func (a aabb) ContainsPoint(p mgl64.Vec3) bool {
	return p.X() >= a.Min.X() && p.X() <= a.Max.X() &&
		p.Y() >= a.Min.Y() && p.Y() <= a.Max.Y() &&
		p.Z() >= a.Min.Z() && p.Z() <= a.Max.Z()
}

// Shrink pulls every wall inward by amount.
func (a aabb) Shrink(amount float64) aabb {
	d := mgl64.Vec3{amount, amount, amount}
	return aabb{Min: a.Min.Add(d), Max: a.Max.Sub(d)}
}

// Clamp moves p onto the nearest point of the box.
func (a aabb) Clamp(p mgl64.Vec3) mgl64.Vec3 {
	for i := range p {
		p[i] = mgl64.Clamp(p[i], a.Min[i], a.Max[i])
	}
	return p
}

// Bounce flips each direction component whose coordinate sits exactly on a
// wall.
func (a aabb) Bounce(p, dir mgl64.Vec3) mgl64.Vec3 {
	for i := range dir {
		if p[i] == a.Min[i] || p[i] == a.Max[i] {
			dir[i] = -dir[i]
		}
	}
	return dir
}
