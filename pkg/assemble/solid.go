package assemble

import (
	"errors"
	"fmt"

	"github.com/chazu/interlace/pkg/kernel"
	"github.com/chazu/interlace/pkg/mesh"
	"github.com/samber/lo"
)

// ErrEmptyMesh is returned when there is nothing to thicken.
var ErrEmptyMesh = errors.New("assemble: mesh has no vertices")

// Solidify sweeps every line segment of lm into a tube of the given radius
// and places a ball at every distinct vertex so joints and isolated points
// stay round. The union is tessellated by k.
func Solidify(lm *mesh.LineMesh, k kernel.Kernel, radius float64) (*kernel.Mesh, error) {
	if lm == nil || lm.IsEmpty() {
		return nil, ErrEmptyMesh
	}
	if radius <= 0 {
		return nil, fmt.Errorf("assemble: tube radius %g must be positive", radius)
	}

	var parts []kernel.Solid
	for _, seg := range lm.Segments() {
		if seg.A == seg.B {
			continue
		}
		tube, err := k.Tube(seg.A, seg.B, radius)
		if err != nil {
			return nil, fmt.Errorf("assemble: tube %s: %w", seg, err)
		}
		parts = append(parts, tube)
	}
	for _, v := range lo.Uniq(lm.Vertices) {
		ball, err := k.Ball(v, radius)
		if err != nil {
			return nil, fmt.Errorf("assemble: ball: %w", err)
		}
		parts = append(parts, ball)
	}

	out, err := k.ToMesh(k.Union(parts...))
	if err != nil {
		return nil, fmt.Errorf("assemble: ToMesh failed for %q: %w", lm.Name, err)
	}
	out.PartName = lm.Name
	return out, nil
}
