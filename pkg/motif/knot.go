package motif

import (
	"github.com/chazu/interlace/pkg/geom"
	"github.com/chazu/interlace/pkg/lattice"
)

// Options selects which parts of the interlace are emitted.
type Options struct {
	// Caps closes the pattern at the box surface with face and edge caps.
	Caps bool
}

// Knot builds the interlace for d: every crossing tile in lattice order,
// followed by face caps and edge caps when opts.Caps is set.
func Knot(d lattice.Dims, opts Options) ([]geom.Segment, error) {
	crossings, err := lattice.Crossings(d)
	if err != nil {
		return nil, err
	}

	var segs []geom.Segment
	for p := range crossings {
		tile := CrossTile(p.Vec())
		segs = append(segs, tile[:]...)
	}
	if !opts.Caps {
		return segs, nil
	}

	faces, err := lattice.FaceCaps(d)
	if err != nil {
		return nil, err
	}
	for fc := range faces {
		tile := FaceCapTile(fc)
		segs = append(segs, tile[:]...)
	}

	edges, err := lattice.EdgeCaps(d)
	if err != nil {
		return nil, err
	}
	for ec := range edges {
		segs = append(segs, EdgeCapTile(ec))
	}
	return segs, nil
}

// CrossingCount returns how many crossings d holds.
func CrossingCount(d lattice.Dims) (int, error) {
	crossings, err := lattice.Crossings(d)
	if err != nil {
		return 0, err
	}
	n := 0
	for range crossings {
		n++
	}
	return n, nil
}
