package lattice

import "iter"

// Crossings yields every interior point (i, j, k) in
// [1,2N-1]x[1,2M-1]x[1,2P-1] that satisfies IsCrossing, in lexicographic
// order.
func Crossings(d Dims) (iter.Seq[Point], error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return func(yield func(Point) bool) {
		for i := 1; i < 2*d.N; i++ {
			for j := 1; j < 2*d.M; j++ {
				for k := 1; k < 2*d.P; k++ {
					if !IsCrossing(i, j, k) {
						continue
					}
					if !yield(Point{I: i, J: j, K: k}) {
						return
					}
				}
			}
		}
	}, nil
}
