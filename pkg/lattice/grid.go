package lattice

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// GridPoints returns every lattice vertex of the box, i in [0,2N] and so on,
// scaled by spacing. The X index varies slowest.
func GridPoints(d Dims, spacing float64) ([]v3.Vec, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if spacing <= 0 {
		return nil, fmt.Errorf("%w: grid spacing %g must be positive", ErrInvalidConfiguration, spacing)
	}
	points := make([]v3.Vec, 0, (2*d.N+1)*(2*d.M+1)*(2*d.P+1))
	for i := 0; i <= 2*d.N; i++ {
		for j := 0; j <= 2*d.M; j++ {
			for k := 0; k <= 2*d.P; k++ {
				points = append(points, v3.Vec{
					X: float64(i) * spacing,
					Y: float64(j) * spacing,
					Z: float64(k) * spacing,
				})
			}
		}
	}
	return points, nil
}

// CellSamples returns a dense grid over the unit cell [-0.5,0.5]^3 with
// subdivisions steps per axis. Subdivisions must be positive and even so
// the grid is symmetric about the origin.
func CellSamples(subdivisions int) ([]v3.Vec, error) {
	if subdivisions <= 0 || subdivisions%2 != 0 {
		return nil, fmt.Errorf("%w: cell subdivisions %d must be positive and even", ErrInvalidConfiguration, subdivisions)
	}
	half := subdivisions / 2
	scale := float64(subdivisions)
	n := subdivisions + 1
	points := make([]v3.Vec, 0, n*n*n)
	for i := -half; i <= half; i++ {
		for j := -half; j <= half; j++ {
			for k := -half; k <= half; k++ {
				points = append(points, v3.Vec{
					X: float64(i) / scale,
					Y: float64(j) / scale,
					Z: float64(k) / scale,
				})
			}
		}
	}
	return points, nil
}
