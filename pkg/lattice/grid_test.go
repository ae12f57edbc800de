package lattice

import (
	"errors"
	"testing"
)

func TestGridPoints(t *testing.T) {
	pts, err := GridPoints(Dims{1, 2, 1}, 0.5)
	if err != nil {
		t.Fatalf("GridPoints: %v", err)
	}
	if len(pts) != 3*5*3 {
		t.Fatalf("got %d points, want %d", len(pts), 3*5*3)
	}
	last := pts[len(pts)-1]
	if last.X != 1 || last.Y != 2 || last.Z != 1 {
		t.Errorf("last point = %v, want (1, 2, 1)", last)
	}
	if _, err := GridPoints(Dims{1, 1, 1}, 0); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("zero spacing error = %v", err)
	}
}

func TestCellSamples(t *testing.T) {
	pts, err := CellSamples(4)
	if err != nil {
		t.Fatalf("CellSamples: %v", err)
	}
	if len(pts) != 125 {
		t.Fatalf("got %d samples, want 125", len(pts))
	}
	if pts[0].X != -0.5 || pts[len(pts)-1].Z != 0.5 {
		t.Errorf("samples span %v..%v, want [-0.5, 0.5]", pts[0], pts[len(pts)-1])
	}
	for _, s := range []int{0, -2, 3} {
		if _, err := CellSamples(s); !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("CellSamples(%d) error = %v", s, err)
		}
	}
}
