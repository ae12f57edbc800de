// Package geom holds the small geometric vocabulary shared by the pattern
// generators, the mesh writer and the assembler: straight segments, closed
// polylines, plus the axis-aligned rotations of the cube.
package geom
