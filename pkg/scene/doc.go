// Package scene defines the scene graph produced by evaluating a pattern
// script. The scene is an immutable DAG of pattern nodes (knots, orbits,
// grids, cell samples) arranged under transforms and groups.
package scene
