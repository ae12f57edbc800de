package scene

import (
	"github.com/chazu/interlace/pkg/geom"
	"github.com/chazu/interlace/pkg/lattice"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// KnotData is an interlace over a lattice.
type KnotData struct {
	Lattice lattice.Dims `json:"lattice"`
	Caps    bool         `json:"caps"` // close the pattern at the box surface
}

func (KnotData) nodeData() {}

// OrbitData is a reflection trace inside the lattice box. A nil Step or
// MaxSteps takes the scene default.
type OrbitData struct {
	Lattice   lattice.Dims `json:"lattice"`
	Start     v3.Vec       `json:"start"`
	Direction v3.Vec       `json:"direction"`
	Step      *float64     `json:"step,omitempty"`
	MaxSteps  *int         `json:"max_steps,omitempty"`
}

func (OrbitData) nodeData() {}

// GridData is the point cloud of every lattice vertex.
type GridData struct {
	Lattice lattice.Dims `json:"lattice"`
	Spacing float64      `json:"spacing"`
}

func (GridData) nodeData() {}

// CellData is a dense sampling of the unit cell.
type CellData struct {
	Subdivisions int `json:"subdivisions"`
}

func (CellData) nodeData() {}

// TransformData rotates then translates its children.
// Created by the (place ...) form.
type TransformData struct {
	Translation *v3.Vec           `json:"translation,omitempty"`
	Rotation    geom.CubeRotation `json:"rotation"`
}

func (TransformData) nodeData() {}

// Transform returns the equivalent geom.Transform.
func (td TransformData) Transform() geom.Transform {
	t := geom.Transform{Rotation: td.Rotation}
	if t.Rotation == (geom.CubeRotation{}) {
		t.Rotation = geom.Identity()
	}
	if td.Translation != nil {
		t.Translation = *td.Translation
	}
	return t
}

// GroupData is a logical grouping. Created by the (group ...) form.
type GroupData struct {
	Description string `json:"description,omitempty"`
}

func (GroupData) nodeData() {}
