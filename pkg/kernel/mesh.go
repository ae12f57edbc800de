package kernel

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/chazu/interlace/pkg/mesh"
)

// Mesh is a triangle mesh.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	PartName string    `json:"partName"` // which scene node this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// WriteOBJ writes v records followed by one f record per triangle.
func (m *Mesh) WriteOBJ(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i := 0; i+2 < len(m.Vertices); i += 3 {
		fmt.Fprintf(bw, "v %s %s %s\n",
			mesh.FormatFloat(float64(m.Vertices[i])),
			mesh.FormatFloat(float64(m.Vertices[i+1])),
			mesh.FormatFloat(float64(m.Vertices[i+2])))
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		fmt.Fprintf(bw, "f %d %d %d\n", m.Indices[i]+1, m.Indices[i+1]+1, m.Indices[i+2]+1)
	}
	if err := bw.Flush(); err != nil {
		return &mesh.OutputError{Op: "write", Err: err}
	}
	return nil
}

// Save writes the mesh as OBJ to path.
func (m *Mesh) Save(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &mesh.OutputError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &mesh.OutputError{Op: "close", Path: path, Err: cerr}
		}
	}()
	if err := m.WriteOBJ(f); err != nil {
		return &mesh.OutputError{Op: "write", Path: path, Err: err}
	}
	return nil
}
