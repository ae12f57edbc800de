// Package mesh accumulates line-art geometry and serializes it as OBJ
// vertex (v) and line (l) records.
//
// Every insertion appends fresh vertices; nothing is shared between
// insertions, so indices referenced by a line always point at vertices
// appended by the same call. Use Weld to intern coincident vertices
// afterwards.
package mesh

import (
	"github.com/chazu/interlace/pkg/geom"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// LineMesh is an append-only list of vertices plus lines indexing them.
// Line indices are 1-based, as in OBJ.
type LineMesh struct {
	Name     string   `json:"name"`
	Vertices []v3.Vec `json:"vertices"`
	Lines    [][]int  `json:"lines"`
}

// New returns an empty mesh with the given name.
func New(name string) *LineMesh {
	return &LineMesh{Name: name}
}

// VertexCount returns the number of vertices.
func (m *LineMesh) VertexCount() int {
	return len(m.Vertices)
}

// LineCount returns the number of line records.
func (m *LineMesh) LineCount() int {
	return len(m.Lines)
}

// IsEmpty returns true if the mesh holds no vertices.
func (m *LineMesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// AddSegments appends two vertices and one two-index line per segment.
func (m *LineMesh) AddSegments(segs []geom.Segment) {
	start := len(m.Vertices)
	for i, s := range segs {
		m.Vertices = append(m.Vertices, s.A, s.B)
		m.Lines = append(m.Lines, []int{start + 2*i + 1, start + 2*i + 2})
	}
}

// AddPolyline appends one vertex per point and a single line that repeats
// the first index to close the curve. Empty polylines are ignored.
func (m *LineMesh) AddPolyline(p geom.Polyline) {
	if len(p) == 0 {
		return
	}
	start := len(m.Vertices)
	indices := make([]int, 0, len(p)+1)
	for i := range p {
		indices = append(indices, start+i+1)
	}
	indices = append(indices, indices[0])

	m.Vertices = append(m.Vertices, p...)
	m.Lines = append(m.Lines, indices)
}

// AddPoints appends bare vertices with no line records.
func (m *LineMesh) AddPoints(points []v3.Vec) {
	m.Vertices = append(m.Vertices, points...)
}

// Append copies other onto the end of m, shifting its indices past the
// vertices already present.
func (m *LineMesh) Append(other *LineMesh) {
	offset := len(m.Vertices)
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, line := range other.Lines {
		shifted := make([]int, len(line))
		for i, idx := range line {
			shifted[i] = idx + offset
		}
		m.Lines = append(m.Lines, shifted)
	}
}

// Segments expands every line into its consecutive vertex pairs.
func (m *LineMesh) Segments() []geom.Segment {
	var segs []geom.Segment
	for _, line := range m.Lines {
		for i := 0; i+1 < len(line); i++ {
			segs = append(segs, geom.Segment{
				A: m.Vertices[line[i]-1],
				B: m.Vertices[line[i+1]-1],
			})
		}
	}
	return segs
}

// Bounds returns the componentwise minimum and maximum of all vertices.
// ok is false for an empty mesh.
func (m *LineMesh) Bounds() (lo, hi v3.Vec, ok bool) {
	if len(m.Vertices) == 0 {
		return lo, hi, false
	}
	lo, hi = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		lo = v3.Vec{X: min(lo.X, v.X), Y: min(lo.Y, v.Y), Z: min(lo.Z, v.Z)}
		hi = v3.Vec{X: max(hi.X, v.X), Y: max(hi.Y, v.Y), Z: max(hi.Z, v.Z)}
	}
	return lo, hi, true
}
