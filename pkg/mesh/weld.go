package mesh

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/samber/lo"
)

// Weld returns a copy of m in which exactly coincident vertices are merged.
// Vertices keep the order of their first occurrence; lines are remapped.
// Lines that collapse to a single repeated index are dropped.
func (m *LineMesh) Weld() *LineMesh {
	index := make(map[v3.Vec]int, len(m.Vertices))
	remap := make([]int, len(m.Vertices))
	out := &LineMesh{Name: m.Name}
	for i, v := range m.Vertices {
		idx, ok := index[v]
		if !ok {
			out.Vertices = append(out.Vertices, v)
			idx = len(out.Vertices)
			index[v] = idx
		}
		remap[i] = idx
	}

	for _, line := range m.Lines {
		mapped := lo.Map(line, func(idx int, _ int) int { return remap[idx-1] })
		if len(lo.Uniq(mapped)) < 2 {
			continue
		}
		out.Lines = append(out.Lines, mapped)
	}
	return out
}
