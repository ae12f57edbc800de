package mesh

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ErrOutputFailure matches every error produced while writing a mesh.
var ErrOutputFailure = errors.New("mesh output failure")

// OutputError records a failed write, with the operation and path involved.
type OutputError struct {
	Op   string
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("mesh: %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("mesh: %s: %v", e.Op, e.Err)
}

func (e *OutputError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrOutputFailure) hold for every OutputError.
func (e *OutputError) Is(target error) bool { return target == ErrOutputFailure }

// FormatFloat renders a coordinate with the shortest exact representation.
func FormatFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// WriteOBJ writes all vertex records in insertion order, then all line
// records.
func (m *LineMesh) WriteOBJ(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %s %s %s\n", FormatFloat(v.X), FormatFloat(v.Y), FormatFloat(v.Z))
	}
	for _, line := range m.Lines {
		bw.WriteString("l")
		for _, idx := range line {
			bw.WriteByte(' ')
			bw.WriteString(strconv.Itoa(idx))
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return &OutputError{Op: "write", Err: err}
	}
	return nil
}

// Save writes the mesh to path, creating or truncating it.
func (m *LineMesh) Save(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &OutputError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &OutputError{Op: "close", Path: path, Err: cerr}
		}
	}()

	if err := m.WriteOBJ(f); err != nil {
		var oe *OutputError
		if errors.As(err, &oe) {
			oe.Path = path
		}
		return err
	}
	return nil
}

// ReadOBJ parses v and l records. Other record types are skipped, and
// index suffixes such as "3/1" keep only the vertex index.
func ReadOBJ(r io.Reader) (*LineMesh, error) {
	m := &LineMesh{}
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			v, err := parseVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
			}
			m.Vertices = append(m.Vertices, v)
		case "l":
			idx, err := parseIndices(fields[1:], len(m.Vertices))
			if err != nil {
				return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
			}
			m.Lines = append(m.Lines, idx)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading obj: %w", err)
	}
	return m, nil
}

// Load reads an OBJ file from path.
func Load(path string) (*LineMesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening obj %s: %w", path, err)
	}
	defer f.Close()
	m, err := ReadOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("reading obj %s: %w", path, err)
	}
	return m, nil
}

func parseVertex(tokens []string) (v3.Vec, error) {
	if len(tokens) < 3 {
		return v3.Vec{}, fmt.Errorf("vertex needs 3 components, got %d", len(tokens))
	}
	var c [3]float64
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(tokens[i], 64)
		if err != nil {
			return v3.Vec{}, fmt.Errorf("invalid %s coordinate %q", "xyz"[i:i+1], tokens[i])
		}
		c[i] = f
	}
	return v3.Vec{X: c[0], Y: c[1], Z: c[2]}, nil
}

func parseIndices(tokens []string, count int) ([]int, error) {
	if len(tokens) < 2 {
		return nil, fmt.Errorf("line needs at least 2 indices, got %d", len(tokens))
	}
	out := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		head, _, _ := strings.Cut(tok, "/")
		idx, err := strconv.Atoi(head)
		if err != nil {
			return nil, fmt.Errorf("invalid line index %q", tok)
		}
		if idx < 1 || idx > count {
			return nil, fmt.Errorf("line index %d out of range [1, %d]", idx, count)
		}
		out = append(out, idx)
	}
	return out, nil
}
