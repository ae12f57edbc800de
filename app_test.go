package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/chazu/interlace/pkg/mesh"
)

// TestE2ECelticExample exercises the full pipeline: Lisp source → engine →
// scene → assemble → parts. This is the same path that the Wails Evaluate
// binding takes, but without the Wails runtime.
func TestE2ECelticExample(t *testing.T) {
	app := NewApp()

	source, err := os.ReadFile("examples/celtic.lisp")
	if err != nil {
		t.Fatalf("failed to read celtic.lisp: %v", err)
	}

	result := app.Evaluate(string(source))
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}

	// Two placements of the knot plus the lattice frame.
	want := []string{"celtic", "celtic.2", "frame"}
	if len(result.Parts) != len(want) {
		t.Fatalf("expected %d parts, got %d", len(want), len(result.Parts))
	}
	for i, p := range result.Parts {
		if p.Name != want[i] {
			t.Errorf("part %d: name = %q, want %q", i, p.Name, want[i])
		}
		if len(p.Positions) == 0 || len(p.Positions)%3 != 0 {
			t.Errorf("part %q: %d position floats", p.Name, len(p.Positions))
		}
		if p.Color == "" {
			t.Errorf("part %q: no color assigned", p.Name)
		}
	}
	if result.Parts[0].Points || len(result.Parts[0].Indices) == 0 {
		t.Error("knot should be drawn as line segments")
	}
	if !result.Parts[2].Points || len(result.Parts[2].Indices) != 0 {
		t.Error("grid should be drawn as points")
	}
}

// TestE2EMirrorExample checks each of the four reference orbits arrives as
// one closed polyline of 96 segments.
func TestE2EMirrorExample(t *testing.T) {
	app := NewApp()

	source, err := os.ReadFile("examples/mirror.lisp")
	if err != nil {
		t.Fatalf("failed to read mirror.lisp: %v", err)
	}
	result := app.Evaluate(string(source))
	if len(result.Errors) > 0 {
		t.Fatalf("errors: %v", result.Errors)
	}
	if len(result.Parts) != 5 {
		t.Fatalf("expected 5 parts, got %d", len(result.Parts))
	}
	for i, name := range []string{"mirror", "mirror-down", "mirror-high", "mirror-high-down"} {
		loop := result.Parts[i]
		if loop.Name != name {
			t.Errorf("part %d name = %q, want %q", i, loop.Name, name)
		}
		if got := len(loop.Positions) / 3; got != 96 {
			t.Errorf("%s has %d vertices, want 96", name, got)
		}
		if got := len(loop.Indices) / 2; got != 96 {
			t.Errorf("%s has %d segments, want 96", name, got)
		}
	}
}

// TestE2EEmptySource ensures the pipeline handles empty input gracefully.
func TestE2EEmptySource(t *testing.T) {
	app := NewApp()
	result := app.Evaluate("")

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors for empty source: %v", result.Errors)
	}
	if len(result.Parts) != 0 {
		t.Errorf("expected 0 parts for empty source, got %d", len(result.Parts))
	}
}

// TestE2ESyntaxError ensures eval errors are reported, not fatal errors.
func TestE2ESyntaxError(t *testing.T) {
	app := NewApp()
	result := app.Evaluate(`(knot "test"`)

	if len(result.Errors) == 0 {
		t.Fatal("expected eval errors for syntax error")
	}
	if len(result.Parts) != 0 {
		t.Errorf("expected 0 parts on error, got %d", len(result.Parts))
	}
}

func TestExportWritesOBJ(t *testing.T) {
	app := NewApp()
	path := filepath.Join(t.TempDir(), "out.obj")

	if err := app.Export(`(knot "k" :lattice (lattice 1 1 2) :caps false)`, path); err != nil {
		t.Fatalf("Export: %v", err)
	}
	m, err := mesh.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// The 1x1x2 lattice has a single crossing: four segments.
	if m.LineCount() != 4 || m.VertexCount() != 8 {
		t.Errorf("exported %d lines and %d vertices, want 4 and 8", m.LineCount(), m.VertexCount())
	}
}

func TestExportReportsErrors(t *testing.T) {
	app := NewApp()
	dir := t.TempDir()

	if err := app.Export(`(knot "k"`, filepath.Join(dir, "a.obj")); err == nil {
		t.Error("expected error for bad source")
	}
	err := app.Export(`(knot "k" :lattice (lattice 1 1 2))`, filepath.Join(dir, "missing", "b.obj"))
	if !errors.Is(err, mesh.ErrOutputFailure) {
		t.Errorf("err = %v, want ErrOutputFailure", err)
	}
}
