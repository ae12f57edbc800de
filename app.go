package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/chazu/interlace/pkg/assemble"
	"github.com/chazu/interlace/pkg/engine"
	"github.com/chazu/interlace/pkg/kernel"
	"github.com/chazu/interlace/pkg/kernel/sdfx"
	"github.com/chazu/interlace/pkg/mesh"
	"github.com/chazu/interlace/pkg/scene"
	"github.com/samber/lo"
)

// colorPalette is a default palette used to assign distinct colors to parts.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App is the Wails backend. It exposes methods to the frontend via bindings.
type App struct {
	ctx    context.Context
	engine *engine.Engine
	kernel kernel.Kernel
}

// PartData is the JSON-serializable line geometry of one pattern, ready for
// a line-segments buffer: Positions holds 3 floats per vertex and Indices
// holds 0-based vertex pairs. Point clouds have no indices.
type PartData struct {
	Name      string    `json:"name"`
	Positions []float32 `json:"positions"`
	Indices   []uint32  `json:"indices"`
	Points    bool      `json:"points"`
	Color     string    `json:"color"`
}

// MeshData is the JSON-serializable triangle mesh format sent to the
// frontend for solid previews.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	PartName string    `json:"partName"`
	Color    string    `json:"color"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result returned to the frontend.
type EvalResult struct {
	Parts    []PartData      `json:"parts"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// SolidResult carries the thickened meshes for the solid preview.
type SolidResult struct {
	Meshes []MeshData      `json:"meshes"`
	Errors []EvalErrorData `json:"errors"`
}

// NewApp creates a new App with an engine and the sdfx kernel.
func NewApp() *App {
	return &App{
		engine: engine.NewEngine(),
		kernel: sdfx.New(),
	}
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// build evaluates source and assembles it. Script and validation problems
// come back as errs; warnings are advisory.
func (a *App) build(source string) (s *scene.Scene, meshes []*mesh.LineMesh, errs, warnings []EvalErrorData) {
	s, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		return nil, nil, []EvalErrorData{{Message: err.Error()}}, nil
	}
	if len(evalErrs) > 0 {
		return nil, nil, lo.Map(evalErrs, func(e engine.EvalError, _ int) EvalErrorData {
			return EvalErrorData{Line: e.Line, Col: e.Col, Message: e.Message}
		}), nil
	}

	res := scene.Validate(s)
	warnings = lo.Map(res.Warnings, func(w scene.ValidationError, _ int) EvalErrorData {
		return EvalErrorData{Message: w.Error()}
	})
	if !res.OK() {
		return s, nil, lo.Map(res.Errors, func(e scene.ValidationError, _ int) EvalErrorData {
			return EvalErrorData{Message: e.Error()}
		}), warnings
	}

	meshes, err = assemble.Assemble(s)
	if err != nil {
		log.Printf("Assemble error: %v", err)
		return s, nil, []EvalErrorData{{Message: "assembly failed: " + err.Error()}}, warnings
	}
	return s, meshes, nil, warnings
}

// Evaluate takes Lisp source and returns line geometry + errors.
// This is the primary binding called by the frontend editor.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Parts:    []PartData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	_, meshes, errs, warnings := a.build(source)
	result.Errors = append(result.Errors, errs...)
	result.Warnings = append(result.Warnings, warnings...)
	if len(errs) > 0 {
		return result
	}

	for i, m := range meshes {
		result.Parts = append(result.Parts, toPartData(m, colorPalette[i%len(colorPalette)]))
	}
	return result
}

// toPartData flattens a line mesh into buffer-ready arrays.
func toPartData(m *mesh.LineMesh, color string) PartData {
	p := PartData{
		Name:      m.Name,
		Positions: make([]float32, 0, 3*len(m.Vertices)),
		Indices:   []uint32{},
		Points:    len(m.Lines) == 0,
		Color:     color,
	}
	for _, v := range m.Vertices {
		p.Positions = append(p.Positions, float32(v.X), float32(v.Y), float32(v.Z))
	}
	for _, line := range m.Lines {
		for i := 0; i+1 < len(line); i++ {
			p.Indices = append(p.Indices, uint32(line[i]-1), uint32(line[i+1]-1))
		}
	}
	return p
}

// Solidify thickens every part into tubes of the scene's tube radius and
// returns triangle meshes for the solid preview.
func (a *App) Solidify(source string) SolidResult {
	result := SolidResult{Meshes: []MeshData{}, Errors: []EvalErrorData{}}

	s, meshes, errs, _ := a.build(source)
	if len(errs) > 0 {
		result.Errors = errs
		return result
	}

	for i, lm := range meshes {
		m, err := assemble.Solidify(lm, a.kernel, s.Defaults.TubeRadius)
		if err != nil {
			log.Printf("Solidify error: %v", err)
			result.Errors = append(result.Errors, EvalErrorData{Message: fmt.Sprintf("part %q: %v", lm.Name, err)})
			continue
		}
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			PartName: m.PartName,
			Color:    colorPalette[i%len(colorPalette)],
		})
	}
	return result
}

// Export evaluates source and writes every part, merged, as an OBJ line
// file at path.
func (a *App) Export(source, path string) error {
	_, meshes, errs, _ := a.build(source)
	if len(errs) > 0 {
		return errors.Join(lo.Map(errs, func(e EvalErrorData, _ int) error {
			return errors.New(e.Message)
		})...)
	}
	if err := assemble.Merge("interlace", meshes).Save(path); err != nil {
		log.Printf("Export error: %v", err)
		return err
	}
	return nil
}
