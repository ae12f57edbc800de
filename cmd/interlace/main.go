// Command interlace evaluates a pattern script and writes the result as an
// OBJ line file, with optional PNG preview and tube-solid export.
//
//	interlace [-o out.obj] [-weld] [-png preview.png]
//	          [-solid solid.obj -radius r -cells n] [-demo celtic|mirror] [script]
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/chazu/interlace/pkg/assemble"
	"github.com/chazu/interlace/pkg/engine"
	"github.com/chazu/interlace/pkg/kernel/sdfx"
	"github.com/chazu/interlace/pkg/preview"
	"github.com/chazu/interlace/pkg/scene"
)

type options struct {
	out    string
	weld   bool
	png    string
	solid  string
	radius float64
	cells  int
	demo   string
	script string
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("interlace: ")

	var opts options
	flag.StringVar(&opts.out, "o", "interlace.obj", "OBJ line file to write")
	flag.BoolVar(&opts.weld, "weld", false, "merge coincident vertices before writing")
	flag.StringVar(&opts.png, "png", "", "also write an isometric PNG preview")
	flag.StringVar(&opts.solid, "solid", "", "also write a tube solid as a triangle OBJ")
	flag.Float64Var(&opts.radius, "radius", 0, "tube radius for -solid (default: scene tube radius)")
	flag.IntVar(&opts.cells, "cells", sdfx.DefaultMeshCells, "marching cubes resolution for -solid")
	flag.StringVar(&opts.demo, "demo", "", "build a built-in scene instead of a script: celtic or mirror")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: interlace [flags] [script]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	switch flag.NArg() {
	case 0:
	case 1:
		opts.script = flag.Arg(0)
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		log.Fatal(err)
	}
}

func run(opts options) error {
	s, err := loadScene(opts)
	if err != nil {
		return err
	}

	res := scene.Validate(s)
	for _, w := range res.Warnings {
		log.Printf("warning: %v", w)
	}
	meshes, err := assemble.Assemble(s)
	if err != nil {
		return err
	}

	merged := assemble.Merge("interlace", meshes)
	if opts.weld {
		merged = merged.Weld()
	}
	if err := merged.Save(opts.out); err != nil {
		return err
	}
	log.Printf("wrote %s: %d vertices, %d lines", opts.out, merged.VertexCount(), merged.LineCount())

	if opts.png != "" {
		img, err := preview.Render(meshes, preview.DefaultOptions())
		if err != nil {
			return err
		}
		if err := preview.SavePNG(opts.png, img); err != nil {
			return err
		}
		log.Printf("wrote %s", opts.png)
	}

	if opts.solid != "" {
		radius := opts.radius
		if radius == 0 {
			radius = s.Defaults.TubeRadius
		}
		m, err := assemble.Solidify(merged, sdfx.NewWithResolution(opts.cells), radius)
		if err != nil {
			return err
		}
		if err := m.Save(opts.solid); err != nil {
			return err
		}
		log.Printf("wrote %s: %d triangles", opts.solid, m.TriangleCount())
	}
	return nil
}

// loadScene builds the scene from -demo or by evaluating the script.
func loadScene(opts options) (*scene.Scene, error) {
	switch {
	case opts.demo != "" && opts.script != "":
		return nil, errors.New("-demo and a script are mutually exclusive")
	case opts.demo != "":
		return demoScene(opts.demo)
	case opts.script == "":
		return nil, errors.New("no script given (try -demo celtic)")
	}

	source, err := os.ReadFile(opts.script)
	if err != nil {
		return nil, err
	}
	s, evalErrs, err := engine.NewEngine().Evaluate(string(source))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.script, err)
	}
	if len(evalErrs) > 0 {
		errs := make([]error, len(evalErrs))
		for i, e := range evalErrs {
			errs[i] = fmt.Errorf("%s: %w", opts.script, e)
		}
		return nil, errors.Join(errs...)
	}
	return s, nil
}
