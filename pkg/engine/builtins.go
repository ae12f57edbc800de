package engine

import (
	"fmt"

	"github.com/chazu/interlace/pkg/geom"
	"github.com/chazu/interlace/pkg/lattice"
	"github.com/chazu/interlace/pkg/scene"
	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/samber/lo"
)

// builder populates a Scene while a script runs. Anonymous node IDs are
// numbered per evaluation so the same source always yields the same IDs.
type builder struct {
	s    *scene.Scene
	anon int
}

func (b *builder) nextPath(prefix string) string {
	b.anon++
	return fmt.Sprintf("%s/_anon_%d", prefix, b.anon)
}

// addNamed adds a user-named node, rejecting duplicate names.
func (b *builder) addNamed(kind scene.NodeKind, name string, children []scene.NodeID, data scene.NodeData) (zygo.Sexp, error) {
	if name == "" {
		return zygo.SexpNull, fmt.Errorf("%s: name must not be empty", kind)
	}
	if b.s.Lookup(name) != nil {
		return zygo.SexpNull, fmt.Errorf("%s: name %q is already defined", kind, name)
	}
	id := scene.NewNodeID(kind.String() + "/" + name)
	b.s.AddNode(&scene.Node{ID: id, Kind: kind, Name: name, Children: children, Data: data})
	return &sexpNodeRef{id: id, name: name}, nil
}

// patternName reads the leading name argument shared by the pattern forms.
func patternName(builtin string, pa kwArgs) (string, error) {
	if len(pa.positional) < 1 {
		return "", fmt.Errorf("%s requires a name argument", builtin)
	}
	name, err := toString(pa.positional[0])
	if err != nil {
		return "", fmt.Errorf("%s: name: %w", builtin, err)
	}
	return name, nil
}

// requireLattice reads the mandatory :lattice keyword.
func requireLattice(builtin string, pa kwArgs) (lattice.Dims, error) {
	v, ok := pa.kw["lattice"]
	if !ok {
		return lattice.Dims{}, fmt.Errorf("%s requires :lattice", builtin)
	}
	d, err := toLattice(v)
	if err != nil {
		return lattice.Dims{}, fmt.Errorf("%s: lattice: %w", builtin, err)
	}
	return d, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs all Interlace DSL builtins into a zygomys
// environment. The builtins populate s during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, s *scene.Scene) {
	b := &builder{s: s}

	// -----------------------------------------------------------------------
	// (lattice 4 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("lattice", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("lattice requires exactly 3 arguments, got %d", len(args))
		}
		var dims [3]int
		for i, a := range args {
			n, err := toInt(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("lattice: %s: %w", lattice.Axes[i], err)
			}
			dims[i] = n
		}
		return &sexpLattice{dims: lattice.Dims{N: dims[0], M: dims[1], P: dims[2]}}, nil
	})

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		var c [3]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %s: %w", lattice.Axes[i], err)
			}
			c[i] = f
		}
		return &sexpVec3{vec: v3.Vec{X: c[0], Y: c[1], Z: c[2]}}, nil
	})

	// -----------------------------------------------------------------------
	// (defaults :step 0.5 :max-steps 100000 :spacing 1 :tube-radius 0.1)
	// -----------------------------------------------------------------------
	env.AddFunction("defaults", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.check("defaults", "step", "max-steps", "spacing", "tube-radius"); err != nil {
			return zygo.SexpNull, err
		}
		for _, f := range []struct {
			kw  string
			dst *float64
		}{
			{"step", &s.Defaults.Step},
			{"spacing", &s.Defaults.Spacing},
			{"tube-radius", &s.Defaults.TubeRadius},
		} {
			v, ok := pa.kw[f.kw]
			if !ok {
				continue
			}
			x, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("defaults: %s: %w", f.kw, err)
			}
			if x <= 0 {
				return zygo.SexpNull, fmt.Errorf("defaults: %s must be positive, got %g", f.kw, x)
			}
			*f.dst = x
		}
		if v, ok := pa.kw["max-steps"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("defaults: max-steps: %w", err)
			}
			if n <= 0 {
				return zygo.SexpNull, fmt.Errorf("defaults: max-steps must be positive, got %d", n)
			}
			s.Defaults.MaxSteps = n
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (knot "celtic" :lattice (lattice 4 2 3) :caps true)
	// -----------------------------------------------------------------------
	env.AddFunction("knot", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.check("knot", "lattice", "caps"); err != nil {
			return zygo.SexpNull, err
		}
		knotName, err := patternName("knot", pa)
		if err != nil {
			return zygo.SexpNull, err
		}
		kd := scene.KnotData{Caps: true}
		if kd.Lattice, err = requireLattice("knot", pa); err != nil {
			return zygo.SexpNull, err
		}
		if v, ok := pa.kw["caps"]; ok {
			if kd.Caps, err = toBool(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("knot: caps: %w", err)
			}
		}
		return b.addNamed(scene.NodeKnot, knotName, nil, kd)
	})

	// -----------------------------------------------------------------------
	// (orbit "loop" :lattice L :start (vec3 3 1 2) :direction (vec3 1 1 1)
	//        :step 0.5 :max-steps 100000)
	// -----------------------------------------------------------------------
	env.AddFunction("orbit", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.check("orbit", "lattice", "start", "direction", "step", "max-steps"); err != nil {
			return zygo.SexpNull, err
		}
		orbitName, err := patternName("orbit", pa)
		if err != nil {
			return zygo.SexpNull, err
		}
		od := scene.OrbitData{Direction: v3.Vec{X: 1, Y: 1, Z: 1}}
		if od.Lattice, err = requireLattice("orbit", pa); err != nil {
			return zygo.SexpNull, err
		}
		// The box centre is always a valid start.
		od.Start = v3.Vec{X: float64(od.Lattice.N), Y: float64(od.Lattice.M), Z: float64(od.Lattice.P)}

		if v, ok := pa.kw["start"]; ok {
			if od.Start, err = toVec3(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("orbit: start: %w", err)
			}
		}
		if v, ok := pa.kw["direction"]; ok {
			if od.Direction, err = toVec3(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("orbit: direction: %w", err)
			}
		}
		if v, ok := pa.kw["step"]; ok {
			step, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("orbit: step: %w", err)
			}
			if step <= 0 {
				return zygo.SexpNull, fmt.Errorf("orbit: step must be positive, got %g", step)
			}
			od.Step = lo.ToPtr(step)
		}
		if v, ok := pa.kw["max-steps"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("orbit: max-steps: %w", err)
			}
			if n <= 0 {
				return zygo.SexpNull, fmt.Errorf("orbit: max-steps must be positive, got %d", n)
			}
			od.MaxSteps = lo.ToPtr(n)
		}
		return b.addNamed(scene.NodeOrbit, orbitName, nil, od)
	})

	// -----------------------------------------------------------------------
	// (grid "frame" :lattice L :spacing 0.5)
	// -----------------------------------------------------------------------
	env.AddFunction("grid", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.check("grid", "lattice", "spacing"); err != nil {
			return zygo.SexpNull, err
		}
		gridName, err := patternName("grid", pa)
		if err != nil {
			return zygo.SexpNull, err
		}
		var gd scene.GridData
		if gd.Lattice, err = requireLattice("grid", pa); err != nil {
			return zygo.SexpNull, err
		}
		if v, ok := pa.kw["spacing"]; ok {
			if gd.Spacing, err = toFloat64(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("grid: spacing: %w", err)
			}
		}
		return b.addNamed(scene.NodeGrid, gridName, nil, gd)
	})

	// -----------------------------------------------------------------------
	// (cell "sample" :subdivisions 4)
	// -----------------------------------------------------------------------
	env.AddFunction("cell", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.check("cell", "subdivisions"); err != nil {
			return zygo.SexpNull, err
		}
		cellName, err := patternName("cell", pa)
		if err != nil {
			return zygo.SexpNull, err
		}
		cd := scene.CellData{Subdivisions: 2}
		if v, ok := pa.kw["subdivisions"]; ok {
			if cd.Subdivisions, err = toInt(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("cell: subdivisions: %w", err)
			}
		}
		return b.addNamed(scene.NodeCell, cellName, nil, cd)
	})

	// -----------------------------------------------------------------------
	// (ref "celtic")
	// -----------------------------------------------------------------------
	env.AddFunction("ref", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("ref requires a name argument")
		}
		refName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("ref: name: %w", err)
		}
		n := s.Lookup(refName)
		if n == nil {
			return zygo.SexpNull, fmt.Errorf("ref: no node named %q", refName)
		}
		return &sexpNodeRef{id: n.ID, name: refName}, nil
	})

	// -----------------------------------------------------------------------
	// (place (ref "celtic") :at (vec3 10 0 0) :turn :rz)
	// (place k :turn (list :rx :rz))
	// -----------------------------------------------------------------------
	env.AddFunction("place", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.check("place", "at", "turn"); err != nil {
			return zygo.SexpNull, err
		}
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("place requires exactly one node reference")
		}
		childID, err := toNodeRef(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("place: %w", err)
		}

		td := scene.TransformData{Rotation: geom.Identity()}
		if v, ok := pa.kw["at"]; ok {
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place: at: %w", err)
			}
			td.Translation = &vec
		}
		if v, ok := pa.kw["turn"]; ok {
			if td.Rotation, err = toRotation(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("place: turn: %w", err)
			}
		}

		prefix := "place"
		if child := s.Get(childID); child != nil {
			prefix += "/" + child.DisplayName()
		}
		id := scene.NewNodeID(b.nextPath(prefix))
		s.AddNode(&scene.Node{
			ID:       id,
			Kind:     scene.NodeTransform,
			Children: []scene.NodeID{childID},
			Data:     td,
		})
		return &sexpNodeRef{id: id}, nil
	})

	// -----------------------------------------------------------------------
	// (group "all" (place ...) (ref "loop") ...)
	// -----------------------------------------------------------------------
	env.AddFunction("group", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("group requires a name argument")
		}
		groupName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("group: name: %w", err)
		}

		children := make([]scene.NodeID, 0, len(args)-1)
		for i := 1; i < len(args); i++ {
			id, err := toNodeRef(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("group: child %d: %w", i, err)
			}
			children = append(children, id)
		}
		return b.addNamed(scene.NodeGroup, groupName, children, scene.GroupData{})
	})
}
