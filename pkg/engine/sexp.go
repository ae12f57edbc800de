package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/chazu/interlace/pkg/geom"
	"github.com/chazu/interlace/pkg/lattice"
	"github.com/chazu/interlace/pkg/scene"
	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpLattice wraps lattice dimensions returned by `lattice`.
type sexpLattice struct {
	dims lattice.Dims
}

func (l *sexpLattice) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(lattice %d %d %d)", l.dims.N, l.dims.M, l.dims.P)
}
func (l *sexpLattice) Type() *zygo.RegisteredType { return nil }

// sexpNodeRef wraps a scene.NodeID so it can be passed between builtins.
type sexpNodeRef struct {
	id   scene.NodeID
	name string // human-readable name for error messages
}

func (n *sexpNodeRef) SexpString(ps *zygo.PrintState) string {
	if n.name != "" {
		return fmt.Sprintf("(ref %q)", n.name)
	}
	return fmt.Sprintf("(ref %s)", n.id.Short())
}
func (n *sexpNodeRef) Type() *zygo.RegisteredType { return nil }

// sexpVec3 wraps a v3.Vec.
type sexpVec3 struct {
	vec v3.Vec
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return "(vec3 " + geom.FormatVec(v.vec) + ")"
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	return strings.CutPrefix(str.S, kwPrefix)
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// A keyword consumes the following argument as its value.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			// Trailing keyword with no value.
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// check reports keywords that the builtin does not understand, so typos
// such as :stpe fail loudly instead of being ignored.
func (a kwArgs) check(builtin string, allowed ...string) error {
	for k := range a.kw {
		known := false
		for _, name := range allowed {
			if k == name {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("%s: unknown keyword :%s", builtin, k)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

func describe(s zygo.Sexp) string {
	return fmt.Sprintf("%T (%s)", s, s.SexpString(nil))
}

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %s", describe(s))
}

// toInt extracts an integer. Floats are accepted when they are whole.
func toInt(s zygo.Sexp) (int, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return int(v.Val), nil
	case *zygo.SexpFloat:
		if v.Val == math.Trunc(v.Val) {
			return int(v.Val), nil
		}
		return 0, fmt.Errorf("expected integer, got %g", v.Val)
	}
	return 0, fmt.Errorf("expected integer, got %s", describe(s))
}

// toBool extracts a boolean.
func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected true or false, got %s", describe(s))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %s", describe(s))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_rz) and plain strings ("rz").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %s", describe(s))
	}
	return strings.TrimPrefix(str.S, kwPrefix), nil
}

// toRotation converts a keyword, or a list of keywords, to a cube
// rotation. Listed turns are applied first to last.
func toRotation(s zygo.Sexp) (geom.CubeRotation, error) {
	if _, ok := s.(*zygo.SexpStr); ok {
		name, err := toKeywordString(s)
		if err != nil {
			return geom.CubeRotation{}, err
		}
		return geom.RotationByName(name)
	}
	items, err := sexpListToSlice(s)
	if err != nil {
		return geom.CubeRotation{}, fmt.Errorf("expected turn keyword or list of turns: %w", err)
	}
	r := geom.Identity()
	for _, item := range items {
		step, err := toRotation(item)
		if err != nil {
			return geom.CubeRotation{}, err
		}
		r = step.Mul(r)
	}
	return r, nil
}

// toNodeRef extracts a NodeID from a sexpNodeRef.
func toNodeRef(s zygo.Sexp) (scene.NodeID, error) {
	if ref, ok := s.(*sexpNodeRef); ok {
		return ref.id, nil
	}
	return scene.ZeroID, fmt.Errorf("expected node reference, got %s", describe(s))
}

// toVec3 extracts a vector from a sexpVec3 or a three-element list.
func toVec3(s zygo.Sexp) (v3.Vec, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	items, err := sexpListToSlice(s)
	if err != nil || len(items) != 3 {
		return v3.Vec{}, fmt.Errorf("expected vec3, got %s", describe(s))
	}
	var c [3]float64
	for i, item := range items {
		if c[i], err = toFloat64(item); err != nil {
			return v3.Vec{}, fmt.Errorf("vec3 component %d: %w", i, err)
		}
	}
	return v3.Vec{X: c[0], Y: c[1], Z: c[2]}, nil
}

// toLattice extracts dimensions from a sexpLattice.
func toLattice(s zygo.Sexp) (lattice.Dims, error) {
	if l, ok := s.(*sexpLattice); ok {
		return l.dims, nil
	}
	return lattice.Dims{}, fmt.Errorf("expected lattice, got %s", describe(s))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}
