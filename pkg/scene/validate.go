package scene

import (
	"errors"
	"fmt"

	"github.com/chazu/interlace/pkg/lattice"
	"github.com/chazu/interlace/pkg/mirror"
	"github.com/chazu/interlace/pkg/motif"
)

// ValidationSeverity indicates whether a validation finding blocks assembly
// or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks assembly
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// Validation codes.
const (
	CodeCycle            = "CYCLE"
	CodeMissingReference = "MISSING_REFERENCE"
	CodeMissingRoot      = "MISSING_ROOT"
	CodeInvalidLattice   = "INVALID_LATTICE"
	CodeInvalidOrbit     = "INVALID_ORBIT"
	CodeDegenerateOrbit  = "DEGENERATE_ORBIT"
	CodeInvalidGrid      = "INVALID_GRID"
	CodeInvalidCell      = "INVALID_CELL"
	CodeEmptyKnot        = "EMPTY_KNOT"
	CodeEmptyGroup       = "EMPTY_GROUP"
)

// ValidationError describes a single validation finding. Err, when set, is
// the underlying generator error, so errors.Is sees through to sentinels
// such as lattice.ErrInvalidConfiguration.
type ValidationError struct {
	Code     string
	NodeID   NodeID // which node has the problem (zero if scene-level)
	Message  string
	Severity ValidationSeverity
	Err      error
}

func (e ValidationError) Error() string {
	if e.NodeID.IsZero() {
		return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s: node %s: %s", e.Severity, e.Code, e.NodeID.Short(), e.Message)
}

func (e ValidationError) Unwrap() error { return e.Err }

// ValidationResult bundles errors (blocking) and warnings (advisory).
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// OK reports whether there are no blocking errors.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Err joins all blocking errors, or returns nil.
func (r ValidationResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// Validate runs structural and geometric checks. It is read-only and
// never mutates the scene.
func Validate(s *Scene) ValidationResult {
	var findings []ValidationError
	findings = append(findings, validateDAG(s)...)
	findings = append(findings, validateReferences(s)...)
	findings = append(findings, validatePatterns(s)...)

	var result ValidationResult
	for _, f := range findings {
		if f.Severity == SeverityWarning {
			result.Warnings = append(result.Warnings, f)
		} else {
			result.Errors = append(result.Errors, f)
		}
	}
	return result
}

// validateDAG checks for cycles using DFS with 3-color marking.
func validateDAG(s *Scene) []ValidationError {
	const (
		white = iota
		gray
		black
	)

	color := make(map[NodeID]int)
	var errs []ValidationError

	var visit func(id NodeID) bool
	visit = func(id NodeID) bool {
		switch color[id] {
		case black:
			return false
		case gray:
			errs = append(errs, ValidationError{
				Code:     CodeCycle,
				NodeID:   id,
				Message:  fmt.Sprintf("node %s is part of a cycle", id.Short()),
				Severity: SeverityError,
			})
			return true
		}

		color[id] = gray
		node, ok := s.Nodes[id]
		if !ok {
			// Dangling reference; handled by validateReferences.
			color[id] = black
			return false
		}
		for _, childID := range node.Children {
			if visit(childID) {
				return true
			}
		}
		color[id] = black
		return false
	}

	for _, id := range s.Order {
		if color[id] == white && visit(id) {
			break
		}
	}
	return errs
}

// validateReferences checks that every child and root points at a node.
func validateReferences(s *Scene) []ValidationError {
	var errs []ValidationError
	for _, id := range s.Order {
		n := s.Nodes[id]
		for _, c := range n.Children {
			if _, ok := s.Nodes[c]; !ok {
				errs = append(errs, ValidationError{
					Code:     CodeMissingReference,
					NodeID:   id,
					Message:  fmt.Sprintf("child %s does not exist", c.Short()),
					Severity: SeverityError,
				})
			}
		}
		if n.Kind == NodeGroup && len(n.Children) == 0 {
			errs = append(errs, ValidationError{
				Code:     CodeEmptyGroup,
				NodeID:   id,
				Message:  fmt.Sprintf("group %q has no children", n.Name),
				Severity: SeverityWarning,
			})
		}
	}
	for _, r := range s.Roots {
		if _, ok := s.Nodes[r]; !ok {
			errs = append(errs, ValidationError{
				Code:     CodeMissingRoot,
				NodeID:   r,
				Message:  "root does not exist",
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validatePatterns checks the generator parameters of every pattern node
// up front, so assembly never produces partial output.
func validatePatterns(s *Scene) []ValidationError {
	var out []ValidationError
	for _, id := range s.Order {
		n := s.Nodes[id]
		fail := func(code string, err error) {
			out = append(out, ValidationError{
				Code:     code,
				NodeID:   id,
				Message:  fmt.Sprintf("%s %q: %v", n.Kind, n.DisplayName(), err),
				Severity: SeverityError,
				Err:      err,
			})
		}

		switch d := n.Data.(type) {
		case KnotData:
			count, err := motif.CrossingCount(d.Lattice)
			if err != nil {
				fail(CodeInvalidLattice, err)
				continue
			}
			if count == 0 {
				out = append(out, ValidationError{
					Code:     CodeEmptyKnot,
					NodeID:   id,
					Message:  fmt.Sprintf("knot %q: lattice %s has no crossings", n.DisplayName(), d.Lattice),
					Severity: SeverityWarning,
				})
			}
		case OrbitData:
			cfg := OrbitConfig(d, s.Defaults)
			if err := cfg.Validate(); err != nil {
				switch {
				case errors.Is(err, mirror.ErrDegenerateOrbit):
					fail(CodeDegenerateOrbit, err)
				case d.Lattice.Validate() != nil:
					fail(CodeInvalidLattice, err)
				default:
					fail(CodeInvalidOrbit, err)
				}
			}
		case GridData:
			if err := d.Lattice.Validate(); err != nil {
				fail(CodeInvalidLattice, err)
			} else if GridSpacing(d, s.Defaults) <= 0 {
				fail(CodeInvalidGrid, fmt.Errorf("%w: spacing %g must be positive",
					lattice.ErrInvalidConfiguration, GridSpacing(d, s.Defaults)))
			}
		case CellData:
			if d.Subdivisions <= 0 || d.Subdivisions%2 != 0 {
				fail(CodeInvalidCell, fmt.Errorf("%w: subdivisions %d must be positive and even",
					lattice.ErrInvalidConfiguration, d.Subdivisions))
			}
		}
	}
	return out
}

// OrbitConfig fills omitted orbit parameters from the scene defaults.
// Explicit values pass through unchanged, so an explicit zero step fails
// validation.
func OrbitConfig(d OrbitData, def Defaults) mirror.Config {
	cfg := mirror.Config{
		Dims:      d.Lattice,
		Start:     d.Start,
		Direction: d.Direction,
		Step:      def.Step,
		MaxSteps:  def.MaxSteps,
	}
	if d.Step != nil {
		cfg.Step = *d.Step
	}
	if d.MaxSteps != nil {
		cfg.MaxSteps = *d.MaxSteps
	}
	return cfg
}

// GridSpacing returns the grid spacing, falling back to the scene default.
func GridSpacing(d GridData, def Defaults) float64 {
	if d.Spacing == 0 {
		return def.Spacing
	}
	return d.Spacing
}
