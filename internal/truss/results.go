package truss

import "math"

// forceEps is the classification band: axial forces within it count as
// zero-force members.
const forceEps = 1e-4

// ForceState classifies a bar's axial force.
type ForceState int

const (
	ForceZero ForceState = iota
	ForceTension
	ForceCompression
)

func (f ForceState) String() string {
	switch f {
	case ForceTension:
		return "tension"
	case ForceCompression:
		return "compression"
	default:
		return "zero"
	}
}

// BarForce is the solved axial force of one bar. Positive = tension,
// negative = compression.
type BarForce struct {
	Label string
	Value float64
	State ForceState
}

// Reaction is one solved support reaction: the scalar magnitude along its
// declared direction plus the derived Cartesian components.
type Reaction struct {
	Label     string
	NodeKey   string
	Magnitude float64
	AngleDeg  float64
	Rx        float64
	Ry        float64
}

// Determinacy compares unknowns against equilibrium equations. It is a
// count-based note only, not a structural-stability proof.
type Determinacy int

const (
	Determinate Determinacy = iota
	Indeterminate
	Unstable
)

func (d Determinacy) String() string {
	switch d {
	case Indeterminate:
		return "statically indeterminate (more unknowns than equations)"
	case Unstable:
		return "under-constrained (fewer unknowns than equations)"
	default:
		return "statically determinate"
	}
}

// Result is the interpreted outcome of one computation.
type Result struct {
	BarForces []BarForce
	Reactions []Reaction

	// Verification is the assembly audit log, passed through unmodified
	// for manual cross-checking of the equilibrium matrix.
	Verification []AuditRow

	Rank      int
	Residual  float64
	Equations int
	Unknowns  int
}

// Determinacy classifies the solved system by unknown/equation counts.
func (r *Result) Determinacy() Determinacy {
	switch {
	case r.Unknowns > r.Equations:
		return Indeterminate
	case r.Unknowns < r.Equations:
		return Unstable
	default:
		return Determinate
	}
}

// Classify maps an axial force value to its state using the standard band.
func Classify(v float64) ForceState {
	switch {
	case v > forceEps:
		return ForceTension
	case v < -forceEps:
		return ForceCompression
	default:
		return ForceZero
	}
}

// Interpret splits the solved unknown vector into labeled bar forces and
// reactions. The first NumBars entries follow bar input order; the rest
// follow the reaction scan order.
func Interpret(s *Structure, sys *System, sol *Solution) *Result {
	res := &Result{
		Verification: sys.Audit,
		Rank:         sol.Rank,
		Residual:     sol.Residual,
		Equations:    sys.Rows(),
		Unknowns:     sys.Cols(),
	}

	res.BarForces = make([]BarForce, len(s.Bars))
	for i, b := range s.Bars {
		v := sol.X.AtVec(i)
		res.BarForces[i] = BarForce{Label: b.Label, Value: v, State: Classify(v)}
	}

	res.Reactions = make([]Reaction, len(sys.Reactions))
	for k, rc := range sys.Reactions {
		v := sol.X.AtVec(sys.NumBars + k)
		rad := rc.AngleDeg * math.Pi / 180
		res.Reactions[k] = Reaction{
			Label:     rc.Label,
			NodeKey:   rc.NodeKey,
			Magnitude: v,
			AngleDeg:  rc.AngleDeg,
			Rx:        v * math.Cos(rad),
			Ry:        v * math.Sin(rad),
		}
	}

	return res
}

// Analyze runs the full pipeline on a built structure: assemble, solve,
// interpret. One call fully consumes one snapshot of the model and returns
// a complete result or a fatal error.
func Analyze(s *Structure) (*Result, error) {
	sys, err := Assemble(s)
	if err != nil {
		return nil, err
	}
	sol, err := Solve(sys)
	if err != nil {
		return nil, err
	}
	return Interpret(s, sys, sol), nil
}
