package truss

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// lengthEps is the minimum bar length. Anything shorter is degenerate
// geometry and aborts assembly.
const lengthEps = 1e-6

// ReactionComponent is one unknown reaction scalar generated by a support.
// A pinned support contributes two (at 0 and 90 degrees), a roller one
// (perpendicular to its rolling surface).
type ReactionComponent struct {
	NodeIndex int
	NodeKey   string
	AngleDeg  float64
	Label     string
}

// AuditRow records one direction-cosine contribution to the equilibrium
// matrix, for independent verification of the assembly.
type AuditRow struct {
	Entity       string // e.g. "Bar 3" or "Support R_B"
	Node         string
	AngleDeg     float64
	Coefficients string // e.g. "C:0.80 S:0.60"
}

// System is the assembled linear equilibrium system A·x = F. Rows 2i and
// 2i+1 are node i's x and y force balance; columns are bar forces in input
// order followed by reaction components in node-sorted scan order.
type System struct {
	A *mat.Dense
	F *mat.VecDense

	Reactions []ReactionComponent
	Audit     []AuditRow
	NumBars   int
}

// Rows returns the number of equilibrium equations.
func (sys *System) Rows() int {
	r, _ := sys.A.Dims()
	return r
}

// Cols returns the number of unknowns (bar forces plus reactions).
func (sys *System) Cols() int {
	_, c := sys.A.Dims()
	return c
}

// Assemble builds the equilibrium matrix, load vector, reaction list and
// audit log for a structure. A degenerate bar aborts with
// InvalidGeometryError; no partial system is produced.
func Assemble(s *Structure) (*System, error) {
	keys := s.NodeKeys()

	var reactions []ReactionComponent
	for i, key := range keys {
		n := s.Nodes[key]
		switch n.Support {
		case SupportPinned:
			reactions = append(reactions,
				ReactionComponent{NodeIndex: i, NodeKey: key, AngleDeg: 0, Label: "Ax_" + key},
				ReactionComponent{NodeIndex: i, NodeKey: key, AngleDeg: 90, Label: "Ay_" + key},
			)
		case SupportRoller:
			// The only direction a roller resists is perpendicular to
			// its rolling surface.
			reactions = append(reactions, ReactionComponent{
				NodeIndex: i,
				NodeKey:   key,
				AngleDeg:  n.SurfaceAngle + 90,
				Label:     "R_" + key,
			})
		}
	}

	rows := 2 * len(keys)
	cols := len(s.Bars) + len(reactions)
	if cols == 0 {
		return nil, &UnsolvableError{Err: errors.New("structure has no bars and no supports")}
	}
	sys := &System{
		A:         mat.NewDense(rows, cols, nil),
		F:         mat.NewVecDense(rows, nil),
		Reactions: reactions,
		NumBars:   len(s.Bars),
	}

	// External loads move to the right-hand side of the balance, negated.
	for i, key := range keys {
		n := s.Nodes[key]
		sys.F.SetVec(2*i, -n.Fx)
		sys.F.SetVec(2*i+1, -n.Fy)
	}

	for j, b := range s.Bars {
		u := s.Nodes[b.U]
		v := s.Nodes[b.V]

		dx := v.X - u.X
		dy := v.Y - u.Y
		length := math.Hypot(dx, dy)
		if length < lengthEps {
			return nil, &InvalidGeometryError{Bar: b.Label}
		}

		c := dx / length
		sn := dy / length
		angle := math.Atan2(dy, dx) * 180 / math.Pi

		// A tensile bar pulls both endpoints toward each other: the
		// unit vector points u->v at u and v->u at v.
		iu := s.NodeIndex(b.U)
		iv := s.NodeIndex(b.V)

		sys.A.Set(2*iu, j, c)
		sys.A.Set(2*iu+1, j, sn)
		sys.Audit = append(sys.Audit, AuditRow{
			Entity:       "Bar " + b.Label,
			Node:         b.U,
			AngleDeg:     angle,
			Coefficients: fmt.Sprintf("C:%.2f S:%.2f", c, sn),
		})

		sys.A.Set(2*iv, j, -c)
		sys.A.Set(2*iv+1, j, -sn)
		angleV := angle + 180
		if angleV > 180 {
			angleV -= 360
		}
		sys.Audit = append(sys.Audit, AuditRow{
			Entity:       "Bar " + b.Label,
			Node:         b.V,
			AngleDeg:     angleV,
			Coefficients: fmt.Sprintf("C:%.2f S:%.2f", -c, -sn),
		})
	}

	for k, r := range reactions {
		col := len(s.Bars) + k
		rad := r.AngleDeg * math.Pi / 180
		cr := math.Cos(rad)
		sr := math.Sin(rad)

		sys.A.Set(2*r.NodeIndex, col, cr)
		sys.A.Set(2*r.NodeIndex+1, col, sr)
		sys.Audit = append(sys.Audit, AuditRow{
			Entity:       "Support " + r.Label,
			Node:         r.NodeKey,
			AngleDeg:     r.AngleDeg,
			Coefficients: fmt.Sprintf("Cx:%.2f Sy:%.2f", cr, sr),
		})
	}

	return sys, nil
}
