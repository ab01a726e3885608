package truss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildForTest(t *testing.T, nodes []NodeRecord, bars []BarRecord) *Structure {
	t.Helper()
	s, err := Build(nodes, bars, BuildOptions{})
	require.NoError(t, err)
	return s
}

func TestAssemblePinnedSupportDecomposition(t *testing.T) {
	// A pinned support always yields exactly two components at 0 and 90
	// degrees, regardless of geometry.
	s := buildForTest(t,
		[]NodeRecord{
			{ID: "A", X: 0, Y: 0, Support: SupportPinned},
			{ID: "B", X: 5, Y: 2},
		},
		[]BarRecord{{ID: "1", StartNodeID: "A", EndNodeID: "B"}},
	)

	sys, err := Assemble(s)
	require.NoError(t, err)

	require.Len(t, sys.Reactions, 2)
	assert.Equal(t, "Ax_A", sys.Reactions[0].Label)
	assert.Equal(t, 0.0, sys.Reactions[0].AngleDeg)
	assert.Equal(t, "Ay_A", sys.Reactions[1].Label)
	assert.Equal(t, 90.0, sys.Reactions[1].AngleDeg)

	// Coefficients: cos/sin of 0 and 90 in node A's rows.
	ia := s.NodeIndex("A")
	assert.InDelta(t, 1.0, sys.A.At(2*ia, sys.NumBars), 1e-12)
	assert.InDelta(t, 0.0, sys.A.At(2*ia+1, sys.NumBars), 1e-12)
	assert.InDelta(t, 0.0, sys.A.At(2*ia, sys.NumBars+1), 1e-12)
	assert.InDelta(t, 1.0, sys.A.At(2*ia+1, sys.NumBars+1), 1e-12)
}

func TestAssembleRollerAngleMapping(t *testing.T) {
	// A roller on a surface at angle theta resists only along theta+90.
	s := buildForTest(t,
		[]NodeRecord{
			{ID: "A", X: 0, Y: 0},
			{ID: "B", X: 1, Y: 0, Support: SupportRoller, SurfaceAngle: 30},
		},
		[]BarRecord{{ID: "1", StartNodeID: "A", EndNodeID: "B"}},
	)

	sys, err := Assemble(s)
	require.NoError(t, err)

	require.Len(t, sys.Reactions, 1)
	assert.Equal(t, "R_B", sys.Reactions[0].Label)
	assert.Equal(t, 120.0, sys.Reactions[0].AngleDeg)
}

func TestAssembleHorizontalRollerIsVertical(t *testing.T) {
	s := buildForTest(t,
		[]NodeRecord{
			{ID: "A", X: 0, Y: 0},
			{ID: "B", X: 1, Y: 0, Support: SupportRoller, SurfaceAngle: 0},
		},
		[]BarRecord{{ID: "1", StartNodeID: "A", EndNodeID: "B"}},
	)

	sys, err := Assemble(s)
	require.NoError(t, err)

	require.Len(t, sys.Reactions, 1)
	assert.Equal(t, 90.0, sys.Reactions[0].AngleDeg)

	ib := s.NodeIndex("B")
	col := sys.NumBars
	assert.InDelta(t, 0.0, sys.A.At(2*ib, col), 1e-12, "horizontal surface must give no x resistance")
	assert.InDelta(t, 1.0, sys.A.At(2*ib+1, col), 1e-12)
}

func TestAssembleBarDirectionCosines(t *testing.T) {
	// 3-4-5 bar: direction cosines 0.8 and 0.6, positive at the start
	// node and negated at the end node.
	s := buildForTest(t,
		[]NodeRecord{
			{ID: "A", X: 0, Y: 0},
			{ID: "B", X: 4, Y: 3},
		},
		[]BarRecord{{ID: "1", StartNodeID: "A", EndNodeID: "B"}},
	)

	sys, err := Assemble(s)
	require.NoError(t, err)

	ia := s.NodeIndex("A")
	ib := s.NodeIndex("B")
	assert.InDelta(t, 0.8, sys.A.At(2*ia, 0), 1e-12)
	assert.InDelta(t, 0.6, sys.A.At(2*ia+1, 0), 1e-12)
	assert.InDelta(t, -0.8, sys.A.At(2*ib, 0), 1e-12)
	assert.InDelta(t, -0.6, sys.A.At(2*ib+1, 0), 1e-12)
}

func TestAssembleNegatesAppliedLoads(t *testing.T) {
	s := buildForTest(t,
		[]NodeRecord{
			{ID: "A", X: 0, Y: 0, Fx: 3, Fy: -7},
			{ID: "B", X: 1, Y: 0},
		},
		[]BarRecord{{ID: "1", StartNodeID: "A", EndNodeID: "B"}},
	)

	sys, err := Assemble(s)
	require.NoError(t, err)

	ia := s.NodeIndex("A")
	assert.Equal(t, -3.0, sys.F.AtVec(2*ia))
	assert.Equal(t, 7.0, sys.F.AtVec(2*ia+1))
}

func TestAssembleRejectsDegenerateBar(t *testing.T) {
	s := buildForTest(t,
		[]NodeRecord{
			{ID: "A", X: 1, Y: 1},
			{ID: "B", X: 1, Y: 1 + 1e-9},
		},
		[]BarRecord{{ID: "9", StartNodeID: "A", EndNodeID: "B"}},
	)

	_, err := Assemble(s)
	var geomErr *InvalidGeometryError
	require.ErrorAs(t, err, &geomErr)
	assert.Equal(t, "9", geomErr.Bar)
}

func TestAssembleAuditLog(t *testing.T) {
	s := buildForTest(t,
		[]NodeRecord{
			{ID: "A", X: 0, Y: 0, Support: SupportPinned},
			{ID: "B", X: 4, Y: 3, Support: SupportRoller},
		},
		[]BarRecord{{ID: "1", StartNodeID: "A", EndNodeID: "B"}},
	)

	sys, err := Assemble(s)
	require.NoError(t, err)

	// Two rows per bar endpoint plus one per reaction component.
	require.Len(t, sys.Audit, 2+3)

	assert.Equal(t, "Bar 1", sys.Audit[0].Entity)
	assert.Equal(t, "A", sys.Audit[0].Node)
	assert.InDelta(t, 36.9, sys.Audit[0].AngleDeg, 0.05)
	assert.Equal(t, "C:0.80 S:0.60", sys.Audit[0].Coefficients)

	// End angle is the start angle rotated 180, normalized to (-180, 180].
	assert.Equal(t, "B", sys.Audit[1].Node)
	assert.InDelta(t, -143.1, sys.Audit[1].AngleDeg, 0.05)

	assert.Equal(t, "Support Ax_A", sys.Audit[2].Entity)
	assert.Equal(t, "Support Ay_A", sys.Audit[3].Entity)
	assert.Equal(t, "Support R_B", sys.Audit[4].Entity)
}

func TestAssembleSystemShape(t *testing.T) {
	s := buildForTest(t,
		[]NodeRecord{
			{ID: "A", X: 0, Y: 0, Support: SupportPinned},
			{ID: "B", X: 4, Y: 0, Support: SupportRoller},
			{ID: "C", X: 0, Y: 3},
		},
		[]BarRecord{
			{ID: "1", StartNodeID: "A", EndNodeID: "B"},
			{ID: "2", StartNodeID: "A", EndNodeID: "C"},
			{ID: "3", StartNodeID: "B", EndNodeID: "C"},
		},
	)

	sys, err := Assemble(s)
	require.NoError(t, err)

	assert.Equal(t, 6, sys.Rows())
	assert.Equal(t, 6, sys.Cols())
	assert.Equal(t, 3, sys.NumBars)
}
