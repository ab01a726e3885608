package diagram

import (
	"fmt"
	"math"
	"strings"
)

// NodeGlyph is one joint to draw, with an optional support marker.
type NodeGlyph struct {
	Key     string
	X       float64
	Y       float64
	Support string // "", "pinned" or "roller"
}

// BarGlyph is one member to draw. State is "tension", "compression" or
// "zero" when forces are available, empty otherwise.
type BarGlyph struct {
	Label string
	X1    float64
	Y1    float64
	X2    float64
	Y2    float64
	Force float64
	State string
}

// LoadGlyph is an applied nodal load arrow.
type LoadGlyph struct {
	X  float64
	Y  float64
	Fx float64
	Fy float64
}

// TrussDiagramData holds everything needed to sketch a structure.
type TrussDiagramData struct {
	Nodes     []NodeGlyph
	Bars      []BarGlyph
	Loads     []LoadGlyph
	HasForces bool // bar State/Force fields are populated
}

// DrawASCIITruss renders a character-grid sketch of the structure with a
// per-bar legend. Proportions are approximate; the sketch is meant for a
// quick sanity check of connectivity, not measurement.
func DrawASCIITruss(data TrussDiagramData) string {
	const (
		gridW = 61
		gridH = 21
	)

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString("  STRUCTURE SKETCH\n")
	sb.WriteString("  ────────────────\n")

	if len(data.Nodes) == 0 {
		sb.WriteString("  (no nodes)\n")
		return sb.String()
	}

	minX, maxX := data.Nodes[0].X, data.Nodes[0].X
	minY, maxY := data.Nodes[0].Y, data.Nodes[0].Y
	for _, n := range data.Nodes {
		minX = math.Min(minX, n.X)
		maxX = math.Max(maxX, n.X)
		minY = math.Min(minY, n.Y)
		maxY = math.Max(maxY, n.Y)
	}
	spanX := maxX - minX
	spanY := maxY - minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}

	grid := make([][]rune, gridH)
	for i := range grid {
		grid[i] = make([]rune, gridW)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	toCol := func(x float64) int {
		return int(math.Round((x - minX) / spanX * float64(gridW-7)))
	}
	toRow := func(y float64) int {
		// Row 0 is the top of the sketch.
		return int(math.Round((maxY - y) / spanY * float64(gridH-3)))
	}

	// Bars first so node markers overwrite their endpoints.
	for _, b := range data.Bars {
		c1, r1 := toCol(b.X1), toRow(b.Y1)
		c2, r2 := toCol(b.X2), toRow(b.Y2)

		ch := barRune(c2-c1, r2-r1)
		steps := int(math.Max(math.Abs(float64(c2-c1)), math.Abs(float64(r2-r1))))
		if steps == 0 {
			steps = 1
		}
		for i := 0; i <= steps; i++ {
			t := float64(i) / float64(steps)
			c := c1 + int(math.Round(t*float64(c2-c1)))
			r := r1 + int(math.Round(t*float64(r2-r1)))
			if r >= 0 && r < gridH && c >= 0 && c < gridW {
				grid[r][c] = ch
			}
		}
	}

	for _, n := range data.Nodes {
		c, r := toCol(n.X), toRow(n.Y)
		if r < 0 || r >= gridH || c < 0 || c >= gridW {
			continue
		}
		grid[r][c] = '●'
		for i, ch := range n.Key {
			if c+1+i < gridW {
				grid[r][c+1+i] = ch
			}
		}
		switch n.Support {
		case "pinned":
			if r+1 < gridH {
				grid[r+1][c] = '▲'
			}
		case "roller":
			if r+1 < gridH {
				grid[r+1][c] = '◯'
			}
		}
	}

	for _, row := range grid {
		sb.WriteString("  ")
		sb.WriteString(strings.TrimRight(string(row), " "))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString("  ● = joint   ▲ = pinned support   ◯ = roller support\n")

	if data.HasForces && len(data.Bars) > 0 {
		sb.WriteString("\n")
		sb.WriteString("  MEMBER FORCES\n")
		for _, b := range data.Bars {
			mark := "·"
			switch b.State {
			case "tension":
				mark = "+"
			case "compression":
				mark = "-"
			}
			sb.WriteString(fmt.Sprintf("  [%s] %s %10.3f  %s\n", b.Label, mark, b.Force, b.State))
		}
	}

	return sb.String()
}

// barRune picks a line character for a bar by its on-grid slope.
func barRune(dc, dr int) rune {
	if dc == 0 {
		return '│'
	}
	slope := float64(dr) / float64(dc)
	switch {
	case math.Abs(slope) < 0.4:
		return '─'
	case math.Abs(slope) > 2.5:
		return '│'
	case slope < 0:
		return '/'
	default:
		return '\\'
	}
}

// DrawSummaryBox creates a bordered summary box for results.
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len(title)
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-2, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-2, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
