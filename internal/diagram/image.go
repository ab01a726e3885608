package diagram

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	tensionColor     = color.RGBA{R: 41, G: 128, B: 185, A: 255}
	compressionColor = color.RGBA{R: 192, G: 57, B: 43, A: 255}
	zeroColor        = color.RGBA{R: 149, G: 165, B: 166, A: 255}
	loadColor        = color.RGBA{R: 39, G: 174, B: 96, A: 255}
)

// ExportTrussDiagram exports the structure sketch to an image file. Bars
// are color-coded by force state (blue tension, red compression, gray
// zero-force) with line width scaled by force magnitude.
func ExportTrussDiagram(data TrussDiagramData, filename string) error {
	p := plot.New()
	p.Title.Text = "Truss Structure & Member Forces"
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"

	maxForce := 1.0
	if data.HasForces {
		for _, b := range data.Bars {
			if v := math.Abs(b.Force); v > maxForce {
				maxForce = v
			}
		}
	}

	for _, b := range data.Bars {
		line, err := plotter.NewLine(plotter.XYs{
			{X: b.X1, Y: b.Y1},
			{X: b.X2, Y: b.Y2},
		})
		if err != nil {
			return err
		}

		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = color.Black
		label := "[" + b.Label + "]"
		if data.HasForces {
			switch b.State {
			case "tension":
				line.LineStyle.Color = tensionColor
			case "compression":
				line.LineStyle.Color = compressionColor
			default:
				line.LineStyle.Color = zeroColor
			}
			line.LineStyle.Width = vg.Points(1 + 4*math.Abs(b.Force)/maxForce)
			label = formatForce(b.Force)
		}
		p.Add(line)

		mid, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: (b.X1 + b.X2) / 2, Y: (b.Y1 + b.Y2) / 2}},
			Labels: []string{label},
		})
		if err != nil {
			return err
		}
		p.Add(mid)
	}

	// Joints drawn over the bars, with key labels above.
	var jointPts, pinnedPts, rollerPts plotter.XYs
	var labelXYs []plotter.XY
	var labels []string
	for _, n := range data.Nodes {
		jointPts = append(jointPts, plotter.XY{X: n.X, Y: n.Y})
		labelXYs = append(labelXYs, plotter.XY{X: n.X, Y: n.Y + 0.15})
		labels = append(labels, n.Key)
		switch n.Support {
		case "pinned":
			pinnedPts = append(pinnedPts, plotter.XY{X: n.X, Y: n.Y})
		case "roller":
			rollerPts = append(rollerPts, plotter.XY{X: n.X, Y: n.Y})
		}
	}

	joints, err := plotter.NewScatter(jointPts)
	if err != nil {
		return err
	}
	joints.GlyphStyle.Color = color.Black
	joints.GlyphStyle.Radius = vg.Points(3)
	joints.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(joints)

	if len(pinnedPts) > 0 {
		pinned, err := plotter.NewScatter(pinnedPts)
		if err != nil {
			return err
		}
		pinned.GlyphStyle.Color = color.Black
		pinned.GlyphStyle.Radius = vg.Points(7)
		pinned.GlyphStyle.Shape = draw.PyramidGlyph{}
		p.Add(pinned)
	}

	if len(rollerPts) > 0 {
		roller, err := plotter.NewScatter(rollerPts)
		if err != nil {
			return err
		}
		roller.GlyphStyle.Color = color.Black
		roller.GlyphStyle.Radius = vg.Points(7)
		roller.GlyphStyle.Shape = draw.RingGlyph{}
		p.Add(roller)
	}

	keyLabels, err := plotter.NewLabels(plotter.XYLabels{XYs: labelXYs, Labels: labels})
	if err != nil {
		return err
	}
	p.Add(keyLabels)

	// Applied loads as short arrows in the load direction.
	for _, l := range data.Loads {
		mag := math.Hypot(l.Fx, l.Fy)
		if mag == 0 {
			continue
		}
		const arrowLen = 0.5
		dx := l.Fx / mag * arrowLen
		dy := l.Fy / mag * arrowLen

		arrow, err := plotter.NewLine(plotter.XYs{
			{X: l.X, Y: l.Y},
			{X: l.X + dx, Y: l.Y + dy},
		})
		if err != nil {
			return err
		}
		arrow.LineStyle.Width = vg.Points(2)
		arrow.LineStyle.Color = loadColor
		p.Add(arrow)

		tip, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: l.X + dx*1.2, Y: l.Y + dy*1.2}},
			Labels: []string{"F"},
		})
		if err != nil {
			return err
		}
		p.Add(tip)
	}

	ext := filepath.Ext(filename)
	width := 8 * vg.Inch
	height := 6 * vg.Inch

	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		os.MkdirAll(dir, 0755)
	}

	switch ext {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}

func formatForce(v float64) string {
	if math.Abs(v) <= 1e-4 {
		return "0"
	}
	return fmt.Sprintf("%.2f", v)
}
