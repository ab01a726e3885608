package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/truongaus/gotruss/internal/diagram"
	"github.com/truongaus/gotruss/internal/truss"
)

var (
	analyzeFile        string
	analyzeShowMatrix  bool
	analyzeShowDiagram bool
	analyzeExportFile  string
	analyzeStrictNodes bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Solve bar forces and support reactions for a truss model",
	Long: `Solve the static equilibrium of a 2D pin-jointed truss defined
in a JSON file.

For every joint, two force-balance equations (x and y) are assembled
into a linear system whose unknowns are the bar axial forces and the
support reaction magnitudes. The system is solved by least squares,
so non-square systems (statically indeterminate or under-constrained
structures) still produce the minimum-norm answer; rank and residual
are reported alongside the results.

Numeric fields accept expressions, e.g. "x": "3*sqrt(2)".

Example JSON file structure:
{
  "name": "Right Triangle",
  "nodes": [
    {"id": "A", "x": 0, "y": 0, "support": "pinned"},
    {"id": "B", "x": 4, "y": 0, "support": "roller", "surface_angle": 0},
    {"id": "C", "x": 0, "y": 3, "fy": -10}
  ],
  "bars": [
    {"id": "1", "start": "A", "end": "B"},
    {"id": "2", "start": "A", "end": "C"},
    {"id": "3", "start": "B", "end": "C"}
  ]
}

Examples:
  gotruss analyze --file bridge.json
  gotruss analyze -f bridge.json --diagram --matrix
  gotruss analyze -f bridge.json -o bridge-forces.png`,
	Run: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Path to truss JSON file [required]")
	analyzeCmd.MarkFlagRequired("file")

	analyzeCmd.Flags().BoolVar(&analyzeShowMatrix, "matrix", false, "Show the direction-cosine verification table")
	analyzeCmd.Flags().BoolVar(&analyzeShowDiagram, "diagram", false, "Show ASCII structure sketch")
	analyzeCmd.Flags().StringVarP(&analyzeExportFile, "output", "o", "", "Export force diagram to file (png, svg, pdf)")
	analyzeCmd.Flags().BoolVar(&analyzeStrictNodes, "strict-nodes", false, "Fail when a bar references an undefined node instead of creating it at the origin")
}

func runAnalyze(cmd *cobra.Command, args []string) {
	model, err := truss.LoadFromFile(analyzeFile)
	if err != nil {
		fmt.Printf("Error loading model: %v\n", err)
		return
	}

	nodes, bars := model.Records()
	structure, err := truss.Build(nodes, bars, truss.BuildOptions{StrictNodes: analyzeStrictNodes})
	if err != nil {
		fmt.Printf("Error building structure: %v\n", err)
		return
	}

	result, err := truss.Analyze(structure)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     PLANE TRUSS EQUILIBRIUM ANALYSIS")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	if model.Name != "" {
		fmt.Printf("  Model: %s\n", model.Name)
	}
	if model.Description != "" {
		fmt.Printf("  Description: %s\n", model.Description)
	}
	fmt.Println()

	fmt.Println("STRUCTURE:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Joints:\t%d\n", len(structure.NodeKeys()))
	fmt.Fprintf(w, "  Bars:\t%d\n", len(structure.Bars))
	fmt.Fprintf(w, "  Reaction unknowns:\t%d\n", result.Unknowns-len(structure.Bars))
	fmt.Fprintf(w, "  Equilibrium equations:\t%d\n", result.Equations)
	fmt.Fprintf(w, "  Determinacy:\t%s\n", result.Determinacy())
	w.Flush()
	fmt.Println()

	fmt.Println("BAR FORCES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Bar\tForce\tState\n")
	fmt.Fprintf(w, "  ───\t─────\t─────\n")
	for _, bf := range result.BarForces {
		state := "zero-force"
		switch bf.State {
		case truss.ForceTension:
			state = "TENSION (+)"
		case truss.ForceCompression:
			state = "COMPRESSION (-)"
		}
		fmt.Fprintf(w, "  %s\t%.3f\t%s\n", bf.Label, bf.Value, state)
	}
	w.Flush()
	fmt.Println()

	fmt.Println("SUPPORT REACTIONS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Reaction\tNode\tMagnitude\tAngle (deg)\tComponents\n")
	fmt.Fprintf(w, "  ────────\t────\t─────────\t───────────\t──────────\n")
	for _, r := range result.Reactions {
		fmt.Fprintf(w, "  %s\t%s\t%.3f\t%.1f\tRx=%.1f, Ry=%.1f\n",
			r.Label, r.NodeKey, r.Magnitude, r.AngleDeg, r.Rx, r.Ry)
	}
	w.Flush()
	fmt.Println()

	fmt.Println("SOLVER:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Matrix rank:\t%d\n", result.Rank)
	fmt.Fprintf(w, "  Residual ‖A·x − F‖:\t%.3e\n", result.Residual)
	w.Flush()

	fmt.Println()
	fmt.Print(diagram.DrawSummaryBox("ANALYSIS COMPLETE", []string{
		fmt.Sprintf("%d bar forces, %d reactions solved", len(result.BarForces), len(result.Reactions)),
		fmt.Sprintf("System: %s", result.Determinacy()),
	}))
	fmt.Println()

	if analyzeShowMatrix {
		printVerificationTable(result.Verification)
	}

	if analyzeShowDiagram {
		fmt.Println(diagram.DrawASCIITruss(diagramData(structure, result)))
	}

	if analyzeExportFile != "" {
		if err := diagram.ExportTrussDiagram(diagramData(structure, result), analyzeExportFile); err != nil {
			fmt.Printf("Error exporting diagram: %v\n", err)
		} else {
			fmt.Printf("Diagram exported to: %s\n", analyzeExportFile)
		}
	}
}

// diagramData converts a structure (and optionally its solved result) into
// renderer input. Only numeric outputs cross this boundary.
func diagramData(s *truss.Structure, result *truss.Result) diagram.TrussDiagramData {
	var data diagram.TrussDiagramData

	for _, key := range s.NodeKeys() {
		n := s.Nodes[key]
		data.Nodes = append(data.Nodes, diagram.NodeGlyph{
			Key:     n.Key,
			X:       n.X,
			Y:       n.Y,
			Support: supportMarker(n.Support),
		})
		if n.Fx != 0 || n.Fy != 0 {
			data.Loads = append(data.Loads, diagram.LoadGlyph{X: n.X, Y: n.Y, Fx: n.Fx, Fy: n.Fy})
		}
	}

	for i, b := range s.Bars {
		u := s.Nodes[b.U]
		v := s.Nodes[b.V]
		glyph := diagram.BarGlyph{
			Label: b.Label,
			X1:    u.X, Y1: u.Y,
			X2: v.X, Y2: v.Y,
		}
		if result != nil && i < len(result.BarForces) {
			glyph.Force = result.BarForces[i].Value
			glyph.State = result.BarForces[i].State.String()
		}
		data.Bars = append(data.Bars, glyph)
	}

	data.HasForces = result != nil
	return data
}

func supportMarker(s truss.Support) string {
	switch s {
	case truss.SupportPinned:
		return "pinned"
	case truss.SupportRoller:
		return "roller"
	default:
		return ""
	}
}

func printVerificationTable(rows []truss.AuditRow) {
	fmt.Println("VERIFICATION — EQUILIBRIUM MATRIX COEFFICIENTS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Entity\tNode\tAngle (deg)\tCoefficients\n")
	fmt.Fprintf(w, "  ──────\t────\t───────────\t────────────\n")
	for _, r := range rows {
		fmt.Fprintf(w, "  %s\t%s\t%.1f\t%s\n", r.Entity, r.Node, r.AngleDeg, r.Coefficients)
	}
	w.Flush()
	fmt.Println()
}
