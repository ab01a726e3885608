package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/truongaus/gotruss/internal/diagram"
	"github.com/truongaus/gotruss/internal/truss"
)

var (
	checkFile        string
	checkShowDiagram bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Assemble the equilibrium matrix without solving",
	Long: `Build a truss model and assemble its equilibrium system, then print
the direction-cosine audit table for manual verification.

Every bar endpoint and every reaction component is listed with the
angle and cosine/sine coefficients it contributes to the matrix, so
the assembled system can be cross-checked by hand before solving.

Examples:
  gotruss check --file bridge.json
  gotruss check -f bridge.json --diagram`,
	Run: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkFile, "file", "f", "", "Path to truss JSON file [required]")
	checkCmd.MarkFlagRequired("file")

	checkCmd.Flags().BoolVar(&checkShowDiagram, "diagram", false, "Show ASCII structure sketch")
}

func runCheck(cmd *cobra.Command, args []string) {
	model, err := truss.LoadFromFile(checkFile)
	if err != nil {
		fmt.Printf("Error loading model: %v\n", err)
		return
	}

	nodes, bars := model.Records()
	structure, err := truss.Build(nodes, bars, truss.BuildOptions{})
	if err != nil {
		fmt.Printf("Error building structure: %v\n", err)
		return
	}

	sys, err := truss.Assemble(structure)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     EQUILIBRIUM MATRIX ASSEMBLY CHECK")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
	fmt.Printf("  System shape: %d equations × %d unknowns (%d bars + %d reactions)\n",
		sys.Rows(), sys.Cols(), sys.NumBars, len(sys.Reactions))
	fmt.Println()

	printVerificationTable(sys.Audit)

	if checkShowDiagram {
		fmt.Println(diagram.DrawASCIITruss(diagramData(structure, nil)))
	}
}
