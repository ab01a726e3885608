package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/truongaus/gotruss/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "gotruss",
	Short: "2D Pin-Jointed Truss Analysis Tool",
	Long: `gotruss - Plane Truss Equilibrium Solver

A CLI tool for the static analysis of 2D pin-jointed trusses,
including supports with inclined rolling surfaces.

Given joint coordinates, applied nodal loads, bar connectivity and
support conditions, gotruss assembles the joint equilibrium equations
and solves them by least squares for:
  - The axial force in every bar (tension/compression/zero-force)
  - Every support reaction, with Cartesian components
  - A direction-cosine audit table for manual verification`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gotruss v%-47s║\n", version.Version)
		fmt.Println("  ║   Plane Truss Equilibrium Solver                          ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for the static analysis of 2D pin-jointed trusses.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Joint equilibrium assembly with direction-cosine audit")
		fmt.Println("    • Pinned supports and rollers at arbitrary surface angles")
		fmt.Println("    • Least-squares solve tolerant of non-square systems")
		fmt.Println("    • ASCII sketch and png/svg/pdf force diagrams")
		fmt.Println("    • Expression-valued model fields, e.g. \"sqrt(2)\"")
		fmt.Println()
		fmt.Println("  Use 'gotruss --help' to see available commands.")
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
