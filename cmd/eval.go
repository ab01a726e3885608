package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/truongaus/gotruss/internal/expr"
)

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate a restricted arithmetic expression",
	Long: `Evaluate an expression using the same restricted arithmetic
evaluator the model loader applies to string-valued numeric fields.

Available: + - * / ^, parentheses, sqrt, sin, cos, tan, pow, abs, pi.
Any other name is rejected.

Examples:
  gotruss eval "sqrt(2)*3"
  gotruss eval "cos(pi/4)"`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := strings.Join(args, " ")
		v, err := expr.Eval(input)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("%g\n", v)
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
}
