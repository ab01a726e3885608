package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/truongaus/gotruss/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gotruss",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gotruss v%s\n", version.Version)
		fmt.Println("2D Pin-Jointed Truss Analysis Tool")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
