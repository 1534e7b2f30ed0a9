package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/massinglab/gomassing/internal/app"
	"github.com/massinglab/gomassing/version"
)

var rootCmd = &cobra.Command{
	Use:   "gomassing [project]",
	Short: "Interactive 3D building massing editor",
	Long: `GoMassing is an interactive editor for early-stage building massing:
draw footprints on a ground plane, extrude them by floor count and
compare design variants. Projects are stored as JSON files.`,
	Version: version.GetVersion(),
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		app.Run(path)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
