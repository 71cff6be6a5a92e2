package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "hotzone",
	Short: "Resume Hotspots - headless project tools",
	Long: `hotzone works with resume hot zone projects (.rhz) without the GUI:

Examples:
  hotzone info resume.rhz                # Show project summary
  hotzone publish resume.rhz -o ./site   # Render the static viewer site`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
