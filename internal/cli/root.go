package cli

import (
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

var (
	versionStr string
	commitStr  string
	dateStr    string
)

// Global flags
var (
	configFlag  string
	colorFlag   string
	quietFlag   bool
	verboseFlag bool
)

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	versionStr = version
	commitStr = commit
	dateStr = date
}

var rootCmd = &cobra.Command{
	Use:   "cyclefinder",
	Short: "Reference cycle detector for object graph models",
	Long: `cyclefinder analyzes object graph models and reports reference cycles
between types, through fields and enclosing-instance references.

It reads *.graph.hcl model files, enumerates the cycles their strong
references form, and checks each cycle against a whitelist of accepted
cycles so CI only fails on new ones.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to .cyclefinder.hcl configuration file")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto", "Color mode: auto, always, never")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress non-error output")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Verbose output")
}

// newLogger builds the logger the loader and git helpers report through.
// Verbose mode lowers the level to Debug.
func newLogger() hclog.Logger {
	level := hclog.Warn
	if verboseFlag {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "cyclefinder",
		Level:  level,
		Output: os.Stderr,
	})
}
