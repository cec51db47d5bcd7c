package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

const (
	dataDir       = ".gsteps"
	defaultDBPath = ".gsteps/steps.db"
)

var (
	dirFlags []string
	extFlag  string
	dbFlag   string
)

var rootCmd = &cobra.Command{
	Use:          "gsteps",
	Short:        "gsteps — step templates for feature file autocomplete",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&dirFlags, "dir", []string{"features"}, "Directory containing feature files (repeatable, not recursive)")
	rootCmd.PersistentFlags().StringVar(&extFlag, "ext", ".feature", "Only read files with this extension (empty reads every file)")
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", defaultDBPath, "Path of the step cache database")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
