package cmd

import (
	"io"

	"github.com/chriserin/gsteps/internal/discovery"
	"github.com/chriserin/gsteps/internal/parser"
	"github.com/chriserin/gsteps/internal/ui"
	"github.com/spf13/cobra"
)

var rawFlag bool

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "Print the steps found in the feature directories",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunSteps(cmd.OutOrStdout(), dirFlags, extFlag, rawFlag)
	},
}

func init() {
	stepsCmd.Flags().BoolVar(&rawFlag, "raw", false, "Print steps as written instead of normalized templates")
	rootCmd.AddCommand(stepsCmd)
}

func RunSteps(w io.Writer, dirs []string, ext string, raw bool) error {
	steps, _ := loadSteps(dirs, ext, raw)
	for _, st := range steps.Sorted() {
		ui.StepLine(w, st)
	}
	return nil
}

// loadSteps extracts steps from the feature files directly inside dirs,
// normalizing them unless raw is set. Files that cannot be opened are
// returned in skipped and contribute no steps.
func loadSteps(dirs []string, ext string, raw bool) (parser.StepSet, []parser.Skipped) {
	steps, skipped := parser.ExtractFiles(discovery.WithExt(discovery.Files(dirs...), ext))
	if raw {
		return steps, skipped
	}
	return parser.Normalize(steps), skipped
}
