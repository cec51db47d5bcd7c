package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/chriserin/gsteps/internal/db"
	"github.com/chriserin/gsteps/internal/discovery"
	"github.com/chriserin/gsteps/internal/parser"
	"github.com/chriserin/gsteps/internal/ui"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Scan feature directories and refresh the step cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunSync(cmd.OutOrStdout(), dbFlag, dirFlags, extFlag)
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func RunSync(w io.Writer, dbPath string, dirs []string, ext string) error {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return fmt.Errorf("run `gsteps init` first")
	}

	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	var synced []string
	for _, path := range discovery.WithExt(discovery.Files(dirs...), ext) {
		steps, skipped := parser.ExtractFiles([]string{path})
		if len(skipped) > 0 {
			ui.SkipLine(w, path)
			continue
		}

		id, created, err := db.TrackFile(sqlDB, path)
		if err != nil {
			return err
		}
		if created {
			ui.NewLine(w, path)
		} else {
			ui.TrkLine(w, path)
		}
		if err := db.ReplaceFileSteps(sqlDB, id, parser.Normalize(steps).Sorted()); err != nil {
			return fmt.Errorf("storing steps of %s: %w", path, err)
		}
		synced = append(synced, path)
	}

	// Unreadable files are forgotten along with deleted ones.
	removed, err := db.ForgetFilesExcept(sqlDB, synced)
	if err != nil {
		return err
	}
	if removed > 0 {
		ui.GoneLine(w, removed)
	}
	if _, err := db.PruneSteps(sqlDB); err != nil {
		return err
	}

	rows, err := db.ListSteps(sqlDB, "")
	if err != nil {
		return err
	}
	ui.SummaryLine(w, len(synced), len(rows))
	return nil
}
