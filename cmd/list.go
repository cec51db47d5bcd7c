package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/chriserin/gsteps/internal/db"
	"github.com/chriserin/gsteps/internal/parser"
	"github.com/chriserin/gsteps/internal/ui"
	"github.com/spf13/cobra"
)

var categoryFlag string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached step templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunList(cmd.OutOrStdout(), dbFlag, categoryFlag)
	},
}

func init() {
	listCmd.Flags().StringVar(&categoryFlag, "category", "", "Only list steps of this category (given, when, then, all)")
	rootCmd.AddCommand(listCmd)
}

func RunList(w io.Writer, dbPath, category string) error {
	cat, err := parseCategory(category)
	if err != nil {
		return err
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return fmt.Errorf("run `gsteps init` first")
	}

	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	rows, err := db.ListSteps(sqlDB, cat)
	if err != nil {
		return err
	}
	for _, r := range rows {
		ui.CachedStepLine(w, r.Step, r.Files)
	}
	return nil
}

func parseCategory(s string) (parser.Category, error) {
	switch c := parser.Category(s); c {
	case "", parser.CategoryGiven, parser.CategoryWhen, parser.CategoryThen, parser.CategoryAll:
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q: want given, when, then or all", s)
}
