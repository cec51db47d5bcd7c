package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/chriserin/gsteps/internal/lsp"
	"github.com/spf13/cobra"
)

var logLevelFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a language server offering step completions over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunServe(cmd.Context(), lsp.Stdio(os.Stdin, os.Stdout), cmd.ErrOrStderr(), dirFlags, extFlag, logLevelFlag)
	},
}

func init() {
	serveCmd.Flags().StringVar(&logLevelFlag, "log-level", "info", "Log level written to stderr (debug, info, warn, error)")
	rootCmd.AddCommand(serveCmd)
}

// RunServe loads the step templates once and serves completions on stream
// until the client exits. Logs go to logw, never to stream.
func RunServe(ctx context.Context, stream io.ReadWriteCloser, logw io.Writer, dirs []string, ext, level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger := slog.New(slog.NewTextHandler(logw, &slog.HandlerOptions{Level: lvl}))

	steps, skipped := loadSteps(dirs, ext, false)
	for _, sk := range skipped {
		logger.Warn("skipped unreadable file", "path", sk.Path, "err", sk.Err)
	}
	logger.Info("loaded steps", "count", steps.Len(), "dirs", dirs)

	return lsp.NewServer(steps, logger).Run(ctx, stream)
}
