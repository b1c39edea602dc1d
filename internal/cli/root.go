// Package cli provides the checklist command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/checklist/internal/config"
	"github.com/Makepad-fr/checklist/internal/logging"
	"github.com/Makepad-fr/checklist/internal/ui"
)

// Version information (set at build time).
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// configKey is used to store config in context.
type configKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var (
		cfgFile  string
		closeLog func() error
	)

	rootCmd := &cobra.Command{
		Use:   "checklist",
		Short: "checklist - tables of items to tick off",
		Long: `checklist keeps named tables of items, each with an amount and a checked
state. "serve" runs the store service; "tui" and "ls" talk to it.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			logger, closer, err := newLogger(cfg.Log, cmd.ErrOrStderr(), cmd.Name() == "tui")
			if err != nil {
				return err
			}
			closeLog = closer

			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			ctx = logging.WithLogger(ctx, logger)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./checklist.yaml)")
	rootCmd.PersistentFlags().String("backend", "", "store backend: json|sqlite (default json)")
	rootCmd.PersistentFlags().String("data", "", "snapshot path (default data/tables.json)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug|info|warn|error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text|json")
	rootCmd.PersistentFlags().String("log-file", "", "append logs to this file")

	_ = rootCmd.RegisterFlagCompletionFunc("backend", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{config.BackendJSON, config.BackendSQLite}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newTUICommand())
	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newVersionCommand())

	// PersistentPostRunE is skipped when RunE fails, so the log file is
	// closed by the command itself on every return path.
	for _, sub := range rootCmd.Commands() {
		closeLogAfter(sub, &closeLog)
	}

	return rootCmd
}

func closeLogAfter(cmd *cobra.Command, closeLog *func() error) {
	run := cmd.RunE
	if run == nil {
		return
	}
	cmd.RunE = func(c *cobra.Command, args []string) (err error) {
		defer func() {
			if *closeLog == nil {
				return
			}
			if cerr := (*closeLog)(); err == nil {
				err = cerr
			}
			*closeLog = nil
		}()
		return run(c, args)
	}
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		ui.Fail(os.Stderr, fmt.Sprintf("Error: %v", err))
		return err
	}
	return nil
}

// getConfig retrieves the config PersistentPreRunE stored in the command
// context.
func getConfig(ctx context.Context) *config.Config {
	c, ok := ctx.Value(configKey{}).(*config.Config)
	if !ok || c == nil {
		panic("cli: config missing from command context")
	}
	return c
}

// newLogger builds the process logger. A log file always wins; without one
// the TUI discards logs because the terminal belongs to the alt screen.
func newLogger(lc config.LogConfig, stderr io.Writer, quiet bool) (*slog.Logger, func() error, error) {
	w := stderr
	closer := func() error { return nil }
	switch {
	case lc.File != "":
		f, err := logging.OpenFile(lc.File)
		if err != nil {
			return nil, nil, err
		}
		w, closer = f, f.Close
	case quiet:
		return logging.Discard(), closer, nil
	}

	logger, err := logging.New(w, lc.Level, lc.Format)
	if err != nil {
		_ = closer()
		return nil, nil, err
	}
	return logger, closer, nil
}
