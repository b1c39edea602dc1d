package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/checklist/internal/logging"
	"github.com/Makepad-fr/checklist/internal/server"
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the store service",
		Long: `Serve the tables snapshot over HTTP.

  GET  /api/tables   read every table
  POST /api/tables   replace every table`,
		Example: `  # Serve data/tables.json on :3000
  checklist serve

  # Keep the snapshot in SQLite instead
  checklist serve --backend sqlite --data data/tables.db --addr :8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg := getConfig(ctx)
			logger := logging.FromContext(ctx)

			st, closeStore, err := openStore(ctx, cfg.Store)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeStore(); err != nil {
					logger.Warn("closing store", "error", err)
				}
			}()

			logger.Info("opened store", "backend", cfg.Store.Backend, "path", cfg.Store.Path)
			srv := server.New(server.Config{
				Store:   st,
				Addr:    cfg.Server.ListenAddr(),
				MaxBody: cfg.Server.MaxBody,
				Logger:  logger,
			})
			return srv.Serve(ctx)
		},
	}

	cmd.Flags().String("addr", "", "listen address (default :3000)")
	cmd.Flags().Int64("max-body", 0, "largest accepted POST body in bytes")
	return cmd
}
