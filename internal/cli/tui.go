package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Makepad-fr/checklist/internal/logging"
	"github.com/Makepad-fr/checklist/internal/tui"
	"github.com/Makepad-fr/checklist/internal/ui"
)

func newTUICommand() *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Edit tables interactively",
		Long: `Open the interactive editor. Edits show up at once and are written back
to the store once you pause typing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			in, ok := cmd.InOrStdin().(interface{ Fd() uintptr })
			if !ok || !term.IsTerminal(int(in.Fd())) {
				return fmt.Errorf("tui needs an interactive terminal; try `checklist ls`")
			}
			cfg := getConfig(ctx)
			logger := logging.FromContext(ctx)

			st, closeStore, err := clientStore(ctx, cfg, local)
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			if err := tui.Run(ctx, st, tui.Options{
				Delay:   cfg.Sync.Debounce,
				Timeout: cfg.Client.Timeout,
				Logger:  logger,
			}); err != nil {
				return err
			}
			ui.OK(cmd.ErrOrStderr(), "changes saved")
			return nil
		},
	}

	addClientFlags(cmd)
	cmd.Flags().String("debounce", "", "quiet period before a write (default 500ms)")
	cmd.Flags().BoolVar(&local, "local", false, "edit the local store directly instead of the service")
	return cmd
}

// addClientFlags registers the flags every service client shares.
func addClientFlags(cmd *cobra.Command) {
	cmd.Flags().String("url", "", "store service URL (default http://localhost:3000)")
	cmd.Flags().String("timeout", "", "per-request timeout (default 5s)")
}
