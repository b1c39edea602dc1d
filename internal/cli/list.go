package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/checklist/internal/store"
	"github.com/Makepad-fr/checklist/internal/ui"
)

// ListOptions holds options for the ls command.
type ListOptions struct {
	Local   bool
	Group   bool
	Output  string
	NoColor bool
	Color   bool
}

func newListCommand() *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "ls [query]",
		Short: "Print tables and their items",
		Long: `Print every table, or the ones whose name contains query (case-insensitive),
with their items and progress.`,
		Example: `  checklist ls
  checklist ls groc --group
  checklist ls --local -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var query string
			if len(args) == 1 {
				query = args[0]
			}
			return runList(cmd, query, opts)
		},
	}

	addClientFlags(cmd)
	cmd.Flags().BoolVar(&opts.Local, "local", false, "read the local store instead of the service")
	cmd.Flags().BoolVar(&opts.Group, "group", false, "list pending items before checked ones")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "panel", "output format: panel|table|md|json")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false, "disable colors")
	cmd.Flags().BoolVar(&opts.Color, "color", false, "force colors even when not a terminal")
	cmd.Flags().String("theme", "", "theme: classic|neon|mono")

	_ = cmd.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"panel", "table", "md", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("theme", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return ui.Themes, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func runList(cmd *cobra.Command, query string, opts *ListOptions) error {
	ctx := cmd.Context()
	cfg := getConfig(ctx)

	st, closeStore, err := clientStore(ctx, cfg, opts.Local)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	loadCtx, cancel := context.WithTimeout(ctx, cfg.Client.Timeout)
	defer cancel()
	tables, err := st.Load(loadCtx)
	if err != nil {
		return fmt.Errorf("load tables: %w", err)
	}
	tables = tables.Filter(query)

	out := cmd.OutOrStdout()
	switch opts.Output {
	case "json":
		b, err := store.Encode(tables)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	case "table", "md", "markdown":
		ui.RenderTable(out, tables, opts.Output != "table")
		return nil
	case "", "panel":
	default:
		return fmt.Errorf("unknown output format %q (want panel|table|md|json)", opts.Output)
	}

	ui.SetColorForcing(opts.Color, opts.NoColor)
	if err := ui.SetTheme(cfg.UI.Theme); err != nil {
		return err
	}
	ui.Panel(out, ui.CollectionLines(tables, opts.Group))
	return nil
}
