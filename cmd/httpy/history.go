package main

import (
	"context"

	"github.com/samvad-hq/httpy/internal/app"
	"github.com/samvad-hq/httpy/internal/config"
	"github.com/spf13/cobra"
)

func newHistoryCmd(root *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent fetches, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withFetcher(cmd, root, func(_ context.Context, cfg *config.Config, f *app.Fetcher) error {
				entries, err := f.History(limit)
				if err != nil {
					return err
				}
				return app.RenderHistory(cmd.OutOrStdout(), cfg.Output, entries)
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum entries to show; 0 shows all")
	return cmd
}
