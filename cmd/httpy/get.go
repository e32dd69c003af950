package main

import (
	"context"

	"github.com/samvad-hq/httpy/internal/app"
	"github.com/samvad-hq/httpy/internal/config"
	"github.com/spf13/cobra"
)

func newGetCmd(root *rootOptions) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "get <url>",
		Short: "GET a URL and print status, version and body",
		Long: `Fetch a single URL. The request uses TLS when the URL starts with
https:// or when --port is 443; otherwise it is plain HTTP on port 80
unless another port is given. Non-empty bodies must be JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withFetcher(cmd, root, func(ctx context.Context, cfg *config.Config, f *app.Fetcher) error {
				res, err := f.Fetch(ctx, args[0], port)
				if err != nil {
					return err
				}
				return app.RenderResult(cmd.OutOrStdout(), cfg.Output, res)
			})
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "explicit port; 443 forces HTTPS")
	return cmd
}
