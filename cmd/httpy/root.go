package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/httpy/internal/app"
	"github.com/samvad-hq/httpy/internal/config"
	"github.com/samvad-hq/httpy/internal/logger"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	envFile string
	output  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "httpy",
		Short:         "One-shot HTTP/HTTPS GET with a normalized JSON result",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "configs/.env", "dotenv file with HTTPY_* settings")
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "", "output format: json, yaml or text (default from HTTPY_OUTPUT)")

	cmd.AddCommand(newGetCmd(opts))
	cmd.AddCommand(newHistoryCmd(opts))
	return cmd
}

// withFetcher loads config, builds the logger and fetcher, and runs fn with a
// context cancelled on SIGINT/SIGTERM.
func withFetcher(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, cfg *config.Config, f *app.Fetcher) error) error {
	cfg, err := config.LoadFile(opts.envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if output := config.NormalizeOutput(opts.output); output != "" {
		if err := config.ValidateOutput(output); err != nil {
			return err
		}
		cfg.Output = output
	}

	log, err := logger.Init(cfg, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Close()

	log.DebugObj("httpy starting", "config", cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fetcher, err := app.NewFetcher(cfg, log, nil)
	if err != nil {
		log.ErrorObj("failed to initialize fetcher", "error", err)
		return err
	}
	defer fetcher.Close()

	return fn(ctx, cfg, fetcher)
}
