package main

import (
	"context"

	"github.com/desertthunder/inventory/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the HTTP API until ctx is cancelled.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	cfg := config.Server
	if cmd.IsSet("host") {
		cfg.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Port = int(cmd.Int("port"))
	}

	repo, err := r.repository(ctx, cmd)
	if err != nil {
		return err
	}

	c, err := r.priceFormatter(cmd)
	if err != nil {
		return err
	}

	r.logger.Info("serving inventory", "addr", cfg.Addr())
	return server.New(cfg, repo, c, r.logger).Run(ctx)
}
