package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/siteheader/internal/server"
)

func serveCmd(load loader) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve header fragments over HTTP",
		Long: `Start the header server.

Routes:
  /header/{layout}   fragment for ?path= (desktop or mobile)
  /preview           both layouts in a full page
  /live              websocket re-rendering on navigation
  /metrics           Prometheus metrics
  /healthz           liveness probe

Examples:
  siteheader serve
  siteheader serve --address=0.0.0.0:8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if address != "" {
				cfg.Server.Address = address
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			logger := newLogger(cfg)
			srv, err := server.New(cfg, server.WithLogger(logger))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			info("Serving headers on http://%s", cfg.Server.Address)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVarP(&address, "address", "a", "", "Address to listen on (default from config)")

	return cmd
}
