package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-msgform/pkg/web"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		listen  string
		origins []string
		htmx    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the forms page over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("listen") {
				a.cfg.Listen = listen
			}
			if cmd.Flags().Changed("cors-origin") {
				a.cfg.CORSOrigins = origins
			}

			ctx := cmd.Context()
			rt, err := a.runtime(ctx)
			if err != nil {
				return err
			}

			server, err := web.New(rt.Forms,
				web.WithLogger(a.logger),
				web.WithMetrics(a.metrics),
				web.WithRenderer(rt.HTML),
				web.WithCORSOrigins(a.cfg.CORSOrigins...),
				web.WithVariant(a.cfg.ThemeVariant),
				web.WithVerbose(a.cfg.Verbose),
				web.WithHTMXSource(htmx),
				web.WithHealthCheck(func(ctx context.Context) error {
					_, err := rt.Client.Home(ctx)
					return err
				}),
			)
			if err != nil {
				return err
			}
			a.logger.Info("serving forms page", "listen", a.cfg.Listen, "backend", rt.Client.BaseURL())
			return server.ListenAndServe(ctx, a.cfg.Listen)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "address to listen on (default from config)")
	cmd.Flags().StringSliceVar(&origins, "cors-origin", nil, "allowed CORS origin; repeatable, empty allows any")
	cmd.Flags().StringVar(&htmx, "htmx-src", web.DefaultHTMXSource, "htmx script URL; empty serves plain forms")
	return cmd
}
