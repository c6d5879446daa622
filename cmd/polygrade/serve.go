package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/njchilds90/polygrade/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP tool server",
	Long:  `Serves POST /tool, POST /grade, GET /schema, GET /health and, when enabled, GET /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("listen") {
			a.cfg.Listen, _ = cmd.Flags().GetString("listen")
		}

		svc, m, closeCache := a.service()
		defer closeCache()

		var opts []server.Option
		if a.cfg.Metrics.Enabled {
			opts = append(opts, server.WithMetrics(m, a.cfg.Metrics.Path))
		}
		srv := server.New(svc, a.logger, opts...)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := srv.Run(ctx, a.cfg.Listen); err != nil {
			return err
		}
		a.logger.Info("polygrade server stopped gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("listen", "l", ":8080", "Address to listen on (overrides config)")
}
