package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/njchilds90/polygrade/internal/cache"
	"github.com/njchilds90/polygrade/internal/config"
	"github.com/njchilds90/polygrade/internal/grader"
	"github.com/njchilds90/polygrade/internal/logging"
	"github.com/njchilds90/polygrade/internal/metrics"
)

var rootCmd = &cobra.Command{
	Use:   "polygrade",
	Short: "polygrade checks typed polynomial answers",
	Long: `polygrade parses LaTeX-like polynomial answers, checks whether like terms are
combined, and compares factored answers by their factors rather than their value.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "polygrade.yaml", "Path to the configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
}

// app is the configuration shared by subcommands.
type app struct {
	cfg    config.Config
	logger *slog.Logger
}

func setup(cmd *cobra.Command) (*app, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, logger: logging.New(level)}, nil
}

// service builds the grading service, with the Redis cache when configured.
// The returned func releases the cache client.
func (a *app) service() (*grader.Service, *metrics.Metrics, func()) {
	m := metrics.New()
	opts := []grader.Option{grader.WithMetrics(m), grader.WithLogger(a.logger)}
	closer := func() {}

	if a.cfg.Redis.Addr != "" {
		store := cache.New(a.cfg.Redis.Addr, a.cfg.Redis.Password, a.cfg.Redis.DB,
			cache.WithPrefix(a.cfg.Redis.Prefix),
			cache.WithTTL(a.cfg.Redis.TTL),
		)
		opts = append(opts, grader.WithCache(store))
		closer = func() {
			if err := store.Close(); err != nil {
				a.logger.Warn("closing verdict cache", "error", err)
			}
		}
		a.logger.Debug("verdict cache enabled", "addr", a.cfg.Redis.Addr)
	}
	return grader.New(opts...), m, closer
}
