// Command rangebench measures how much a fixed-capacity LRU cache speeds up
// range-sum queries over a mutable array.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Krishna8167/rangecache"
	"github.com/Krishna8167/rangecache/internal/config"
	"github.com/Krishna8167/rangecache/internal/logging"
	"github.com/Krishna8167/rangecache/internal/metrics"
	"github.com/Krishna8167/rangecache/internal/report"
	"github.com/Krishna8167/rangecache/internal/runner"
	"github.com/Krishna8167/rangecache/internal/workload"
)

// Version information
const (
	Version = "0.1.0"
	Name    = "rangebench"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", Name, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, showVersion, err := parseArgs(args)
	if err != nil {
		return err
	}
	if showVersion {
		fmt.Printf("%s v%s\n", Name, Version)
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var opts []rangecache.Option
	opts = append(opts, rangecache.WithLogger(logger))

	if cfg.MetricsAddr != "" {
		reg := metrics.NewRegistry()
		opts = append(opts, rangecache.WithMetrics(reg, Name))

		srv := metrics.NewServer(cfg.MetricsAddr, reg)
		if err := srv.Start(nil); err != nil {
			return fmt.Errorf("metrics server: %w", err)
		}
		logger.Info().Str("addr", cfg.MetricsAddr).Msg("metrics server listening")
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Stop(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("metrics server shutdown")
			}
		}()
	}

	cache, err := rangecache.New(cfg.Capacity, opts...)
	if err != nil {
		return err
	}

	res, err := runner.Run(ctx, workload.NewRand(cfg.Seed), cfg.Workload(), cache, logger)
	if err != nil {
		return err
	}

	if err := report.Print(os.Stdout, cfg, res); err != nil {
		return err
	}

	if cfg.ReportFile != "" {
		if err := report.Save(cfg.ReportFile, cfg, res); err != nil {
			return err
		}
		logger.Info().Str("path", cfg.ReportFile).Msg("report saved")
	}
	return nil
}

// parseArgs layers flags over the file and environment configuration.
// Only flags given explicitly override; the rest keep loaded values.
func parseArgs(args []string) (config.Config, bool, error) {
	fs := flag.NewFlagSet(Name, flag.ContinueOnError)

	def := config.Default()
	var (
		configPath  = fs.String("config", os.Getenv(config.EnvPrefix+"CONFIG"), "Path to YAML config file (env: RANGEBENCH_CONFIG)")
		n           = fs.Int("n", def.N, "Array length")
		q           = fs.Int("q", def.Q, "Number of queries")
		capacity    = fs.Int("k", def.Capacity, "Cache capacity")
		seed        = fs.Uint64("seed", def.Seed, "Random seed")
		hotPool     = fs.Int("hot-pool", def.HotPool, "Number of hot ranges")
		pHot        = fs.Float64("p-hot", def.PHot, "Probability a range query is hot")
		pUpdate     = fs.Float64("p-update", def.PUpdate, "Probability a query is an update")
		logLevel    = fs.String("log-level", def.LogLevel, "Log level: debug, info, warn, error")
		logFormat   = fs.String("log-format", def.LogFormat, "Log format: text, json")
		metricsAddr = fs.String("metrics-addr", def.MetricsAddr, "Serve Prometheus metrics on this address, empty to disable")
		reportFile  = fs.String("o", def.ReportFile, "Write a JSON report to this file")
		showVersion = fs.Bool("version", false, "Show version information")
	)

	if err := fs.Parse(args); err != nil {
		return config.Config{}, false, err
	}
	if *showVersion {
		return config.Config{}, true, nil
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return cfg, false, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n":
			cfg.N = *n
		case "q":
			cfg.Q = *q
		case "k":
			cfg.Capacity = *capacity
		case "seed":
			cfg.Seed = *seed
		case "hot-pool":
			cfg.HotPool = *hotPool
		case "p-hot":
			cfg.PHot = *pHot
		case "p-update":
			cfg.PUpdate = *pUpdate
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-format":
			cfg.LogFormat = *logFormat
		case "metrics-addr":
			cfg.MetricsAddr = *metricsAddr
		case "o":
			cfg.ReportFile = *reportFile
		}
	})
	return cfg, false, nil
}
