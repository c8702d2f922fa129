package main

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/parbench/vecadd/internal/bench"
	"github.com/parbench/vecadd/internal/compute"
	"github.com/parbench/vecadd/internal/config"
	"github.com/parbench/vecadd/internal/logger"
	"github.com/parbench/vecadd/internal/metrics"
)

func main() {
	var cfgPath string
	var metricsListen string
	var cfg *config.Config
	var log *zap.Logger

	app := &cli.App{
		Name:      "vecadd-threads",
		Usage:     "Multi-threaded CPU vector addition benchmark",
		ArgsUsage: "[N]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Value:       "config.yaml",
				Usage:       "Path to the benchmark config file",
				Destination: &cfgPath,
			},
			&cli.StringFlag{
				Name:        "metrics-listen",
				Usage:       "Serve Prometheus metrics on this address during the run",
				Destination: &metricsListen,
			},
		},
		Before: func(c *cli.Context) error {
			var err error
			cfg, err = config.Load(cfgPath)
			if err != nil {
				return err
			}
			zapLogger, err := logger.New(cfg.Logger.Verbosity)
			if err != nil {
				return err
			}
			log = zapLogger.Named("threads")
			return nil
		},
		Action: func(c *cli.Context) error {
			n, err := parseSize(c.Args().First(), cfg.Benchmark.Size)
			if err != nil {
				return err
			}

			if listen := firstNonEmpty(metricsListen, cfg.Metrics.Listen); listen != "" {
				metrics.Serve(listen)
				log.Info("serving metrics", zap.String("listen", listen))
			}

			figure.NewFigure("vecadd", "", true).Print()

			backend := compute.NewCPUBackend(log, cfg.CPU.MaxWorkers)
			if err := backend.Initialize(); err != nil {
				return err
			}
			fmt.Printf("Running multi-thread implementation with %d threads\n", backend.Workers())

			runner := bench.NewRunner(backend, "CPU (multi-thread)", os.Stdout, log)
			if _, err := runner.Run(n); err != nil {
				return err
			}
			return backend.Cleanup()
		},
	}

	if err := app.Run(os.Args); err != nil {
		if log != nil {
			log.Fatal("benchmark failed", zap.Error(err))
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
