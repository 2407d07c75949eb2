// Copyright 2026 The JazzPetri Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jazzpetri/metriclock/clock"
	"github.com/jazzpetri/metriclock/internal/config"
	"github.com/jazzpetri/metriclock/internal/logging"
)

type runOptions struct {
	configPath  string
	runFor      time.Duration
	interval    time.Duration
	speed       float64
	turnBased   bool
	autoAdvance bool
	virtual     bool
	logLevel    string
	showMetrics bool
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Drive a simulation clock and print where it ends up",
		Long: `Run ticks a simulation clock for a span of wall time and prints the final
metric date. With --virtual the same span is simulated instantly on a virtual
source instead of waiting for it.

Flags override values from the --config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			return opts.run(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	flags.DurationVar(&opts.runFor, "for", 10*time.Second, "how long to run the clock")
	flags.DurationVar(&opts.interval, "interval", 0, "time between ticks (default from config, 1/60s)")
	flags.Float64Var(&opts.speed, "speed", clock.DefaultSpeed, "tick multiplier")
	flags.BoolVar(&opts.turnBased, "turn-based", false, "start in turn-based mode")
	flags.BoolVar(&opts.autoAdvance, "auto-advance", false, "start the next turn as soon as one completes")
	flags.BoolVar(&opts.virtual, "virtual", false, "simulate on a virtual source without waiting")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&opts.showMetrics, "metrics", false, "print clock metrics when done")
	return cmd
}

// load reads the config file, if any, and applies explicitly set flags on top.
func (o *runOptions) load(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}

	flags := cmd.Flags()
	if flags.Changed("interval") {
		cfg.Driver.Interval = o.interval
	}
	if flags.Changed("speed") {
		cfg.Clock.Speed = o.speed
	}
	if flags.Changed("turn-based") {
		cfg.Clock.TurnBased = o.turnBased
	}
	if flags.Changed("auto-advance") {
		cfg.Driver.AutoAdvance = o.autoAdvance
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if o.runFor < 0 {
		return nil, fmt.Errorf("--for must not be negative, got %s", o.runFor)
	}
	return &cfg, nil
}

func (o *runOptions) run(ctx context.Context, out io.Writer, cfg *config.Config) error {
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	reg := prometheus.NewRegistry()
	metrics, err := clock.NewMetrics(reg)
	if err != nil {
		return err
	}

	driverOpts := []clock.DriverOption{
		clock.WithLogger(logger),
		clock.WithMetrics(metrics),
		clock.WithAutoAdvance(cfg.Driver.AutoAdvance),
		clock.WithProgressInterval(cfg.Driver.ProgressInterval),
	}
	sim := clock.NewWithConfig(cfg.Clock)

	var drv *clock.Driver
	if o.virtual {
		src := clock.NewVirtualClock(time.Unix(0, 0).UTC())
		drv = clock.NewDriver(sim, src, driverOpts...)
		if err := clock.RegisterCollector(reg, drv); err != nil {
			return err
		}
		simulate(src, drv, o.runFor, cfg.Driver.Interval)
	} else {
		drv = clock.NewDriver(sim, clock.NewWallClock(), driverOpts...)
		if err := clock.RegisterCollector(reg, drv); err != nil {
			return err
		}
		runCtx, cancel := context.WithTimeout(ctx, o.runFor)
		defer cancel()
		if err := drv.Run(runCtx, cfg.Driver.Interval); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return err
		}
	}

	snap := drv.Snapshot()
	logger.Info("clock finished", zap.Stringer("clock", &snap))
	fmt.Fprintln(out, snap.DateTime())

	if o.showMetrics {
		return printMetrics(out, reg)
	}
	return nil
}

// simulate steps drv across span of virtual time in interval-sized steps.
func simulate(src *clock.VirtualClock, drv *clock.Driver, span, interval time.Duration) {
	for elapsed := time.Duration(0); elapsed < span; elapsed += interval {
		src.AdvanceBy(min(interval, span-elapsed))
		drv.Step()
	}
}

func printMetrics(out io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var v float64
			switch {
			case m.GetCounter() != nil:
				v = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				v = m.GetGauge().GetValue()
			}
			fmt.Fprintf(out, "%s %g\n", mf.GetName(), v)
		}
	}
	return nil
}
