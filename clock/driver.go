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

package clock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/jazzpetri/metriclock/metric"
)

// ErrInvalidInterval is returned by Run when the step interval is not positive.
var ErrInvalidInterval = errors.New("clock: run interval must be positive")

// DefaultProgressInterval is how often a Driver logs clock progress at debug
// level, measured on its Source.
const DefaultProgressInterval = time.Second

// Driver owns a SimulationClock for a program that ticks it from one goroutine
// and inspects it from others. Every access goes through the driver's mutex.
//
// Tick deltas are measured against a Source: each Step ticks the clock by the
// source time that passed since the previous Step.
type Driver struct {
	mu     sync.Mutex
	clock  *SimulationClock
	source Source
	last   time.Time

	autoAdvance bool
	logger      *zap.Logger
	metrics     *Metrics
	progress    *rate.Limiter
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(logger *zap.Logger) DriverOption {
	return func(d *Driver) {
		d.logger = logger
	}
}

// WithMetrics sets the counters updated on every tick.
func WithMetrics(m *Metrics) DriverOption {
	return func(d *Driver) {
		d.metrics = m
	}
}

// WithAutoAdvance starts the next turn as soon as a turn completes, so a
// TurnBased clock keeps moving one turn after another.
func WithAutoAdvance(enabled bool) DriverOption {
	return func(d *Driver) {
		d.autoAdvance = enabled
	}
}

// WithProgressInterval sets how often progress is logged. The interval is
// measured in Source time, so a VirtualClock paces the logs too. An interval
// of zero or less logs on every tick.
func WithProgressInterval(interval time.Duration) DriverOption {
	return func(d *Driver) {
		d.progress = newProgressLimiter(interval)
	}
}

func newProgressLimiter(interval time.Duration) *rate.Limiter {
	return rate.NewLimiter(rate.Every(interval), 1)
}

// NewDriver takes ownership of c. The first Step measures from source.Now()
// at the time NewDriver is called.
func NewDriver(c *SimulationClock, source Source, opts ...DriverOption) *Driver {
	d := &Driver{
		clock:    c,
		source:   source,
		progress: newProgressLimiter(DefaultProgressInterval),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	d.last = source.Now()
	return d
}

// Step ticks the clock by the source time elapsed since the last Step and
// returns that delta. A source that moved backward yields a zero delta.
func (d *Driver) Step() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.source.Now()
	delta := now.Sub(d.last)
	if delta < 0 {
		delta = 0
	} else {
		d.last = now
	}
	d.tick(delta)
	return delta
}

// Tick ticks the clock by an explicit delta, for callers that measure their
// own frame time. It does not move the Step baseline.
func (d *Driver) Tick(delta time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tick(delta)
}

// tick must be called with mu held.
func (d *Driver) tick(delta time.Duration) {
	c := d.clock
	if c.mode == TurnBased && c.turnRemaining == 0 {
		d.metrics.stalledTick()
		return
	}

	inTurn := c.mode == TurnBased
	c.Tick(delta)
	d.metrics.tick()

	if inTurn && c.turnRemaining == 0 {
		d.metrics.turnCompleted()
		d.logger.Debug("turn complete",
			zap.Stringer("datetime", c.DateTime()),
			zap.Float64("epoch_seconds", c.EpochSeconds()))
		if d.autoAdvance {
			d.advanceTurn()
		}
	}

	if d.progress.AllowN(d.source.Now(), 1) {
		d.logger.Debug("clock progress",
			zap.Stringer("datetime", c.DateTime()),
			zap.Float64("epoch_seconds", c.EpochSeconds()),
			zap.Float64("speed", c.speed),
			zap.Stringer("mode", c.mode),
			zap.Duration("turn_remaining", c.turnRemaining))
	}
}

// advanceTurn must be called with mu held.
func (d *Driver) advanceTurn() bool {
	c := d.clock
	if c.mode != TurnBased || c.turnRemaining != 0 {
		return false
	}
	c.AdvanceTurn()
	d.metrics.turnAdvanced()
	d.logger.Debug("turn advanced", zap.Duration("turn_duration", c.turnDuration))
	return true
}

// Run steps the clock every interval of source time until ctx is done, then
// returns ctx.Err().
func (d *Driver) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidInterval, interval)
	}

	snap := d.Snapshot()
	d.logger.Info("clock driver started",
		zap.Duration("interval", interval),
		zap.Stringer("clock", &snap))

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("clock driver stopped",
				zap.Stringer("datetime", d.DateTime()),
				zap.Error(ctx.Err()))
			return ctx.Err()
		case <-d.source.After(interval):
			d.Step()
		}
	}
}

// EnableTurnMode switches the clock to TurnBased mode.
func (d *Driver) EnableTurnMode() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.clock.mode == TurnBased {
		return
	}
	d.clock.EnableTurnMode()
	d.logger.Info("turn mode enabled",
		zap.Duration("turn_duration", d.clock.turnDuration),
		zap.Stringer("datetime", d.clock.DateTime()))
}

// DisableTurnMode switches the clock back to RealTime mode.
func (d *Driver) DisableTurnMode() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.clock.mode == RealTime {
		return
	}
	d.clock.DisableTurnMode()
	d.logger.Info("turn mode disabled", zap.Stringer("datetime", d.clock.DateTime()))
}

// AdvanceTurn starts the next turn if the current one is complete and reports
// whether it did.
func (d *Driver) AdvanceTurn() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.advanceTurn()
}

// SetSpeed changes the clock's tick multiplier.
func (d *Driver) SetSpeed(speed float64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if speed < 0 {
		d.logger.Warn("negative clock speed runs time backward", zap.Float64("speed", speed))
	}
	d.clock.SetSpeed(speed)
	d.logger.Info("clock speed changed", zap.Float64("speed", speed))
}

// Do runs fn with exclusive access to the clock. fn must not retain c.
func (d *Driver) Do(fn func(c *SimulationClock)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(d.clock)
}

// Snapshot returns a copy of the clock's current state.
func (d *Driver) Snapshot() SimulationClock {
	d.mu.Lock()
	defer d.mu.Unlock()
	return *d.clock
}

// DateTime returns the clock's current metric date.
func (d *Driver) DateTime() metric.DateTime {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.clock.DateTime()
}
