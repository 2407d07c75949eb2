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
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/jazzpetri/metriclock/metric"
)

// Defaults applied by New and NewFromDateTime.
const (
	DefaultSpeed        = 1.0
	DefaultTurnDuration = 6 * time.Second
)

// EpochTurnDuration is the turn length NewFromEpochSeconds starts with.
const EpochTurnDuration = 3 * time.Second

// SimulationClock tracks simulated time since an epoch in one of two modes.
//
// The elapsed time is the only source of truth; Timestamp and DateTime are views
// derived from it on demand. The clock never fails: every input is accepted and
// every transition either applies or is silently a no-op.
//
// SimulationClock is not safe for concurrent use. It has a single owner that
// calls Tick and the mode transitions; share it through a Driver otherwise.
// The zero value is a paused RealTime clock at the epoch with zero-length turns.
type SimulationClock struct {
	elapsed       metric.Timestamp
	mode          Mode
	speed         float64
	turnDuration  time.Duration
	turnRemaining time.Duration
}

// New returns a RealTime clock at the epoch running at normal speed with
// six-second turns.
func New() *SimulationClock {
	return &SimulationClock{
		mode:         RealTime,
		speed:        DefaultSpeed,
		turnDuration: DefaultTurnDuration,
	}
}

// NewFromEpochSeconds returns a RealTime clock starting seconds after the epoch.
//
// Unlike New, the clock starts paused (speed 0) with three-second turns.
// Call SetSpeed before ticking, or use NewWithConfig to choose both explicitly.
func NewFromEpochSeconds(seconds uint64) *SimulationClock {
	return &SimulationClock{
		elapsed:      metric.FromEpochSeconds(seconds),
		mode:         RealTime,
		speed:        0,
		turnDuration: EpochTurnDuration,
	}
}

// NewFromDateTime returns a clock starting at the encoded metric date with
// the same settings as New. Fields are not carried; see metric.Encode.
func NewFromDateTime(year, month, week, day, hour, minute, second uint64) *SimulationClock {
	c := New()
	c.elapsed = metric.FromEpochSeconds(metric.Encode(year, month, week, day, hour, minute, second))
	return c
}

// NewWithConfig returns a clock built from explicit settings.
func NewWithConfig(cfg Config) *SimulationClock {
	c := &SimulationClock{
		elapsed: cfg.start(),
		mode:    RealTime,
		speed:   cfg.Speed,
	}
	c.SetTurnDuration(cfg.TurnDuration)
	if cfg.TurnBased {
		c.EnableTurnMode()
	}
	return c
}

// Timestamp returns the elapsed time in flat form.
func (c *SimulationClock) Timestamp() metric.Timestamp {
	return c.elapsed
}

// DateTime returns the elapsed time decoded into the metric calendar.
func (c *SimulationClock) DateTime() metric.DateTime {
	return c.elapsed.DateTime()
}

// EpochSeconds returns the elapsed time in fractional seconds.
func (c *SimulationClock) EpochSeconds() float64 {
	return c.elapsed.Seconds()
}

// Mode returns the current mode.
func (c *SimulationClock) Mode() Mode {
	return c.mode
}

// Speed returns the multiplier applied to every tick.
func (c *SimulationClock) Speed() float64 {
	return c.speed
}

// SetSpeed sets the tick multiplier: 0 pauses, 1 is real time, larger values
// fast-forward. Negative speeds are accepted and run the clock backward,
// stopping at the epoch.
func (c *SimulationClock) SetSpeed(speed float64) {
	c.speed = speed
}

// TurnDuration returns the length of one turn.
func (c *SimulationClock) TurnDuration() time.Duration {
	return c.turnDuration
}

// SetTurnDuration changes the length of subsequent turns. Negative durations
// are treated as zero. A turn in progress is shortened if it now exceeds the
// new length.
func (c *SimulationClock) SetTurnDuration(d time.Duration) {
	c.turnDuration = max(d, 0)
	c.turnRemaining = min(c.turnRemaining, c.turnDuration)
}

// TurnRemaining returns the time left in the current turn. It is always zero
// in RealTime mode.
func (c *SimulationClock) TurnRemaining() time.Duration {
	return c.turnRemaining
}

// EnableTurnMode switches a RealTime clock to TurnBased and starts a full turn.
// It does nothing if the clock is already TurnBased.
func (c *SimulationClock) EnableTurnMode() {
	if c.mode != RealTime {
		return
	}
	c.mode = TurnBased
	c.turnRemaining = c.turnDuration
}

// DisableTurnMode switches a TurnBased clock back to RealTime and discards the
// rest of the turn. It does nothing if the clock is already RealTime.
func (c *SimulationClock) DisableTurnMode() {
	if c.mode != TurnBased {
		return
	}
	c.mode = RealTime
	c.turnRemaining = 0
}

// TurnComplete reports whether the current turn has no time left.
// It is always true in RealTime mode; check Mode first if that matters.
func (c *SimulationClock) TurnComplete() bool {
	return c.turnRemaining == 0
}

// AdvanceTurn starts the next turn. It only has an effect in TurnBased mode
// once the current turn is complete; an unfinished turn is never reset early.
func (c *SimulationClock) AdvanceTurn() {
	if c.mode == TurnBased && c.turnRemaining == 0 {
		c.turnRemaining = c.turnDuration
	}
}

// Tick advances the clock by delta scaled by the speed.
//
// In RealTime mode the scaled delta is always added. In TurnBased mode it is
// added only while the turn has time left, and the turn is drained by the same
// amount, stopping at zero. A tick that overshoots the turn still adds its full
// scaled delta. Once the turn is complete, Tick does nothing until AdvanceTurn.
func (c *SimulationClock) Tick(delta time.Duration) {
	step := scale(delta, c.speed)

	switch c.mode {
	case RealTime:
		c.elapsed = c.elapsed.Add(step)
	case TurnBased:
		if c.turnRemaining == 0 {
			return
		}
		c.elapsed = c.elapsed.Add(step)
		c.turnRemaining = drain(c.turnRemaining, c.turnDuration, step)
	}
}

// drain subtracts step from remaining, keeping the result in [0, limit].
func drain(remaining, limit, step time.Duration) time.Duration {
	if step >= remaining {
		return 0
	}
	if headroom := limit - remaining; step < -headroom {
		return limit
	}
	return remaining - step
}

// scale multiplies d by speed, rounding to the nearest nanosecond and
// saturating at the bounds of time.Duration. A NaN product is zero.
func scale(d time.Duration, speed float64) time.Duration {
	switch speed {
	case 1:
		return d
	case 0:
		return 0
	}

	f := math.Round(float64(d) * speed)
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return time.Duration(f)
}

// String renders the clock's full state for logs and debugging.
func (c *SimulationClock) String() string {
	return fmt.Sprintf("SimulationClock{elapsed: %s, datetime: %s, speed: %s, mode: %s, turn_duration: %s, turn_remaining: %s}",
		c.elapsed,
		c.elapsed.DateTime(),
		strconv.FormatFloat(c.speed, 'f', -1, 64),
		c.mode,
		c.turnDuration,
		c.turnRemaining,
	)
}
