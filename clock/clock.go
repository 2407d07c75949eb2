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

// Package clock provides a simulation clock that keeps time in the metric
// calendar and can run either continuously or one turn at a time.
//
// SimulationClock is the state machine. It owns the elapsed time, a speed
// multiplier and the turn timer, and it only moves when its owner calls Tick.
// In RealTime mode every tick is added to the elapsed time. In TurnBased mode
// ticks drain the current turn and the clock holds still at the turn boundary
// until AdvanceTurn starts the next one.
//
// SimulationClock is a plain value without locking. Programs that tick from one
// goroutine and read from others hand the clock to a Driver, which serialises
// access and pulls tick deltas from a Source:
//   - WallClock reads the system clock for interactive simulations
//   - VirtualClock is advanced by hand for tests and instant replays
//
// Example usage with wall-clock time:
//
//	sim := clock.New()
//	drv := clock.NewDriver(sim, clock.NewWallClock(), clock.WithLogger(logger))
//	go drv.Run(ctx, 16*time.Millisecond)
//
// Example usage in tests:
//
//	src := clock.NewVirtualClock(start)
//	drv := clock.NewDriver(clock.New(), src)
//	src.AdvanceBy(5 * time.Second)
//	drv.Step() // the simulation clock now reads 5 seconds
package clock

import "time"

// Source supplies the wall time a Driver measures tick deltas against.
// Implementations must be safe for concurrent use by multiple goroutines.
type Source interface {
	// Now returns the current time according to this source.
	Now() time.Time

	// After returns a channel that receives the current time once duration d
	// has passed on this source. The channel receives exactly once.
	After(d time.Duration) <-chan time.Time
}
