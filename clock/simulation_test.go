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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jazzpetri/metriclock/metric"
)

func TestNew(t *testing.T) {
	c := New()

	assert.True(t, c.Timestamp().IsZero())
	assert.Equal(t, RealTime, c.Mode())
	assert.Equal(t, 1.0, c.Speed())
	assert.Equal(t, 6*time.Second, c.TurnDuration())
	assert.Equal(t, time.Duration(0), c.TurnRemaining())
}

func TestNewFromEpochSeconds(t *testing.T) {
	c := NewFromEpochSeconds(10)

	assert.Equal(t, 10.0, c.EpochSeconds())
	assert.Equal(t, RealTime, c.Mode())
	assert.Equal(t, 0.0, c.Speed(), "epoch constructor starts paused")
	assert.Equal(t, 3*time.Second, c.TurnDuration())
	assert.Equal(t, time.Duration(0), c.TurnRemaining())

	c.Tick(time.Hour)
	assert.Equal(t, 10.0, c.EpochSeconds(), "a paused clock does not move")
}

func TestNewFromDateTime(t *testing.T) {
	c := NewFromDateTime(1, 0, 0, 0, 0, 0, 45)

	assert.Equal(t, uint64(100_000_045), c.Timestamp().EpochSeconds())
	assert.Equal(t, metric.NewDateTime(1, 0, 0, 0, 0, 0, 45), c.DateTime())
	assert.Equal(t, 1.0, c.Speed())
	assert.Equal(t, 6*time.Second, c.TurnDuration())
}

func TestNewWithConfig(t *testing.T) {
	c := NewWithConfig(DefaultConfig())
	assert.Equal(t, *New(), *c)

	start := metric.NewDateTime(2, 1, 0, 0, 0, 0, 0)
	c = NewWithConfig(Config{
		Epoch:        99,
		Start:        &start,
		Speed:        4,
		TurnDuration: 10 * time.Second,
		TurnBased:    true,
	})
	assert.Equal(t, start, c.DateTime(), "Start overrides Epoch")
	assert.Equal(t, 4.0, c.Speed())
	assert.Equal(t, TurnBased, c.Mode())
	assert.Equal(t, 10*time.Second, c.TurnRemaining())

	c = NewWithConfig(Config{Epoch: 99, TurnDuration: -time.Second})
	assert.Equal(t, 99.0, c.EpochSeconds())
	assert.Equal(t, time.Duration(0), c.TurnDuration())
}

func TestTick_RealTime(t *testing.T) {
	c := New()
	c.Tick(5 * time.Second)

	assert.Equal(t, 5.0, c.EpochSeconds())
	assert.Equal(t, metric.FromEpochSeconds(5), c.Timestamp())
	assert.Equal(t, time.Duration(0), c.TurnRemaining())
}

func TestTick_Additive(t *testing.T) {
	d1 := 1500 * time.Millisecond
	d2 := 2250 * time.Millisecond

	for _, speed := range []float64{0, 0.5, 1, 2, 10} {
		split := New()
		split.SetSpeed(speed)
		split.Tick(d1)
		split.Tick(d2)

		once := New()
		once.SetSpeed(speed)
		once.Tick(d1 + d2)

		assert.Equal(t, once.Timestamp(), split.Timestamp(), "speed %v", speed)
		assert.Equal(t, (d1+d2).Seconds()*speed, once.EpochSeconds(), "speed %v", speed)
	}
}

func TestTick_TurnBased(t *testing.T) {
	c := New()
	c.SetSpeed(2)
	c.EnableTurnMode()
	assert.Equal(t, 6*time.Second, c.TurnRemaining())

	c.Tick(time.Second)
	assert.Equal(t, 2.0, c.EpochSeconds())
	assert.Equal(t, 4*time.Second, c.TurnRemaining())
	assert.False(t, c.TurnComplete())

	c.Tick(2 * time.Second)
	assert.Equal(t, 6.0, c.EpochSeconds(), "overshooting tick still adds its full delta")
	assert.Equal(t, time.Duration(0), c.TurnRemaining())
	assert.True(t, c.TurnComplete())

	c.Tick(time.Minute)
	assert.Equal(t, 6.0, c.EpochSeconds(), "clock holds at the turn boundary")

	c.AdvanceTurn()
	assert.Equal(t, 6*time.Second, c.TurnRemaining())
	c.Tick(500 * time.Millisecond)
	assert.Equal(t, 7.0, c.EpochSeconds())
	assert.Equal(t, 5*time.Second, c.TurnRemaining())
}

func TestAdvanceTurn_OnlyWhenComplete(t *testing.T) {
	c := New()

	c.AdvanceTurn()
	assert.Equal(t, time.Duration(0), c.TurnRemaining(), "no effect in RealTime")

	c.EnableTurnMode()
	c.Tick(time.Second)
	c.AdvanceTurn()
	assert.Equal(t, 5*time.Second, c.TurnRemaining(), "an unfinished turn is not reset")

	c.Tick(5 * time.Second)
	c.AdvanceTurn()
	assert.Equal(t, 6*time.Second, c.TurnRemaining())
}

func TestTurnModeTransitions(t *testing.T) {
	c := New()
	c.Tick(3 * time.Second)

	c.EnableTurnMode()
	assert.Equal(t, TurnBased, c.Mode())
	assert.Equal(t, 3.0, c.EpochSeconds())

	c.Tick(time.Second)
	c.EnableTurnMode()
	assert.Equal(t, 5*time.Second, c.TurnRemaining(), "re-enabling does not restart the turn")

	c.DisableTurnMode()
	assert.Equal(t, RealTime, c.Mode())
	assert.Equal(t, time.Duration(0), c.TurnRemaining())
	assert.Equal(t, 4.0, c.EpochSeconds())

	c.DisableTurnMode()
	assert.Equal(t, RealTime, c.Mode())
}

func TestTurnComplete_AlwaysTrueInRealTime(t *testing.T) {
	c := New()
	assert.True(t, c.TurnComplete())
	c.Tick(time.Second)
	assert.True(t, c.TurnComplete())
}

func TestTick_NegativeSpeed(t *testing.T) {
	c := New()
	c.Tick(5 * time.Second)
	c.SetSpeed(-1)

	c.Tick(2 * time.Second)
	assert.Equal(t, 3.0, c.EpochSeconds())

	c.Tick(time.Hour)
	assert.True(t, c.Timestamp().IsZero(), "elapsed stops at the epoch")

	c.SetSpeed(1)
	c.Tick(10 * time.Second)
	c.EnableTurnMode()
	c.Tick(2 * time.Second)
	c.SetSpeed(-1)
	c.Tick(time.Minute)
	assert.Equal(t, c.TurnDuration(), c.TurnRemaining(), "turn remaining never exceeds the turn")
}

func TestTick_ZeroTurnDuration(t *testing.T) {
	c := NewWithConfig(Config{Speed: 1, TurnBased: true})
	c.Tick(time.Second)
	c.AdvanceTurn()
	c.Tick(time.Second)

	assert.True(t, c.Timestamp().IsZero())
	assert.True(t, c.TurnComplete())
}

func TestSetTurnDuration(t *testing.T) {
	c := New()
	c.EnableTurnMode()
	c.SetTurnDuration(2 * time.Second)
	assert.Equal(t, 2*time.Second, c.TurnRemaining())

	c.SetTurnDuration(10 * time.Second)
	assert.Equal(t, 2*time.Second, c.TurnRemaining(), "longer turns apply from the next turn")

	c.Tick(2 * time.Second)
	c.AdvanceTurn()
	assert.Equal(t, 10*time.Second, c.TurnRemaining())
}

func TestScale(t *testing.T) {
	assert.Equal(t, time.Second, scale(time.Second, 1))
	assert.Equal(t, time.Duration(0), scale(time.Second, 0))
	assert.Equal(t, 1500*time.Millisecond, scale(time.Second, 1.5))
	assert.Equal(t, -time.Second, scale(time.Second, -1))
	assert.Equal(t, time.Duration(1<<63-1), scale(time.Hour, 1e300))
	assert.Equal(t, time.Duration(-1<<63), scale(time.Hour, -1e300))
}

func TestSimulationClock_String(t *testing.T) {
	c := New()
	c.Tick(100_005*time.Second + 500*time.Millisecond)

	assert.Equal(t,
		"SimulationClock{elapsed: 100005.5, datetime: 0-00-00-01@00:00:05.5000, speed: 1, mode: RealTime, turn_duration: 6s, turn_remaining: 0s}",
		c.String())
}

// Mirrors a 60 Hz game loop: real time, then turns advanced as soon as they
// finish, then real time again.
func TestSimulationLoop(t *testing.T) {
	const frame = time.Second / 60
	c := New()
	prev := c.Timestamp()

	tick := func() {
		c.Tick(frame)
		if c.Timestamp().Compare(prev) < 0 {
			t.Fatalf("elapsed went backward: %v -> %v", prev, c.Timestamp())
		}
		prev = c.Timestamp()
	}

	for i := 0; i < 20*60; i++ {
		tick()
	}
	c.EnableTurnMode()
	for i := 0; i < 20*60; i++ {
		tick()
		if c.TurnComplete() {
			c.AdvanceTurn()
		}
	}
	c.DisableTurnMode()
	for i := 0; i < 20*60; i++ {
		tick()
	}

	assert.Equal(t, metric.FromDuration(3*20*60*frame), c.Timestamp())
	assert.Equal(t, RealTime, c.Mode())
}
