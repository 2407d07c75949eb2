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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jazzpetri/metriclock/clock"
	"github.com/jazzpetri/metriclock/metric"
)

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestParse_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
clock:
  speed: 2.5
driver:
  auto_advance: true
`))
	require.NoError(t, err)

	assert.Equal(t, 2.5, cfg.Clock.Speed)
	assert.Equal(t, clock.DefaultTurnDuration, cfg.Clock.TurnDuration)
	assert.True(t, cfg.Driver.AutoAdvance)
	assert.Equal(t, time.Second/60, cfg.Driver.Interval)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestParse_Full(t *testing.T) {
	cfg, err := Parse([]byte(`
clock:
  start: {year: 1, second: 45}
  speed: 10
  turn_duration: 3s
  turn_based: true
driver:
  interval: 50ms
  progress_interval: 0s
log:
  level: debug
  development: true
`))
	require.NoError(t, err)

	require.NotNil(t, cfg.Clock.Start)
	assert.Equal(t, metric.NewDateTime(1, 0, 0, 0, 0, 0, 45), *cfg.Clock.Start)
	assert.Equal(t, 3*time.Second, cfg.Clock.TurnDuration)
	assert.True(t, cfg.Clock.TurnBased)
	assert.Equal(t, 50*time.Millisecond, cfg.Driver.Interval)
	assert.Equal(t, time.Duration(0), cfg.Driver.ProgressInterval)
	assert.Equal(t, Log{Level: "debug", Development: true}, cfg.Log)

	c := clock.NewWithConfig(cfg.Clock)
	assert.Equal(t, uint64(100_000_045), c.Timestamp().EpochSeconds())
	assert.Equal(t, clock.TurnBased, c.Mode())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative turn", "clock: {turn_duration: -1s}"},
		{"nan speed", "clock: {speed: .nan}"},
		{"zero interval", "driver: {interval: 0s}"},
		{"negative progress", "driver: {progress_interval: -1s}"},
		{"bad level", "log: {level: loud}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestParse_CollectsEveryProblem(t *testing.T) {
	_, err := Parse([]byte("clock: {turn_duration: -1s}\ndriver: {interval: 0s}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clock.turn_duration")
	assert.Contains(t, err.Error(), "driver.interval")
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("clock: {sped: 2}\n"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metriclock.yaml")
	require.NoError(t, os.WriteFile(path, []byte("clock: {epoch: 42}\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), cfg.Clock.Epoch)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
