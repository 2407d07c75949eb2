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

// Package config loads metriclock's YAML configuration file.
//
// A file only needs the keys it changes; everything else keeps the value from
// Default. Unknown keys are rejected so that typos do not pass silently.
//
//	clock:
//	  epoch: 100000045
//	  speed: 2
//	  turn_duration: 6s
//	  turn_based: true
//	driver:
//	  interval: 16ms
//	  auto_advance: true
//	log:
//	  level: debug
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/jazzpetri/metriclock/clock"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the root configuration structure.
type Config struct {
	Clock  clock.Config `yaml:"clock"`
	Driver Driver       `yaml:"driver"`
	Log    Log          `yaml:"log"`
}

// Driver configures the loop that ticks the clock.
type Driver struct {
	Interval         time.Duration `yaml:"interval"`
	AutoAdvance      bool          `yaml:"auto_advance"`
	ProgressInterval time.Duration `yaml:"progress_interval"`
}

// Log configures the zap logger.
type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Clock: clock.DefaultConfig(),
		Driver: Driver{
			Interval:         time.Second / 60,
			ProgressInterval: clock.DefaultProgressInterval,
		},
		Log: Log{Level: "info"},
	}
}

// Load reads, parses and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over Default and validates the result.
// Empty input yields the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values a clock cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if math.IsNaN(c.Clock.Speed) || math.IsInf(c.Clock.Speed, 0) {
		errs = append(errs, fmt.Errorf("%w: clock.speed must be finite, got %v", ErrInvalid, c.Clock.Speed))
	}
	if c.Clock.TurnDuration < 0 {
		errs = append(errs, fmt.Errorf("%w: clock.turn_duration must not be negative, got %s", ErrInvalid, c.Clock.TurnDuration))
	}
	if c.Driver.Interval <= 0 {
		errs = append(errs, fmt.Errorf("%w: driver.interval must be positive, got %s", ErrInvalid, c.Driver.Interval))
	}
	if c.Driver.ProgressInterval < 0 {
		errs = append(errs, fmt.Errorf("%w: driver.progress_interval must not be negative, got %s", ErrInvalid, c.Driver.ProgressInterval))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: log.level: %v", ErrInvalid, err))
	}

	return errors.Join(errs...)
}
