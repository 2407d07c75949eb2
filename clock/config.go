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
	"time"

	"github.com/jazzpetri/metriclock/metric"
)

// Config holds the explicit settings of a SimulationClock.
//
// The positional constructors bake in different defaults (New runs at speed 1
// with 6s turns, NewFromEpochSeconds starts paused with 3s turns). Config names
// every setting instead; DefaultConfig matches New.
type Config struct {
	// Epoch is the starting elapsed time in whole seconds.
	Epoch uint64 `yaml:"epoch" json:"epoch"`

	// Start, when set, overrides Epoch with an encoded metric date.
	Start *metric.DateTime `yaml:"start,omitempty" json:"start,omitempty"`

	// Speed is the tick multiplier.
	Speed float64 `yaml:"speed" json:"speed"`

	// TurnDuration is the length of one turn.
	TurnDuration time.Duration `yaml:"turn_duration" json:"turn_duration"`

	// TurnBased starts the clock in TurnBased mode with a full turn.
	TurnBased bool `yaml:"turn_based" json:"turn_based"`
}

// DefaultConfig returns the settings New uses.
func DefaultConfig() Config {
	return Config{
		Speed:        DefaultSpeed,
		TurnDuration: DefaultTurnDuration,
	}
}

func (cfg Config) start() metric.Timestamp {
	if cfg.Start != nil {
		return cfg.Start.Timestamp()
	}
	return metric.FromEpochSeconds(cfg.Epoch)
}
