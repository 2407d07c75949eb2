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
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jazzpetri/metriclock/metric"
)

// snapshot is the plain-data form of a SimulationClock. Field names are
// stable so saved state stays readable across versions. Durations use the
// same {secs, nanos} shape as metric.Timestamp.
type snapshot struct {
	ClockTime         metric.Timestamp `json:"clock_time" yaml:"clock_time"`
	ClockMode         Mode             `json:"clock_mode" yaml:"clock_mode"`
	ClockSpeed        float64          `json:"clock_speed" yaml:"clock_speed"`
	TurnDuration      metric.Timestamp `json:"turn_duration" yaml:"turn_duration"`
	TurnTimeRemaining metric.Timestamp `json:"turn_time_remaining" yaml:"turn_time_remaining"`
}

func (c *SimulationClock) snapshot() snapshot {
	return snapshot{
		ClockTime:         c.elapsed,
		ClockMode:         c.mode,
		ClockSpeed:        c.speed,
		TurnDuration:      metric.FromDuration(c.turnDuration),
		TurnTimeRemaining: metric.FromDuration(c.turnRemaining),
	}
}

// restore clamps the turn remaining into [0, turnDuration], and to zero in
// RealTime mode, so decoded state keeps the same invariants as a ticked clock.
func (c *SimulationClock) restore(s snapshot) {
	*c = SimulationClock{
		elapsed:      s.ClockTime,
		mode:         s.ClockMode,
		speed:        s.ClockSpeed,
		turnDuration: s.TurnDuration.Duration(),
	}
	if c.mode == TurnBased {
		c.turnRemaining = min(s.TurnTimeRemaining.Duration(), c.turnDuration)
	}
}

// MarshalJSON encodes the clock's five fields.
func (c SimulationClock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.snapshot())
}

// UnmarshalJSON replaces the clock's state with the decoded fields. Missing
// fields decode as zero. A turn remaining longer than the turn, or set in
// RealTime mode, is clamped.
func (c *SimulationClock) UnmarshalJSON(data []byte) error {
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decode simulation clock: %w", err)
	}
	c.restore(s)
	return nil
}

// MarshalYAML encodes the clock's five fields as a mapping.
func (c SimulationClock) MarshalYAML() (interface{}, error) {
	return c.snapshot(), nil
}

// UnmarshalYAML replaces the clock's state with the decoded mapping, clamped
// like UnmarshalJSON.
func (c *SimulationClock) UnmarshalYAML(value *yaml.Node) error {
	var s snapshot
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("decode simulation clock: %w", err)
	}
	c.restore(s)
	return nil
}
