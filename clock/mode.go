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
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned when decoding a mode name that is not
// "RealTime" or "TurnBased".
var ErrUnknownMode = errors.New("clock: unknown mode")

// Mode selects how Tick moves a SimulationClock.
type Mode uint8

const (
	// RealTime adds every scaled tick to the elapsed time.
	RealTime Mode = iota

	// TurnBased drains a fixed-length turn with each tick and holds the clock
	// at the turn boundary until the turn is advanced.
	TurnBased
)

// String returns "RealTime" or "TurnBased".
func (m Mode) String() string {
	switch m {
	case RealTime:
		return "RealTime"
	case TurnBased:
		return "TurnBased"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode parses a mode name. Matching ignores case.
func ParseMode(s string) (Mode, error) {
	switch {
	case strings.EqualFold(s, "RealTime"):
		return RealTime, nil
	case strings.EqualFold(s, "TurnBased"):
		return TurnBased, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if m != RealTime && m != TurnBased {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, uint8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}
