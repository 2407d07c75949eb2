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

package metric

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const nanosPerSecond = 1_000_000_000

// Timestamp is a flat point in metric time: whole seconds since the simulation
// epoch plus a nanosecond remainder. The zero value is the epoch.
//
// Timestamp is integer fixed-point, so adding many small durations does not
// drift. All arithmetic saturates at the epoch and at the uint64 ceiling.
type Timestamp struct {
	secs  uint64
	nanos uint32
}

var maxTimestamp = Timestamp{secs: math.MaxUint64, nanos: nanosPerSecond - 1}

// timestampWire is the plain-data shape of a Timestamp on the wire.
type timestampWire struct {
	Secs  uint64 `json:"secs" yaml:"secs"`
	Nanos uint32 `json:"nanos" yaml:"nanos"`
}

// FromEpochSeconds returns the Timestamp a whole number of seconds after the epoch.
func FromEpochSeconds(seconds uint64) Timestamp {
	return Timestamp{secs: seconds}
}

// FromDateTime encodes a structured breakdown into its flat form.
func FromDateTime(dt DateTime) Timestamp {
	return dt.Timestamp()
}

// FromDuration returns the Timestamp d after the epoch.
// Negative durations map to the epoch.
func FromDuration(d time.Duration) Timestamp {
	if d <= 0 {
		return Timestamp{}
	}
	return Timestamp{
		secs:  uint64(d / time.Second),
		nanos: uint32(d % time.Second),
	}
}

// FromSeconds converts fractional seconds, rounded to the nearest nanosecond.
// Negative and NaN inputs map to the epoch; values beyond the uint64 range saturate.
func FromSeconds(seconds float64) Timestamp {
	if math.IsNaN(seconds) || seconds <= 0 {
		return Timestamp{}
	}
	if seconds >= math.MaxUint64 {
		return maxTimestamp
	}
	whole, frac := math.Modf(seconds)
	ts := Timestamp{secs: uint64(whole)}
	return ts.addNanos(uint64(math.Round(frac * nanosPerSecond)))
}

// Add returns ts shifted by d. Moving before the epoch clamps to the epoch.
func (ts Timestamp) Add(d time.Duration) Timestamp {
	if d >= 0 {
		whole := uint64(d / time.Second)
		if ts.secs > math.MaxUint64-whole {
			return maxTimestamp
		}
		ts.secs += whole
		return ts.addNanos(uint64(d % time.Second))
	}

	// -(MinInt64) overflows, so negate one nanosecond short and add it back.
	magnitude := uint64(-(d + 1)) + 1
	whole := magnitude / nanosPerSecond
	frac := uint32(magnitude % nanosPerSecond)

	if ts.secs < whole {
		return Timestamp{}
	}
	ts.secs -= whole
	if ts.nanos < frac {
		if ts.secs == 0 {
			return Timestamp{}
		}
		ts.secs--
		ts.nanos += nanosPerSecond
	}
	ts.nanos -= frac
	return ts
}

func (ts Timestamp) addNanos(n uint64) Timestamp {
	total := uint64(ts.nanos) + n
	carry := total / nanosPerSecond
	if ts.secs > math.MaxUint64-carry {
		return maxTimestamp
	}
	ts.secs += carry
	ts.nanos = uint32(total % nanosPerSecond)
	return ts
}

// Compare returns -1, 0 or +1 as ts is before, equal to or after u.
func (ts Timestamp) Compare(u Timestamp) int {
	switch {
	case ts.secs < u.secs:
		return -1
	case ts.secs > u.secs:
		return 1
	case ts.nanos < u.nanos:
		return -1
	case ts.nanos > u.nanos:
		return 1
	}
	return 0
}

// IsZero reports whether ts is the epoch.
func (ts Timestamp) IsZero() bool {
	return ts.secs == 0 && ts.nanos == 0
}

// EpochSeconds returns the whole seconds since the epoch.
func (ts Timestamp) EpochSeconds() uint64 {
	return ts.secs
}

// Nanos returns the sub-second remainder in nanoseconds.
func (ts Timestamp) Nanos() uint32 {
	return ts.nanos
}

// Seconds returns the elapsed time as fractional seconds.
// Precision is that of float64, so very large values lose their fraction.
func (ts Timestamp) Seconds() float64 {
	return float64(ts.secs) + float64(ts.nanos)/nanosPerSecond
}

// Duration returns the elapsed time as a time.Duration, saturating at the
// largest representable duration (about 292 imperial years).
func (ts Timestamp) Duration() time.Duration {
	const maxSecs = uint64(math.MaxInt64 / int64(time.Second))
	if ts.secs > maxSecs {
		return math.MaxInt64
	}
	d := time.Duration(ts.secs) * time.Second
	if d > math.MaxInt64-time.Duration(ts.nanos) {
		return math.MaxInt64
	}
	return d + time.Duration(ts.nanos)
}

// DateTime decodes ts into its structured breakdown.
func (ts Timestamp) DateTime() DateTime {
	dt := Decode(ts.secs)
	dt.Nanosecond = ts.nanos
	return dt
}

// String renders ts as a plain count of seconds, such as "45" or "45.5".
func (ts Timestamp) String() string {
	secs := strconv.FormatUint(ts.secs, 10)
	if ts.nanos == 0 {
		return secs
	}
	frac := fmt.Sprintf("%09d", ts.nanos)
	return secs + "." + strings.TrimRight(frac, "0")
}

// GoString implements fmt.GoStringer.
func (ts Timestamp) GoString() string {
	return fmt.Sprintf("metric.Timestamp{EpochSeconds: %d, Nanos: %d}", ts.secs, ts.nanos)
}

// MarshalJSON encodes ts as {"secs": N, "nanos": N}.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(timestampWire{Secs: ts.secs, Nanos: ts.nanos})
}

// UnmarshalJSON decodes {"secs": N, "nanos": N}. Nanos of a second or more
// carry into secs.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var w timestampWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode timestamp: %w", err)
	}
	*ts = Timestamp{secs: w.Secs}.addNanos(uint64(w.Nanos))
	return nil
}

// MarshalYAML encodes ts as a mapping with secs and nanos keys.
func (ts Timestamp) MarshalYAML() (interface{}, error) {
	return timestampWire{Secs: ts.secs, Nanos: ts.nanos}, nil
}

// UnmarshalYAML decodes a mapping with secs and nanos keys.
func (ts *Timestamp) UnmarshalYAML(value *yaml.Node) error {
	var w timestampWire
	if err := value.Decode(&w); err != nil {
		return fmt.Errorf("decode timestamp: %w", err)
	}
	*ts = Timestamp{secs: w.Secs}.addNanos(uint64(w.Nanos))
	return nil
}
