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
	"fmt"
	"time"
)

// DateTime is the structured breakdown of a point in metric time.
//
// Fields are plain data and are not range-checked. Values produced by Decode
// are always canonical; values built by hand are whatever the caller supplied.
// Nanosecond holds the sub-second remainder of a decoded Timestamp and is
// ignored by Encode.
type DateTime struct {
	Year       uint64 `json:"year" yaml:"year"`
	Month      uint8  `json:"month" yaml:"month"`
	Week       uint8  `json:"week" yaml:"week"`
	Day        uint8  `json:"day" yaml:"day"`
	Hour       uint8  `json:"hour" yaml:"hour"`
	Minute     uint8  `json:"minute" yaml:"minute"`
	Second     uint8  `json:"second" yaml:"second"`
	Nanosecond uint32 `json:"nanosecond,omitempty" yaml:"nanosecond,omitempty"`
}

// NewDateTime builds a DateTime from explicit fields without any carry.
func NewDateTime(year uint64, month, week, day, hour, minute, second uint8) DateTime {
	return DateTime{
		Year:   year,
		Month:  month,
		Week:   week,
		Day:    day,
		Hour:   hour,
		Minute: minute,
		Second: second,
	}
}

// DateTimeFromDuration decodes a duration since the epoch.
// Negative durations decode as the epoch.
func DateTimeFromDuration(d time.Duration) DateTime {
	return FromDuration(d).DateTime()
}

// EpochSeconds encodes the whole-second fields into a scalar.
func (dt DateTime) EpochSeconds() uint64 {
	return Encode(
		dt.Year,
		uint64(dt.Month),
		uint64(dt.Week),
		uint64(dt.Day),
		uint64(dt.Hour),
		uint64(dt.Minute),
		uint64(dt.Second),
	)
}

// Timestamp converts the breakdown back into its flat form, keeping the
// sub-second remainder.
func (dt DateTime) Timestamp() Timestamp {
	return Timestamp{secs: dt.EpochSeconds()}.addNanos(uint64(dt.Nanosecond))
}

// Canonical reports whether every field lies within its nominal range, which
// is exactly when Decode(dt.EpochSeconds()) reproduces dt.
func (dt DateTime) Canonical() bool {
	return dt.Month < monthsPerYear &&
		dt.Week < weeksPerMonth &&
		dt.Day < daysPerWeek &&
		dt.Hour < hoursPerDay &&
		dt.Minute < minutesPerHour &&
		dt.Second < secondsPerMin &&
		dt.Nanosecond < nanosPerSecond
}

// Normalize carries out-of-range fields into the next unit up.
func (dt DateTime) Normalize() DateTime {
	return dt.Timestamp().DateTime()
}

// String renders the canonical text form YYYY-MM-WW-DD@HH:MM:SS.ssss. The
// fraction is truncated to four digits, never rounded into the next second.
func (dt DateTime) String() string {
	return fmt.Sprintf("%d-%02d-%02d-%02d@%02d:%02d:%02d.%04d",
		dt.Year, dt.Month, dt.Week, dt.Day, dt.Hour, dt.Minute, dt.Second,
		dt.Nanosecond/(nanosPerSecond/10_000))
}

// GoString renders every field for %#v.
func (dt DateTime) GoString() string {
	return fmt.Sprintf("metric.DateTime{Year: %d, Month: %d, Week: %d, Day: %d, Hour: %d, Minute: %d, Second: %d, Nanosecond: %d}",
		dt.Year, dt.Month, dt.Week, dt.Day, dt.Hour, dt.Minute, dt.Second, dt.Nanosecond)
}
