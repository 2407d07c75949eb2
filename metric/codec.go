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

// Package metric implements the metric calendar used by simulation clocks.
//
// Metric time divides a flat count of elapsed seconds into fixed decimal place
// values. Every unit is a power of ten seconds, so converting between a scalar
// and its structured breakdown is a mixed-radix encode/decode with no leap
// rules and no timezones:
//
//	| unit   | seconds     | subdivides into |
//	|--------|-------------|-----------------|
//	| year   | 100,000,000 | 10 months       |
//	| month  | 10,000,000  | 10 weeks        |
//	| week   | 1,000,000   | 10 days         |
//	| day    | 100,000     | 10 hours        |
//	| hour   | 10,000      | 100 minutes     |
//	| minute | 100         | 100 seconds     |
//	| second | 1           |                 |
//
// A metric day is 1 day 3 hours 46 minutes and 40 seconds of imperial time,
// a metric year a little over 3 imperial years.
//
// Two value types sit on top of the codec. Timestamp is the flat form: whole
// seconds plus nanoseconds since the simulation epoch. DateTime is the
// structured form, rendered as YYYY-MM-WW-DD@HH:MM:SS.ssss.
//
//	ts := metric.FromEpochSeconds(100_000_045)
//	fmt.Println(ts.DateTime()) // 1-00-00-00@00:00:45.0000
package metric

// Seconds per metric unit.
const (
	SecondsPerMillennium uint64 = 100_000_000_000
	SecondsPerCentury    uint64 = 10_000_000_000
	SecondsPerDecade     uint64 = 1_000_000_000
	SecondsPerYear       uint64 = 100_000_000
	SecondsPerMonth      uint64 = 10_000_000
	SecondsPerWeek       uint64 = 1_000_000
	SecondsPerDay        uint64 = 100_000
	SecondsPerHour       uint64 = 10_000
	SecondsPerMinute     uint64 = 100
	SecondsPerSecond     uint64 = 1
)

// Nominal field ranges of a canonical DateTime. Year is unbounded.
const (
	monthsPerYear  = 10
	weeksPerMonth  = 10
	daysPerWeek    = 10
	hoursPerDay    = 10
	minutesPerHour = 100
	secondsPerMin  = 100
)

// Encode folds structured fields into a scalar count of seconds.
//
// Fields are multiplied by their place value and summed. Nothing is validated
// or carried: a minute of 150 simply contributes 15,000 seconds, and the result
// decodes to the canonical equivalent rather than to the inputs.
func Encode(year, month, week, day, hour, minute, second uint64) uint64 {
	return year*SecondsPerYear +
		month*SecondsPerMonth +
		week*SecondsPerWeek +
		day*SecondsPerDay +
		hour*SecondsPerHour +
		minute*SecondsPerMinute +
		second*SecondsPerSecond
}

// Decode splits a scalar count of seconds into canonical structured fields,
// most significant unit first. The result's Nanosecond is zero.
func Decode(seconds uint64) DateTime {
	year := seconds / SecondsPerYear
	seconds %= SecondsPerYear
	month := seconds / SecondsPerMonth
	seconds %= SecondsPerMonth
	week := seconds / SecondsPerWeek
	seconds %= SecondsPerWeek
	day := seconds / SecondsPerDay
	seconds %= SecondsPerDay
	hour := seconds / SecondsPerHour
	seconds %= SecondsPerHour
	minute := seconds / SecondsPerMinute
	seconds %= SecondsPerMinute

	return DateTime{
		Year:   year,
		Month:  uint8(month),
		Week:   uint8(week),
		Day:    uint8(day),
		Hour:   uint8(hour),
		Minute: uint8(minute),
		Second: uint8(seconds),
	}
}
