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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name   string
		fields [7]uint64
		want   uint64
	}{
		{"zero", [7]uint64{}, 0},
		{"seconds only", [7]uint64{0, 0, 0, 0, 0, 0, 45}, 45},
		{"one year and 45 seconds", [7]uint64{1, 0, 0, 0, 0, 0, 45}, 100_000_045},
		{"every place", [7]uint64{12, 3, 4, 5, 6, 78, 90}, 1_234_567_890},
		{"minute", [7]uint64{0, 0, 0, 0, 0, 1, 0}, 100},
		{"hour", [7]uint64{0, 0, 0, 0, 1, 0, 0}, 10_000},
		{"day", [7]uint64{0, 0, 0, 1, 0, 0, 0}, 100_000},
		{"week", [7]uint64{0, 0, 1, 0, 0, 0, 0}, 1_000_000},
		{"month", [7]uint64{0, 1, 0, 0, 0, 0, 0}, 10_000_000},
		{"no carry on oversized minute", [7]uint64{0, 0, 0, 0, 0, 150, 0}, 15_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.fields
			assert.Equal(t, tt.want, Encode(f[0], f[1], f[2], f[3], f[4], f[5], f[6]))
		})
	}
}

func TestDecode(t *testing.T) {
	assert.Equal(t, NewDateTime(1, 0, 0, 0, 0, 0, 45), Decode(100_000_045))
	assert.Equal(t, NewDateTime(12, 3, 4, 5, 6, 78, 90), Decode(1_234_567_890))
	assert.Equal(t, NewDateTime(0, 9, 9, 9, 9, 99, 99), Decode(SecondsPerYear-1))
	assert.Equal(t, DateTime{}, Decode(0))
}

func TestDecode_AlwaysCanonical(t *testing.T) {
	for _, s := range []uint64{0, 1, 99, 100, 9_999, 123_456_789, 987_654_321_012, 1<<64 - 1} {
		assert.True(t, Decode(s).Canonical(), "Decode(%d) = %#v", s, Decode(s))
	}
}

func TestDecode_LargeYears(t *testing.T) {
	dt := Decode(1<<64 - 1)
	assert.Equal(t, uint64((1<<64-1)/SecondsPerYear), dt.Year)
	assert.Equal(t, uint64(1<<64-1), dt.EpochSeconds())
}

func TestRoundTrip_Canonical(t *testing.T) {
	for year := uint64(0); year < 3; year++ {
		for month := uint8(0); month < monthsPerYear; month += 3 {
			for week := uint8(0); week < weeksPerMonth; week += 4 {
				for day := uint8(0); day < daysPerWeek; day += 3 {
					for hour := uint8(0); hour < hoursPerDay; hour += 2 {
						for minute := uint8(0); minute < minutesPerHour; minute += 33 {
							for second := uint8(0); second < secondsPerMin; second += 19 {
								dt := NewDateTime(year, month, week, day, hour, minute, second)
								if got := Decode(dt.EpochSeconds()); got != dt {
									t.Fatalf("Decode(Encode(%#v)) = %#v", dt, got)
								}
							}
						}
					}
				}
			}
		}
	}
}

func TestRoundTrip_NonCanonicalDecodesToEquivalent(t *testing.T) {
	dt := NewDateTime(0, 0, 0, 0, 0, 150, 0)
	assert.False(t, dt.Canonical())

	got := Decode(dt.EpochSeconds())
	assert.Equal(t, NewDateTime(0, 0, 0, 0, 1, 50, 0), got)
	assert.Equal(t, dt.EpochSeconds(), got.EpochSeconds())
}
