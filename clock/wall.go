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

import "time"

// WallClock is the Source backed by the system clock.
// It holds no state and is safe for concurrent use.
type WallClock struct{}

// NewWallClock creates a Source that reads the system clock.
func NewWallClock() *WallClock {
	return &WallClock{}
}

// Now returns time.Now().
func (w *WallClock) Now() time.Time {
	return time.Now()
}

// After delegates to time.After().
func (w *WallClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
