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
	"slices"
	"sync"
	"time"
)

// VirtualClock is a Source whose time only moves when AdvanceTo or AdvanceBy
// is called. Pair it with a Driver to replay a simulation deterministically or
// to run hours of simulated play in a test without waiting.
//
// VirtualClock is safe for concurrent use by multiple goroutines.
//
// Example:
//
//	src := clock.NewVirtualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
//	timer := src.After(5 * time.Second)
//	src.AdvanceBy(10 * time.Second)
//	<-timer // receives immediately
type VirtualClock struct {
	mu      sync.RWMutex
	current time.Time
	timers  []*virtualTimer
}

// virtualTimer is a pending channel created by After().
type virtualTimer struct {
	deadline time.Time
	ch       chan time.Time
}

// NewVirtualClock creates a virtual clock reading start.
func NewVirtualClock(start time.Time) *VirtualClock {
	return &VirtualClock{current: start}
}

// Now returns the current virtual time.
func (v *VirtualClock) Now() time.Time {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// After returns a channel that fires once virtual time reaches now+d.
// A non-positive d fires immediately.
func (v *VirtualClock) After(d time.Duration) <-chan time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()

	timer := &virtualTimer{
		deadline: v.current.Add(d),
		ch:       make(chan time.Time, 1),
	}
	if !timer.deadline.After(v.current) {
		timer.fire(v.current)
	} else {
		v.timers = append(v.timers, timer)
	}
	return timer.ch
}

// AdvanceTo moves the clock to target and fires every timer whose deadline
// has been reached, earliest first. The clock never moves backward; a target
// at or before the current time is a no-op.
func (v *VirtualClock) AdvanceTo(target time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !target.After(v.current) {
		return
	}
	v.current = target
	v.fireDue()
}

// AdvanceBy moves the clock forward by d. Non-positive durations are a no-op.
func (v *VirtualClock) AdvanceBy(d time.Duration) {
	if d <= 0 {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.current = v.current.Add(d)
	v.fireDue()
}

// fireDue fires due timers. Must be called with mu held.
func (v *VirtualClock) fireDue() {
	slices.SortStableFunc(v.timers, func(a, b *virtualTimer) int {
		return a.deadline.Compare(b.deadline)
	})

	n := 0
	for _, timer := range v.timers {
		if timer.deadline.After(v.current) {
			break
		}
		timer.fire(v.current)
		n++
	}
	v.timers = slices.Delete(v.timers, 0, n)
}

func (t *virtualTimer) fire(now time.Time) {
	t.ch <- now
	close(t.ch)
}

// PendingTimers returns the number of timers waiting to fire.
func (v *VirtualClock) PendingTimers() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.timers)
}
