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
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "metriclock"

// Metrics counts what a Driver does to its clock. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	ticks          prometheus.Counter
	stalledTicks   prometheus.Counter
	turnsCompleted prometheus.Counter
	turnsAdvanced  prometheus.Counter
}

// NewMetrics creates the driver counters and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "ticks_total",
			Help:      "Ticks applied to the simulation clock.",
		}),
		stalledTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "stalled_ticks_total",
			Help:      "Ticks ignored because the current turn was complete.",
		}),
		turnsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "turns_completed_total",
			Help:      "Turns whose remaining time reached zero.",
		}),
		turnsAdvanced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "turns_advanced_total",
			Help:      "Turns started by advancing a completed turn.",
		}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.ticks, m.stalledTicks, m.turnsCompleted, m.turnsAdvanced} {
			if err := reg.Register(c); err != nil {
				return nil, fmt.Errorf("register clock metrics: %w", err)
			}
		}
	}
	return m, nil
}

func (m *Metrics) tick() {
	if m != nil {
		m.ticks.Inc()
	}
}

func (m *Metrics) stalledTick() {
	if m != nil {
		m.stalledTicks.Inc()
	}
}

func (m *Metrics) turnCompleted() {
	if m != nil {
		m.turnsCompleted.Inc()
	}
}

func (m *Metrics) turnAdvanced() {
	if m != nil {
		m.turnsAdvanced.Inc()
	}
}

// clockCollector exports a driven clock's state on every scrape.
type clockCollector struct {
	fetch func() SimulationClock

	elapsedSeconds       *prometheus.Desc
	speed                *prometheus.Desc
	turnRemainingSeconds *prometheus.Desc
	turnBased            *prometheus.Desc
}

func (c *clockCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.elapsedSeconds
	ch <- c.speed
	ch <- c.turnRemainingSeconds
	ch <- c.turnBased
}

func (c *clockCollector) Collect(ch chan<- prometheus.Metric) {
	sim := c.fetch()

	var turnBased float64
	if sim.Mode() == TurnBased {
		turnBased = 1
	}

	ch <- prometheus.MustNewConstMetric(c.elapsedSeconds, prometheus.GaugeValue, sim.EpochSeconds())
	ch <- prometheus.MustNewConstMetric(c.speed, prometheus.GaugeValue, sim.Speed())
	ch <- prometheus.MustNewConstMetric(c.turnRemainingSeconds, prometheus.GaugeValue, sim.TurnRemaining().Seconds())
	ch <- prometheus.MustNewConstMetric(c.turnBased, prometheus.GaugeValue, turnBased)
}

// RegisterCollector registers a collector on reg that reports d's clock state
// (elapsed seconds, speed, turn remaining, turn mode) at scrape time.
func RegisterCollector(reg prometheus.Registerer, d *Driver) error {
	collector := &clockCollector{
		fetch: d.Snapshot,
		elapsedSeconds: prometheus.NewDesc(
			prometheus.BuildFQName(metricsNamespace, "", "elapsed_seconds"),
			"Simulated seconds since the epoch.",
			nil, nil,
		),
		speed: prometheus.NewDesc(
			prometheus.BuildFQName(metricsNamespace, "", "speed"),
			"Current tick multiplier.",
			nil, nil,
		),
		turnRemainingSeconds: prometheus.NewDesc(
			prometheus.BuildFQName(metricsNamespace, "", "turn_remaining_seconds"),
			"Time left in the current turn.",
			nil, nil,
		),
		turnBased: prometheus.NewDesc(
			prometheus.BuildFQName(metricsNamespace, "", "turn_based"),
			"1 if the clock is in turn-based mode, otherwise 0.",
			nil, nil,
		),
	}
	if err := reg.Register(collector); err != nil {
		return fmt.Errorf("register clock collector: %w", err)
	}
	return nil
}
