// Copyright 2024 Linkstated Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package neighbor

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "linkstated"
	subsystem        = "neighbor"
)

var (
	// inactiveCount tracks how many configured neighbors failed their
	// most recent probe.
	inactiveCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: subsystem,
		Name:      "inactive_count",
		Help:      "Number of configured neighbors that failed their most recent probe",
	})

	// probeFailures counts failed probes across all cycles.
	probeFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: subsystem,
		Name:      "probe_failures_total",
		Help:      "Total number of failed neighbor probes",
	})
)

func init() {
	prometheus.MustRegister(inactiveCount)
	prometheus.MustRegister(probeFailures)
}

// RecordInactiveCount sets the current inactive-neighbor gauge.
func RecordInactiveCount(count int) {
	inactiveCount.Set(float64(count))
}

// RecordProbeFailure increments the failed-probe counter.
func RecordProbeFailure() {
	probeFailures.Inc()
}
