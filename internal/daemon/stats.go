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

package daemon

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricsNamespace = "linkstated"
	subsystem        = "route"
)

var (
	// recomputes counts shortest-path runs.
	recomputes = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: subsystem,
		Name:      "recomputes_total",
		Help:      "Total number of next-hop table recomputations",
	})

	// tableSize tracks the size of the most recent next-hop table.
	tableSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: subsystem,
		Name:      "table_size",
		Help:      "Number of destinations in the most recent next-hop table",
	})
)

func init() {
	prometheus.MustRegister(recomputes)
	prometheus.MustRegister(tableSize)
}

// RecordRecompute counts one shortest-path run producing a table of
// the given size.
func RecordRecompute(size int) {
	recomputes.Inc()
	tableSize.Set(float64(size))
}

// RunMetrics serves the Prometheus metrics endpoint.
func RunMetrics(metricsHost string, metricsPort int) {
	http.Handle("/metrics", promhttp.Handler())
	http.ListenAndServe(fmt.Sprintf("%s:%d", metricsHost, metricsPort), nil)
}
