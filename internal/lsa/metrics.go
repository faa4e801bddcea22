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

package lsa

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "linkstated"
	subsystem        = "lsa"
)

var (
	// sent counts advertisements originated and sent to neighbors.
	sent = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: subsystem,
		Name:      "sent_total",
		Help:      "Total number of originated advertisement datagrams sent",
	})

	// accepted counts received advertisements installed into the database.
	accepted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: subsystem,
		Name:      "accepted_total",
		Help:      "Total number of received advertisements accepted into the database",
	})

	// rejected counts received advertisements dropped as stale or duplicate.
	rejected = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: subsystem,
		Name:      "rejected_total",
		Help:      "Total number of received advertisements rejected by sequence number",
	})

	// flooded counts datagrams forwarded to neighbors.
	flooded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: subsystem,
		Name:      "flooded_total",
		Help:      "Total number of advertisement datagrams forwarded to neighbors",
	})

	// parseErrors counts malformed datagrams dropped on receive.
	parseErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: subsystem,
		Name:      "parse_errors_total",
		Help:      "Total number of malformed advertisements dropped",
	})

	// sendErrors counts transient UDP send failures.
	sendErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: subsystem,
		Name:      "send_errors_total",
		Help:      "Total number of failed advertisement sends",
	})

	// dbSize tracks the number of origins in the link-state database.
	dbSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: subsystem,
		Name:      "lsdb_origins",
		Help:      "Current number of origins in the link-state database",
	})
)

func init() {
	prometheus.MustRegister(sent)
	prometheus.MustRegister(accepted)
	prometheus.MustRegister(rejected)
	prometheus.MustRegister(flooded)
	prometheus.MustRegister(parseErrors)
	prometheus.MustRegister(sendErrors)
	prometheus.MustRegister(dbSize)
}

// RecordSent increments the originated-datagram counter.
func RecordSent() {
	sent.Inc()
}

// RecordAccepted increments the accepted-advertisement counter.
func RecordAccepted() {
	accepted.Inc()
}

// RecordRejected increments the rejected-advertisement counter.
func RecordRejected() {
	rejected.Inc()
}

// RecordFlooded increments the forwarded-datagram counter.
func RecordFlooded() {
	flooded.Inc()
}

// RecordParseError increments the malformed-advertisement counter.
func RecordParseError() {
	parseErrors.Inc()
}

// RecordSendError increments the failed-send counter.
func RecordSendError() {
	sendErrors.Inc()
}

// RecordDBSize sets the database origin count.
func RecordDBSize(n int) {
	dbSize.Set(float64(n))
}
