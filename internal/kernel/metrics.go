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

package kernel

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "linkstated"
	subsystem        = "kernel"
)

var (
	// installs counts successful route replaces.
	installs = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: subsystem,
		Name:      "route_replaces_total",
		Help:      "Total number of successful route replace operations",
	})

	// installFailures counts route replaces the kernel rejected.
	installFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: subsystem,
		Name:      "route_replace_failures_total",
		Help:      "Total number of failed route replace operations",
	})
)

func init() {
	prometheus.MustRegister(installs)
	prometheus.MustRegister(installFailures)
}

// RecordInstall increments the successful-replace counter.
func RecordInstall() {
	installs.Inc()
}

// RecordInstallFailure increments the failed-replace counter.
func RecordInstallFailure() {
	installFailures.Inc()
}
