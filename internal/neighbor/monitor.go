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
	"context"
	"sync"
	"time"

	"github.com/go-kit/kit/log"
	"golang.org/x/sync/errgroup"

	"linkstated.io/internal/config"
)

// DefaultMonitorPeriod is how often every configured neighbor is
// probed.
const DefaultMonitorPeriod = 500 * time.Millisecond

// Monitor probes every configured neighbor each cycle and replaces
// the inactive set with the cycle's failures. A single failed probe
// marks the neighbor inactive; there is no hysteresis. After each
// cycle it unconditionally requests a route recomputation.
type Monitor struct {
	logger    log.Logger
	neighbors map[string]config.Neighbor
	prober    Prober
	inactive  *Set
	period    time.Duration
	onUpdate  func()
}

// NewMonitor returns a monitor over the static neighbor table.
// onUpdate is invoked after every completed probe cycle.
func NewMonitor(l log.Logger, neighbors map[string]config.Neighbor, prober Prober, inactive *Set, period time.Duration, onUpdate func()) *Monitor {
	if period == 0 {
		period = DefaultMonitorPeriod
	}
	return &Monitor{
		logger:    l,
		neighbors: neighbors,
		prober:    prober,
		inactive:  inactive,
		period:    period,
		onUpdate:  onUpdate,
	}
}

// Run probes all neighbors once per period until the shutdown channel
// closes.
func (m *Monitor) Run(stopCh <-chan struct{}) error {
	ticker := time.NewTicker(m.period)
	defer ticker.Stop()

	for {
		m.Cycle()
		select {
		case <-stopCh:
			return nil
		case <-ticker.C:
		}
	}
}

// Cycle probes every neighbor concurrently, atomically replaces the
// inactive set with the failures, and requests a recomputation.
func (m *Monitor) Cycle() {
	var mu sync.Mutex
	down := map[string]bool{}

	group := new(errgroup.Group)
	for id, neighbor := range m.neighbors {
		id, neighbor := id, neighbor
		group.Go(func() error {
			if !m.prober.Probe(context.Background(), neighbor.IP) {
				mu.Lock()
				down[id] = true
				mu.Unlock()
			}
			return nil
		})
	}
	group.Wait()

	previous := m.inactive.Snapshot()
	m.inactive.Replace(down)

	for id := range down {
		RecordProbeFailure()
		if !previous[id] {
			m.logger.Log("op", "probe", "neighbor", id, "ip", m.neighbors[id].IP, "msg", "neighbor inactive")
		}
	}
	for id := range previous {
		if !down[id] {
			m.logger.Log("op", "probe", "neighbor", id, "ip", m.neighbors[id].IP, "msg", "neighbor active again")
		}
	}
	RecordInactiveCount(len(down))

	if m.onUpdate != nil {
		m.onUpdate()
	}
}
