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
	"testing"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkstated.io/internal/config"
)

// fakeProber answers probes from a fixed address table.
type fakeProber struct {
	mu sync.Mutex
	up map[string]bool
}

func (p *fakeProber) Probe(ctx context.Context, ip string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.up[ip]
}

func (p *fakeProber) set(ip string, up bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.up[ip] = up
}

var testNeighbors = map[string]config.Neighbor{
	"roteador2": {IP: "172.21.1.2", Cost: 10},
	"roteador3": {IP: "172.21.2.2", Cost: 10},
}

func TestCycleMarksFailuresInactive(t *testing.T) {
	prober := &fakeProber{up: map[string]bool{"172.21.1.2": true, "172.21.2.2": false}}
	inactive := NewSet()

	updates := 0
	monitor := NewMonitor(log.NewNopLogger(), testNeighbors, prober, inactive, time.Second, func() { updates++ })

	monitor.Cycle()
	assert.False(t, inactive.Contains("roteador2"))
	assert.True(t, inactive.Contains("roteador3"))
	assert.Equal(t, 1, updates, "every cycle requests a recomputation")

	// the neighbor comes back: a single good probe clears it
	prober.set("172.21.2.2", true)
	monitor.Cycle()
	assert.False(t, inactive.Contains("roteador3"))
	assert.Equal(t, 2, updates)
}

func TestCycleReplacesWholeSet(t *testing.T) {
	prober := &fakeProber{up: map[string]bool{"172.21.1.2": false, "172.21.2.2": false}}
	inactive := NewSet()
	monitor := NewMonitor(log.NewNopLogger(), testNeighbors, prober, inactive, time.Second, nil)

	monitor.Cycle()
	require.Equal(t, map[string]bool{"roteador2": true, "roteador3": true}, inactive.Snapshot())

	prober.set("172.21.1.2", true)
	monitor.Cycle()
	assert.Equal(t, map[string]bool{"roteador3": true}, inactive.Snapshot())
}

func TestRunStopsPromptly(t *testing.T) {
	prober := &fakeProber{up: map[string]bool{"172.21.1.2": true, "172.21.2.2": true}}
	monitor := NewMonitor(log.NewNopLogger(), testNeighbors, prober, NewSet(), 10*time.Millisecond, nil)

	stopCh := make(chan struct{})
	done := make(chan struct{})
	go func() {
		monitor.Run(stopCh)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	close(stopCh)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not stop within 2s")
	}
}
