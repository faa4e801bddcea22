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
	"fmt"
	"net"
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"linkstated.io/internal/lsa"
)

// fakeReplacer records the forwarding-table rows it is asked for.
type fakeReplacer struct {
	rows   map[string]string // subnet -> gateway
	failOn string            // subnet that rejects updates
	errs   int
}

func newFakeReplacer() *fakeReplacer {
	return &fakeReplacer{rows: map[string]string{}}
}

func (r *fakeReplacer) Replace(dst *net.IPNet, gw net.IP) error {
	if dst.String() == r.failOn {
		r.errs++
		return fmt.Errorf("kernel rejected route %v", dst)
	}
	r.rows[dst.String()] = gw.String()
	return nil
}

var testRecords = map[string]lsa.Advertisement{
	"roteador1": {ID: "roteador1", IP: "172.21.0.2", Neighbors: map[string]lsa.NeighborInfo{}, Seq: 1},
	"roteador2": {ID: "roteador2", IP: "172.21.1.2", Neighbors: map[string]lsa.NeighborInfo{}, Seq: 1},
	"roteador3": {ID: "roteador3", IP: "172.21.2.2", Neighbors: map[string]lsa.NeighborInfo{}, Seq: 1},
}

func TestInstall(t *testing.T) {
	routes := newFakeReplacer()
	installer := NewInstaller(log.NewNopLogger(), routes)

	installer.Install(map[string]string{
		"roteador2": "roteador2",
		"roteador3": "roteador2",
	}, testRecords)

	want := map[string]string{
		"172.21.1.0/24": "172.21.1.2",
		"172.21.2.0/24": "172.21.1.2",
	}
	if diff := cmp.Diff(want, routes.rows); diff != "" {
		t.Fatalf("unexpected forwarding rows (-want +got):\n%s", diff)
	}
}

func TestInstallIsIdempotent(t *testing.T) {
	routes := newFakeReplacer()
	installer := NewInstaller(log.NewNopLogger(), routes)

	table := map[string]string{"roteador2": "roteador2", "roteador3": "roteador2"}
	installer.Install(table, testRecords)
	first := map[string]string{}
	for k, v := range routes.rows {
		first[k] = v
	}

	installer.Install(table, testRecords)
	assert.Equal(t, first, routes.rows)
	assert.Zero(t, routes.errs)
}

func TestInstallSkipsMissingRecords(t *testing.T) {
	routes := newFakeReplacer()
	installer := NewInstaller(log.NewNopLogger(), routes)

	installer.Install(map[string]string{
		"roteador2": "roteador2",
		"roteador9": "roteador2", // unknown destination
		"roteador3": "roteador9", // unknown next hop
	}, testRecords)

	want := map[string]string{"172.21.1.0/24": "172.21.1.2"}
	if diff := cmp.Diff(want, routes.rows); diff != "" {
		t.Fatalf("unexpected forwarding rows (-want +got):\n%s", diff)
	}
}

func TestInstallFailureDoesNotAbortBatch(t *testing.T) {
	routes := newFakeReplacer()
	routes.failOn = "172.21.1.0/24"
	installer := NewInstaller(log.NewNopLogger(), routes)

	installer.Install(map[string]string{
		"roteador2": "roteador2",
		"roteador3": "roteador2",
	}, testRecords)

	assert.Equal(t, 1, routes.errs)
	assert.Equal(t, map[string]string{"172.21.2.0/24": "172.21.1.2"}, routes.rows)
}
