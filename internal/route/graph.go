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

// Package route computes next-hop tables from a link-state database
// snapshot. It has no side effects; the kernel package consumes its
// output.
package route

import (
	"linkstated.io/internal/config"
	"linkstated.io/internal/lsa"
)

// Graph is a directed weighted adjacency map keyed by router id. Each
// node's edges come solely from that node's own advertisement, so the
// graph may be transiently asymmetric while the database converges.
type Graph map[string]map[string]int

// BuildGraph derives the routing graph from a database snapshot minus
// the inactive set: inactive routers contribute no node and receive no
// edges.
func BuildGraph(records map[string]lsa.Advertisement, inactive map[string]bool) Graph {
	g := make(Graph, len(records))
	for origin, adv := range records {
		if inactive[origin] {
			continue
		}
		edges := make(map[string]int, len(adv.Neighbors))
		for id, info := range adv.Neighbors {
			if inactive[id] {
				continue
			}
			edges[id] = info.Cost
		}
		g[origin] = edges
	}
	return g
}

// SetSource injects the local node's edges from the static neighbor
// table, replacing any database-derived entry for it. The static table
// is authoritative for the local node, so the computation works
// whether or not the node's own advertisement looped back into the
// database.
func (g Graph) SetSource(id string, neighbors map[string]config.Neighbor, inactive map[string]bool) {
	edges := make(map[string]int, len(neighbors))
	for nid, neighbor := range neighbors {
		if inactive[nid] {
			continue
		}
		edges[nid] = neighbor.Cost
	}
	g[id] = edges
}
