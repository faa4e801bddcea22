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

package route

import (
	"linkstated.io/internal/lsa"
)

// AllNextHops computes the next-hop table for every active origin in
// the database snapshot. Its output is what Path walks; the daemon
// itself only computes from its own identity.
func AllNextHops(records map[string]lsa.Advertisement, inactive map[string]bool) map[string]map[string]string {
	g := BuildGraph(records, inactive)
	tables := make(map[string]map[string]string, len(g))
	for origin := range g {
		tables[origin] = NextHops(g, origin)
	}
	return tables
}

// Path expands the hop-by-hop route from source to dest using the
// per-origin tables from AllNextHops. The walk is bounded by the table
// count so inconsistent tables cannot loop. Returns the full node
// list, source first, or false if no complete path exists.
func Path(tables map[string]map[string]string, source, dest string) ([]string, bool) {
	if source == dest {
		return []string{source}, true
	}

	path := []string{source}
	current := source
	for i := 0; i <= len(tables); i++ {
		table, ok := tables[current]
		if !ok {
			return nil, false
		}
		hop, ok := table[dest]
		if !ok {
			return nil, false
		}
		path = append(path, hop)
		if hop == dest {
			return path, true
		}
		current = hop
	}
	return nil, false
}
