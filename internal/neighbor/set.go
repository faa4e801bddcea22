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

// Package neighbor monitors the reachability of the statically
// configured neighbors and owns the inactive-neighbor set.
package neighbor

import "sync"

// Set is the inactive-neighbor set. It is written only by the
// monitor; the advertisement engine and the route computation read
// it. Readers always observe a complete probe cycle's result, never a
// partial one.
type Set struct {
	mu  sync.RWMutex
	ids map[string]bool
}

// NewSet returns an empty inactive set.
func NewSet() *Set {
	return &Set{ids: map[string]bool{}}
}

// Replace atomically swaps the set contents for the given cycle
// result.
func (s *Set) Replace(ids map[string]bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ids = ids
}

// Contains reports whether id is currently inactive.
func (s *Set) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.ids[id]
}

// Snapshot returns a copy of the current set.
func (s *Set) Snapshot() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make(map[string]bool, len(s.ids))
	for id := range s.ids {
		ids[id] = true
	}
	return ids
}
