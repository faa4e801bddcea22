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

import "sync"

// DB is the link-state database: the most recently accepted
// advertisement from every known origin. A coarse mutex guards the
// whole map; readers take deep-copied snapshots so no caller ever
// observes a torn record.
type DB struct {
	mu      sync.Mutex
	records map[string]Advertisement
}

// NewDB returns an empty link-state database.
func NewDB() *DB {
	return &DB{records: map[string]Advertisement{}}
}

// Update installs adv if it is fresher than what the database holds
// for its origin: the origin is unknown, or adv's sequence number is
// strictly greater than the stored one. Ties and lower sequence
// numbers are rejected. Returns whether adv was installed.
func (db *DB) Update(adv Advertisement) bool {
	db.mu.Lock()
	defer db.mu.Unlock()

	if stored, ok := db.records[adv.ID]; ok && adv.Seq <= stored.Seq {
		return false
	}
	db.records[adv.ID] = adv
	return true
}

// Get returns the stored advertisement for origin, if any.
func (db *DB) Get(origin string) (Advertisement, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()

	adv, ok := db.records[origin]
	return adv, ok
}

// Len returns the number of origins in the database.
func (db *DB) Len() int {
	db.mu.Lock()
	defer db.mu.Unlock()

	return len(db.records)
}

// Snapshot returns a deep copy of the database contents. The copy is
// safe to read while the receive task keeps installing advertisements.
func (db *DB) Snapshot() map[string]Advertisement {
	db.mu.Lock()
	defer db.mu.Unlock()

	records := make(map[string]Advertisement, len(db.records))
	for origin, adv := range db.records {
		neighbors := make(map[string]NeighborInfo, len(adv.Neighbors))
		for id, info := range adv.Neighbors {
			neighbors[id] = info
		}
		adv.Neighbors = neighbors
		records[origin] = adv
	}
	return records
}
