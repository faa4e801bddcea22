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

// Package lsa implements the link-state advertisement engine: periodic
// origination, reception with sequence-number deduplication, flooding,
// and the link-state database that the route computation reads.
package lsa

// NeighborInfo is one entry of an advertisement's neighbor map. The
// JSON names are fixed by the wire protocol.
type NeighborInfo struct {
	IP   string `json:"ip"`
	Cost int    `json:"custo"`
}

// Advertisement is one link-state advertisement: a router's identity
// plus its current set of live neighbors. Seq is strictly monotonic
// per origin and is the sole arbiter of freshness.
type Advertisement struct {
	ID        string                  `json:"id"`
	IP        string                  `json:"ip"`
	Neighbors map[string]NeighborInfo `json:"vizinhos"`
	Seq       int64                   `json:"seq"`
}
