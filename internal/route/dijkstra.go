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

import "container/heap"

// visit is one pending heap entry: a router and the tentative distance
// it was pushed with.
type visit struct {
	id   string
	dist int
}

// visitHeap is a binary min-heap of pending visits keyed on distance.
// Equal distances pop in arrival order only as far as heap mechanics
// allow; ties need no stable secondary key.
type visitHeap []visit

func (h visitHeap) Len() int           { return len(h) }
func (h visitHeap) Less(i, j int) bool { return h[i].dist < h[j].dist }
func (h visitHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *visitHeap) Push(x any) {
	*h = append(*h, x.(visit))
}

func (h *visitHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// NextHops runs Dijkstra over g from source and returns, for each
// reachable destination, the first hop on the shortest path. The
// source itself and unreachable destinations are omitted; a direct
// neighbor is its own next hop. If the source is not in the graph the
// table is empty.
func NextHops(g Graph, source string) map[string]string {
	next := map[string]string{}
	if _, ok := g[source]; !ok {
		return next
	}

	dist := map[string]int{source: 0}
	prev := map[string]string{}

	h := &visitHeap{{id: source, dist: 0}}
	for h.Len() > 0 {
		current := heap.Pop(h).(visit)

		// A stale entry: the router was pushed again with a shorter
		// distance after this one.
		if current.dist > dist[current.id] {
			continue
		}

		for id, weight := range g[current.id] {
			if _, ok := g[id]; !ok {
				// Advertised neighbor with no advertisement of its own;
				// not a routable node.
				continue
			}
			candidate := current.dist + weight
			if best, seen := dist[id]; !seen || candidate < best {
				dist[id] = candidate
				prev[id] = current.id
				heap.Push(h, visit{id: id, dist: candidate})
			}
		}
	}

	for dest := range g {
		if dest == source {
			continue
		}
		if hop, ok := firstHop(prev, source, dest, len(g)); ok {
			next[dest] = hop
		}
	}
	return next
}

// firstHop walks the predecessor chain from dest back toward source
// and returns the node immediately after source. The walk is iterative
// and bounded by the node count so a malformed chain cannot loop.
func firstHop(prev map[string]string, source, dest string, bound int) (string, bool) {
	current := dest
	for i := 0; i <= bound; i++ {
		p, ok := prev[current]
		if !ok {
			return "", false
		}
		if p == source {
			return current, true
		}
		current = p
	}
	return "", false
}
