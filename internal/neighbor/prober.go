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
	"time"

	probing "github.com/prometheus-community/pro-bing"
)

// DefaultProbeTimeout is the hard deadline on a single reachability
// probe.
const DefaultProbeTimeout = 100 * time.Millisecond

// Prober checks whether a single address answers a reachability
// probe. Any failure, including a crashed or timed-out probe, reads
// as unreachable.
type Prober interface {
	Probe(ctx context.Context, ip string) bool
}

// PingProber probes with a single ICMP echo and a hard deadline.
// Inside the container it runs privileged, on a raw socket.
type PingProber struct {
	Timeout    time.Duration
	Privileged bool
}

// Probe sends one echo request to ip and reports whether a reply came
// back before the deadline.
func (p PingProber) Probe(ctx context.Context, ip string) bool {
	pinger, err := probing.NewPinger(ip)
	if err != nil {
		return false
	}
	pinger.Count = 1
	pinger.Timeout = p.Timeout
	if pinger.Timeout == 0 {
		pinger.Timeout = DefaultProbeTimeout
	}
	pinger.SetPrivileged(p.Privileged)

	if err := pinger.RunWithContext(ctx); err != nil {
		return false
	}
	return pinger.Statistics().PacketsRecv > 0
}
