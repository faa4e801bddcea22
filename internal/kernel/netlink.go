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

	"github.com/vishvananda/netlink"
)

// Netlink implements RouteReplacer against the kernel routing table,
// the native equivalent of "ip route replace <subnet> via <gateway>".
type Netlink struct{}

// Replace upserts the route for dst via gw.
func (Netlink) Replace(dst *net.IPNet, gw net.IP) error {
	route := netlink.Route{Dst: dst, Gw: gw}
	if err := netlink.RouteReplace(&route); err != nil {
		return fmt.Errorf("could not replace route %v via %v: %w", dst, gw, err)
	}
	return nil
}
