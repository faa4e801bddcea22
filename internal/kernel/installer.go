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

// Package kernel reconciles computed next-hop tables with the host's
// forwarding table.
package kernel

import (
	"net"

	"github.com/go-kit/kit/log"

	"linkstated.io/internal/lsa"
	"linkstated.io/internal/netutil"
)

// RouteReplacer upserts one destination-subnet to gateway row in the
// forwarding table. Replace semantics are required so reruns converge
// rather than error.
type RouteReplacer interface {
	Replace(dst *net.IPNet, gw net.IP) error
}

// Installer pushes computed next-hop tables into the forwarding
// table. It is stateless: each invocation pushes the full table, and
// it never removes routes.
type Installer struct {
	logger log.Logger
	routes RouteReplacer
}

// NewInstaller returns an installer that issues route updates through
// routes.
func NewInstaller(l log.Logger, routes RouteReplacer) *Installer {
	return &Installer{logger: l, routes: routes}
}

// Install translates table into subnet-via-gateway rows and issues
// one replace per row. The destination's subnet and the next hop's
// interface address are derived from the IPs their advertisements
// carry; an entry whose advertisement is missing is skipped. A
// failing row is logged and does not abort the batch.
func (ins *Installer) Install(table map[string]string, records map[string]lsa.Advertisement) {
	for dest, hop := range table {
		destAdv, ok := records[dest]
		if !ok {
			ins.logger.Log("op", "routeReplace", "dest", dest, "msg", "destination not in database, skipping")
			continue
		}
		hopAdv, ok := records[hop]
		if !ok {
			ins.logger.Log("op", "routeReplace", "dest", dest, "via", hop, "msg", "next hop not in database, skipping")
			continue
		}

		subnet, err := netutil.SubnetFromIP(destAdv.IP)
		if err != nil {
			ins.logger.Log("op", "routeReplace", "dest", dest, "ip", destAdv.IP, "error", err, "msg", "skipping route")
			continue
		}
		gateway, err := netutil.InterfaceIPFromIP(hopAdv.IP)
		if err != nil {
			ins.logger.Log("op", "routeReplace", "dest", dest, "via", hop, "ip", hopAdv.IP, "error", err, "msg", "skipping route")
			continue
		}

		if err := ins.routes.Replace(subnet, gateway); err != nil {
			RecordInstallFailure()
			ins.logger.Log("op", "routeReplace", "subnet", subnet.String(), "gateway", gateway.String(), "error", err, "msg", "route update failed")
			continue
		}
		RecordInstall()
		ins.logger.Log("op", "routeReplace", "subnet", subnet.String(), "gateway", gateway.String(), "msg", "route updated")
	}
}
