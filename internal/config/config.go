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

// Package "config" provides code for parsing and validating the
// router's startup configuration: its identity and the static
// neighbor table. Both come from the environment and are immutable
// for the process lifetime.
package config

import (
	"encoding/json"
	"fmt"
	"net"

	"linkstated.io/internal/netutil"
)

// Neighbor is one entry of the static neighbor table: the neighbor's
// primary interface address and the cost of the link to it.
type Neighbor struct {
	IP   string
	Cost int
}

// UnmarshalJSON accepts the two-element array form emitted by the
// topology generator: ["172.21.1.2", 10].
func (n *Neighbor) UnmarshalJSON(b []byte) error {
	var fields []interface{}
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	if len(fields) != 2 {
		return fmt.Errorf("expected [ip, cost], got %d elements", len(fields))
	}
	ip, ok := fields[0].(string)
	if !ok {
		return fmt.Errorf("neighbor ip must be a string, got %T", fields[0])
	}
	cost, ok := fields[1].(float64)
	if !ok || cost != float64(int(cost)) {
		return fmt.Errorf("neighbor cost must be an integer, got %v", fields[1])
	}
	n.IP = ip
	n.Cost = int(cost)
	return nil
}

// Config is a parsed and validated router configuration.
type Config struct {
	// RouterID is this router's identifier, e.g. "roteador3".
	RouterID string

	// RouterIP is the IPv4 address of this router's primary interface.
	RouterIP string

	// Neighbors maps neighbor-id to its address and link cost.
	Neighbors map[string]Neighbor

	// LSAPort is the UDP port advertisements are exchanged on.
	LSAPort int
}

// Parse validates the raw environment values and builds a Config. Any
// error here is fatal at startup.
func Parse(routerID, routerIP, neighborsJSON string, lsaPort int) (*Config, error) {
	if routerID == "" {
		return nil, fmt.Errorf("ROTEADOR_ID must be set")
	}
	if _, err := netutil.RouterIndex(routerID); err != nil {
		return nil, fmt.Errorf("invalid ROTEADOR_ID: %w", err)
	}
	if ip := net.ParseIP(routerIP); ip == nil || ip.To4() == nil {
		return nil, fmt.Errorf("invalid ENDERECO_IP %q", routerIP)
	}
	if neighborsJSON == "" {
		return nil, fmt.Errorf("VIZINHOS must be set")
	}

	neighbors := map[string]Neighbor{}
	if err := json.Unmarshal([]byte(neighborsJSON), &neighbors); err != nil {
		return nil, fmt.Errorf("invalid VIZINHOS: %w", err)
	}
	for id, neighbor := range neighbors {
		if ip := net.ParseIP(neighbor.IP); ip == nil || ip.To4() == nil {
			return nil, fmt.Errorf("invalid VIZINHOS: neighbor %q has address %q", id, neighbor.IP)
		}
		if neighbor.Cost <= 0 {
			return nil, fmt.Errorf("invalid VIZINHOS: neighbor %q has cost %d", id, neighbor.Cost)
		}
	}

	if lsaPort < 0 || lsaPort > 65535 {
		return nil, fmt.Errorf("invalid LSA port %d", lsaPort)
	}

	return &Config{
		RouterID:  routerID,
		RouterIP:  routerIP,
		Neighbors: neighbors,
		LSAPort:   lsaPort,
	}, nil
}
