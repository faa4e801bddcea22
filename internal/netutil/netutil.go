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

// Package netutil derives addresses from the lab's fixed addressing
// plan: router N owns the /24 subnet 172.21.<N-1>.0/24, where .1 is
// the host-side gateway and .2 is the router's own interface.
package netutil

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/apparentlymart/go-cidr/cidr"
)

// ErrBadAddress reports a router identifier or IPv4 address that does
// not fit the addressing plan.
var ErrBadAddress = errors.New("bad address")

const (
	routerPrefix = "roteador"

	// host numbers within a router's /24
	gatewayHost   = 1
	interfaceHost = 2
)

// RouterIndex parses N from an identifier of the form "roteador<N>",
// N >= 1.
func RouterIndex(id string) (int, error) {
	num, ok := strings.CutPrefix(id, routerPrefix)
	if !ok || num == "" {
		return 0, fmt.Errorf("%w: identifier %q", ErrBadAddress, id)
	}
	n, err := strconv.Atoi(num)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: identifier %q", ErrBadAddress, id)
	}
	return n, nil
}

// Subnet returns the /24 owned by the named router, 172.21.<N-1>.0/24.
func Subnet(id string) (*net.IPNet, error) {
	n, err := RouterIndex(id)
	if err != nil {
		return nil, err
	}
	_, ipnet, err := net.ParseCIDR(fmt.Sprintf("172.21.%d.0/24", n-1))
	if err != nil {
		return nil, fmt.Errorf("%w: identifier %q", ErrBadAddress, id)
	}
	return ipnet, nil
}

// Gateway returns the host-side gateway address of the named router's
// subnet, 172.21.<N-1>.1.
func Gateway(id string) (net.IP, error) {
	ipnet, err := Subnet(id)
	if err != nil {
		return nil, err
	}
	return cidr.Host(ipnet, gatewayHost)
}

// InterfaceIP returns the named router's own interface address on its
// subnet, 172.21.<N-1>.2.
func InterfaceIP(id string) (net.IP, error) {
	ipnet, err := Subnet(id)
	if err != nil {
		return nil, err
	}
	return cidr.Host(ipnet, interfaceHost)
}

// SubnetFromIP returns the /24 containing addr, a.b.c.0/24.
func SubnetFromIP(addr string) (*net.IPNet, error) {
	ip := net.ParseIP(addr)
	if ip == nil || ip.To4() == nil {
		return nil, fmt.Errorf("%w: address %q", ErrBadAddress, addr)
	}
	mask := net.CIDRMask(24, 32)
	return &net.IPNet{IP: ip.To4().Mask(mask), Mask: mask}, nil
}

// InterfaceIPFromIP returns the router interface address on addr's
// subnet, a.b.c.2.
func InterfaceIPFromIP(addr string) (net.IP, error) {
	ipnet, err := SubnetFromIP(addr)
	if err != nil {
		return nil, err
	}
	return cidr.Host(ipnet, interfaceHost)
}
