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

package netutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterIndex(t *testing.T) {
	n, err := RouterIndex("roteador1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = RouterIndex("roteador12")
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	for _, id := range []string{"", "roteador", "roteador0", "roteadorx", "router3", "3"} {
		_, err := RouterIndex(id)
		assert.ErrorIs(t, err, ErrBadAddress, "identifier %q", id)
	}
}

func TestSubnet(t *testing.T) {
	ipnet, err := Subnet("roteador1")
	require.NoError(t, err)
	assert.Equal(t, "172.21.0.0/24", ipnet.String())

	ipnet, err = Subnet("roteador5")
	require.NoError(t, err)
	assert.Equal(t, "172.21.4.0/24", ipnet.String())

	_, err = Subnet("roteadorzero")
	assert.ErrorIs(t, err, ErrBadAddress)
}

func TestGatewayAndInterfaceIP(t *testing.T) {
	gw, err := Gateway("roteador3")
	require.NoError(t, err)
	assert.Equal(t, "172.21.2.1", gw.String())

	ip, err := InterfaceIP("roteador3")
	require.NoError(t, err)
	assert.Equal(t, "172.21.2.2", ip.String())
}

func TestSubnetFromIP(t *testing.T) {
	ipnet, err := SubnetFromIP("172.21.3.2")
	require.NoError(t, err)
	assert.Equal(t, "172.21.3.0/24", ipnet.String())

	ipnet, err = SubnetFromIP("10.1.2.77")
	require.NoError(t, err)
	assert.Equal(t, "10.1.2.0/24", ipnet.String())

	for _, addr := range []string{"", "172.21.3", "fe80::1", "not-an-ip"} {
		_, err := SubnetFromIP(addr)
		assert.ErrorIs(t, err, ErrBadAddress, "address %q", addr)
	}
}

func TestInterfaceIPFromIP(t *testing.T) {
	ip, err := InterfaceIPFromIP("172.21.3.7")
	require.NoError(t, err)
	assert.Equal(t, "172.21.3.2", ip.String())

	_, err = InterfaceIPFromIP("::1")
	assert.ErrorIs(t, err, ErrBadAddress)
}
