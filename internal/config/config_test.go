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

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const neighborsJSON = `{"roteador2": ["172.21.1.2", 10], "roteador5": ["172.21.4.2", 20]}`

func TestParse(t *testing.T) {
	cfg, err := Parse("roteador1", "172.21.0.2", neighborsJSON, 5000)
	require.NoError(t, err)

	assert.Equal(t, "roteador1", cfg.RouterID)
	assert.Equal(t, "172.21.0.2", cfg.RouterIP)
	assert.Equal(t, 5000, cfg.LSAPort)
	assert.Equal(t, map[string]Neighbor{
		"roteador2": {IP: "172.21.1.2", Cost: 10},
		"roteador5": {IP: "172.21.4.2", Cost: 20},
	}, cfg.Neighbors)
}

func TestParseMissingValues(t *testing.T) {
	_, err := Parse("", "172.21.0.2", neighborsJSON, 5000)
	assert.Error(t, err)

	_, err = Parse("roteador1", "", neighborsJSON, 5000)
	assert.Error(t, err)

	_, err = Parse("roteador1", "172.21.0.2", "", 5000)
	assert.Error(t, err)
}

func TestParseBadValues(t *testing.T) {
	// malformed identifier
	_, err := Parse("router-one", "172.21.0.2", neighborsJSON, 5000)
	assert.Error(t, err)

	// IPv6 primary address
	_, err = Parse("roteador1", "fe80::1", neighborsJSON, 5000)
	assert.Error(t, err)

	// not JSON
	_, err = Parse("roteador1", "172.21.0.2", "not json", 5000)
	assert.Error(t, err)

	// wrong element count
	_, err = Parse("roteador1", "172.21.0.2", `{"roteador2": ["172.21.1.2"]}`, 5000)
	assert.Error(t, err)

	// bad neighbor address
	_, err = Parse("roteador1", "172.21.0.2", `{"roteador2": ["nope", 10]}`, 5000)
	assert.Error(t, err)

	// zero cost
	_, err = Parse("roteador1", "172.21.0.2", `{"roteador2": ["172.21.1.2", 0]}`, 5000)
	assert.Error(t, err)

	// fractional cost
	_, err = Parse("roteador1", "172.21.0.2", `{"roteador2": ["172.21.1.2", 1.5]}`, 5000)
	assert.Error(t, err)

	// out-of-range port
	_, err = Parse("roteador1", "172.21.0.2", neighborsJSON, 70000)
	assert.Error(t, err)
}
