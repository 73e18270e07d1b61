// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/cyclespool/chain"
	"github.com/bitmark-inc/cyclespool/fault"
	"github.com/bitmark-inc/cyclespool/fixtures"
	"github.com/bitmark-inc/cyclespool/rpc"
	"github.com/bitmark-inc/cyclespool/rpc/listeners"
)

func TestInitialiseDisabled(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	configuration := &listeners.RPCConfiguration{}

	assert.Nil(t, rpc.Initialise(configuration, nil, chain.Local, "1.0"), "initialise")
	assert.Equal(t, fault.AlreadyInitialised, rpc.Initialise(configuration, nil, chain.Local, "1.0"), "initialise twice")
	assert.Equal(t, uint64(0), rpc.Connections(), "connections")
	assert.Nil(t, rpc.Finalise(), "finalise")
	assert.Equal(t, fault.NotInitialised, rpc.Finalise(), "finalise twice")
}

func TestInitialiseMissingCertificate(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	configuration := &listeners.RPCConfiguration{
		MaximumConnections: 5,
		Listen:             []string{"127.0.0.1:2130"},
		Certificate:        "missing.crt",
		PrivateKey:         "missing.key",
	}
	assert.NotNil(t, rpc.Initialise(configuration, nil, chain.Local, "1.0"), "initialise")
	assert.Equal(t, fault.NotInitialised, rpc.Finalise(), "nothing started")
}
