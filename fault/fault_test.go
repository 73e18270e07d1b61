// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/cyclespool/fault"
)

func TestClasses(t *testing.T) {
	assert.True(t, fault.IsErrInvalid(fault.NotAMember), "not a member")
	assert.False(t, fault.IsErrConcurrency(fault.NotAMember), "not a member is concurrency")
	assert.True(t, fault.IsErrConcurrency(fault.GuardAlreadyHeld), "guard")
	assert.Contains(t, fault.GuardAlreadyHeld.Error(), "concurrency error", "guard message")
	assert.True(t, fault.IsErrFatal(fault.PoolBalanceTooLow), "pool balance")
	assert.True(t, fault.IsErrConsistency(fault.BurnMismatch), "burn mismatch")
	assert.True(t, fault.IsErrNotFound(fault.MinerNotSet), "miner not set")
	assert.True(t, fault.IsErrExists(fault.MinerAlreadySet), "miner already set")
}

func TestWrappedClasses(t *testing.T) {
	err := fmt.Errorf("member %s: %w", "abc", fault.BlockCyclesTooSmall)
	assert.True(t, fault.IsErrInvalid(err), "wrapped invalid")
	assert.True(t, errors.Is(err, fault.BlockCyclesTooSmall), "wrapped sentinel")
}

func TestExternal(t *testing.T) {
	cause := errors.New("connection refused")
	err := fault.External("minter get_statistics", cause)

	assert.True(t, fault.IsErrExternal(err), "class")
	assert.True(t, errors.Is(err, cause), "cause")
	assert.Equal(t, "minter get_statistics: connection refused", err.Error(), "message")

	// an already classed error keeps its class
	err = fault.External("miner deposit_cycles", fault.PoolBalanceTooLow)
	assert.True(t, fault.IsErrFatal(err), "fatal kept")
	assert.False(t, fault.IsErrExternal(err), "fatal became external")

	assert.Nil(t, fault.External("nothing", nil), "nil cause")
}

func TestWrap(t *testing.T) {
	err := fault.Wrap(fault.NotAMember, "set block cycles")
	assert.True(t, fault.IsErrInvalid(err), "class")
	assert.True(t, errors.Is(err, fault.NotAMember), "sentinel")
	assert.Equal(t, "set block cycles: caller is no pool member", err.Error(), "message")
}
