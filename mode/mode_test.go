// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/cyclespool/fault"
	"github.com/bitmark-inc/cyclespool/mode"
)

func TestStart(t *testing.T) {
	m, err := mode.Start(mode.Stopped)
	assert.Nil(t, err, "from stopped")
	assert.Equal(t, mode.Running, m, "stopped → running")

	m, err = mode.Start(mode.Stopping)
	assert.Nil(t, err, "from stopping")
	assert.Equal(t, mode.Running, m, "stopping → running")

	m, err = mode.Start(mode.Running)
	assert.Equal(t, fault.PoolAlreadyRunning, err, "from running")
	assert.Equal(t, mode.Running, m, "unchanged")
}

func TestStop(t *testing.T) {
	m, err := mode.Stop(mode.Running)
	assert.Nil(t, err, "from running")
	assert.Equal(t, mode.Stopping, m, "running → stopping")

	_, err = mode.Stop(mode.Stopping)
	assert.Equal(t, fault.PoolNotRunning, err, "from stopping")

	_, err = mode.Stop(mode.Stopped)
	assert.Equal(t, fault.PoolNotRunning, err, "from stopped")
}

func TestString(t *testing.T) {
	assert.Equal(t, "Running", mode.Running.String(), "running")
	assert.Equal(t, "Stopping", mode.Stopping.String(), "stopping")
	assert.Equal(t, "Stopped", mode.Stopped.String(), "stopped")
	assert.Equal(t, "*Unknown*", mode.Mode(7).String(), "unknown")
	assert.False(t, mode.Mode(7).Valid(), "unknown valid")
}
