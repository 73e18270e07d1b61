// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package simulate_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/cyclespool/bridge/simulate"
	"github.com/bitmark-inc/cyclespool/cycles"
	"github.com/bitmark-inc/cyclespool/fixtures"
)

func TestDriverMinesOnInterval(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	w := setupWorld(t)
	d := simulate.NewDriver(w, 8*time.Minute, cycles.New(1_000_000))
	minter := w.Collaborators().Minter

	assert.False(t, d.Tick(5*time.Minute), "too early")
	assert.True(t, d.Tick(3*time.Minute), "round due")
	assert.False(t, d.Tick(time.Minute), "next round not due")

	stats, err := minter.Statistics(context.Background())
	assert.Nil(t, err, "statistics")
	assert.Equal(t, uint64(1), stats.BlockCount, "one round")
	assert.Equal(t, uint64(60), stats.TimeSinceLastBlock, "seconds since round")
}
