// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/cyclespool/fault"
	"github.com/bitmark-inc/cyclespool/rpc/ratelimit"
)

func TestLimitWithinBurst(t *testing.T) {
	l := ratelimit.New(1, 3)
	for i := 0; i < 3; i += 1 {
		assert.Nil(t, ratelimit.Limit(l), "request: %d", i)
	}
}

func TestLimitRefusesLongWait(t *testing.T) {
	l := ratelimit.New(0.01, 1)
	assert.Nil(t, ratelimit.Limit(l), "first")
	assert.Equal(t, fault.RateLimiting, ratelimit.Limit(l), "second would wait 100s")
}

func TestLimitZeroBurst(t *testing.T) {
	l := rate.NewLimiter(1, 0)
	assert.Equal(t, fault.RateLimiting, ratelimit.Limit(l), "never allowed")
}
