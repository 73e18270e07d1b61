// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rewards

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	promBlocksWon = promauto.NewCounter(prometheus.CounterOpts{
		Subsystem: "cyclespool",
		Name:      "blocks_won_total",
	})
	promYield = promauto.NewCounter(prometheus.CounterOpts{
		Subsystem: "cyclespool",
		Name:      "yield_total",
	})
	promPayouts = promauto.NewCounter(prometheus.CounterOpts{
		Subsystem: "cyclespool",
		Name:      "payouts_total",
	})
	promPayoutFailures = promauto.NewCounter(prometheus.CounterOpts{
		Subsystem: "cyclespool",
		Name:      "payout_failures_total",
	})
	promPaid = promauto.NewCounter(prometheus.CounterOpts{
		Subsystem: "cyclespool",
		Name:      "paid_total",
	})
)
