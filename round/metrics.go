// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package round

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	promRounds = promauto.NewCounter(prometheus.CounterOpts{
		Subsystem: "cyclespool",
		Name:      "rounds_committed_total",
	})
	promRoundFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Subsystem: "cyclespool",
		Name:      "round_failures_total",
	}, []string{"stage"})
	promSkippedBlocks = promauto.NewCounter(prometheus.CounterOpts{
		Subsystem: "cyclespool",
		Name:      "skipped_blocks_total",
	})
	promStage = promauto.NewGauge(prometheus.GaugeOpts{
		Subsystem: "cyclespool",
		Name:      "round_stage",
	})
	promCommittedCycles = promauto.NewGauge(prometheus.GaugeOpts{
		Subsystem: "cyclespool",
		Name:      "committed_cycles",
	})
	promTopUpCycles = promauto.NewCounter(prometheus.CounterOpts{
		Subsystem: "cyclespool",
		Name:      "miner_top_up_cycles_total",
	})
)
