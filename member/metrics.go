// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package member

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	promMembers = promauto.NewGauge(prometheus.GaugeOpts{
		Subsystem: "cyclespool",
		Name:      "member_count",
	})
	promActiveMembers = promauto.NewGauge(prometheus.GaugeOpts{
		Subsystem: "cyclespool",
		Name:      "active_member_count",
	})
	promPendingCycles = promauto.NewGauge(prometheus.GaugeOpts{
		Subsystem: "cyclespool",
		Name:      "pending_cycles",
	})
	promRemainingCycles = promauto.NewGauge(prometheus.GaugeOpts{
		Subsystem: "cyclespool",
		Name:      "remaining_cycles",
	})
)

func (t Totals) export() {
	promMembers.Set(float64(t.Members))
	promActiveMembers.Set(float64(t.Active))
	promPendingCycles.Set(t.Pending.Float64())
	promRemainingCycles.Set(t.Remaining.Float64())
}
