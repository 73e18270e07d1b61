// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package simulate

import (
	"time"

	"github.com/bitmark-inc/cyclespool/cycles"
)

const tickInterval = time.Second

// Driver - moves a world along with the wall clock, mining a round
// every interval
type Driver struct {
	world    *World
	interval time.Duration
	reward   cycles.Cycles
}

// NewDriver - rounds every interval, each paying reward to the pool
func NewDriver(w *World, interval time.Duration, reward cycles.Cycles) *Driver {
	return &Driver{
		world:    w,
		interval: interval,
		reward:   reward,
	}
}

// Run - background process
func (d *Driver) Run(args interface{}, shutdown <-chan struct{}) {
	log := d.world.log
	log.Infof("driver: round interval: %s  reward: %s", d.interval, d.reward)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	last := time.Now()
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case now := <-ticker.C:
			d.Tick(now.Sub(last))
			last = now
		}
	}
	log.Info("driver: stopped")
}

// Tick - advance the clock and mine when a round is due
func (d *Driver) Tick(elapsed time.Duration) bool {
	w := d.world
	w.Advance(elapsed)

	w.Lock()
	due := w.now.Sub(w.lastBlock) >= d.interval
	w.Unlock()

	if due {
		w.MineRound(d.reward)
	}
	return due
}
