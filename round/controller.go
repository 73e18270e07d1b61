// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package round - the three stage round controller
//
// Stage1 resets the miner allowance, realizes new yield and decides
// from the minter statistics when the next round can be joined.
// Stage2 commits the eligible members and tops up the miner.  Stage3
// checks that the miner burned exactly the committed cycles.  Every
// failure restarts the loop at Stage1; only a Stopping pool seen at
// Stage1 ends it.
package round

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bitmark-inc/cyclespool/bridge"
	"github.com/bitmark-inc/cyclespool/constants"
	"github.com/bitmark-inc/cyclespool/cycles"
	"github.com/bitmark-inc/cyclespool/member"
	"github.com/bitmark-inc/cyclespool/messagebus"
	"github.com/bitmark-inc/cyclespool/mode"
	"github.com/bitmark-inc/cyclespool/rewards"
	"github.com/bitmark-inc/cyclespool/state"
	"github.com/bitmark-inc/logger"
)

// Stage - position in the round loop
type Stage int32

// stages; Idle is the loop waiting for a start
const (
	Idle Stage = iota
	Stage1
	Stage2
	Stage3
)

// String - stage name
func (s Stage) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Stage1:
		return "Stage1"
	case Stage2:
		return "Stage2"
	case Stage3:
		return "Stage3"
	default:
		return "*Unknown*"
	}
}

// MarshalText - stage name for JSON
func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

var (
	minerBuffer = cycles.New(constants.MinerBuffer)
	poolFloor   = cycles.New(constants.PoolFloor)
)

// Commitment - event sent for a committed round
type Commitment struct {
	Participants []member.Participant `json:"participants"`
	Total        cycles.Cycles        `json:"total"`
	TopUp        cycles.Cycles        `json:"topUp"`
}

// Controller - drives rounds while the pool is running
type Controller struct {
	sync.Mutex // serialises Start and Stop

	log     *logger.L
	timings Timings
	state   *state.Store
	ledger  *member.Ledger
	rewards *rewards.Engine
	minter  bridge.Minter
	miner   bridge.Miner
	host    bridge.Host

	stage     int32
	committed cycles.Cycles // only touched by the loop
	wake      chan struct{}
}

// New - controller; call Run through background.Start
func New(log *logger.L, timings Timings, st *state.Store, ledger *member.Ledger, engine *rewards.Engine, bridges bridge.Collaborators) *Controller {
	return &Controller{
		log:     log,
		timings: timings,
		state:   st,
		ledger:  ledger,
		rewards: engine,
		minter:  bridges.Minter,
		miner:   bridges.Miner,
		host:    bridges.Host,
		wake:    make(chan struct{}, 1),
	}
}

// Stage - where the loop is now
func (c *Controller) Stage() Stage {
	return Stage(atomic.LoadInt32(&c.stage))
}

func (c *Controller) setStage(s Stage) {
	atomic.StoreInt32(&c.stage, int32(s))
	promStage.Set(float64(s))
}

// Start - Stopped → Running kicks a fresh Stage1; Stopping → Running
// cancels the pending stop of a loop that is still going
func (c *Controller) Start() error {
	c.Lock()
	defer c.Unlock()

	old, next, err := c.state.UpdateMode(mode.Start)
	if nil != err {
		return err
	}
	messagebus.Announce(messagebus.ModeEvent, next)
	if mode.Stopped == old {
		select {
		case c.wake <- struct{}{}:
		default:
		}
	}
	return nil
}

// Stop - Running → Stopping; the loop halts at its next Stage1
func (c *Controller) Stop() error {
	c.Lock()
	defer c.Unlock()

	_, next, err := c.state.UpdateMode(mode.Stop)
	if nil != err {
		return err
	}
	messagebus.Announce(messagebus.ModeEvent, next)
	return nil
}

// Run - the round loop as a background process
func (c *Controller) Run(args interface{}, shutdown <-chan struct{}) {
	log := c.log
	log.Info("starting…")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-shutdown:
		case <-ctx.Done():
		}
		cancel()
	}()

	next := Stage1
	timer := time.After(0)

	m, err := c.state.Mode()
	if nil != err || mode.Stopped == m {
		next = Idle
		timer = nil
	}
	c.setStage(next)

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-c.wake:
			next = Stage1
		case <-timer:
		}
		if Idle == next {
			timer = nil
			continue loop
		}

		// zero delay stages follow each other directly
		delay := time.Duration(0)
		for {
			next, delay = c.Step(ctx, next)
			if Idle == next || 0 != delay || nil != ctx.Err() {
				break
			}
		}

		c.setStage(next)
		if Idle == next {
			timer = nil
		} else {
			log.Debugf("next: %s  in: %s", next, delay)
			timer = time.After(delay)
		}
	}
	log.Info("stopped")
}
