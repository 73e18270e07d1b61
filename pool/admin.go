// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pool

import (
	"context"

	"github.com/bitmark-inc/cyclespool/account"
	"github.com/bitmark-inc/cyclespool/constants"
	"github.com/bitmark-inc/cyclespool/cycles"
	"github.com/bitmark-inc/cyclespool/fault"
	"github.com/bitmark-inc/cyclespool/guard"
	"github.com/bitmark-inc/cyclespool/member"
	"github.com/bitmark-inc/cyclespool/mode"
	"github.com/bitmark-inc/cyclespool/round"
)

// State - overview of the pool
type State struct {
	Mode                mode.Mode          `json:"mode"`
	Stage               round.Stage        `json:"stage"`
	Miner               *account.Principal `json:"miner"`
	CycleBalance        cycles.Cycles      `json:"cycleBalance"`
	LastRewardTimestamp uint64             `json:"lastRewardTimestamp"`
	LastBlockCount      uint64             `json:"lastBlockCount"`
	member.Totals
}

// GetPoolState - mode, miner and member totals
func (p *Pool) GetPoolState(ctx context.Context) (State, error) {
	s := State{
		Stage: p.controller.Stage(),
	}

	var err error
	if s.Mode, err = p.state.Mode(); nil != err {
		return State{}, err
	}
	miner, found, err := p.state.Miner()
	if nil != err {
		return State{}, err
	}
	if found {
		s.Miner = &miner
	}
	if s.LastRewardTimestamp, err = p.state.LastRewardTimestamp(); nil != err {
		return State{}, err
	}
	if s.LastBlockCount, err = p.state.LastBlockCount(); nil != err {
		return State{}, err
	}
	if s.Totals, err = p.ledger.Totals(); nil != err {
		return State{}, err
	}
	if s.CycleBalance, err = p.bridges.Host.CycleBalance(ctx); nil != err {
		return State{}, fault.External("host cycle_balance", err)
	}
	return s, nil
}

// GetMiner - the miner, false before one is spawned
func (p *Pool) GetMiner() (account.Principal, bool, error) {
	return p.state.Miner()
}

// Start - run rounds
func (p *Pool) Start(caller account.Principal) error {
	if err := p.isController(caller); nil != err {
		return err
	}
	if err := p.ready(); nil != err {
		return err
	}
	p.log.Infof("start: by: %s", caller)
	return p.controller.Start()
}

// Stop - stop after the current round
func (p *Pool) Stop(caller account.Principal) error {
	if err := p.isController(caller); nil != err {
		return err
	}
	p.log.Infof("stop: by: %s", caller)
	return p.controller.Stop()
}

// SpawnMiner - have the minter create this pool's miner from a
// deposit to the minter's top up account
func (p *Pool) SpawnMiner(ctx context.Context, caller account.Principal, blockIndex uint64) (account.Principal, error) {
	if err := p.isController(caller); nil != err {
		return account.Principal{}, err
	}
	return p.spawn(ctx, blockIndex)
}

// Initialise - spawn the miner from the pool's own funds when a spawn
// amount is configured and there is no miner yet; the payment block
// is recorded so a retry after a failure does not pay again
func (p *Pool) Initialise(ctx context.Context) error {
	if 0 == p.spawnAmount {
		return nil
	}
	_, found, err := p.state.Miner()
	if nil != err || found {
		return err
	}

	// a payment from an earlier attempt is reused, never sent twice
	blockIndex, paid, err := p.state.SpawnBlock()
	if nil != err {
		return err
	}
	if !paid {
		to := p.topUpAccount(p.canisters.Minter)
		blockIndex, err = p.bridges.Ledger.Transfer(ctx, to, constants.JoinMemo, p.spawnAmount)
		if nil != err {
			return fault.External("ledger transfer", err)
		}
		if err := p.state.SetSpawnBlock(blockIndex); nil != err {
			p.log.Criticalf("spawn: sent: %d e8s  block: %d  record error: %s", p.spawnAmount, blockIndex, err)
			return err
		}
		p.log.Infof("spawn: sent: %d e8s  block: %d", p.spawnAmount, blockIndex)
	} else {
		p.log.Infof("spawn: reuse block: %d", blockIndex)
	}

	if _, err := p.fetchBlock(ctx, blockIndex); nil != err {
		return err
	}
	_, err = p.spawn(ctx, blockIndex)
	return err
}

func (p *Pool) spawn(ctx context.Context, blockIndex uint64) (account.Principal, error) {
	g, err := p.guards.AcquireTask(guard.SpawnMiner)
	if nil != err {
		return account.Principal{}, err
	}
	defer g.Release()

	_, found, err := p.state.Miner()
	if nil != err {
		return account.Principal{}, err
	}
	if found {
		return account.Principal{}, fault.MinerAlreadySet
	}

	miner, err := p.bridges.Minter.SpawnMiner(ctx, blockIndex)
	if nil != err {
		return account.Principal{}, fault.External("minter spawn_miner", err)
	}
	if err := p.state.SetMinerOnce(miner); nil != err {
		return account.Principal{}, err
	}
	p.log.Infof("spawn: miner: %s  block: %d", miner, blockIndex)

	if err := p.bridges.Miner.UpdateSettings(ctx, miner, cycles.Zero); nil != err {
		return miner, fault.External("miner update_settings", err)
	}
	return miner, nil
}
