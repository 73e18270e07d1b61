// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rewards - pull mined yield into member rewards and pay
// rewards out on the reward ledger
package rewards

import (
	"context"

	"github.com/bitmark-inc/cyclespool/account"
	"github.com/bitmark-inc/cyclespool/bridge"
	"github.com/bitmark-inc/cyclespool/cycles"
	"github.com/bitmark-inc/cyclespool/fault"
	"github.com/bitmark-inc/cyclespool/guard"
	"github.com/bitmark-inc/cyclespool/member"
	"github.com/bitmark-inc/cyclespool/messagebus"
	"github.com/bitmark-inc/cyclespool/state"
	"github.com/bitmark-inc/cyclespool/storage"
	"github.com/bitmark-inc/logger"
)

// Engine - the reward engine
type Engine struct {
	log          *logger.L
	guards       *guard.Registry
	ledger       *member.Ledger
	state        *state.Store
	minter       bridge.Minter
	rewardLedger bridge.RewardLedger
	host         bridge.Host
}

// Payout - event sent for each confirmed transfer
type Payout struct {
	Member account.Principal `json:"member"`
	member.Entry
}

// New - engine over the ledger and state store
func New(log *logger.L, guards *guard.Registry, ledger *member.Ledger, st *state.Store, bridges bridge.Collaborators) *Engine {
	return &Engine{
		log:          log,
		guards:       guards,
		ledger:       ledger,
		state:        st,
		minter:       bridges.Minter,
		rewardLedger: bridges.RewardLedger,
		host:         bridges.Host,
	}
}

// Check - realize the yield of blocks won since the checkpoint
//
// a second check with no new blocks changes nothing
func (e *Engine) Check(ctx context.Context) ([]member.Realized, error) {
	g, err := e.guards.AcquireTask(guard.CheckRewards)
	if nil != err {
		return nil, err
	}
	defer g.Release()

	checkpoint, err := e.state.LastRewardTimestamp()
	if nil != err {
		return nil, err
	}

	blocks, err := e.minter.LatestBlocks(ctx)
	if nil != err {
		return nil, fault.External("minter get_latest_blocks", err)
	}

	self := e.host.Self()
	gross := cycles.Zero
	latest := checkpoint
	won := 0
	for _, b := range blocks {
		if b.To != self || b.Timestamp <= checkpoint {
			continue
		}
		gross, err = gross.Add(b.Reward)
		if nil != err {
			return nil, err
		}
		if b.Timestamp > latest {
			latest = b.Timestamp
		}
		won += 1
	}

	if 0 == won {
		e.log.Debugf("no new blocks since: %d", checkpoint)
		return nil, nil
	}

	e.log.Infof("new blocks: %d  gross: %s  checkpoint: %d → %d", won, gross, checkpoint, latest)

	realized, err := e.ledger.RealizeRewards(gross, latest, func(trx storage.Transaction) {
		e.state.StageRewardTimestamp(trx, latest)
	})
	if nil != err {
		return nil, err
	}

	promBlocksWon.Add(float64(won))
	promYield.Add(gross.Float64())
	messagebus.Announce(messagebus.RewardsEvent, realized)

	return realized, nil
}

// Pay - transfer every unpaid reward of a member, oldest first
//
// stops at the first failed transfer; entries confirmed before it
// stay confirmed so a later call resumes after them
func (e *Engine) Pay(ctx context.Context, m account.Principal) ([]member.Entry, error) {
	g, err := e.guards.AcquirePrincipal(m)
	if nil != err {
		return nil, err
	}
	defer g.Release()

	_, found, err := e.ledger.Get(m)
	if nil != err {
		return nil, err
	}
	if !found {
		return nil, fault.NotAMember
	}

	unpaid, err := e.ledger.Unpaid(m)
	if nil != err {
		return nil, err
	}

	paid := make([]member.Entry, 0, len(unpaid))
	for _, entry := range unpaid {
		blockIndex, err := e.rewardLedger.Transfer(ctx, m, entry.Reward.Reward)
		if nil != err {
			promPayoutFailures.Inc()
			e.log.Warnf("pay: %s  sequence: %d  amount: %s  error: %s", m, entry.Sequence, entry.Reward.Reward, err)
			return paid, fault.External("reward ledger transfer", err)
		}

		err = e.ledger.ConfirmPayout(m, entry.Sequence, blockIndex)
		if nil != err {
			e.log.Criticalf("pay: %s  sequence: %d  transferred in block: %d  confirm error: %s", m, entry.Sequence, blockIndex, err)
			return paid, err
		}

		entry.BlockIndex = &blockIndex
		paid = append(paid, entry)

		promPayouts.Inc()
		promPaid.Add(entry.Reward.Reward.Float64())
		messagebus.Announce(messagebus.PayoutEvent, Payout{Member: m, Entry: entry})
	}

	if 0 != len(paid) {
		e.log.Infof("paid: %s  entries: %d", m, len(paid))
	}
	return paid, nil
}
