// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package member - durable cycle balances and reward history of members
//
// every mutation is a single storage batch taken under the ledger
// lock, so concurrent callers never see a half applied update
package member

import (
	"sync"

	"github.com/bitmark-inc/cyclespool/account"
	"github.com/bitmark-inc/cyclespool/constants"
	"github.com/bitmark-inc/cyclespool/cycles"
	"github.com/bitmark-inc/cyclespool/fault"
	"github.com/bitmark-inc/cyclespool/storage"
	"github.com/bitmark-inc/logger"
)

// Participant - a member and the cycles committed for one round
type Participant struct {
	Member account.Principal `json:"member"`
	Cycles cycles.Cycles     `json:"cycles"`
}

// Realized - reward appended to a member's history
type Realized struct {
	Member account.Principal `json:"member"`
	Entry
}

// Totals - aggregate over all members
type Totals struct {
	Members   int           `json:"members"`
	Active    int           `json:"active"`
	Block     cycles.Cycles `json:"block"`
	Pending   cycles.Cycles `json:"pending"`
	Remaining cycles.Cycles `json:"remaining"`
}

// Ledger - the member ledger
type Ledger struct {
	sync.Mutex
	log *logger.L
	db  *storage.Store
}

var (
	roundFee    = cycles.New(constants.RoundFee)
	payoutFee   = cycles.New(constants.PayoutFee)
	minBlock    = cycles.New(constants.MinBlockCycles)
	granularity = uint64(constants.BlockCyclesGranularity)
)

// New - ledger over an open database
func New(log *logger.L, db *storage.Store) *Ledger {
	return &Ledger{
		log: log,
		db:  db,
	}
}

// Get - balances of a member, false if the member never deposited
func (l *Ledger) Get(m account.Principal) (Cycles, bool, error) {
	buffer, err := l.db.MemberCycles.Get(m.Bytes())
	if nil != err || nil == buffer {
		return Cycles{}, false, err
	}
	c, err := unpackCycles(buffer)
	if nil != err {
		return Cycles{}, false, err
	}
	return c, true, nil
}

// read through a transaction so staged updates are seen
func (l *Ledger) getStaged(trx storage.Transaction, m account.Principal) (Cycles, bool, error) {
	buffer, err := trx.Get(l.db.MemberCycles, m.Bytes())
	if nil != err || nil == buffer {
		return Cycles{}, false, err
	}
	c, err := unpackCycles(buffer)
	if nil != err {
		return Cycles{}, false, err
	}
	return c, true, nil
}

// AddRemaining - credit a deposit, creating the member on first contact
func (l *Ledger) AddRemaining(m account.Principal, delta cycles.Cycles) (Cycles, error) {
	l.Lock()
	defer l.Unlock()

	trx := l.db.Begin()
	c, err := l.stageAddRemaining(trx, m, delta)
	if nil != err {
		trx.Abort()
		return Cycles{}, err
	}
	return c, trx.Commit()
}

// DepositUsed - check if a ledger block already credited a member
func (l *Ledger) DepositUsed(blockIndex uint64) (bool, error) {
	return l.db.JoinDeposits.Has(depositKey(blockIndex))
}

// CreditDeposit - credit the cycles of a deposit and consume its block
// index in the same batch
func (l *Ledger) CreditDeposit(m account.Principal, blockIndex uint64, delta cycles.Cycles) (Cycles, error) {
	l.Lock()
	defer l.Unlock()

	trx := l.db.Begin()
	used, err := trx.Has(l.db.JoinDeposits, depositKey(blockIndex))
	if nil != err {
		trx.Abort()
		return Cycles{}, err
	}
	if used {
		trx.Abort()
		return Cycles{}, fault.DepositAlreadyUsed
	}
	trx.Put(l.db.JoinDeposits, depositKey(blockIndex), m.Bytes())

	c, err := l.stageAddRemaining(trx, m, delta)
	if nil != err {
		trx.Abort()
		return Cycles{}, err
	}

	l.log.Infof("member: %s  deposit block: %d  credit: %s  remaining: %s", m, blockIndex, delta, c.Remaining)
	return c, trx.Commit()
}

func (l *Ledger) stageAddRemaining(trx storage.Transaction, m account.Principal, delta cycles.Cycles) (Cycles, error) {
	c, _, err := l.getStaged(trx, m)
	if nil != err {
		return Cycles{}, err
	}
	c.Remaining, err = c.Remaining.Add(delta)
	if nil != err {
		return Cycles{}, err
	}
	trx.Put(l.db.MemberCycles, m.Bytes(), c.pack())
	return c, nil
}

// SetBlockCommitment - a member's per round contribution
//
// zero opts out, otherwise at least the minimum and a multiple of
// the granularity; the stored value is unchanged on error
func (l *Ledger) SetBlockCommitment(m account.Principal, block cycles.Cycles) error {
	if !block.IsZero() {
		if block.LessThan(minBlock) {
			return fault.BlockCyclesTooSmall
		}
		if !block.IsMultipleOf(granularity) {
			return fault.BlockCyclesNotAligned
		}
	}

	l.Lock()
	defer l.Unlock()

	c, found, err := l.Get(m)
	if nil != err {
		return err
	}
	if !found {
		return fault.NotAMember
	}

	c.Block = block
	l.log.Infof("member: %s  block: %s", m, block)
	return l.db.MemberCycles.Put(m.Bytes(), c.pack())
}

// ListEligible - snapshot of the members that can afford the next round
//
// each participant pays its block plus an equal share of the round
// fee; dropping a member raises the share of the others, so the set
// is reduced until every member left can pay
func (l *Ledger) ListEligible() ([]Participant, error) {
	l.Lock()
	defer l.Unlock()

	type candidate struct {
		member    account.Principal
		block     cycles.Cycles
		remaining cycles.Cycles
	}
	candidates := []candidate{}

	err := l.db.MemberCycles.NewFetchCursor().Map(func(key []byte, value []byte) error {
		c, err := unpackCycles(value)
		if nil != err {
			return err
		}
		if c.Block.IsZero() || c.Remaining.LessThan(c.Block) {
			return nil
		}
		candidates = append(candidates, candidate{
			member:    account.PrincipalFromBytes(key),
			block:     c.Block,
			remaining: c.Remaining,
		})
		return nil
	})
	if nil != err {
		return nil, err
	}

	for 0 != len(candidates) {
		share, err := roundFee.DivUint64(uint64(len(candidates)))
		if nil != err {
			return nil, err
		}
		kept := candidates[:0:0]
		for _, c := range candidates {
			cost, err := c.block.Add(share)
			if nil != err {
				return nil, err
			}
			if !c.remaining.LessThan(cost) {
				kept = append(kept, c)
			}
		}
		if len(kept) == len(candidates) {
			break
		}
		candidates = kept
	}

	participants := make([]Participant, 0, len(candidates))
	for _, c := range candidates {
		participants = append(participants, Participant{Member: c.member, Cycles: c.block})
	}
	return participants, nil
}

// FeeShare - each participant's part of the round fee
func FeeShare(participants int) (cycles.Cycles, error) {
	return roundFee.DivUint64(uint64(participants))
}

// Commit - charge a round snapshot: remaining pays cycles and fee
// share, pending accrues the cycles
//
// all participants are written in one batch, nothing is written if
// any one of them cannot pay
func (l *Ledger) Commit(participants []Participant) (cycles.Cycles, error) {
	if 0 == len(participants) {
		return cycles.Zero, fault.NothingToCommit
	}
	share, err := FeeShare(len(participants))
	if nil != err {
		return cycles.Zero, err
	}

	l.Lock()
	defer l.Unlock()

	trx := l.db.Begin()
	total := cycles.Zero
	for _, p := range participants {
		c, found, err := l.getStaged(trx, p.Member)
		if nil != err {
			trx.Abort()
			return cycles.Zero, err
		}
		if !found {
			trx.Abort()
			return cycles.Zero, fault.NotAMember
		}

		cost, err := p.Cycles.Add(share)
		if nil != err {
			trx.Abort()
			return cycles.Zero, err
		}
		c.Remaining, err = c.Remaining.Sub(cost)
		if nil != err {
			l.log.Errorf("member: %s  remaining: %s  cannot pay: %s", p.Member, c.Remaining, cost)
			trx.Abort()
			return cycles.Zero, err
		}
		c.Pending, err = c.Pending.Add(p.Cycles)
		if nil != err {
			trx.Abort()
			return cycles.Zero, err
		}
		total, err = total.Add(p.Cycles)
		if nil != err {
			trx.Abort()
			return cycles.Zero, err
		}

		trx.Put(l.db.MemberCycles, p.Member.Bytes(), c.pack())
	}

	err = trx.Commit()
	if nil != err {
		return cycles.Zero, err
	}
	l.log.Infof("committed: %d members  cycles: %s  fee share: %s", len(participants), total, share)
	return total, nil
}

// RealizeRewards - turn a mined amount into rewards
//
// one payout fee per rewarded member is taken from the gross amount,
// the rest is shared by pending cycles; integer division remainders
// go to no one.  stage is called with the same batch so callers can
// record a checkpoint atomically with the rewards.
func (l *Ledger) RealizeRewards(gross cycles.Cycles, timestamp uint64, stage func(storage.Transaction)) ([]Realized, error) {
	l.Lock()
	defer l.Unlock()

	type pendingMember struct {
		member account.Principal
		record Cycles
	}
	members := []pendingMember{}
	totalPending := cycles.Zero

	err := l.db.MemberCycles.NewFetchCursor().Map(func(key []byte, value []byte) error {
		c, err := unpackCycles(value)
		if nil != err {
			return err
		}
		if c.Pending.IsZero() {
			return nil
		}
		totalPending, err = totalPending.Add(c.Pending)
		if nil != err {
			return err
		}
		members = append(members, pendingMember{member: account.PrincipalFromBytes(key), record: c})
		return nil
	})
	if nil != err {
		return nil, err
	}

	trx := l.db.Begin()
	if nil != stage {
		stage(trx)
	}

	if 0 == len(members) {
		return nil, trx.Commit()
	}

	fees, err := payoutFee.MulUint64(uint64(len(members)))
	if nil != err {
		trx.Abort()
		return nil, err
	}
	if gross.LessThan(fees) {
		l.log.Warnf("gross: %s below payout fees: %s", gross, fees)
	}
	net := gross.SaturatingSub(fees)

	realized := make([]Realized, 0, len(members))
	for _, pm := range members {
		share, err := net.MulDiv(pm.record.Pending, totalPending)
		if nil != err {
			trx.Abort()
			return nil, err
		}

		sequence, err := l.nextSequence(pm.member)
		if nil != err {
			trx.Abort()
			return nil, err
		}

		reward := Reward{
			Timestamp:   timestamp,
			CyclesBurnt: pm.record.Pending,
			Reward:      share,
		}
		trx.Put(l.db.MemberRewards, rewardKey(pm.member, sequence), reward.pack())

		pm.record.Pending = cycles.Zero
		trx.Put(l.db.MemberCycles, pm.member.Bytes(), pm.record.pack())

		realized = append(realized, Realized{
			Member: pm.member,
			Entry:  Entry{Sequence: sequence, Reward: reward},
		})
	}

	err = trx.Commit()
	if nil != err {
		return nil, err
	}
	l.log.Infof("realized: gross: %s  net: %s  members: %d  pending: %s", gross, net, len(members), totalPending)
	return realized, nil
}

// sequence after the member's last reward
func (l *Ledger) nextSequence(m account.Principal) (uint64, error) {
	next := uint64(0)
	err := l.db.MemberRewards.NewPrefixCursor(rewardPrefix(m)).Map(func(key []byte, value []byte) error {
		next = sequenceOf(key) + 1
		return nil
	})
	return next, err
}

// Rewards - full reward history of a member, oldest first
func (l *Ledger) Rewards(m account.Principal) ([]Entry, error) {
	entries := []Entry{}
	err := l.db.MemberRewards.NewPrefixCursor(rewardPrefix(m)).Map(func(key []byte, value []byte) error {
		r, err := unpackReward(value)
		if nil != err {
			return err
		}
		entries = append(entries, Entry{Sequence: sequenceOf(key), Reward: r})
		return nil
	})
	if nil != err {
		return nil, err
	}
	return entries, nil
}

// Unpaid - rewards still waiting for a payout transfer, oldest first
//
// zero rewards are never paid and so never listed
func (l *Ledger) Unpaid(m account.Principal) ([]Entry, error) {
	entries, err := l.Rewards(m)
	if nil != err {
		return nil, err
	}
	unpaid := entries[:0]
	for _, e := range entries {
		if !e.IsPaid() && !e.Reward.Reward.IsZero() {
			unpaid = append(unpaid, e)
		}
	}
	return unpaid, nil
}

// ConfirmPayout - fill in the transfer block index of one reward
//
// only the index is written, rewards appended meanwhile are kept
func (l *Ledger) ConfirmPayout(m account.Principal, sequence uint64, blockIndex uint64) error {
	l.Lock()
	defer l.Unlock()

	key := rewardKey(m, sequence)
	buffer, err := l.db.MemberRewards.Get(key)
	if nil != err {
		return err
	}
	if nil == buffer {
		return fault.RewardNotFound
	}
	r, err := unpackReward(buffer)
	if nil != err {
		return err
	}
	if r.IsPaid() {
		return fault.PayoutAlreadyConfirmed
	}
	r.BlockIndex = &blockIndex
	return l.db.MemberRewards.Put(key, r.pack())
}

// Totals - aggregate balances, Active counts members with a block set
func (l *Ledger) Totals() (Totals, error) {
	t := Totals{}
	err := l.db.MemberCycles.NewFetchCursor().Map(func(key []byte, value []byte) error {
		c, err := unpackCycles(value)
		if nil != err {
			return err
		}
		t.Members += 1
		if !c.Block.IsZero() {
			t.Active += 1
		}
		if t.Block, err = t.Block.Add(c.Block); nil != err {
			return err
		}
		if t.Pending, err = t.Pending.Add(c.Pending); nil != err {
			return err
		}
		t.Remaining, err = t.Remaining.Add(c.Remaining)
		return err
	})
	if nil != err {
		return Totals{}, err
	}
	t.export()
	return t, nil
}

