// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package simulate - an in-process stand in for every collaborator
//
// used by the local chain and by scenario tests; the world keeps
// balances and blocks in memory and moves only when told to
package simulate

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bitmark-inc/cyclespool/account"
	"github.com/bitmark-inc/cyclespool/bridge"
	"github.com/bitmark-inc/cyclespool/chain"
	"github.com/bitmark-inc/cyclespool/constants"
	"github.com/bitmark-inc/cyclespool/cycles"
	"github.com/bitmark-inc/cyclespool/fault"
	"github.com/bitmark-inc/logger"
)

// CyclesPerE8s - conversion rate of the simulated cycle minter
const CyclesPerE8s = 78_000

// failures injected by tests
var (
	ErrFrozen          = errors.New("canister is frozen")
	ErrAlreadyNotified = errors.New("block already processed")
	ErrTransferFailed  = errors.New("transfer rejected")
	ErrWrongRecipient  = errors.New("block not sent to the top up account")
)

type miner struct {
	balance     cycles.Cycles
	maxPerRound cycles.Cycles
	lastBurned  cycles.Cycles
	upgrades    int
}

// World - simulated ledgers, minter and miners
type World struct {
	sync.Mutex
	log       *logger.L
	self      account.Principal
	canisters chain.Canisters
	now       time.Time

	// deposit ledger
	e8s       map[account.Identifier]uint64
	blocks    []bridge.Transaction
	indexLag  int
	notified  map[uint64]bool
	poolCycle cycles.Cycles

	// minter and miners
	miners     map[account.Principal]*miner
	mined      []bridge.Block
	blockCount uint64
	lastBlock  time.Time

	// reward ledger
	tokens        map[account.Principal]cycles.Cycles
	rewardBlocks  uint64
	transfersLeft int

	frozen bool
}

// New - an empty world at time start
func New(log *logger.L, self account.Principal, canisters chain.Canisters, start time.Time) *World {
	return &World{
		log:           log,
		self:          self,
		canisters:     canisters,
		now:           start,
		e8s:           make(map[account.Identifier]uint64),
		notified:      make(map[uint64]bool),
		miners:        make(map[account.Principal]*miner),
		lastBlock:     start,
		tokens:        make(map[account.Principal]cycles.Cycles),
		transfersLeft: -1,
	}
}

// Collaborators - the world seen through the bridge contracts
func (w *World) Collaborators() bridge.Collaborators {
	return bridge.Collaborators{
		Ledger:       ledger{w},
		CycleMinter:  cycleMinter{w},
		Minter:       minter{w},
		Miner:        minerCanister{w},
		RewardLedger: rewardLedger{w},
		Host:         host{w},
	}
}

// TopUpAccount - the cycle minter account receiving deposits for canister
func (w *World) TopUpAccount(canister account.Principal) account.Identifier {
	sub := account.SubaccountFromPrincipal(canister)
	return account.NewIdentifier(w.canisters.CycleMinter, &sub)
}

// Fund - mint deposit tokens into an account
func (w *World) Fund(to account.Identifier, amount uint64) {
	w.Lock()
	defer w.Unlock()
	w.e8s[to] += amount
}

// Balance - deposit tokens held by an account
func (w *World) Balance(id account.Identifier) uint64 {
	w.Lock()
	defer w.Unlock()
	return w.e8s[id]
}

// Deposit - a caller sends tokens from their default account
func (w *World) Deposit(from account.Principal, to account.Identifier, memo uint64, amount uint64) uint64 {
	return w.Record(bridge.Transaction{
		Memo:      memo,
		Operation: bridge.Transfer,
		From:      account.NewIdentifier(from, nil),
		To:        to,
		Amount:    amount,
	})
}

// Record - append any transaction to the deposit ledger
func (w *World) Record(tx bridge.Transaction) uint64 {
	w.Lock()
	defer w.Unlock()
	w.blocks = append(w.blocks, tx)
	w.e8s[tx.To] += tx.Amount
	return uint64(len(w.blocks) - 1)
}

// SetIndexLag - newest blocks the index has not seen yet
func (w *World) SetIndexLag(n int) {
	w.Lock()
	defer w.Unlock()
	w.indexLag = n
}

// Advance - move the clock forward
func (w *World) Advance(d time.Duration) {
	w.Lock()
	defer w.Unlock()
	w.now = w.now.Add(d)
}

// Freeze - make every miner call fail
func (w *World) Freeze(frozen bool) {
	w.Lock()
	defer w.Unlock()
	w.frozen = frozen
}

// LimitRewardTransfers - number of payouts that succeed before the
// reward ledger rejects transfers, negative for unlimited
func (w *World) LimitRewardTransfers(n int) {
	w.Lock()
	defer w.Unlock()
	w.transfersLeft = n
}

// SetPoolCycles - cycle balance of the pool canister
func (w *World) SetPoolCycles(c cycles.Cycles) {
	w.Lock()
	defer w.Unlock()
	w.poolCycle = c
}

// PoolCycles - cycle balance of the pool canister
func (w *World) PoolCycles() cycles.Cycles {
	w.Lock()
	defer w.Unlock()
	return w.poolCycle
}

// MinerBalance - cycle balance of a miner
func (w *World) MinerBalance(m account.Principal) cycles.Cycles {
	w.Lock()
	defer w.Unlock()
	if mi, ok := w.miners[m]; ok {
		return mi.balance
	}
	return cycles.Zero
}

// TokenBalance - reward token balance of a principal
func (w *World) TokenBalance(p account.Principal) cycles.Cycles {
	w.Lock()
	defer w.Unlock()
	return w.tokens[p]
}

// MintTokens - credit reward tokens to a principal
func (w *World) MintTokens(p account.Principal, amount cycles.Cycles) {
	w.Lock()
	defer w.Unlock()
	w.tokens[p], _ = w.tokens[p].Add(amount)
}

// MineRound - every miner burns its allowance; if anything was
// burned the pool wins a block carrying reward
func (w *World) MineRound(reward cycles.Cycles) cycles.Cycles {
	w.Lock()
	defer w.Unlock()

	burned := cycles.Zero
	for _, mi := range w.miners {
		burn := mi.maxPerRound
		if mi.balance.LessThan(burn) {
			burn = mi.balance
		}
		mi.balance = mi.balance.SaturatingSub(burn)
		mi.lastBurned = burn
		burned, _ = burned.Add(burn)
	}

	w.blockCount += 1
	w.lastBlock = w.now
	if !burned.IsZero() {
		w.mined = append(w.mined, bridge.Block{
			To:        w.self,
			Timestamp: uint64(w.now.UnixNano()),
			Reward:    reward,
		})
		w.tokens[w.self], _ = w.tokens[w.self].Add(reward)
	}
	w.log.Debugf("round: %d  burned: %s", w.blockCount, burned)
	return burned
}

// ----------------------------------------------------------------
// deposit ledger

type ledger struct{ w *World }

func (l ledger) Transfer(_ context.Context, to account.Identifier, memo uint64, amount uint64) (uint64, error) {
	w := l.w
	w.Lock()
	defer w.Unlock()

	from := account.NewIdentifier(w.self, nil)
	if w.e8s[from] < amount+constants.LedgerFee {
		return 0, fault.External("ledger transfer", ErrTransferFailed)
	}
	w.e8s[from] -= amount + constants.LedgerFee
	w.e8s[to] += amount
	w.blocks = append(w.blocks, bridge.Transaction{
		Memo:      memo,
		Operation: bridge.Transfer,
		From:      from,
		To:        to,
		Amount:    amount,
	})
	return uint64(len(w.blocks) - 1), nil
}

func (l ledger) FetchBlock(_ context.Context, blockIndex uint64) (bridge.Transaction, error) {
	w := l.w
	w.Lock()
	defer w.Unlock()

	visible := len(w.blocks) - w.indexLag
	if blockIndex >= uint64(len(w.blocks)) || int(blockIndex) >= visible {
		return bridge.Transaction{}, fault.LedgerBlockNotFound
	}
	return w.blocks[blockIndex], nil
}

// ----------------------------------------------------------------
// cycle minter

type cycleMinter struct{ w *World }

func (c cycleMinter) NotifyTopUp(_ context.Context, blockIndex uint64, canister account.Principal) (cycles.Cycles, error) {
	w := c.w
	top := w.TopUpAccount(canister)

	w.Lock()
	defer w.Unlock()

	if blockIndex >= uint64(len(w.blocks)) {
		return cycles.Zero, fault.LedgerBlockNotFound
	}
	if w.notified[blockIndex] {
		return cycles.Zero, ErrAlreadyNotified
	}
	tx := w.blocks[blockIndex]
	if tx.To != top {
		return cycles.Zero, ErrWrongRecipient
	}
	w.notified[blockIndex] = true

	amount, err := cycles.New(tx.Amount).MulUint64(CyclesPerE8s)
	if nil != err {
		return cycles.Zero, err
	}
	if canister == w.self {
		w.poolCycle, err = w.poolCycle.Add(amount)
	}
	return amount, err
}

// ----------------------------------------------------------------
// minter

type minter struct{ w *World }

func (m minter) Statistics(_ context.Context) (bridge.Stats, error) {
	w := m.w
	w.Lock()
	defer w.Unlock()
	return bridge.Stats{
		BlockCount:         w.blockCount,
		TimeSinceLastBlock: uint64(w.now.Sub(w.lastBlock) / time.Second),
	}, nil
}

func (m minter) LatestBlocks(_ context.Context) ([]bridge.Block, error) {
	w := m.w
	w.Lock()
	defer w.Unlock()

	// newest first, at most ten
	blocks := []bridge.Block{}
	for i := len(w.mined) - 1; i >= 0 && len(blocks) < 10; i -= 1 {
		blocks = append(blocks, w.mined[i])
	}
	return blocks, nil
}

func (m minter) SpawnMiner(ctx context.Context, blockIndex uint64) (account.Principal, error) {
	w := m.w
	funded, err := cycleMinter{w}.NotifyTopUp(ctx, blockIndex, w.canisters.Minter)
	if nil != err {
		return account.Principal{}, err
	}

	w.Lock()
	defer w.Unlock()

	id := []byte{0x00, 0x00, 0x00, 0x00, 0x02, 0x30, 0x00, byte(len(w.miners) + 1), 0x01, 0x01}
	p := account.PrincipalFromBytes(id)
	w.miners[p] = &miner{balance: funded}
	return p, nil
}

func (m minter) UpgradeMiner(_ context.Context, p account.Principal) error {
	w := m.w
	w.Lock()
	defer w.Unlock()

	mi, err := w.miner(p)
	if nil != err {
		return err
	}
	mi.upgrades += 1
	return nil
}

// ----------------------------------------------------------------
// miner

type minerCanister struct{ w *World }

func (w *World) miner(p account.Principal) (*miner, error) {
	if w.frozen {
		return nil, fault.External("miner", ErrFrozen)
	}
	mi, ok := w.miners[p]
	if !ok {
		return nil, fault.MinerNotSet
	}
	return mi, nil
}

func (m minerCanister) Statistics(_ context.Context, p account.Principal) (bridge.MinerStats, error) {
	w := m.w
	w.Lock()
	defer w.Unlock()

	mi, err := w.miner(p)
	if nil != err {
		return bridge.MinerStats{}, err
	}
	return bridge.MinerStats{
		CycleBalance:          mi.balance,
		LastRoundCyclesBurned: mi.lastBurned,
	}, nil
}

func (m minerCanister) UpdateSettings(_ context.Context, p account.Principal, maxCyclesPerRound cycles.Cycles) error {
	w := m.w
	w.Lock()
	defer w.Unlock()

	mi, err := w.miner(p)
	if nil != err {
		return err
	}
	mi.maxPerRound = maxCyclesPerRound
	return nil
}

func (m minerCanister) DepositCycles(_ context.Context, p account.Principal, amount cycles.Cycles) error {
	w := m.w
	w.Lock()
	defer w.Unlock()

	mi, err := w.miner(p)
	if nil != err {
		return err
	}
	w.poolCycle, err = w.poolCycle.Sub(amount)
	if nil != err {
		return err
	}
	mi.balance, err = mi.balance.Add(amount)
	return err
}

// ----------------------------------------------------------------
// reward ledger

type rewardLedger struct{ w *World }

func (r rewardLedger) Transfer(_ context.Context, to account.Principal, amount cycles.Cycles) (uint64, error) {
	w := r.w
	w.Lock()
	defer w.Unlock()

	if 0 == w.transfersLeft {
		return 0, fault.External("reward ledger transfer", ErrTransferFailed)
	}
	cost, err := amount.Add(cycles.New(constants.PayoutFee))
	if nil != err {
		return 0, err
	}
	balance, err := w.tokens[w.self].Sub(cost)
	if nil != err {
		return 0, fault.External("reward ledger transfer", err)
	}
	if w.transfersLeft > 0 {
		w.transfersLeft -= 1
	}
	w.tokens[w.self] = balance
	w.tokens[to], err = w.tokens[to].Add(amount)
	w.rewardBlocks += 1
	return w.rewardBlocks, err
}

// ----------------------------------------------------------------
// host

type host struct{ w *World }

func (h host) Self() account.Principal {
	return h.w.self
}

func (h host) CycleBalance(_ context.Context) (cycles.Cycles, error) {
	return h.w.PoolCycles(), nil
}

func (h host) Now() time.Time {
	h.w.Lock()
	defer h.w.Unlock()
	return h.w.now
}
