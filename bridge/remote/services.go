// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package remote

import (
	"context"
	"time"

	"github.com/bitmark-inc/cyclespool/account"
	"github.com/bitmark-inc/cyclespool/bridge"
	"github.com/bitmark-inc/cyclespool/cycles"
)

// gateway service names
const (
	LedgerService       = "ledger"
	CycleMinterService  = "cycle_minter"
	MinterService       = "minter"
	MinerService        = "miner"
	RewardLedgerService = "reward_ledger"
	HostService         = "host"
)

// Collaborators - every bridge contract served by this client
func (c *Client) Collaborators(self account.Principal) bridge.Collaborators {
	return bridge.Collaborators{
		Ledger:       ledger{c},
		CycleMinter:  cycleMinter{c},
		Minter:       minter{c},
		Miner:        miner{c},
		RewardLedger: rewardLedger{c},
		Host:         host{client: c, self: self},
	}
}

type ledgerTransferArgs struct {
	To     account.Identifier `json:"to"`
	Memo   uint64             `json:"memo"`
	Amount uint64             `json:"amount"`
}

type blockIndexArgs struct {
	BlockIndex uint64 `json:"blockIndex"`
}

type notifyArgs struct {
	BlockIndex uint64            `json:"blockIndex"`
	Canister   account.Principal `json:"canister"`
}

type minerArgs struct {
	Miner account.Principal `json:"miner"`
}

type settingsArgs struct {
	Miner             account.Principal `json:"miner"`
	MaxCyclesPerRound cycles.Cycles     `json:"maxCyclesPerRound"`
}

type depositArgs struct {
	Miner  account.Principal `json:"miner"`
	Amount cycles.Cycles     `json:"amount"`
}

type rewardTransferArgs struct {
	To     account.Principal `json:"to"`
	Amount cycles.Cycles     `json:"amount"`
}

type none struct{}

type ledger struct{ c *Client }

func (l ledger) Transfer(ctx context.Context, to account.Identifier, memo uint64, amount uint64) (uint64, error) {
	blockIndex := uint64(0)
	err := l.c.Call(ctx, LedgerService, "transfer", ledgerTransferArgs{To: to, Memo: memo, Amount: amount}, &blockIndex)
	return blockIndex, err
}

func (l ledger) FetchBlock(ctx context.Context, blockIndex uint64) (bridge.Transaction, error) {
	var tx bridge.Transaction
	err := l.c.Call(ctx, LedgerService, "fetch_block", blockIndexArgs{BlockIndex: blockIndex}, &tx)
	return tx, err
}

type cycleMinter struct{ c *Client }

func (m cycleMinter) NotifyTopUp(ctx context.Context, blockIndex uint64, canister account.Principal) (cycles.Cycles, error) {
	var credited cycles.Cycles
	err := m.c.Call(ctx, CycleMinterService, "notify_top_up", notifyArgs{BlockIndex: blockIndex, Canister: canister}, &credited)
	return credited, err
}

type minter struct{ c *Client }

func (m minter) Statistics(ctx context.Context) (bridge.Stats, error) {
	var stats bridge.Stats
	err := m.c.Call(ctx, MinterService, "get_statistics", none{}, &stats)
	return stats, err
}

func (m minter) LatestBlocks(ctx context.Context) ([]bridge.Block, error) {
	blocks := []bridge.Block{}
	err := m.c.Call(ctx, MinterService, "get_latest_blocks", none{}, &blocks)
	return blocks, err
}

func (m minter) SpawnMiner(ctx context.Context, blockIndex uint64) (account.Principal, error) {
	var p account.Principal
	err := m.c.Call(ctx, MinterService, "spawn_miner", blockIndexArgs{BlockIndex: blockIndex}, &p)
	return p, err
}

func (m minter) UpgradeMiner(ctx context.Context, p account.Principal) error {
	return m.c.Call(ctx, MinterService, "upgrade_miner", minerArgs{Miner: p}, nil)
}

type miner struct{ c *Client }

func (m miner) Statistics(ctx context.Context, p account.Principal) (bridge.MinerStats, error) {
	var stats bridge.MinerStats
	err := m.c.Call(ctx, MinerService, "get_statistics", minerArgs{Miner: p}, &stats)
	return stats, err
}

func (m miner) UpdateSettings(ctx context.Context, p account.Principal, maxCyclesPerRound cycles.Cycles) error {
	return m.c.Call(ctx, MinerService, "update_settings", settingsArgs{Miner: p, MaxCyclesPerRound: maxCyclesPerRound}, nil)
}

func (m miner) DepositCycles(ctx context.Context, p account.Principal, amount cycles.Cycles) error {
	return m.c.Call(ctx, MinerService, "deposit_cycles", depositArgs{Miner: p, Amount: amount}, nil)
}

type rewardLedger struct{ c *Client }

func (r rewardLedger) Transfer(ctx context.Context, to account.Principal, amount cycles.Cycles) (uint64, error) {
	blockIndex := uint64(0)
	err := r.c.Call(ctx, RewardLedgerService, "transfer", rewardTransferArgs{To: to, Amount: amount}, &blockIndex)
	return blockIndex, err
}

type host struct {
	client *Client
	self   account.Principal
}

func (h host) Self() account.Principal {
	return h.self
}

func (h host) CycleBalance(ctx context.Context) (cycles.Cycles, error) {
	var balance cycles.Cycles
	err := h.client.Call(ctx, HostService, "cycle_balance", none{}, &balance)
	return balance, err
}

func (h host) Now() time.Time {
	return time.Now()
}
