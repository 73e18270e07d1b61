// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package bridge - contracts of the external collaborators of the pool
//
// amounts of the deposit ledger are e8s in a uint64; cycles and
// mined tokens are 128 bit amounts
package bridge

import (
	"context"
	"time"

	"github.com/bitmark-inc/cyclespool/account"
	"github.com/bitmark-inc/cyclespool/cycles"
)

// Operation - kind of a ledger transaction
type Operation int

// ledger operations
const (
	Transfer Operation = iota
	Mint
	Burn
	Approve
)

// String - operation name
func (op Operation) String() string {
	switch op {
	case Transfer:
		return "Transfer"
	case Mint:
		return "Mint"
	case Burn:
		return "Burn"
	case Approve:
		return "Approve"
	default:
		return "*Unknown*"
	}
}

// Transaction - a decoded deposit ledger block
type Transaction struct {
	Memo      uint64             `json:"memo"`
	Operation Operation          `json:"operation"`
	From      account.Identifier `json:"from"`
	To        account.Identifier `json:"to"`
	Amount    uint64             `json:"amount"`
}

// Ledger - deposit token ledger and its index
type Ledger interface {
	// transfer from the pool's default account, the ledger fee is
	// charged on top of amount
	Transfer(ctx context.Context, to account.Identifier, memo uint64, amount uint64) (uint64, error)

	// a block by index; NotFoundError while the index has not seen it
	FetchBlock(ctx context.Context, blockIndex uint64) (Transaction, error)
}

// CycleMinter - converts deposits sent to its account into cycles
type CycleMinter interface {
	// cycles credited to canister for a deposit block; any error is
	// final for that block
	NotifyTopUp(ctx context.Context, blockIndex uint64, canister account.Principal) (cycles.Cycles, error)
}

// Stats - minter round statistics
type Stats struct {
	BlockCount         uint64 `json:"blockCount"`
	TimeSinceLastBlock uint64 `json:"timeSinceLastBlock"` // seconds
}

// Block - a mined block and its reward
type Block struct {
	To        account.Principal `json:"to"`
	Timestamp uint64            `json:"timestamp"` // nanoseconds
	Reward    cycles.Cycles     `json:"reward"`
}

// Minter - runs mining rounds and manages miners
type Minter interface {
	Statistics(ctx context.Context) (Stats, error)
	LatestBlocks(ctx context.Context) ([]Block, error)
	SpawnMiner(ctx context.Context, blockIndex uint64) (account.Principal, error)
	UpgradeMiner(ctx context.Context, miner account.Principal) error
}

// MinerStats - state of one miner
type MinerStats struct {
	CycleBalance          cycles.Cycles `json:"cycleBalance"`
	LastRoundCyclesBurned cycles.Cycles `json:"lastRoundCyclesBurned"`
}

// Miner - the shared mining resource
type Miner interface {
	Statistics(ctx context.Context, miner account.Principal) (MinerStats, error)
	UpdateSettings(ctx context.Context, miner account.Principal, maxCyclesPerRound cycles.Cycles) error
	DepositCycles(ctx context.Context, miner account.Principal, amount cycles.Cycles) error
}

// RewardLedger - ledger of the mined tokens
type RewardLedger interface {
	// transfer from the pool, the ledger fee is charged on top of amount
	Transfer(ctx context.Context, to account.Principal, amount cycles.Cycles) (uint64, error)
}

// Host - the environment the pool runs in
type Host interface {
	Self() account.Principal
	CycleBalance(ctx context.Context) (cycles.Cycles, error)
	Now() time.Time
}

// Collaborators - everything outside the pool
type Collaborators struct {
	Ledger       Ledger
	CycleMinter  CycleMinter
	Minter       Minter
	Miner        Miner
	RewardLedger RewardLedger
	Host         Host
}
