// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package constants

import (
	"time"
)

// member commitments
const (
	BlockCyclesGranularity = 1_000_000
	MinBlockCycles         = 15_000_000_000
)

// total fee charged to the participants of one round, split equally
const (
	RoundFee = 5_000_000_000
)

// token ledger fee for each reward payout
const (
	PayoutFee = 1_000_000
)

// cycles kept above a round's commitment on the miner and on the pool
const (
	MinerBuffer = 1_000_000_000_000
	PoolFloor   = 1_000_000_000_000
)

// deposits on the ledger, amounts in e8s
const (
	JoinMemo      = 1347768404
	MinJoinAmount = 99_990_000
	LedgerFee     = 10_000
)

// round controller timing
const (
	SafeWindow        = 120 * time.Second
	MissedRoundBound  = 490 * time.Second
	IdleCoolDown      = 370 * time.Second
	Stage3Delay       = 270 * time.Second
	ErrorRestartDelay = 10 * time.Second
	StageAttempts     = 3
	StageRetryDelay   = 10 * time.Second
	BurnCheckAttempts = 3
	BurnCheckDelay    = 10 * time.Second
)

// delay between index lookups while waiting for a ledger block
const (
	LedgerPollAttempts = 10
	LedgerPollDelay    = 2 * time.Second
)
