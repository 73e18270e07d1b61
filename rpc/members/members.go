// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package members - RPC calls available to pool members
//
// the caller principal is taken from the request arguments and is not
// authenticated here; the RPC listener must only be reachable through
// a front end that verifies the caller and rewrites the caller field
package members

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/cyclespool/account"
	"github.com/bitmark-inc/cyclespool/cycles"
	"github.com/bitmark-inc/cyclespool/fault"
	"github.com/bitmark-inc/cyclespool/member"
	"github.com/bitmark-inc/cyclespool/rpc/ratelimit"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitMembers = 200
	rateBurstMembers = 100

	// join polls the ledger index and pay runs one transfer per reward
	callTimeout = 2 * time.Minute
)

// Pool - the member operations of a pool
type Pool interface {
	JoinPool(ctx context.Context, caller account.Principal, blockIndex uint64) (member.Cycles, error)
	SetMemberBlockCycles(caller account.Principal, block cycles.Cycles) error
	GetMemberCycles(caller account.Principal) (member.Cycles, error)
	GetMemberRewards(caller account.Principal) ([]member.Entry, error)
	PayMemberRewards(ctx context.Context, caller account.Principal) ([]member.Entry, error)
}

// Members - type for RPC calls
type Members struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Pool    Pool
}

// New - create the member RPC handler
func New(log *logger.L, pool Pool) *Members {
	return &Members{
		Log:     log,
		Limiter: ratelimit.New(rateLimitMembers, rateBurstMembers),
		Pool:    pool,
	}
}

// CallerArguments - the caller only
type CallerArguments struct {
	Caller account.Principal `json:"caller"`
}

// JoinArguments - a deposit to credit
type JoinArguments struct {
	Caller     account.Principal `json:"caller"`
	BlockIndex uint64            `json:"blockIndex,string"`
}

// BlockCyclesArguments - commitment for coming rounds
type BlockCyclesArguments struct {
	Caller      account.Principal `json:"caller"`
	BlockCycles cycles.Cycles     `json:"blockCycles"`
}

// CyclesReply - balances of a member
type CyclesReply struct {
	Cycles member.Cycles `json:"cycles"`
}

// EmptyReply - nothing returned on success
type EmptyReply struct{}

// RewardsReply - reward entries of a member
//
// Error is only set by Pay when some entries were paid before a
// transfer failed
type RewardsReply struct {
	Rewards []member.Entry `json:"rewards"`
	Error   string         `json:"error,omitempty"`
}

// Join - credit a deposit block to the caller
func (m *Members) Join(arguments *JoinArguments, reply *CyclesReply) error {
	if err := m.check(arguments.Caller); nil != err {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	m.Log.Infof("Members.Join: %s  block: %d", arguments.Caller, arguments.BlockIndex)
	c, err := m.Pool.JoinPool(ctx, arguments.Caller, arguments.BlockIndex)
	if nil != err {
		return err
	}
	reply.Cycles = c
	return nil
}

// SetBlockCycles - change the caller's per round commitment
func (m *Members) SetBlockCycles(arguments *BlockCyclesArguments, reply *EmptyReply) error {
	if err := m.check(arguments.Caller); nil != err {
		return err
	}
	m.Log.Infof("Members.SetBlockCycles: %s  cycles: %s", arguments.Caller, arguments.BlockCycles)
	return m.Pool.SetMemberBlockCycles(arguments.Caller, arguments.BlockCycles)
}

// Cycles - the caller's balances
func (m *Members) Cycles(arguments *CallerArguments, reply *CyclesReply) error {
	if err := m.check(arguments.Caller); nil != err {
		return err
	}
	c, err := m.Pool.GetMemberCycles(arguments.Caller)
	if nil != err {
		return err
	}
	reply.Cycles = c
	return nil
}

// Rewards - the caller's reward history
func (m *Members) Rewards(arguments *CallerArguments, reply *RewardsReply) error {
	if err := m.check(arguments.Caller); nil != err {
		return err
	}
	entries, err := m.Pool.GetMemberRewards(arguments.Caller)
	if nil != err {
		return err
	}
	reply.Rewards = entries
	return nil
}

// Pay - transfer the caller's unpaid rewards
//
// a failure after some transfers succeeded is not an RPC error, as
// the reply would be dropped; the paid entries come back with the
// failure in reply.Error and a later call resumes the payout
func (m *Members) Pay(arguments *CallerArguments, reply *RewardsReply) error {
	if err := m.check(arguments.Caller); nil != err {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	m.Log.Infof("Members.Pay: %s", arguments.Caller)
	entries, err := m.Pool.PayMemberRewards(ctx, arguments.Caller)
	if nil != err && 0 == len(entries) {
		return err
	}
	if nil != err {
		m.Log.Warnf("Members.Pay: %s  paid: %d  error: %s", arguments.Caller, len(entries), err)
		reply.Error = err.Error()
	}
	reply.Rewards = entries
	return nil
}

func (m *Members) check(caller account.Principal) error {
	if err := ratelimit.Limit(m.Limiter); nil != err {
		return err
	}
	if caller.IsZero() {
		return fault.MissingParameters
	}
	return nil
}
