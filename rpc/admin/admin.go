// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package admin - RPC calls restricted to pool controllers
//
// the caller principal is read from the request arguments and is not
// authenticated here; the controller check only holds when the RPC
// listener is reachable solely through a front end that verifies the
// caller and rewrites the caller field
package admin

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/cyclespool/account"
	"github.com/bitmark-inc/cyclespool/fault"
	"github.com/bitmark-inc/cyclespool/rpc/ratelimit"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitAdmin = 10
	rateBurstAdmin = 5

	spawnTimeout = 2 * time.Minute
)

// Pool - the controller operations of a pool
type Pool interface {
	Start(caller account.Principal) error
	Stop(caller account.Principal) error
	SpawnMiner(ctx context.Context, caller account.Principal, blockIndex uint64) (account.Principal, error)
}

// Admin - type for RPC calls
type Admin struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Pool    Pool
}

// New - create the admin RPC handler
func New(log *logger.L, pool Pool) *Admin {
	return &Admin{
		Log:     log,
		Limiter: ratelimit.New(rateLimitAdmin, rateBurstAdmin),
		Pool:    pool,
	}
}

// CallerArguments - the controller making the request
type CallerArguments struct {
	Caller account.Principal `json:"caller"`
}

// SpawnArguments - a funded block for the minter
type SpawnArguments struct {
	Caller     account.Principal `json:"caller"`
	BlockIndex uint64            `json:"blockIndex,string"`
}

// EmptyReply - nothing returned on success
type EmptyReply struct{}

// SpawnReply - the new miner
type SpawnReply struct {
	Miner account.Principal `json:"miner"`
}

// Start - resume rounds
func (a *Admin) Start(arguments *CallerArguments, reply *EmptyReply) error {
	if err := a.check(arguments.Caller); nil != err {
		return err
	}
	a.Log.Warnf("Admin.Start: by: %s", arguments.Caller)
	return a.Pool.Start(arguments.Caller)
}

// Stop - finish the current round and halt
func (a *Admin) Stop(arguments *CallerArguments, reply *EmptyReply) error {
	if err := a.check(arguments.Caller); nil != err {
		return err
	}
	a.Log.Warnf("Admin.Stop: by: %s", arguments.Caller)
	return a.Pool.Stop(arguments.Caller)
}

// SpawnMiner - create the pool's miner from a funded block
func (a *Admin) SpawnMiner(arguments *SpawnArguments, reply *SpawnReply) error {
	if err := a.check(arguments.Caller); nil != err {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), spawnTimeout)
	defer cancel()

	a.Log.Warnf("Admin.SpawnMiner: by: %s  block: %d", arguments.Caller, arguments.BlockIndex)
	miner, err := a.Pool.SpawnMiner(ctx, arguments.Caller, arguments.BlockIndex)
	if nil != err {
		return err
	}
	reply.Miner = miner
	return nil
}

func (a *Admin) check(caller account.Principal) error {
	if err := ratelimit.Limit(a.Limiter); nil != err {
		return err
	}
	if caller.IsZero() {
		return fault.MissingParameters
	}
	return nil
}
