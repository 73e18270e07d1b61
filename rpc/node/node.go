// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/cyclespool/account"
	"github.com/bitmark-inc/cyclespool/pool"
	"github.com/bitmark-inc/cyclespool/rpc/ratelimit"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100

	stateTimeout = 30 * time.Second
)

// Pool - read only view of a pool
type Pool interface {
	GetPoolState(ctx context.Context) (pool.State, error)
	GetMiner() (account.Principal, bool, error)
}

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Chain   string
	Version string
	Pool    Pool
	count   *atomic.Uint64
}

// New - create the node RPC handler
func New(log *logger.L, p Pool, chain string, version string, count *atomic.Uint64) *Node {
	return &Node{
		Log:     log,
		Limiter: ratelimit.New(rateLimitNode, rateBurstNode),
		Start:   time.Now(),
		Chain:   chain,
		Version: version,
		Pool:    p,
		count:   count,
	}
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Chain   string `json:"chain"`
	RPCs    uint64 `json:"rpcs"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// Info - enough for a client to check it reached the right pool
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	reply.Chain = node.Chain
	reply.RPCs = node.count.Load()
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	return nil
}

// StateReply - overview of the pool
type StateReply struct {
	State pool.State `json:"state"`
}

// State - mode, stage, miner and member totals
func (node *Node) State(_ *InfoArguments, reply *StateReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), stateTimeout)
	defer cancel()

	s, err := node.Pool.GetPoolState(ctx)
	if nil != err {
		return err
	}
	reply.State = s
	return nil
}

// MinerReply - the miner, absent before it is spawned
type MinerReply struct {
	Miner *account.Principal `json:"miner"`
}

// Miner - the pool's miner
func (node *Node) Miner(_ *InfoArguments, reply *MinerReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	miner, found, err := node.Pool.GetMiner()
	if nil != err {
		return err
	}
	if found {
		reply.Miner = &miner
	}
	return nil
}
