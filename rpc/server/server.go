// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"sync/atomic"

	"github.com/bitmark-inc/cyclespool/rpc/admin"
	"github.com/bitmark-inc/cyclespool/rpc/members"
	"github.com/bitmark-inc/cyclespool/rpc/node"
	"github.com/bitmark-inc/logger"
)

// Pool - every operation reachable over RPC
type Pool interface {
	members.Pool
	admin.Pool
	node.Pool
}

// Create - register the RPC services of a pool
func Create(log *logger.L, pool Pool, chain string, version string, rpcCount *atomic.Uint64) *rpc.Server {
	server := rpc.NewServer()

	_ = server.Register(members.New(log, pool))
	_ = server.Register(admin.New(log, pool))
	_ = server.Register(node.New(log, pool, chain, version, rpcCount))

	return server
}
