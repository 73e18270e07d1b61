// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node_test

import (
	"sync/atomic"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/cyclespool/account"
	"github.com/bitmark-inc/cyclespool/chain"
	"github.com/bitmark-inc/cyclespool/fault"
	"github.com/bitmark-inc/cyclespool/fixtures"
	"github.com/bitmark-inc/cyclespool/mode"
	"github.com/bitmark-inc/cyclespool/pool"
	"github.com/bitmark-inc/cyclespool/rpc/mocks"
	"github.com/bitmark-inc/cyclespool/rpc/node"
	"github.com/bitmark-inc/logger"
)

func TestInfo(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	var count atomic.Uint64
	count.Store(5)
	n := node.New(logger.New(fixtures.LogCategory), mocks.NewMockNodePool(ctl), chain.Local, "1.0", &count)

	var reply node.InfoReply
	err := n.Info(&node.InfoArguments{}, &reply)
	assert.Nil(t, err, "info")
	assert.Equal(t, chain.Local, reply.Chain, "chain")
	assert.Equal(t, uint64(5), reply.RPCs, "connections")
	assert.Equal(t, "1.0", reply.Version, "version")
}

func TestStateAndMiner(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	p := mocks.NewMockNodePool(ctl)
	var count atomic.Uint64
	n := node.New(logger.New(fixtures.LogCategory), p, chain.Local, "1.0", &count)

	miner := account.PrincipalFromBytes([]byte{0x02, 0x30})
	s := pool.State{Mode: mode.Running, Miner: &miner}
	gomock.InOrder(
		p.EXPECT().GetPoolState(gomock.Any()).Return(s, nil).Times(1),
		p.EXPECT().GetMiner().Return(account.Principal{}, false, nil).Times(1),
		p.EXPECT().GetMiner().Return(miner, true, nil).Times(1),
		p.EXPECT().GetMiner().Return(account.Principal{}, false, fault.CorruptRecord).Times(1),
	)

	var stateReply node.StateReply
	assert.Nil(t, n.State(&node.InfoArguments{}, &stateReply), "state")
	assert.Equal(t, s, stateReply.State, "state value")

	var minerReply node.MinerReply
	assert.Nil(t, n.Miner(&node.InfoArguments{}, &minerReply), "no miner")
	assert.Nil(t, minerReply.Miner, "absent")

	assert.Nil(t, n.Miner(&node.InfoArguments{}, &minerReply), "miner")
	assert.Equal(t, miner, *minerReply.Miner, "present")

	assert.Equal(t, fault.CorruptRecord, n.Miner(&node.InfoArguments{}, &node.MinerReply{}), "error")
}
