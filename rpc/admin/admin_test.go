// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package admin_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/cyclespool/account"
	"github.com/bitmark-inc/cyclespool/fault"
	"github.com/bitmark-inc/cyclespool/fixtures"
	"github.com/bitmark-inc/cyclespool/rpc/admin"
	"github.com/bitmark-inc/cyclespool/rpc/mocks"
	"github.com/bitmark-inc/logger"
)

var (
	operator = account.PrincipalFromBytes([]byte{0x0c, 0x01})
	miner    = account.PrincipalFromBytes([]byte{0x00, 0x00, 0x00, 0x00, 0x02, 0x30, 0x00, 0x01, 0x01, 0x01})
)

func TestStartStop(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	p := mocks.NewMockAdminPool(ctl)
	a := admin.New(logger.New(fixtures.LogCategory), p)

	gomock.InOrder(
		p.EXPECT().Start(operator).Return(nil).Times(1),
		p.EXPECT().Stop(operator).Return(nil).Times(1),
		p.EXPECT().Stop(operator).Return(fault.PoolNotRunning).Times(1),
	)

	assert.Nil(t, a.Start(&admin.CallerArguments{Caller: operator}, &admin.EmptyReply{}), "start")
	assert.Nil(t, a.Stop(&admin.CallerArguments{Caller: operator}, &admin.EmptyReply{}), "stop")
	assert.Equal(t, fault.PoolNotRunning, a.Stop(&admin.CallerArguments{Caller: operator}, &admin.EmptyReply{}), "stop again")
	assert.Equal(t, fault.MissingParameters, a.Start(&admin.CallerArguments{}, &admin.EmptyReply{}), "no caller")
}

func TestSpawnMiner(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	p := mocks.NewMockAdminPool(ctl)
	a := admin.New(logger.New(fixtures.LogCategory), p)

	p.EXPECT().SpawnMiner(gomock.Any(), operator, uint64(17)).Return(miner, nil).Times(1)

	var reply admin.SpawnReply
	err := a.SpawnMiner(&admin.SpawnArguments{Caller: operator, BlockIndex: 17}, &reply)
	assert.Nil(t, err, "spawn")
	assert.Equal(t, miner, reply.Miner, "miner")
}
