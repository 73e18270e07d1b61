// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package members_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/cyclespool/account"
	"github.com/bitmark-inc/cyclespool/cycles"
	"github.com/bitmark-inc/cyclespool/fault"
	"github.com/bitmark-inc/cyclespool/fixtures"
	"github.com/bitmark-inc/cyclespool/member"
	"github.com/bitmark-inc/cyclespool/rpc/members"
	"github.com/bitmark-inc/cyclespool/rpc/mocks"
	"github.com/bitmark-inc/logger"
)

var alice = account.PrincipalFromBytes([]byte{0x0a, 0x01})

func setup(t *testing.T) (*members.Members, *mocks.MockMemberPool, *gomock.Controller) {
	fixtures.SetupTestLogger()
	ctl := gomock.NewController(t)
	p := mocks.NewMockMemberPool(ctl)
	return members.New(logger.New(fixtures.LogCategory), p), p, ctl
}

func TestJoin(t *testing.T) {
	m, p, ctl := setup(t)
	defer fixtures.TeardownTestLogger()
	defer ctl.Finish()

	c := member.Cycles{Remaining: cycles.New(7_800_000_000_000)}
	p.EXPECT().JoinPool(gomock.Any(), alice, uint64(42)).Return(c, nil).Times(1)

	var reply members.CyclesReply
	err := m.Join(&members.JoinArguments{Caller: alice, BlockIndex: 42}, &reply)
	assert.Nil(t, err, "join")
	assert.Equal(t, c, reply.Cycles, "cycles")
}

func TestMissingCaller(t *testing.T) {
	m, _, ctl := setup(t)
	defer fixtures.TeardownTestLogger()
	defer ctl.Finish()

	err := m.Join(&members.JoinArguments{BlockIndex: 42}, &members.CyclesReply{})
	assert.Equal(t, fault.MissingParameters, err, "join")
	err = m.Cycles(&members.CallerArguments{}, &members.CyclesReply{})
	assert.Equal(t, fault.MissingParameters, err, "cycles")
	err = m.Pay(&members.CallerArguments{}, &members.RewardsReply{})
	assert.Equal(t, fault.MissingParameters, err, "pay")
}

func TestSetBlockCycles(t *testing.T) {
	m, p, ctl := setup(t)
	defer fixtures.TeardownTestLogger()
	defer ctl.Finish()

	block := cycles.New(15_000_000_000)
	p.EXPECT().SetMemberBlockCycles(alice, block).Return(fault.NotAMember).Times(1)

	err := m.SetBlockCycles(&members.BlockCyclesArguments{Caller: alice, BlockCycles: block}, &members.EmptyReply{})
	assert.Equal(t, fault.NotAMember, err, "error passed through")
}

func TestCyclesAndRewards(t *testing.T) {
	m, p, ctl := setup(t)
	defer fixtures.TeardownTestLogger()
	defer ctl.Finish()

	c := member.Cycles{Block: cycles.New(15_000_000_000)}
	entries := []member.Entry{{Sequence: 1, Reward: member.Reward{Timestamp: 7, Reward: cycles.New(100)}}}
	p.EXPECT().GetMemberCycles(alice).Return(c, nil).Times(1)
	p.EXPECT().GetMemberRewards(alice).Return(entries, nil).Times(1)

	var cyclesReply members.CyclesReply
	assert.Nil(t, m.Cycles(&members.CallerArguments{Caller: alice}, &cyclesReply), "cycles")
	assert.Equal(t, c, cyclesReply.Cycles, "balances")

	var rewardsReply members.RewardsReply
	assert.Nil(t, m.Rewards(&members.CallerArguments{Caller: alice}, &rewardsReply), "rewards")
	assert.Equal(t, entries, rewardsReply.Rewards, "entries")
}

func TestPayKeepsPartialResult(t *testing.T) {
	m, p, ctl := setup(t)
	defer fixtures.TeardownTestLogger()
	defer ctl.Finish()

	index := uint64(9)
	paid := []member.Entry{{Sequence: 1, Reward: member.Reward{Reward: cycles.New(100), BlockIndex: &index}}}
	failed := fault.External("reward ledger transfer", fault.ExternalCallFailed)
	p.EXPECT().PayMemberRewards(gomock.Any(), alice).Return(paid, failed).Times(1)

	var reply members.RewardsReply
	err := m.Pay(&members.CallerArguments{Caller: alice}, &reply)
	assert.Nil(t, err, "partial payout is a reply")
	assert.Equal(t, paid, reply.Rewards, "paid before failure")
	assert.Equal(t, failed.Error(), reply.Error, "failure reported in reply")
}

func TestPayFailsWithNothingPaid(t *testing.T) {
	m, p, ctl := setup(t)
	defer fixtures.TeardownTestLogger()
	defer ctl.Finish()

	p.EXPECT().PayMemberRewards(gomock.Any(), alice).Return(nil, fault.GuardAlreadyHeld).Times(1)

	var reply members.RewardsReply
	err := m.Pay(&members.CallerArguments{Caller: alice}, &reply)
	assert.Equal(t, fault.GuardAlreadyHeld, err, "error passed through")
	assert.Equal(t, "", reply.Error, "no reply error")
}
