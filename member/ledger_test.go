// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package member_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/cyclespool/account"
	"github.com/bitmark-inc/cyclespool/cycles"
	"github.com/bitmark-inc/cyclespool/fault"
	"github.com/bitmark-inc/cyclespool/fixtures"
	"github.com/bitmark-inc/cyclespool/member"
	"github.com/bitmark-inc/cyclespool/storage"
	"github.com/bitmark-inc/logger"
)

const databaseFileName = "test.leveldb"

var (
	alice = account.PrincipalFromBytes([]byte{0x0a, 0x01})
	bob   = account.PrincipalFromBytes([]byte{0x0a, 0x02})
	carol = account.PrincipalFromBytes([]byte{0x0a, 0x03})

	deposit = cycles.New(7_800_000_000_000)
)

func setup(t *testing.T) (*storage.Store, *member.Ledger) {
	fixtures.SetupTestLogger()
	_ = os.RemoveAll(databaseFileName)
	db, err := storage.Open(databaseFileName, storage.ReadWrite)
	require.Nil(t, err, "storage open")
	return db, member.New(logger.New(fixtures.LogCategory), db)
}

func teardown(db *storage.Store) {
	db.Close()
	_ = os.RemoveAll(databaseFileName)
	fixtures.TeardownTestLogger()
}

func join(t *testing.T, l *member.Ledger, m account.Principal, remaining uint64, block uint64) {
	_, err := l.AddRemaining(m, cycles.New(remaining))
	require.Nil(t, err, "add remaining")
	require.Nil(t, l.SetBlockCommitment(m, cycles.New(block)), "set block")
}

func TestAddRemaining(t *testing.T) {
	db, l := setup(t)
	defer teardown(db)

	_, found, err := l.Get(alice)
	assert.Nil(t, err, "get")
	assert.False(t, found, "member before deposit")

	c, err := l.AddRemaining(alice, deposit)
	assert.Nil(t, err, "first deposit")
	assert.Equal(t, deposit, c.Remaining, "remaining")

	c, err = l.AddRemaining(alice, cycles.New(1))
	assert.Nil(t, err, "second deposit")
	assert.Equal(t, cycles.New(7_800_000_000_001), c.Remaining, "accumulated")

	stored, found, err := l.Get(alice)
	assert.Nil(t, err, "get")
	assert.True(t, found, "member")
	assert.Equal(t, member.Cycles{Remaining: cycles.New(7_800_000_000_001)}, stored, "stored")
}

func TestCreditDepositOnce(t *testing.T) {
	db, l := setup(t)
	defer teardown(db)

	used, err := l.DepositUsed(17)
	assert.Nil(t, err, "used")
	assert.False(t, used, "fresh block")

	_, err = l.CreditDeposit(alice, 17, deposit)
	assert.Nil(t, err, "credit")

	used, _ = l.DepositUsed(17)
	assert.True(t, used, "consumed block")

	_, err = l.CreditDeposit(bob, 17, deposit)
	assert.Equal(t, fault.DepositAlreadyUsed, err, "replayed block")

	_, found, _ := l.Get(bob)
	assert.False(t, found, "replay created member")
}

func TestSetBlockCommitment(t *testing.T) {
	db, l := setup(t)
	defer teardown(db)

	err := l.SetBlockCommitment(alice, cycles.New(15_000_000_000))
	assert.Equal(t, fault.NotAMember, err, "not a member")

	_, err = l.AddRemaining(alice, deposit)
	require.Nil(t, err, "deposit")

	assert.Nil(t, l.SetBlockCommitment(alice, cycles.New(20_000_000_000)), "valid block")

	err = l.SetBlockCommitment(alice, cycles.New(14_999_000_000))
	assert.Equal(t, fault.BlockCyclesTooSmall, err, "too small")

	err = l.SetBlockCommitment(alice, cycles.New(15_000_000_001))
	assert.Equal(t, fault.BlockCyclesNotAligned, err, "not aligned")

	c, _, _ := l.Get(alice)
	assert.Equal(t, cycles.New(20_000_000_000), c.Block, "block unchanged by rejected values")

	assert.Nil(t, l.SetBlockCommitment(alice, cycles.Zero), "opt out")
	c, _, _ = l.Get(alice)
	assert.True(t, c.Block.IsZero(), "opted out")
}

func TestListEligible(t *testing.T) {
	db, l := setup(t)
	defer teardown(db)

	join(t, l, alice, 7_800_000_000_000, 15_000_000_000)
	join(t, l, bob, 7_800_000_000_000, 30_000_000_000)
	join(t, l, carol, 7_800_000_000_000, 0) // opted out

	participants, err := l.ListEligible()
	assert.Nil(t, err, "list")
	assert.Equal(t, []member.Participant{
		{Member: alice, Cycles: cycles.New(15_000_000_000)},
		{Member: bob, Cycles: cycles.New(30_000_000_000)},
	}, participants, "participants")
}

func TestListEligibleReducesUntilAffordable(t *testing.T) {
	db, l := setup(t)
	defer teardown(db)

	// with two members each pays 2.5e9 of fee: alice can, bob cannot;
	// alone, alice would pay 5e9 and cannot either
	join(t, l, alice, 17_500_000_000, 15_000_000_000)
	join(t, l, bob, 16_000_000_000, 15_000_000_000)

	participants, err := l.ListEligible()
	assert.Nil(t, err, "list")
	assert.Equal(t, 0, len(participants), "nobody can pay")

	// a third member lowers the share so everyone fits
	join(t, l, carol, 7_800_000_000_000, 15_000_000_000)
	participants, err = l.ListEligible()
	assert.Nil(t, err, "list")
	assert.Equal(t, 2, len(participants), "alice and carol")
	assert.Equal(t, alice, participants[0].Member, "alice")
	assert.Equal(t, carol, participants[1].Member, "carol")
}

func TestCommit(t *testing.T) {
	db, l := setup(t)
	defer teardown(db)

	join(t, l, alice, 7_800_000_000_000, 15_000_000_000)
	join(t, l, bob, 7_800_000_000_000, 15_000_000_000)
	join(t, l, carol, 7_800_000_000_000, 15_000_000_000)

	participants, err := l.ListEligible()
	require.Nil(t, err, "list")

	total, err := l.Commit(participants)
	assert.Nil(t, err, "commit")
	assert.Equal(t, cycles.New(45_000_000_000), total, "total committed")

	share, err := member.FeeShare(3)
	assert.Nil(t, err, "share")
	assert.Equal(t, cycles.New(1_666_666_666), share, "fee share")

	for _, m := range []account.Principal{alice, bob, carol} {
		c, _, _ := l.Get(m)
		assert.Equal(t, cycles.New(7_800_000_000_000-15_000_000_000-1_666_666_666), c.Remaining, "remaining")
		assert.Equal(t, cycles.New(15_000_000_000), c.Pending, "pending")
		assert.Equal(t, cycles.New(15_000_000_000), c.Block, "block")
	}

	totals, err := l.Totals()
	assert.Nil(t, err, "totals")
	assert.Equal(t, 3, totals.Members, "members")
	assert.Equal(t, 3, totals.Active, "active")
	assert.Equal(t, cycles.New(45_000_000_000), totals.Pending, "pending total")

	// fee shares sum to the fee less at most n-1 cycles
	collected, _ := share.MulUint64(3)
	missing, _ := cycles.New(5_000_000_000).Sub(collected)
	assert.True(t, !cycles.New(2).LessThan(missing), "rounding loss")
}

func TestCommitAllOrNothing(t *testing.T) {
	db, l := setup(t)
	defer teardown(db)

	join(t, l, alice, 7_800_000_000_000, 15_000_000_000)
	join(t, l, bob, 15_000_000_000, 15_000_000_000)

	_, err := l.Commit([]member.Participant{
		{Member: alice, Cycles: cycles.New(15_000_000_000)},
		{Member: bob, Cycles: cycles.New(15_000_000_000)},
	})
	assert.Equal(t, fault.InsufficientCycles, err, "bob cannot pay fee share")

	c, _, _ := l.Get(alice)
	assert.Equal(t, cycles.New(7_800_000_000_000), c.Remaining, "alice untouched")
	assert.True(t, c.Pending.IsZero(), "alice pending untouched")

	_, err = l.Commit(nil)
	assert.Equal(t, fault.NothingToCommit, err, "empty commit")
}

func TestRealizeRewardsThreeMembers(t *testing.T) {
	db, l := setup(t)
	defer teardown(db)

	join(t, l, alice, 7_800_000_000_000, 15_000_000_000)
	join(t, l, bob, 7_800_000_000_000, 30_000_000_000)
	join(t, l, carol, 7_800_000_000_000, 45_000_000_000)

	participants, err := l.ListEligible()
	require.Nil(t, err, "list")
	_, err = l.Commit(participants)
	require.Nil(t, err, "commit")

	staged := false
	realized, err := l.RealizeRewards(cycles.New(60_000_000_000), 1234, func(trx storage.Transaction) {
		staged = nil != trx
	})
	assert.Nil(t, err, "realize")
	assert.True(t, staged, "checkpoint stage called")

	// net = 60e9 - 3 × 1e6, shared 1:2:3
	expected := map[account.Principal]uint64{
		alice: 9_999_500_000,
		bob:   19_999_000_000,
		carol: 29_998_500_000,
	}
	assert.Equal(t, 3, len(realized), "realized count")
	for _, r := range realized {
		assert.Equal(t, cycles.New(expected[r.Member]), r.Reward.Reward, "reward of %s", r.Member)
		assert.Equal(t, uint64(1234), r.Timestamp, "timestamp")
		assert.Equal(t, uint64(0), r.Sequence, "first sequence")
		assert.False(t, r.IsPaid(), "unpaid")

		c, _, _ := l.Get(r.Member)
		assert.True(t, c.Pending.IsZero(), "pending cleared")
	}

	rewards, err := l.Rewards(bob)
	assert.Nil(t, err, "rewards")
	assert.Equal(t, 1, len(rewards), "history")
	assert.Equal(t, cycles.New(30_000_000_000), rewards[0].CyclesBurnt, "cycles burnt")

	// nothing pending: nothing realized
	realized, err = l.RealizeRewards(cycles.New(60_000_000_000), 1300, nil)
	assert.Nil(t, err, "second realize")
	assert.Equal(t, 0, len(realized), "nothing pending")
}

func TestRealizeBelowFees(t *testing.T) {
	db, l := setup(t)
	defer teardown(db)

	join(t, l, alice, 7_800_000_000_000, 15_000_000_000)
	participants, _ := l.ListEligible()
	_, err := l.Commit(participants)
	require.Nil(t, err, "commit")

	realized, err := l.RealizeRewards(cycles.New(999_999), 1, nil)
	assert.Nil(t, err, "realize")
	assert.Equal(t, 1, len(realized), "one reward")
	assert.True(t, realized[0].Reward.Reward.IsZero(), "zero net")

	unpaid, err := l.Unpaid(alice)
	assert.Nil(t, err, "unpaid")
	assert.Equal(t, 0, len(unpaid), "zero reward is never paid")
}

func TestConfirmPayout(t *testing.T) {
	db, l := setup(t)
	defer teardown(db)

	join(t, l, alice, 7_800_000_000_000, 15_000_000_000)
	for round := uint64(0); round < 2; round += 1 {
		participants, _ := l.ListEligible()
		_, err := l.Commit(participants)
		require.Nil(t, err, "commit")
		_, err = l.RealizeRewards(cycles.New(60_000_000_000), round+1, nil)
		require.Nil(t, err, "realize")
	}

	unpaid, err := l.Unpaid(alice)
	assert.Nil(t, err, "unpaid")
	assert.Equal(t, 2, len(unpaid), "two unpaid")

	assert.Nil(t, l.ConfirmPayout(alice, unpaid[0].Sequence, 900), "confirm")
	assert.Equal(t, fault.PayoutAlreadyConfirmed, l.ConfirmPayout(alice, unpaid[0].Sequence, 901), "confirm twice")
	assert.Equal(t, fault.RewardNotFound, l.ConfirmPayout(alice, 77, 902), "unknown sequence")

	unpaid, _ = l.Unpaid(alice)
	assert.Equal(t, 1, len(unpaid), "one unpaid")
	assert.Equal(t, uint64(1), unpaid[0].Sequence, "second reward")

	rewards, _ := l.Rewards(alice)
	require.Equal(t, 2, len(rewards), "history")
	require.NotNil(t, rewards[0].BlockIndex, "first paid")
	assert.Equal(t, uint64(900), *rewards[0].BlockIndex, "block index")
	assert.Nil(t, rewards[1].BlockIndex, "second unpaid")
}

func TestRewardPrefixesDoNotOverlap(t *testing.T) {
	db, l := setup(t)
	defer teardown(db)

	short := account.PrincipalFromBytes([]byte{0x0a})
	long := account.PrincipalFromBytes([]byte{0x0a, 0x0a})
	join(t, l, short, 7_800_000_000_000, 15_000_000_000)
	join(t, l, long, 7_800_000_000_000, 15_000_000_000)

	participants, _ := l.ListEligible()
	_, err := l.Commit(participants)
	require.Nil(t, err, "commit")
	_, err = l.RealizeRewards(cycles.New(60_000_000_000), 1, nil)
	require.Nil(t, err, "realize")

	rewards, _ := l.Rewards(short)
	assert.Equal(t, 1, len(rewards), "short history")
	rewards, _ = l.Rewards(long)
	assert.Equal(t, 1, len(rewards), "long history")
}
