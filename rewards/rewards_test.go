// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rewards_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/cyclespool/account"
	"github.com/bitmark-inc/cyclespool/bridge"
	"github.com/bitmark-inc/cyclespool/bridge/mocks"
	"github.com/bitmark-inc/cyclespool/cycles"
	"github.com/bitmark-inc/cyclespool/fault"
	"github.com/bitmark-inc/cyclespool/fixtures"
	"github.com/bitmark-inc/cyclespool/guard"
	"github.com/bitmark-inc/cyclespool/member"
	"github.com/bitmark-inc/cyclespool/rewards"
	"github.com/bitmark-inc/cyclespool/state"
	"github.com/bitmark-inc/cyclespool/storage"
	"github.com/bitmark-inc/logger"
)

const databaseFileName = "test.leveldb"

var (
	pool  = account.PrincipalFromBytes([]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x64, 0x01, 0x01})
	other = account.PrincipalFromBytes([]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x65, 0x01, 0x01})
	alice = account.PrincipalFromBytes([]byte{0x0a, 0x01})
	bob   = account.PrincipalFromBytes([]byte{0x0a, 0x02})
)

type fixture struct {
	db           *storage.Store
	guards       *guard.Registry
	ledger       *member.Ledger
	state        *state.Store
	minter       *mocks.MockMinter
	rewardLedger *mocks.MockRewardLedger
	engine       *rewards.Engine
}

func setup(t *testing.T, ctl *gomock.Controller) *fixture {
	fixtures.SetupTestLogger()
	_ = os.RemoveAll(databaseFileName)
	db, err := storage.Open(databaseFileName, storage.ReadWrite)
	require.Nil(t, err, "storage open")

	log := logger.New(fixtures.LogCategory)
	f := &fixture{
		db:           db,
		guards:       guard.New(log),
		ledger:       member.New(log, db),
		state:        state.New(log, db),
		minter:       mocks.NewMockMinter(ctl),
		rewardLedger: mocks.NewMockRewardLedger(ctl),
	}
	host := mocks.NewMockHost(ctl)
	host.EXPECT().Self().Return(pool).AnyTimes()

	f.engine = rewards.New(log, f.guards, f.ledger, f.state, bridge.Collaborators{
		Minter:       f.minter,
		RewardLedger: f.rewardLedger,
		Host:         host,
	})
	return f
}

func (f *fixture) teardown() {
	f.db.Close()
	_ = os.RemoveAll(databaseFileName)
	fixtures.TeardownTestLogger()
}

// put alice and bob through one committed round
func (f *fixture) commitRound(t *testing.T) {
	for _, m := range []struct {
		who   account.Principal
		block uint64
	}{{alice, 15_000_000_000}, {bob, 30_000_000_000}} {
		c, _, err := f.ledger.Get(m.who)
		require.Nil(t, err, "get")
		if c.Remaining.IsZero() {
			_, err = f.ledger.AddRemaining(m.who, cycles.New(1_000_000_000_000))
			require.Nil(t, err, "add remaining")
		}
		require.Nil(t, f.ledger.SetBlockCommitment(m.who, cycles.New(m.block)), "set block")
	}
	participants, err := f.ledger.ListEligible()
	require.Nil(t, err, "eligible")
	_, err = f.ledger.Commit(participants)
	require.Nil(t, err, "commit")
}

func TestCheckRealizesNewBlocks(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	f := setup(t, ctl)
	defer f.teardown()

	f.commitRound(t)

	blocks := []bridge.Block{
		{To: pool, Timestamp: 200, Reward: cycles.New(30_000_000_000)},
		{To: other, Timestamp: 300, Reward: cycles.New(99_000_000_000)},
		{To: pool, Timestamp: 100, Reward: cycles.New(15_002_000_000)},
	}
	f.minter.EXPECT().LatestBlocks(gomock.Any()).Return(blocks, nil).Times(2)

	realized, err := f.engine.Check(context.Background())
	assert.Nil(t, err, "check")
	assert.Equal(t, 2, len(realized), "realized members")

	checkpoint, err := f.state.LastRewardTimestamp()
	assert.Nil(t, err, "checkpoint")
	assert.Equal(t, uint64(200), checkpoint, "newest pool block")

	aliceRewards, err := f.ledger.Rewards(alice)
	assert.Nil(t, err, "alice rewards")
	require.Equal(t, 1, len(aliceRewards), "alice entries")
	assert.Equal(t, cycles.New(15_000_000_000), aliceRewards[0].Reward.Reward, "alice share")

	bobRewards, err := f.ledger.Rewards(bob)
	assert.Nil(t, err, "bob rewards")
	require.Equal(t, 1, len(bobRewards), "bob entries")
	assert.Equal(t, cycles.New(30_000_000_000), bobRewards[0].Reward.Reward, "bob share")

	// same blocks again: nothing changes
	realized, err = f.engine.Check(context.Background())
	assert.Nil(t, err, "second check")
	assert.Equal(t, 0, len(realized), "nothing realized")

	aliceRewards, err = f.ledger.Rewards(alice)
	assert.Nil(t, err, "alice rewards")
	assert.Equal(t, 1, len(aliceRewards), "alice entries unchanged")
}

func TestCheckMinterFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	f := setup(t, ctl)
	defer f.teardown()

	f.minter.EXPECT().LatestBlocks(gomock.Any()).Return(nil, errors.New("canister is frozen"))

	_, err := f.engine.Check(context.Background())
	assert.True(t, fault.IsErrExternal(err), "external error")
	assert.Equal(t, 0, f.guards.Held(), "guard released")
}

func TestCheckNotOverlapping(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	f := setup(t, ctl)
	defer f.teardown()

	g, err := f.guards.AcquireTask(guard.CheckRewards)
	require.Nil(t, err, "hold task guard")
	defer g.Release()

	_, err = f.engine.Check(context.Background())
	assert.Equal(t, fault.GuardAlreadyHeld, err, "overlapping check")
}

func TestPayResumesAfterFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	f := setup(t, ctl)
	defer f.teardown()

	for ts := uint64(1); ts <= 2; ts += 1 {
		f.commitRound(t)
		_, err := f.ledger.RealizeRewards(cycles.New(45_002_000_000), ts, nil)
		require.Nil(t, err, "realize")
	}

	gomock.InOrder(
		f.rewardLedger.EXPECT().Transfer(gomock.Any(), alice, cycles.New(15_000_000_000)).Return(uint64(7), nil),
		f.rewardLedger.EXPECT().Transfer(gomock.Any(), alice, cycles.New(15_000_000_000)).Return(uint64(0), errors.New("insufficient funds")),
		f.rewardLedger.EXPECT().Transfer(gomock.Any(), alice, cycles.New(15_000_000_000)).Return(uint64(8), nil),
	)

	paid, err := f.engine.Pay(context.Background(), alice)
	assert.True(t, fault.IsErrExternal(err), "second transfer fails")
	require.Equal(t, 1, len(paid), "first entry paid")
	assert.Equal(t, uint64(7), *paid[0].BlockIndex, "first block index")

	unpaid, err := f.ledger.Unpaid(alice)
	assert.Nil(t, err, "unpaid")
	assert.Equal(t, 1, len(unpaid), "one left")

	paid, err = f.engine.Pay(context.Background(), alice)
	assert.Nil(t, err, "resume")
	require.Equal(t, 1, len(paid), "second entry paid")
	assert.Equal(t, uint64(1), paid[0].Sequence, "resumed at second entry")
	assert.Equal(t, uint64(8), *paid[0].BlockIndex, "second block index")

	history, err := f.ledger.Rewards(alice)
	assert.Nil(t, err, "history")
	for i, e := range history {
		assert.True(t, e.IsPaid(), "entry %d paid", i)
	}

	// nothing left: no transfer
	paid, err = f.engine.Pay(context.Background(), alice)
	assert.Nil(t, err, "nothing to pay")
	assert.Equal(t, 0, len(paid), "no entries")
}

func TestPayConcurrentForSameMember(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	f := setup(t, ctl)
	defer f.teardown()

	f.commitRound(t)
	_, err := f.ledger.RealizeRewards(cycles.New(45_002_000_000), 1, nil)
	require.Nil(t, err, "realize")

	entered := make(chan struct{})
	proceed := make(chan struct{})
	f.rewardLedger.EXPECT().Transfer(gomock.Any(), alice, gomock.Any()).DoAndReturn(
		func(ctx context.Context, to account.Principal, amount cycles.Cycles) (uint64, error) {
			close(entered)
			<-proceed
			return 11, nil
		}).Times(1)

	done := make(chan error)
	go func() {
		_, err := f.engine.Pay(context.Background(), alice)
		done <- err
	}()

	<-entered
	_, err = f.engine.Pay(context.Background(), alice)
	assert.True(t, fault.IsErrConcurrency(err), "second caller rejected")

	close(proceed)
	assert.Nil(t, <-done, "first caller completes")

	history, err := f.ledger.Rewards(alice)
	assert.Nil(t, err, "history")
	require.Equal(t, 1, len(history), "one entry")
	assert.Equal(t, uint64(11), *history[0].BlockIndex, "paid once")
}

func TestPayNotAMember(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	f := setup(t, ctl)
	defer f.teardown()

	_, err := f.engine.Pay(context.Background(), alice)
	assert.Equal(t, fault.NotAMember, err, "not a member")
}
