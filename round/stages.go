// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package round

import (
	"context"
	"time"

	"github.com/bitmark-inc/cyclespool/account"
	"github.com/bitmark-inc/cyclespool/background"
	"github.com/bitmark-inc/cyclespool/bridge"
	"github.com/bitmark-inc/cyclespool/cycles"
	"github.com/bitmark-inc/cyclespool/fault"
	"github.com/bitmark-inc/cyclespool/messagebus"
	"github.com/bitmark-inc/cyclespool/mode"
)

// Step - run one stage, returning the stage to run next and the
// delay before it
func (c *Controller) Step(ctx context.Context, stage Stage) (Stage, time.Duration) {
	c.setStage(stage)

	var (
		next  Stage
		delay time.Duration
		err   error
	)
	switch stage {
	case Stage1:
		next, delay, err = c.stage1(ctx)
	case Stage2:
		next, delay, err = c.stage2(ctx)
	case Stage3:
		next, delay, err = c.stage3(ctx)
	default:
		return Idle, 0
	}

	if nil != err {
		promRoundFailures.WithLabelValues(stage.String()).Inc()
		if fault.IsErrFatal(err) {
			c.log.Criticalf("%s: %s", stage, err)
		} else {
			c.log.Errorf("%s: %s", stage, err)
		}
		next, delay = Stage1, c.timings.ErrorRestartDelay
	}
	if Idle == next {
		c.setStage(Idle)
	}
	return next, delay
}

// a round only starts while Running; Stopping becomes Stopped here
func (c *Controller) halt() (bool, error) {
	_, now, err := c.state.UpdateMode(func(m mode.Mode) (mode.Mode, error) {
		if mode.Stopping == m {
			return mode.Stopped, nil
		}
		return m, nil
	})
	if nil != err {
		return false, err
	}
	if mode.Running != now {
		if mode.Stopped == now {
			messagebus.Announce(messagebus.ModeEvent, now)
		}
		c.log.Infof("round loop halted: %s", now)
		return true, nil
	}
	return false, nil
}

func (c *Controller) minerPrincipal() (account.Principal, error) {
	miner, found, err := c.state.Miner()
	if nil != err {
		return account.Principal{}, err
	}
	if !found {
		return account.Principal{}, fault.MinerNotSet
	}
	return miner, nil
}

// reset the allowance, realize yield, then time the next round
func (c *Controller) stage1(ctx context.Context) (Stage, time.Duration, error) {
	halted, err := c.halt()
	if nil != err {
		return Stage1, 0, err
	}
	if halted {
		return Idle, 0, nil
	}

	miner, err := c.minerPrincipal()
	if nil != err {
		return Stage1, 0, err
	}

	stats := bridge.Stats{}
	err = background.Retry(ctx, c.log, "stage 1", c.timings.Attempts, c.timings.RetryDelay, func() error {
		if err := c.miner.UpdateSettings(ctx, miner, cycles.Zero); nil != err {
			return fault.External("miner update_settings", err)
		}
		if _, err := c.rewards.Check(ctx); nil != err {
			return err
		}
		s, err := c.minter.Statistics(ctx)
		if nil != err {
			return fault.External("minter get_statistics", err)
		}
		stats = s
		return nil
	})
	if nil != err {
		return Stage1, 0, err
	}

	last, err := c.state.LastBlockCount()
	if nil != err {
		return Stage1, 0, err
	}
	if err := c.state.SetLastBlockCount(stats.BlockCount); nil != err {
		return Stage1, 0, err
	}
	if 0 < last && last+1 < stats.BlockCount {
		promSkippedBlocks.Add(float64(stats.BlockCount - last - 1))
		c.log.Warnf("skipped blocks: %d..<%d", last+1, stats.BlockCount)
	}

	since := time.Duration(stats.TimeSinceLastBlock) * time.Second
	switch {
	case since < c.timings.SafeWindow:
		return Stage2, 0, nil
	case since >= c.timings.MissedRoundBound:
		c.log.Warnf("block: %d  time since last block: %s", stats.BlockCount, since)
		return Stage1, 0, fault.RoundMissed
	default:
		return Stage2, c.timings.MissedRoundBound - since, nil
	}
}

// commit the eligible members and fund the miner for them
func (c *Controller) stage2(ctx context.Context) (Stage, time.Duration, error) {
	participants, err := c.ledger.ListEligible()
	if nil != err {
		return Stage1, 0, err
	}
	total := cycles.Zero
	for _, p := range participants {
		if total, err = total.Add(p.Cycles); nil != err {
			return Stage1, 0, err
		}
	}
	if total.IsZero() {
		c.log.Infof("no eligible members: cool down: %s", c.timings.CoolDown)
		return Stage1, c.timings.CoolDown, nil
	}

	miner, err := c.minerPrincipal()
	if nil != err {
		return Stage1, 0, err
	}

	topUp := cycles.Zero
	err = background.Retry(ctx, c.log, "stage 2", c.timings.Attempts, c.timings.RetryDelay, func() error {
		if err := c.minter.UpgradeMiner(ctx, miner); nil != err {
			return fault.External("minter upgrade_miner", err)
		}
		if err := c.miner.UpdateSettings(ctx, miner, total); nil != err {
			return fault.External("miner update_settings", err)
		}
		stats, err := c.miner.Statistics(ctx, miner)
		if nil != err {
			return fault.External("miner get_statistics", err)
		}

		target, err := total.Add(minerBuffer)
		if nil != err {
			return err
		}
		topUp = target.SaturatingSub(stats.CycleBalance)

		balance, err := c.host.CycleBalance(ctx)
		if nil != err {
			return fault.External("host cycle_balance", err)
		}
		if balance.SaturatingSub(topUp).LessThan(poolFloor) || balance.LessThan(topUp) {
			c.log.Criticalf("pool cycles: %s  too low after miner top up: %s", balance, topUp)
			if _, _, err := c.state.UpdateMode(mode.Stop); nil != err {
				c.log.Errorf("stopping: %s", err)
			}
			messagebus.Announce(messagebus.ModeEvent, mode.Stopping)
			return fault.PoolBalanceTooLow
		}

		if topUp.IsZero() {
			return nil
		}
		if err := c.miner.DepositCycles(ctx, miner, topUp); nil != err {
			return fault.External("miner deposit_cycles", err)
		}
		return nil
	})
	if nil != err {
		return Stage1, 0, err
	}
	promTopUpCycles.Add(topUp.Float64())

	committed, err := c.ledger.Commit(participants)
	if nil != err {
		return Stage1, 0, err
	}
	c.committed = committed

	promRounds.Inc()
	promCommittedCycles.Set(committed.Float64())
	c.log.Infof("round committed: members: %d  cycles: %s  top up: %s", len(participants), committed, topUp)
	messagebus.Announce(messagebus.RoundEvent, Commitment{
		Participants: participants,
		Total:        committed,
		TopUp:        topUp,
	})

	return Stage3, c.timings.VerifyDelay, nil
}

// the miner must have burned exactly what was committed; a mismatch
// is not rolled back, later yield settles the pending cycles
func (c *Controller) stage3(ctx context.Context) (Stage, time.Duration, error) {
	miner, err := c.minerPrincipal()
	if nil != err {
		return Stage1, 0, err
	}

	burned := cycles.Zero
	err = background.Retry(ctx, c.log, "stage 3", c.timings.BurnCheckAttempts, c.timings.BurnCheckDelay, func() error {
		stats, err := c.miner.Statistics(ctx, miner)
		if nil != err {
			return fault.External("miner get_statistics", err)
		}
		burned = stats.LastRoundCyclesBurned
		if 0 != burned.Cmp(c.committed) {
			return fault.BurnMismatch
		}
		return nil
	})
	if nil != err {
		if fault.IsErrConsistency(err) {
			c.log.Errorf("cycles burned: %s  committed: %s", burned, c.committed)
		}
		return Stage1, 0, err
	}

	c.log.Infof("round verified: burned: %s", burned)
	return Stage1, 0, nil
}
