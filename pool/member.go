// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pool

import (
	"context"

	"github.com/bitmark-inc/cyclespool/account"
	"github.com/bitmark-inc/cyclespool/background"
	"github.com/bitmark-inc/cyclespool/bridge"
	"github.com/bitmark-inc/cyclespool/constants"
	"github.com/bitmark-inc/cyclespool/cycles"
	"github.com/bitmark-inc/cyclespool/fault"
	"github.com/bitmark-inc/cyclespool/member"
)

// JoinPool - credit the cycles of a deposit block to its sender
//
// the block must be a transfer from the caller's default account to
// the cycle minter account of this pool, carry the top up memo and
// at least the minimum amount; each block is credited once
func (p *Pool) JoinPool(ctx context.Context, caller account.Principal, blockIndex uint64) (member.Cycles, error) {
	if err := p.ready(); nil != err {
		return member.Cycles{}, err
	}
	if caller.IsAnonymous() {
		return member.Cycles{}, fault.AnonymousPrincipal
	}

	g, err := p.guards.AcquirePrincipal(caller)
	if nil != err {
		return member.Cycles{}, err
	}
	defer g.Release()

	used, err := p.ledger.DepositUsed(blockIndex)
	if nil != err {
		return member.Cycles{}, err
	}
	if used {
		return member.Cycles{}, fault.DepositAlreadyUsed
	}

	tx, err := p.fetchBlock(ctx, blockIndex)
	if nil != err {
		return member.Cycles{}, err
	}
	if err := p.verifyDeposit(caller, tx); nil != err {
		p.log.Warnf("join: %s  block: %d  rejected: %s", caller, blockIndex, err)
		return member.Cycles{}, err
	}

	credited, err := p.bridges.CycleMinter.NotifyTopUp(ctx, blockIndex, p.bridges.Host.Self())
	if nil != err {
		return member.Cycles{}, fault.External("cycle minter notify_top_up", err)
	}

	c, err := p.ledger.CreditDeposit(caller, blockIndex, credited)
	if nil != err {
		p.log.Criticalf("join: %s  block: %d  notified: %s  credit error: %s", caller, blockIndex, credited, err)
		return member.Cycles{}, err
	}
	p.log.Infof("join: %s  block: %d  cycles: %s", caller, blockIndex, credited)
	return c, nil
}

func (p *Pool) verifyDeposit(caller account.Principal, tx bridge.Transaction) error {
	if constants.JoinMemo != tx.Memo {
		return fault.InvalidJoinMemo
	}
	if bridge.Transfer != tx.Operation {
		return fault.InvalidJoinOperation
	}
	if account.NewIdentifier(caller, nil) != tx.From {
		return fault.InvalidJoinSender
	}
	if p.topUpAccount(p.bridges.Host.Self()) != tx.To {
		return fault.InvalidJoinRecipient
	}
	if tx.Amount < constants.MinJoinAmount {
		return fault.JoinAmountTooSmall
	}
	return nil
}

// the cycle minter account that tops up canister
func (p *Pool) topUpAccount(canister account.Principal) account.Identifier {
	sub := account.SubaccountFromPrincipal(canister)
	return account.NewIdentifier(p.canisters.CycleMinter, &sub)
}

// wait for the index to see a block
func (p *Pool) fetchBlock(ctx context.Context, blockIndex uint64) (bridge.Transaction, error) {
	tx := bridge.Transaction{}
	err := background.Retry(ctx, p.log, "ledger fetch_block", p.pollCount, p.pollDelay, func() error {
		t, err := p.bridges.Ledger.FetchBlock(ctx, blockIndex)
		if nil != err {
			if fault.IsErrNotFound(err) {
				return err
			}
			return fault.External("ledger fetch_block", err)
		}
		tx = t
		return nil
	})
	return tx, err
}

// SetMemberBlockCycles - the caller's commitment for coming rounds
func (p *Pool) SetMemberBlockCycles(caller account.Principal, block cycles.Cycles) error {
	if err := p.ready(); nil != err {
		return err
	}
	return p.ledger.SetBlockCommitment(caller, block)
}

// GetMemberCycles - the caller's balances
func (p *Pool) GetMemberCycles(caller account.Principal) (member.Cycles, error) {
	if err := p.ready(); nil != err {
		return member.Cycles{}, err
	}
	c, found, err := p.ledger.Get(caller)
	if nil != err {
		return member.Cycles{}, err
	}
	if !found {
		return member.Cycles{}, fault.NotAMember
	}
	return c, nil
}

// GetMemberRewards - the caller's reward history, oldest first
func (p *Pool) GetMemberRewards(caller account.Principal) ([]member.Entry, error) {
	if _, err := p.GetMemberCycles(caller); nil != err {
		return nil, err
	}
	return p.ledger.Rewards(caller)
}

// PayMemberRewards - transfer the caller's unpaid rewards
func (p *Pool) PayMemberRewards(ctx context.Context, caller account.Principal) ([]member.Entry, error) {
	if err := p.ready(); nil != err {
		return nil, err
	}
	return p.rewards.Pay(ctx, caller)
}
