// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"github.com/bitmark-inc/cyclespool/account"
)

// names of all chains
const (
	Mainnet = "mainnet"
	Local   = "local"
)

// Canisters - the well known collaborators of a pool on one chain
type Canisters struct {
	Ledger       account.Principal // token ledger taking deposits
	LedgerIndex  account.Principal // block lookups by index
	CycleMinter  account.Principal // converts deposits to cycles
	Minter       account.Principal // runs the mining rounds
	RewardLedger account.Principal // ledger of the mined tokens
}

var mainnet = Canisters{
	Ledger:       account.PrincipalFromBytes([]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x02, 0x01, 0x01}),
	LedgerIndex:  account.PrincipalFromBytes([]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x0b, 0x01, 0x01}),
	CycleMinter:  account.PrincipalFromBytes([]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x04, 0x01, 0x01}),
	Minter:       account.PrincipalFromBytes([]byte{0x00, 0x00, 0x00, 0x00, 0x02, 0x40, 0x00, 0x55, 0x01, 0x01}),
	RewardLedger: account.PrincipalFromBytes([]byte{0x00, 0x00, 0x00, 0x00, 0x02, 0x40, 0x00, 0x59, 0x01, 0x01}),
}

// the local chain runs against the in-process simulator, which
// uses the same identities
var local = mainnet

// Valid - validate a chain name
func Valid(name string) bool {
	switch name {
	case Mainnet, Local:
		return true
	default:
		return false
	}
}

// Get - the canisters of a chain
func Get(name string) (Canisters, bool) {
	switch name {
	case Mainnet:
		return mainnet, true
	case Local:
		return local, true
	default:
		return Canisters{}, false
	}
}
