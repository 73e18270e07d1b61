// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash/crc32"

	"github.com/bitmark-inc/cyclespool/fault"
)

const (
	subaccountLength = 32
	identifierLength = 32
	domainSeparator  = "\x0aaccount-id"
)

// Subaccount - selects one of the accounts owned by a principal
type Subaccount [subaccountLength]byte

// SubaccountFromPrincipal - the subaccount a canister uses to receive
// funds on behalf of another principal: length byte then the bytes
func SubaccountFromPrincipal(p Principal) Subaccount {
	var sub Subaccount
	sub[0] = byte(p.Len())
	copy(sub[1:], p.raw)
	return sub
}

// Identifier - ledger account address: checksum followed by the
// SHA-224 digest of owner and subaccount
type Identifier [identifierLength]byte

// NewIdentifier - compute the ledger address of owner/subaccount
//
// a nil subaccount selects the default (all zero) account
func NewIdentifier(owner Principal, sub *Subaccount) Identifier {
	if nil == sub {
		sub = &Subaccount{}
	}

	h := sha256.New224()
	h.Write([]byte(domainSeparator))
	h.Write([]byte(owner.raw))
	h.Write(sub[:])
	digest := h.Sum(nil)

	var id Identifier
	binary.BigEndian.PutUint32(id[:checksumLength], crc32.ChecksumIEEE(digest))
	copy(id[checksumLength:], digest)
	return id
}

// ParseIdentifier - decode a hex account identifier and verify its checksum
func ParseIdentifier(s string) (Identifier, error) {
	var id Identifier
	b, err := hex.DecodeString(s)
	if nil != err || identifierLength != len(b) {
		return id, fault.InvalidAccountIdentifier
	}
	if binary.BigEndian.Uint32(b[:checksumLength]) != crc32.ChecksumIEEE(b[checksumLength:]) {
		return id, fault.InvalidAccountIdentifier
	}
	copy(id[:], b)
	return id, nil
}

// String - hex form
func (id Identifier) String() string {
	return hex.EncodeToString(id[:])
}

// MarshalText - convert identifier to hex text
func (id Identifier) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - convert hex text into an identifier
func (id *Identifier) UnmarshalText(s []byte) error {
	decoded, err := ParseIdentifier(string(s))
	if nil != err {
		return err
	}
	*id = decoded
	return nil
}
