// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"encoding/base32"
	"encoding/binary"
	"hash/crc32"
	"strings"

	"github.com/bitmark-inc/cyclespool/fault"
)

// miscellaneous constants
const (
	checksumLength     = 4
	maxPrincipalLength = 29
	groupLength        = 5
	anonymousTag       = 0x04
)

var principalEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Principal - identity of a caller, a member or a canister
//
// the raw bytes are held in a string so the value is comparable
// and can be used as a map key; the zero value is the empty
// principal
type Principal struct {
	raw string
}

// Anonymous - the identity of an unauthenticated caller
var Anonymous = Principal{raw: string([]byte{anonymousTag})}

// PrincipalFromBytes - wrap raw principal bytes
func PrincipalFromBytes(b []byte) Principal {
	return Principal{raw: string(b)}
}

// ParsePrincipal - decode the textual form: lower case base32 of
// checksum and bytes, in groups of five separated by dashes
func ParsePrincipal(text string) (Principal, error) {
	compact := strings.ToUpper(strings.ReplaceAll(text, "-", ""))
	decoded, err := principalEncoding.DecodeString(compact)
	if nil != err {
		return Principal{}, fault.InvalidPrincipal
	}
	if len(decoded) < checksumLength || len(decoded) > checksumLength+maxPrincipalLength {
		return Principal{}, fault.InvalidPrincipal
	}

	raw := decoded[checksumLength:]
	if binary.BigEndian.Uint32(decoded[:checksumLength]) != crc32.ChecksumIEEE(raw) {
		return Principal{}, fault.InvalidPrincipalChecksum
	}

	p := PrincipalFromBytes(raw)

	// only the canonical grouping is accepted
	if p.String() != text {
		return Principal{}, fault.InvalidPrincipal
	}
	return p, nil
}

// Bytes - copy of the raw bytes
func (p Principal) Bytes() []byte {
	return []byte(p.raw)
}

// Len - number of raw bytes
func (p Principal) Len() int {
	return len(p.raw)
}

// IsAnonymous - unauthenticated caller
func (p Principal) IsAnonymous() bool {
	return p == Anonymous
}

// IsZero - no principal set
func (p Principal) IsZero() bool {
	return 0 == len(p.raw)
}

// String - textual form
func (p Principal) String() string {
	raw := []byte(p.raw)
	buffer := make([]byte, checksumLength, checksumLength+len(raw))
	binary.BigEndian.PutUint32(buffer, crc32.ChecksumIEEE(raw))
	buffer = append(buffer, raw...)

	encoded := strings.ToLower(principalEncoding.EncodeToString(buffer))

	var s strings.Builder
	for i := 0; i < len(encoded); i += groupLength {
		if i > 0 {
			s.WriteByte('-')
		}
		end := i + groupLength
		if end > len(encoded) {
			end = len(encoded)
		}
		s.WriteString(encoded[i:end])
	}
	return s.String()
}

// MarshalText - convert principal to text
func (p Principal) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText - convert text into a principal
func (p *Principal) UnmarshalText(s []byte) error {
	decoded, err := ParsePrincipal(string(s))
	if nil != err {
		return err
	}
	*p = decoded
	return nil
}
