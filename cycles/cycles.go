// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package cycles - unsigned 128 bit cycle amounts
//
// amounts are held in a 256 bit integer so that products of two
// amounts never overflow before the division of a proportional
// share; every result is checked to still fit in 128 bits
package cycles

import (
	"bytes"
	"strconv"

	"github.com/holiman/uint256"

	"github.com/bitmark-inc/cyclespool/fault"
)

// number of bytes in the packed form
const Size = 16

const maximumBits = 128

// Cycles - an amount of cycles
type Cycles struct {
	value uint256.Int
}

// Zero - no cycles
var Zero Cycles

// New - cycles from an integer
func New(n uint64) Cycles {
	var c Cycles
	c.value.SetUint64(n)
	return c
}

func fromInt(v *uint256.Int) (Cycles, error) {
	if v.BitLen() > maximumBits {
		return Zero, fault.CyclesOverflow
	}
	return Cycles{value: *v}, nil
}

// Parse - decimal text to cycles
func Parse(s string) (Cycles, error) {
	v, err := uint256.FromDecimal(s)
	if nil != err {
		return Zero, fault.InvalidCycles
	}
	return fromInt(v)
}

// Add - sum, overflow is an error
func (c Cycles) Add(other Cycles) (Cycles, error) {
	var r uint256.Int
	r.Add(&c.value, &other.value)
	return fromInt(&r)
}

// Sub - difference, going below zero is an error
func (c Cycles) Sub(other Cycles) (Cycles, error) {
	if c.value.Lt(&other.value) {
		return Zero, fault.InsufficientCycles
	}
	var r uint256.Int
	r.Sub(&c.value, &other.value)
	return Cycles{value: r}, nil
}

// SaturatingSub - difference, stopping at zero
func (c Cycles) SaturatingSub(other Cycles) Cycles {
	r, err := c.Sub(other)
	if nil != err {
		return Zero
	}
	return r
}

// MulUint64 - product with a count
func (c Cycles) MulUint64(n uint64) (Cycles, error) {
	var r uint256.Int
	r.Mul(&c.value, uint256.NewInt(n))
	return fromInt(&r)
}

// DivUint64 - integer quotient, the remainder is dropped
func (c Cycles) DivUint64(n uint64) (Cycles, error) {
	if 0 == n {
		return Zero, fault.DivisionByZero
	}
	var r uint256.Int
	r.Div(&c.value, uint256.NewInt(n))
	return Cycles{value: r}, nil
}

// MulDiv - c × numerator / denominator without intermediate overflow
func (c Cycles) MulDiv(numerator Cycles, denominator Cycles) (Cycles, error) {
	if denominator.IsZero() {
		return Zero, fault.DivisionByZero
	}
	var r uint256.Int
	if _, overflow := r.MulDivOverflow(&c.value, &numerator.value, &denominator.value); overflow {
		return Zero, fault.CyclesOverflow
	}
	return fromInt(&r)
}

// IsMultipleOf - no remainder when divided by n
func (c Cycles) IsMultipleOf(n uint64) bool {
	if 0 == n {
		return false
	}
	var r uint256.Int
	r.Mod(&c.value, uint256.NewInt(n))
	return r.IsZero()
}

// Cmp - -1, 0 or +1 as c is less than, equal to or greater than other
func (c Cycles) Cmp(other Cycles) int {
	return c.value.Cmp(&other.value)
}

// LessThan - c < other
func (c Cycles) LessThan(other Cycles) bool {
	return c.value.Lt(&other.value)
}

// IsZero - no cycles
func (c Cycles) IsZero() bool {
	return c.value.IsZero()
}

// Uint64 - the amount when it fits, false otherwise
func (c Cycles) Uint64() (uint64, bool) {
	return c.value.Uint64(), c.value.IsUint64()
}

// Float64 - nearest float, for metrics
func (c Cycles) Float64() float64 {
	return c.value.Float64()
}

// String - decimal form
func (c Cycles) String() string {
	return c.value.Dec()
}

// Sum - total of a list
func Sum(items ...Cycles) (Cycles, error) {
	total := Zero
	for _, item := range items {
		var err error
		total, err = total.Add(item)
		if nil != err {
			return Zero, err
		}
	}
	return total, nil
}

// Pack - fixed size big endian form
func (c Cycles) Pack() []byte {
	buffer := c.value.Bytes32()
	return buffer[32-Size:]
}

// Unpack - read the fixed size big endian form
func Unpack(buffer []byte) (Cycles, error) {
	if Size != len(buffer) {
		return Zero, fault.CorruptRecord
	}
	var c Cycles
	c.value.SetBytes(buffer)
	return c, nil
}

// MarshalJSON - quoted decimal, amounts exceed the precision of JSON numbers
func (c Cycles) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(c.String())), nil
}

// UnmarshalJSON - accepts a quoted decimal or a bare integer
func (c *Cycles) UnmarshalJSON(s []byte) error {
	text := string(bytes.TrimSpace(s))
	if unquoted, err := strconv.Unquote(text); nil == err {
		text = unquoted
	}
	parsed, err := Parse(text)
	if nil != err {
		return err
	}
	*c = parsed
	return nil
}
