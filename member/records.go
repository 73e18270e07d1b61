// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package member

import (
	"encoding/binary"

	"github.com/bitmark-inc/cyclespool/account"
	"github.com/bitmark-inc/cyclespool/cycles"
	"github.com/bitmark-inc/cyclespool/fault"
)

// Cycles - cycle balances of one member
type Cycles struct {
	Block     cycles.Cycles `json:"block"`
	Pending   cycles.Cycles `json:"pending"`
	Remaining cycles.Cycles `json:"remaining"`
}

// Reward - one realized share of the mined tokens
//
// BlockIndex is nil until the payout transfer is confirmed
type Reward struct {
	Timestamp   uint64        `json:"timestamp"`
	CyclesBurnt cycles.Cycles `json:"cyclesBurnt"`
	Reward      cycles.Cycles `json:"reward"`
	BlockIndex  *uint64       `json:"blockIndex"`
}

// Entry - a reward and its position in the member's history
type Entry struct {
	Sequence uint64 `json:"sequence"`
	Reward
}

// IsPaid - payout confirmed
func (r Reward) IsPaid() bool {
	return nil != r.BlockIndex
}

// member cycles record:
//   block     16 bytes
//   pending   16 bytes
//   remaining 16 bytes
const cyclesRecordSize = 3 * cycles.Size

func (c Cycles) pack() []byte {
	buffer := make([]byte, 0, cyclesRecordSize)
	buffer = append(buffer, c.Block.Pack()...)
	buffer = append(buffer, c.Pending.Pack()...)
	buffer = append(buffer, c.Remaining.Pack()...)
	return buffer
}

func unpackCycles(buffer []byte) (Cycles, error) {
	if cyclesRecordSize != len(buffer) {
		return Cycles{}, fault.CorruptRecord
	}
	var c Cycles
	var err error
	if c.Block, err = cycles.Unpack(buffer[0:cycles.Size]); nil != err {
		return Cycles{}, err
	}
	if c.Pending, err = cycles.Unpack(buffer[cycles.Size : 2*cycles.Size]); nil != err {
		return Cycles{}, err
	}
	if c.Remaining, err = cycles.Unpack(buffer[2*cycles.Size:]); nil != err {
		return Cycles{}, err
	}
	return c, nil
}

// reward record:
//   timestamp      8 bytes
//   cycles burnt  16 bytes
//   reward        16 bytes
//   paid flag      1 byte
//   block index    8 bytes
const rewardRecordSize = 8 + 2*cycles.Size + 1 + 8

func (r Reward) pack() []byte {
	buffer := make([]byte, 8, rewardRecordSize)
	binary.BigEndian.PutUint64(buffer, r.Timestamp)
	buffer = append(buffer, r.CyclesBurnt.Pack()...)
	buffer = append(buffer, r.Reward.Pack()...)

	index := make([]byte, 9)
	if nil != r.BlockIndex {
		index[0] = 1
		binary.BigEndian.PutUint64(index[1:], *r.BlockIndex)
	}
	return append(buffer, index...)
}

func unpackReward(buffer []byte) (Reward, error) {
	if rewardRecordSize != len(buffer) {
		return Reward{}, fault.CorruptRecord
	}
	var r Reward
	var err error
	r.Timestamp = binary.BigEndian.Uint64(buffer[0:8])
	n := 8
	if r.CyclesBurnt, err = cycles.Unpack(buffer[n : n+cycles.Size]); nil != err {
		return Reward{}, err
	}
	n += cycles.Size
	if r.Reward, err = cycles.Unpack(buffer[n : n+cycles.Size]); nil != err {
		return Reward{}, err
	}
	n += cycles.Size
	switch buffer[n] {
	case 0:
	case 1:
		index := binary.BigEndian.Uint64(buffer[n+1:])
		r.BlockIndex = &index
	default:
		return Reward{}, fault.CorruptRecord
	}
	return r, nil
}

// reward keys: length-prefixed member so one member's prefix never
// matches another member, then the big endian sequence
func rewardPrefix(m account.Principal) []byte {
	raw := m.Bytes()
	prefix := make([]byte, 1, 1+len(raw))
	prefix[0] = byte(len(raw))
	return append(prefix, raw...)
}

func rewardKey(m account.Principal, sequence uint64) []byte {
	key := rewardPrefix(m)
	n := make([]byte, 8)
	binary.BigEndian.PutUint64(n, sequence)
	return append(key, n...)
}

func sequenceOf(key []byte) uint64 {
	return binary.BigEndian.Uint64(key[len(key)-8:])
}

func depositKey(blockIndex uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, blockIndex)
	return key
}
