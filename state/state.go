// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package state - durable singleton values of the pool
package state

import (
	"encoding/binary"
	"sync"

	"github.com/bitmark-inc/cyclespool/account"
	"github.com/bitmark-inc/cyclespool/fault"
	"github.com/bitmark-inc/cyclespool/mode"
	"github.com/bitmark-inc/cyclespool/storage"
	"github.com/bitmark-inc/logger"
)

// keys within the pool state region
var (
	minerKey           = []byte("miner")
	modeKey            = []byte("mode")
	rewardTimestampKey = []byte("reward-timestamp")
	blockCountKey      = []byte("block-count")
	spawnBlockKey      = []byte("spawn-block")
)

// Store - pool singleton state
type Store struct {
	sync.Mutex
	log    *logger.L
	region *storage.Region
}

// New - state held in the pool state region of an open database
func New(log *logger.L, db *storage.Store) *Store {
	return &Store{
		log:    log,
		region: db.PoolState,
	}
}

// Miner - the shared miner, false if not spawned yet
func (s *Store) Miner() (account.Principal, bool, error) {
	buffer, err := s.region.Get(minerKey)
	if nil != err {
		return account.Principal{}, false, err
	}
	if nil == buffer {
		return account.Principal{}, false, nil
	}
	return account.PrincipalFromBytes(buffer), true, nil
}

// SetMinerOnce - record the miner; a second call is a programming error
func (s *Store) SetMinerOnce(miner account.Principal) error {
	s.Lock()
	defer s.Unlock()

	found, err := s.region.Has(minerKey)
	if nil != err {
		return err
	}
	if found {
		fault.Panicf("state: miner already set, refusing: %s", miner)
	}
	s.log.Infof("miner: %s", miner)
	return s.region.Put(minerKey, miner.Bytes())
}

// Mode - running state, Stopped if never set
func (s *Store) Mode() (mode.Mode, error) {
	n, _, err := s.getN(modeKey)
	if nil != err {
		return mode.Stopped, err
	}
	m := mode.Mode(n)
	if !m.Valid() {
		fault.Panicf("state: corrupt running state: %d", n)
	}
	return m, nil
}

// SetMode - unconditional running state change
func (s *Store) SetMode(m mode.Mode) error {
	if !m.Valid() {
		return fault.InvalidRunningState
	}
	s.Lock()
	defer s.Unlock()

	s.log.Infof("mode: %s", m)
	return s.putN(modeKey, uint64(m))
}

// UpdateMode - atomic read, transition and write of the running state
//
// returns the state before and after the transition
func (s *Store) UpdateMode(transition func(mode.Mode) (mode.Mode, error)) (mode.Mode, mode.Mode, error) {
	s.Lock()
	defer s.Unlock()

	n, _, err := s.getN(modeKey)
	if nil != err {
		return mode.Stopped, mode.Stopped, err
	}
	old := mode.Mode(n)

	next, err := transition(old)
	if nil != err {
		return old, old, err
	}
	if next == old {
		return old, old, nil
	}

	s.log.Infof("mode: %s → %s", old, next)
	err = s.putN(modeKey, uint64(next))
	if nil != err {
		return old, old, err
	}
	return old, next, nil
}

// LastRewardTimestamp - newest block timestamp already turned into rewards
func (s *Store) LastRewardTimestamp() (uint64, error) {
	n, _, err := s.getN(rewardTimestampKey)
	return n, err
}

// StageRewardTimestamp - write the checkpoint as part of a larger transaction
func (s *Store) StageRewardTimestamp(trx storage.Transaction, timestamp uint64) {
	trx.Put(s.region, rewardTimestampKey, packN(timestamp))
}

// LastBlockCount - minter block count seen by the previous round
func (s *Store) LastBlockCount() (uint64, error) {
	n, _, err := s.getN(blockCountKey)
	return n, err
}

// SetLastBlockCount - remember the minter block count
func (s *Store) SetLastBlockCount(count uint64) error {
	s.Lock()
	defer s.Unlock()
	return s.putN(blockCountKey, count)
}

// SpawnBlock - ledger block paying for the miner spawn, false if
// the pool has not sent one
func (s *Store) SpawnBlock() (uint64, bool, error) {
	return s.getN(spawnBlockKey)
}

// SetSpawnBlock - remember the spawn payment before it is used
func (s *Store) SetSpawnBlock(blockIndex uint64) error {
	s.Lock()
	defer s.Unlock()
	s.log.Infof("spawn block: %d", blockIndex)
	return s.putN(spawnBlockKey, blockIndex)
}

// read a record and decode as big endian uint64
func (s *Store) getN(key []byte) (uint64, bool, error) {
	buffer, err := s.region.Get(key)
	if nil != err {
		return 0, false, err
	}
	if nil == buffer {
		return 0, false, nil
	}
	if 8 != len(buffer) {
		return 0, false, fault.CorruptRecord
	}
	return binary.BigEndian.Uint64(buffer), true, nil
}

func (s *Store) putN(key []byte, n uint64) error {
	return s.region.Put(key, packN(n))
}

func packN(n uint64) []byte {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, n)
	return buffer
}
