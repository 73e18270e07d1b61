// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/cyclespool/fault"
)

// Transaction - updates across regions written as one batch
type Transaction interface {
	Put(*Region, []byte, []byte)
	Delete(*Region, []byte)
	Get(*Region, []byte) ([]byte, error)
	Has(*Region, []byte) (bool, error)
	Commit() error
	Abort()
}

type batchTransaction struct {
	sync.Mutex
	store  *Store
	batch  *leveldb.Batch
	cache  Cache
	closed bool
}

// Begin - start a transaction
//
// nothing is visible to other readers until Commit
func (s *Store) Begin() Transaction {
	return &batchTransaction{
		store: s,
		batch: new(leveldb.Batch),
		cache: newCache(),
	}
}

func (t *batchTransaction) Put(r *Region, key []byte, value []byte) {
	t.Lock()
	defer t.Unlock()

	k := r.prefixKey(key)
	t.cache.Set(dbPut, string(k), value)
	t.batch.Put(k, value)
}

func (t *batchTransaction) Delete(r *Region, key []byte) {
	t.Lock()
	defer t.Unlock()

	k := r.prefixKey(key)
	t.cache.Set(dbDelete, string(k), nil)
	t.batch.Delete(k)
}

// Get - staged value if any, otherwise the stored value, nil if absent
func (t *batchTransaction) Get(r *Region, key []byte) ([]byte, error) {
	t.Lock()
	value, deleted, found := t.cache.Get(string(r.prefixKey(key)))
	t.Unlock()

	if deleted {
		return nil, nil
	}
	if found {
		return value, nil
	}
	return r.Get(key)
}

func (t *batchTransaction) Has(r *Region, key []byte) (bool, error) {
	value, err := t.Get(r, key)
	return nil != value, err
}

func (t *batchTransaction) Commit() error {
	t.Lock()
	defer t.Unlock()

	if t.closed {
		return fault.TransactionAlreadyClosed
	}
	t.closed = true

	t.store.RLock()
	defer t.store.RUnlock()

	if nil == t.store.db {
		return fault.DatabaseIsNotSet
	}
	err := t.store.db.Write(t.batch, nil)
	t.cache.Clear()
	return err
}

func (t *batchTransaction) Abort() {
	t.Lock()
	defer t.Unlock()

	t.closed = true
	t.batch.Reset()
	t.cache.Clear()
}
