// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/cyclespool/fault"
)

// Region - one key range of the database
type Region struct {
	name   string
	prefix byte
	limit  []byte
	store  *Store
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// Name - field name of the region
func (r *Region) Name() string {
	return r.name
}

// prepend the prefix onto the key
func (r *Region) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = r.prefix
	return append(prefixedKey, key...)
}

// Get - read a value for a given key, nil if absent
func (r *Region) Get(key []byte) ([]byte, error) {
	r.store.RLock()
	defer r.store.RUnlock()

	if nil == r.store.db {
		return nil, fault.DatabaseIsNotSet
	}
	value, err := r.store.db.Get(r.prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	return value, err
}

// Has - check if a key exists
func (r *Region) Has(key []byte) (bool, error) {
	r.store.RLock()
	defer r.store.RUnlock()

	if nil == r.store.db {
		return false, fault.DatabaseIsNotSet
	}
	return r.store.db.Has(r.prefixKey(key), nil)
}

// Put - store a single key/value pair outside of any transaction
func (r *Region) Put(key []byte, value []byte) error {
	r.store.RLock()
	defer r.store.RUnlock()

	if nil == r.store.db {
		return fault.DatabaseIsNotSet
	}
	return r.store.db.Put(r.prefixKey(key), value, nil)
}

// Delete - remove a single key outside of any transaction
func (r *Region) Delete(key []byte) error {
	r.store.RLock()
	defer r.store.RUnlock()

	if nil == r.store.db {
		return fault.DatabaseIsNotSet
	}
	return r.store.db.Delete(r.prefixKey(key), nil)
}
