// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/cyclespool/fault"
)

// FetchCursor - cursor structure
type FetchCursor struct {
	region   *Region
	maxRange util.Range
}

// NewFetchCursor - initialise a cursor over the whole region
func (r *Region) NewFetchCursor() *FetchCursor {
	return &FetchCursor{
		region: r,
		maxRange: util.Range{
			Start: []byte{r.prefix}, // Start of key range, included in the range
			Limit: r.limit,          // Limit of key range, excluded from the range
		},
	}
}

// NewPrefixCursor - initialise a cursor over keys starting with prefix
func (r *Region) NewPrefixCursor(prefix []byte) *FetchCursor {
	return &FetchCursor{
		region:   r,
		maxRange: *util.BytesPrefix(r.prefixKey(prefix)),
	}
}

// Map - run a function on all elements in the range in key order
//
// iteration stops at the first error, which is returned
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	if nil == cursor {
		return fault.InvalidCursor
	}

	store := cursor.region.store
	store.RLock()
	defer store.RUnlock()

	if nil == store.db {
		return fault.DatabaseIsNotSet
	}

	iter := store.db.NewIterator(&cursor.maxRange, nil)

	var err error
iterating:
	for iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := iter.Key()
		value := iter.Value()

		dataKey := make([]byte, len(key)-1) // strip the prefix
		copy(dataKey, key[1:])              // ...

		dataValue := make([]byte, len(value))
		copy(dataValue, value)

		err = f(dataKey, dataValue)
		if nil != err {
			break iterating
		}
	}
	iter.Release()
	if nil == err {
		err = iter.Error()
	}
	return err
}

// Fetch - return up to count elements from the cursor position and
// advance past them
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if nil == cursor {
		return nil, fault.InvalidCursor
	}
	if count <= 0 {
		return nil, fault.InvalidCount
	}

	results := make([]Element, 0, count)
	var last []byte
	err := cursor.Map(func(key []byte, value []byte) error {
		if len(results) >= count {
			return errStop
		}
		results = append(results, Element{Key: key, Value: value})
		last = key
		return nil
	})
	if errStop == err {
		err = nil
	}

	// next start is just after the last key returned
	if nil != last {
		next := cursor.region.prefixKey(last)
		cursor.maxRange.Start = append(next, 0x00)
	}
	return results, err
}

type stopError struct{}

func (stopError) Error() string { return "stop" }

var errStop = stopError{}
