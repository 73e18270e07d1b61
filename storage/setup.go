// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"strconv"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/bitmark-inc/cyclespool/fault"
	"github.com/bitmark-inc/logger"
)

// Regions - all regions of the pool database
//
// note all must be exported (i.e. initial capital) or opening will fail
type Regions struct {
	PoolState     *Region `region:"1"` // singleton values
	MemberCycles  *Region `region:"2"` // member → block, pending, remaining
	MemberRewards *Region `region:"3"` // member ++ sequence → reward
	JoinDeposits  *Region `region:"4"` // ledger block index → member
}

// region 0 is reserved for the version key
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentDBVersion = 0x100

// access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Store - an open pool database
type Store struct {
	Regions

	sync.RWMutex
	log *logger.L
	db  *leveldb.DB
}

// Open - open or create the database
func Open(name string, readOnly bool) (*Store, error) {
	log := logger.New("storage")

	db, version, err := getDB(name, readOnly)
	if nil != err {
		log.Errorf("open: %q  error: %s", name, err)
		return nil, err
	}

	ok := false
	defer func() {
		if !ok {
			db.Close()
		}
	}()

	// ensure no database downgrade
	if version > currentDBVersion {
		log.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		return nil, fault.DatabaseVersionTooNew
	}

	if 0 == version && !readOnly {
		// database was empty so tag as current version
		err = putVersion(db, currentDBVersion)
		if nil != err {
			return nil, err
		}
	}

	store := &Store{
		log: log,
		db:  db,
	}

	err = store.setRegions()
	if nil != err {
		return nil, err
	}

	log.Infof("opened: %q  version: 0x%x", name, currentDBVersion)

	ok = true // prevent db close
	return store, nil
}

// scan the Regions struct and assign a handle to each field
func (s *Store) setRegions() error {

	regionType := reflect.TypeOf(s.Regions)
	regionValue := reflect.ValueOf(&s.Regions).Elem()

	seen := make(map[byte]string)

	for i := 0; i < regionType.NumField(); i += 1 {
		fieldInfo := regionType.Field(i)

		tag := fieldInfo.Tag.Get("region")
		id, err := strconv.ParseUint(tag, 10, 8)
		if nil != err || 0 == id {
			return fmt.Errorf("region: %s has invalid identifier: %q", fieldInfo.Name, tag)
		}
		prefix := byte(id)
		if previous, ok := seen[prefix]; ok {
			return fmt.Errorf("region: %s reuses identifier of: %s", fieldInfo.Name, previous)
		}
		seen[prefix] = fieldInfo.Name

		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		r := &Region{
			name:   fieldInfo.Name,
			prefix: prefix,
			limit:  limit,
			store:  s,
		}
		regionValue.Field(i).Set(reflect.ValueOf(r))
	}
	return nil
}

// Close - close the database
func (s *Store) Close() {
	s.Lock()
	defer s.Unlock()

	if nil != s.db {
		s.db.Close()
		s.db = nil
		s.log.Info("closed")
		s.log.Flush()
	}
}

// return:
//   database handle
//   version number
func getDB(name string, readOnly bool) (*leveldb.DB, int, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, 0, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return db, 0, nil
	} else if nil != err {
		db.Close()
		return nil, 0, err
	}

	if 4 != len(versionValue) {
		db.Close()
		return nil, 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	version := int(binary.BigEndian.Uint32(versionValue))
	return db, version, nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
