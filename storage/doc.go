// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - durable key/value regions
//
// A single LevelDB database is split into regions, each a range
// of keys starting with a one byte region identifier.  Identifiers
// are declared in struct tags and must never be reused for a
// different purpose once data has been written.
//
// Updates that must land together are staged in a Transaction
// and written as one LevelDB batch.
package storage
