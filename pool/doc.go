// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pool - the operations offered by a cycles pool
//
// member operations act on behalf of the calling principal and need
// the pool to have a miner; admin operations need the caller to be
// one of the configured controllers
package pool
