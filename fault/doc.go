// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches.
//
// Every error belongs to a class:
//
//   ConcurrencyError  a guard for the same key is already held
//   ConsistencyError  an external result disagrees with local state
//   ExistsError       item already present
//   ExternalError     a collaborator call failed, may be retried
//   FatalError        the pool must stop until an operator intervenes
//   InvalidError      caller input rejected, never retried
//   NotFoundError     item absent
//   ProcessError      internal failure
package fault
