// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background

import (
	"context"
	"time"

	"github.com/ssgreg/repeat"

	"github.com/bitmark-inc/cyclespool/fault"
	"github.com/bitmark-inc/logger"
)

const minimumRetryDelay = time.Millisecond

// Retryable - external, consistency and not found errors may clear
// by themselves; everything else is final
func Retryable(err error) bool {
	return fault.IsErrExternal(err) || fault.IsErrConsistency(err) || fault.IsErrNotFound(err)
}

// Retry - call fn until it succeeds, fails with a final error or
// attempts are used up; returns the last error seen, or the context
// error if ctx ends first
func Retry(ctx context.Context, log *logger.L, name string, attempts int, delay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	if delay < minimumRetryDelay {
		delay = minimumRetryDelay
	}

	tries := 0
	last := error(nil)

	_ = repeat.Repeat(
		repeat.Fn(func() error {
			if err := ctx.Err(); nil != err {
				last = err
				return err
			}
			tries += 1
			last = fn()
			if nil == last {
				return nil
			}
			if Retryable(last) {
				return repeat.HintTemporary(last)
			}
			return last
		}),
		repeat.StopOnSuccess(),
		repeat.LimitMaxTries(attempts),
		repeat.FnOnError(func(err error) error {
			log.Warnf("%s: attempt: %d/%d  error: %s", name, tries, attempts, last)
			return err
		}),
		repeat.WithDelay(
			repeat.SetContext(ctx),
			repeat.SetContextHintStop(),
			(&repeat.FullJitterBackoffBuilder{
				BaseDelay: delay,
				MaxDelay:  delay,
			}).Set(),
		),
	)

	// cancelled while waiting between attempts
	if err := ctx.Err(); nil != err && nil != last {
		return err
	}
	return last
}
