// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package round

import (
	"time"

	"github.com/bitmark-inc/cyclespool/constants"
)

// Configuration - timing knobs in seconds, zero selects the default
type Configuration struct {
	SafeWindow        int `gluamapper:"safe_window" json:"safe_window"`
	MissedRoundBound  int `gluamapper:"missed_round_bound" json:"missed_round_bound"`
	CoolDown          int `gluamapper:"cool_down" json:"cool_down"`
	VerifyDelay       int `gluamapper:"verify_delay" json:"verify_delay"`
	ErrorRestartDelay int `gluamapper:"error_restart_delay" json:"error_restart_delay"`
	Attempts          int `gluamapper:"attempts" json:"attempts"`
	RetryDelay        int `gluamapper:"retry_delay" json:"retry_delay"`
	BurnCheckAttempts int `gluamapper:"burn_check_attempts" json:"burn_check_attempts"`
	BurnCheckDelay    int `gluamapper:"burn_check_delay" json:"burn_check_delay"`
}

// Timings - controller delays
type Timings struct {
	SafeWindow        time.Duration
	MissedRoundBound  time.Duration
	CoolDown          time.Duration
	VerifyDelay       time.Duration
	ErrorRestartDelay time.Duration
	Attempts          int
	RetryDelay        time.Duration
	BurnCheckAttempts int
	BurnCheckDelay    time.Duration
}

// DefaultTimings - timings matching a minter producing a block
// about every eight minutes
func DefaultTimings() Timings {
	return Timings{
		SafeWindow:        constants.SafeWindow,
		MissedRoundBound:  constants.MissedRoundBound,
		CoolDown:          constants.IdleCoolDown,
		VerifyDelay:       constants.Stage3Delay,
		ErrorRestartDelay: constants.ErrorRestartDelay,
		Attempts:          constants.StageAttempts,
		RetryDelay:        constants.StageRetryDelay,
		BurnCheckAttempts: constants.BurnCheckAttempts,
		BurnCheckDelay:    constants.BurnCheckDelay,
	}
}

// Timings - configured values over the defaults
func (c *Configuration) Timings() Timings {
	t := DefaultTimings()
	seconds(&t.SafeWindow, c.SafeWindow)
	seconds(&t.MissedRoundBound, c.MissedRoundBound)
	seconds(&t.CoolDown, c.CoolDown)
	seconds(&t.VerifyDelay, c.VerifyDelay)
	seconds(&t.ErrorRestartDelay, c.ErrorRestartDelay)
	seconds(&t.RetryDelay, c.RetryDelay)
	seconds(&t.BurnCheckDelay, c.BurnCheckDelay)
	if c.Attempts > 0 {
		t.Attempts = c.Attempts
	}
	if c.BurnCheckAttempts > 0 {
		t.BurnCheckAttempts = c.BurnCheckAttempts
	}
	return t
}

func seconds(d *time.Duration, n int) {
	if n > 0 {
		*d = time.Duration(n) * time.Second
	}
}
