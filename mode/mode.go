// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mode - running state of the round controller
package mode

import (
	"github.com/bitmark-inc/cyclespool/fault"
)

// Mode - type to hold the running state
type Mode int

// all possible modes
//
// the zero value is Stopped so an empty store starts halted
const (
	Stopped Mode = iota
	Stopping
	Running
	maximum
)

// Valid - check a decoded mode
func (m Mode) Valid() bool {
	return m >= Stopped && m < maximum
}

// Start - operator start request
//
//   Stopped  → Running, the caller must kick the loop
//   Stopping → Running, the loop is still alive
func Start(m Mode) (Mode, error) {
	switch m {
	case Stopped, Stopping:
		return Running, nil
	case Running:
		return m, fault.PoolAlreadyRunning
	default:
		return m, fault.InvalidRunningState
	}
}

// Stop - operator stop request, the loop finishes its current round
func Stop(m Mode) (Mode, error) {
	switch m {
	case Running:
		return Stopping, nil
	case Stopping, Stopped:
		return m, fault.PoolNotRunning
	default:
		return m, fault.InvalidRunningState
	}
}

// String - current mode represented as a string
func (m Mode) String() string {
	switch m {
	case Stopped:
		return "Stopped"
	case Stopping:
		return "Stopping"
	case Running:
		return "Running"
	default:
		return "*Unknown*"
	}
}

// MarshalText - mode as text
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}
