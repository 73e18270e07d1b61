// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"encoding/json"
)

// event commands
const (
	ModeEvent    = "mode"
	RoundEvent   = "round"
	RewardsEvent = "rewards"
	PayoutEvent  = "payout"
)

// Announce - broadcast an event with a JSON body; items that cannot
// be encoded are sent without parameters
func Announce(command string, item interface{}) {
	data, err := json.Marshal(item)
	if nil != err {
		Bus.Broadcast.Send(command)
		return
	}
	Bus.Broadcast.Send(command, data)
}
