// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish_test

import (
	"testing"
	"time"

	zmq "github.com/pebbe/zmq4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/cyclespool/fault"
	"github.com/bitmark-inc/cyclespool/fixtures"
	"github.com/bitmark-inc/cyclespool/messagebus"
	"github.com/bitmark-inc/cyclespool/publish"
)

func TestPublishEvents(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	const address = "inproc://publish-events"
	err := publish.Initialise(&publish.Configuration{Broadcast: []string{address}}, "local")
	require.Nil(t, err, "initialise")
	defer publish.Finalise()

	assert.Equal(t, fault.AlreadyInitialised, publish.Initialise(&publish.Configuration{}, "local"), "second initialise")

	sub, err := zmq.NewSocket(zmq.SUB)
	require.Nil(t, err, "sub socket")
	defer sub.Close()
	require.Nil(t, sub.SetSubscribe(""), "subscribe")
	require.Nil(t, sub.SetRcvtimeo(20*time.Millisecond), "timeout")
	require.Nil(t, sub.Connect(address), "connect")

	// subscriptions propagate asynchronously so repeat until seen
	var frames [][]byte
	for i := 0; i < 100 && 0 == len(frames); i += 1 {
		messagebus.Bus.Broadcast.Send("round", []byte(`{"members":3}`))
		frames, _ = sub.RecvMessageBytes(0)
	}

	require.Equal(t, 3, len(frames), "frames")
	assert.Equal(t, "local", string(frames[0]), "chain")
	assert.Equal(t, "round", string(frames[1]), "command")
	assert.Equal(t, `{"members":3}`, string(frames[2]), "parameters")
}

func TestPublishDisabled(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	assert.Nil(t, publish.Initialise(&publish.Configuration{}, "local"), "initialise")
	assert.Nil(t, publish.Finalise(), "finalise")
	assert.Equal(t, fault.NotInitialised, publish.Finalise(), "finalise twice")
}
