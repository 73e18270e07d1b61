// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package remote_test

import (
	"context"
	"encoding/json"
	"testing"

	zmq "github.com/pebbe/zmq4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/cyclespool/account"
	"github.com/bitmark-inc/cyclespool/bridge"
	"github.com/bitmark-inc/cyclespool/bridge/remote"
	"github.com/bitmark-inc/cyclespool/cycles"
	"github.com/bitmark-inc/cyclespool/fault"
	"github.com/bitmark-inc/cyclespool/fixtures"
	"github.com/bitmark-inc/logger"
)

type request struct {
	service string
	method  string
	args    []byte
}

// serve answers count requests with the given replies in order
func serve(t *testing.T, address string, replies [][]string) (<-chan request, func()) {
	socket, err := zmq.NewSocket(zmq.REP)
	require.Nil(t, err, "server socket")
	require.Nil(t, socket.Bind(address), "bind")

	seen := make(chan request, len(replies))
	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, reply := range replies {
			data, err := socket.RecvMessageBytes(0)
			if nil != err {
				return
			}
			seen <- request{service: string(data[0]), method: string(data[1]), args: data[2]}
			if _, err := socket.SendMessage(reply[0], reply[1]); nil != err {
				return
			}
		}
	}()
	return seen, func() {
		<-done
		socket.Close()
	}
}

func TestCallRoundTrip(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	const address = "inproc://bridge-round-trip"
	self := account.PrincipalFromBytes([]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x64, 0x01, 0x01})
	miner := account.PrincipalFromBytes([]byte{0x00, 0x00, 0x00, 0x00, 0x02, 0x30, 0x00, 0x01, 0x01, 0x01})

	stats, _ := json.Marshal(bridge.MinerStats{
		CycleBalance:          cycles.New(2_000_000_000_000),
		LastRoundCyclesBurned: cycles.New(30_000_000_000),
	})
	seen, stop := serve(t, address, [][]string{
		{"ok", string(stats)},
		{"ok", "null"},
		{"error", "canister is frozen"},
	})

	client, err := remote.New(logger.New(fixtures.LogCategory), &remote.Configuration{Address: address})
	require.Nil(t, err, "connect")
	defer client.Close()

	bridges := client.Collaborators(self)
	ctx := context.Background()

	result, err := bridges.Miner.Statistics(ctx, miner)
	assert.Nil(t, err, "statistics")
	assert.Equal(t, cycles.New(30_000_000_000), result.LastRoundCyclesBurned, "burned")
	r := <-seen
	assert.Equal(t, remote.MinerService, r.service, "service")
	assert.Equal(t, "get_statistics", r.method, "method")
	assert.JSONEq(t, `{"miner":"`+miner.String()+`"}`, string(r.args), "args")

	err = bridges.Miner.UpdateSettings(ctx, miner, cycles.New(15_000_000_000))
	assert.Nil(t, err, "settings")
	r = <-seen
	assert.JSONEq(t, `{"miner":"`+miner.String()+`","maxCyclesPerRound":"15000000000"}`, string(r.args), "settings args")

	err = bridges.Miner.DepositCycles(ctx, miner, cycles.New(1))
	assert.True(t, fault.IsErrExternal(err), "gateway error is external")
	assert.Contains(t, err.Error(), "canister is frozen", "cause kept")

	assert.Equal(t, self, bridges.Host.Self(), "self")
	stop()
}

func TestCallCancelled(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	client, err := remote.New(logger.New(fixtures.LogCategory), &remote.Configuration{Address: "inproc://bridge-unused"})
	require.Nil(t, err, "connect")
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.Collaborators(account.Anonymous).Minter.Statistics(ctx)
	assert.Equal(t, context.Canceled, err, "cancelled before send")
}

func TestMissingAddress(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	_, err := remote.New(logger.New(fixtures.LogCategory), &remote.Configuration{})
	assert.Equal(t, fault.MissingParameters, err, "no address")
}
