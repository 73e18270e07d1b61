// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - set up and handle the incoming JSON RPC requests
// from pool members and controllers
//
// standard golang RPC clients with the jsonrpc codec can be used to
// access these services
//
// callers identify themselves in the request arguments; admin and
// member checks rely on an authenticating front end in front of the
// listener
package rpc

import (
	"sync"
	"sync/atomic"

	"github.com/bitmark-inc/cyclespool/fault"
	"github.com/bitmark-inc/cyclespool/rpc/certificate"
	"github.com/bitmark-inc/cyclespool/rpc/listeners"
	"github.com/bitmark-inc/cyclespool/rpc/server"
	"github.com/bitmark-inc/logger"
)

const (
	tlsName = "client_rpc"
)

// globals
type rpcData struct {
	sync.RWMutex

	log      *logger.L
	listener listeners.Listener

	// active connections
	count atomic.Uint64

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// Initialise - start the RPC listeners
func Initialise(configuration *listeners.RPCConfiguration, pool server.Pool, chain string, version string) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	if 0 == len(configuration.Listen) {
		log.Infof("disable: %s", tlsName)
		globalData.initialised = true
		return nil
	}

	tlsConfig, fingerprint, err := certificate.Get(log, tlsName, configuration.Certificate, configuration.PrivateKey)
	if nil != err {
		return err
	}

	l, err := listeners.NewRPC(
		configuration,
		log,
		&globalData.count,
		server.Create(log, pool, chain, version, &globalData.count),
		tlsConfig,
		fingerprint,
	)
	if nil != err {
		return err
	}
	if err := l.Serve(); nil != err {
		l.Stop()
		return err
	}
	globalData.listener = l

	// all data initialised
	globalData.initialised = true
	return nil
}

// Finalise - close the listeners
func Finalise() error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	if nil != globalData.listener {
		globalData.listener.Stop()
		globalData.listener = nil
	}

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// Connections - number of open client connections
func Connections() uint64 {
	return globalData.count.Load()
}
