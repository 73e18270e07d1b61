// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package publish - forward pool events to zmq subscribers
package publish

import (
	"sync"

	"github.com/bitmark-inc/cyclespool/background"
	"github.com/bitmark-inc/cyclespool/fault"
	"github.com/bitmark-inc/cyclespool/zmqutil"
	"github.com/bitmark-inc/logger"
)

// Configuration - publishing endpoints and optional curve keys
type Configuration struct {
	Broadcast  []string `gluamapper:"broadcast" json:"broadcast"`
	PrivateKey string   `gluamapper:"private_key" json:"private_key"`
	PublicKey  string   `gluamapper:"public_key" json:"public_key"`
}

type publishData struct {
	sync.RWMutex

	log *logger.L

	brdc broadcaster

	background *background.T

	initialised bool
}

var globalData publishData

// Initialise - bind the publishing socket and start forwarding; no
// broadcast addresses leaves publishing disabled
func Initialise(configuration *Configuration, chain string) error {

	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("publish")
	globalData.log.Info("starting…")

	if 0 == len(configuration.Broadcast) {
		globalData.log.Info("no broadcast addresses: disabled")
		globalData.initialised = true
		return nil
	}

	privateKey, err := zmqutil.ReadPrivateKeyFile(configuration.PrivateKey)
	if nil != err {
		globalData.log.Errorf("read private key file: %q  error: %s", configuration.PrivateKey, err)
		return err
	}
	publicKey, err := zmqutil.ReadPublicKeyFile(configuration.PublicKey)
	if nil != err {
		globalData.log.Errorf("read public key file: %q  error: %s", configuration.PublicKey, err)
		return err
	}

	if err := globalData.brdc.initialise(globalData.log, chain, privateKey, publicKey, configuration.Broadcast); nil != err {
		return err
	}

	globalData.initialised = true

	globalData.log.Info("start background…")
	globalData.background = background.Start(background.Processes{&globalData.brdc}, nil)

	return nil
}

// Finalise - stop forwarding and close the socket
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.background.Stop()
	globalData.background = nil
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()
	return nil
}
