// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package zmqutil - ZeroMQ sockets for the bridge client and the
// event publisher, optionally secured with curve keys
package zmqutil

import (
	"strings"
	"time"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/logger"
)

const (
	heartbeatInterval = 15 * time.Second
	heartbeatTimeout  = 60 * time.Second
	heartbeatTTL      = 120 * time.Second
)

// NewBind - create a server socket bound to every listen address,
// listen entries are zmq endpoints such as "tcp://127.0.0.1:2150"
func NewBind(log *logger.L, socketType zmq.Type, zapDomain string, privateKey []byte, publicKey []byte, listen []string) (*zmq.Socket, error) {

	v6 := false
	for _, address := range listen {
		if strings.Contains(address, "[") {
			v6 = true
		}
	}

	socket, err := NewServerSocket(socketType, zapDomain, privateKey, publicKey, v6)
	if nil != err {
		return nil, err
	}

	for i, address := range listen {
		err = socket.Bind(address)
		if nil != err {
			log.Errorf("cannot bind[%d]: %q  error: %s", i, address, err)
			socket.Close()
			return nil, err
		}
		log.Infof("bind[%d]: %q  IPv6: %t", i, address, v6)
	}
	return socket, nil
}

// NewServerSocket - a socket for the serving side; curve is enabled
// only when a private key is given
func NewServerSocket(socketType zmq.Type, zapDomain string, privateKey []byte, publicKey []byte, v6 bool) (*zmq.Socket, error) {

	socket, err := zmq.NewSocket(socketType)
	if nil != err {
		return nil, err
	}

	if 0 != len(privateKey) {
		if err = StartAuthentication(); nil != err {
			socket.Close()
			return nil, err
		}
		zmq.AuthCurveAdd(zapDomain, zmq.CURVE_ALLOW_ANY)

		socket.SetCurveServer(1)
		socket.SetCurveSecretkey(string(privateKey))
		socket.SetZapDomain(zapDomain)
		socket.SetIdentity(string(publicKey))
	}

	socket.SetIpv6(v6)
	socket.SetLinger(0)

	socket.SetHeartbeatIvl(heartbeatInterval)
	socket.SetHeartbeatTimeout(heartbeatTimeout)
	socket.SetHeartbeatTtl(heartbeatTTL)

	return socket, nil
}
