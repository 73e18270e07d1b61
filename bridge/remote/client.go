// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package remote - collaborators reached through a bridge gateway
//
// every call is a zmq request of three frames: service, method and
// JSON arguments; the gateway answers "ok" with a JSON result or
// "error" with a message
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/cyclespool/fault"
	"github.com/bitmark-inc/cyclespool/zmqutil"
	"github.com/bitmark-inc/logger"
)

const (
	statusOK    = "ok"
	statusError = "error"

	defaultTimeout = 30 * time.Second
)

// Configuration - bridge gateway connection
type Configuration struct {
	Address         string `gluamapper:"address" json:"address"`
	ServerPublicKey string `gluamapper:"server_public_key" json:"server_public_key"`
	PublicKey       string `gluamapper:"public_key" json:"public_key"`
	PrivateKey      string `gluamapper:"private_key" json:"private_key"`
	Timeout         int    `gluamapper:"timeout" json:"timeout"` // seconds
}

// Client - serialised request/reply connection to the gateway
type Client struct {
	sync.Mutex
	log  *logger.L
	conn *zmqutil.Client
}

// New - connect to the gateway
func New(log *logger.L, configuration *Configuration) (*Client, error) {
	if "" == configuration.Address {
		return nil, fault.MissingParameters
	}

	privateKey, err := zmqutil.ReadPrivateKeyFile(configuration.PrivateKey)
	if nil != err {
		return nil, err
	}
	publicKey, err := zmqutil.ReadPublicKeyFile(configuration.PublicKey)
	if nil != err {
		return nil, err
	}
	serverKey, err := zmqutil.ReadPublicKeyFile(configuration.ServerPublicKey)
	if nil != err {
		return nil, err
	}

	timeout := defaultTimeout
	if configuration.Timeout > 0 {
		timeout = time.Duration(configuration.Timeout) * time.Second
	}

	conn, err := zmqutil.NewClient(zmq.REQ, privateKey, publicKey, timeout)
	if nil != err {
		return nil, err
	}
	if err := conn.Connect(configuration.Address, serverKey); nil != err {
		return nil, err
	}
	log.Infof("bridge gateway: %s", conn)

	return &Client{log: log, conn: conn}, nil
}

// Close - disconnect
func (c *Client) Close() error {
	c.Lock()
	defer c.Unlock()
	return c.conn.Close()
}

// Call - one request; reply may be nil when the result is ignored
func (c *Client) Call(ctx context.Context, service string, method string, args interface{}, reply interface{}) error {
	if err := ctx.Err(); nil != err {
		return err
	}

	name := service + " " + method

	request, err := json.Marshal(args)
	if nil != err {
		return err
	}

	c.Lock()
	defer c.Unlock()

	c.log.Debugf("call: %s  args: %s", name, request)

	if err := c.conn.Send(service, method, request); nil != err {
		c.reset(name, err)
		return fault.External(name, err)
	}
	data, err := c.conn.Receive(0)
	if nil != err {
		c.reset(name, err)
		return fault.External(name, err)
	}

	if 2 != len(data) {
		return fault.External(name, fault.InvalidReply)
	}

	switch string(data[0]) {
	case statusOK:
		if nil == reply {
			return nil
		}
		if err := json.Unmarshal(data[1], reply); nil != err {
			return fault.External(name, fmt.Errorf("%w: %s", fault.InvalidReply, err))
		}
		return nil
	case statusError:
		return fault.External(name, errors.New(string(data[1])))
	default:
		return fault.External(name, fault.InvalidReply)
	}
}

// a REQ socket that lost its reply cannot send again
func (c *Client) reset(name string, cause error) {
	c.log.Warnf("%s: %s  reconnecting", name, cause)
	if err := c.conn.Reconnect(); nil != err {
		c.log.Errorf("reconnect: %s", err)
	}
}
