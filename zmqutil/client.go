// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil

import (
	"crypto/rand"
	"strings"
	"time"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/cyclespool/fault"
)

const identifierSize = 32

// Client - one outgoing connection, not safe for concurrent use
type Client struct {
	publicKey       []byte
	privateKey      []byte
	serverPublicKey []byte
	address         string
	socketType      zmq.Type
	socket          *zmq.Socket
	timeout         time.Duration
}

// NewClient - create a client, usually of type zmq.REQ or zmq.SUB;
// empty keys give a plain connection
func NewClient(socketType zmq.Type, privateKey []byte, publicKey []byte, timeout time.Duration) (*Client, error) {
	if 0 != len(privateKey) && keyLength != len(privateKey) {
		return nil, fault.InvalidPrivateKeyFile
	}
	if 0 != len(publicKey) && keyLength != len(publicKey) {
		return nil, fault.InvalidPublicKeyFile
	}
	return &Client{
		publicKey:  append([]byte{}, publicKey...),
		privateKey: append([]byte{}, privateKey...),
		socketType: socketType,
		timeout:    timeout,
	}, nil
}

func (client *Client) openSocket() error {

	socket, err := zmq.NewSocket(client.socketType)
	if nil != err {
		return err
	}

	randomIdBytes := make([]byte, identifierSize)
	if _, err = rand.Read(randomIdBytes); nil != err {
		socket.Close()
		return err
	}

	if 0 != len(client.privateKey) {
		if err = socket.SetCurveServer(0); nil != err {
			goto failure
		}
		if err = socket.SetCurvePublickey(string(client.publicKey)); nil != err {
			goto failure
		}
		if err = socket.SetCurveSecretkey(string(client.privateKey)); nil != err {
			goto failure
		}
		if err = socket.SetCurveServerkey(string(client.serverPublicKey)); nil != err {
			goto failure
		}
	}

	if err = socket.SetIdentity(string(randomIdBytes)); nil != err {
		goto failure
	}

	// zero => do not set timeout
	if 0 != client.timeout {
		if err = socket.SetSndtimeo(client.timeout); nil != err {
			goto failure
		}
		if err = socket.SetRcvtimeo(client.timeout); nil != err {
			goto failure
		}
	}
	if err = socket.SetLinger(0); nil != err {
		goto failure
	}

	switch client.socketType {
	case zmq.REQ:
		if err = socket.SetReqCorrelate(1); nil != err {
			goto failure
		}
		if err = socket.SetReqRelaxed(1); nil != err {
			goto failure
		}
	case zmq.SUB:
		if err = socket.SetSubscribe(""); nil != err {
			goto failure
		}
	default:
	}

	if err = socket.SetIpv6(strings.Contains(client.address, "[")); nil != err {
		goto failure
	}
	if err = socket.Connect(client.address); nil != err {
		goto failure
	}

	client.socket = socket
	return nil

failure:
	socket.Close()
	return err
}

func (client *Client) closeSocket() error {
	if nil == client.socket {
		return nil
	}
	client.socket.Disconnect(client.address)
	err := client.socket.Close()
	client.socket = nil
	return err
}

// Connect - drop any current connection and connect to address
func (client *Client) Connect(address string, serverPublicKey []byte) error {
	if err := client.closeSocket(); nil != err {
		return err
	}
	client.address = address
	client.serverPublicKey = append([]byte{}, serverPublicKey...)
	return client.openSocket()
}

// Reconnect - close and reopen the socket, clearing a REQ socket
// stuck after a lost reply
func (client *Client) Reconnect() error {
	if err := client.closeSocket(); nil != err {
		return err
	}
	return client.openSocket()
}

// Close - disconnect and close
func (client *Client) Close() error {
	return client.closeSocket()
}

// Send - send a multipart message of strings and byte slices
func (client *Client) Send(items ...interface{}) error {
	if nil == client.socket {
		return fault.NotConnected
	}

	last := len(items) - 1
	for i, item := range items {
		flag := zmq.SNDMORE
		if i == last {
			flag = 0
		}
		switch it := item.(type) {
		case string:
			if _, err := client.socket.Send(it, flag); nil != err {
				return err
			}
		case []byte:
			if _, err := client.socket.SendBytes(it, flag); nil != err {
				return err
			}
		}
	}
	return nil
}

// Receive - receive a multipart reply
func (client *Client) Receive(flags zmq.Flag) ([][]byte, error) {
	if nil == client.socket {
		return nil, fault.NotConnected
	}
	return client.socket.RecvMessageBytes(flags)
}

// String - the connected address
func (client *Client) String() string {
	return client.address
}
