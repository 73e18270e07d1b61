// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/cyclespool/messagebus"
	"github.com/bitmark-inc/cyclespool/zmqutil"
	"github.com/bitmark-inc/logger"
)

const broadcasterZapDomain = "broadcaster"

type broadcaster struct {
	log    *logger.L
	chain  string
	socket *zmq.Socket
	queue  <-chan messagebus.Message
}

func (brdc *broadcaster) initialise(log *logger.L, chain string, privateKey []byte, publicKey []byte, broadcast []string) error {
	socket, err := zmqutil.NewBind(log, zmq.PUB, broadcasterZapDomain, privateKey, publicKey, broadcast)
	if nil != err {
		log.Errorf("bind error: %s", err)
		return err
	}
	brdc.log = log
	brdc.chain = chain
	brdc.socket = socket
	brdc.queue = messagebus.Bus.Broadcast.Chan(0)
	return nil
}

// Run - forward every bus message until shutdown
func (brdc *broadcaster) Run(args interface{}, shutdown <-chan struct{}) {
	log := brdc.log
	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case item := <-brdc.queue:
			log.Debugf("sending: %s  data: %q", item.Command, item.Parameters)
			brdc.process(&item)
		}
	}

	messagebus.Bus.Broadcast.Release(brdc.queue)
	brdc.socket.Close()
	log.Info("stopped")
}

// frames: chain, command, parameters…
func (brdc *broadcaster) process(item *messagebus.Message) {
	frames := make([]interface{}, 0, 2+len(item.Parameters))
	frames = append(frames, brdc.chain, item.Command)
	for _, p := range item.Parameters {
		frames = append(frames, p)
	}
	if _, err := brdc.socket.SendMessageDontwait(frames...); nil != err {
		brdc.log.Warnf("send: %s  error: %s", item.Command, err)
	}
}
