// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"sync"
)

const defaultQueueSize = 1000

// Message - a command and its encoded parameters
type Message struct {
	Command    string
	Parameters [][]byte
}

// BroadcastQueue - every listener receives every message
type BroadcastQueue struct {
	sync.Mutex
	listeners []chan Message
}

// Bus - the process wide queues
var Bus = struct {
	Broadcast *BroadcastQueue
}{
	Broadcast: &BroadcastQueue{},
}

// Send - queue a message for all current listeners
func (queue *BroadcastQueue) Send(command string, parameters ...[]byte) {
	m := Message{
		Command:    command,
		Parameters: parameters,
	}

	queue.Lock()
	defer queue.Unlock()
	for _, listener := range queue.listeners {
		select {
		case listener <- m:
		default:
		}
	}
}

// Chan - a new listener; size zero selects the default
func (queue *BroadcastQueue) Chan(size int) <-chan Message {
	if size <= 0 {
		size = defaultQueueSize
	}
	c := make(chan Message, size)

	queue.Lock()
	queue.listeners = append(queue.listeners, c)
	queue.Unlock()
	return c
}

// Release - stop delivering to a listener
func (queue *BroadcastQueue) Release(c <-chan Message) {
	queue.Lock()
	defer queue.Unlock()
	for i, listener := range queue.listeners {
		if (<-chan Message)(listener) == c {
			queue.listeners = append(queue.listeners[:i], queue.listeners[i+1:]...)
			return
		}
	}
}
