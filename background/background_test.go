// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/cyclespool/background"
)

type ticker struct {
	ticks    int64
	stopped  int32
	received interface{}
}

func (tk *ticker) Run(args interface{}, shutdown <-chan struct{}) {
	tk.received = args
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(time.Millisecond):
			atomic.AddInt64(&tk.ticks, 1)
		}
	}
	atomic.StoreInt32(&tk.stopped, 1)
}

func TestStartStop(t *testing.T) {
	first := &ticker{}
	second := &ticker{}

	p := background.Start(background.Processes{first, second}, "arguments")
	time.Sleep(20 * time.Millisecond)
	p.Stop()

	for i, tk := range []*ticker{first, second} {
		assert.Equal(t, int32(1), atomic.LoadInt32(&tk.stopped), "process %d stopped", i)
		assert.NotZero(t, atomic.LoadInt64(&tk.ticks), "process %d ran", i)
		assert.Equal(t, "arguments", tk.received, "process %d args", i)
	}

	// no further ticks after stop
	ticks := atomic.LoadInt64(&first.ticks)
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, ticks, atomic.LoadInt64(&first.ticks), "stopped for good")
}

func TestStopTwice(t *testing.T) {
	p := background.Start(background.Processes{&ticker{}}, nil)
	p.Stop()
	p.Stop()

	var nothing *background.T
	nothing.Stop()
}
