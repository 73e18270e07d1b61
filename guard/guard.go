// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package guard - scoped mutual exclusion keyed by principal or task
//
// acquisition never blocks: a second caller for a held key gets a
// concurrency error and must try again later
package guard

import (
	"sync"

	"github.com/bitmark-inc/cyclespool/account"
	"github.com/bitmark-inc/cyclespool/fault"
	"github.com/bitmark-inc/logger"
)

// TaskType - a singleton background task
type TaskType int

// all task types
const (
	CheckRewards TaskType = iota
	SpawnMiner
	maximumTask
)

// String - task name for logging
func (t TaskType) String() string {
	switch t {
	case CheckRewards:
		return "CheckRewards"
	case SpawnMiner:
		return "SpawnMiner"
	default:
		return "*Unknown*"
	}
}

// Registry - the set of currently held guards
type Registry struct {
	sync.Mutex
	log        *logger.L
	principals map[account.Principal]struct{}
	tasks      map[TaskType]struct{}
}

// Guard - a held key; Release must be called on every exit path
type Guard struct {
	once    sync.Once
	release func()
}

// New - create an empty registry
func New(log *logger.L) *Registry {
	return &Registry{
		log:        log,
		principals: make(map[account.Principal]struct{}),
		tasks:      make(map[TaskType]struct{}),
	}
}

// AcquirePrincipal - hold the guard of one principal
func (r *Registry) AcquirePrincipal(p account.Principal) (*Guard, error) {
	r.Lock()
	defer r.Unlock()

	if _, held := r.principals[p]; held {
		r.log.Debugf("principal: %s already held", p)
		return nil, fault.GuardAlreadyHeld
	}
	r.principals[p] = struct{}{}

	return &Guard{
		release: func() {
			r.Lock()
			delete(r.principals, p)
			r.Unlock()
		},
	}, nil
}

// AcquireTask - hold the guard of one task type
func (r *Registry) AcquireTask(t TaskType) (*Guard, error) {
	if t < 0 || t >= maximumTask {
		return nil, fault.InvalidTask
	}

	r.Lock()
	defer r.Unlock()

	if _, held := r.tasks[t]; held {
		r.log.Debugf("task: %s already held", t)
		return nil, fault.GuardAlreadyHeld
	}
	r.tasks[t] = struct{}{}

	return &Guard{
		release: func() {
			r.Lock()
			delete(r.tasks, t)
			r.Unlock()
		},
	}, nil
}

// Held - number of guards currently held
func (r *Registry) Held() int {
	r.Lock()
	defer r.Unlock()
	return len(r.principals) + len(r.tasks)
}

// Release - give the key back; later calls do nothing
func (g *Guard) Release() {
	if nil == g {
		return
	}
	g.once.Do(g.release)
}
