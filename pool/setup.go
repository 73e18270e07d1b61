// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pool

import (
	"sync"
	"time"

	"github.com/bitmark-inc/cyclespool/account"
	"github.com/bitmark-inc/cyclespool/background"
	"github.com/bitmark-inc/cyclespool/bridge"
	"github.com/bitmark-inc/cyclespool/chain"
	"github.com/bitmark-inc/cyclespool/constants"
	"github.com/bitmark-inc/cyclespool/fault"
	"github.com/bitmark-inc/cyclespool/guard"
	"github.com/bitmark-inc/cyclespool/member"
	"github.com/bitmark-inc/cyclespool/rewards"
	"github.com/bitmark-inc/cyclespool/round"
	"github.com/bitmark-inc/cyclespool/state"
	"github.com/bitmark-inc/cyclespool/storage"
	"github.com/bitmark-inc/logger"
)

// Configuration - identity and admin settings
type Configuration struct {
	Principal       string   `gluamapper:"principal" json:"principal"`
	Controllers     []string `gluamapper:"controllers" json:"controllers"`
	SpawnAmount     uint64   `gluamapper:"spawn_amount" json:"spawn_amount"`           // e8s, zero disables
	LedgerPollCount int      `gluamapper:"ledger_poll_count" json:"ledger_poll_count"` // zero selects the default
	LedgerPollDelay int      `gluamapper:"ledger_poll_delay" json:"ledger_poll_delay"` // milliseconds
}

// Pool - state and collaborators of one pool
type Pool struct {
	sync.Mutex // protects background

	log         *logger.L
	guards      *guard.Registry
	ledger      *member.Ledger
	state       *state.Store
	rewards     *rewards.Engine
	controller  *round.Controller
	bridges     bridge.Collaborators
	canisters   chain.Canisters
	controllers map[account.Principal]struct{}

	spawnAmount uint64
	pollCount   int
	pollDelay   time.Duration

	background *background.T
}

// New - assemble a pool over an open database
func New(log *logger.L, db *storage.Store, bridges bridge.Collaborators, canisters chain.Canisters, configuration *Configuration, timings round.Timings) (*Pool, error) {

	controllers := make(map[account.Principal]struct{})
	for _, text := range configuration.Controllers {
		p, err := account.ParsePrincipal(text)
		if nil != err {
			log.Errorf("controller: %q  error: %s", text, err)
			return nil, err
		}
		controllers[p] = struct{}{}
	}
	if 0 == len(controllers) {
		log.Warn("no controllers: admin operations disabled")
	}

	guards := guard.New(log)
	ledger := member.New(log, db)
	st := state.New(log, db)
	engine := rewards.New(log, guards, ledger, st, bridges)

	p := &Pool{
		log:         log,
		guards:      guards,
		ledger:      ledger,
		state:       st,
		rewards:     engine,
		controller:  round.New(log, timings, st, ledger, engine, bridges),
		bridges:     bridges,
		canisters:   canisters,
		controllers: controllers,
		spawnAmount: configuration.SpawnAmount,
		pollCount:   constants.LedgerPollAttempts,
		pollDelay:   constants.LedgerPollDelay,
	}
	if configuration.LedgerPollCount > 0 {
		p.pollCount = configuration.LedgerPollCount
	}
	if configuration.LedgerPollDelay > 0 {
		p.pollDelay = time.Duration(configuration.LedgerPollDelay) * time.Millisecond
	}
	return p, nil
}

// Begin - run the round controller in the background
func (p *Pool) Begin() error {
	p.Lock()
	defer p.Unlock()
	if nil != p.background {
		return fault.AlreadyInitialised
	}
	p.background = background.Start(background.Processes{p.controller}, nil)
	return nil
}

// Finish - stop the round controller, waiting for the current stage
func (p *Pool) Finish() error {
	p.Lock()
	defer p.Unlock()
	if nil == p.background {
		return fault.NotInitialised
	}
	p.background.Stop()
	p.background = nil
	return nil
}

// ready - member operations need a miner
func (p *Pool) ready() error {
	_, found, err := p.state.Miner()
	if nil != err {
		return err
	}
	if !found {
		return fault.PoolNotReady
	}
	return nil
}

func (p *Pool) isController(caller account.Principal) error {
	if _, ok := p.controllers[caller]; !ok {
		return fault.NotAController
	}
	return nil
}
