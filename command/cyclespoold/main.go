// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bitmark-inc/cyclespool/account"
	"github.com/bitmark-inc/cyclespool/background"
	"github.com/bitmark-inc/cyclespool/bridge"
	"github.com/bitmark-inc/cyclespool/bridge/remote"
	"github.com/bitmark-inc/cyclespool/bridge/simulate"
	"github.com/bitmark-inc/cyclespool/chain"
	"github.com/bitmark-inc/cyclespool/cycles"
	"github.com/bitmark-inc/cyclespool/fault"
	"github.com/bitmark-inc/cyclespool/pool"
	"github.com/bitmark-inc/cyclespool/publish"
	"github.com/bitmark-inc/cyclespool/rpc"
	"github.com/bitmark-inc/cyclespool/storage"
	"github.com/bitmark-inc/cyclespool/zmqutil"
	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// identity and opening balances of the pool on the local chain
var (
	localPrincipal = account.PrincipalFromBytes([]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x64, 0x01, 0x01})
)

const (
	localFunds         = 10_000_000_000 // e8s
	localReserveCycles = 2_000_000_000_000
	localRoundInterval = 480 * time.Second
	localRoundReward   = 100_000_000_000

	initialiseTimeout = 5 * time.Minute
)

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "memory-stats", HasArg: getoptions.NO_ARGUMENT, Short: 'm'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile, nil)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// last chance logging for panics
	if err = fault.Initialise(); nil != err {
		exitwithstatus.Message("%s: fault setup failed with error: %s", program, err)
	}
	defer fault.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	log.Infof("chain: %s", theConfiguration.Chain)
	log.Infof("database: %q", theConfiguration.Database.Name)

	canisters, ok := chain.Get(theConfiguration.Chain)
	if !ok {
		exitwithstatus.Message("unsupported chain: %q", theConfiguration.Chain)
	}

	self, err := poolPrincipal(theConfiguration)
	if nil != err {
		log.Criticalf("pool principal error: %s", err)
		exitwithstatus.Message("pool principal error: %s", err)
	}
	log.Infof("pool: %s", self)

	// initialise encryption
	err = zmqutil.StartAuthentication()
	if nil != err {
		log.Criticalf("zmq.AuthStart: error: %s", err)
		exitwithstatus.Message("zmq.AuthStart: error: %s", err)
	}

	// start the data storage
	log.Info("initialise storage")
	db, err := storage.Open(theConfiguration.Database.Name, storage.ReadWrite)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer db.Close()

	// the collaborators
	var bridges bridge.Collaborators
	switch theConfiguration.Chain {
	case chain.Local:
		w := simulate.New(logger.New("bridge"), self, canisters, time.Now())
		w.Fund(account.NewIdentifier(self, nil), localFunds)
		w.SetPoolCycles(cycles.New(localReserveCycles))
		bridges = w.Collaborators()

		driver := background.Start(background.Processes{
			simulate.NewDriver(w, localRoundInterval, cycles.New(localRoundReward)),
		}, nil)
		defer driver.Stop()

	default:
		client, err := remote.New(logger.New("bridge"), &theConfiguration.Bridge)
		if nil != err {
			log.Criticalf("bridge initialise error: %s", err)
			exitwithstatus.Message("bridge initialise error: %s", err)
		}
		defer client.Close()
		bridges = client.Collaborators(self)
	}

	// start up the publishing background processes
	err = publish.Initialise(&theConfiguration.Publishing, theConfiguration.Chain)
	if nil != err {
		log.Criticalf("publish initialise error: %s", err)
		exitwithstatus.Message("publish initialise error: %s", err)
	}
	defer publish.Finalise()

	p, err := pool.New(logger.New("pool"), db, bridges, canisters, &theConfiguration.Pool, theConfiguration.Round.Timings())
	if nil != err {
		log.Criticalf("pool initialise error: %s", err)
		exitwithstatus.Message("pool initialise error: %s", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), initialiseTimeout)
	err = p.Initialise(ctx)
	cancel()
	if nil != err {
		// the admin spawn_miner call can still provide a miner
		log.Errorf("miner spawn error: %s", err)
	}

	if err := p.Begin(); nil != err {
		log.Criticalf("pool start error: %s", err)
		exitwithstatus.Message("pool start error: %s", err)
	}
	defer p.Finish()

	// start up the rpc background processes
	err = rpc.Initialise(&theConfiguration.ClientRPC, p, theConfiguration.Chain, version)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	metrics, err := startMetrics(logger.New("metrics"), theConfiguration.Metrics.Listen)
	if nil != err {
		log.Criticalf("metrics initialise error: %s", err)
		exitwithstatus.Message("metrics initialise error: %s", err)
	}
	defer stopMetrics(metrics)

	// if memory logging enabled
	if len(options["memory-stats"]) > 0 {
		go memstats()
	}

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
}

// the configured principal; the local chain has a default
func poolPrincipal(configuration *Configuration) (account.Principal, error) {
	if "" == configuration.Pool.Principal {
		if chain.Local == configuration.Chain {
			return localPrincipal, nil
		}
		return account.Principal{}, fmt.Errorf("pool principal is required on chain: %q", configuration.Chain)
	}
	return account.ParsePrincipal(configuration.Pool.Principal)
}
