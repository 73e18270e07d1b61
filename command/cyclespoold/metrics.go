// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bitmark-inc/logger"
)

const (
	metricsReadTimeout  = 5 * time.Second
	metricsWriteTimeout = 10 * time.Second
)

// serve the default prometheus registry and the profiler
func startMetrics(log *logger.L, listen string) (*http.Server, error) {
	if "" == listen {
		log.Info("metrics: disabled")
		return nil, nil
	}

	l, err := net.Listen("tcp", listen)
	if nil != err {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	s := &http.Server{
		Handler:      mux,
		ReadTimeout:  metricsReadTimeout,
		WriteTimeout: metricsWriteTimeout,
	}
	go func() {
		if err := s.Serve(l); nil != err && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("metrics: server error: %s", err)
		}
	}()

	log.Infof("metrics: listening on: %s", l.Addr())
	return s, nil
}

func stopMetrics(s *http.Server) {
	if nil == s {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), metricsWriteTimeout)
	defer cancel()
	_ = s.Shutdown(ctx)
}
