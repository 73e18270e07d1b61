// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package certificate - TLS material for the RPC listeners
package certificate

import (
	"crypto/tls"
	"os"
	"time"

	"github.com/bitmark-inc/certgen"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/cyclespool/fault"
	"github.com/bitmark-inc/logger"
)

// Get - load a certificate and key from PEM files
//
// returns the TLS configuration and the certificate fingerprint
func Get(log *logger.L, name string, certificateFileName string, keyFileName string) (*tls.Config, [32]byte, error) {
	var fin [32]byte

	keyPair, err := tls.LoadX509KeyPair(certificateFileName, keyFileName)
	if nil != err {
		log.Errorf("%s: failed to load keypair: %s", name, err)
		return nil, fin, err
	}

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
		MinVersion: tls.VersionTLS12,
	}

	fin = Fingerprint(keyPair.Certificate[0])
	return tlsConfiguration, fin, nil
}

// Generate - create a self-signed certificate pair
//
// neither file may exist
func Generate(name string, certificateFileName string, keyFileName string, extraHosts []string) error {
	if exists(certificateFileName) {
		return fault.CertificateFileAlreadyExists
	}
	if exists(keyFileName) {
		return fault.KeyFileAlreadyExists
	}

	org := "cyclespoold self signed cert for: " + name
	validUntil := time.Now().Add(10 * 365 * 24 * time.Hour)
	cert, key, err := certgen.NewTLSCertPair(org, validUntil, false, extraHosts)
	if nil != err {
		return err
	}

	if err := os.WriteFile(certificateFileName, cert, 0666); nil != err {
		return err
	}
	if err := os.WriteFile(keyFileName, key, 0600); nil != err {
		_ = os.Remove(certificateFileName)
		return err
	}
	return nil
}

// Fingerprint - SHA3-256 of the DER certificate
//
// FreeBSD: openssl x509 -outform DER -in cyclespoold-rpc.crt | sha3sum -a 256
func Fingerprint(certificate []byte) [32]byte {
	return sha3.Sum256(certificate)
}

func exists(name string) bool {
	_, err := os.Stat(name)
	return nil == err
}
