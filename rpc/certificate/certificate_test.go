// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate_test

import (
	"crypto/tls"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/cyclespool/fault"
	"github.com/bitmark-inc/cyclespool/fixtures"
	"github.com/bitmark-inc/cyclespool/rpc/certificate"
	"github.com/bitmark-inc/logger"
)

func TestGenerateAndGet(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir := t.TempDir()
	cer := filepath.Join(dir, "rpc.crt")
	key := filepath.Join(dir, "rpc.key")

	err := certificate.Generate("test", cer, key, []string{"127.0.0.1"})
	require.Nil(t, err, "generate")

	tlsConfig, fingerprint, err := certificate.Get(logger.New(fixtures.LogCategory), "test", cer, key)
	assert.Nil(t, err, "get")

	pair, _ := tls.LoadX509KeyPair(cer, key)
	assert.Equal(t, sha3.Sum256(pair.Certificate[0]), fingerprint, "fingerprint")
	assert.Equal(t, pair.Certificate, tlsConfig.Certificates[0].Certificate, "config")

	err = certificate.Generate("test", cer, filepath.Join(dir, "other.key"), nil)
	assert.Equal(t, fault.CertificateFileAlreadyExists, err, "overwrite certificate")
	err = certificate.Generate("test", filepath.Join(dir, "other.crt"), key, nil)
	assert.Equal(t, fault.KeyFileAlreadyExists, err, "overwrite key")
}

func TestGetMissingFiles(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	_, _, err := certificate.Get(logger.New(fixtures.LogCategory), "test", "no.crt", "no.key")
	assert.NotNil(t, err, "missing files")
}
