// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil

import (
	"encoding/hex"
	"os"
	"strings"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/cyclespool/fault"
)

const (
	taggedPublic  = "PUBLIC:"
	taggedPrivate = "PRIVATE:"
	keyLength     = 32
)

// MakeKeyPair - create a curve keypair and write the halves to
// separate files, never overwriting an existing file
func MakeKeyPair(publicKeyFileName string, privateKeyFileName string) error {
	for _, name := range []string{publicKeyFileName, privateKeyFileName} {
		if _, err := os.Stat(name); nil == err {
			return fault.KeyFileAlreadyExists
		}
	}

	// zmq produces Z85 text, files hold hex
	publicKey, privateKey, err := zmq.NewCurveKeypair()
	if nil != err {
		return err
	}

	public := taggedPublic + hex.EncodeToString([]byte(zmq.Z85decode(publicKey))) + "\n"
	private := taggedPrivate + hex.EncodeToString([]byte(zmq.Z85decode(privateKey))) + "\n"

	if err = os.WriteFile(publicKeyFileName, []byte(public), 0666); nil != err {
		return err
	}
	if err = os.WriteFile(privateKeyFileName, []byte(private), 0600); nil != err {
		os.Remove(publicKeyFileName)
		return err
	}
	return nil
}

// ReadPublicKeyFile - load a tagged public key; an empty file name
// means no key
func ReadPublicKeyFile(fileName string) ([]byte, error) {
	return readKeyFile(fileName, false)
}

// ReadPrivateKeyFile - load a tagged private key; an empty file name
// means no key
func ReadPrivateKeyFile(fileName string) ([]byte, error) {
	return readKeyFile(fileName, true)
}

func readKeyFile(fileName string, wantPrivate bool) ([]byte, error) {
	if "" == fileName {
		return nil, nil
	}
	data, err := os.ReadFile(fileName)
	if nil != err {
		return nil, err
	}
	key, private, err := ParseKey(string(data))
	if nil != err {
		return nil, err
	}
	if private != wantPrivate {
		if wantPrivate {
			return nil, fault.InvalidPrivateKeyFile
		}
		return nil, fault.InvalidPublicKeyFile
	}
	return key, nil
}

// ParseKey - decode a tagged hex key, reporting whether it is private
func ParseKey(data string) ([]byte, bool, error) {
	s := strings.TrimSpace(data)

	tag, private, invalid := taggedPublic, false, fault.InvalidPublicKeyFile
	if strings.HasPrefix(s, taggedPrivate) {
		tag, private, invalid = taggedPrivate, true, fault.InvalidPrivateKeyFile
	} else if !strings.HasPrefix(s, taggedPublic) {
		return nil, false, fault.InvalidPublicKeyFile
	}

	h, err := hex.DecodeString(s[len(tag):])
	if nil != err || keyLength != len(h) {
		return nil, false, invalid
	}
	return h, private, nil
}
