// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheWriteThenRead(t *testing.T) {
	c := newCache()

	_, _, found := c.Get("test")
	assert.False(t, found, "empty cache")

	c.Set(dbPut, "test", []byte("abcd"))
	value, deleted, found := c.Get("test")
	assert.True(t, found, "found")
	assert.False(t, deleted, "deleted")
	assert.Equal(t, []byte("abcd"), value, "value")
}

func TestCacheDeleteMarker(t *testing.T) {
	c := newCache()

	c.Set(dbPut, "test", []byte("abcd"))
	c.Set(dbDelete, "test", nil)

	value, deleted, found := c.Get("test")
	assert.True(t, found, "marker found")
	assert.True(t, deleted, "marker deleted")
	assert.Nil(t, value, "marker value")
}

func TestCacheClear(t *testing.T) {
	c := newCache()

	c.Set(dbPut, "test", []byte("abcd"))
	c.Clear()

	_, _, found := c.Get("test")
	assert.False(t, found, "cleared")
}
