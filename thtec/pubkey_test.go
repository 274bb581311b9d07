// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package thtec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCompressedPubKey(t *testing.T) {
	compressed02 := append([]byte{0x02}, make([]byte, 32)...)
	compressed03 := append([]byte{0x03}, make([]byte, 32)...)
	uncompressed := append([]byte{0x04}, make([]byte, 64)...)

	assert.True(t, IsCompressedPubKey(compressed02))
	assert.True(t, IsCompressedPubKey(compressed03))
	assert.False(t, IsCompressedPubKey(uncompressed))
	assert.False(t, IsCompressedPubKey(compressed02[:10]))
}

func TestParsePubKeyRejectsGarbage(t *testing.T) {
	_, err := ParsePubKey([]byte{0x00, 0x01, 0x02})
	assert.Error(t, err)
}

func TestParseXOnlyPubKeyRejectsWrongLength(t *testing.T) {
	_, err := ParseXOnlyPubKey(make([]byte, 10))
	assert.Error(t, err)
}

func TestS256ReturnsSameCurveParams(t *testing.T) {
	a := S256()
	b := S256()
	assert.Equal(t, a.Params().Name, b.Params().Name)
}
