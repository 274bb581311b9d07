// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainhash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashStringRoundTrip(t *testing.T) {
	var h Hash
	h[0] = 0xaa
	h[HashSize-1] = 0xbb

	s := h.String()
	got, err := NewHashFromStr(s)
	require.NoError(t, err)
	assert.Equal(t, h, *got)
}

func TestNewHashRejectsWrongLength(t *testing.T) {
	_, err := NewHash([]byte{0x01, 0x02})
	assert.Error(t, err)
}

func TestSetBytesRejectsWrongLength(t *testing.T) {
	var h Hash
	err := h.SetBytes(make([]byte, HashSize-1))
	assert.Error(t, err)
}

func TestCloneBytesIsIndependentCopy(t *testing.T) {
	var h Hash
	h[0] = 0x42
	clone := h.CloneBytes()
	clone[0] = 0xff
	assert.Equal(t, byte(0x42), h[0])
}

func TestIsEqual(t *testing.T) {
	a := Hash{0x01}
	b := Hash{0x01}
	c := Hash{0x02}

	assert.True(t, a.IsEqual(&b))
	assert.False(t, a.IsEqual(&c))

	var nilA, nilB *Hash
	assert.True(t, nilA.IsEqual(nilB))
	assert.False(t, a.IsEqual(nilB))
}

func TestDecodeRejectsOversizedString(t *testing.T) {
	var h Hash
	oversized := make([]byte, MaxHashStringSize+1)
	for i := range oversized {
		oversized[i] = '0'
	}
	err := Decode(&h, string(oversized))
	assert.ErrorIs(t, err, ErrHashStrSize)
}

func TestDecodeOddLengthPadsLeadingZero(t *testing.T) {
	var h Hash
	require.NoError(t, Decode(&h, "abc"))

	var want Hash
	require.NoError(t, Decode(&want, "0abc"))
	assert.Equal(t, want, h)
}

func TestHashBAndHashHAgree(t *testing.T) {
	msg := []byte("tagged-hash-domain")
	h := HashH(msg)
	assert.Equal(t, HashB(msg), h[:])
}

func TestDoubleHashBAndDoubleHashHAgree(t *testing.T) {
	msg := []byte("double-hash-domain")
	h := DoubleHashH(msg)
	assert.Equal(t, DoubleHashB(msg), h[:])
}

func TestDoubleHashIsHashOfHash(t *testing.T) {
	msg := []byte("some data")
	want := HashH(HashB(msg))
	assert.Equal(t, want, DoubleHashH(msg))
}
