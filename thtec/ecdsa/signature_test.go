// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecdsa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func minimalDERSig(r, s byte) []byte {
	return []byte{
		0x30, 0x06,
		0x02, 0x01, r,
		0x02, 0x01, s,
	}
}

func TestIsStrictDEREncodingAcceptsMinimalSig(t *testing.T) {
	assert.True(t, IsStrictDEREncoding(minimalDERSig(0x01, 0x01)))
}

func TestIsStrictDEREncodingRejectsTooShort(t *testing.T) {
	assert.False(t, IsStrictDEREncoding([]byte{0x30, 0x02, 0x02, 0x00}))
}

func TestIsStrictDEREncodingRejectsWrongSequenceTag(t *testing.T) {
	sig := minimalDERSig(0x01, 0x01)
	sig[0] = 0x31
	assert.False(t, IsStrictDEREncoding(sig))
}

func TestIsStrictDEREncodingRejectsBadLength(t *testing.T) {
	sig := minimalDERSig(0x01, 0x01)
	sig[1] = 0xff
	assert.False(t, IsStrictDEREncoding(sig))
}

func TestIsStrictDEREncodingRejectsNegativeR(t *testing.T) {
	sig := minimalDERSig(0x80, 0x01)
	assert.False(t, IsStrictDEREncoding(sig))
}

func TestIsStrictDEREncodingRejectsNonMinimalR(t *testing.T) {
	sig := []byte{
		0x30, 0x07,
		0x02, 0x02, 0x00, 0x01,
		0x02, 0x01, 0x01,
	}
	assert.False(t, IsStrictDEREncoding(sig))
}

func TestIsStrictDEREncodingRejectsZeroLengthR(t *testing.T) {
	sig := []byte{
		0x30, 0x05,
		0x02, 0x00,
		0x02, 0x01, 0x01,
	}
	assert.False(t, IsStrictDEREncoding(sig))
}

func TestIsStrictDEREncodingRejectsTooLong(t *testing.T) {
	big := make([]byte, 80)
	big[0] = 0x30
	assert.False(t, IsStrictDEREncoding(big))
}

func TestParseDERSignatureRejectsGarbage(t *testing.T) {
	_, err := ParseDERSignature([]byte{0x01, 0x02, 0x03})
	assert.Error(t, err)
}
