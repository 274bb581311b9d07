// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package schnorr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSignatureRejectsWrongLength(t *testing.T) {
	_, err := ParseSignature(make([]byte, SignatureSize-1))
	assert.Error(t, err)
}

func TestVerifyRejectsInvalidPubKey(t *testing.T) {
	sig, err := ParseSignature(make([]byte, SignatureSize))
	if err != nil {
		t.Skip("all-zero signature does not parse under the underlying library")
	}
	// pubKeyX is too short to be a valid 32-byte x-only key, so
	// ParseXOnlyPubKey inside Verify must fail and Verify must return false
	// rather than panic.
	assert.False(t, Verify(sig, make([]byte, 32), make([]byte, 10)))
}
