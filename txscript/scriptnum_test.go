// Copyright (c) 2015-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptNumBytesRoundTrip(t *testing.T) {
	tests := []int64{0, 1, -1, 127, 128, -128, 32767, -32767, 500, -500, 0x7fffffff, -0x7fffffff}
	for _, v := range tests {
		encoded := scriptNum(v).Bytes()
		got, err := makeScriptNum(encoded, true, maxScriptNumLen)
		require.NoError(t, err, "value %d", v)
		assert.EqualValues(t, v, got, "value %d", v)
	}
}

func TestScriptNumBytesZeroIsEmpty(t *testing.T) {
	assert.Nil(t, scriptNum(0).Bytes())
}

func TestScriptNumBytesKnownEncoding(t *testing.T) {
	// 500 = 0x1F4, little-endian bytes 0xF4 0x01, no sign-extension byte
	// needed since the high bit of 0x01 is clear.
	assert.Equal(t, []byte{0xf4, 0x01}, ScriptNumBytes(500))
}

func TestMakeScriptNumRejectsOversizedInput(t *testing.T) {
	_, err := makeScriptNum([]byte{1, 2, 3, 4, 5}, true, maxScriptNumLen)
	require.Error(t, err)
	var serr Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, ErrNumberTooBig, serr.ErrorCode)
}

func TestMakeScriptNumAllowsCLTVWiderDomain(t *testing.T) {
	v := []byte{1, 2, 3, 4, 5}
	_, err := makeScriptNum(v, true, cltvMaxScriptNumLen)
	assert.NoError(t, err)
}

func TestMakeScriptNumRejectsNonMinimalEncoding(t *testing.T) {
	// A trailing zero byte with the sign bit of the preceding byte clear is
	// a non-minimal encoding of the same value without it.
	_, err := makeScriptNum([]byte{0x01, 0x00}, true, maxScriptNumLen)
	require.Error(t, err)
	var serr Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, ErrMinimalData, serr.ErrorCode)
}

func TestMakeScriptNumAllowsNonMinimalWhenNotRequired(t *testing.T) {
	got, err := makeScriptNum([]byte{0x01, 0x00}, false, maxScriptNumLen)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got)
}

func TestMakeScriptNumEmptyIsZero(t *testing.T) {
	got, err := makeScriptNum(nil, true, maxScriptNumLen)
	require.NoError(t, err)
	assert.EqualValues(t, 0, got)
}

func TestScriptNumInt32Clamps(t *testing.T) {
	assert.EqualValues(t, 2147483647, scriptNum(1<<40).Int32())
	assert.EqualValues(t, -2147483648, scriptNum(-(1<<40)).Int32())
	assert.EqualValues(t, 42, scriptNum(42).Int32())
}
