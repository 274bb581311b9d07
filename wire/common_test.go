// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarIntRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 0xfc, 0xfd, 0xffff, 0x10000, 0xffffffff, 0x100000000, ^uint64(0)}
	for _, v := range values {
		var buf bytes.Buffer
		require.NoError(t, WriteVarInt(&buf, v))
		assert.Equal(t, VarIntSerializeSize(v), buf.Len(), "value %d", v)

		got, err := ReadVarInt(&buf)
		require.NoError(t, err)
		assert.Equal(t, v, got, "value %d", v)
	}
}

func TestReadVarIntRejectsNonCanonical2Byte(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0xfd, 0x05, 0x00})
	_, err := ReadVarInt(buf)
	assert.Error(t, err)
}

func TestReadVarIntRejectsNonCanonical4Byte(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0xfe, 0x05, 0x00, 0x00, 0x00})
	_, err := ReadVarInt(buf)
	assert.Error(t, err)
}

func TestReadVarIntRejectsNonCanonical8Byte(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0xff, 0x05, 0, 0, 0, 0, 0, 0, 0})
	_, err := ReadVarInt(buf)
	assert.Error(t, err)
}

func TestVarIntSerializeSize(t *testing.T) {
	assert.Equal(t, 1, VarIntSerializeSize(0xfc))
	assert.Equal(t, 3, VarIntSerializeSize(0xfd))
	assert.Equal(t, 3, VarIntSerializeSize(0xffff))
	assert.Equal(t, 5, VarIntSerializeSize(0x10000))
	assert.Equal(t, 5, VarIntSerializeSize(0xffffffff))
	assert.Equal(t, 9, VarIntSerializeSize(0x100000000))
}

func TestVarBytesRoundTrip(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	var buf bytes.Buffer
	require.NoError(t, WriteVarBytes(&buf, data))

	got, err := ReadVarBytes(&buf, 100, "test")
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestReadVarBytesRejectsOversized(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	var buf bytes.Buffer
	require.NoError(t, WriteVarBytes(&buf, data))

	_, err := ReadVarBytes(&buf, 2, "test")
	assert.Error(t, err)
}
