// Copyright (c) 2019 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizerParsesDataPush(t *testing.T) {
	script := []byte{OP_DATA_2, 0xde, 0xad}
	tok := MakeScriptTokenizer(script)

	require.True(t, tok.Next())
	assert.Equal(t, byte(OP_DATA_2), tok.Opcode())
	assert.Equal(t, []byte{0xde, 0xad}, tok.Data())
	assert.True(t, tok.Done())
	assert.NoError(t, tok.Err())
}

func TestTokenizerParsesSimpleOpcodes(t *testing.T) {
	script := []byte{OP_1, OP_2, OP_ADD}
	tok := MakeScriptTokenizer(script)

	var ops []byte
	for tok.Next() {
		ops = append(ops, tok.Opcode())
	}
	require.NoError(t, tok.Err())
	assert.Equal(t, []byte{OP_1, OP_2, OP_ADD}, ops)
}

func TestTokenizerTruncatedDataPushErrors(t *testing.T) {
	script := []byte{OP_DATA_2, 0xde}
	tok := MakeScriptTokenizer(script)

	assert.False(t, tok.Next())
	require.Error(t, tok.Err())
	var serr Error
	require.ErrorAs(t, tok.Err(), &serr)
	assert.Equal(t, ErrMalformedPush, serr.ErrorCode)
}

func TestTokenizerPushdata1(t *testing.T) {
	data := make([]byte, 80)
	for i := range data {
		data[i] = byte(i)
	}
	script := append([]byte{OP_PUSHDATA1, byte(len(data))}, data...)
	tok := MakeScriptTokenizer(script)

	require.True(t, tok.Next())
	assert.Equal(t, data, tok.Data())
	assert.True(t, tok.Done())
}

func TestCheckScriptParsesValidScript(t *testing.T) {
	script := []byte{OP_1, OP_2, OP_EQUAL}
	assert.NoError(t, checkScriptParses(script))
}

func TestCheckScriptParsesInvalidScript(t *testing.T) {
	script := []byte{OP_DATA_2, 0x01}
	assert.Error(t, checkScriptParses(script))
}

func TestIsPushOnlyScript(t *testing.T) {
	assert.True(t, IsPushOnlyScript([]byte{OP_DATA_1, 0x01, OP_16}))
	assert.False(t, IsPushOnlyScript([]byte{OP_1, OP_ADD}))
}

func TestFinalOpcodeData(t *testing.T) {
	script := []byte{OP_DATA_1, 0xaa, OP_DATA_2, 0xbb, 0xcc}
	assert.Equal(t, []byte{0xbb, 0xcc}, finalOpcodeData(script))
}

func TestFinalOpcodeDataOnParseError(t *testing.T) {
	script := []byte{OP_DATA_2, 0x01}
	assert.Nil(t, finalOpcodeData(script))
}

func TestRemoveOpcodeRaw(t *testing.T) {
	script := []byte{OP_1, OP_CODESEPARATOR, OP_2}
	got := removeOpcodeRaw(script, OP_CODESEPARATOR)
	assert.Equal(t, []byte{OP_1, OP_2}, got)
}

func TestRemoveOpcodeByData(t *testing.T) {
	script := []byte{OP_DATA_2, 0xde, 0xad, OP_1}
	got := removeOpcodeByData(script, []byte{0xde, 0xad})
	assert.Equal(t, []byte{OP_1}, got)
}

func TestRemoveOpcodeByDataNoMatchReturnsOriginal(t *testing.T) {
	script := []byte{OP_DATA_2, 0xde, 0xad, OP_1}
	got := removeOpcodeByData(script, []byte{0xff, 0xff})
	assert.Equal(t, script, got)
}
