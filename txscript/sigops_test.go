// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thoughtledger/consensus/wire"
)

func p2pkhScript() []byte {
	return []byte{OP_DUP, OP_HASH160, OP_DATA_1, 0x00, OP_EQUALVERIFY, OP_CHECKSIG}
}

func TestGetSigOpCountSimpleCheckSig(t *testing.T) {
	assert.Equal(t, 1, GetSigOpCount(p2pkhScript()))
}

func TestGetSigOpCountMultisigWorstCase(t *testing.T) {
	script := []byte{OP_2, OP_CHECKMULTISIG}
	assert.Equal(t, MaxPubKeysPerMultiSig, GetSigOpCount(script))
}

func TestGetPreciseSigOpCountMultisigUsesPushedCount(t *testing.T) {
	script := []byte{OP_2, OP_CHECKMULTISIG}
	// countSigOpsV0 with precededByPushedData=true uses the small-int push
	// immediately preceding OP_CHECKMULTISIG rather than the worst case.
	got := GetPreciseSigOpCount(nil, script, false)
	assert.Equal(t, 2, got)
}

func TestGetPreciseSigOpCountP2SHRequiresPushOnlySig(t *testing.T) {
	redeemScript := []byte{OP_1, OP_CHECKMULTISIG}
	scriptSig := append([]byte{OP_DATA_2}, redeemScript...)
	scriptPubKey := append([]byte{OP_HASH160, OP_DATA_20}, append(make([]byte, 20), OP_EQUAL)...)

	got := GetPreciseSigOpCount(scriptSig, scriptPubKey, true)
	assert.Equal(t, 1, got)
}

func TestGetPreciseSigOpCountP2SHIgnoredWithoutBIP16(t *testing.T) {
	redeemScript := []byte{OP_1, OP_CHECKMULTISIG}
	scriptSig := append([]byte{OP_DATA_2}, redeemScript...)
	scriptPubKey := append([]byte{OP_HASH160, OP_DATA_20}, append(make([]byte, 20), OP_EQUAL)...)

	got := GetPreciseSigOpCount(scriptSig, scriptPubKey, false)
	assert.Equal(t, 0, got)
}

func TestGetWitnessSigOpCountP2WPKH(t *testing.T) {
	program := append([]byte{OP_0, OP_DATA_20}, make([]byte, 20)...)
	got := GetWitnessSigOpCount(nil, program, nil)
	assert.Equal(t, 1, got)
}

func TestGetWitnessSigOpCountP2WSH(t *testing.T) {
	witnessScript := []byte{OP_1, OP_CHECKSIG}
	program := append([]byte{OP_0, OP_DATA_32}, make([]byte, 32)...)
	witness := wire.TxWitness{[]byte{}, witnessScript}

	got := GetWitnessSigOpCount(nil, program, witness)
	assert.Equal(t, 1, got)
}

func TestGetWitnessSigOpCountLegacyScriptIsZero(t *testing.T) {
	got := GetWitnessSigOpCount(nil, p2pkhScript(), nil)
	assert.Equal(t, 0, got)
}

func TestDisasmStringValidScript(t *testing.T) {
	s, err := DisasmString([]byte{OP_1, OP_2, OP_ADD})
	assert.NoError(t, err)
	assert.NotEmpty(t, s)
}

func TestDisasmStringParseErrorIncludesMarker(t *testing.T) {
	s, err := DisasmString([]byte{OP_DATA_2, 0x01})
	assert.Error(t, err)
	assert.Contains(t, s, "[error]")
}
