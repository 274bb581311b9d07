// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoughtledger/consensus/txscript"
	"github.com/thoughtledger/consensus/util"
	"github.com/thoughtledger/consensus/wire"
)

func TestCalcBlockSubsidyHalves(t *testing.T) {
	const interval = 210000

	assert.EqualValues(t, 50*util.SatoshiPerBitcoin, CalcBlockSubsidy(0, interval, true))
	assert.EqualValues(t, 25*util.SatoshiPerBitcoin, CalcBlockSubsidy(interval, interval, true))
	assert.EqualValues(t, 50*util.SatoshiPerBitcoin/4, CalcBlockSubsidy(interval*2, interval, true))
}

func TestCalcBlockSubsidyBIP0042StopsAtZero(t *testing.T) {
	const interval = 210000
	height := int32(64 * interval)
	assert.EqualValues(t, 0, CalcBlockSubsidy(height, interval, true))
}

func TestCalcBlockSubsidyNoHalvingIntervalReturnsBase(t *testing.T) {
	assert.EqualValues(t, baseSubsidy, CalcBlockSubsidy(1000, 0, true))
}

func coinbaseWithHeightPush(height int32) *wire.MsgTx {
	tx := &wire.MsgTx{Version: wire.TxVersion, LockTime: 0}
	script := txscript.ScriptNumBytes(int64(height))
	sig := append([]byte{byte(len(script))}, script...)
	tx.AddTxIn(&wire.TxIn{
		PreviousOutPoint: wire.OutPoint{Index: wire.MaxTxInSequenceNum},
		SignatureScript:  sig,
		Sequence:         wire.MaxTxInSequenceNum,
	})
	tx.AddTxOut(wire.NewTxOut(50*util.SatoshiPerBitcoin, []byte{txscript.OP_TRUE}))
	return tx
}

func TestCheckBIP34CoinbaseHeightAcceptsMatchingCommitment(t *testing.T) {
	block := &wire.MsgBlock{}
	block.AddTransaction(coinbaseWithHeightPush(500))

	err := CheckBIP34CoinbaseHeight(block, 500)
	assert.NoError(t, err)
}

func TestCheckBIP34CoinbaseHeightRejectsMismatch(t *testing.T) {
	block := &wire.MsgBlock{}
	block.AddTransaction(coinbaseWithHeightPush(500))

	err := CheckBIP34CoinbaseHeight(block, 501)
	require.Error(t, err)
	var ruleErr RuleError
	require.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, ErrBadCoinbaseHeight, ruleErr.ErrorCode)
}

func TestExtractWitnessCommitmentFindsTrailingOutput(t *testing.T) {
	commitment := make([]byte, 32)
	commitment[0] = 0xab

	pkScript := append([]byte{txscript.OP_RETURN, 0x24, 0xaa, 0x21, 0xa9, 0xed}, commitment...)

	coinbase := &wire.MsgTx{}
	coinbase.AddTxOut(wire.NewTxOut(0, []byte{txscript.OP_TRUE}))
	coinbase.AddTxOut(wire.NewTxOut(0, pkScript))

	got, ok := ExtractWitnessCommitment(coinbase)
	require.True(t, ok)
	assert.Equal(t, commitment, got)
}

func TestExtractWitnessCommitmentAbsent(t *testing.T) {
	coinbase := &wire.MsgTx{}
	coinbase.AddTxOut(wire.NewTxOut(0, []byte{txscript.OP_TRUE}))

	_, ok := ExtractWitnessCommitment(coinbase)
	assert.False(t, ok)
}

func TestCheckWitnessCommitmentSkippedWithoutWitnessData(t *testing.T) {
	block := &wire.MsgBlock{}
	coinbase := &wire.MsgTx{}
	coinbase.AddTxIn(wire.NewTxIn(&wire.OutPoint{Index: wire.MaxTxInSequenceNum}, []byte{0x00}, nil))
	coinbase.AddTxOut(wire.NewTxOut(0, []byte{txscript.OP_TRUE}))
	block.AddTransaction(coinbase)

	assert.NoError(t, CheckWitnessCommitment(block))
}
