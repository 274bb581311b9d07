// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoughtledger/consensus/txscript"
	"github.com/thoughtledger/consensus/wire"
)

func simpleSpendingTx() *wire.MsgTx {
	tx := &wire.MsgTx{Version: wire.TxVersion}
	tx.AddTxIn(wire.NewTxIn(&wire.OutPoint{Index: 0}, nil, nil))
	tx.AddTxOut(wire.NewTxOut(1000, []byte{txscript.OP_TRUE}))
	return tx
}

func TestCheckTransactionSanityRejectsNoInputs(t *testing.T) {
	tx := &wire.MsgTx{Version: wire.TxVersion}
	tx.AddTxOut(wire.NewTxOut(1000, []byte{txscript.OP_TRUE}))

	err := CheckTransactionSanity(tx)
	require.Error(t, err)
	var ruleErr RuleError
	require.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, ErrNoInputs, ruleErr.ErrorCode)
}

func TestCheckTransactionSanityRejectsNegativeOutput(t *testing.T) {
	tx := simpleSpendingTx()
	tx.TxOut[0].Value = -1

	err := CheckTransactionSanity(tx)
	require.Error(t, err)
	var ruleErr RuleError
	require.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, ErrBadTxOutValue, ruleErr.ErrorCode)
}

func TestCheckTransactionSanityRejectsDuplicateInputs(t *testing.T) {
	tx := &wire.MsgTx{Version: wire.TxVersion}
	op := wire.OutPoint{Index: 0}
	tx.AddTxIn(wire.NewTxIn(&op, nil, nil))
	tx.AddTxIn(wire.NewTxIn(&op, nil, nil))
	tx.AddTxOut(wire.NewTxOut(1000, []byte{txscript.OP_TRUE}))

	err := CheckTransactionSanity(tx)
	require.Error(t, err)
	var ruleErr RuleError
	require.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, ErrDuplicateTxInputs, ruleErr.ErrorCode)
}

func TestCheckTransactionSanityAcceptsValidTransaction(t *testing.T) {
	tx := simpleSpendingTx()
	assert.NoError(t, CheckTransactionSanity(tx))
}

func TestIsFinalizedTransactionZeroLockTime(t *testing.T) {
	tx := simpleSpendingTx()
	assert.True(t, IsFinalizedTransaction(tx, 100, 1000))
}

func TestIsFinalizedTransactionHeightBased(t *testing.T) {
	tx := simpleSpendingTx()
	tx.TxIn[0].Sequence = 0
	tx.LockTime = 200

	assert.False(t, IsFinalizedTransaction(tx, 100, 1000))
	assert.True(t, IsFinalizedTransaction(tx, 201, 1000))
}

func TestIsFinalizedTransactionSequenceFinalBypassesLockTime(t *testing.T) {
	tx := simpleSpendingTx()
	tx.LockTime = 99999999
	assert.True(t, IsFinalizedTransaction(tx, 0, 0), "max sequence on every input bypasses locktime")
}

func TestCalcSequenceLockDisabledByVersionOneTx(t *testing.T) {
	tx := &wire.MsgTx{Version: 1}
	tx.AddTxIn(wire.NewTxIn(&wire.OutPoint{Index: 0}, nil, nil))

	lock := CalcSequenceLock(tx, []int32{10}, []int64{1000}, FlagBIP68)
	assert.EqualValues(t, -1, lock.Height)
	assert.EqualValues(t, -1, lock.Seconds)
}

func TestCalcSequenceLockHeightBased(t *testing.T) {
	tx := &wire.MsgTx{Version: 2}
	tx.AddTxIn(&wire.TxIn{Sequence: 5}) // 5 blocks relative

	lock := CalcSequenceLock(tx, []int32{100}, []int64{0}, FlagBIP68)
	assert.EqualValues(t, 104, lock.Height) // 100 + 5 - 1
	assert.EqualValues(t, -1, lock.Seconds)
}

func TestCalcSequenceLockDisableBitSkipsInput(t *testing.T) {
	tx := &wire.MsgTx{Version: 2}
	tx.AddTxIn(&wire.TxIn{Sequence: sequenceLockTimeDisabled | 5})

	lock := CalcSequenceLock(tx, []int32{100}, []int64{0}, FlagBIP68)
	assert.EqualValues(t, -1, lock.Height)
}

func TestSequenceLockActive(t *testing.T) {
	lock := SequenceLock{Height: 104, Seconds: -1}
	assert.False(t, SequenceLockActive(lock, 104, 0))
	assert.True(t, SequenceLockActive(lock, 105, 0))
}

func TestCheckInputsAccountingComputesFee(t *testing.T) {
	tx := simpleSpendingTx()
	prevOuts := []*wire.TxOut{{Value: 1500}}

	fee, err := CheckInputsAccounting(tx, prevOuts)
	require.NoError(t, err)
	assert.EqualValues(t, 500, fee)
}

func TestCheckInputsAccountingRejectsSpendTooHigh(t *testing.T) {
	tx := simpleSpendingTx()
	prevOuts := []*wire.TxOut{{Value: 500}}

	_, err := CheckInputsAccounting(tx, prevOuts)
	require.Error(t, err)
	var ruleErr RuleError
	require.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, ErrSpendTooHigh, ruleErr.ErrorCode)
}

func TestCheckTransactionSigOpCostWithinBudget(t *testing.T) {
	tx := simpleSpendingTx()
	prevOuts := []*wire.TxOut{{Value: 1500, PkScript: []byte{txscript.OP_TRUE}}}

	err := CheckTransactionSigOpCost(tx, prevOuts, 0)
	assert.NoError(t, err)
}
