// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoughtledger/consensus/chaincfg"
	"github.com/thoughtledger/consensus/txscript"
	"github.com/thoughtledger/consensus/wire"
)

type fakeFetcher struct {
	utxos map[wire.OutPoint]*Utxo
}

func (f *fakeFetcher) FetchUtxo(op wire.OutPoint) (*Utxo, bool) {
	u, ok := f.utxos[op]
	return u, ok
}

func TestConnectTransactionInputsAnyoneCanSpend(t *testing.T) {
	prevOp := wire.OutPoint{Index: 0}
	prevOut := wire.NewTxOut(1000, []byte{txscript.OP_TRUE})

	tx := &wire.MsgTx{Version: wire.TxVersion}
	tx.AddTxIn(wire.NewTxIn(&prevOp, nil, nil))
	tx.AddTxOut(wire.NewTxOut(900, []byte{txscript.OP_TRUE}))

	fetcher := &fakeFetcher{utxos: map[wire.OutPoint]*Utxo{
		prevOp: {Output: prevOut, BlockHeight: 1, IsCoinBase: false},
	}}

	cs := ChainState{Height: 10, MedianTimePast: 1000}
	fee, sigOpCost, err := ConnectTransactionInputs(tx, cs, 100, fetcher, txscript.NewSigCache(0))
	require.NoError(t, err)
	assert.EqualValues(t, 100, fee)
	assert.GreaterOrEqual(t, sigOpCost, 0)
}

func TestConnectTransactionInputsRejectsImmatureCoinbase(t *testing.T) {
	prevOp := wire.OutPoint{Index: 0}
	prevOut := wire.NewTxOut(1000, []byte{txscript.OP_TRUE})

	tx := &wire.MsgTx{Version: wire.TxVersion}
	tx.AddTxIn(wire.NewTxIn(&prevOp, nil, nil))
	tx.AddTxOut(wire.NewTxOut(900, []byte{txscript.OP_TRUE}))

	fetcher := &fakeFetcher{utxos: map[wire.OutPoint]*Utxo{
		prevOp: {Output: prevOut, BlockHeight: 1, IsCoinBase: true},
	}}

	cs := ChainState{Height: 10, MedianTimePast: 1000}
	_, _, err := ConnectTransactionInputs(tx, cs, 100, fetcher, txscript.NewSigCache(0))
	require.Error(t, err)
	var ruleErr RuleError
	require.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, ErrImmatureSpend, ruleErr.ErrorCode)
}

func TestConnectTransactionInputsRejectsMissingOutput(t *testing.T) {
	tx := &wire.MsgTx{Version: wire.TxVersion}
	tx.AddTxIn(wire.NewTxIn(&wire.OutPoint{Index: 0}, nil, nil))
	tx.AddTxOut(wire.NewTxOut(900, []byte{txscript.OP_TRUE}))

	fetcher := &fakeFetcher{utxos: map[wire.OutPoint]*Utxo{}}

	cs := ChainState{Height: 10}
	_, _, err := ConnectTransactionInputs(tx, cs, 100, fetcher, txscript.NewSigCache(0))
	require.Error(t, err)
	var ruleErr RuleError
	require.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, ErrMissingTxOut, ruleErr.ErrorCode)
}

func TestPowParamsFromChainParamsConvertsMaturity(t *testing.T) {
	params := PowParamsFromChainParams(&chaincfg.MainNetParams)
	assert.EqualValues(t, chaincfg.MainNetParams.CoinbaseMaturity, params.CoinbaseMaturity)
	assert.Equal(t, chaincfg.MainNetParams.SubsidyHalvingInterval, params.SubsidyHalvingInterval)
	assert.Equal(t, chaincfg.MainNetParams.BIP0042Rule, params.BIP0042Rule)
}
