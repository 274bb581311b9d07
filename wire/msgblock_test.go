// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoughtledger/consensus/chainhash"
)

func TestBlockHeaderSerializeDeserializeRoundTrip(t *testing.T) {
	h := BlockHeader{
		Version:   1,
		Timestamp: 1600000000,
		Bits:      0x1d00ffff,
		Nonce:     12345,
	}
	h.PrevBlock[0] = 0xaa
	h.MerkleRoot[0] = 0xbb

	var buf bytes.Buffer
	require.NoError(t, h.Serialize(&buf))
	assert.Equal(t, BlockHeaderLen, buf.Len())

	var got BlockHeader
	require.NoError(t, got.Deserialize(&buf))
	assert.Equal(t, h, got)
}

func TestBlockHashIsDoubleSHA256OfHeader(t *testing.T) {
	var h BlockHeader
	h.Version = 1
	a := h.BlockHash()
	h.Nonce = 1
	b := h.BlockHash()
	assert.NotEqual(t, a, b)
}

func TestMsgBlockSerializeDeserializeRoundTrip(t *testing.T) {
	block := &MsgBlock{}
	block.Header.Version = 1
	block.AddTransaction(sampleLegacyTx())
	block.AddTransaction(sampleLegacyTx())

	var buf bytes.Buffer
	require.NoError(t, block.Serialize(&buf))
	assert.Equal(t, block.SerializeSize(), buf.Len())

	var got MsgBlock
	require.NoError(t, got.Deserialize(&buf))
	assert.Len(t, got.Transactions, 2)
	assert.Equal(t, block.Header.Version, got.Header.Version)
}

func TestTxHashesMatchesPerTxTxHash(t *testing.T) {
	block := &MsgBlock{}
	tx1 := sampleLegacyTx()
	tx2 := sampleLegacyTx()
	tx2.LockTime = 1
	block.AddTransaction(tx1)
	block.AddTransaction(tx2)

	hashes := block.TxHashes()
	require.Len(t, hashes, 2)
	assert.Equal(t, tx1.TxHash(), hashes[0])
	assert.Equal(t, tx2.TxHash(), hashes[1])
}

func TestWitnessHashesZeroesCoinbase(t *testing.T) {
	block := &MsgBlock{}
	coinbase := sampleLegacyTx()
	coinbase.TxIn[0].Witness = TxWitness{[]byte{0x01}}
	block.AddTransaction(coinbase)

	hashes := block.WitnessHashes()
	assert.True(t, hashes[0].IsEqual(&chainhash.Hash{}))
}

func TestBlockWeightAccountsForWitnessData(t *testing.T) {
	block := &MsgBlock{}
	tx := sampleLegacyTx()
	block.AddTransaction(tx)
	baseWeight := block.Weight()

	tx.TxIn[0].Witness = TxWitness{[]byte{0x01, 0x02}}
	withWitnessWeight := block.Weight()

	assert.Greater(t, withWitnessWeight, baseWeight)
}
