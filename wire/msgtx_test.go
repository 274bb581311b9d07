// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLegacyTx() *MsgTx {
	tx := &MsgTx{Version: TxVersion}
	prevOp := OutPoint{Index: 0}
	tx.AddTxIn(NewTxIn(&prevOp, []byte{0x01, 0x02}, nil))
	tx.AddTxOut(NewTxOut(5000, []byte{0x76, 0xa9}))
	return tx
}

func TestOutPointIsNull(t *testing.T) {
	var null OutPoint
	null.Index = MaxTxInSequenceNum
	assert.True(t, null.IsNull())

	nonNull := OutPoint{Index: 0}
	assert.False(t, nonNull.IsNull())
}

func TestIsCoinBase(t *testing.T) {
	coinbase := &MsgTx{Version: TxVersion}
	var nullOp OutPoint
	nullOp.Index = MaxTxInSequenceNum
	coinbase.AddTxIn(NewTxIn(&nullOp, []byte{0x00}, nil))
	assert.True(t, coinbase.IsCoinBase())

	assert.False(t, sampleLegacyTx().IsCoinBase())
}

func TestHasWitnessFalseByDefault(t *testing.T) {
	tx := sampleLegacyTx()
	assert.False(t, tx.HasWitness())
}

func TestHasWitnessTrueWithWitnessData(t *testing.T) {
	tx := sampleLegacyTx()
	tx.TxIn[0].Witness = TxWitness{[]byte{1}}
	assert.True(t, tx.HasWitness())
}

func TestSerializeDeserializeLegacyRoundTrip(t *testing.T) {
	tx := sampleLegacyTx()
	tx.LockTime = 500

	var buf bytes.Buffer
	require.NoError(t, tx.Serialize(&buf))
	assert.Equal(t, tx.SerializeSize(), buf.Len())

	var got MsgTx
	require.NoError(t, got.Deserialize(&buf))
	assert.Equal(t, tx.Version, got.Version)
	assert.Equal(t, tx.LockTime, got.LockTime)
	assert.Equal(t, tx.TxOut[0].Value, got.TxOut[0].Value)
	assert.Equal(t, tx.TxIn[0].SignatureScript, got.TxIn[0].SignatureScript)
}

func TestSerializeDeserializeWitnessRoundTrip(t *testing.T) {
	tx := sampleLegacyTx()
	tx.TxIn[0].Witness = TxWitness{[]byte{0xaa}, []byte{0xbb, 0xcc}}

	var buf bytes.Buffer
	require.NoError(t, tx.Serialize(&buf))

	var got MsgTx
	require.NoError(t, got.Deserialize(&buf))
	assert.True(t, got.HasWitness())
	assert.Equal(t, tx.TxIn[0].Witness, got.TxIn[0].Witness)
}

func TestTxHashIgnoresWitness(t *testing.T) {
	tx := sampleLegacyTx()
	legacyHash := tx.TxHash()

	tx.TxIn[0].Witness = TxWitness{[]byte{0xaa}}
	withWitnessHash := tx.TxHash()

	assert.Equal(t, legacyHash, withWitnessHash)
}

func TestWitnessHashEqualsTxHashWithoutWitness(t *testing.T) {
	tx := sampleLegacyTx()
	assert.Equal(t, tx.TxHash(), tx.WitnessHash())
}

func TestWitnessHashDiffersWithWitness(t *testing.T) {
	tx := sampleLegacyTx()
	noWitness := tx.WitnessHash()

	tx.TxIn[0].Witness = TxWitness{[]byte{0xaa}}
	withWitness := tx.WitnessHash()

	assert.NotEqual(t, noWitness, withWitness)
}

func TestCopyIsIndependent(t *testing.T) {
	tx := sampleLegacyTx()
	clone := tx.Copy()
	clone.TxIn[0].SignatureScript[0] = 0xff
	clone.TxOut[0].Value = 1

	assert.NotEqual(t, tx.TxIn[0].SignatureScript[0], clone.TxIn[0].SignatureScript[0])
	assert.NotEqual(t, tx.TxOut[0].Value, clone.TxOut[0].Value)
}

func TestWeightAndVirtualSize(t *testing.T) {
	tx := sampleLegacyTx()
	// With no witness data, weight is exactly 4x the (stripped == full) size.
	assert.Equal(t, tx.SerializeSizeStripped()*4, tx.Weight())
	assert.Equal(t, tx.SerializeSizeStripped(), tx.VirtualSize())
}

func TestDeserializeRejectsBadWitnessFlag(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&binarySerializer{}).PutUint32(&buf, TxVersion))
	buf.WriteByte(0x00) // input count 0 signals possible witness marker
	buf.WriteByte(0x02) // invalid flag, must be 0x01

	var tx MsgTx
	err := tx.Deserialize(&buf)
	assert.Error(t, err)
}
