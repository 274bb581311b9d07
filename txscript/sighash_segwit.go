// Copyright (c) 2017-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/thoughtledger/consensus/chainhash"
	"github.com/thoughtledger/consensus/wire"
)

// TxSigHashes houses the partial transaction digests, per BIP143 and
// BIP341, that are shared across every input of a transaction. Computing
// them once per transaction rather than once per input turns what would
// otherwise be O(n^2) hashing (BIP143's pre-segwit equivalent rehashes the
// whole transaction per input) into O(n).
type TxSigHashes struct {
	// HashPrevOutsV0 is the double SHA256 of the serialized outpoints of
	// all inputs, per BIP143.
	HashPrevOutsV0 chainhash.Hash

	// HashSequenceV0 is the double SHA256 of the serialized sequence
	// numbers of all inputs, per BIP143.
	HashSequenceV0 chainhash.Hash

	// HashOutputsV0 is the double SHA256 of all serialized outputs, per
	// BIP143.
	HashOutputsV0 chainhash.Hash

	// HashPrevOutsV1 is the single SHA256 of the serialized outpoints of
	// all inputs, per BIP341.
	HashPrevOutsV1 chainhash.Hash

	// HashSequenceV1 is the single SHA256 of the serialized sequence
	// numbers of all inputs, per BIP341.
	HashSequenceV1 chainhash.Hash

	// HashOutputsV1 is the single SHA256 of all serialized outputs, per
	// BIP341.
	HashOutputsV1 chainhash.Hash

	// HashInputAmountsV1 is the single SHA256 of the 8-byte little-endian
	// amounts of every input being spent, per BIP341.
	HashInputAmountsV1 chainhash.Hash

	// HashInputScriptsV1 is the single SHA256 of the serialized pkScripts
	// of every input being spent, per BIP341.
	HashInputScriptsV1 chainhash.Hash
}

// NewTxSigHashes computes, and returns, the fully populated set of sighash
// mid-state digests for the given transaction. prevOutFetcher must be able
// to resolve every input's previous output; a nil fetcher is only safe when
// the caller will never request BIP341 digests for this transaction.
func NewTxSigHashes(tx *wire.MsgTx, prevOutFetcher PrevOutputFetcher) *TxSigHashes {
	sigHashes := new(TxSigHashes)

	var bPrevOuts, bSequence, bOutputs bytes.Buffer
	var bAmounts, bScripts bytes.Buffer
	for _, txIn := range tx.TxIn {
		writeOutPoint(&bPrevOuts, txIn.PreviousOutPoint)

		var seq [4]byte
		binary.LittleEndian.PutUint32(seq[:], txIn.Sequence)
		bSequence.Write(seq[:])

		var prevOut wire.TxOut
		if prevOutFetcher != nil {
			prevOut = prevOutFetcher.FetchPrevOutput(txIn.PreviousOutPoint)
		}

		var amt [8]byte
		binary.LittleEndian.PutUint64(amt[:], uint64(prevOut.Value))
		bAmounts.Write(amt[:])

		wire.WriteVarBytes(&bScripts, prevOut.PkScript)
	}
	for _, txOut := range tx.TxOut {
		writeTxOut(&bOutputs, txOut)
	}

	sigHashes.HashPrevOutsV0 = chainhash.DoubleHashH(bPrevOuts.Bytes())
	sigHashes.HashSequenceV0 = chainhash.DoubleHashH(bSequence.Bytes())
	sigHashes.HashOutputsV0 = chainhash.DoubleHashH(bOutputs.Bytes())

	sigHashes.HashPrevOutsV1 = chainhash.HashH(bPrevOuts.Bytes())
	sigHashes.HashSequenceV1 = chainhash.HashH(bSequence.Bytes())
	sigHashes.HashOutputsV1 = chainhash.HashH(bOutputs.Bytes())
	sigHashes.HashInputAmountsV1 = chainhash.HashH(bAmounts.Bytes())
	sigHashes.HashInputScriptsV1 = chainhash.HashH(bScripts.Bytes())

	return sigHashes
}

func writeOutPoint(w *bytes.Buffer, op wire.OutPoint) {
	w.Write(op.Hash[:])
	var idx [4]byte
	binary.LittleEndian.PutUint32(idx[:], op.Index)
	w.Write(idx[:])
}

func writeTxOut(w *bytes.Buffer, out *wire.TxOut) {
	var val [8]byte
	binary.LittleEndian.PutUint64(val[:], uint64(out.Value))
	w.Write(val[:])
	wire.WriteVarBytes(w, out.PkScript)
}

// CalcWitnessSigHash computes the BIP143 sighash digest for a segwit v0
// input (P2WPKH, or the witness script of a P2WSH input).
func CalcWitnessSigHash(subScript []byte, sigHashes *TxSigHashes,
	hashType SigHashType, tx *wire.MsgTx, idx int, amt int64) ([]byte, error) {

	if idx >= len(tx.TxIn) {
		return nil, fmt.Errorf("idx %d but %d txins", idx, len(tx.TxIn))
	}

	var sigHash bytes.Buffer

	var bVersion [4]byte
	binary.LittleEndian.PutUint32(bVersion[:], tx.Version)
	sigHash.Write(bVersion[:])

	var zeroHash chainhash.Hash
	if hashType&SigHashAnyOneCanPay == 0 {
		sigHash.Write(sigHashes.HashPrevOutsV0[:])
	} else {
		sigHash.Write(zeroHash[:])
	}

	if hashType&SigHashAnyOneCanPay == 0 &&
		hashType&sigHashMask != SigHashSingle &&
		hashType&sigHashMask != SigHashNone {

		sigHash.Write(sigHashes.HashSequenceV0[:])
	} else {
		sigHash.Write(zeroHash[:])
	}

	txIn := tx.TxIn[idx]
	writeOutPoint(&sigHash, txIn.PreviousOutPoint)
	wire.WriteVarBytes(&sigHash, subScript)

	var amtBuf [8]byte
	binary.LittleEndian.PutUint64(amtBuf[:], uint64(amt))
	sigHash.Write(amtBuf[:])

	var seqBuf [4]byte
	binary.LittleEndian.PutUint32(seqBuf[:], txIn.Sequence)
	sigHash.Write(seqBuf[:])

	if hashType&sigHashMask != SigHashSingle &&
		hashType&sigHashMask != SigHashNone {

		sigHash.Write(sigHashes.HashOutputsV0[:])
	} else if hashType&sigHashMask == SigHashSingle && idx < len(tx.TxOut) {
		var b bytes.Buffer
		writeTxOut(&b, tx.TxOut[idx])
		h := chainhash.DoubleHashH(b.Bytes())
		sigHash.Write(h[:])
	} else {
		sigHash.Write(zeroHash[:])
	}

	var lockTime [4]byte
	binary.LittleEndian.PutUint32(lockTime[:], tx.LockTime)
	sigHash.Write(lockTime[:])

	var hashTypeBuf [4]byte
	binary.LittleEndian.PutUint32(hashTypeBuf[:], uint32(hashType))
	sigHash.Write(hashTypeBuf[:])

	return chainhash.DoubleHashB(sigHash.Bytes()), nil
}

// taprootSigHashAnnexFlag is set within the spend type byte of a BIP341
// sighash whenever the input's witness carries an annex.
const taprootSigHashAnnexFlag = 0x1

// CalcTaprootSignatureHash computes the BIP341 (key-path) or BIP342
// (script-path, when tapLeafHash is non-nil) sighash for the given input.
func CalcTaprootSignatureHash(sigHashes *TxSigHashes, hashType SigHashType,
	tx *wire.MsgTx, idx int, prevOutFetcher PrevOutputFetcher,
	annex []byte, tapLeafHash *chainhash.Hash, codeSepPos uint32) ([]byte, error) {

	if idx >= len(tx.TxIn) {
		return nil, fmt.Errorf("idx %d but %d txins", idx, len(tx.TxIn))
	}
	if hashType&sigHashMask == SigHashSingle && idx >= len(tx.TxOut) {
		return nil, fmt.Errorf("SigHashSingle requires corresponding output")
	}

	var sigMsg bytes.Buffer

	sigMsg.WriteByte(0x00) // epoch
	sigMsg.WriteByte(byte(hashType))

	var bVersion [4]byte
	binary.LittleEndian.PutUint32(bVersion[:], tx.Version)
	sigMsg.Write(bVersion[:])

	var lockTime [4]byte
	binary.LittleEndian.PutUint32(lockTime[:], tx.LockTime)
	sigMsg.Write(lockTime[:])

	anyoneCanPay := hashType&SigHashAnyOneCanPay != 0
	if !anyoneCanPay {
		sigMsg.Write(sigHashes.HashPrevOutsV1[:])
		sigMsg.Write(sigHashes.HashInputAmountsV1[:])
		sigMsg.Write(sigHashes.HashInputScriptsV1[:])
		sigMsg.Write(sigHashes.HashSequenceV1[:])
	}

	sigHashType := hashType & sigHashMask
	if sigHashType != SigHashNone && sigHashType != SigHashSingle {
		sigMsg.Write(sigHashes.HashOutputsV1[:])
	}

	spendType := byte(0)
	if tapLeafHash != nil {
		spendType |= 0x2
	}
	if annex != nil {
		spendType |= taprootSigHashAnnexFlag
	}
	sigMsg.WriteByte(spendType)

	if anyoneCanPay {
		txIn := tx.TxIn[idx]
		writeOutPoint(&sigMsg, txIn.PreviousOutPoint)

		prevOut := prevOutFetcher.FetchPrevOutput(txIn.PreviousOutPoint)
		var amt [8]byte
		binary.LittleEndian.PutUint64(amt[:], uint64(prevOut.Value))
		sigMsg.Write(amt[:])
		wire.WriteVarBytes(&sigMsg, prevOut.PkScript)

		var seq [4]byte
		binary.LittleEndian.PutUint32(seq[:], txIn.Sequence)
		sigMsg.Write(seq[:])
	} else {
		var idxBuf [4]byte
		binary.LittleEndian.PutUint32(idxBuf[:], uint32(idx))
		sigMsg.Write(idxBuf[:])
	}

	if annex != nil {
		var b bytes.Buffer
		wire.WriteVarBytes(&b, annex)
		h := chainhash.HashH(b.Bytes())
		sigMsg.Write(h[:])
	}

	if sigHashType == SigHashSingle {
		var b bytes.Buffer
		writeTxOut(&b, tx.TxOut[idx])
		h := chainhash.HashH(b.Bytes())
		sigMsg.Write(h[:])
	}

	if tapLeafHash != nil {
		sigMsg.Write(tapLeafHash[:])
		sigMsg.WriteByte(0x00) // key version
		var cs [4]byte
		binary.LittleEndian.PutUint32(cs[:], codeSepPos)
		sigMsg.Write(cs[:])
	}

	return chainhash.TaggedHash(chainhash.TagTapSighash, sigMsg.Bytes())[:], nil
}
