// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"

	"github.com/thoughtledger/consensus/chainhash"
)

// TxVersion is the current latest supported transaction version.
const TxVersion = 2

// MaxTxInSequenceNum is the maximum sequence number the sequence field of a
// transaction input can be before it stops carrying relative-locktime
// meaning (BIP0068).
const MaxTxInSequenceNum uint32 = 0xffffffff

// Maximum transaction weight/size limits the decoder enforces so that an
// attacker-controlled byte stream cannot force unbounded allocation.
const (
	// MaxBlockWeight is the maximum block weight, per BIP0141 (4M weight
	// units, i.e. a 4x multiplier over the pre-segwit 1M byte block).
	MaxBlockWeight = 4_000_000

	maxTxInPerTx  = MaxBlockWeight / 41
	maxTxOutPerTx = MaxBlockWeight / 9
	maxWitnessItemsPerInput = 500000
	maxWitnessItemSize      = 11000
)

// OutPoint defines a transaction outpoint, the previous-output reference
// every transaction input carries.  A null outpoint (all-zero hash, index
// 0xffffffff) identifies a coinbase input.
type OutPoint struct {
	Hash  chainhash.Hash
	Index uint32
}

// NewOutPoint returns a new outpoint for the provided hash and index.
func NewOutPoint(hash *chainhash.Hash, index uint32) *OutPoint {
	return &OutPoint{Hash: *hash, Index: index}
}

// IsNull reports whether the outpoint is the null point used by coinbase
// inputs: a zero hash combined with the maximum index.
func (o OutPoint) IsNull() bool {
	return o.Index == MaxTxInSequenceNum && o.Hash == (chainhash.Hash{})
}

// TxWitness houses the individual witness items pushed onto the stack prior
// to executing a segwit or taproot input.  It seeds the interpreter's
// primary stack by move for witness-version inputs.
type TxWitness [][]byte

// SerializeSize returns the number of bytes the witness would occupy when
// serialized.
func (t TxWitness) SerializeSize() int {
	n := VarIntSerializeSize(uint64(len(t)))
	for _, item := range t {
		n += VarIntSerializeSize(uint64(len(item))) + len(item)
	}
	return n
}

// TxIn defines a transaction input.
type TxIn struct {
	PreviousOutPoint OutPoint
	SignatureScript  []byte
	Sequence         uint32
	Witness          TxWitness
}

// NewTxIn returns a new transaction input with the provided previous
// outpoint and signature script, and a sequence of MaxTxInSequenceNum.
func NewTxIn(prevOut *OutPoint, signatureScript []byte, witness [][]byte) *TxIn {
	return &TxIn{
		PreviousOutPoint: *prevOut,
		SignatureScript:  signatureScript,
		Sequence:         MaxTxInSequenceNum,
		Witness:          witness,
	}
}

// SerializeSize returns the number of bytes it would take to serialize the
// transaction input, not including any witness data.
func (t *TxIn) SerializeSize() int {
	// PreviousOutPoint.Hash 32 + Index 4 + Sequence 4 + varint-prefixed
	// SignatureScript.
	return 40 + VarIntSerializeSize(uint64(len(t.SignatureScript))) +
		len(t.SignatureScript)
}

// TxOut defines a transaction output.
type TxOut struct {
	Value    int64
	PkScript []byte
}

// NewTxOut returns a new transaction output with the provided value and
// public key script.
func NewTxOut(value int64, pkScript []byte) *TxOut {
	return &TxOut{Value: value, PkScript: pkScript}
}

// SerializeSize returns the number of bytes it would take to serialize the
// transaction output.
func (t *TxOut) SerializeSize() int {
	return 8 + VarIntSerializeSize(uint64(len(t.PkScript))) + len(t.PkScript)
}

// MsgTx describes a Bitcoin-family transaction: an ordered set of inputs
// spending previous outputs, an ordered set of new outputs, and a locktime.
// HasWitness reports whether the transaction should be serialized using the
// segwit marker/flag convention because at least one input carries witness
// data.
type MsgTx struct {
	Version  uint32
	TxIn     []*TxIn
	TxOut    []*TxOut
	LockTime uint32
}

// AddTxIn adds a transaction input to the message.
func (msg *MsgTx) AddTxIn(ti *TxIn) {
	msg.TxIn = append(msg.TxIn, ti)
}

// AddTxOut adds a transaction output to the message.
func (msg *MsgTx) AddTxOut(to *TxOut) {
	msg.TxOut = append(msg.TxOut, to)
}

// HasWitness reports whether any input of the transaction carries a
// non-empty witness stack.  This is the "segregated" flag of the data model:
// it is derived, never stored directly.
func (msg *MsgTx) HasWitness() bool {
	for _, txIn := range msg.TxIn {
		if len(txIn.Witness) > 0 {
			return true
		}
	}
	return false
}

// IsCoinBase reports whether the transaction is a coinbase transaction: it
// has exactly one input and that input's previous outpoint is null.
func (msg *MsgTx) IsCoinBase() bool {
	return len(msg.TxIn) == 1 && msg.TxIn[0].PreviousOutPoint.IsNull()
}

// Copy creates a deep copy of the transaction so mutating the copy (as
// sighash computation does) can never be observed by the original.
func (msg *MsgTx) Copy() *MsgTx {
	newTx := MsgTx{
		Version:  msg.Version,
		TxIn:     make([]*TxIn, 0, len(msg.TxIn)),
		TxOut:    make([]*TxOut, 0, len(msg.TxOut)),
		LockTime: msg.LockTime,
	}

	for _, oldTxIn := range msg.TxIn {
		var newScript []byte
		if len(oldTxIn.SignatureScript) > 0 {
			newScript = make([]byte, len(oldTxIn.SignatureScript))
			copy(newScript, oldTxIn.SignatureScript)
		}
		var newWitness TxWitness
		if len(oldTxIn.Witness) > 0 {
			newWitness = make(TxWitness, len(oldTxIn.Witness))
			for i, item := range oldTxIn.Witness {
				newItem := make([]byte, len(item))
				copy(newItem, item)
				newWitness[i] = newItem
			}
		}
		newTx.TxIn = append(newTx.TxIn, &TxIn{
			PreviousOutPoint: oldTxIn.PreviousOutPoint,
			SignatureScript:  newScript,
			Sequence:         oldTxIn.Sequence,
			Witness:          newWitness,
		})
	}

	for _, oldTxOut := range msg.TxOut {
		var newScript []byte
		if len(oldTxOut.PkScript) > 0 {
			newScript = make([]byte, len(oldTxOut.PkScript))
			copy(newScript, oldTxOut.PkScript)
		}
		newTx.TxOut = append(newTx.TxOut, &TxOut{
			Value:    oldTxOut.Value,
			PkScript: newScript,
		})
	}

	return &newTx
}

// Deserialize decodes a transaction from r, transparently handling both the
// legacy and witness-carrying encodings by sniffing the marker byte.
func (msg *MsgTx) Deserialize(r io.Reader) error {
	var s binarySerializer

	version, err := s.Uint32(r)
	if err != nil {
		return err
	}
	msg.Version = version

	count, err := ReadVarInt(r)
	if err != nil {
		return err
	}

	var flag [1]byte
	hasWitness := false
	if count == 0 {
		// Possible witness marker: a zero input count can never occur in a
		// well-formed transaction, so 0x00 here is the marker byte.
		if _, err := io.ReadFull(r, flag[:]); err != nil {
			return err
		}
		if flag[0] != witnessFlagByte {
			return errInvalidWitnessFlag
		}
		hasWitness = true

		count, err = ReadVarInt(r)
		if err != nil {
			return err
		}
	}
	if count > maxTxInPerTx {
		return errTooManyTxIns
	}

	msg.TxIn = make([]*TxIn, 0, count)
	for i := uint64(0); i < count; i++ {
		ti := new(TxIn)
		if err := readTxIn(r, ti); err != nil {
			return err
		}
		msg.TxIn = append(msg.TxIn, ti)
	}

	outCount, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if outCount > maxTxOutPerTx {
		return errTooManyTxOuts
	}
	msg.TxOut = make([]*TxOut, 0, outCount)
	for i := uint64(0); i < outCount; i++ {
		to := new(TxOut)
		if err := readTxOut(r, to); err != nil {
			return err
		}
		msg.TxOut = append(msg.TxOut, to)
	}

	if hasWitness {
		for _, txIn := range msg.TxIn {
			witness, err := readTxWitness(r)
			if err != nil {
				return err
			}
			txIn.Witness = witness
		}
	}

	lockTime, err := s.Uint32(r)
	if err != nil {
		return err
	}
	msg.LockTime = lockTime

	return nil
}

func readTxIn(r io.Reader, ti *TxIn) error {
	var s binarySerializer

	if _, err := io.ReadFull(r, ti.PreviousOutPoint.Hash[:]); err != nil {
		return err
	}
	idx, err := s.Uint32(r)
	if err != nil {
		return err
	}
	ti.PreviousOutPoint.Index = idx

	script, err := ReadVarBytes(r, uint64(MaxBlockWeight), "signature script")
	if err != nil {
		return err
	}
	ti.SignatureScript = script

	seq, err := s.Uint32(r)
	if err != nil {
		return err
	}
	ti.Sequence = seq
	return nil
}

func readTxOut(r io.Reader, to *TxOut) error {
	var s binarySerializer

	value, err := s.Uint64(r)
	if err != nil {
		return err
	}
	to.Value = int64(value)

	script, err := ReadVarBytes(r, uint64(MaxBlockWeight), "public key script")
	if err != nil {
		return err
	}
	to.PkScript = script
	return nil
}

func readTxWitness(r io.Reader) (TxWitness, error) {
	count, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if count > maxWitnessItemsPerInput {
		return nil, errTooManyWitnessItems
	}

	witness := make(TxWitness, count)
	for i := uint64(0); i < count; i++ {
		item, err := ReadVarBytes(r, maxWitnessItemSize, "witness item")
		if err != nil {
			return nil, err
		}
		witness[i] = item
	}
	return witness, nil
}

// Serialize encodes the transaction using the witness-carrying format when
// HasWitness is true, and the legacy format otherwise.
func (msg *MsgTx) Serialize(w io.Writer) error {
	return msg.serialize(w, msg.HasWitness())
}

// SerializeNoWitness encodes the transaction ignoring any witness data. This
// is the encoding legacy sighash, txid, and pre-segwit size/weight
// computation always operate on.
func (msg *MsgTx) SerializeNoWitness(w io.Writer) error {
	return msg.serialize(w, false)
}

func (msg *MsgTx) serialize(w io.Writer, withWitness bool) error {
	var s binarySerializer

	if err := s.PutUint32(w, msg.Version); err != nil {
		return err
	}

	if withWitness {
		if _, err := w.Write([]byte{witnessMarkerByte, witnessFlagByte}); err != nil {
			return err
		}
	}

	if err := WriteVarInt(w, uint64(len(msg.TxIn))); err != nil {
		return err
	}
	for _, ti := range msg.TxIn {
		if err := writeTxIn(w, ti); err != nil {
			return err
		}
	}

	if err := WriteVarInt(w, uint64(len(msg.TxOut))); err != nil {
		return err
	}
	for _, to := range msg.TxOut {
		if err := writeTxOut(w, to); err != nil {
			return err
		}
	}

	if withWitness {
		for _, ti := range msg.TxIn {
			if err := writeTxWitness(w, ti.Witness); err != nil {
				return err
			}
		}
	}

	return s.PutUint32(w, msg.LockTime)
}

func writeTxIn(w io.Writer, ti *TxIn) error {
	var s binarySerializer
	if _, err := w.Write(ti.PreviousOutPoint.Hash[:]); err != nil {
		return err
	}
	if err := s.PutUint32(w, ti.PreviousOutPoint.Index); err != nil {
		return err
	}
	if err := WriteVarBytes(w, ti.SignatureScript); err != nil {
		return err
	}
	return s.PutUint32(w, ti.Sequence)
}

func writeTxOut(w io.Writer, to *TxOut) error {
	var s binarySerializer
	if err := s.PutUint64(w, uint64(to.Value)); err != nil {
		return err
	}
	return WriteVarBytes(w, to.PkScript)
}

func writeTxWitness(w io.Writer, witness TxWitness) error {
	if err := WriteVarInt(w, uint64(len(witness))); err != nil {
		return err
	}
	for _, item := range witness {
		if err := WriteVarBytes(w, item); err != nil {
			return err
		}
	}
	return nil
}

// SerializeSize returns the number of bytes it would take to serialize the
// transaction using the witness-carrying format when applicable.
func (msg *MsgTx) SerializeSize() int {
	n := msg.baseSize()
	if msg.HasWitness() {
		n += 2 // marker + flag
		for _, ti := range msg.TxIn {
			n += ti.Witness.SerializeSize()
		}
	}
	return n
}

// SerializeSizeStripped returns the number of bytes it would take to
// serialize the transaction with the witness data stripped out.  This is
// the size used for legacy fee/size limit accounting.
func (msg *MsgTx) SerializeSizeStripped() int {
	return msg.baseSize()
}

func (msg *MsgTx) baseSize() int {
	n := 8 // version + locktime
	n += VarIntSerializeSize(uint64(len(msg.TxIn)))
	for _, ti := range msg.TxIn {
		n += ti.SerializeSize()
	}
	n += VarIntSerializeSize(uint64(len(msg.TxOut)))
	for _, to := range msg.TxOut {
		n += to.SerializeSize()
	}
	return n
}

// Weight returns the transaction weight as defined by BIP0141: three times
// the stripped (non-witness) size plus the full serialized size.
func (msg *MsgTx) Weight() int {
	return msg.SerializeSizeStripped()*3 + msg.SerializeSize()
}

// VirtualSize returns ceil(weight / 4), the BIP0141 "virtual size" used for
// fee-rate accounting and the segwit sigop budget.
func (msg *MsgTx) VirtualSize() int {
	return (msg.Weight() + 3) / 4
}

// TxHash computes the double-sha256 transaction id, always hashing the
// non-witness serialization so that the txid is stable whether or not the
// transaction carries witness data (BIP0141).
func (msg *MsgTx) TxHash() chainhash.Hash {
	var buf bytes.Buffer
	buf.Grow(msg.SerializeSizeStripped())
	_ = msg.SerializeNoWitness(&buf)
	return chainhash.DoubleHashH(buf.Bytes())
}

// WitnessHash computes the double-sha256 of the full witness-carrying
// serialization.  For a transaction with no witness data this is defined to
// equal TxHash, matching the reference client's wtxid convention.
func (msg *MsgTx) WitnessHash() chainhash.Hash {
	if !msg.HasWitness() {
		return msg.TxHash()
	}
	var buf bytes.Buffer
	buf.Grow(msg.SerializeSize())
	_ = msg.Serialize(&buf)
	return chainhash.DoubleHashH(buf.Bytes())
}
