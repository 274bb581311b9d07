// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"

	"github.com/thoughtledger/consensus/chainhash"
)

// BlockHeaderLen is the number of bytes in the fixed-size 80-byte block
// header (version, prev hash, merkle root, time, bits, nonce).
const BlockHeaderLen = 80

// BlockHeader defines the consensus-critical 80-byte header every block
// carries, committing to the previous block and to the transactions
// included via the merkle root.
type BlockHeader struct {
	Version    int32
	PrevBlock  chainhash.Hash
	MerkleRoot chainhash.Hash
	Timestamp  uint32
	Bits       uint32
	Nonce      uint32
}

// BlockHash computes the double-sha256 hash of the serialized header. This
// is the block's identity for chain-state and merkle lookups.
func (h *BlockHeader) BlockHash() chainhash.Hash {
	var buf bytes.Buffer
	buf.Grow(BlockHeaderLen)
	_ = h.Serialize(&buf)
	return chainhash.DoubleHashH(buf.Bytes())
}

// Serialize encodes the header to w in the fixed 80-byte wire format.
func (h *BlockHeader) Serialize(w io.Writer) error {
	var s binarySerializer
	if err := s.PutUint32(w, uint32(h.Version)); err != nil {
		return err
	}
	if _, err := w.Write(h.PrevBlock[:]); err != nil {
		return err
	}
	if _, err := w.Write(h.MerkleRoot[:]); err != nil {
		return err
	}
	if err := s.PutUint32(w, h.Timestamp); err != nil {
		return err
	}
	if err := s.PutUint32(w, h.Bits); err != nil {
		return err
	}
	return s.PutUint32(w, h.Nonce)
}

// Deserialize decodes a header from r.
func (h *BlockHeader) Deserialize(r io.Reader) error {
	var s binarySerializer

	version, err := s.Uint32(r)
	if err != nil {
		return err
	}
	h.Version = int32(version)

	if _, err := io.ReadFull(r, h.PrevBlock[:]); err != nil {
		return err
	}
	if _, err := io.ReadFull(r, h.MerkleRoot[:]); err != nil {
		return err
	}

	ts, err := s.Uint32(r)
	if err != nil {
		return err
	}
	h.Timestamp = ts

	bits, err := s.Uint32(r)
	if err != nil {
		return err
	}
	h.Bits = bits

	nonce, err := s.Uint32(r)
	if err != nil {
		return err
	}
	h.Nonce = nonce

	return nil
}

// maxTxPerBlock bounds the transaction count a block's varint can declare,
// derived from the minimum possible non-witness transaction size (10 bytes)
// so a crafted count field cannot force unbounded allocation.
const maxTxPerBlock = MaxBlockWeight / 10

// MsgBlock defines a block: the 80-byte header plus its ordered list of
// transactions, the first of which must be the coinbase.
type MsgBlock struct {
	Header       BlockHeader
	Transactions []*MsgTx
}

// AddTransaction adds a transaction to the message.
func (msg *MsgBlock) AddTransaction(tx *MsgTx) {
	msg.Transactions = append(msg.Transactions, tx)
}

// Deserialize decodes a block from r.
func (msg *MsgBlock) Deserialize(r io.Reader) error {
	if err := msg.Header.Deserialize(r); err != nil {
		return err
	}

	count, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if count > maxTxPerBlock {
		return errTooManyTransactions
	}

	msg.Transactions = make([]*MsgTx, 0, count)
	for i := uint64(0); i < count; i++ {
		tx := new(MsgTx)
		if err := tx.Deserialize(r); err != nil {
			return err
		}
		msg.Transactions = append(msg.Transactions, tx)
	}
	return nil
}

// Serialize encodes the block to w.
func (msg *MsgBlock) Serialize(w io.Writer) error {
	if err := msg.Header.Serialize(w); err != nil {
		return err
	}
	if err := WriteVarInt(w, uint64(len(msg.Transactions))); err != nil {
		return err
	}
	for _, tx := range msg.Transactions {
		if err := tx.Serialize(w); err != nil {
			return err
		}
	}
	return nil
}

// SerializeSize returns the number of bytes it would take to serialize the
// block, including witness data.
func (msg *MsgBlock) SerializeSize() int {
	n := BlockHeaderLen + VarIntSerializeSize(uint64(len(msg.Transactions)))
	for _, tx := range msg.Transactions {
		n += tx.SerializeSize()
	}
	return n
}

// Weight returns the BIP0141 block weight: three times the non-witness size
// plus the full serialized size.
func (msg *MsgBlock) Weight() int {
	strippedSize := BlockHeaderLen + VarIntSerializeSize(uint64(len(msg.Transactions)))
	fullSize := strippedSize
	for _, tx := range msg.Transactions {
		strippedSize += tx.SerializeSizeStripped()
		fullSize += tx.SerializeSize()
	}
	return strippedSize*3 + fullSize
}

// TxHashes returns the double-sha256 txid of every transaction in the
// block, in block order, for merkle root computation.
func (msg *MsgBlock) TxHashes() []chainhash.Hash {
	hashes := make([]chainhash.Hash, len(msg.Transactions))
	for i, tx := range msg.Transactions {
		hashes[i] = tx.TxHash()
	}
	return hashes
}

// WitnessHashes returns the wtxid of every transaction in the block, with
// the coinbase's wtxid replaced by the zero hash per BIP0141's witness
// commitment rules.
func (msg *MsgBlock) WitnessHashes() []chainhash.Hash {
	hashes := make([]chainhash.Hash, len(msg.Transactions))
	for i, tx := range msg.Transactions {
		if i == 0 {
			hashes[i] = chainhash.Hash{}
			continue
		}
		hashes[i] = tx.WitnessHash()
	}
	return hashes
}

// BlockHash returns the block's header hash.
func (msg *MsgBlock) BlockHash() chainhash.Hash {
	return msg.Header.BlockHash()
}
