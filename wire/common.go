// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wire implements the consensus-critical binary encodings for
// Bitcoin-family transactions and blocks described in the external
// interfaces of the validation core: little-endian fixed-width fields,
// varints, and the witness marker/flag convention introduced by segwit.
//
// It deliberately does not implement peer-to-peer message framing,
// handshakes, or inventory relay -- those are wire-protocol concerns that
// live outside this module.
package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

// witnessMarkerByte and witnessFlagByte are the two bytes inserted
// immediately after the transaction version when at least one input of the
// transaction carries witness data.  A marker of 0x00 could never begin a
// valid varint-prefixed input count because there must always be at least
// one input, so the encoding is unambiguous.
const (
	witnessMarkerByte = 0x00
	witnessFlagByte   = 0x01
)

// binarySerializer houses scratch buffers for the read/write helpers so that
// encoding a stream of small fixed-size fields does not allocate per field.
type binarySerializer struct {
	scratch [8]byte
}

func (b *binarySerializer) Uint32(r io.Reader) (uint32, error) {
	if _, err := io.ReadFull(r, b.scratch[:4]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b.scratch[:4]), nil
}

func (b *binarySerializer) Uint64(r io.Reader) (uint64, error) {
	if _, err := io.ReadFull(r, b.scratch[:8]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b.scratch[:8]), nil
}

func (b *binarySerializer) PutUint32(w io.Writer, v uint32) error {
	binary.LittleEndian.PutUint32(b.scratch[:4], v)
	_, err := w.Write(b.scratch[:4])
	return err
}

func (b *binarySerializer) PutUint64(w io.Writer, v uint64) error {
	binary.LittleEndian.PutUint64(b.scratch[:8], v)
	_, err := w.Write(b.scratch[:8])
	return err
}

// ReadVarInt reads a variable-length integer from r and returns it as a
// uint64, per the encoding in section 6 of the specification:
//
//	<0xfd         -> 1 byte
//	0xfd          -> 2-byte little-endian follows
//	0xfe          -> 4-byte little-endian follows
//	0xff          -> 8-byte little-endian follows
func ReadVarInt(r io.Reader) (uint64, error) {
	var s binarySerializer
	var prefix [1]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return 0, err
	}

	switch prefix[0] {
	case 0xff:
		val, err := s.Uint64(r)
		if err != nil {
			return 0, err
		}
		if val < 0x100000000 {
			return 0, fmt.Errorf("non-canonical varint (8 byte form) for %d", val)
		}
		return val, nil

	case 0xfe:
		val, err := s.Uint32(r)
		if err != nil {
			return 0, err
		}
		if val < 0x10000 {
			return 0, fmt.Errorf("non-canonical varint (4 byte form) for %d", val)
		}
		return uint64(val), nil

	case 0xfd:
		if _, err := io.ReadFull(r, s.scratch[:2]); err != nil {
			return 0, err
		}
		val := binary.LittleEndian.Uint16(s.scratch[:2])
		if val < 0xfd {
			return 0, fmt.Errorf("non-canonical varint (2 byte form) for %d", val)
		}
		return uint64(val), nil

	default:
		return uint64(prefix[0]), nil
	}
}

// WriteVarInt writes val to w using the minimal varint encoding.
func WriteVarInt(w io.Writer, val uint64) error {
	var s binarySerializer
	switch {
	case val < 0xfd:
		_, err := w.Write([]byte{byte(val)})
		return err

	case val <= 0xffff:
		if _, err := w.Write([]byte{0xfd}); err != nil {
			return err
		}
		binary.LittleEndian.PutUint16(s.scratch[:2], uint16(val))
		_, err := w.Write(s.scratch[:2])
		return err

	case val <= 0xffffffff:
		if _, err := w.Write([]byte{0xfe}); err != nil {
			return err
		}
		return s.PutUint32(w, uint32(val))

	default:
		if _, err := w.Write([]byte{0xff}); err != nil {
			return err
		}
		return s.PutUint64(w, val)
	}
}

// VarIntSerializeSize returns the number of bytes it would take to serialize
// val as a variable length integer.
func VarIntSerializeSize(val uint64) int {
	switch {
	case val < 0xfd:
		return 1
	case val <= 0xffff:
		return 3
	case val <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// ReadVarBytes reads a variable length byte array, prefixed by a varint
// describing its length.
func ReadVarBytes(r io.Reader, maxAllowed uint64, fieldName string) ([]byte, error) {
	count, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if count > maxAllowed {
		return nil, fmt.Errorf("%s is larger than the max allowed size "+
			"[count %d, max %d]", fieldName, count, maxAllowed)
	}

	b := make([]byte, count)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

// WriteVarBytes writes a variable length byte array with a varint length
// prefix.
func WriteVarBytes(w io.Writer, b []byte) error {
	if err := WriteVarInt(w, uint64(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}
