// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ecdsa adapts github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa as the
// signature-verification collaborator for the legacy and segwit-v0 sighash
// algorithms. Parsing and low-S checks live here; the elliptic-curve math
// itself is delegated entirely to the underlying library.
package ecdsa

import (
	dcrecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/thoughtledger/consensus/thtec"
)

// Signature is an ECDSA signature.
type Signature = dcrecdsa.Signature

// MinSigLen is the minimum length of a DER encoded signature and is when both
// R and S are 1 byte each.
//
//	0x30 + <1-byte length> + 0x02 + 0x01 + <byte> + 0x2 + 0x01 + <byte>
const MinSigLen = 8

// ParseDERSignature parses a signature in the strict DER format that BIP0066
// requires: a single sequence containing two strictly-minimal, non-negative
// integers, with no trailing bytes.
func ParseDERSignature(sigStr []byte) (*Signature, error) {
	return dcrecdsa.ParseDERSignature(sigStr)
}

// ParseSignature parses a signature permissively, tolerating the variety of
// non-canonical BER encodings historically accepted before BIP0066 made
// strict DER consensus-mandatory. It is only used when a script's executing
// rules have not yet activated the strict-DER flag.
func ParseSignature(sigStr []byte) (*Signature, error) {
	return dcrecdsa.ParseSignature(sigStr)
}

// Verify reports whether sig is a valid signature of hash under pubKey.
func Verify(sig *Signature, hash []byte, pubKey *thtec.PublicKey) bool {
	return sig.Verify(hash, pubKey)
}

// IsStrictDEREncoding reports whether sig is a canonical, strict-DER-encoded
// ECDSA signature as required by BIP0066 (no leading zero padding beyond
// what's required to keep an integer non-negative, no negative components,
// no trailing garbage).
func IsStrictDEREncoding(sig []byte) bool {
	if len(sig) < MinSigLen {
		return false
	}
	if len(sig) > 72 {
		return false
	}
	if sig[0] != 0x30 {
		return false
	}
	if int(sig[1]) != len(sig)-2 {
		return false
	}

	rLen := int(sig[3])
	if 5+rLen >= len(sig) {
		return false
	}
	if sig[2] != 0x02 {
		return false
	}
	if rLen == 0 {
		return false
	}
	if sig[4]&0x80 != 0 {
		return false
	}
	if rLen > 1 && sig[4] == 0x00 && sig[5]&0x80 == 0 {
		return false
	}

	sTypeOffset := 4 + rLen
	if sTypeOffset+1 >= len(sig) {
		return false
	}
	if sig[sTypeOffset] != 0x02 {
		return false
	}

	sLenOffset := sTypeOffset + 1
	sLen := int(sig[sLenOffset])
	if sLen == 0 {
		return false
	}
	sOffset := sLenOffset + 1
	if sOffset+sLen != len(sig) {
		return false
	}
	if sig[sOffset]&0x80 != 0 {
		return false
	}
	if sLen > 1 && sig[sOffset] == 0x00 && sig[sOffset+1]&0x80 == 0 {
		return false
	}

	return true
}

// IsLowS reports whether sig's S value is at most the curve order's half,
// the malleability-avoidance rule BIP0062/BIP0146 make consensus-mandatory
// for segwit inputs (and standardness-mandatory for legacy ones).
func IsLowS(sig *Signature) bool {
	s := sig.S()
	return !s.IsOverHalfOrder()
}
