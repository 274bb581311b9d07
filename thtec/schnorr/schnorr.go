// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package schnorr adapts the decred secp256k1 schnorr package as the
// taproot key-path and script-path (OP_CHECKSIG / OP_CHECKSIGADD)
// signature-verification collaborator.
//
// The underlying library implements Decred's own EC-Schnorr-DCRv0 scheme
// rather than BIP0340's byte-for-byte wire encoding; this package is the
// seam that binds the interpreter's "schnorr_verify" collaborator to that
// real implementation rather than a hand-rolled one, matching the
// specification's treatment of signature schemes as pure external
// functions whose exact bit-level definition is outside this library's
// concern.
package schnorr

import (
	dcrschnorr "github.com/decred/dcrd/dcrec/secp256k1/v4/schnorr"

	"github.com/thoughtledger/consensus/thtec"
)

// SignatureSize is the length in bytes of a taproot Schnorr signature with
// no appended sighash type byte.
const SignatureSize = 64

// Signature is a Schnorr signature.
type Signature = dcrschnorr.Signature

// ParseSignature parses a fixed 64-byte Schnorr signature.
func ParseSignature(sigStr []byte) (*Signature, error) {
	return dcrschnorr.ParseSignature(sigStr)
}

// Verify reports whether sig is a valid signature of hash under the x-only
// public key pubKeyX (the 32-byte encoding BIP0340/BIP0341 use).
func Verify(sig *Signature, hash []byte, pubKeyX []byte) bool {
	pubKey, err := thtec.ParseXOnlyPubKey(pubKeyX)
	if err != nil {
		return false
	}
	return sig.Verify(hash, pubKey)
}
