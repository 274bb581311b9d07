// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package thtec adapts github.com/decred/dcrd/dcrec/secp256k1 as the
// curve/key collaborator the interpreter's signature-check opcodes depend
// on. The specification treats elliptic-curve math as a pure, externally
// supplied function; this package is the thin seam where that function is
// bound to a real implementation rather than hand-rolled.
package thtec

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// PublicKey is a secp256k1 public key.
type PublicKey = secp256k1.PublicKey

// ParsePubKey parses a public key in the standard SEC compressed,
// uncompressed, or hybrid encoding.
func ParsePubKey(pubKeyStr []byte) (*PublicKey, error) {
	return secp256k1.ParsePubKey(pubKeyStr)
}

// S256 returns the secp256k1 curve parameters, used for low-S signature
// malleability checks (BIP0062 rule 5).
func S256() *secp256k1.KoblitzCurve {
	return secp256k1.S256()
}

// IsCompressedPubKey reports whether the given serialized public key is in
// the 33-byte compressed SEC format.
func IsCompressedPubKey(pubKey []byte) bool {
	return len(pubKey) == 33 && (pubKey[0] == 0x02 || pubKey[0] == 0x03)
}

// ParseXOnlyPubKey lifts a BIP0340/BIP0341 32-byte x-only public key to a
// full secp256k1.PublicKey by prefixing the even-Y compressed-key tag, the
// same "lift_x" convention BIP0340 verification uses.
func ParseXOnlyPubKey(xOnly []byte) (*PublicKey, error) {
	compressed := make([]byte, 0, 33)
	compressed = append(compressed, 0x02)
	compressed = append(compressed, xOnly...)
	return secp256k1.ParsePubKey(compressed)
}
