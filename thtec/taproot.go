// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package thtec

import (
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// fieldToBigInt converts a secp256k1 field element to its big-endian big.Int
// representation.
func fieldToBigInt(f *secp256k1.FieldVal) *big.Int {
	b := f.Bytes()
	return new(big.Int).SetBytes(b[:])
}

// TweakPubKey computes the BIP0341 tweaked output key for the given internal
// key and tap tweak (the tagged hash of the internal key and merkle root).
// It returns the resulting public key along with the parity of its Y
// coordinate, which taproot signature verification needs to reconstruct the
// key for Schnorr validation.
func TweakPubKey(internalKey *PublicKey, tweak [32]byte) (*PublicKey, bool, error) {
	curve := S256()

	ix := fieldToBigInt(internalKey.X())
	iy := fieldToBigInt(internalKey.Y())

	tx, ty := curve.ScalarBaseMult(tweak[:])

	ox, oy := curve.Add(ix, iy, tx, ty)

	var outX, outY secp256k1.FieldVal
	outX.SetByteSlice(ox.Bytes())
	outY.SetByteSlice(oy.Bytes())

	outKey := secp256k1.NewPublicKey(&outX, &outY)
	parity := oy.Bit(0) == 1

	return outKey, parity, nil
}

// XOnlyBytes returns the 32-byte x-only serialization of the given public
// key, as used throughout BIP0340/BIP0341/BIP0342.
func XOnlyBytes(pub *PublicKey) [32]byte {
	var out [32]byte
	x := pub.X().Bytes()
	copy(out[:], x[:])
	return out
}
