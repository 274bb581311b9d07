// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainhash

import "crypto/sha256"

// TagTapSighash is the BIP0341 tag used to compute the taproot signature
// hash.
const TagTapSighash = "TapSighash"

// TagTapLeaf is the BIP0342 tag used to compute a tapleaf hash.
const TagTapLeaf = "TapLeaf"

// TagTapBranch is the BIP0341 tag used to compute taproot merkle branch
// commitments.
const TagTapBranch = "TapBranch"

// TagTapTweak is the BIP0341 tag used to compute the tweak applied to an
// internal taproot key.
const TagTapTweak = "TapTweak"

// precomputed tag hashes for the handful of BIP0341/BIP0342 tags this
// package knows about.  Precomputing at init time (rather than memoizing
// lazily in a map) keeps TaggedHash free of any shared mutable state, which
// matters because sighash computation may run concurrently across inputs.
var precomputedTagHashes = map[string][32]byte{
	TagTapSighash: sha256.Sum256([]byte(TagTapSighash)),
	TagTapLeaf:    sha256.Sum256([]byte(TagTapLeaf)),
	TagTapBranch:  sha256.Sum256([]byte(TagTapBranch)),
	TagTapTweak:   sha256.Sum256([]byte(TagTapTweak)),
}

// taggedTagHash returns sha256(tag) for the given tag, using the
// precomputed value for known tags and falling back to a direct hash for
// anything else.
func taggedTagHash(tag string) [32]byte {
	if h, ok := precomputedTagHashes[tag]; ok {
		return h
	}
	return sha256.Sum256([]byte(tag))
}

// TaggedHash implements the BIP0340 tagged hash construction:
//
//	sha256(sha256(tag) || sha256(tag) || msg...)
//
// It is used throughout BIP0341/BIP0342 (taproot and tapscript) to achieve
// domain separation between the various hash families built on top of
// plain sha256.
func TaggedHash(tag string, msgs ...[]byte) *Hash {
	tagHash := taggedTagHash(tag)

	h := sha256.New()
	h.Write(tagHash[:])
	h.Write(tagHash[:])
	for _, msg := range msgs {
		h.Write(msg)
	}

	hash := Hash{}
	h.Sum(hash[:0])
	return &hash
}
