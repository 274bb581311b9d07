// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import "github.com/thoughtledger/consensus/chainhash"

// BuildMerkleTreeStore builds and returns the entire merkle tree for the
// given leaf hashes, stored as a linear array: the leaves occupy the front
// of the array, with each successive level's nodes following, and a
// duplicated last element whenever a level has an odd node count, in
// keeping with the reference client's historical (and occasionally
// malleable) tree construction. The root is the final element.
func BuildMerkleTreeStore(leaves []chainhash.Hash) []*chainhash.Hash {
	if len(leaves) == 0 {
		return []*chainhash.Hash{{}}
	}

	nextPoT := nextPowerOfTwo(len(leaves))
	arraySize := nextPoT*2 - 1
	merkles := make([]*chainhash.Hash, arraySize)

	for i := range leaves {
		h := leaves[i]
		merkles[i] = &h
	}

	offset := nextPoT
	for i := 0; i < arraySize-1; i += 2 {
		switch {
		case merkles[i] == nil:
			merkles[offset] = nil

		case merkles[i+1] == nil:
			newHash := hashMerkleBranches(merkles[i], merkles[i])
			merkles[offset] = newHash

		default:
			newHash := hashMerkleBranches(merkles[i], merkles[i+1])
			merkles[offset] = newHash
		}
		offset++
	}

	return merkles
}

// hashMerkleBranches concatenates and double-hashes a pair of merkle-tree
// node hashes to compute the hash of their parent node.
func hashMerkleBranches(left, right *chainhash.Hash) *chainhash.Hash {
	var buf [chainhash.HashSize * 2]byte
	copy(buf[:chainhash.HashSize], left[:])
	copy(buf[chainhash.HashSize:], right[:])
	newHash := chainhash.DoubleHashH(buf[:])
	return &newHash
}

// nextPowerOfTwo returns the smallest power of two greater than or equal to
// n, used to size the padded merkle tree array.
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 0
	}
	if n&(n-1) == 0 {
		return n
	}
	exponent := 0
	for n > 0 {
		n >>= 1
		exponent++
	}
	return 1 << exponent
}

// CalcMerkleRoot computes the merkle root committing to the given ordered
// leaf hashes.
func CalcMerkleRoot(leaves []chainhash.Hash) chainhash.Hash {
	merkles := BuildMerkleTreeStore(leaves)
	root := merkles[len(merkles)-1]
	if root == nil {
		return chainhash.Hash{}
	}
	return *root
}

// hasDuplicateTransactions reports whether any level of the merkle tree
// built from the block's leaf hashes holds a left and right sibling with
// the same hash -- CVE-2012-2459, the known merkle tree malleability in
// which a block's transaction list (most simply, its trailing transaction,
// or a trailing run of transactions) can be duplicated without changing
// the computed merkle root.
func hasDuplicateTransactions(leaves []chainhash.Hash) bool {
	if len(leaves) < 2 {
		return false
	}
	merkles := BuildMerkleTreeStore(leaves)
	for i := 0; i+1 < len(merkles); i += 2 {
		if merkles[i] != nil && merkles[i+1] != nil && *merkles[i] == *merkles[i+1] {
			return true
		}
	}
	return false
}
