// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoughtledger/consensus/chainhash"
)

func hashFromByte(b byte) chainhash.Hash {
	var h chainhash.Hash
	h[0] = b
	return h
}

func TestCalcMerkleRootSingleLeaf(t *testing.T) {
	leaf := hashFromByte(0x01)
	root := CalcMerkleRoot([]chainhash.Hash{leaf})
	assert.Equal(t, leaf, root, "a single-transaction block's root is that transaction's hash")
}

func TestCalcMerkleRootPair(t *testing.T) {
	a := hashFromByte(0x01)
	b := hashFromByte(0x02)

	root := CalcMerkleRoot([]chainhash.Hash{a, b})
	expected := hashMerkleBranches(&a, &b)
	require.NotNil(t, expected)
	assert.Equal(t, *expected, root)
}

func TestCalcMerkleRootOddCountDuplicatesLast(t *testing.T) {
	a := hashFromByte(0x01)
	b := hashFromByte(0x02)
	c := hashFromByte(0x03)

	root := CalcMerkleRoot([]chainhash.Hash{a, b, c})

	level1 := *hashMerkleBranches(&a, &b)
	level2 := *hashMerkleBranches(&c, &c)
	expected := hashMerkleBranches(&level1, &level2)

	assert.Equal(t, *expected, root)
}

func TestHasDuplicateTransactionsDetectsMalleation(t *testing.T) {
	a := hashFromByte(0x01)
	b := hashFromByte(0x02)

	assert.False(t, hasDuplicateTransactions([]chainhash.Hash{a, b}))
	assert.True(t, hasDuplicateTransactions([]chainhash.Hash{a, a}))
}

func TestNextPowerOfTwo(t *testing.T) {
	cases := map[int]int{
		0: 0,
		1: 1,
		2: 2,
		3: 4,
		4: 4,
		5: 8,
		9: 16,
	}
	for in, want := range cases {
		assert.Equal(t, want, nextPowerOfTwo(in), "nextPowerOfTwo(%d)", in)
	}
}
