// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainhash

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaggedHashMatchesManualConstruction(t *testing.T) {
	msg := []byte("hello taproot")

	tagHash := sha256.Sum256([]byte(TagTapLeaf))
	h := sha256.New()
	h.Write(tagHash[:])
	h.Write(tagHash[:])
	h.Write(msg)
	var want [32]byte
	h.Sum(want[:0])

	got := TaggedHash(TagTapLeaf, msg)
	assert.EqualValues(t, want, *got)
}

func TestTaggedHashIsDomainSeparated(t *testing.T) {
	msg := []byte("same message")
	a := TaggedHash(TagTapLeaf, msg)
	b := TaggedHash(TagTapBranch, msg)
	assert.NotEqual(t, *a, *b)
}

func TestTaggedHashUnknownTagFallsBackToDirectHash(t *testing.T) {
	msg := []byte("payload")
	a := TaggedHash("SomeUnregisteredTag", msg)
	b := TaggedHash("SomeUnregisteredTag", msg)
	assert.Equal(t, *a, *b)
}

func TestTaggedHashConcatenatesMultipleMessages(t *testing.T) {
	a := TaggedHash(TagTapSighash, []byte("ab"))
	b := TaggedHash(TagTapSighash, []byte("a"), []byte("b"))
	assert.Equal(t, *a, *b)
}
