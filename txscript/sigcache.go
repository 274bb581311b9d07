// Copyright (c) 2015-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"sync"

	"github.com/thoughtledger/consensus/chainhash"
)

// sigCacheEntry represents an entry in the SigCache. Entries are keyed by
// the sig hash, and hold the pubkey and signature bytes that the cache hit
// applies to, since the sighash alone is not a unique key (the same digest
// can be signed by several different keys across a script's execution).
type sigCacheEntry struct {
	sig    []byte
	pubKey []byte
}

// SigCache implements an ECDSA/Schnorr signature verification cache that
// drops all of its entries when it is full and a new one is added. Only
// valid signatures are added to the
// cache. It's useful for reducing the wall-clock time spent validating
// inputs within a transaction or block that have already had their
// signature checked as part of a previous validation pass (e.g. mempool
// acceptance followed by block validation of the same transaction).
type SigCache struct {
	sync.RWMutex
	validSigs  map[chainhash.Hash][]sigCacheEntry
	maxEntries uint
}

// NewSigCache creates and initializes a new instance of SigCache. The
// maxEntries parameter is the maximum number of entries allowed to exist in
// the SigCache at any particular moment.
func NewSigCache(maxEntries uint) *SigCache {
	return &SigCache{
		validSigs:  make(map[chainhash.Hash][]sigCacheEntry),
		maxEntries: maxEntries,
	}
}

// Exists returns true if the (sigHash, sig, pubKey) triple was previously
// added to the cache via the Add method.
func (s *SigCache) Exists(sigHash chainhash.Hash, sig []byte, pubKey []byte) bool {
	s.RLock()
	defer s.RUnlock()

	entries, ok := s.validSigs[sigHash]
	if !ok {
		return false
	}
	for _, entry := range entries {
		if bytesEqual(entry.sig, sig) && bytesEqual(entry.pubKey, pubKey) {
			return true
		}
	}
	return false
}

// Add adds the (sigHash, sig, pubKey) triple to the SigCache. Entries that
// would push the cache beyond maxEntries cause the entire map to be
// flushed, a simple but effective policy given caches are typically sized
// generously relative to the working set of a single block's worth of
// signature checks.
func (s *SigCache) Add(sigHash chainhash.Hash, sig []byte, pubKey []byte) {
	s.Lock()
	defer s.Unlock()

	if s.maxEntries == 0 {
		return
	}

	if uint(len(s.validSigs)) >= s.maxEntries {
		s.validSigs = make(map[chainhash.Hash][]sigCacheEntry)
	}

	sigCopy := make([]byte, len(sig))
	copy(sigCopy, sig)
	pubKeyCopy := make([]byte, len(pubKey))
	copy(pubKeyCopy, pubKey)

	s.validSigs[sigHash] = append(s.validSigs[sigHash], sigCacheEntry{
		sig:    sigCopy,
		pubKey: pubKeyCopy,
	})
}
