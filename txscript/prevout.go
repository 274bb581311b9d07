// Copyright (c) 2019-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "github.com/thoughtledger/consensus/wire"

// PrevOutputFetcher is an interface that allows callers to supply the
// previous output (amount and pkScript) referenced by any outpoint in a
// transaction. BIP143 and BIP341 sighashes commit to every input's amount
// and script, not just the one currently being signed, so the engine needs
// visibility into the full input set rather than only the input it is
// directly validating.
type PrevOutputFetcher interface {
	// FetchPrevOutput returns the previous output for the given outpoint,
	// or the zero value if it is unknown to the fetcher.
	FetchPrevOutput(op wire.OutPoint) wire.TxOut
}

// CannedPrevOutputFetcher implements PrevOutputFetcher with a single
// statically known output, useful when validating an individual input in
// isolation (e.g. tests, or CalcLegacySignatureHash-style helpers).
type CannedPrevOutputFetcher struct {
	pkScript []byte
	amt      int64
}

// NewCannedPrevOutputFetcher returns a new CannedPrevOutputFetcher.
func NewCannedPrevOutputFetcher(pkScript []byte, amt int64) *CannedPrevOutputFetcher {
	return &CannedPrevOutputFetcher{pkScript: pkScript, amt: amt}
}

// FetchPrevOutput implements PrevOutputFetcher.
func (c *CannedPrevOutputFetcher) FetchPrevOutput(wire.OutPoint) wire.TxOut {
	return wire.TxOut{Value: c.amt, PkScript: c.pkScript}
}

// MultiPrevOutFetcher implements PrevOutputFetcher for an arbitrary set of
// outpoints, typically the full input set of the transaction under
// validation assembled by the caller from its UTXO view.
type MultiPrevOutFetcher struct {
	outputs map[wire.OutPoint]wire.TxOut
}

// NewMultiPrevOutFetcher returns a new MultiPrevOutFetcher backed by the
// (possibly nil) set of outpoint-to-output mappings.
func NewMultiPrevOutFetcher(outputs map[wire.OutPoint]wire.TxOut) *MultiPrevOutFetcher {
	if outputs == nil {
		outputs = make(map[wire.OutPoint]wire.TxOut)
	}
	return &MultiPrevOutFetcher{outputs: outputs}
}

// AddPrevOut registers the previous output for the given outpoint.
func (m *MultiPrevOutFetcher) AddPrevOut(op wire.OutPoint, output wire.TxOut) {
	m.outputs[op] = output
}

// FetchPrevOutput implements PrevOutputFetcher.
func (m *MultiPrevOutFetcher) FetchPrevOutput(op wire.OutPoint) wire.TxOut {
	return m.outputs[op]
}
