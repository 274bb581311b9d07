// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockchain derives per-height chain state (soft-fork activation
// flags, difficulty retarget, median time past) and validates transactions
// and blocks against it, handing script execution off to txscript for each
// input.
package blockchain

import (
	"math/big"
	"sort"

	"github.com/thoughtledger/consensus/chaincfg"
	"github.com/thoughtledger/consensus/chainhash"
	"github.com/thoughtledger/consensus/txscript"
	"github.com/thoughtledger/consensus/wire"
)

// medianTimeBlocks is the number of preceding blocks whose timestamps are
// sorted to compute a block's median time past.
const medianTimeBlocks = 11

// BlockNode is the minimal header metadata chain state derivation needs for
// one block: its height, its header fields, and its accumulated proof of
// work. A chain of BlockNodes, linked through Parent, stands in for a
// database-backed block index.
type BlockNode struct {
	Parent *BlockNode

	Hash       chainhash.Hash
	Height     int32
	Version    int32
	Bits       uint32
	Timestamp  int64
	Work       *big.Int // this block's individual proof-of-work contribution
}

// ChainState is the derived, per-height consensus context a block or
// transaction is validated against: the soft-fork flags bitmask, the
// minimum acceptable block version, the required proof-of-work target, and
// the median time past. It is computed once per connected block and reused
// for every transaction within it.
type ChainState struct {
	Height              int32
	Flags               Flags
	MinimumBlockVersion int32
	WorkRequired        uint32
	MedianTimePast      int64
}

// Flags is a bitmask of soft-fork rules active at a given height, mirroring
// the historical naming of each BIP it corresponds to. Unlike txscript's
// ScriptFlags, which configure a single script engine invocation, Flags
// describes what is active for an entire block and is translated into
// ScriptFlags once per transaction by ScriptFlags().
type Flags uint32

const (
	FlagBIP16 Flags = 1 << iota // pay-to-script-hash
	FlagBIP30                   // no duplicate unspent coinbases
	FlagBIP34                   // coinbase commits to height
	FlagBIP65                   // OP_CHECKLOCKTIMEVERIFY
	FlagBIP66                   // strict DER signature encoding
	FlagBIP68                   // relative lock-time (sequence)
	FlagBIP112                  // OP_CHECKSEQUENCEVERIFY
	FlagBIP113                  // median-time-past locktime calculation
	FlagBIP141                  // segregated witness
	FlagBIP143                  // segwit v0 sighash algorithm
	FlagBIP147                  // null-dummy (NULLDUMMY)
	FlagBIP341                  // taproot
	FlagBIP342                  // tapscript
)

// Has reports whether every bit set in want is also set in f.
func (f Flags) Has(want Flags) bool {
	return f&want == want
}

// medianTimePast returns the median timestamp of node and its preceding
// medianTimeBlocks-1 ancestors, per the consensus definition used
// throughout locktime and CSV evaluation. Satoshi's client associates this
// value with the block one before the one it actually describes; this
// implementation associates it directly with node, which is simpler and
// must be accounted for at call sites that expect the historical offset.
func medianTimePast(node *BlockNode) int64 {
	timestamps := make([]int64, 0, medianTimeBlocks)
	n := node
	for i := 0; i < medianTimeBlocks && n != nil; i++ {
		timestamps = append(timestamps, n.Timestamp)
		n = n.Parent
	}
	sort.Slice(timestamps, func(i, j int) bool { return timestamps[i] < timestamps[j] })
	if len(timestamps) == 0 {
		return 0
	}
	return timestamps[len(timestamps)/2]
}

// CalcChainState derives the full ChainState for the block that extends
// prevNode (prevNode is the chain tip being built on; pass nil for genesis)
// with the given candidate timestamp, used only by the testnet
// minimum-difficulty exception. Activation is driven entirely by
// chaincfg's fixed per-height checkpoints: this implementation replaces
// the reference client's runtime-measured BIP9 bit-signalling and
// BIP34/65/66 super-majority windows with the heights those mechanisms
// are already known, historically, to have produced -- see DESIGN.md for
// the open question this resolves.
func CalcChainState(prevNode *BlockNode, newBlockTime int64, params *chaincfg.Params) ChainState {
	height := int32(0)
	if prevNode != nil {
		height = prevNode.Height + 1
	}

	var mtp int64
	if prevNode != nil {
		mtp = medianTimePast(prevNode)
	}

	return ChainState{
		Height:              height,
		Flags:               deriveFlags(height, params),
		MinimumBlockVersion: minimumBlockVersion(height, params),
		WorkRequired:        calcWorkRequired(prevNode, newBlockTime, params),
		MedianTimePast:      mtp,
	}
}

// deriveFlags computes the soft-fork activation bitmask for height under
// params. BIP0090 fixes BIP0034/0065/0066 activation at hardcoded heights
// on networks where the super-majority signal has long since been
// superseded; this implementation always operates in that mode, since
// chaincfg's Params.BIP0090Rule is set on every network this package
// ships. BIP0030 is active everywhere except the configured deactivation
// window; the two mainnet exception blocks (params.BIP30Exceptions) are
// not special-cased here, since deriveFlags sees only the height.
func deriveFlags(height int32, params *chaincfg.Params) Flags {
	var f Flags

	if params.BIP0016Height >= 0 && height >= params.BIP0016Height {
		f |= FlagBIP16
	}

	deactivated := params.BIP30DeactivateHeight > 0 &&
		height >= params.BIP30DeactivateHeight &&
		(params.BIP30ReactivateHeight == 0 || height < params.BIP30ReactivateHeight)
	if !deactivated {
		f |= FlagBIP30
	}

	if height >= params.BIP0034Height {
		f |= FlagBIP34
	}
	if height >= params.BIP0066Height {
		f |= FlagBIP66
	}
	if height >= params.BIP0065Height {
		f |= FlagBIP65
	}

	if int32(params.BIP0068Height) != 0 && height >= int32(params.BIP0068Height) {
		f |= FlagBIP68
	}
	if int32(params.BIP0112Height) != 0 && height >= int32(params.BIP0112Height) {
		f |= FlagBIP112
	}
	if int32(params.BIP0113Height) != 0 && height >= int32(params.BIP0113Height) {
		f |= FlagBIP113
	}
	if int32(params.BIP0141Height) != 0 && height >= int32(params.BIP0141Height) {
		f |= FlagBIP141
	}
	if int32(params.BIP0143Height) != 0 && height >= int32(params.BIP0143Height) {
		f |= FlagBIP143
	}
	if int32(params.BIP0147Height) != 0 && height >= int32(params.BIP0147Height) {
		f |= FlagBIP147
	}
	if int32(params.BIP0341Height) != 0 && height >= int32(params.BIP0341Height) {
		f |= FlagBIP341
	}
	if int32(params.BIP0342Height) != 0 && height >= int32(params.BIP0342Height) {
		f |= FlagBIP342
	}

	return f
}

// minimumBlockVersion returns the lowest header version a block at height
// may declare, given which of the version-signalled soft forks have
// already been enforced.
func minimumBlockVersion(height int32, params *chaincfg.Params) int32 {
	switch {
	case height >= params.BIP0065Height:
		return 4
	case height >= params.BIP0066Height:
		return 3
	case height >= params.BIP0034Height:
		return 2
	default:
		return 1
	}
}

// ScriptFlags translates a block-level ChainState into the per-input
// txscript.ScriptFlags bitmask, the boundary between this package's
// height-driven activation and the script engine's stateless execution of
// a single input.
func (cs ChainState) ScriptFlags() txscript.ScriptFlags {
	var flags txscript.ScriptFlags

	if cs.Flags.Has(FlagBIP16) {
		flags |= txscript.ScriptBip16
	}
	if cs.Flags.Has(FlagBIP65) {
		flags |= txscript.ScriptVerifyCheckLockTimeVerify
	}
	if cs.Flags.Has(FlagBIP66) {
		flags |= txscript.ScriptVerifyDERSignatures
	}
	if cs.Flags.Has(FlagBIP68) && cs.Flags.Has(FlagBIP112) {
		flags |= txscript.ScriptVerifyCheckSequenceVerify
	}
	if cs.Flags.Has(FlagBIP141) {
		flags |= txscript.ScriptVerifyWitness
	}
	if cs.Flags.Has(FlagBIP341) {
		flags |= txscript.ScriptVerifyTaproot
	}

	flags |= txscript.ScriptVerifyStrictEncoding
	flags |= txscript.ScriptVerifyLowS
	flags |= txscript.ScriptVerifyMinimalData
	flags |= txscript.ScriptVerifySigPushOnly
	flags |= txscript.ScriptVerifyCleanStack
	flags |= txscript.ScriptVerifyNullFail
	flags |= txscript.ScriptVerifyMinimalIf

	return flags
}

// CalcPastMedianTime exposes medianTimePast for callers (locktime
// evaluation) that only have a node, not a full ChainState, at hand.
func CalcPastMedianTime(node *BlockNode) int64 {
	return medianTimePast(node)
}

// HeaderToNode builds the BlockNode chain-state derivation needs from a
// wire header and its parent, computing the header's individual work
// contribution from its difficulty bits.
func HeaderToNode(header *wire.BlockHeader, height int32, parent *BlockNode) *BlockNode {
	return &BlockNode{
		Parent:    parent,
		Hash:      header.BlockHash(),
		Height:    height,
		Version:   header.Version,
		Bits:      header.Bits,
		Timestamp: int64(header.Timestamp),
		Work:      calcWork(header.Bits),
	}
}
