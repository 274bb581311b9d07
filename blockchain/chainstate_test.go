// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thoughtledger/consensus/chaincfg"
	"github.com/thoughtledger/consensus/txscript"
)

func TestDeriveFlagsMainnetBeforeAnyActivation(t *testing.T) {
	flags := deriveFlags(0, &chaincfg.MainNetParams)
	assert.True(t, flags.Has(FlagBIP30), "BIP30 is active from genesis")
	assert.False(t, flags.Has(FlagBIP16))
	assert.False(t, flags.Has(FlagBIP34))
	assert.False(t, flags.Has(FlagBIP141))
	assert.False(t, flags.Has(FlagBIP341))
}

func TestDeriveFlagsMainnetAtEachActivationHeight(t *testing.T) {
	params := &chaincfg.MainNetParams

	assert.True(t, deriveFlags(params.BIP0016Height, params).Has(FlagBIP16))
	assert.True(t, deriveFlags(params.BIP0034Height, params).Has(FlagBIP34))
	assert.True(t, deriveFlags(params.BIP0066Height, params).Has(FlagBIP66))
	assert.True(t, deriveFlags(params.BIP0065Height, params).Has(FlagBIP65))
	assert.True(t, deriveFlags(int32(params.BIP0141Height), params).Has(FlagBIP141))
	assert.True(t, deriveFlags(int32(params.BIP0341Height), params).Has(FlagBIP341))
	assert.True(t, deriveFlags(int32(params.BIP0341Height), params).Has(FlagBIP342))

	assert.False(t, deriveFlags(params.BIP0034Height-1, params).Has(FlagBIP34))
}

func TestDeriveFlagsMainnetBIP30HasNoSuspensionWindow(t *testing.T) {
	params := &chaincfg.MainNetParams
	// Mainnet's deactivate and reactivate heights coincide at 227931: this
	// network carries no window where BIP30 is actually suspended.
	assert.True(t, deriveFlags(params.BIP30DeactivateHeight, params).Has(FlagBIP30))
}

func TestDeriveFlagsRegtestBIP30ActiveAtGenesis(t *testing.T) {
	flags := deriveFlags(0, &chaincfg.RegressionNetParams)
	assert.True(t, flags.Has(FlagBIP30))
}

func TestMinimumBlockVersionMainnet(t *testing.T) {
	params := &chaincfg.MainNetParams

	assert.EqualValues(t, 1, minimumBlockVersion(0, params))
	assert.EqualValues(t, 2, minimumBlockVersion(params.BIP0034Height, params))
	assert.EqualValues(t, 3, minimumBlockVersion(params.BIP0066Height, params))
	assert.EqualValues(t, 4, minimumBlockVersion(params.BIP0065Height, params))
}

func TestMedianTimePastSortsAncestorTimestamps(t *testing.T) {
	var node *BlockNode
	timestamps := []int64{5, 1, 4, 2, 3}
	for i, ts := range timestamps {
		node = &BlockNode{Parent: node, Height: int32(i), Timestamp: ts}
	}

	// Five ancestors (fewer than medianTimeBlocks): sorted [1,2,3,4,5],
	// median index 2 -> 3.
	assert.Equal(t, int64(3), medianTimePast(node))
}

func TestMedianTimePastWithNoAncestors(t *testing.T) {
	node := &BlockNode{Timestamp: 42}
	assert.Equal(t, int64(42), medianTimePast(node))
}

func TestChainStateScriptFlagsTranslatesActiveSoftForks(t *testing.T) {
	cs := ChainState{Flags: FlagBIP16 | FlagBIP65 | FlagBIP141 | FlagBIP341}
	flags := cs.ScriptFlags()

	assert.NotZero(t, flags&txscript.ScriptBip16)
	assert.NotZero(t, flags&txscript.ScriptVerifyCheckLockTimeVerify)
	assert.NotZero(t, flags&txscript.ScriptVerifyWitness)
	assert.NotZero(t, flags&txscript.ScriptVerifyTaproot)

	csEmpty := ChainState{}
	flagsEmpty := csEmpty.ScriptFlags()
	assert.Zero(t, flagsEmpty&txscript.ScriptBip16)
	assert.Zero(t, flagsEmpty&txscript.ScriptVerifyWitness)
}

func TestCalcChainStateGenesisHasHeightZero(t *testing.T) {
	cs := CalcChainState(nil, 0, &chaincfg.RegressionNetParams)
	assert.EqualValues(t, 0, cs.Height)
	assert.Equal(t, chaincfg.RegressionNetParams.PowLimitBits, cs.WorkRequired)
	assert.EqualValues(t, 0, cs.MedianTimePast)
}

func TestCalcChainStateIncrementsHeightFromParent(t *testing.T) {
	prev := &BlockNode{Height: 41, Bits: chaincfg.RegressionNetParams.PowLimitBits, Timestamp: 1000}
	cs := CalcChainState(prev, prev.Timestamp+1, &chaincfg.RegressionNetParams)
	assert.EqualValues(t, 42, cs.Height)
}
