// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoughtledger/consensus/chaincfg"
)

func TestCalcWorkRequiredGenesisUsesPowLimit(t *testing.T) {
	params := &chaincfg.MainNetParams
	got := calcWorkRequired(nil, 0, params)
	assert.Equal(t, params.PowLimitBits, got)
}

func TestCalcWorkRequiredRegtestNeverAdjusts(t *testing.T) {
	params := &chaincfg.RegressionNetParams
	prev := &BlockNode{Height: 1000, Bits: 0x207fffff, Timestamp: 1000}
	got := calcWorkRequired(prev, prev.Timestamp+1, params)
	assert.Equal(t, prev.Bits, got)
}

func TestCalcWorkRequiredMainnetHoldsBetweenRetargetBoundaries(t *testing.T) {
	params := &chaincfg.MainNetParams
	interval := retargetingInterval(params)
	require.Greater(t, interval, int32(1))

	prev := &BlockNode{Height: interval + 5, Bits: 0x1d00ffff, Timestamp: 1000}
	got := calcWorkRequired(prev, prev.Timestamp+600, params)
	assert.Equal(t, prev.Bits, got, "height not on a retarget boundary must reuse the previous bits")
}

func TestCalcWorkRequiredTestnetAllowsMinDifficultyAfterGap(t *testing.T) {
	params := &chaincfg.TestNet3Params
	interval := retargetingInterval(params)

	prev := &BlockNode{Height: interval + 5, Bits: 0x1a2b3c4d, Timestamp: 1000}
	maxGap := int64(params.MinDiffReductionTime.Seconds())

	withinGap := calcWorkRequired(prev, prev.Timestamp+maxGap, params)
	assert.Equal(t, prev.Bits, withinGap, "a block within the gap keeps the previous difficulty")

	afterGap := calcWorkRequired(prev, prev.Timestamp+maxGap+1, params)
	assert.Equal(t, params.PowLimitBits, afterGap, "a block after the gap may use minimum difficulty")
}

func TestReducedDifficultyScansPastMinimumDifficultyChain(t *testing.T) {
	params := &chaincfg.TestNet3Params
	interval := retargetingInterval(params)

	// A real retarget-boundary block establishing a non-minimum target,
	// followed by a run of minimum-difficulty blocks extending it.
	boundary := &BlockNode{Height: interval, Bits: 0x1a2b3c4d, Timestamp: 1000}
	chain := boundary
	for i := int32(1); i <= 3; i++ {
		chain = &BlockNode{
			Parent:    chain,
			Height:    boundary.Height + i,
			Bits:      params.PowLimitBits,
			Timestamp: boundary.Timestamp + int64(i)*600,
		}
	}

	got := reducedDifficulty(chain, chain.Timestamp+1, params)
	assert.Equal(t, boundary.Bits, got, "scan must walk back to the last non-minimum-difficulty block")
}

func TestRetargetClampsToAdjustmentFactor(t *testing.T) {
	params := &chaincfg.MainNetParams
	interval := retargetingInterval(params)

	first := &BlockNode{Height: 0, Bits: 0x1d00ffff, Timestamp: 1000}
	node := first
	for i := int32(1); i < interval; i++ {
		node = &BlockNode{Parent: node, Height: i, Bits: 0x1d00ffff, Timestamp: 1000}
	}
	// Actual timespan is near zero: far below the minimum, so it must clamp
	// to targetTimespan/RetargetAdjustmentFactor, sharply increasing difficulty
	// (decreasing the numeric target).
	last := &BlockNode{Parent: node, Height: interval, Bits: 0x1d00ffff, Timestamp: 1000 + 1}

	got := retarget(last, params, interval)
	gotTarget := chaincfg.CompactToBig(got)
	oldTarget := chaincfg.CompactToBig(0x1d00ffff)

	assert.True(t, gotTarget.Cmp(oldTarget) < 0, "a near-zero actual timespan must tighten the target")
}
