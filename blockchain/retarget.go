// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math/big"
	"time"

	"github.com/thoughtledger/consensus/chaincfg"
)

// oneLsh256 is 2^256, used to derive a block's individual work contribution
// from its difficulty target: work = 2^256 / (target+1).
var oneLsh256 = new(big.Int).Lsh(big.NewInt(1), 256)

// calcWork computes the proof-of-work a single block with the given
// difficulty bits contributes toward a chain's cumulative work.
func calcWork(bits uint32) *big.Int {
	target := chaincfg.CompactToBig(bits)
	if target.Sign() <= 0 {
		return big.NewInt(0)
	}
	denominator := new(big.Int).Add(target, big.NewInt(1))
	return new(big.Int).Div(oneLsh256, denominator)
}

// calcWorkRequired returns the proof-of-work target, in compact "bits"
// form, required of the block extending prevNode with the given candidate
// timestamp. Genesis has no preceding target to retarget from and simply
// uses the network's configured minimum-difficulty limit.
func calcWorkRequired(prevNode *BlockNode, newBlockTime int64, params *chaincfg.Params) uint32 {
	if prevNode == nil {
		return params.PowLimitBits
	}

	if params.NoDifficultyAdjustment {
		return prevNode.Bits
	}

	nextHeight := prevNode.Height + 1
	interval := retargetingInterval(params)

	if nextHeight%interval != 0 {
		if params.ReduceMinDifficulty {
			return reducedDifficulty(prevNode, newBlockTime, params)
		}
		return prevNode.Bits
	}

	return retarget(prevNode, params, interval)
}

// retargetingInterval is the number of blocks between each difficulty
// adjustment, derived from the network's target timespan and per-block
// spacing.
func retargetingInterval(params *chaincfg.Params) int32 {
	return int32(params.TargetTimespan / params.TargetTimePerBlock)
}

// reducedDifficulty implements testnet's "allow minimum difficulty block"
// rule: if more than twice the target spacing has elapsed between the
// candidate block's timestamp and the last block, the candidate may use
// the network's minimum difficulty; failing that, scan backward to the
// most recent block that isn't itself a minimum-difficulty block (or a
// retarget boundary) and reuse its bits.
func reducedDifficulty(prevNode *BlockNode, newBlockTime int64, params *chaincfg.Params) uint32 {
	maxGap := int64(params.MinDiffReductionTime / time.Second)
	if newBlockTime > prevNode.Timestamp+maxGap {
		return params.PowLimitBits
	}

	node := prevNode
	interval := retargetingInterval(params)
	for node.Parent != nil && node.Height%interval != 0 && node.Bits == params.PowLimitBits {
		node = node.Parent
	}
	return node.Bits
}

// retarget computes a new difficulty target at a retarget boundary: the
// existing target is scaled by the ratio of the actual timespan of the
// preceding interval to the network's configured target timespan, clamped
// to a factor of RetargetAdjustmentFactor in either direction, and capped
// at the network's proof-of-work limit.
func retarget(prevNode *BlockNode, params *chaincfg.Params, interval int32) uint32 {
	firstNode := prevNode
	for i := int32(0); i < interval-1 && firstNode.Parent != nil; i++ {
		firstNode = firstNode.Parent
	}

	actualTimespan := prevNode.Timestamp - firstNode.Timestamp
	targetTimespan := int64(params.TargetTimespan / time.Second)

	minTimespan := targetTimespan / params.RetargetAdjustmentFactor
	maxTimespan := targetTimespan * params.RetargetAdjustmentFactor
	switch {
	case actualTimespan < minTimespan:
		actualTimespan = minTimespan
	case actualTimespan > maxTimespan:
		actualTimespan = maxTimespan
	}

	oldTarget := chaincfg.CompactToBig(prevNode.Bits)
	newTarget := new(big.Int).Mul(oldTarget, big.NewInt(actualTimespan))
	newTarget.Div(newTarget, big.NewInt(targetTimespan))

	if newTarget.Cmp(params.PowLimit) > 0 {
		newTarget.Set(params.PowLimit)
	}

	return chaincfg.BigToCompact(newTarget)
}
