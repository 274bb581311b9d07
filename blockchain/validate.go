// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"

	"github.com/thoughtledger/consensus/txscript"
	"github.com/thoughtledger/consensus/util"
	"github.com/thoughtledger/consensus/wire"
)

// MaxSatoshi is the maximum number of satoshis that will ever exist, used
// to bound individual output values and cumulative transaction totals.
const MaxSatoshi = 21_000_000 * util.SatoshiPerBitcoin

// Sequence lock-time relative-locktime bit layout, per BIP0068.
const (
	sequenceLockTimeDisabled    = 1 << 31
	sequenceLockTimeIsSeconds   = 1 << 22
	sequenceLockTimeMask        = 0x0000ffff
	sequenceLockTimeGranularity = 9 // 512-second units, as a left-shift
)

// SequenceLock is the earliest height and median time past at which every
// relative-locktime-bearing input of a transaction is spendable.
type SequenceLock struct {
	Seconds int64
	Height  int32
}

// CheckTransactionSanity performs the context-free structural checks on a
// transaction: the ones that do not depend on chain height, other
// transactions, or previous output lookups. These apply identically to a
// transaction considered for the mempool and one embedded in a block.
func CheckTransactionSanity(tx *wire.MsgTx) error {
	if len(tx.TxIn) == 0 {
		return ruleError(ErrNoInputs, "transaction has no inputs")
	}
	if len(tx.TxOut) == 0 {
		return ruleError(ErrNoOutputs, "transaction has no outputs")
	}

	if tx.SerializeSizeStripped() > wire.MaxBlockWeight/4 {
		return ruleError(ErrBadBlockWeight, "transaction exceeds maximum size")
	}

	var totalOut int64
	for _, txOut := range tx.TxOut {
		if txOut.Value < 0 {
			return ruleError(ErrBadTxOutValue, "transaction output has negative value")
		}
		if txOut.Value > MaxSatoshi {
			return ruleError(ErrBadTxOutValue, "transaction output value exceeds max allowed")
		}
		totalOut += txOut.Value
		if totalOut > MaxSatoshi {
			return ruleError(ErrBadTxOutValue, "total transaction output value exceeds max allowed")
		}
	}

	seen := make(map[wire.OutPoint]struct{}, len(tx.TxIn))
	for _, txIn := range tx.TxIn {
		if _, dup := seen[txIn.PreviousOutPoint]; dup {
			return ruleError(ErrDuplicateTxInputs, "transaction spends the same output more than once")
		}
		seen[txIn.PreviousOutPoint] = struct{}{}
	}

	if tx.IsCoinBase() {
		slen := len(tx.TxIn[0].SignatureScript)
		if slen < 2 || slen > 100 {
			return ruleError(ErrBadCoinbaseScriptLen,
				fmt.Sprintf("coinbase script length %d is out of range [2, 100]", slen))
		}
	} else {
		for _, txIn := range tx.TxIn {
			if txIn.PreviousOutPoint.IsNull() {
				return ruleError(ErrBadTxInput, "non-coinbase transaction has a null previous outpoint")
			}
		}
	}

	return nil
}

// IsFinalizedTransaction reports whether tx may be included in a block at
// the given height and block time: a transaction is final if its locktime
// is zero, below the locktime threshold floor measured in block height
// rather than unix time and the current height already exceeds it, or
// above that floor and the block time already exceeds it, or if every
// input's sequence number opts out of locktime entirely.
func IsFinalizedTransaction(tx *wire.MsgTx, blockHeight int32, blockTime int64) bool {
	if tx.LockTime == 0 {
		return true
	}

	const lockTimeThreshold = 500000000
	blockTimeOrHeight := int64(blockHeight)
	if tx.LockTime >= lockTimeThreshold {
		blockTimeOrHeight = blockTime
	}
	if int64(tx.LockTime) < blockTimeOrHeight {
		return true
	}

	for _, txIn := range tx.TxIn {
		if txIn.Sequence != wire.MaxTxInSequenceNum {
			return false
		}
	}
	return true
}

// CalcSequenceLock computes the earliest height and median time past at
// which tx, given the chain state its inputs are being evaluated against
// and the height/MTP each input's previous output was itself confirmed at,
// becomes spendable under BIP0068/BIP0112. Inputs with the locktime-disable
// bit set, or when BIP68 is not yet active, do not contribute a
// constraint. Version-1 transactions never carry relative locktimes.
func CalcSequenceLock(tx *wire.MsgTx, inputHeights []int32, inputMTPs []int64, flags Flags) SequenceLock {
	lock := SequenceLock{Seconds: -1, Height: -1}
	if tx.Version < 2 || !flags.Has(FlagBIP68) {
		return lock
	}

	for i, txIn := range tx.TxIn {
		if txIn.Sequence&sequenceLockTimeDisabled != 0 {
			continue
		}

		relative := int64(txIn.Sequence & sequenceLockTimeMask)
		if txIn.Sequence&sequenceLockTimeIsSeconds != 0 {
			seconds := inputMTPs[i] + (relative << sequenceLockTimeGranularity) - 1
			if seconds > lock.Seconds {
				lock.Seconds = seconds
			}
		} else {
			height := inputHeights[i] + int32(relative) - 1
			if height > lock.Height {
				lock.Height = height
			}
		}
	}

	return lock
}

// SequenceLockActive reports whether lock, measured against the given
// block height and median time past, has matured: every relative locktime
// it expresses has been satisfied.
func SequenceLockActive(lock SequenceLock, blockHeight int32, medianTimePast int64) bool {
	return lock.Seconds < medianTimePast && lock.Height < blockHeight
}

// CheckInputsAccounting verifies value conservation for a non-coinbase
// transaction given its previous outputs (aligned by input index): total
// input value must cover total output value, and every value must stay
// within the valid satoshi range. It returns the transaction's fee.
func CheckInputsAccounting(tx *wire.MsgTx, prevOuts []*wire.TxOut) (int64, error) {
	var totalIn int64
	for i, prevOut := range prevOuts {
		if prevOut.Value < 0 || prevOut.Value > MaxSatoshi {
			return 0, ruleError(ErrBadTxOutValue,
				fmt.Sprintf("input %d references an out-of-range output value", i))
		}
		totalIn += prevOut.Value
		if totalIn > MaxSatoshi {
			return 0, ruleError(ErrBadTxOutValue, "total input value exceeds max allowed")
		}
	}

	var totalOut int64
	for _, txOut := range tx.TxOut {
		totalOut += txOut.Value
	}

	if totalIn < totalOut {
		return 0, ruleError(ErrSpendTooHigh,
			fmt.Sprintf("total input value %d is less than total output value %d",
				totalIn, totalOut))
	}

	return totalIn - totalOut, nil
}

// sigOpCostWitnessScale is the weight a legacy sigop is charged relative to
// a witness-program sigop, per BIP0141: legacy scripts are four times as
// expensive to account for their larger historical data footprint.
const sigOpCostWitnessScale = 4

// CalcTransactionSigOpCost computes a non-coinbase transaction's
// accounting-precise sigop cost: legacy signature operations counted
// precisely via P2SH redeem script inspection and scaled by
// sigOpCostWitnessScale, plus witness-program sigops counted at their
// natural weight.
func CalcTransactionSigOpCost(tx *wire.MsgTx, prevOuts []*wire.TxOut, flags txscript.ScriptFlags) int {
	bip16 := flags&txscript.ScriptBip16 != 0
	witnessActive := flags&txscript.ScriptVerifyWitness != 0

	cost := 0
	for i, txIn := range tx.TxIn {
		prevOut := prevOuts[i]
		cost += sigOpCostWitnessScale * txscript.GetPreciseSigOpCount(
			txIn.SignatureScript, prevOut.PkScript, bip16)

		if witnessActive {
			cost += txscript.GetWitnessSigOpCount(
				txIn.SignatureScript, prevOut.PkScript, txIn.Witness)
		}
	}
	return cost
}

// CheckTransactionSigOpCost verifies that tx's sigop cost does not exceed
// the consensus maximum per transaction.
func CheckTransactionSigOpCost(tx *wire.MsgTx, prevOuts []*wire.TxOut, flags txscript.ScriptFlags) error {
	const maxSigOpCost = 80000

	cost := CalcTransactionSigOpCost(tx, prevOuts, flags)
	if cost > maxSigOpCost {
		return ruleError(ErrTooManySigOps,
			fmt.Sprintf("transaction sigop cost %d exceeds maximum %d", cost, maxSigOpCost))
	}
	return nil
}
