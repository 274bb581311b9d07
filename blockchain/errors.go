// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import "fmt"

// ErrorCode identifies a kind of error returned by the chain state,
// transaction, and block validation routines in this package.
type ErrorCode int

const (
	// ErrDuplicateBlock indicates a block with the same hash already
	// exists.
	ErrDuplicateBlock ErrorCode = iota

	// ErrMissingParent indicates that the block's previous block hash
	// does not match any known block.
	ErrMissingParent

	// ErrBadMerkleRoot indicates that the block's computed merkle root
	// does not match the one recorded in its header.
	ErrBadMerkleRoot

	// ErrDuplicateTx indicates the block's transaction list duplicates
	// txids in a way that leaves the merkle root unchanged (CVE-2012-2459
	// merkle tree malleability).
	ErrDuplicateTx

	// ErrBadCoinbaseHeight indicates the BIP0034 coinbase height
	// commitment is missing or does not match the block's actual height.
	ErrBadCoinbaseHeight

	// ErrBadWitnessCommitment indicates the coinbase's BIP0141 witness
	// commitment output is missing or does not match the block's
	// witness root.
	ErrBadWitnessCommitment

	// ErrNoTransactions indicates a block contains no transactions.
	ErrNoTransactions

	// ErrFirstTxNotCoinbase indicates the first transaction in a block
	// is not a coinbase transaction.
	ErrFirstTxNotCoinbase

	// ErrMultipleCoinbases indicates a block contains more than one
	// coinbase transaction.
	ErrMultipleCoinbases

	// ErrBadBlockWeight indicates the block's serialized weight exceeds
	// the consensus maximum.
	ErrBadBlockWeight

	// ErrBadBlockSigOps indicates the block's cumulative legacy sigop
	// count exceeds the consensus maximum.
	ErrBadBlockSigOps

	// ErrBadCoinbaseScriptLen indicates the coinbase script length
	// is outside the permitted 2-100 byte range.
	ErrBadCoinbaseScriptLen

	// ErrUnexpectedWitness indicates a transaction carries witness data
	// while the witness soft fork is not active in the block's context.
	ErrUnexpectedWitness

	// ErrBadProofOfWork indicates the block's hash does not satisfy the
	// difficulty target recorded in its header.
	ErrBadProofOfWork

	// ErrBadDifficultyBits indicates the block's bits field does not
	// match the value computed by the retargeting algorithm.
	ErrBadDifficultyBits

	// ErrTimeTooOld indicates the block's timestamp is not after the
	// median time of the preceding 11 blocks.
	ErrTimeTooOld

	// ErrTimeTooNew indicates the block's timestamp is too far in the
	// future relative to the validation clock.
	ErrTimeTooNew

	// ErrBadBlockVersion indicates the block's version is below the
	// minimum required by previously activated soft forks.
	ErrBadBlockVersion

	// ErrCheckpointMismatch indicates a block conflicts with a hardcoded
	// checkpoint at the same height.
	ErrCheckpointMismatch

	// ErrNoInputs indicates a transaction has no inputs.
	ErrNoInputs

	// ErrNoOutputs indicates a transaction has no outputs.
	ErrNoOutputs

	// ErrDuplicateTxInputs indicates a transaction spends the same
	// previous output more than once.
	ErrDuplicateTxInputs

	// ErrBadTxOutValue indicates a transaction output value is negative
	// or exceeds the maximum supply.
	ErrBadTxOutValue

	// ErrBadTxInput indicates a non-coinbase transaction references the
	// null previous outpoint, or a coinbase does not.
	ErrBadTxInput

	// ErrMissingTxOut indicates a referenced previous output could not
	// be fetched.
	ErrMissingTxOut

	// ErrSpentTxOut indicates a referenced previous output has already
	// been spent.
	ErrSpentTxOut

	// ErrImmatureSpend indicates an attempt to spend a coinbase output
	// before it has reached the required maturity.
	ErrImmatureSpend

	// ErrSpendTooHigh indicates a transaction's outputs exceed the sum
	// of its inputs.
	ErrSpendTooHigh

	// ErrBadFees indicates the cumulative transaction fees plus subsidy
	// exceed the maximum allowed value for a coinbase.
	ErrBadFees

	// ErrTooManySigOps indicates the precise sigop count for a
	// transaction, or cumulatively for a block, exceeds the consensus
	// maximum.
	ErrTooManySigOps

	// ErrUnfinalizedTx indicates a transaction is not yet final relative
	// to the current height and median time past.
	ErrUnfinalizedTx

	// ErrPrematureSpend indicates an input's relative-locktime sequence
	// requirement is not yet satisfied.
	ErrPrematureSpend

	// ErrScriptValidation indicates a transaction input's scriptSig and
	// witness failed to satisfy its corresponding previous output
	// script.
	ErrScriptValidation
)

var errorCodeStrings = map[ErrorCode]string{
	ErrDuplicateBlock:          "ErrDuplicateBlock",
	ErrMissingParent:           "ErrMissingParent",
	ErrBadMerkleRoot:           "ErrBadMerkleRoot",
	ErrDuplicateTx:             "ErrDuplicateTx",
	ErrBadCoinbaseHeight:       "ErrBadCoinbaseHeight",
	ErrBadWitnessCommitment:    "ErrBadWitnessCommitment",
	ErrNoTransactions:          "ErrNoTransactions",
	ErrFirstTxNotCoinbase:      "ErrFirstTxNotCoinbase",
	ErrMultipleCoinbases:       "ErrMultipleCoinbases",
	ErrBadBlockWeight:          "ErrBadBlockWeight",
	ErrBadBlockSigOps:          "ErrBadBlockSigOps",
	ErrBadCoinbaseScriptLen:    "ErrBadCoinbaseScriptLen",
	ErrUnexpectedWitness:       "ErrUnexpectedWitness",
	ErrBadProofOfWork:          "ErrBadProofOfWork",
	ErrBadDifficultyBits:       "ErrBadDifficultyBits",
	ErrTimeTooOld:              "ErrTimeTooOld",
	ErrTimeTooNew:              "ErrTimeTooNew",
	ErrBadBlockVersion:         "ErrBadBlockVersion",
	ErrCheckpointMismatch:      "ErrCheckpointMismatch",
	ErrNoInputs:                "ErrNoInputs",
	ErrNoOutputs:               "ErrNoOutputs",
	ErrDuplicateTxInputs:       "ErrDuplicateTxInputs",
	ErrBadTxOutValue:           "ErrBadTxOutValue",
	ErrBadTxInput:              "ErrBadTxInput",
	ErrMissingTxOut:            "ErrMissingTxOut",
	ErrSpentTxOut:              "ErrSpentTxOut",
	ErrImmatureSpend:           "ErrImmatureSpend",
	ErrSpendTooHigh:            "ErrSpendTooHigh",
	ErrBadFees:                 "ErrBadFees",
	ErrTooManySigOps:           "ErrTooManySigOps",
	ErrUnfinalizedTx:           "ErrUnfinalizedTx",
	ErrPrematureSpend:          "ErrPrematureSpend",
	ErrScriptValidation:        "ErrScriptValidation",
}

// String returns the human-readable name of the error code.
func (e ErrorCode) String() string {
	if s, ok := errorCodeStrings[e]; ok {
		return s
	}
	return fmt.Sprintf("unknown ErrorCode (%d)", int(e))
}

// RuleError identifies a rule violation encountered while validating a
// block, transaction, or chain state transition. It always carries an
// ErrorCode so callers can branch on the kind of failure rather than
// string-matching the description.
type RuleError struct {
	ErrorCode   ErrorCode
	Description string
}

// Error satisfies the error interface.
func (e RuleError) Error() string {
	return e.Description
}

func ruleError(c ErrorCode, desc string) RuleError {
	return RuleError{ErrorCode: c, Description: desc}
}
