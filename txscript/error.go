// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

// ErrorCode identifies a kind of script error.
type ErrorCode int

// These constants are used to identify a specific ScriptError.
const (
	// ErrInternal is returned if a script engine internal invariant is
	// violated in a way that indicates a bug in this package rather than
	// an invalid script or transaction.
	ErrInternal ErrorCode = iota

	// -- failures related to script parsing --

	ErrInvalidIndex
	ErrScriptTooBig
	ErrElementTooBig
	ErrMalformedPush
	ErrInvalidProgramCounter

	// -- failures related to parsed opcode execution --

	ErrDisabledOpcode
	ErrReservedOpcode
	ErrUnbalancedConditional
	ErrEarlyReturn
	ErrEmptyStack
	ErrEvalFalse
	ErrScriptUnfinished
	ErrInvalidStackOperation
	ErrStackOverflow
	ErrCleanStack

	// -- failures specific to particular opcodes --

	ErrVerify
	ErrEqualVerify
	ErrNumEqualVerify
	ErrCheckSigVerify
	ErrCheckMultiSigVerify
	ErrNumberTooBig
	ErrMinimalData
	ErrMinimalIf
	ErrInvalidPubKeyCount
	ErrInvalidSignatureCount
	ErrSigNullDummy
	ErrTooManyOperations
	ErrNegativeLockTime
	ErrUnsatisfiedLockTime

	// -- failures related to signature and pubkey encoding --

	ErrSigTooShort
	ErrSigTooLong
	ErrSigInvalidSeqID
	ErrSigInvalidDataLen
	ErrSigMissingSTypeID
	ErrSigMissingSLen
	ErrSigInvalidSLen
	ErrSigInvalidRIntID
	ErrSigZeroRLen
	ErrSigNegativeR
	ErrSigTooMuchRPadding
	ErrSigInvalidSIntID
	ErrSigZeroSLen
	ErrSigNegativeS
	ErrSigTooMuchSPadding
	ErrSigHighS
	ErrNotPushOnly
	ErrPubKeyType
	ErrInvalidSigHashType
	ErrNullFail
	ErrDiscourageUpgradableNOPs
	ErrDiscourageUpgradableWitnessProgram
	ErrDiscourageUpgradablePubKeyType
	ErrDiscourageOpSuccess

	// -- witness program / taproot failures --

	ErrWitnessProgramEmpty
	ErrWitnessProgramMismatch
	ErrWitnessProgramWrongLength
	ErrWitnessUnexpected
	ErrWitnessPubKeyType
	ErrWitnessMalleated
	ErrWitnessMalleatedP2SH
	ErrTaprootControlBlockInvalidLength
	ErrTaprootWitnessProgramMismatch
	ErrTaprootAnnexInvalid
	ErrTaprootWrongControlSize
	ErrTaprootSigInvalid

	numErrorCodes
)

// errorCodeStrings is a map of ErrorCode values back to their constant names
// for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrInternal:                            "ErrInternal",
	ErrInvalidIndex:                        "ErrInvalidIndex",
	ErrScriptTooBig:                        "ErrScriptTooBig",
	ErrElementTooBig:                       "ErrElementTooBig",
	ErrMalformedPush:                       "ErrMalformedPush",
	ErrInvalidProgramCounter:               "ErrInvalidProgramCounter",
	ErrDisabledOpcode:                      "ErrDisabledOpcode",
	ErrReservedOpcode:                      "ErrReservedOpcode",
	ErrUnbalancedConditional:               "ErrUnbalancedConditional",
	ErrEarlyReturn:                         "ErrEarlyReturn",
	ErrEmptyStack:                          "ErrEmptyStack",
	ErrEvalFalse:                           "ErrEvalFalse",
	ErrScriptUnfinished:                    "ErrScriptUnfinished",
	ErrInvalidStackOperation:               "ErrInvalidStackOperation",
	ErrStackOverflow:                       "ErrStackOverflow",
	ErrCleanStack:                          "ErrCleanStack",
	ErrVerify:                              "ErrVerify",
	ErrEqualVerify:                         "ErrEqualVerify",
	ErrNumEqualVerify:                      "ErrNumEqualVerify",
	ErrCheckSigVerify:                      "ErrCheckSigVerify",
	ErrCheckMultiSigVerify:                 "ErrCheckMultiSigVerify",
	ErrNumberTooBig:                        "ErrNumberTooBig",
	ErrMinimalData:                         "ErrMinimalData",
	ErrMinimalIf:                           "ErrMinimalIf",
	ErrInvalidPubKeyCount:                  "ErrInvalidPubKeyCount",
	ErrInvalidSignatureCount:               "ErrInvalidSignatureCount",
	ErrSigNullDummy:                        "ErrSigNullDummy",
	ErrTooManyOperations:                   "ErrTooManyOperations",
	ErrNegativeLockTime:                    "ErrNegativeLockTime",
	ErrUnsatisfiedLockTime:                 "ErrUnsatisfiedLockTime",
	ErrSigTooShort:                         "ErrSigTooShort",
	ErrSigTooLong:                          "ErrSigTooLong",
	ErrSigInvalidSeqID:                     "ErrSigInvalidSeqID",
	ErrSigInvalidDataLen:                   "ErrSigInvalidDataLen",
	ErrSigMissingSTypeID:                   "ErrSigMissingSTypeID",
	ErrSigMissingSLen:                      "ErrSigMissingSLen",
	ErrSigInvalidSLen:                      "ErrSigInvalidSLen",
	ErrSigInvalidRIntID:                    "ErrSigInvalidRIntID",
	ErrSigZeroRLen:                         "ErrSigZeroRLen",
	ErrSigNegativeR:                        "ErrSigNegativeR",
	ErrSigTooMuchRPadding:                  "ErrSigTooMuchRPadding",
	ErrSigInvalidSIntID:                    "ErrSigInvalidSIntID",
	ErrSigZeroSLen:                         "ErrSigZeroSLen",
	ErrSigNegativeS:                        "ErrSigNegativeS",
	ErrSigTooMuchSPadding:                  "ErrSigTooMuchSPadding",
	ErrSigHighS:                            "ErrSigHighS",
	ErrNotPushOnly:                         "ErrNotPushOnly",
	ErrPubKeyType:                          "ErrPubKeyType",
	ErrInvalidSigHashType:                  "ErrInvalidSigHashType",
	ErrNullFail:                            "ErrNullFail",
	ErrDiscourageUpgradableNOPs:            "ErrDiscourageUpgradableNOPs",
	ErrDiscourageUpgradableWitnessProgram:  "ErrDiscourageUpgradableWitnessProgram",
	ErrDiscourageUpgradablePubKeyType:      "ErrDiscourageUpgradablePubKeyType",
	ErrDiscourageOpSuccess:                 "ErrDiscourageOpSuccess",
	ErrWitnessProgramEmpty:                 "ErrWitnessProgramEmpty",
	ErrWitnessProgramMismatch:              "ErrWitnessProgramMismatch",
	ErrWitnessProgramWrongLength:           "ErrWitnessProgramWrongLength",
	ErrWitnessUnexpected:                   "ErrWitnessUnexpected",
	ErrWitnessPubKeyType:                   "ErrWitnessPubKeyType",
	ErrWitnessMalleated:                    "ErrWitnessMalleated",
	ErrWitnessMalleatedP2SH:                "ErrWitnessMalleatedP2SH",
	ErrTaprootControlBlockInvalidLength:    "ErrTaprootControlBlockInvalidLength",
	ErrTaprootWitnessProgramMismatch:       "ErrTaprootWitnessProgramMismatch",
	ErrTaprootAnnexInvalid:                 "ErrTaprootAnnexInvalid",
	ErrTaprootWrongControlSize:             "ErrTaprootWrongControlSize",
	ErrTaprootSigInvalid:                   "ErrTaprootSigInvalid",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s, ok := errorCodeStrings[e]; ok {
		return s
	}
	return "Unknown ErrorCode"
}

// Error identifies a script-execution failure with a numeric code and
// descriptive message, grounded on the principle that every distinct
// consensus failure mode needs its own code rather than a shared generic one.
type Error struct {
	ErrorCode   ErrorCode
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// scriptError creates a script.Error given a set of arguments.
func scriptError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}

// IsErrorCode returns whether or not the provided error is a script error
// with the provided error code.
func IsErrorCode(err error, c ErrorCode) bool {
	serr, ok := err.(Error)
	return ok && serr.ErrorCode == c
}
