// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"strings"

	"github.com/thoughtledger/consensus/wire"
)

// countSigOpsV0 returns the number of signature operations in the provided
// script up to the point of an unparsable opcode. Since it is primarily
// used for budget accounting during script and block validation, an
// unparsable script is treated the same as a script that simply terminates
// at the point of the failure rather than surfacing a separate error.
//
// OP_CHECKSIG and OP_CHECKSIGVERIFY each count as one signature operation.
// OP_CHECKMULTISIG(VERIFY) count as 20 sig ops unless precededByPushedData
// is true and the immediately preceding opcode pushed a small integer, in
// which case that integer is used instead. This mirrors the historical
// accommodation made for scripts where the author nailed down the exact
// pubkey count, which predates the widespread use of OP_CHECKMULTISIG's
// less precise worst-case accounting.
func countSigOpsV0(script []byte, precededByPushedData bool) int {
	numSigOps := 0
	prevOp := byte(OP_INVALIDOPCODE)
	tokenizer := MakeScriptTokenizer(script)
	for tokenizer.Next() {
		switch tokenizer.Opcode() {
		case OP_CHECKSIG, OP_CHECKSIGVERIFY:
			numSigOps++

		case OP_CHECKMULTISIG, OP_CHECKMULTISIGVERIFY:
			if precededByPushedData && isSmallInt(prevOp) {
				numSigOps += asSmallInt(prevOp)
			} else {
				numSigOps += MaxPubKeysPerMultiSig
			}
		}

		prevOp = tokenizer.Opcode()
	}
	return numSigOps
}

// GetSigOpCount returns the number of signature operations for all
// transaction input and output scripts in the provided script. Note that
// this uses the quicker, but imprecise, signature operation counting
// mechanism since that is what has historically been used for the
// consensus rules.
func GetSigOpCount(script []byte) int {
	return countSigOpsV0(script, false)
}

// GetPreciseSigOpCount returns the number of signature operations in
// scriptPubKey, using scriptSig to find the precise count of
// OP_CHECKMULTISIG(VERIFY) operations when pkScript is a P2SH script.
func GetPreciseSigOpCount(scriptSig, scriptPubKey []byte, bip16 bool) int {
	if bip16 && isScriptHashScript(scriptPubKey) {
		if len(scriptSig) == 0 || !IsPushOnlyScript(scriptSig) {
			return 0
		}

		redeemScript := finalOpcodeData(scriptSig)
		if redeemScript == nil {
			return 0
		}
		return countSigOpsV0(redeemScript, true)
	}

	return countSigOpsV0(scriptPubKey, true)
}

// GetWitnessSigOpCount returns the number of signature operations charged
// against a single input's witness-program spend, per BIP0141: a native
// P2WPKH or P2WSH output counted directly from scriptPubKey, or from the
// redeem script when scriptSig reveals a P2SH-wrapped witness program.
// Legacy (non-witness) inputs and taproot inputs contribute zero, since
// taproot sigops are charged against the tapscript budget instead.
func GetWitnessSigOpCount(scriptSig, scriptPubKey []byte, witness wire.TxWitness) int {
	if prog, ok := extractWitnessProgram(scriptPubKey); ok {
		return witnessProgramSigOps(prog, witness)
	}

	if isScriptHashScript(scriptPubKey) && IsPushOnlyScript(scriptSig) {
		redeemScript := finalOpcodeData(scriptSig)
		if prog, ok := extractWitnessProgram(redeemScript); ok {
			return witnessProgramSigOps(prog, witness)
		}
	}

	return 0
}

// witnessProgramSigOps counts the sigops a version 0 witness program's
// execution will perform: one for a P2WPKH program's implicit OP_CHECKSIG,
// or a precise count of the witness script for P2WSH. Witness versions
// other than 0 (including taproot) are not counted here.
func witnessProgramSigOps(prog witnessProgram, witness wire.TxWitness) int {
	switch {
	case prog.version == 0 && len(prog.program) == 20:
		return 1

	case prog.version == 0 && len(prog.program) == 32 && len(witness) > 0:
		witnessScript := witness[len(witness)-1]
		return countSigOpsV0(witnessScript, true)

	default:
		return 0
	}
}

// DisasmString formats a disassembled script for one line printing. When the
// script fails to parse, the returned string will contain the disassembled
// script up to the point the failure occurred along with the string
// '[error]' appended, as well as the error that caused the failure.
func DisasmString(script []byte) (string, error) {
	var disbuf strings.Builder
	tokenizer := MakeScriptTokenizer(script)
	first := true
	for tokenizer.Next() {
		if !first {
			disbuf.WriteByte(' ')
		}
		disasmOpcode(&disbuf, tokenizer.op, tokenizer.Data(), true)
		first = false
	}
	if tokenizer.Err() != nil {
		if !first {
			disbuf.WriteByte(' ')
		}
		disbuf.WriteString("[error]")
		return disbuf.String(), tokenizer.Err()
	}
	return disbuf.String(), nil
}
