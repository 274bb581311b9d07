// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"fmt"

	"github.com/thoughtledger/consensus/chainhash"
	"github.com/thoughtledger/consensus/thtec"
	"github.com/thoughtledger/consensus/wire"
)

// witnessProgram describes the version and program extracted from a
// witness program public key script, as introduced by BIP0141.
type witnessProgram struct {
	version int
	program []byte
}

// extractWitnessProgram returns the version and program of the passed
// script if it is a witness program, ok is false otherwise. A witness
// program is OP_0 through OP_16 followed by a single data push of between 2
// and 40 bytes.
func extractWitnessProgram(script []byte) (witnessProgram, bool) {
	if len(script) < 4 || len(script) > 42 {
		return witnessProgram{}, false
	}
	if script[0] != OP_0 && (script[0] < OP_1 || script[0] > OP_16) {
		return witnessProgram{}, false
	}

	version := 0
	if script[0] != OP_0 {
		version = asSmallInt(script[0])
	}

	tokenizer := MakeScriptTokenizer(script[1:])
	if !tokenizer.Next() || !tokenizer.Done() {
		return witnessProgram{}, false
	}
	data := tokenizer.Data()
	if len(data) < 2 || len(data) > 40 {
		return witnessProgram{}, false
	}

	return witnessProgram{version: version, program: data}, true
}

// taprootLeafVersion is the leaf version used for the initial version of
// tapscript as defined by BIP0342.
const taprootLeafVersion = 0xc0

// taprootAnnexTag marks the final witness stack item as an annex (to be
// committed to the sighash but otherwise ignored by script validation) when
// its first byte matches this value, per BIP0341.
const taprootAnnexTag = 0x50

// controlBlockBaseSize is the fixed-size portion of a taproot control
// block: the leaf version/parity byte followed by the 32-byte internal key.
const controlBlockBaseSize = 33

// controlBlockNodeSize is the size of a single merkle branch hash within a
// taproot control block.
const controlBlockNodeSize = 32

// maxTaprootControlBlockSize bounds the control block to a merkle proof of
// at most 128 levels, per BIP0341.
const maxTaprootControlBlockSize = controlBlockBaseSize + controlBlockNodeSize*128

// verifyTaprootLeafCommitment walks the merkle path carried in the control
// block, hashing the tapscript into a leaf commitment and then folding in
// each branch node, and checks the resulting root tweaks the control
// block's internal key into the output key taken from the witness program.
// On success it returns the tapleaf hash to commit to the script-path
// sighash and whether the leaf version is one this engine knows how to
// execute; an unrecognized leaf version is a valid commitment that scripts
// still anyone-can-spend under BIP0342's leaf-version upgrade mechanism.
func verifyTaprootLeafCommitment(controlBlock, tapscript, outputProgram []byte) (leafHash chainhash.Hash, knownLeafVersion bool, err error) {
	if len(controlBlock) < controlBlockBaseSize ||
		len(controlBlock) > maxTaprootControlBlockSize ||
		(len(controlBlock)-controlBlockBaseSize)%controlBlockNodeSize != 0 {

		return chainhash.Hash{}, false, scriptError(ErrTaprootControlBlockInvalidLength,
			fmt.Sprintf("control block has invalid size %d", len(controlBlock)))
	}

	leafVersion := controlBlock[0] &^ 0x01
	parityBit := controlBlock[0] & 0x01

	internalKeyBytes := controlBlock[1:33]
	internalKey, err := thtec.ParseXOnlyPubKey(internalKeyBytes)
	if err != nil {
		return chainhash.Hash{}, false, scriptError(ErrTaprootSigInvalid,
			"control block internal key does not lift to a valid point")
	}

	leafHashPtr := chainhash.TaggedHash(
		chainhash.TagTapLeaf, []byte{leafVersion}, serializeTapscript(tapscript),
	)

	branch := *leafHashPtr
	path := controlBlock[controlBlockBaseSize:]
	for len(path) > 0 {
		node := path[:controlBlockNodeSize]
		path = path[controlBlockNodeSize:]

		if bytes.Compare(branch[:], node) < 0 {
			branch = *chainhash.TaggedHash(chainhash.TagTapBranch, branch[:], node)
		} else {
			branch = *chainhash.TaggedHash(chainhash.TagTapBranch, node, branch[:])
		}
	}

	tweak := chainhash.TaggedHash(chainhash.TagTapTweak, internalKeyBytes, branch[:])
	outputKey, outputParity, err := thtec.TweakPubKey(internalKey, *tweak)
	if err != nil {
		return chainhash.Hash{}, false, err
	}

	computedProgram := thtec.XOnlyBytes(outputKey)
	if !bytes.Equal(computedProgram[:], outputProgram) {
		return chainhash.Hash{}, false, scriptError(ErrTaprootWitnessProgramMismatch,
			"control block merkle proof does not match taproot output key")
	}

	expectedParityBit := byte(0)
	if outputParity {
		expectedParityBit = 1
	}
	if parityBit != expectedParityBit {
		return chainhash.Hash{}, false, scriptError(ErrTaprootWitnessProgramMismatch,
			"control block parity bit does not match taproot output key")
	}

	return *leafHashPtr, leafVersion == taprootLeafVersion, nil
}

// serializeTapscript prefixes the tapscript with its compact-size length,
// the form committed to by the tapleaf hash.
func serializeTapscript(script []byte) []byte {
	var buf bytes.Buffer
	_ = wire.WriteVarInt(&buf, uint64(len(script)))
	buf.Write(script)
	return buf.Bytes()
}

// applyWitnessProgram configures vm to execute the given witness program
// against the supplied witness stack, dispatching to the v0 (segwit) or v1
// (taproot) rules. It is called for both native witness programs and
// witness programs nested inside a P2SH redeem script.
func (vm *Engine) applyWitnessProgram(prog witnessProgram, witness wire.TxWitness) error {
	switch prog.version {
	case 0:
		return vm.applySegwitV0Program(prog.program, witness)

	case 1:
		if !vm.hasFlag(ScriptVerifyTaproot) {
			return nil
		}
		return vm.applyTaprootProgram(prog.program, witness)

	default:
		if vm.hasFlag(ScriptVerifyDiscourageUpgradeableWitnessProgram) {
			return scriptError(ErrDiscourageUpgradableWitnessProgram,
				fmt.Sprintf("new witness program versions are non-standard: version %d",
					prog.version))
		}
		// Unknown witness versions are anyone-can-spend per BIP0141's
		// upgrade mechanism; the engine's scripts and stack are left
		// untouched, so a native output of this kind leaves no script to
		// run and execution succeeds vacuously.
		return nil
	}
}

// applySegwitV0Program implements BIP0141/BIP0143 dispatch for a version 0
// witness program: a 20-byte program is P2WPKH, expanded to the equivalent
// P2PKH script code; a 32-byte program is P2WSH, whose witness script is the
// final witness stack item and must hash to the program.
func (vm *Engine) applySegwitV0Program(program []byte, witness wire.TxWitness) error {
	switch len(program) {
	case 20:
		if len(witness) != 2 {
			return scriptError(ErrWitnessProgramMismatch,
				fmt.Sprintf("should have exactly two witness items in P2WPKH: "+
					"got %d", len(witness)))
		}

		pkScript, err := payToPubKeyHashScript(program)
		if err != nil {
			return err
		}

		vm.scripts = [][]byte{pkScript}
		vm.scriptIdx = 0
		vm.SetStack(witness)

	case 32:
		if len(witness) == 0 {
			return scriptError(ErrWitnessProgramEmpty,
				"witness program empty passed empty witness")
		}

		witnessScript := witness[len(witness)-1]
		computedHash := chainhash.HashB(witnessScript)
		if !bytes.Equal(computedHash, program) {
			return scriptError(ErrWitnessProgramMismatch,
				"witness program hash mismatch")
		}
		if err := checkScriptParses(witnessScript); err != nil {
			return err
		}

		vm.scripts = [][]byte{witnessScript}
		vm.scriptIdx = 0
		vm.SetStack(witness[:len(witness)-1])

	default:
		return scriptError(ErrWitnessProgramWrongLength,
			fmt.Sprintf("length of witness program must either be 20 or 32 "+
				"bytes: got %d", len(program)))
	}

	vm.sigVersion = sigVersionWitnessV0
	vm.tokenizer = MakeScriptTokenizer(vm.scripts[0])
	return nil
}

// applyTaprootProgram implements BIP0341/BIP0342 dispatch for a version 1
// witness program: the 32-byte program is the taproot output key. A single
// remaining witness item (after stripping any annex) is a key-path spend
// whose signature is checked directly against the output key; two or more
// items make it a script-path spend whose final item is the control block
// committing the tapscript to the output key.
func (vm *Engine) applyTaprootProgram(program []byte, witness wire.TxWitness) error {
	if len(program) != 32 {
		return scriptError(ErrWitnessProgramWrongLength,
			fmt.Sprintf("taproot witness program must be 32 bytes: got %d",
				len(program)))
	}

	items := witness
	var annex []byte
	if len(items) >= 2 && len(items[len(items)-1]) > 0 &&
		items[len(items)-1][0] == taprootAnnexTag {

		annex = items[len(items)-1]
		items = items[:len(items)-1]
	}

	switch {
	case len(items) == 0:
		return scriptError(ErrWitnessProgramEmpty,
			"taproot witness stack is empty")

	case len(items) == 1:
		// Key-path spend: the engine has no script to run, only a
		// single Schnorr signature to check against the output key
		// itself. Model this as a trivial script that pushes the output
		// key and runs the single opcode that performs that check.
		vm.sigVersion = sigVersionTapscript
		vm.sigOpBudget = sigOpsDelta
		vm.tapLeafHash = chainhash.Hash{}
		vm.isKeyPathSpend = true
		vm.annex = annex

		sigScript, err := NewScriptBuilder().
			AddData(program).AddOp(OP_CHECKSIG).Script()
		if err != nil {
			return err
		}
		vm.scripts = [][]byte{sigScript}
		vm.scriptIdx = 0
		vm.SetStack([][]byte{items[0]})

	default:
		controlBlock := items[len(items)-1]
		tapscript := items[len(items)-2]

		if len(controlBlock) < controlBlockBaseSize {
			return scriptError(ErrTaprootWrongControlSize,
				fmt.Sprintf("control block length %d too small", len(controlBlock)))
		}

		leafHash, known, err := verifyTaprootLeafCommitment(controlBlock, tapscript, program)
		if err != nil {
			return err
		}
		if !known {
			if vm.hasFlag(ScriptVerifyDiscourageUpgradeablePubkeyType) {
				return scriptError(ErrDiscourageUpgradablePubKeyType,
					"unknown tapscript leaf version")
			}
			// Future leaf versions are anyone-can-spend: leave the
			// engine with no scripts to step through.
			return nil
		}
		// A tapscript containing any OP_SUCCESSx opcode before its first
		// parse failure succeeds without being executed, leaving the
		// engine with no scripts to step through, as above.
		successTok := MakeScriptTokenizer(tapscript)
		for successTok.Next() {
			if isOpSuccess(successTok.Opcode()) {
				return nil
			}
		}
		if err := checkScriptParses(tapscript); err != nil {
			return err
		}

		vm.sigVersion = sigVersionTapscript
		vm.sigOpBudget = sigOpsDelta
		vm.tapLeafHash = leafHash
		vm.isKeyPathSpend = false
		vm.annex = annex

		vm.scripts = [][]byte{tapscript}
		vm.scriptIdx = 0
		vm.SetStack(items[:len(items)-2])
	}

	vm.tokenizer = MakeScriptTokenizer(vm.scripts[vm.scriptIdx])
	return nil
}
