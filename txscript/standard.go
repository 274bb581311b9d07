// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

// MaxDataCarrierSize is the maximum number of bytes allowed in pushed
// data to be considered a nulldata script.
const MaxDataCarrierSize = 80

// extractScriptHash extracts the script hash from the passed script if it is
// a standard pay-to-script-hash script. It returns nil otherwise.
//
// A pay-to-script-hash script is of the form:
//
//	OP_HASH160 <20-byte scripthash> OP_EQUAL
//
// NOTE: This function is only valid for version 0 scripts.
func extractScriptHash(script []byte) []byte {
	if len(script) == 23 &&
		script[0] == OP_HASH160 &&
		script[1] == OP_DATA_20 &&
		script[22] == OP_EQUAL {

		return script[2:22]
	}

	return nil
}

// isScriptHashScript returns whether or not the passed script is a standard
// pay-to-script-hash script. BIP0016 gates every P2SH-specific consensus
// rule (the second-stage execution of the redeem script, the dedicated
// sigop accounting in sigops.go) on this recognition.
func isScriptHashScript(script []byte) bool {
	return extractScriptHash(script) != nil
}

// isNullDataScript returns whether or not the passed script is a standard
// null data script: a single OP_RETURN, or OP_RETURN followed by a data
// push of at most MaxDataCarrierSize bytes.
//
// NOTE: This function is only valid for version 0 scripts.
func isNullDataScript(script []byte) bool {
	if len(script) < 1 || script[0] != OP_RETURN {
		return false
	}

	if len(script) == 1 {
		return true
	}

	tokenizer := MakeScriptTokenizer(script[1:])
	return tokenizer.Next() && tokenizer.Done() &&
		(isSmallInt(tokenizer.Opcode()) || tokenizer.Opcode() <= OP_PUSHDATA4) &&
		len(tokenizer.Data()) <= MaxDataCarrierSize
}

// IsUnspendable reports whether a pkScript can provably never be spent,
// i.e. it is a null-data (OP_RETURN) script. Block validation uses this to
// recognize the shape of a BIP0141 witness commitment output without
// hand-matching the OP_RETURN prefix itself.
func IsUnspendable(pkScript []byte) bool {
	return isNullDataScript(pkScript)
}

// payToPubKeyHashScript builds the P2PKH script code a BIP0141 P2WPKH
// witness program expands to during execution. It is expected that the
// input is a valid 20-byte hash.
func payToPubKeyHashScript(pubKeyHash []byte) ([]byte, error) {
	return NewScriptBuilder().AddOp(OP_DUP).AddOp(OP_HASH160).
		AddData(pubKeyHash).AddOp(OP_EQUALVERIFY).AddOp(OP_CHECKSIG).
		Script()
}
