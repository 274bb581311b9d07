// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"bytes"
	"fmt"

	"github.com/thoughtledger/consensus/chainhash"
	"github.com/thoughtledger/consensus/txscript"
	"github.com/thoughtledger/consensus/util"
	"github.com/thoughtledger/consensus/wire"
)

// baseSubsidy is the starting block subsidy, 50 BTC expressed in satoshis,
// halved every SubsidyHalvingInterval blocks.
const baseSubsidy = 50 * util.SatoshiPerBitcoin

// maxBlockSigOpsCost is the maximum cumulative sigop cost, computed the
// same way as CheckTransactionSigOpCost, a block may contain.
const maxBlockSigOpsCost = 80000

// witnessCommitmentHeader prefixes the 32-byte witness root commitment
// inside the coinbase's designated output, per BIP0141.
var witnessCommitmentHeader = [4]byte{0xaa, 0x21, 0xa9, 0xed}

// witnessNonceSize is the size of the coinbase input witness reserved
// value committed to alongside the witness root.
const witnessNonceSize = 32

// CalcBlockSubsidy returns the block subsidy for a block at the given
// height, halving every halvingInterval blocks: the base subsidy is
// shifted right once per halving. When bip42Rule is set, a halving count
// of 64 or more returns zero directly rather than relying on the shift
// width -- the defined-overflow fix BIP0042 made explicit.
func CalcBlockSubsidy(height int32, halvingInterval int32, bip42Rule bool) int64 {
	if halvingInterval == 0 {
		return baseSubsidy
	}
	halvings := height / halvingInterval
	if bip42Rule && halvings >= 64 {
		return 0
	}
	return baseSubsidy >> uint(halvings)
}

// CheckBlockSanity performs the context-free structural checks on a block:
// transaction count and shape, the merkle root commitment, block weight,
// and transaction-level sanity for every contained transaction. These
// checks require no chain state. Sigop limits are not checked here;
// ConnectBlock enforces the block's sigop cost.
func CheckBlockSanity(block *wire.MsgBlock) error {
	if len(block.Transactions) == 0 {
		return ruleError(ErrNoTransactions, "block has no transactions")
	}

	if !block.Transactions[0].IsCoinBase() {
		return ruleError(ErrFirstTxNotCoinbase, "first transaction in block is not a coinbase")
	}
	for i, tx := range block.Transactions[1:] {
		if tx.IsCoinBase() {
			return ruleError(ErrMultipleCoinbases,
				fmt.Sprintf("block contains second coinbase at transaction index %d", i+1))
		}
	}

	if block.Weight() > wire.MaxBlockWeight {
		return ruleError(ErrBadBlockWeight,
			fmt.Sprintf("block weight of %d exceeds maximum allowed of %d",
				block.Weight(), wire.MaxBlockWeight))
	}

	for _, tx := range block.Transactions {
		if err := CheckTransactionSanity(tx); err != nil {
			return err
		}
	}

	return checkMerkleRoot(block)
}

// checkMerkleRoot recomputes the block's transaction-id merkle root and
// compares it against the header's commitment, and separately rejects the
// known CVE-2012-2459 duplicate-leaf malleability even when it happens to
// leave the root unchanged.
func checkMerkleRoot(block *wire.MsgBlock) error {
	txHashes := block.TxHashes()

	if hasDuplicateTransactions(txHashes) {
		return ruleError(ErrDuplicateTx,
			"block contains duplicate transactions (merkle tree malleability)")
	}

	root := CalcMerkleRoot(txHashes)
	if !root.IsEqual(&block.Header.MerkleRoot) {
		return ruleError(ErrBadMerkleRoot,
			fmt.Sprintf("merkle root mismatch: header declares %s, computed %s",
				block.Header.MerkleRoot, root))
	}
	return nil
}

// CheckBIP34CoinbaseHeight verifies, when BIP0034 is active, that the
// coinbase's signature script begins with a minimally-encoded script
// number push committing to the block's height.
func CheckBIP34CoinbaseHeight(block *wire.MsgBlock, height int32) error {
	coinbaseScript := block.Transactions[0].TxIn[0].SignatureScript
	serializedHeight := txscript.ScriptNumBytes(int64(height))

	if len(coinbaseScript) < 1 {
		return ruleError(ErrBadCoinbaseHeight, "coinbase script is empty")
	}

	pushed, err := readScriptNumberPush(coinbaseScript)
	if err != nil {
		return ruleError(ErrBadCoinbaseHeight, "coinbase script does not begin with a height push")
	}

	if !bytes.Equal(pushed, serializedHeight) {
		return ruleError(ErrBadCoinbaseHeight,
			fmt.Sprintf("coinbase height commitment %x does not match block height %d",
				pushed, height))
	}
	return nil
}

// readScriptNumberPush extracts the first data push from a coinbase
// signature script.
func readScriptNumberPush(script []byte) ([]byte, error) {
	tokenizer := txscript.MakeScriptTokenizer(script)
	if !tokenizer.Next() {
		if err := tokenizer.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("empty coinbase script")
	}
	return tokenizer.Data(), nil
}

// ExtractWitnessCommitment locates the BIP0141 witness commitment output
// in a coinbase transaction: the last output whose script is
// OP_RETURN <0xaa21a9ed> <32-byte commitment>. It returns false if none is
// present, which is only valid when the block contains no witness data.
func ExtractWitnessCommitment(coinbase *wire.MsgTx) ([]byte, bool) {
	for i := len(coinbase.TxOut) - 1; i >= 0; i-- {
		pkScript := coinbase.TxOut[i].PkScript
		if len(pkScript) < 38 || !txscript.IsUnspendable(pkScript) {
			continue
		}
		if pkScript[1] != 0x24 { // push 36 bytes: 4-byte header + 32-byte commitment
			continue
		}
		if !bytes.Equal(pkScript[2:6], witnessCommitmentHeader[:]) {
			continue
		}
		return pkScript[6:38], true
	}
	return nil, false
}

// CheckWitnessCommitment verifies, for a block containing any witness
// data, that the coinbase carries a witness commitment output equal to
// the double-sha256 of the block's witness merkle root concatenated with
// the coinbase input's witness reserved value.
func CheckWitnessCommitment(block *wire.MsgBlock) error {
	hasWitness := false
	for _, tx := range block.Transactions {
		if tx.HasWitness() {
			hasWitness = true
			break
		}
	}
	if !hasWitness {
		return nil
	}

	commitment, ok := ExtractWitnessCommitment(block.Transactions[0])
	if !ok {
		return ruleError(ErrBadWitnessCommitment,
			"block contains witness data but coinbase has no witness commitment")
	}

	coinbaseWitness := block.Transactions[0].TxIn[0].Witness
	if len(coinbaseWitness) != 1 || len(coinbaseWitness[0]) != witnessNonceSize {
		return ruleError(ErrBadWitnessCommitment,
			"coinbase witness must be exactly one 32-byte reserved value")
	}

	witnessRoot := CalcMerkleRoot(block.WitnessHashes())
	var buf bytes.Buffer
	buf.Write(witnessRoot[:])
	buf.Write(coinbaseWitness[0])
	computed := chainhash.DoubleHashB(buf.Bytes())

	if !bytes.Equal(computed, commitment) {
		return ruleError(ErrBadWitnessCommitment, "witness commitment does not match computed root")
	}
	return nil
}

// CheckBlockHeaderContext verifies a block header against the chain state
// it extends: minimum version, timestamp bounds, and the required
// difficulty target.
func CheckBlockHeaderContext(header *wire.BlockHeader, cs ChainState, now int64) error {
	if header.Version < cs.MinimumBlockVersion {
		return ruleError(ErrBadBlockVersion,
			fmt.Sprintf("block version %d is less than minimum required %d",
				header.Version, cs.MinimumBlockVersion))
	}

	if int64(header.Timestamp) <= cs.MedianTimePast {
		return ruleError(ErrTimeTooOld,
			"block timestamp is not after the median time of the preceding blocks")
	}

	const maxTimeOffset = 2 * 60 * 60
	if int64(header.Timestamp) > now+maxTimeOffset {
		return ruleError(ErrTimeTooNew, "block timestamp is too far in the future")
	}

	if header.Bits != cs.WorkRequired {
		return ruleError(ErrBadDifficultyBits,
			fmt.Sprintf("block difficulty bits %08x does not match required %08x",
				header.Bits, cs.WorkRequired))
	}

	return nil
}
