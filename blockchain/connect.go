// Copyright (c) 2013-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/thoughtledger/consensus/chaincfg"
	"github.com/thoughtledger/consensus/txscript"
	"github.com/thoughtledger/consensus/wire"
)

// Utxo is the previous-output metadata ConnectTransactionInputs needs for
// one spent input: the output itself plus the
// confirmation context of the block that created it, used for coinbase
// maturity and relative-locktime evaluation. It corresponds to the
// specification's externally-populated prevout metadata -- this package
// never touches a UTXO database directly.
type Utxo struct {
	Output         *wire.TxOut
	BlockHeight    int32
	MedianTimePast int64
	IsCoinBase     bool
}

// InputFetcher resolves a transaction's previous outputs given their
// outpoints. A typical caller backs this with a UTXO set view constructed
// outside this package.
type InputFetcher interface {
	FetchUtxo(op wire.OutPoint) (*Utxo, bool)
}

// ConnectTransactionInputs performs every contextual check for spending a
// non-coinbase transaction's inputs against cs: previous output existence,
// coinbase maturity, relative-locktime maturity (BIP0068/112), value
// conservation, and precise sigop cost -- then executes each input's
// script against its previous output script via txscript, returning the
// transaction's fee and sigop cost on success.
func ConnectTransactionInputs(tx *wire.MsgTx, cs ChainState, coinbaseMaturity int32,
	fetcher InputFetcher, sigCache *txscript.SigCache) (int64, int, error) {

	if tx.IsCoinBase() {
		return 0, 0, nil
	}

	prevOuts := make([]*wire.TxOut, len(tx.TxIn))
	inputHeights := make([]int32, len(tx.TxIn))
	inputMTPs := make([]int64, len(tx.TxIn))

	for i, txIn := range tx.TxIn {
		utxo, ok := fetcher.FetchUtxo(txIn.PreviousOutPoint)
		if !ok {
			return 0, 0, ruleError(ErrMissingTxOut,
				fmt.Sprintf("input %d references a missing or already-spent output", i))
		}

		if utxo.IsCoinBase {
			if cs.Height-utxo.BlockHeight < coinbaseMaturity {
				return 0, 0, ruleError(ErrImmatureSpend,
					fmt.Sprintf("input %d attempts to spend coinbase output from height "+
						"%d at height %d before maturity", i, utxo.BlockHeight, cs.Height))
			}
		}

		prevOuts[i] = utxo.Output
		inputHeights[i] = utxo.BlockHeight
		inputMTPs[i] = utxo.MedianTimePast
	}

	if cs.Flags.Has(FlagBIP68) {
		lock := CalcSequenceLock(tx, inputHeights, inputMTPs, cs.Flags)
		if !SequenceLockActive(lock, cs.Height, cs.MedianTimePast) {
			return 0, 0, ruleError(ErrPrematureSpend,
				"transaction's relative locktime has not matured")
		}
	}

	fee, err := CheckInputsAccounting(tx, prevOuts)
	if err != nil {
		return 0, 0, err
	}

	scriptFlags := cs.ScriptFlags()
	sigOpCost := CalcTransactionSigOpCost(tx, prevOuts, scriptFlags)
	if err := CheckTransactionSigOpCost(tx, prevOuts, scriptFlags); err != nil {
		return 0, 0, err
	}

	prevOutFetcher := txscript.NewMultiPrevOutFetcher(nil)
	for i, txIn := range tx.TxIn {
		prevOutFetcher.AddPrevOut(txIn.PreviousOutPoint, *prevOuts[i])
	}
	hashCache := txscript.NewTxSigHashes(tx, prevOutFetcher)

	// Each input's script executes independently against its own previous
	// output, reading only the shared (now read-only) hash cache and
	// prevout fetcher built above, so the whole set validates concurrently.
	var g errgroup.Group
	for i := range tx.TxIn {
		i := i
		g.Go(func() error {
			engine, err := txscript.NewEngine(prevOuts[i].PkScript, tx, i, scriptFlags,
				sigCache, hashCache, prevOutFetcher, prevOuts[i].Value)
			if err != nil {
				return ruleError(ErrScriptValidation, fmt.Sprintf("input %d: %v", i, err))
			}
			if err := engine.Execute(); err != nil {
				return ruleError(ErrScriptValidation, fmt.Sprintf("input %d: %v", i, err))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Debug("input script validation failed", zap.Error(err))
		return 0, 0, err
	}

	return fee, sigOpCost, nil
}

// ConnectBlock performs full contextual validation of a block already
// known to have passed CheckBlockSanity: it validates the header against
// cs, the chain state already derived for the block (prevNode is not
// read), checks the BIP0034
// coinbase height commitment and BIP0141 witness commitment when active,
// connects every transaction's inputs, verifies the coinbase does not
// claim more than the subsidy plus collected fees, and enforces the
// cumulative block sigop budget.
func ConnectBlock(block *wire.MsgBlock, prevNode *BlockNode, cs ChainState, params PowParams,
	fetcher InputFetcher, sigCache *txscript.SigCache, now int64) error {

	log.Debug("connecting block",
		zap.Int32("height", cs.Height),
		zap.Int("num_tx", len(block.Transactions)))

	if err := CheckBlockHeaderContext(&block.Header, cs, now); err != nil {
		return err
	}

	if cs.Flags.Has(FlagBIP34) {
		if err := CheckBIP34CoinbaseHeight(block, cs.Height); err != nil {
			return err
		}
	}

	if cs.Flags.Has(FlagBIP141) {
		if err := CheckWitnessCommitment(block); err != nil {
			return err
		}
	} else {
		for _, tx := range block.Transactions {
			if tx.HasWitness() {
				return ruleError(ErrUnexpectedWitness,
					"transaction carries witness data before segwit activation")
			}
		}
	}

	var totalFees int64
	var totalSigOpCost int
	for i, tx := range block.Transactions {
		if i == 0 {
			continue
		}

		if !IsFinalizedTransaction(tx, cs.Height, cs.MedianTimePast) {
			return ruleError(ErrUnfinalizedTx,
				fmt.Sprintf("transaction %d is not finalized for inclusion at this height", i))
		}

		fee, sigOpCost, err := ConnectTransactionInputs(tx, cs, params.CoinbaseMaturity, fetcher, sigCache)
		if err != nil {
			return err
		}
		totalFees += fee
		totalSigOpCost += sigOpCost
		if totalSigOpCost > maxBlockSigOpsCost {
			return ruleError(ErrTooManySigOps,
				fmt.Sprintf("block sigop cost %d exceeds maximum %d", totalSigOpCost, maxBlockSigOpsCost))
		}
	}

	subsidy := CalcBlockSubsidy(cs.Height, params.SubsidyHalvingInterval, params.BIP0042Rule)
	var coinbaseOut int64
	for _, out := range block.Transactions[0].TxOut {
		coinbaseOut += out.Value
	}
	if coinbaseOut > subsidy+totalFees {
		return ruleError(ErrBadFees,
			fmt.Sprintf("coinbase pays %d, more than subsidy %d plus fees %d",
				coinbaseOut, subsidy, totalFees))
	}

	log.Debug("block connected", zap.Int32("height", cs.Height), zap.Int64("fees", totalFees))
	return nil
}

// PowParams is the subset of chaincfg.Params ConnectBlock needs for
// subsidy computation and coinbase maturity, kept narrow so callers can supply it without a
// hard dependency from this function's signature on the full parameter
// set.
type PowParams struct {
	SubsidyHalvingInterval int32
	BIP0042Rule            bool
	CoinbaseMaturity       int32
}

// PowParamsFromChainParams narrows a full chaincfg.Params down to the
// fields ConnectBlock needs, converting CoinbaseMaturity's network-defined
// uint16 to the int32 this package's height arithmetic uses throughout.
func PowParamsFromChainParams(params *chaincfg.Params) PowParams {
	return PowParams{
		SubsidyHalvingInterval: params.SubsidyHalvingInterval,
		BIP0042Rule:            params.BIP0042Rule,
		CoinbaseMaturity:       int32(params.CoinbaseMaturity),
	}
}
