// Copyright (c) 2014-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg defines the per-network consensus parameters consumed by
// the chain-state flag derivation and difficulty retargeting logic: soft
// fork activation heights, the proof-of-work limit, the retarget interval,
// and the handful of grandfathered exceptions the reference client carries
// forward for historical compatibility.
package chaincfg

import (
	"fmt"
	"math/big"
	"time"

	"github.com/thoughtledger/consensus/chainhash"
)

// NetMagic identifies which network a header or transaction belongs to.
type NetMagic uint32

const (
	MainNet NetMagic = 0xd9b4bef9
	TestNet3 NetMagic = 0x0709110b
	RegTest  NetMagic = 0xdab5bffa
)

func (n NetMagic) String() string {
	switch n {
	case MainNet:
		return "mainnet"
	case TestNet3:
		return "testnet3"
	case RegTest:
		return "regtest"
	default:
		return fmt.Sprintf("unknown network (%d)", uint32(n))
	}
}

// BIP30Exception hardcodes one of the two mainnet blocks where a duplicate
// coinbase txid legitimately occurs.  These are not derivable from any rule;
// they are historical accidents the reference client special-cases forever.
type BIP30Exception struct {
	Height int32
	Hash   chainhash.Hash
}

// DeploymentStartHeight records the height at which a BIP9-style
// bit-signalled deployment is considered active.  The specification treats
// these as fixed checkpoint heights recorded in configuration rather than
// runtime-measured version-bit tallies, which is how BIP68/112/113,
// BIP141/143/147, and BIP341/342 are activated in this implementation.
type DeploymentStartHeight int32

// Params defines the complete set of consensus parameters for a network.
type Params struct {
	Name string
	Net  NetMagic

	// PowLimit is the highest possible proof-of-work target (lowest
	// possible difficulty) for the network.
	PowLimit     *big.Int
	PowLimitBits uint32

	// Address/key encoding magics are out of scope for this library; see
	// the collaborator boundary in the specification. Kept here only as
	// opaque bytes so chain parameters round-trip through one struct the
	// way the reference implementation's Params does.
	PubKeyHashAddrID byte
	ScriptHashAddrID byte

	// CoinbaseMaturity is the number of confirmations required before a
	// coinbase output may be spent.
	CoinbaseMaturity uint16

	// SubsidyHalvingInterval is the number of blocks between each halving
	// of the block subsidy.
	SubsidyHalvingInterval int32

	// Retarget parameters (BIP0002 / the original difficulty adjustment
	// algorithm).
	TargetTimespan           time.Duration
	TargetTimePerBlock       time.Duration
	RetargetAdjustmentFactor int64
	ReduceMinDifficulty      bool
	MinDiffReductionTime     time.Duration
	NoDifficultyAdjustment   bool

	// RetargetOverflowPatch names the defined-overflow variant of the
	// retarget shift computation. It is configuration only: the retarget
	// code computes on math/big, which has no shift overflow, and does not
	// read this flag.
	RetargetOverflowPatch bool

	// TimeWarpPatch names the time-warp fix to the timestamp used at the
	// start of a retarget window. It is configuration only: the retarget
	// code does not read it and always measures from the block interval-1
	// blocks before the tip.
	TimeWarpPatch bool

	// The historical 75%/95%-of-last-1000-blocks super-majority rule for
	// BIP0034/0065/0066: ActivationThreshold and EnforcementThreshold are
	// that rule's two thresholds and WindowSize is the trailing window
	// they are measured over. These values are configuration only: chain
	// state derivation does not read them and activates the three
	// deployments at the fixed BIP0034/0065/0066 heights below.
	RuleChangeActivationThreshold uint32
	RuleChangeEnforcementThreshold uint32
	RuleChangeWindowSize           uint32

	// BIP0030 is enforced except at heights h with BIP30DeactivateHeight
	// <= h < BIP30ReactivateHeight; a zero BIP30ReactivateHeight leaves the
	// window open-ended and a zero BIP30DeactivateHeight means no window.
	// BIP30Exceptions lists the two grandfathered mainnet exception blocks;
	// chain state derivation does not read it.
	BIP30DeactivateHeight int32
	BIP30ReactivateHeight int32
	BIP30Exceptions       []BIP30Exception

	// BIP0042 changes the subsidy computation's shift-overflow from
	// undefined behavior to a defined zero once the halving count would
	// overflow. It is a separate flag from RetargetOverflowPatch because
	// the two affect unrelated computations.
	BIP0042Rule bool

	// Fixed checkpoint activation heights for the deployments this chain
	// state tracks outside of the super-majority mechanism.
	BIP0016Height  int32 // pay-to-script-hash
	BIP0068Height  DeploymentStartHeight
	BIP0112Height  DeploymentStartHeight
	BIP0113Height  DeploymentStartHeight
	BIP0141Height  DeploymentStartHeight // segwit
	BIP0143Height  DeploymentStartHeight
	BIP0147Height  DeploymentStartHeight
	BIP0341Height  DeploymentStartHeight // taproot
	BIP0342Height  DeploymentStartHeight

	// BIP0090 configuration-only flag: whether BIP0034/0065/0066
	// enforcement is fixed by height (post BIP0090) rather than measured
	// live via the super-majority rule. Chain state derivation does not
	// read it: the three Height fields below are used directly on every
	// network.
	BIP0090Rule   bool
	BIP0034Height int32
	BIP0065Height int32
	BIP0066Height int32

	// CatsRuleReserved records whether the disabled bitwise/splice opcodes
	// count as permanently disabled (op_not_implemented) or reserved for
	// future re-enablement (op_unevaluated). It is configuration only: no
	// code reads it, and the script engine always treats these opcodes as
	// disabled.
	CatsRuleReserved bool
}

// MainNetParams defines the consensus parameters for the main network.
var MainNetParams = Params{
	Name: "mainnet",
	Net:  MainNet,

	PowLimit:     powLimit(0x1d00ffff),
	PowLimitBits: 0x1d00ffff,

	PubKeyHashAddrID: 0x00,
	ScriptHashAddrID: 0x05,

	CoinbaseMaturity:       100,
	SubsidyHalvingInterval: 210000,

	TargetTimespan:           14 * 24 * time.Hour,
	TargetTimePerBlock:       10 * time.Minute,
	RetargetAdjustmentFactor: 4,

	RuleChangeActivationThreshold:  750,
	RuleChangeEnforcementThreshold: 950,
	RuleChangeWindowSize:           1000,

	BIP30DeactivateHeight: 227931,
	BIP30ReactivateHeight: 227931,
	BIP30Exceptions: []BIP30Exception{
		{Height: 91842, Hash: mustHash("00000000000a4d0a398161ffc163c503763b1f4360639393e0e4c8e300e0caec")},
		{Height: 91880, Hash: mustHash("00000000000743f190a18c5577a3c2d2a1f610ae9601ac046a38084ccb7cd721")},
	},

	BIP0042Rule: true,

	BIP0016Height: 173805,
	BIP0034Height: 227931,
	BIP0065Height: 388381,
	BIP0066Height: 363725,
	BIP0090Rule:   true,

	BIP0068Height:  481824,
	BIP0112Height:  481824,
	BIP0113Height:  481824,
	BIP0141Height:  481824,
	BIP0143Height:  481824,
	BIP0147Height:  481824,
	BIP0341Height:  709632,
	BIP0342Height:  709632,

	RetargetOverflowPatch: true,
	CatsRuleReserved:      true,
}

// TestNet3Params defines the consensus parameters for the test network.
var TestNet3Params = Params{
	Name: "testnet3",
	Net:  TestNet3,

	PowLimit:     powLimit(0x1d00ffff),
	PowLimitBits: 0x1d00ffff,

	PubKeyHashAddrID: 0x6f,
	ScriptHashAddrID: 0xc4,

	CoinbaseMaturity:       100,
	SubsidyHalvingInterval: 210000,

	TargetTimespan:           14 * 24 * time.Hour,
	TargetTimePerBlock:       10 * time.Minute,
	RetargetAdjustmentFactor: 4,
	ReduceMinDifficulty:      true,
	MinDiffReductionTime:     20 * time.Minute,

	RuleChangeActivationThreshold:  750,
	RuleChangeEnforcementThreshold: 950,
	RuleChangeWindowSize:           1000,

	BIP30DeactivateHeight: 0,
	BIP30ReactivateHeight: 0,

	BIP0042Rule: true,

	BIP0016Height: 0,
	BIP0034Height: 21111,
	BIP0065Height: 581885,
	BIP0066Height: 330776,
	BIP0090Rule:   true,

	BIP0068Height: 770112,
	BIP0112Height: 770112,
	BIP0113Height: 770112,
	BIP0141Height: 770112,
	BIP0143Height: 770112,
	BIP0147Height: 770112,
	BIP0341Height: 0,
	BIP0342Height: 0,

	RetargetOverflowPatch: true,
	TimeWarpPatch:         true,
	CatsRuleReserved:      true,
}

// RegressionNetParams defines the consensus parameters for a private
// regression-test network: no retargeting, no super-majority measurement
// window. BIP0016/0034/0065/0066 are active from genesis; the deployments
// from BIP0068 through BIP0342 keep a zero start height, which chain state
// derivation treats as never deployed.
var RegressionNetParams = Params{
	Name: "regtest",
	Net:  RegTest,

	PowLimit:     powLimit(0x207fffff),
	PowLimitBits: 0x207fffff,

	PubKeyHashAddrID: 0x6f,
	ScriptHashAddrID: 0xc4,

	CoinbaseMaturity:       100,
	SubsidyHalvingInterval: 150,

	TargetTimespan:         14 * 24 * time.Hour,
	TargetTimePerBlock:     10 * time.Minute,
	NoDifficultyAdjustment: true,

	RuleChangeActivationThreshold:  108,
	RuleChangeEnforcementThreshold: 108,
	RuleChangeWindowSize:           144,

	BIP0042Rule: true,

	BIP0090Rule: true,

	RetargetOverflowPatch: true,
	CatsRuleReserved:      true,
}

func powLimit(compact uint32) *big.Int {
	return compactToBig(compact)
}

func mustHash(s string) chainhash.Hash {
	h, err := chainhash.NewHashFromStr(s)
	if err != nil {
		panic(err)
	}
	return *h
}
