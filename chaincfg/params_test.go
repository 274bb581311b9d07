// Copyright (c) 2014-2022 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNetMagicString(t *testing.T) {
	assert.Equal(t, "mainnet", MainNet.String())
	assert.Equal(t, "testnet3", TestNet3.String())
	assert.Equal(t, "regtest", RegTest.String())
	assert.Contains(t, NetMagic(0).String(), "unknown")
}

func TestMainNetParamsSanity(t *testing.T) {
	assert.Equal(t, "mainnet", MainNetParams.Name)
	assert.Equal(t, MainNet, MainNetParams.Net)
	assert.Equal(t, int32(210000), MainNetParams.SubsidyHalvingInterval)
	assert.False(t, MainNetParams.ReduceMinDifficulty)
}

func TestTestNet3ParamsAllowsMinDifficulty(t *testing.T) {
	assert.Equal(t, "testnet3", TestNet3Params.Name)
	assert.True(t, TestNet3Params.ReduceMinDifficulty)
}

func TestRegressionNetParamsNeverRetargets(t *testing.T) {
	assert.Equal(t, "regtest", RegressionNetParams.Name)
	assert.Equal(t, RegTest, RegressionNetParams.Net)
	assert.True(t, RegressionNetParams.NoDifficultyAdjustment)
}

func TestPowLimitBitsMatchesPowLimit(t *testing.T) {
	for _, params := range []*Params{&MainNetParams, &TestNet3Params, &RegressionNetParams} {
		got := CompactToBig(params.PowLimitBits)
		assert.Equal(t, 0, params.PowLimit.Cmp(got), "network %s", params.Name)
	}
}
