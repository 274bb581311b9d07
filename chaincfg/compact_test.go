// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompactToBigKnownValues(t *testing.T) {
	tests := []struct {
		compact uint32
		want    int64
	}{
		{0x00000000, 0},
		{0x01003456, 0x00},
		{0x01123456, 0x12},
		{0x02008000, 0x80},
		{0x05009234, 0x92340000},
	}
	for _, tt := range tests {
		got := CompactToBig(tt.compact)
		assert.Equal(t, big.NewInt(tt.want), got)
	}
}

func TestCompactToBigNegative(t *testing.T) {
	got := CompactToBig(0x01823456)
	assert.Equal(t, -1, got.Sign())
}

func TestBigToCompactRoundTripsSmallValues(t *testing.T) {
	for _, v := range []int64{0, 1, 0x80, 0x1234, 0x123456} {
		n := big.NewInt(v)
		compact := BigToCompact(n)
		back := CompactToBig(compact)
		assert.Equal(t, n, back, "value %d", v)
	}
}

func TestBigToCompactZero(t *testing.T) {
	assert.EqualValues(t, 0, BigToCompact(big.NewInt(0)))
}

func TestBigToCompactPreservesSign(t *testing.T) {
	pos := BigToCompact(big.NewInt(0x123456))
	neg := BigToCompact(big.NewInt(-0x123456))
	assert.NotEqual(t, pos, neg)
	assert.Equal(t, pos|0x00800000, neg)
}

func TestBigToCompactLargeValueRoundTrips(t *testing.T) {
	n := new(big.Int).Lsh(big.NewInt(1), 250)
	compact := BigToCompact(n)
	back := CompactToBig(compact)
	// Compact form only carries 23 bits of mantissa precision, so for a
	// value this large the round trip is approximate, not exact.
	diff := new(big.Int).Sub(n, back)
	diff.Abs(diff)
	shift := new(big.Int).Rsh(n, 200)
	assert.True(t, diff.Cmp(shift) < 0)
}
