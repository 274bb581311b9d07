package txscript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsScriptHashScript(t *testing.T) {
	script, err := NewScriptBuilder().AddOp(OP_HASH160).
		AddData(make([]byte, 20)).AddOp(OP_EQUAL).Script()
	require.NoError(t, err)
	assert.True(t, isScriptHashScript(script))
	assert.NotNil(t, extractScriptHash(script))

	assert.False(t, isScriptHashScript([]byte{OP_TRUE}))
}

func TestIsNullDataScript(t *testing.T) {
	assert.True(t, isNullDataScript([]byte{OP_RETURN}))

	withData, err := NewScriptBuilder().AddOp(OP_RETURN).
		AddData([]byte("hello")).Script()
	require.NoError(t, err)
	assert.True(t, isNullDataScript(withData))

	tooMuch, err := NewScriptBuilder().AddOp(OP_RETURN).
		AddData(make([]byte, MaxDataCarrierSize+1)).Script()
	require.NoError(t, err)
	assert.False(t, isNullDataScript(tooMuch))

	assert.False(t, isNullDataScript([]byte{OP_TRUE}))
}

func TestIsUnspendableMatchesNullData(t *testing.T) {
	assert.True(t, IsUnspendable([]byte{OP_RETURN}))
	assert.False(t, IsUnspendable([]byte{OP_TRUE}))
}

func TestPayToPubKeyHashScript(t *testing.T) {
	hash := make([]byte, 20)
	hash[0] = 0xaa

	script, err := payToPubKeyHashScript(hash)
	require.NoError(t, err)
	assert.True(t, isPubKeyHashScriptShape(script, hash))
}

// isPubKeyHashScriptShape checks the exact P2PKH template without relying on
// any script-classification helper, since this package no longer carries
// general pattern-recognition beyond what the consensus path exercises.
func isPubKeyHashScriptShape(script, hash []byte) bool {
	return len(script) == 25 &&
		script[0] == OP_DUP &&
		script[1] == OP_HASH160 &&
		script[2] == OP_DATA_20 &&
		script[23] == OP_EQUALVERIFY &&
		script[24] == OP_CHECKSIG
}
