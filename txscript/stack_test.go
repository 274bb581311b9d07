// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackPushPopByteArray(t *testing.T) {
	var s stack
	s.PushByteArray([]byte{1, 2, 3})
	assert.EqualValues(t, 1, s.Depth())

	got, err := s.PopByteArray()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)
	assert.EqualValues(t, 0, s.Depth())
}

func TestStackPopEmptyErrors(t *testing.T) {
	var s stack
	_, err := s.PopByteArray()
	require.Error(t, err)
	var serr Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, ErrInvalidStackOperation, serr.ErrorCode)
}

func TestStackPushIntPopInt(t *testing.T) {
	var s stack
	s.PushInt(scriptNum(42))
	got, err := s.PopInt()
	require.NoError(t, err)
	assert.EqualValues(t, 42, got)
}

func TestStackPushBoolPopBool(t *testing.T) {
	var s stack
	s.PushBool(true)
	s.PushBool(false)

	got, err := s.PopBool()
	require.NoError(t, err)
	assert.False(t, got)

	got, err = s.PopBool()
	require.NoError(t, err)
	assert.True(t, got)
}

func TestStackPeekDoesNotRemove(t *testing.T) {
	var s stack
	s.PushByteArray([]byte{9})
	v, err := s.PeekByteArray(0)
	require.NoError(t, err)
	assert.Equal(t, []byte{9}, v)
	assert.EqualValues(t, 1, s.Depth())
}

func TestStackSwapN(t *testing.T) {
	var s stack
	s.PushByteArray([]byte{1})
	s.PushByteArray([]byte{2})
	require.NoError(t, s.SwapN(1))
	top, err := s.PeekByteArray(0)
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, top)
}

func TestStackDupN(t *testing.T) {
	var s stack
	s.PushByteArray([]byte{1})
	s.PushByteArray([]byte{2})
	require.NoError(t, s.DupN(2))
	assert.EqualValues(t, 4, s.Depth())
	top, _ := s.PeekByteArray(0)
	assert.Equal(t, []byte{2}, top)
	second, _ := s.PeekByteArray(1)
	assert.Equal(t, []byte{1}, second)
}

func TestStackRotN(t *testing.T) {
	var s stack
	s.PushByteArray([]byte{1})
	s.PushByteArray([]byte{2})
	s.PushByteArray([]byte{3})
	require.NoError(t, s.RotN(1))
	// rotating the top 3 items left once: [1 2 3] -> [2 3 1]
	top, _ := s.PeekByteArray(0)
	assert.Equal(t, []byte{1}, top)
	second, _ := s.PeekByteArray(1)
	assert.Equal(t, []byte{3}, second)
}

func TestStackTuck(t *testing.T) {
	var s stack
	s.PushByteArray([]byte{1})
	s.PushByteArray([]byte{2})
	require.NoError(t, s.Tuck())
	assert.EqualValues(t, 3, s.Depth())
	top, _ := s.PeekByteArray(0)
	assert.Equal(t, []byte{2}, top)
	bottom, _ := s.PeekByteArray(2)
	assert.Equal(t, []byte{2}, bottom)
}

func TestStackNipN(t *testing.T) {
	var s stack
	s.PushByteArray([]byte{1})
	s.PushByteArray([]byte{2})
	s.PushByteArray([]byte{3})
	require.NoError(t, s.NipN(1))
	assert.EqualValues(t, 2, s.Depth())
	top, _ := s.PeekByteArray(0)
	assert.Equal(t, []byte{3}, top)
	bottom, _ := s.PeekByteArray(1)
	assert.Equal(t, []byte{1}, bottom)
}

func TestStackPickAndRoll(t *testing.T) {
	var pick stack
	pick.PushByteArray([]byte{10})
	pick.PushByteArray([]byte{20})
	pick.PushInt(scriptNum(1))
	require.NoError(t, pick.PickN())
	top, _ := pick.PeekByteArray(0)
	assert.Equal(t, []byte{10}, top)
	assert.EqualValues(t, 3, pick.Depth())

	var roll stack
	roll.PushByteArray([]byte{10})
	roll.PushByteArray([]byte{20})
	roll.PushInt(scriptNum(1))
	require.NoError(t, roll.RollN())
	top, _ = roll.PeekByteArray(0)
	assert.Equal(t, []byte{10}, top)
	assert.EqualValues(t, 2, roll.Depth())
}

func TestStackDropNNegativeErrors(t *testing.T) {
	var s stack
	err := s.DropN(-1)
	require.Error(t, err)
}

func TestFromBool(t *testing.T) {
	assert.Equal(t, []byte{1}, fromBool(true))
	assert.Nil(t, fromBool(false))
}
