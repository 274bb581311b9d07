// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "fmt"

// fromBool converts a bool into the byte-array encoded boolean
// representation pushed back onto a data stack.
func fromBool(v bool) []byte {
	if v {
		return []byte{1}
	}
	return nil
}

// stack represents a stack of immutable objects to be used with bitcoin
// scripts.  Objects may be shared, therefore in usage if a value is to be
// changed it *must* be popped off, have a copy created, changed, then pushed
// back.
type stack struct {
	stk               [][]byte
	verifyMinimalData bool
}

// Depth returns the number of items on the stack.
func (s *stack) Depth() int32 {
	return int32(len(s.stk))
}

// PushByteArray adds the given byte array to the top of the stack.
func (s *stack) PushByteArray(so []byte) {
	s.stk = append(s.stk, so)
}

// PushInt converts the provided scriptNum to a suitable byte array and then
// pushes it onto the top of the stack.
func (s *stack) PushInt(val scriptNum) {
	s.PushByteArray(val.Bytes())
}

// PushBool converts the provided boolean to a suitable byte array and then
// pushes it onto the top of the stack.
func (s *stack) PushBool(val bool) {
	s.PushByteArray(fromBool(val))
}

// PopByteArray pops the value off the top of the stack and returns it.
func (s *stack) PopByteArray() ([]byte, error) {
	so, err := s.PeekByteArray(0)
	if err != nil {
		return nil, err
	}
	s.stk = s.stk[:len(s.stk)-1]
	return so, nil
}

// PopInt pops the value off the top of the stack, converts it into a script
// number, and returns it.
func (s *stack) PopInt() (scriptNum, error) {
	so, err := s.PopByteArray()
	if err != nil {
		return 0, err
	}
	return makeScriptNum(so, s.verifyMinimalData, defaultScriptNumLen)
}

// PopBool pops the value off the top of the stack, converts it into a bool,
// and returns it.
func (s *stack) PopBool() (bool, error) {
	so, err := s.PopByteArray()
	if err != nil {
		return false, err
	}
	return asBool(so), nil
}

// PeekByteArray returns the Nth item on the stack without removing it.
func (s *stack) PeekByteArray(idx int32) ([]byte, error) {
	sz := int32(len(s.stk))
	if idx < 0 || idx >= sz {
		str := fmt.Sprintf("index %d is invalid for stack size %d", idx, sz)
		return nil, scriptError(ErrInvalidStackOperation, str)
	}
	return s.stk[sz-idx-1], nil
}

// PeekInt returns the Nth item on the stack as a script number without
// removing it.
func (s *stack) PeekInt(idx int32) (scriptNum, error) {
	so, err := s.PeekByteArray(idx)
	if err != nil {
		return 0, err
	}
	return makeScriptNum(so, s.verifyMinimalData, defaultScriptNumLen)
}

// PeekBool returns the Nth item on the stack as a bool without removing it.
func (s *stack) PeekBool(idx int32) (bool, error) {
	so, err := s.PeekByteArray(idx)
	if err != nil {
		return false, err
	}
	return asBool(so), nil
}

// nipN removes the Nth object on the stack.
func (s *stack) nipN(idx int32) ([]byte, error) {
	so, err := s.PeekByteArray(idx)
	if err != nil {
		return nil, err
	}
	sz := int32(len(s.stk))
	copy(s.stk[sz-idx-1:], s.stk[sz-idx:])
	s.stk[sz-1] = nil
	s.stk = s.stk[:sz-1]
	return so, nil
}

// NipN removes the Nth object on the stack.
func (s *stack) NipN(idx int32) error {
	_, err := s.nipN(idx)
	return err
}

// Tuck copies the item at the top of the stack and inserts it before the 2nd
// to top item.
func (s *stack) Tuck() error {
	so2, err := s.PopByteArray()
	if err != nil {
		return err
	}
	so1, err := s.PopByteArray()
	if err != nil {
		return err
	}
	s.PushByteArray(so2)
	s.PushByteArray(so1)
	s.PushByteArray(so2)
	return nil
}

// DropN removes the top N items from the stack.
func (s *stack) DropN(n int32) error {
	if n < 0 {
		str := fmt.Sprintf("attempt to drop negative number of items %d", n)
		return scriptError(ErrInvalidStackOperation, str)
	}
	for ; n > 0; n-- {
		if _, err := s.PopByteArray(); err != nil {
			return err
		}
	}
	return nil
}

// DupN duplicates the top N items on the stack.
func (s *stack) DupN(n int32) error {
	if n < 1 {
		str := fmt.Sprintf("attempt to dup non-positive number of items %d", n)
		return scriptError(ErrInvalidStackOperation, str)
	}
	for i := n; i > 0; i-- {
		so, err := s.PeekByteArray(n - 1)
		if err != nil {
			return err
		}
		s.PushByteArray(so)
	}
	return nil
}

// RotN rotates the top 3N items on the stack to the left N times.
func (s *stack) RotN(n int32) error {
	if n < 1 {
		str := fmt.Sprintf("attempt to rotate non-positive number of items %d", n)
		return scriptError(ErrInvalidStackOperation, str)
	}
	entry := 3*n - 1
	for i := int32(0); i < n; i++ {
		so, err := s.nipN(entry)
		if err != nil {
			return err
		}
		s.PushByteArray(so)
	}
	return nil
}

// SwapN swaps the top N items on the stack with those below them.
func (s *stack) SwapN(n int32) error {
	if n < 1 {
		str := fmt.Sprintf("attempt to swap non-positive number of items %d", n)
		return scriptError(ErrInvalidStackOperation, str)
	}
	entry := 2*n - 1
	for i := int32(0); i < n; i++ {
		so, err := s.nipN(entry)
		if err != nil {
			return err
		}
		s.PushByteArray(so)
	}
	return nil
}

// OverN copies N items N items back to the top of the stack.
func (s *stack) OverN(n int32) error {
	if n < 1 {
		str := fmt.Sprintf("attempt to perform over on non-positive number of items %d", n)
		return scriptError(ErrInvalidStackOperation, str)
	}
	entry := 2*n - 1
	for ; n > 0; n-- {
		so, err := s.PeekByteArray(entry)
		if err != nil {
			return err
		}
		s.PushByteArray(so)
	}
	return nil
}

// PickN copies the item N items back to the top, where N is popped off the
// top of the stack first.
func (s *stack) PickN() error {
	return s.pickRoll(false)
}

// RollN moves the item N items back to the top, where N is popped off the
// top of the stack first.
func (s *stack) RollN() error {
	return s.pickRoll(true)
}

func (s *stack) pickRoll(roll bool) error {
	val, err := s.PopInt()
	if err != nil {
		return err
	}
	if val < 0 || int32(val) >= int32(len(s.stk)) {
		str := fmt.Sprintf("index %d is invalid for stack size %d", val, len(s.stk))
		return scriptError(ErrInvalidStackOperation, str)
	}
	idx := int32(val)

	var so []byte
	if roll {
		so, err = s.nipN(idx)
	} else {
		so, err = s.PeekByteArray(idx)
	}
	if err != nil {
		return err
	}
	s.PushByteArray(so)
	return nil
}

// String returns the stack in a readable format.
func (s *stack) String() string {
	var result string
	for i := len(s.stk) - 1; i >= 0; i-- {
		result += fmt.Sprintf("%02x", s.stk[i])
		if i != 0 {
			result += "\n"
		}
	}
	return result
}
