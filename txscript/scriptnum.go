// Copyright (c) 2015-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "fmt"

// Bitcoin script numbers are signed integers encoded as a variable-length
// little-endian byte array with the high bit of the most significant byte
// acting as the sign bit, and with the constraint that the shortest possible
// encoding must be used (no superfluous leading zero bytes).

const (
	// defaultScriptNumLen is the default number of bytes data being
	// interpreted as an integer may be for the majority of opcodes.
	defaultScriptNumLen = 4

	// maxScriptNumLen is an alias for defaultScriptNumLen retained for
	// readability at call sites that want to emphasize the cap rather
	// than the default.
	maxScriptNumLen = defaultScriptNumLen

	// cltvMaxScriptNumLen is the maximum number of bytes data being
	// interpreted as an integer may be for the specialized CLTV/CSV
	// opcodes, which by BIP0065/BIP0112 allow a 5-byte operand so it can
	// represent values up to 2^39-1 (needed because locktimes run up to
	// the year 2106 and sequence values use all 32 bits).
	cltvMaxScriptNumLen = 5
)

// scriptNum represents a numeric value used in the scripting engine with
// special handling to deal with the subtle semantics required by consensus.
type scriptNum int64

// Bytes returns the number serialized as a little endian with a sign bit.
func (n scriptNum) Bytes() []byte {
	if n == 0 {
		return nil
	}

	isNegative := n < 0
	absoluteValue := n
	if isNegative {
		absoluteValue = -n
	}

	var result []byte
	for absoluteValue > 0 {
		result = append(result, byte(absoluteValue&0xff))
		absoluteValue >>= 8
	}

	if result[len(result)-1]&0x80 != 0 {
		extraByte := byte(0x00)
		if isNegative {
			extraByte = 0x80
		}
		result = append(result, extraByte)
	} else if isNegative {
		result[len(result)-1] |= 0x80
	}

	return result
}

// ScriptNumBytes encodes v using the consensus script number format: the
// representation CScriptNum pushes onto the stack, and the one expected by
// a BIP0034 coinbase height commitment.
func ScriptNumBytes(v int64) []byte {
	return scriptNum(v).Bytes()
}

// Int32 returns the script number clamped to a valid int32.
func (n scriptNum) Int32() int32 {
	const (
		min = -2147483648
		max = 2147483647
	)
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return int32(n)
}

// checkMinimalDataEncoding returns whether the given byte array adheres to
// the minimal encoding requirements.
func checkMinimalDataEncoding(v []byte) error {
	if len(v) == 0 {
		return nil
	}

	if v[len(v)-1]&0x7f == 0 {
		if len(v) == 1 || v[len(v)-2]&0x80 == 0 {
			str := fmt.Sprintf("numeric value encoded as %x is not minimally encoded", v)
			return scriptError(ErrMinimalData, str)
		}
	}
	return nil
}

// makeScriptNum interprets the passed serialized bytes as an encoded script
// number, returning the resulting script number.  Byte arrays longer than
// scriptNumLen are treated as overflow, returning an error.  When
// requireMinimal is true, non-minimally encoded values are also treated as
// errors.
func makeScriptNum(v []byte, requireMinimal bool, scriptNumLen int) (scriptNum, error) {
	if len(v) > scriptNumLen {
		str := fmt.Sprintf("numeric value encoded as %x is %d bytes which exceeds the max allowed of %d",
			v, len(v), scriptNumLen)
		return 0, scriptError(ErrNumberTooBig, str)
	}

	if requireMinimal {
		if err := checkMinimalDataEncoding(v); err != nil {
			return 0, err
		}
	}

	if len(v) == 0 {
		return 0, nil
	}

	var result int64
	for i, b := range v {
		result |= int64(b) << uint8(8*i)
	}

	if v[len(v)-1]&0x80 != 0 {
		result &= ^(int64(0x80) << uint8(8*(len(v)-1)))
		return scriptNum(-result), nil
	}

	return scriptNum(result), nil
}
