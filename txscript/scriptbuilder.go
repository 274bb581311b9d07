// Copyright (c) 2014-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "fmt"

// DefaultScriptAlloc is the default size used for the backing array for a
// script being built by the ScriptBuilder.  The array will be reallocated as
// needed, but this figure is intended to provide enough space for vast
// majority of scripts without needing to grow the backing array multiple
// times.
const DefaultScriptAlloc = 500

// ScriptBuilder provides a facility for building custom scripts.  It allows
// you to push opcodes, ints, and data while respecting canonical encoding.
// In general it does not ensure the script will execute correctly, however
// any data pushes which would exceed the maximum allowed script engine limits
// and are therefore guaranteed not to execute will not be pushed and will
// result in the Script function returning an error.
type ScriptBuilder struct {
	script []byte
	err    error
}

// AddOp pushes the passed opcode to the end of the script.
func (b *ScriptBuilder) AddOp(opcode byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}

	if len(b.script)+1 > MaxScriptSize {
		b.err = fmt.Errorf("adding an opcode would exceed the maximum "+
			"allowed canonical script length of %d", MaxScriptSize)
		return b
	}

	b.script = append(b.script, opcode)
	return b
}

// AddOps pushes the passed opcodes to the end of the script.
func (b *ScriptBuilder) AddOps(opcodes []byte) *ScriptBuilder {
	for _, op := range opcodes {
		b.AddOp(op)
	}
	return b
}

// canonicalDataSize returns the number of bytes the canonical encoding of the
// data will take.
func canonicalDataSize(data []byte) int {
	dataLen := len(data)

	if dataLen == 0 {
		return 1
	}

	if dataLen == 1 && (data[0] <= 16 || data[0] == 0x81) {
		return 1
	}

	if dataLen < OP_PUSHDATA1 {
		return 1 + dataLen
	} else if dataLen <= 0xff {
		return 2 + dataLen
	} else if dataLen <= 0xffff {
		return 3 + dataLen
	}

	return 5 + dataLen
}

// addData is the internal function that actually pushes the passed data to
// the end of the script.  It automatically chooses canonical opcodes
// depending on the length of the data.
func (b *ScriptBuilder) addData(data []byte) *ScriptBuilder {
	dataLen := len(data)

	switch {
	case dataLen == 0 || (dataLen == 1 && data[0] == 0):
		b.script = append(b.script, OP_0)
		return b

	case dataLen == 1 && data[0] <= 16:
		b.script = append(b.script, byte(OP_1-1+data[0]))
		return b

	case dataLen == 1 && data[0] == 0x81:
		b.script = append(b.script, byte(OP_1NEGATE))
		return b
	}

	if dataLen < OP_PUSHDATA1 {
		b.script = append(b.script, byte((OP_DATA_1-1)+dataLen))
	} else if dataLen <= 0xff {
		b.script = append(b.script, OP_PUSHDATA1, byte(dataLen))
	} else if dataLen <= 0xffff {
		buf := make([]byte, 2)
		buf[0] = byte(dataLen)
		buf[1] = byte(dataLen >> 8)
		b.script = append(b.script, OP_PUSHDATA2)
		b.script = append(b.script, buf...)
	} else {
		buf := make([]byte, 4)
		buf[0] = byte(dataLen)
		buf[1] = byte(dataLen >> 8)
		buf[2] = byte(dataLen >> 16)
		buf[3] = byte(dataLen >> 24)
		b.script = append(b.script, OP_PUSHDATA4)
		b.script = append(b.script, buf...)
	}

	b.script = append(b.script, data...)
	return b
}

// AddFullData should not typically be used by ordinary users as it does not
// include the checks which prevent data pushes larger than the maximum
// allowed sizes which leads to scripts that can't be executed.  This is
// provided for testing purposes such as regression tests where sizes are
// intentionally made larger than allowed.
func (b *ScriptBuilder) AddFullData(data []byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	return b.addData(data)
}

// AddData pushes the passed data to the end of the script.  It automatically
// chooses canonical opcodes depending on the length of the data.
func (b *ScriptBuilder) AddData(data []byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}

	dataSize := canonicalDataSize(data)
	if len(b.script)+dataSize > MaxScriptSize {
		b.err = fmt.Errorf("adding %d bytes of data would exceed the "+
			"maximum allowed canonical script length of %d", dataSize,
			MaxScriptSize)
		return b
	}

	if len(data) > MaxScriptElementSize {
		b.err = fmt.Errorf("adding a data element of %d bytes would "+
			"exceed the maximum allowed script element size of %d",
			len(data), MaxScriptElementSize)
		return b
	}

	return b.addData(data)
}

// AddInt64 pushes the passed integer to the end of the script.
func (b *ScriptBuilder) AddInt64(val int64) *ScriptBuilder {
	if b.err != nil {
		return b
	}

	if len(b.script)+1 > MaxScriptSize {
		b.err = fmt.Errorf("adding an integer would exceed the maximum "+
			"allowed canonical script length of %d", MaxScriptSize)
		return b
	}

	if val == 0 {
		b.script = append(b.script, OP_0)
		return b
	}

	if val == -1 || (val >= 1 && val <= 16) {
		b.script = append(b.script, byte((OP_1-1)+val))
		return b
	}

	return b.AddData(scriptNum(val).Bytes())
}

// Reset resets the script so it has no content.
func (b *ScriptBuilder) Reset() *ScriptBuilder {
	b.script = b.script[0:0]
	b.err = nil
	return b
}

// Script returns the currently built script.  When any errors occurred while
// building the script, the script will be returned up to the point of the
// first error along with the error.
func (b *ScriptBuilder) Script() ([]byte, error) {
	return b.script, b.err
}

// NewScriptBuilder returns a new instance of a script builder.
func NewScriptBuilder() *ScriptBuilder {
	return &ScriptBuilder{
		script: make([]byte, 0, DefaultScriptAlloc),
	}
}
