// Copyright (c) 2019 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "fmt"

// ScriptTokenizer provides a facility for easily and efficiently tokenizing
// transaction scripts without creating allocations.  Each successive
// opcode is parsed with the Next function, which returns false when iteration
// is complete, either due to successfully tokenizing the entire script or
// because a parse failure was encountered.
//
// The last error encountered, if any, is available via the Err function.
type ScriptTokenizer struct {
	script []byte
	offset int32
	op     *opcode
	data   []byte
	err    error
}

// Done returns true when either all opcodes have been exhausted or a parse
// failure was encountered and therefore the state has an associated error.
func (t *ScriptTokenizer) Done() bool {
	return t.err != nil || t.offset >= int32(len(t.script))
}

// Next attempts to parse the next opcode and returns whether or not it was
// successful.  It will not be successful if invoked when already at the end
// of the script, a parse failure is encountered, or an associated error
// already exists from a prior call.
func (t *ScriptTokenizer) Next() bool {
	if t.Done() {
		return false
	}

	opcodeVal := t.script[t.offset]
	op := &opcodeArray[opcodeVal]
	switch {
	// No additional data.  Note that some of the opcodes, notably OP_1NEGATE,
	// OP_0, and OP_1 through OP_16 represent the data themselves.
	case op.length == 1:
		t.offset++
		t.op = op
		t.data = nil
		return true

	// Data pushes of specific lengths -- OP_DATA_1 through OP_DATA_75.
	case op.length > 1:
		script := t.script[t.offset:]
		if len(script) < op.length {
			str := fmt.Sprintf("opcode %s requires %d bytes, but script only has %d remaining",
				op.name, op.length, len(script))
			t.err = scriptError(ErrMalformedPush, str)
			return false
		}

		t.offset += int32(op.length)
		t.op = op
		t.data = script[1:op.length]
		return true

	// Data pushes with parsed lengths -- OP_PUSHDATA1, OP_PUSHDATA2, and
	// OP_PUSHDATA4.
	case op.length < 0:
		script := t.script[t.offset+1:]
		if len(script) < -op.length {
			str := fmt.Sprintf("opcode %s requires %d bytes, but script only has %d remaining",
				op.name, -op.length, len(script))
			t.err = scriptError(ErrMalformedPush, str)
			return false
		}

		var dataLen int32
		switch op.length {
		case -1:
			dataLen = int32(script[0])
		case -2:
			dataLen = int32(script[0]) | int32(script[1])<<8
		case -4:
			dataLen = int32(script[0]) | int32(script[1])<<8 |
				int32(script[2])<<16 | int32(script[3])<<24
		default:
			str := fmt.Sprintf("invalid opcode length %d", op.length)
			t.err = scriptError(ErrMalformedPush, str)
			return false
		}

		script = script[-op.length:]
		if dataLen < 0 || int32(len(script)) < dataLen {
			str := fmt.Sprintf("opcode %s pushes %d bytes, but script only has %d remaining",
				op.name, dataLen, len(script))
			t.err = scriptError(ErrMalformedPush, str)
			return false
		}

		t.offset += 1 + int32(-op.length) + dataLen
		t.op = op
		t.data = script[:dataLen]
		return true
	}

	t.offset++
	t.op = op
	t.data = nil
	return true
}

// Script returns the full script associated with the tokenizer.
func (t *ScriptTokenizer) Script() []byte {
	return t.script
}

// ByteIndex returns the current offset into the full script that will be
// parsed next and therefore also implies everything before it has already
// been parsed.
func (t *ScriptTokenizer) ByteIndex() int32 {
	return t.offset
}

// Opcode returns the current opcode associated with the tokenizer.
func (t *ScriptTokenizer) Opcode() byte {
	if t.op == nil {
		return 0
	}
	return t.op.value
}

// Data returns the data associated with the most recently successfully parsed
// opcode.
func (t *ScriptTokenizer) Data() []byte {
	return t.data
}

// Err returns any errors currently associated with the tokenizer.
func (t *ScriptTokenizer) Err() error {
	return t.err
}

// MakeScriptTokenizer returns a new instance of a script tokenizer for the
// passed script.
func MakeScriptTokenizer(script []byte) ScriptTokenizer {
	return ScriptTokenizer{script: script}
}

// checkScriptParses returns an error if the provided script fails to parse.
func checkScriptParses(script []byte) error {
	tokenizer := MakeScriptTokenizer(script)
	for tokenizer.Next() {
	}
	return tokenizer.Err()
}

// finalOpcodeData returns the data associated with the final opcode in the
// script, or nil if none is found or an error occurs while parsing.
func finalOpcodeData(script []byte) []byte {
	var data []byte
	tokenizer := MakeScriptTokenizer(script)
	for tokenizer.Next() {
		data = tokenizer.Data()
	}
	if tokenizer.Err() != nil {
		return nil
	}
	return data
}

// IsPushOnlyScript returns whether or not the passed script only pushes data.
func IsPushOnlyScript(script []byte) bool {
	const scriptVersion = 0
	tokenizer := MakeScriptTokenizer(script)
	for tokenizer.Next() {
		if tokenizer.Opcode() > OP_16 {
			return false
		}
	}
	return tokenizer.Err() == nil
}

// removeOpcodeRaw will return the script minus any opcodes that match the
// passed opcode.
func removeOpcodeRaw(script []byte, opcodeVal byte) []byte {
	result := make([]byte, 0, len(script))
	tokenizer := MakeScriptTokenizer(script)
	for tokenizer.Next() {
		if tokenizer.Opcode() != opcodeVal {
			result = append(result, rawBytesFor(&tokenizer)...)
		}
	}
	return result
}

// removeOpcodeByData returns the script minus any opcodes that perform a
// canonical push of the passed data.
func removeOpcodeByData(script []byte, dataToRemove []byte) []byte {
	if !hasDataPush(script, dataToRemove) {
		return script
	}

	result := make([]byte, 0, len(script))
	tokenizer := MakeScriptTokenizer(script)
	for tokenizer.Next() {
		data := tokenizer.Data()
		if data == nil || !bytesEqual(data, dataToRemove) {
			result = append(result, rawBytesFor(&tokenizer)...)
		}
	}
	return result
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func hasDataPush(script []byte, dataToRemove []byte) bool {
	tokenizer := MakeScriptTokenizer(script)
	for tokenizer.Next() {
		if data := tokenizer.Data(); data != nil && bytesEqual(data, dataToRemove) {
			return true
		}
	}
	return false
}

// rawBytesFor returns the raw encoded bytes (opcode + any length prefix +
// data) of the opcode the tokenizer most recently parsed.
func rawBytesFor(t *ScriptTokenizer) []byte {
	op := t.op
	if op == nil {
		return nil
	}
	switch {
	case op.length == 1:
		return []byte{op.value}
	case op.length > 1:
		return t.script[t.offset-int32(op.length) : t.offset]
	default:
		return t.script[t.offset-1-int32(-op.length)-int32(len(t.data)) : t.offset]
	}
}
