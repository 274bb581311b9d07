// Copyright (c) 2013-2022 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"crypto/sha1"
	"crypto/sha256"
	"fmt"
	"strings"

	"golang.org/x/crypto/ripemd160"

	"github.com/thoughtledger/consensus/chainhash"
	"github.com/thoughtledger/consensus/wire"
)

// An opcode defines the information related to a txscript opcode.  opfunc, if
// present, is the function to call to actually execute the opcode.
type opcode struct {
	value  byte
	name   string
	length int
	opfunc func(*opcode, []byte, *Engine) error
}

// These constants are the values of the official opcodes used on the btc
// wiki, in bitcoin core and in most if not all other references and
// software related to handling BTC scripts.
const (
	OP_0         = 0x00
	OP_FALSE     = 0x00
	OP_DATA_1    = 0x01
	OP_DATA_2    = 0x02
	OP_DATA_3    = 0x03
	OP_DATA_4    = 0x04
	OP_DATA_5    = 0x05
	OP_DATA_6    = 0x06
	OP_DATA_7    = 0x07
	OP_DATA_8    = 0x08
	OP_DATA_9    = 0x09
	OP_DATA_10   = 0x0a
	OP_DATA_11   = 0x0b
	OP_DATA_12   = 0x0c
	OP_DATA_13   = 0x0d
	OP_DATA_14   = 0x0e
	OP_DATA_15   = 0x0f
	OP_DATA_16   = 0x10
	OP_DATA_17   = 0x11
	OP_DATA_18   = 0x12
	OP_DATA_19   = 0x13
	OP_DATA_20   = 0x14
	OP_DATA_21   = 0x15
	OP_DATA_22   = 0x16
	OP_DATA_23   = 0x17
	OP_DATA_24   = 0x18
	OP_DATA_25   = 0x19
	OP_DATA_26   = 0x1a
	OP_DATA_27   = 0x1b
	OP_DATA_28   = 0x1c
	OP_DATA_29   = 0x1d
	OP_DATA_30   = 0x1e
	OP_DATA_31   = 0x1f
	OP_DATA_32   = 0x20
	OP_DATA_33   = 0x21
	OP_DATA_34   = 0x22
	OP_DATA_35   = 0x23
	OP_DATA_36   = 0x24
	OP_DATA_37   = 0x25
	OP_DATA_38   = 0x26
	OP_DATA_39   = 0x27
	OP_DATA_40   = 0x28
	OP_DATA_41   = 0x29
	OP_DATA_42   = 0x2a
	OP_DATA_43   = 0x2b
	OP_DATA_44   = 0x2c
	OP_DATA_45   = 0x2d
	OP_DATA_46   = 0x2e
	OP_DATA_47   = 0x2f
	OP_DATA_48   = 0x30
	OP_DATA_49   = 0x31
	OP_DATA_50   = 0x32
	OP_DATA_51   = 0x33
	OP_DATA_52   = 0x34
	OP_DATA_53   = 0x35
	OP_DATA_54   = 0x36
	OP_DATA_55   = 0x37
	OP_DATA_56   = 0x38
	OP_DATA_57   = 0x39
	OP_DATA_58   = 0x3a
	OP_DATA_59   = 0x3b
	OP_DATA_60   = 0x3c
	OP_DATA_61   = 0x3d
	OP_DATA_62   = 0x3e
	OP_DATA_63   = 0x3f
	OP_DATA_64   = 0x40
	OP_DATA_65   = 0x41
	OP_DATA_66   = 0x42
	OP_DATA_67   = 0x43
	OP_DATA_68   = 0x44
	OP_DATA_69   = 0x45
	OP_DATA_70   = 0x46
	OP_DATA_71   = 0x47
	OP_DATA_72   = 0x48
	OP_DATA_73   = 0x49
	OP_DATA_74   = 0x4a
	OP_DATA_75   = 0x4b
	OP_PUSHDATA1 = 0x4c
	OP_PUSHDATA2 = 0x4d
	OP_PUSHDATA4 = 0x4e
	OP_1NEGATE   = 0x4f
	OP_RESERVED  = 0x50
	OP_1         = 0x51
	OP_TRUE      = 0x51
	OP_2         = 0x52
	OP_3         = 0x53
	OP_4         = 0x54
	OP_5         = 0x55
	OP_6         = 0x56
	OP_7         = 0x57
	OP_8         = 0x58
	OP_9         = 0x59
	OP_10        = 0x5a
	OP_11        = 0x5b
	OP_12        = 0x5c
	OP_13        = 0x5d
	OP_14        = 0x5e
	OP_15        = 0x5f
	OP_16        = 0x60
	OP_NOP       = 0x61
	OP_VER       = 0x62
	OP_IF        = 0x63
	OP_NOTIF     = 0x64
	OP_VERIF     = 0x65
	OP_VERNOTIF  = 0x66
	OP_ELSE      = 0x67
	OP_ENDIF     = 0x68
	OP_VERIFY    = 0x69
	OP_RETURN    = 0x6a

	OP_TOALTSTACK   = 0x6b
	OP_FROMALTSTACK = 0x6c
	OP_2DROP        = 0x6d
	OP_2DUP         = 0x6e
	OP_3DUP         = 0x6f
	OP_2OVER        = 0x70
	OP_2ROT         = 0x71
	OP_2SWAP        = 0x72
	OP_IFDUP        = 0x73
	OP_DEPTH        = 0x74
	OP_DROP         = 0x75
	OP_DUP          = 0x76
	OP_NIP          = 0x77
	OP_OVER         = 0x78
	OP_PICK         = 0x79
	OP_ROLL         = 0x7a
	OP_ROT          = 0x7b
	OP_SWAP         = 0x7c
	OP_TUCK         = 0x7d

	OP_CAT    = 0x7e
	OP_SUBSTR = 0x7f
	OP_LEFT   = 0x80
	OP_RIGHT  = 0x81
	OP_SIZE   = 0x82

	OP_INVERT = 0x83
	OP_AND    = 0x84
	OP_OR     = 0x85
	OP_XOR    = 0x86
	OP_EQUAL  = 0x87

	OP_EQUALVERIFY = 0x88
	OP_RESERVED1   = 0x89
	OP_RESERVED2   = 0x8a

	OP_1ADD      = 0x8b
	OP_1SUB      = 0x8c
	OP_2MUL      = 0x8d
	OP_2DIV      = 0x8e
	OP_NEGATE    = 0x8f
	OP_ABS       = 0x90
	OP_NOT       = 0x91
	OP_0NOTEQUAL = 0x92

	OP_ADD    = 0x93
	OP_SUB    = 0x94
	OP_MUL    = 0x95
	OP_DIV    = 0x96
	OP_MOD    = 0x97
	OP_LSHIFT = 0x98
	OP_RSHIFT = 0x99

	OP_BOOLAND            = 0x9a
	OP_BOOLOR             = 0x9b
	OP_NUMEQUAL           = 0x9c
	OP_NUMEQUALVERIFY     = 0x9d
	OP_NUMNOTEQUAL        = 0x9e
	OP_LESSTHAN           = 0x9f
	OP_GREATERTHAN        = 0xa0
	OP_LESSTHANOREQUAL    = 0xa1
	OP_GREATERTHANOREQUAL = 0xa2
	OP_MIN                = 0xa3
	OP_MAX                = 0xa4
	OP_WITHIN             = 0xa5

	OP_RIPEMD160           = 0xa6
	OP_SHA1                = 0xa7
	OP_SHA256              = 0xa8
	OP_HASH160             = 0xa9
	OP_HASH256             = 0xaa
	OP_CODESEPARATOR       = 0xab
	OP_CHECKSIG            = 0xac
	OP_CHECKSIGVERIFY      = 0xad
	OP_CHECKMULTISIG       = 0xae
	OP_CHECKMULTISIGVERIFY = 0xaf

	OP_NOP1                = 0xb0
	OP_CHECKLOCKTIMEVERIFY = 0xb1
	OP_CHECKSEQUENCEVERIFY = 0xb2
	OP_NOP4                = 0xb3
	OP_NOP5                = 0xb4
	OP_NOP6                = 0xb5
	OP_NOP7                = 0xb6
	OP_NOP8                = 0xb7
	OP_NOP9                = 0xb8
	OP_NOP10               = 0xb9

	// OP_CHECKSIGADD is the tapscript-only signature-and-accumulate opcode
	// introduced by BIP0342, reusing the former OP_NOP10 wire position's
	// successor byte.
	OP_CHECKSIGADD = 0xba

	OP_UNKNOWN187 = 0xbb
	OP_UNKNOWN188 = 0xbc
	OP_UNKNOWN189 = 0xbd
	OP_UNKNOWN190 = 0xbe
	OP_UNKNOWN191 = 0xbf
	OP_UNKNOWN192 = 0xc0
	OP_UNKNOWN193 = 0xc1
	OP_UNKNOWN194 = 0xc2
	OP_UNKNOWN195 = 0xc3
	OP_UNKNOWN196 = 0xc4
	OP_UNKNOWN197 = 0xc5
	OP_UNKNOWN198 = 0xc6
	OP_UNKNOWN199 = 0xc7
	OP_UNKNOWN200 = 0xc8
	OP_UNKNOWN201 = 0xc9
	OP_UNKNOWN202 = 0xca
	OP_UNKNOWN203 = 0xcb
	OP_UNKNOWN204 = 0xcc
	OP_UNKNOWN205 = 0xcd
	OP_UNKNOWN206 = 0xce
	OP_UNKNOWN207 = 0xcf
	OP_UNKNOWN208 = 0xd0
	OP_UNKNOWN209 = 0xd1
	OP_UNKNOWN210 = 0xd2
	OP_UNKNOWN211 = 0xd3
	OP_UNKNOWN212 = 0xd4
	OP_UNKNOWN213 = 0xd5
	OP_UNKNOWN214 = 0xd6
	OP_UNKNOWN215 = 0xd7
	OP_UNKNOWN216 = 0xd8
	OP_UNKNOWN217 = 0xd9
	OP_UNKNOWN218 = 0xda
	OP_UNKNOWN219 = 0xdb
	OP_UNKNOWN220 = 0xdc
	OP_UNKNOWN221 = 0xdd
	OP_UNKNOWN222 = 0xde
	OP_UNKNOWN223 = 0xdf
	OP_UNKNOWN224 = 0xe0
	OP_UNKNOWN225 = 0xe1
	OP_UNKNOWN226 = 0xe2
	OP_UNKNOWN227 = 0xe3
	OP_UNKNOWN228 = 0xe4
	OP_UNKNOWN229 = 0xe5
	OP_UNKNOWN230 = 0xe6
	OP_UNKNOWN231 = 0xe7
	OP_UNKNOWN232 = 0xe8
	OP_UNKNOWN233 = 0xe9
	OP_UNKNOWN234 = 0xea
	OP_UNKNOWN235 = 0xeb
	OP_UNKNOWN236 = 0xec
	OP_UNKNOWN237 = 0xed
	OP_UNKNOWN238 = 0xee
	OP_UNKNOWN239 = 0xef
	OP_UNKNOWN240 = 0xf0
	OP_UNKNOWN241 = 0xf1
	OP_UNKNOWN242 = 0xf2
	OP_UNKNOWN243 = 0xf3
	OP_UNKNOWN244 = 0xf4
	OP_UNKNOWN245 = 0xf5
	OP_UNKNOWN246 = 0xf6
	OP_UNKNOWN247 = 0xf7
	OP_UNKNOWN248 = 0xf8
	OP_UNKNOWN249 = 0xf9

	OP_SMALLINTEGER = 0xfa
	OP_PUBKEYS      = 0xfb
	OP_UNKNOWN252   = 0xfc
	OP_PUBKEYHASH   = 0xfd
	OP_PUBKEY       = 0xfe
	OP_INVALIDOPCODE = 0xff
)

// Conditional execution constants.
const (
	OpCondFalse = 0
	OpCondTrue  = 1
	OpCondSkip  = 2
)

// opcodeArray holds details about all possible opcodes such as how many bytes
// the opcode and any associated data should take, its human-readable name,
// and the handler function.
var opcodeArray [256]opcode

func init() {
	populate := func(value byte, name string, length int, fn func(*opcode, []byte, *Engine) error) {
		opcodeArray[value] = opcode{value: value, name: name, length: length, opfunc: fn}
	}

	// Data push opcodes.
	populate(OP_0, "OP_0", 1, opcodeFalse)
	for i := OP_DATA_1; i <= OP_DATA_75; i++ {
		populate(byte(i), fmt.Sprintf("OP_DATA_%d", i), i+1, opcodePushData)
	}
	populate(OP_PUSHDATA1, "OP_PUSHDATA1", -1, opcodePushData)
	populate(OP_PUSHDATA2, "OP_PUSHDATA2", -2, opcodePushData)
	populate(OP_PUSHDATA4, "OP_PUSHDATA4", -4, opcodePushData)
	populate(OP_1NEGATE, "OP_1NEGATE", 1, opcodeNegate)
	populate(OP_RESERVED, "OP_RESERVED", 1, opcodeReserved)
	for i := OP_1; i <= OP_16; i++ {
		populate(byte(i), fmt.Sprintf("OP_%d", i-OP_1+1), 1, opcodeN)
	}

	populate(OP_NOP, "OP_NOP", 1, opcodeNop)
	populate(OP_VER, "OP_VER", 1, opcodeReserved)
	populate(OP_IF, "OP_IF", 1, opcodeIf)
	populate(OP_NOTIF, "OP_NOTIF", 1, opcodeNotIf)
	populate(OP_VERIF, "OP_VERIF", 1, opcodeReserved)
	populate(OP_VERNOTIF, "OP_VERNOTIF", 1, opcodeReserved)
	populate(OP_ELSE, "OP_ELSE", 1, opcodeElse)
	populate(OP_ENDIF, "OP_ENDIF", 1, opcodeEndif)
	populate(OP_VERIFY, "OP_VERIFY", 1, opcodeVerify)
	populate(OP_RETURN, "OP_RETURN", 1, opcodeReturn)

	populate(OP_TOALTSTACK, "OP_TOALTSTACK", 1, opcodeToAltStack)
	populate(OP_FROMALTSTACK, "OP_FROMALTSTACK", 1, opcodeFromAltStack)
	populate(OP_2DROP, "OP_2DROP", 1, opcode2Drop)
	populate(OP_2DUP, "OP_2DUP", 1, opcode2Dup)
	populate(OP_3DUP, "OP_3DUP", 1, opcode3Dup)
	populate(OP_2OVER, "OP_2OVER", 1, opcode2Over)
	populate(OP_2ROT, "OP_2ROT", 1, opcode2Rot)
	populate(OP_2SWAP, "OP_2SWAP", 1, opcode2Swap)
	populate(OP_IFDUP, "OP_IFDUP", 1, opcodeIfDup)
	populate(OP_DEPTH, "OP_DEPTH", 1, opcodeDepth)
	populate(OP_DROP, "OP_DROP", 1, opcodeDrop)
	populate(OP_DUP, "OP_DUP", 1, opcodeDup)
	populate(OP_NIP, "OP_NIP", 1, opcodeNip)
	populate(OP_OVER, "OP_OVER", 1, opcodeOver)
	populate(OP_PICK, "OP_PICK", 1, opcodePick)
	populate(OP_ROLL, "OP_ROLL", 1, opcodeRoll)
	populate(OP_ROT, "OP_ROT", 1, opcodeRot)
	populate(OP_SWAP, "OP_SWAP", 1, opcodeSwap)
	populate(OP_TUCK, "OP_TUCK", 1, opcodeTuck)

	populate(OP_CAT, "OP_CAT", 1, opcodeDisabled)
	populate(OP_SUBSTR, "OP_SUBSTR", 1, opcodeDisabled)
	populate(OP_LEFT, "OP_LEFT", 1, opcodeDisabled)
	populate(OP_RIGHT, "OP_RIGHT", 1, opcodeDisabled)
	populate(OP_SIZE, "OP_SIZE", 1, opcodeSize)

	populate(OP_INVERT, "OP_INVERT", 1, opcodeDisabled)
	populate(OP_AND, "OP_AND", 1, opcodeDisabled)
	populate(OP_OR, "OP_OR", 1, opcodeDisabled)
	populate(OP_XOR, "OP_XOR", 1, opcodeDisabled)
	populate(OP_EQUAL, "OP_EQUAL", 1, opcodeEqual)
	populate(OP_EQUALVERIFY, "OP_EQUALVERIFY", 1, opcodeEqualVerify)
	populate(OP_RESERVED1, "OP_RESERVED1", 1, opcodeReserved)
	populate(OP_RESERVED2, "OP_RESERVED2", 1, opcodeReserved)

	populate(OP_1ADD, "OP_1ADD", 1, opcode1Add)
	populate(OP_1SUB, "OP_1SUB", 1, opcode1Sub)
	populate(OP_2MUL, "OP_2MUL", 1, opcodeDisabled)
	populate(OP_2DIV, "OP_2DIV", 1, opcodeDisabled)
	populate(OP_NEGATE, "OP_NEGATE", 1, opcodeNegate)
	populate(OP_ABS, "OP_ABS", 1, opcodeAbs)
	populate(OP_NOT, "OP_NOT", 1, opcodeNot)
	populate(OP_0NOTEQUAL, "OP_0NOTEQUAL", 1, opcode0NotEqual)

	populate(OP_ADD, "OP_ADD", 1, opcodeAdd)
	populate(OP_SUB, "OP_SUB", 1, opcodeSub)
	populate(OP_MUL, "OP_MUL", 1, opcodeDisabled)
	populate(OP_DIV, "OP_DIV", 1, opcodeDisabled)
	populate(OP_MOD, "OP_MOD", 1, opcodeDisabled)
	populate(OP_LSHIFT, "OP_LSHIFT", 1, opcodeDisabled)
	populate(OP_RSHIFT, "OP_RSHIFT", 1, opcodeDisabled)

	populate(OP_BOOLAND, "OP_BOOLAND", 1, opcodeBoolAnd)
	populate(OP_BOOLOR, "OP_BOOLOR", 1, opcodeBoolOr)
	populate(OP_NUMEQUAL, "OP_NUMEQUAL", 1, opcodeNumEqual)
	populate(OP_NUMEQUALVERIFY, "OP_NUMEQUALVERIFY", 1, opcodeNumEqualVerify)
	populate(OP_NUMNOTEQUAL, "OP_NUMNOTEQUAL", 1, opcodeNumNotEqual)
	populate(OP_LESSTHAN, "OP_LESSTHAN", 1, opcodeLessThan)
	populate(OP_GREATERTHAN, "OP_GREATERTHAN", 1, opcodeGreaterThan)
	populate(OP_LESSTHANOREQUAL, "OP_LESSTHANOREQUAL", 1, opcodeLessThanOrEqual)
	populate(OP_GREATERTHANOREQUAL, "OP_GREATERTHANOREQUAL", 1, opcodeGreaterThanOrEqual)
	populate(OP_MIN, "OP_MIN", 1, opcodeMin)
	populate(OP_MAX, "OP_MAX", 1, opcodeMax)
	populate(OP_WITHIN, "OP_WITHIN", 1, opcodeWithin)

	populate(OP_RIPEMD160, "OP_RIPEMD160", 1, opcodeRipemd160)
	populate(OP_SHA1, "OP_SHA1", 1, opcodeSha1)
	populate(OP_SHA256, "OP_SHA256", 1, opcodeSha256)
	populate(OP_HASH160, "OP_HASH160", 1, opcodeHash160)
	populate(OP_HASH256, "OP_HASH256", 1, opcodeHash256)
	populate(OP_CODESEPARATOR, "OP_CODESEPARATOR", 1, opcodeCodeSeparator)
	populate(OP_CHECKSIG, "OP_CHECKSIG", 1, opcodeCheckSig)
	populate(OP_CHECKSIGVERIFY, "OP_CHECKSIGVERIFY", 1, opcodeCheckSigVerify)
	populate(OP_CHECKMULTISIG, "OP_CHECKMULTISIG", 1, opcodeCheckMultiSig)
	populate(OP_CHECKMULTISIGVERIFY, "OP_CHECKMULTISIGVERIFY", 1, opcodeCheckMultiSigVerify)

	populate(OP_NOP1, "OP_NOP1", 1, opcodeNop)
	populate(OP_CHECKLOCKTIMEVERIFY, "OP_CHECKLOCKTIMEVERIFY", 1, opcodeCheckLockTimeVerify)
	populate(OP_CHECKSEQUENCEVERIFY, "OP_CHECKSEQUENCEVERIFY", 1, opcodeCheckSequenceVerify)
	populate(OP_NOP4, "OP_NOP4", 1, opcodeNop)
	populate(OP_NOP5, "OP_NOP5", 1, opcodeNop)
	populate(OP_NOP6, "OP_NOP6", 1, opcodeNop)
	populate(OP_NOP7, "OP_NOP7", 1, opcodeNop)
	populate(OP_NOP8, "OP_NOP8", 1, opcodeNop)
	populate(OP_NOP9, "OP_NOP9", 1, opcodeNop)
	populate(OP_NOP10, "OP_NOP10", 1, opcodeNop)

	populate(OP_CHECKSIGADD, "OP_CHECKSIGADD", 1, opcodeCheckSigAdd)

	// OP_UNKNOWN187 through OP_UNKNOWN249 fall in the tapscript
	// OP_SUCCESS range: a tapscript containing any of them succeeds per
	// BIP0342 without being executed (applyTaprootProgram checks for
	// them, via isOpSuccess). Outside of tapscript they remain simply
	// invalid.
	for i := OP_UNKNOWN187; i <= OP_UNKNOWN249; i++ {
		populate(byte(i), fmt.Sprintf("OP_UNKNOWN%d", i), 1, opcodeInvalid)
	}

	populate(OP_SMALLINTEGER, "OP_SMALLINTEGER", 1, opcodeInvalid)
	populate(OP_PUBKEYS, "OP_PUBKEYS", 1, opcodeInvalid)
	populate(OP_UNKNOWN252, "OP_UNKNOWN252", 1, opcodeInvalid)
	populate(OP_PUBKEYHASH, "OP_PUBKEYHASH", 1, opcodeInvalid)
	populate(OP_PUBKEY, "OP_PUBKEY", 1, opcodeInvalid)
	populate(OP_INVALIDOPCODE, "OP_INVALIDOPCODE", 1, opcodeInvalid)
}

// isOpSuccess reports whether op is one of the tapscript OP_SUCCESSx values:
// any opcode not otherwise assigned meaning, per BIP0342's enumeration.
func isOpSuccess(op byte) bool {
	if op == 80 || op == 98 {
		return true
	}
	if op >= 126 && op <= 129 {
		return true
	}
	if op >= 131 && op <= 134 {
		return true
	}
	if op >= 137 && op <= 138 {
		return true
	}
	if op >= 141 && op <= 142 {
		return true
	}
	if op >= 149 && op <= 153 {
		return true
	}
	if op >= 187 && op <= 254 {
		return true
	}
	return false
}

// isSmallInt returns whether or not the opcode is considered a small integer,
// which is an OP_0, or OP_1 through OP_16.
func isSmallInt(op byte) bool {
	return op == OP_0 || (op >= OP_1 && op <= OP_16)
}

// asSmallInt returns the passed opcode, which must be true according to
// isSmallInt(), as an integer.
func asSmallInt(op byte) int {
	if op == OP_0 {
		return 0
	}
	return int(op - (OP_1 - 1))
}

// opcodeDisabled is a common handler for disabled opcodes. It returns an
// appropriate error indicating the opcode is disabled. While it would
// ordinarily make more sense to detect if the script contains any disabled
// opcodes before executing in an initial parse step, the consensus rules
// dictate the script doesn't fail until the program counter passes over a
// disabled opcode (even when they appear in a branch that is not executed).
func opcodeDisabled(op *opcode, data []byte, vm *Engine) error {
	str := fmt.Sprintf("attempt to execute disabled opcode %s", op.name)
	return scriptError(ErrDisabledOpcode, str)
}

// opcodeReserved is a common handler for opcodes that are reserved for future
// expansion, which means they always fail.
func opcodeReserved(op *opcode, data []byte, vm *Engine) error {
	str := fmt.Sprintf("attempt to execute reserved opcode %s", op.name)
	return scriptError(ErrReservedOpcode, str)
}

// opcodeInvalid is a common handler for invalid opcodes.
func opcodeInvalid(op *opcode, data []byte, vm *Engine) error {
	str := fmt.Sprintf("attempt to execute invalid opcode %s", op.name)
	return scriptError(ErrReservedOpcode, str)
}

// opcodeFalse pushes an empty array to the data stack to represent false.
func opcodeFalse(op *opcode, data []byte, vm *Engine) error {
	vm.dstack.PushByteArray(nil)
	return nil
}

// opcodePushData is the common handler for the vast majority of opcodes that
// push raw data (bytes) to the data stack.
func opcodePushData(op *opcode, data []byte, vm *Engine) error {
	vm.dstack.PushByteArray(data)
	return nil
}

// opcodeNegate pushes -1 to the data stack.
func opcodeNegate(op *opcode, data []byte, vm *Engine) error {
	vm.dstack.PushInt(scriptNum(-1))
	return nil
}

// opcodeN pushes the value associated with the opcode (which must be one of
// OP_1 through OP_16) onto the data stack.
func opcodeN(op *opcode, data []byte, vm *Engine) error {
	vm.dstack.PushInt(scriptNum(asSmallInt(op.value)))
	return nil
}

// opcodeNop is a common handler for the NOP family of opcodes.
func opcodeNop(op *opcode, data []byte, vm *Engine) error {
	switch op.value {
	case OP_NOP1, OP_NOP4, OP_NOP5, OP_NOP6, OP_NOP7, OP_NOP8, OP_NOP9, OP_NOP10:
		if vm.hasFlag(ScriptDiscourageUpgradableNops) {
			str := fmt.Sprintf("OP_NOP%d reserved for soft-fork upgrades",
				op.value-OP_NOP1+1)
			return scriptError(ErrDiscourageUpgradableNOPs, str)
		}
	}
	return nil
}

// popIfBool enforces the minimal-if rule (BIP0342) when active: the top
// stack element controlling an OP_IF/OP_NOTIF must be exactly empty or
// [0x01].
func popIfBool(vm *Engine) (bool, error) {
	if !vm.hasFlag(ScriptVerifyMinimalIf) {
		return vm.dstack.PopBool()
	}

	so, err := vm.dstack.PopByteArray()
	if err != nil {
		return false, err
	}
	if len(so) > 1 {
		return false, scriptError(ErrMinimalIf, "conditional has argument longer than 1 byte")
	}
	if len(so) == 1 && so[0] != 1 {
		return false, scriptError(ErrMinimalIf, "conditional argument is not 0x01 or empty")
	}
	return asBool(so), nil
}

// opcodeIf treats the top item on the data stack as a boolean and removes it.
func opcodeIf(op *opcode, data []byte, vm *Engine) error {
	condVal := OpCondFalse
	if vm.isBranchExecuting() {
		ok, err := popIfBool(vm)
		if err != nil {
			return err
		}
		if ok {
			condVal = OpCondTrue
		}
	} else {
		condVal = OpCondSkip
	}
	vm.condStack = append(vm.condStack, condVal)
	return nil
}

// opcodeNotIf treats the top item on the data stack as a boolean and removes
// it, then evaluates it as the inverse of OP_IF.
func opcodeNotIf(op *opcode, data []byte, vm *Engine) error {
	condVal := OpCondFalse
	if vm.isBranchExecuting() {
		ok, err := popIfBool(vm)
		if err != nil {
			return err
		}
		if !ok {
			condVal = OpCondTrue
		}
	} else {
		condVal = OpCondSkip
	}
	vm.condStack = append(vm.condStack, condVal)
	return nil
}

// opcodeElse inverts conditional execution for other half of if/else.
func opcodeElse(op *opcode, data []byte, vm *Engine) error {
	if len(vm.condStack) == 0 {
		str := fmt.Sprintf("encountered opcode %s with no matching opcode to begin conditional execution", op.name)
		return scriptError(ErrUnbalancedConditional, str)
	}

	conditionalIdx := len(vm.condStack) - 1
	switch vm.condStack[conditionalIdx] {
	case OpCondTrue:
		vm.condStack[conditionalIdx] = OpCondFalse
	case OpCondFalse:
		vm.condStack[conditionalIdx] = OpCondTrue
	case OpCondSkip:
		// Value doesn't change in skip since it indicates this opcode
		// is nested in a non-executed branch.
	}
	return nil
}

// opcodeEndif terminates a conditional block.
func opcodeEndif(op *opcode, data []byte, vm *Engine) error {
	if len(vm.condStack) == 0 {
		str := fmt.Sprintf("encountered opcode %s with no matching opcode to begin conditional execution", op.name)
		return scriptError(ErrUnbalancedConditional, str)
	}

	vm.condStack = vm.condStack[:len(vm.condStack)-1]
	return nil
}

// abstractVerify examines the top item on the data stack as a boolean value
// and verifies it evaluates to true.
func abstractVerify(op *opcode, vm *Engine, c ErrorCode) error {
	verified, err := vm.dstack.PopBool()
	if err != nil {
		return err
	}

	if !verified {
		str := fmt.Sprintf("%s failed", op.name)
		return scriptError(c, str)
	}
	return nil
}

// opcodeVerify examines the top item on the data stack as a boolean value and
// verifies it evaluates to true.
func opcodeVerify(op *opcode, data []byte, vm *Engine) error {
	return abstractVerify(op, vm, ErrVerify)
}

// opcodeReturn returns an appropriate error since it is always an error to
// return early from a script.
func opcodeReturn(op *opcode, data []byte, vm *Engine) error {
	return scriptError(ErrEarlyReturn, "script returned early")
}

func opcodeToAltStack(op *opcode, data []byte, vm *Engine) error {
	so, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	vm.astack.PushByteArray(so)
	return nil
}

func opcodeFromAltStack(op *opcode, data []byte, vm *Engine) error {
	so, err := vm.astack.PopByteArray()
	if err != nil {
		return err
	}
	vm.dstack.PushByteArray(so)
	return nil
}

func opcode2Drop(op *opcode, data []byte, vm *Engine) error {
	return vm.dstack.DropN(2)
}

func opcode2Dup(op *opcode, data []byte, vm *Engine) error {
	return vm.dstack.DupN(2)
}

func opcode3Dup(op *opcode, data []byte, vm *Engine) error {
	return vm.dstack.DupN(3)
}

func opcode2Over(op *opcode, data []byte, vm *Engine) error {
	return vm.dstack.OverN(2)
}

func opcode2Rot(op *opcode, data []byte, vm *Engine) error {
	return vm.dstack.RotN(2)
}

func opcode2Swap(op *opcode, data []byte, vm *Engine) error {
	return vm.dstack.SwapN(2)
}

func opcodeIfDup(op *opcode, data []byte, vm *Engine) error {
	so, err := vm.dstack.PeekByteArray(0)
	if err != nil {
		return err
	}
	if asBool(so) {
		vm.dstack.PushByteArray(so)
	}
	return nil
}

func opcodeDepth(op *opcode, data []byte, vm *Engine) error {
	vm.dstack.PushInt(scriptNum(vm.dstack.Depth()))
	return nil
}

func opcodeDrop(op *opcode, data []byte, vm *Engine) error {
	return vm.dstack.DropN(1)
}

func opcodeDup(op *opcode, data []byte, vm *Engine) error {
	return vm.dstack.DupN(1)
}

func opcodeNip(op *opcode, data []byte, vm *Engine) error {
	return vm.dstack.NipN(1)
}

func opcodeOver(op *opcode, data []byte, vm *Engine) error {
	return vm.dstack.OverN(1)
}

func opcodePick(op *opcode, data []byte, vm *Engine) error {
	return vm.dstack.PickN()
}

func opcodeRoll(op *opcode, data []byte, vm *Engine) error {
	return vm.dstack.RollN()
}

func opcodeRot(op *opcode, data []byte, vm *Engine) error {
	return vm.dstack.RotN(1)
}

func opcodeSwap(op *opcode, data []byte, vm *Engine) error {
	return vm.dstack.SwapN(1)
}

func opcodeTuck(op *opcode, data []byte, vm *Engine) error {
	return vm.dstack.Tuck()
}

func opcodeSize(op *opcode, data []byte, vm *Engine) error {
	so, err := vm.dstack.PeekByteArray(0)
	if err != nil {
		return err
	}
	vm.dstack.PushInt(scriptNum(len(so)))
	return nil
}

func opcodeEqual(op *opcode, data []byte, vm *Engine) error {
	a, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	b, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}

	vm.dstack.PushBool(bytes.Equal(a, b))
	return nil
}

func opcodeEqualVerify(op *opcode, data []byte, vm *Engine) error {
	if err := opcodeEqual(op, data, vm); err != nil {
		return err
	}
	return abstractVerify(op, vm, ErrEqualVerify)
}

func opcode1Add(op *opcode, data []byte, vm *Engine) error {
	m, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushInt(m + 1)
	return nil
}

func opcode1Sub(op *opcode, data []byte, vm *Engine) error {
	m, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushInt(m - 1)
	return nil
}

func opcodeAbs(op *opcode, data []byte, vm *Engine) error {
	m, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	if m < 0 {
		m = -m
	}
	vm.dstack.PushInt(m)
	return nil
}

func opcodeNot(op *opcode, data []byte, vm *Engine) error {
	m, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	if m == 0 {
		vm.dstack.PushInt(scriptNum(1))
	} else {
		vm.dstack.PushInt(scriptNum(0))
	}
	return nil
}

func opcode0NotEqual(op *opcode, data []byte, vm *Engine) error {
	m, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	if m != 0 {
		m = 1
	}
	vm.dstack.PushInt(m)
	return nil
}

func opcodeAdd(op *opcode, data []byte, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushInt(a + b)
	return nil
}

func opcodeSub(op *opcode, data []byte, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushInt(a - b)
	return nil
}

func opcodeBoolAnd(op *opcode, data []byte, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	if a != 0 && b != 0 {
		vm.dstack.PushInt(scriptNum(1))
	} else {
		vm.dstack.PushInt(scriptNum(0))
	}
	return nil
}

func opcodeBoolOr(op *opcode, data []byte, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	if a != 0 || b != 0 {
		vm.dstack.PushInt(scriptNum(1))
	} else {
		vm.dstack.PushInt(scriptNum(0))
	}
	return nil
}

func opcodeNumEqual(op *opcode, data []byte, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(a == b)
	return nil
}

func opcodeNumEqualVerify(op *opcode, data []byte, vm *Engine) error {
	if err := opcodeNumEqual(op, data, vm); err != nil {
		return err
	}
	return abstractVerify(op, vm, ErrNumEqualVerify)
}

func opcodeNumNotEqual(op *opcode, data []byte, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(a != b)
	return nil
}

func opcodeLessThan(op *opcode, data []byte, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(a < b)
	return nil
}

func opcodeGreaterThan(op *opcode, data []byte, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(a > b)
	return nil
}

func opcodeLessThanOrEqual(op *opcode, data []byte, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(a <= b)
	return nil
}

func opcodeGreaterThanOrEqual(op *opcode, data []byte, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(a >= b)
	return nil
}

func opcodeMin(op *opcode, data []byte, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	if a < b {
		vm.dstack.PushInt(a)
	} else {
		vm.dstack.PushInt(b)
	}
	return nil
}

func opcodeMax(op *opcode, data []byte, vm *Engine) error {
	b, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	a, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	if a > b {
		vm.dstack.PushInt(a)
	} else {
		vm.dstack.PushInt(b)
	}
	return nil
}

func opcodeWithin(op *opcode, data []byte, vm *Engine) error {
	maxVal, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	minVal, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	x, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	vm.dstack.PushBool(x >= minVal && x < maxVal)
	return nil
}

func opcodeRipemd160(op *opcode, data []byte, vm *Engine) error {
	buf, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	h := ripemd160.New()
	h.Write(buf)
	vm.dstack.PushByteArray(h.Sum(nil))
	return nil
}

func opcodeSha1(op *opcode, data []byte, vm *Engine) error {
	buf, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	hash := sha1.Sum(buf)
	vm.dstack.PushByteArray(hash[:])
	return nil
}

func opcodeSha256(op *opcode, data []byte, vm *Engine) error {
	buf, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	hash := sha256.Sum256(buf)
	vm.dstack.PushByteArray(hash[:])
	return nil
}

func opcodeHash160(op *opcode, data []byte, vm *Engine) error {
	buf, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	sh := sha256.Sum256(buf)
	h := ripemd160.New()
	h.Write(sh[:])
	vm.dstack.PushByteArray(h.Sum(nil))
	return nil
}

func opcodeHash256(op *opcode, data []byte, vm *Engine) error {
	buf, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	vm.dstack.PushByteArray(chainhash.DoubleHashB(buf))
	return nil
}

func opcodeCodeSeparator(op *opcode, data []byte, vm *Engine) error {
	vm.lastCodeSep = vm.tokenizer.ByteIndex()
	return nil
}

func opcodeCheckSig(op *opcode, data []byte, vm *Engine) error {
	pkBytes, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}

	fullSigBytes, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}

	if vm.sigVersion == sigVersionTapscript {
		if len(fullSigBytes) == 0 {
			vm.dstack.PushBool(false)
			return nil
		}
		if err := vm.consumeSigOpBudget(); err != nil {
			return err
		}
		valid, err := vm.verifyTaprootSig(pkBytes, fullSigBytes)
		if err != nil {
			return err
		}
		vm.dstack.PushBool(valid)
		return nil
	}

	if len(fullSigBytes) == 0 {
		vm.dstack.PushBool(false)
		return nil
	}

	verifier, err := newBaseSigVerifier(pkBytes, fullSigBytes, vm)
	if err != nil {
		if vm.hasFlag(ScriptVerifyNullFail) && len(fullSigBytes) > 0 {
			str := "signature not empty on failed checksig"
			return scriptError(ErrNullFail, str)
		}
		vm.dstack.PushBool(false)
		return nil
	}
	valid := verifier.Verify()

	if !valid && vm.hasFlag(ScriptVerifyNullFail) && len(fullSigBytes) > 0 {
		str := "signature not empty on failed checksig"
		return scriptError(ErrNullFail, str)
	}

	vm.dstack.PushBool(valid)
	return nil
}

func opcodeCheckSigVerify(op *opcode, data []byte, vm *Engine) error {
	if err := opcodeCheckSig(op, data, vm); err != nil {
		return err
	}
	return abstractVerify(op, vm, ErrCheckSigVerify)
}

// opcodeCheckSigAdd implements BIP0342's OP_CHECKSIGADD, tapscript's
// replacement for OP_CHECKMULTISIG: pop pubkey, n, sig (in that stack order),
// push n+1 if the signature is valid and non-empty, else n. Only meaningful
// under tapscript execution; in legacy/segwit-v0 scripts it fails with
// ErrReservedOpcode.
func opcodeCheckSigAdd(op *opcode, data []byte, vm *Engine) error {
	if vm.sigVersion != sigVersionTapscript {
		str := "OP_CHECKSIGADD only valid in tapscript"
		return scriptError(ErrReservedOpcode, str)
	}

	pubKey, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	n, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	sig, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}

	if len(sig) == 0 {
		vm.dstack.PushInt(n)
		return nil
	}

	if err := vm.consumeSigOpBudget(); err != nil {
		return err
	}

	valid, err := vm.verifyTaprootSig(pubKey, sig)
	if err != nil {
		return err
	}
	if valid {
		vm.dstack.PushInt(n + 1)
	} else {
		vm.dstack.PushInt(n)
	}
	return nil
}

func opcodeCheckMultiSig(op *opcode, data []byte, vm *Engine) error {
	numKeys, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	numPubKeys := int(numKeys)
	if numPubKeys < 0 || numPubKeys > MaxPubKeysPerMultiSig {
		str := fmt.Sprintf("number of pubkeys %d is negative or more than max allowed %d",
			numPubKeys, MaxPubKeysPerMultiSig)
		return scriptError(ErrInvalidPubKeyCount, str)
	}
	vm.numOps += numPubKeys
	if vm.numOps > MaxOpsPerScript {
		str := fmt.Sprintf("exceeded max operation limit of %d", MaxOpsPerScript)
		return scriptError(ErrTooManyOperations, str)
	}

	pubKeys := make([][]byte, 0, numPubKeys)
	for i := 0; i < numPubKeys; i++ {
		pubKey, err := vm.dstack.PopByteArray()
		if err != nil {
			return err
		}
		pubKeys = append(pubKeys, pubKey)
	}

	numSigs, err := vm.dstack.PopInt()
	if err != nil {
		return err
	}
	numSignatures := int(numSigs)
	if numSignatures < 0 || numSignatures > numPubKeys {
		str := fmt.Sprintf("number of signatures %d is negative or more than the number of pubkeys %d",
			numSignatures, numPubKeys)
		return scriptError(ErrInvalidSignatureCount, str)
	}

	signatures := make([][]byte, 0, numSignatures)
	for i := 0; i < numSignatures; i++ {
		signature, err := vm.dstack.PopByteArray()
		if err != nil {
			return err
		}
		signatures = append(signatures, signature)
	}

	// A bug in the original Satoshi client requires that a bogus extra
	// item be popped off the stack before verification.
	dummy, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	if vm.hasFlag(ScriptStrictMultiSig) && len(dummy) != 0 {
		str := fmt.Sprintf("multisig dummy argument has length %d instead of 0", len(dummy))
		return scriptError(ErrSigNullDummy, str)
	}

	script := vm.subScript()
	for _, sigInfo := range signatures {
		script = removeOpcodeByData(script, sigInfo)
	}

	success := true
	numPubKeysUsed := 0
	numSignaturesUsed := 0
	signatureIdx := 0
	for numSignaturesUsed < numSignatures && success {
		if signatureIdx == numSignatures || numPubKeysUsed == numPubKeys {
			success = false
			break
		}

		pubKey := pubKeys[numPubKeysUsed]
		sigBytes := signatures[signatureIdx]

		if len(sigBytes) == 0 {
			numPubKeysUsed++
			continue
		}

		parsedPubKey, parsedSig, hashType, err := parseBaseSigAndPubkey(pubKey, sigBytes, vm)
		if err != nil {
			numPubKeysUsed++
			continue
		}

		subScript := removeOpcodeByData(script, sigBytes)
		var sigHash []byte
		if vm.sigVersion == sigVersionWitnessV0 {
			var err error
			sigHash, err = CalcWitnessSigHash(subScript, vm.hashCache, hashType,
				&vm.tx, vm.txIdx, vm.inputAmount)
			if err != nil {
				numPubKeysUsed++
				continue
			}
		} else {
			sigHash = calcLegacySignatureHash(subScript, hashType, &vm.tx, vm.txIdx)
		}

		var valid bool
		if vm.sigCache != nil {
			var sigHashBytes chainhash.Hash
			copy(sigHashBytes[:], sigHash)
			valid = vm.sigCache.Exists(sigHashBytes, sigBytes[:len(sigBytes)-1], pubKey)
			if !valid && parsedSig.Verify(sigHash, parsedPubKey) {
				vm.sigCache.Add(sigHashBytes, sigBytes[:len(sigBytes)-1], pubKey)
				valid = true
			}
		} else {
			valid = parsedSig.Verify(sigHash, parsedPubKey)
		}

		if valid {
			numSignaturesUsed++
			signatureIdx++
		}
		numPubKeysUsed++
	}

	if !success && vm.hasFlag(ScriptVerifyNullFail) {
		for _, sig := range signatures {
			if len(sig) > 0 {
				str := "not all signatures empty on failed checkmultisig"
				return scriptError(ErrNullFail, str)
			}
		}
	}

	vm.dstack.PushBool(success)
	return nil
}

func opcodeCheckMultiSigVerify(op *opcode, data []byte, vm *Engine) error {
	if err := opcodeCheckMultiSig(op, data, vm); err != nil {
		return err
	}
	return abstractVerify(op, vm, ErrCheckMultiSigVerify)
}

// opcodeCheckLockTimeVerify implements BIP0065: compares the top stack item
// against the transaction's locktime and fails unless the input being
// validated has left itself open to modification by setting a sequence
// number other than maxint.
func opcodeCheckLockTimeVerify(op *opcode, data []byte, vm *Engine) error {
	if !vm.hasFlag(ScriptVerifyCheckLockTimeVerify) {
		if vm.hasFlag(ScriptDiscourageUpgradableNops) {
			return scriptError(ErrDiscourageUpgradableNOPs,
				"OP_NOP2 reserved for soft-fork upgrades")
		}
		return nil
	}

	so, err := vm.dstack.PeekByteArray(0)
	if err != nil {
		return err
	}
	lockTime, err := makeScriptNum(so, vm.dstack.verifyMinimalData, cltvMaxScriptNumLen)
	if err != nil {
		return err
	}
	if lockTime < 0 {
		str := fmt.Sprintf("negative lock time: %d", lockTime)
		return scriptError(ErrNegativeLockTime, str)
	}

	const lockTimeThreshold = 500000000
	txLockTime := int64(vm.tx.LockTime)
	if !((txLockTime < lockTimeThreshold && int64(lockTime) < lockTimeThreshold) ||
		(txLockTime >= lockTimeThreshold && int64(lockTime) >= lockTimeThreshold)) {
		str := fmt.Sprintf("mismatched locktime types -- tx locktime %d, stack locktime %d",
			txLockTime, lockTime)
		return scriptError(ErrUnsatisfiedLockTime, str)
	}

	if int64(lockTime) > txLockTime {
		str := fmt.Sprintf("locktime requirement not satisfied -- locktime is greater than the transaction locktime: %d > %d",
			lockTime, txLockTime)
		return scriptError(ErrUnsatisfiedLockTime, str)
	}

	if vm.tx.TxIn[vm.txIdx].Sequence == wire.MaxTxInSequenceNum {
		return scriptError(ErrUnsatisfiedLockTime,
			"transaction input is finalized")
	}

	return nil
}

// opcodeCheckSequenceVerify implements BIP0112.
func opcodeCheckSequenceVerify(op *opcode, data []byte, vm *Engine) error {
	if !vm.hasFlag(ScriptVerifyCheckSequenceVerify) {
		if vm.hasFlag(ScriptDiscourageUpgradableNops) {
			return scriptError(ErrDiscourageUpgradableNOPs,
				"OP_NOP3 reserved for soft-fork upgrades")
		}
		return nil
	}

	so, err := vm.dstack.PeekByteArray(0)
	if err != nil {
		return err
	}
	stackSequence, err := makeScriptNum(so, vm.dstack.verifyMinimalData, cltvMaxScriptNumLen)
	if err != nil {
		return err
	}
	if stackSequence < 0 {
		str := fmt.Sprintf("negative sequence: %d", stackSequence)
		return scriptError(ErrNegativeLockTime, str)
	}

	sequence := int64(stackSequence)

	const (
		sequenceLockTimeDisabled  = 1 << 31
		sequenceLockTimeIsSeconds = 1 << 22
		sequenceLockTimeMask      = 0x0000ffff
	)

	if sequence&sequenceLockTimeDisabled != 0 {
		return nil
	}

	if vm.tx.Version < 2 {
		str := fmt.Sprintf("invalid transaction version: %d", vm.tx.Version)
		return scriptError(ErrUnsatisfiedLockTime, str)
	}

	txSequence := int64(vm.tx.TxIn[vm.txIdx].Sequence)
	if txSequence&sequenceLockTimeDisabled != 0 {
		str := fmt.Sprintf("transaction sequence has sequence locktime disabled bit set: 0x%x",
			txSequence)
		return scriptError(ErrUnsatisfiedLockTime, str)
	}

	if !((txSequence&sequenceLockTimeIsSeconds) == (sequence&sequenceLockTimeIsSeconds) ||
		(txSequence&sequenceLockTimeIsSeconds) != 0 && (sequence&sequenceLockTimeIsSeconds) != 0) {
		str := fmt.Sprintf("mismatched locktime types -- tx sequence %d, stack sequence %d",
			txSequence, sequence)
		return scriptError(ErrUnsatisfiedLockTime, str)
	}

	if sequence&sequenceLockTimeMask > txSequence&sequenceLockTimeMask {
		str := fmt.Sprintf("locktime requirement not satisfied -- locktime is greater than the transaction locktime: %d > %d",
			sequence&sequenceLockTimeMask, txSequence&sequenceLockTimeMask)
		return scriptError(ErrUnsatisfiedLockTime, str)
	}

	return nil
}

// asBool gets the boolean value of the byte array.
func asBool(t []byte) bool {
	for i := range t {
		if t[i] != 0 {
			if i == len(t)-1 && t[i] == 0x80 {
				return false
			}
			return true
		}
	}
	return false
}

// disasmOpcode writes a human-readable disassembly of the opcode and any
// associated data to buf.
func disasmOpcode(buf *strings.Builder, op *opcode, data []byte, compact bool) {
	opName := op.name
	if compact {
		opName = strings.TrimPrefix(opName, "OP_")
	}

	if op.length == 1 {
		buf.WriteString(opName)
		return
	}

	if data == nil {
		buf.WriteString(opName)
		return
	}

	if compact {
		buf.WriteString(fmt.Sprintf("%x", data))
	} else {
		buf.WriteString(fmt.Sprintf("%s 0x%02x 0x%x", opName, len(data), data))
	}
}

