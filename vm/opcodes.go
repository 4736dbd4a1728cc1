package vm

import "fmt"

type Opcode Digit

const (
	STOP      Opcode = iota // | halt | output is whatever sits on stack 9
	MOVE_TO                 // OT | push onto stack Arg | (no-op if OT is absent)
	MOVE_FROM               // | pop stack Arg | OT (no-op if stack Arg is empty)
	ADD_IMM                 // OT | OT + Arg | OT
	MUL_IMM                 // OT | OT * Arg | OT
	ADD_STACK               // OT, A=top(Arg) | top(Arg) = A + OT | OT unchanged
	MUL_STACK               // OT, A=top(Arg) | top(Arg) = A * OT | OT unchanged
	NOOP                    // | Arg is reported to the tracer |
	FLIP                    // | reverse stack Arg in place |
	EXCHANGE                // OT | swap stack Arg with stack OT wholesale | OT read, not consumed

	OpcodeMax
)

// ParamKind describes how an opcode interprets its parameter digit.
type ParamKind int

const (
	ParamIgnored ParamKind = iota
	ParamStack
	ParamValue
)

func (o Opcode) String() string {
	switch o {
	case STOP:
		return "STOP"
	case MOVE_TO:
		return "MOVE-TO"
	case MOVE_FROM:
		return "MOVE-FROM"
	case ADD_IMM:
		return "ADD-IMMEDIATE"
	case MUL_IMM:
		return "MUL-IMMEDIATE"
	case ADD_STACK:
		return "ADD-STACK"
	case MUL_STACK:
		return "MUL-STACK"
	case NOOP:
		return "NOOP"
	case FLIP:
		return "FLIP"
	case EXCHANGE:
		return "EXCHANGE"
	}
	return fmt.Sprintf("Opcode(%d)", uint8(o))
}

// Mnemonic is the short form used by program listings and the debugger.
func (o Opcode) Mnemonic() string {
	switch o {
	case STOP:
		return "stp"
	case MOVE_TO:
		return "mto"
	case MOVE_FROM:
		return "mfr"
	case ADD_IMM:
		return "adi"
	case MUL_IMM:
		return "mli"
	case ADD_STACK:
		return "ads"
	case MUL_STACK:
		return "mls"
	case NOOP:
		return "nop"
	case FLIP:
		return "flp"
	case EXCHANGE:
		return "xch"
	}
	return "???"
}

func (o Opcode) Param() ParamKind {
	switch o {
	case ADD_IMM, MUL_IMM:
		return ParamValue
	case MOVE_TO, MOVE_FROM, ADD_STACK, MUL_STACK, FLIP, EXCHANGE:
		return ParamStack
	}
	return ParamIgnored
}

// ReadsOT reports whether the opcode requires a value on the operations stack.
func (o Opcode) ReadsOT() bool {
	switch o {
	case ADD_IMM, MUL_IMM, ADD_STACK, MUL_STACK, EXCHANGE:
		return true
	}
	return false
}

func (o Opcode) Valid() bool {
	return o < OpcodeMax
}
