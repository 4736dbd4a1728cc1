package interp

import (
	"errors"
	"fmt"

	"github.com/timewinder-dev/tshirts/vm"
)

var (
	ErrOperandUnderflow      = errors.New("operand underflow")
	ErrInstructionsExhausted = errors.New("instruction stream exhausted without STOP")
	ErrStackIndex            = errors.New("stack index out of range")
	ErrStepLimit             = errors.New("step limit reached before STOP")
)

// Fault is a fatal machine condition. It unwraps to one of the sentinel
// errors above, or to vm.ErrDigitRange for a malformed opcode.
type Fault struct {
	Inst  vm.Instruction
	Stack int
	Err   error
}

func (f *Fault) Error() string {
	if errors.Is(f.Err, ErrInstructionsExhausted) {
		return f.Err.Error()
	}
	return fmt.Sprintf("%s: stack %d (%s): %v", f.Inst, f.Stack, StackName(f.Stack), f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

func fault(inst vm.Instruction, stack int, err error) *Fault {
	return &Fault{Inst: inst, Stack: stack, Err: err}
}
