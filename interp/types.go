package interp

import (
	"fmt"
	"slices"

	"github.com/timewinder-dev/tshirts/vm"
)

// Stack roles. These are conventions only: every opcode that names a stack
// may name any of them.
const (
	ConstStack   = 0 // inexhaustible (in practice) source of White
	InstrStack   = 1 // instruction stream
	RecycleStack = 2 // consumed instructions
	OperStack    = 3 // top is OT
	GarbageStack = 4
	ScratchStack = 5 // 5 through 8
	OutputStack  = 9

	NumStacks = 10
)

// DefaultZeroSupply is how many Whites stack 0 starts with.
const DefaultZeroSupply = 1000

var stackNames = [NumStacks]string{
	"const", "instr", "recycle", "oper", "garbage",
	"scratch5", "scratch6", "scratch7", "scratch8", "output",
}

// StackName returns the conventional role name of stack i.
func StackName(i int) string {
	if i < 0 || i >= NumStacks {
		return fmt.Sprintf("stack%d", i)
	}
	return stackNames[i]
}

// Stack is a LIFO of digits stored top-last.
type Stack []vm.Digit

func (s *Stack) Push(d vm.Digit) {
	*s = append(*s, d)
}

func (s *Stack) Pop() (vm.Digit, bool) {
	if len(*s) == 0 {
		return 0, false
	}
	d := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return d, true
}

func (s Stack) Top() (vm.Digit, bool) {
	if len(s) == 0 {
		return 0, false
	}
	return s[len(s)-1], true
}

// Flip reverses the stack in place so the bottom becomes the top.
func (s Stack) Flip() {
	slices.Reverse(s)
}

func (s Stack) Len() int {
	return len(s)
}

// Contents returns a copy of the stack, top-last. It is never nil.
func (s Stack) Contents() []vm.Digit {
	return append([]vm.Digit{}, s...)
}

func (s Stack) String() string {
	b := make([]byte, 0, len(s)+2)
	b = append(b, '[')
	for _, d := range s {
		b = append(b, '0'+byte(d))
	}
	b = append(b, ']')
	return string(b)
}

type StepResult int

const (
	ContinueStep StepResult = iota
	HaltStep
)

func (r StepResult) String() string {
	switch r {
	case ContinueStep:
		return "Continue"
	case HaltStep:
		return "Halt"
	default:
		return fmt.Sprintf("Unknown(%d)", int(r))
	}
}
