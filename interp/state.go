package interp

import (
	"fmt"
	"io"
	"strings"

	"github.com/shamaton/msgpack/v2"
	"github.com/timewinder-dev/tshirts/vm"
)

// State is the whole machine: ten stacks and nothing else. Code and data
// share the same storage, so the program counter is simply the top of
// InstrStack.
type State struct {
	Stacks [NumStacks]Stack
}

// NewState seeds stack 0 with zeroSupply Whites and loads prog onto the
// instruction stack so that the first instruction's opcode is on top.
func NewState(prog *vm.Program, zeroSupply int) *State {
	s := &State{}
	for i := range s.Stacks {
		s.Stacks[i] = Stack{}
	}
	if zeroSupply > 0 {
		s.Stacks[ConstStack] = make(Stack, zeroSupply)
	}
	if prog != nil {
		instr := make(Stack, 0, 2*prog.Len())
		for i := prog.Len() - 1; i >= 0; i-- {
			inst := prog.Instructions[i]
			instr.Push(inst.Arg)
			instr.Push(vm.Digit(inst.Code))
		}
		s.Stacks[InstrStack] = instr
	}
	return s
}

func (s *State) Clone() *State {
	out := &State{}
	for i, st := range s.Stacks {
		out.Stacks[i] = Stack(st.Contents())
	}
	return out
}

// Stack returns stack i, or nil if i does not name a stack.
func (s *State) Stack(i int) *Stack {
	if i < 0 || i >= NumStacks {
		return nil
	}
	return &s.Stacks[i]
}

// OT is the top of the operations stack.
func (s *State) OT() (vm.Digit, bool) {
	return s.Stacks[OperStack].Top()
}

// Equal reports whether both states hold identical stacks.
func (s *State) Equal(o *State) bool {
	for i := range s.Stacks {
		if len(s.Stacks[i]) != len(o.Stacks[i]) {
			return false
		}
		for j := range s.Stacks[i] {
			if s.Stacks[i][j] != o.Stacks[i][j] {
				return false
			}
		}
	}
	return true
}

// stateWire is the canonical encoding: every stack is a non-nil byte
// string so equal states always serialize to equal bytes.
type stateWire struct {
	Stacks [][]byte `msgpack:"stacks"`
}

func (s *State) Serialize(w io.Writer) error {
	wire := stateWire{Stacks: make([][]byte, NumStacks)}
	for i, st := range s.Stacks {
		b := make([]byte, len(st))
		for j, d := range st {
			b[j] = byte(d)
		}
		wire.Stacks[i] = b
	}
	return msgpack.MarshalWrite(w, &wire)
}

func (s *State) Deserialize(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	var wire stateWire
	if err := msgpack.Unmarshal(data, &wire); err != nil {
		return err
	}
	if len(wire.Stacks) != NumStacks {
		return fmt.Errorf("decoding state: got %d stacks, want %d", len(wire.Stacks), NumStacks)
	}
	for i, b := range wire.Stacks {
		st := make(Stack, len(b))
		for j, c := range b {
			st[j] = vm.Digit(c)
			if !st[j].Valid() {
				return fmt.Errorf("decoding state: stack %d: %w", i, vm.ErrDigitRange)
			}
		}
		s.Stacks[i] = st
	}
	return nil
}

// PrettyPrint renders every stack on its own line, bottom to top, with the
// next instruction decoded from the top of the instruction stream.
func (s *State) PrettyPrint() string {
	var b strings.Builder
	for i, st := range s.Stacks {
		if i == ConstStack {
			fmt.Fprintf(&b, "%d %-9s (%d whites)\n", i, StackName(i), len(st))
			continue
		}
		fmt.Fprintf(&b, "%d %-9s %s\n", i, StackName(i), st)
	}
	if next, ok := s.NextInstruction(); ok {
		fmt.Fprintf(&b, "next: %s\n", next)
	} else {
		b.WriteString("next: (none)\n")
	}
	return b.String()
}

// NextInstruction decodes the pair on top of the instruction stack without
// consuming it.
func (s *State) NextInstruction() (vm.Instruction, bool) {
	instr := s.Stacks[InstrStack]
	if len(instr) < 2 {
		return vm.Instruction{}, false
	}
	return vm.Instruction{
		Code: vm.Opcode(instr[len(instr)-1]),
		Arg:  instr[len(instr)-2],
	}, true
}
