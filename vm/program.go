package vm

import (
	"errors"
	"fmt"
	"io"
)

// Instruction is an (opcode, parameter) pair. On the instruction stack the
// parameter sits directly beneath its opcode.
type Instruction struct {
	Code Opcode
	Arg  Digit
}

func (i Instruction) String() string {
	if i.Code.Param() == ParamStack {
		return fmt.Sprintf("%s #%d", i.Code, i.Arg)
	}
	return fmt.Sprintf("%s %d", i.Code, i.Arg)
}

// Program is the flat image handed to the machine at construction time.
type Program struct {
	Name         string
	Instructions []Instruction
}

var ErrDigitRange = errors.New("digit out of range")

// NewProgram builds a Program from a flat digit sequence grouped as
// opcode, parameter, opcode, parameter...
func NewProgram(name string, digits []Digit) (*Program, error) {
	if len(digits)%2 != 0 {
		return nil, fmt.Errorf("%s: %w (%d digits)", name, ErrUnpairedDigit, len(digits))
	}
	p := &Program{Name: name}
	for i := 0; i < len(digits); i += 2 {
		inst := Instruction{Code: Opcode(digits[i]), Arg: digits[i+1]}
		if !digits[i].Valid() || !inst.Arg.Valid() {
			return nil, fmt.Errorf("%s: instruction %d: %w", name, i/2, ErrDigitRange)
		}
		p.Instructions = append(p.Instructions, inst)
	}
	return p, nil
}

// Digits flattens the program back into its digit sequence.
func (p *Program) Digits() []Digit {
	out := make([]Digit, 0, 2*len(p.Instructions))
	for _, inst := range p.Instructions {
		out = append(out, Digit(inst.Code), inst.Arg)
	}
	return out
}

func (p *Program) Len() int {
	return len(p.Instructions)
}

func (p *Program) DebugPrint(w io.Writer) {
	fmt.Fprintf(w, "*** %s (%d instructions)\n", p.Name, len(p.Instructions))
	for i, inst := range p.Instructions {
		fmt.Fprintf(w, "  %03d: %d%d  %s  %s\n", i, uint8(inst.Code), uint8(inst.Arg), inst.Code.Mnemonic(), inst)
	}
}
