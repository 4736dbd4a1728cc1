package interp

import (
	"github.com/rs/zerolog/log"
	"github.com/timewinder-dev/tshirts/vm"
)

// ErrorStep accompanies a non-nil error from Step.
const ErrorStep StepResult = -1

// Step executes exactly one instruction: it pops the opcode and parameter
// from the instruction stack, applies the opcode, then pushes the opcode
// and parameter onto the recycle stack. STOP yields HaltStep, which is not
// an error. A step that faults leaves the state as it was before the step.
func Step(s *State, tr Tracer) (StepResult, vm.Instruction, error) {
	if tr == nil {
		tr = nopTracer{}
	}
	instr := &s.Stacks[InstrStack]
	if instr.Len() < 2 {
		log.Trace().Int("instr_len", instr.Len()).Msg("Step: instruction stream exhausted")
		return ErrorStep, vm.Instruction{}, fault(vm.Instruction{}, InstrStack, ErrInstructionsExhausted)
	}
	code, _ := instr.Pop()
	arg, _ := instr.Pop()
	inst := vm.Instruction{Code: vm.Opcode(code), Arg: arg}

	if err := check(s, inst); err != nil {
		instr.Push(arg)
		instr.Push(code)
		log.Trace().Str("opcode", inst.Code.String()).Uint8("arg", uint8(arg)).Err(err).Msg("Step: fault")
		return ErrorStep, inst, err
	}

	oper := &s.Stacks[OperStack]
	ot, _ := oper.Top()
	log.Trace().
		Str("opcode", inst.Code.String()).
		Uint8("arg", uint8(arg)).
		Str("oper", oper.String()).
		Msg("Step: executing instruction")

	result := ContinueStep
	switch inst.Code {
	case vm.STOP:
		tr.Trace(inst)
		result = HaltStep
	case vm.MOVE_TO:
		if d, ok := oper.Pop(); ok {
			s.Stacks[arg].Push(d)
		}
	case vm.MOVE_FROM:
		if d, ok := s.Stacks[arg].Pop(); ok {
			oper.Push(d)
		}
	case vm.ADD_IMM:
		(*oper)[oper.Len()-1] = ot.Add(arg)
	case vm.MUL_IMM:
		(*oper)[oper.Len()-1] = ot.Mul(arg)
	case vm.ADD_STACK:
		// OT is read before the target is popped, so ADD-STACK #3 doubles OT.
		target := &s.Stacks[arg]
		a, _ := target.Pop()
		target.Push(a.Add(ot))
	case vm.MUL_STACK:
		target := &s.Stacks[arg]
		a, _ := target.Pop()
		target.Push(a.Mul(ot))
	case vm.NOOP:
		tr.Trace(inst)
	case vm.FLIP:
		s.Stacks[arg].Flip()
	case vm.EXCHANGE:
		other := int(ot)
		s.Stacks[arg], s.Stacks[other] = s.Stacks[other], s.Stacks[arg]
	}

	recycle := &s.Stacks[RecycleStack]
	recycle.Push(code)
	recycle.Push(arg)
	return result, inst, nil
}

// check validates operands against the state after the instruction pair
// has been popped, so opcodes that target the instruction stack itself see
// the stream as it will be when the effect runs.
func check(s *State, inst vm.Instruction) *Fault {
	if !inst.Code.Valid() {
		return fault(inst, InstrStack, vm.ErrDigitRange)
	}
	switch inst.Code.Param() {
	case vm.ParamStack:
		if !inst.Arg.Valid() {
			return fault(inst, int(inst.Arg), ErrStackIndex)
		}
	case vm.ParamValue:
		if !inst.Arg.Valid() {
			return fault(inst, OperStack, vm.ErrDigitRange)
		}
	}
	if !inst.Code.ReadsOT() {
		return nil
	}
	ot, ok := s.OT()
	if !ok {
		return fault(inst, OperStack, ErrOperandUnderflow)
	}
	switch inst.Code {
	case vm.ADD_IMM, vm.MUL_IMM:
		if !ot.Valid() {
			return fault(inst, OperStack, vm.ErrDigitRange)
		}
	case vm.ADD_STACK, vm.MUL_STACK:
		top, ok := s.Stacks[inst.Arg].Top()
		if !ok {
			return fault(inst, int(inst.Arg), ErrOperandUnderflow)
		}
		if !top.Valid() || !ot.Valid() {
			return fault(inst, int(inst.Arg), vm.ErrDigitRange)
		}
	case vm.EXCHANGE:
		if !ot.Valid() {
			return fault(inst, int(ot), ErrStackIndex)
		}
	}
	return nil
}
