package interp

import (
	"github.com/timewinder-dev/tshirts/vm"
)

// Tracer receives the observational side channel: every executed NOOP and
// STOP, with its literal parameter.
type Tracer interface {
	Trace(inst vm.Instruction)
}

type TracerFunc func(inst vm.Instruction)

func (f TracerFunc) Trace(inst vm.Instruction) { f(inst) }

type nopTracer struct{}

func (nopTracer) Trace(vm.Instruction) {}
