package model

import (
	"fmt"
	"io"

	"github.com/gookit/color"
	"github.com/timewinder-dev/tshirts/vm"
)

// Reporter handles human-readable output while a program runs
type Reporter interface {
	Printf(format string, args ...interface{})
}

// SilentReporter does not output anything
type SilentReporter struct{}

func (r *SilentReporter) Printf(format string, args ...interface{}) {}

// ColorReporter outputs to a writer (typically stderr)
type ColorReporter struct {
	Writer io.Writer
}

func (r *ColorReporter) Printf(format string, args ...interface{}) {
	fmt.Fprintf(r.Writer, format, args...)
}

// TraceReporter turns NOOP and STOP trace events into report lines.
type TraceReporter struct {
	Reporter Reporter
}

func (t *TraceReporter) TraceStep(step int, inst vm.Instruction) {
	name := color.Magenta.Sprint(inst.Code.String())
	if inst.Code == vm.STOP {
		name = color.Red.Sprint(inst.Code.String())
	}
	t.Reporter.Printf("%s %s %d %s\n",
		color.Gray.Sprintf("[step %4d]", step), name, inst.Arg, Shirt(inst.Arg))
}
