package model

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/timewinder-dev/tshirts/cas"
	"github.com/timewinder-dev/tshirts/history"
	"github.com/timewinder-dev/tshirts/interp"
	"github.com/timewinder-dev/tshirts/vm"
)

// An Executor is the context and entrypoint for running a program to halt.
type Executor struct {
	Program    *vm.Program
	Spec       *Spec
	Controller *history.Controller
	Reporter   Reporter

	// DebugWriter, when set, receives the machine state after every step.
	DebugWriter io.Writer
}

type RunResult struct {
	Steps       int
	Halted      bool
	Output      []vm.Digit
	Fingerprint cas.Hash
	Elapsed     time.Duration
}

func (e *Executor) Initialize() error {
	if e.Reporter == nil {
		e.Reporter = &SilentReporter{}
	}
	c, err := history.New(e.Program, e.Spec.HistoryConfig(&TraceReporter{Reporter: e.Reporter}))
	if err != nil {
		return err
	}
	e.Controller = c
	return nil
}

// RunToHalt advances the controller until STOP, a fault, or the run file's
// step limit.
func (e *Executor) RunToHalt() (*RunResult, error) {
	if e.Controller == nil {
		if err := e.Initialize(); err != nil {
			return nil, err
		}
	}
	start := time.Now()
	c := e.Controller
	for c.Phase() != history.Halted {
		if c.CurrentStep() >= e.Spec.Machine.MaxSteps {
			return e.failed(start, fmt.Errorf("after %d steps: %w", c.CurrentStep(), interp.ErrStepLimit))
		}
		st, _, err := c.Advance()
		if err != nil {
			return e.failed(start, err)
		}
		if e.DebugWriter != nil {
			fmt.Fprintf(e.DebugWriter, "--- step %d\n%s\n", c.CurrentStep(), st.PrettyPrint())
		}
	}
	return e.result(start)
}

// failed reports the partial result alongside the error that stopped the run.
func (e *Executor) failed(start time.Time, err error) (*RunResult, error) {
	res, rerr := e.result(start)
	if rerr != nil {
		return res, errors.Join(err, rerr)
	}
	return res, err
}

func (e *Executor) result(start time.Time) (*RunResult, error) {
	c := e.Controller
	res := &RunResult{
		Steps:   c.CurrentStep(),
		Halted:  c.Phase() == history.Halted,
		Elapsed: time.Since(start),
	}
	out, err := c.Stack(interp.OutputStack)
	if err != nil {
		return res, fmt.Errorf("reading output: %w", err)
	}
	res.Output = out
	fp, err := c.Fingerprint()
	if err != nil {
		return res, fmt.Errorf("fingerprinting final state: %w", err)
	}
	res.Fingerprint = fp
	return res, nil
}
