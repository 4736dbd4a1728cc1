// Package history turns the strictly forward machine into one that can be
// navigated in both directions. It keeps no per-step record: the only thing
// retained is the initial snapshot, and moving backwards means replaying
// from it.
package history

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/timewinder-dev/tshirts/cas"
	"github.com/timewinder-dev/tshirts/interp"
	"github.com/timewinder-dev/tshirts/vm"
)

type Phase int

const (
	Built Phase = iota
	Running
	Halted
	Errored
)

func (p Phase) String() string {
	switch p {
	case Built:
		return "Built"
	case Running:
		return "Running"
	case Halted:
		return "Halted"
	case Errored:
		return "Errored"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// ErrFrozen is returned by every navigation call once the controller has
// faulted. It wraps the original fault.
var ErrFrozen = errors.New("machine faulted, no further steps permitted")

// StepTracer receives NOOP and STOP instructions along with the step
// number at which they executed.
type StepTracer interface {
	TraceStep(step int, inst vm.Instruction)
}

type Config struct {
	// ZeroSupply is the number of Whites stack 0 starts with. Zero means
	// interp.DefaultZeroSupply; a negative value starts stack 0 empty.
	ZeroSupply int
	// CacheSize bounds the snapshot read cache.
	CacheSize int
	Tracer    StepTracer
}

type Controller struct {
	ID uuid.UUID

	program *vm.Program
	store   cas.CAS
	origin  cas.Hash
	tracer  StepTracer

	state *interp.State
	step  int
	phase Phase
	err   error

	// reported is the highest step whose trace output has been delivered.
	// While replaying, steps at or below it stay silent.
	reported  int
	replaying bool
}

// New builds the initial machine state for prog and snapshots it.
func New(prog *vm.Program, cfg Config) (*Controller, error) {
	if prog == nil {
		return nil, errors.New("history: nil program")
	}
	if cfg.ZeroSupply == 0 {
		cfg.ZeroSupply = interp.DefaultZeroSupply
	}
	c := &Controller{
		ID:      uuid.New(),
		program: prog,
		store:   cas.NewLRUCache(cas.NewMemoryCAS(), cfg.CacheSize),
		tracer:  cfg.Tracer,
		state:   interp.NewState(prog, cfg.ZeroSupply),
	}
	h, err := c.store.Put(c.state)
	if err != nil {
		return nil, fmt.Errorf("storing initial snapshot: %w", err)
	}
	c.origin = h
	log.Debug().
		Str("session", c.ID.String()).
		Str("program", prog.Name).
		Int("instructions", prog.Len()).
		Uint64("snapshot", uint64(h)).
		Msg("history: built")
	return c, nil
}

func (c *Controller) Program() *vm.Program { return c.program }
func (c *Controller) CurrentStep() int     { return c.step }
func (c *Controller) Phase() Phase         { return c.phase }

// Err returns the fault that froze the controller, if any.
func (c *Controller) Err() error { return c.err }

// State returns a deep copy of the live machine.
func (c *Controller) State() *interp.State {
	return c.state.Clone()
}

// Stack returns the contents of stack i, top-last.
func (c *Controller) Stack(i int) ([]vm.Digit, error) {
	st := c.state.Stack(i)
	if st == nil {
		return nil, fmt.Errorf("stack %d: %w", i, interp.ErrStackIndex)
	}
	return st.Contents(), nil
}

// Advance executes exactly one instruction and always traces it, even when
// the step was already visited before a backward seek. Once halted it is a
// no-op that reports the halted state again.
func (c *Controller) Advance() (*interp.State, bool, error) {
	if err := c.advance(); err != nil {
		return nil, false, err
	}
	return c.State(), c.phase == Halted, nil
}

// Seek moves to step target. Targets at or before the current step are
// reached by restoring the snapshot and replaying target steps, so a
// backward seek costs as much as running forward from step 0 to target,
// no matter how close target is to the current step. Targets past the
// current step continue from the live state. Either way the walk stops
// early if the machine halts, and no intermediate state is surfaced. Only
// steps past the furthest one reached so far are traced.
// Negative targets are treated as 0.
func (c *Controller) Seek(target int) (*interp.State, bool, error) {
	if c.phase == Errored {
		return nil, false, c.frozen()
	}
	if target < 0 {
		target = 0
	}
	if target <= c.step {
		if err := c.reset(); err != nil {
			return nil, false, err
		}
	}
	c.replaying = true
	defer func() { c.replaying = false }()
	for c.step < target && c.phase != Halted {
		if err := c.advance(); err != nil {
			return nil, false, err
		}
	}
	log.Debug().
		Str("session", c.ID.String()).
		Int("target", target).
		Int("step", c.step).
		Str("phase", c.phase.String()).
		Msg("history: seek")
	return c.State(), c.phase == Halted, nil
}

// Fingerprint hashes the live state.
func (c *Controller) Fingerprint() (cas.Hash, error) {
	return cas.Fingerprint(c.state)
}

// Verify replays a scratch machine from the snapshot to the current step
// and reports whether it matches the live state.
func (c *Controller) Verify() (bool, error) {
	if c.phase == Errored {
		return false, c.frozen()
	}
	scratch, err := cas.Retrieve[interp.State](c.store, c.origin)
	if err != nil {
		return false, err
	}
	for i := 0; i < c.step; i++ {
		res, _, err := interp.Step(scratch, nil)
		if err != nil {
			return false, err
		}
		if res == interp.HaltStep && i != c.step-1 {
			return false, nil
		}
	}
	want, err := cas.Fingerprint(scratch)
	if err != nil {
		return false, err
	}
	got, err := c.Fingerprint()
	if err != nil {
		return false, err
	}
	return want == got, nil
}

func (c *Controller) advance() error {
	switch c.phase {
	case Errored:
		return c.frozen()
	case Halted:
		return nil
	case Built:
		c.phase = Running
	}
	next := c.step + 1
	res, _, err := interp.Step(c.state, interp.TracerFunc(func(inst vm.Instruction) {
		if c.tracer != nil && (!c.replaying || next > c.reported) {
			c.tracer.TraceStep(next, inst)
		}
	}))
	if err != nil {
		c.phase = Errored
		c.err = err
		log.Warn().
			Str("session", c.ID.String()).
			Int("step", next).
			Err(err).
			Msg("history: machine faulted")
		return c.frozen()
	}
	c.step = next
	if c.step > c.reported {
		c.reported = c.step
	}
	if res == interp.HaltStep {
		c.phase = Halted
		log.Debug().Str("session", c.ID.String()).Int("step", c.step).Msg("history: halted")
	}
	log.Trace().Str("session", c.ID.String()).Int("step", c.step).Msg("history: advanced")
	return nil
}

func (c *Controller) reset() error {
	s, err := cas.Retrieve[interp.State](c.store, c.origin)
	if err != nil {
		return fmt.Errorf("restoring snapshot: %w", err)
	}
	c.state = s
	c.step = 0
	c.phase = Running
	return nil
}

func (c *Controller) frozen() error {
	return fmt.Errorf("%w: %w", ErrFrozen, c.err)
}
