package model

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gookit/color"
	"github.com/stretchr/testify/require"
	"github.com/timewinder-dev/tshirts/history"
	"github.com/timewinder-dev/tshirts/interp"
	"github.com/timewinder-dev/tshirts/vm"
)

func TestMain(m *testing.M) {
	color.Enable = false
	m.Run()
}

func buildExecutor(t *testing.T, ref string) *Executor {
	t.Helper()
	s, err := LoadSpec(ref)
	require.NoError(t, err)
	e, err := s.BuildExecutor()
	require.NoError(t, err)
	return e
}

func TestRunToHalt(t *testing.T) {
	e := buildExecutor(t, "sample:rainbow")
	res, err := e.RunToHalt()
	require.NoError(t, err)
	require.True(t, res.Halted)
	require.Equal(t, 38, res.Steps)
	require.Equal(t, []vm.Digit{1, 2, 3, 4, 5, 6, 7, 8, 9}, res.Output)
	require.NotZero(t, res.Fingerprint)
}

func TestRunToHaltTraces(t *testing.T) {
	e := buildExecutor(t, "sample:five_shirts")
	e.Spec.Trace.Enabled = true
	var buf bytes.Buffer
	e.Reporter = &ColorReporter{Writer: &buf}
	_, err := e.RunToHalt()
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], "NOOP 5")
	require.Contains(t, lines[2], "STOP 0")
}

func TestRunToHaltStepLimit(t *testing.T) {
	e := buildExecutor(t, "sample:rainbow")
	e.Spec.Machine.MaxSteps = 10
	res, err := e.RunToHalt()
	require.ErrorIs(t, err, interp.ErrStepLimit)
	require.False(t, res.Halted)
	require.Equal(t, 10, res.Steps)
}

func TestRunToHaltFaultKeepsPartialResult(t *testing.T) {
	prog, err := vm.CompileLiteral("20 36 19")
	require.NoError(t, err)
	e := &Executor{Program: prog, Spec: SpecForProgram("literal")}
	res, err := e.RunToHalt()
	require.ErrorIs(t, err, interp.ErrInstructionsExhausted)
	require.ErrorIs(t, err, history.ErrFrozen)
	require.False(t, res.Halted)
	require.Equal(t, 3, res.Steps)
	require.Equal(t, []vm.Digit{6}, res.Output)
	require.NotZero(t, res.Fingerprint)
}

func TestRunToHaltDebugWriter(t *testing.T) {
	e := buildExecutor(t, "sample:stop")
	var buf bytes.Buffer
	e.DebugWriter = &buf
	_, err := e.RunToHalt()
	require.NoError(t, err)
	require.Contains(t, buf.String(), "--- step 1\n")
	require.Equal(t, history.Halted, e.Controller.Phase())
}

func TestFormatting(t *testing.T) {
	e := buildExecutor(t, "sample:five_shirts")
	res, err := e.RunToHalt()
	require.NoError(t, err)

	require.Equal(t, "Blue, Blue, Blue, Blue, Blue", FormatOutput(res.Output))
	require.Equal(t, "(no shirts)", FormatOutput(nil))
	require.Contains(t, FormatStatistics(res), "Steps executed: 20")
	state := FormatState(e.Controller.State(), res.Steps, history.Halted)
	require.Contains(t, state, "=== step 20 [Halted]")
	require.Contains(t, state, "9 output    ")
	require.Equal(t, "#3060e0", Hex(vm.Blue))
}

func TestFormatFault(t *testing.T) {
	prog, err := vm.CompileLiteral("36")
	require.NoError(t, err)
	c, err := history.New(prog, history.Config{})
	require.NoError(t, err)
	_, _, err = c.Advance()
	require.Error(t, err)
	out := FormatFault(err)
	require.Contains(t, out, "MACHINE FAULT")
	require.Contains(t, out, "ADD-IMMEDIATE needs a shirt on stack 3 (oper)")
}
