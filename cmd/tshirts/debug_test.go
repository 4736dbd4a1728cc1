package main

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
	"github.com/timewinder-dev/tshirts/history"
	"github.com/timewinder-dev/tshirts/model"
	"github.com/timewinder-dev/tshirts/vm"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

func TestDebuggerSeekLogsFault(t *testing.T) {
	buf := captureLog(t)
	prog, err := vm.CompileLiteral("75")
	require.NoError(t, err)
	d := newDebugger(model.SpecForProgram("literal"))
	require.NoError(t, d.load(prog, 0))

	d.seek(5)
	require.Equal(t, history.Errored, d.ctl.Phase())
	require.Contains(t, buf.String(), `"message":"seek"`)
	require.Contains(t, buf.String(), "instruction stream exhausted")
	require.Contains(t, d.state.GetText(false), "instruction stream exhausted")
}

func TestDebuggerStepBackAndForward(t *testing.T) {
	captureLog(t)
	d := newDebugger(model.SpecForProgram("sample:five_shirts"))
	prog, err := d.spec.LoadProgram()
	require.NoError(t, err)
	d.spec.Trace.Enabled = true
	require.NoError(t, d.load(prog, 0))

	d.command("n 2")
	require.Equal(t, 2, d.ctl.CurrentStep())
	d.command("b")
	require.Equal(t, 1, d.ctl.CurrentStep())
	d.advance(1)
	require.Equal(t, 2, d.ctl.CurrentStep())
	// Step 2 is a NOOP, traced on the first pass and again after stepping back.
	require.Equal(t, 2, bytes.Count([]byte(d.log.GetText(false)), []byte("NOOP 6")))
}
