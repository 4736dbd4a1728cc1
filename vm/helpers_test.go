package vm

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompileLiteralIgnoresCommentary(t *testing.T) {
	prog, err := CompileLiteral(`
fetch a white   2 0
dye it blue     3-6
box it          (1, 9)
stop!           00
`)
	require.NoError(t, err)
	require.Equal(t, []Instruction{
		{Code: MOVE_FROM, Arg: 0},
		{Code: ADD_IMM, Arg: 6},
		{Code: MOVE_TO, Arg: 9},
		{Code: STOP, Arg: 0},
	}, prog.Instructions)
	require.Equal(t, []Digit{2, 0, 3, 6, 1, 9, 0, 0}, prog.Digits())
}

func TestCompileLiteralUnpaired(t *testing.T) {
	_, err := CompileLiteral("20 36 1")
	require.ErrorIs(t, err, ErrUnpairedDigit)
}

func TestCompileLiteralEmpty(t *testing.T) {
	prog, err := CompileLiteral("nothing to see here")
	require.NoError(t, err)
	require.Equal(t, 0, prog.Len())
}

func TestNonASCIIDigitsIgnored(t *testing.T) {
	// Arabic-Indic and fullwidth digits are commentary.
	prog, err := CompileLiteral("٣ ７ 0 0")
	require.NoError(t, err)
	require.Equal(t, []Instruction{{Code: STOP, Arg: 0}}, prog.Instructions)
}

func TestNewProgramRejectsOutOfRange(t *testing.T) {
	_, err := NewProgram("bad", []Digit{2, 11})
	require.ErrorIs(t, err, ErrDigitRange)
	_, err = NewProgram("bad", []Digit{10, 0})
	require.ErrorIs(t, err, ErrDigitRange)
}

func TestCompilePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stop.shirt")
	require.NoError(t, os.WriteFile(path, []byte("stop 0 0\n"), 0o644))
	prog, err := CompilePath(path)
	require.NoError(t, err)
	require.Equal(t, "stop.shirt", prog.Name)
	require.Equal(t, 1, prog.Len())

	_, err = CompilePath(filepath.Join(dir, "missing.shirt"))
	require.Error(t, err)
}

func TestDebugPrint(t *testing.T) {
	prog, err := CompileLiteral("20 36 19 00")
	require.NoError(t, err)
	var buf bytes.Buffer
	prog.DebugPrint(&buf)
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "*** literal (4 instructions)\n"))
	require.Contains(t, out, "001: 36  adi  ADD-IMMEDIATE 6")
	require.Contains(t, out, "002: 19  mto  MOVE-TO #9")
}
