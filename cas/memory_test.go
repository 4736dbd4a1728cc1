package cas

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/timewinder-dev/tshirts/interp"
	"github.com/timewinder-dev/tshirts/vm"
)

func testState(t *testing.T, src string) *interp.State {
	t.Helper()
	prog, err := vm.CompileLiteral(src)
	require.NoError(t, err)
	return interp.NewState(prog, 8)
}

func TestMemoryCASPutRetrieve(t *testing.T) {
	m := NewMemoryCAS()
	s := testState(t, "20 36 19 00")
	h, err := m.Put(s)
	require.NoError(t, err)
	require.True(t, m.Has(h))
	require.Equal(t, 1, m.Len())

	got, err := Retrieve[interp.State](m, h)
	require.NoError(t, err)
	require.True(t, s.Equal(got))

	// Each retrieval is an independent copy.
	got.Stacks[interp.OutputStack].Push(3)
	again, err := Retrieve[interp.State](m, h)
	require.NoError(t, err)
	require.Equal(t, 0, again.Stacks[interp.OutputStack].Len())
}

func TestMemoryCASDeduplicates(t *testing.T) {
	m := NewMemoryCAS()
	h1, err := m.Put(testState(t, "75 00"))
	require.NoError(t, err)
	h2, err := m.Put(testState(t, "75 00"))
	require.NoError(t, err)
	h3, err := m.Put(testState(t, "76 00"))
	require.NoError(t, err)
	require.Equal(t, h1, h2)
	require.NotEqual(t, h1, h3)
	require.Equal(t, 2, m.Len())
}

func TestRetrieveMissing(t *testing.T) {
	_, err := Retrieve[interp.State](NewMemoryCAS(), Hash(42))
	require.Error(t, err)
}

func TestFingerprintMatchesPut(t *testing.T) {
	m := NewMemoryCAS()
	s := testState(t, "20 00")
	h, err := m.Put(s)
	require.NoError(t, err)
	fp, err := Fingerprint(s)
	require.NoError(t, err)
	require.Equal(t, h, fp)
}
