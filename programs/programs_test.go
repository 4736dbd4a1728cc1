package programs

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/timewinder-dev/tshirts/interp"
	"github.com/timewinder-dev/tshirts/vm"
)

func TestNames(t *testing.T) {
	require.Equal(t, []string{"five_shirts", "mirror", "rainbow", "self_build", "stop"}, Names())
}

func TestSamplesRunToHalt(t *testing.T) {
	for _, tc := range []struct {
		name   string
		steps  int
		output []vm.Digit
	}{
		{"stop", 1, []vm.Digit{}},
		{"five_shirts", 20, []vm.Digit{6, 6, 6, 6, 6}},
		{"rainbow", 38, []vm.Digit{1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{"mirror", 19, []vm.Digit{3, 2, 1}},
		{"self_build", 24, []vm.Digit{6}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			prog, err := Load(tc.name)
			require.NoError(t, err)
			s := interp.NewState(prog, interp.DefaultZeroSupply)
			steps, err := interp.RunToHalt(s, nil, 1000)
			require.NoError(t, err)
			require.Equal(t, tc.steps, steps)
			require.Equal(t, tc.output, s.Stacks[interp.OutputStack].Contents())
		})
	}
}

func TestSelfBuildLeavesUnusedCodeOnScratch(t *testing.T) {
	prog, err := Load("self_build")
	require.NoError(t, err)
	s := interp.NewState(prog, interp.DefaultZeroSupply)
	_, err = interp.RunToHalt(s, nil, 0)
	require.NoError(t, err)
	require.Equal(t, []vm.Digit{0, 0}, s.Stacks[interp.ScratchStack].Contents())
	require.Equal(t, []vm.Digit{5}, s.Stacks[interp.GarbageStack].Contents())
}

func TestIsSample(t *testing.T) {
	name, ok := IsSample("sample:rainbow")
	require.True(t, ok)
	require.Equal(t, "rainbow", name)
	_, ok = IsSample("rainbow.shirt")
	require.False(t, ok)
}

func TestUnknownSample(t *testing.T) {
	_, err := Load("nope")
	require.Error(t, err)
	_, err = Source("nope")
	require.Error(t, err)
	src, err := Source("stop")
	require.NoError(t, err)
	require.Contains(t, src, "stp")
}
