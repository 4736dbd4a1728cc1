package vm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDigitArithmeticStaysInRange(t *testing.T) {
	for a := Digit(0); a < Base; a++ {
		for b := Digit(0); b < Base; b++ {
			sum := a.Add(b)
			prod := a.Mul(b)
			require.True(t, sum.Valid(), "%d+%d", a, b)
			require.True(t, prod.Valid(), "%d*%d", a, b)
			require.Equal(t, Digit((int(a)+int(b))%10), sum)
			require.Equal(t, Digit((int(a)*int(b))%10), prod)
		}
	}
}

func TestDigitWraps(t *testing.T) {
	require.Equal(t, Digit(3), Digit(7).Add(6))
	require.Equal(t, Digit(2), Digit(8).Mul(9))
	require.Equal(t, Digit(0), Digit(5).Mul(4))
}

func TestDigitColor(t *testing.T) {
	require.Equal(t, "White", White.Color())
	require.Equal(t, "Blue", Digit(6).Color())
	require.Equal(t, "Black", Black.Color())
	require.Equal(t, "Invalid(12)", Digit(12).Color())
}
