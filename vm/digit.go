package vm

import "fmt"

// Digit is the only value type of the machine. Opcodes, parameters and
// data are all digits in [0,9].
type Digit uint8

const Base = 10

const (
	White Digit = iota
	Brown
	Red
	Orange
	Yellow
	Green
	Blue
	Violet
	Gray
	Black
)

var colorNames = [Base]string{
	"White", "Brown", "Red", "Orange", "Yellow",
	"Green", "Blue", "Violet", "Gray", "Black",
}

func (d Digit) Valid() bool {
	return d < Base
}

// Add returns (d + e) mod 10.
func (d Digit) Add(e Digit) Digit {
	return Digit((uint(d) + uint(e)) % Base)
}

// Mul returns (d * e) mod 10.
func (d Digit) Mul(e Digit) Digit {
	return Digit((uint(d) * uint(e)) % Base)
}

// Color names the shirt a digit stands for.
func (d Digit) Color() string {
	if !d.Valid() {
		return fmt.Sprintf("Invalid(%d)", uint8(d))
	}
	return colorNames[d]
}

func (d Digit) String() string {
	return fmt.Sprintf("%d", uint8(d))
}
