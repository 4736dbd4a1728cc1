package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gookit/color"
	"github.com/timewinder-dev/tshirts/history"
	"github.com/timewinder-dev/tshirts/interp"
	"github.com/timewinder-dev/tshirts/vm"
)

type RGB struct{ R, G, B uint8 }

// Palette is the display colour of each shirt.
var Palette = [vm.Base]RGB{
	{0xf0, 0xf0, 0xf0}, // White
	{0x8b, 0x45, 0x13}, // Brown
	{0xd0, 0x20, 0x20}, // Red
	{0xff, 0x8c, 0x00}, // Orange
	{0xf0, 0xd0, 0x20}, // Yellow
	{0x20, 0xa0, 0x40}, // Green
	{0x30, 0x60, 0xe0}, // Blue
	{0x90, 0x40, 0xd0}, // Violet
	{0x80, 0x80, 0x80}, // Gray
	{0x30, 0x30, 0x30}, // Black
}

// Hex is the #rrggbb form of a shirt colour, as used by tview colour tags.
func Hex(d vm.Digit) string {
	if !d.Valid() {
		return "#ff00ff"
	}
	c := Palette[d]
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Shirt renders a digit on its own colour.
func Shirt(d vm.Digit) string {
	if !d.Valid() {
		return color.Red.Sprintf("?%d", uint8(d))
	}
	c := Palette[d]
	fg := color.RGB(0xff, 0xff, 0xff)
	if d == vm.White || d == vm.Yellow {
		fg = color.RGB(0, 0, 0)
	}
	return color.NewRGBStyle(fg, color.RGB(c.R, c.G, c.B)).Sprintf(" %d ", uint8(d))
}

// FormatStack renders a stack bottom to top.
func FormatStack(st []vm.Digit) string {
	if len(st) == 0 {
		return color.Gray.Sprint("(empty)")
	}
	var b strings.Builder
	for _, d := range st {
		b.WriteString(Shirt(d))
	}
	return b.String()
}

// FormatState renders the whole machine at a given step.
func FormatState(s *interp.State, step int, phase history.Phase) string {
	var b strings.Builder
	b.WriteString(color.Cyan.Sprintf("=== step %d [%s]", step, phase))
	if next, ok := s.NextInstruction(); ok && phase != history.Halted {
		b.WriteString(color.Gray.Sprintf("  next: %s", next))
	}
	b.WriteString("\n")
	for i := range s.Stacks {
		st := s.Stacks[i]
		b.WriteString(color.Bold.Sprintf("%d %-9s ", i, interp.StackName(i)))
		if i == interp.ConstStack {
			b.WriteString(fmt.Sprintf("%d whites\n", st.Len()))
			continue
		}
		b.WriteString(FormatStack(st.Contents()))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatOutput names the boxed shirts, first boxed first.
func FormatOutput(out []vm.Digit) string {
	if len(out) == 0 {
		return "(no shirts)"
	}
	names := make([]string, len(out))
	for i, d := range out {
		names[i] = d.Color()
	}
	return strings.Join(names, ", ")
}

func FormatStatistics(r *RunResult) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(color.Cyan.Sprint("=== Run statistics ==="))
	b.WriteString("\n")
	b.WriteString(color.Bold.Sprint("Steps executed: "))
	b.WriteString(fmt.Sprintf("%d\n", r.Steps))
	b.WriteString(color.Bold.Sprint("Halted: "))
	if r.Halted {
		b.WriteString(color.Green.Sprint("yes\n"))
	} else {
		b.WriteString(color.Red.Sprint("no\n"))
	}
	b.WriteString(color.Bold.Sprint("Shirts boxed: "))
	b.WriteString(fmt.Sprintf("%d\n", len(r.Output)))
	b.WriteString(color.Bold.Sprint("State hash: "))
	b.WriteString(fmt.Sprintf("0x%016x\n", uint64(r.Fingerprint)))
	b.WriteString(color.Bold.Sprint("Elapsed: "))
	b.WriteString(fmt.Sprintf("%s\n", r.Elapsed))
	return b.String()
}

// FormatFault explains a machine fault, or returns err's text for other errors.
func FormatFault(err error) string {
	var f *interp.Fault
	if !errors.As(err, &f) {
		return color.Red.Sprint(err.Error())
	}
	var b strings.Builder
	b.WriteString(color.Red.Sprint("MACHINE FAULT"))
	b.WriteString("\n")
	switch {
	case errors.Is(f, interp.ErrInstructionsExhausted):
		b.WriteString("The instruction stream ran dry before a STOP.\n")
	case errors.Is(f, interp.ErrOperandUnderflow):
		b.WriteString(fmt.Sprintf("%s needs a shirt on stack %d (%s) but it is empty.\n",
			f.Inst.Code, f.Stack, interp.StackName(f.Stack)))
	case errors.Is(f, interp.ErrStackIndex):
		b.WriteString(fmt.Sprintf("%s names stack %d, which does not exist.\n", f.Inst.Code, f.Stack))
	default:
		b.WriteString(f.Error())
		b.WriteString("\n")
	}
	return b.String()
}
