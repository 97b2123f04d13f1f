package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/Urethramancer/asm386/assembler"
)

// dumper prints machine code as hex, with template slot bytes highlighted.
type dumper struct {
	w    io.Writer
	slot *color.Color
}

func newDumper(w io.Writer, colored bool) *dumper {
	slot := color.New(color.FgYellow, color.Bold)
	if !colored {
		slot.DisableColor()
	}
	return &dumper{w: w, slot: slot}
}

// dump writes perLine bytes per line; zero or less keeps everything on one line.
func (d *dumper) dump(f *assembler.Function, perLine int) error {
	code := f.Bytes()
	inSlot := make([]bool, len(code))
	for _, off := range f.Slots() {
		for i := off; i < off+4 && i < len(code); i++ {
			inSlot[i] = true
		}
	}

	for i, b := range code {
		text := fmt.Sprintf("%02x", b)
		if inSlot[i] {
			text = d.slot.Sprint(text)
		}

		sep := " "
		if perLine > 0 && i%perLine == perLine-1 || i == len(code)-1 {
			sep = "\n"
		}
		if _, err := fmt.Fprint(d.w, text, sep); err != nil {
			return err
		}
	}
	return nil
}

// slots lists each slot with its offset and current value.
func (d *dumper) slots(f *assembler.Function) error {
	values := f.Values()
	for i, off := range f.Slots() {
		if _, err := fmt.Fprintf(d.w, "slot %d: offset %d value %d (0x%08x)\n", i, off, values[i], uint32(values[i])); err != nil {
			return err
		}
	}
	return nil
}
