package assembler

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/Urethramancer/asm386/cpu"
)

// Function is assembled machine code with zero or more 32-bit template slots.
// The zero value is an empty function.
type Function struct {
	code  []byte
	slots []int
}

// Build concatenates encoded instructions into a Function.
// Each local slot offset becomes absolute by adding the size of everything before it.
// Build panics if a slot does not leave room for 4 bytes within its instruction.
func Build(encoded []Encoded) *Function {
	f := &Function{}
	for i, e := range encoded {
		if e.HasSlot() {
			if e.Slot < 0 || e.Slot+4 > len(e.Bytes) {
				panic(fmt.Sprintf("assembler: instruction %d has slot %d outside its %d bytes", i, e.Slot, len(e.Bytes)))
			}
			f.slots = append(f.slots, len(f.code)+e.Slot)
		}
		f.code = append(f.code, e.Bytes...)
	}
	return f
}

// Bytes returns a copy of the machine code.
func (f *Function) Bytes() []byte {
	return append([]byte(nil), f.code...)
}

// Slots returns a copy of the absolute slot offsets, in instruction order.
func (f *Function) Slots() []int {
	return append([]int(nil), f.slots...)
}

// Len returns the code size in bytes.
func (f *Function) Len() int {
	return len(f.code)
}

// SlotCount returns the number of template slots.
func (f *Function) SlotCount() int {
	return len(f.slots)
}

// Values reads the current contents of every slot.
func (f *Function) Values() []int32 {
	out := make([]int32, len(f.slots))
	for i, off := range f.slots {
		out[i] = int32(cpu.ReadImm32(f.code, off))
	}
	return out
}

// Clone returns an independent copy.
func (f *Function) Clone() *Function {
	return &Function{code: f.Bytes(), slots: f.Slots()}
}

// Apply returns a copy with every slot overwritten by the value at the same position.
// The receiver is never modified.
func (f *Function) Apply(values []int32) (*Function, error) {
	if err := f.checkValues(values); err != nil {
		return nil, err
	}
	out := f.Clone()
	out.write(values)
	return out, nil
}

// ApplyInPlace overwrites every slot in the receiver.
// The caller must hold exclusive access to f for the duration of the call.
func (f *Function) ApplyInPlace(values []int32) error {
	if err := f.checkValues(values); err != nil {
		return err
	}
	f.write(values)
	return nil
}

// Patch returns patched machine code, leaving the receiver untouched.
func (f *Function) Patch(values []int32) ([]byte, error) {
	out, err := f.Apply(values)
	if err != nil {
		return nil, err
	}
	return out.code, nil
}

func (f *Function) checkValues(values []int32) error {
	if len(values) != len(f.slots) {
		return errors.Wrapf(ErrSlotCount, "got %d values for %d slots", len(values), len(f.slots))
	}
	return nil
}

func (f *Function) write(values []int32) {
	for i, off := range f.slots {
		cpu.PutImm32(f.code, off, uint32(values[i]))
	}
}

// Dump writes the code as two-digit hex bytes, perLine bytes to a line.
// A perLine of zero or less puts everything on one line.
func (f *Function) Dump(w io.Writer, perLine int) error {
	var b strings.Builder
	for i, c := range f.code {
		fmt.Fprintf(&b, "%02x ", c)
		if perLine > 0 && i%perLine == perLine-1 {
			b.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (f *Function) String() string {
	var b strings.Builder
	_ = f.Dump(&b, 8)
	return b.String()
}
