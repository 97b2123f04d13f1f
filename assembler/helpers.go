package assembler

import (
	"github.com/pkg/errors"

	"github.com/Urethramancer/asm386/cpu"
)

// NoSlot marks an encoded instruction without a template slot.
const NoSlot = -1

// Encoded is the machine code of a single instruction.
type Encoded struct {
	Bytes []byte
	// Slot is the offset within Bytes where a 4-byte template value starts, or NoSlot.
	Slot int
}

// HasSlot returns true if the instruction carries a template slot.
func (e Encoded) HasSlot() bool {
	return e.Slot != NoSlot
}

// Len returns the encoded size in bytes.
func (e Encoded) Len() int {
	return len(e.Bytes)
}

func plain(b ...byte) Encoded {
	return Encoded{Bytes: b, Slot: NoSlot}
}

// withImm32 appends a little-endian 32-bit value to prefix.
// A template value records its position as the slot.
func withImm32(prefix []byte, v uint32, template bool) Encoded {
	out := Encoded{Bytes: append(prefix, cpu.Imm32(v)...), Slot: NoSlot}
	if template {
		out.Slot = len(prefix)
	}
	return out
}

// direct builds a register-direct ModRM byte.
func direct(reg byte, rm cpu.Register) byte {
	return cpu.ModRM(cpu.ModDirect, reg, rm.Code())
}

// encodeMemory returns the ModRM and displacement bytes for [base+disp8].
// An esp base shares its rm value with the SIB escape, which is not supported.
func encodeMemory(reg byte, op Operand) (byte, byte, error) {
	if op.Register.Code() == cpu.RMSIB {
		return 0, 0, errors.Wrapf(ErrStackBase, "%s", op)
	}
	return cpu.ModRM(cpu.ModDisp8, reg, op.Register.Code()), byte(op.Disp), nil
}

func unsupported(ins Instruction) error {
	return errors.Wrapf(ErrUnsupported, "%s", ins)
}
