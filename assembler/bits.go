package assembler

import (
	"math"

	"github.com/pkg/errors"

	"github.com/Urethramancer/asm386/cpu"
)

// encodeShift handles SHL and SHR.
// Shift counts are fixed at assembly time and can never become template slots.
// An immediate count is any imm8; the CPU masks it to five bits when executing.
// A register count must be ecx, since D3 always reads cl and any other register
// would assemble to a shift by cl.
func encodeShift(ins Instruction) (Encoded, error) {
	dst, src := ins.Dst, ins.Src
	if !dst.IsRegister() {
		return Encoded{}, unsupported(ins)
	}

	ext := byte(cpu.ExtSHL)
	if ins.Mnemonic == SHR {
		ext = cpu.ExtSHR
	}
	modrm := direct(ext, dst.Register)

	switch src.Kind {
	case OperandRegister:
		// D3 /4 or /5 takes its count from cl.
		if src.Register != cpu.ECX {
			return Encoded{}, errors.Wrapf(ErrUnsupported, "%s: count register must be ecx", ins)
		}
		return plain(cpu.OPShiftCL, modrm), nil

	case OperandImmediate:
		if src.Template {
			return Encoded{}, errors.Wrapf(ErrTemplatedShift, "%s", ins)
		}
		if src.Value < 0 || src.Value > math.MaxUint8 {
			return Encoded{}, errors.Wrapf(ErrShiftCount, "%s", ins)
		}
		if src.Value == 1 {
			return plain(cpu.OPShiftOne, modrm), nil
		}
		return plain(cpu.OPShift, modrm, byte(src.Value)), nil
	}
	return Encoded{}, unsupported(ins)
}
