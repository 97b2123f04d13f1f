package assembler

import (
	"github.com/Urethramancer/asm386/cpu"
)

// encodeMove handles MOV between registers, memory, absolute addresses and immediates.
func encodeMove(ins Instruction) (Encoded, error) {
	dst, src := ins.Dst, ins.Src

	switch dst.Kind {
	case OperandRegister:
		d := dst.Register.Code()
		switch src.Kind {
		case OperandRegister:
			// 8B /r, mod 11
			return plain(cpu.OPMOVLoad, direct(d, src.Register)), nil

		case OperandMemory:
			// 8B /r, mod 01, disp8
			modrm, disp, err := encodeMemory(d, src)
			if err != nil {
				return Encoded{}, err
			}
			return plain(cpu.OPMOVLoad, modrm, disp), nil

		case OperandAbsolute:
			// 8B /r, mod 00 rm 101, disp32
			prefix := []byte{cpu.OPMOVLoad, cpu.ModRM(cpu.ModIndirect, d, cpu.RMDisp32)}
			return withImm32(prefix, src.Address, src.Template), nil

		case OperandImmediate:
			// B8+rd imm32
			return withImm32([]byte{cpu.OPMOVImm + d}, uint32(src.Value), src.Template), nil
		}

	case OperandMemory:
		switch src.Kind {
		case OperandRegister:
			// 89 /r, mod 01, disp8
			modrm, disp, err := encodeMemory(src.Register.Code(), dst)
			if err != nil {
				return Encoded{}, err
			}
			return plain(cpu.OPMOVStore, modrm, disp), nil

		case OperandImmediate:
			// C7 /0, mod 01, disp8, imm32
			modrm, disp, err := encodeMemory(0, dst)
			if err != nil {
				return Encoded{}, err
			}
			return withImm32([]byte{cpu.OPMOVStoreImm, modrm, disp}, uint32(src.Value), src.Template), nil
		}
	}

	return Encoded{}, unsupported(ins)
}
