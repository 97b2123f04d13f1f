package assembler

import (
	"github.com/Urethramancer/asm386/cpu"
)

// encodeStack handles PUSH and POP.
func encodeStack(ins Instruction) (Encoded, error) {
	if ins.Mnemonic == POP {
		return encodePop(ins)
	}
	return encodePush(ins)
}

// PUSH

// encodePush assembles PUSH r32 (50+rd) and PUSH imm32 (68 id).
func encodePush(ins Instruction) (Encoded, error) {
	src := ins.Src
	switch src.Kind {
	case OperandRegister:
		return plain(cpu.OPPUSH + src.Register.Code()), nil
	case OperandImmediate:
		return withImm32([]byte{cpu.OPPUSHImm}, uint32(src.Value), src.Template), nil
	}
	return Encoded{}, unsupported(ins)
}

// POP

// encodePop assembles POP r32 (58+rd).
func encodePop(ins Instruction) (Encoded, error) {
	if !ins.Dst.IsRegister() {
		return Encoded{}, unsupported(ins)
	}
	return plain(cpu.OPPOP + ins.Dst.Register.Code()), nil
}
