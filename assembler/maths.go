package assembler

import (
	"github.com/Urethramancer/asm386/cpu"
)

// encodeMath handles ADD and SUB with a register destination.
func encodeMath(ins Instruction) (Encoded, error) {
	dst, src := ins.Dst, ins.Src
	if !dst.IsRegister() {
		return Encoded{}, unsupported(ins)
	}

	opcode, ext := byte(cpu.OPADD), byte(cpu.ExtADD)
	if ins.Mnemonic == SUB {
		opcode, ext = cpu.OPSUB, cpu.ExtSUB
	}

	switch src.Kind {
	case OperandRegister:
		return plain(opcode, direct(dst.Register.Code(), src.Register)), nil
	case OperandImmediate:
		// 81 /0 or /5, imm32
		prefix := []byte{cpu.OPGrp1, direct(ext, dst.Register)}
		return withImm32(prefix, uint32(src.Value), src.Template), nil
	}
	return Encoded{}, unsupported(ins)
}
