package assembler

import (
	"math"

	"github.com/Urethramancer/asm386/cpu"
)

// encodeFlow dispatches to the correct flow-control encoder.
func encodeFlow(ins Instruction) (Encoded, error) {
	switch ins.Mnemonic {
	case CALL:
		return encodeCall(ins)
	case JMP:
		return encodeJmp(ins)
	case RET:
		return encodeRet()
	}
	return Encoded{}, unsupported(ins)
}

// CALL

// encodeCall assembles CALL r32 (FF /2) and CALL rel32 (E8 cd).
func encodeCall(ins Instruction) (Encoded, error) {
	src := ins.Src
	switch src.Kind {
	case OperandRegister:
		return plain(cpu.OPGrp5, direct(cpu.ExtCALL, src.Register)), nil
	case OperandImmediate:
		return withImm32([]byte{cpu.OPCALL}, uint32(src.Value), src.Template), nil
	}
	return Encoded{}, unsupported(ins)
}

// JMP

// encodeJmp assembles JMP r32 (FF /4), JMP rel8 (EB cb) and JMP rel32 (E9 cd).
// The short form is picked when the offset fits in a signed byte, unless the
// offset is a template: a slot always needs all four bytes.
func encodeJmp(ins Instruction) (Encoded, error) {
	src := ins.Src
	switch src.Kind {
	case OperandRegister:
		return plain(cpu.OPGrp5, direct(cpu.ExtJMP, src.Register)), nil
	case OperandImmediate:
		if !src.Template && src.Value >= math.MinInt8 && src.Value <= math.MaxInt8 {
			return plain(cpu.OPJMPShort, byte(int8(src.Value))), nil
		}
		return withImm32([]byte{cpu.OPJMP}, uint32(src.Value), src.Template), nil
	}
	return Encoded{}, unsupported(ins)
}

// Returns

func encodeRet() (Encoded, error) { return plain(cpu.OPRET), nil }
