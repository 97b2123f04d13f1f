package assembler

import (
	"github.com/pkg/errors"

	"github.com/Urethramancer/asm386/cpu"
)

// Encode converts one instruction into machine code.
// It is a pure function of the instruction; offsets are resolved later by Build.
func Encode(ins Instruction) (Encoded, error) {
	if err := checkOperands(ins); err != nil {
		return Encoded{}, err
	}

	switch ins.Mnemonic {
	case MOV:
		return encodeMove(ins)
	case ADD, SUB:
		return encodeMath(ins)
	case SHL, SHR:
		return encodeShift(ins)
	case PUSH, POP:
		return encodeStack(ins)
	case CALL, JMP, RET:
		return encodeFlow(ins)
	case NOP:
		return encodeNop()
	}
	return Encoded{}, errors.Wrapf(ErrUnknownMnemonic, "%s", ins.Mnemonic)
}

// checkOperands rejects instructions whose operand slots disagree with the mnemonic's form.
func checkOperands(ins Instruction) error {
	wantDst, wantSrc := false, false
	switch ins.Mnemonic.Form() {
	case FormDstSrc:
		wantDst, wantSrc = true, true
	case FormDst:
		wantDst = true
	case FormSrc:
		wantSrc = true
	}

	for _, c := range []struct {
		op   Operand
		want bool
	}{{ins.Dst, wantDst}, {ins.Src, wantSrc}} {
		if (c.op.Kind != OperandNone) != c.want {
			return unsupported(ins)
		}
		if (c.op.IsRegister() || c.op.IsMemory()) && !c.op.Register.Valid() {
			return errors.Wrapf(ErrUnknownRegister, "%s", c.op.Register)
		}
	}
	if ins.Dst.Template {
		return errors.Wrapf(ErrUnsupported, "%s: a destination cannot be a template", ins)
	}
	return nil
}

// NOP

func encodeNop() (Encoded, error) { return plain(cpu.OPNOP), nil }
