package assembler

import (
	"fmt"
	"strings"

	"github.com/Urethramancer/asm386/cpu"
)

// OperandKind defines the shape of an operand.
type OperandKind int

const (
	// OperandNone marks an absent operand.
	OperandNone OperandKind = iota
	// OperandRegister is a register used directly.
	OperandRegister
	// OperandMemory is [reg+disp8].
	OperandMemory
	// OperandAbsolute is a direct 32-bit memory address.
	OperandAbsolute
	// OperandImmediate is a 32-bit constant.
	OperandImmediate
)

// Operand is one instruction operand. Which fields are meaningful depends on Kind.
type Operand struct {
	Kind     OperandKind
	Register cpu.Register
	Disp     int8
	Address  uint32
	Value    int32
	// Template marks an absolute address or immediate whose bytes become a patchable slot.
	Template bool
}

// Reg returns a register operand.
func Reg(r cpu.Register) Operand {
	return Operand{Kind: OperandRegister, Register: r}
}

// Mem returns a [reg+disp] operand.
func Mem(r cpu.Register, disp int8) Operand {
	return Operand{Kind: OperandMemory, Register: r, Disp: disp}
}

// Abs returns an absolute address operand.
func Abs(addr uint32, template bool) Operand {
	return Operand{Kind: OperandAbsolute, Address: addr, Template: template}
}

// Imm returns an immediate operand.
func Imm(v int32, template bool) Operand {
	return Operand{Kind: OperandImmediate, Value: v, Template: template}
}

// IsRegister returns true if the operand is a register.
func (o Operand) IsRegister() bool { return o.Kind == OperandRegister }

// IsMemory returns true if the operand is [reg+disp].
func (o Operand) IsMemory() bool { return o.Kind == OperandMemory }

// IsAbsolute returns true if the operand is a direct address.
func (o Operand) IsAbsolute() bool { return o.Kind == OperandAbsolute }

// IsImmediate returns true if this operand is an immediate constant.
func (o Operand) IsImmediate() bool { return o.Kind == OperandImmediate }

func (o Operand) String() string {
	var mark string
	if o.Template {
		mark = "$"
	}
	switch o.Kind {
	case OperandRegister:
		return o.Register.String()
	case OperandMemory:
		if o.Disp < 0 {
			return fmt.Sprintf("[%s-0x%02x]", o.Register, -int(o.Disp))
		}
		return fmt.Sprintf("[%s+0x%02x]", o.Register, o.Disp)
	case OperandAbsolute:
		return fmt.Sprintf("[%s0x%08x]", mark, o.Address)
	case OperandImmediate:
		return fmt.Sprintf("%s%d", mark, o.Value)
	}
	return "<none>"
}

// Mnemonic identifies one of the supported instructions.
type Mnemonic int

// Supported instructions.
const (
	MOV Mnemonic = iota
	ADD
	SUB
	SHL
	SHR
	PUSH
	POP
	CALL
	RET
	JMP
	NOP
	mnemonicCount
)

var mnemonicNames = [mnemonicCount]string{"mov", "add", "sub", "shl", "shr", "push", "pop", "call", "ret", "jmp", "nop"}

// LookupMnemonic finds a mnemonic by name, ignoring case.
func LookupMnemonic(s string) (Mnemonic, bool) {
	s = strings.ToLower(s)
	for i, name := range mnemonicNames {
		if name == s {
			return Mnemonic(i), true
		}
	}
	return 0, false
}

func (m Mnemonic) String() string {
	if m < 0 || m >= mnemonicCount {
		return fmt.Sprintf("mnemonic(%d)", int(m))
	}
	return mnemonicNames[m]
}

// Form describes which operands a mnemonic takes.
type Form int

const (
	// FormNone takes no operands.
	FormNone Form = iota
	// FormDst takes a single destination.
	FormDst
	// FormSrc takes a single source.
	FormSrc
	// FormDstSrc takes a destination and a source, in that order.
	FormDstSrc
)

// Form returns the operand shape of the mnemonic.
func (m Mnemonic) Form() Form {
	switch m {
	case MOV, ADD, SUB, SHL, SHR:
		return FormDstSrc
	case PUSH, CALL, JMP:
		return FormSrc
	case POP:
		return FormDst
	}
	return FormNone
}

// Instruction is one parsed statement.
type Instruction struct {
	Mnemonic Mnemonic
	Dst      Operand
	Src      Operand
}

func (ins Instruction) String() string {
	switch ins.Mnemonic.Form() {
	case FormDstSrc:
		return fmt.Sprintf("%s %s, %s", ins.Mnemonic, ins.Dst, ins.Src)
	case FormDst:
		return fmt.Sprintf("%s %s", ins.Mnemonic, ins.Dst)
	case FormSrc:
		return fmt.Sprintf("%s %s", ins.Mnemonic, ins.Src)
	}
	return ins.Mnemonic.String()
}
