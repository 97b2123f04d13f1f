package cpu

import (
	"fmt"
	"strings"
)

// Register is a 32-bit general-purpose register, numbered in x86 encoding order.
type Register uint8

// General-purpose registers.
const (
	EAX Register = iota
	ECX
	EDX
	EBX
	ESP
	EBP
	ESI
	EDI
)

// RegisterCount is the number of general-purpose registers.
const RegisterCount = 8

var registerNames = [RegisterCount]string{"eax", "ecx", "edx", "ebx", "esp", "ebp", "esi", "edi"}

var registersByName = map[string]Register{
	"eax": EAX,
	"ecx": ECX,
	"edx": EDX,
	"ebx": EBX,
	"esp": ESP,
	"ebp": EBP,
	"esi": ESI,
	"edi": EDI,
}

// LookupRegister finds a register by name, ignoring case.
func LookupRegister(name string) (Register, bool) {
	r, ok := registersByName[strings.ToLower(name)]
	return r, ok
}

// Valid reports whether r is one of the eight registers.
func (r Register) Valid() bool {
	return r < RegisterCount
}

// Code returns the 3-bit encoding of the register.
func (r Register) Code() byte {
	return byte(r) & 0x07
}

func (r Register) String() string {
	if !r.Valid() {
		return fmt.Sprintf("reg(%d)", uint8(r))
	}
	return registerNames[r]
}

// Registers returns all registers in encoding order.
func Registers() []Register {
	return []Register{EAX, ECX, EDX, EBX, ESP, EBP, ESI, EDI}
}
