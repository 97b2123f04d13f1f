package cpu

// ModRM mod field values (bits 7-6).
const (
	// 00: [reg], or [disp32] when rm = 101
	ModIndirect byte = 0

	// 01: [reg + disp8]
	ModDisp8 byte = 1

	// 11: register direct
	ModDirect byte = 3
)

// RMDisp32 is the rm value selecting an absolute 32-bit address when mod = 00.
const RMDisp32 byte = 5

// RMSIB is the rm value that announces a SIB byte when mod != 11.
const RMSIB byte = 4

// ModRM packs the three fields of a ModRM byte.
func ModRM(mod, reg, rm byte) byte {
	return (mod&0x03)<<6 | (reg&0x07)<<3 | rm&0x07
}
