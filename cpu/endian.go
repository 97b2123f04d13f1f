package cpu

import (
	"encoding/binary"
)

// Imm32 returns the little-endian encoding of a 32-bit value.
func Imm32(v uint32) []byte {
	out := make([]byte, 4)
	binary.LittleEndian.PutUint32(out, v)
	return out
}

// PutImm32 writes v little-endian at b[off:off+4].
func PutImm32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:], v)
}

// ReadImm32 reads a little-endian 32-bit value at b[off:off+4].
func ReadImm32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off:])
}
