package cpu

// Opcodes for the supported instructions.
const (
	// Data movement
	OPMOVLoad     = 0x8B // MOV r32, r/m32
	OPMOVStore    = 0x89 // MOV r/m32, r32
	OPMOVImm      = 0xB8 // MOV r32, imm32 (+rd)
	OPMOVStoreImm = 0xC7 // MOV r/m32, imm32 (/0)

	// Arithmetic
	OPADD  = 0x03 // ADD r32, r/m32
	OPSUB  = 0x2B // SUB r32, r/m32
	OPGrp1 = 0x81 // ADD/SUB r/m32, imm32 (/0, /5)
	ExtADD = 0    // /0 of group 1
	ExtSUB = 5    // /5 of group 1

	// Shifts
	OPShift    = 0xC1 // SHL/SHR r/m32, imm8
	OPShiftOne = 0xD1 // SHL/SHR r/m32, 1
	OPShiftCL  = 0xD3 // SHL/SHR r/m32, CL
	ExtSHL     = 4    // /4 of group 2
	ExtSHR     = 5    // /5 of group 2

	// Stack
	OPPUSH    = 0x50 // PUSH r32 (+rd)
	OPPOP     = 0x58 // POP r32 (+rd)
	OPPUSHImm = 0x68 // PUSH imm32

	// Flow control
	OPCALL     = 0xE8 // CALL rel32
	OPJMP      = 0xE9 // JMP rel32
	OPJMPShort = 0xEB // JMP rel8
	OPGrp5     = 0xFF // CALL/JMP r/m32 (/2, /4)
	ExtCALL    = 2    // /2 of group 5
	ExtJMP     = 4    // /4 of group 5
	OPRET      = 0xC3 // RET
	OPNOP      = 0x90 // NOP
)
