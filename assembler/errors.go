package assembler

import "github.com/pkg/errors"

// Syntax errors.
var (
	ErrSyntax          = errors.New("syntax error")
	ErrUnknownMnemonic = errors.New("unknown instruction")
	ErrUnknownRegister = errors.New("unknown register")
	ErrUnexpectedEOF   = errors.New("unexpected end of input")
	ErrLiteral         = errors.New("invalid literal")
)

// Encoding errors.
var (
	ErrUnsupported    = errors.New("unsupported operand combination")
	ErrTemplatedShift = errors.New("shift count cannot be a template")
	ErrShiftCount     = errors.New("shift count out of range")
	ErrStackBase      = errors.New("esp cannot be a memory base without a SIB byte")
)

// ErrSlotCount is returned when the number of patch values differs from the slot count.
var ErrSlotCount = errors.New("template value count mismatch")
