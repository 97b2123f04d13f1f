package assembler

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Assembler turns source text into templated machine code.
// It keeps no state between calls and is safe for concurrent use.
type Assembler struct {
	log logrus.FieldLogger
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithLogger sets the logger that receives per-instruction debug entries.
func WithLogger(l logrus.FieldLogger) Option {
	return func(asm *Assembler) {
		if l != nil {
			asm.log = l
		}
	}
}

// New creates a new Assembler instance.
func New(opts ...Option) *Assembler {
	l := logrus.New()
	l.SetOutput(io.Discard)
	asm := &Assembler{log: l}
	for _, o := range opts {
		o(asm)
	}
	return asm
}

// Assemble takes assembly source and returns the machine code with its template slots.
// The final statement does not need a terminating semicolon.
func (asm *Assembler) Assemble(src string) (*Function, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, errors.Wrap(err, "lexing error")
	}
	tokens = append(tokens, terminator(tokens))

	program, err := Parse(tokens)
	if err != nil {
		return nil, errors.Wrap(err, "parsing error")
	}
	return asm.AssembleProgram(program)
}

// AssembleProgram encodes already parsed instructions and links them into a Function.
// Nothing is returned if any instruction fails to encode.
func (asm *Assembler) AssembleProgram(program []Instruction) (*Function, error) {
	encoded := make([]Encoded, 0, len(program))
	offset := 0
	for i, ins := range program {
		e, err := Encode(ins)
		if err != nil {
			return nil, errors.Wrapf(err, "error generating code for statement %d '%s'", i+1, ins)
		}

		asm.log.WithFields(logrus.Fields{
			"offset": offset,
			"size":   e.Len(),
			"slot":   e.Slot,
		}).Debugf("% x\t%s", e.Bytes, ins)
		offset += e.Len()
		encoded = append(encoded, e)
	}

	f := Build(encoded)
	asm.log.WithFields(logrus.Fields{
		"instructions": len(program),
		"size":         f.Len(),
		"slots":        f.SlotCount(),
	}).Debug("assembled")
	return f, nil
}

// MustAssemble is like Assemble but panics on error.
// It simplifies building templates once, at package initialisation.
func MustAssemble(src string) *Function {
	f, err := New().Assemble(src)
	if err != nil {
		panic(err)
	}
	return f
}

// terminator closes the last statement, so sources may omit the final semicolon.
func terminator(tokens []Token) Token {
	t := Token{Kind: TokenPunct, Text: ";", Line: 1, Col: 1}
	if n := len(tokens); n > 0 {
		last := tokens[n-1]
		t.Line, t.Col = last.Line, last.Col+len(last.Text)
	}
	return t
}
