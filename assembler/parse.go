package assembler

import (
	"math"
	"strconv"

	"github.com/pkg/errors"

	"github.com/Urethramancer/asm386/cpu"
)

// parser walks a token slice once, left to right, without backtracking.
type parser struct {
	tokens []Token
	pos    int
}

// Parse converts a token sequence into instructions.
// Every statement must end with a semicolon; runs of extra semicolons are skipped.
// The first error aborts the parse and no instructions are returned.
func Parse(tokens []Token) ([]Instruction, error) {
	p := &parser{tokens: tokens}
	var program []Instruction
	for {
		p.skipSemicolons()
		if p.done() {
			break
		}

		ins, err := p.parseInstruction()
		if err != nil {
			return nil, err
		}
		if err := p.expect(';', "after instruction"); err != nil {
			return nil, err
		}
		program = append(program, ins)
	}
	return program, nil
}

func (p *parser) done() bool {
	return p.pos >= len(p.tokens)
}

func (p *parser) peek() (Token, bool) {
	if p.done() {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

// next consumes one token. Running out of input is an error here.
func (p *parser) next() (Token, error) {
	if p.done() {
		return Token{}, p.eof()
	}
	t := p.tokens[p.pos]
	p.pos++
	return t, nil
}

func (p *parser) eof() error {
	if len(p.tokens) == 0 {
		return ErrUnexpectedEOF
	}
	last := p.tokens[len(p.tokens)-1]
	return errors.Wrapf(ErrUnexpectedEOF, "%s: after %q", last.Pos(), last.Text)
}

func (p *parser) expect(punct byte, context string) error {
	t, err := p.next()
	if err != nil {
		return err
	}
	if !t.Is(punct) {
		return errors.Wrapf(ErrSyntax, "%s: expected %q %s, found %q", t.Pos(), punct, context, t.Text)
	}
	return nil
}

func (p *parser) skipSemicolons() {
	for {
		t, ok := p.peek()
		if !ok || !t.Is(';') {
			return
		}
		p.pos++
	}
}

// parseInstruction reads a mnemonic and the operands its form requires.
func (p *parser) parseInstruction() (Instruction, error) {
	t, err := p.next()
	if err != nil {
		return Instruction{}, err
	}
	if t.Kind != TokenIdent {
		return Instruction{}, errors.Wrapf(ErrSyntax, "%s: unexpected %q at start of instruction", t.Pos(), t.Text)
	}
	mn, ok := LookupMnemonic(t.Text)
	if !ok {
		return Instruction{}, errors.Wrapf(ErrUnknownMnemonic, "%s: %s", t.Pos(), t.Text)
	}

	ins := Instruction{Mnemonic: mn}
	switch mn.Form() {
	case FormDstSrc:
		if ins.Dst, err = p.parseDst(); err != nil {
			return ins, err
		}
		if err = p.expect(',', "between operands"); err != nil {
			return ins, err
		}
		ins.Src, err = p.parseSrc()
	case FormDst:
		ins.Dst, err = p.parseDst()
	case FormSrc:
		ins.Src, err = p.parseSrc()
	}
	return ins, err
}

// parseDst handles reg, [reg+disp] and [addr]. Destinations are never templates.
func (p *parser) parseDst() (Operand, error) {
	t, err := p.next()
	if err != nil {
		return Operand{}, err
	}
	switch {
	case t.Kind == TokenIdent:
		return p.register(t)
	case t.Is('['):
		return p.parseBracket(false)
	case t.Is('$'):
		return Operand{}, errors.Wrapf(ErrSyntax, "%s: a destination cannot be a template", t.Pos())
	}
	return Operand{}, errors.Wrapf(ErrSyntax, "%s: unexpected %q in destination", t.Pos(), t.Text)
}

// parseSrc handles reg, [reg+disp], [addr], [$addr], imm and $imm.
func (p *parser) parseSrc() (Operand, error) {
	t, err := p.next()
	if err != nil {
		return Operand{}, err
	}
	switch {
	case t.Kind == TokenIdent:
		return p.register(t)
	case t.Is('['):
		return p.parseBracket(true)
	case t.Is('$'):
		v, err := p.parseImmediate()
		if err != nil {
			return Operand{}, err
		}
		return Imm(v, true), nil
	case t.Is('-') || t.Kind == TokenInt:
		p.pos--
		v, err := p.parseImmediate()
		if err != nil {
			return Operand{}, err
		}
		return Imm(v, false), nil
	}
	return Operand{}, errors.Wrapf(ErrSyntax, "%s: unexpected %q in source", t.Pos(), t.Text)
}

// parseBracket handles everything after an opening bracket.
func (p *parser) parseBracket(allowTemplate bool) (Operand, error) {
	t, err := p.next()
	if err != nil {
		return Operand{}, err
	}

	var op Operand
	switch {
	case t.Kind == TokenIdent:
		op, err = p.parseMemory(t)
	case t.Is('$'):
		if !allowTemplate {
			return Operand{}, errors.Wrapf(ErrSyntax, "%s: a destination cannot be a template", t.Pos())
		}
		var addr uint32
		addr, err = p.parseAddress()
		op = Abs(addr, true)
	case t.Kind == TokenInt:
		p.pos--
		var addr uint32
		addr, err = p.parseAddress()
		op = Abs(addr, false)
	default:
		return Operand{}, errors.Wrapf(ErrSyntax, "%s: unexpected %q in address", t.Pos(), t.Text)
	}
	if err != nil {
		return Operand{}, err
	}

	if err := p.expect(']', "to close address"); err != nil {
		return Operand{}, err
	}
	return op, nil
}

// parseMemory handles reg, reg+disp and reg-disp inside brackets.
func (p *parser) parseMemory(base Token) (Operand, error) {
	reg, err := p.register(base)
	if err != nil {
		return Operand{}, err
	}

	t, ok := p.peek()
	if !ok || !(t.Is('+') || t.Is('-')) {
		return Mem(reg.Register, 0), nil
	}
	p.pos++

	neg := t.Is('-')
	if next, ok := p.peek(); ok && next.Is('-') {
		p.pos++
		neg = !neg
	}
	lit, err := p.next()
	if err != nil {
		return Operand{}, err
	}
	if lit.Kind != TokenInt {
		return Operand{}, errors.Wrapf(ErrSyntax, "%s: unexpected %q in displacement", lit.Pos(), lit.Text)
	}

	v, err := parseLiteral(lit)
	if err != nil {
		return Operand{}, err
	}
	if neg {
		if v > -math.MinInt8 {
			return Operand{}, errors.Wrapf(ErrLiteral, "%s: displacement -%s does not fit in a signed byte", lit.Pos(), lit.Text)
		}
		return Mem(reg.Register, int8(-int64(v))), nil
	}
	if v > math.MaxInt8 {
		return Operand{}, errors.Wrapf(ErrLiteral, "%s: displacement %s does not fit in a signed byte", lit.Pos(), lit.Text)
	}
	return Mem(reg.Register, int8(v)), nil
}

// parseImmediate reads an optionally negated literal as a 32-bit value.
// Positive values up to 0xFFFFFFFF are accepted and wrap to their two's complement form.
func (p *parser) parseImmediate() (int32, error) {
	t, err := p.next()
	if err != nil {
		return 0, err
	}
	neg := t.Is('-')
	if neg {
		if t, err = p.next(); err != nil {
			return 0, err
		}
	}
	if t.Kind != TokenInt {
		return 0, errors.Wrapf(ErrSyntax, "%s: expected a number, found %q", t.Pos(), t.Text)
	}

	v, err := parseLiteral(t)
	if err != nil {
		return 0, err
	}
	if neg {
		if v > -math.MinInt32 {
			return 0, errors.Wrapf(ErrLiteral, "%s: -%s does not fit in 32 bits", t.Pos(), t.Text)
		}
		return int32(-int64(v)), nil
	}
	if v > math.MaxUint32 {
		return 0, errors.Wrapf(ErrLiteral, "%s: %s does not fit in 32 bits", t.Pos(), t.Text)
	}
	return int32(uint32(v)), nil
}

// parseAddress reads an unsigned 32-bit absolute address.
func (p *parser) parseAddress() (uint32, error) {
	t, err := p.next()
	if err != nil {
		return 0, err
	}
	if t.Kind != TokenInt {
		return 0, errors.Wrapf(ErrSyntax, "%s: expected an address, found %q", t.Pos(), t.Text)
	}
	v, err := parseLiteral(t)
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint32 {
		return 0, errors.Wrapf(ErrLiteral, "%s: address %s does not fit in 32 bits", t.Pos(), t.Text)
	}
	return uint32(v), nil
}

func (p *parser) register(t Token) (Operand, error) {
	if t.Kind != TokenIdent {
		return Operand{}, errors.Wrapf(ErrSyntax, "%s: expected a register, found %q", t.Pos(), t.Text)
	}
	r, ok := cpu.LookupRegister(t.Text)
	if !ok {
		return Operand{}, errors.Wrapf(ErrUnknownRegister, "%s: %s", t.Pos(), t.Text)
	}
	return Reg(r), nil
}

// parseLiteral converts an integer token using Go literal rules.
func parseLiteral(t Token) (uint64, error) {
	v, err := strconv.ParseUint(t.Text, 0, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrLiteral, "%s: %s", t.Pos(), t.Text)
	}
	return v, nil
}
