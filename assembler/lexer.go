package assembler

import (
	"fmt"

	"github.com/pkg/errors"
)

// TokenKind defines the lexical class of a token.
type TokenKind int

const (
	// TokenIdent is a mnemonic or register name.
	TokenIdent TokenKind = iota
	// TokenInt is an integer literal in Go syntax (10, 0x1f, 0b101, 1_000).
	TokenInt
	// TokenPunct is one of , ; + - [ ] $.
	TokenPunct
)

// Token is one lexical element of the source text.
type Token struct {
	Kind TokenKind
	Text string
	Line int
	Col  int
}

// Pos returns "line:col" for error messages.
func (t Token) Pos() string {
	return fmt.Sprintf("%d:%d", t.Line, t.Col)
}

// Is returns true if the token is the given punctuation character.
func (t Token) Is(punct byte) bool {
	return t.Kind == TokenPunct && len(t.Text) == 1 && t.Text[0] == punct
}

func (t Token) String() string {
	return t.Text
}

// Tokenize splits source text into tokens.
// Whitespace and newlines are insignificant; "//" and "#" start a comment that runs to the end of the line.
func Tokenize(src string) ([]Token, error) {
	var tokens []Token
	line, col := 1, 1
	i := 0
	advance := func(n int) {
		i += n
		col += n
	}

	for i < len(src) {
		c := src[i]
		switch {
		case c == '\n':
			i++
			line++
			col = 1
		case c == ' ' || c == '\t' || c == '\r':
			advance(1)
		case c == '#' || (c == '/' && i+1 < len(src) && src[i+1] == '/'):
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case isIdentStart(c):
			start := i
			for i < len(src) && isIdentChar(src[i]) {
				i++
			}
			tokens = append(tokens, Token{Kind: TokenIdent, Text: src[start:i], Line: line, Col: col})
			col += i - start
		case isDigit(c):
			// Literal bodies are checked by the parser; the lexer only finds their extent.
			start := i
			for i < len(src) && isIdentChar(src[i]) {
				i++
			}
			tokens = append(tokens, Token{Kind: TokenInt, Text: src[start:i], Line: line, Col: col})
			col += i - start
		case isPunct(c):
			tokens = append(tokens, Token{Kind: TokenPunct, Text: string(c), Line: line, Col: col})
			advance(1)
		default:
			return nil, errors.Wrapf(ErrSyntax, "%d:%d: unexpected character %q", line, col, c)
		}
	}
	return tokens, nil
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isPunct(c byte) bool {
	switch c {
	case ',', ';', '+', '-', '[', ']', '$':
		return true
	}
	return false
}
