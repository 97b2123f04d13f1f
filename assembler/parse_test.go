package assembler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Urethramancer/asm386/assembler"
	"github.com/Urethramancer/asm386/cpu"
)

func parseSource(t *testing.T, src string) ([]assembler.Instruction, error) {
	t.Helper()
	tokens, err := assembler.Tokenize(src)
	require.NoError(t, err)
	return assembler.Parse(tokens)
}

func TestTokenize(t *testing.T) {
	tokens, err := assembler.Tokenize("mov eax, [ebp+0x08]; // load\n# comment line\n  push $-1;")
	require.NoError(t, err)

	var texts []string
	for _, tok := range tokens {
		texts = append(texts, tok.Text)
	}
	assert.Equal(t, []string{"mov", "eax", ",", "[", "ebp", "+", "0x08", "]", ";", "push", "$", "-", "1", ";"}, texts)

	assert.Equal(t, assembler.TokenIdent, tokens[0].Kind)
	assert.Equal(t, assembler.TokenInt, tokens[6].Kind)
	assert.Equal(t, assembler.TokenPunct, tokens[7].Kind)
	assert.Equal(t, "1:1", tokens[0].Pos())
	assert.Equal(t, "1:10", tokens[3].Pos())
	assert.Equal(t, "1:11", tokens[4].Pos())
	assert.Equal(t, "3:3", tokens[9].Pos())
}

func TestTokenizeRejectsUnknownCharacters(t *testing.T) {
	_, err := assembler.Tokenize("mov eax, @1;")
	require.ErrorIs(t, err, assembler.ErrSyntax)
	assert.Contains(t, err.Error(), "1:10")
}

func TestParseOperands(t *testing.T) {
	tests := []struct {
		src  string
		want assembler.Instruction
	}{
		{"mov eax, ecx;", assembler.Instruction{Mnemonic: assembler.MOV, Dst: assembler.Reg(cpu.EAX), Src: assembler.Reg(cpu.ECX)}},
		{"MOV EDX, [EBP];", assembler.Instruction{Mnemonic: assembler.MOV, Dst: assembler.Reg(cpu.EDX), Src: assembler.Mem(cpu.EBP, 0)}},
		{"mov eax, [ebp + 127];", assembler.Instruction{Mnemonic: assembler.MOV, Dst: assembler.Reg(cpu.EAX), Src: assembler.Mem(cpu.EBP, 127)}},
		{"mov eax, [ebp - 128];", assembler.Instruction{Mnemonic: assembler.MOV, Dst: assembler.Reg(cpu.EAX), Src: assembler.Mem(cpu.EBP, -128)}},
		{"mov eax, [ebp + -8];", assembler.Instruction{Mnemonic: assembler.MOV, Dst: assembler.Reg(cpu.EAX), Src: assembler.Mem(cpu.EBP, -8)}},
		{"mov eax, [0x1000];", assembler.Instruction{Mnemonic: assembler.MOV, Dst: assembler.Reg(cpu.EAX), Src: assembler.Abs(0x1000, false)}},
		{"mov eax, [$0xFFFFFFFF];", assembler.Instruction{Mnemonic: assembler.MOV, Dst: assembler.Reg(cpu.EAX), Src: assembler.Abs(0xFFFFFFFF, true)}},
		{"mov [esi+4], 1_000;", assembler.Instruction{Mnemonic: assembler.MOV, Dst: assembler.Mem(cpu.ESI, 4), Src: assembler.Imm(1000, false)}},
		{"add eax, $0b101;", assembler.Instruction{Mnemonic: assembler.ADD, Dst: assembler.Reg(cpu.EAX), Src: assembler.Imm(5, true)}},
		{"sub eax, -0x80000000;", assembler.Instruction{Mnemonic: assembler.SUB, Dst: assembler.Reg(cpu.EAX), Src: assembler.Imm(-0x80000000, false)}},
		{"mov eax, 0xFFFFFFFF;", assembler.Instruction{Mnemonic: assembler.MOV, Dst: assembler.Reg(cpu.EAX), Src: assembler.Imm(-1, false)}},
		{"push $-1;", assembler.Instruction{Mnemonic: assembler.PUSH, Src: assembler.Imm(-1, true)}},
		{"pop edi;", assembler.Instruction{Mnemonic: assembler.POP, Dst: assembler.Reg(cpu.EDI)}},
		{"call 0o17;", assembler.Instruction{Mnemonic: assembler.CALL, Src: assembler.Imm(15, false)}},
		{"Jmp Ebx;", assembler.Instruction{Mnemonic: assembler.JMP, Src: assembler.Reg(cpu.EBX)}},
		{"ret;", assembler.Instruction{Mnemonic: assembler.RET}},
		{"nop;", assembler.Instruction{Mnemonic: assembler.NOP}},
	}
	for _, tc := range tests {
		t.Run(tc.src, func(t *testing.T) {
			program, err := parseSource(t, tc.src)
			require.NoError(t, err)
			require.Len(t, program, 1)
			assert.Equal(t, tc.want, program[0])
		})
	}
}

func TestParseSkipsExtraSemicolons(t *testing.T) {
	program, err := parseSource(t, ";; nop;;; ret;;")
	require.NoError(t, err)
	assert.Equal(t, []assembler.Instruction{{Mnemonic: assembler.NOP}, {Mnemonic: assembler.RET}}, program)
}

func TestParseEmpty(t *testing.T) {
	program, err := assembler.Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, program)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name, src string
		err       error
	}{
		{"MisspelledMnemonic", "addd eax, 1;", assembler.ErrUnknownMnemonic},
		{"MissingComma", "mov eax 1;", assembler.ErrSyntax},
		{"UnknownRegister", "mov eax, foo;", assembler.ErrUnknownRegister},
		{"UnknownBaseRegister", "mov eax, [rax+4];", assembler.ErrUnknownRegister},
		{"UnclosedBracket", "mov eax, [ebx;", assembler.ErrSyntax},
		{"MissingSemicolon", "nop", assembler.ErrUnexpectedEOF},
		{"MissingSemicolonBetween", "nop ret;", assembler.ErrSyntax},
		{"PrematureEnd", "mov eax,", assembler.ErrUnexpectedEOF},
		{"PrematureEndInBracket", "mov eax, [ebx +", assembler.ErrUnexpectedEOF},
		{"TemplateDst", "mov $1, eax;", assembler.ErrSyntax},
		{"TemplateDstAddress", "mov [$0x10], eax;", assembler.ErrSyntax},
		{"TemplateDisplacement", "mov eax, [ebx+$4];", assembler.ErrSyntax},
		{"ImmediateDst", "pop 5;", assembler.ErrSyntax},
		{"DisplacementTooLarge", "mov eax, [ebx+128];", assembler.ErrLiteral},
		{"DisplacementTooSmall", "mov eax, [ebx-129];", assembler.ErrLiteral},
		{"ImmediateTooLarge", "mov eax, 0x100000000;", assembler.ErrLiteral},
		{"ImmediateTooSmall", "mov eax, -0x80000001;", assembler.ErrLiteral},
		{"AddressTooLarge", "mov eax, [0x100000000];", assembler.ErrLiteral},
		{"MalformedLiteral", "mov eax, 0xZZ;", assembler.ErrLiteral},
		{"LeadingPunct", ", nop;", assembler.ErrSyntax},
		{"LiteralMnemonic", "5;", assembler.ErrSyntax},
		{"BracketRegisterMissing", "mov eax, [];", assembler.ErrSyntax},
		{"TemplateWithoutNumber", "push $eax;", assembler.ErrSyntax},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			program, err := parseSource(t, "nop; "+tc.src)
			require.ErrorIs(t, err, tc.err)
			assert.Nil(t, program)
		})
	}
}

func TestAssembleReportsParsePosition(t *testing.T) {
	_, err := assembler.New().Assemble("nop;\nmov eax 1;")
	require.ErrorIs(t, err, assembler.ErrSyntax)
	assert.Contains(t, err.Error(), "2:9")
}

func TestInstructionString(t *testing.T) {
	tests := []struct {
		src, want string
	}{
		{"mov eax, [ebp+8]", "mov eax, [ebp+0x08]"},
		{"mov eax, [ebp-8]", "mov eax, [ebp-0x08]"},
		{"mov ECX, [$4096]", "mov ecx, [$0x00001000]"},
		{"push $32", "push $32"},
		{"pop esi", "pop esi"},
		{"add esp, -4", "add esp, -4"},
		{"ret", "ret"},
	}
	for _, tc := range tests {
		program, err := parseSource(t, tc.src+";")
		require.NoError(t, err)
		assert.Equal(t, tc.want, program[0].String())
	}
}

func TestLookupMnemonic(t *testing.T) {
	for _, name := range []string{"mov", "add", "sub", "shl", "shr", "push", "pop", "call", "ret", "jmp", "nop"} {
		mn, ok := assembler.LookupMnemonic(name)
		require.True(t, ok, name)
		assert.Equal(t, name, mn.String())
	}
	_, ok := assembler.LookupMnemonic("lea")
	assert.False(t, ok)
}
