package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstructions(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name   string
		opcode Opcode
		nargs  int
	}{
		{"NONE", 0, 0},
		{"HALT", 1, 0},
		{"JMP", 2, 1},
		{"MOV", 3, 2},
		{"CMP", 4, 2},
		{"PUSH", 5, 1},
		{"POP", 6, 1},
		{"ADD", 7, 2},
		{"SUB", 8, 2},
		{"CALL", 9, 1},
		{"ASSERT", 10, 2},
	}

	assert.Equal(len(table), len(Instructions))

	for _, entry := range table {
		inst, ok := InstructionByName(entry.name)
		assert.True(ok, entry.name)
		assert.Equal(entry.opcode, inst.Opcode, entry.name)
		assert.Equal(entry.nargs, inst.Nargs(), entry.name)
		assert.Equal(1+2*entry.nargs, inst.Size(), entry.name)
		assert.Equal(entry.name, inst.Name())

		dec, err := Decode(uint32(entry.opcode))
		assert.NoError(err)
		assert.Equal(inst, dec)
	}

	_, ok := InstructionByName("jmp")
	assert.False(ok)

	_, err := Decode(uint32(len(Instructions)))
	assert.ErrorIs(err, ErrOpcodeDecode)
}

func TestOperand(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(Operand(31), OPERAND_ALL)
	assert.True(OPERAND_ALL.Allows(OPERAND_VALUE))
	assert.False(OPERAND_SYMBOL.Allows(OPERAND_INTEGER))
	assert.True(OPERAND_REGISTER.Allows(OPERAND_REGISTER))

	assert.Equal("all", OPERAND_ALL.String())
	assert.Equal("register", OPERAND_REGISTER.String())
	assert.Equal("integer|symbol", (OPERAND_INTEGER | OPERAND_SYMBOL).String())
	assert.Equal("register|value", OPERAND_TARGET.String())
	assert.False(OPERAND_TARGET.Allows(OPERAND_ADDRESS))
	assert.Equal("Operand(0)", Operand(0).String())
}

func TestRegisters(t *testing.T) {
	assert := assert.New(t)

	names := []string{"PC", "AR", "ST", "SB", "FT", "FB", "DS", "DE", "CT", "CB", "x0", "x1", "x2"}
	assert.Equal(REGISTER_COUNT, len(names))

	for n, name := range names {
		reg, ok := RegisterByName(name)
		assert.True(ok, name)
		assert.Equal(Register(n), reg, name)
	}

	_, ok := RegisterByName("x3")
	assert.False(ok)
	_, ok = RegisterByName("pc")
	assert.False(ok)
}

func TestCode(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		code  Code
		words []uint32
		text  string
	}{
		{MakeCode(OP_HALT), []uint32{1}, "HALT"},
		{MakeCode(OP_JMP, Argument{OPERAND_SYMBOL, 3}), []uint32{2, 16, 3}, "JMP #3"},
		{MakeCode(OP_MOV, Argument{OPERAND_REGISTER, uint32(REG_X1)}, Argument{OPERAND_VALUE, 2}),
			[]uint32{3, 1, 11, 4, 2}, "MOV x1, [#2]"},
		{MakeCode(OP_ADD, Argument{OPERAND_REGISTER, uint32(REG_X0)}, Argument{OPERAND_INTEGER, 0xffffffff}),
			[]uint32{7, 1, 10, 2, 0xffffffff}, "ADD x0, 4294967295"},
		{MakeCode(OP_PUSH, Argument{OPERAND_ADDRESS, 12}), []uint32{5, 8, 12}, "PUSH @12"},
	}

	for _, entry := range table {
		assert.Equal(entry.words, entry.code.Words(), entry.text)
		assert.Equal(entry.text, entry.code.String())

		code, err := DecodeCode(append(entry.words, 0xdead))
		assert.NoError(err, entry.text)
		assert.Equal(entry.code.Opcode, code.Opcode, entry.text)
		assert.Equal(entry.code.Args, code.Args, entry.text)
	}

	_, err := DecodeCode(nil)
	assert.ErrorIs(err, ErrOpcodeDecode)

	_, err = DecodeCode([]uint32{3, 1, 10})
	assert.ErrorIs(err, ErrOpcodeDecode)
}
