package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testProgram() *Program {
	prog := NewProgram(0, 0, 0)
	prog.Listing = []Listing{
		{LineNo: 1, Address: 0, Words: []string{"MOV", "x0", "16"},
			Code: MakeCode(OP_MOV, Argument{OPERAND_REGISTER, uint32(REG_X0)}, Argument{OPERAND_INTEGER, 16})},
		{LineNo: 2, Address: 5, Words: []string{"PUSH", "x0"},
			Code: MakeCode(OP_PUSH, Argument{OPERAND_REGISTER, uint32(REG_X0)})},
		{LineNo: 4, Address: 8, Words: []string{"HALT"},
			Code: MakeCode(OP_HALT)},
	}
	return prog
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	table := []struct {
		addr   int
		lineno int
	}{
		{0, 1}, {4, 1}, {5, 2}, {7, 2}, {8, 4}, {9, 0}, {-1, 0},
	}

	for _, entry := range table {
		lst := prog.Debug(entry.addr)
		if entry.lineno == 0 {
			assert.Nil(lst, "addr %d", entry.addr)
		} else if assert.NotNil(lst, "addr %d", entry.addr) {
			assert.Equal(entry.lineno, lst.LineNo, "addr %d", entry.addr)
		}
		assert.Equal(entry.lineno, prog.LineNo(entry.addr), "addr %d", entry.addr)
	}
}

func TestProgram_Codes(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	var addrs []int
	var ops []Opcode
	for addr, code := range prog.Codes() {
		addrs = append(addrs, addr)
		ops = append(ops, code.Opcode)
	}

	assert.Equal([]int{0, 5, 8}, addrs)
	assert.Equal([]Opcode{OP_MOV, OP_PUSH, OP_HALT}, ops)
}
