package cpu

import (
	"bufio"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzAssembler(f *testing.F) {
	seeds := []string{
		"",
		",",
		"HALT\n,\n",
		"start:\n,\n",
		"HALT\n, ;x\n",
		"JMP start\n\nstart:\nHALT\n",
		"x: db 5\ns: dc \"hi\"\nc: dc 'A'\n\nMOV x0, [x]\nADD x0, s\nPUSH c\n",
		"loop:\nCALL loop\nPOP PC\n\nend:\n",
		";\ncomment\n;\nMOV x1, $(SIZE_MOV * 2)\nASSERT x1, 0x0a\n",
		"x: dd 0x100000002\n\nMOV [x], -1\nCMP x2, '\\n'\n",
		"x: db 0x-5\n",
		"MOV x0, [\n",
		"x: dc '\\'\n",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, source string) {
		assert := assert.New(t)

		asm := &Assembler{StackSize: 16, DataSize: 64, CodeSize: 256}
		prog, err := asm.Parse(strings.NewReader(source))
		if err != nil {
			var syntax *ErrSyntax
			if !errors.Is(err, bufio.ErrTooLong) {
				assert.True(errors.As(err, &syntax), "%q: %v", source, err)
			}
			return
		}

		// Every placed instruction is in the code segment as listed.
		for _, lst := range prog.Listing {
			words, err := prog.Memory.Code.ReadArray(lst.Address, lst.Code.Size())
			assert.NoError(err, "%q", source)
			assert.Equal(lst.Code.Words(), words, "%q line %d", source, lst.LineNo)
		}

		// Every label is resolved.
		for _, sym := range prog.Symbols.All() {
			_, err := prog.Symbols.Get(sym.Name)
			assert.NoError(err, "%q %v", source, sym.Name)
		}
	})
}
