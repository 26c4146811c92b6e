package cpu

import (
	"iter"

	"github.com/ezrec/oarch/memory"
	"github.com/ezrec/oarch/symbol"
)

// Listing is a line of assembled source and its encoding.
type Listing struct {
	LineNo  int      // Source line number.
	Address int      // Code segment address.
	Words   []string // Source tokens.
	Code    Code     // Encoded instruction.
}

// Program is the output of the assembler: the memory image, the
// symbol table, and the listing of the code segment.
type Program struct {
	Memory  *memory.Memory
	Symbols *symbol.Table
	Listing []Listing
}

// NewProgram creates an empty program with the requested segment
// capacities (zero selects the default).
func NewProgram(stack, data, code int) (prog *Program) {
	mem := memory.NewMemory(stack, data, code)
	prog = &Program{
		Memory:  mem,
		Symbols: symbol.NewTable(mem.Data),
	}

	return
}

// Debug returns the listing entry covering a code address.
func (prog *Program) Debug(addr int) (lst *Listing) {
	for n, op := range prog.Listing {
		if addr >= op.Address && addr < op.Address+op.Code.Size() {
			lst = &prog.Listing[n]
			break
		}
	}

	return
}

// LineNo returns the source line number for a code address, or 0.
func (prog *Program) LineNo(addr int) int {
	lst := prog.Debug(addr)
	if lst == nil {
		return 0
	}
	return lst.LineNo
}

// Codes iterates over the encoded instructions by address.
func (prog *Program) Codes() iter.Seq2[int, Code] {
	return func(yield func(addr int, code Code) bool) {
		for _, op := range prog.Listing {
			if !yield(op.Address, op.Code) {
				return
			}
		}
	}
}
