package cpu

import (
	"fmt"
	"strings"
)

// Operand is a set of operand kinds.
type Operand uint32

const (
	OPERAND_REGISTER = Operand(1 << 0) // Register contents.
	OPERAND_INTEGER  = Operand(1 << 1) // Literal value.
	OPERAND_VALUE    = Operand(1 << 2) // Data word of a scalar symbol.
	OPERAND_ADDRESS  = Operand(1 << 3) // Data address of a scalar symbol.
	OPERAND_SYMBOL   = Operand(1 << 4) // Code address of a label.

	OPERAND_ALL    = OPERAND_REGISTER | OPERAND_INTEGER | OPERAND_VALUE | OPERAND_ADDRESS | OPERAND_SYMBOL
	OPERAND_TARGET = OPERAND_REGISTER | OPERAND_VALUE // Writable destination.
)

var operandNames = []string{"register", "integer", "value", "address", "symbol"}

// Allows returns true if any kind in kind is in the set.
func (op Operand) Allows(kind Operand) bool {
	return (op & kind) != 0
}

func (op Operand) String() string {
	if op == OPERAND_ALL {
		return "all"
	}
	var names []string
	for n, name := range operandNames {
		if (op & (1 << n)) != 0 {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return fmt.Sprintf("Operand(%d)", uint32(op))
	}
	return strings.Join(names, "|")
}

// Opcode is the ordinal of an instruction in the instruction set.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_NONE   = Opcode(0)  // NONE
	OP_HALT   = Opcode(1)  // HALT
	OP_JMP    = Opcode(2)  // JMP
	OP_MOV    = Opcode(3)  // MOV
	OP_CMP    = Opcode(4)  // CMP
	OP_PUSH   = Opcode(5)  // PUSH
	OP_POP    = Opcode(6)  // POP
	OP_ADD    = Opcode(7)  // ADD
	OP_SUB    = Opcode(8)  // SUB
	OP_CALL   = Opcode(9)  // CALL
	OP_ASSERT = Opcode(10) // ASSERT
)

// Instruction describes a mnemonic and its operands.
type Instruction struct {
	Opcode   Opcode
	Operands []Operand // Allowed operand kinds, per argument.
}

// Name returns the assembler mnemonic.
func (inst Instruction) Name() string {
	return inst.Opcode.String()
}

// Nargs returns the number of arguments.
func (inst Instruction) Nargs() int {
	return len(inst.Operands)
}

// Size returns the number of code words of the encoded instruction.
func (inst Instruction) Size() int {
	return 1 + 2*len(inst.Operands)
}

// Instructions is the instruction set, indexed by opcode. The binary
// format is ordinal addressed, so entries must never be reordered.
//
// The first operand of MOV, ADD, SUB and ASSERT is narrowed from
// OPERAND_ALL to OPERAND_TARGET: a literal, address or label there is
// rejected by the assembler instead of failing at run time.
var Instructions = [...]Instruction{
	OP_NONE:   {OP_NONE, nil},
	OP_HALT:   {OP_HALT, nil},
	OP_JMP:    {OP_JMP, []Operand{OPERAND_SYMBOL}},
	OP_MOV:    {OP_MOV, []Operand{OPERAND_TARGET, OPERAND_ALL}},
	OP_CMP:    {OP_CMP, []Operand{OPERAND_ALL, OPERAND_ALL}},
	OP_PUSH:   {OP_PUSH, []Operand{OPERAND_ALL}},
	OP_POP:    {OP_POP, []Operand{OPERAND_REGISTER}},
	OP_ADD:    {OP_ADD, []Operand{OPERAND_TARGET, OPERAND_ALL}},
	OP_SUB:    {OP_SUB, []Operand{OPERAND_TARGET, OPERAND_ALL}},
	OP_CALL:   {OP_CALL, []Operand{OPERAND_SYMBOL}},
	OP_ASSERT: {OP_ASSERT, []Operand{OPERAND_TARGET, OPERAND_ALL}},
}

// instructionMap maps mnemonics to instructions.
var instructionMap = func() map[string]Instruction {
	insts := make(map[string]Instruction, len(Instructions))
	for _, inst := range Instructions {
		insts[inst.Name()] = inst
	}
	return insts
}()

// InstructionByName looks up an instruction by mnemonic.
func InstructionByName(name string) (inst Instruction, ok bool) {
	inst, ok = instructionMap[name]
	return
}

// Decode returns the instruction for an opcode word.
func Decode(word uint32) (inst Instruction, err error) {
	if word >= uint32(len(Instructions)) {
		err = fmt.Errorf("%w: 0x%x", ErrOpcodeDecode, word)
		return
	}

	inst = Instructions[word]
	return
}

// Argument is an encoded instruction argument.
type Argument struct {
	Kind  Operand
	Value uint32 // Register ordinal, literal, data address or symbol index.
}

// Code is a single encoded instruction.
type Code struct {
	Instruction
	Args []Argument
}

// MakeCode creates an instruction encoding.
func MakeCode(op Opcode, args ...Argument) Code {
	return Code{
		Instruction: Instructions[op],
		Args:        args,
	}
}

// Words returns the code words: the opcode, then a kind and
// value word pair for each argument.
func (code Code) Words() (words []uint32) {
	words = make([]uint32, 0, 1+2*len(code.Args))
	words = append(words, uint32(code.Opcode))
	for _, arg := range code.Args {
		words = append(words, uint32(arg.Kind), arg.Value)
	}

	return
}

// DecodeCode decodes a single instruction from the start of words.
func DecodeCode(words []uint32) (code Code, err error) {
	if len(words) == 0 {
		err = ErrOpcodeDecode
		return
	}

	inst, err := Decode(words[0])
	if err != nil {
		return
	}

	if len(words) < inst.Size() {
		err = fmt.Errorf("%w: %v truncated", ErrOpcodeDecode, inst.Name())
		return
	}

	code.Instruction = inst
	for n := range inst.Nargs() {
		arg := Argument{
			Kind:  Operand(words[1+2*n]),
			Value: words[2+2*n],
		}
		code.Args = append(code.Args, arg)
	}

	return
}

func (arg Argument) String() string {
	switch arg.Kind {
	case OPERAND_REGISTER:
		return Register(arg.Value).String()
	case OPERAND_INTEGER:
		return fmt.Sprintf("%d", arg.Value)
	case OPERAND_VALUE:
		return fmt.Sprintf("[#%d]", arg.Value)
	case OPERAND_ADDRESS:
		return fmt.Sprintf("@%d", arg.Value)
	case OPERAND_SYMBOL:
		return fmt.Sprintf("#%d", arg.Value)
	}
	return fmt.Sprintf("%v:%d", arg.Kind, arg.Value)
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	if len(code.Args) == 0 {
		return code.Name()
	}

	args := make([]string, len(code.Args))
	for n, arg := range code.Args {
		args[n] = arg.String()
	}

	return code.Name() + " " + strings.Join(args, ", ")
}
