// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"log"
	"math/bits"

	"github.com/ezrec/oarch/memory"
	"github.com/ezrec/oarch/symbol"
)

// Cpu is the processor state: registers, flags, and the memory and
// symbol table handed over by the assembler.
type Cpu struct {
	Verbose bool        // Set to enable verbose logging.
	Logger  *log.Logger // Verbose log destination; nil uses the default logger.

	Memory  *memory.Memory // Stack, data and code segments.
	Symbols *symbol.Table  // Symbols referenced by index from the code.

	Register [REGISTER_COUNT]uint32 // Register bank.
	Flag     [FLAG_COUNT]uint8      // Status flags, one bit each.

	Ticks int // Executed instruction counter.
}

// NewCpu creates a processor over an assembled memory image.
func NewCpu(mem *memory.Memory, symbols *symbol.Table) (cpu *Cpu) {
	cpu = &Cpu{
		Memory:  mem,
		Symbols: symbols,
	}

	return
}

func (cpu *Cpu) logf(format string, args ...any) {
	if !cpu.Verbose {
		return
	}
	logger := cpu.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf(format, args...)
}

// Reset the CPU state.
// - Clears the registers and flags.
// - Clears the stack segment, and reserves all of it for the stack.
// - Zeros the tick counter.
func (cpu *Cpu) Reset() {
	cpu.logf("cpu: reset")

	clear(cpu.Register[:])
	clear(cpu.Flag[:])

	stack := cpu.Memory.Stack
	stack.Clear()
	if size := stack.Capacity(); size > 0 {
		err := stack.Reserve(0, size)
		if err != nil {
			cpu.logf("cpu: stack: %v", err)
		}
	}

	cpu.Ticks = 0
}

// Halted returns true once a HALT has executed.
func (cpu *Cpu) Halted() bool {
	return cpu.Flag[FLAG_S] != 0
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	for reg := range Register(REGISTER_COUNT) {
		val := cpu.Register[reg]
		text += fmt.Sprintf("% 5s: %04X_%04X\n", reg.String(), val>>16, val&0xffff)
	}

	flags := ""
	for flag := range Flag(FLAG_COUNT) {
		if cpu.Flag[flag] != 0 {
			flags += " " + flag.String()
		} else {
			flags += " --"
		}
	}
	text += fmt.Sprintf("% 5s:%v\n", "flags", flags)

	if value, err := cpu.Peek(); err == nil {
		text += fmt.Sprintf("% 5s: %04X_%04X\n", "stack", value>>16, value&0xffff)
	} else {
		text += fmt.Sprintf("% 5s: ----_----\n", "stack")
	}

	return
}

// FetchCode fetches and decodes the instruction at AR.
func (cpu *Cpu) FetchCode() (code Code, err error) {
	addr := int(cpu.Register[REG_AR])
	code_seg := cpu.Memory.Code

	word, err := code_seg.Read(addr)
	if err != nil {
		return
	}

	inst, err := Decode(word)
	if err != nil {
		return
	}

	words, err := code_seg.ReadArray(addr, inst.Size())
	if err != nil {
		return
	}

	code, err = DecodeCode(words)
	return
}

// Tick executes a single fetch, decode and execute cycle.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Halted() {
		err = ErrHalted
		return
	}

	code, err := cpu.FetchCode()
	if err != nil {
		err = fmt.Errorf("fetch %04x: %w", cpu.Register[REG_AR], err)
		return
	}

	return cpu.Execute(code)
}

// setFlags updates ZF, SF and PF from an ALU result.
func (cpu *Cpu) setFlags(result uint32) {
	cpu.setFlag(FLAG_ZF, result == 0)
	cpu.setFlag(FLAG_SF, int32(result) < 0)
	cpu.setFlag(FLAG_PF, bits.OnesCount8(uint8(result))%2 == 0)
}

func (cpu *Cpu) setFlag(flag Flag, value bool) {
	if value {
		cpu.Flag[flag] = 1
	} else {
		cpu.Flag[flag] = 0
	}
}

// Execute executes a single decoded instruction located at AR.
func (cpu *Cpu) Execute(code Code) (err error) {
	pc := cpu.Register[REG_AR]

	defer func() {
		if err != nil {
			err = &ErrOpcode{Address: int(pc), Code: code, Err: err}
		}
	}()

	if len(code.Args) != code.Nargs() {
		err = ErrOpcodeDecode
		return
	}

	cpu.logf("%04x: %v", pc, cpu.Describe(code))

	next_pc := pc + uint32(code.Size())
	args := code.Args

	// setTarget resolves a destination argument to its current value,
	// and a function to replace it.
	setTarget := func(arg Argument) (input uint32, set func(value uint32) error, err error) {
		switch arg.Kind {
		case OPERAND_REGISTER:
			if arg.Value >= REGISTER_COUNT {
				err = ErrTargetInvalid
				return
			}
			reg := Register(arg.Value)
			input = cpu.Register[reg]
			if reg == REG_PC {
				set = func(value uint32) error { next_pc = value; return nil }
			} else {
				set = func(value uint32) error { cpu.Register[reg] = value; return nil }
			}
		case OPERAND_VALUE:
			var sym symbol.Symbol
			sym, err = cpu.dataSymbol(arg.Value)
			if err != nil {
				return
			}
			input, err = cpu.Memory.Data.Read(sym.Location)
			set = func(value uint32) error { return cpu.Memory.Data.Write(sym.Location, value) }
		default:
			err = ErrTargetInvalid
		}
		return
	}

	switch code.Opcode {
	case OP_NONE, OP_HALT:
		cpu.setFlag(FLAG_S, true)
		next_pc = pc
	case OP_JMP:
		next_pc, err = cpu.Value(args[0])
		if err != nil {
			return
		}
	case OP_CALL:
		var target uint32
		target, err = cpu.Value(args[0])
		if err != nil {
			return
		}
		err = cpu.Push(next_pc)
		if err != nil {
			return
		}
		next_pc = target
	case OP_MOV:
		var value uint32
		value, err = cpu.Value(args[1])
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrOpcodeArg2, err)
			return
		}
		var set func(uint32) error
		_, set, err = setTarget(args[0])
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrOpcodeArg1, err)
			return
		}
		err = set(value)
	case OP_ADD, OP_SUB:
		var value, input uint32
		value, err = cpu.Value(args[1])
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrOpcodeArg2, err)
			return
		}
		var set func(uint32) error
		input, set, err = setTarget(args[0])
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrOpcodeArg1, err)
			return
		}
		output := input + value
		if code.Opcode == OP_SUB {
			output = input - value
		}
		cpu.setFlags(output)
		err = set(output)
	case OP_CMP:
		var a, b uint32
		a, b, err = cpu.values(args)
		if err != nil {
			return
		}
		cpu.setFlags(a - b)
	case OP_PUSH:
		var value uint32
		value, err = cpu.Value(args[0])
		if err != nil {
			return
		}
		err = cpu.Push(value)
	case OP_POP:
		var set func(uint32) error
		_, set, err = setTarget(args[0])
		if err != nil {
			return
		}
		var value uint32
		value, err = cpu.Pop()
		if err != nil {
			return
		}
		err = set(value)
	case OP_ASSERT:
		var a, b uint32
		a, b, err = cpu.values(args)
		if err != nil {
			return
		}
		if a != b {
			err = &ErrAssertion{
				Left:       cpu.Name(args[0]),
				LeftValue:  a,
				Right:      cpu.Name(args[1]),
				RightValue: b,
			}
			return
		}
	default:
		err = ErrOpcodeDecode
	}

	if err != nil {
		return
	}

	cpu.Register[REG_PC] = next_pc
	cpu.Register[REG_AR] = next_pc
	cpu.Ticks++

	return
}

// values resolves both arguments of a two argument instruction.
func (cpu *Cpu) values(args []Argument) (a, b uint32, err error) {
	a, err = cpu.Value(args[0])
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrOpcodeArg1, err)
		return
	}

	b, err = cpu.Value(args[1])
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrOpcodeArg2, err)
		return
	}

	return
}

// dataSymbol returns the scalar symbol at index.
func (cpu *Cpu) dataSymbol(index uint32) (sym symbol.Symbol, err error) {
	sym, err = cpu.Symbols.At(int(index))
	if err != nil {
		return
	}

	if !sym.Kind.Scalar() {
		err = fmt.Errorf("%w: %v is a %v", ErrOperandKind, sym.Name, sym.Kind)
		return
	}

	return
}

// Value resolves an argument to its effective 32-bit value.
//   - REGISTER: the register contents.
//   - INTEGER, ADDRESS: the encoded value.
//   - VALUE: the data word of the indexed symbol.
//   - SYMBOL: the code address of the indexed label.
func (cpu *Cpu) Value(arg Argument) (value uint32, err error) {
	switch arg.Kind {
	case OPERAND_REGISTER:
		if arg.Value >= REGISTER_COUNT {
			err = fmt.Errorf("%w: register %d", ErrOperandKind, arg.Value)
			return
		}
		value = cpu.Register[arg.Value]
	case OPERAND_INTEGER, OPERAND_ADDRESS:
		value = arg.Value
	case OPERAND_VALUE:
		var sym symbol.Symbol
		sym, err = cpu.dataSymbol(arg.Value)
		if err != nil {
			return
		}
		value, err = cpu.Memory.Data.Read(sym.Location)
	case OPERAND_SYMBOL:
		var name string
		name, err = cpu.Symbols.NameAt(int(arg.Value))
		if err != nil {
			return
		}
		var location int
		location, err = cpu.Symbols.Get(name)
		if err != nil {
			return
		}
		value = uint32(location)
	default:
		err = fmt.Errorf("%w: %v", ErrOperandKind, arg.Kind)
	}

	return
}

// Name returns the source text of an argument.
func (cpu *Cpu) Name(arg Argument) string {
	switch arg.Kind {
	case OPERAND_VALUE, OPERAND_SYMBOL:
		name, err := cpu.Symbols.NameAt(int(arg.Value))
		if err != nil {
			break
		}
		if arg.Kind == OPERAND_VALUE {
			return "[" + name + "]"
		}
		return name
	case OPERAND_ADDRESS:
		for _, sym := range cpu.Symbols.All() {
			if sym.Kind.Scalar() && sym.Location == int(arg.Value) {
				return sym.Name
			}
		}
	}

	return arg.String()
}

// Describe returns the source text of an instruction.
func (cpu *Cpu) Describe(code Code) string {
	text := code.Name()
	for n, arg := range code.Args {
		if n == 0 {
			text += " "
		} else {
			text += ", "
		}
		text += cpu.Name(arg)
	}

	return text
}
