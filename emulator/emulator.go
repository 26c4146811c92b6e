// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/ezrec/oarch/cpu"
)

// State is the run state of the emulator.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_RUNNING = State(0) // running
	STATE_HALTED  = State(1) // halted
)

// Emulator runs an assembled program.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	Logger   *log.Logger  // Verbose log destination; nil uses the default logger.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	TickLimit int                   // Maximum cycles executed by Run; zero is unlimited.
	Step      func(*Emulator) error // If set, called before each cycle.
}

// NewEmulator creates a new emulator, taking over the memory and symbols
// of an assembled program.
func NewEmulator(prog *cpu.Program) (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(prog.Memory, prog.Symbols),
		Program: prog,
	}

	emu.Cpu.Reset()

	return
}

// Reset the processor to its initial state.
// The data and code segments are not restored.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Logger = emu.Logger
	emu.Cpu.Reset()
}

// State returns the current run state.
func (emu *Emulator) State() State {
	if emu.Cpu.Halted() {
		return STATE_HALTED
	}
	return STATE_RUNNING
}

// Ip returns current instruction pointer.
func (emu *Emulator) Ip() int {
	return int(emu.Cpu.Register[cpu.REG_AR])
}

// Code returns the current instruction code.
func (emu *Emulator) Code() cpu.Code {
	code, err := emu.Cpu.FetchCode()
	if err != nil {
		return cpu.Code{}
	}

	return code
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	return emu.Program.LineNo(emu.Ip())
}

// Tick performs a single cycle of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Logger = emu.Logger

	if emu.Cpu.Halted() {
		done = true
		return
	}

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	if emu.Step != nil {
		err = emu.Step(emu)
		if err != nil {
			return
		}
	}

	err = emu.Cpu.Tick()
	if err != nil {
		return
	}

	done = emu.Cpu.Halted()
	return
}

// Run ticks the emulator until the program halts, fails, or exceeds
// the TickLimit.
func (emu *Emulator) Run() (err error) {
	for ticks := 0; ; ticks++ {
		if emu.TickLimit > 0 && ticks >= emu.TickLimit {
			err = &ErrRuntime{
				LineNo: emu.LineNo(),
				Err:    fmt.Errorf("%w: %d", ErrTickLimit, emu.TickLimit),
			}
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}

// StepPrompt returns a Step hook that shows the machine state and the
// next instruction on w, then waits for a line from r. A line of "q",
// or the end of r, stops the run with ErrStepQuit.
func StepPrompt(r io.Reader, w io.Writer) func(*Emulator) error {
	scanner := bufio.NewScanner(r)

	return func(emu *Emulator) (err error) {
		code := emu.Code()
		fmt.Fprintf(w, "%v%4d: %04x %v ? ", emu.Cpu, emu.LineNo(), emu.Ip(), emu.Describe(code))

		if !scanner.Scan() {
			err = scanner.Err()
			if err == nil {
				err = ErrStepQuit
			}
			return
		}

		if strings.TrimSpace(scanner.Text()) == "q" {
			err = ErrStepQuit
		}

		return
	}
}
