package emulator

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/oarch/cpu"
)

func assemble(t *testing.T, program []string) *cpu.Program {
	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}
	return prog
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(assemble(t, []string{"HALT"}))

	assert.False(emu.Verbose)
	assert.Equal(STATE_RUNNING, emu.State())
	assert.Equal(0, emu.Ip())
	assert.Equal(1, emu.LineNo())
	assert.Equal(cpu.OP_HALT, emu.Code().Opcode)

	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
	assert.Equal(STATE_HALTED, emu.State())
	assert.Equal("halted", emu.State().String())

	// Ticking a halted emulator does nothing.
	done, err = emu.Tick()
	assert.NoError(err)
	assert.True(done)
	assert.Equal(1, emu.Ticks)

	emu.Reset()
	assert.Equal(STATE_RUNNING, emu.State())
	assert.Equal(0, emu.Ticks)
}

func TestEmulatorSingle(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"n: di 4",
		"",
		"MOV x0, [n]",
		"CALL sub",
		"ASSERT x0, 5",
		"HALT",
		"",
		"sub:",
		"ADD x0, 1",
		"POP PC",
	}

	prog := assemble(t, program)
	emu := NewEmulator(prog)

	order := []int{3, 4, 9, 10, 5, 6}
	for _, lineno := range order {
		assert.Equal(STATE_RUNNING, emu.State())
		assert.Equal(lineno, emu.LineNo(), program[lineno-1])

		debug := emu.Program.Debug(emu.Ip())
		if assert.NotNil(debug) {
			assert.Equal(debug.Code.Words(), emu.Code().Words())
		}

		done, err := emu.Tick()
		if err != nil {
			t.Log(emu.Cpu.String())
			t.Fatalf("%v", err)
		}
		assert.Equal(lineno == 6, done, program[lineno-1])
	}

	assert.Equal(STATE_HALTED, emu.State())
	assert.Equal(len(order), emu.Ticks)
}

func TestEmulatorRuntimeError(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"MOV x0, 1",
		"ADD x0, 1",
		"ASSERT x0, 3",
		"HALT",
	}

	emu := NewEmulator(assemble(t, program))
	err := emu.Run()

	var runtime *ErrRuntime
	if assert.ErrorAs(err, &runtime) {
		assert.Equal(3, runtime.LineNo)
	}

	var failed *cpu.ErrAssertion
	if assert.ErrorAs(err, &failed) {
		assert.Equal(uint32(2), failed.LeftValue)
		assert.Equal(uint32(3), failed.RightValue)
	}

	assert.Equal(STATE_RUNNING, emu.State())
	assert.Equal(3, emu.LineNo())
}

func TestEmulatorTickLimit(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"loop:",
		"ADD x0, 1",
		"JMP loop",
	}

	emu := NewEmulator(assemble(t, program))
	emu.TickLimit = 10

	err := emu.Run()
	assert.ErrorIs(err, ErrTickLimit)
	assert.Equal(10, emu.Ticks)
	assert.Equal(uint32(5), emu.Register[cpu.REG_X0])

	var runtime *ErrRuntime
	if assert.ErrorAs(err, &runtime) {
		assert.Equal(2, runtime.LineNo)
	}
}

func TestEmulatorStep(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"MOV x0, 1",
		"MOV x1, 2",
		"HALT",
	}

	emu := NewEmulator(assemble(t, program))

	var lines []int
	emu.Step = func(emu *Emulator) error {
		lines = append(lines, emu.LineNo())
		return nil
	}

	assert.NoError(emu.Run())
	assert.Equal([]int{1, 2, 3}, lines)

	// A step error stops the run before the cycle executes.
	emu.Reset()
	stop := errors.New("stop")
	emu.Step = func(emu *Emulator) error {
		if emu.LineNo() == 2 {
			return stop
		}
		return nil
	}

	err := emu.Run()
	assert.ErrorIs(err, stop)
	assert.Equal(1, emu.Ticks)
	assert.Equal(uint32(0), emu.Register[cpu.REG_X1])
}

func TestStepPrompt(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"MOV x0, 1",
		"MOV x1, 2",
		"HALT",
	}

	emu := NewEmulator(assemble(t, program))

	output := &bytes.Buffer{}
	emu.Step = StepPrompt(strings.NewReader("\nq\n"), output)

	err := emu.Run()
	assert.ErrorIs(err, ErrStepQuit)
	assert.Equal(1, emu.Ticks)
	assert.Contains(output.String(), "   1: 0000 MOV x0, 1 ? ")
	assert.Contains(output.String(), "   2: 0005 MOV x1, 2 ? ")

	emu.Reset()
	emu.Step = StepPrompt(strings.NewReader(""), output)
	err = emu.Run()
	assert.ErrorIs(err, ErrStepQuit)
	assert.Equal(0, emu.Ticks)
}

func TestEmulatorVerbose(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(assemble(t, []string{"PUSH 3", "HALT"}))

	var log_output bytes.Buffer
	emu.Verbose = true
	emu.Logger = log.New(&log_output, "", 0)

	assert.NoError(emu.Run())
	assert.Contains(log_output.String(), "0000: PUSH 3")
	assert.Contains(log_output.String(), "0003: HALT")
}

func TestEmulatorTestdata(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.oa"))
	if err != nil {
		t.Fatal(err)
	}

	if len(files) == 0 {
		t.Fatal("no testdata programs")
	}

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			assert := assert.New(t)

			inf, err := os.Open(file)
			if err != nil {
				t.Fatal(err)
			}
			defer inf.Close()

			asm := &cpu.Assembler{}
			prog, err := asm.Parse(inf)
			if !assert.NoError(err) {
				return
			}

			emu := NewEmulator(prog)
			emu.TickLimit = 10000

			err = emu.Run()
			assert.NoError(err)
			assert.Equal(STATE_HALTED, emu.State())
		})
	}
}
