// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ezrec/oarch/cpu"
	"github.com/ezrec/oarch/emulator"
	"github.com/ezrec/oarch/memory"
)

func main() {
	var verbose bool
	var dump bool
	var step bool
	var limit int

	asm := &cpu.Assembler{}

	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&dump, "x", false, "Hexdump the data and code segments before running")
	flag.BoolVar(&step, "step", false, "Wait for a line of input before each instruction")
	flag.IntVar(&limit, "limit", 0, "Maximum instructions to execute (0 is unlimited)")
	flag.IntVar(&asm.StackSize, "stack", 0, "Stack segment size, in words")
	flag.IntVar(&asm.DataSize, "data", 0, "Data segment size, in words")
	flag.IntVar(&asm.CodeSize, "code", 0, "Code segment size, in words")
	flag.Func("D", "Predefine an equate as NAME=VALUE", func(arg string) error {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("'%v' is not NAME=VALUE", arg)
		}
		asm.Predefine(name, value)
		return nil
	})

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: expected a single source file, given %v", os.Args[0], flag.Args())
	}

	source := flag.Arg(0)

	inf, err := os.Open(source)
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}
	defer inf.Close()

	asm.Verbose = verbose
	prog, err := asm.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}

	if dump {
		for _, id := range []memory.SegmentId{memory.SEGMENT_DATA, memory.SEGMENT_CODE} {
			seg, err := prog.Memory.Segment(id)
			if err != nil {
				log.Fatalf("%v: %v", id, err)
			}
			fmt.Printf("%v:\n", id)
			err = seg.Hexdump(os.Stdout, 0, 0, 8)
			if err != nil {
				log.Fatalf("%v: %v", id, err)
			}
		}
	}

	emu := emulator.NewEmulator(prog)
	emu.Verbose = verbose
	emu.TickLimit = limit
	if step {
		emu.Step = emulator.StepPrompt(os.Stdin, os.Stderr)
	}

	err = emu.Run()
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}

	if verbose {
		log.Printf("%v: halted after %d ticks\n%v", source, emu.Ticks, emu.Cpu)
	}
}
