// Package cpu implements the processor and assembler for the oarch system.
//
// The CPU consists of a program counter (PC) with its fetch address
// register (AR), a stack top register (ST), seven special purpose and three
// general purpose (x0-x2) 32-bit registers, and four status flags. It
// executes an ordinal encoded instruction stream from the code segment,
// and uses the stack and data segments of the memory image built by the
// assembler.
//
// The assembler reads blank line delimited blocks of source. Each block is
// a label, a run of data declarations, or a run of instructions. Symbols
// are declared in a first pass, and code blocks are encoded and placed in a
// second pass, so labels may be referenced before they are declared.
package cpu
