package cpu

import (
	"errors"
)

// Push writes value to the top of the stack segment, and advances ST.
func (cpu *Cpu) Push(value uint32) (err error) {
	top := cpu.Register[REG_ST]
	err = cpu.Memory.Stack.Write(int(top), value)
	if err != nil {
		err = errors.Join(ErrStackFull, err)
		return
	}

	cpu.Register[REG_ST] = top + 1
	return
}

// Pop removes and returns the top of the stack, zeroing the vacated slot.
func (cpu *Cpu) Pop() (value uint32, err error) {
	value, err = cpu.Peek()
	if err != nil {
		return
	}

	top := cpu.Register[REG_ST] - 1
	err = cpu.Memory.Stack.Write(int(top), 0)
	if err != nil {
		return
	}

	cpu.Register[REG_ST] = top
	return
}

// Peek returns the top of the stack.
func (cpu *Cpu) Peek() (value uint32, err error) {
	top := cpu.Register[REG_ST]
	if top == 0 {
		err = ErrStackEmpty
		return
	}

	value, err = cpu.Memory.Stack.Read(int(top - 1))
	if err != nil {
		err = errors.Join(ErrStackEmpty, err)
	}
	return
}

// StackDepth returns the number of words on the stack.
func (cpu *Cpu) StackDepth() int {
	return int(cpu.Register[REG_ST])
}
