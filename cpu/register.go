package cpu

// Register is a processor register index.
type Register int

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_PC = Register(0)  // PC
	REG_AR = Register(1)  // AR
	REG_ST = Register(2)  // ST
	REG_SB = Register(3)  // SB
	REG_FT = Register(4)  // FT
	REG_FB = Register(5)  // FB
	REG_DS = Register(6)  // DS
	REG_DE = Register(7)  // DE
	REG_CT = Register(8)  // CT
	REG_CB = Register(9)  // CB
	REG_X0 = Register(10) // x0
	REG_X1 = Register(11) // x1
	REG_X2 = Register(12) // x2

	REGISTER_COUNT = 13 // Number of registers.
)

// registerMap maps register names to registers.
var registerMap = func() map[string]Register {
	regs := make(map[string]Register, REGISTER_COUNT)
	for reg := range Register(REGISTER_COUNT) {
		regs[reg.String()] = reg
	}
	return regs
}()

// RegisterByName looks up a register by its assembler name.
func RegisterByName(name string) (reg Register, ok bool) {
	reg, ok = registerMap[name]
	return
}

// Flag is a processor status flag index.
type Flag int

//go:generate go tool stringer -linecomment -type=Flag
const (
	FLAG_S  = Flag(0) // S
	FLAG_ZF = Flag(1) // ZF
	FLAG_PF = Flag(2) // PF
	FLAG_SF = Flag(3) // SF

	FLAG_COUNT = 4 // Number of flags.
)
