package cpu

import (
	"errors"

	"github.com/ezrec/oarch/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted        = errors.New(f("halted"))
	ErrStackEmpty    = errors.New(f("stack empty"))
	ErrStackFull     = errors.New(f("stack full"))
	ErrTargetInvalid = errors.New(f("target invalid"))
	ErrOperandKind   = errors.New(f("operand kind invalid"))

	// Instruction decode errors
	ErrOpcodeDecode = errors.New(f("decode"))
	ErrOpcodeArg1   = errors.New(f("arg1"))
	ErrOpcodeArg2   = errors.New(f("arg2"))

	// Assembler errors
	ErrBlockUnknown     = errors.New(f("unknown block type"))
	ErrDataSyntax       = errors.New(f("data declaration syntax"))
	ErrDataType         = errors.New(f("data type unknown"))
	ErrSymbolName       = errors.New(f("symbol name invalid"))
	ErrMnemonicUnknown  = errors.New(f("unknown mnemonic"))
	ErrArgumentCount    = errors.New(f("argument count mismatch"))
	ErrOperandType      = errors.New(f("operand type mismatch"))
	ErrCommentUnclosed  = errors.New(f("comment without closing ;"))
	ErrParseCharacter   = errors.New(f("character literal invalid"))
	ErrExpressionResult = errors.New(f("expression is not an integer"))
)

// ErrTokenUnknown is returned for an argument that is not a register,
// symbol or number.
type ErrTokenUnknown string

func (err ErrTokenUnknown) Error() string {
	return f("unknown token '%v'", string(err))
}

// ErrParseNumber is returned for a malformed numeric literal.
type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

// ErrParseExpression is returned when a $(...) expression fails.
type ErrParseExpression struct {
	Expr string
	Err  error
}

func (err *ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression: %v", err.Expr, err.Err)
}

func (err *ErrParseExpression) Unwrap() error {
	return err.Err
}

// ErrSyntax locates an assembly error in the source.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrAssertion is returned by a failed ASSERT instruction.
type ErrAssertion struct {
	Left       string // Text of the first operand.
	LeftValue  uint32
	Right      string // Text of the second operand.
	RightValue uint32
}

func (err *ErrAssertion) Error() string {
	return f("assertion failed: %v = %d (0x%x), expected %v = %d (0x%x)",
		err.Left, err.LeftValue, err.LeftValue,
		err.Right, err.RightValue, err.RightValue)
}

// ErrOpcode locates an execution error at a code address.
type ErrOpcode struct {
	Address int
	Code    Code
	Err     error
}

func (err *ErrOpcode) Error() string {
	return f("%04x %v: %v", err.Address, err.Code, err.Err)
}

func (err *ErrOpcode) Unwrap() error {
	return err.Err
}
