// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/oarch/internal"
	"github.com/ezrec/oarch/symbol"
)

// blockType is the classification of a source block.
type blockType int

const (
	BLOCK_CODE  = blockType(0) // Instructions.
	BLOCK_DATA  = blockType(1) // Data declarations.
	BLOCK_LABEL = blockType(2) // Label, optionally followed by instructions.
)

// Predefined system equates: the encoded size of each instruction.
var sysEquate = func() map[string]string {
	equ := make(map[string]string, len(Instructions))
	for _, inst := range Instructions {
		equ["SIZE_"+inst.Name()] = fmt.Sprintf("%d", inst.Size())
	}
	return equ
}()

// exprMaxSteps bounds the work of a single $(...) expression.
const exprMaxSteps = 1 << 16

var (
	reSymbolName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
)

// Assembler is a two pass, block structured assembler.
//
// The first pass declares every data symbol and label. The second pass
// encodes each code block and places it in the code segment, patching
// the location of the block's label.
type Assembler struct {
	Verbose bool        // If set, verbosely logs the assembler actions.
	Logger  *log.Logger // Verbose log destination; nil uses the default logger.

	StackSize int // Stack segment words; zero selects the default.
	DataSize  int // Data segment words; zero selects the default.
	CodeSize  int // Code segment words; zero selects the default.

	Equate map[string]string // Names available to $(...) expressions.

	predefine map[string]string
	prog      *Program
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

func (asm *Assembler) logf(format string, args ...any) {
	if !asm.Verbose {
		return
	}
	logger := asm.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf(format, args...)
}

// syntaxError wraps err with the source location of line.
func syntaxError(line Line, err error) error {
	return &ErrSyntax{LineNo: line.LineNo, Line: line.Text, Err: err}
}

// Parse assembles an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	asm.prog = NewProgram(asm.StackSize, asm.DataSize, asm.CodeSize)
	defer func() { asm.prog = nil }()

	asm.Equate = maps.Collect(internal.IterSeq2Concat(
		maps.All(sysEquate),
		asm.prog.Memory.Defines(),
		maps.All(asm.predefine),
	))

	parser := NewBlockParser(input)
	var blocks []Block
	var types []blockType
	for blk := range parser.Blocks() {
		var typ blockType
		typ, err = asm.classify(blk)
		if err != nil {
			err = syntaxError(blk.Lines[0], err)
			return
		}
		blocks = append(blocks, blk)
		types = append(types, typ)
	}
	err = parser.Err()
	if err != nil {
		return
	}

	// Pass 1: declare symbols.
	for n, blk := range blocks {
		switch types[n] {
		case BLOCK_LABEL:
			name, _ := labelName(blk.Lines[0].Text)
			_, err = asm.prog.Symbols.Add(symbol.KIND_LABEL, name, symbol.LOCATION_UNKNOWN)
			if err != nil {
				err = syntaxError(blk.Lines[0], err)
				return
			}
			asm.logf("%v: label %v", blk.Lines[0].LineNo, name)
		case BLOCK_DATA:
			for _, line := range blk.Lines {
				err = asm.declare(line)
				if err != nil {
					err = syntaxError(line, err)
					return
				}
			}
		}
	}

	// Pass 2: encode and place code.
	var pending []string
	for n, blk := range blocks {
		lines := blk.Lines
		switch types[n] {
		case BLOCK_DATA:
			continue
		case BLOCK_LABEL:
			name, _ := labelName(lines[0].Text)
			pending = append(pending, name)
			lines = lines[1:]
			if len(lines) == 0 {
				continue
			}
		}

		var addr int
		addr, err = asm.place(lines)
		if err != nil {
			return
		}

		for _, name := range pending {
			err = asm.prog.Symbols.Update(name, addr)
			if err != nil {
				err = syntaxError(lines[0], err)
				return
			}
			asm.logf("%v: %v = %d", lines[0].LineNo, name, addr)
		}
		pending = pending[:0]
	}

	// Trailing labels refer to the end of the code.
	end := 0
	for blk := range asm.prog.Memory.Code.Blocks() {
		end = max(end, blk.End())
	}
	for _, name := range pending {
		err = asm.prog.Symbols.Update(name, end)
		if err != nil {
			return
		}
		asm.logf("%v = %d", name, end)
	}

	prog = asm.prog
	return
}

// labelName returns the symbol name declared by a token.
func labelName(token string) (name string, err error) {
	name, ok := strings.CutSuffix(token, ":")
	if !ok {
		err = fmt.Errorf("%w: '%v' does not end in ':'", ErrSymbolName, token)
		return
	}

	_, is_reg := RegisterByName(name)
	_, is_inst := InstructionByName(name)
	if is_reg || is_inst || !reSymbolName.MatchString(name) {
		err = fmt.Errorf("%w: '%v'", ErrSymbolName, name)
		return
	}

	return
}

// classify determines the block type from its first token.
func (asm *Assembler) classify(blk Block) (typ blockType, err error) {
	words := strings.Fields(blk.Lines[0].Text)

	switch {
	case strings.Contains(words[0], ":"):
		_, err = labelName(words[0])
		if err != nil {
			return
		}
		if len(words) > 1 {
			typ = BLOCK_DATA
		} else {
			typ = BLOCK_LABEL
		}
	default:
		_, ok := InstructionByName(words[0])
		if !ok {
			err = fmt.Errorf("%w: '%v'", ErrBlockUnknown, words[0])
			return
		}
		typ = BLOCK_CODE
	}

	return
}

// declare registers a single 'name: dtype value' data declaration.
func (asm *Assembler) declare(line Line) (err error) {
	text := strings.ReplaceAll(line.Text, "\t", " ")
	decl, rest, _ := strings.Cut(text, " ")
	dtype, value, _ := strings.Cut(strings.TrimSpace(rest), " ")
	value = strings.TrimSpace(value)

	name, err := labelName(decl)
	if err != nil {
		return
	}

	kind, ok := symbol.KindOf(dtype)
	if !ok {
		err = fmt.Errorf("%w: '%v'", ErrDataType, dtype)
		return
	}

	if len(value) == 0 {
		err = fmt.Errorf("%w: %v has no value", ErrDataSyntax, name)
		return
	}

	if kind == symbol.KIND_STRING && value[0] == '"' {
		var text string
		text, err = strconv.Unquote(value)
		if err != nil {
			err = fmt.Errorf("%w: %v", ErrDataSyntax, err)
			return
		}
		_, err = asm.prog.Symbols.AddString(name, text)
		asm.logf("%v: %v %v %q", line.LineNo, name, kind, text)
		return
	}

	value, err = asm.expand(value)
	if err != nil {
		return
	}

	literal, err := parseNumber(value)
	if err != nil {
		return
	}

	_, err = asm.prog.Symbols.Add(kind, name, literal)
	if err != nil {
		return
	}

	asm.Equate[name] = fmt.Sprintf("%d", literal)
	asm.logf("%v: %v %v %d", line.LineNo, name, kind, literal)

	return
}

// place encodes lines, and writes them to a newly allocated window
// of the code segment.
func (asm *Assembler) place(lines []Line) (addr int, err error) {
	listing := make([]Listing, 0, len(lines))
	size := 0
	for _, line := range lines {
		var lst Listing
		lst, err = asm.encode(line)
		if err != nil {
			err = syntaxError(line, err)
			return
		}
		size += lst.Code.Size()
		listing = append(listing, lst)
	}

	code := asm.prog.Memory.Code
	addr, err = code.Alloc(size)
	if err != nil {
		err = syntaxError(lines[0], err)
		return
	}

	ip := addr
	for n := range listing {
		lst := &listing[n]
		lst.Address = ip
		err = code.WriteArray(ip, lst.Code.Words())
		if err != nil {
			err = syntaxError(lines[n], err)
			return
		}
		asm.logf("%v: %04x %v", lst.LineNo, ip, lst.Code)
		ip += lst.Code.Size()
	}

	asm.prog.Listing = append(asm.prog.Listing, listing...)
	return
}

// encode assembles a single instruction line.
func (asm *Assembler) encode(line Line) (lst Listing, err error) {
	text, err := asm.expand(line.Text)
	if err != nil {
		return
	}

	words := tokenize(text)
	lst = Listing{LineNo: line.LineNo, Words: words}
	if len(words) == 0 {
		err = fmt.Errorf("%w: '%v'", ErrMnemonicUnknown, line.Text)
		return
	}

	inst, ok := InstructionByName(words[0])
	if !ok {
		err = fmt.Errorf("%w: '%v'", ErrMnemonicUnknown, words[0])
		return
	}

	words = words[1:]
	if len(words) != inst.Nargs() {
		err = fmt.Errorf("%w: %v expects %d, given %d", ErrArgumentCount, inst.Name(), inst.Nargs(), len(words))
		return
	}

	args := make([]Argument, len(words))
	for n, word := range words {
		args[n], err = asm.operand(word)
		if err != nil {
			return
		}
		if !inst.Operands[n].Allows(args[n].Kind) {
			err = fmt.Errorf("%w: %v argument %d '%v' is %v, expected %v",
				ErrOperandType, inst.Name(), n+1, word, args[n].Kind, inst.Operands[n])
			return
		}
	}

	lst.Code = MakeCode(inst.Opcode, args...)
	return
}

// operand determines the kind and encoded value of an argument.
func (asm *Assembler) operand(word string) (arg Argument, err error) {
	symbols := asm.prog.Symbols

	reg, ok := RegisterByName(word)
	if ok {
		arg = Argument{Kind: OPERAND_REGISTER, Value: uint32(reg)}
		return
	}

	if len(word) > 2 && word[0] == '[' && word[len(word)-1] == ']' {
		name := word[1 : len(word)-1]
		sym, ok := symbols.Lookup(name)
		if !ok {
			err = ErrTokenUnknown(word)
			return
		}
		if !sym.Kind.Scalar() {
			err = fmt.Errorf("%w: %w: label '%v' has no value", ErrOperandType, symbol.ErrSymbolKind, name)
			return
		}
		index, _ := symbols.IndexOf(name)
		arg = Argument{Kind: OPERAND_VALUE, Value: uint32(index)}
		return
	}

	sym, ok := symbols.Lookup(word)
	if ok {
		if sym.Kind.Scalar() {
			arg = Argument{Kind: OPERAND_ADDRESS, Value: uint32(sym.Location)}
		} else {
			index, _ := symbols.IndexOf(word)
			arg = Argument{Kind: OPERAND_SYMBOL, Value: uint32(index)}
		}
		return
	}

	if !numeric(word) {
		err = ErrTokenUnknown(word)
		return
	}

	value, err := parseNumber(word)
	if err != nil {
		return
	}
	if value < -0x8000_0000 || value > 0xffff_ffff {
		err = ErrParseNumber(word)
		return
	}

	arg = Argument{Kind: OPERAND_INTEGER, Value: uint32(value)}
	return
}

// numeric returns true if word starts like a number.
func numeric(word string) bool {
	word = strings.TrimPrefix(word, "-")
	return len(word) > 0 && word[0] >= '0' && word[0] <= '9'
}

// parseNumber parses a decimal or 0x prefixed hexadecimal literal.
func parseNumber(word string) (value int64, err error) {
	text, negative := strings.CutPrefix(word, "-")

	base := 10
	if hex, ok := strings.CutPrefix(strings.ToLower(text), "0x"); ok {
		base = 16
		text = hex
	}

	// Only a single leading '-' is a sign.
	if len(text) == 0 || text[0] == '-' || text[0] == '+' {
		err = ErrParseNumber(word)
		return
	}

	value, perr := strconv.ParseInt(text, base, 64)
	if perr != nil {
		err = ErrParseNumber(word)
		return
	}

	if negative {
		value = -value
	}

	return
}

// expand replaces character literals and $(...) expressions in text
// with their decimal values.
func (asm *Assembler) expand(text string) (out string, err error) {
	out = reCharacter.ReplaceAllStringFunc(text, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			switch str[1:] {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "t":
				str = "\t"
			case "0":
				str = "\x00"
			default:
				err = fmt.Errorf("%w: %v", ErrParseCharacter, word)
				return word
			}
		}
		return fmt.Sprintf("%d", []rune(str)[0])
	})
	if err != nil {
		return
	}

	out = reExpression.ReplaceAllStringFunc(out, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})

	return
}

// parenEval does compile-time $(...) evaluations.
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	defer func() {
		if err != nil {
			err = &ErrParseExpression{Expr: expr, Err: err}
		}
	}()

	thread := starlark.Thread{Name: "expr"}
	thread.SetMaxExecutionSteps(exprMaxSteps)
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v, perr := parseNumber(str)
		if perr != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt64(v)
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}

	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrExpressionResult
		return
	}

	value, ok = st_int.Int64()
	if !ok {
		err = ErrExpressionResult
		return
	}

	return
}
