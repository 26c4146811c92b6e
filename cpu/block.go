package cpu

import (
	"bufio"
	"io"
	"iter"
	"strings"
)

// Line is a comment free line of source text.
type Line struct {
	LineNo int
	Text   string
}

// Block is a run of non-blank source lines.
type Block struct {
	Lines []Line
}

// BlockParser splits assembly source into blank line delimited blocks.
//
// Comments start with ';'. A line starting with ';' is dropped, and
// text after the first ';' of a line is dropped. A line holding only
// ';' opens or closes a comment region spanning multiple lines.
type BlockParser struct {
	input   io.Reader
	err     error
	comment int // Line number opening the current comment region.
}

// NewBlockParser creates a block parser for input.
func NewBlockParser(input io.Reader) *BlockParser {
	return &BlockParser{input: input}
}

// Err returns the first error seen while parsing blocks.
func (bp *BlockParser) Err() error {
	return bp.err
}

// strip removes comments from a trimmed line, tracking comment regions.
func (bp *BlockParser) strip(lineno int, text string) string {
	if text == ";" {
		if bp.comment == 0 {
			bp.comment = lineno
		} else {
			bp.comment = 0
		}
		return ""
	}

	if bp.comment != 0 {
		return ""
	}

	before, _, _ := strings.Cut(text, ";")
	return strings.TrimSpace(before)
}

// Blocks returns an iterator over the blocks of the input.
// The input is consumed, so it may only be iterated once.
func (bp *BlockParser) Blocks() iter.Seq[Block] {
	return func(yield func(Block) bool) {
		scanner := bufio.NewScanner(bp.input)

		var block Block
		var lineno int

		flush := func() bool {
			if len(block.Lines) == 0 {
				return true
			}
			ok := yield(block)
			block = Block{}
			return ok
		}

		for scanner.Scan() {
			lineno++
			raw := strings.TrimSpace(scanner.Text())
			if len(raw) == 0 {
				if !flush() {
					return
				}
				continue
			}

			text := bp.strip(lineno, raw)
			if len(text) == 0 {
				continue
			}

			block.Lines = append(block.Lines, Line{LineNo: lineno, Text: text})
		}

		bp.err = scanner.Err()
		if bp.err != nil {
			return
		}

		if bp.comment != 0 {
			bp.err = &ErrSyntax{LineNo: bp.comment, Line: ";", Err: ErrCommentUnclosed}
			return
		}

		flush()
	}
}

// tokenize splits an instruction line on whitespace and commas.
func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}
