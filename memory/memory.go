package memory

import (
	"fmt"
	"iter"
	"strings"
)

const (
	STACK_SIZE = 256  // Default stack segment capacity, in words.
	DATA_SIZE  = 1024 // Default data segment capacity, in words.
	CODE_SIZE  = 4096 // Default code segment capacity, in words.
)

// Memory is the complete segmented memory of the machine.
type Memory struct {
	Stack *Segment
	Data  *Segment
	Code  *Segment
}

// NewMemory creates a memory with the requested segment capacities.
// A capacity of zero selects the default size for that segment.
func NewMemory(stack, data, code int) (mem *Memory) {
	if stack == 0 {
		stack = STACK_SIZE
	}
	if data == 0 {
		data = DATA_SIZE
	}
	if code == 0 {
		code = CODE_SIZE
	}

	mem = &Memory{
		Stack: NewSegment(SEGMENT_STACK, stack),
		Data:  NewSegment(SEGMENT_DATA, data),
		Code:  NewSegment(SEGMENT_CODE, code),
	}

	return
}

// Segment returns the segment by id.
func (mem *Memory) Segment(id SegmentId) (seg *Segment, err error) {
	switch id {
	case SEGMENT_STACK:
		seg = mem.Stack
	case SEGMENT_DATA:
		seg = mem.Data
	case SEGMENT_CODE:
		seg = mem.Code
	default:
		err = fmt.Errorf("%w: %v", ErrSegmentInvalid, id)
	}

	return
}

// Defines returns the segment capacities as assembler equates.
func (mem *Memory) Defines() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, seg := range []*Segment{mem.Stack, mem.Data, mem.Code} {
			name := fmt.Sprintf("%v_SIZE", strings.ToUpper(seg.Id.String()))
			if !yield(name, fmt.Sprintf("%d", seg.Capacity())) {
				return
			}
		}
	}
}

// Clear all segments.
func (mem *Memory) Clear() {
	mem.Stack.Clear()
	mem.Data.Clear()
	mem.Code.Clear()
}

