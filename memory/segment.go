package memory

import (
	"fmt"
	"iter"
	"slices"
)

// SegmentId identifies one of the memory segments.
type SegmentId int

//go:generate go tool stringer -linecomment -type=SegmentId
const (
	SEGMENT_STACK = SegmentId(0) // stack
	SEGMENT_DATA  = SegmentId(1) // data
	SEGMENT_CODE  = SegmentId(2) // code
)

// BlockState is the allocation state of a block of words.
type BlockState int

//go:generate go tool stringer -linecomment -type=BlockState
const (
	BLOCK_FREE      = BlockState(0) // free
	BLOCK_COMMITTED = BlockState(1) // committed
	BLOCK_RESERVED  = BlockState(2) // reserved
)

// Block is a contiguous range of words in a segment.
type Block struct {
	Offset int
	Size   int
	State  BlockState
}

// End returns the offset one past the last word of the block.
func (blk Block) End() int {
	return blk.Offset + blk.Size
}

func (blk Block) overlaps(offset, size int) bool {
	return offset < blk.End() && blk.Offset < offset+size
}

func (blk Block) String() string {
	return fmt.Sprintf("[%d+%d %v]", blk.Offset, blk.Size, blk.State)
}

// Segment is a fixed capacity array of words.
type Segment struct {
	Id   SegmentId
	Word []uint32

	blocks []Block // committed and reserved blocks, sorted by offset
}

// NewSegment creates a zeroed segment of capacity words.
func NewSegment(id SegmentId, capacity int) (seg *Segment) {
	seg = &Segment{
		Id:   id,
		Word: make([]uint32, capacity),
	}

	return
}

// Capacity of the segment in words.
func (seg *Segment) Capacity() int {
	return len(seg.Word)
}

func (seg *Segment) check(addr int, count int) (err error) {
	if addr < 0 || addr >= len(seg.Word) {
		err = &ErrOutOfBounds{Segment: seg.Id, Address: addr, Capacity: len(seg.Word)}
		return
	}
	if count > 0 && addr+count > len(seg.Word) {
		err = &ErrOutOfBounds{Segment: seg.Id, Address: addr + count - 1, Capacity: len(seg.Word)}
		return
	}

	return
}

// Read a single word.
func (seg *Segment) Read(addr int) (value uint32, err error) {
	err = seg.check(addr, 1)
	if err != nil {
		return
	}

	value = seg.Word[addr]
	return
}

// Write a single word.
func (seg *Segment) Write(addr int, value uint32) (err error) {
	err = seg.check(addr, 1)
	if err != nil {
		return
	}

	seg.Word[addr] = value
	return
}

// ReadArray reads count words starting at addr.
func (seg *Segment) ReadArray(addr int, count int) (values []uint32, err error) {
	if count == 0 {
		return
	}

	err = seg.check(addr, count)
	if err != nil {
		return
	}

	values = slices.Clone(seg.Word[addr : addr+count])
	return
}

// WriteArray writes values starting at addr. Nothing is written
// unless the whole range fits in the segment.
func (seg *Segment) WriteArray(addr int, values []uint32) (err error) {
	if len(values) == 0 {
		return
	}

	err = seg.check(addr, len(values))
	if err != nil {
		return
	}

	copy(seg.Word[addr:], values)
	return
}

// zeroed returns true if every word in the range is zero.
func (seg *Segment) zeroed(offset, size int) bool {
	for _, word := range seg.Word[offset : offset+size] {
		if word != 0 {
			return false
		}
	}
	return true
}

// Alloc finds the first window of size words that is neither part of an
// allocated block nor holds any non-zero word, and commits it.
func (seg *Segment) Alloc(size int) (offset int, err error) {
	if size <= 0 {
		err = ErrAllocSize
		return
	}

	offset = 0
	for offset+size <= len(seg.Word) {
		n := slices.IndexFunc(seg.blocks, func(blk Block) bool { return blk.overlaps(offset, size) })
		if n >= 0 {
			offset = seg.blocks[n].End()
			continue
		}

		if !seg.zeroed(offset, size) {
			// Skip past the last dirty word of the window.
			for end := offset + size - 1; end >= offset; end-- {
				if seg.Word[end] != 0 {
					offset = end + 1
					break
				}
			}
			continue
		}

		seg.insert(Block{Offset: offset, Size: size, State: BLOCK_COMMITTED})
		return
	}

	offset = 0
	err = fmt.Errorf("%w: %v %d words", ErrAllocExhausted, seg.Id, size)
	return
}

// Reserve marks a specific range as in use without writing to it.
func (seg *Segment) Reserve(offset, size int) (err error) {
	if size <= 0 {
		err = ErrAllocSize
		return
	}

	err = seg.check(offset, size)
	if err != nil {
		return
	}

	for _, blk := range seg.blocks {
		if blk.overlaps(offset, size) {
			err = ErrBlockOverlap
			return
		}
	}

	seg.insert(Block{Offset: offset, Size: size, State: BLOCK_RESERVED})
	return
}

func (seg *Segment) insert(blk Block) {
	n, _ := slices.BinarySearchFunc(seg.blocks, blk.Offset, func(b Block, offset int) int {
		return b.Offset - offset
	})
	seg.blocks = slices.Insert(seg.blocks, n, blk)
}

// Blocks returns an iterator over the allocated blocks, in address order.
func (seg *Segment) Blocks() iter.Seq[Block] {
	return slices.Values(seg.blocks)
}

// Used returns the number of words held by allocated blocks.
func (seg *Segment) Used() (used int) {
	for _, blk := range seg.blocks {
		used += blk.Size
	}
	return
}

// Clear zeroes the segment and drops all allocations.
func (seg *Segment) Clear() {
	clear(seg.Word)
	seg.blocks = seg.blocks[:0]
}
