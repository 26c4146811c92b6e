package memory

import (
	"errors"

	"github.com/ezrec/oarch/translate"
)

var f = translate.From

var (
	ErrAllocSize      = errors.New(f("allocation size invalid"))
	ErrAllocExhausted = errors.New(f("allocation exhausted"))
	ErrBlockOverlap   = errors.New(f("block overlaps allocation"))
	ErrSegmentInvalid = errors.New(f("segment invalid"))
)

// ErrOutOfBounds is returned when an address lies outside of a segment.
type ErrOutOfBounds struct {
	Segment  SegmentId
	Address  int
	Capacity int
}

func (err *ErrOutOfBounds) Error() string {
	return f("%v address %d out of bounds (capacity %d)", err.Segment, err.Address, err.Capacity)
}
