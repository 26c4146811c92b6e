// Package memory implements the segmented word memory of the oarch machine.
//
// Memory is split into three fixed capacity segments: the stack, the data
// segment holding declared symbols, and the code segment holding the
// encoded instruction stream. Each segment is a flat array of 32-bit words
// with bounds checked access and a first-fit allocator backed by an explicit
// block table.
package memory
