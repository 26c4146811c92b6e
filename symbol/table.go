// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package symbol implements the assembler symbol table.
//
// Symbols are kept in declaration order, and the encoded instruction
// stream refers to them by their index in that order. A symbol is never
// removed or reordered once declared.
package symbol

import (
	"fmt"
	"iter"

	"github.com/ezrec/oarch/memory"
)

// LOCATION_UNKNOWN is the location of a label whose code block has not
// been placed yet.
const LOCATION_UNKNOWN = -1

// Symbol is a named program entity.
type Symbol struct {
	Name     string
	Kind     Kind
	Location int // Code address for labels, data offset for scalars.
	Size     int // Data words held by the symbol.
}

func (sym Symbol) String() string {
	return fmt.Sprintf("%v %v @%d", sym.Name, sym.Kind, sym.Location)
}

// Table maps symbol names to locations, and to stable indexes.
type Table struct {
	Data *memory.Segment // Segment holding scalar literals.

	index   map[string]int
	symbols []Symbol
}

// NewTable creates an empty symbol table storing literals in data.
func NewTable(data *memory.Segment) (table *Table) {
	table = &Table{
		Data:  data,
		index: make(map[string]int, 16),
	}

	return
}

func (table *Table) insert(sym Symbol) (index int, err error) {
	_, ok := table.index[sym.Name]
	if ok {
		err = fmt.Errorf("%w: %v", ErrSymbolDuplicate, sym.Name)
		return
	}

	index = len(table.symbols)
	table.symbols = append(table.symbols, sym)
	table.index[sym.Name] = index

	return
}

// Add declares a new symbol.
//
// For a label, value is its code location (LOCATION_UNKNOWN until the
// owning block is placed). For scalar kinds, the literal value is stored
// in newly allocated data words, low word first.
func (table *Table) Add(kind Kind, name string, value int64) (index int, err error) {
	_, ok := table.index[name]
	if ok {
		err = fmt.Errorf("%w: %v", ErrSymbolDuplicate, name)
		return
	}

	if kind == KIND_LABEL {
		return table.insert(Symbol{Name: name, Kind: kind, Location: int(value)})
	}

	if !kind.fits(value) {
		err = fmt.Errorf("%w: %v %v %d", ErrValueRange, name, kind, value)
		return
	}

	words := []uint32{uint32(value)}
	if kind == KIND_DOUBLE {
		words = append(words, uint32(uint64(value)>>32))
	}

	return table.store(kind, name, words)
}

// AddString declares a string symbol, stored one character per
// word with a terminating zero word.
func (table *Table) AddString(name string, text string) (index int, err error) {
	_, ok := table.index[name]
	if ok {
		err = fmt.Errorf("%w: %v", ErrSymbolDuplicate, name)
		return
	}

	words := make([]uint32, 0, len(text)+1)
	for _, r := range text {
		words = append(words, uint32(r))
	}
	words = append(words, 0)

	return table.store(KIND_STRING, name, words)
}

func (table *Table) store(kind Kind, name string, words []uint32) (index int, err error) {
	location, err := table.Data.Alloc(len(words))
	if err != nil {
		return
	}

	err = table.Data.WriteArray(location, words)
	if err != nil {
		return
	}

	return table.insert(Symbol{Name: name, Kind: kind, Location: location, Size: len(words)})
}

// Update overwrites the location of a symbol.
func (table *Table) Update(name string, location int) (err error) {
	index, ok := table.index[name]
	if !ok {
		err = ErrSymbolUnknown(name)
		return
	}

	table.symbols[index].Location = location
	return
}

// Get returns the location of a symbol: the code address of a label,
// or the data offset of a scalar. Dereferencing is up to the caller.
func (table *Table) Get(name string) (location int, err error) {
	sym, ok := table.Lookup(name)
	if !ok {
		err = ErrSymbolUnknown(name)
		return
	}

	if sym.Location == LOCATION_UNKNOWN {
		err = ErrLabelUnresolved(name)
		return
	}

	location = sym.Location
	return
}

// Lookup returns the symbol record for name.
func (table *Table) Lookup(name string) (sym Symbol, ok bool) {
	index, ok := table.index[name]
	if ok {
		sym = table.symbols[index]
	}
	return
}

// IndexOf returns the stable index of a symbol.
func (table *Table) IndexOf(name string) (index int, ok bool) {
	index, ok = table.index[name]
	return
}

// NameAt returns the name of the symbol at index.
func (table *Table) NameAt(index int) (name string, err error) {
	sym, err := table.At(index)
	if err != nil {
		return
	}

	name = sym.Name
	return
}

// At returns the symbol at index.
func (table *Table) At(index int) (sym Symbol, err error) {
	if index < 0 || index >= len(table.symbols) {
		err = fmt.Errorf("%w: %d", ErrSymbolIndex, index)
		return
	}

	sym = table.symbols[index]
	return
}

// Len returns the number of declared symbols.
func (table *Table) Len() int {
	return len(table.symbols)
}

// All iterates over the symbols in declaration order.
func (table *Table) All() iter.Seq2[int, Symbol] {
	return func(yield func(int, Symbol) bool) {
		for n, sym := range table.symbols {
			if !yield(n, sym) {
				return
			}
		}
	}
}
