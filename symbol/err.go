package symbol

import (
	"errors"

	"github.com/ezrec/oarch/translate"
)

var f = translate.From

var (
	ErrSymbolDuplicate = errors.New(f("symbol duplicated"))
	ErrSymbolIndex     = errors.New(f("symbol index invalid"))
	ErrSymbolKind      = errors.New(f("symbol kind invalid"))
	ErrValueRange      = errors.New(f("value out of range"))
)

// ErrSymbolUnknown is returned when a name is not in the table.
type ErrSymbolUnknown string

func (err ErrSymbolUnknown) Error() string {
	return f("symbol %v unknown", string(err))
}

// ErrLabelUnresolved is returned when a label has no code address yet.
type ErrLabelUnresolved string

func (err ErrLabelUnresolved) Error() string {
	return f("label %v unresolved", string(err))
}
