package symbol

// Kind is the type of a declared symbol.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_LABEL   = Kind(0) // label
	KIND_BYTE    = Kind(1) // db
	KIND_SHORT   = Kind(2) // ds
	KIND_INTEGER = Kind(3) // di
	KIND_DOUBLE  = Kind(4) // dd
	KIND_STRING  = Kind(5) // dc
)

// kindMap maps data directive names to symbol kinds.
var kindMap = map[string]Kind{
	"db": KIND_BYTE,
	"ds": KIND_SHORT,
	"di": KIND_INTEGER,
	"dd": KIND_DOUBLE,
	"dc": KIND_STRING,
}

// KindOf returns the symbol kind of a data directive.
func KindOf(directive string) (kind Kind, ok bool) {
	kind, ok = kindMap[directive]
	return
}

// Scalar returns true for kinds stored in the data segment.
func (kind Kind) Scalar() bool {
	return kind != KIND_LABEL
}

// Words returns the number of data words used to hold a scalar literal.
func (kind Kind) Words() int {
	switch kind {
	case KIND_LABEL:
		return 0
	case KIND_DOUBLE:
		return 2
	default:
		return 1
	}
}

// fits returns true if value can be stored in the kind.
func (kind Kind) fits(value int64) bool {
	switch kind {
	case KIND_BYTE:
		return value >= -0x80 && value <= 0xff
	case KIND_SHORT:
		return value >= -0x8000 && value <= 0xffff
	case KIND_INTEGER, KIND_STRING:
		return value >= -0x8000_0000 && value <= 0xffff_ffff
	default:
		return true
	}
}
