package memory

import (
	"fmt"
	"io"
	"strings"
)

// Hexdump writes count words starting at offset, width words per line.
// A count of zero dumps up to the last non-zero word of the segment.
func (seg *Segment) Hexdump(w io.Writer, offset, count, width int) (err error) {
	if width <= 0 {
		width = 8
	}

	if count == 0 {
		for end := len(seg.Word); end > offset; end-- {
			if seg.Word[end-1] != 0 {
				count = end - offset
				break
			}
		}
		if count == 0 {
			return
		}
	}

	words, err := seg.ReadArray(offset, count)
	if err != nil {
		return
	}

	for n := 0; n < len(words); n += width {
		line := words[n:min(n+width, len(words))]

		hex := make([]string, len(line))
		var text strings.Builder
		for i, word := range line {
			hex[i] = fmt.Sprintf("%08X", word)
			if word >= 0x20 && word <= 0x7e {
				text.WriteByte(byte(word))
			} else {
				text.WriteByte('.')
			}
		}

		_, err = fmt.Fprintf(w, "%08X  %-*s  %s\n", offset+n, width*9-1, strings.Join(hex, " "), text.String())
		if err != nil {
			return
		}
	}

	return
}
