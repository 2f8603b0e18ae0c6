package basic

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

// ErrBadListing is returned for listings that do not parse as lines.
var ErrBadListing = errors.New("malformed basic listing")

// DecodeListing splits an encoded listing into its lines.
func DecodeListing(b []byte) ([]Line, error) {
	var lines []Line
	for off := 0; off < len(b); {
		if len(b)-off < 4 {
			return lines, fmt.Errorf("offset %d: short line header: %w", off, ErrBadListing)
		}
		num := binary.BigEndian.Uint16(b[off:])
		n := int(binary.LittleEndian.Uint16(b[off+2:]))
		start := off + 4
		end := start + n
		if n == 0 || end > len(b) {
			return lines, fmt.Errorf("line %d: length %d exceeds listing: %w", num, n, ErrBadListing)
		}
		if b[end-1] != Terminator {
			return lines, fmt.Errorf("line %d: missing terminator: %w", num, ErrBadListing)
		}
		lines = append(lines, Line{Number: num, Text: b[start : end-1]})
		off = end
	}
	return lines, nil
}

// String renders the line text with keywords spelled out. It does not
// include the line number.
func (l Line) String() string {
	var sb strings.Builder
	t := l.Text
	for i := 0; i < len(t); i++ {
		c := t[i]
		switch {
		case c == numberMarker:
			i += numberSize
		case c >= firstKeyword:
			kw, _ := Keyword(c)
			if sb.Len() > 0 {
				switch prev := sb.String()[sb.Len()-1]; prev {
				case ' ', ':', ',':
				default:
					sb.WriteByte(' ')
				}
			}
			sb.WriteString(kw)
		case c >= 0x20 && c < 0x7F:
			sb.WriteByte(c)
		default:
			fmt.Fprintf(&sb, "{%02X}", c)
		}
	}
	return sb.String()
}
