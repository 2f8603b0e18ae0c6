package tap

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// HeaderType discriminates header records.
type HeaderType byte

const (
	TypeProgram HeaderType = 0
	TypeCode    HeaderType = 3
)

func (t HeaderType) String() string {
	switch t {
	case TypeProgram:
		return "program"
	case TypeCode:
		return "code"
	default:
		return fmt.Sprintf("type(%d)", byte(t))
	}
}

const (
	// HeaderSize is the payload size of a header block.
	HeaderSize = 17
	// NameSize is the fixed width of the name field.
	NameSize = 10
	// codeParam3 fills the last parameter of code headers.
	codeParam3 = 0x8000
)

// ErrBadHeader is returned by ParseHeader for malformed records.
var ErrBadHeader = errors.New("malformed tape header")

// Header is a 17-byte metadata record describing the following data block.
type Header struct {
	Type   HeaderType
	Name   [NameSize]byte
	Param1 uint16
	Param2 uint16
	Param3 uint16
}

// PadName left-justifies name in a 10-byte space padded field, truncating
// longer names.
func PadName(name string) [NameSize]byte {
	var f [NameSize]byte
	for i := range f {
		f[i] = ' '
	}
	copy(f[:], name)
	return f
}

// ProgramHeader describes a BASIC listing. Both length parameters carry the
// listing length.
//
// The autostart field is a fixed special case: it holds the listing's first
// two bytes (the first line number, big endian) in swapped order. Loaders
// produced by earlier versions of this tool depend on exactly these bits; it
// is not a general autostart setting.
func ProgramHeader(name string, listing []byte) Header {
	var autostart uint16
	if len(listing) >= 2 {
		autostart = binary.LittleEndian.Uint16([]byte{listing[1], listing[0]})
	}
	n := uint16(len(listing))
	return Header{
		Type:   TypeProgram,
		Name:   PadName(name),
		Param1: n,
		Param2: n,
		Param3: autostart,
	}
}

// CodeHeader describes a block of bytes loaded at loadAddress.
func CodeHeader(name string, length int, loadAddress uint16) Header {
	return Header{
		Type:   TypeCode,
		Name:   PadName(name),
		Param1: uint16(length),
		Param2: loadAddress,
		Param3: codeParam3,
	}
}

// Bytes encodes the header record.
func (h Header) Bytes() [HeaderSize]byte {
	var b [HeaderSize]byte
	b[0] = byte(h.Type)
	copy(b[1:11], h.Name[:])
	binary.LittleEndian.PutUint16(b[11:], h.Param1)
	binary.LittleEndian.PutUint16(b[13:], h.Param2)
	binary.LittleEndian.PutUint16(b[15:], h.Param3)
	return b
}

// NameString returns the name field with trailing spaces kept.
func (h Header) NameString() string { return string(h.Name[:]) }

// ParseHeader decodes a header payload.
func ParseHeader(b []byte) (Header, error) {
	if len(b) != HeaderSize {
		return Header{}, fmt.Errorf("%d bytes (want %d): %w", len(b), HeaderSize, ErrBadHeader)
	}
	h := Header{
		Type:   HeaderType(b[0]),
		Param1: binary.LittleEndian.Uint16(b[11:]),
		Param2: binary.LittleEndian.Uint16(b[13:]),
		Param3: binary.LittleEndian.Uint16(b[15:]),
	}
	copy(h.Name[:], b[1:11])
	return h, nil
}
