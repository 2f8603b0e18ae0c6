package basic

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
)

// MaxLineText is the largest text a single line may carry. The first loader
// generators formatted lines into a 1024-byte C string buffer.
const MaxLineText = 1023

// ErrLineTooLong is returned when a line's text exceeds MaxLineText.
var ErrLineTooLong = errors.New("basic line too long")

// Line is one tokenized listing line. Text excludes the terminator.
type Line struct {
	Number uint16
	Text   []byte
}

// Encode returns the stored form of the line.
func (l Line) Encode() ([]byte, error) {
	return EncodeLine(l.Number, l.Text)
}

// EncodeLine builds [number BE][len LE][text][0x0D] where len covers the text
// and the terminator. The number is not range checked.
func EncodeLine(number uint16, text []byte) ([]byte, error) {
	if len(text) > MaxLineText {
		return nil, fmt.Errorf("line %d: %d bytes (max %d): %w", number, len(text), MaxLineText, ErrLineTooLong)
	}
	out := make([]byte, 0, 4+len(text)+1)
	out = binary.BigEndian.AppendUint16(out, number)
	// placeholder, patched once the text is in
	out = append(out, 0, 0)
	out = append(out, text...)
	out = append(out, Terminator)
	binary.LittleEndian.PutUint16(out[2:4], uint16(len(text)+1))
	return out, nil
}

// text accumulates line text from tokens and literals.
type text []byte

func (t text) tok(b ...byte) text { return append(t, b...) }

func (t text) str(s string) text { return append(t, s...) }

// val appends VAL "n". Storing numbers as strings avoids the hidden 5-byte
// floating point form the editor would add after a plain numeric literal.
func (t text) val(n int) text {
	t = append(t, TokVal, '"')
	t = strconv.AppendInt(t, int64(n), 10)
	return append(t, '"')
}
