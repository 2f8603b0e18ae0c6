package tap

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrTruncated is returned when a container ends inside a block.
var ErrTruncated = errors.New("truncated tape block")

// Block is one framed unit as read from a container.
type Block struct {
	Length   uint16
	Flag     byte
	Payload  []byte
	Checksum byte
}

// Valid reports whether the stored checksum matches the contents.
func (b Block) Valid() bool {
	return Checksum(b.Flag, b.Payload) == b.Checksum
}

// IsHeader reports whether the block looks like a header record.
func (b Block) IsHeader() bool {
	return b.Flag == FlagHeader && len(b.Payload) == HeaderSize
}

// Reader reads blocks sequentially.
type Reader struct {
	r      io.Reader
	offset int64
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Offset returns the position of the next block.
func (tr *Reader) Offset() int64 { return tr.offset }

// Next reads one block. It returns io.EOF at a clean end.
func (tr *Reader) Next() (Block, error) {
	var lb [2]byte
	n, err := io.ReadFull(tr.r, lb[:])
	if err == io.EOF {
		return Block{}, io.EOF
	}
	if err != nil {
		return Block{}, fmt.Errorf("offset %d: length: %w", tr.offset+int64(n), ErrTruncated)
	}
	length := binary.LittleEndian.Uint16(lb[:])
	if length == 0 {
		return Block{}, fmt.Errorf("offset %d: zero length block: %w", tr.offset, ErrTruncated)
	}
	// flag + payload (length-1) + checksum
	body := make([]byte, int(length)+1)
	if _, err := io.ReadFull(tr.r, body); err != nil {
		return Block{}, fmt.Errorf("offset %d: %d byte block: %w", tr.offset, length, ErrTruncated)
	}
	tr.offset += int64(len(lb) + len(body))
	return Block{
		Length:   length,
		Flag:     body[0],
		Payload:  body[1 : len(body)-1],
		Checksum: body[len(body)-1],
	}, nil
}

// ReadAll reads every block from r.
func ReadAll(r io.Reader) ([]Block, error) {
	tr := NewReader(r)
	var blocks []Block
	for {
		b, err := tr.Next()
		if err == io.EOF {
			return blocks, nil
		}
		if err != nil {
			return blocks, err
		}
		blocks = append(blocks, b)
	}
}
