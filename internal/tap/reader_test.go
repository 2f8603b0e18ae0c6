package tap

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestReaderEOFAndTruncation(t *testing.T) {
	if _, err := NewReader(bytes.NewReader(nil)).Next(); err != io.EOF {
		t.Fatalf("empty input: want io.EOF, got %v", err)
	}
	b, _ := Frame(FlagData, []byte{1, 2, 3})
	for _, cut := range []int{1, 3, len(b) - 1} {
		_, err := NewReader(bytes.NewReader(b[:cut])).Next()
		if !errors.Is(err, ErrTruncated) {
			t.Fatalf("cut %d: want ErrTruncated, got %v", cut, err)
		}
	}
}

func TestReaderDetectsBadChecksum(t *testing.T) {
	b, _ := Frame(FlagData, []byte{1, 2, 3})
	b[4] ^= 0x10
	blk, err := NewReader(bytes.NewReader(b)).Next()
	if err != nil {
		t.Fatalf("Next error: %v", err)
	}
	if blk.Valid() {
		t.Fatalf("corrupted block reported valid")
	}
}

func TestReaderOffset(t *testing.T) {
	a, _ := Frame(FlagHeader, make([]byte, HeaderSize))
	c, _ := Frame(FlagData, []byte{9})
	tr := NewReader(bytes.NewReader(append(a, c...)))
	blk, err := tr.Next()
	if err != nil || !blk.IsHeader() {
		t.Fatalf("first block: %v header=%v", err, blk.IsHeader())
	}
	if tr.Offset() != int64(len(a)) {
		t.Fatalf("offset %d", tr.Offset())
	}
	if _, err := tr.Next(); err != nil {
		t.Fatalf("second block: %v", err)
	}
	if _, err := tr.Next(); err != io.EOF {
		t.Fatalf("want io.EOF, got %v", err)
	}
}
