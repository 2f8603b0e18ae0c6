package tap

import (
	"bytes"
	"errors"
	"testing"
)

func TestPadName(t *testing.T) {
	if got := PadName("abc"); string(got[:]) != "abc       " {
		t.Fatalf("padded name %q", got)
	}
	if got := PadName("ABCDEFGHIJKLMNO"); string(got[:]) != "ABCDEFGHIJ" {
		t.Fatalf("truncated name %q", got)
	}
	if got := PadName(""); string(got[:]) != "          " {
		t.Fatalf("empty name %q", got)
	}
}

func TestHeaderAlwaysSeventeenBytes(t *testing.T) {
	for _, name := range []string{"", "x", "code", "exactly10!", "much longer than ten"} {
		p := ProgramHeader(name, []byte{0, 10, 2, 0, 0xFB, 0x0D})
		c := CodeHeader(name, 3, 32768)
		if b := p.Bytes(); len(b) != HeaderSize {
			t.Fatalf("program header %d bytes", len(b))
		}
		if b := c.Bytes(); len(b) != HeaderSize {
			t.Fatalf("code header %d bytes", len(b))
		}
	}
}

func TestProgramHeaderBytes(t *testing.T) {
	listing := []byte{0x00, 0x0A, 0x02, 0x00, 0xFB, 0x0D, 0x00, 0x14, 0x02, 0x00, 0xFB, 0x0D}
	b := ProgramHeader("HELLO", listing).Bytes()
	want := []byte{
		0x00,
		'H', 'E', 'L', 'L', 'O', ' ', ' ', ' ', ' ', ' ',
		12, 0,
		12, 0,
		0x0A, 0x00,
	}
	if !bytes.Equal(b[:], want) {
		t.Fatalf("got % X want % X", b, want)
	}
}

func TestProgramHeaderLengthsEqual(t *testing.T) {
	listing := make([]byte, 300)
	listing[0], listing[1] = 0x12, 0x34
	h := ProgramHeader("p", listing)
	if h.Param1 != 300 || h.Param2 != 300 {
		t.Fatalf("lengths %d/%d", h.Param1, h.Param2)
	}
	b := h.Bytes()
	if b[15] != 0x34 || b[16] != 0x12 {
		t.Fatalf("autostart bytes % X", b[15:])
	}
}

func TestCodeHeaderBytes(t *testing.T) {
	b := CodeHeader("code", 6912, 16384).Bytes()
	want := []byte{
		0x03,
		'c', 'o', 'd', 'e', ' ', ' ', ' ', ' ', ' ', ' ',
		0x00, 0x1B,
		0x00, 0x40,
		0x00, 0x80,
	}
	if !bytes.Equal(b[:], want) {
		t.Fatalf("got % X want % X", b, want)
	}
}

func TestParseHeader(t *testing.T) {
	h := CodeHeader("loader", 1234, 0xC000)
	b := h.Bytes()
	got, err := ParseHeader(b[:])
	if err != nil {
		t.Fatalf("ParseHeader error: %v", err)
	}
	if got != h {
		t.Fatalf("got %+v want %+v", got, h)
	}
	if got.Type.String() != "code" || got.NameString() != "loader    " {
		t.Fatalf("unexpected type/name %v %q", got.Type, got.NameString())
	}
	if _, err := ParseHeader(b[:10]); !errors.Is(err, ErrBadHeader) {
		t.Fatalf("want ErrBadHeader, got %v", err)
	}
}
