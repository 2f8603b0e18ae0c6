package tap

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestFrameLayout(t *testing.T) {
	got, err := Frame(FlagData, []byte{0x3E, 0x05, 0xC9})
	if err != nil {
		t.Fatalf("Frame error: %v", err)
	}
	sum := byte(0xFF ^ 0x3E ^ 0x05 ^ 0xC9)
	want := []byte{0x04, 0x00, 0xFF, 0x3E, 0x05, 0xC9, sum}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % X want % X", got, want)
	}
}

func TestFrameSizesAndChecksum(t *testing.T) {
	for _, n := range []int{0, 1, 17, 255, 256, 6912, MaxPayload} {
		payload := make([]byte, n)
		for i := range payload {
			payload[i] = byte(i*7 + 3)
		}
		for _, flag := range []byte{FlagHeader, FlagData, 0x42} {
			b, err := Frame(flag, payload)
			if err != nil {
				t.Fatalf("n=%d: %v", n, err)
			}
			if len(b) != n+4 {
				t.Fatalf("n=%d: framed size %d", n, len(b))
			}
			if l := binary.LittleEndian.Uint16(b); int(l) != n+1 {
				t.Fatalf("n=%d: length field %d", n, l)
			}
			if b[2] != flag {
				t.Fatalf("n=%d: flag %02X", n, b[2])
			}
			// XOR over everything after the length, checksum included, folds to 0.
			var x byte
			for _, c := range b[2:] {
				x ^= c
			}
			if x != 0 {
				t.Fatalf("n=%d flag=%02X: checksum mismatch", n, flag)
			}
			blk, err := NewReader(bytes.NewReader(b)).Next()
			if err != nil {
				t.Fatalf("n=%d: read back: %v", n, err)
			}
			if !blk.Valid() || blk.Flag != flag || !bytes.Equal(blk.Payload, payload) {
				t.Fatalf("n=%d: round trip mismatch", n)
			}
		}
	}
}

func TestFramePayloadTooLarge(t *testing.T) {
	_, err := Frame(FlagData, make([]byte, MaxPayload+1))
	if !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("want ErrPayloadTooLarge, got %v", err)
	}
}
