package basic

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeLineLayout(t *testing.T) {
	got, err := EncodeLine(10, []byte{TokCls})
	if err != nil {
		t.Fatalf("EncodeLine error: %v", err)
	}
	want := []byte{0x00, 0x0A, 0x02, 0x00, TokCls, Terminator}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % X want % X", got, want)
	}
}

func TestEncodeLineNumberBigEndianLengthLittleEndian(t *testing.T) {
	text := bytes.Repeat([]byte{'A'}, 300)
	got, err := EncodeLine(0x1234, text)
	if err != nil {
		t.Fatalf("EncodeLine error: %v", err)
	}
	if got[0] != 0x12 || got[1] != 0x34 {
		t.Fatalf("line number bytes % X", got[:2])
	}
	// 301 = 0x012D
	if got[2] != 0x2D || got[3] != 0x01 {
		t.Fatalf("length bytes % X", got[2:4])
	}
	if len(got) != 4+300+1 || got[len(got)-1] != Terminator {
		t.Fatalf("unexpected size/terminator: %d", len(got))
	}
}

func TestEncodeLineAcceptsAnyNumber(t *testing.T) {
	if _, err := EncodeLine(65535, nil); err != nil {
		t.Fatalf("line 65535 rejected: %v", err)
	}
}

func TestEncodeLineTooLong(t *testing.T) {
	if _, err := EncodeLine(10, make([]byte, MaxLineText)); err != nil {
		t.Fatalf("max size rejected: %v", err)
	}
	_, err := EncodeLine(10, make([]byte, MaxLineText+1))
	if !errors.Is(err, ErrLineTooLong) {
		t.Fatalf("want ErrLineTooLong, got %v", err)
	}
}

func TestKeyword(t *testing.T) {
	cases := map[byte]string{
		0xA5:         "RND",
		TokCode:      "CODE",
		TokVal:       "VAL",
		TokUsr:       "USR",
		TokInk:       "INK",
		TokPaper:     "PAPER",
		TokBorder:    "BORDER",
		TokRem:       "REM",
		TokLoad:      "LOAD",
		TokPoke:      "POKE",
		TokRandomize: "RANDOMIZE",
		TokCls:       "CLS",
		TokClear:     "CLEAR",
		0xFF:         "COPY",
	}
	for b, want := range cases {
		got, ok := Keyword(b)
		if !ok || got != want {
			t.Fatalf("Keyword(%02X) = %q,%v want %q", b, got, ok, want)
		}
	}
	if _, ok := Keyword('A'); ok {
		t.Fatalf("'A' is not a keyword")
	}
}
