package basic

import (
	"errors"
	"testing"
)

func TestDecodeListingRoundTrip(t *testing.T) {
	src := LoaderLines(LoaderOptions{LoadAddress: 40000, ExecAddress: 40010, Screen: true})
	listing, err := BuildLoader(LoaderOptions{LoadAddress: 40000, ExecAddress: 40010, Screen: true})
	if err != nil {
		t.Fatalf("BuildLoader error: %v", err)
	}
	got, err := DecodeListing(listing)
	if err != nil {
		t.Fatalf("DecodeListing error: %v", err)
	}
	if len(got) != len(src) {
		t.Fatalf("got %d lines want %d", len(got), len(src))
	}
	for i := range src {
		if got[i].Number != src[i].Number || string(got[i].Text) != string(src[i].Text) {
			t.Fatalf("line %d: got %d %q want %d %q", i, got[i].Number, got[i].Text, src[i].Number, src[i].Text)
		}
	}
}

func TestDecodeListingErrors(t *testing.T) {
	cases := map[string][]byte{
		"short header":  {0x00, 0x0A, 0x02},
		"overrun":       {0x00, 0x0A, 0x09, 0x00, TokCls, Terminator},
		"no terminator": {0x00, 0x0A, 0x02, 0x00, TokCls, 0x00},
		"zero length":   {0x00, 0x0A, 0x00, 0x00},
	}
	for name, b := range cases {
		if _, err := DecodeListing(b); !errors.Is(err, ErrBadListing) {
			t.Fatalf("%s: want ErrBadListing, got %v", name, err)
		}
	}
}

func TestLineStringSkipsHiddenNumbers(t *testing.T) {
	l := Line{Text: []byte{0xF5, '1', numberMarker, 0, 0, 1, 0, 0, 0x01}}
	if got := l.String(); got != "PRINT1{01}" {
		t.Fatalf("got %q", got)
	}
}
