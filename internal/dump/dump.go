// Package dump renders tape containers as stable, line-oriented text for
// listing and diffing.
package dump

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"code2tap/internal/basic"
	"code2tap/internal/tap"
)

// MaxHexBytes bounds the hex dump printed for each data block.
const MaxHexBytes = 256

// Read parses a container and renders it.
func Read(r io.Reader) (string, error) {
	blocks, err := tap.ReadAll(r)
	if err != nil {
		// render what was readable; the caller decides about the error
		return Render(blocks), err
	}
	return Render(blocks), nil
}

// Render describes every block. A data block that follows a program header
// is decoded as a BASIC listing; other data blocks are hex dumped.
func Render(blocks []tap.Block) string {
	var b strings.Builder
	var prev *tap.Header
	for i, blk := range blocks {
		kind := "data"
		if blk.IsHeader() {
			kind = "header"
		}
		fmt.Fprintf(&b, "#%d %s flag=%02X length=%d checksum=%02X %s\n",
			i, kind, blk.Flag, blk.Length, blk.Checksum, checksumStatus(blk))

		if blk.IsHeader() {
			h, err := tap.ParseHeader(blk.Payload)
			if err != nil {
				fmt.Fprintf(&b, "   %v\n", err)
				prev = nil
				continue
			}
			writeHeader(&b, h)
			prev = &h
			continue
		}
		if prev != nil && prev.Type == tap.TypeProgram {
			writeListing(&b, blk.Payload)
		} else {
			writeHex(&b, blk.Payload)
		}
		prev = nil
	}
	return b.String()
}

func checksumStatus(blk tap.Block) string {
	if blk.Valid() {
		return "ok"
	}
	return fmt.Sprintf("BAD (want %02X)", tap.Checksum(blk.Flag, blk.Payload))
}

func writeHeader(b *strings.Builder, h tap.Header) {
	switch h.Type {
	case tap.TypeProgram:
		fmt.Fprintf(b, "   program %q length=%d program-length=%d autostart=%d\n",
			h.NameString(), h.Param1, h.Param2, h.Param3)
	case tap.TypeCode:
		fmt.Fprintf(b, "   code %q length=%d start=%d param3=%d\n",
			h.NameString(), h.Param1, h.Param2, h.Param3)
	default:
		fmt.Fprintf(b, "   %s %q params=%d,%d,%d\n",
			h.Type, h.NameString(), h.Param1, h.Param2, h.Param3)
	}
}

func writeListing(b *strings.Builder, listing []byte) {
	lines, err := basic.DecodeListing(listing)
	for _, l := range lines {
		fmt.Fprintf(b, "   %d %s\n", l.Number, l.String())
	}
	if err != nil {
		fmt.Fprintf(b, "   %v\n", err)
	}
}

func writeHex(b *strings.Builder, data []byte) {
	shown := data
	if len(shown) > MaxHexBytes {
		shown = shown[:MaxHexBytes]
	}
	for _, line := range strings.SplitAfter(hex.Dump(shown), "\n") {
		if line != "" {
			b.WriteString("   ")
			b.WriteString(line)
		}
	}
	if rest := len(data) - len(shown); rest > 0 {
		fmt.Fprintf(b, "   ... %d more bytes\n", rest)
	}
}
