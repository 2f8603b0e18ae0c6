package tap

import (
	"fmt"
	"io"
)

// CodeName is the header name used for screen and code blocks.
const CodeName = "code"

// ScreenAddress is the load address of a screen image.
const ScreenAddress uint16 = 16384

// Writer frames blocks onto an underlying writer. Each block is written in
// full before the next one starts; the first error sticks.
type Writer struct {
	w      io.Writer
	blocks int
	n      int64
	err    error
}

// NewWriter returns a Writer emitting to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteBlock frames payload with flag and writes it.
func (tw *Writer) WriteBlock(flag byte, payload []byte) error {
	if tw.err != nil {
		return tw.err
	}
	b, err := Frame(flag, payload)
	if err != nil {
		tw.err = fmt.Errorf("block %d: %w", tw.blocks, err)
		return tw.err
	}
	n, err := tw.w.Write(b)
	tw.n += int64(n)
	if err != nil {
		tw.err = fmt.Errorf("write block %d: %w", tw.blocks, err)
		return tw.err
	}
	tw.blocks++
	return nil
}

// WriteHeader writes h as a header block.
func (tw *Writer) WriteHeader(h Header) error {
	b := h.Bytes()
	return tw.WriteBlock(FlagHeader, b[:])
}

// WritePair writes a header block followed by its data block.
func (tw *Writer) WritePair(h Header, data []byte) error {
	if err := tw.WriteHeader(h); err != nil {
		return err
	}
	return tw.WriteBlock(FlagData, data)
}

// Blocks returns the number of blocks written.
func (tw *Writer) Blocks() int { return tw.blocks }

// Size returns the number of bytes written.
func (tw *Writer) Size() int64 { return tw.n }

// Container holds everything a loader tape carries.
type Container struct {
	ProgramName string
	Listing     []byte
	// Screen is optional; nil means no screen block pair.
	Screen      []byte
	Code        []byte
	LoadAddress uint16
}

// WriteTo writes the container to w.
func (c Container) WriteTo(w io.Writer) (int64, error) {
	tw := NewWriter(w)
	err := c.WriteBlocks(tw)
	return tw.Size(), err
}

// WriteContainer writes c to w.
func WriteContainer(w io.Writer, c Container) error {
	return c.WriteBlocks(NewWriter(w))
}

// WriteBlocks emits the loader pair, the optional screen pair and the code
// pair, in that order.
func (c Container) WriteBlocks(tw *Writer) error {
	if err := tw.WritePair(ProgramHeader(c.ProgramName, c.Listing), c.Listing); err != nil {
		return fmt.Errorf("loader: %w", err)
	}
	if c.Screen != nil {
		if err := tw.WritePair(CodeHeader(CodeName, len(c.Screen), ScreenAddress), c.Screen); err != nil {
			return fmt.Errorf("screen: %w", err)
		}
	}
	if err := tw.WritePair(CodeHeader(CodeName, len(c.Code), c.LoadAddress), c.Code); err != nil {
		return fmt.Errorf("code: %w", err)
	}
	return nil
}
