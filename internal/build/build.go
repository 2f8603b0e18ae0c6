// Package build turns a machine code file (plus an optional screen image)
// into a loader tape.
package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"code2tap/internal/atomicfile"
	"code2tap/internal/basic"
	"code2tap/internal/tap"
)

// ScreenSize is the size of a full screen image (bitmap + attributes).
const ScreenSize = 6912

// ErrFileOpen is returned when an input or output path cannot be used.
var ErrFileOpen = errors.New("cannot open file")

// Params lists everything a build needs. ScreenFile is optional.
type Params struct {
	ProgramName string
	CodeFile    string
	ScreenFile  string
	LoadAddress uint16
	ExecAddress uint16
	// Output defaults to "<ProgramName>.tap".
	Output string
}

// OutputPath returns the tape path the build writes.
func (p Params) OutputPath() string {
	if p.Output != "" {
		return p.Output
	}
	return p.ProgramName + ".tap"
}

// Result summarizes a finished build.
type Result struct {
	Output      string
	Blocks      int
	Size        int64
	ListingSize int
	CodeSize    int
	Screen      bool
}

// Container reads the inputs and assembles the tape contents in memory.
func Container(p Params, logger log.FieldLogger) (tap.Container, error) {
	code, err := readInput(p.CodeFile)
	if err != nil {
		return tap.Container{}, err
	}
	var screen []byte
	if p.ScreenFile != "" {
		if screen, err = readInput(p.ScreenFile); err != nil {
			return tap.Container{}, err
		}
		if len(screen) != ScreenSize {
			logger.WithFields(log.Fields{
				"file": p.ScreenFile,
				"size": len(screen),
			}).Warnf("screen image is not %d bytes", ScreenSize)
		}
	}
	listing, err := basic.BuildLoader(basic.LoaderOptions{
		LoadAddress: p.LoadAddress,
		ExecAddress: p.ExecAddress,
		Screen:      screen != nil,
	})
	if err != nil {
		return tap.Container{}, err
	}
	logger.WithField("bytes", len(listing)).Debug("built loader listing")
	return tap.Container{
		ProgramName: p.ProgramName,
		Listing:     listing,
		Screen:      screen,
		Code:        code,
		LoadAddress: p.LoadAddress,
	}, nil
}

// Run builds the tape described by p and writes it atomically. On failure
// nothing is left under the output name.
func Run(ctx context.Context, logger log.FieldLogger, p Params) (Result, error) {
	c, err := Container(p, logger)
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	out := p.OutputPath()
	res := Result{
		Output:      out,
		ListingSize: len(c.Listing),
		CodeSize:    len(c.Code),
		Screen:      c.Screen != nil,
	}
	err = atomicfile.Write(out, 0o644, func(w io.Writer) error {
		tw := tap.NewWriter(w)
		if err := c.WriteBlocks(tw); err != nil {
			return err
		}
		res.Blocks, res.Size = tw.Blocks(), tw.Size()
		return nil
	})
	if err != nil {
		if errors.Is(err, tap.ErrPayloadTooLarge) {
			return Result{}, err
		}
		return Result{}, fmt.Errorf("%w '%s' for writing: %w", ErrFileOpen, out, err)
	}
	logger.WithFields(log.Fields{
		"output": out,
		"blocks": res.Blocks,
		"bytes":  res.Size,
	}).Debug("wrote tape")
	return res, nil
}

func readInput(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w '%s': %v", ErrFileOpen, path, err)
	}
	return b, nil
}
