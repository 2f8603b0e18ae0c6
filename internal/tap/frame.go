// Package tap reads and writes ZX Spectrum tape containers.
//
// A container is a sequence of blocks, each framed as:
//
//	2 bytes: length (little endian), len(payload)+1
//	1 byte:  flag (0x00 header, 0xFF data)
//	n bytes: payload
//	1 byte:  checksum, flag XOR every payload byte
package tap

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Flag values by convention.
const (
	FlagHeader byte = 0x00
	FlagData   byte = 0xFF
)

// MaxPayload is the largest payload a block can frame.
const MaxPayload = 65533

// ErrPayloadTooLarge is returned when a payload exceeds MaxPayload.
var ErrPayloadTooLarge = errors.New("block payload too large")

// Checksum XOR-folds flag and payload.
func Checksum(flag byte, payload []byte) byte {
	sum := flag
	for _, b := range payload {
		sum ^= b
	}
	return sum
}

// Frame returns the framed block for payload.
func Frame(flag byte, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayload {
		return nil, fmt.Errorf("%d bytes (max %d): %w", len(payload), MaxPayload, ErrPayloadTooLarge)
	}
	out := make([]byte, 0, len(payload)+4)
	out = binary.LittleEndian.AppendUint16(out, uint16(len(payload)+1))
	out = append(out, flag)
	out = append(out, payload...)
	return append(out, Checksum(flag, payload)), nil
}
