// Package stream serves a running simulation to remote viewers over
// websockets. Every generation is sent as one binary frame.
package stream

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// HeaderSize is the number of bytes that precede the cells in a frame.
const HeaderSize = 16

// ErrBadFrame is returned by DecodeFrame for truncated or inconsistent input.
var ErrBadFrame = errors.New("stream: bad frame")

// Frame is one generation of a grid as carried on the wire: big-endian
// uint32 width, uint32 height and uint64 generation, followed by
// width*height row-major cell bytes.
type Frame struct {
	Width      int
	Height     int
	Generation uint64
	Cells      []uint8
}

// EncodeFrame serializes a generation. The cells are copied.
func EncodeFrame(w, h int, gen uint64, cells []uint8) []byte {
	buf := make([]byte, HeaderSize+len(cells))
	binary.BigEndian.PutUint32(buf[0:], uint32(w))
	binary.BigEndian.PutUint32(buf[4:], uint32(h))
	binary.BigEndian.PutUint64(buf[8:], gen)
	copy(buf[HeaderSize:], cells)
	return buf
}

// DecodeFrame parses a frame produced by EncodeFrame. The returned cells
// alias b.
func DecodeFrame(b []byte) (Frame, error) {
	if len(b) < HeaderSize {
		return Frame{}, fmt.Errorf("%w: %d bytes is shorter than the header", ErrBadFrame, len(b))
	}
	f := Frame{
		Width:      int(binary.BigEndian.Uint32(b[0:])),
		Height:     int(binary.BigEndian.Uint32(b[4:])),
		Generation: binary.BigEndian.Uint64(b[8:]),
		Cells:      b[HeaderSize:],
	}
	if f.Width == 0 || f.Height == 0 {
		return Frame{}, fmt.Errorf("%w: empty %dx%d grid", ErrBadFrame, f.Width, f.Height)
	}
	if len(f.Cells) != f.Width*f.Height {
		return Frame{}, fmt.Errorf("%w: %d cells for a %dx%d grid", ErrBadFrame, len(f.Cells), f.Width, f.Height)
	}
	return f, nil
}
