// Copyright 2026 The ies Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package cursor provides a little-endian reader over an in-memory buffer
// that supports seeking relative to the start, the current position, or
// the end of the buffer.
package cursor

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

var ErrOutOfBounds = errors.New("out of bounds")

// Cursor reads from an immutable byte slice.  A failed Seek or read leaves
// the position unchanged.
type Cursor struct {
	buf []byte
	off int64
}

func New(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

func (c *Cursor) Len() int64 {
	return int64(len(c.buf))
}

func (c *Cursor) Offset() int64 {
	return c.off
}

// Remaining is the number of bytes between the current position and the
// end of the buffer.
func (c *Cursor) Remaining() int64 {
	return int64(len(c.buf)) - c.off
}

// Seek sets the position like io.Seeker.  Seeking to exactly the end of the
// buffer is allowed, seeking before the start or past the end is not.
func (c *Cursor) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = c.off
	case io.SeekEnd:
		base = int64(len(c.buf))
	default:
		return c.off, fmt.Errorf("seek: invalid whence %d", whence)
	}
	if (offset > 0 && base > math.MaxInt64-offset) || (offset < 0 && base < math.MinInt64-offset) {
		return c.off, fmt.Errorf("seek %d from %d overflows: %w", offset, base, ErrOutOfBounds)
	}
	abs := base + offset
	if abs < 0 || abs > int64(len(c.buf)) {
		return c.off, fmt.Errorf("seek to %d beyond bounds (%d): %w", abs, len(c.buf), ErrOutOfBounds)
	}
	c.off = abs
	return abs, nil
}

func (c *Cursor) Skip(n int64) error {
	if n < 0 {
		return fmt.Errorf("skip of negative length %d: %w", n, ErrOutOfBounds)
	}
	_, err := c.Seek(n, io.SeekCurrent)
	return err
}

// Bytes returns the next n bytes.  The result aliases the underlying
// buffer and must not be modified or retained past the buffer's lifetime.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	if n < 0 || int64(n) > c.Remaining() {
		return nil, fmt.Errorf("off %d + len %d beyond bounds (%d): %w", c.off, n, len(c.buf), ErrOutOfBounds)
	}
	b := c.buf[c.off : c.off+int64(n)]
	c.off += int64(n)
	return b, nil
}

func (c *Cursor) U16() (uint16, error) {
	b, err := c.Bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *Cursor) U32() (uint32, error) {
	b, err := c.Bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// F32 reads an IEEE-754 single precision float.
func (c *Cursor) F32() (float32, error) {
	u, err := c.U32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(u), nil
}
