// Copyright 2026 The ies Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package ies

import (
	"bytes"
	"fmt"

	"github.com/bpowers/ies/internal/cursor"
)

const (
	headerSize     = 156
	headerNameSize = 128
)

// Header is the fixed-size record at the start of every IES file.
type Header struct {
	Name              string
	DataOffset        uint32
	ResourceOffset    uint32
	FileSize          uint32
	RowCount          uint16
	ColumnCount       uint16
	NumberColumnCount uint16
	StringColumnCount uint16
}

// columnsStart is the absolute offset of the column block in a buffer of
// length n.
func (h *Header) columnsStart(n int64) (int64, error) {
	off := n - int64(h.ResourceOffset) - int64(h.DataOffset)
	if off < 0 {
		return 0, fmt.Errorf("column block at %d: %w", off, cursor.ErrOutOfBounds)
	}
	return off, nil
}

// rowsStart is the absolute offset of the row block in a buffer of length n.
func (h *Header) rowsStart(n int64) (int64, error) {
	off := n - int64(h.ResourceOffset)
	if off < 0 {
		return 0, fmt.Errorf("row block at %d: %w", off, cursor.ErrOutOfBounds)
	}
	return off, nil
}

func parseHeader(c *cursor.Cursor) (Header, error) {
	var h Header
	start := c.Offset()
	if c.Remaining() < headerSize {
		return h, &TruncatedInputError{
			Section: "header",
			Offset:  start,
			Err:     fmt.Errorf("header too short: %d < %d: %w", c.Remaining(), headerSize, cursor.ErrOutOfBounds),
		}
	}

	// the length check above guarantees none of these fail
	name, _ := c.Bytes(headerNameSize)
	h.Name = string(bytes.TrimRight(name, "\x00"))
	_, _ = c.U32()
	h.DataOffset, _ = c.U32()
	h.ResourceOffset, _ = c.U32()
	h.FileSize, _ = c.U32()
	_, _ = c.U16()
	h.RowCount, _ = c.U16()
	h.ColumnCount, _ = c.U16()
	h.NumberColumnCount, _ = c.U16()
	h.StringColumnCount, _ = c.U16()
	_, _ = c.U16()

	if c.Offset()-start != headerSize {
		panic("invariant broken: header size mismatch")
	}
	return h, nil
}
