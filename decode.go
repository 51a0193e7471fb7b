// Copyright 2026 The ies Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package ies

import (
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/text/encoding"

	"github.com/bpowers/ies/internal/cursor"
	"github.com/bpowers/ies/internal/xorstr"
)

// rowReservedSize is the unused u32 at the start of every row.
const rowReservedSize = 4

func parseRows(c *cursor.Cursor, h *Header, cols []Column, enc encoding.Encoding, logger *slog.Logger) ([]Row, error) {
	truncated := func(err error) error {
		return &TruncatedInputError{Section: "rows", Offset: c.Offset(), Err: err}
	}

	start, err := h.rowsStart(c.Len())
	if err != nil {
		return nil, truncated(err)
	}
	if _, err := c.Seek(start, io.SeekStart); err != nil {
		return nil, truncated(err)
	}
	logger.Debug("reading rows", "offset", start, "count", h.RowCount)

	rows := make([]Row, 0, h.RowCount)
	for i := 0; i < int(h.RowCount); i++ {
		row, err := parseRow(c, h, cols, enc)
		if err != nil {
			return nil, truncated(fmt.Errorf("row %d: %w", i, err))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(c *cursor.Cursor, h *Header, cols []Column, enc encoding.Encoding) (Row, error) {
	if err := c.Skip(rowReservedSize); err != nil {
		return Row{}, err
	}
	preambleLen, err := c.U16()
	if err != nil {
		return Row{}, err
	}
	if err := c.Skip(int64(preambleLen)); err != nil {
		return Row{}, fmt.Errorf("preamble: %w", err)
	}

	row := newRow(len(cols))
	for _, col := range cols {
		v, err := parseValue(c, col, enc)
		if err != nil {
			return Row{}, fmt.Errorf("column %q: %w", col.Name, err)
		}
		row.fields.Set(col.Name, v)
	}

	// every row carries a trailer one byte per string column long
	if err := c.Skip(int64(h.StringColumnCount)); err != nil {
		return Row{}, fmt.Errorf("trailer: %w", err)
	}
	return row, nil
}

func parseValue(c *cursor.Cursor, col Column, enc encoding.Encoding) (Value, error) {
	if col.IsNumeric() {
		f, err := c.F32()
		if err != nil {
			return Value{}, err
		}
		return numberValue(f), nil
	}

	n, err := c.U16()
	if err != nil {
		return Value{}, err
	}
	if n == 0 {
		return TextValue(""), nil
	}
	b, err := c.Bytes(int(n))
	if err != nil {
		return Value{}, err
	}
	return TextValue(xorstr.Decrypt(b, enc)), nil
}
