// Copyright 2026 The ies Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package ies

import (
	"io"
	"log/slog"
	"slices"

	"github.com/dgryski/go-farm"
	"golang.org/x/text/encoding"

	"github.com/bpowers/ies/internal/cursor"
)

// Option configures decoding.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	encoding encoding.Encoding
}

// WithLogger sets an optional logger for the decoder to report section
// offsets and header inconsistencies to.  If not provided, no logging
// output will be produced.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// WithEncoding sets the text encoding used for column names and string
// values.  The default is UTF-8.
func WithEncoding(enc encoding.Encoding) Option {
	return func(opts *options) {
		opts.encoding = enc
	}
}

func newOptions(opts []Option) options {
	var o options
	o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Table is a fully decoded IES file.  It is immutable and safe for
// concurrent use.
type Table struct {
	header      Header
	columns     []Column
	rows        []Row
	fingerprint uint64
}

// Decode parses a complete IES file held in data.  Either the whole file
// decodes or an error is returned; there is no partial result.  The
// returned Table doesn't reference data.
func Decode(data []byte, opts ...Option) (*Table, error) {
	return decode(data, newOptions(opts))
}

func decode(data []byte, o options) (*Table, error) {
	logger := o.logger
	c := cursor.New(data)

	h, err := parseHeader(c)
	if err != nil {
		return nil, err
	}
	logger.Debug("read header",
		"name", h.Name,
		"rows", h.RowCount,
		"columns", h.ColumnCount,
		"dataOffset", h.DataOffset,
		"resourceOffset", h.ResourceOffset)
	if uint64(h.DataOffset)+uint64(h.ResourceOffset) > uint64(h.FileSize) {
		logger.Warn("offsets exceed declared file size",
			"dataOffset", h.DataOffset, "resourceOffset", h.ResourceOffset, "fileSize", h.FileSize)
	}
	if int64(h.FileSize) != c.Len() {
		logger.Warn("declared file size differs from input length", "fileSize", h.FileSize, "len", c.Len())
	}

	cols, err := parseColumns(c, &h, o.encoding, logger)
	if err != nil {
		return nil, err
	}
	numbers := 0
	for _, col := range cols {
		if col.IsNumeric() {
			numbers++
		}
	}
	if numbers != int(h.NumberColumnCount) || len(cols)-numbers != int(h.StringColumnCount) {
		logger.Warn("column types disagree with header counts",
			"numbers", numbers, "headerNumbers", h.NumberColumnCount,
			"strings", len(cols)-numbers, "headerStrings", h.StringColumnCount)
	}

	rows, err := parseRows(c, &h, cols, o.encoding, logger)
	if err != nil {
		return nil, err
	}

	return &Table{
		header:      h,
		columns:     cols,
		rows:        rows,
		fingerprint: farm.Hash64(data),
	}, nil
}

func (t *Table) Header() Header {
	return t.header
}

// Columns returns the columns in row order (numeric columns first).
func (t *Table) Columns() []Column {
	return slices.Clone(t.columns)
}

// Column looks up a column by display name.
func (t *Table) Column(name string) (Column, bool) {
	for _, col := range t.columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// Rows returns the decoded rows.  Rows themselves are read-only views.
func (t *Table) Rows() []Row {
	return slices.Clone(t.rows)
}

func (t *Table) Row(i int) (Row, bool) {
	if i < 0 || i >= len(t.rows) {
		return Row{}, false
	}
	return t.rows[i], true
}

// Len is the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Fingerprint is a 64-bit hash of the file contents the Table was decoded
// from.
func (t *Table) Fingerprint() uint64 {
	return t.fingerprint
}
