// Copyright 2026 The ies Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package iestest builds synthetic IES files for tests and sample data.
// It is not a general purpose encoder: it writes exactly the layout the
// decoder expects and nothing more.
package iestest

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sync/atomic"

	"github.com/bpowers/ies/internal/xorstr"
)

const (
	HeaderSize     = 156
	ColumnSize     = 64 + 64 + 2 + 4 + 2
	NameSize       = 128
	ColumnNameSize = 64

	TypeFloat   = 0
	TypeString  = 1
	TypeString2 = 2

	// offsets of the fields patched in by Finish
	DataOffsetOff        = 132
	ResourceOffsetOff    = 136
	FileSizeOff          = 140
	RowCountOff          = 146
	ColumnCountOff       = 148
	NumberColumnCountOff = 150
	StringColumnCountOff = 152
)

// FileWriter is usually an *os.File, but specified as an interface for easier testing.
type FileWriter interface {
	io.Writer
	io.WriterAt
}

type Column struct {
	Name     string
	Name2    string
	Type     uint16
	Position uint16
}

// Row holds the encoded values of one row in physical (sorted column) order.
// Each value is a float32 or a string.
type Row struct {
	Preamble []byte
	Values   []any
}

type Writer struct {
	w *bufio.Writer
	f FileWriter

	off         uint64
	columnCount uint16
	numberCount uint16
	stringCount uint16
	rowCount    uint16
	columnsEnd  uint64
	rowsStarted bool
	finished    atomic.Bool
}

// NewWriter writes a header with the given table name; offsets and counts
// are filled in by Finish.
func NewWriter(f FileWriter, name string) (*Writer, error) {
	if len(name) > NameSize {
		return nil, fmt.Errorf("name %q too long", name)
	}
	w := &Writer{
		f: f,
		w: bufio.NewWriter(f),
	}

	var header [HeaderSize]byte
	copy(header[:NameSize], name)
	if _, err := w.w.Write(header[:]); err != nil {
		return nil, fmt.Errorf("bufio.Write: %w", err)
	}
	w.off = HeaderSize
	w.columnsEnd = HeaderSize

	// try to expose errors when writing to the backing file early
	if err := w.w.Flush(); err != nil {
		return nil, fmt.Errorf("flush: %w", err)
	}
	return w, nil
}

func fixedString(s string, size int) ([]byte, error) {
	enc := xorstr.Encrypt(s)
	if len(enc) > size {
		return nil, fmt.Errorf("%q longer than %d bytes", s, size)
	}
	// padding is raw NULs, which decode to 0x01
	buf := make([]byte, size)
	copy(buf, enc)
	return buf, nil
}

func (w *Writer) WriteColumn(col Column) error {
	if w.rowsStarted {
		return errors.New("columns must be written before rows")
	}
	name, err := fixedString(col.Name, ColumnNameSize)
	if err != nil {
		return err
	}
	name2, err := fixedString(col.Name2, ColumnNameSize)
	if err != nil {
		return err
	}

	var entry [ColumnSize]byte
	copy(entry[0:64], name)
	copy(entry[64:128], name2)
	binary.LittleEndian.PutUint16(entry[128:130], col.Type)
	binary.LittleEndian.PutUint16(entry[134:136], col.Position)
	if _, err := w.w.Write(entry[:]); err != nil {
		return fmt.Errorf("bufio.Write: %w", err)
	}

	w.off += ColumnSize
	w.columnsEnd = w.off
	w.columnCount++
	if col.Type == TypeFloat {
		w.numberCount++
	} else {
		w.stringCount++
	}
	return nil
}

func (w *Writer) WriteRow(row Row) error {
	if len(row.Preamble) > math.MaxUint16 {
		return fmt.Errorf("preamble of %d bytes too long", len(row.Preamble))
	}
	w.rowsStarted = true

	var buf []byte
	buf = binary.LittleEndian.AppendUint32(buf, 0)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(row.Preamble)))
	buf = append(buf, row.Preamble...)
	for i, v := range row.Values {
		switch v := v.(type) {
		case float32:
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
		case string:
			enc := xorstr.Encrypt(v)
			if len(enc) > math.MaxUint16 {
				return fmt.Errorf("value %d: string too long", i)
			}
			buf = binary.LittleEndian.AppendUint16(buf, uint16(len(enc)))
			buf = append(buf, enc...)
		default:
			return fmt.Errorf("value %d: unsupported type %T", i, v)
		}
	}
	// every row is followed by one byte per string column
	buf = append(buf, make([]byte, w.stringCount)...)

	if _, err := w.w.Write(buf); err != nil {
		return fmt.Errorf("bufio.Write: %w", err)
	}
	w.off += uint64(len(buf))
	w.rowCount++
	return nil
}

// Finish writes the trailing resource region and patches the header.
func (w *Writer) Finish(resource []byte) error {
	if alreadyFinished := w.finished.Swap(true); alreadyFinished {
		return nil
	}
	if _, err := w.w.Write(resource); err != nil {
		return fmt.Errorf("bufio.Write: %w", err)
	}
	w.off += uint64(len(resource))
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("bufio.Flush: %w", err)
	}

	dataOffset := w.columnsEnd - HeaderSize
	resourceOffset := w.off - w.columnsEnd

	var fields [HeaderSize - 128]byte
	binary.LittleEndian.PutUint32(fields[DataOffsetOff-128:], uint32(dataOffset))
	binary.LittleEndian.PutUint32(fields[ResourceOffsetOff-128:], uint32(resourceOffset))
	binary.LittleEndian.PutUint32(fields[FileSizeOff-128:], uint32(w.off))
	binary.LittleEndian.PutUint16(fields[RowCountOff-128:], w.rowCount)
	binary.LittleEndian.PutUint16(fields[ColumnCountOff-128:], w.columnCount)
	binary.LittleEndian.PutUint16(fields[NumberColumnCountOff-128:], w.numberCount)
	binary.LittleEndian.PutUint16(fields[StringColumnCountOff-128:], w.stringCount)
	if _, err := w.f.WriteAt(fields[:], 128); err != nil {
		return fmt.Errorf("f.WriteAt: %w", err)
	}
	return nil
}

// Build returns the bytes of a complete file.
func Build(name string, cols []Column, rows []Row) ([]byte, error) {
	var buf Buffer
	w, err := NewWriter(&buf, name)
	if err != nil {
		return nil, err
	}
	for _, col := range cols {
		if err := w.WriteColumn(col); err != nil {
			return nil, err
		}
	}
	for _, row := range rows {
		if err := w.WriteRow(row); err != nil {
			return nil, err
		}
	}
	if err := w.Finish(nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
