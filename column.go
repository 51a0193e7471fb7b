// Copyright 2026 The ies Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package ies

import (
	"cmp"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strconv"

	"golang.org/x/text/encoding"

	"github.com/bpowers/ies/internal/cursor"
	"github.com/bpowers/ies/internal/xorstr"
)

const (
	columnNameSize  = 64
	columnEntrySize = 2*columnNameSize + 2 + 4 + 2
)

type ColumnType uint16

const (
	Float ColumnType = iota
	String
	String2
)

func (t ColumnType) String() string {
	switch t {
	case Float:
		return "Float"
	case String:
		return "String"
	case String2:
		return "String2"
	default:
		return "ColumnType(" + strconv.Itoa(int(t)) + ")"
	}
}

// family groups String and String2 together for ordering.  Unrecognized
// types each get their own family after the known ones.
func (t ColumnType) family() ColumnType {
	if t == String2 {
		return String
	}
	return t
}

type Column struct {
	// Name is the display name, suffixed with "_N" if the file declares
	// the same name more than once.
	Name     string
	Name2    string
	Type     ColumnType
	Position uint16
}

func (c Column) IsNumeric() bool {
	return c.Type == Float
}

func parseColumns(c *cursor.Cursor, h *Header, enc encoding.Encoding, logger *slog.Logger) ([]Column, error) {
	truncated := func(err error) error {
		return &TruncatedInputError{Section: "columns", Offset: c.Offset(), Err: err}
	}

	start, err := h.columnsStart(c.Len())
	if err != nil {
		return nil, truncated(err)
	}
	if _, err := c.Seek(start, io.SeekStart); err != nil {
		return nil, truncated(err)
	}
	logger.Debug("reading columns", "offset", start, "count", h.ColumnCount)

	names := make(stringSet, h.ColumnCount)
	cols := make([]Column, 0, h.ColumnCount)
	for i := 0; i < int(h.ColumnCount); i++ {
		entry, err := c.Bytes(columnEntrySize)
		if err != nil {
			return nil, truncated(fmt.Errorf("column %d: %w", i, err))
		}
		ec := cursor.New(entry)
		// entry is exactly columnEntrySize bytes, so these reads can't fail
		rawName, _ := ec.Bytes(columnNameSize)
		rawName2, _ := ec.Bytes(columnNameSize)
		typ, _ := ec.U16()
		_ = ec.Skip(4)
		pos, _ := ec.U16()

		col := Column{
			Name:     uniqueName(names, xorstr.Decrypt(rawName, enc)),
			Name2:    xorstr.Decrypt(rawName2, enc),
			Type:     ColumnType(typ),
			Position: pos,
		}
		names.Add(col.Name)
		cols = append(cols, col)
	}

	return sortColumns(cols), nil
}

// uniqueName returns name, or name with the smallest "_N" suffix that
// isn't already taken.
func uniqueName(taken stringSet, name string) string {
	candidate := name
	for k := 1; taken.Contains(candidate); k++ {
		candidate = name + "_" + strconv.Itoa(k)
	}
	return candidate
}

// sortColumns returns columns in the order their values appear in each
// row: all Float columns by position, then String and String2 columns
// together by position.
func sortColumns(cols []Column) []Column {
	groups := make(map[ColumnType][]Column)
	for _, col := range cols {
		f := col.Type.family()
		groups[f] = append(groups[f], col)
	}

	sorted := make([]Column, 0, len(cols))
	for _, f := range slices.Sorted(maps.Keys(groups)) {
		group := groups[f]
		slices.SortStableFunc(group, func(a, b Column) int {
			return cmp.Compare(a.Position, b.Position)
		})
		sorted = append(sorted, group...)
	}
	return sorted
}
