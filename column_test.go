// Copyright 2026 The ies Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package ies

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bpowers/ies/internal/cursor"
	"github.com/bpowers/ies/internal/iestest"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestSortColumns(t *testing.T) {
	cols := []Column{
		{Name: "a", Type: Float, Position: 3},
		{Name: "b", Type: Float, Position: 1},
		{Name: "c", Type: String, Position: 2},
		{Name: "d", Type: String2, Position: 0},
	}
	sorted := sortColumns(cols)

	var names []string
	for _, col := range sorted {
		names = append(names, col.Name)
	}
	assert.Equal(t, []string{"b", "a", "d", "c"}, names)
	// the input is left alone
	assert.Equal(t, "a", cols[0].Name)
}

func TestSortColumns_GroupsNumericFirst(t *testing.T) {
	cols := []Column{
		{Name: "s0", Type: String, Position: 0},
		{Name: "x", Type: ColumnType(7), Position: 0},
		{Name: "f5", Type: Float, Position: 5},
		{Name: "t1", Type: String2, Position: 1},
		{Name: "f2", Type: Float, Position: 2},
		{Name: "s1", Type: String, Position: 1},
	}
	sorted := sortColumns(cols)

	var names []string
	for _, col := range sorted {
		names = append(names, col.Name)
	}
	// equal positions keep file order
	assert.Equal(t, []string{"f2", "f5", "s0", "t1", "s1", "x"}, names)
}

func TestSortColumns_Empty(t *testing.T) {
	assert.Empty(t, sortColumns(nil))
}

func TestUniqueName(t *testing.T) {
	taken := make(stringSet)
	var got []string
	for _, name := range []string{"ID", "ID", "ID_1", "ID", "Name"} {
		n := uniqueName(taken, name)
		taken.Add(n)
		got = append(got, n)
	}
	// "ID_1" the third time is taken by the suffixed second "ID"
	assert.Equal(t, []string{"ID", "ID_1", "ID_1_1", "ID_2", "Name"}, got)
}

func TestParseColumns(t *testing.T) {
	data, err := iestest.Build("t", []iestest.Column{
		{Name: "ID", Name2: "id2", Type: iestest.TypeString, Position: 1},
		{Name: "ID", Type: iestest.TypeFloat, Position: 0},
		{Name: "Rate", Type: iestest.TypeString2, Position: 0},
	}, nil)
	require.NoError(t, err)

	c := cursor.New(data)
	h, err := parseHeader(c)
	require.NoError(t, err)
	cols, err := parseColumns(c, &h, nil, discardLogger)
	require.NoError(t, err)

	assert.Equal(t, []Column{
		{Name: "ID_1", Type: Float, Position: 0},
		{Name: "Rate", Type: String2, Position: 0},
		{Name: "ID", Name2: "id2", Type: String, Position: 1},
	}, cols)
	assert.True(t, cols[0].IsNumeric())
	assert.False(t, cols[1].IsNumeric())
}

func TestParseColumns_Truncated(t *testing.T) {
	data, err := iestest.Build("t", []iestest.Column{
		{Name: "a", Type: iestest.TypeFloat},
	}, nil)
	require.NoError(t, err)

	c := cursor.New(data)
	h, err := parseHeader(c)
	require.NoError(t, err)

	// claim more columns than there are bytes for
	h.ColumnCount = 2
	_, err = parseColumns(c, &h, nil, discardLogger)
	assert.ErrorIs(t, err, ErrTruncatedInput)

	// a data offset reaching before the start of the file
	h.ColumnCount = 1
	h.DataOffset = uint32(len(data)) + 1
	_, err = parseColumns(c, &h, nil, discardLogger)
	var te *TruncatedInputError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "columns", te.Section)
}

func TestColumnType_String(t *testing.T) {
	assert.Equal(t, "Float", Float.String())
	assert.Equal(t, "String", String.String())
	assert.Equal(t, "String2", String2.String())
	assert.Equal(t, "ColumnType(9)", ColumnType(9).String())
}
