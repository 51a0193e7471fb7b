// Copyright 2026 The ies Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package export

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/bpowers/ies"
)

const (
	defaultSheet = "Sheet1"
	maxSheetName = 31
)

// SheetName turns s into something Excel accepts as a worksheet name.
func SheetName(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			return '_'
		}
		return r
	}, s)
	s = strings.Trim(s, "'")
	if utf8.RuneCountInString(s) > maxSheetName {
		s = string([]rune(s)[:maxSheetName])
	}
	if s == "" {
		return defaultSheet
	}
	return s
}

// WriteXLSX writes t as a single worksheet: a bold header row of column
// names followed by one spreadsheet row per table row.
func WriteXLSX(w io.Writer, t *ies.Table, sheet string) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	sheet = SheetName(sheet)
	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return fmt.Errorf("SetSheetName(%q): %w", sheet, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("NewStyle: %w", err)
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("NewStreamWriter: %w", err)
	}

	cols := t.Columns()
	header := make([]any, len(cols))
	for i, col := range cols {
		header[i] = excelize.Cell{StyleID: bold, Value: col.Name}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("SetRow(header): %w", err)
	}

	for i, row := range t.Rows() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, rowValues(cols, row)); err != nil {
			return fmt.Errorf("SetRow(%s): %w", cell, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("stream flush: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("excelize.Write: %w", err)
	}
	return nil
}
