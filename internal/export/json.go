// Copyright 2026 The ies Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/bpowers/ies"
)

// WriteJSONL writes one JSON object per row, with keys in column order.
// NaN and infinite values are written as null.
func WriteJSONL(w io.Writer, t *ies.Table) error {
	bw := bufio.NewWriter(w)
	var line []byte
	for i, row := range t.Rows() {
		var err error
		line, err = appendRowJSON(line[:0], row)
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("bufio.Write: %w", err)
		}
	}
	return bw.Flush()
}

func appendRowJSON(buf []byte, row ies.Row) ([]byte, error) {
	buf = append(buf, '{')
	first := true
	for name, v := range row.All() {
		if !first {
			buf = append(buf, ',')
		}
		first = false

		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')

		switch val := cellValue(v).(type) {
		case nil:
			buf = append(buf, "null"...)
		case uint32:
			buf = strconv.AppendUint(buf, uint64(val), 10)
		case float32:
			buf = strconv.AppendFloat(buf, float64(val), 'g', -1, 32)
		default:
			b, err := json.Marshal(val)
			if err != nil {
				return nil, err
			}
			buf = append(buf, b...)
		}
	}
	return append(buf, '}'), nil
}

// Info summarizes a table without its rows.
type Info struct {
	Name        string       `json:"name"`
	Fingerprint string       `json:"fingerprint"`
	Rows        int          `json:"rows"`
	Columns     []ColumnInfo `json:"columns"`
}

type ColumnInfo struct {
	Name     string `json:"name"`
	Name2    string `json:"name2,omitempty"`
	Type     string `json:"type"`
	Position uint16 `json:"position"`
}

func NewInfo(t *ies.Table) Info {
	info := Info{
		Name:        t.Header().Name,
		Fingerprint: fmt.Sprintf("%016x", t.Fingerprint()),
		Rows:        t.Len(),
	}
	for _, col := range t.Columns() {
		info.Columns = append(info.Columns, ColumnInfo{
			Name:     col.Name,
			Name2:    col.Name2,
			Type:     col.Type.String(),
			Position: col.Position,
		})
	}
	return info
}

// WriteInfoJSON writes NewInfo(t) as indented JSON.
func WriteInfoJSON(w io.Writer, t *ies.Table) error {
	b, err := json.MarshalIndent(NewInfo(t), "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
