// Copyright 2026 The ies Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package export writes decoded IES tables to other formats.
package export

import (
	"math"

	"github.com/bpowers/ies"
)

// cellValue converts v for formats without NaN or infinities, which come
// back as nil.
func cellValue(v ies.Value) any {
	switch v.Kind() {
	case ies.KindUint:
		u, _ := v.Uint()
		return u
	case ies.KindFloat:
		f, _ := v.Float()
		if !finite(f) {
			return nil
		}
		return f
	default:
		s, _ := v.Text()
		return s
	}
}

func finite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}

// rowValues returns a row's values in column order.
func rowValues(cols []ies.Column, row ies.Row) []any {
	vals := make([]any, len(cols))
	for i, col := range cols {
		v, ok := row.Get(col.Name)
		if !ok {
			continue
		}
		vals[i] = cellValue(v)
	}
	return vals
}
