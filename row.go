// Copyright 2026 The ies Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package ies

import (
	"iter"

	"github.com/elliotchance/orderedmap/v3"
)

// Row maps column names to values, iterating in column order.
type Row struct {
	fields *orderedmap.OrderedMap[string, Value]
}

func newRow(capacity int) Row {
	return Row{fields: orderedmap.NewOrderedMapWithCapacity[string, Value](capacity)}
}

// Len is the number of fields in the row.
func (r Row) Len() int {
	if r.fields == nil {
		return 0
	}
	return r.fields.Len()
}

// Get returns the value for the named column.
func (r Row) Get(name string) (Value, bool) {
	if r.fields == nil {
		return Value{}, false
	}
	return r.fields.Get(name)
}

// All iterates over name/value pairs in column order.
func (r Row) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if r.fields == nil {
			return
		}
		for name, v := range r.fields.AllFromFront() {
			if !yield(name, v) {
				return
			}
		}
	}
}

// Names returns the field names in column order.
func (r Row) Names() []string {
	names := make([]string, 0, r.Len())
	for name := range r.All() {
		names = append(names, name)
	}
	return names
}

func (r Row) lookup(name string) (Value, error) {
	v, ok := r.Get(name)
	if !ok {
		return Value{}, &UnknownFieldError{Name: name}
	}
	return v, nil
}

// Float returns a numeric field as a float32.
func (r Row) Float(name string) (float32, error) {
	v, err := r.lookup(name)
	if err != nil {
		return 0, err
	}
	switch v.kind {
	case KindFloat:
		return v.f, nil
	case KindUint:
		return float32(v.u), nil
	}
	return 0, &TypeMismatchError{Name: name, Want: "number", Got: v.kind}
}

// Uint returns a numeric field as a uint32.  Fractional values are
// truncated toward zero; NaN and negative values give 0 and values too
// large for a uint32 give math.MaxUint32.
func (r Row) Uint(name string) (uint32, error) {
	v, err := r.lookup(name)
	if err != nil {
		return 0, err
	}
	switch v.kind {
	case KindFloat:
		return clampUint32(v.f), nil
	case KindUint:
		return v.u, nil
	}
	return 0, &TypeMismatchError{Name: name, Want: "number", Got: v.kind}
}

// Int returns a numeric field as an int32.  Integral values above
// math.MaxInt32 wrap around; floats are truncated and clamped.
func (r Row) Int(name string) (int32, error) {
	v, err := r.lookup(name)
	if err != nil {
		return 0, err
	}
	switch v.kind {
	case KindFloat:
		return clampInt32(v.f), nil
	case KindUint:
		return int32(v.u), nil
	}
	return 0, &TypeMismatchError{Name: name, Want: "number", Got: v.kind}
}

func (r Row) String(name string) (string, error) {
	v, err := r.lookup(name)
	if err != nil {
		return "", err
	}
	if v.kind != KindText {
		return "", &TypeMismatchError{Name: name, Want: "text", Got: v.kind}
	}
	return v.s, nil
}
