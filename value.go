// Copyright 2026 The ies Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package ies

import (
	"math"
	"strconv"
)

// Kind says which payload a Value carries.
type Kind uint8

const (
	// KindFloat is a numeric value that wasn't a whole number in uint32
	// range (fractions, negatives, NaN and infinities).
	KindFloat Kind = iota
	// KindUint is a numeric value that was stored as a float but is an
	// exact non-negative integer.
	KindUint
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindUint:
		return "uint"
	case KindText:
		return "text"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a single decoded field.
type Value struct {
	kind Kind
	f    float32
	u    uint32
	s    string
}

func FloatValue(f float32) Value { return Value{kind: KindFloat, f: f} }
func UintValue(u uint32) Value   { return Value{kind: KindUint, u: u} }
func TextValue(s string) Value   { return Value{kind: KindText, s: s} }

func (v Value) Kind() Kind { return v.kind }

// IsNumber reports whether v is either of the numeric kinds.
func (v Value) IsNumber() bool {
	return v.kind == KindFloat || v.kind == KindUint
}

// Float returns the float payload of a KindFloat value.
func (v Value) Float() (float32, bool) {
	return v.f, v.kind == KindFloat
}

// Uint returns the integer payload of a KindUint value.
func (v Value) Uint() (uint32, bool) {
	return v.u, v.kind == KindUint
}

// Text returns the payload of a KindText value.
func (v Value) Text() (string, bool) {
	return v.s, v.kind == KindText
}

// Interface returns the payload as a float32, uint32 or string.
func (v Value) Interface() any {
	switch v.kind {
	case KindFloat:
		return v.f
	case KindUint:
		return v.u
	default:
		return v.s
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindFloat:
		return strconv.FormatFloat(float64(v.f), 'g', -1, 32)
	case KindUint:
		return strconv.FormatUint(uint64(v.u), 10)
	default:
		return v.s
	}
}

const maxUint32Float = 1 << 32

// numberValue classifies a float read from a numeric column.  Whole
// numbers in [0, 2^32) become KindUint; anything else, including NaN and
// the infinities the format uses as sentinels, is kept as-is.
func numberValue(f float32) Value {
	u, ok := truncUint32(f)
	if !ok {
		return FloatValue(f)
	}
	if math.Abs(float64(f)-float64(u)) < math.SmallestNonzeroFloat32 {
		return UintValue(u)
	}
	return FloatValue(f)
}

// truncUint32 converts f toward zero, reporting false when the result
// isn't representable (NaN, negative or >= 2^32).
func truncUint32(f float32) (uint32, bool) {
	if math.IsNaN(float64(f)) || f < 0 || float64(f) >= maxUint32Float {
		return 0, false
	}
	return uint32(f), true
}

// clampUint32 is truncUint32 with out-of-range inputs pinned to the
// nearest bound and NaN mapped to 0.
func clampUint32(f float32) uint32 {
	switch {
	case math.IsNaN(float64(f)) || f <= 0:
		return 0
	case float64(f) >= maxUint32Float:
		return math.MaxUint32
	}
	return uint32(f)
}

// clampInt32 converts toward zero, pinning to the int32 range and mapping
// NaN to 0.
func clampInt32(f float32) int32 {
	switch {
	case math.IsNaN(float64(f)):
		return 0
	case float64(f) >= math.MaxInt32:
		return math.MaxInt32
	case float64(f) <= math.MinInt32:
		return math.MinInt32
	}
	return int32(f)
}
