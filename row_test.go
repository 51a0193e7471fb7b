// Copyright 2026 The ies Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package ies

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRow() Row {
	r := newRow(5)
	r.fields.Set("id", UintValue(42))
	r.fields.Set("rate", FloatValue(-2.75))
	r.fields.Set("big", UintValue(math.MaxUint32))
	r.fields.Set("none", FloatValue(float32(math.NaN())))
	r.fields.Set("name", TextValue("Sword"))
	return r
}

func TestRow_Order(t *testing.T) {
	r := testRow()
	assert.Equal(t, 5, r.Len())
	assert.Equal(t, []string{"id", "rate", "big", "none", "name"}, r.Names())

	// early exit from iteration
	var first string
	for name := range r.All() {
		first = name
		break
	}
	assert.Equal(t, "id", first)
}

func TestRow_Numeric(t *testing.T) {
	r := testRow()

	f, err := r.Float("id")
	require.NoError(t, err)
	assert.Equal(t, float32(42), f)
	f, err = r.Float("rate")
	require.NoError(t, err)
	assert.Equal(t, float32(-2.75), f)

	u, err := r.Uint("id")
	require.NoError(t, err)
	assert.Equal(t, uint32(42), u)
	u, err = r.Uint("rate")
	require.NoError(t, err)
	assert.Equal(t, uint32(0), u)
	u, err = r.Uint("none")
	require.NoError(t, err)
	assert.Equal(t, uint32(0), u)

	i, err := r.Int("rate")
	require.NoError(t, err)
	assert.Equal(t, int32(-2), i)
	i, err = r.Int("big")
	require.NoError(t, err)
	assert.Equal(t, int32(-1), i)
}

func TestRow_Errors(t *testing.T) {
	r := testRow()

	_, err := r.Float("missing")
	assert.ErrorIs(t, err, ErrUnknownField)
	var ue *UnknownFieldError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "missing", ue.Name)
	_, err = r.Uint("missing")
	assert.ErrorIs(t, err, ErrUnknownField)
	_, err = r.Int("missing")
	assert.ErrorIs(t, err, ErrUnknownField)
	_, err = r.String("missing")
	assert.ErrorIs(t, err, ErrUnknownField)

	_, err = r.Float("name")
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = r.Uint("name")
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = r.Int("name")
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = r.String("id")
	var te *TypeMismatchError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, KindUint, te.Got)
	assert.Equal(t, "text", te.Want)

	// errors don't disturb the row
	s, err := r.String("name")
	require.NoError(t, err)
	assert.Equal(t, "Sword", s)
}

func TestRow_Zero(t *testing.T) {
	var r Row
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Names())
	_, ok := r.Get("x")
	assert.False(t, ok)
	_, err := r.String("x")
	assert.ErrorIs(t, err, ErrUnknownField)
}
