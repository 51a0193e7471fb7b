// Copyright 2026 The ies Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package ies

import (
	"errors"
	"fmt"
)

var (
	ErrTruncatedInput = errors.New("truncated input")
	ErrUnknownField   = errors.New("unknown field")
	ErrTypeMismatch   = errors.New("type mismatch")
)

// TruncatedInputError is returned when a seek or read runs off either end
// of the input.  No Table is produced alongside it.
type TruncatedInputError struct {
	Section string // "header", "columns" or "rows"
	Offset  int64  // cursor position when the failure happened
	Err     error
}

func (e *TruncatedInputError) Error() string {
	return fmt.Sprintf("%s at off %d: %s: %v", ErrTruncatedInput, e.Offset, e.Section, e.Err)
}

func (e *TruncatedInputError) Unwrap() error { return e.Err }

func (e *TruncatedInputError) Is(target error) bool { return target == ErrTruncatedInput }

// UnknownFieldError is returned by Row accessors for names that aren't
// columns of the row.
type UnknownFieldError struct {
	Name string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownField, e.Name)
}

func (e *UnknownFieldError) Is(target error) bool { return target == ErrUnknownField }

// TypeMismatchError is returned when an accessor asks for a numeric value
// from a text field or vice versa.
type TypeMismatchError struct {
	Name string
	Want string
	Got  Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: %q is %s, not %s", ErrTypeMismatch, e.Name, e.Got, e.Want)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }
