// Copyright 2026 The ies Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package ies decodes IES files, a binary table format used to ship game
// data.  An IES file generally looks like:
//
//	┌───────────────────┐
//	│ header (156 B)    │
//	├───────────────────┤  <- len - resourceOffset - dataOffset
//	│ column entries    │
//	│ (136 B each)      │
//	├───────────────────┤  <- len - resourceOffset
//	│ rows              │
//	│                   │
//	│                   │
//	├───────────────────┤
//	│ trailing resource │
//	│ data (unused)     │
//	└───────────────────┘
//
// The column and row blocks are located relative to the end of the file.
// Column names and string values are XOR'd with a one-byte key.
//
// A row is laid out as:
//
//	+----+----+----+----+----+----+---------------+
//	| reserved          | plen    | preamble...   |
//	+----+----+----+----+----+----+---------------+
//	| numeric values, 4-byte floats, by position  |
//	+---------------------------------------------+
//	| string values, u16 length + bytes           |
//	+---------------------------------------------+
//	| one byte per string column                  |
//	+---------------------------------------------+
//
// Numeric values that are exact non-negative integers below 2^32 decode
// as KindUint; everything else (fractions, NaN, infinities) stays a
// KindFloat.
package ies
