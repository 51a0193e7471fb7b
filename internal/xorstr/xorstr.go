// Copyright 2026 The ies Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package xorstr handles the light obfuscation applied to text stored in
// IES files: every byte is XOR'd with a fixed key, and fixed-width fields
// are NUL padded (which shows up as 0x01 after the XOR).
package xorstr

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

const Key = 1

// padding is what a NUL pad byte looks like after de-obfuscation
const padding = "\x01"

func xor(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ Key
	}
	return out
}

// Decrypt de-obfuscates data and decodes it with enc (UTF-8 if nil).
// Invalid sequences become U+FFFD rather than an error.
func Decrypt(data []byte, enc encoding.Encoding) string {
	if len(data) == 0 {
		return ""
	}
	if enc == nil {
		enc = unicode.UTF8
	}
	plain := xor(data)
	decoded, err := enc.NewDecoder().Bytes(plain)
	if err != nil {
		decoded = []byte(strings.ToValidUTF8(string(plain), "�"))
	}
	return strings.TrimRight(string(decoded), padding)
}

// Encrypt is the inverse of Decrypt for UTF-8 text.
func Encrypt(s string) []byte {
	return xor([]byte(s))
}

// Lookup returns the text encoding registered under name, using the same
// names and aliases as the WHATWG encoding standard ("utf-8", "euc-kr",
// "windows-1252", ...).
func Lookup(name string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("htmlindex.Get(%q): %w", name, err)
	}
	return enc, nil
}
