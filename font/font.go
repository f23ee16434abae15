// Copyright 2026 Simon Frankau. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package font is a fixed 8x8 bitmap font for page-addressed displays.
//
// Glyphs are stored the way the display wants them: 8 pixel columns per
// character, one byte per column, bit 0 topmost. Codes outside printable
// ASCII fall back to a fixed replacement glyph.
package font

// Width is the number of pixel columns per glyph.
const Width = 8

// fallback is the table index used for codes outside [0x20, 0x7F).
const fallback = int('?'-' ') * Width

// Glyph returns the 8-byte column bitmap for a character code. The slice
// aliases the font table and must not be modified.
func Glyph(c byte) []byte {
	if c < ' ' || c > '~' {
		return glyphs[fallback : fallback+Width]
	}
	i := int(c-' ') * Width
	return glyphs[i : i+Width]
}

// Column returns the bitmap column at bit position i of msg, treating the
// message as a contiguous strip of glyph columns. i must be in
// [0, BitLen(msg)).
func Column(msg string, i int) byte {
	return Glyph(msg[i>>3])[i&7]
}

// BitLen returns the width of msg in pixel-column positions.
func BitLen(msg string) int {
	return len(msg) * Width
}
