// Copyright 2026 Simon Frankau. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package anim implements text animations for page-addressed displays.
//
// Three animators are provided: a linear marquee, an elastic "bungee"
// marquee and a vertical wobble. Each is a pure step function over (state,
// fixed inputs) returning (column stream, next state): state is owned by
// the caller and passed back in on every call, so motion speed is purely a
// function of call count and the logic tests without a live bus. The
// Render helpers push one frame through a Surface per call.
package anim

import (
	"github.com/simon-frankau/teensy-oled/font"
)

// Surface is the subset of the display driver the animators draw through.
type Surface interface {
	SetPageWindow(page, column int) error
	WriteBytes(b []byte) error
}

// Marquee scrolls a message horizontally through a fixed window.
type Marquee struct {
	// Column and Page locate the left edge of the window.
	Column int
	Page   int
	// Width is the window width in pixel columns.
	Width int
	// Speed is the scroll advance in column positions per call.
	Speed int
	// Message is the text to scroll. Must not be empty.
	Message string
}

// Step renders one frame at the given scroll offset and returns the
// column stream together with the advanced offset. The message wraps to
// its start when exhausted mid-window; an offset that has scrolled past
// the end wraps back into the sub-glyph range [0,7] so the loop restarts
// seamlessly.
func (m *Marquee) Step(offset int) ([]byte, int) {
	cols := window(m.Message, offset, m.Width)
	return cols, advance(offset, m.Speed, font.BitLen(m.Message))
}

// Render draws one frame and returns the advanced offset.
func (m *Marquee) Render(s Surface, offset int) (int, error) {
	cols, next := m.Step(offset)
	if err := blit(s, m.Page, m.Column, cols); err != nil {
		return offset, err
	}
	return next, nil
}

// Bungee scrolls a message one column position per call, stretching and
// compressing it like an accordion: the per-output-column repeat factor
// climbs while the remaining window exceeds the midpoint and symmetrically
// falls back toward one for the rest.
type Bungee struct {
	Column int
	Page   int
	Width  int
	// Message is the text to scroll. Must not be empty.
	Message string
}

// Step renders one frame at the given scroll offset and returns the
// column stream together with the advanced offset.
func (b *Bungee) Step(offset int) ([]byte, int) {
	n := font.BitLen(b.Message)
	cols := make([]byte, b.Width)
	if n == 0 {
		return cols, offset
	}
	factors := stretchFactors(b.Width)
	idx, rep := offset, 0
	for i := range cols {
		for idx >= n {
			idx -= n
		}
		cols[i] = font.Column(b.Message, idx)
		rep++
		if rep >= factors[i] {
			idx++
			rep = 0
		}
	}
	return cols, advance(offset, 1, n)
}

// Render draws one frame and returns the advanced offset.
func (b *Bungee) Render(s Surface, offset int) (int, error) {
	cols, next := b.Step(offset)
	if err := blit(s, b.Page, b.Column, cols); err != nil {
		return offset, err
	}
	return next, nil
}

// stretchFactors returns the repeat factor applied at each output column:
// 1 at the left edge, one more per column while the remaining width
// exceeds the midpoint, then back down, never below 1.
func stretchFactors(width int) []int {
	f := make([]int, width)
	factor := 1
	for i := range f {
		f[i] = factor
		if width-(i+1) > width/2 {
			factor++
		} else if factor > 1 {
			factor--
		}
	}
	return f
}

// Wobble draws a message across two adjacent pages with a travelling
// vertical wave: each glyph's 8 pixels are split across the page boundary
// at a smoothly varying point taken from the cosine table.
type Wobble struct {
	// Column and Page locate the left edge of the upper page; the lower
	// half lands on Page+1.
	Column int
	Page   int
	// Message is the text to draw. Must not be empty.
	Message string
}

// Step renders one frame at the given phase and returns the upper and
// lower page column streams together with the advanced phase.
func (w *Wobble) Step(phase int) (upper, lower []byte, next int) {
	n := font.BitLen(w.Message)
	upper = make([]byte, n)
	lower = make([]byte, n)
	for i := 0; i < n; i++ {
		col := font.Column(w.Message, i)
		s := cosTable[(phase+i)&(len(cosTable)-1)]
		upper[i] = col << s
		lower[i] = col >> (8 - s)
	}
	return upper, lower, (phase + 1) & (len(cosTable) - 1)
}

// Render draws one frame, one transaction per page, and returns the
// advanced phase.
func (w *Wobble) Render(s Surface, phase int) (int, error) {
	upper, lower, next := w.Step(phase)
	if err := blit(s, w.Page, w.Column, upper); err != nil {
		return phase, err
	}
	if err := blit(s, w.Page+1, w.Column, lower); err != nil {
		return phase, err
	}
	return next, nil
}

// window extracts width consecutive message columns starting at offset,
// wrapping at the message end.
func window(msg string, offset, width int) []byte {
	n := font.BitLen(msg)
	cols := make([]byte, width)
	if n == 0 {
		return cols
	}
	idx := offset
	for i := range cols {
		for idx >= n {
			idx -= n
		}
		cols[i] = font.Column(msg, idx)
		idx++
	}
	return cols
}

// advance moves a scroll offset by speed; once past the end of the
// message it wraps back into the sub-glyph range [0,7].
func advance(offset, speed, bitLen int) int {
	next := offset + speed
	if next >= bitLen {
		next &= 7
	}
	return next
}

func blit(s Surface, page, column int, cols []byte) error {
	if err := s.SetPageWindow(page, column); err != nil {
		return err
	}
	return s.WriteBytes(cols)
}
