// Copyright 2026 Simon Frankau. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package anim

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/simon-frankau/teensy-oled/font"
)

type surfaceOp struct {
	page, column int
	data         []byte
}

// fakeSurface records the windows and byte streams an animator emits.
type fakeSurface []surfaceOp

func (f *fakeSurface) SetPageWindow(page, column int) error {
	*f = append(*f, surfaceOp{page: page, column: column})
	return nil
}

func (f *fakeSurface) WriteBytes(b []byte) error {
	cur := &(*f)[len(*f)-1]
	cur.data = append(cur.data, b...)
	return nil
}

func TestMarqueeCycle(t *testing.T) {
	// "AB" is 16 column positions; at speed 2 the animation must return
	// to its starting phase after exactly 8 calls.
	m := &Marquee{Width: 16, Speed: 2, Message: "AB"}
	offset := 0
	first, _ := m.Step(offset)
	for i := 0; i < 8; i++ {
		_, offset = m.Step(offset)
	}
	if offset != 0 {
		t.Fatalf("offset after 8 calls = %d, want 0", offset)
	}
	again, _ := m.Step(offset)
	if !bytes.Equal(first, again) {
		t.Error("frame after a full cycle differs from the first frame")
	}
}

func TestMarqueeWindow(t *testing.T) {
	a := font.Glyph('A')
	for _, tc := range []struct {
		name   string
		offset int
		want   []byte
	}{
		{name: "aligned", offset: 0, want: []byte{a[0], a[1], a[2], a[3]}},
		{name: "mid glyph", offset: 3, want: []byte{a[3], a[4], a[5], a[6]}},
		{name: "wraps mid window", offset: 6, want: []byte{a[6], a[7], a[0], a[1]}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m := &Marquee{Width: 4, Speed: 1, Message: "A"}
			got, _ := m.Step(tc.offset)
			if diff := cmp.Diff(got, tc.want); diff != "" {
				t.Errorf("Step(%d) columns (-got +want):\n%s", tc.offset, diff)
			}
		})
	}
}

func TestMarqueeOffsetWrap(t *testing.T) {
	m := &Marquee{Width: 8, Speed: 5, Message: "AB"}
	// 15+5 = 20 is past the 16 positions of "AB": the offset must wrap
	// back into the sub-glyph range [0,7].
	if _, next := m.Step(15); next != 20&7 {
		t.Errorf("Step(15) offset = %d, want %d", next, 20&7)
	}
	if _, next := m.Step(2); next != 7 {
		t.Errorf("Step(2) offset = %d, want 7", next)
	}
}

func TestMarqueeRender(t *testing.T) {
	m := &Marquee{Column: 10, Page: 2, Width: 4, Speed: 1, Message: "A"}
	var s fakeSurface
	next, err := m.Render(&s, 0)
	if err != nil {
		t.Fatal(err)
	}
	if next != 1 {
		t.Errorf("Render() offset = %d, want 1", next)
	}
	a := font.Glyph('A')
	want := fakeSurface{{page: 2, column: 10, data: []byte{a[0], a[1], a[2], a[3]}}}
	if diff := cmp.Diff(s, want, cmp.AllowUnexported(surfaceOp{})); diff != "" {
		t.Errorf("surface ops (-got +want):\n%s", diff)
	}
}

func TestStretchFactors(t *testing.T) {
	for width := 2; width <= 128; width++ {
		f := stretchFactors(width)
		if f[0] != 1 {
			t.Fatalf("width %d: first factor = %d, want 1", width, f[0])
		}
		for i, v := range f {
			if v < 1 {
				t.Fatalf("width %d: factor[%d] = %d, below 1", width, i, v)
			}
			if i == 0 {
				continue
			}
			remaining := width - i
			if remaining > width/2 {
				if v < f[i-1] {
					t.Fatalf("width %d: factor[%d] decreased to %d before the midpoint", width, i, v)
				}
			} else if v > f[i-1] {
				t.Fatalf("width %d: factor[%d] increased to %d after the midpoint", width, i, v)
			}
		}
	}
}

func TestBungeeStretch(t *testing.T) {
	// Hand-run of an 8 column window over "AB": the elastic repeat holds
	// the window on early columns and catches up near the right edge.
	a := font.Glyph('A')
	b := &Bungee{Width: 8, Message: "AB"}
	got, next := b.Step(0)
	want := []byte{a[0], a[1], a[1], a[1], a[1], a[2], a[2], a[3]}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Step(0) columns (-got +want):\n%s", diff)
	}
	if next != 1 {
		t.Errorf("Step(0) offset = %d, want 1", next)
	}
}

func TestBungeeOffsetWrap(t *testing.T) {
	b := &Bungee{Width: 4, Message: "AB"}
	if _, next := b.Step(15); next != 0 {
		t.Errorf("Step(15) offset = %d, want 0", next)
	}
}

func TestWobbleSplit(t *testing.T) {
	w := &Wobble{Message: "Hi"}
	for phase := 0; phase < 64; phase++ {
		upper, lower, _ := w.Step(phase)
		for i := range upper {
			col := font.Column(w.Message, i)
			s := cosTable[(phase+i)&63]
			// The two shift amounts always cover the full 8 pixels, so
			// recombining the halves reproduces the glyph column.
			if got := byte((uint16(upper[i]) | uint16(lower[i])<<8) >> s); got != col {
				t.Fatalf("phase %d column %d: split %#02x/%#02x at shift %d does not recombine to %#02x",
					phase, i, upper[i], lower[i], s, col)
			}
		}
	}
}

func TestWobblePhase(t *testing.T) {
	w := &Wobble{Message: "Hi"}
	if _, _, next := w.Step(0); next != 1 {
		t.Errorf("Step(0) phase = %d, want 1", next)
	}
	if _, _, next := w.Step(63); next != 0 {
		t.Errorf("Step(63) phase = %d, want 0", next)
	}
}

func TestWobbleRender(t *testing.T) {
	w := &Wobble{Column: 4, Page: 1, Message: "A"}
	var s fakeSurface
	next, err := w.Render(&s, 0)
	if err != nil {
		t.Fatal(err)
	}
	if next != 1 {
		t.Errorf("Render() phase = %d, want 1", next)
	}
	upper, lower, _ := w.Step(0)
	want := fakeSurface{
		{page: 1, column: 4, data: upper},
		{page: 2, column: 4, data: lower},
	}
	if diff := cmp.Diff(s, want, cmp.AllowUnexported(surfaceOp{})); diff != "" {
		t.Errorf("surface ops (-got +want):\n%s", diff)
	}
}

func TestCosTable(t *testing.T) {
	for i, v := range cosTable {
		if v > 8 {
			t.Errorf("cosTable[%d] = %d, above 8", i, v)
		}
		if got, want := v, cosTable[(64-i)&63]; got != want {
			t.Errorf("cosTable[%d] = %d, not symmetric with cosTable[%d] = %d", i, got, 64-i, want)
		}
	}
	if cosTable[0] != 8 || cosTable[32] != 0 {
		t.Errorf("cosTable extremes = %d, %d, want 8, 0", cosTable[0], cosTable[32])
	}
}
