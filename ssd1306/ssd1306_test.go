// Copyright 2026 Simon Frankau. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1306

import (
	"errors"
	"testing"

	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

func TestInitGolden(t *testing.T) {
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x3c, W: []byte{
				0x00,
				0xA8, 0x1F,
				0xD3, 0x00,
				0x40,
				0xA0,
				0xC0,
				0xDA, 0x02,
				0x81, 0x7F,
				0xA4,
				0xA6,
				0xD5, 0x80,
				0x8D, 0x14,
				0xAF,
			}},
		},
		DontPanic: true,
	}
	d, err := New(bus, &DefaultOpts)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestInitMirrored(t *testing.T) {
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x3c, W: []byte{
				0x00,
				0xA8, 0x1F,
				0xD3, 0x00,
				0x40,
				0xA1,
				0xC8,
				0xDA, 0x02,
				0x81, 0x7F,
				0xA4,
				0xA6,
				0xD5, 0x80,
				0x8D, 0x14,
				0xAF,
			}},
		},
		DontPanic: true,
	}
	opts := DefaultOpts
	opts.MirrorHorizontal = true
	opts.MirrorVertical = true
	d, err := New(bus, &opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

// The column's upper nibble command must precede the lower nibble command
// for every column: this hardware zeroes the upper nibble otherwise.
func TestSetPageWindowNibbleOrder(t *testing.T) {
	var ops []i2ctest.IO
	for col := 0; col < 128; col++ {
		ops = append(ops, i2ctest.IO{Addr: 0x3c, W: []byte{
			0x00,
			0x20, 0x02,
			0xB0 | 0x03,
			0x10 | byte(col>>4),
			0x00 | byte(col&0x0F),
		}})
	}
	bus := &i2ctest.Playback{Ops: ops, DontPanic: true}
	d := strictDev(t, bus)
	for col := 0; col < 128; col++ {
		if err := d.SetPageWindow(3, col); err != nil {
			t.Fatalf("SetPageWindow(3, %d): %v", col, err)
		}
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestSetPageWindowBounds(t *testing.T) {
	d := strictDev(t, &i2ctest.Playback{DontPanic: true})
	for _, tc := range []struct{ page, col int }{
		{-1, 0}, {4, 0}, {0, -1}, {0, 128},
	} {
		if err := d.SetPageWindow(tc.page, tc.col); err == nil {
			t.Errorf("SetPageWindow(%d, %d) should fail", tc.page, tc.col)
		}
	}
}

func TestClear(t *testing.T) {
	zeros := make([]byte, 1+128*4)
	zeros[0] = 0x40
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x3c, W: []byte{0x00, 0x20, 0x00, 0x21, 0, 127, 0x22, 0, 3}},
			{Addr: 0x3c, W: zeros},
		},
		DontPanic: true,
	}
	d := strictDev(t, bus)
	if err := d.Clear(); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestSetContrast(t *testing.T) {
	bus := &i2ctest.Playback{
		Ops:       []i2ctest.IO{{Addr: 0x3c, W: []byte{0x00, 0x81, 0x3F}}},
		DontPanic: true,
	}
	d := strictDev(t, bus)
	if err := d.SetContrast(0x3F); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestInvertHalt(t *testing.T) {
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x3c, W: []byte{0x00, 0xA7}},
			{Addr: 0x3c, W: []byte{0x00, 0xA6}},
			{Addr: 0x3c, W: []byte{0x00, 0xAE}},
		},
		DontPanic: true,
	}
	d := strictDev(t, bus)
	if err := d.Invert(true); err != nil {
		t.Fatal(err)
	}
	if err := d.Invert(false); err != nil {
		t.Fatal(err)
	}
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestDraw(t *testing.T) {
	var ops []i2ctest.IO
	for page := 0; page < 4; page++ {
		ops = append(ops, i2ctest.IO{Addr: 0x3c, W: []byte{
			0x00, 0x20, 0x02, 0xB0 | byte(page), 0x10, 0x00,
		}})
		data := make([]byte, 1+128)
		data[0] = 0x40
		if page == 0 {
			// Single lit pixel at (0, 0).
			data[1] = 0x01
		}
		ops = append(ops, i2ctest.IO{Addr: 0x3c, W: data})
	}
	bus := &i2ctest.Playback{Ops: ops, DontPanic: true}
	d := strictDev(t, bus)
	img := image1bit.NewVerticalLSB(d.Bounds())
	img.SetBit(0, 0, image1bit.On)
	if err := d.Draw(d.Bounds(), img, d.Bounds().Min); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestWriteLength(t *testing.T) {
	d := strictDev(t, &i2ctest.Playback{DontPanic: true})
	if _, err := d.Write(make([]byte, 3)); err == nil {
		t.Error("Write() with a short frame should fail")
	}
}

func TestNewInvalidGeometry(t *testing.T) {
	for _, tc := range []struct{ w, h int }{
		{0, 32}, {129, 32}, {100, 32}, {128, 0}, {128, 72}, {128, 30},
	} {
		opts := Opts{W: tc.w, H: tc.h}
		if _, err := New(&i2ctest.Playback{DontPanic: true}, &opts); err == nil {
			t.Errorf("New(%dx%d) should fail", tc.w, tc.h)
		}
	}
}

func TestSecondaryAddress(t *testing.T) {
	bus := &i2ctest.Playback{
		Ops:       []i2ctest.IO{{Addr: 0x3d, W: []byte{0x00, 0x81, 0x10}}},
		DontPanic: true,
	}
	opts := DefaultOpts
	opts.SecondaryAddress = true
	opts.Strict = true
	d, err := New(bus, &opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.SetContrast(0x10); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

// failBus always fails, simulating an unpowered or absent peripheral.
type failBus struct{}

func (failBus) String() string                    { return "failbus" }
func (failBus) Tx(addr uint16, w, r []byte) error { return errors.New("nack") }
func (failBus) SetSpeed(f physic.Frequency) error { return nil }

func TestErrorPolicy(t *testing.T) {
	lenient, err := New(failBus{}, &DefaultOpts)
	if err != nil {
		t.Fatal(err)
	}
	// Init acknowledgement is always checked so the caller can retry.
	if err := lenient.Init(); err == nil {
		t.Error("Init() on a dead bus should fail")
	}
	// Everything after that is fire-and-forget by default.
	if err := lenient.SetContrast(0x40); err != nil {
		t.Errorf("lenient SetContrast() = %v, want nil", err)
	}
	if err := lenient.SetPageWindow(0, 0); err != nil {
		t.Errorf("lenient SetPageWindow() = %v, want nil", err)
	}
	if err := lenient.Clear(); err != nil {
		t.Errorf("lenient Clear() = %v, want nil", err)
	}

	opts := DefaultOpts
	opts.Strict = true
	strict, err := New(failBus{}, &opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := strict.SetContrast(0x40); err == nil {
		t.Error("strict SetContrast() on a dead bus should fail")
	}
}

func strictDev(t *testing.T, bus *i2ctest.Playback) *Dev {
	t.Helper()
	opts := DefaultOpts
	opts.Strict = true
	d, err := New(bus, &opts)
	if err != nil {
		t.Fatal(err)
	}
	return d
}
