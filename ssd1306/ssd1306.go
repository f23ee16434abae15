// Copyright 2026 Simon Frankau. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1306

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// DefaultOpts is the recommended default options: the 128x32 module at
// address 0x3C with the original firmware's contrast and error policy.
var DefaultOpts = Opts{
	W:        128,
	H:        32,
	Addr:     0x3C,
	Contrast: 0x7F,
}

// Opts defines the options for the device.
type Opts struct {
	W int
	H int
	// Addr is the 7-bit I²C address, 0x78 on the wire once shifted. Zero
	// selects the default 0x3C.
	Addr uint16
	// SecondaryAddress selects the board's alternate sub-address (0x3D,
	// 0x7A on the wire), chosen by a solder jumper on most modules.
	SecondaryAddress bool
	// MirrorHorizontal flips the segment remap, mirroring the display
	// left/right.
	MirrorHorizontal bool
	// MirrorVertical reverses the COM scan direction, mirroring the
	// display top/bottom.
	MirrorVertical bool
	// Contrast is the initial contrast level. Zero selects the default
	// 0x7F.
	Contrast byte
	// Strict propagates bus errors from every operation. When false only
	// Init reports errors; once this peripheral initializes it has never
	// been observed to fail, so later operations are fire-and-forget.
	Strict bool
}

// New returns a Dev that communicates over bus with a SSD1306 display
// controller.
//
// The hardware is not touched: the display may not be powered yet. Call
// Init, retrying on a fixed cadence until it stops returning an error.
func New(bus i2c.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.W < 8 || opts.W > 128 || opts.W&7 != 0 {
		return nil, fmt.Errorf("ssd1306: invalid width %d", opts.W)
	}
	if opts.H < 8 || opts.H > 64 || opts.H&7 != 0 {
		return nil, fmt.Errorf("ssd1306: invalid height %d", opts.H)
	}
	o := *opts
	if o.Addr == 0 {
		o.Addr = DefaultOpts.Addr
	}
	if o.SecondaryAddress {
		o.Addr |= 1
	}
	if o.Contrast == 0 {
		o.Contrast = DefaultOpts.Contrast
	}
	return &Dev{
		c:      &i2c.Dev{Bus: bus, Addr: o.Addr},
		opts:   o,
		rect:   image.Rect(0, 0, o.W, o.H),
		pages:  o.H / 8,
		strict: o.Strict,
	}, nil
}

// Dev is an open handle to the display controller.
type Dev struct {
	c      conn.Conn
	opts   Opts
	rect   image.Rectangle
	pages  int
	strict bool

	// next is lazily allocated on the first Draw of a non-native image.
	next *image1bit.VerticalLSB
}

func (d *Dev) String() string {
	return fmt.Sprintf("ssd1306.Dev{%s, %dx%d}", d.c, d.rect.Dx(), d.rect.Dy())
}

// Init sends the configuration sequence as one transaction: multiplex
// ratio, display offset, start line, segment remap, COM scan direction,
// COM pin configuration, contrast, entire-display-on disable, normal
// mode, oscillator frequency, charge pump and display-on.
//
// The error is returned regardless of Opts.Strict so the caller can loop
// until the peripheral is powered and acknowledging.
func (d *Dev) Init() error {
	return d.sendCommand(initSequence(&d.opts))
}

// SetPageWindow positions the data write pointer at the given page and
// column, re-selecting page addressing mode. It must precede every
// WriteBytes.
func (d *Dev) SetPageWindow(page, column int) error {
	if page < 0 || page >= d.pages {
		return fmt.Errorf("ssd1306: invalid page %d", page)
	}
	if column < 0 || column >= d.rect.Dx() {
		return fmt.Errorf("ssd1306: invalid column %d", column)
	}
	return d.done(d.sendCommand(pageWindow(page, column)))
}

// WriteBytes streams raw display data at the current window. Each byte is
// 8 vertically stacked pixels, bit 0 topmost.
func (d *Dev) WriteBytes(b []byte) error {
	return d.done(d.sendData(b))
}

// Clear blanks the whole frame.
func (d *Dev) Clear() error {
	if err := d.sendCommand(fullWindow(d.rect.Dx(), d.pages)); err != nil {
		return d.done(err)
	}
	return d.done(d.sendData(make([]byte, d.rect.Dx()*d.pages)))
}

// SetContrast changes the screen contrast.
func (d *Dev) SetContrast(level byte) error {
	return d.done(d.sendCommand([]byte{setContrast, level}))
}

// Invert the display (black on white vs white on black).
func (d *Dev) Invert(blackOnWhite bool) error {
	cmd := normalDisplay
	if blackOnWhite {
		cmd = invertDisplay
	}
	return d.done(d.sendCommand([]byte{cmd}))
}

// Halt turns the display off. Init turns it back on.
func (d *Dev) Halt() error {
	return d.done(d.sendCommand([]byte{displayOff}))
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer. Min is guaranteed to be {0, 0}.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw implements display.Drawer.
//
// The frame is written page by page through the page addressing window;
// once this function returns the display is updated.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	var pix []byte
	if img, ok := src.(*image1bit.VerticalLSB); ok && r == d.rect && img.Rect == d.rect && sp.X == 0 && sp.Y == 0 {
		// Exact size, full frame, native encoding: fast path.
		pix = img.Pix
	} else {
		if d.next == nil {
			d.next = image1bit.NewVerticalLSB(d.rect)
		}
		draw.Src.Draw(d.next, r, src, sp)
		pix = d.next.Pix
	}
	return d.writeFrame(pix)
}

// Write writes a full frame of pixels to the display in one call.
//
// The format is the content of image1bit.VerticalLSB.Pix: horizontal bands
// of 8 vertically stacked pixels per byte.
func (d *Dev) Write(pixels []byte) (int, error) {
	if len(pixels) != d.pages*d.rect.Dx() {
		return 0, fmt.Errorf("ssd1306: invalid pixel stream length; expected %d bytes, got %d bytes", d.pages*d.rect.Dx(), len(pixels))
	}
	if err := d.writeFrame(pixels); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

func (d *Dev) writeFrame(pix []byte) error {
	w := d.rect.Dx()
	for page := 0; page < d.pages; page++ {
		if err := d.sendCommand(pageWindow(page, 0)); err != nil {
			return d.done(err)
		}
		if err := d.sendData(pix[page*w : (page+1)*w]); err != nil {
			return d.done(err)
		}
	}
	return nil
}

// done applies the error policy for post-init operations.
func (d *Dev) done(err error) error {
	if d.strict {
		return err
	}
	return nil
}

func (d *Dev) sendCommand(c []byte) error {
	return d.c.Tx(append([]byte{ctrlCommand}, c...), nil)
}

func (d *Dev) sendData(c []byte) error {
	return d.c.Tx(append([]byte{ctrlData}, c...), nil)
}

var _ display.Drawer = &Dev{}
var _ conn.Resource = &Dev{}
