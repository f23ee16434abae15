// Copyright 2026 Simon Frankau. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package termview implements a software SSD1306 that renders to the
// terminal using ANSI color codes.
//
// It sits on the peripheral side of i2c.Bus, so the same driver code that
// talks to a real display over bit-banged GPIO can run unmodified against a
// terminal window. Useful while you are waiting for your OLED module to come
// by mail.
package termview

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// Opts represents the options available for the simulated display.
type Opts struct {
	W    int
	H    int
	Addr uint16
	// AckAfter is the number of transactions to reject before the display
	// starts acknowledging, mimicking a module that is still powering up.
	AckAfter int
	// Writer receives the rendered frames. Defaults to a colorable stdout.
	Writer io.Writer
	// Quiet suppresses terminal output. The frame buffer is still updated.
	Quiet   bool
	Palette *ansi256.Palette

	_ struct{}
}

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	W:    128,
	H:    32,
	Addr: 0x3C,
}

// Display is an SSD1306 emulator that accepts I²C transactions and draws to
// the console.
type Display struct {
	w       io.Writer
	palette ansi256.Palette
	width   int
	pages   int
	addr    uint16
	quiet   bool

	frame    []byte
	buf      bytes.Buffer
	tx       int
	ackAfter int

	on        bool
	inverted  bool
	contrast  byte
	mode      byte
	page      int
	col       int
	colHigh   byte
	colStart  int
	colEnd    int
	pageStart int
	pageEnd   int
}

// New returns a Display emulating a W×H SSD1306 at the given address.
func New(opts *Opts) (*Display, error) {
	if opts.W < 8 || opts.W > 128 || opts.W&7 != 0 {
		return nil, fmt.Errorf("termview: invalid width %d", opts.W)
	}
	if opts.H < 8 || opts.H > 64 || opts.H&7 != 0 {
		return nil, fmt.Errorf("termview: invalid height %d", opts.H)
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.Writer
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	return &Display{
		w:        w,
		palette:  *p,
		width:    opts.W,
		pages:    opts.H / 8,
		addr:     opts.Addr,
		quiet:    opts.Quiet,
		frame:    make([]byte, opts.W*opts.H/8),
		ackAfter: opts.AckAfter,
		mode:     0x02,
		colEnd:   opts.W - 1,
		pageEnd:  opts.H/8 - 1,
	}, nil
}

func (d *Display) String() string {
	return fmt.Sprintf("termview(%dx%d)", d.width, d.pages*8)
}

// Tx implements i2c.Bus on the peripheral side.
//
// Reads are rejected like on the real display wiring, which ties D/C to
// write-only operation.
func (d *Display) Tx(addr uint16, w, r []byte) error {
	if addr != d.addr {
		return fmt.Errorf("termview: no device at %#02x", addr)
	}
	d.tx++
	if d.tx <= d.ackAfter {
		return errors.New("termview: device did not acknowledge")
	}
	if len(r) != 0 {
		return errors.New("termview: read transactions are unsupported")
	}
	if len(w) == 0 {
		return nil
	}
	switch w[0] {
	case 0x00:
		d.commands(w[1:])
	case 0x40:
		d.data(w[1:])
	default:
		return fmt.Errorf("termview: unknown control byte %#02x", w[0])
	}
	return nil
}

// SetSpeed implements i2c.Bus. Timing is not simulated.
func (d *Display) SetSpeed(f physic.Frequency) error {
	return nil
}

// Frame returns a copy of the current frame buffer in page order.
func (d *Display) Frame() []byte {
	f := make([]byte, len(d.frame))
	copy(f, d.frame)
	return f
}

// Contrast returns the last contrast value programmed.
func (d *Display) Contrast() byte {
	return d.contrast
}

// On reports whether the display has been switched on.
func (d *Display) On() bool {
	return d.on
}

func (d *Display) commands(cmds []byte) {
	for i := 0; i < len(cmds); i++ {
		c := cmds[i]
		arg := func() byte {
			if i+1 < len(cmds) {
				i++
				return cmds[i]
			}
			return 0
		}
		switch {
		case c < 0x10:
			// The column register is committed by the lower-nibble command,
			// consuming whatever upper nibble was latched before it. With
			// no latch pending the upper nibble comes out zero, which is
			// why the driver has to send the upper-nibble command first.
			d.col = int(d.colHigh)<<4 | int(c&0x0F)
			d.colHigh = 0
		case c < 0x20:
			d.colHigh = c & 0x0F
		case c == 0x20:
			d.mode = arg() & 0x03
		case c == 0x21:
			d.colStart = int(arg())
			d.colEnd = int(arg())
			d.col = d.colStart
		case c == 0x22:
			d.pageStart = int(arg())
			d.pageEnd = int(arg())
			d.page = d.pageStart
		case c == 0x81:
			d.contrast = arg()
		case c == 0x8D, c == 0xA8, c == 0xD3, c == 0xD5, c == 0xDA:
			// Charge pump, multiplex, offset, clocking. Accepted but not
			// modeled; geometry comes from Opts.
			arg()
		case c == 0xA6:
			d.inverted = false
		case c == 0xA7:
			d.inverted = true
		case c == 0xAE:
			d.on = false
			d.render()
		case c == 0xAF:
			d.on = true
			d.render()
		case c >= 0xB0 && c <= 0xB7:
			d.page = int(c & 0x07)
		}
		// Start line, remap, scan direction and the display-RAM toggles do
		// not affect the stored frame.
	}
}

func (d *Display) data(b []byte) {
	for _, v := range b {
		if d.page < d.pages && d.col < d.width {
			d.frame[d.page*d.width+d.col] = v
		}
		d.col++
		if d.mode == 0x02 {
			if d.col >= d.width {
				d.col = 0
			}
			continue
		}
		// Horizontal addressing wraps the column window and advances the
		// page, which is what makes naive full-frame writes look shredded
		// on a 32-row panel.
		if d.col > d.colEnd {
			d.col = d.colStart
			d.page++
			if d.page > d.pageEnd {
				d.page = d.pageStart
			}
		}
	}
	d.render()
}

func (d *Display) render() {
	if d.quiet {
		return
	}
	// Minimize the amount of memory allocated per refresh.
	d.buf.Reset()
	_, _ = d.buf.WriteString("\033[H\033[0m")
	on := color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	off := color.NRGBA{A: 0xFF}
	if d.inverted {
		on, off = off, on
	}
	for p := 0; p < d.pages; p++ {
		for bit := 0; bit < 8; bit++ {
			for x := 0; x < d.width; x++ {
				c := off
				if d.on && d.frame[p*d.width+x]&(1<<bit) != 0 {
					c = on
				}
				_, _ = io.WriteString(&d.buf, d.palette.Block(c))
			}
			_, _ = d.buf.WriteString("\033[0m\n")
		}
	}
	_, _ = d.buf.WriteTo(d.w)
}

// Halt implements conn.Resource.
//
// It resets the terminal attributes so the shell is not corrupted.
func (d *Display) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

var _ i2c.Bus = &Display{}
var _ fmt.Stringer = &Display{}
