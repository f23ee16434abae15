// Copyright 2026 Simon Frankau. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bitbang

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// ErrNack is returned when the peripheral leaves the data line released
// during the acknowledge window after an address or data byte. It is
// recoverable: retry the whole transaction once the peripheral is powered.
var ErrNack = errors.New("bitbang: no acknowledge from peripheral")

// ErrClockStretch is returned when the peripheral holds the clock line low
// for longer than Opts.StretchTimeout.
var ErrClockStretch = errors.New("bitbang: clock held low past stretch timeout")

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	StretchTimeout: 100 * time.Millisecond,
}

// Opts defines the options for the bus.
type Opts struct {
	// Delay is the hold time applied around the start and stop conditions
	// and after each clock phase. Zero runs the bus as fast as the GPIO
	// host allows, which suits peripherals that rely on clock stretching
	// rather than a minimum bit period.
	Delay time.Duration
	// StretchTimeout bounds the wait for a peripheral that is holding the
	// clock line low. Zero selects the DefaultOpts value. Without a bound a
	// wedged peripheral would hang the caller forever.
	StretchTimeout time.Duration
}

// New returns a ready to use two-wire bus master driving scl and sda.
//
// Both pins must be wired open-drain with external pull-up resistors. They
// are left released (idle) by New and after every transaction.
func New(scl, sda gpio.PinIO, opts *Opts) (*Bus, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	stretch := opts.StretchTimeout
	if stretch == 0 {
		stretch = DefaultOpts.StretchTimeout
	}
	b := &Bus{scl: scl, sda: sda, delay: opts.Delay, stretch: stretch}
	if err := b.release(scl); err != nil {
		return nil, err
	}
	if err := b.release(sda); err != nil {
		return nil, err
	}
	return b, nil
}

// Bus is a software two-wire bus master. It is an exclusively-owned
// resource: only one transaction can be in flight and the type performs no
// locking of its own.
type Bus struct {
	scl     gpio.PinIO
	sda     gpio.PinIO
	delay   time.Duration
	stretch time.Duration
}

func (b *Bus) String() string {
	return fmt.Sprintf("bitbang(%s, %s)", b.scl, b.sda)
}

// Tx implements i2c.Bus.
//
// Only write transactions are supported. The stop condition is emitted on
// every exit path, so the bus is back to idle even when the peripheral
// nacks partway through.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	if len(r) != 0 {
		return errors.New("bitbang: read transactions are not supported")
	}
	err := b.Start(addr)
	for _, c := range w {
		if err != nil {
			break
		}
		err = b.SendByte(c)
	}
	if serr := b.Stop(); err == nil {
		err = serr
	}
	return err
}

// Start emits a start condition and sends the 7-bit address plus the write
// bit, MSB first. It returns ErrNack if the peripheral does not pull the
// data line low during the acknowledge window; the caller must still call
// Stop to release the bus.
func (b *Bus) Start(addr uint16) error {
	if addr > 0x7f {
		return fmt.Errorf("bitbang: invalid address %#x", addr)
	}
	// Data falls while the clock is still high: that is the start
	// condition. Only then is the clock taken low.
	if err := b.drive(b.sda); err != nil {
		return err
	}
	b.hold()
	if err := b.drive(b.scl); err != nil {
		return err
	}
	b.hold()
	return b.SendByte(byte(addr) << 1)
}

// SendByte shifts out one byte MSB first and samples the acknowledge bit.
// A 1 bit releases the data line, a 0 bit pulls it low; the line is set up
// before the clock rises. Returns ErrNack when the byte is not
// acknowledged.
func (b *Bus) SendByte(c byte) error {
	for mask := byte(0x80); mask != 0; mask >>= 1 {
		var err error
		if c&mask != 0 {
			err = b.release(b.sda)
		} else {
			err = b.drive(b.sda)
		}
		if err != nil {
			return err
		}
		if err := b.clock(); err != nil {
			return err
		}
	}
	return b.readAck()
}

// Stop emits a stop condition and leaves both lines released, followed by
// a fixed idle hold.
func (b *Bus) Stop() error {
	// Data must be low so that its rise while the clock is high reads as
	// the stop condition.
	if err := b.drive(b.sda); err != nil {
		return err
	}
	b.hold()
	if err := b.release(b.scl); err != nil {
		return err
	}
	// Even when the peripheral has wedged the clock, the data line must
	// still end up released.
	serr := b.waitClockHigh()
	b.hold()
	if err := b.release(b.sda); err != nil {
		return err
	}
	b.hold()
	return serr
}

// SetSpeed implements i2c.Bus.
func (b *Bus) SetSpeed(f physic.Frequency) error {
	if f <= 0 {
		return fmt.Errorf("bitbang: invalid speed %s", f)
	}
	b.delay = f.Period() / 2
	return nil
}

// Close releases both lines.
func (b *Bus) Close() error {
	if err := b.release(b.scl); err != nil {
		return err
	}
	return b.release(b.sda)
}

// readAck releases the data line, cycles the clock and samples the line
// while the clock is high. The peripheral acknowledges by pulling data low.
func (b *Bus) readAck() error {
	if err := b.release(b.sda); err != nil {
		return err
	}
	if err := b.release(b.scl); err != nil {
		return err
	}
	if err := b.waitClockHigh(); err != nil {
		return err
	}
	acked := b.sda.Read() == gpio.Low
	b.hold()
	if err := b.drive(b.scl); err != nil {
		return err
	}
	b.hold()
	if !acked {
		return ErrNack
	}
	return nil
}

// clock cycles the clock line high then low. The high phase waits out a
// peripheral that is clock stretching.
func (b *Bus) clock() error {
	if err := b.release(b.scl); err != nil {
		return err
	}
	if err := b.waitClockHigh(); err != nil {
		return err
	}
	b.hold()
	if err := b.drive(b.scl); err != nil {
		return err
	}
	b.hold()
	return nil
}

// waitClockHigh busy-waits until the released clock line actually reads
// high, bounded by the stretch timeout.
func (b *Bus) waitClockHigh() error {
	if b.scl.Read() == gpio.High {
		return nil
	}
	for deadline := time.Now().Add(b.stretch); b.scl.Read() == gpio.Low; {
		if time.Now().After(deadline) {
			return ErrClockStretch
		}
	}
	return nil
}

// release lets a line float high through its pull-up.
func (b *Bus) release(p gpio.PinIO) error {
	if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return fmt.Errorf("bitbang: failed to release %s: %w", p, err)
	}
	return nil
}

// drive pulls a line low.
func (b *Bus) drive(p gpio.PinIO) error {
	if err := p.Out(gpio.Low); err != nil {
		return fmt.Errorf("bitbang: failed to drive %s: %w", p, err)
	}
	return nil
}

func (b *Bus) hold() {
	if b.delay != 0 {
		time.Sleep(b.delay)
	}
}

var _ i2c.Bus = &Bus{}
var _ i2c.BusCloser = &Bus{}
