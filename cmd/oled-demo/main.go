// Copyright 2026 Simon Frankau. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// oled-demo scrolls text across an SSD1306 OLED wired to two GPIO pins,
// cycling through the marquee, bungee and wobble animations.
//
// With -sim the demo runs against a terminal emulation of the display
// instead of real hardware.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/host/v3"

	"github.com/simon-frankau/teensy-oled/anim"
	"github.com/simon-frankau/teensy-oled/bitbang"
	"github.com/simon-frankau/teensy-oled/ssd1306"
	"github.com/simon-frankau/teensy-oled/termview"
)

// framesPerAnim is how long each animation runs before the demo moves on
// to the next one.
const framesPerAnim = 1024

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("oled-demo failed")
	}
}

func run() error {
	sim := flag.Bool("sim", false, "render to the terminal instead of hardware")
	sclName := flag.String("scl", "GPIO3", "name of the clock pin")
	sdaName := flag.String("sda", "GPIO2", "name of the data pin")
	ledName := flag.String("led", "", "name of a heartbeat LED pin (optional)")
	addr := flag.Uint("addr", 0x3C, "display address")
	msg := flag.String("msg", "Hello, world! ", "message to animate")
	contrast := flag.Uint("contrast", 0x7F, "display contrast (0-255)")
	period := flag.Duration("period", 20*time.Millisecond, "frame period")
	strict := flag.Bool("strict", false, "check every acknowledge, not just init")
	flag.Parse()
	if flag.NArg() != 0 {
		return fmt.Errorf("unexpected argument: %s", flag.Arg(0))
	}
	if *contrast > 0xFF {
		return fmt.Errorf("contrast %d out of range", *contrast)
	}

	var bus i2c.Bus
	var led gpio.PinIO = gpio.INVALID
	if *sim {
		o := termview.DefaultOpts
		o.Addr = uint16(*addr)
		d, err := termview.New(&o)
		if err != nil {
			return err
		}
		defer d.Halt()
		bus = d
	} else {
		if _, err := host.Init(); err != nil {
			return err
		}
		scl := gpioreg.ByName(*sclName)
		if scl == nil {
			return fmt.Errorf("no pin named %q", *sclName)
		}
		sda := gpioreg.ByName(*sdaName)
		if sda == nil {
			return fmt.Errorf("no pin named %q", *sdaName)
		}
		b, err := bitbang.New(scl, sda, &bitbang.DefaultOpts)
		if err != nil {
			return err
		}
		defer b.Close()
		bus = b
		if *ledName != "" {
			if led = gpioreg.ByName(*ledName); led == nil {
				return fmt.Errorf("no pin named %q", *ledName)
			}
		}
	}

	opts := ssd1306.DefaultOpts
	opts.Addr = uint16(*addr)
	opts.Contrast = byte(*contrast)
	opts.Strict = *strict
	dev, err := ssd1306.New(bus, &opts)
	if err != nil {
		return err
	}
	defer dev.Halt()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// The display may still be powering up when we are. Keep knocking
	// until it acknowledges.
	for {
		err := dev.Init()
		if err == nil {
			break
		}
		log.Warn().Err(err).Msg("display not answering, retrying")
		select {
		case <-stop:
			return nil
		case <-time.After(500 * time.Millisecond):
		}
	}
	log.Info().Str("dev", dev.String()).Msg("display initialized")
	if err := dev.Clear(); err != nil {
		return err
	}

	marquee := anim.Marquee{Column: 0, Page: 1, Width: 128, Speed: 1, Message: *msg}
	bungee := anim.Bungee{Column: 0, Page: 1, Width: 128, Message: *msg}
	wobble := anim.Wobble{Column: 0, Page: 1, Message: *msg}

	tick := time.NewTicker(*period)
	defer tick.Stop()
	var offset, phase, frame int
	heartbeat := false
	for {
		select {
		case <-stop:
			log.Info().Msg("shutting down")
			return nil
		case <-tick.C:
		}
		var err error
		switch (frame / framesPerAnim) % 3 {
		case 0:
			offset, err = marquee.Render(dev, offset)
		case 1:
			offset, err = bungee.Render(dev, offset)
		case 2:
			phase, err = wobble.Render(dev, phase)
		}
		if err != nil {
			return err
		}
		frame++
		if frame%framesPerAnim == 0 {
			offset, phase = 0, 0
			if err := dev.Clear(); err != nil {
				return err
			}
		}
		if frame&31 == 0 && led != gpio.INVALID {
			heartbeat = !heartbeat
			if err := led.Out(gpio.Level(heartbeat)); err != nil {
				log.Warn().Err(err).Msg("heartbeat LED")
			}
		}
	}
}
