// Copyright 2026 Simon Frankau. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package teensyoled drives a 128×32 SSD1306 OLED over a bit-banged
// two-wire bus and animates text on it.
//
// The layering mirrors the wiring: bitbang implements i2c.Bus on two GPIO
// pins, ssd1306 speaks the display's command set over any i2c.Bus, font
// provides the 8×8 column-major glyphs, and anim turns a message plus a
// scroll offset into per-frame column writes. termview is a terminal
// stand-in for the panel so everything above the bus can run on a
// development machine.
package teensyoled
