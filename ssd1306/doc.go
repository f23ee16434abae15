// Copyright 2026 Simon Frankau. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ssd1306 controls a monochrome OLED display via a SSD1306
// controller in page addressing mode over I²C.
//
// The driver targets the small 128x32 modules ("0.91 inch" IIC boards) but
// accepts any page-aligned geometry up to 128x64. It intentionally sticks
// to page addressing for pixel writes: on this part the horizontal (range)
// addressing mode wraps incorrectly at non-aligned column boundaries, and
// the column register's upper nibble is zeroed if the lower-nibble command
// is sent first. Both quirks are hidden behind SetPageWindow.
//
// By default the driver mirrors the original firmware's error policy: the
// initialization sequence is the only operation whose acknowledgement is
// checked, and everything after a successful Init is fire-and-forget. Set
// Opts.Strict to propagate every bus error instead.
//
// # Datasheet
//
// https://cdn-shop.adafruit.com/datasheets/SSD1306.pdf
package ssd1306
