// Copyright 2026 Simon Frankau. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ssd1306

// Control bytes prefixing every transaction.
const (
	ctrlCommand byte = 0x00 // stream of command bytes follows
	ctrlData    byte = 0x40 // stream of GDDRAM data bytes follows
)

// Command opcodes. The peripheral accepts exactly this closed set.
const (
	setLowColumn        byte = 0x00 // ORed with the column's lower nibble
	setHighColumn       byte = 0x10 // ORed with the column's upper nibble
	setMemoryMode       byte = 0x20
	setColumnRange      byte = 0x21
	setPageRange        byte = 0x22
	setStartLine        byte = 0x40 // ORed with the start line
	setContrast         byte = 0x81
	setChargePump       byte = 0x8D
	segmentRemapOff     byte = 0xA0
	segmentRemapOn      byte = 0xA1
	entireDisplayResume byte = 0xA4
	entireDisplayOn     byte = 0xA5
	normalDisplay       byte = 0xA6
	invertDisplay       byte = 0xA7
	setMultiplexRatio   byte = 0xA8
	displayOff          byte = 0xAE
	displayOn           byte = 0xAF
	setPageStart        byte = 0xB0 // ORed with the page number
	comScanUp           byte = 0xC0
	comScanDown         byte = 0xC8
	setDisplayOffset    byte = 0xD3
	setOscFrequency     byte = 0xD5
	setComPins          byte = 0xDA
)

// Memory addressing modes (operand of setMemoryMode).
const (
	addressingHorizontal byte = 0x00
	addressingPage       byte = 0x02
)

// initSequence returns the data-sheet recommended configuration sequence
// as a single command stream.
func initSequence(opts *Opts) []byte {
	segRemap := segmentRemapOff
	if opts.MirrorHorizontal {
		segRemap = segmentRemapOn
	}
	comScan := comScanUp
	if opts.MirrorVertical {
		comScan = comScanDown
	}
	// 128x32 panels use the alternative COM pin layout.
	comPins := byte(0x02)
	if opts.H > 32 {
		comPins = 0x12
	}
	return []byte{
		setMultiplexRatio, byte(opts.H - 1),
		setDisplayOffset, 0x00,
		setStartLine | 0x00,
		segRemap,
		comScan,
		setComPins, comPins,
		setContrast, opts.Contrast,
		entireDisplayResume,
		normalDisplay,
		setOscFrequency, 0x80,
		setChargePump, 0x14,
		displayOn,
	}
}

// pageWindow returns the command stream selecting page addressing and
// positioning the write pointer. The upper column nibble must be sent
// before the lower one: this hardware zeroes the upper nibble when the
// lower-nibble command arrives first.
func pageWindow(page, column int) []byte {
	return []byte{
		setMemoryMode, addressingPage,
		setPageStart | byte(page),
		setHighColumn | byte(column>>4),
		setLowColumn | byte(column&0x0F),
	}
}

// fullWindow returns the command stream selecting the whole frame through
// horizontal addressing. Safe here because the range is page aligned; any
// non-aligned range wraps incorrectly on this part.
func fullWindow(w, pages int) []byte {
	return []byte{
		setMemoryMode, addressingHorizontal,
		setColumnRange, 0, byte(w - 1),
		setPageRange, 0, byte(pages - 1),
	}
}
