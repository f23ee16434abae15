// Copyright 2026 Simon Frankau. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// banner2oled renders a line of text with a TrueType font into a Go byte
// table in the display's page layout. Handy for splash screens that need
// something nicer than the built-in 8×8 font.
package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/font/gofont/goregular"
)

const threshold = 0x80

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	w := flag.Int("w", 128, "display width")
	h := flag.Int("h", 32, "display height")
	size := flag.Float64("size", 24, "font size in points")
	name := flag.String("name", "banner", "variable name for the table")
	fontPath := flag.String("font", "", "TTF file to use (default: Go Regular)")
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal().Msg("usage: banner2oled [flags] \"some text\"")
	}

	img, err := render(flag.Arg(0), *w, *h, *size, *fontPath)
	if err != nil {
		log.Fatal().Err(err).Msg("rendering banner")
	}
	if err := emit(os.Stdout, *name, img); err != nil {
		log.Fatal().Err(err).Msg("writing table")
	}
}

func render(text string, w, h int, size float64, fontPath string) (image.Image, error) {
	ttf := goregular.TTF
	if fontPath != "" {
		var err error
		if ttf, err = os.ReadFile(fontPath); err != nil {
			return nil, err
		}
	}
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	dc := gg.NewContext(w, h)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.SetRGB(1, 1, 1)
	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: size}))
	tw, _ := dc.MeasureString(text)
	if tw > float64(w) {
		log.Warn().Float64("width", tw).Int("display", w).Msg("text wider than display")
	}
	dc.DrawStringAnchored(text, float64(w)/2, float64(h)/2, 0.5, 0.5)
	return dc.Image(), nil
}

// emit writes the image as a Go array in page layout, bit 0 topmost.
func emit(w io.Writer, name string, img image.Image) error {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if _, err := fmt.Fprintf(w, "var %s = []byte{\n", name); err != nil {
		return err
	}
	for page := 0; page < (height+7)/8; page++ {
		if _, err := fmt.Fprint(w, "\t"); err != nil {
			return err
		}
		for x := 0; x < width; x++ {
			var c byte
			for y := 0; y < 8; y++ {
				yTotal := page*8 + y
				if yTotal >= height {
					break
				}
				r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+yTotal).RGBA()
				if (r+g+b)/3 >= threshold<<8 {
					c |= 1 << y
				}
			}
			if _, err := fmt.Fprintf(w, "0x%02x, ", c); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}
