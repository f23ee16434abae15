// Copyright 2026 Simon Frankau. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// img2oled converts a PNG into a Go byte table in the page layout the
// SSD1306 expects, eight rows per page with bit 0 topmost.
//
// The image is converted to grayscale and thresholded at 50%. With -fit
// it is first scaled to the display size.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	xdraw "golang.org/x/image/draw"
)

const threshold = 0x80

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	fit := flag.Bool("fit", false, "scale the image to the display size")
	w := flag.Int("w", 128, "display width, used with -fit")
	h := flag.Int("h", 32, "display height, used with -fit")
	name := flag.String("name", "", "variable name (default: the file stem)")
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal().Msg("usage: img2oled [flags] image.png")
	}
	path := flag.Arg(0)

	img, err := decode(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("decoding image")
	}
	if *fit {
		img = scale(img, *w, *h)
	}
	v := *name
	if v == "" {
		v = identifier(path)
	}
	if err := emit(os.Stdout, v, img); err != nil {
		log.Fatal().Err(err).Msg("writing table")
	}
}

func decode(path string) (*image.Gray, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, err
	}
	if g, ok := img.(*image.Gray); ok {
		return g, nil
	}
	g := image.NewGray(img.Bounds())
	xdraw.Draw(g, g.Bounds(), img, img.Bounds().Min, xdraw.Src)
	return g, nil
}

func scale(g *image.Gray, w, h int) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), g, g.Bounds(), xdraw.Src, nil)
	return dst
}

// identifier derives a Go variable name from the file stem.
func identifier(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var b strings.Builder
	for _, r := range stem {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	if s := b.String(); s != "" && !unicode.IsDigit(rune(s[0])) {
		return s
	}
	return "_" + b.String()
}

// emit writes the image as a Go array, one line of source per page.
func emit(w io.Writer, name string, g *image.Gray) error {
	bounds := g.Bounds()
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
				if yTotal < height && g.GrayAt(bounds.Min.X+x, bounds.Min.Y+yTotal).Y >= threshold {
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
