package main

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/eak1mov/go-mapcombine/mapitem"
	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// encoderFor picks an image encoder from the file extension. PNG is the
// default.
func encoderFor(filePath string) func(f *os.File, img image.Image) error {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".bmp":
		return func(f *os.File, img image.Image) error { return bmp.Encode(f, img) }
	case ".tif", ".tiff":
		return func(f *os.File, img image.Image) error {
			return tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
		}
	}
	return func(f *os.File, img image.Image) error { return png.Encode(f, img) }
}

// reduceColors redraws img with a median cut palette of at most n colors.
// Zero or a palette already small enough leaves img unchanged.
func reduceColors(img *image.Paletted, n int) *image.Paletted {
	if n <= 0 || n >= len(img.Palette) {
		return img
	}
	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(img.Bounds(), q.Quantize(make(color.Palette, 0, n), img))
	draw.Draw(pm, img.Bounds(), img, img.Bounds().Min, draw.Src)
	return pm
}

func writeImage(filePath string, t *mapitem.Tile, colors int) error {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	if err := encoderFor(filePath)(file, reduceColors(t.Image(), colors)); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
