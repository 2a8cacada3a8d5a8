// Package internal provides fixtures shared by the package tests.
package internal

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/eak1mov/go-mapcombine/mapitem"
	"github.com/eak1mov/go-mapcombine/mapitem/tags"
	"github.com/stretchr/testify/require"
)

// Record returns map item fields for a square snapshot whose world rectangle
// starts at (beginX, beginZ), filled with a single color.
func Record(dimension mapitem.Dimension, scale, beginX, beginZ, size int, fill mapitem.ColorID) tags.Record {
	return tags.Record{
		Scale:     uint8(scale),
		Dimension: int8(dimension),
		Width:     uint16(size),
		Height:    uint16(size),
		CenterX:   int32(beginX + (size<<scale)/2),
		CenterZ:   int32(beginZ + (size<<scale)/2),
		Colors:    bytes.Repeat([]byte{byte(fill)}, size*size),
	}
}

// NewTile builds a valid tile whose world rectangle starts at (beginX,
// beginZ) from row-major pixels.
func NewTile(t testing.TB, scale, beginX, beginZ, width, height int, pixels ...mapitem.ColorID) *mapitem.Tile {
	t.Helper()
	require.Len(t, pixels, width*height)

	colors := make([]byte, len(pixels))
	for i, p := range pixels {
		colors[i] = byte(p)
	}
	tile := mapitem.FromRecord(tags.Record{
		Scale:   uint8(scale),
		Width:   uint16(width),
		Height:  uint16(height),
		CenterX: int32(beginX + (width<<scale)/2),
		CenterZ: int32(beginZ + (height<<scale)/2),
		Colors:  colors,
	}, time.Time{})
	require.True(t, tile.Valid())
	return tile
}

// Fill builds a valid square tile of a single color.
func Fill(t testing.TB, scale, beginX, beginZ, size int, fill mapitem.ColorID) *mapitem.Tile {
	t.Helper()
	return NewTile(t, scale, beginX, beginZ, size, size, repeat(fill, size*size)...)
}

func repeat(c mapitem.ColorID, n int) []mapitem.ColorID {
	pixels := make([]mapitem.ColorID, n)
	for i := range pixels {
		pixels[i] = c
	}
	return pixels
}

// Pixels returns the row-major pixel grid of tile.
func Pixels(t testing.TB, tile *mapitem.Tile) []mapitem.ColorID {
	t.Helper()
	pixels := make([]mapitem.ColorID, 0, tile.Width()*tile.Height())
	for z := range tile.Height() {
		for x := range tile.Width() {
			c, err := tile.Pixel(x, z)
			require.NoError(t, err)
			pixels = append(pixels, c)
		}
	}
	return pixels
}

// WorldPixel returns the pixel of tile covering the world point (x, z).
func WorldPixel(t testing.TB, tile *mapitem.Tile, x, z int) mapitem.ColorID {
	t.Helper()
	gx, gz := tile.WorldToGridPoint(x, z)
	c, err := tile.Pixel(gx, gz)
	require.NoError(t, err)
	return c
}

// WriteSnapshot writes record as a gzip-compressed map item file in dir and
// sets its modification time.
func WriteSnapshot(t testing.TB, dir, name string, record tags.Record, modTime time.Time) string {
	t.Helper()
	data, err := tags.Compress(tags.Encode(&record), tags.CompressionGzip)
	require.NoError(t, err)

	filePath := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(filePath, data, 0644))
	require.NoError(t, os.Chtimes(filePath, modTime, modTime))
	return filePath
}
