// Package mapitem models map item snapshots and the composites built from
// them: a square grid of color IDs placed in world space at a power-of-two
// scale.
package mapitem

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/eak1mov/go-mapcombine/mapitem/tags"
)

// MaxScale is the largest scale a valid tile may have. Grid cells of a tile
// are 1<<scale world units wide.
const MaxScale = 16

// MaxPixels is the largest pixel count NewBounded allocates.
const MaxPixels = 1 << 28

var ErrOutOfBounds = errors.New("mapcombine: pixel out of bounds")

// Tile is one map item or one composite under construction. Pixels are stored
// row-major: the pixel at (x, z) is at index x + z*width.
type Tile struct {
	scale        int
	centerX      int
	centerZ      int
	width        int
	height       int
	pixels       []byte
	dimension    Dimension
	lastModified time.Time
}

// FromRecord builds a tile from decoded map item fields. The tile is invalid
// when the record lacks a size or enough pixel data.
func FromRecord(record tags.Record, modTime time.Time) *Tile {
	t := &Tile{
		scale:        int(record.Scale),
		centerX:      int(record.CenterX),
		centerZ:      int(record.CenterZ),
		width:        int(record.Width),
		height:       int(record.Height),
		dimension:    Dimension(record.Dimension),
		lastModified: modTime,
	}
	if n := t.width * t.height; n > 0 && len(record.Colors) >= n {
		t.pixels = bytes.Clone(record.Colors[:n])
	}
	return t
}

// Load decompresses and decodes a map item file. Only decompression failures
// are reported; a file without recognizable fields yields an invalid tile.
func Load(data []byte, compression tags.Compression, modTime time.Time) (*Tile, error) {
	buffer, err := tags.Decompress(data, compression)
	if err != nil {
		return nil, err
	}
	var record tags.Record
	tags.Decode(buffer, &record)
	return FromRecord(record, modTime), nil
}

// NewBounded allocates an unexplored tile at the given scale whose rectangle
// starts at the beginning of rect and covers all of it. The result is invalid
// when rect is empty, scale is out of range or the grid would exceed
// MaxPixels.
func NewBounded(rect Rect, scale int) *Tile {
	if rect.Empty() || scale < 0 || scale > MaxScale {
		return &Tile{scale: scale}
	}
	cell := 1 << scale
	width := (rect.Dx() + cell - 1) >> scale
	height := (rect.Dz() + cell - 1) >> scale
	if width > MaxPixels/height {
		return &Tile{scale: scale}
	}
	return &Tile{
		scale:   scale,
		centerX: rect.BeginX + (width<<scale)/2,
		centerZ: rect.BeginZ + (height<<scale)/2,
		width:   width,
		height:  height,
		pixels:  make([]byte, width*height),
	}
}

// Valid reports whether the tile carries usable data. Invalid tiles must not
// be composited.
func (t *Tile) Valid() bool {
	return t.width > 0 && t.height > 0 &&
		t.scale >= 0 && t.scale <= MaxScale &&
		len(t.pixels) == t.width*t.height
}

func (t *Tile) Scale() int              { return t.scale }
func (t *Tile) CenterX() int            { return t.centerX }
func (t *Tile) CenterZ() int            { return t.centerZ }
func (t *Tile) Width() int              { return t.width }
func (t *Tile) Height() int             { return t.height }
func (t *Tile) Dimension() Dimension    { return t.dimension }
func (t *Tile) LastModified() time.Time { return t.lastModified }

// WorldToGrid converts a length in world units to grid cells, rounding down.
func (t *Tile) WorldToGrid(units int) int {
	return units >> t.scale
}

// GridToWorld converts a length in grid cells to world units.
func (t *Tile) GridToWorld(units int) int {
	return units << t.scale
}

// Rect returns the world-space rectangle covered by the tile.
func (t *Tile) Rect() Rect {
	sizeX := t.GridToWorld(t.width)
	sizeZ := t.GridToWorld(t.height)
	beginX := t.centerX - sizeX/2
	beginZ := t.centerZ - sizeZ/2
	return Rect{BeginX: beginX, BeginZ: beginZ, EndX: beginX + sizeX, EndZ: beginZ + sizeZ}
}

// WorldToGridPoint returns the grid cell containing the world point (x, z).
// The result lies outside the grid when the point lies outside Rect.
func (t *Tile) WorldToGridPoint(x, z int) (int, int) {
	r := t.Rect()
	return t.WorldToGrid(x - r.BeginX), t.WorldToGrid(z - r.BeginZ)
}

// GridToWorldPoint returns the world coordinates of the corner of grid cell
// (x, z) closest to the tile's beginning.
func (t *Tile) GridToWorldPoint(x, z int) (int, int) {
	r := t.Rect()
	return r.BeginX + t.GridToWorld(x), r.BeginZ + t.GridToWorld(z)
}

// Contains reports whether (x, z) is a cell of the grid.
func (t *Tile) Contains(x, z int) bool {
	return 0 <= x && x < t.width && 0 <= z && z < t.height && t.pixels != nil
}

func (t *Tile) Pixel(x, z int) (ColorID, error) {
	if !t.Contains(x, z) {
		return 0, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, z, t.width, t.height)
	}
	return ColorID(t.pixels[x+z*t.width]), nil
}

func (t *Tile) SetPixel(x, z int, c ColorID) error {
	if !t.Contains(x, z) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, z, t.width, t.height)
	}
	t.pixels[x+z*t.width] = byte(c)
	return nil
}

// Explored returns the number of explored pixels.
func (t *Tile) Explored() int {
	n := 0
	for _, p := range t.pixels {
		if ColorID(p).Explored() {
			n++
		}
	}
	return n
}

var renderPalette = Palette()

// Image returns a copy of the pixel grid as a paletted image whose palette
// renders each color ID. Unexplored pixels render as the shaded first base
// color.
func (t *Tile) Image() *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, t.width, t.height), renderPalette)
	copy(img.Pix, t.pixels)
	return img
}

func (t *Tile) String() string {
	return fmt.Sprintf("%v scale=%d center=(%d,%d) size=%dx%d",
		t.dimension, t.scale, t.centerX, t.centerZ, t.width, t.height)
}
