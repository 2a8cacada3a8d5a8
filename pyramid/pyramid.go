// Package pyramid cuts a composite tile into a web-style tile pyramid.
//
// At the deepest zoom level one image pixel is one grid cell of the
// composite. Each shallower level halves the resolution by compositing the
// previous level into a tile one scale coarser, so every level is a majority
// vote of the one below it.
package pyramid

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"slices"

	"github.com/eak1mov/go-mapcombine/composite"
	"github.com/eak1mov/go-mapcombine/mapitem"
	"github.com/eak1mov/go-mapcombine/tile"
)

const DefaultTileSize = 256

// ErrTooManyLevels is returned when the shallowest zoom level would need a
// scale above mapitem.MaxScale.
var ErrTooManyLevels = errors.New("mapcombine: too many zoom levels")

type config struct {
	TileSize int
	Logger   *slog.Logger
}

type Option func(*config)

// WithTileSize sets the width and height of each tile in pixels.
func WithTileSize(tileSize int) Option {
	return func(c *config) { c.TileSize = tileSize }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.Logger = logger }
}

// MaxZoom returns the smallest zoom level at which t fits into 1<<zoom tiles
// per side.
func MaxZoom(t *mapitem.Tile, tileSize int) uint32 {
	size := max(t.Width(), t.Height())
	var zoom uint32
	for tileSize<<zoom < size {
		zoom++
	}
	return zoom
}

// Write writes every zoom level of t to w, deepest level first, and returns
// the number of tiles written. Tiles without explored pixels are skipped.
// Zoom 0 has scale t.Scale()+MaxZoom, which must not exceed
// mapitem.MaxScale. The caller finalizes w.
func Write(w tile.Writer, t *mapitem.Tile, opts ...Option) (int, error) {
	config := config{
		TileSize: DefaultTileSize,
		Logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&config)
	}
	if config.TileSize <= 0 {
		return 0, fmt.Errorf("mapcombine: invalid tile size %d", config.TileSize)
	}
	if !t.Valid() {
		return 0, composite.ErrInvalidTile
	}

	maxZoom := MaxZoom(t, config.TileSize)
	if t.Scale()+int(maxZoom) > mapitem.MaxScale {
		return 0, fmt.Errorf("%w: %d levels above scale %d with tile size %d",
			ErrTooManyLevels, maxZoom, t.Scale(), config.TileSize)
	}

	written := 0
	level := t
	for zoom := maxZoom; ; zoom-- {
		n, err := writeLevel(w, level, zoom, config.TileSize)
		written += n
		if err != nil {
			return written, err
		}
		config.Logger.Debug("mapcombine: zoom level written", "zoom", zoom, "tiles", n, "scale", level.Scale())

		if zoom == 0 {
			return written, nil
		}

		next := mapitem.NewBounded(level.Rect(), level.Scale()+1)
		if err := composite.Draw(level, next); err != nil {
			return written, fmt.Errorf("zoom %d: %w", zoom-1, err)
		}
		level = next
	}
}

func writeLevel(w tile.Writer, level *mapitem.Tile, zoom uint32, tileSize int) (int, error) {
	img := level.Image()

	var tileIDs []tile.ID
	for y := 0; y*tileSize < level.Height(); y++ {
		for x := 0; x*tileSize < level.Width(); x++ {
			tileIDs = append(tileIDs, tile.ID{X: uint32(x), Y: uint32(y), Z: zoom})
		}
	}
	slices.SortFunc(tileIDs, func(a, b tile.ID) int {
		return cmp.Compare(a.Code(), b.Code())
	})

	written := 0
	var buffer bytes.Buffer
	for _, tileID := range tileIDs {
		sub := crop(img, tileID, tileSize)
		if sub == nil {
			continue
		}

		buffer.Reset()
		if err := png.Encode(&buffer, sub); err != nil {
			return written, err
		}
		if err := w.WriteTile(tileID, bytes.Clone(buffer.Bytes())); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// crop copies the area of img covered by tileID into a new tileSize x
// tileSize image. It returns nil when the area holds no explored pixel.
func crop(img *image.Paletted, tileID tile.ID, tileSize int) *image.Paletted {
	origin := image.Pt(int(tileID.X)*tileSize, int(tileID.Y)*tileSize)
	area := image.Rectangle{Min: origin, Max: origin.Add(image.Pt(tileSize, tileSize))}.Intersect(img.Bounds())

	out := image.NewPaletted(image.Rect(0, 0, tileSize, tileSize), img.Palette)
	explored := false
	for y := area.Min.Y; y < area.Max.Y; y++ {
		row := img.Pix[img.PixOffset(area.Min.X, y):img.PixOffset(area.Max.X, y)]
		copy(out.Pix[out.PixOffset(area.Min.X-origin.X, y-origin.Y):], row)
		if !explored && slices.ContainsFunc(row, func(p uint8) bool { return mapitem.ColorID(p).Explored() }) {
			explored = true
		}
	}
	if !explored {
		return nil
	}
	return out
}
