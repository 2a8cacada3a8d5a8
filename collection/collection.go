// Package collection gathers the map items of one dimension and combines them
// into a single composite tile.
package collection

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/eak1mov/go-mapcombine/composite"
	"github.com/eak1mov/go-mapcombine/mapitem"
	"github.com/eak1mov/go-mapcombine/mapitem/tags"
)

// ErrEmpty is returned by Combine when there is nothing to combine. It is not
// a failure: no composite is produced.
var ErrEmpty = errors.New("mapcombine: nothing to combine")

// Collection holds valid tiles of a single dimension, ordered coarsest first
// and, within a scale, oldest first. Compositing in this order lets finer and
// newer data win where tiles overlap.
type Collection struct {
	dimension   mapitem.Dimension
	compression tags.Compression
	logger      *slog.Logger
	tiles       []*mapitem.Tile
}

type config struct {
	Compression tags.Compression
	Logger      *slog.Logger
}

type Option func(*config)

// WithCompression sets the compression of loaded files (gzip by default).
func WithCompression(compression tags.Compression) Option {
	return func(c *config) { c.Compression = compression }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.Logger = logger }
}

func New(dimension mapitem.Dimension, opts ...Option) *Collection {
	config := config{
		Compression: tags.CompressionGzip,
		Logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&config)
	}
	return &Collection{
		dimension:   dimension,
		compression: config.Compression,
		logger:      config.Logger,
	}
}

func (c *Collection) Dimension() mapitem.Dimension { return c.dimension }

// Load decodes one map item file and adds it when it is valid and belongs to
// the collection's dimension. An error means the file was skipped; other
// files can still be loaded.
func (c *Collection) Load(name string, data []byte, modTime time.Time) error {
	t, err := mapitem.Load(data, c.compression, modTime)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if !c.Add(t) {
		c.logger.Debug("mapcombine: tile excluded", "name", name, "tile", t.String(), "valid", t.Valid())
	}
	return nil
}

// Add inserts t in order and reports whether it was accepted. Invalid tiles
// and tiles of other dimensions are ignored.
func (c *Collection) Add(t *mapitem.Tile) bool {
	if !t.Valid() || t.Dimension() != c.dimension {
		return false
	}
	i, _ := slices.BinarySearchFunc(c.tiles, t, func(a, b *mapitem.Tile) int {
		if n := compareTiles(a, b); n != 0 {
			return n
		}
		return -1 // equal keys keep insertion order
	})
	c.tiles = slices.Insert(c.tiles, i, t)
	return true
}

func compareTiles(a, b *mapitem.Tile) int {
	if n := cmp.Compare(b.Scale(), a.Scale()); n != 0 {
		return n
	}
	return a.LastModified().Compare(b.LastModified())
}

func (c *Collection) Len() int { return len(c.tiles) }

// Tiles returns the tiles in compositing order.
func (c *Collection) Tiles() []*mapitem.Tile {
	return slices.Clone(c.tiles)
}

// Bounds returns the union of the world rectangles of all tiles.
func (c *Collection) Bounds() mapitem.Rect {
	var bounds mapitem.Rect
	for _, t := range c.tiles {
		bounds = bounds.Union(t.Rect())
	}
	return bounds
}

// Combine composites all tiles into a new tile at the given scale covering
// Bounds. It returns ErrEmpty when the collection has no tiles.
func (c *Collection) Combine(scale int) (*mapitem.Tile, error) {
	if len(c.tiles) == 0 {
		return nil, ErrEmpty
	}

	bounds := c.Bounds()
	out := mapitem.NewBounded(bounds, scale)
	if !out.Valid() {
		return nil, fmt.Errorf("%w: scale %d over %v", composite.ErrInvalidTile, scale, bounds)
	}

	c.logger.Debug("mapcombine: combining", "tiles", len(c.tiles), "bounds", bounds.String(), "scale", scale)
	for _, t := range c.tiles {
		if err := composite.Draw(t, out); err != nil {
			return nil, err
		}
	}

	return out, nil
}
