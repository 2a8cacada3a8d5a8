// Package mb writes tile pyramids in MBTiles format.
//
// Note: User must properly initialize the sqlite3 library generic driver
// (e.g. import _ "github.com/mattn/go-sqlite3") before using this package.
package mb

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"strconv"

	"github.com/eak1mov/go-mapcombine/tile"
)

const schema = `
	CREATE TABLE metadata (name TEXT, value TEXT);
	CREATE TABLE tiles (
		zoom_level INTEGER,
		tile_column INTEGER,
		tile_row INTEGER,
		tile_data BLOB
	);
`

// Writer implements tile.Writer interface for MBTiles format.
type Writer struct {
	db      *sql.DB
	stmt    *sql.Stmt
	logger  *slog.Logger
	minZoom uint32
	maxZoom uint32
	written int
}

type writerConfig struct {
	Metadata map[string]string
	Logger   *slog.Logger
}

type WriterOption func(*writerConfig)

// WithMetadata adds entries to the metadata table. They override the
// defaults ("format" is "png", "type" is "baselayer").
func WithMetadata(metadata map[string]string) WriterOption {
	return func(c *writerConfig) { maps.Copy(c.Metadata, metadata) }
}

func WithLogger(logger *slog.Logger) WriterOption {
	return func(c *writerConfig) { c.Logger = logger }
}

// NewWriter creates a new MBTiles file and prepares it for writing tiles. The
// file must not exist.
func NewWriter(filePath string, opts ...WriterOption) (*Writer, error) {
	config := writerConfig{
		Metadata: map[string]string{"format": "png", "type": "baselayer"},
		Logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&config)
	}

	var err error
	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			db.Close()
		}
	}()

	if _, err = db.Exec(schema); err != nil {
		return nil, err
	}

	for k, v := range config.Metadata {
		if _, err = db.Exec("INSERT INTO metadata (name, value) VALUES (?, ?)", k, v); err != nil {
			return nil, err
		}
	}

	stmt, err := db.Prepare("INSERT INTO tiles (zoom_level, tile_column, tile_row, tile_data) VALUES (?, ?, ?, ?)")
	if err != nil {
		return nil, err
	}

	return &Writer{db: db, stmt: stmt, logger: config.Logger}, nil
}

func (w *Writer) Close() error {
	return errors.Join(w.stmt.Close(), w.db.Close())
}

func (w *Writer) WriteTile(tileID tile.ID, tileData []byte) error {
	if !tileID.Valid() {
		return fmt.Errorf("mapcombine: invalid tile %v", tileID)
	}

	x, y, z := tileID.X, tileID.Y, tileID.Z
	y = (1 << z) - 1 - y // XYZ -> TMS

	if _, err := w.stmt.Exec(z, x, y, tileData); err != nil {
		return err
	}

	if w.written == 0 || z < w.minZoom {
		w.minZoom = z
	}
	if w.written == 0 || z > w.maxZoom {
		w.maxZoom = z
	}
	w.written++
	return nil
}

// Finalize records the zoom range in the metadata and indexes the tiles.
func (w *Writer) Finalize() error {
	if w.written > 0 {
		for name, zoom := range map[string]uint32{"minzoom": w.minZoom, "maxzoom": w.maxZoom} {
			if _, err := w.db.Exec("INSERT INTO metadata (name, value) VALUES (?, ?)", name, strconv.FormatUint(uint64(zoom), 10)); err != nil {
				return err
			}
		}
	}

	w.logger.Debug("mapcombine: creating index", "tiles", w.written)
	_, err := w.db.Exec("CREATE UNIQUE INDEX tile_index ON tiles (zoom_level, tile_column, tile_row)")
	return err
}
