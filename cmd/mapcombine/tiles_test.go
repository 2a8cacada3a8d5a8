package main

import (
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/eak1mov/go-mapcombine/internal"
	"github.com/eak1mov/go-mapcombine/mapitem"
	"github.com/eak1mov/go-mapcombine/pyramid"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.DiscardHandler)

func TestExportBlank(t *testing.T) {
	dir := t.TempDir()
	for _, outputPath := range []string{filepath.Join(dir, "world.mbtiles"), filepath.Join(dir, "xyz")} {
		c := tilesCmd{outputPath: outputPath, tileSize: pyramid.DefaultTileSize}
		n, err := c.export(internal.Fill(t, 0, 0, 0, 8, mapitem.Unexplored), mapitem.Overworld, discard)
		require.NoError(t, err)
		require.Zero(t, n)
		require.NoFileExists(t, outputPath)
		require.NoDirExists(t, outputPath)
	}
}

func TestExportMBTiles(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "world.mbtiles")
	c := tilesCmd{outputPath: outputPath, tileSize: 4}
	n, err := c.export(internal.Fill(t, 0, 0, 0, 8, mapitem.MakeColorID(1, 2)), mapitem.Nether, discard)
	require.NoError(t, err)
	require.Equal(t, 4+1, n)

	db, err := sql.Open("sqlite3", outputPath)
	require.NoError(t, err)
	defer db.Close()

	var name string
	require.NoError(t, db.QueryRow("SELECT value FROM metadata WHERE name = 'name'").Scan(&name))
	require.Equal(t, "mapcombine nether", name)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM tiles").Scan(&count))
	require.Equal(t, n, count)
}

func TestExportInvalidFormat(t *testing.T) {
	c := tilesCmd{outputPath: filepath.Join(t.TempDir(), "out"), outputFormat: "pdf", tileSize: 4}
	_, err := c.export(internal.Fill(t, 0, 0, 0, 8, mapitem.MakeColorID(1, 2)), mapitem.Overworld, discard)
	require.Error(t, err)
	_, statErr := os.Stat(c.outputPath)
	require.True(t, os.IsNotExist(statErr))
}
