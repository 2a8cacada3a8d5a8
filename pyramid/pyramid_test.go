package pyramid_test

import (
	"bytes"
	"image/png"
	"slices"
	"testing"

	"github.com/eak1mov/go-mapcombine/internal"
	"github.com/eak1mov/go-mapcombine/mapitem"
	"github.com/eak1mov/go-mapcombine/pyramid"
	"github.com/eak1mov/go-mapcombine/tile"
	"github.com/eak1mov/go-mapcombine/xyz"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type memWriter struct {
	order []tile.ID
	tiles map[tile.ID][]byte
}

func (w *memWriter) WriteTile(tileID tile.ID, tileData []byte) error {
	if w.tiles == nil {
		w.tiles = make(map[tile.ID][]byte)
	}
	w.order = append(w.order, tileID)
	w.tiles[tileID] = tileData
	return nil
}

func (w *memWriter) Finalize() error { return nil }

var grass = mapitem.MakeColorID(1, 2)

// halfExplored returns a 300x10 tile explored only in its first 256 columns.
func halfExplored(t *testing.T) *mapitem.Tile {
	pixels := make([]mapitem.ColorID, 300*10)
	for z := range 10 {
		for x := range 256 {
			pixels[x+z*300] = grass
		}
	}
	return internal.NewTile(t, 0, -150, 0, 300, 10, pixels...)
}

func TestMaxZoom(t *testing.T) {
	for _, tc := range []struct {
		Size     int
		TileSize int
		Want     uint32
	}{
		{1, 256, 0},
		{256, 256, 0},
		{257, 256, 1},
		{300, 128, 2},
		{1024, 128, 3},
	} {
		tl := internal.Fill(t, 0, 0, 0, tc.Size, grass)
		if got := pyramid.MaxZoom(tl, tc.TileSize); got != tc.Want {
			t.Errorf("MaxZoom(%d, %d) = %d, want = %d", tc.Size, tc.TileSize, got, tc.Want)
		}
	}
}

func TestWrite(t *testing.T) {
	var w memWriter
	n, err := pyramid.Write(&w, halfExplored(t), pyramid.WithTileSize(128))
	require.NoError(t, err)
	require.Equal(t, 4, n)

	want := []tile.ID{
		{X: 0, Y: 0, Z: 2},
		{X: 1, Y: 0, Z: 2},
		{X: 0, Y: 0, Z: 1},
		{X: 0, Y: 0, Z: 0},
	}
	if diff := cmp.Diff(want, w.order); diff != "" {
		t.Errorf("written tiles mismatch (-want+got):\n%v", diff)
	}

	for _, tc := range []struct {
		TileID tile.ID
		X, Y   int
		Want   mapitem.ColorID
	}{
		{tile.ID{X: 1, Y: 0, Z: 2}, 127, 9, grass},
		{tile.ID{X: 1, Y: 0, Z: 2}, 0, 10, mapitem.Unexplored},
		{tile.ID{X: 0, Y: 0, Z: 1}, 127, 4, grass},
		{tile.ID{X: 0, Y: 0, Z: 0}, 63, 0, grass},
		{tile.ID{X: 0, Y: 0, Z: 0}, 64, 0, mapitem.Unexplored},
	} {
		img, err := png.Decode(bytes.NewReader(w.tiles[tc.TileID]))
		require.NoError(t, err)
		require.Equal(t, 128, img.Bounds().Dx())
		require.Equal(t, tc.Want.RGBA(), img.At(tc.X, tc.Y), "%v at (%d,%d)", tc.TileID, tc.X, tc.Y)
	}
}

func TestWriteXYZ(t *testing.T) {
	w, err := xyz.NewWriter(t.TempDir())
	require.NoError(t, err)

	n, err := pyramid.Write(w, internal.Fill(t, 2, 0, 0, 128, grass))
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.NoError(t, w.Finalize())
}

func TestWriteErrors(t *testing.T) {
	var w memWriter
	_, err := pyramid.Write(&w, mapitem.NewBounded(mapitem.Rect{}, 0))
	require.Error(t, err)

	_, err = pyramid.Write(&w, internal.Fill(t, 0, 0, 0, 4, grass), pyramid.WithTileSize(0))
	require.Error(t, err)
	require.Empty(t, w.order)
}

func TestWriteLevelLimit(t *testing.T) {
	var w memWriter
	n, err := pyramid.Write(&w, internal.NewTile(t, 10, 0, 0, 64, 1, slices.Repeat([]mapitem.ColorID{grass}, 64)...), pyramid.WithTileSize(1))
	require.NoError(t, err)
	require.Equal(t, 64+32+16+8+4+2+1, n)

	w = memWriter{}
	_, err = pyramid.Write(&w, internal.NewTile(t, 11, 0, 0, 64, 1, slices.Repeat([]mapitem.ColorID{grass}, 64)...), pyramid.WithTileSize(1))
	require.ErrorIs(t, err, pyramid.ErrTooManyLevels)
	require.Empty(t, w.order)
}
