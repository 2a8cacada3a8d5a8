package xyz_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/eak1mov/go-mapcombine/tile"
	"github.com/eak1mov/go-mapcombine/xyz"
	"github.com/google/go-cmp/cmp"
)

func TestWriter(t *testing.T) {
	rootDir := t.TempDir()
	pattern := filepath.Join(rootDir, "{z}", "{x}", "{y}.png")

	tiles := map[tile.ID][]byte{
		{X: 0, Y: 0, Z: 0}: []byte("tile000"),
		{X: 1, Y: 1, Z: 1}: []byte("tile111"),
		{X: 6, Y: 5, Z: 6}: []byte("tile656"),
	}

	writer, err := xyz.NewWriter(pattern)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	for tileID, tileData := range tiles {
		if err := writer.WriteTile(tileID, tileData); err != nil {
			t.Errorf("WriteTile(%v) failed: %v", tileID, err)
		}
	}

	if err := writer.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	if got, want := writer.Path(tile.ID{X: 6, Y: 5, Z: 6}), filepath.Join(rootDir, "6", "6", "5.png"); got != want {
		t.Errorf("Path = %v, want = %v", got, want)
	}

	for tileID, tileData := range tiles {
		data, err := os.ReadFile(writer.Path(tileID))
		if err != nil {
			t.Errorf("ReadFile(%v) failed: %v", tileID, err)
			continue
		}
		if !cmp.Equal(data, tileData) {
			t.Errorf("tile data mismatch for %v", tileID)
		}
	}
}

func TestWriterDirectory(t *testing.T) {
	rootDir := t.TempDir()

	writer, err := xyz.NewWriter(rootDir)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	if got, want := writer.Path(tile.ID{X: 1, Y: 0, Z: 1}), filepath.Join(rootDir, "1", "1", "0.png"); got != want {
		t.Errorf("Path = %v, want = %v", got, want)
	}
	if err := writer.Finalize(); err == nil {
		t.Errorf("Finalize without tiles succeeded")
	}
}

func TestWriterErrors(t *testing.T) {
	if _, err := xyz.NewWriter("/tmp/{z}/{x}.png"); !errors.Is(err, xyz.ErrInvalidPattern) {
		t.Errorf("NewWriter error = %v, want = %v", err, xyz.ErrInvalidPattern)
	}

	writer, err := xyz.NewWriter(t.TempDir())
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	if err := writer.WriteTile(tile.ID{X: 2, Y: 0, Z: 1}, nil); err == nil {
		t.Errorf("WriteTile(invalid) succeeded")
	}
}
