package xyz

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/eak1mov/go-mapcombine/tile"
)

// Writer implements tile.Writer interface for tiles in XYZ format.
type Writer struct {
	filePattern string
	written     int
}

// NewWriter creates a new Writer for the given file pattern (e.g.
// "/home/user/tiles/{z}/{x}/{y}.png"). A pattern without placeholders is
// treated as a directory and DefaultPattern is appended to it.
func NewWriter(filePattern string) (*Writer, error) {
	if !strings.Contains(filePattern, "{") {
		filePattern = filepath.Join(filePattern, DefaultPattern)
	}
	if err := validatePattern(filePattern); err != nil {
		return nil, err
	}
	return &Writer{filePattern: filePattern}, nil
}

// Path returns the file path of the given tile.
func (w *Writer) Path(tileID tile.ID) string {
	return formatPattern(w.filePattern, tileID)
}

func (w *Writer) WriteTile(tileID tile.ID, tileData []byte) error {
	if !tileID.Valid() {
		return fmt.Errorf("mapcombine: invalid tile %v", tileID)
	}

	filePath := w.Path(tileID)
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(filePath, tileData, 0644); err != nil {
		return err
	}
	w.written++
	return nil
}

// Finalize reports an error when no tile was written.
func (w *Writer) Finalize() error {
	if w.written == 0 {
		return fmt.Errorf("mapcombine: no tiles written to %s", w.filePattern)
	}
	return nil
}
