package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"strings"

	"github.com/eak1mov/go-mapcombine/collection"
	"github.com/eak1mov/go-mapcombine/mapdir"
	"github.com/eak1mov/go-mapcombine/mapitem"
	"github.com/eak1mov/go-mapcombine/mapitem/tags"
	"github.com/schollz/progressbar/v3"
)

const maxOutputScale = 5

// inputFlags are shared by the commands reading a map item directory.
type inputFlags struct {
	inputPath string
	raw       bool
	verbose   bool
}

func (f *inputFlags) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&f.inputPath, "i", "", "Directory with map item files (map_*.dat)")
	fs.BoolVar(&f.raw, "raw", false, "Map item files are not gzip-compressed")
	fs.BoolVar(&f.verbose, "v", false, "Verbose logging")
}

func (f *inputFlags) compression() tags.Compression {
	if f.raw {
		return tags.CompressionNone
	}
	return tags.CompressionGzip
}

func (f *inputFlags) logger() *slog.Logger {
	if f.verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	return slog.Default()
}

func (f *inputFlags) reader() (*mapdir.Reader, error) {
	if f.inputPath == "" {
		return nil, fmt.Errorf("input directory is required (-i)")
	}
	return mapdir.NewReader(f.inputPath)
}

// loadCollection reads every map item file of the input directory into a
// collection for dimension. Unreadable files are reported and skipped.
func (f *inputFlags) loadCollection(dimension mapitem.Dimension) (*collection.Collection, error) {
	reader, err := f.reader()
	if err != nil {
		return nil, err
	}
	names, err := reader.Names()
	if err != nil {
		return nil, err
	}

	c := collection.New(dimension,
		collection.WithCompression(f.compression()),
		collection.WithLogger(f.logger()),
	)

	bar := progressbar.NewOptions(len(names), progressbar.OptionSetDescription("loading"), progressbar.OptionShowCount())
	for _, name := range names {
		file, err := reader.ReadFile(name)
		if err == nil {
			err = c.Load(name, file.Data, file.ModTime)
		}
		if err != nil {
			bar.Clear()
			log.Println("file skipped:", err)
		}
		bar.Add(1)
	}
	bar.Finish()
	fmt.Println()

	return c, nil
}

func validateScale(scale int) error {
	if scale < 0 || scale > maxOutputScale {
		return fmt.Errorf("invalid scale %d (use 0 to %d)", scale, maxOutputScale)
	}
	return nil
}

// parsePoint parses a world position given as "x,z".
func parsePoint(value string) (int, int, error) {
	var x, z int
	if _, err := fmt.Sscanf(strings.ReplaceAll(value, " ", ""), "%d,%d", &x, &z); err != nil {
		return 0, 0, fmt.Errorf("invalid position %q (use x,z): %w", value, err)
	}
	return x, z, nil
}
