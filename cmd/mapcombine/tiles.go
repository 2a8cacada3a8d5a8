package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"strings"

	"github.com/eak1mov/go-mapcombine/collection"
	"github.com/eak1mov/go-mapcombine/mapitem"
	"github.com/eak1mov/go-mapcombine/mb"
	"github.com/eak1mov/go-mapcombine/pyramid"
	"github.com/eak1mov/go-mapcombine/tile"
	"github.com/eak1mov/go-mapcombine/xyz"
	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
)

type tilesCmd struct {
	inputFlags
	dimension    string
	scale        int
	outputFormat string
	outputPath   string
	tileSize     int
}

func (c *tilesCmd) Name() string     { return "tiles" }
func (c *tilesCmd) Synopsis() string { return "combine map items and export them as a tile pyramid" }
func (c *tilesCmd) Usage() string {
	return "mapcombine tiles -i <dir> -o <path> [-d <dimension> -s <scale> -of <format> -ts <size> -raw -v]\n"
}
func (c *tilesCmd) SetFlags(f *flag.FlagSet) {
	c.inputFlags.SetFlags(f)
	f.StringVar(&c.dimension, "d", "overworld", "Dimension (overworld, nether, end)")
	f.IntVar(&c.scale, "s", 0, "Scale of the deepest zoom level (0-5)")
	f.StringVar(&c.outputPath, "o", "", "Output path")
	f.StringVar(&c.outputFormat, "of", "", "Output format (mbtiles, xyz)")
	f.IntVar(&c.tileSize, "ts", pyramid.DefaultTileSize, "Tile size in pixels")
}

func deduceFormat(format, filePath string) string {
	if format == "" && strings.HasSuffix(filePath, ".mbtiles") {
		return "mbtiles"
	}
	return format
}

// progressWriter counts written tiles on a progress bar.
type progressWriter struct {
	tile.Writer
	bar *progressbar.ProgressBar
}

func (w progressWriter) WriteTile(tileID tile.ID, tileData []byte) error {
	err := w.Writer.WriteTile(tileID, tileData)
	w.bar.Add(1)
	return err
}

// newWriter opens the output tile storage.
func (c *tilesCmd) newWriter(dimension mapitem.Dimension, logger *slog.Logger) (tile.Writer, error) {
	switch format := deduceFormat(c.outputFormat, c.outputPath); format {
	case "mbtiles":
		return mb.NewWriter(
			c.outputPath,
			mb.WithMetadata(map[string]string{"name": fmt.Sprintf("mapcombine %v", dimension)}),
			mb.WithLogger(logger),
		)
	case "xyz", "":
		return xyz.NewWriter(c.outputPath)
	default:
		return nil, fmt.Errorf("invalid output format: %q", format)
	}
}

// export writes the pyramid of out and returns the number of tiles written.
// Nothing is created when out has no explored pixel.
func (c *tilesCmd) export(out *mapitem.Tile, dimension mapitem.Dimension, logger *slog.Logger) (int, error) {
	if out.Explored() == 0 {
		return 0, nil
	}

	writer, err := c.newWriter(dimension, logger)
	if err != nil {
		return 0, err
	}
	if closer, ok := writer.(io.Closer); ok {
		defer closer.Close()
	}

	bar := progressbar.NewOptions(-1, progressbar.OptionSetDescription("tiles"), progressbar.OptionShowIts(), progressbar.OptionShowCount())
	n, err := pyramid.Write(progressWriter{Writer: writer, bar: bar},
		out,
		pyramid.WithTileSize(c.tileSize),
		pyramid.WithLogger(logger),
	)
	bar.Finish()
	fmt.Println()
	if err != nil {
		return n, err
	}

	return n, writer.Finalize()
}

func (c *tilesCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	dimension, err := mapitem.ParseDimension(c.dimension)
	if err != nil {
		log.Println(err)
		return subcommands.ExitUsageError
	}
	if err := validateScale(c.scale); err != nil {
		log.Println(err)
		return subcommands.ExitUsageError
	}
	if c.outputPath == "" {
		log.Println("output path is required (-o)")
		return subcommands.ExitUsageError
	}
	switch deduceFormat(c.outputFormat, c.outputPath) {
	case "mbtiles", "xyz", "":
	default:
		log.Printf("invalid output format: %q", c.outputFormat)
		return subcommands.ExitUsageError
	}

	logger := c.logger()

	maps, err := c.loadCollection(dimension)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	out, err := maps.Combine(c.scale)
	if errors.Is(err, collection.ErrEmpty) {
		fmt.Printf("No %v maps found. No tiles were created.\n", dimension)
		return subcommands.ExitSuccess
	}
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	n, err := c.export(out, dimension, logger)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if n == 0 {
		fmt.Printf("No explored %v map pixels. No tiles were created.\n", dimension)
		return subcommands.ExitSuccess
	}

	fmt.Printf("Wrote %d tiles, zoom 0-%d, to %s\n", n, pyramid.MaxZoom(out, c.tileSize), c.outputPath)
	return subcommands.ExitSuccess
}
