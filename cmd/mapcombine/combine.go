package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/eak1mov/go-mapcombine/collection"
	"github.com/eak1mov/go-mapcombine/mapitem"
	"github.com/google/subcommands"
)

type combineCmd struct {
	inputFlags
	dimension  string
	scale      int
	outputPath string
	colors     int
}

func (c *combineCmd) Name() string     { return "combine" }
func (c *combineCmd) Synopsis() string { return "combine map items of one dimension into an image" }
func (c *combineCmd) Usage() string {
	return "mapcombine combine -i <dir> [-d <dimension> -s <scale> -o <path> -colors <n> -raw -v]\n"
}
func (c *combineCmd) SetFlags(f *flag.FlagSet) {
	c.inputFlags.SetFlags(f)
	f.StringVar(&c.dimension, "d", "overworld", "Dimension (overworld, nether, end)")
	f.IntVar(&c.scale, "s", 2, "Output scale, one pixel covers 2^scale blocks (0-5)")
	f.StringVar(&c.outputPath, "o", "combined_map.png", "Output image path (.png, .bmp, .tif)")
	f.IntVar(&c.colors, "colors", 0, "Reduce the output palette to this many colors (0 keeps all)")
}

func (c *combineCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	dimension, err := mapitem.ParseDimension(c.dimension)
	if err != nil {
		log.Println(err)
		return subcommands.ExitUsageError
	}
	if err := validateScale(c.scale); err != nil {
		log.Println(err)
		return subcommands.ExitUsageError
	}

	maps, err := c.loadCollection(dimension)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	out, err := maps.Combine(c.scale)
	if errors.Is(err, collection.ErrEmpty) {
		fmt.Printf("No %v maps found. No image was created.\n", dimension)
		return subcommands.ExitSuccess
	}
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	if err := writeImage(c.outputPath, out, c.colors); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Combined %d %v maps into %s (%dx%d, %v)\n",
		maps.Len(), dimension, c.outputPath, out.Width(), out.Height(), out.Rect())
	return subcommands.ExitSuccess
}
