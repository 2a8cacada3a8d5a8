package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/eak1mov/go-mapcombine/mapitem"
	"github.com/google/subcommands"
)

type infoCmd struct {
	inputFlags
	dimension string
	at        string
}

func (c *infoCmd) Name() string     { return "info" }
func (c *infoCmd) Synopsis() string { return "list map items, optionally those covering a position" }
func (c *infoCmd) Usage() string {
	return "mapcombine info -i <dir> [-d <dimension> -at <x,z> -raw]\n"
}
func (c *infoCmd) SetFlags(f *flag.FlagSet) {
	c.inputFlags.SetFlags(f)
	f.StringVar(&c.dimension, "d", "", "Only list this dimension (overworld, nether, end)")
	f.StringVar(&c.at, "at", "", "Only list map items covering the world position x,z")
}

// filter reports whether a tile should be listed.
func (c *infoCmd) filter() (func(t *mapitem.Tile) bool, error) {
	match := func(t *mapitem.Tile) bool { return true }

	if c.dimension != "" {
		dimension, err := mapitem.ParseDimension(c.dimension)
		if err != nil {
			return nil, err
		}
		prev := match
		match = func(t *mapitem.Tile) bool { return prev(t) && t.Dimension() == dimension }
	}

	if c.at != "" {
		x, z, err := parsePoint(c.at)
		if err != nil {
			return nil, err
		}
		prev := match
		match = func(t *mapitem.Tile) bool { return prev(t) && t.Rect().Contains(x, z) }
	}

	return match, nil
}

func (c *infoCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	match, err := c.filter()
	if err != nil {
		log.Println(err)
		return subcommands.ExitUsageError
	}

	reader, err := c.reader()
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	names, err := reader.Names()
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	logger := c.logger()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDIMENSION\tSCALE\tSIZE\tAREA\tEXPLORED\tMODIFIED")
	listed := 0
	for _, name := range names {
		file, err := reader.ReadFile(name)
		if err != nil {
			log.Println("file skipped:", err)
			continue
		}
		t, err := mapitem.Load(file.Data, c.compression(), file.ModTime)
		if err != nil {
			log.Printf("file skipped: %s: %v", name, err)
			continue
		}
		if !t.Valid() {
			logger.Debug("mapcombine: invalid map item", "name", name, "tile", t.String())
			continue
		}
		if !match(t) {
			continue
		}
		fmt.Fprintf(w, "%s\t%v\t%d\t%dx%d\t%v\t%d\t%s\n",
			name, t.Dimension(), t.Scale(), t.Width(), t.Height(), t.Rect(), t.Explored(),
			t.LastModified().Format("2006-01-02 15:04:05"))
		listed++
	}
	if err := w.Flush(); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	fmt.Printf("%d of %d files listed\n", listed, len(names))
	return subcommands.ExitSuccess
}
