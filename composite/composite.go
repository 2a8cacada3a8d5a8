// Package composite draws one map tile onto another across different scales.
//
// When the source is the coarser tile, each explored source pixel is copied
// to every destination cell it covers. When the destination is coarser, each
// destination cell receives a majority vote over the source cells it covers:
// the most frequent base color wins and the shade is the re-quantized mean of
// the covered shades. Unexplored pixels never overwrite anything and never
// take part in a vote.
package composite

import (
	"errors"

	"github.com/eak1mov/go-mapcombine/mapitem"
)

var ErrInvalidTile = errors.New("mapcombine: cannot composite invalid tile")

// Draw merges the pixels of src into dst where their rectangles overlap.
// Tiles that do not overlap leave dst unchanged.
func Draw(src, dst *mapitem.Tile) error {
	if !src.Valid() || !dst.Valid() {
		return ErrInvalidTile
	}

	overlap := src.Rect().Intersect(dst.Rect())
	if overlap.Empty() {
		return nil
	}

	coarse, fine := src, dst
	if src.Scale() < dst.Scale() {
		coarse, fine = dst, src
	}

	d := drawer{
		coarse: coarse,
		fine:   fine,
		mult:   1 << (coarse.Scale() - fine.Scale()),
	}
	d.coarseX, d.coarseZ = coarse.WorldToGridPoint(overlap.BeginX, overlap.BeginZ)
	d.fineX, d.fineZ = fine.WorldToGridPoint(overlap.BeginX, overlap.BeginZ)
	endX, endZ := coarse.WorldToGridPoint(overlap.EndX, overlap.EndZ)

	for z := range endZ - d.coarseZ {
		for x := range endX - d.coarseX {
			var err error
			if coarse == src {
				err = d.broadcast(x, z)
			} else {
				err = d.vote(x, z)
			}
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// drawer holds the overlap origin in both grids. Coarse cell (coarseX+x,
// coarseZ+z) corresponds to the mult x mult block of fine cells starting at
// (fineX+x*mult, fineZ+z*mult).
type drawer struct {
	coarse, fine     *mapitem.Tile
	mult             int
	coarseX, coarseZ int
	fineX, fineZ     int
}

func (d *drawer) broadcast(x, z int) error {
	pixel, err := d.coarse.Pixel(d.coarseX+x, d.coarseZ+z)
	if err != nil {
		return err
	}
	if !pixel.Explored() {
		return nil
	}
	for subZ := range d.mult {
		for subX := range d.mult {
			fx, fz := d.fineX+x*d.mult+subX, d.fineZ+z*d.mult+subZ
			if !d.fine.Contains(fx, fz) {
				continue
			}
			if err := d.fine.SetPixel(fx, fz, pixel); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *drawer) vote(x, z int) error {
	var b ballot
	for subZ := range d.mult {
		for subX := range d.mult {
			fx, fz := d.fineX+x*d.mult+subX, d.fineZ+z*d.mult+subZ
			if !d.fine.Contains(fx, fz) {
				continue
			}
			pixel, err := d.fine.Pixel(fx, fz)
			if err != nil {
				return err
			}
			b.count(pixel)
		}
	}

	pixel := b.result()
	if !pixel.Explored() {
		return nil
	}
	return d.coarse.SetPixel(d.coarseX+x, d.coarseZ+z, pixel)
}

// ballot tallies base colors and shades of explored pixels.
type ballot struct {
	counts   [64]int
	shadeSum int
	n        int
}

func (b *ballot) count(c mapitem.ColorID) {
	if !c.Explored() {
		return
	}
	b.counts[c.BaseColorID()]++
	b.shadeSum += mapitem.ShadeValue(c.ShadeID())
	b.n++
}

// result returns the winning color, or Unexplored when nothing was counted.
// Ties go to the lowest base color index.
func (b *ballot) result() mapitem.ColorID {
	if b.n == 0 {
		return mapitem.Unexplored
	}
	best, bestCount := 0, 0
	for i, count := range b.counts {
		if count > bestCount {
			best, bestCount = i, count
		}
	}
	return mapitem.MakeColorID(best, mapitem.ShadeIDFromValue(b.shadeSum/b.n))
}
