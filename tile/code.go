package tile

import "github.com/google/hilbert"

// Code returns the position of the tile in a pyramid-wide Hilbert ordering:
// all tiles of lower zoom levels come first, then tiles of zoom Z along the
// Hilbert curve. Neighbouring codes within a level are neighbouring tiles.
func (t ID) Code() uint64 {
	h, _ := hilbert.NewHilbert(1 << t.Z)
	code, _ := h.MapInverse(int(t.X), int(t.Y))

	tilesBefore := (1<<(t.Z*2) - 1) / 3
	return uint64(code + tilesBefore)
}
