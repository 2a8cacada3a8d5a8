// Package tile holds the pyramid tile coordinates and the interface the
// pyramid writers implement.
package tile

import "fmt"

// ID is a tile position in the XYZ scheme: zoom Z has 1<<Z tiles per side
// and Y grows southwards.
type ID struct {
	X uint32
	Y uint32
	Z uint32
}

func (t ID) Valid() bool {
	return t.Z < 32 && t.X < (1<<t.Z) && t.Y < (1<<t.Z)
}

// String formats the ID as "z/x/y".
func (t ID) String() string {
	return fmt.Sprintf("%d/%d/%d", t.Z, t.X, t.Y)
}

// Writer stores encoded tiles of a pyramid.
type Writer interface {
	WriteTile(tileID ID, tileData []byte) error

	// Finalize flushes whatever the storage needs after the last tile. No
	// tile may be written afterwards.
	Finalize() error
}
