package mapitem

import (
	"errors"
	"fmt"
	"strings"
)

// Dimension identifies the world a map item was drawn in.
type Dimension int8

const (
	Overworld Dimension = 0
	Nether    Dimension = -1
	End       Dimension = 1
)

var ErrUnknownDimension = errors.New("mapcombine: unknown dimension")

// ParseDimension maps a user-facing dimension name to its value.
func ParseDimension(name string) (Dimension, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "overworld":
		return Overworld, nil
	case "nether":
		return Nether, nil
	case "end", "the_end", "the end":
		return End, nil
	}
	return 0, fmt.Errorf("%w: %q (use overworld, nether or end)", ErrUnknownDimension, name)
}

func (d Dimension) String() string {
	switch d {
	case Overworld:
		return "overworld"
	case Nether:
		return "nether"
	case End:
		return "end"
	}
	return fmt.Sprintf("dimension(%d)", int8(d))
}
