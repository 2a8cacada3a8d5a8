package mapitem

import "image/color"

// ColorID is a map pixel: a base color index in the upper six bits and a
// shade index in the lower two bits. Zero marks an unexplored pixel.
type ColorID byte

const Unexplored ColorID = 0

func MakeColorID(baseColorID, shadeID int) ColorID {
	return ColorID(baseColorID<<2 | shadeID&0x3)
}

func (c ColorID) BaseColorID() int { return int(c >> 2) }
func (c ColorID) ShadeID() int     { return int(c & 0x3) }
func (c ColorID) Explored() bool   { return c != Unexplored }

var shadeValues = [4]int{180, 220, 255, 135}

// ShadeValue returns the brightness multiplier (out of 255) of a shade index.
func ShadeValue(shadeID int) int {
	return shadeValues[shadeID&0x3]
}

// ShadeIDFromValue quantizes a brightness multiplier into the nearest shade.
func ShadeIDFromValue(value int) int {
	switch {
	case value > 235:
		return 2
	case value > 200:
		return 1
	case value > 155:
		return 0
	default:
		return 3
	}
}

// NumBaseColors is the number of entries in the base color palette.
const NumBaseColors = len(baseColors)

var baseColors = [...]color.RGBA{
	{127, 127, 127, 255},
	{127, 178, 56, 255},
	{247, 233, 163, 255},
	{167, 167, 167, 255},
	{255, 0, 0, 255},
	{160, 160, 255, 255},
	{167, 167, 167, 255},
	{0, 124, 0, 255},
	{255, 255, 255, 255},
	{164, 168, 184, 255},
	{183, 106, 47, 255},
	{112, 112, 112, 255},
	{64, 64, 255, 255},
	{104, 83, 50, 255},
	{255, 252, 245, 255},
	{216, 127, 51, 255},
	{178, 76, 216, 255},
	{102, 153, 216, 255},
	{229, 229, 51, 255},
	{127, 204, 25, 255},
	{242, 127, 165, 255},
	{76, 76, 76, 255},
	{153, 153, 153, 255},
	{76, 127, 153, 255},
	{127, 63, 178, 255},
	{51, 76, 178, 255},
	{102, 76, 51, 255},
	{102, 127, 51, 255},
	{153, 51, 51, 255},
	{25, 25, 25, 255},
	{250, 238, 77, 255},
	{92, 219, 213, 255},
	{74, 128, 255, 255},
	{0, 217, 58, 255},
	{21, 20, 31, 255},
	{112, 2, 0, 255},
}

// BaseColor returns the unshaded palette entry. Indices outside the palette
// map to opaque black.
func BaseColor(index int) color.RGBA {
	if index < 0 || index >= len(baseColors) {
		return color.RGBA{0, 0, 0, 255}
	}
	return baseColors[index]
}

// RGBA returns the rendered color of the pixel: the base color with each
// channel scaled by the shade multiplier.
func (c ColorID) RGBA() color.RGBA {
	base := BaseColor(c.BaseColorID())
	mult := ShadeValue(c.ShadeID())
	shade := func(v uint8) uint8 {
		return uint8(min(int(float64(v)*float64(mult)/255.0+0.5), 255))
	}
	return color.RGBA{shade(base.R), shade(base.G), shade(base.B), 255}
}

// Palette returns the rendered colors of all 256 color IDs, indexed by ID.
func Palette() color.Palette {
	palette := make(color.Palette, 256)
	for i := range palette {
		palette[i] = ColorID(i).RGBA()
	}
	return palette
}
