package img2adofai

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// RGB represents a color in the RGB color space with 8-bit channels,
// where each channel ranges from 0 to 255. Level files only carry RGB;
// alpha is dropped before a color reaches an event.
type RGB struct {
	R, G, B uint8
}

// rgbFromRGBA drops the alpha channel of a straight (non-premultiplied)
// color.
func rgbFromRGBA(c color.RGBA) RGB {
	return RGB{R: c.R, G: c.G, B: c.B}
}

// toUint32 converts an RGB color to a 32-bit unsigned integer
func (r RGB) toUint32() uint32 {
	return uint32(r.R)<<16 | uint32(r.G)<<8 | uint32(r.B)
}

// rgbFromUint32 converts a 32-bit unsigned integer to an RGB color
func rgbFromUint32(color uint32) RGB {
	return RGB{
		R: uint8(color >> 16),
		G: uint8(color >> 8),
		B: uint8(color),
	}
}

// Hex renders the color the way ADOFAI stores track colors: six
// lowercase hex digits without a leading '#'.
func (r RGB) Hex() string {
	return fmt.Sprintf("%02x%02x%02x", r.R, r.G, r.B)
}

// ParseHex parses a track color. Both "rrggbb" and "rrggbbaa" are
// accepted, with or without a leading '#'; the alpha byte is ignored.
func ParseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 && len(s) != 8 {
		return RGB{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(s[:6], 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return rgbFromUint32(uint32(v)), nil
}

// ToColor converts to an opaque color.RGBA.
func (r RGB) ToColor() color.RGBA {
	return color.RGBA{R: r.R, G: r.G, B: r.B, A: 255}
}

// colorDistance calculates the Euclidean distance between two RGB colors
// in the RGB color space. The function returns the distance as a floating-
// point number.
func (r RGB) colorDistance(other RGB) float64 {
	dr := int(r.R) - int(other.R)
	dg := int(r.G) - int(other.G)
	db := int(r.B) - int(other.B)
	return math.Sqrt(float64(dr*dr + dg*dg + db*db))
}
