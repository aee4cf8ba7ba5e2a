package textstyle

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/memestyle/pkg/errors"
)

// RGB is an opaque color with components normalized to [0,1].
// Alpha is never stored; opacity is applied when rendering.
type RGB struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
}

var (
	White = RGB{1, 1, 1}
	Black = RGB{0, 0, 0}
)

// ParseHex parses "#rrggbb" (or "#rgb") into an RGB.
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(expandShortHex(s))
	if err != nil {
		return RGB{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid color %q", s)
	}
	return fromColorful(c), nil
}

// FromColor converts any color.Color, dropping its alpha.
func FromColor(c color.Color) RGB {
	cf, _ := colorful.MakeColor(c)
	return fromColorful(cf)
}

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return c.colorful().Hex()
}

// Clamped returns c with every component limited to [0,1].
// NaN components become 0.
func (c RGB) Clamped() RGB {
	return RGB{clamp01(c.Red), clamp01(c.Green), clamp01(c.Blue)}
}

// NRGBA returns c as a non-premultiplied 8-bit color with the given alpha.
func (c RGB) NRGBA(alpha float64) color.NRGBA {
	r, g, b := c.Clamped().colorful().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(alpha) * 255))}
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: c.Red, G: c.Green, B: c.Blue}
}

func fromColorful(c colorful.Color) RGB {
	return RGB{Red: c.R, Green: c.G, Blue: c.B}
}

func expandShortHex(s string) string {
	if len(s) == 4 && s[0] == '#' {
		return string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	if len(s) == 6 && s[0] != '#' {
		return "#" + s
	}
	return s
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// RGBA is a color with an explicit alpha, used in render attributes.
type RGBA struct {
	RGB
	Alpha float64 `json:"alpha"`
}

// RGBA implements color.Color.
func (c RGBA) RGBA() (r, g, b, a uint32) {
	return c.NRGBA(c.Alpha).RGBA()
}
