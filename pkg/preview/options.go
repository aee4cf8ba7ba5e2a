package preview

import (
	"image"
	"image/color"

	"github.com/matzehuels/memestyle/pkg/fonts"
)

const (
	defaultWidth  = 600
	defaultHeight = 600

	// Outline radius limits: a fraction of the shorter canvas side, and an
	// absolute pixel cap for large canvases.
	maxStrokeFraction = 8
	maxStrokeRadius   = 64
)

var defaultBackground = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	width, height int
	background    image.Image
	bgColor       color.Color
	registry      *fonts.Registry
}

func newRenderer(opts []Option) *renderer {
	r := &renderer{
		width:    defaultWidth,
		height:   defaultHeight,
		bgColor:  defaultBackground,
		registry: fonts.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithSize sets the canvas size used when no background image is given.
func WithSize(width, height int) Option {
	return func(r *renderer) {
		if width > 0 && height > 0 {
			r.width, r.height = width, height
		}
	}
}

// WithBackground draws the text over img; the canvas takes img's size.
func WithBackground(img image.Image) Option {
	return func(r *renderer) { r.background = img }
}

// WithBackgroundColor fills the canvas with c (default mid gray).
func WithBackgroundColor(c color.Color) Option {
	return func(r *renderer) { r.bgColor = c }
}

// WithFonts resolves font families through reg instead of fonts.Default().
func WithFonts(reg *fonts.Registry) Option {
	return func(r *renderer) {
		if reg != nil {
			r.registry = reg
		}
	}
}
