package textstyle

import (
	"strings"

	"github.com/matzehuels/memestyle/pkg/errors"
)

// Compiled defaults.
const (
	DefaultFontSize    = 44.0
	DefaultFontName    = "Impact"
	DefaultStrokeWidth = 2.0
	DefaultOpacity     = 1.0
)

// Point is a 2D position or offset.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// TextStyle is the styling record for one overlay text.
//
// Plain fields can be set directly. Font size, opacity, alignment and
// colors carry invariants and go through setters.
type TextStyle struct {
	Text          string
	Uppercase     bool
	Rect          Rect
	Offset        Point
	FontName      string
	StrokeWidth   float64
	ShadowEnabled bool
	Shadow3D      bool

	fontSize     float64
	opacity      float64
	alignment    Alignment
	textColor    RGB
	outlineColor RGB
}

// New returns a style holding the compiled defaults and empty text.
func New() *TextStyle {
	s := &TextStyle{
		ShadowEnabled: true,
		Shadow3D:      false,
	}
	s.SetDefault()
	return s
}

// SetDefault restores uppercase, offset, font, colors, alignment, stroke
// width and opacity to their defaults. Text, rect and shadow flags are kept.
func (s *TextStyle) SetDefault() {
	s.Uppercase = true
	s.Offset = Point{}
	s.fontSize = DefaultFontSize
	s.FontName = DefaultFontName
	s.textColor = White
	s.outlineColor = Black
	s.alignment = AlignCenter
	s.StrokeWidth = DefaultStrokeWidth
	s.opacity = DefaultOpacity
}

// ResetOffset moves the text back to its rect origin at the default size.
func (s *TextStyle) ResetOffset() {
	s.Offset = Point{}
	s.fontSize = DefaultFontSize
}

// Clone returns an independent copy of s.
func (s *TextStyle) Clone() *TextStyle {
	c := *s
	return &c
}

// DisplayText returns the text as it should be drawn.
func (s *TextStyle) DisplayText() string {
	if s.Uppercase {
		return strings.ToUpper(s.Text)
	}
	return s.Text
}

func (s *TextStyle) FontSize() float64 { return s.fontSize }

// SetFontSize sets the font size; it must be positive.
func (s *TextStyle) SetFontSize(size float64) error {
	if err := errors.ValidateFontSize(size); err != nil {
		return err
	}
	s.fontSize = size
	return nil
}

func (s *TextStyle) Opacity() float64 { return s.opacity }

// SetOpacity sets the opacity, clamped to [0,1].
func (s *TextStyle) SetOpacity(v float64) { s.opacity = clamp01(v) }

func (s *TextStyle) Alignment() Alignment { return s.alignment }

// SetAlignment sets the alignment. Unknown values become AlignCenter.
func (s *TextStyle) SetAlignment(a Alignment) {
	if !a.Valid() {
		a = AlignCenter
	}
	s.alignment = a
}

// AbsAlignment returns the alignment on the user-facing scale
// (0 left, 1 center, 2 right, 3 justify).
func (s *TextStyle) AbsAlignment() int { return s.alignment.UserCode() }

// SetAbsAlignment sets the alignment from a user-facing code.
func (s *TextStyle) SetAbsAlignment(code int) { s.alignment = AlignmentFromUserCode(code) }

func (s *TextStyle) TextColor() RGB    { return s.textColor }
func (s *TextStyle) OutlineColor() RGB { return s.outlineColor }

// SetTextColor sets the fill color; components are clamped to [0,1].
func (s *TextStyle) SetTextColor(c RGB) { s.textColor = c.Clamped() }

// SetOutlineColor sets the stroke and shadow color; components are clamped to [0,1].
func (s *TextStyle) SetOutlineColor(c RGB) { s.outlineColor = c.Clamped() }

// Equal reports whether two styles hold the same values.
func (s *TextStyle) Equal(o *TextStyle) bool {
	if s == nil || o == nil {
		return s == o
	}
	return *s == *o
}
