package textstyle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/memestyle/pkg/errors"
)

// Document keys.
const (
	keyText          = "text"
	keyUppercase     = "uppercase"
	keyRect          = "rect"
	keyOffset        = "offset"
	keyFontSize      = "fontSize"
	keyFontName      = "fontName"
	keyTextColor     = "textColorRGB"
	keyOutlineColor  = "outColorRGB"
	keyAlignment     = "alignment"
	keyStrokeWidth   = "strokeWidth"
	keyOpacity       = "opacity"
	keyShadowEnabled = "shadowEnabled"
	keyShadow3D      = "shadow3D"
)

// document is the persisted form of a TextStyle.
type document struct {
	Text          string  `json:"text"`
	Uppercase     bool    `json:"uppercase"`
	Rect          string  `json:"rect"`
	Offset        string  `json:"offset"`
	FontSize      float64 `json:"fontSize"`
	FontName      string  `json:"fontName"`
	TextColorRGB  RGB     `json:"textColorRGB"`
	OutColorRGB   RGB     `json:"outColorRGB"`
	Alignment     int     `json:"alignment"`
	StrokeWidth   float64 `json:"strokeWidth"`
	Opacity       float64 `json:"opacity"`
	ShadowEnabled bool    `json:"shadowEnabled"`
	Shadow3D      bool    `json:"shadow3D"`
}

// MarshalDocument encodes s as an indented style document.
func (s *TextStyle) MarshalDocument() ([]byte, error) {
	return json.MarshalIndent(s.toDocument(), "", "  ")
}

// MarshalJSON encodes the style in document form. The value receiver lets
// both TextStyle and *TextStyle marshal this way.
func (s TextStyle) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.toDocument())
}

// UnmarshalJSON decodes a style document into s. On error s is unchanged.
func (s *TextStyle) UnmarshalJSON(data []byte) error {
	decoded, err := decodeDocument(data)
	if err != nil {
		return err
	}
	*s = *decoded
	return nil
}

// UnmarshalDocument decodes a style document. Every key is required except
// the two color objects, which keep their defaults when absent.
func UnmarshalDocument(data []byte) (*TextStyle, error) {
	s, err := decodeDocument(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "invalid style document")
	}
	return s, nil
}

func (s *TextStyle) toDocument() document {
	return document{
		Text:          s.Text,
		Uppercase:     s.Uppercase,
		Rect:          FormatRect(s.Rect),
		Offset:        FormatPoint(s.Offset),
		FontSize:      s.fontSize,
		FontName:      s.FontName,
		TextColorRGB:  s.textColor,
		OutColorRGB:   s.outlineColor,
		Alignment:     s.alignment.StorageCode(),
		StrokeWidth:   s.StrokeWidth,
		Opacity:       s.opacity,
		ShadowEnabled: s.ShadowEnabled,
		Shadow3D:      s.Shadow3D,
	}
}

func decodeDocument(data []byte) (*TextStyle, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("document is null")
	}

	r := fieldReader{raw: raw}
	s := New()

	s.Text = r.str(keyText)
	s.Uppercase = r.boolean(keyUppercase)
	s.Rect = r.rect(keyRect)
	s.Offset = r.point(keyOffset)
	size := r.number(keyFontSize)
	s.FontName = r.str(keyFontName)
	if c, ok := r.color(keyTextColor); ok {
		s.SetTextColor(c)
	}
	if c, ok := r.color(keyOutlineColor); ok {
		s.SetOutlineColor(c)
	}
	s.alignment = AlignmentFromStorageCode(r.alignmentCode(keyAlignment))
	s.StrokeWidth = r.number(keyStrokeWidth)
	s.SetOpacity(r.number(keyOpacity))
	s.ShadowEnabled = r.boolean(keyShadowEnabled)
	s.Shadow3D = r.boolean(keyShadow3D)

	if r.err != nil {
		return nil, r.err
	}
	if err := s.SetFontSize(size); err != nil {
		return nil, &errors.FieldError{Field: keyFontSize, Reason: errors.UserMessage(err)}
	}
	return s, nil
}

// fieldReader pulls typed values out of a raw document, keeping the
// first error it hits. Later reads after an error return zero values.
type fieldReader struct {
	raw map[string]json.RawMessage
	err error
}

func (r *fieldReader) fail(key, reason string) {
	if r.err == nil {
		r.err = &errors.FieldError{Field: key, Reason: reason}
	}
}

func (r *fieldReader) decode(key, want string, v any) bool {
	if r.err != nil {
		return false
	}
	msg, ok := r.raw[key]
	if !ok {
		r.fail(key, "missing")
		return false
	}
	if bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
		r.fail(key, "expected "+want+", got null")
		return false
	}
	if err := json.Unmarshal(msg, v); err != nil {
		r.fail(key, "expected "+want)
		return false
	}
	return true
}

func (r *fieldReader) str(key string) string {
	var v string
	r.decode(key, "string", &v)
	return v
}

func (r *fieldReader) boolean(key string) bool {
	var v bool
	r.decode(key, "bool", &v)
	return v
}

func (r *fieldReader) number(key string) float64 {
	var v float64
	r.decode(key, "number", &v)
	return v
}

// alignmentCode reads an integral storage alignment code. Integers outside
// the table come back as -1, which decodes to center.
func (r *fieldReader) alignmentCode(key string) int {
	v := r.number(key)
	if r.err != nil {
		return -1
	}
	if v != math.Trunc(v) {
		r.fail(key, "expected integer")
		return -1
	}
	if v < 0 || v >= float64(len(storageAlignments)) {
		return -1
	}
	return int(v)
}

func (r *fieldReader) rect(key string) Rect {
	s := r.str(key)
	if r.err != nil {
		return Rect{}
	}
	v, err := ParseRect(s)
	if err != nil {
		r.fail(key, err.Error())
	}
	return v
}

func (r *fieldReader) point(key string) Point {
	s := r.str(key)
	if r.err != nil {
		return Point{}
	}
	v, err := ParsePoint(s)
	if err != nil {
		r.fail(key, err.Error())
	}
	return v
}

// color reads an optional color object. A missing key or a value that is
// not an object leaves the default; an object with bad components fails.
func (r *fieldReader) color(key string) (RGB, bool) {
	if r.err != nil {
		return RGB{}, false
	}
	msg, ok := r.raw[key]
	if !ok {
		return RGB{}, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(msg, &obj); err != nil || obj == nil {
		return RGB{}, false
	}
	sub := fieldReader{raw: obj}
	c := RGB{
		Red:   sub.number("red"),
		Green: sub.number("green"),
		Blue:  sub.number("blue"),
	}
	if sub.err != nil {
		r.fail(key, sub.err.Error())
		return RGB{}, false
	}
	return c, true
}

// FormatRect renders r as "{{x, y}, {w, h}}".
func FormatRect(r Rect) string {
	return fmt.Sprintf("{{%s, %s}, {%s, %s}}", ftoa(r.X), ftoa(r.Y), ftoa(r.W), ftoa(r.H))
}

// FormatPoint renders p as "{x, y}".
func FormatPoint(p Point) string {
	return fmt.Sprintf("{%s, %s}", ftoa(p.X), ftoa(p.Y))
}

// ParseRect accepts "{{x, y}, {w, h}}" or "x,y,w,h".
func ParseRect(s string) (Rect, error) {
	v, err := parseNumbers(s, 4)
	if err != nil {
		return Rect{}, fmt.Errorf("invalid rect %q: %w", s, err)
	}
	return Rect{X: v[0], Y: v[1], W: v[2], H: v[3]}, nil
}

// ParsePoint accepts "{x, y}" or "x,y".
func ParsePoint(s string) (Point, error) {
	v, err := parseNumbers(s, 2)
	if err != nil {
		return Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return Point{X: v[0], Y: v[1]}, nil
}

func parseNumbers(s string, n int) ([]float64, error) {
	cleaned := strings.NewReplacer("{", "", "}", "").Replace(s)
	parts := strings.Split(cleaned, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d numbers, got %d", n, len(parts))
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("bad number %q", strings.TrimSpace(p))
		}
		out[i] = v
	}
	return out, nil
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
