package textstyle

import (
	"context"
	stderrors "errors"
	"math"
	"testing"

	"github.com/matzehuels/memestyle/pkg/errors"
)

// mapStore is an in-memory Store for tests.
type mapStore struct {
	docs    map[string][]byte
	getErr  error
	setErr  error
	setKeys []string
}

func newMapStore() *mapStore { return &mapStore{docs: map[string][]byte{}} }

func (m *mapStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	data, ok := m.docs[key]
	return data, ok, nil
}

func (m *mapStore) Set(_ context.Context, key string, data []byte) error {
	m.setKeys = append(m.setKeys, key)
	if m.setErr != nil {
		return m.setErr
	}
	m.docs[key] = append([]byte(nil), data...)
	return nil
}

func assertDefaults(t *testing.T, s *TextStyle) {
	t.Helper()
	want := New()
	if !s.Equal(want) {
		t.Errorf("style = %+v, want defaults %+v", *s, *want)
	}
}

func TestNewDefaults(t *testing.T) {
	s := New()

	if s.Text != "" {
		t.Errorf("Text = %q, want empty", s.Text)
	}
	if !s.Uppercase {
		t.Error("Uppercase = false, want true")
	}
	if s.Rect != (Rect{}) || s.Offset != (Point{}) {
		t.Errorf("Rect/Offset = %v/%v, want zero", s.Rect, s.Offset)
	}
	if s.FontSize() != 44 {
		t.Errorf("FontSize() = %v, want 44", s.FontSize())
	}
	if s.FontName != "Impact" {
		t.Errorf("FontName = %q, want Impact", s.FontName)
	}
	if s.TextColor() != White {
		t.Errorf("TextColor() = %v, want white", s.TextColor())
	}
	if s.OutlineColor() != Black {
		t.Errorf("OutlineColor() = %v, want black", s.OutlineColor())
	}
	if s.Alignment() != AlignCenter {
		t.Errorf("Alignment() = %v, want center", s.Alignment())
	}
	if s.StrokeWidth != 2 {
		t.Errorf("StrokeWidth = %v, want 2", s.StrokeWidth)
	}
	if s.Opacity() != 1 {
		t.Errorf("Opacity() = %v, want 1", s.Opacity())
	}
	if !s.ShadowEnabled || s.Shadow3D {
		t.Errorf("ShadowEnabled/Shadow3D = %v/%v, want true/false", s.ShadowEnabled, s.Shadow3D)
	}
}

// custom returns a style with every field away from its default.
func custom() *TextStyle {
	s := New()
	s.Text = "such style"
	s.Uppercase = false
	s.Rect = Rect{X: 10, Y: 20, W: 300, H: 80.5}
	s.Offset = Point{X: -3, Y: 7.25}
	_ = s.SetFontSize(31)
	s.FontName = "Helvetica"
	s.SetTextColor(RGB{0.2, 0.4, 0.6})
	s.SetOutlineColor(RGB{0.9, 0.1, 0.3})
	s.SetAlignment(AlignJustify)
	s.StrokeWidth = 3.5
	s.SetOpacity(0.75)
	s.ShadowEnabled = false
	s.Shadow3D = true
	return s
}

func TestResetOffset(t *testing.T) {
	s := custom()
	before := s.Clone()

	s.ResetOffset()

	if s.Offset != (Point{}) {
		t.Errorf("Offset = %v, want zero", s.Offset)
	}
	if s.FontSize() != DefaultFontSize {
		t.Errorf("FontSize() = %v, want %v", s.FontSize(), DefaultFontSize)
	}

	// Everything else is untouched.
	before.Offset = Point{}
	_ = before.SetFontSize(DefaultFontSize)
	if !s.Equal(before) {
		t.Errorf("ResetOffset changed other fields: %+v, want %+v", *s, *before)
	}
}

func TestSetDefault(t *testing.T) {
	s := custom()
	s.SetDefault()

	want := New()
	want.Text = "such style"
	want.Rect = Rect{X: 10, Y: 20, W: 300, H: 80.5}
	want.ShadowEnabled = false
	want.Shadow3D = true

	if !s.Equal(want) {
		t.Errorf("SetDefault() = %+v, want %+v", *s, *want)
	}
}

func TestSetFontSize(t *testing.T) {
	s := New()
	for _, bad := range []float64{0, -1, math.NaN()} {
		err := s.SetFontSize(bad)
		if !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("SetFontSize(%v) error = %v, want INVALID_INPUT", bad, err)
		}
	}
	if s.FontSize() != DefaultFontSize {
		t.Errorf("FontSize() = %v after rejected sets, want %v", s.FontSize(), DefaultFontSize)
	}
	if err := s.SetFontSize(12.5); err != nil {
		t.Fatalf("SetFontSize(12.5) error: %v", err)
	}
	if s.FontSize() != 12.5 {
		t.Errorf("FontSize() = %v, want 12.5", s.FontSize())
	}
}

func TestSetOpacityClamps(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.5, 0.5},
		{-0.2, 0},
		{1.7, 1},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		s := New()
		s.SetOpacity(tt.in)
		if s.Opacity() != tt.want {
			t.Errorf("SetOpacity(%v): Opacity() = %v, want %v", tt.in, s.Opacity(), tt.want)
		}
	}
}

func TestSetColorsClamp(t *testing.T) {
	s := New()
	s.SetTextColor(RGB{1.5, -0.5, 0.5})
	if got, want := s.TextColor(), (RGB{1, 0, 0.5}); got != want {
		t.Errorf("TextColor() = %v, want %v", got, want)
	}
}

func TestDisplayText(t *testing.T) {
	s := New()
	s.Text = "Top Text"
	if got := s.DisplayText(); got != "TOP TEXT" {
		t.Errorf("DisplayText() = %q, want %q", got, "TOP TEXT")
	}
	s.Uppercase = false
	if got := s.DisplayText(); got != "Top Text" {
		t.Errorf("DisplayText() = %q, want %q", got, "Top Text")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := custom()
	c := s.Clone()
	c.Text = "changed"
	c.SetOpacity(0.1)
	if s.Text != "such style" || s.Opacity() != 0.75 {
		t.Error("mutating a clone changed the original")
	}
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	s, err := Load(context.Background(), newMapStore(), "topAttr")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	assertDefaults(t, s)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newMapStore()

	for _, s := range []*TextStyle{New(), custom()} {
		if err := s.Save(ctx, store, "roundtrip"); err != nil {
			t.Fatalf("Save error: %v", err)
		}
		got, err := Load(ctx, store, "roundtrip")
		if err != nil {
			t.Fatalf("Load error: %v", err)
		}
		if !got.Equal(s) {
			t.Errorf("round trip = %+v, want %+v", *got, *s)
		}
	}
}

func TestLoadParseErrorKeepsDefaults(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed json", `{"text": `},
		{"not an object", `[1, 2, 3]`},
		{"null", `null`},
		{"missing key", `{"text": "hi"}`},
		{"wrong type", validDocWith(`"fontSize": "big"`)},
		{"null field", validDocWith(`"uppercase": null`)},
		{"bad rect", validDocWith(`"rect": "nonsense"`)},
		{"fractional alignment", validDocWith(`"alignment": 1.5`)},
		{"zero font size", validDocWith(`"fontSize": 0`)},
		{"bad color component", validDocWith(`"textColorRGB": {"red": 1, "green": "x", "blue": 0}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMapStore()
			store.docs["topAttr"] = []byte(tt.doc)

			s, err := Load(context.Background(), store, "topAttr")
			if !errors.Is(err, errors.ErrCodeParse) {
				t.Fatalf("Load error = %v, want PARSE_ERROR", err)
			}
			if s == nil {
				t.Fatal("Load returned nil style on parse error")
			}
			assertDefaults(t, s)
		})
	}
}

func TestLoadStorageError(t *testing.T) {
	store := newMapStore()
	store.getErr = stderrors.New("disk on fire")

	s, err := Load(context.Background(), store, "topAttr")
	if !errors.Is(err, errors.ErrCodeStorage) {
		t.Fatalf("Load error = %v, want STORAGE_ERROR", err)
	}
	assertDefaults(t, s)
}

func TestLoadInvalidKey(t *testing.T) {
	_, err := Load(context.Background(), newMapStore(), "../etc/passwd")
	if !errors.Is(err, errors.ErrCodeInvalidKey) {
		t.Errorf("Load error = %v, want INVALID_KEY", err)
	}
}

func TestLoadOrDefault(t *testing.T) {
	store := newMapStore()
	store.docs["topAttr"] = []byte("garbage")

	s := LoadOrDefault(context.Background(), store, "topAttr", nil)
	assertDefaults(t, s)
}

func TestSaveStorageError(t *testing.T) {
	store := newMapStore()
	store.setErr = stderrors.New("read-only")

	err := New().Save(context.Background(), store, "topAttr")
	if !errors.Is(err, errors.ErrCodeStorage) {
		t.Errorf("Save error = %v, want STORAGE_ERROR", err)
	}
}

func TestBuildRenderAttributes(t *testing.T) {
	s := custom()
	s.ShadowEnabled = true

	attr := s.BuildRenderAttributes()

	if attr.Font != (Font{Family: "Helvetica", Size: 31}) {
		t.Errorf("Font = %+v", attr.Font)
	}
	if attr.Foreground.RGB != s.TextColor() || attr.Foreground.Alpha != 0.75 {
		t.Errorf("Foreground = %+v, want text color at opacity 0.75", attr.Foreground)
	}
	if attr.Paragraph.Alignment != AlignJustify || attr.Paragraph.MaxLineHeight != 31 {
		t.Errorf("Paragraph = %+v", attr.Paragraph)
	}
	if attr.StrokeWidth != -3.5 {
		t.Errorf("StrokeWidth = %v, want -3.5", attr.StrokeWidth)
	}
	if attr.StrokeColor != s.OutlineColor() {
		t.Errorf("StrokeColor = %v, want %v", attr.StrokeColor, s.OutlineColor())
	}
}

func TestBuildRenderAttributesShadow(t *testing.T) {
	tests := []struct {
		name       string
		enabled    bool
		threeD     bool
		wantShadow *Shadow
	}{
		{"disabled", false, false, nil},
		{"disabled 3d", false, true, nil},
		{"flat", true, false, &Shadow{Offset: Vector{0.1, 0.1}, BlurRadius: 0.8, Color: Black}},
		{"3d", true, true, &Shadow{Offset: Vector{0, -1}, BlurRadius: 1.5, Color: Black}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.ShadowEnabled = tt.enabled
			s.Shadow3D = tt.threeD

			got := s.BuildRenderAttributes().Shadow
			if tt.wantShadow == nil {
				if got != nil {
					t.Errorf("Shadow = %+v, want nil", got)
				}
				return
			}
			if got == nil || *got != *tt.wantShadow {
				t.Errorf("Shadow = %+v, want %+v", got, tt.wantShadow)
			}
		})
	}
}

func TestStrokeWidthIsNegated(t *testing.T) {
	for _, w := range []float64{0, 1, 2, 7.5, -1} {
		s := New()
		s.StrokeWidth = w
		if got := s.BuildRenderAttributes().StrokeWidth; got != -w {
			t.Errorf("StrokeWidth %v: attribute = %v, want %v", w, got, -w)
		}
	}
}

func TestClearTopAndBottom(t *testing.T) {
	ctx := context.Background()
	store := newMapStore()

	top := custom()
	if err := top.Save(ctx, store, TopKey); err != nil {
		t.Fatal(err)
	}
	store.docs[BottomKey] = []byte("corrupt")

	if err := ClearTopAndBottom(ctx, store, nil); err != nil {
		t.Fatalf("ClearTopAndBottom error: %v", err)
	}

	for _, key := range []string{TopKey, BottomKey} {
		s, err := Load(ctx, store, key)
		if err != nil {
			t.Fatalf("Load(%s) error: %v", key, err)
		}
		if s.Text != "" {
			t.Errorf("%s Text = %q, want empty", key, s.Text)
		}
		want := New()
		want.Rect = s.Rect
		want.ShadowEnabled, want.Shadow3D = s.ShadowEnabled, s.Shadow3D
		if !s.Equal(want) {
			t.Errorf("%s = %+v, want default styling", key, *s)
		}
	}

	// The top rect survives, as SetDefault keeps it.
	s, _ := Load(ctx, store, TopKey)
	if s.Rect != top.Rect {
		t.Errorf("top Rect = %v, want %v", s.Rect, top.Rect)
	}
}

func TestClearTextsAttemptsEveryKey(t *testing.T) {
	store := newMapStore()
	store.setErr = stderrors.New("read-only")

	err := ClearTexts(context.Background(), store, nil, "a", "b", "c")
	if err == nil {
		t.Fatal("ClearTexts should report write failures")
	}
	if len(store.setKeys) != 3 {
		t.Errorf("Set called for %v, want all three keys", store.setKeys)
	}
}
