package textstyle

// Shadow geometry for the two shadow styles.
var (
	shadow3DOffset   = Vector{DX: 0, DY: -1}
	shadow3DBlur     = 1.5
	shadowFlatOffset = Vector{DX: 0.1, DY: 0.1}
	shadowFlatBlur   = 0.8
)

// Attributes is the attribute set handed to a text renderer.
type Attributes struct {
	Font       Font           `json:"font"`
	Foreground RGBA           `json:"foregroundColor"`
	Paragraph  ParagraphStyle `json:"paragraphStyle"`

	// StrokeWidth is negated: a negative width means the glyphs are both
	// stroked and filled.
	StrokeWidth float64 `json:"strokeWidth"`
	StrokeColor RGB     `json:"strokeColor"`

	// Shadow is nil when shadows are disabled.
	Shadow *Shadow `json:"shadow,omitempty"`
}

// Font identifies a font face.
type Font struct {
	Family string  `json:"family"`
	Size   float64 `json:"size"`
}

// ParagraphStyle controls line layout.
type ParagraphStyle struct {
	Alignment     Alignment `json:"alignment"`
	MaxLineHeight float64   `json:"maxLineHeight"`
}

// Vector is a 2D displacement.
type Vector struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// Shadow describes a drop shadow behind the glyphs.
type Shadow struct {
	Offset     Vector  `json:"offset"`
	BlurRadius float64 `json:"blurRadius"`
	Color      RGB     `json:"color"`
}

// BuildRenderAttributes derives renderer attributes from the current style.
func (s *TextStyle) BuildRenderAttributes() Attributes {
	attr := Attributes{
		Font:       Font{Family: s.FontName, Size: s.fontSize},
		Foreground: RGBA{RGB: s.textColor, Alpha: s.opacity},
		Paragraph: ParagraphStyle{
			Alignment:     s.alignment,
			MaxLineHeight: s.fontSize,
		},
		StrokeWidth: -s.StrokeWidth,
		StrokeColor: s.outlineColor,
	}

	if s.ShadowEnabled {
		shadow := &Shadow{Color: s.outlineColor}
		if s.Shadow3D {
			shadow.Offset, shadow.BlurRadius = shadow3DOffset, shadow3DBlur
		} else {
			shadow.Offset, shadow.BlurRadius = shadowFlatOffset, shadowFlatBlur
		}
		attr.Shadow = shadow
	}

	return attr
}
