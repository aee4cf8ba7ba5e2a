package preview

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/memestyle/pkg/errors"
	"github.com/matzehuels/memestyle/pkg/textstyle"
)

// Render draws s on a fresh canvas and returns it PNG-encoded.
func Render(s *textstyle.TextStyle, opts ...Option) ([]byte, error) {
	img, err := Image(s, opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode preview")
	}
	return buf.Bytes(), nil
}

// Image draws s on a fresh canvas.
func Image(s *textstyle.TextStyle, opts ...Option) (*image.RGBA, error) {
	r := newRenderer(opts)

	var canvas *image.RGBA
	if r.background != nil {
		b := r.background.Bounds()
		canvas = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(canvas, canvas.Bounds(), r.background, b.Min, draw.Src)
	} else {
		canvas = image.NewRGBA(image.Rect(0, 0, r.width, r.height))
		draw.Draw(canvas, canvas.Bounds(), image.NewUniform(r.bgColor), image.Point{}, draw.Src)
	}

	if err := r.draw(canvas, s); err != nil {
		return nil, err
	}
	return canvas, nil
}

// Draw draws s onto dst.
func Draw(dst draw.Image, s *textstyle.TextStyle, opts ...Option) error {
	return newRenderer(opts).draw(dst, s)
}

func (r *renderer) draw(dst draw.Image, s *textstyle.TextStyle) error {
	if s == nil {
		return errors.New(errors.ErrCodeInvalidInput, "no style to draw")
	}
	attr := s.BuildRenderAttributes()
	bounds := dst.Bounds()

	f, _ := r.registry.Resolve(attr.Font.Family)
	face := truetype.NewFace(f, &truetype.Options{
		Size:    attr.Font.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	box := textBox(s, bounds)
	glyphs := image.NewAlpha(bounds)
	layoutText(glyphs, face, s.DisplayText(), box, attr.Paragraph)

	// Stroke: union of the glyph mask shifted over a disc.
	textMask := glyphs
	if attr.StrokeWidth != 0 {
		radius := strokeRadius(attr.StrokeWidth, attr.Font.Size, bounds)
		textMask = dilate(glyphs, radius)
	}

	layer := image.NewRGBA(bounds)
	if attr.Shadow != nil {
		dx := int(math.Round(attr.Shadow.Offset.DX))
		dy := int(math.Round(-attr.Shadow.Offset.DY)) // y grows downward here
		shadow := image.NewAlpha(bounds)
		draw.DrawMask(shadow, bounds.Add(image.Pt(dx, dy)), image.Opaque, image.Point{}, textMask, bounds.Min, draw.Over)
		shadow = blur(shadow, int(math.Ceil(attr.Shadow.BlurRadius)))
		fill(layer, shadow, attr.Shadow.Color.NRGBA(1))
	}
	if attr.StrokeWidth != 0 {
		fill(layer, textMask, attr.StrokeColor.NRGBA(1))
	}
	fill(layer, glyphs, attr.Foreground.RGB.NRGBA(1))

	alpha := uint8(math.Round(attr.Foreground.Alpha * 255))
	draw.DrawMask(dst, bounds, layer, bounds.Min, image.NewUniform(color.Alpha{A: alpha}), image.Point{}, draw.Over)
	return nil
}

// textBox is the style's rect moved by its offset, or the canvas when the
// rect is empty.
func textBox(s *textstyle.TextStyle, canvas image.Rectangle) image.Rectangle {
	if s.Rect.Empty() {
		return canvas.Add(image.Pt(int(math.Round(s.Offset.X)), int(math.Round(s.Offset.Y))))
	}
	x := s.Rect.X + s.Offset.X
	y := s.Rect.Y + s.Offset.Y
	return image.Rect(
		int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+s.Rect.W)), int(math.Round(y+s.Rect.H)),
	)
}

// strokeRadius converts a stroke width given in percent of the font size
// into a pixel radius of at least 1, limited to 1/8 of the shorter canvas
// side and to maxStrokeRadius.
func strokeRadius(width, size float64, canvas image.Rectangle) int {
	limit := min(maxStrokeRadius, max(1, min(canvas.Dx(), canvas.Dy())/maxStrokeFraction))
	r := math.Round(math.Abs(width) * size / 100)
	if r > float64(limit) {
		return limit
	}
	return max(1, int(r))
}

func fill(dst *image.RGBA, mask *image.Alpha, c color.NRGBA) {
	draw.DrawMask(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, mask, mask.Bounds().Min, draw.Over)
}

// dilate grows the mask by a disc of the given radius. Each pair of disc
// rows is a horizontal running max of its half width, so the cost is
// radius times the inked area rather than radius squared times the canvas.
func dilate(src *image.Alpha, radius int) *image.Alpha {
	b := src.Bounds()
	out := image.NewAlpha(b)
	area := inkBounds(src).Inset(-radius).Intersect(b)
	if area.Empty() {
		return out
	}

	w, h := area.Dx(), area.Dy()
	rows := make([]uint8, w*h)
	queue := make([]int, 0, w)
	for dy := 0; dy <= radius; dy++ {
		half := int(math.Sqrt(float64(radius*radius - dy*dy)))
		for y := 0; y < h; y++ {
			off := src.PixOffset(area.Min.X, area.Min.Y+y)
			runningMax(rows[y*w:(y+1)*w], src.Pix[off:off+w], half, queue)
		}
		for y := 0; y < h; y++ {
			off := out.PixOffset(area.Min.X, area.Min.Y+y)
			dst := out.Pix[off : off+w]
			for _, sy := range [2]int{y - dy, y + dy} {
				if sy < 0 || sy >= h {
					continue
				}
				for x, a := range rows[sy*w : (sy+1)*w] {
					if a > dst[x] {
						dst[x] = a
					}
				}
			}
		}
	}
	return out
}

// runningMax sets dst[x] to the max of src over [x-half, x+half]. queue is
// scratch space with capacity len(src).
func runningMax(dst, src []uint8, half int, queue []int) {
	q, head := queue[:0], 0
	n := len(src)
	for j := 0; j < n+half; j++ {
		if j < n {
			for len(q) > head && src[q[len(q)-1]] <= src[j] {
				q = q[:len(q)-1]
			}
			q = append(q, j)
		}
		x := j - half
		if x < 0 {
			continue
		}
		for q[head] < x-half {
			head++
		}
		dst[x] = src[q[head]]
	}
}

// inkBounds is the smallest rectangle holding every non-zero pixel of m.
func inkBounds(m *image.Alpha) image.Rectangle {
	b := m.Bounds()
	var ink image.Rectangle
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := m.PixOffset(b.Min.X, y)
		for i, a := range m.Pix[off : off+b.Dx()] {
			if a != 0 {
				ink = ink.Union(image.Rect(b.Min.X+i, y, b.Min.X+i+1, y+1))
			}
		}
	}
	return ink
}

// blur applies a separable box blur of the given radius.
func blur(src *image.Alpha, radius int) *image.Alpha {
	if radius <= 0 {
		return src
	}
	b := src.Bounds()
	tmp := image.NewAlpha(b)
	out := image.NewAlpha(b)
	boxPass(tmp, src, radius, 1, 0)
	boxPass(out, tmp, radius, 0, 1)
	return out
}

func boxPass(dst, src *image.Alpha, radius, ux, uy int) {
	b := src.Bounds()
	n := 2*radius + 1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			sum := 0
			for k := -radius; k <= radius; k++ {
				p := image.Pt(x+k*ux, y+k*uy)
				if p.In(b) {
					sum += int(src.AlphaAt(p.X, p.Y).A)
				}
			}
			dst.SetAlpha(x, y, color.Alpha{A: uint8(sum / n)})
		}
	}
}

// layoutText wraps text to box and draws it into mask.
func layoutText(mask *image.Alpha, face font.Face, text string, box image.Rectangle, para textstyle.ParagraphStyle) {
	if text == "" {
		return
	}
	d := &font.Drawer{Dst: mask, Src: image.Opaque, Face: face}
	ascent := face.Metrics().Ascent
	lineHeight := fixed.Int26_6(math.Round(para.MaxLineHeight * 64))
	spaceW := font.MeasureString(face, " ")
	boxW := fixed.I(box.Dx())

	y := fixed.I(box.Min.Y) + ascent
	for _, paragraph := range strings.Split(text, "\n") {
		lines := wrap(face, strings.Fields(paragraph), boxW)
		if len(lines) == 0 {
			y += lineHeight
			continue
		}
		for i, words := range lines {
			last := i == len(lines)-1
			width := lineWidth(face, words, spaceW)

			gap := spaceW
			var x fixed.Int26_6
			switch para.Alignment {
			case textstyle.AlignLeft:
				x = fixed.I(box.Min.X)
			case textstyle.AlignRight:
				x = fixed.I(box.Max.X) - width
			case textstyle.AlignJustify:
				x = fixed.I(box.Min.X)
				if !last && len(words) > 1 && width < boxW {
					gap += (boxW - width) / fixed.Int26_6(len(words)-1)
				}
			default:
				x = fixed.I(box.Min.X) + (boxW-width)/2
			}

			for _, w := range words {
				d.Dot = fixed.Point26_6{X: x, Y: y}
				d.DrawString(w)
				x += font.MeasureString(face, w) + gap
			}
			y += lineHeight
		}
	}
}

// wrap greedily packs words into lines no wider than maxW. A word wider
// than maxW gets a line of its own.
func wrap(face font.Face, words []string, maxW fixed.Int26_6) [][]string {
	spaceW := font.MeasureString(face, " ")
	var lines [][]string
	var cur []string
	for _, w := range words {
		if len(cur) > 0 && lineWidth(face, append(cur, w), spaceW) > maxW {
			lines = append(lines, cur)
			cur = nil
		}
		cur = append(cur, w)
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

func lineWidth(face font.Face, words []string, spaceW fixed.Int26_6) fixed.Int26_6 {
	var w fixed.Int26_6
	for i, word := range words {
		if i > 0 {
			w += spaceW
		}
		w += font.MeasureString(face, word)
	}
	return w
}
