// Package preview rasterizes a text style over an image.
//
// It consumes the attributes built by [textstyle.TextStyle.BuildRenderAttributes]
// the same way the desktop renderer does: the fill uses the foreground
// color, the outline is drawn with the stroke color at a width of
// |strokeWidth| percent of the font size, and the optional shadow is drawn
// first, offset and blurred, in the outline color. Opacity applies to the
// composed text as a whole.
//
// Text is word-wrapped inside the style's rect (moved by its offset), with
// a line height equal to the paragraph's maximum line height. An empty rect
// means the whole canvas.
//
//	png, err := preview.Render(style, preview.WithSize(800, 600))
package preview
