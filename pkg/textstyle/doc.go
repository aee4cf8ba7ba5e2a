// Package textstyle models the styling of a meme's overlay text.
//
// A [TextStyle] carries the display text together with its font, colors,
// alignment, stroke, opacity, shadow and placement. Styles are stored as
// one JSON document per key in a [Store] and turned into renderer-facing
// [Attributes] with [TextStyle.BuildRenderAttributes].
//
// # Loading and Saving
//
// [Load] never fails for a missing document: it returns the compiled
// defaults. A document that exists but cannot be decoded yields a
// PARSE_ERROR together with a default record, so callers can log and keep
// going:
//
//	style, err := textstyle.Load(ctx, store, textstyle.TopKey)
//	if err != nil {
//	    logger.Warn("attribute reading failed", "err", err)
//	}
//	style.Text = "one does not simply"
//	if err := style.Save(ctx, store, textstyle.TopKey); err != nil {
//	    logger.Error("attribute writing failed", "err", err)
//	}
//
// # Alignment Codes
//
// Two integer encodings of [Alignment] exist and must not be mixed up:
//
//	user scale     0:left    1:center   2:right  3:justify   (AbsAlignment)
//	storage scale  0:center  1:justify  2:left   3:right     (documents)
//
// Unknown codes on either scale resolve to [AlignCenter].
package textstyle
