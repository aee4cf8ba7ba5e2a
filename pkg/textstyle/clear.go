package textstyle

import (
	"context"
	stderrors "errors"

	"github.com/charmbracelet/log"
)

// Well-known keys for the two caption slots of a meme.
const (
	TopKey    = "topAttr"
	BottomKey = "bottomAttr"
)

// ClearTexts empties the text of every style in keys and resets its
// styling with SetDefault, keeping rect and shadow flags. Unreadable
// documents are replaced by defaults. All keys are attempted; write
// failures are joined into the returned error.
func ClearTexts(ctx context.Context, store Store, logger *log.Logger, keys ...string) error {
	var errs []error
	for _, key := range keys {
		s := LoadOrDefault(ctx, store, key, logger)
		s.Text = ""
		s.SetDefault()
		if err := s.Save(ctx, store, key); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

// ClearTopAndBottom clears the TopKey and BottomKey styles, which is done
// whenever a new meme image is picked.
func ClearTopAndBottom(ctx context.Context, store Store, logger *log.Logger) error {
	return ClearTexts(ctx, store, logger, TopKey, BottomKey)
}
