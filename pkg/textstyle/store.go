package textstyle

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/memestyle/pkg/errors"
	"github.com/matzehuels/memestyle/pkg/observability"
)

// Store persists style documents by key.
// Get reports found=false with a nil error when the key has no document.
type Store interface {
	Get(ctx context.Context, key string) (data []byte, found bool, err error)
	Set(ctx context.Context, key string, data []byte) error
}

// Load reads the style stored under key.
//
// A missing document yields the defaults and a nil error. Any other
// failure yields the defaults together with a STORAGE_ERROR, PARSE_ERROR
// or INVALID_KEY error; the returned style is never nil.
func Load(ctx context.Context, store Store, key string) (s *TextStyle, err error) {
	s = New()
	if err := errors.ValidateKey(key); err != nil {
		return s, err
	}

	start := time.Now()
	found := false
	defer func() {
		observability.Styles().OnLoad(ctx, key, found, time.Since(start), err)
	}()

	data, found, err := store.Get(ctx, key)
	if err != nil {
		return s, errors.Wrap(errors.ErrCodeStorage, err, "read style %q", key)
	}
	if !found {
		return s, nil
	}

	loaded, err := decodeDocument(data)
	if err != nil {
		return s, errors.Wrap(errors.ErrCodeParse, err, "decode style %q", key)
	}
	return loaded, nil
}

// LoadOrDefault is Load for callers that only need a usable style: any
// error is logged on logger (log.Default() when nil) and the defaults are
// returned.
func LoadOrDefault(ctx context.Context, store Store, key string, logger *log.Logger) *TextStyle {
	s, err := Load(ctx, store, key)
	if err != nil {
		if logger == nil {
			logger = log.Default()
		}
		logger.Warn("attribute reading failed, using defaults", "key", key, "err", err)
	}
	return s
}

// Save writes s under key.
func (s *TextStyle) Save(ctx context.Context, store Store, key string) (err error) {
	if err := errors.ValidateKey(key); err != nil {
		return err
	}

	start := time.Now()
	size := 0
	defer func() {
		observability.Styles().OnSave(ctx, key, size, time.Since(start), err)
	}()

	data, err := s.MarshalDocument()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode style %q", key)
	}
	size = len(data)

	if err := store.Set(ctx, key, data); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write style %q", key)
	}
	return nil
}
