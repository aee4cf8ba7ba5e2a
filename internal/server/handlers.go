package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/memestyle/pkg/buildinfo"
	"github.com/matzehuels/memestyle/pkg/errors"
	"github.com/matzehuels/memestyle/pkg/preview"
	"github.com/matzehuels/memestyle/pkg/storage"
	"github.com/matzehuels/memestyle/pkg/textstyle"
)

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	lister, ok := s.store.(storage.Lister)
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "store cannot list keys"))
		return
	}
	keys, err := lister.Keys(r.Context())
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeStorage, err, "list keys"))
		return
	}
	if keys == nil {
		keys = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"keys": keys})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	style, ok := s.load(w, r)
	if !ok {
		return
	}
	s.writeDocument(w, r, style)
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := errors.ValidateKey(key); err != nil {
		s.writeError(w, r, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeTooLarge, err, "style document exceeds %d bytes", tooLarge.Limit))
			return
		}
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}
	style, err := textstyle.UnmarshalDocument(body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := style.Save(r.Context(), s.store, key); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeDocument(w, r, style)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	offsetOnly := false
	if v := r.URL.Query().Get("offset"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "offset must be a boolean, got %q", v))
			return
		}
		offsetOnly = b
	}

	style, ok := s.load(w, r)
	if !ok {
		return
	}
	if offsetOnly {
		style.ResetOffset()
	} else {
		style.SetDefault()
	}
	if err := style.Save(r.Context(), s.store, chi.URLParam(r, "key")); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeDocument(w, r, style)
}

func (s *Server) handleAttributes(w http.ResponseWriter, r *http.Request) {
	style, ok := s.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, style.BuildRenderAttributes())
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	opts := []preview.Option{preview.WithFonts(s.fonts)}

	q := r.URL.Query()
	width, err := dimension(q.Get("width"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	height, err := dimension(q.Get("height"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if width > 0 || height > 0 {
		if width == 0 {
			width = height
		}
		if height == 0 {
			height = width
		}
		opts = append(opts, preview.WithSize(width, height))
	}
	if bg := q.Get("bg"); bg != "" {
		c, err := textstyle.ParseHex(bg)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		opts = append(opts, preview.WithBackgroundColor(c.NRGBA(1)))
	}

	style, ok := s.load(w, r)
	if !ok {
		return
	}
	png, err := preview.Render(style, opts...)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	keys := r.URL.Query()["key"]
	if len(keys) == 0 {
		keys = []string{textstyle.TopKey, textstyle.BottomKey}
	}
	if err := textstyle.ClearTexts(r.Context(), s.store, s.logger, keys...); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// load reads the style named by the {key} URL parameter. A stored document
// that fails to parse is logged and served as the defaults; other errors
// are written to w and ok is false.
func (s *Server) load(w http.ResponseWriter, r *http.Request) (style *textstyle.TextStyle, ok bool) {
	key := chi.URLParam(r, "key")
	style, err := textstyle.Load(r.Context(), s.store, key)
	switch {
	case err == nil:
	case errors.Is(err, errors.ErrCodeParse):
		s.logger.Warn("attribute reading failed, using defaults", "key", key, "err", err)
	default:
		s.writeError(w, r, err)
		return nil, false
	}
	return style, true
}

func (s *Server) writeDocument(w http.ResponseWriter, r *http.Request, style *textstyle.TextStyle) {
	data, err := style.MarshalDocument()
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "encode style"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorBody{Code: code, Message: errors.UserMessage(err)})
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidKey, errors.ErrCodeInvalidColor,
		errors.ErrCodeInvalidAlignment, errors.ErrCodeParse:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeFontNotFound:
		return http.StatusNotFound
	case errors.ErrCodeTooLarge:
		return http.StatusRequestEntityTooLarge
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case errors.ErrCodeStorage:
		return http.StatusServiceUnavailable
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// dimension parses an optional positive preview side length.
func dimension(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 || n > maxPreviewSide {
		return 0, errors.New(errors.ErrCodeInvalidInput, "dimension must be an integer in 1..%d, got %q", maxPreviewSide, v)
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
