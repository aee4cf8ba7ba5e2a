// Package server exposes stored text styles over HTTP.
//
// Routes:
//
//	GET  /healthz
//	GET  /styles                      list keys (stores that support listing)
//	GET  /styles/{key}                style document
//	PUT  /styles/{key}                replace style document
//	POST /styles/{key}/reset          restore defaults (?offset=1 resets only offset and size)
//	GET  /styles/{key}/attributes     render attributes
//	GET  /styles/{key}/preview.png    PNG preview (?width=&height=&bg=)
//	POST /clear                       clear top and bottom texts (?key= to choose keys)
//
// Errors are returned as {"code": ..., "message": ...} with a status derived
// from the error code.
package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/memestyle/pkg/errors"
	"github.com/matzehuels/memestyle/pkg/fonts"
	"github.com/matzehuels/memestyle/pkg/textstyle"
)

const (
	// maxDocumentSize bounds PUT bodies.
	maxDocumentSize = 1 << 20

	// maxPreviewSide bounds preview canvas dimensions.
	maxPreviewSide = 4096

	shutdownTimeout = 5 * time.Second
)

// Server serves styles from a store.
type Server struct {
	store  textstyle.Store
	logger *log.Logger
	fonts  *fonts.Registry
	router chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFonts sets the font registry used for previews.
func WithFonts(reg *fonts.Registry) Option {
	return func(s *Server) {
		if reg != nil {
			s.fonts = reg
		}
	}
}

// New creates a Server over store. If store also implements
// storage.Lister, GET /styles lists its keys.
func New(store textstyle.Store, opts ...Option) *Server {
	s := &Server{
		store:  store,
		logger: log.Default(),
		fonts:  fonts.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/clear", s.handleClear)

	r.Route("/styles", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Route("/{key}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Put("/", s.handlePut)
			r.Post("/reset", s.handleReset)
			r.Get("/attributes", s.handleAttributes)
			r.Get("/preview.png", s.handlePreview)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Code: errors.ErrCodeNotFound, Message: "no such route"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Code: "METHOD_NOT_ALLOWED", Message: r.Method + " not allowed"})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
