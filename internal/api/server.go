// Package api serves the requirements parser over HTTP.
//
// Routes:
//
//	GET  /healthz
//	POST /v1/parse            {"text": "...", "save": true}
//	POST /v1/line             {"line": "..."}
//	GET  /v1/results/{id}
//	GET  /v1/normalize?version=1.0-1
//	GET  /v1/packages/{name}
//
// Errors are JSON objects {"code": "...", "message": "..."} with the status
// mapped from the error code.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/pipreq/pkg/catalog"
	"github.com/matzehuels/pipreq/pkg/requirement"
	"github.com/matzehuels/pipreq/pkg/store"
)

// Options configures a Server. Only Store is required.
type Options struct {
	Store        store.Store
	Catalog      *catalog.Catalog // Optional; /v1/packages answers 501 without one
	Logger       *log.Logger
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server is the HTTP API. Its handler is safe for concurrent use.
type Server struct {
	parser  *requirement.Parser
	store   store.Store
	catalog *catalog.Catalog
	logger  *log.Logger
	opts    Options
	router  chi.Router
}

// New builds a Server and its routes.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Store == nil {
		opts.Store = store.NewMemoryStore()
	}
	s := &Server{
		store:   opts.Store,
		catalog: opts.Catalog,
		logger:  opts.Logger,
		opts:    opts,
	}
	s.parser = requirement.NewParser(requirement.WithLogger(func(format string, args ...any) {
		s.logger.Debugf(format, args...)
	}))
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/parse", s.handleParse)
		r.Post("/line", s.handleLine)
		r.Get("/results/{id}", s.handleResult)
		r.Get("/normalize", s.handleNormalize)
		r.Get("/packages/{name}", s.handlePackage)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, notFound("no route for %s %s", r.Method, r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Code: "METHOD_NOT_ALLOWED", Message: r.Method + " not allowed"})
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"took", time.Since(start).Round(time.Microsecond),
				"id", middleware.GetReqID(r.Context()),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}
