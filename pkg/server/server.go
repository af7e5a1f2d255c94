// Package server exposes report generation over HTTP.
//
// Routes:
//
//	GET    /healthz                  liveness and version
//	POST   /v1/reports?format=pdf    record JSON in, artifact bytes out
//	POST   /v1/reports/validate      record JSON in, problems out
//	POST   /v1/score                 record JSON in, score breakdown out
//	GET    /v1/archive               list archived artifacts (?vin=, ?report_id=, ?limit=)
//	GET    /v1/archive/{id}          download an archived artifact
//	DELETE /v1/archive/{id}          remove an archived artifact
//
// Errors are JSON objects carrying the error code and the request id.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/semaphore"

	"github.com/matzehuels/inspectreport/pkg/archive"
	"github.com/matzehuels/inspectreport/pkg/config"
	"github.com/matzehuels/inspectreport/pkg/pipeline"
	"github.com/matzehuels/inspectreport/pkg/report/style"
)

// Server serves the HTTP API.
type Server struct {
	runner  *pipeline.Runner
	archive archive.Store // nil disables archiving and the archive routes
	theme   style.Theme
	cfg     config.ServerConfig
	logger  *log.Logger
	sem     *semaphore.Weighted
	now     func() time.Time
}

// Options configures a Server.
type Options struct {
	Runner  *pipeline.Runner
	Archive archive.Store
	Theme   style.Theme
	Config  config.ServerConfig
	Logger  *log.Logger
}

// New returns a server. A nil runner uses an uncached one.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Runner == nil {
		opts.Runner = pipeline.NewRunner(nil, nil, opts.Logger)
	}
	if opts.Theme == (style.Theme{}) {
		opts.Theme = style.DefaultTheme()
	}
	def := config.Default().Server
	if opts.Config.Concurrency <= 0 {
		opts.Config.Concurrency = def.Concurrency
	}
	if opts.Config.MaxBodyMB <= 0 {
		opts.Config.MaxBodyMB = def.MaxBodyMB
	}
	if opts.Config.RequestTimeout.Duration <= 0 {
		opts.Config.RequestTimeout = def.RequestTimeout
	}
	if opts.Config.Addr == "" {
		opts.Config.Addr = def.Addr
	}
	return &Server{
		runner:  opts.Runner,
		archive: opts.Archive,
		theme:   opts.Theme,
		cfg:     opts.Config,
		logger:  opts.Logger,
		sem:     semaphore.NewWeighted(int64(opts.Config.Concurrency)),
		now:     time.Now,
	}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.RequestTimeout.Duration))

	r.Get("/healthz", s.health)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/reports", s.generate)
		r.Post("/reports/validate", s.validate)
		r.Post("/score", s.score)
		r.Route("/archive", func(r chi.Router) {
			r.Get("/", s.listArchive)
			r.Get("/{id}", s.getArchive)
			r.Delete("/{id}", s.deleteArchive)
		})
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
