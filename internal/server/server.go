// Package server runs the preview HTTP API over a reloadable site snapshot.
package server

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/pagenav"
	"git.home.luguber.info/inful/docnav/internal/server/handlers"
	smw "git.home.luguber.info/inful/docnav/internal/server/middleware"
)

// Loader produces a fresh navigation builder from config and content.
type Loader func(ctx context.Context) (*pagenav.Builder, error)

// Options configures a Server.
type Options struct {
	Logger   *slog.Logger
	Recorder metrics.Recorder
	// Registry is served at MetricsPath when set.
	Registry    *prom.Registry
	MetricsPath string
}

// Server owns the current snapshot and the HTTP handlers that read it.
type Server struct {
	mu      sync.RWMutex
	current *pagenav.Builder

	load     Loader
	logger   *slog.Logger
	recorder metrics.Recorder
	adapter  *errors.HTTPErrorAdapter
	handler  http.Handler
}

// New creates a Server. Call Reload before serving to load the first snapshot.
func New(load Loader, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	if opts.MetricsPath == "" {
		opts.MetricsPath = "/metrics"
	}

	s := &Server{
		load:     load,
		logger:   opts.Logger,
		recorder: opts.Recorder,
		adapter:  errors.NewHTTPErrorAdapter(opts.Logger),
	}

	nav := handlers.NewNavHandlers(s, s.adapter, s.recorder)
	mux := http.NewServeMux()
	mux.HandleFunc("/api/nav", nav.HandleNav)
	mux.HandleFunc("/api/routes", nav.HandleRoutes)
	mux.HandleFunc("/healthz", nav.HandleHealth)
	if opts.Registry != nil {
		mux.Handle(opts.MetricsPath, metrics.HTTPHandler(opts.Registry))
	}
	s.handler = smw.Chain(s.logger, s.adapter)(mux)
	return s
}

// Current implements handlers.Source.
func (s *Server) Current() *pagenav.Builder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Handler returns the HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler { return s.handler }

// Reload loads a new snapshot and swaps it in. On failure the previous
// snapshot stays active.
func (s *Server) Reload(ctx context.Context) error {
	start := time.Now()
	b, err := s.load(ctx)
	if err != nil {
		s.recorder.IncReload(metrics.ResultFailed)
		s.logger.Error("Reload failed, keeping previous snapshot", logfields.Error(err))
		return err
	}

	s.mu.Lock()
	s.current = b
	s.mu.Unlock()

	s.recorder.IncReload(metrics.ResultSuccess)
	s.recorder.SetPages(b.Site().Len())
	s.logger.Info("Snapshot loaded",
		logfields.Pages(b.Site().Len()),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return nil
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "failed to listen").
			WithContext("addr", addr).
			Build()
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Preview server listening", slog.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.WrapError(err, errors.CategoryRuntime, "server failed").Build()
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("HTTP server shutdown error", logfields.Error(err))
	}
	return nil
}
