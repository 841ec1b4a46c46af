// Package server serves the rendered preview and streams live updates.
//
// Routes:
//
//	GET /         full page, rendered on every request; never published
//	GET /events   server-sent events, one message per new body
//	GET /ws       the same updates over a websocket
//	GET /healthz  liveness probe
//
// The streaming routes exist only when live reload is enabled.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/alnah/go-mdpreview"
	"github.com/alnah/go-mdpreview/internal/broadcast"
)

// ErrBind indicates the listen address could not be bound.
var ErrBind = errors.New("failed to bind address")

// Default timeouts.
const (
	DefaultShutdownTimeout   = 5 * time.Second
	defaultReadHeaderTimeout = 10 * time.Second
)

// Renderer produces the current page. *mdpreview.Renderer implements it.
type Renderer interface {
	Render(ctx context.Context) (*mdpreview.Result, error)
}

// ChangeSource signals that the source changed. *watcher.Watcher implements it.
type ChangeSource interface {
	Changes() <-chan struct{}
}

// Config holds the server settings.
type Config struct {
	Addr            string        // host:port to listen on
	LiveReload      bool          // register /events and /ws
	ShutdownTimeout time.Duration // zero means DefaultShutdownTimeout
}

// Server is the preview HTTP server.
type Server struct {
	renderer Renderer
	cfg      Config
	logger   *log.Logger
	updates  *broadcast.Broadcaster
}

// New creates a Server. A nil logger discards diagnostics.
func New(renderer Renderer, cfg Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	return &Server{
		renderer: renderer,
		cfg:      cfg,
		logger:   logger,
		updates:  broadcast.New(""),
	}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /{$}", withCompression(http.HandlerFunc(s.handlePage)))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if s.cfg.LiveReload {
		mux.HandleFunc("GET /events", s.handleEvents)
		mux.HandleFunc("GET /ws", s.handleWebSocket)
	}
	return mux
}

// ListenAndServe binds cfg.Addr and serves until ctx is done, then shuts
// down gracefully. Returns an error wrapping ErrBind if the address is
// unavailable.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrBind, s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done. The page is rendered once up front
// so the first stream subscriber has a body to receive.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.prime(ctx)

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
		ErrorLog:          s.logger,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.logger.Printf("serving on http://%s", ln.Addr())

	select {
	case err := <-errc:
		s.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	s.logger.Printf("stopped")
	return nil
}

// Watch re-renders on every change signal and publishes the new body.
// Renders run one at a time. Returns when ctx is done or the source stops.
func (s *Server) Watch(ctx context.Context, changes ChangeSource) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes.Changes():
			if !ok {
				return
			}
			res, err := s.renderer.Render(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				s.logger.Printf("render: %v", err)
				continue
			}
			s.updates.Publish(res.Body)
			s.logger.Printf("reloaded, %d client(s)", s.updates.Len())
		}
	}
}

// Close ends every live-update stream.
func (s *Server) Close() {
	s.updates.Close()
}

// prime publishes an initial body. It is dropped if Watch published while
// the render was running, since that body is at least as new.
func (s *Server) prime(ctx context.Context) {
	if !s.cfg.LiveReload {
		return
	}
	_, version := s.updates.Current()
	res, err := s.renderer.Render(ctx)
	if err != nil {
		s.logger.Printf("render: %v", err)
		return
	}
	s.updates.PublishIfVersion(res.Body, version)
}

// handlePage renders for this request only. Publishing stays with Watch so
// a page render that read the file before a save cannot overwrite the
// body rendered after it.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	res, err := s.renderer.Render(r.Context())
	if err != nil {
		s.logger.Printf("render: %v", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = io.WriteString(w, res.Page)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}
