package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nikogura/portfolio-chat/pkg/logger"
	"github.com/nikogura/portfolio-chat/pkg/portfolio"
	"github.com/nikogura/portfolio-chat/pkg/session"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// Option configures a Server.
type Option func(*Server) error

// Server exposes chat sessions over HTTP.
type Server struct {
	sessions       *session.Manager
	store          *portfolio.Store
	log            *logger.Logger
	allowedOrigins []string
	staticDir      string
	limiter        *rateLimiter
	engine         *gin.Engine
}

// WithSessions sets the session manager. Required.
func WithSessions(m *session.Manager) Option {
	return func(s *Server) error {
		s.sessions = m
		return nil
	}
}

// WithStore sets the portfolio store reported by the health check.
func WithStore(store *portfolio.Store) Option {
	return func(s *Server) error {
		s.store = store
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(s *Server) error {
		s.log = log
		return nil
	}
}

// WithAllowedOrigins enables CORS for the given origins so the widget can be
// embedded on another site.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) error {
		s.allowedOrigins = origins
		return nil
	}
}

// WithStaticDir serves widget assets from dir under /widget.
func WithStaticDir(dir string) Option {
	return func(s *Server) error {
		s.staticDir = dir
		return nil
	}
}

// WithRateLimit limits submissions per client IP.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(s *Server) error {
		if perSecond <= 0 || burst <= 0 {
			return errors.Errorf("invalid rate limit %v/s burst %d", perSecond, burst)
		}
		s.limiter = newRateLimiter(rate.Limit(perSecond), burst)
		return nil
	}
}

// NewServer builds a Server and its router.
func NewServer(options ...Option) (server *Server, err error) {
	server = &Server{
		log: logger.Nop(),
	}

	for _, option := range options {
		err = option(server)
		if err != nil {
			err = errors.Wrap(err, "failed to apply option")
			return server, err
		}
	}

	if server.sessions == nil {
		err = errors.New("session manager is required")
		return server, err
	}

	server.engine = server.newRouter()
	return server, err
}

// Handler returns the HTTP handler.
func (s *Server) Handler() (h http.Handler) {
	h = s.engine
	return h
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) (err error) {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.log.Info("shutting down")
	err = httpServer.Shutdown(shutdownCtx)
	if err != nil {
		err = errors.Wrap(err, "graceful shutdown failed")
		return err
	}

	return err
}
