package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"quickreviewer/internal/config"
	"quickreviewer/internal/coordinator"
	"quickreviewer/internal/logging"
	"quickreviewer/internal/media"
	"quickreviewer/internal/store"
)

// ReviewService is the coordinator surface the server consumes.
type ReviewService interface {
	GetReviewWithin(ctx context.Context, id string, mediaType media.Type, forceRefresh bool, wait time.Duration) (*store.CachedReview, bool)
	GetSummary(ctx context.Context, id string, mediaType media.Type, forceRefresh bool) []string
}

// ReviewLister lists non-expired cached reviews.
type ReviewLister interface {
	ListRecent(ctx context.Context) ([]store.Entry, error)
}

// Server hosts the HTTP API.
type Server struct {
	bind        string
	token       string
	waitTimeout time.Duration
	logger      *slog.Logger
	reviews     ReviewService
	lister      ReviewLister

	listener net.Listener
	server   *http.Server
}

// New constructs a server from configuration. Returns nil when no bind
// address is configured.
func New(cfg *config.Config, reviews ReviewService, lister ReviewLister, logger *slog.Logger) *Server {
	if cfg == nil {
		return nil
	}
	bind := strings.TrimSpace(cfg.Paths.APIBind)
	if bind == "" {
		return nil
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	wait := time.Duration(cfg.Server.WaitTimeoutSeconds) * time.Second
	if wait <= 0 {
		wait = 25 * time.Second
	}

	srv := &Server{
		bind:        bind,
		token:       strings.TrimSpace(cfg.Paths.APIToken),
		waitTimeout: wait,
		logger:      logging.NewComponentLogger(logger, "api-server"),
		reviews:     reviews,
		lister:      lister,
	}
	srv.server = &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv
}

// Handler builds the route table. Exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/review", authMiddleware(s.token, s.handleReview))
	mux.HandleFunc("/api/reviews", authMiddleware(s.token, s.handleReviews))
	mux.HandleFunc("/api/summary", authMiddleware(s.token, s.handleSummary))
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/review/", authMiddleware(s.token, s.handleReviewPage))
	return mux
}

// Start begins serving and shuts down when ctx is done.
func (s *Server) Start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Stop shuts the server down.
func (s *Server) Stop() {
	if s == nil {
		return
	}
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

var _ ReviewService = (*coordinator.Coordinator)(nil)
