package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"judgment-server/internal/config"
	"judgment-server/internal/logging"
	"judgment-server/internal/scoreboard"
)

const rateLimitCleanupInterval = time.Minute

type Server struct {
	cfg         *config.Config
	rooms       *RoomManager
	sessions    *SessionManager
	store       scoreboard.Store
	rateLimiter *RateLimiter

	stopCleanup context.CancelFunc
	cleanupDone chan struct{}
}

// NewServer wires the registry to store and returns it with an http.Server ready to listen.
func NewServer(cfg *config.Config, store scoreboard.Store, opts ...RoomManagerOption) (*Server, *http.Server) {
	s := newServer(cfg, store, opts...)

	ctx, cancel := context.WithCancel(context.Background())
	s.stopCleanup = cancel
	s.cleanupDone = make(chan struct{})
	go s.cleanupTask(ctx)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s, httpServer
}

func newServer(cfg *config.Config, store scoreboard.Store, opts ...RoomManagerOption) *Server {
	sessions := NewSessionManager()
	opts = append([]RoomManagerOption{WithRecentEntries(cfg.ScoreboardRecent)}, opts...)

	return &Server{
		cfg:         cfg,
		rooms:       NewRoomManager(store, sessions, opts...),
		sessions:    sessions,
		store:       store,
		rateLimiter: NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
	}
}

// Shutdown stops background work and closes the scoreboard.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.stopCleanup != nil {
		s.stopCleanup()
		select {
		case <-s.cleanupDone:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	logging.Info("Closing scoreboard (%d rooms in memory)", s.rooms.RoomCount())
	if err := s.store.Close(); err != nil {
		return fmt.Errorf("failed to close scoreboard: %w", err)
	}
	return nil
}

// cleanupTask drops idle rate limiter entries every minute until ctx is cancelled.
func (s *Server) cleanupTask(ctx context.Context) {
	defer close(s.cleanupDone)

	ticker := time.NewTicker(rateLimitCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.rateLimiter.Cleanup()
		}
	}
}
