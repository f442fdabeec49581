package server

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"judgment-server/internal/judgment"
	"judgment-server/internal/logging"
)

const maxNameLength = 20

// RateLimiter implements per-client rate limiting using a sliding window.
type RateLimiter struct {
	maxRequests int                    // Maximum requests allowed per window
	window      time.Duration          // Time window for rate limiting
	requests    map[string][]time.Time // clientID -> timestamps of recent requests
	mu          sync.Mutex
}

// NewRateLimiter allows maxRequests per window for each client.
func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		maxRequests: maxRequests,
		window:      window,
		requests:    make(map[string][]time.Time),
	}
}

// Allow records a request from clientID and reports whether it fits in the window.
func (r *RateLimiter) Allow(clientID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-r.window)

	timestamps := r.requests[clientID]

	validTimestamps := make([]time.Time, 0, len(timestamps)+1)
	for _, ts := range timestamps {
		if ts.After(cutoff) {
			validTimestamps = append(validTimestamps, ts)
		}
	}

	if len(validTimestamps) >= r.maxRequests {
		r.requests[clientID] = validTimestamps
		return false
	}

	r.requests[clientID] = append(validTimestamps, now)
	return true
}

// Cleanup drops clients with no request inside the window.
func (r *RateLimiter) Cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-r.window)

	for clientID, timestamps := range r.requests {
		allOld := true
		for _, ts := range timestamps {
			if ts.After(cutoff) {
				allOld = false
				break
			}
		}
		if allOld {
			delete(r.requests, clientID)
		}
	}
}

// RemoveClient forgets clientID, used when a websocket closes.
func (r *RateLimiter) RemoveClient(clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.requests, clientID)
}

func (r *RateLimiter) tracked() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

// rateLimit rejects requests from a client address that exceeds the limiter's window.
func (s *Server) rateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client := clientAddr(r)
		if !s.rateLimiter.Allow(client) {
			logging.Warn("Rate limited %s %s from %s", r.Method, r.URL.Path, client)
			s.writeError(w, r, ErrRateLimited)
			return
		}
		next(w, r)
	}
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.CORSOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type")
		w.Header().Set("Access-Control-Allow-Credentials", "false")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

var validMessageTypes = map[string]bool{
	"ping":           true,
	"create_room":    true,
	"join_room":      true,
	"start_game":     true,
	"submit_bid":     true,
	"play_card":      true,
	"get_state":      true,
	"get_scoreboard": true,
}

// ValidateMessageType checks if a websocket message type is recognized.
func ValidateMessageType(msgType string) error {
	if !validMessageTypes[msgType] {
		return judgment.NewRuleError("INVALID_MESSAGE_TYPE", fmt.Sprintf("Unknown message type '%s'", msgType))
	}
	return nil
}

// ValidatePlayerName trims name and checks it is present and at most 20 characters.
func ValidatePlayerName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameInvalid
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", judgment.NewRuleError(ErrNameInvalid.Code, fmt.Sprintf("Name too long (max %d characters)", maxNameLength))
	}
	return name, nil
}
