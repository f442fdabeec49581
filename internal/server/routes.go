package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"judgment-server/internal/judgment"
	"judgment-server/internal/logging"
)

const maxBodyBytes = 1 << 16

func (s *Server) RegisterRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/create_room", s.rateLimit(s.createRoomHandler))
	mux.HandleFunc("POST /api/join_room", s.rateLimit(s.joinRoomHandler))
	mux.HandleFunc("POST /api/start_game", s.rateLimit(s.startGameHandler))
	mux.HandleFunc("POST /api/submit_bid", s.rateLimit(s.submitBidHandler))
	mux.HandleFunc("POST /api/play_card", s.rateLimit(s.playCardHandler))

	mux.HandleFunc("GET /api/state", s.stateHandler)
	mux.HandleFunc("GET /api/scoreboard", s.scoreboardHandler)
	mux.HandleFunc("GET /api/session", s.sessionHandler)

	mux.HandleFunc("GET /health", s.healthHandler)

	mux.HandleFunc("GET /websocket", s.websocketHandler)

	return s.corsMiddleware(mux)
}

// ============================================================================
// ACTIONS (shared by HTTP and websocket)
// ============================================================================

func (s *Server) createRoom(req CreateRoomRequest) (JoinResponse, error) {
	baseCards := judgment.DefaultBaseCards
	if req.BaseCards != nil {
		baseCards = *req.BaseCards
	}
	return s.rooms.CreateRoom(req.HostName, baseCards)
}

func (s *Server) joinRoom(req JoinRoomRequest) (JoinResponse, error) {
	return s.rooms.JoinRoom(req.RoomCode, req.PlayerName)
}

func (s *Server) startGame(req StartGameRequest) (StatusResponse, error) {
	if err := s.rooms.StartGame(req.RoomCode, req.PlayerID); err != nil {
		return StatusResponse{}, err
	}
	return statusOK, nil
}

func (s *Server) submitBid(req SubmitBidRequest) (StatusResponse, error) {
	if req.Bid == nil {
		return StatusResponse{}, ErrInvalidBid
	}
	if err := s.rooms.SubmitBid(req.RoomCode, req.PlayerID, *req.Bid); err != nil {
		return StatusResponse{}, err
	}
	return statusOK, nil
}

func (s *Server) playCard(ctx context.Context, req PlayCardRequest) (StatusResponse, error) {
	if err := s.rooms.PlayCard(ctx, req.RoomCode, req.PlayerID, req.Card); err != nil {
		return StatusResponse{}, err
	}
	return statusOK, nil
}

func (s *Server) getState(ctx context.Context, req GetStateRequest) (StateResponse, error) {
	return s.rooms.State(ctx, req.RoomCode, req.PlayerID)
}

func (s *Server) getScoreboard(ctx context.Context) (ScoreboardResponse, error) {
	entries, err := s.rooms.Scoreboard(ctx)
	if err != nil {
		return ScoreboardResponse{}, err
	}
	return ScoreboardResponse{Entries: entries}, nil
}

// ============================================================================
// HTTP HANDLERS
// ============================================================================

func (s *Server) createRoomHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.respond(w, r)(s.createRoom(req))
}

func (s *Server) joinRoomHandler(w http.ResponseWriter, r *http.Request) {
	var req JoinRoomRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.respond(w, r)(s.joinRoom(req))
}

func (s *Server) startGameHandler(w http.ResponseWriter, r *http.Request) {
	var req StartGameRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.respond(w, r)(s.startGame(req))
}

func (s *Server) submitBidHandler(w http.ResponseWriter, r *http.Request) {
	var req SubmitBidRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.respond(w, r)(s.submitBid(req))
}

func (s *Server) playCardHandler(w http.ResponseWriter, r *http.Request) {
	var req PlayCardRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.respond(w, r)(s.playCard(r.Context(), req))
}

func (s *Server) stateHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := GetStateRequest{RoomCode: query.Get("room"), PlayerID: query.Get("player_id")}
	if req.RoomCode == "" {
		s.writeError(w, r, judgment.NewRuleError(ErrInvalidRequest.Code, "room parameter required"))
		return
	}
	s.respond(w, r)(s.getState(r.Context(), req))
}

func (s *Server) scoreboardHandler(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r)(s.getScoreboard(r.Context()))
}

func (s *Server) sessionHandler(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("player_id")
	if playerID == "" {
		s.writeError(w, r, judgment.NewRuleError(ErrInvalidRequest.Code, "player_id parameter required"))
		return
	}
	s.respond(w, r)(s.rooms.Session(playerID))
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:     "up",
		Rooms:      s.rooms.RoomCount(),
		Sessions:   s.sessions.Count(),
		Scoreboard: "up",
	}
	status := http.StatusOK
	if err := s.store.Ping(r.Context()); err != nil {
		logging.Error("Scoreboard health check failed: %v", err)
		resp.Status = "degraded"
		resp.Scoreboard = "down"
		status = http.StatusServiceUnavailable
	}
	s.writeJSON(w, status, resp)
}

// decode reads a JSON request body into v, answering the request itself when it cannot.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		logging.Warn("Invalid JSON on %s: %v", r.URL.Path, err)
		s.writeError(w, r, ErrInvalidRequest)
		return false
	}
	return true
}

// respond returns a sink for an action's (result, error) pair.
func (s *Server) respond(w http.ResponseWriter, r *http.Request) func(any, error) {
	return func(v any, err error) {
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, v)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error("Failed to marshal response: %v", err)
		http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Warn("Failed to write response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := errorMessage(err)

	var ruleErr *judgment.RuleError
	if errors.As(err, &ruleErr) {
		logging.Warn("Request %s %s rejected: %v", r.Method, r.URL.Path, err)
	} else {
		logging.Error("Request %s %s failed: %v", r.Method, r.URL.Path, err)
	}

	s.writeJSON(w, status, ErrorResponse{Error: msg.Message, Code: msg.Code})
}
