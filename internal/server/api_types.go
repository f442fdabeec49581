package server

import (
	"judgment-server/internal/judgment"
	"judgment-server/internal/scoreboard"
)

// ============================================================================
// ERROR RESPONSES
// ============================================================================
// tygo:generate
type ErrorMessage struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorResponse is the body of every failed HTTP request.
// tygo:generate
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// tygo:generate
type StatusResponse struct {
	Status string `json:"status"`
}

var statusOK = StatusResponse{Status: "ok"}

// ============================================================================
// CREATE ROOM (create_room) / JOIN ROOM (join_room)
// ============================================================================
// tygo:generate
type CreateRoomRequest struct {
	HostName  string `json:"host_name"`
	BaseCards *int   `json:"base_cards,omitempty"`
}

// tygo:generate
type JoinRoomRequest struct {
	RoomCode   string `json:"room_code"`
	PlayerName string `json:"player_name"`
}

// JoinResponse answers both create_room and join_room.
// tygo:generate
type JoinResponse struct {
	RoomCode   string `json:"room_code"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	BaseCards  int    `json:"base_cards"`
	MaxPlayers int    `json:"max_players"`
}

// ============================================================================
// START GAME (start_game)
// ============================================================================
// tygo:generate
type StartGameRequest struct {
	RoomCode string `json:"room_code"`
	PlayerID string `json:"player_id"`
}

// ============================================================================
// SUBMIT BID (submit_bid)
// ============================================================================
// tygo:generate
type SubmitBidRequest struct {
	RoomCode string `json:"room_code"`
	PlayerID string `json:"player_id"`
	Bid      *int   `json:"bid"`
}

// ============================================================================
// PLAY CARD (play_card)
// ============================================================================
// tygo:generate
type PlayCardRequest struct {
	RoomCode string `json:"room_code"`
	PlayerID string `json:"player_id"`
	Card     string `json:"card"`
}

// ============================================================================
// STATE (get_state)
// ============================================================================
// tygo:generate
type GetStateRequest struct {
	RoomCode string `json:"room_code"`
	PlayerID string `json:"player_id"`
}

// tygo:generate
type StateResponse struct {
	Room       RoomView           `json:"room"`
	Game       *judgment.GameView `json:"game,omitempty"`
	LastResult *scoreboard.Entry  `json:"last_result,omitempty"`
	Scoreboard []scoreboard.Entry `json:"scoreboard"`
}

// tygo:generate
type RoomView struct {
	Code       string       `json:"code"`
	Status     RoomStatus   `json:"status"`
	HostID     string       `json:"host_id"`
	CreatedAt  string       `json:"created_at"`
	BaseCards  int          `json:"base_cards"`
	MaxPlayers int          `json:"max_players"`
	Players    []PlayerView `json:"players"`
}

// tygo:generate
type PlayerView struct {
	PlayerID    string `json:"player_id"`
	Name        string `json:"name"`
	Seat        int    `json:"seat"`
	TotalScore  int    `json:"total_score"`
	CorrectBids int    `json:"correct_bids"`
	IsHost      bool   `json:"is_host"`
	IsYou       bool   `json:"is_you"` // Personalized for each client
}

// ============================================================================
// SCOREBOARD (get_scoreboard)
// ============================================================================
// tygo:generate
type ScoreboardResponse struct {
	Entries []scoreboard.Entry `json:"entries"`
}

// ============================================================================
// HEALTH
// ============================================================================
// tygo:generate
type HealthResponse struct {
	Status     string `json:"status"`
	Rooms      int    `json:"rooms"`
	Sessions   int    `json:"sessions"`
	Scoreboard string `json:"scoreboard"`
}
