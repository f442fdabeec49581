package server

import (
	"errors"
	"net/http"

	"judgment-server/internal/judgment"
)

var (
	ErrRoomNotFound   = judgment.NewRuleError("ROOM_NOT_FOUND", "Room not found")
	ErrRoomFull       = judgment.NewRuleError("ROOM_FULL", "Room is full")
	ErrAlreadyStarted = judgment.NewRuleError("ALREADY_STARTED", "Game already started")
	ErrNotHost        = judgment.NewRuleError("NOT_HOST", "Only the host can start the game")
	ErrGameNotStarted = judgment.NewRuleError("GAME_NOT_STARTED", "The game has not started")
	ErrPlayerNotFound = judgment.NewRuleError("PLAYER_NOT_FOUND", "Unknown player")
	ErrInvalidCard    = judgment.NewRuleError("INVALID_CARD", "Invalid card")
	ErrInvalidBid     = judgment.NewRuleError("INVALID_BID", "Bid must be an integer")
	ErrNameInvalid    = judgment.NewRuleError("NAME_INVALID", "Name is required")
	ErrInvalidRequest = judgment.NewRuleError("INVALID_REQUEST", "Invalid JSON")
	ErrRateLimited    = judgment.NewRuleError("RATE_LIMITED", "Too many requests, slow down")
)

const codeInternal = "INTERNAL"

// statusFor maps an error to the HTTP status it is answered with.
func statusFor(err error) int {
	var ruleErr *judgment.RuleError
	switch {
	case errors.Is(err, ErrRoomNotFound), errors.Is(err, ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.As(err, &ruleErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage splits err into the message and code shown to clients. Internal failures are
// not described beyond their code.
func errorMessage(err error) ErrorMessage {
	var ruleErr *judgment.RuleError
	if errors.As(err, &ruleErr) {
		return ErrorMessage{Message: ruleErr.Message, Code: ruleErr.Code}
	}
	return ErrorMessage{Message: "Internal server error", Code: codeInternal}
}
