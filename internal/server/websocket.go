package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"judgment-server/internal/judgment"
	"judgment-server/internal/logging"
)

// websocketHandler serves the request/response protocol: each client frame gets exactly one
// reply frame and nothing is sent unprompted.
func (s *Server) websocketHandler(w http.ResponseWriter, r *http.Request) {
	socket, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: originPatterns(s.cfg.CORSOrigin),
	})
	if err != nil {
		logging.Warn("Failed to open websocket: %v", err)
		return
	}
	defer socket.Close(websocket.StatusGoingAway, "Server closing")

	ctx := r.Context()

	connectionID := uuid.New().String()
	logging.Debug("New connection: %s from %s", connectionID, clientAddr(r))
	defer func() {
		s.rateLimiter.RemoveClient(connectionID)
		logging.Debug("Connection closed: %s", connectionID)
	}()

	for {
		msgType, data, err := socket.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure {
				logging.Debug("Connection %s read error: %v", connectionID, err)
			}
			return
		}

		if msgType != websocket.MessageText {
			logging.Debug("Non-text input from %s", connectionID)
			continue
		}

		if !s.rateLimiter.Allow(connectionID) {
			logging.Warn("Rate limited connection %s", connectionID)
			s.sendError(ctx, socket, ErrRateLimited)
			continue
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logging.Warn("Invalid JSON from %s: %v", connectionID, err)
			s.sendError(ctx, socket, ErrInvalidRequest)
			continue
		}

		logging.Debug("Message type '%s' from %s", msg.Type, connectionID)

		reply := s.handleMessage(ctx, msg)
		if err := s.sendMessage(ctx, socket, reply); err != nil {
			logging.Warn("Failed to send %s to %s: %v", reply.Type, connectionID, err)
			return
		}
	}
}

// handleMessage runs one client request and builds its reply.
func (s *Server) handleMessage(ctx context.Context, msg ClientMessage) ServerMessage {
	if err := ValidateMessageType(msg.Type); err != nil {
		return errorReply(err)
	}

	var (
		payload any
		err     error
	)

	switch msg.Type {
	case "ping":
		payload = struct{}{}

	case "create_room":
		var req CreateRoomRequest
		if err = decodePayload(msg.Payload, &req); err == nil {
			payload, err = s.createRoom(req)
		}

	case "join_room":
		var req JoinRoomRequest
		if err = decodePayload(msg.Payload, &req); err == nil {
			payload, err = s.joinRoom(req)
		}

	case "start_game":
		var req StartGameRequest
		if err = decodePayload(msg.Payload, &req); err == nil {
			payload, err = s.startGame(req)
		}

	case "submit_bid":
		var req SubmitBidRequest
		if err = decodePayload(msg.Payload, &req); err == nil {
			payload, err = s.submitBid(req)
		}

	case "play_card":
		var req PlayCardRequest
		if err = decodePayload(msg.Payload, &req); err == nil {
			payload, err = s.playCard(ctx, req)
		}

	case "get_state":
		var req GetStateRequest
		if err = decodePayload(msg.Payload, &req); err == nil {
			payload, err = s.getState(ctx, req)
		}

	case "get_scoreboard":
		payload, err = s.getScoreboard(ctx)
	}

	if err != nil {
		var ruleErr *judgment.RuleError
		if errors.As(err, &ruleErr) {
			logging.Warn("Message %s rejected: %v", msg.Type, err)
		} else {
			logging.Error("Message %s failed: %v", msg.Type, err)
		}
		return errorReply(err)
	}

	return ServerMessage{Type: resultType(msg.Type), Payload: payload}
}

// originPatterns turns the configured CORS origin into the host pattern websocket.Accept expects.
func originPatterns(origin string) []string {
	if u, err := url.Parse(origin); err == nil && u.Host != "" {
		return []string{u.Host}
	}
	return []string{origin}
}

func decodePayload(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return judgment.NewRuleError(ErrInvalidRequest.Code, "Missing payload")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return ErrInvalidRequest
	}
	return nil
}

func errorReply(err error) ServerMessage {
	return ServerMessage{Type: "error", Payload: errorMessage(err)}
}

func (s *Server) sendMessage(ctx context.Context, socket *websocket.Conn, msg ServerMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}
	return socket.Write(ctx, websocket.MessageText, data)
}

func (s *Server) sendError(ctx context.Context, socket *websocket.Conn, err error) {
	if err := s.sendMessage(ctx, socket, errorReply(err)); err != nil {
		logging.Warn("Failed to send error message: %v", err)
	}
}
