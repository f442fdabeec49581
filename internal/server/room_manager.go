package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"judgment-server/internal/game"
	"judgment-server/internal/judgment"
	"judgment-server/internal/logging"
	"judgment-server/internal/scoreboard"
)

type RoomStatus string

const (
	StatusWaiting  RoomStatus = "waiting"
	StatusPlaying  RoomStatus = "playing"
	StatusFinished RoomStatus = "finished"
)

// Room is one table. All access to its fields goes through mu.
type Room struct {
	Code       string
	HostID     string
	BaseCards  int
	MaxPlayers int
	Status     RoomStatus
	Players    []*judgment.Player
	Game       *judgment.Game
	LastResult *scoreboard.Entry
	CreatedAt  time.Time
	UpdatedAt  time.Time

	mu sync.RWMutex
}

// RoomManager is the process-wide room registry. Rooms live until the process exits.
type RoomManager struct {
	rooms     map[string]*Room
	usedCodes map[string]bool
	mu        sync.RWMutex

	sessions *SessionManager
	store    scoreboard.Store
	recent   int
	gameOpts []judgment.GameOption
}

type RoomManagerOption func(*RoomManager)

// WithGameOptions passes opts to every game the manager starts.
func WithGameOptions(opts ...judgment.GameOption) RoomManagerOption {
	return func(rm *RoomManager) {
		rm.gameOpts = append(rm.gameOpts, opts...)
	}
}

// WithRecentEntries sets how many scoreboard entries a state snapshot carries.
func WithRecentEntries(n int) RoomManagerOption {
	return func(rm *RoomManager) {
		rm.recent = n
	}
}

func NewRoomManager(store scoreboard.Store, sessions *SessionManager, opts ...RoomManagerOption) *RoomManager {
	rm := &RoomManager{
		rooms:     make(map[string]*Room),
		usedCodes: make(map[string]bool),
		sessions:  sessions,
		store:     store,
		recent:    10,
	}
	for _, opt := range opts {
		opt(rm)
	}
	return rm
}

func (rm *RoomManager) CreateRoom(hostName string, baseCards int) (JoinResponse, error) {
	name, err := ValidatePlayerName(hostName)
	if err != nil {
		return JoinResponse{}, err
	}
	maxPlayers, err := judgment.MaxPlayers(baseCards)
	if err != nil {
		return JoinResponse{}, err
	}

	hostID := uuid.New().String()
	now := time.Now().UTC()

	rm.mu.Lock()
	roomCode := GenerateRoomCode(rm.usedCodes)
	rm.usedCodes[roomCode] = true
	room := &Room{
		Code:       roomCode,
		HostID:     hostID,
		BaseCards:  baseCards,
		MaxPlayers: maxPlayers,
		Status:     StatusWaiting,
		Players:    []*judgment.Player{{ID: hostID, Name: name, Seat: 0}},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	rm.rooms[roomCode] = room
	rm.mu.Unlock()

	rm.sessions.StoreSession(SessionInfo{PlayerID: hostID, RoomCode: roomCode, Name: name, Seat: 0})
	logging.Info("Room %s created by host %s (%s) with base hand %d", roomCode, name, hostID, baseCards)

	return JoinResponse{
		RoomCode:   roomCode,
		PlayerID:   hostID,
		PlayerName: name,
		BaseCards:  baseCards,
		MaxPlayers: maxPlayers,
	}, nil
}

func (rm *RoomManager) JoinRoom(roomCode, playerName string) (JoinResponse, error) {
	name, err := ValidatePlayerName(playerName)
	if err != nil {
		return JoinResponse{}, err
	}
	room, err := rm.GetRoom(roomCode)
	if err != nil {
		return JoinResponse{}, err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.Status != StatusWaiting {
		return JoinResponse{}, ErrAlreadyStarted
	}
	if len(room.Players) >= room.MaxPlayers {
		return JoinResponse{}, judgment.NewRuleError(ErrRoomFull.Code,
			fmt.Sprintf("Player limit reached for base %d: maximum %d players", room.BaseCards, room.MaxPlayers))
	}

	playerID := uuid.New().String()
	seat := len(room.Players)
	room.Players = append(room.Players, &judgment.Player{ID: playerID, Name: name, Seat: seat})
	room.UpdatedAt = time.Now().UTC()

	rm.sessions.StoreSession(SessionInfo{PlayerID: playerID, RoomCode: room.Code, Name: name, Seat: seat})
	logging.Info("Player %s (%s) joined room %s; total players=%d", name, playerID, room.Code, len(room.Players))

	return JoinResponse{
		RoomCode:   room.Code,
		PlayerID:   playerID,
		PlayerName: name,
		BaseCards:  room.BaseCards,
		MaxPlayers: room.MaxPlayers,
	}, nil
}

func (rm *RoomManager) StartGame(roomCode, playerID string) error {
	room, err := rm.GetRoom(roomCode)
	if err != nil {
		return err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.HostID != playerID {
		return ErrNotHost
	}
	if len(room.Players) < 2 {
		return judgment.ErrTooFewPlayers
	}
	if room.Status != StatusWaiting {
		return ErrAlreadyStarted
	}

	g, err := judgment.NewGame(room.Players, room.BaseCards, rm.gameOpts...)
	if err != nil {
		var dealErr *game.DealError
		if errors.As(err, &dealErr) {
			logging.Error("Room %s cannot be dealt: %v", room.Code, err)
		}
		return err
	}

	room.Game = g
	room.Status = StatusPlaying
	room.UpdatedAt = time.Now().UTC()

	logging.Info("Starting game in room %s with %d players; sequence=%v", room.Code, len(room.Players), g.Sequence)
	return nil
}

func (rm *RoomManager) SubmitBid(roomCode, playerID string, bid int) error {
	room, err := rm.GetRoom(roomCode)
	if err != nil {
		return err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.Game == nil {
		return ErrGameNotStarted
	}
	if err := room.Game.SubmitBid(playerID, bid); err != nil {
		return err
	}

	room.UpdatedAt = time.Now().UTC()
	logging.Debug("Room %s round %d: %s bid %d", room.Code, room.Game.CurrentRound+1, room.playerLog(playerID), bid)
	return nil
}

// PlayCard plays cardCode for playerID. When the play finishes the game, the scoreboard entry
// is appended after the room is unlocked.
func (rm *RoomManager) PlayCard(ctx context.Context, roomCode, playerID, cardCode string) error {
	card, err := game.ParseCard(cardCode)
	if err != nil {
		return ErrInvalidCard
	}
	room, err := rm.GetRoom(roomCode)
	if err != nil {
		return err
	}

	entry, err := room.playCard(playerID, card)
	if err != nil {
		return err
	}
	if entry == nil {
		return nil
	}

	if err := rm.store.Append(ctx, *entry); err != nil {
		logging.Error("Failed to record scoreboard entry for room %s: %v", entry.RoomCode, err)
	}
	return nil
}

func (r *Room) playCard(playerID string, card game.Card) (*scoreboard.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Game == nil {
		return nil, ErrGameNotStarted
	}
	round := r.Game.CurrentRound + 1

	outcome, err := r.Game.PlayCard(playerID, card)
	if err != nil {
		var dealErr *game.DealError
		if errors.As(err, &dealErr) {
			logging.Error("Room %s cannot deal round %d: %v", r.Code, round+1, err)
		}
		return nil, err
	}
	r.UpdatedAt = time.Now().UTC()

	logging.Debug("Room %s round %d: %s played %s", r.Code, round, r.playerLog(playerID), card)
	if outcome.Trick != nil {
		logging.Info("Room %s round %d: trick won by %s", r.Code, round, r.playerLog(outcome.Trick.WinnerID))
	}
	if outcome.RoundRecord != nil {
		logging.Info("Room %s round %d complete; scores=%s", r.Code, round, r.scoresLog())
	}
	if !outcome.GameFinished {
		return nil, nil
	}

	r.Status = StatusFinished
	entry := scoreboard.NewEntry(r.Code, r.BaseCards, r.Players, *r.Game.Standings, r.UpdatedAt)
	r.LastResult = &entry

	logging.Info("Room %s finished; score winners=%v guess winners=%v mega winners=%v",
		r.Code, entry.ScoreWinners, entry.GuessWinners, entry.MegaWinners)
	return &entry, nil
}

// State builds the snapshot playerID may see. The room is read under its lock; the scoreboard
// is read afterwards.
func (rm *RoomManager) State(ctx context.Context, roomCode, playerID string) (StateResponse, error) {
	room, err := rm.GetRoom(roomCode)
	if err != nil {
		return StateResponse{}, err
	}

	resp := room.snapshot(playerID)

	recent, err := rm.store.Recent(ctx, rm.recent)
	if err != nil {
		logging.Error("Failed to read scoreboard for room %s: %v", room.Code, err)
		recent = []scoreboard.Entry{}
	}
	resp.Scoreboard = recent
	return resp, nil
}

func (r *Room) snapshot(playerID string) StateResponse {
	r.mu.RLock()
	defer r.mu.RUnlock()

	view := RoomView{
		Code:       r.Code,
		Status:     r.Status,
		HostID:     r.HostID,
		CreatedAt:  r.CreatedAt.Format(time.RFC3339),
		BaseCards:  r.BaseCards,
		MaxPlayers: r.MaxPlayers,
		Players:    make([]PlayerView, 0, len(r.Players)),
	}
	for _, p := range r.Players {
		view.Players = append(view.Players, PlayerView{
			PlayerID:    p.ID,
			Name:        p.Name,
			Seat:        p.Seat,
			TotalScore:  p.TotalScore,
			CorrectBids: p.CorrectBids,
			IsHost:      p.ID == r.HostID,
			IsYou:       p.ID == playerID,
		})
	}

	resp := StateResponse{Room: view}
	if r.Game != nil {
		gv := r.Game.View(playerID)
		resp.Game = &gv
	}
	if r.LastResult != nil {
		result := *r.LastResult
		resp.LastResult = &result
	}
	return resp
}

func (rm *RoomManager) Scoreboard(ctx context.Context) ([]scoreboard.Entry, error) {
	return rm.store.List(ctx)
}

func (rm *RoomManager) Session(playerID string) (SessionInfo, error) {
	return rm.sessions.GetSession(playerID)
}

// GetRoom finds a room by code, case-insensitively.
func (rm *RoomManager) GetRoom(roomCode string) (*Room, error) {
	roomCode = NormalizeRoomCode(roomCode)
	if err := ValidateRoomCode(roomCode); err != nil {
		return nil, ErrRoomNotFound
	}

	rm.mu.RLock()
	defer rm.mu.RUnlock()

	room, exists := rm.rooms[roomCode]
	if !exists {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

func (rm *RoomManager) RoomCount() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return len(rm.rooms)
}

func (r *Room) playerLog(playerID string) string {
	for _, p := range r.Players {
		if p.ID == playerID {
			return fmt.Sprintf("%s (%s)", p.Name, p.ID)
		}
	}
	return playerID
}

func (r *Room) scoresLog() string {
	parts := make([]string, 0, len(r.Players))
	for _, p := range r.Players {
		parts = append(parts, fmt.Sprintf("%s=%d", p.Name, p.TotalScore))
	}
	return strings.Join(parts, ", ")
}
