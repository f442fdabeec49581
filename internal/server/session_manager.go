package server

import (
	"sync"
)

// SessionInfo lets a client holding only its player id find its room again.
type SessionInfo struct {
	PlayerID string `json:"player_id"`
	RoomCode string `json:"room_code"`
	Name     string `json:"player_name"`
	Seat     int    `json:"seat"`
}

type SessionManager struct {
	sessions map[string]SessionInfo // PlayerID -> SessionInfo
	mu       sync.RWMutex
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]SessionInfo),
	}
}

func (sm *SessionManager) StoreSession(info SessionInfo) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.sessions[info.PlayerID] = info
}

func (sm *SessionManager) GetSession(playerID string) (SessionInfo, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.sessions[playerID]
	if !exists {
		return SessionInfo{}, ErrPlayerNotFound
	}

	return session, nil
}

func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}
