package server

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionManager_StoreAndRetrieve(t *testing.T) {
	sm := NewSessionManager()

	session := SessionInfo{PlayerID: "p-123", RoomCode: "ABCD", Name: "Alice", Seat: 0}
	sm.StoreSession(session)

	retrieved, err := sm.GetSession("p-123")
	assert.NoError(t, err)
	assert.Equal(t, session, retrieved)
	assert.Equal(t, 1, sm.Count())
}

func TestSessionManager_UnknownPlayer(t *testing.T) {
	sm := NewSessionManager()

	_, err := sm.GetSession("nobody")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

// Seat numbers are stable per player even when several share a room.
func TestSessionManager_SameRoom(t *testing.T) {
	sm := NewSessionManager()

	for seat := range 4 {
		sm.StoreSession(SessionInfo{
			PlayerID: fmt.Sprintf("p-%d", seat),
			RoomCode: "SAME",
			Name:     fmt.Sprintf("Player%d", seat),
			Seat:     seat,
		})
	}

	for seat := range 4 {
		retrieved, err := sm.GetSession(fmt.Sprintf("p-%d", seat))
		assert.NoError(t, err)
		assert.Equal(t, "SAME", retrieved.RoomCode)
		assert.Equal(t, seat, retrieved.Seat)
	}
}

func TestSessionManager_ConcurrentAccess(t *testing.T) {
	sm := NewSessionManager()
	const numGoroutines = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines * 2)
	for i := range numGoroutines {
		go func() {
			defer wg.Done()
			sm.StoreSession(SessionInfo{PlayerID: fmt.Sprintf("p-%d", i), RoomCode: "RACE"})
		}()
		go func() {
			defer wg.Done()
			sm.GetSession(fmt.Sprintf("p-%d", i))
		}()
	}
	wg.Wait()

	assert.Equal(t, numGoroutines, sm.Count())
}
