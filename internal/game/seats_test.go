package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"judgment-server/internal/game"
)

func TestNextSeat(t *testing.T) {
	seats := []string{"a", "b", "c"}

	assert.Equal(t, "b", game.NextSeat(seats, "a"))
	assert.Equal(t, "c", game.NextSeat(seats, "b"))
	assert.Equal(t, "a", game.NextSeat(seats, "c"), "rotation wraps around")
	assert.Equal(t, "", game.NextSeat(seats, "z"))
}

func TestSeatsFrom(t *testing.T) {
	seats := []string{"a", "b", "c", "d"}

	assert.Equal(t, []string{"c", "d", "a", "b"}, game.SeatsFrom(seats, "c"))
	assert.Equal(t, seats, game.SeatsFrom(seats, "a"))
	assert.Nil(t, game.SeatsFrom(seats, "z"))
}
