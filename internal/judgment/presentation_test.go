package judgment

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"judgment-server/internal/game"
)

func TestHandVisible(t *testing.T) {
	tests := []struct {
		name      string
		blind     bool
		phase     Phase
		owner     string
		requester string
		want      bool
	}{
		{"own hand", false, PhaseBidding, "a", "a", true},
		{"other hand", false, PhasePlaying, "a", "b", false},
		{"blind bidding", true, PhaseBidding, "a", "a", false},
		{"blind dealing", true, PhaseDealing, "a", "a", false},
		{"blind playing", true, PhasePlaying, "a", "a", true},
		{"blind other", true, PhasePlaying, "a", "b", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HandVisible(tt.blind, tt.phase, tt.owner, tt.requester))
		})
	}
}

func TestViewShowsOnlyOwnHand(t *testing.T) {
	assert := assert.New(t)
	g, err := NewGame(newPlayers("a", "b"), 4, WithDeckSource(game.NewDeck))
	require.NoError(t, err)

	view := g.View("a")
	assert.Len(view.Hand, 4)
	assert.Equal("2S", view.Hand[0].Card)
	assert.Equal("2♠", view.Hand[0].Display)
	assert.Nil(view.AllowedBids, "b bids first")

	view = g.View("b")
	assert.Equal("6S", view.Hand[0].Card)
	assert.Equal([]int{0, 1, 2, 3, 4}, view.AllowedBids)
	assert.Equal("name-b", view.CurrentTurn.PlayerName)

	spectator := g.View("nobody")
	assert.Nil(spectator.Hand)
	assert.Nil(spectator.AllowedBids)
	assert.Equal(PhaseBidding, spectator.Phase)
}

func TestViewHidesBlindHand(t *testing.T) {
	assert := assert.New(t)
	g, err := NewGame(newPlayers("a", "b"), 4)
	require.NoError(t, err)

	for g.Round.CardsPerPlayer != 1 {
		playRound(t, g)
	}

	view := g.View(g.Round.CurrentTurn)
	require.Len(t, view.Hand, 1)
	assert.Equal(HiddenCard, view.Hand[0].Card)
	assert.True(view.BlindBidding)

	for g.Round.Phase == PhaseBidding {
		id := g.Round.CurrentTurn
		require.NoError(t, g.SubmitBid(id, g.Round.AllowedBids(id)[0]))
	}

	view = g.View(g.Round.CurrentTurn)
	require.Len(t, view.Hand, 1)
	assert.NotEqual(HiddenCard, view.Hand[0].Card)
	assert.Len(view.AllowedCards, 1)
}

func TestViewIsIdempotent(t *testing.T) {
	g, err := NewGame(newPlayers("a", "b", "c"), 4)
	require.NoError(t, err)
	playRound(t, g)

	first, err := json.Marshal(g.View("a"))
	require.NoError(t, err)
	second, err := json.Marshal(g.View("a"))
	require.NoError(t, err)

	assert.JSONEq(t, string(first), string(second))
}

func TestViewRoundSummaries(t *testing.T) {
	assert := assert.New(t)
	g, err := NewGame(newPlayers("a", "b"), 4)
	require.NoError(t, err)
	playRound(t, g)

	view := g.View("a")
	require.Len(t, view.Rounds, 7)

	done := view.Rounds[0]
	assert.Equal("complete", done.Status)
	assert.Len(done.Results, 2)
	for id, res := range done.Results {
		assert.Contains([]string{"hit", "miss"}, res, id)
	}

	assert.True(view.Rounds[1].IsCurrent)
	assert.Equal("bidding", view.Rounds[1].Status)
	assert.Equal("pending", view.Rounds[2].Status)
	assert.Equal("C", view.Rounds[2].Trump.Code)

	require.NotNil(t, view.LastTrick)
	assert.Len(view.LastTrick.Cards, 2)
	assert.Equal(2, view.CurrentRound)
	assert.Equal(7, view.TotalRounds)
}

func TestViewFinishedGame(t *testing.T) {
	g, err := NewGame(newPlayers("a", "b"), 4)
	require.NoError(t, err)
	for !g.Finished {
		playRound(t, g)
	}

	view := g.View("a")
	assert.True(t, view.Finished)
	assert.Equal(t, PhaseComplete, view.Phase)
	assert.Equal(t, 7, view.CurrentRound)
	assert.Nil(t, view.Hand)
	assert.Nil(t, view.CurrentTurn)
}
