package judgment

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"judgment-server/internal/game"
)

func card(code string) game.Card {
	c, err := game.ParseCard(code)
	if err != nil {
		panic(err)
	}
	return c
}

func cards(codes ...string) []game.Card {
	out := make([]game.Card, 0, len(codes))
	for _, code := range codes {
		out = append(out, card(code))
	}
	return out
}

// biddingRound builds a round in the bidding phase without dealing.
func biddingRound(seats []string, dealer string, cardsPerPlayer int) *Round {
	starter := game.NextSeat(seats, dealer)
	r := &Round{
		CardsPerPlayer: cardsPerPlayer,
		Trump:          game.Spades,
		Seats:          seats,
		DealerID:       dealer,
		StarterID:      starter,
		Phase:          PhaseBidding,
		Blind:          cardsPerPlayer == 1,
		Bids:           map[string]int{},
		TricksWon:      map[string]int{},
		Hands:          map[string][]game.Card{},
		CurrentTurn:    starter,
	}
	for _, id := range seats {
		r.TricksWon[id] = 0
	}
	return r
}

// playingRound builds a round whose bids are in and whose hands are fixed.
func playingRound(trump game.Suit, seats []string, hands map[string][]game.Card) *Round {
	r := biddingRound(seats, seats[len(seats)-1], len(hands[seats[0]]))
	r.Trump = trump
	r.Hands = hands
	r.Phase = PhasePlaying
	r.CurrentTurn = r.StarterID
	for _, id := range seats {
		r.Bids[id] = 0
	}
	return r
}

func TestRoundSequence(t *testing.T) {
	assert.Equal(t, []int{8, 7, 6, 5, 4, 3, 2, 1, 2, 3, 4, 5, 6, 7, 8}, RoundSequence(8))
	assert.Equal(t, []int{4, 3, 2, 1, 2, 3, 4}, RoundSequence(4))
	assert.Len(t, RoundSequence(16), 31)
}

func TestTrumpRotation(t *testing.T) {
	want := []game.Suit{game.Spades, game.Diamonds, game.Clubs, game.Hearts, game.Spades, game.Diamonds}
	for i, suit := range want {
		assert.Equal(t, suit, TrumpForRound(i), "round %d", i+1)
	}
}

func TestMaxPlayers(t *testing.T) {
	for base, want := range map[int]int{4: 12, 8: 6, 16: 3} {
		got, err := MaxPlayers(base)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Less(t, base*got, game.DeckSize)
	}

	_, err := MaxPlayers(5)
	assert.ErrorIs(t, err, ErrInvalidBaseCards)
}

func TestNewRoundDeals(t *testing.T) {
	assert := assert.New(t)
	seats := []string{"a", "b", "c"}

	r, err := NewRound(2, 6, seats, "b", game.NewShuffledDeck())
	require.NoError(t, err)

	assert.Equal(PhaseBidding, r.Phase)
	assert.Equal(game.Clubs, r.Trump)
	assert.Equal("b", r.DealerID)
	assert.Equal("c", r.StarterID)
	assert.Equal("c", r.CurrentTurn)
	assert.False(r.Blind)

	seen := map[game.Card]bool{}
	for _, id := range seats {
		assert.Len(r.Hands[id], 6)
		for _, c := range r.Hands[id] {
			assert.False(seen[c], "card %s dealt twice", c)
			seen[c] = true
		}
	}
}

func TestNewRoundBlind(t *testing.T) {
	r, err := NewRound(3, 1, []string{"a", "b"}, "a", game.NewShuffledDeck())
	require.NoError(t, err)
	assert.True(t, r.Blind)
}

func TestNewRoundDealError(t *testing.T) {
	seats := make([]string, 7)
	for i := range seats {
		seats[i] = fmt.Sprintf("p%d", i)
	}

	_, err := NewRound(0, 8, seats, "p0", game.NewDeck())

	var dealErr *game.DealError
	assert.ErrorAs(t, err, &dealErr)
}

func TestSubmitBidTurnOrder(t *testing.T) {
	assert := assert.New(t)
	r := biddingRound([]string{"a", "b", "c"}, "a", 3)

	assert.ErrorIs(r.SubmitBid("a", 1), ErrNotYourTurn, "dealer bids last")
	assert.ErrorIs(r.SubmitBid("c", 1), ErrNotYourTurn)

	assert.NoError(r.SubmitBid("b", 1))
	assert.Equal("c", r.CurrentTurn)
	assert.NoError(r.SubmitBid("c", 1))
	assert.Equal("a", r.CurrentTurn)
	assert.Equal(PhaseBidding, r.Phase)

	assert.NoError(r.SubmitBid("a", 0))
	assert.Equal(PhasePlaying, r.Phase)
	assert.Equal("b", r.CurrentTurn, "starter leads the first trick")
	assert.Equal(map[string]int{"a": 0, "b": 1, "c": 1}, r.Bids)
}

func TestSubmitBidRange(t *testing.T) {
	r := biddingRound([]string{"a", "b"}, "a", 2)

	assert.ErrorIs(t, r.SubmitBid("b", -1), ErrInvalidBidRange)
	assert.ErrorIs(t, r.SubmitBid("b", 3), ErrInvalidBidRange)
	assert.Empty(t, r.Bids, "rejected bids leave no trace")
	assert.NoError(t, r.SubmitBid("b", 2))
}

func TestSubmitBidWrongPhase(t *testing.T) {
	r := playingRound(game.Spades, []string{"a", "b"}, map[string][]game.Card{
		"a": cards("2S"), "b": cards("3S"),
	})
	assert.ErrorIs(t, r.SubmitBid("b", 0), ErrWrongPhase)
}

func TestDealerOnlyForbiddenValue(t *testing.T) {
	seats := []string{"a", "b", "c"}

	for c := 1; c <= 4; c++ {
		for b1 := 0; b1 <= c; b1++ {
			for b2 := 0; b2 <= c; b2++ {
				forbidden := c - (b1 + b2)
				for v := 0; v <= c; v++ {
					r := biddingRound(seats, "c", c)
					require.NoError(t, r.SubmitBid("a", b1))
					require.NoError(t, r.SubmitBid("b", b2))

					err := r.SubmitBid("c", v)
					if v == forbidden {
						assert.ErrorIs(t, err, ErrDealerBidForbidden, "c=%d s=%d v=%d", c, b1+b2, v)
						_, recorded := r.Bids["c"]
						assert.False(t, recorded)
						assert.Equal(t, PhaseBidding, r.Phase)
					} else {
						assert.NoError(t, err, "c=%d s=%d v=%d", c, b1+b2, v)
					}
				}
			}
		}
	}
}

func TestAllowedBids(t *testing.T) {
	assert := assert.New(t)
	r := biddingRound([]string{"a", "b", "c"}, "c", 3)

	assert.Equal([]int{0, 1, 2, 3}, r.AllowedBids("a"))
	assert.Nil(r.AllowedBids("b"), "not b's turn yet")

	assert.NoError(r.SubmitBid("a", 1))
	assert.NoError(r.SubmitBid("b", 1))
	assert.Equal([]int{0, 2, 3}, r.AllowedBids("c"))
}

func TestAllowedBidsDealerOverBid(t *testing.T) {
	r := biddingRound([]string{"a", "b"}, "b", 2)
	require.NoError(t, r.SubmitBid("a", 2))

	assert.Equal(t, []int{1, 2}, r.AllowedBids("b"))
}

func TestBlindRoundBidding(t *testing.T) {
	assert := assert.New(t)
	seats := []string{"a", "b", "c"}

	// Others sum to one: zero would make the total exact.
	r := biddingRound(seats, "c", 1)
	assert.True(r.Blind)
	assert.NoError(r.SubmitBid("a", 1))
	assert.NoError(r.SubmitBid("b", 0))
	assert.Equal([]int{1}, r.AllowedBids("c"))
	assert.ErrorIs(r.SubmitBid("c", 0), ErrDealerBidForbidden)
	assert.NoError(r.SubmitBid("c", 1))

	// Others sum to zero: dealer must bid zero.
	r = biddingRound(seats, "c", 1)
	assert.NoError(r.SubmitBid("a", 0))
	assert.NoError(r.SubmitBid("b", 0))
	assert.Equal([]int{0}, r.AllowedBids("c"))
	assert.ErrorIs(r.SubmitBid("c", 1), ErrDealerBidForbidden)
	assert.NoError(r.SubmitBid("c", 0))
}

func TestResults(t *testing.T) {
	assert := assert.New(t)
	r := biddingRound([]string{"a", "b", "c"}, "c", 4)
	r.Bids = map[string]int{"a": 3, "b": 3, "c": 0}
	r.TricksWon = map[string]int{"a": 3, "b": 2, "c": 0}

	results := r.Results()

	assert.Equal(Result{Bid: 3, Tricks: 3, Points: 43, Hit: true}, results["a"])
	assert.Equal(Result{Bid: 3, Tricks: 2, Points: 0, Hit: false}, results["b"])
	assert.Equal(Result{Bid: 0, Tricks: 0, Points: 10, Hit: true}, results["c"])
}

func TestResultsOverBidScoresZero(t *testing.T) {
	r := biddingRound([]string{"a", "b"}, "b", 3)
	r.Bids = map[string]int{"a": 1, "b": 1}
	r.TricksWon = map[string]int{"a": 2, "b": 1}

	res := r.Results()["a"]
	assert.False(t, res.Hit)
	assert.Zero(t, res.Points)
}

func TestBidPoints(t *testing.T) {
	assert.Equal(t, 10, BidPoints(0))
	assert.Equal(t, 43, BidPoints(3))
	assert.Equal(t, 186, BidPoints(16))
}
