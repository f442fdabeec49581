package judgment

import (
	"judgment-server/internal/game"
)

type Phase string

const (
	PhaseDealing  Phase = "dealing"
	PhaseBidding  Phase = "bidding"
	PhasePlaying  Phase = "playing"
	PhaseComplete Phase = "complete"
)

// Round is one hand of the pyramid: deal, bid, play CardsPerPlayer tricks, score.
type Round struct {
	Index          int                    `json:"index"`
	CardsPerPlayer int                    `json:"cards_per_player"`
	Trump          game.Suit              `json:"trump"`
	Seats          []string               `json:"seats"`
	DealerID       string                 `json:"dealer_id"`
	StarterID      string                 `json:"starter_id"`
	Phase          Phase                  `json:"phase"`
	Blind          bool                   `json:"blind"`
	Bids           map[string]int         `json:"bids"`
	TricksWon      map[string]int         `json:"tricks_won"`
	Hands          map[string][]game.Card `json:"hands"`
	CurrentTrick   []Play                 `json:"current_trick"`
	CurrentTurn    string                 `json:"current_turn"`
	Tricks         []Trick                `json:"tricks"`

	// FirstTrickLeader won the first trick and deals the following round.
	FirstTrickLeader string `json:"first_trick_leader"`
}

// NewRound deals a round from deck and opens bidding with the seat after the dealer.
func NewRound(index, cardsPerPlayer int, seats []string, dealerID string, deck *game.Deck) (*Round, error) {
	starter := game.NextSeat(seats, dealerID)

	r := &Round{
		Index:          index,
		CardsPerPlayer: cardsPerPlayer,
		Trump:          TrumpForRound(index),
		Seats:          seats,
		DealerID:       dealerID,
		StarterID:      starter,
		Phase:          PhaseDealing,
		Blind:          cardsPerPlayer == 1,
		Bids:           make(map[string]int, len(seats)),
		TricksWon:      make(map[string]int, len(seats)),
	}
	for _, id := range seats {
		r.TricksWon[id] = 0
	}

	hands, err := game.Deal(deck, seats, cardsPerPlayer)
	if err != nil {
		return nil, err
	}
	r.Hands = hands

	r.Phase = PhaseBidding
	r.CurrentTurn = starter
	return r, nil
}

// TrumpForRound rotates trump S, D, C, H by zero-based round index.
func TrumpForRound(index int) game.Suit {
	return game.Suits[index%len(game.Suits)]
}

// BidPoints is the score for making a bid exactly.
func BidPoints(bid int) int {
	return 10 + 11*bid
}

// Result is one player's outcome for a completed round.
type Result struct {
	Bid    int  `json:"bid"`
	Tricks int  `json:"tricks"`
	Points int  `json:"points"`
	Hit    bool `json:"hit"`
}

// Results scores a completed round. Only an exact bid scores; over and under both earn zero.
func (r *Round) Results() map[string]Result {
	results := make(map[string]Result, len(r.Seats))
	for _, id := range r.Seats {
		bid, hasBid := r.Bids[id]
		tricks := r.TricksWon[id]
		res := Result{Bid: bid, Tricks: tricks}
		if hasBid && bid == tricks {
			res.Hit = true
			res.Points = BidPoints(bid)
		}
		results[id] = res
	}
	return results
}
