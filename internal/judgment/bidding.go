package judgment

import (
	"judgment-server/internal/game"
)

// SubmitBid records playerID's bid. Bidding runs clockwise from the starter, so the dealer
// always bids last and may not bring the total to exactly CardsPerPlayer.
func (r *Round) SubmitBid(playerID string, value int) error {
	if r.Phase != PhaseBidding {
		return ErrWrongPhase
	}
	if playerID != r.CurrentTurn {
		return ErrNotYourTurn
	}
	if value < 0 || value > r.CardsPerPlayer {
		return ErrInvalidBidRange
	}
	if playerID == r.DealerID && r.bidTotal()+value == r.CardsPerPlayer {
		return ErrDealerBidForbidden
	}

	r.Bids[playerID] = value

	if len(r.Bids) == len(r.Seats) {
		r.Phase = PhasePlaying
		r.CurrentTurn = r.StarterID
		return nil
	}

	r.CurrentTurn = game.NextSeat(r.Seats, playerID)
	return nil
}

// AllowedBids lists the values playerID could bid right now. It is empty when it is not
// their turn to bid.
func (r *Round) AllowedBids(playerID string) []int {
	if r.Phase != PhaseBidding || playerID != r.CurrentTurn {
		return nil
	}

	forbidden := -1
	if playerID == r.DealerID {
		forbidden = r.CardsPerPlayer - r.bidTotal()
	}

	allowed := make([]int, 0, r.CardsPerPlayer+1)
	for v := 0; v <= r.CardsPerPlayer; v++ {
		if v != forbidden {
			allowed = append(allowed, v)
		}
	}
	return allowed
}

func (r *Round) bidTotal() int {
	total := 0
	for _, bid := range r.Bids {
		total += bid
	}
	return total
}
