package judgment

import (
	"slices"

	"judgment-server/internal/game"
)

// Play is one card laid into a trick.
type Play struct {
	PlayerID string    `json:"player_id"`
	Card     game.Card `json:"card"`
}

// Trick is a resolved trick.
type Trick struct {
	Plays    []Play `json:"plays"`
	WinnerID string `json:"winner_id"`
}

// PlayCard lays card from playerID's hand into the current trick. The trick resolves once
// every seat has played, and the round completes after CardsPerPlayer tricks.
func (r *Round) PlayCard(playerID string, card game.Card) (*Trick, error) {
	if r.Phase != PhasePlaying {
		return nil, ErrWrongPhase
	}
	if playerID != r.CurrentTurn {
		return nil, ErrNotYourTurn
	}

	hand := r.Hands[playerID]
	if !slices.Contains(hand, card) {
		return nil, ErrCardNotInHand
	}
	if !playAllowed(r.CurrentTrick, hand, card) {
		return nil, ErrSuitFollowRequired
	}

	r.Hands[playerID], _ = game.RemoveCard(hand, card)
	r.CurrentTrick = append(r.CurrentTrick, Play{PlayerID: playerID, Card: card})

	if len(r.CurrentTrick) < len(r.Seats) {
		r.CurrentTurn = game.NextSeat(r.Seats, playerID)
		return nil, nil
	}

	trick := r.closeTrick()
	return &trick, nil
}

// AllowedCards lists the cards playerID may legally play now. It is empty when it is not
// their turn.
func (r *Round) AllowedCards(playerID string) []game.Card {
	if r.Phase != PhasePlaying || playerID != r.CurrentTurn {
		return nil
	}

	hand := r.Hands[playerID]
	if len(r.CurrentTrick) == 0 {
		return slices.Clone(hand)
	}

	led := r.CurrentTrick[0].Card.Suit
	if !game.HasSuit(hand, led) {
		return slices.Clone(hand)
	}

	allowed := make([]game.Card, 0, len(hand))
	for _, c := range hand {
		if c.Suit == led {
			allowed = append(allowed, c)
		}
	}
	return allowed
}

func (r *Round) closeTrick() Trick {
	winner := TrickWinner(r.CurrentTrick, r.Trump)
	trick := Trick{
		Plays:    slices.Clone(r.CurrentTrick),
		WinnerID: winner.PlayerID,
	}

	r.TricksWon[winner.PlayerID]++
	r.Tricks = append(r.Tricks, trick)
	if len(r.Tricks) == 1 {
		r.FirstTrickLeader = winner.PlayerID
	}
	r.CurrentTrick = nil
	r.CurrentTurn = winner.PlayerID

	if len(r.Tricks) == r.CardsPerPlayer {
		r.Phase = PhaseComplete
	}
	return trick
}

// playAllowed reports whether card may be played onto trick. A player holding the led suit
// must follow it; otherwise anything goes.
func playAllowed(trick []Play, hand []game.Card, card game.Card) bool {
	if len(trick) == 0 {
		return true
	}
	led := trick[0].Card.Suit
	if card.Suit == led {
		return true
	}
	return !game.HasSuit(hand, led)
}

// TrickWinner returns the highest trump in plays, or the highest card of the led suit when
// no trump was played. plays must not be empty.
func TrickWinner(plays []Play, trump game.Suit) Play {
	led := plays[0].Card.Suit
	winner := plays[0]

	for _, play := range plays[1:] {
		switch {
		case play.Card.Suit == trump:
			if winner.Card.Suit != trump || play.Card.Rank > winner.Card.Rank {
				winner = play
			}
		case winner.Card.Suit == trump:
		case play.Card.Suit == led && play.Card.Rank > winner.Card.Rank:
			winner = play
		}
	}
	return winner
}
