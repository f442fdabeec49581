package judgment

import (
	"slices"

	"judgment-server/internal/game"
)

// BaseHandOptions maps each allowed base hand size to the room capacity it supports.
// Every pair keeps base × players below the 52-card deck.
var BaseHandOptions = map[int]int{
	4:  12,
	8:  6,
	16: 3,
}

const DefaultBaseCards = 8

// MaxPlayers returns the room capacity for a base hand size.
func MaxPlayers(baseCards int) (int, error) {
	capacity, ok := BaseHandOptions[baseCards]
	if !ok {
		return 0, ErrInvalidBaseCards
	}
	return capacity, nil
}

// RoundSequence counts hand sizes down from base to one and back up: base, …, 1, 2, …, base.
func RoundSequence(baseCards int) []int {
	seq := make([]int, 0, 2*baseCards-1)
	for n := baseCards; n >= 1; n-- {
		seq = append(seq, n)
	}
	for n := 2; n <= baseCards; n++ {
		seq = append(seq, n)
	}
	return seq
}

type Player struct {
	ID          string `json:"player_id"`
	Name        string `json:"name"`
	Seat        int    `json:"seat"`
	TotalScore  int    `json:"total_score"`
	CorrectBids int    `json:"correct_bids"`
}

// RoundRecord is the scored summary of a completed round.
type RoundRecord struct {
	Index            int               `json:"index"`
	Cards            int               `json:"cards"`
	Trump            game.Suit         `json:"trump"`
	DealerID         string            `json:"dealer_id"`
	FirstTrickLeader string            `json:"first_trick_leader"`
	Results          map[string]Result `json:"results"`
}

// Game runs the round pyramid for one room.
type Game struct {
	Players      []*Player     `json:"players"`
	Seats        []string      `json:"seats"`
	BaseCards    int           `json:"base_cards"`
	Sequence     []int         `json:"sequence"`
	CurrentRound int           `json:"current_round"`
	Round        *Round        `json:"round"`
	History      []RoundRecord `json:"history"`
	LastTrick    *Trick        `json:"last_trick"`
	Finished     bool          `json:"finished"`
	Standings    *Standings    `json:"standings"`

	newDeck func() *game.Deck
}

type GameOption func(*Game)

// WithDeckSource replaces the shuffled deck used for every deal.
func WithDeckSource(source func() *game.Deck) GameOption {
	return func(g *Game) {
		g.newDeck = source
	}
}

// NewGame seats players in the given order and deals the first round with seat 0 as dealer.
// The players' totals are updated in place as rounds are scored.
func NewGame(players []*Player, baseCards int, opts ...GameOption) (*Game, error) {
	if _, err := MaxPlayers(baseCards); err != nil {
		return nil, err
	}
	if len(players) < 2 {
		return nil, ErrTooFewPlayers
	}
	if len(players)*baseCards > game.DeckSize {
		return nil, &game.DealError{
			Players:        len(players),
			CardsPerPlayer: baseCards,
			Available:      game.DeckSize,
		}
	}

	seats := make([]string, len(players))
	for i, p := range players {
		p.Seat = i
		seats[i] = p.ID
	}

	g := &Game{
		Players:   players,
		Seats:     seats,
		BaseCards: baseCards,
		Sequence:  RoundSequence(baseCards),
		History:   make([]RoundRecord, 0, 2*baseCards-1),
		newDeck:   game.NewShuffledDeck,
	}
	for _, opt := range opts {
		opt(g)
	}

	if err := g.startRound(seats[0]); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) startRound(dealerID string) error {
	round, err := NewRound(g.CurrentRound, g.Sequence[g.CurrentRound], g.Seats, dealerID, g.newDeck())
	if err != nil {
		return err
	}
	g.Round = round
	return nil
}

// SubmitBid forwards a bid to the current round.
func (g *Game) SubmitBid(playerID string, value int) error {
	if g.Finished || g.Round == nil {
		return ErrGameFinished
	}
	return g.Round.SubmitBid(playerID, value)
}

// PlayOutcome describes what a successful play completed.
type PlayOutcome struct {
	Trick        *Trick
	RoundRecord  *RoundRecord
	GameFinished bool
}

// PlayCard forwards a play to the current round. When the play ends the round, the round is
// scored and the next one is dealt by the first-trick winner.
func (g *Game) PlayCard(playerID string, card game.Card) (PlayOutcome, error) {
	if g.Finished || g.Round == nil {
		return PlayOutcome{}, ErrGameFinished
	}

	trick, err := g.Round.PlayCard(playerID, card)
	if err != nil {
		return PlayOutcome{}, err
	}

	outcome := PlayOutcome{Trick: trick}
	if trick != nil {
		g.LastTrick = trick
	}
	if g.Round.Phase != PhaseComplete {
		return outcome, nil
	}

	record := g.scoreRound(g.Round)
	outcome.RoundRecord = &record

	g.CurrentRound++
	if g.CurrentRound >= len(g.Sequence) {
		g.Finished = true
		g.Round = nil
		standings := Tally(g.Players)
		g.Standings = &standings
		outcome.GameFinished = true
		return outcome, nil
	}

	if err := g.startRound(record.FirstTrickLeader); err != nil {
		return outcome, err
	}
	return outcome, nil
}

func (g *Game) scoreRound(r *Round) RoundRecord {
	results := r.Results()
	for _, p := range g.Players {
		res := results[p.ID]
		if res.Hit {
			p.TotalScore += res.Points
			p.CorrectBids++
		}
	}

	record := RoundRecord{
		Index:            r.Index,
		Cards:            r.CardsPerPlayer,
		Trump:            r.Trump,
		DealerID:         r.DealerID,
		FirstTrickLeader: r.FirstTrickLeader,
		Results:          results,
	}
	g.History = append(g.History, record)
	return record
}

// Player returns the seated player with id, or nil.
func (g *Game) Player(id string) *Player {
	i := slices.IndexFunc(g.Players, func(p *Player) bool { return p.ID == id })
	if i < 0 {
		return nil
	}
	return g.Players[i]
}
