package judgment

import (
	"maps"

	"judgment-server/internal/game"
)

// HiddenCard stands in for each card of a hand that may not be shown yet.
const HiddenCard = "??"

type CardView struct {
	Card    string `json:"card"`
	Display string `json:"display"`
}

func ViewCard(c game.Card) CardView {
	return CardView{Card: c.Code(), Display: c.Display()}
}

func viewCards(cards []game.Card) []CardView {
	views := make([]CardView, 0, len(cards))
	for _, c := range cards {
		views = append(views, ViewCard(c))
	}
	return views
}

type PlayView struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	CardView
}

type TrickView struct {
	WinnerID   string     `json:"winner_id"`
	WinnerName string     `json:"winner_name"`
	Cards      []PlayView `json:"cards"`
}

type TrumpView struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

func ViewTrump(s game.Suit) TrumpView {
	return TrumpView{Code: s.Code(), Name: s.String(), Symbol: s.Symbol()}
}

type TurnView struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

type RoundSummary struct {
	Round     int               `json:"round"`
	Cards     int               `json:"cards"`
	Trump     TrumpView         `json:"trump"`
	Status    string            `json:"status"`
	Bids      map[string]int    `json:"bids,omitempty"`
	TricksWon map[string]int    `json:"tricks_won,omitempty"`
	Points    map[string]int    `json:"points,omitempty"`
	Results   map[string]string `json:"results,omitempty"`
	IsCurrent bool              `json:"is_current,omitempty"`
}

// GameView is the game as one player may see it.
type GameView struct {
	Started        bool           `json:"started"`
	Finished       bool           `json:"finished"`
	CurrentRound   int            `json:"current_round"`
	TotalRounds    int            `json:"total_rounds"`
	CardsPerPlayer int            `json:"cards_per_player,omitempty"`
	DealerID       string         `json:"dealer_id,omitempty"`
	StarterID      string         `json:"starter_id,omitempty"`
	Phase          Phase          `json:"phase"`
	Trump          *TrumpView     `json:"trump,omitempty"`
	BlindBidding   bool           `json:"blind_bidding"`
	Bids           map[string]int `json:"bids"`
	TricksWon      map[string]int `json:"tricks_won"`
	CurrentTrick   []PlayView     `json:"current_trick"`
	LastTrick      *TrickView     `json:"last_trick,omitempty"`
	CurrentTurn    *TurnView      `json:"current_turn,omitempty"`
	Hand           []CardView     `json:"hand,omitempty"`
	AllowedBids    []int          `json:"allowed_bids,omitempty"`
	AllowedCards   []CardView     `json:"allowed_cards,omitempty"`
	Rounds         []RoundSummary `json:"rounds"`
}

// HandVisible decides whether requester sees owner's cards. Nobody sees another hand, and
// in a blind round the owner's own card stays face down until play begins.
func HandVisible(blind bool, phase Phase, owner, requester string) bool {
	if owner != requester {
		return false
	}
	if !blind {
		return true
	}
	return phase == PhasePlaying || phase == PhaseComplete
}

// View builds the state playerID is allowed to see. playerID may be a spectator id that is
// not seated, in which case no hand is included.
func (g *Game) View(playerID string) GameView {
	view := GameView{
		Started:      true,
		Finished:     g.Finished,
		CurrentRound: min(g.CurrentRound+1, len(g.Sequence)),
		TotalRounds:  len(g.Sequence),
		Phase:        PhaseComplete,
		Bids:         map[string]int{},
		TricksWon:    map[string]int{},
		CurrentTrick: []PlayView{},
		Rounds:       g.roundSummaries(),
	}
	if g.LastTrick != nil {
		tv := g.viewTrick(*g.LastTrick)
		view.LastTrick = &tv
	}

	r := g.Round
	if r == nil {
		return view
	}

	trump := ViewTrump(r.Trump)
	view.CardsPerPlayer = r.CardsPerPlayer
	view.DealerID = r.DealerID
	view.StarterID = r.StarterID
	view.Phase = r.Phase
	view.Trump = &trump
	view.BlindBidding = r.Blind
	view.Bids = copyCounts(r.Bids)
	view.TricksWon = copyCounts(r.TricksWon)
	view.CurrentTrick = g.viewPlays(r.CurrentTrick)
	view.CurrentTurn = &TurnView{PlayerID: r.CurrentTurn, PlayerName: g.playerName(r.CurrentTurn)}

	if hand, seated := r.Hands[playerID]; seated {
		if HandVisible(r.Blind, r.Phase, playerID, playerID) {
			view.Hand = viewCards(hand)
		} else {
			view.Hand = make([]CardView, len(hand))
			for i := range view.Hand {
				view.Hand[i] = CardView{Card: HiddenCard, Display: HiddenCard}
			}
		}
		view.AllowedBids = r.AllowedBids(playerID)
		view.AllowedCards = viewCards(r.AllowedCards(playerID))
		if len(view.AllowedCards) == 0 {
			view.AllowedCards = nil
		}
	}
	return view
}

func (g *Game) roundSummaries() []RoundSummary {
	summaries := make([]RoundSummary, 0, len(g.Sequence))
	for i, cards := range g.Sequence {
		summary := RoundSummary{
			Round:  i + 1,
			Cards:  cards,
			Trump:  ViewTrump(TrumpForRound(i)),
			Status: "pending",
		}

		switch {
		case i < len(g.History):
			record := g.History[i]
			summary.Status = string(PhaseComplete)
			summary.Bids = make(map[string]int, len(record.Results))
			summary.TricksWon = make(map[string]int, len(record.Results))
			summary.Points = make(map[string]int, len(record.Results))
			summary.Results = make(map[string]string, len(record.Results))
			for id, res := range record.Results {
				summary.Bids[id] = res.Bid
				summary.TricksWon[id] = res.Tricks
				summary.Points[id] = res.Points
				summary.Results[id] = "miss"
				if res.Hit {
					summary.Results[id] = "hit"
				}
			}
		case g.Round != nil && i == g.Round.Index:
			summary.Status = string(g.Round.Phase)
			summary.Bids = copyCounts(g.Round.Bids)
			summary.TricksWon = copyCounts(g.Round.TricksWon)
			summary.IsCurrent = true
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

func (g *Game) viewPlays(plays []Play) []PlayView {
	views := make([]PlayView, 0, len(plays))
	for _, p := range plays {
		views = append(views, PlayView{
			PlayerID:   p.PlayerID,
			PlayerName: g.playerName(p.PlayerID),
			CardView:   ViewCard(p.Card),
		})
	}
	return views
}

func (g *Game) viewTrick(t Trick) TrickView {
	return TrickView{
		WinnerID:   t.WinnerID,
		WinnerName: g.playerName(t.WinnerID),
		Cards:      g.viewPlays(t.Plays),
	}
}

func (g *Game) playerName(id string) string {
	if p := g.Player(id); p != nil {
		return p.Name
	}
	return "Unknown"
}

func copyCounts(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return maps.Clone(m)
}
