package game

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"strings"
)

type Suit int

// Suits are declared in trump rotation order.
const (
	Spades Suit = iota
	Diamonds
	Clubs
	Hearts
)

var Suits = []Suit{Spades, Diamonds, Clubs, Hearts}

var suitString = map[Suit]string{
	Spades:   "Spades",
	Diamonds: "Diamonds",
	Clubs:    "Clubs",
	Hearts:   "Hearts",
}

var suitCode = map[Suit]string{
	Spades:   "S",
	Diamonds: "D",
	Clubs:    "C",
	Hearts:   "H",
}

var suitSymbol = map[Suit]string{
	Spades:   "♠",
	Diamonds: "♦",
	Clubs:    "♣",
	Hearts:   "♥",
}

func (s Suit) String() string {
	return suitString[s]
}

func (s Suit) Code() string {
	return suitCode[s]
}

func (s Suit) Symbol() string {
	return suitSymbol[s]
}

func (s Suit) Valid() bool {
	return s >= Spades && s <= Hearts
}

type Rank int

// Ranks are declared low to high, so comparing two Ranks compares their strength.
const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

var Ranks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

var rankCode = map[Rank]string{
	Two:   "2",
	Three: "3",
	Four:  "4",
	Five:  "5",
	Six:   "6",
	Seven: "7",
	Eight: "8",
	Nine:  "9",
	Ten:   "10",
	Jack:  "J",
	Queen: "Q",
	King:  "K",
	Ace:   "A",
}

func (r Rank) String() string {
	return rankCode[r]
}

func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// DeckSize is the number of cards in a standard deck.
const DeckSize = 52

type Card struct {
	Rank Rank
	Suit Suit
}

// Code returns the wire form of the card, e.g. "AS" or "10H".
func (c Card) Code() string {
	return c.Rank.String() + c.Suit.Code()
}

// Display returns the card with its suit symbol, e.g. "A♠".
func (c Card) Display() string {
	return c.Rank.String() + c.Suit.Symbol()
}

func (c Card) String() string {
	return c.Display()
}

func (c Card) MarshalText() ([]byte, error) {
	if !c.Rank.Valid() || !c.Suit.Valid() {
		return nil, fmt.Errorf("invalid card %d/%d", c.Rank, c.Suit)
	}
	return []byte(c.Code()), nil
}

func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

var ErrInvalidCard = errors.New("invalid card code")

// ParseCard reads a card code such as "qh", " 10S " or "AD".
func ParseCard(code string) (Card, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) < 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, code)
	}

	rankPart, suitPart := code[:len(code)-1], code[len(code)-1:]

	suit := Suit(-1)
	for s, c := range suitCode {
		if c == suitPart {
			suit = s
			break
		}
	}
	rank := Rank(-1)
	for r, c := range rankCode {
		if c == rankPart {
			rank = r
			break
		}
	}

	if !suit.Valid() || !rank.Valid() {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, code)
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// Compare orders cards by suit rotation order, then by rank.
func Compare(a, b Card) int {
	if a.Suit != b.Suit {
		return int(a.Suit) - int(b.Suit)
	}
	return int(a.Rank) - int(b.Rank)
}

// SortCards sorts a hand in place for display.
func SortCards(cards []Card) {
	slices.SortFunc(cards, Compare)
}

func HasSuit(cards []Card, suit Suit) bool {
	return slices.ContainsFunc(cards, func(c Card) bool { return c.Suit == suit })
}

// RemoveCard returns the hand without the first copy of card.
func RemoveCard(cards []Card, card Card) ([]Card, bool) {
	i := slices.Index(cards, card)
	if i < 0 {
		return cards, false
	}
	return slices.Delete(slices.Clone(cards), i, i+1), true
}

type Deck struct {
	Cards []Card `json:"cards"`
}

// NewDeck returns the 52 cards in suit then rank order.
func NewDeck() *Deck {
	cards := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}
	return &Deck{cards}
}

func NewShuffledDeck() *Deck {
	deck := NewDeck()
	deck.Shuffle()
	return deck
}

func (deck Deck) Count() int {
	return len(deck.Cards)
}

func (d *Deck) Shuffle() {
	rand.Shuffle(d.Count(), func(i, j int) {
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	})
}

// DealError reports a deal that needs more cards than the deck holds. It means the room
// capacity table is wrong and is never a player mistake.
type DealError struct {
	Players        int
	CardsPerPlayer int
	Available      int
}

func (e *DealError) Error() string {
	return fmt.Sprintf("DEAL_ERROR: cannot deal %d cards to %d players from %d cards",
		e.CardsPerPlayer, e.Players, e.Available)
}

// Deal hands out cardsPerPlayer cards to each player from the front of the deck, one
// contiguous block per player in seat order. The deck is not modified.
func Deal(deck *Deck, players []string, cardsPerPlayer int) (map[string][]Card, error) {
	needed := len(players) * cardsPerPlayer
	if cardsPerPlayer < 0 || needed > deck.Count() {
		return nil, &DealError{
			Players:        len(players),
			CardsPerPlayer: cardsPerPlayer,
			Available:      deck.Count(),
		}
	}

	hands := make(map[string][]Card, len(players))
	for i, player := range players {
		hand := slices.Clone(deck.Cards[i*cardsPerPlayer : (i+1)*cardsPerPlayer])
		SortCards(hand)
		hands[player] = hand
	}
	return hands, nil
}
