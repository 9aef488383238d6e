package hlpoker

import (
	"fmt"
	"strings"

	"github.com/paulhankin/poker"
)

type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

const Ace = 14

const suitSymbols = "cdhs"
const rankSymbols = "23456789TJQKA"

// Card is a playing card with Rank 2..14 (ace high).
type Card struct {
	Rank int
	Suit Suit
}

func (c Card) Valid() bool {
	return c.Rank >= 2 && c.Rank <= Ace && c.Suit <= Spades
}

func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return string(rankSymbols[c.Rank-2]) + string(suitSymbols[c.Suit])
}

// ParseCard reads a card such as "Th" or "As".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("card %q: want rank and suit", s)
	}
	r := strings.IndexByte(rankSymbols, strings.ToUpper(s[:1])[0])
	u := strings.IndexByte(suitSymbols, strings.ToLower(s[1:])[0])
	if r < 0 || u < 0 {
		return Card{}, fmt.Errorf("card %q: unknown rank or suit", s)
	}
	return Card{Rank: r + 2, Suit: Suit(u)}, nil
}

// ParseCards reads space separated cards.
func ParseCards(s string) ([]Card, error) {
	fields := strings.Fields(s)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// NewDeck returns the 52 cards in a fixed order.
func NewDeck() []Card {
	deck := make([]Card, 0, 52)
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := 2; rank <= Ace; rank++ {
			deck = append(deck, Card{Rank: rank, Suit: suit})
		}
	}
	return deck
}

func (c Card) toPoker() (poker.Card, error) {
	var suit poker.Suit
	switch c.Suit {
	case Clubs:
		suit = poker.Club
	case Diamonds:
		suit = poker.Diamond
	case Hearts:
		suit = poker.Heart
	case Spades:
		suit = poker.Spade
	default:
		return poker.Card(0), fmt.Errorf("card %v: invalid suit", c)
	}
	rank := c.Rank
	if rank == Ace {
		rank = 1
	}
	return poker.MakeCard(suit, poker.Rank(rank))
}

// Strength scores the best five of seven cards; higher is better.
func Strength(cards [7]Card) (int16, error) {
	var hand [7]poker.Card
	for i, c := range cards {
		pc, err := c.toPoker()
		if err != nil {
			return 0, err
		}
		hand[i] = pc
	}
	return poker.Eval7(&hand), nil
}

// Describe names the best hand that five or seven cards make.
func Describe(cards []Card) (string, error) {
	hand := make([]poker.Card, len(cards))
	for i, c := range cards {
		pc, err := c.toPoker()
		if err != nil {
			return "", err
		}
		hand[i] = pc
	}
	return poker.Describe(hand)
}
