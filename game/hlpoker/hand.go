package hlpoker

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Category is a hand class, ordered from weakest to strongest.
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

var categoryNames = [...]string{
	"high card", "one pair", "two pair", "three of a kind", "straight",
	"flush", "full house", "four of a kind", "straight flush", "royal flush",
}

func (c Category) String() string {
	if c < HighCard || c > RoyalFlush {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// Classify returns the best category among every five card subset of cards.
// Fewer than five cards are classified as they are, so they can only make
// pairs, trips or quads.
func Classify(cards []Card) Category {
	if len(cards) <= 5 {
		return classify(cards)
	}
	best := HighCard
	var hand [5]Card
	var choose func(start, n int)
	choose = func(start, n int) {
		if n == 5 {
			best = max(best, classify(hand[:]))
			return
		}
		for i := start; i <= len(cards)-(5-n); i++ {
			hand[n] = cards[i]
			choose(i+1, n+1)
		}
	}
	choose(0, 0)
	return best
}

func classify(cards []Card) Category {
	if len(cards) == 0 {
		return HighCard
	}
	ranks := lo.Map(cards, func(c Card, _ int) int { return c.Rank })
	slices.Sort(ranks)
	counts := lo.CountValues(ranks)
	multiples := lo.CountValues(lo.Values(counts))

	flush := len(cards) == 5 && len(lo.UniqBy(cards, func(c Card) Suit { return c.Suit })) == 1
	straight := len(cards) == 5 && len(counts) == 5 && ranks[4]-ranks[0] == 4

	switch {
	case flush && straight && ranks[0] == 10:
		return RoyalFlush
	case flush && straight:
		return StraightFlush
	case multiples[4] > 0:
		return FourOfAKind
	case multiples[3] > 0 && multiples[2] > 0:
		return FullHouse
	case flush:
		return Flush
	case straight:
		return Straight
	case multiples[3] > 0:
		return ThreeOfAKind
	case multiples[2] >= 2:
		return TwoPair
	case multiples[2] == 1:
		return OnePair
	}
	return HighCard
}

// FlushOuts is the number of cards still needed for five of one suit.
func FlushOuts(cards []Card) int {
	if len(cards) == 0 {
		return 5
	}
	suits := lo.CountValuesBy(cards, func(c Card) Suit { return c.Suit })
	return max(0, 5-lo.Max(lo.Values(suits)))
}

// StraightOuts is the number of ranks still needed for the closest straight:
// the fewest ranks missing from any window of five consecutive ranks.
func StraightOuts(cards []Card) int {
	have := lo.Associate(cards, func(c Card) (int, bool) { return c.Rank, true })
	best := 5
	for low := 2; low+4 <= Ace; low++ {
		missing := 0
		for r := low; r <= low+4; r++ {
			if !have[r] {
				missing++
			}
		}
		best = min(best, missing)
	}
	return best
}

func sortedRanks(hand [2]Card) (low, high int) {
	if hand[0].Rank <= hand[1].Rank {
		return hand[0].Rank, hand[1].Rank
	}
	return hand[1].Rank, hand[0].Rank
}

// IsFoldingHand flags weak unpaired starting hands: wide offsuit gaps, low
// offsuit cards, or a top card of seven or less.
func IsFoldingHand(hand [2]Card) bool {
	low, high := sortedRanks(hand)
	suited := hand[0].Suit == hand[1].Suit
	switch {
	case low == high:
		return false
	case high-low > 2 && !suited:
		return true
	case low <= 5 && high <= 8 && !suited:
		return true
	}
	return high <= 7
}

// IsCallingHand flags small and middle pairs, suited connectors and any
// unpaired hand with a ten or better.
func IsCallingHand(hand [2]Card) bool {
	low, high := sortedRanks(hand)
	suited := hand[0].Suit == hand[1].Suit
	switch {
	case low == high:
		return low >= 2 && low <= 9
	case high-low == 1 && suited:
		return true
	}
	return high >= 10
}

// IsRaisingHand flags pairs of jacks or better and suited hands with a ten or
// better.
func IsRaisingHand(hand [2]Card) bool {
	low, high := sortedRanks(hand)
	suited := hand[0].Suit == hand[1].Suit
	if low == high {
		return low >= 11
	}
	return high >= 10 && suited
}

// ClassifyPreflop maps the private cards to an action. Folding hands are
// checked first, then calling hands, then raising hands, so only hands that
// pass none of the earlier checks raise; anything unmatched calls.
func ClassifyPreflop(hand [2]Card) Action {
	switch {
	case IsFoldingHand(hand):
		return Fold
	case IsCallingHand(hand):
		return Call
	case IsRaisingHand(hand):
		return Raise
	}
	return Call
}

// Decide is the per-round decision table. After the flop it weighs the made
// hand against flush and straight draws, demanding closer draws as fewer
// cards remain to come.
func Decide(round Round, hole [2]Card, board []Card) Action {
	if round == Preflop {
		return ClassifyPreflop(hole)
	}
	if round >= Showdown {
		return Call
	}

	cards := append([]Card{hole[0], hole[1]}, board...)
	strength := Classify(cards)
	flush, straight := FlushOuts(cards), StraightOuts(cards)
	draw := min(flush, straight)

	switch round {
	case Flop:
		switch {
		case strength >= TwoPair || draw <= 1:
			return Raise
		case strength == OnePair || draw == 2:
			return Call
		}
	case Turn:
		switch {
		case strength >= TwoPair || draw == 0:
			return Raise
		case strength == OnePair || draw == 1:
			return Call
		}
	case River:
		switch {
		case strength >= TwoPair || draw == 0:
			return Raise
		case strength == OnePair:
			return Call
		}
	}
	return Fold
}
