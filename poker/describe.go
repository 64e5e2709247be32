package poker

import (
	"fmt"

	ph "github.com/paulhankin/poker"
)

// toLibraryCard converts a card to the paulhankin/poker representation.
// That library numbers ranks 1..13 with the Ace as 1.
func toLibraryCard(c Card) (ph.Card, error) {
	var (
		s    ph.Suit
		zero ph.Card
	)
	switch c.Suit {
	case Clubs:
		s = ph.Club
	case Diamonds:
		s = ph.Diamond
	case Hearts:
		s = ph.Heart
	case Spades:
		s = ph.Spade
	default:
		return zero, fmt.Errorf("invalid suit %d", c.Suit)
	}
	r := ph.Rank(c.Rank)
	if c.Rank == Ace {
		r = ph.Rank(1)
	}
	return ph.MakeCard(s, r)
}

// Describe returns a long-form description of the best hand in cards, such as
// "jack quads with ace kicker". It accepts five or seven cards.
func Describe(cards []Card) (string, error) {
	if len(cards) != 5 && len(cards) != 7 {
		return "", fmt.Errorf("describe: need 5 or 7 cards, got %d", len(cards))
	}
	converted := make([]ph.Card, len(cards))
	for i, c := range cards {
		lc, err := toLibraryCard(c)
		if err != nil {
			return "", fmt.Errorf("describe: card %d: %w", i, err)
		}
		converted[i] = lc
	}
	return ph.Describe(converted)
}

// DescribeOrCategory describes cards when possible and falls back to the
// evaluated category name otherwise.
func DescribeOrCategory(cards []Card) string {
	if desc, err := Describe(cards); err == nil {
		return desc
	}
	return Evaluate(cards).Category.String()
}
