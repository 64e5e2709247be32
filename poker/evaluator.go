package poker

import (
	"fmt"
	"slices"
)

// Category enumerates poker hand categories ordered from weakest to strongest.
type Category uint8

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns a human-readable category name.
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// HandValue is the result of evaluating a set of cards: the category plus
// the rank values used to break ties inside that category, most significant first.
type HandValue struct {
	Category Category
	Tiebreak []int
}

// Compare orders two hand values: 1 if v beats o, -1 if o beats v, 0 for a tie.
// Categories compare first, then tiebreak values element by element.
func (v HandValue) Compare(o HandValue) int {
	switch {
	case v.Category > o.Category:
		return 1
	case v.Category < o.Category:
		return -1
	}
	return slices.Compare(v.Tiebreak, o.Tiebreak)
}

// Equal reports whether two hand values tie
func (v HandValue) Equal(o HandValue) bool {
	return v.Compare(o) == 0
}

func (v HandValue) String() string {
	return fmt.Sprintf("%s %v", v.Category, v.Tiebreak)
}

// CompareHands compares two hands and returns 1 if a wins, -1 if b wins, 0 for tie
func CompareHands(a, b HandValue) int {
	return a.Compare(b)
}

// Evaluate ranks up to seven cards. Input is assumed valid: 5 to 7 distinct,
// well-formed cards. Validation belongs to the caller (see Resolve).
//
// Categories are tested from strongest to weakest and the first match wins.
func Evaluate(cards []Card) HandValue {
	var rankCounts [Ace + 1]int
	var suitCounts [NumSuits]int
	var suitRanks [NumSuits][]int

	for _, c := range cards {
		rankCounts[c.Rank]++
		suitCounts[c.Suit]++
		suitRanks[c.Suit] = append(suitRanks[c.Suit], int(c.Rank))
	}

	// Distinct ranks, highest first
	ranks := make([]int, 0, len(cards))
	for r := int(Ace); r >= int(Two); r-- {
		if rankCounts[r] > 0 {
			ranks = append(ranks, r)
		}
	}

	flushSuit := -1
	for s := range suitCounts {
		if suitCounts[s] >= 5 {
			flushSuit = s
			break
		}
	}

	var flushRanks []int
	if flushSuit >= 0 {
		flushRanks = slices.Clone(suitRanks[flushSuit])
		slices.Sort(flushRanks)
		slices.Reverse(flushRanks)
		if high := findStraight(flushRanks); high > 0 {
			if high == int(Ace) {
				return HandValue{Category: RoyalFlush, Tiebreak: []int{high}}
			}
			return HandValue{Category: StraightFlush, Tiebreak: []int{high}}
		}
	}

	if quad := findNOfAKind(rankCounts, 4, 0); quad > 0 {
		return HandValue{Category: FourOfAKind, Tiebreak: append([]int{quad}, kickers(ranks, 1, quad)...)}
	}

	trips := findNOfAKind(rankCounts, 3, 0)
	if trips > 0 {
		if pair := findNOfAKind(rankCounts, 2, trips); pair > 0 {
			return HandValue{Category: FullHouse, Tiebreak: []int{trips, pair}}
		}
	}

	if flushSuit >= 0 {
		return HandValue{Category: Flush, Tiebreak: flushRanks[:5]}
	}

	if high := findStraight(ranks); high > 0 {
		return HandValue{Category: Straight, Tiebreak: []int{high}}
	}

	if trips > 0 {
		return HandValue{Category: ThreeOfAKind, Tiebreak: append([]int{trips}, kickers(ranks, 2, trips)...)}
	}

	pairs := pairRanks(rankCounts)
	if len(pairs) >= 2 {
		high, low := pairs[0], pairs[1]
		return HandValue{Category: TwoPair, Tiebreak: append([]int{high, low}, kickers(ranks, 1, high, low)...)}
	}
	if len(pairs) == 1 {
		return HandValue{Category: Pair, Tiebreak: append([]int{pairs[0]}, kickers(ranks, 3, pairs[0])...)}
	}

	return HandValue{Category: HighCard, Tiebreak: kickers(ranks, 5)}
}

// findStraight returns the high card of the best straight among distinct
// descending rank values, or 0. The Ace also plays low for the wheel (A-2-3-4-5).
func findStraight(desc []int) int {
	for i := 0; i+4 < len(desc); i++ {
		if desc[i]-desc[i+4] == 4 {
			return desc[i]
		}
	}
	if slices.Contains(desc, int(Ace)) &&
		slices.Contains(desc, int(Two)) &&
		slices.Contains(desc, int(Three)) &&
		slices.Contains(desc, int(Four)) &&
		slices.Contains(desc, int(Five)) {
		return int(Five)
	}
	return 0
}

// findNOfAKind finds the highest rank with at least n cards, skipping except
func findNOfAKind(counts [Ace + 1]int, n int, except int) int {
	for r := int(Ace); r >= int(Two); r-- {
		if r != except && counts[r] >= n {
			return r
		}
	}
	return 0
}

// pairRanks lists ranks held exactly twice, highest first
func pairRanks(counts [Ace + 1]int) []int {
	var pairs []int
	for r := int(Ace); r >= int(Two); r-- {
		if counts[r] == 2 {
			pairs = append(pairs, r)
		}
	}
	return pairs
}

// kickers returns up to n of the highest distinct ranks not in used
func kickers(desc []int, n int, used ...int) []int {
	out := make([]int, 0, n)
	for _, r := range desc {
		if len(out) == n {
			break
		}
		if !slices.Contains(used, r) {
			out = append(out, r)
		}
	}
	return out
}
