package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateCategories(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		cards    string
		category Category
		tiebreak []int
	}{
		{"high card", "AsKhQdJc9s7h5d", HighCard, []int{14, 13, 12, 11, 9}},
		{"pair", "AsAhKdQcJs9h7d", Pair, []int{14, 13, 12, 11}},
		{"two pair", "AsAhKdKcQs9h7d", TwoPair, []int{14, 13, 12}},
		{"two pair from three pairs", "AsAhKdKcQsQh7d", TwoPair, []int{14, 13, 12}},
		{"three of a kind", "AsAhAdKcQs9h7d", ThreeOfAKind, []int{14, 13, 12}},
		{"straight", "AsKhQdJcTs9h7d", Straight, []int{14}},
		{"six high straight over wheel", "Ah2c3d4s5h6c9d", Straight, []int{6}},
		{"flush", "AsKsQsJs9s7h5d", Flush, []int{14, 13, 12, 11, 9}},
		{"flush keeps top five", "As9s7s5s3s2sKd", Flush, []int{14, 9, 7, 5, 3}},
		{"full house", "AsAhAdKcKh9h7d", FullHouse, []int{14, 13}},
		{"full house from two trips", "9s9h9dKcKhKd2c", FullHouse, []int{13, 9}},
		{"four of a kind", "AsAhAdAcKs9h7d", FourOfAKind, []int{14, 13}},
		{"four of a kind kicker beats paired board", "7s7h7d7c2s2h9d", FourOfAKind, []int{7, 9}},
		{"straight flush", "9s8s7s6s5s2h3d", StraightFlush, []int{9}},
		{"steel wheel", "As2s3s4s5sKdQh", StraightFlush, []int{5}},
		{"royal flush", "AsKsQsJsTs2h3d", RoyalFlush, []int{14}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(MustParseCards(tt.cards))
			assert.Equal(t, tt.category, got.Category, "category for %s", tt.cards)
			assert.Equal(t, tt.tiebreak, got.Tiebreak, "tiebreak for %s", tt.cards)
		})
	}
}

func TestEvaluateWheelStraight(t *testing.T) {
	t.Parallel()
	got := Evaluate(MustParseCards("Ah2c3d4s5hKcQd"))
	if got.Category != Straight {
		t.Fatalf("Expected Straight (wheel), got %s", got)
	}
	if got.Tiebreak[0] != 5 {
		t.Errorf("Wheel should be five high, got %d", got.Tiebreak[0])
	}
}

func TestStraightFlushBeatsFlushAndStraight(t *testing.T) {
	t.Parallel()
	// Both a flush (hearts) and a straight are present; the straight sits inside the flush suit.
	got := Evaluate(MustParseCards("8h7h6h5h4h9cKh"))
	if got.Category != StraightFlush {
		t.Errorf("Expected Straight Flush, got %s", got)
	}

	// Straight and flush present but the straight is not suited.
	got = Evaluate(MustParseCards("8h7h6c5h4hKh2d"))
	if got.Category != Flush {
		t.Errorf("Expected Flush, got %s", got)
	}
}

func TestFullHouseBeatsFlush(t *testing.T) {
	t.Parallel()
	got := Evaluate(MustParseCards("KsKhKd2s2h7s9s"))
	if got.Category != FullHouse {
		t.Errorf("Expected Full House, got %s", got)
	}
}

func TestEvaluateFiveAndSixCards(t *testing.T) {
	t.Parallel()
	assert.Equal(t, Straight, Evaluate(MustParseCards("5h4c3d2sAh")).Category)
	assert.Equal(t, TwoPair, Evaluate(MustParseCards("5h5c3d3sAh")).Category)
	six := Evaluate(MustParseCards("KhKcKd2s2hAh"))
	assert.Equal(t, FullHouse, six.Category)
	assert.Equal(t, []int{13, 2}, six.Tiebreak)
}

func TestCompareKickers(t *testing.T) {
	t.Parallel()
	board := "KhKd7c4s2h"
	withAce := Evaluate(MustParseCards("AsQc" + board))
	withJack := Evaluate(MustParseCards("JsQd" + board))

	assert.Equal(t, Pair, withAce.Category)
	assert.Equal(t, 1, withAce.Compare(withJack))
	assert.Equal(t, -1, withJack.Compare(withAce))
	assert.Equal(t, -1, CompareHands(withJack, withAce))
}

func TestCompareIdenticalHandsTie(t *testing.T) {
	t.Parallel()
	board := "AsKdQhJc9s"
	a := Evaluate(MustParseCards("2c3d" + board))
	b := Evaluate(MustParseCards("2h3s" + board))
	assert.True(t, a.Equal(b))
	assert.Equal(t, 0, a.Compare(b))
}

func TestCompareCategoryDominatesTiebreak(t *testing.T) {
	t.Parallel()
	lowStraight := HandValue{Category: Straight, Tiebreak: []int{5}}
	aceHigh := HandValue{Category: HighCard, Tiebreak: []int{14, 13, 12, 11, 9}}
	assert.Equal(t, 1, lowStraight.Compare(aceHigh))
}

func TestCategoryString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Royal Flush", RoyalFlush.String())
	assert.Equal(t, "High Card", HighCard.String())
	assert.Equal(t, "Unknown", Category(42).String())
}
