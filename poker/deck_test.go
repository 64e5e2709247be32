package poker

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestNewDeckHasAllCards(t *testing.T) {
	t.Parallel()
	d := NewDeck(testRNG(1))
	require.Equal(t, 52, d.Len())
	assert.ElementsMatch(t, AllCards(), d.Cards())
}

func TestOrderedDeck(t *testing.T) {
	t.Parallel()
	d := NewOrderedDeck()
	cards := d.Cards()
	assert.Equal(t, NewCard(Two, Clubs), cards[0])
	assert.Equal(t, NewCard(Ace, Spades), cards[51])
}

func TestShuffleIsDeterministicPerSeed(t *testing.T) {
	t.Parallel()
	a := NewDeck(testRNG(42))
	b := NewDeck(testRNG(42))
	c := NewDeck(testRNG(43))

	assert.True(t, a.Equal(b), "same seed should give the same order")
	assert.False(t, a.Equal(c), "different seeds should give different orders")
	assert.False(t, a.Equal(NewOrderedDeck()), "shuffled deck should differ from canonical order")
}

func TestDealAndAdd(t *testing.T) {
	t.Parallel()
	d := NewOrderedDeck()
	card, err := d.Deal()
	require.NoError(t, err)
	assert.Equal(t, NewCard(Two, Clubs), card)
	assert.Equal(t, 51, d.Len())
	assert.False(t, d.Contains(card))

	pile := NewEmptyDeck()
	assert.True(t, pile.IsEmpty())
	pile.Add(card)
	assert.Equal(t, 1, pile.Len())
	assert.True(t, pile.Contains(card))
	assert.Equal(t, "Deck([2c])", pile.String())
}

func TestIsComplete(t *testing.T) {
	t.Parallel()
	assert.True(t, NewOrderedDeck().IsComplete())
	assert.True(t, NewDeck(testRNG(3)).IsComplete())
	assert.False(t, NewEmptyDeck().IsComplete())

	short := NewOrderedDeck()
	dealt, err := short.Deal()
	require.NoError(t, err)
	assert.False(t, short.IsComplete())
	short.Add(dealt)
	assert.True(t, short.IsComplete(), "order does not matter")

	duplicated := NewEmptyDeck()
	for range 52 {
		duplicated.Add(NewCard(Ace, Spades))
	}
	assert.False(t, duplicated.IsComplete())

	malformed := NewEmptyDeck()
	for _, c := range AllCards()[1:] {
		malformed.Add(c)
	}
	malformed.Add(Card{Rank: 1, Suit: Spades})
	assert.False(t, malformed.IsComplete())
}

func TestDealEmptyDeck(t *testing.T) {
	t.Parallel()
	d := NewEmptyDeck()
	_, err := d.Deal()
	assert.True(t, errors.Is(err, ErrDeckExhausted))

	full := NewOrderedDeck()
	for !full.IsEmpty() {
		_, err := full.Deal()
		require.NoError(t, err)
	}
	_, err = full.Deal()
	assert.ErrorIs(t, err, ErrDeckExhausted)
}

func TestCardsReturnsCopy(t *testing.T) {
	t.Parallel()
	d := NewOrderedDeck()
	cards := d.Cards()
	cards[0] = NewCard(Ace, Spades)
	top, err := d.Deal()
	require.NoError(t, err)
	assert.Equal(t, NewCard(Two, Clubs), top)
}

func TestStackedDeck(t *testing.T) {
	t.Parallel()
	top := MustParseCards("AsKhQd")
	d, err := NewStackedDeck(top...)
	require.NoError(t, err)
	require.Equal(t, 52, d.Len())
	assert.ElementsMatch(t, AllCards(), d.Cards())
	for _, want := range top {
		got, err := d.Deal()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err = NewStackedDeck(MustParseCards("AsAs")...)
	assert.Error(t, err)
	_, err = NewStackedDeck(Card{Rank: 1, Suit: Clubs})
	assert.Error(t, err)
}
