package poker

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

// ErrDeckExhausted is returned when dealing from an empty deck. Under correct
// 52-card bookkeeping it signals a broken invariant rather than a routine condition.
var ErrDeckExhausted = errors.New("no cards remaining in the deck")

// Deck is an ordered collection that exclusively owns its cards. Cards leave
// through Deal and enter through Add; callers only ever see copies.
type Deck struct {
	cards []Card
}

// NewDeck creates a full 52-card deck shuffled with rng
func NewDeck(rng *rand.Rand) *Deck {
	d := NewOrderedDeck()
	d.Shuffle(rng)
	return d
}

// NewOrderedDeck creates a full, unshuffled 52-card deck in AllCards order
func NewOrderedDeck() *Deck {
	return &Deck{cards: AllCards()}
}

// NewEmptyDeck creates a deck holding no cards, used for hands, boards and discards
func NewEmptyDeck() *Deck {
	return &Deck{cards: make([]Card, 0, 8)}
}

// NewStackedDeck creates a full 52-card deck whose first deals are top, in
// order, followed by the remaining cards in AllCards order. It is meant for
// deterministic tests and replays.
func NewStackedDeck(top ...Card) (*Deck, error) {
	seen := make(map[Card]bool, len(top))
	cards := make([]Card, 0, 52)
	for _, c := range top {
		if !c.Valid() {
			return nil, fmt.Errorf("stacked deck: invalid card %v", c)
		}
		if seen[c] {
			return nil, fmt.Errorf("stacked deck: duplicate card %s", c)
		}
		seen[c] = true
		cards = append(cards, c)
	}
	for _, c := range AllCards() {
		if !seen[c] {
			cards = append(cards, c)
		}
	}
	return &Deck{cards: cards}, nil
}

// Shuffle randomizes the order of the remaining cards using Fisher-Yates
func (d *Deck) Shuffle(rng *rand.Rand) {
	if rng == nil {
		rand.Shuffle(len(d.cards), d.swap)
		return
	}
	rng.Shuffle(len(d.cards), d.swap)
}

func (d *Deck) swap(i, j int) {
	d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
}

// Deal removes and returns the top card
func (d *Deck) Deal() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrDeckExhausted
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, nil
}

// Add appends a card to the bottom of the deck
func (d *Deck) Add(c Card) {
	d.cards = append(d.cards, c)
}

// Len returns the number of cards held
func (d *Deck) Len() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck holds no cards
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Cards returns a copy of the held cards, top first
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Contains reports whether the deck holds c
func (d *Deck) Contains(c Card) bool {
	for _, held := range d.cards {
		if held == c {
			return true
		}
	}
	return false
}

// IsComplete reports whether the deck holds each of the 52 cards exactly once
func (d *Deck) IsComplete() bool {
	if len(d.cards) != 52 {
		return false
	}
	var seen [52]bool
	for _, c := range d.cards {
		if !c.Valid() || seen[c.Index()] {
			return false
		}
		seen[c.Index()] = true
	}
	return true
}

// Equal reports whether two decks hold the same cards in the same order
func (d *Deck) Equal(other *Deck) bool {
	if len(d.cards) != len(other.cards) {
		return false
	}
	for i := range d.cards {
		if d.cards[i] != other.cards[i] {
			return false
		}
	}
	return true
}

func (d *Deck) String() string {
	var sb strings.Builder
	sb.WriteString("Deck([")
	sb.WriteString(FormatCards(d.cards))
	sb.WriteString("])")
	return sb.String()
}
