package game

import (
	"fmt"

	"github.com/lox/holdem-engine/poker"
)

// MaxHoleCards is the number of private cards each player receives
const MaxHoleCards = 2

// Player is a participant in a hand
type Player struct {
	ID            int
	Name          string
	StartingStack int
	Stack         int // chips behind, not yet committed to the pot
	Active        bool
	AllIn         bool
	HasActed      bool

	hand *poker.Deck
}

// NewPlayer creates a player who has not been dealt in yet
func NewPlayer(id int, name string, stack int) *Player {
	return &Player{
		ID:            id,
		Name:          name,
		StartingStack: stack,
		Stack:         stack,
		hand:          poker.NewEmptyDeck(),
	}
}

// HoleCards returns a copy of the player's private cards
func (p *Player) HoleCards() []poker.Card {
	if p.hand == nil {
		return nil
	}
	return p.hand.Cards()
}

// receiveCard adds a hole card. A third card is never accepted.
func (p *Player) receiveCard(c poker.Card) error {
	if p.hand == nil {
		p.hand = poker.NewEmptyDeck()
	}
	if p.hand.Len() >= MaxHoleCards {
		return fmt.Errorf("player %d already holds %d cards", p.ID, MaxHoleCards)
	}
	p.hand.Add(c)
	return nil
}

// commit moves chips from the stack into the pot, capped at the stack.
// It returns the amount actually moved.
func (p *Player) commit(amount int) int {
	amount = min(amount, p.Stack)
	p.Stack -= amount
	if p.Stack == 0 {
		p.AllIn = true
	}
	return amount
}

// CanAct reports whether the player still takes betting decisions
func (p *Player) CanAct() bool {
	return p.Active && !p.AllIn
}

func (p *Player) String() string {
	return fmt.Sprintf("%s(#%d, stack=%d)", p.Name, p.ID, p.Stack)
}
