package game

import (
	"maps"
	"slices"

	"github.com/lox/holdem-engine/poker"
)

// ID returns the hand identifier
func (rs *RoundState) ID() string { return rs.id }

// BigBlind returns the big blind amount
func (rs *RoundState) BigBlind() int { return rs.bigBlind }

// SmallBlind returns the small blind amount, half the big blind
func (rs *RoundState) SmallBlind() int { return rs.smallBlind }

// Round returns the current betting round
func (rs *RoundState) Round() BettingRound { return rs.round }

// CountPlayers returns the number of registered players
func (rs *RoundState) CountPlayers() int { return len(rs.players) }

// Players returns all registered players in seating order. The players are
// owned by the hand and must not be modified.
func (rs *RoundState) Players() []*Player {
	return slices.Clone(rs.players)
}

// ActivePlayers returns the players who have not folded, in seating order
func (rs *RoundState) ActivePlayers() []*Player {
	return slices.Clone(rs.active)
}

// Player looks up a registered player by ID
func (rs *RoundState) Player(id int) (*Player, bool) {
	p, ok := rs.byID[id]
	return p, ok
}

// ActingQueue returns the IDs of players who still owe an action this
// street, next to act first.
func (rs *RoundState) ActingQueue() []int {
	return playerIDs(rs.queue)
}

// NextToAct returns the player at the head of the acting queue
func (rs *RoundState) NextToAct() (*Player, bool) {
	if len(rs.queue) == 0 {
		return nil, false
	}
	return rs.queue[0], true
}

// StreetResolved reports whether nobody owes an action on the current street
func (rs *RoundState) StreetResolved() bool {
	return len(rs.queue) == 0
}

// CommunityCards returns a copy of the board
func (rs *RoundState) CommunityCards() []poker.Card {
	return rs.community.Cards()
}

// DiscardPile returns a copy of the burned cards
func (rs *RoundState) DiscardPile() []poker.Card {
	return rs.discard.Cards()
}

// Deck returns a copy of the undealt cards, next card first
func (rs *RoundState) Deck() []poker.Card {
	return rs.deck.Cards()
}

// Pot returns the sum of every bet placed in the hand so far
func (rs *RoundState) Pot() int {
	total := 0
	for _, bets := range rs.bets {
		for _, b := range bets {
			total += b.Amount
		}
	}
	return total
}

// StreetPot returns the sum of bets placed during round
func (rs *RoundState) StreetPot(round BettingRound) int {
	total := 0
	for _, b := range rs.bets[round] {
		total += b.Amount
	}
	return total
}

// Bets returns a copy of the ledger grouped by betting round
func (rs *RoundState) Bets() map[BettingRound][]Bet {
	out := make(map[BettingRound][]Bet, len(rs.bets))
	for round, bets := range rs.bets {
		out[round] = slices.Clone(bets)
	}
	return out
}

// History returns every processed action in order, including blinds,
// checks and folds.
func (rs *RoundState) History() []ActionRecord {
	return slices.Clone(rs.history)
}

// StreetContributions maps each active player to their contribution on the
// current street.
func (rs *RoundState) StreetContributions() map[int]int {
	out := make(map[int]int, len(rs.active))
	for _, p := range rs.active {
		out[p.ID] = rs.contribution(p.ID, rs.round)
	}
	return out
}

// TotalContributions maps every registered player to what they have put in
// the pot over the whole hand.
func (rs *RoundState) TotalContributions() map[int]int {
	out := make(map[int]int, len(rs.players))
	for _, p := range rs.players {
		out[p.ID] = 0
	}
	for _, round := range slices.Sorted(maps.Keys(rs.bets)) {
		for _, b := range rs.bets[round] {
			out[b.PlayerID] += b.Amount
		}
	}
	return out
}

// ChipTotal returns every player's stack plus the pot. It never changes
// once players are registered.
func (rs *RoundState) ChipTotal() int {
	total := rs.Pot()
	for _, p := range rs.players {
		total += p.Stack
	}
	return total
}
