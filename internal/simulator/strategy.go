package simulator

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sort"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/poker"
)

// Decision is everything a strategy may look at when it is its turn
type Decision struct {
	PlayerID  int
	HoleCards []poker.Card
	Community []poker.Card
	Round     game.BettingRound
	Stack     int
	Pot       int
	ToCall    int
	Valid     []game.PlayerAction
	MinRaise  int // smallest raise-to, 0 when raising is not allowed
	MaxRaise  int
	BigBlind  int
}

// NewDecision describes the situation for the player at the head of the
// acting queue.
func NewDecision(rs *game.RoundState) (Decision, error) {
	p, ok := rs.NextToAct()
	if !ok {
		return Decision{}, fmt.Errorf("no player to act on the %s", rs.Round())
	}
	d := Decision{
		PlayerID:  p.ID,
		HoleCards: p.HoleCards(),
		Community: rs.CommunityCards(),
		Round:     rs.Round(),
		Stack:     p.Stack,
		Pot:       rs.Pot(),
		ToCall:    rs.ToCall(),
		Valid:     rs.ValidActions(),
		BigBlind:  rs.BigBlind(),
	}
	if minTo, maxTo, ok := rs.RaiseBounds(); ok {
		d.MinRaise, d.MaxRaise = minTo, maxTo
	}
	return d, nil
}

// CanRaise reports whether Raise is among the valid actions
func (d Decision) CanRaise() bool {
	return slices.Contains(d.Valid, game.Raise)
}

// Passive checks when possible, otherwise calls
func (d Decision) Passive() game.PlayerAction {
	if d.ToCall == 0 {
		return game.Check
	}
	return game.Call
}

// Strategy chooses an action for a bot seat. Implementations must only
// return actions listed in Decision.Valid; for Raise the amount is the
// raise-to total within [MinRaise, MaxRaise].
type Strategy interface {
	Name() string
	Decide(d Decision, rng *rand.Rand) (game.PlayerAction, int)
}

// CallingStation never folds and never raises
type CallingStation struct{}

func (CallingStation) Name() string { return "caller" }

func (CallingStation) Decide(d Decision, _ *rand.Rand) (game.PlayerAction, int) {
	return d.Passive(), 0
}

// Tight plays by preflop hand category: it raises premium hands, continues
// with strong and medium hands while the price is small and folds the rest
// to any bet.
type Tight struct{}

func (Tight) Name() string { return "tight" }

func (Tight) Decide(d Decision, _ *rand.Rand) (game.PlayerAction, int) {
	category := poker.CategorizeHoleCards(d.HoleCards)

	// Postflop the made hand matters more than the starting category
	if len(d.Community) >= 3 {
		value := poker.Evaluate(append(slices.Clone(d.HoleCards), d.Community...))
		switch {
		case value.Category >= poker.TwoPair && d.CanRaise():
			return game.Raise, d.MinRaise
		case value.Category >= poker.Pair:
			return d.Passive(), 0
		}
		category = poker.CategoryTrash
	}

	switch category {
	case poker.CategoryPremium:
		if d.CanRaise() {
			return game.Raise, min(max(d.MinRaise, 3*d.BigBlind), d.MaxRaise)
		}
		return d.Passive(), 0
	case poker.CategoryStrong, poker.CategoryMedium:
		if d.ToCall <= 4*d.BigBlind {
			return d.Passive(), 0
		}
	}
	if d.ToCall == 0 {
		return game.Check, 0
	}
	return game.Fold, 0
}

// Random picks uniformly among the valid actions and sizes raises anywhere
// between the minimum and all-in.
type Random struct{}

func (Random) Name() string { return "random" }

func (Random) Decide(d Decision, rng *rand.Rand) (game.PlayerAction, int) {
	action := d.Valid[rng.IntN(len(d.Valid))]
	if action != game.Raise {
		return action, 0
	}
	return action, d.MinRaise + rng.IntN(d.MaxRaise-d.MinRaise+1)
}

var strategies = map[string]Strategy{
	"caller": CallingStation{},
	"tight":  Tight{},
	"random": Random{},
}

// StrategyByName looks up a built-in strategy
func StrategyByName(name string) (Strategy, error) {
	s, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (available: %v)", name, StrategyNames())
	}
	return s, nil
}

// StrategyNames lists the built-in strategies
func StrategyNames() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
