package game

import (
	"fmt"

	"github.com/lox/holdem-engine/poker"
)

// ShowdownResult is the outcome of a finished hand
type ShowdownResult struct {
	Winners     []int          // tied winners in seating order
	Hands       []poker.Result // evaluated hands of every active player, empty when uncontested
	Pot         int
	Uncontested bool // everyone else folded
}

// Showdown resolves the winners of an ended hand. A sole remaining player
// wins without showing; otherwise every active player's hole cards are
// compared with the board.
func (rs *RoundState) Showdown() (*ShowdownResult, error) {
	if rs.round != Ended {
		return nil, fmt.Errorf("%w: showdown requires the hand to have ended, round is %s", ErrInvalidTransition, rs.round)
	}

	result := &ShowdownResult{Pot: rs.Pot()}
	if len(rs.active) == 1 {
		result.Winners = []int{rs.active[0].ID}
		result.Uncontested = true
		rs.logger.Info("Hand won uncontested", "winner", rs.active[0].ID, "pot", result.Pot)
		return result, nil
	}

	holdings := make([]poker.Holding, len(rs.active))
	for i, p := range rs.active {
		holdings[i] = poker.Holding{PlayerID: p.ID, Cards: p.HoleCards()}
	}
	hands, err := poker.ResolveHands(holdings, rs.community.Cards())
	if err != nil {
		return nil, fmt.Errorf("showdown: %w", err)
	}

	for _, r := range poker.Best(hands) {
		result.Winners = append(result.Winners, r.PlayerID)
	}
	result.Hands = hands
	rs.logger.Info("Showdown", "winners", result.Winners, "pot", result.Pot, "hand", poker.Best(hands)[0].Value)
	return result, nil
}

// SplitPot divides pot evenly between winners. Odd chips go one at a time
// to the earliest winners in the given order.
func SplitPot(pot int, winners []int) map[int]int {
	shares := make(map[int]int, len(winners))
	if len(winners) == 0 {
		return shares
	}
	each := pot / len(winners)
	remainder := pot % len(winners)
	for i, id := range winners {
		shares[id] = each
		if i < remainder {
			shares[id]++
		}
	}
	return shares
}
