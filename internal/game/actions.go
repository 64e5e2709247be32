package game

import (
	"fmt"
	"slices"
)

// ProcessAction applies an action for the player at the head of the acting
// queue.
//
// For Raise, amount is the player's total contribution to the street after
// raising ("raise to"). It is ignored for Fold, Check and Call. Blinds are
// posted by Advance and cannot be submitted here.
func (rs *RoundState) ProcessAction(playerID int, action PlayerAction, amount int) error {
	rs.logger.Debug("Processing player action", "player", playerID, "action", action, "amount", amount)

	p, err := rs.validateTurn(playerID)
	if err != nil {
		rs.logger.Debug("Action rejected", "player", playerID, "action", action, "error", err)
		return err
	}

	switch action {
	case Fold:
		rs.fold(p)
	case Check:
		if owed := rs.owed(p); owed > 0 {
			return fmt.Errorf("%w: player %d cannot check facing %d to call", ErrIllegalAction, p.ID, owed)
		}
		p.HasActed = true
		rs.record(p, Check, 0)
		rs.logger.Debug("Player checked", "player", p.ID)
		rs.recomputeQueue()
	case Call:
		// Nothing owed makes this a zero-chip call, recorded like a check
		rs.placeBet(p, Call, rs.owed(p))
		rs.recomputeQueue()
	case Raise:
		if err := rs.raise(p, amount); err != nil {
			return err
		}
	case Blind:
		return fmt.Errorf("%w: blinds are posted when the hand starts", ErrIllegalAction)
	default:
		return fmt.Errorf("%w: unknown action %v", ErrIllegalAction, action)
	}

	rs.logState()
	return nil
}

func (rs *RoundState) validateTurn(playerID int) (*Player, error) {
	if !rs.round.IsBetting() {
		return nil, fmt.Errorf("%w: no betting during %s", ErrIllegalAction, rs.round)
	}
	if len(rs.queue) == 0 {
		return nil, fmt.Errorf("%w: betting on the %s is closed", ErrTurnOrder, rs.round)
	}
	p, ok := rs.byID[playerID]
	if !ok {
		return nil, fmt.Errorf("%w: player %d is not in the hand", ErrTurnOrder, playerID)
	}
	if !p.Active {
		// A folded player is never at the head of the queue, so this is
		// also a turn order violation.
		return nil, fmt.Errorf("%w: %w: player %d has folded", ErrInactivePlayer, ErrTurnOrder, playerID)
	}
	if head := rs.queue[0]; head.ID != playerID {
		return nil, fmt.Errorf("%w: player %d acted but player %d is next", ErrTurnOrder, playerID, head.ID)
	}
	return p, nil
}

func (rs *RoundState) fold(p *Player) {
	p.Active = false
	p.HasActed = true
	delete(rs.raiseClosed, p.ID)
	rs.active = slices.DeleteFunc(rs.active, func(a *Player) bool { return a == p })
	rs.record(p, Fold, 0)
	rs.logger.Info("Player folded", "player", p.ID, "remaining", len(rs.active))
	rs.recomputeQueue()
}

// raise validates and applies a raise to the given street total. A raise of
// at least the last full raise re-opens action for everyone. A smaller
// raise is only allowed all-in, and players who had already acted may then
// only call or fold.
func (rs *RoundState) raise(p *Player, to int) error {
	if rs.raiseClosed[p.ID] {
		return fmt.Errorf("%w: player %d may only call or fold after an incomplete raise", ErrIllegalAction, p.ID)
	}

	contributed := rs.contribution(p.ID, rs.round)
	current := rs.maxContribution()
	allInTo := contributed + p.Stack
	minTo := current + rs.lastRaise

	switch {
	case to > allInTo:
		return fmt.Errorf("%w: raise to %d exceeds player %d's stack (max %d)", ErrIllegalAction, to, p.ID, allInTo)
	case to <= current:
		return fmt.Errorf("%w: raise to %d must exceed the current bet of %d", ErrIllegalAction, to, current)
	case to < minTo && to != allInTo:
		return fmt.Errorf("%w: minimum raise is to %d, got %d", ErrIllegalAction, minTo, to)
	}

	full := to >= minTo
	rs.placeBet(p, Raise, to-contributed)
	if full {
		rs.lastRaise = to - current
		clear(rs.raiseClosed)
	}
	rs.logger.Debug("Raise", "player", p.ID, "to", to, "full", full, "last_raise", rs.lastRaise)
	rs.reopen(p, full)
	return nil
}

// reopen rebuilds the queue after a raise: every other player who can still
// bet, in seating order starting after the raiser.
func (rs *RoundState) reopen(raiser *Player, full bool) {
	start := slices.Index(rs.players, raiser)
	n := len(rs.players)

	var queue []*Player
	for i := 1; i < n; i++ {
		p := rs.players[(start+i)%n]
		if !p.CanAct() {
			continue
		}
		if !full && p.HasActed {
			rs.raiseClosed[p.ID] = true
		}
		p.HasActed = false
		queue = append(queue, p)
	}
	rs.queue = queue
}

// contribution is the sum of p's ledger entries for round
func (rs *RoundState) contribution(playerID int, round BettingRound) int {
	total := 0
	for _, b := range rs.bets[round] {
		if b.PlayerID == playerID {
			total += b.Amount
		}
	}
	return total
}

// maxContribution is the largest street contribution among active players
func (rs *RoundState) maxContribution() int {
	highest := 0
	for _, p := range rs.active {
		highest = max(highest, rs.contribution(p.ID, rs.round))
	}
	return highest
}

// owed is what p must add to match the largest contribution this street
func (rs *RoundState) owed(p *Player) int {
	return max(0, rs.maxContribution()-rs.contribution(p.ID, rs.round))
}

// ValidActions lists the actions the player at the head of the queue may
// take. It is empty when nobody is due to act.
func (rs *RoundState) ValidActions() []PlayerAction {
	if !rs.round.IsBetting() || len(rs.queue) == 0 {
		return nil
	}
	p := rs.queue[0]
	owed := rs.owed(p)

	actions := []PlayerAction{Fold}
	if owed == 0 {
		actions = append(actions, Check)
	} else {
		actions = append(actions, Call)
	}
	if !rs.raiseClosed[p.ID] && p.Stack > owed {
		actions = append(actions, Raise)
	}
	return actions
}

// RaiseBounds returns the smallest and largest legal raise-to amounts for the
// player at the head of the queue. ok is false when raising is not allowed.
func (rs *RoundState) RaiseBounds() (minTo, maxTo int, ok bool) {
	if !slices.Contains(rs.ValidActions(), Raise) {
		return 0, 0, false
	}
	p := rs.queue[0]
	maxTo = rs.contribution(p.ID, rs.round) + p.Stack
	minTo = min(rs.maxContribution()+rs.lastRaise, maxTo)
	return minTo, maxTo, true
}

// ToCall returns what the player at the head of the queue must add to call,
// capped at their stack.
func (rs *RoundState) ToCall() int {
	if len(rs.queue) == 0 {
		return 0
	}
	p := rs.queue[0]
	return min(rs.owed(p), p.Stack)
}
