package game

import "fmt"

// BettingRound is a phase of the hand. Rounds only ever move forward through
// NotStarted, Preflop, Flop, Turn, River and Ended.
type BettingRound int

const (
	NotStarted BettingRound = iota
	Preflop
	Flop
	Turn
	River
	Ended
)

var bettingRoundNames = [...]string{"notstarted", "preflop", "flop", "turn", "river", "ended"}

func (r BettingRound) String() string {
	if r < NotStarted || r > Ended {
		return fmt.Sprintf("round(%d)", int(r))
	}
	return bettingRoundNames[r]
}

// Next returns the round that follows r. Ended and unknown rounds have no
// successor.
func (r BettingRound) Next() (BettingRound, bool) {
	switch r {
	case NotStarted:
		return Preflop, true
	case Preflop:
		return Flop, true
	case Flop:
		return Turn, true
	case Turn:
		return River, true
	case River:
		return Ended, true
	default:
		return r, false
	}
}

// IsBetting reports whether players act during r
func (r BettingRound) IsBetting() bool {
	return r >= Preflop && r <= River
}

// communityCount is the number of community cards on the board during r
func (r BettingRound) communityCount() int {
	switch r {
	case NotStarted, Preflop:
		return 0
	case Flop:
		return 3
	case Turn:
		return 4
	case River, Ended:
		return 5
	default:
		return 0
	}
}

// ParseBettingRound converts a round name back to its value
func ParseBettingRound(s string) (BettingRound, error) {
	for i, name := range bettingRoundNames {
		if name == s {
			return BettingRound(i), nil
		}
	}
	return 0, fmt.Errorf("unknown betting round %q", s)
}

// PlayerAction is the kind of action a player takes
type PlayerAction int

const (
	Fold PlayerAction = iota
	Blind
	Check
	Call
	Raise
)

var playerActionNames = [...]string{"fold", "blind", "check", "call", "raise"}

func (a PlayerAction) String() string {
	if a < Fold || a > Raise {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return playerActionNames[a]
}

// ParsePlayerAction converts an action name back to its value
func ParsePlayerAction(s string) (PlayerAction, error) {
	for i, name := range playerActionNames {
		if name == s {
			return PlayerAction(i), nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

// Bet is one chip movement from a player into the pot. Bets are appended to
// the ledger and never modified afterwards.
type Bet struct {
	PlayerID int
	Amount   int
	Round    BettingRound
	Action   PlayerAction
}

func (b Bet) String() string {
	return fmt.Sprintf("%d: %d", b.PlayerID, b.Amount)
}

// ActionRecord is an entry in the hand's action history. Unlike the bet
// ledger it also records checks and folds.
type ActionRecord struct {
	PlayerID int
	Round    BettingRound
	Action   PlayerAction
	Amount   int  // chips moved into the pot by this action
	Total    int  // player's contribution to the street after this action
	AllIn    bool // the action left the player with no chips
}
