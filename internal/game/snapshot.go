package game

import (
	"fmt"
	"strings"

	"github.com/lox/holdem-engine/poker"
)

// PlayerSnapshot is a point-in-time view of one player
type PlayerSnapshot struct {
	ID           int
	Name         string
	Stack        int
	Contribution int // chips put in during the current street
	Active       bool
	AllIn        bool
	HasActed     bool
	HoleCards    []poker.Card
}

// Snapshot is a point-in-time copy of the hand, safe to keep after the
// hand moves on.
type Snapshot struct {
	HandID      string
	Round       BettingRound
	Pot         int
	Community   []poker.Card
	Players     []PlayerSnapshot
	ActingQueue []int
}

// Snapshot captures the current state of the hand
func (rs *RoundState) Snapshot() Snapshot {
	players := make([]PlayerSnapshot, len(rs.players))
	for i, p := range rs.players {
		players[i] = PlayerSnapshot{
			ID:           p.ID,
			Name:         p.Name,
			Stack:        p.Stack,
			Contribution: rs.contribution(p.ID, rs.round),
			Active:       p.Active,
			AllIn:        p.AllIn,
			HasActed:     p.HasActed,
			HoleCards:    p.HoleCards(),
		}
	}
	return Snapshot{
		HandID:      rs.id,
		Round:       rs.round,
		Pot:         rs.Pot(),
		Community:   rs.community.Cards(),
		Players:     players,
		ActingQueue: rs.ActingQueue(),
	}
}

func (s Snapshot) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "round=%s pot=%d board=[%s] queue=%v", s.Round, s.Pot, poker.FormatCards(s.Community), s.ActingQueue)
	for _, p := range s.Players {
		status := "active"
		switch {
		case !p.Active:
			status = "out"
		case p.AllIn:
			status = "all-in"
		}
		fmt.Fprintf(&sb, "\n  %d %s stack=%d street=%d %s", p.ID, p.Name, p.Stack, p.Contribution, status)
	}
	return sb.String()
}
