package phh

import (
	"fmt"
	"time"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/poker"
)

// boardSlices gives the community cards revealed at the start of each street
var boardSlices = map[game.BettingRound][2]int{
	game.Flop:  {0, 3},
	game.Turn:  {3, 4},
	game.River: {4, 5},
}

// FromRound builds a hand history from a hand. result may be nil for a hand
// that has not reached showdown, in which case no winnings are recorded.
func FromRound(rs *game.RoundState, result *game.ShowdownResult, table string, ts time.Time) (*HandHistory, error) {
	if rs.Round() == game.NotStarted {
		return nil, fmt.Errorf("phh: hand %s has not started", rs.ID())
	}

	players := rs.Players()
	n := len(players)
	seatOf := make(map[int]int, n)

	hist := &HandHistory{
		Variant:           "NT",
		Table:             table,
		SeatCount:         n,
		Seats:             make([]int, n),
		Antes:             make([]int, n),
		BlindsOrStraddles: make([]int, n),
		MinBet:            rs.BigBlind(),
		StartingStacks:    make([]int, n),
		FinishingStacks:   make([]int, n),
		Players:           make([]string, n),
		HandID:            rs.ID(),
		Timestamp:         ts,
	}
	for i, p := range players {
		seatOf[p.ID] = i
		hist.Seats[i] = i + 1
		hist.StartingStacks[i] = p.StartingStack
		hist.FinishingStacks[i] = p.Stack
		hist.Players[i] = p.Name
		hist.Actions = append(hist.Actions, fmt.Sprintf("d dh p%d %s", i+1, joinCards(p.HoleCards())))
	}

	community := rs.CommunityCards()
	for _, c := range community {
		hist.Board = append(hist.Board, c.String())
	}

	dealt := game.Preflop
	history := rs.History()
	for _, rec := range history {
		for dealt < rec.Round {
			dealt++
			hist.appendBoard(dealt, community)
		}
		seat := seatOf[rec.PlayerID]
		if rec.Action == game.Blind {
			hist.BlindsOrStraddles[seat] += rec.Amount
			continue
		}
		if action, ok := FormatAction(seat, rec.Action, rec.Total); ok {
			hist.Actions = append(hist.Actions, action)
		}
	}
	for dealt < game.River {
		dealt++
		hist.appendBoard(dealt, community)
	}

	if result != nil {
		hist.applyResult(rs, result, seatOf)
	}
	populateTimeFields(hist)
	return hist, nil
}

func (h *HandHistory) appendBoard(round game.BettingRound, community []poker.Card) {
	bounds, ok := boardSlices[round]
	if !ok || len(community) < bounds[1] {
		return
	}
	h.Actions = append(h.Actions, "d db "+joinCards(community[bounds[0]:bounds[1]]))
}

func (h *HandHistory) applyResult(rs *game.RoundState, result *game.ShowdownResult, seatOf map[int]int) {
	if !result.Uncontested {
		for _, p := range rs.ActivePlayers() {
			h.Actions = append(h.Actions, fmt.Sprintf("p%d sm %s", seatOf[p.ID]+1, joinCards(p.HoleCards())))
		}
	}

	h.Winnings = make([]int, len(h.StartingStacks))
	for id, share := range game.SplitPot(result.Pot, result.Winners) {
		seat := seatOf[id]
		h.Winnings[seat] = share
		h.FinishingStacks[seat] += share
	}
}

func populateTimeFields(hist *HandHistory) {
	t := hist.Timestamp
	if t.IsZero() {
		return
	}
	utc := t.UTC()
	hist.Time = utc.Format("15:04:05")
	hist.TimeZone = "UTC"
	hist.Day = utc.Day()
	hist.Month = int(utc.Month())
	hist.Year = utc.Year()
}
