package simulator

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/phh"
	"github.com/lox/holdem-engine/poker"
)

// HandResult is the outcome of one simulated hand
type HandResult struct {
	Index       int
	HandID      string
	Pot         int
	Winners     []int
	Category    poker.Category // winning category, meaningless when Uncontested
	Uncontested bool
	LastRound   game.BettingRound // last street with any betting action
	Net         map[int]int       // chips won or lost per player
	Board       []poker.Card
	Duration    time.Duration
	History     *phh.HandHistory // set when Config.RecordHistory is on
}

// PlayerStats tracks one seat across the simulation
type PlayerStats struct {
	ID       int
	Name     string
	Strategy string
	Hands    int
	Wins     int
	NetChips int
	SumBB    float64
	SumBB2   float64 // sum of squares for variance
}

// Mean returns the average result in big blinds per hand
func (p *PlayerStats) Mean() float64 {
	if p.Hands == 0 {
		return 0
	}
	return p.SumBB / float64(p.Hands)
}

// StdDev returns the sample standard deviation in big blinds per hand
func (p *PlayerStats) StdDev() float64 {
	if p.Hands < 2 {
		return 0
	}
	mean := p.Mean()
	return math.Sqrt((p.SumBB2 - float64(p.Hands)*mean*mean) / float64(p.Hands-1))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (p *PlayerStats) ConfidenceInterval95() (float64, float64) {
	if p.Hands == 0 {
		return 0, 0
	}
	margin := 1.96 * p.StdDev() / math.Sqrt(float64(p.Hands))
	return p.Mean() - margin, p.Mean() + margin
}

// Statistics aggregates hand results
type Statistics struct {
	Hands       int
	Showdowns   int
	Uncontested int
	SplitPots   int
	TotalPot    int
	MaxPot      int
	Categories  map[poker.Category]int // winning categories at showdown
	Players     map[int]*PlayerStats
	Duration    time.Duration

	bigBlind int
}

// NewStatistics creates empty statistics for the given seats
func NewStatistics(bigBlind int, seats []Seat) *Statistics {
	s := &Statistics{
		Categories: make(map[poker.Category]int),
		Players:    make(map[int]*PlayerStats, len(seats)),
		bigBlind:   bigBlind,
	}
	for _, seat := range seats {
		s.Players[seat.ID] = &PlayerStats{ID: seat.ID, Name: seat.Name, Strategy: seat.Strategy.Name()}
	}
	return s
}

// Add incorporates a hand result
func (s *Statistics) Add(r HandResult) {
	s.Hands++
	s.TotalPot += r.Pot
	s.MaxPot = max(s.MaxPot, r.Pot)

	if r.Uncontested {
		s.Uncontested++
	} else {
		s.Showdowns++
		s.Categories[r.Category]++
		if len(r.Winners) > 1 {
			s.SplitPots++
		}
	}

	for id, net := range r.Net {
		p, ok := s.Players[id]
		if !ok {
			continue
		}
		bb := float64(net) / float64(s.bigBlind)
		p.Hands++
		p.NetChips += net
		p.SumBB += bb
		p.SumBB2 += bb * bb
	}
	for _, id := range r.Winners {
		if p, ok := s.Players[id]; ok {
			p.Wins++
		}
	}
}

// Validate checks the books balance: chips only move between players
func (s *Statistics) Validate() error {
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if s.Showdowns+s.Uncontested != s.Hands {
		return fmt.Errorf("showdowns (%d) + uncontested (%d) != hands (%d)", s.Showdowns, s.Uncontested, s.Hands)
	}
	net := 0
	for _, p := range s.Players {
		net += p.NetChips
		if p.Hands != s.Hands {
			return fmt.Errorf("player %d played %d of %d hands", p.ID, p.Hands, s.Hands)
		}
	}
	if net != 0 {
		return fmt.Errorf("ledger mismatch: players net %d chips", net)
	}
	return nil
}

// AveragePot returns the mean pot size in chips
func (s *Statistics) AveragePot() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.TotalPot) / float64(s.Hands)
}

// SortedPlayers returns the player stats ordered by ID
func (s *Statistics) SortedPlayers() []*PlayerStats {
	players := make([]*PlayerStats, 0, len(s.Players))
	for _, p := range s.Players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].ID < players[j].ID })
	return players
}

// Summary renders a plain text report
func (s *Statistics) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Hands: %d (showdown %d, uncontested %d, split %d) in %v\n",
		s.Hands, s.Showdowns, s.Uncontested, s.SplitPots, s.Duration.Round(time.Millisecond))
	fmt.Fprintf(&sb, "Pots: avg %.1f, max %d\n", s.AveragePot(), s.MaxPot)

	for _, p := range s.SortedPlayers() {
		low, high := p.ConfidenceInterval95()
		fmt.Fprintf(&sb, "  %-12s %-7s wins %5d  net %+8d  %+.3f bb/hand [%+.3f, %+.3f]\n",
			p.Name, p.Strategy, p.Wins, p.NetChips, p.Mean(), low, high)
	}

	categories := make([]poker.Category, 0, len(s.Categories))
	for c := range s.Categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] > categories[j] })
	for _, c := range categories {
		fmt.Fprintf(&sb, "  %-16s %d\n", c, s.Categories[c])
	}
	return sb.String()
}
