// Package simulator plays many independent hands between bot strategies.
// Every hand owns its RoundState and runs on a single goroutine; hands are
// spread across a bounded worker pool.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/phh"
	"github.com/lox/holdem-engine/internal/randutil"
)

// Seat is a bot at the simulated table
type Seat struct {
	ID       int
	Name     string
	Stack    int
	Strategy Strategy
}

// Config holds configuration for running simulations
type Config struct {
	Hands         int
	Workers       int
	BigBlind      int
	Seed          int64
	Seats         []Seat
	Table         string
	RecordHistory bool
	Logger        *log.Logger
	Clock         quartz.Clock

	// OnHand is called once per hand, in hand order, after all hands finish
	OnHand func(HandResult)
}

// Simulator runs poker hand simulations
type Simulator struct {
	config Config
}

// New creates a simulator. Missing Logger and Clock default to a discarding
// logger and the real clock.
func New(config Config) (*Simulator, error) {
	if config.Hands < 1 {
		return nil, fmt.Errorf("hands must be positive, got %d", config.Hands)
	}
	if config.Workers < 1 {
		config.Workers = 1
	}
	if len(config.Seats) < 2 {
		return nil, fmt.Errorf("at least 2 seats required, got %d", len(config.Seats))
	}
	for _, seat := range config.Seats {
		if seat.Strategy == nil {
			return nil, fmt.Errorf("seat %q has no strategy", seat.Name)
		}
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	return &Simulator{config: config}, nil
}

// Run plays every hand and returns the aggregated statistics. Hand i is
// always dealt from the same seed, so results do not depend on the number
// of workers.
func (s *Simulator) Run(ctx context.Context) (*Statistics, error) {
	start := s.config.Clock.Now()
	results := make([]HandResult, s.config.Hands)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for i := range s.config.Hands {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := s.playHand(ctx, i)
			if err != nil {
				return fmt.Errorf("hand %d: %w", i+1, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := NewStatistics(s.config.BigBlind, s.config.Seats)
	for _, r := range results {
		stats.Add(r)
		if s.config.OnHand != nil {
			s.config.OnHand(r)
		}
	}
	stats.Duration = s.config.Clock.Since(start)

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	s.config.Logger.Info("Simulation complete", "hands", stats.Hands, "duration", stats.Duration)
	return stats, nil
}

func (s *Simulator) playHand(ctx context.Context, index int) (HandResult, error) {
	rng := randutil.ForHand(s.config.Seed, index)
	handID := fmt.Sprintf("sim-%d-%06d", s.config.Seed, index+1)
	started := s.config.Clock.Now()

	rs, err := game.NewRoundState(s.config.BigBlind,
		game.WithRNG(rng),
		game.WithLogger(s.config.Logger),
		game.WithHandID(handID),
	)
	if err != nil {
		return HandResult{}, err
	}

	strategies := make(map[int]Strategy, len(s.config.Seats))
	startingChips := 0
	for _, seat := range s.config.Seats {
		if !rs.Register(game.NewPlayer(seat.ID, seat.Name, seat.Stack)) {
			return HandResult{}, fmt.Errorf("seat %q (id %d) was rejected", seat.Name, seat.ID)
		}
		strategies[seat.ID] = seat.Strategy
		startingChips += seat.Stack
	}

	showdown, err := PlayHand(ctx, rs, func(d Decision) (game.PlayerAction, int) {
		return strategies[d.PlayerID].Decide(d, rng)
	})
	if err != nil {
		return HandResult{}, err
	}
	if total := rs.ChipTotal(); total != startingChips {
		return HandResult{}, fmt.Errorf("chip total changed from %d to %d", startingChips, total)
	}

	result := HandResult{
		Index:       index,
		HandID:      handID,
		Pot:         showdown.Pot,
		Winners:     showdown.Winners,
		Uncontested: showdown.Uncontested,
		Net:         netChips(rs, showdown),
		Board:       rs.CommunityCards(),
		Duration:    s.config.Clock.Since(started),
	}
	if history := rs.History(); len(history) > 0 {
		result.LastRound = history[len(history)-1].Round
	}
	for _, h := range showdown.Hands {
		if h.PlayerID == showdown.Winners[0] {
			result.Category = h.Value.Category
		}
	}

	if s.config.RecordHistory {
		hist, err := phh.FromRound(rs, showdown, s.config.Table, s.config.Clock.Now())
		if err != nil {
			return HandResult{}, err
		}
		result.History = hist
	}
	return result, nil
}

// DecideFunc picks the action for the player described by the decision
type DecideFunc func(d Decision) (game.PlayerAction, int)

// PlayHand drives a hand from its current round to showdown, asking decide
// for every action.
func PlayHand(ctx context.Context, rs *game.RoundState, decide DecideFunc) (*game.ShowdownResult, error) {
	for rs.Round() != game.Ended {
		for !rs.StreetResolved() {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			d, err := NewDecision(rs)
			if err != nil {
				return nil, err
			}
			action, amount := decide(d)
			if err := rs.ProcessAction(d.PlayerID, action, amount); err != nil {
				return nil, fmt.Errorf("player %d %s %d: %w", d.PlayerID, action, amount, err)
			}
		}
		if err := rs.Advance(); err != nil {
			return nil, err
		}
	}
	return rs.Showdown()
}

// netChips returns what each player won minus what they put in
func netChips(rs *game.RoundState, showdown *game.ShowdownResult) map[int]int {
	net := rs.TotalContributions()
	for id, paid := range net {
		net[id] = -paid
	}
	for id, share := range game.SplitPot(showdown.Pot, showdown.Winners) {
		net[id] += share
	}
	return net
}

// RandomSeed returns a seed for runs that did not ask for one
func RandomSeed() int64 {
	return rand.Int64()
}

// IsCanceled reports whether err came from a canceled or expired context
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
