package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/config"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/phh"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/internal/simulator"
	"github.com/lox/holdem-engine/internal/tui"
)

// PlayCmd plays one hand in the terminal UI
type PlayCmd struct {
	Seed     int64  `help:"Deck seed (0 uses table.seed, or a random seed)"`
	Strategy string `help:"Strategy for the bot seats (caller, random, tight)"`
	LogFile  string `help:"Write engine logs to this file while the UI is running" type:"path"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg := g.Config
	humanID, ok := cfg.HumanID()
	if !ok {
		return errors.New("play needs a player with human = true")
	}

	seed := firstNonZero(c.Seed, cfg.Table.Seed, simulator.RandomSeed())
	strategyName := c.Strategy
	if strategyName == "" {
		strategyName = cfg.Simulation.Strategy
	}
	strategy, err := simulator.StrategyByName(strategyName)
	if err != nil {
		return err
	}

	// The UI owns the terminal, so engine logs go to a file or nowhere
	logger := log.New(io.Discard)
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return fmt.Errorf("failed to create log file: %w", err)
		}
		defer f.Close()
		logger = log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
			Level:           g.Logger.GetLevel(),
		})
	}

	rng := randutil.New(seed)
	model, err := newPlayModel(cfg, humanID, strategy, rng, logger)
	if err != nil {
		return err
	}
	logger.Info("Starting interactive hand", "hand", model.Round().ID(), "seed", seed, "strategy", strategy.Name())

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("terminal UI: %w", err)
	}
	if model.Err() != nil {
		return model.Err()
	}

	result := model.Result()
	if result == nil {
		fmt.Fprintln(g.Stdout, "Hand abandoned.")
		return nil
	}
	for _, line := range model.Log() {
		fmt.Fprintln(g.Stdout, line)
	}

	if cfg.HistoryDir != "" {
		path, err := saveHand(cfg.HistoryDir, model.Round(), result)
		if err != nil {
			return err
		}
		fmt.Fprintf(g.Stdout, "Hand history written to %s\n", path)
	}
	return nil
}

// newPlayModel seats the configured players and deals the hand
func newPlayModel(cfg *config.Config, humanID int, strategy simulator.Strategy, rng *rand.Rand, logger *log.Logger) (*tui.Model, error) {
	rs, err := game.NewRoundState(cfg.Table.BigBlind, game.WithRNG(rng), game.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	bots := make(map[int]simulator.Strategy)
	for _, p := range cfg.NewPlayers() {
		if !rs.Register(p) {
			return nil, fmt.Errorf("player %s was rejected", p)
		}
		if p.ID != humanID {
			bots[p.ID] = strategy
		}
	}
	return tui.New(tui.Config{
		Round:   rs,
		HumanID: humanID,
		Bots:    bots,
		RNG:     rng,
		Logger:  logger,
	})
}

// saveHand writes a finished hand to dir as <hand id>.phh
func saveHand(dir string, rs *game.RoundState, result *game.ShowdownResult) (string, error) {
	hist, err := phh.FromRound(rs, result, "holdem", time.Now())
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, rs.ID()+".phh")
	if err := phh.WriteFile(path, []*phh.HandHistory{hist}); err != nil {
		return "", fmt.Errorf("write hand history: %w", err)
	}
	return path, nil
}

func firstNonZero(values ...int64) int64 {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
