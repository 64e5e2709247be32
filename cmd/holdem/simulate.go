package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strconv"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/lox/holdem-engine/internal/config"
	"github.com/lox/holdem-engine/internal/phh"
	"github.com/lox/holdem-engine/internal/simulator"
	"github.com/lox/holdem-engine/poker"
)

// SimulateCmd plays bot-vs-bot hands across a worker pool
type SimulateCmd struct {
	Hands      int      `short:"n" help:"Number of hands (0 uses simulation.hands)"`
	Workers    int      `short:"w" help:"Concurrent workers (0 uses simulation.workers)"`
	Seed       int64    `help:"Session seed (0 uses table.seed, or a random seed)"`
	Strategies []string `name:"strategy" short:"s" help:"Strategy per seat in seat order, repeated as needed"`
	JSON       bool     `help:"Emit one JSON record per hand instead of a summary"`
	History    bool     `help:"Write every hand to history_dir as a PHH session"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	ctx := setupSignalHandler(g)
	return c.run(ctx, g)
}

func (c *SimulateCmd) run(ctx context.Context, g *Globals) error {
	cfg := g.Config
	seats, err := c.seats(cfg)
	if err != nil {
		return err
	}

	simCfg := simulator.Config{
		Hands:         firstPositive(c.Hands, cfg.Simulation.Hands),
		Workers:       firstPositive(c.Workers, cfg.Simulation.Workers),
		BigBlind:      cfg.Table.BigBlind,
		Seed:          firstNonZero(c.Seed, cfg.Table.Seed, simulator.RandomSeed()),
		Seats:         seats,
		Table:         "holdem-sim",
		RecordHistory: c.History && cfg.HistoryDir != "",
		Logger:        g.Logger,
	}

	var histories []*phh.HandHistory
	var records zerolog.Logger
	if c.JSON {
		records = newStructuredLogger(g.Stdout)
	}
	simCfg.OnHand = func(r simulator.HandResult) {
		if c.JSON {
			logHandResult(records, r)
		}
		if r.History != nil {
			histories = append(histories, r.History)
		}
	}

	sim, err := simulator.New(simCfg)
	if err != nil {
		return err
	}
	g.Logger.Info("Starting simulation", "hands", simCfg.Hands, "workers", simCfg.Workers, "seed", simCfg.Seed)

	stats, err := sim.Run(ctx)
	if simulator.IsCanceled(err) {
		g.Logger.Warn("Simulation canceled")
		return nil
	}
	if err != nil {
		return err
	}

	if simCfg.RecordHistory {
		path := filepath.Join(cfg.HistoryDir, fmt.Sprintf("sim-%d.phhs", simCfg.Seed))
		if err := phh.WriteFile(path, histories); err != nil {
			return fmt.Errorf("write hand history: %w", err)
		}
		g.Logger.Info("Hand histories written", "path", path, "hands", len(histories))
	}

	if c.JSON {
		records.Info().
			Int("hands", stats.Hands).
			Int("showdowns", stats.Showdowns).
			Int("uncontested", stats.Uncontested).
			Float64("avg_pot", stats.AveragePot()).
			Dur("duration", stats.Duration).
			Msg("summary")
		return nil
	}

	fmt.Fprintln(g.Stdout, titleStyle.Render(fmt.Sprintf("Simulation seed %d", simCfg.Seed)))
	fmt.Fprint(g.Stdout, stats.Summary())
	return nil
}

// seats assigns a strategy to every configured player. Strategies given on
// the command line repeat when there are fewer than seats.
func (c *SimulateCmd) seats(cfg *config.Config) ([]simulator.Seat, error) {
	names := c.Strategies
	if len(names) == 0 {
		names = []string{cfg.Simulation.Strategy}
	}

	seats := make([]simulator.Seat, len(cfg.Players))
	for i, p := range cfg.Players {
		strategy, err := simulator.StrategyByName(names[i%len(names)])
		if err != nil {
			return nil, err
		}
		seats[i] = simulator.Seat{ID: p.ID, Name: p.Name, Stack: p.Stack, Strategy: strategy}
	}
	return seats, nil
}

func logHandResult(logger zerolog.Logger, r simulator.HandResult) {
	ids := make([]int, 0, len(r.Net))
	for id := range r.Net {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	net := zerolog.Dict()
	for _, id := range ids {
		net.Int(strconv.Itoa(id), r.Net[id])
	}

	event := logger.Info().
		Int("index", r.Index+1).
		Str("hand", r.HandID).
		Int("pot", r.Pot).
		Ints("winners", r.Winners).
		Bool("uncontested", r.Uncontested).
		Str("last_round", r.LastRound.String()).
		Str("board", poker.FormatCards(r.Board)).
		Dict("net", net)
	if !r.Uncontested {
		event = event.Str("category", r.Category.String())
	}
	event.Msg("hand")
}

// setupSignalHandler creates a context that is cancelled on interrupt signals
func setupSignalHandler(g *Globals) context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		g.Logger.Info("Received signal, shutting down gracefully", "signal", sig.String())
		cancel()
	}()

	return ctx
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
