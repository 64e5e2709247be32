package simulator

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSeats(strategies ...Strategy) []Seat {
	names := []string{"alice", "bob", "carol", "dave", "erin", "frank"}
	seats := make([]Seat, len(strategies))
	for i, s := range strategies {
		seats[i] = Seat{ID: i + 1, Name: names[i], Stack: 200, Strategy: s}
	}
	return seats
}

func TestNewValidatesConfig(t *testing.T) {
	t.Parallel()
	_, err := New(Config{Hands: 0, BigBlind: 2, Seats: testSeats(CallingStation{}, CallingStation{})})
	assert.Error(t, err)

	_, err = New(Config{Hands: 1, BigBlind: 2, Seats: testSeats(CallingStation{})})
	assert.Error(t, err)

	_, err = New(Config{Hands: 1, BigBlind: 2, Seats: []Seat{{ID: 1, Name: "a", Stack: 10}, {ID: 2, Name: "b", Stack: 10}}})
	assert.Error(t, err, "missing strategy")
}

func TestRunCallingStationsAlwaysShowDown(t *testing.T) {
	t.Parallel()
	sim, err := New(Config{
		Hands:    50,
		Workers:  4,
		BigBlind: 2,
		Seed:     7,
		Seats:    testSeats(CallingStation{}, CallingStation{}, CallingStation{}),
	})
	require.NoError(t, err)

	stats, err := sim.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 50, stats.Hands)
	assert.Equal(t, 50, stats.Showdowns)
	assert.Zero(t, stats.Uncontested)
	assert.Equal(t, 50*6, stats.TotalPot, "every pot is three big blinds")
	require.NoError(t, stats.Validate())
}

func TestRunIsIndependentOfWorkerCount(t *testing.T) {
	t.Parallel()
	run := func(workers int) []HandResult {
		var results []HandResult
		sim, err := New(Config{
			Hands:    40,
			Workers:  workers,
			BigBlind: 2,
			Seed:     99,
			Seats:    testSeats(Random{}, Tight{}, CallingStation{}, Random{}),
			OnHand:   func(r HandResult) { results = append(results, r) },
		})
		require.NoError(t, err)
		_, err = sim.Run(context.Background())
		require.NoError(t, err)
		return results
	}

	sequential := run(1)
	parallel := run(8)
	require.Len(t, parallel, len(sequential))
	for i := range sequential {
		assert.Equal(t, sequential[i].HandID, parallel[i].HandID)
		assert.Equal(t, sequential[i].Net, parallel[i].Net, "hand %d", i)
		assert.Equal(t, sequential[i].Board, parallel[i].Board, "hand %d", i)
	}
}

func TestRunUsesInjectedClock(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mClock := quartz.NewMock(t)
	hands := 0
	sim, err := New(Config{
		Hands:    5,
		Workers:  1,
		BigBlind: 2,
		Seed:     1,
		Seats:    testSeats(CallingStation{}, Tight{}),
		Clock:    mClock,
		OnHand: func(r HandResult) {
			hands++
			assert.Zero(t, r.Duration)
			mClock.Advance(time.Second).MustWait(ctx)
		},
	})
	require.NoError(t, err)

	stats, err := sim.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, hands)
	assert.Equal(t, 5*time.Second, stats.Duration)
}

func TestRunRecordsHistory(t *testing.T) {
	t.Parallel()
	var results []HandResult
	sim, err := New(Config{
		Hands:         3,
		BigBlind:      2,
		Seed:          3,
		Table:         "sim",
		RecordHistory: true,
		Seats:         testSeats(Tight{}, Random{}, CallingStation{}),
		OnHand:        func(r HandResult) { results = append(results, r) },
	})
	require.NoError(t, err)
	_, err = sim.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, results, 3)
	for _, r := range results {
		require.NotNil(t, r.History)
		assert.Equal(t, r.HandID, r.History.HandID)
		assert.Equal(t, "sim", r.History.Table)
		assert.Equal(t, r.Pot, r.History.Pot())
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sim, err := New(Config{Hands: 100, Workers: 2, BigBlind: 2, Seats: testSeats(Random{}, Random{})})
	require.NoError(t, err)
	_, err = sim.Run(ctx)
	assert.True(t, IsCanceled(err), "got %v", err)
}

func TestPlayHandUncontested(t *testing.T) {
	t.Parallel()
	rs, err := game.NewRoundState(2, game.WithRNG(randutil.New(5)))
	require.NoError(t, err)
	rs.RegisterAll(game.NewPlayer(1, "a", 100), game.NewPlayer(2, "b", 100))

	result, err := PlayHand(context.Background(), rs, func(d Decision) (game.PlayerAction, int) {
		return game.Fold, 0
	})
	require.NoError(t, err)
	assert.True(t, result.Uncontested)
	assert.Equal(t, []int{2}, result.Winners)
	assert.Equal(t, game.Ended, rs.Round())
}

func TestStrategiesOnlyChooseValidActions(t *testing.T) {
	t.Parallel()
	for _, name := range StrategyNames() {
		strategy, err := StrategyByName(name)
		require.NoError(t, err)

		for seed := range 20 {
			rng := randutil.New(int64(seed))
			rs, err := game.NewRoundState(2, game.WithRNG(rng))
			require.NoError(t, err)
			rs.RegisterAll(game.NewPlayer(1, "a", 50), game.NewPlayer(2, "b", 80), game.NewPlayer(3, "c", 30))

			_, err = PlayHand(context.Background(), rs, func(d Decision) (game.PlayerAction, int) {
				action, amount := strategy.Decide(d, rng)
				assert.Contains(t, d.Valid, action, "%s chose %s", name, action)
				if action == game.Raise {
					assert.GreaterOrEqual(t, amount, d.MinRaise)
					assert.LessOrEqual(t, amount, d.MaxRaise)
				}
				return action, amount
			})
			require.NoError(t, err, "%s seed %d", name, seed)
			assert.Equal(t, 160, rs.ChipTotal())
		}
	}

	_, err := StrategyByName("maniac")
	assert.Error(t, err)
}

func TestTightRaisesPremiumHands(t *testing.T) {
	t.Parallel()
	d := Decision{
		HoleCards: poker.MustParseCards("AsAd"),
		Round:     game.Preflop,
		ToCall:    2,
		Valid:     []game.PlayerAction{game.Fold, game.Call, game.Raise},
		MinRaise:  4,
		MaxRaise:  100,
		BigBlind:  2,
	}
	action, amount := Tight{}.Decide(d, nil)
	assert.Equal(t, game.Raise, action)
	assert.Equal(t, 6, amount)

	d.HoleCards = poker.MustParseCards("7c2d")
	action, _ = Tight{}.Decide(d, nil)
	assert.Equal(t, game.Fold, action)
}

func TestStatisticsValidateDetectsImbalance(t *testing.T) {
	t.Parallel()
	seats := testSeats(CallingStation{}, CallingStation{})
	stats := NewStatistics(2, seats)
	stats.Add(HandResult{Pot: 4, Winners: []int{1}, Net: map[int]int{1: 2, 2: -2}})
	require.NoError(t, stats.Validate())

	stats.Add(HandResult{Pot: 4, Winners: []int{1}, Net: map[int]int{1: 3, 2: -2}})
	assert.Error(t, stats.Validate())
	assert.Contains(t, stats.Summary(), "alice")
}
