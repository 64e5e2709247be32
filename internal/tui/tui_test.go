package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/internal/simulator"
	"github.com/lox/holdem-engine/poker"
)

const (
	humanID = 0
	botID   = 1
)

// newHeadsUp seats the human in the small blind against a calling station.
// The stacked deck gives the bot quad jacks by the river.
func newHeadsUp(t *testing.T) *Model {
	t.Helper()
	deck, err := poker.NewStackedDeck(poker.MustParseCards("As Jh Ks Jd 2d Js Jc 4h 3d 8d 5d 2c")...)
	require.NoError(t, err)

	rs, err := game.NewRoundState(20, game.WithDeck(deck), game.WithHandID("tui-test"))
	require.NoError(t, err)
	require.Equal(t, 2, rs.RegisterAll(
		game.NewPlayer(humanID, "You", 100),
		game.NewPlayer(botID, "Bot", 100),
	))

	m, err := New(Config{
		Round:   rs,
		HumanID: humanID,
		Bots:    map[int]simulator.Strategy{botID: simulator.CallingStation{}},
		RNG:     randutil.New(1),
	})
	require.NoError(t, err)
	return m
}

// typeLine types input into the action box and presses enter
func typeLine(m *Model, input string) tea.Cmd {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(input)})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func logText(m *Model) string {
	return strings.Join(m.Log(), "\n")
}

func TestNewWaitsForHuman(t *testing.T) {
	t.Parallel()
	m := newHeadsUp(t)

	assert.Equal(t, game.Preflop, m.Round().Round())
	next, ok := m.Round().NextToAct()
	require.True(t, ok)
	assert.Equal(t, humanID, next.ID)
	assert.Equal(t, 30, m.Round().Pot())
	assert.False(t, m.Done())

	text := logText(m)
	assert.Contains(t, text, "HAND tui-test")
	assert.Contains(t, text, "You posts blind $10")
	assert.Contains(t, text, "Bot posts blind $20")
	assert.Contains(t, text, "Dealt to You")
}

func TestHumanFolds(t *testing.T) {
	t.Parallel()
	m := newHeadsUp(t)

	assert.False(t, isQuit(typeLine(m, "fold")))
	require.True(t, m.Done())
	result := m.Result()
	assert.True(t, result.Uncontested)
	assert.Equal(t, []int{botID}, result.Winners)
	assert.Equal(t, 30, result.Pot)
	assert.Contains(t, logText(m), "You folds")
	assert.Contains(t, logText(m), "Bot wins $30")
	assert.NotContains(t, logText(m), "FLOP")
}

func TestPlayToShowdown(t *testing.T) {
	t.Parallel()
	m := newHeadsUp(t)

	typeLine(m, "call")
	require.Equal(t, game.Flop, m.Round().Round())
	for _, street := range []game.BettingRound{game.Turn, game.River} {
		typeLine(m, "check")
		require.Equal(t, street, m.Round().Round(), m.Status())
	}
	typeLine(m, "check")

	require.True(t, m.Done())
	require.NoError(t, m.Err())
	result := m.Result()
	assert.False(t, result.Uncontested)
	assert.Equal(t, []int{botID}, result.Winners)
	assert.Equal(t, 40, result.Pot)

	text := logText(m)
	assert.Contains(t, text, "You calls $10")
	assert.Contains(t, text, "Bot checks")
	assert.Contains(t, text, "*** RIVER ***")
	assert.Contains(t, text, "Bot shows")
	assert.Contains(t, text, "Four of a Kind")

	assert.True(t, isQuit(typeLine(m, "")), "enter after the hand exits")
}

func TestCallWithNothingOwedChecks(t *testing.T) {
	t.Parallel()
	m := newHeadsUp(t)

	typeLine(m, "call")
	require.Equal(t, game.Flop, m.Round().Round())

	typeLine(m, "call")
	assert.Empty(t, m.Status())
	assert.Equal(t, game.Turn, m.Round().Round())
	assert.Equal(t, 40, m.Round().Pot())
	assert.Contains(t, logText(m), "You checks")
	assert.NotContains(t, logText(m), "calls $0")
}

func TestIllegalActionLeavesHandUnchanged(t *testing.T) {
	t.Parallel()
	m := newHeadsUp(t)
	before := m.Round().Snapshot()

	typeLine(m, "check")
	assert.Contains(t, m.Status(), "cannot check")
	assert.Equal(t, before, m.Round().Snapshot())

	typeLine(m, "raise 25")
	assert.NotEmpty(t, m.Status())
	assert.Equal(t, before, m.Round().Snapshot())

	typeLine(m, "dance")
	assert.Contains(t, m.Status(), "unknown action")

	typeLine(m, "raise 60")
	assert.Empty(t, m.Status())
	assert.Equal(t, game.Flop, m.Round().Round())
	assert.Equal(t, 120, m.Round().Pot())
	assert.Contains(t, logText(m), "You raises to $60")
	assert.Contains(t, logText(m), "Bot calls $40")
}

func TestAllInRunsOutTheBoard(t *testing.T) {
	t.Parallel()
	m := newHeadsUp(t)

	typeLine(m, "allin")

	require.True(t, m.Done())
	assert.Equal(t, 200, m.Result().Pot)
	assert.Equal(t, []int{botID}, m.Result().Winners)
	assert.Len(t, m.Round().CommunityCards(), 5)
	assert.Contains(t, logText(m), "You raises to $100 and is all-in")
}

func TestQuit(t *testing.T) {
	t.Parallel()

	t.Run("escape", func(t *testing.T) {
		m := newHeadsUp(t)
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		assert.True(t, isQuit(cmd))
		assert.Empty(t, m.View())
	})

	t.Run("typed", func(t *testing.T) {
		m := newHeadsUp(t)
		assert.True(t, isQuit(typeLine(m, "quit")))
		assert.False(t, m.Done())
	})
}

func TestLogPaneFocus(t *testing.T) {
	t.Parallel()
	m := newHeadsUp(t)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	// Keys scroll the log instead of reaching the input
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeLine(m, "fold")

	assert.True(t, m.Done())
}

func TestView(t *testing.T) {
	t.Parallel()
	m := newHeadsUp(t)

	assert.Equal(t, "Loading...", m.View())

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := m.View()
	assert.Contains(t, view, "Pot: $30")
	assert.Contains(t, view, "Bot $80")
	assert.Contains(t, view, "[fold]")
	assert.Contains(t, view, "[call $10]")
	assert.Contains(t, view, "[raise 40-100]")

	typeLine(m, "fold")
	assert.Contains(t, m.View(), "Bot wins $30")
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	newRound := func(t *testing.T) *game.RoundState {
		rs, err := game.NewRoundState(20, game.WithRNG(randutil.New(3)))
		require.NoError(t, err)
		rs.RegisterAll(game.NewPlayer(humanID, "You", 100), game.NewPlayer(botID, "Bot", 100))
		return rs
	}
	bots := map[int]simulator.Strategy{botID: simulator.CallingStation{}}

	_, err := New(Config{})
	assert.Error(t, err)

	_, err = New(Config{Round: newRound(t), HumanID: 7, Bots: bots})
	assert.ErrorContains(t, err, "not seated")

	_, err = New(Config{Round: newRound(t), HumanID: humanID})
	assert.ErrorContains(t, err, "no strategy")

	started := newRound(t)
	require.NoError(t, started.Advance())
	_, err = New(Config{Round: started, HumanID: humanID, Bots: bots})
	assert.ErrorContains(t, err, "already on the preflop")

	lonely, err := game.NewRoundState(20)
	require.NoError(t, err)
	lonely.Register(game.NewPlayer(humanID, "You", 100))
	_, err = New(Config{Round: lonely, HumanID: humanID})
	assert.True(t, errors.Is(err, game.ErrInvalidTransition))
}

func TestParseCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Command
		err   string
	}{
		{input: "fold", want: Command{Action: game.Fold}},
		{input: "F", want: Command{Action: game.Fold}},
		{input: "check", want: Command{Action: game.Check}},
		{input: "k", want: Command{Action: game.Check}},
		{input: "  call ", want: Command{Action: game.Call}},
		{input: "raise 60", want: Command{Action: game.Raise, Amount: 60}},
		{input: "raise to 60", want: Command{Action: game.Raise, Amount: 60}},
		{input: "r $45", want: Command{Action: game.Raise, Amount: 45}},
		{input: "bet 20", want: Command{Action: game.Raise, Amount: 20}},
		{input: "allin", want: Command{Action: game.Raise, AllIn: true}},
		{input: "quit", want: Command{Quit: true}},
		{input: "", err: "enter an action"},
		{input: "raise", err: "needs an amount"},
		{input: "raise lots", err: "invalid amount"},
		{input: "raise -5", err: "invalid amount"},
		{input: "shove", err: "unknown action"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCommand(tt.input)
			if tt.err != "" {
				assert.ErrorContains(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
