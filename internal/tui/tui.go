// Package tui plays a single interactive hand in the terminal. One seat is
// the human at the keyboard; every other seat is driven by a simulator
// strategy. The hand runs synchronously inside Update, so the model never
// shares its RoundState with another goroutine.
package tui

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/simulator"
)

// Config configures an interactive hand
type Config struct {
	// Round must have its players registered and must not have started
	Round   *game.RoundState
	HumanID int
	Bots    map[int]simulator.Strategy
	RNG     *rand.Rand
	Logger  *log.Logger
}

// Model is the Bubble Tea model for one interactive hand
type Model struct {
	rs      *game.RoundState
	humanID int
	bots    map[int]simulator.Strategy
	rng     *rand.Rand
	logger  *log.Logger

	logViewport viewport.Model
	actionInput textinput.Model
	help        help.Model
	keys        keyMap

	gameLog     []string
	status      string
	result      *game.ShowdownResult
	err         error
	focusedPane int // 0 = log, 1 = input
	quitting    bool

	width       int
	height      int
	initialized bool
}

// New deals the hand and plays bot seats up to the human's first decision
func New(cfg Config) (*Model, error) {
	if cfg.Round == nil {
		return nil, errors.New("tui: no round")
	}
	if cfg.Round.Round() != game.NotStarted {
		return nil, fmt.Errorf("tui: hand already on the %s", cfg.Round.Round())
	}
	if _, ok := cfg.Round.Player(cfg.HumanID); !ok {
		return nil, fmt.Errorf("tui: human player %d is not seated", cfg.HumanID)
	}
	for _, p := range cfg.Round.Players() {
		if p.ID != cfg.HumanID && cfg.Bots[p.ID] == nil {
			return nil, fmt.Errorf("tui: no strategy for %s", p)
		}
	}
	if cfg.RNG == nil {
		cfg.RNG = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}

	vp := viewport.New(10, 5)

	ti := textinput.New()
	ti.Placeholder = "fold, check, call, raise 60, allin"
	ti.Focus()
	ti.CharLimit = 40
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)
	ti.Prompt = "> "

	m := &Model{
		rs:          cfg.Round,
		humanID:     cfg.HumanID,
		bots:        cfg.Bots,
		rng:         cfg.RNG,
		logger:      cfg.Logger.WithPrefix("tui"),
		logViewport: vp,
		actionInput: ti,
		help:        help.New(),
		keys:        defaultKeyMap(),
		focusedPane: 1,
	}

	m.addLog(StreetStyle.Render(fmt.Sprintf("*** HAND %s ***", m.rs.ID())))
	if err := m.rs.Advance(); err != nil {
		return nil, err
	}
	m.logBlinds()
	if err := m.play(); err != nil {
		return nil, err
	}
	return m, nil
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.SwitchPane):
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.actionInput.Focus()
			} else {
				m.focusedPane = 0
				m.actionInput.Blur()
			}
		case key.Matches(msg, m.keys.Submit) && m.focusedPane == 1:
			input := strings.TrimSpace(m.actionInput.Value())
			m.actionInput.Reset()
			if m.submit(input) {
				m.quitting = true
				return m, tea.Quit
			}
		case m.focusedPane == 0:
			switch {
			case key.Matches(msg, m.keys.ScrollUp):
				m.logViewport.ScrollUp(1)
			case key.Matches(msg, m.keys.ScrollDown):
				m.logViewport.ScrollDown(1)
			case key.Matches(msg, m.keys.Top):
				m.logViewport.GotoTop()
			case key.Matches(msg, m.keys.Bottom):
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit handles one line of input and reports whether the program should exit
func (m *Model) submit(input string) bool {
	if m.Done() {
		return true
	}

	cmd, err := ParseCommand(input)
	if err != nil {
		m.status = err.Error()
		return false
	}
	if cmd.Quit {
		return true
	}

	action, amount := cmd.Action, cmd.Amount
	if cmd.AllIn {
		if _, maxTo, ok := m.rs.RaiseBounds(); ok {
			amount = maxTo
		} else {
			action = game.Call
		}
	}

	m.logger.Debug("Human action", "player", m.humanID, "action", action, "amount", amount)
	if err := m.apply(m.humanID, action, amount); err != nil {
		m.status = err.Error()
		return false
	}
	m.status = ""
	if err := m.play(); err != nil {
		m.err = err
		m.status = err.Error()
	}
	return false
}

// apply processes an action and logs it against the player's name
func (m *Model) apply(id int, action game.PlayerAction, amount int) error {
	if err := m.rs.ProcessAction(id, action, amount); err != nil {
		return err
	}
	history := m.rs.History()
	m.addLog(m.describeAction(history[len(history)-1]))
	return nil
}

// play acts for every bot seat and advances streets until the human is due
// to act or the hand is over.
func (m *Model) play() error {
	for m.rs.Round() != game.Ended {
		for !m.rs.StreetResolved() {
			p, ok := m.rs.NextToAct()
			if !ok || p.ID == m.humanID {
				return nil
			}
			d, err := simulator.NewDecision(m.rs)
			if err != nil {
				return err
			}
			action, amount := m.bots[p.ID].Decide(d, m.rng)
			if err := m.apply(p.ID, action, amount); err != nil {
				return fmt.Errorf("%s %s %d: %w", p.Name, action, amount, err)
			}
		}
		if err := m.rs.Advance(); err != nil {
			return err
		}
		if m.rs.Round() != game.Ended && len(m.rs.ActivePlayers()) > 1 {
			m.addLog(StreetStyle.Render(fmt.Sprintf("*** %s *** %s",
				strings.ToUpper(m.rs.Round().String()), FormatCards(m.rs.CommunityCards()))))
		}
	}

	result, err := m.rs.Showdown()
	if err != nil {
		return err
	}
	m.result = result
	m.logShowdown(result)
	return nil
}

func (m *Model) logBlinds() {
	for _, rec := range m.rs.History() {
		m.addLog(m.describeAction(rec))
	}
	if p, ok := m.rs.Player(m.humanID); ok {
		m.addLog(HandInfoStyle.Render("Dealt to " + p.Name + " " + FormatCards(p.HoleCards())))
	}
}

func (m *Model) logShowdown(result *game.ShowdownResult) {
	m.addLog(StreetStyle.Render("*** SHOWDOWN ***"))
	if !result.Uncontested {
		for _, h := range result.Hands {
			p, _ := m.rs.Player(h.PlayerID)
			m.addLog(fmt.Sprintf("%s shows %s (%s)", p.Name, FormatCards(p.HoleCards()), h.Value.Category))
		}
	}
	shares := game.SplitPot(result.Pot, result.Winners)
	for _, id := range result.Winners {
		p, _ := m.rs.Player(id)
		m.addLog(SuccessStyle.Render(fmt.Sprintf("%s wins $%d", p.Name, shares[id])))
	}
}

func (m *Model) describeAction(rec game.ActionRecord) string {
	name := fmt.Sprintf("player %d", rec.PlayerID)
	if p, ok := m.rs.Player(rec.PlayerID); ok {
		name = p.Name
	}

	var line string
	switch rec.Action {
	case game.Fold:
		line = name + " folds"
	case game.Check:
		line = name + " checks"
	case game.Call:
		if rec.Amount == 0 {
			line = name + " checks"
			break
		}
		line = fmt.Sprintf("%s calls $%d", name, rec.Amount)
	case game.Raise:
		line = fmt.Sprintf("%s raises to $%d", name, rec.Total)
	case game.Blind:
		line = fmt.Sprintf("%s posts blind $%d", name, rec.Amount)
	}
	if rec.AllIn {
		line += " and is all-in"
	}
	return line
}

// addLog appends an entry to the game log and keeps the newest line in view
func (m *Model) addLog(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// Done reports whether the hand has been resolved or stopped by an error
func (m *Model) Done() bool {
	return m.result != nil || m.err != nil
}

// Result returns the showdown result once the hand is over
func (m *Model) Result() *game.ShowdownResult {
	return m.result
}

// Err returns the error that stopped the hand, if any
func (m *Model) Err() error {
	return m.err
}

// Round returns the hand being played
func (m *Model) Round() *game.RoundState {
	return m.rs
}

// Log returns the plain game log lines
func (m *Model) Log() []string {
	return slices.Clone(m.gameLog)
}

// Status returns the last error or hint shown under the input
func (m *Model) Status() string {
	return m.status
}
