package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdem-engine/internal/game"
)

const sidebarWidth = 26

// View renders the table
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := HeaderStyle.Render(fmt.Sprintf("Hold'em  %s  %s", m.rs.ID(), m.rs.Round()))

	actionContent := m.renderActionPane()
	actionPane := paneStyle.
		BorderForeground(accent).
		Width(max(1, m.width-2)).
		Render(actionContent)

	paneHeight := max(1, m.height-lipgloss.Height(header)-lipgloss.Height(actionPane)-2)

	sidebar := paneStyle.
		Width(sidebarWidth).
		Height(paneHeight).
		Render(m.renderSidebarPane())

	logWidth := max(1, m.width-sidebarWidth-4)
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logStyle := paneStyle.Width(logWidth).Height(paneHeight)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(accent)
	}
	logPane := logStyle.Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebar)
	return lipgloss.JoinVertical(lipgloss.Left, header, topRow, actionPane)
}

// renderSidebarPane lists the pot, the board and every seat
func (m *Model) renderSidebarPane() string {
	var content strings.Builder

	content.WriteString(WarningStyle.Render(fmt.Sprintf("Pot: $%d", m.rs.Pot())))
	content.WriteString("\n")
	if board := m.rs.CommunityCards(); len(board) > 0 {
		content.WriteString("Board: " + FormatCards(board))
		content.WriteString("\n")
	}
	content.WriteString("\n")

	next, hasNext := m.rs.NextToAct()
	active := m.rs.ActivePlayers()
	street := m.rs.StreetContributions()
	for _, p := range m.rs.Players() {
		marker := "  "
		if hasNext && next.ID == p.ID {
			marker = "▶ "
		}
		line := fmt.Sprintf("%s%s $%d", marker, p.Name, p.Stack)
		if bet := street[p.ID]; bet > 0 {
			line += fmt.Sprintf(" (bet %d)", bet)
		}
		switch {
		case m.rs.Round() != game.NotStarted && !slices.Contains(active, p):
			line = InfoStyle.Render(line + " folded")
		case p.AllIn:
			line = WarningStyle.Render(line + " all-in")
		}
		content.WriteString(line)
		content.WriteString("\n")
	}

	return content.String()
}

// renderActionPane shows the human's cards, what they may do and the input
func (m *Model) renderActionPane() string {
	var content strings.Builder

	if p, ok := m.rs.Player(m.humanID); ok {
		content.WriteString(HandInfoStyle.Render(fmt.Sprintf("Hand: %s  Stack: $%d", FormatCards(p.HoleCards()), p.Stack)))
		content.WriteString("\n")
	}

	switch {
	case m.err != nil:
		content.WriteString(ErrorStyle.Render("Hand stopped: " + m.err.Error()))
		m.actionInput.Placeholder = "Enter to exit"
	case m.result != nil:
		content.WriteString(SuccessStyle.Render(m.summary()))
		m.actionInput.Placeholder = "Enter to exit"
	default:
		content.WriteString(m.renderAvailableActions())
		if m.status != "" {
			content.WriteString("\n")
			content.WriteString(ErrorStyle.Render(m.status))
		}
	}
	content.WriteString("\n")
	content.WriteString(m.actionInput.View())
	content.WriteString("\n")
	content.WriteString(m.help.View(m.keys))

	return content.String()
}

// renderAvailableActions lists the actions the engine allows right now
func (m *Model) renderAvailableActions() string {
	var actions []string
	for _, a := range m.rs.ValidActions() {
		switch a {
		case game.Fold:
			actions = append(actions, ErrorStyle.Render("[fold]"))
		case game.Check:
			actions = append(actions, SuccessStyle.Render("[check]"))
		case game.Call:
			actions = append(actions, SuccessStyle.Render(fmt.Sprintf("[call $%d]", m.rs.ToCall())))
		case game.Raise:
			minTo, maxTo, _ := m.rs.RaiseBounds()
			actions = append(actions, WarningStyle.Render(fmt.Sprintf("[raise %d-%d]", minTo, maxTo)))
		}
	}
	if len(actions) == 0 {
		return HandInfoStyle.Render("Waiting...")
	}
	return ActionsStyle.Render("Actions: ") + strings.Join(actions, " ")
}

// summary describes how the hand ended
func (m *Model) summary() string {
	names := make([]string, len(m.result.Winners))
	for i, id := range m.result.Winners {
		p, _ := m.rs.Player(id)
		names[i] = p.Name
	}
	verb := "wins"
	if len(names) > 1 {
		verb = "split"
	}
	return fmt.Sprintf("%s %s $%d", strings.Join(names, " and "), verb, m.result.Pot)
}
