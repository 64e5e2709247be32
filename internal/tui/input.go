package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/holdem-engine/internal/game"
)

// Command is a parsed line typed by the human player
type Command struct {
	Action game.PlayerAction
	Amount int  // raise-to total, only for Raise
	AllIn  bool // raise to the whole stack, or call when raising is closed
	Quit   bool
}

var errEmptyCommand = errors.New("enter an action: fold, check, call, raise <amount> or allin")

// ParseCommand parses player input. Accepted forms are "fold", "check",
// "call", "raise 60" or "raise to 60", "allin" and "quit", plus the single
// letter shortcuts f, k, c, r and q. Raise amounts are the total to raise to.
func ParseCommand(input string) (Command, error) {
	parts := strings.Fields(strings.ToLower(input))
	if len(parts) == 0 {
		return Command{}, errEmptyCommand
	}

	switch parts[0] {
	case "quit", "q", "exit":
		return Command{Quit: true}, nil
	case "fold", "f":
		return Command{Action: game.Fold}, nil
	case "check", "k", "x":
		return Command{Action: game.Check}, nil
	case "call", "c":
		return Command{Action: game.Call}, nil
	case "allin", "all-in", "a":
		return Command{Action: game.Raise, AllIn: true}, nil
	case "raise", "r", "bet", "b":
		args := parts[1:]
		if len(args) > 0 && args[0] == "to" {
			args = args[1:]
		}
		if len(args) != 1 {
			return Command{}, fmt.Errorf("%s needs an amount, e.g. %q", parts[0], "raise 60")
		}
		amount, err := strconv.Atoi(strings.TrimPrefix(args[0], "$"))
		if err != nil || amount <= 0 {
			return Command{}, fmt.Errorf("invalid amount %q", args[0])
		}
		return Command{Action: game.Raise, Amount: amount}, nil
	default:
		return Command{}, fmt.Errorf("unknown action %q", parts[0])
	}
}
