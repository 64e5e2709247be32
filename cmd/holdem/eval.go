package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/lox/holdem-engine/poker"
)

// EvalCmd ranks hole cards against a board
type EvalCmd struct {
	Hands []string `arg:"" name:"hand" help:"Hole cards as name=cards, e.g. alice=AsKd"`
	Board string   `short:"b" help:"Community cards, e.g. 'Js Jc 4h 8d 2c'"`
}

func (c *EvalCmd) Run(g *Globals) error {
	names, holdings, err := parseHoldings(c.Hands)
	if err != nil {
		return err
	}
	board, err := poker.ParseCards(c.Board)
	if err != nil {
		return fmt.Errorf("board: %w", err)
	}
	return evaluate(g.Stdout, names, holdings, board)
}

// parseHoldings turns name=cards arguments into holdings numbered in order
func parseHoldings(args []string) ([]string, []poker.Holding, error) {
	names := make([]string, len(args))
	holdings := make([]poker.Holding, len(args))
	for i, arg := range args {
		name, cards, ok := strings.Cut(arg, "=")
		if !ok {
			name, cards = fmt.Sprintf("player%d", i+1), arg
		}
		parsed, err := poker.ParseCards(cards)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", name, err)
		}
		names[i] = name
		holdings[i] = poker.Holding{PlayerID: i, Cards: parsed}
	}
	return names, holdings, nil
}

func evaluate(w io.Writer, names []string, holdings []poker.Holding, board []poker.Card) error {
	results, err := poker.ResolveHands(holdings, board)
	if err != nil {
		return err
	}
	best := poker.Best(results)

	if len(board) > 0 {
		fmt.Fprintf(w, "Board: %s\n", poker.FormatCards(board))
	}
	for _, r := range results {
		marker := " "
		if slices.ContainsFunc(best, func(b poker.Result) bool { return b.PlayerID == r.PlayerID }) {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-10s %s  %-16s %s\n",
			marker, names[r.PlayerID], poker.FormatCards(holdings[r.PlayerID].Cards),
			r.Value.Category, poker.DescribeOrCategory(r.Cards))
	}

	winners := make([]string, len(best))
	for i, r := range best {
		winners[i] = names[r.PlayerID]
	}
	if len(winners) == 1 {
		fmt.Fprintf(w, "Winner: %s\n", winners[0])
	} else {
		fmt.Fprintf(w, "Split: %s\n", strings.Join(winners, ", "))
	}
	return nil
}
