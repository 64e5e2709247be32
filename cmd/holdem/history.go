package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lox/holdem-engine/internal/phh"
	"github.com/lox/holdem-engine/poker"
)

// HistoryCmd replays a PHH file as readable text
type HistoryCmd struct {
	File  string `arg:"" name:"file" help:"Path to a .phh or .phhs file" type:"existingfile"`
	Limit int    `help:"Maximum number of hands to render (0 = all)"`
}

func (c *HistoryCmd) Run(g *Globals) error {
	hands, err := phh.ReadFile(c.File)
	if err != nil {
		return err
	}
	if len(hands) == 0 {
		return fmt.Errorf("no hands found in %s", c.File)
	}

	limit := c.Limit
	if limit <= 0 || limit > len(hands) {
		limit = len(hands)
	}
	for i := range limit {
		if i > 0 {
			fmt.Fprintln(g.Stdout)
		}
		if err := renderHand(g.Stdout, &hands[i]); err != nil {
			return fmt.Errorf("rendering hand %d: %w", i+1, err)
		}
	}
	return nil
}

// renderHand writes one hand history the way a poker client log reads
func renderHand(w io.Writer, hand *phh.HandHistory) error {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Hand %s", hand.HandID)))
	if hand.Table != "" {
		fmt.Fprintf(w, "Table: %s\n", hand.Table)
	}
	for i, stack := range hand.StartingStacks {
		fmt.Fprintf(w, "Seat %d: %s ($%d)\n", i+1, seatName(hand, i), stack)
	}
	for i, blind := range hand.BlindsOrStraddles {
		if blind > 0 {
			fmt.Fprintf(w, "%s posts blind $%d\n", seatName(hand, i), blind)
		}
	}

	street := 0
	streets := []string{"FLOP", "TURN", "RIVER"}
	for _, action := range hand.Actions {
		fields := strings.Fields(action)
		if len(fields) < 2 {
			return fmt.Errorf("malformed action %q", action)
		}

		if fields[0] == "d" {
			switch {
			case fields[1] == "dh" && len(fields) == 4:
				seat, err := parseSeat(fields[2])
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "Dealt to %s %s\n", seatName(hand, seat), prettyCards(fields[3]))
			case fields[1] == "db" && len(fields) == 3:
				name := "BOARD"
				if street < len(streets) {
					name = streets[street]
				}
				street++
				fmt.Fprintf(w, "*** %s *** %s\n", name, prettyCards(fields[2]))
			default:
				return fmt.Errorf("malformed deal %q", action)
			}
			continue
		}

		if strings.HasPrefix(fields[0], "#") {
			continue
		}
		seat, err := parseSeat(fields[0])
		if err != nil {
			return err
		}
		name := seatName(hand, seat)
		switch {
		case fields[1] == "f":
			fmt.Fprintf(w, "%s folds\n", name)
		case fields[1] == "cc":
			fmt.Fprintf(w, "%s checks or calls\n", name)
		case fields[1] == "cbr" && len(fields) == 3:
			fmt.Fprintf(w, "%s bets or raises to $%s\n", name, fields[2])
		case fields[1] == "sm" && len(fields) == 3:
			fmt.Fprintf(w, "%s shows %s\n", name, prettyCards(fields[2]))
		default:
			return fmt.Errorf("unknown action %q", action)
		}
	}

	for i, won := range hand.Winnings {
		if won > 0 {
			fmt.Fprintf(w, "%s wins $%d\n", seatName(hand, i), won)
		}
	}
	return nil
}

// parseSeat converts "p2" to the zero-based seat index 1
func parseSeat(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(s, "p"))
	if err != nil || !strings.HasPrefix(s, "p") || n < 1 {
		return 0, fmt.Errorf("invalid seat %q", s)
	}
	return n - 1, nil
}

func seatName(hand *phh.HandHistory, seat int) string {
	if seat < len(hand.Players) && hand.Players[seat] != "" {
		return hand.Players[seat]
	}
	return fmt.Sprintf("p%d", seat+1)
}

// prettyCards renders concatenated PHH cards, leaving anything unparsable as is
func prettyCards(s string) string {
	cards, err := poker.ParseCards(s)
	if err != nil {
		return s
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.Pretty()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
