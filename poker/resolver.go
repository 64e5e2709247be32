package poker

import (
	"fmt"
)

// ValidationKind identifies which input rule a ValidationError broke
type ValidationKind uint8

const (
	NoPlayers ValidationKind = iota
	MalformedCard
	DuplicateCard
	DuplicatePlayer
	HoleCardCount
	BoardCardCount
)

var validationKindNames = [...]string{
	NoPlayers:       "no players",
	MalformedCard:   "malformed card",
	DuplicateCard:   "duplicate card",
	DuplicatePlayer: "duplicate player",
	HoleCardCount:   "hole card count",
	BoardCardCount:  "board card count",
}

func (k ValidationKind) String() string {
	if int(k) < len(validationKindNames) {
		return validationKindNames[k]
	}
	return "unknown"
}

// ValidationError reports malformed, duplicated or miscounted cards handed to
// the resolver. It is always returned before any hand is evaluated.
type ValidationError struct {
	Kind   ValidationKind
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid cards: " + e.Reason
}

func invalid(kind ValidationKind, format string, args ...any) error {
	return &ValidationError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// Holding pairs a player with their hole cards
type Holding struct {
	PlayerID int
	Cards    []Card
}

// Result is the evaluated hand for one player
type Result struct {
	PlayerID int
	Cards    []Card // hole cards followed by the community cards
	Value    HandValue
}

// ValidateHands checks every card is well formed, no card identity appears
// twice across all hole and community cards, every player holds exactly two
// cards and the community count is 0, 3, 4 or 5.
func ValidateHands(holdings []Holding, community []Card) error {
	if len(holdings) == 0 {
		return invalid(NoPlayers, "no players to resolve")
	}

	seenPlayers := make(map[int]bool, len(holdings))
	seen := make(map[Card]bool, 2*len(holdings)+len(community))
	check := func(c Card, owner string) error {
		if !c.Valid() {
			return invalid(MalformedCard, "%s has malformed card (rank %d, suit %d)", owner, c.Rank, c.Suit)
		}
		if seen[c] {
			return invalid(DuplicateCard, "duplicate card %s", c)
		}
		seen[c] = true
		return nil
	}

	for _, h := range holdings {
		if seenPlayers[h.PlayerID] {
			return invalid(DuplicatePlayer, "player %d listed twice", h.PlayerID)
		}
		seenPlayers[h.PlayerID] = true
		owner := fmt.Sprintf("player %d", h.PlayerID)
		for _, c := range h.Cards {
			if err := check(c, owner); err != nil {
				return err
			}
		}
	}
	for _, c := range community {
		if err := check(c, "board"); err != nil {
			return err
		}
	}

	for _, h := range holdings {
		if len(h.Cards) != 2 {
			return invalid(HoleCardCount, "player %d must have exactly 2 hole cards, has %d", h.PlayerID, len(h.Cards))
		}
	}

	switch len(community) {
	case 0, 3, 4, 5:
	default:
		return invalid(BoardCardCount, "number of community cards must be 0, 3, 4, or 5, got %d", len(community))
	}

	return nil
}

// ResolveHands validates the input and evaluates every player's hole cards
// together with the community cards. Results keep the input order.
func ResolveHands(holdings []Holding, community []Card) ([]Result, error) {
	if err := ValidateHands(holdings, community); err != nil {
		return nil, err
	}

	results := make([]Result, len(holdings))
	for i, h := range holdings {
		cards := make([]Card, 0, len(h.Cards)+len(community))
		cards = append(cards, h.Cards...)
		cards = append(cards, community...)
		results[i] = Result{
			PlayerID: h.PlayerID,
			Cards:    cards,
			Value:    Evaluate(cards),
		}
	}
	return results, nil
}

// Best returns every result tied for the strongest hand, in input order
func Best(results []Result) []Result {
	var best []Result
	for _, r := range results {
		if len(best) == 0 {
			best = []Result{r}
			continue
		}
		switch r.Value.Compare(best[0].Value) {
		case 1:
			best = []Result{r}
		case 0:
			best = append(best, r)
		}
	}
	return best
}

// Resolve returns the IDs of all players holding the best hand. Ties return
// every tied player, in input order. Resolution is only meaningful for final
// showdown with five community cards; fewer cards are evaluated as they are.
func Resolve(holdings []Holding, community []Card) ([]int, error) {
	results, err := ResolveHands(holdings, community)
	if err != nil {
		return nil, err
	}
	best := Best(results)
	winners := make([]int, len(best))
	for i, r := range best {
		winners[i] = r.PlayerID
	}
	return winners, nil
}
