package game

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem-engine/poker"
)

// MaxPlayers is the largest table a single deck can serve: two hole cards
// each plus three burns and five community cards.
const MaxPlayers = (52 - 3 - 5) / MaxHoleCards

// RoundState is the state of one hand. Players join while the hand is
// NotStarted; after that the state only changes through Advance and
// ProcessAction. Every operation validates before it mutates, so a returned
// error leaves the hand untouched.
type RoundState struct {
	id         string
	bigBlind   int
	smallBlind int

	players []*Player // seating order, index 0 posts the small blind
	byID    map[int]*Player
	active  []*Player
	queue   []*Player // players who still owe an action this street

	round     BettingRound
	deck      *poker.Deck
	community *poker.Deck
	discard   *poker.Deck

	bets    map[BettingRound][]Bet
	history []ActionRecord

	lastRaise   int          // size of the last full raise this street
	raiseClosed map[int]bool // players limited to call or fold after an incomplete raise

	logger *log.Logger
}

// NewRoundState creates a hand with the given big blind. The small blind is
// half the big blind, so the big blind must be a positive even number.
func NewRoundState(bigBlind int, opts ...Option) (*RoundState, error) {
	if bigBlind <= 0 || bigBlind%2 != 0 {
		return nil, fmt.Errorf("%w: big blind must be a positive even number, got %d", ErrInvalidConfig, bigBlind)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	deck, id := cfg.resolve()
	if !deck.IsComplete() {
		return nil, fmt.Errorf("%w: deck must hold each of the 52 cards exactly once", ErrInvalidConfig)
	}

	rs := &RoundState{
		id:          id,
		bigBlind:    bigBlind,
		smallBlind:  bigBlind / 2,
		byID:        make(map[int]*Player),
		round:       NotStarted,
		deck:        deck,
		community:   poker.NewEmptyDeck(),
		discard:     poker.NewEmptyDeck(),
		bets:        make(map[BettingRound][]Bet),
		lastRaise:   bigBlind,
		raiseClosed: make(map[int]bool),
		logger:      cfg.logger.With("hand", id),
	}
	rs.logger.Info("Hand initialized", "big_blind", bigBlind, "small_blind", rs.smallBlind)
	return rs, nil
}

// Register seats a player. It returns false, without error, when the hand
// has already started or the player is nil, has no name, has no chips,
// already holds cards or reuses a registered ID.
func (rs *RoundState) Register(p *Player) bool {
	reject := func(reason string) bool {
		rs.logger.Warn("Player rejected", "reason", reason)
		return false
	}

	switch {
	case p == nil:
		return reject("nil player")
	case rs.round != NotStarted:
		return reject("hand already started")
	case len(rs.players) >= MaxPlayers:
		return reject("table is full")
	case p.Name == "":
		return reject("empty name")
	case p.Stack <= 0:
		return reject("non-positive stack")
	case len(p.HoleCards()) > 0:
		return reject("player already holds cards")
	}
	if _, exists := rs.byID[p.ID]; exists {
		return reject(fmt.Sprintf("duplicate player id %d", p.ID))
	}

	p.Active = false
	p.AllIn = false
	p.HasActed = false
	rs.players = append(rs.players, p)
	rs.byID[p.ID] = p
	rs.logger.Info("Player registered", "id", p.ID, "name", p.Name, "stack", p.Stack)
	return true
}

// RegisterAll registers each player in order and returns how many were accepted
func (rs *RoundState) RegisterAll(players ...*Player) int {
	accepted := 0
	for _, p := range players {
		if rs.Register(p) {
			accepted++
		}
	}
	return accepted
}

// Advance moves the hand to the next betting round.
//
// NotStarted to Preflop deals two hole cards to every player, one at a time
// round-robin, then posts the blinds. Each later street burns one card
// before dealing the flop, turn or river. Advancing fails while anyone
// still owes an action, and always fails once the hand has Ended.
func (rs *RoundState) Advance() error {
	next, ok := rs.round.Next()
	if !ok {
		return fmt.Errorf("%w: hand has already ended", ErrInvalidTransition)
	}

	if rs.round == NotStarted {
		if len(rs.players) < 2 {
			return fmt.Errorf("%w: need at least 2 players, have %d", ErrInvalidTransition, len(rs.players))
		}
	} else if len(rs.queue) > 0 {
		return fmt.Errorf("%w: %d player(s) still to act on the %s", ErrInvalidTransition, len(rs.queue), rs.round)
	}

	if need := rs.cardsNeeded(next); rs.deck.Len() < need {
		return fmt.Errorf("advance to %s: %w (need %d, have %d)", next, poker.ErrDeckExhausted, need, rs.deck.Len())
	}

	rs.logger.Info("Betting round advancing", "from", rs.round, "to", next)

	var err error
	switch next {
	case Preflop:
		err = rs.startPreflop()
	case Flop, Turn, River:
		err = rs.dealStreet(next, next.communityCount()-rs.round.communityCount())
	case Ended:
		rs.round = Ended
		rs.queue = nil
	}
	rs.logState()
	return err
}

func (rs *RoundState) cardsNeeded(next BettingRound) int {
	switch next {
	case Preflop:
		return MaxHoleCards * len(rs.players)
	case Flop, Turn, River:
		return 1 + next.communityCount() - rs.round.communityCount()
	default:
		return 0
	}
}

func (rs *RoundState) startPreflop() error {
	rs.round = Preflop
	rs.active = slices.Clone(rs.players)
	for _, p := range rs.active {
		p.Active = true
	}

	for range MaxHoleCards {
		for _, p := range rs.active {
			card, err := rs.deck.Deal()
			if err != nil {
				return fmt.Errorf("deal hole cards: %w", err)
			}
			if err := p.receiveCard(card); err != nil {
				return err
			}
			rs.logger.Debug("Dealt hole card", "player", p.ID)
		}
	}
	rs.logger.Info("Dealt hole cards", "players", len(rs.active))

	rs.resetStreet()
	rs.postBlinds()
	return nil
}

// postBlinds has the head of the queue post the small blind and go to the
// back of the queue, since it still owes the rest of the big blind. The new
// head posts the big blind, which counts as its action for the street.
func (rs *RoundState) postBlinds() {
	sb := rs.queue[0]
	rs.placeBet(sb, Blind, rs.smallBlind)
	rs.recomputeQueue()
	if sb.CanAct() {
		sb.HasActed = false
		rs.queue = append(rs.queue, sb)
	}
	rs.logState()

	bb := rs.queue[0]
	rs.placeBet(bb, Blind, rs.bigBlind)
	rs.recomputeQueue()
	rs.logger.Info("Blinds posted", "small_blind", sb.ID, "big_blind", bb.ID, "pot", rs.Pot())
}

func (rs *RoundState) dealStreet(round BettingRound, count int) error {
	rs.round = round

	burn, err := rs.deck.Deal()
	if err != nil {
		return fmt.Errorf("burn before %s: %w", round, err)
	}
	rs.discard.Add(burn)

	for range count {
		card, err := rs.deck.Deal()
		if err != nil {
			return fmt.Errorf("deal %s: %w", round, err)
		}
		rs.community.Add(card)
	}
	rs.logger.Info("Dealt community cards", "round", round, "board", poker.FormatCards(rs.community.Cards()))

	rs.resetStreet()
	return nil
}

// resetStreet starts a new betting street: every active player is yet to
// act and the queue holds those who can still bet, in seating order. With
// fewer than two such players there is nobody to bet against.
func (rs *RoundState) resetStreet() {
	rs.lastRaise = rs.bigBlind
	clear(rs.raiseClosed)

	var queue []*Player
	for _, p := range rs.active {
		p.HasActed = false
		if p.CanAct() {
			queue = append(queue, p)
		}
	}
	if len(queue) < 2 {
		queue = nil
	}
	rs.queue = queue
}

// recomputeQueue filters the queue down to active players who can act and
// have not yet acted, preserving order.
func (rs *RoundState) recomputeQueue() {
	if len(rs.active) < 2 {
		rs.queue = nil
		return
	}
	rs.queue = slices.DeleteFunc(rs.queue, func(p *Player) bool {
		return !p.CanAct() || p.HasActed
	})
}

// placeBet moves up to amount chips from p into the pot and marks p as
// having acted. It returns the chips actually moved.
func (rs *RoundState) placeBet(p *Player, action PlayerAction, amount int) int {
	paid := p.commit(amount)
	if paid > 0 {
		rs.bets[rs.round] = append(rs.bets[rs.round], Bet{
			PlayerID: p.ID,
			Amount:   paid,
			Round:    rs.round,
			Action:   action,
		})
	}
	p.HasActed = true
	rs.record(p, action, paid)

	if paid > 0 {
		rs.logger.Debug("Bet placed", "player", p.ID, "action", action, "amount", paid, "stack", p.Stack)
	} else {
		rs.logger.Debug("Player checked", "player", p.ID)
	}
	if p.AllIn {
		rs.logger.Info("Player is all-in", "player", p.ID, "round", rs.round)
	}
	return paid
}

func (rs *RoundState) record(p *Player, action PlayerAction, paid int) {
	rs.history = append(rs.history, ActionRecord{
		PlayerID: p.ID,
		Round:    rs.round,
		Action:   action,
		Amount:   paid,
		Total:    rs.contribution(p.ID, rs.round),
		AllIn:    p.AllIn,
	})
}

func (rs *RoundState) logState() {
	rs.logger.Debug("State",
		"round", rs.round,
		"active", playerIDs(rs.active),
		"queue", playerIDs(rs.queue),
		"pot", rs.Pot(),
		"street", rs.StreetContributions(),
	)
}

func playerIDs(players []*Player) []int {
	ids := make([]int, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}
	return ids
}
