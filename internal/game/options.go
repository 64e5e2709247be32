package game

import (
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem-engine/internal/handid"
	"github.com/lox/holdem-engine/poker"
)

// Option configures a RoundState during creation.
type Option func(*roundConfig)

type roundConfig struct {
	rng    *rand.Rand
	deck   *poker.Deck // overrides rng for deck creation
	logger *log.Logger
	handID string
}

func defaultConfig() *roundConfig {
	return &roundConfig{
		logger: log.New(io.Discard),
	}
}

// WithRNG shuffles the deck with rng. Use randutil.New(seed) for
// reproducible hands.
func WithRNG(rng *rand.Rand) Option {
	return func(c *roundConfig) {
		c.rng = rng
	}
}

// WithDeck uses a prepared deck instead of shuffling a new one. The deck must
// hold all 52 cards; the RoundState takes ownership of it.
func WithDeck(deck *poker.Deck) Option {
	return func(c *roundConfig) {
		c.deck = deck
	}
}

// WithLogger sets the logger for state transitions and ledger details.
// Default is a logger that discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(c *roundConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHandID sets the identifier reported in logs and hand histories.
// A time-ordered random ID is used when not set.
func WithHandID(id string) Option {
	return func(c *roundConfig) {
		c.handID = id
	}
}

func (c *roundConfig) resolve() (*poker.Deck, string) {
	deck := c.deck
	if deck == nil {
		rng := c.rng
		if rng == nil {
			rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		}
		deck = poker.NewDeck(rng)
	}
	id := c.handID
	if id == "" {
		id = handid.New()
	}
	return deck, id
}
