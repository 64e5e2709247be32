// Package game implements the betting-round state machine for a single hand
// of No-Limit Texas Hold'em.
//
// The main type is RoundState. It owns the deck, the community cards, the
// burn pile and the bet ledger for exactly one hand, and is discarded once
// the hand is over.
//
// # Basic Usage
//
//	rs, err := game.NewRoundState(20, game.WithRNG(randutil.New(42)))
//	if err != nil {
//	    return err
//	}
//	rs.Register(game.NewPlayer(1, "Alice", 1000))
//	rs.Register(game.NewPlayer(2, "Bob", 1000))
//	rs.Register(game.NewPlayer(3, "Carol", 1000))
//
//	// Deals hole cards and posts both blinds
//	if err := rs.Advance(); err != nil {
//	    return err
//	}
//
//	// Act for whoever is at the head of the queue
//	next, _ := rs.NextToAct()
//	err = rs.ProcessAction(next.ID, game.Call, 0)
//
//	// Once the street's queue is empty the flop can be dealt
//	if rs.StreetResolved() {
//	    err = rs.Advance()
//	}
//
// # Deterministic Testing
//
// Supply a seeded RNG or a stacked deck:
//
//	deck, _ := poker.NewStackedDeck(poker.MustParseCards("AsKsJhJd")...)
//	rs, _ := game.NewRoundState(2, game.WithDeck(deck))
//
// # Concurrency
//
// A RoundState performs no internal synchronization. Each hand is owned by a
// single goroutine; embedders running many tables keep one RoundState per
// goroutine (see internal/simulator) or guard each with its own mutex.
package game
