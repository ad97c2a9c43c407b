// Package game implements the blackjack rule engine.
//
// The main type is Game, which seats players against a dealer and plays one
// round at a time: betting, dealing, the blackjack check, player turns, the
// dealer turn and settlement. Session wraps a Game and keeps dealing rounds
// until a Controller stops it or a player quits.
//
// # Basic Usage
//
//	g, err := game.NewGame(3, agent, game.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	summary, err := game.NewSession(g, controller, logger).Run(ctx)
//
// Agents make every decision (bets, hit/stand/double/split/quit) from
// read-only state. The engine validates decisions: refused bets and actions
// are published as RejectedEvent and the same player is asked again.
//
// # House Rules
//
// The rules are fixed: the dealer stands on all 17s, naturals pay 3:2, a
// player may hold up to four hands through splits, split aces take one card
// each, and the first shoe holds at least six decks.
//
// # Deterministic Testing
//
// Inject a stacked shoe and a mock clock:
//
//	shoes := func(int) (*deck.Shoe, error) {
//	    return deck.NewStackedShoe(deck.MustParseCards("10s 6h 10d 9c")...), nil
//	}
//	g, _ := game.NewGame(1, agent, game.WithShoeFactory(shoes), game.WithClock(quartz.NewMock(t)))
package game
