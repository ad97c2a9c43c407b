package bot

import (
	"fmt"
	"io"
	"math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/game"
)

// Strategy names accepted by New
const (
	StrategyBasic  = "basic"
	StrategyDealer = "dealer"
	StrategyRand   = "rand"
)

// Strategies lists every strategy New understands
var Strategies = []string{StrategyBasic, StrategyDealer, StrategyRand}

// New creates an agent for the named strategy betting unit per round
func New(strategy string, unit float64, rng *rand.Rand, logger *log.Logger) (game.Agent, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if unit <= 0 {
		return nil, fmt.Errorf("bet unit must be positive, got %v", unit)
	}

	switch strategy {
	case StrategyBasic:
		return NewBasic(unit, logger), nil
	case StrategyDealer:
		return NewDealerBot(unit, logger), nil
	case StrategyRand:
		if rng == nil {
			return nil, fmt.Errorf("strategy %q needs a random source", strategy)
		}
		return NewRandBot(unit, rng, logger), nil
	}
	return nil, fmt.Errorf("unknown strategy %q (want one of %v)", strategy, Strategies)
}

// IsStrategy reports whether name is a known strategy
func IsStrategy(name string) bool {
	return slices.Contains(Strategies, name)
}

// flatBet wagers the unit, or everything left when the balance is short.
func flatBet(unit, money float64) float64 {
	return min(unit, money)
}
