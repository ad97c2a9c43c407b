package bot

import (
	"context"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/game"
)

// RandBot is a simple bot that makes uniform random legal actions
type RandBot struct {
	unit   float64
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(unit float64, rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{unit: unit, rng: rng, logger: logger.WithPrefix("bot")}
}

func (r *RandBot) Bet(_ context.Context, s game.BetState) (float64, error) {
	return flatBet(r.unit, s.Money), nil
}

func (r *RandBot) Act(_ context.Context, s game.TurnState) (game.Action, error) {
	actions := []game.Action{game.Hit, game.Stand}
	if s.CanDouble {
		actions = append(actions, game.Double)
	}
	if s.CanSplit {
		actions = append(actions, game.Split)
	}

	action := actions[r.rng.IntN(len(actions))]
	r.logger.Debug("Random action", "player", s.Player, "hand", s.HandIndex+1, "action", action)
	return action, nil
}
