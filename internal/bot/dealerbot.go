package bot

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/game"
)

// DealerBot copies the house: hit below 17, never double or split
type DealerBot struct {
	unit   float64
	logger *log.Logger
}

// NewDealerBot creates a bot that plays the dealer's rules
func NewDealerBot(unit float64, logger *log.Logger) *DealerBot {
	return &DealerBot{unit: unit, logger: logger.WithPrefix("bot")}
}

func (d *DealerBot) Bet(_ context.Context, s game.BetState) (float64, error) {
	return flatBet(d.unit, s.Money), nil
}

func (d *DealerBot) Act(_ context.Context, s game.TurnState) (game.Action, error) {
	if s.Hand().Value < game.DealerStandsOn {
		return game.Hit, nil
	}
	return game.Stand, nil
}
