package bot

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// Basic plays a simplified basic strategy with flat bets. It always splits
// aces and eights, doubles on 11 and on 10 against a weak upcard, and stands
// on stiff hands when the dealer is likely to bust.
type Basic struct {
	unit   float64
	logger *log.Logger
}

// NewBasic creates a basic-strategy bot
func NewBasic(unit float64, logger *log.Logger) *Basic {
	return &Basic{unit: unit, logger: logger.WithPrefix("bot")}
}

func (b *Basic) Bet(_ context.Context, s game.BetState) (float64, error) {
	return flatBet(b.unit, s.Money), nil
}

func (b *Basic) Act(_ context.Context, s game.TurnState) (game.Action, error) {
	action := b.decide(s)
	b.logger.Debug("Bot decision",
		"player", s.Player,
		"hand", s.HandIndex+1,
		"value", s.Hand().Value,
		"soft", s.Hand().Soft,
		"upcard", s.DealerUpcard,
		"action", action)
	return action, nil
}

func (b *Basic) decide(s game.TurnState) game.Action {
	h := s.Hand()
	up := s.DealerUpcard.Value()

	if s.CanSplit && len(h.Cards) == 2 {
		if r := h.Cards[0].Rank; r == deck.Ace || r == deck.Eight {
			return game.Split
		}
	}

	if s.CanDouble && len(h.Cards) == 2 && !h.Soft {
		switch {
		case h.Value == 11:
			return game.Double
		case h.Value == 10 && up >= 2 && up <= 9:
			return game.Double
		}
	}

	if h.Soft {
		if h.Value >= 18 {
			return game.Stand
		}
		return game.Hit
	}

	switch {
	case h.Value >= 17:
		return game.Stand
	case h.Value >= 13 && up <= 6:
		return game.Stand
	case h.Value == 12 && up >= 4 && up <= 6:
		return game.Stand
	}
	return game.Hit
}
