package game

import (
	"context"

	"github.com/lox/blackjack/internal/deck"
)

// BetState is the read-only view an agent gets when a bet is due
type BetState struct {
	Player string
	Money  float64
	Round  int
}

// HandView is a read-only snapshot of one hand
type HandView struct {
	Cards        []deck.Card
	Value        int
	Soft         bool
	Bet          float64
	SplitFromAce bool
}

// TurnState is the read-only view an agent gets when a hand needs a decision
type TurnState struct {
	Player       string
	Money        float64
	HandIndex    int
	Hands        []HandView
	DealerUpcard deck.Card
	CanDouble    bool
	CanSplit     bool
}

// Hand returns the hand being decided
func (s TurnState) Hand() HandView {
	return s.Hands[s.HandIndex]
}

// Agent represents any entity (human or bot) that makes decisions for the
// players at a table. Agents receive immutable state and return decisions;
// the engine validates and applies them.
type Agent interface {
	// Bet returns the wager for the named player, or ErrSessionQuit.
	Bet(ctx context.Context, state BetState) (float64, error)

	// Act returns the action for the hand at state.HandIndex, or
	// ErrSessionQuit. Returning Quit as an action is equivalent.
	Act(ctx context.Context, state TurnState) (Action, error)
}

// Controller decides whether a session deals another round
type Controller interface {
	Continue(ctx context.Context, result *RoundResult) (bool, error)
}

func viewOf(h *Hand) HandView {
	total, soft := h.evaluate()
	return HandView{
		Cards:        h.Cards(),
		Value:        total,
		Soft:         soft,
		Bet:          h.bet,
		SplitFromAce: h.splitFromAce,
	}
}
