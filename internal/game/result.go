package game

import (
	"time"

	"github.com/lox/blackjack/internal/deck"
)

// HandOutcome records how one hand finished
type HandOutcome struct {
	Player    string
	HandIndex int
	Cards     []deck.Card
	Value     int
	Bet       float64
	Outcome   Outcome
	Payout    float64 // amount credited back to the player, stake included
}

// Net returns the hand's gain or loss relative to its stake
func (o HandOutcome) Net() float64 {
	return o.Payout - o.Bet
}

// RoundResult contains the results of a completed round
type RoundResult struct {
	GameID          string
	Round           int
	Hands           []HandOutcome
	DealerCards     []deck.Card
	DealerValue     int
	DealerBust      bool
	DealerBlackjack bool
	Balances        []PlayerBalance
	Duration        time.Duration
}

// Net returns the player's total gain or loss for the round
func (r *RoundResult) Net(player string) float64 {
	net := 0.0
	for _, h := range r.Hands {
		if h.Player == player {
			net += h.Net()
		}
	}
	return net
}

// HandsFor returns the outcomes for one player in hand order
func (r *RoundResult) HandsFor(player string) []HandOutcome {
	var hands []HandOutcome
	for _, h := range r.Hands {
		if h.Player == player {
			hands = append(hands, h)
		}
	}
	return hands
}
