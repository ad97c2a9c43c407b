package game

import (
	"fmt"
	"math"
)

const (
	// StartingMoney is every player's balance when they sit down
	StartingMoney = 1000.0

	// MaxHands caps how many hands a player can hold after splitting
	MaxHands = 4

	// DealerStandsOn is the total at which the dealer stops drawing
	DealerStandsOn = 17

	// BlackjackPayout is the net multiple of the bet paid on a natural
	BlackjackPayout = 1.5
)

// Participant is the shape shared by the dealer and players
type Participant interface {
	Name() string
	Hands() []*Hand
	HasHands() bool
	CanAct() bool
}

var (
	_ Participant = (*Player)(nil)
	_ Participant = (*Dealer)(nil)
)

// Player is a seat at the table with a balance and up to MaxHands hands
type Player struct {
	name         string
	Money        float64
	hands        []*Hand
	gotBlackjack bool
}

// NewPlayer creates a player holding StartingMoney
func NewPlayer(name string) *Player {
	return &Player{
		name:  name,
		Money: StartingMoney,
	}
}

func (p *Player) Name() string { return p.name }

// Hands returns the player's hands in play order
func (p *Player) Hands() []*Hand { return p.hands }

func (p *Player) HasHands() bool { return len(p.hands) > 0 }

// CanAct is an alias of IsActive so Player satisfies Participant
func (p *Player) CanAct() bool { return p.IsActive() }

// GotBlackjack reports whether the player was dealt a natural this round
func (p *Player) GotBlackjack() bool { return p.gotBlackjack }

// IsActive returns true if the player still has a live hand this round.
// A player settled on a natural is no longer active.
func (p *Player) IsActive() bool {
	if p.gotBlackjack {
		return false
	}
	for _, h := range p.hands {
		if !h.IsBust() {
			return true
		}
	}
	return false
}

// Wagered returns the total bet across all hands
func (p *Player) Wagered() float64 {
	total := 0.0
	for _, h := range p.hands {
		total += h.bet
	}
	return total
}

// AddHand takes the hand's bet out of the balance and seats the hand
func (p *Player) AddHand(h *Hand) error {
	if h.bet < 0 || math.IsNaN(h.bet) {
		return fmt.Errorf("%w: bet must be a non-negative number", ErrInvalidBet)
	}
	if h.bet > p.Money {
		return fmt.Errorf("%w: bet %.2f exceeds balance %.2f", ErrInvalidBet, h.bet, p.Money)
	}

	p.Money -= h.bet
	p.hands = append(p.hands, h)
	return nil
}

// Double pays the hand's bet a second time and doubles the wager
func (p *Player) Double(h *Hand) error {
	if p.Money < h.bet {
		return fmt.Errorf("%w: not enough money to double", ErrInvalidAction)
	}

	p.Money -= h.bet
	h.bet *= 2
	return nil
}

// Split moves the second card of h into a new hand with an equal bet, which
// is appended to the player's hands. Both hands are marked as split aces when
// the pair was aces.
func (p *Player) Split(h *Hand) (*Hand, error) {
	switch {
	case !h.CanSplit():
		return nil, fmt.Errorf("%w: can't split this hand", ErrInvalidAction)
	case len(p.hands) >= MaxHands:
		return nil, fmt.Errorf("%w: player can only have up to %d hands", ErrInvalidAction, MaxHands)
	case p.Money < h.bet:
		return nil, fmt.Errorf("%w: not enough money to split", ErrInvalidAction)
	}

	p.Money -= h.bet

	aces := h.cards[0].IsAce()
	split := NewHand(h.bet)
	split.Add(h.removeLast())
	split.splitFromAce = aces
	h.splitFromAce = aces

	p.hands = append(p.hands, split)
	return split, nil
}

// WinHand credits the stake plus winnings and returns the amount credited.
// A natural pays 3:2, everything else 1:1.
func (p *Player) WinHand(h *Hand) float64 {
	credit := h.bet * 2
	if p.gotBlackjack {
		credit = h.bet + h.bet*BlackjackPayout
	}
	p.Money += credit
	return credit
}

// PushHand returns the stake and returns the amount credited
func (p *Player) PushHand(h *Hand) float64 {
	p.Money += h.bet
	return h.bet
}

// Bust reports whether h is bust
func (p *Player) Bust(h *Hand) bool {
	return h.IsBust()
}

// Reset clears the player's hands and blackjack flag for a new round
func (p *Player) Reset() {
	p.hands = nil
	p.gotBlackjack = false
}

// Dealer plays a single hand against every player
type Dealer struct {
	hand *Hand
}

// NewDealer creates a dealer with an empty hand
func NewDealer() *Dealer {
	return &Dealer{hand: NewHand(0)}
}

func (d *Dealer) Name() string { return "Dealer" }

func (d *Dealer) Hands() []*Hand { return []*Hand{d.hand} }

func (d *Dealer) HasHands() bool { return d.hand != nil }

// CanAct is an alias of CanHit so Dealer satisfies Participant
func (d *Dealer) CanAct() bool { return d.CanHit() }

// Hand returns the dealer's only hand
func (d *Dealer) Hand() *Hand { return d.hand }

// CanHit reports whether house rules make the dealer draw. The dealer hits
// any total below 17, soft or hard, and stands on every 17.
func (d *Dealer) CanHit() bool {
	return d.hand.Value() < DealerStandsOn
}

// IsBust reports whether the dealer is over 21
func (d *Dealer) IsBust() bool {
	return d.hand.IsBust()
}

// Reset gives the dealer a fresh empty hand
func (d *Dealer) Reset() {
	d.hand = NewHand(0)
}
