package game

import (
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

// Hand is an ordered set of cards tied to one wager
type Hand struct {
	cards        []deck.Card
	bet          float64
	aces         int
	splitFromAce bool
}

// NewHand creates an empty hand carrying bet
func NewHand(bet float64) *Hand {
	return &Hand{bet: bet}
}

// Add appends a card to the hand
func (h *Hand) Add(card deck.Card) {
	h.cards = append(h.cards, card)
	if card.IsAce() {
		h.aces++
	}
}

// removeLast takes the last card out of the hand, keeping the ace count in step.
func (h *Hand) removeLast() deck.Card {
	card := h.cards[len(h.cards)-1]
	h.cards = h.cards[:len(h.cards)-1]
	if card.IsAce() {
		h.aces--
	}
	return card
}

// Cards returns a copy of the cards in the hand
func (h *Hand) Cards() []deck.Card {
	cards := make([]deck.Card, len(h.cards))
	copy(cards, h.cards)
	return cards
}

// Len returns the number of cards held
func (h *Hand) Len() int {
	return len(h.cards)
}

// Bet returns the wager on this hand
func (h *Hand) Bet() float64 {
	return h.bet
}

// Aces returns the number of aces held
func (h *Hand) Aces() int {
	return h.aces
}

// SplitFromAce reports whether the hand came from splitting a pair of aces.
// Such hands take exactly one card after the split and nothing more.
func (h *Hand) SplitFromAce() bool {
	return h.splitFromAce
}

// Value returns the best total for the hand. Aces count 11 until that would
// bust the hand, at which point they are recounted as 1 one at a time.
func (h *Hand) Value() int {
	total, _ := h.evaluate()
	return total
}

// IsSoft reports whether an ace is still being counted as 11.
func (h *Hand) IsSoft() bool {
	_, soft := h.evaluate()
	return soft
}

func (h *Hand) evaluate() (int, bool) {
	total := 0
	for _, c := range h.cards {
		total += c.Value()
	}

	hard := h.aces
	for hard > 0 && total > 21 {
		total -= 10
		hard--
	}
	return total, hard > 0
}

// IsBust reports whether the hand is over 21
func (h *Hand) IsBust() bool {
	return h.Value() > 21
}

// CanSplit reports whether the hand is exactly two cards with the same label.
// A ten and a king both count 10 but do not split.
func (h *Hand) CanSplit() bool {
	return len(h.cards) == 2 && h.cards[0].Label() == h.cards[1].Label()
}

// String returns the labels of the hand's cards, e.g. "A, 10"
func (h *Hand) String() string {
	labels := make([]string, len(h.cards))
	for i, c := range h.cards {
		labels[i] = c.Label()
	}
	return strings.Join(labels, ", ")
}
