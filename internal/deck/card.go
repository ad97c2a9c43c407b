package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit. Suits never affect blackjack rules; they only
// make the four copies of a rank in a deck distinguishable on screen.
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank is the card ordinal, 1 (Ace) through 13 (King).
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Label returns the rank label used for display and split matching.
func (r Rank) Label() string {
	switch {
	case r == Ace:
		return "A"
	case r >= Two && r <= Ten:
		return fmt.Sprintf("%d", int(r))
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	default:
		return "?"
	}
}

// Value returns the base blackjack value. Aces count 11 here; a Hand decides
// when one is recounted as 1.
func (r Rank) Value() int {
	switch {
	case r == Ace:
		return 11
	case r >= Two && r <= Ten:
		return int(r)
	case r >= Jack && r <= King:
		return 10
	default:
		return 0
	}
}

// Card represents a playing card
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// Value returns the blackjack value of the card (2-11)
func (c Card) Value() int {
	return c.Rank.Value()
}

// Label returns the rank label ("2".."10", "J", "Q", "K", "A")
func (c Card) Label() string {
	return c.Rank.Label()
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// String returns the string representation of a card (e.g., "A♠", "10♥")
func (c Card) String() string {
	return c.Rank.Label() + c.Suit.String()
}

// ParseCard parses a card like "As", "10h" or "Kd".
func ParseCard(s string) (Card, error) {
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card string: %q", s)
	}

	label, suitChar := strings.ToUpper(s[:len(s)-1]), s[len(s)-1]

	var suit Suit
	switch suitChar {
	case 's', 'S':
		suit = Spades
	case 'h', 'H':
		suit = Hearts
	case 'd', 'D':
		suit = Diamonds
	case 'c', 'C':
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("invalid suit: %c", suitChar)
	}

	for rank := Ace; rank <= King; rank++ {
		if rank.Label() == label {
			return NewCard(rank, suit), nil
		}
	}
	return Card{}, fmt.Errorf("invalid rank: %s", label)
}

// ParseCards parses whitespace separated cards, e.g. "As 10h Kd".
func ParseCards(s string) ([]Card, error) {
	fields := strings.Fields(s)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		card, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error. Intended for tests.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}
