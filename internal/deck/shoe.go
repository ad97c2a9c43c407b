package deck

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// CardsPerDeck is the size of one standard deck.
const CardsPerDeck = 52

var (
	// ErrInvalidDeckCount is returned when a shoe is requested with fewer than one deck.
	ErrInvalidDeckCount = errors.New("shoe needs at least one deck")
	// ErrShoeExhausted is returned when drawing from an empty shoe.
	ErrShoeExhausted = errors.New("shoe exhausted")
)

// Shoe is the pooled source of cards for a round, built from one or more decks.
type Shoe struct {
	cards []Card
	rng   *rand.Rand
}

// NewShoe creates an unshuffled shoe holding numDecks full decks.
func NewShoe(numDecks int, rng *rand.Rand) (*Shoe, error) {
	if numDecks < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDeckCount, numDecks)
	}

	s := &Shoe{
		cards: make([]Card, 0, numDecks*CardsPerDeck),
		rng:   rng,
	}
	for range numDecks {
		for suit := Spades; suit <= Clubs; suit++ {
			for rank := Ace; rank <= King; rank++ {
				s.cards = append(s.cards, NewCard(rank, suit))
			}
		}
	}
	return s, nil
}

// NewStackedShoe creates a shoe that deals the given cards in order. It is
// never shuffled implicitly, which makes it useful for replays and tests.
func NewStackedShoe(cards ...Card) *Shoe {
	s := &Shoe{cards: make([]Card, len(cards))}
	copy(s.cards, cards)
	return s
}

// Shuffle shuffles the shoe using Fisher-Yates
func (s *Shoe) Shuffle() {
	for i := len(s.cards) - 1; i > 0; i-- {
		var j int
		if s.rng != nil {
			j = s.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Draw removes and returns the top card of the shoe
func (s *Shoe) Draw() (Card, error) {
	if len(s.cards) == 0 {
		return Card{}, ErrShoeExhausted
	}

	card := s.cards[0]
	s.cards = s.cards[1:]
	return card, nil
}

// Remaining returns the number of cards left in the shoe
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// Counts returns how many cards of each label remain, for inspection.
func (s *Shoe) Counts() map[string]int {
	counts := make(map[string]int, 13)
	for _, c := range s.cards {
		counts[c.Label()]++
	}
	return counts
}
