package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
)

func TestHandValue(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		cards string
		value int
		soft  bool
		bust  bool
	}{
		{"two aces and a nine", "As Ah 9c", 21, true, false},
		{"four aces", "As Ah Ad Ac", 14, true, false},
		{"ten and king", "10s Kh", 20, false, false},
		{"natural", "As Kd", 21, true, false},
		{"soft seventeen", "Ah 6c", 17, true, false},
		{"ace recounted as one", "Ah 6c 10d", 17, false, false},
		{"pair of aces", "As Ad", 12, true, false},
		{"bust", "Ks Qh 5d", 25, false, true},
		{"bust with ace softened", "As 9h 5d 10c", 25, false, true},
		{"empty", "", 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handOf(t, tt.cards)
			assert.Equal(t, tt.value, h.Value())
			assert.Equal(t, tt.soft, h.IsSoft())
			assert.Equal(t, tt.bust, h.IsBust())
		})
	}
}

func TestHandValueNeverBustsWithSoftAce(t *testing.T) {
	t.Parallel()
	rng := randutil.New(2024)
	shoe, err := deck.NewShoe(6, rng)
	if err != nil {
		t.Fatal(err)
	}
	shoe.Shuffle()

	for range 500 {
		h := NewHand(0)
		n := 2 + rng.IntN(5)
		for range n {
			c, err := shoe.Draw()
			if err != nil {
				shoe, _ = deck.NewShoe(6, rng)
				shoe.Shuffle()
				c, _ = shoe.Draw()
			}
			h.Add(c)
		}

		raw := 0
		for _, c := range h.Cards() {
			raw += c.Value()
		}
		if h.Value() > 21 {
			// Every ace must already count as one.
			assert.Equal(t, raw-10*h.Aces(), h.Value(), "hand %s", h)
			assert.False(t, h.IsSoft())
		}
		if h.IsSoft() {
			assert.LessOrEqual(t, h.Value(), 21, "hand %s", h)
		}
	}
}

func TestHandCanSplit(t *testing.T) {
	t.Parallel()
	tests := []struct {
		cards string
		want  bool
	}{
		{"8s 8h", true},
		{"Ks Kd", true},
		{"As Ac", true},
		{"10s Kh", false},
		{"Js Qh", false},
		{"8s 8h 8d", false},
		{"8s", false},
	}

	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			assert.Equal(t, tt.want, handOf(t, tt.cards).CanSplit())
		})
	}
}

func TestHandAceCountAndString(t *testing.T) {
	t.Parallel()
	h := handOf(t, "As 10h Ad")
	assert.Equal(t, 2, h.Aces())
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, "A, 10, A", h.String())

	h.removeLast()
	assert.Equal(t, 1, h.Aces())
	assert.Equal(t, "A, 10", h.String())
}
