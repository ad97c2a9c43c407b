package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerAddHand(t *testing.T) {
	t.Parallel()

	t.Run("deducts the bet", func(t *testing.T) {
		p := NewPlayer("alice")
		require.NoError(t, p.AddHand(NewHand(100)))
		assert.Equal(t, 900.0, p.Money)
		assert.Len(t, p.Hands(), 1)
		assert.Equal(t, 100.0, p.Wagered())
	})

	t.Run("whole balance", func(t *testing.T) {
		p := NewPlayer("alice")
		require.NoError(t, p.AddHand(NewHand(StartingMoney)))
		assert.Zero(t, p.Money)
	})

	t.Run("zero bet", func(t *testing.T) {
		p := NewPlayer("alice")
		require.NoError(t, p.AddHand(NewHand(0)))
		assert.Equal(t, StartingMoney, p.Money)
	})

	for name, bet := range map[string]float64{"over balance": 1000.01, "negative": -5} {
		t.Run(name, func(t *testing.T) {
			p := NewPlayer("alice")
			err := p.AddHand(NewHand(bet))
			require.ErrorIs(t, err, ErrInvalidBet)
			assert.Equal(t, StartingMoney, p.Money)
			assert.False(t, p.HasHands())
		})
	}
}

func TestPlayerDouble(t *testing.T) {
	t.Parallel()

	p := NewPlayer("alice")
	h := NewHand(100)
	require.NoError(t, p.AddHand(h))
	require.NoError(t, p.Double(h))
	assert.Equal(t, 200.0, h.Bet())
	assert.Equal(t, 800.0, p.Money)

	poor := NewPlayer("bob")
	big := NewHand(600)
	require.NoError(t, poor.AddHand(big))
	require.ErrorIs(t, poor.Double(big), ErrInvalidAction)
	assert.Equal(t, 600.0, big.Bet())
	assert.Equal(t, 400.0, poor.Money)
}

func TestPlayerSplit(t *testing.T) {
	t.Parallel()

	t.Run("pair of eights", func(t *testing.T) {
		p := NewPlayer("alice")
		h := handOf(t, "8d 8c")
		h.bet = 100
		require.NoError(t, p.AddHand(h))

		split, err := p.Split(h)
		require.NoError(t, err)
		assert.Equal(t, 800.0, p.Money)
		require.Len(t, p.Hands(), 2)
		assert.Same(t, split, p.Hands()[1])
		assert.Equal(t, 1, h.Len())
		assert.Equal(t, 1, split.Len())
		assert.Equal(t, 100.0, split.Bet())
		assert.False(t, h.SplitFromAce())
		assert.False(t, split.SplitFromAce())
	})

	t.Run("pair of aces", func(t *testing.T) {
		p := NewPlayer("alice")
		h := handOf(t, "Ad Ac")
		h.bet = 50
		require.NoError(t, p.AddHand(h))

		split, err := p.Split(h)
		require.NoError(t, err)
		assert.True(t, h.SplitFromAce())
		assert.True(t, split.SplitFromAce())
		assert.Equal(t, 1, h.Aces())
		assert.Equal(t, 1, split.Aces())
		assert.Equal(t, 11, h.Value())
	})

	t.Run("not a pair", func(t *testing.T) {
		p := NewPlayer("alice")
		h := handOf(t, "10d Kc")
		require.NoError(t, p.AddHand(h))
		_, err := p.Split(h)
		require.ErrorIs(t, err, ErrInvalidAction)
		assert.Len(t, p.Hands(), 1)
	})

	t.Run("not enough money", func(t *testing.T) {
		p := NewPlayer("alice")
		h := handOf(t, "8d 8c")
		h.bet = 700
		require.NoError(t, p.AddHand(h))
		_, err := p.Split(h)
		require.ErrorIs(t, err, ErrInvalidAction)
		assert.Equal(t, 300.0, p.Money)
		assert.Equal(t, 2, h.Len())
	})

	t.Run("hand cap", func(t *testing.T) {
		p := NewPlayer("alice")
		for range MaxHands - 1 {
			require.NoError(t, p.AddHand(NewHand(10)))
		}
		h := handOf(t, "8d 8c")
		h.bet = 10
		require.NoError(t, p.AddHand(h))
		require.Len(t, p.Hands(), MaxHands)

		_, err := p.Split(h)
		require.ErrorIs(t, err, ErrInvalidAction)
		assert.Len(t, p.Hands(), MaxHands)
	})
}

func TestPlayerPayouts(t *testing.T) {
	t.Parallel()

	t.Run("even money", func(t *testing.T) {
		p := NewPlayer("alice")
		h := NewHand(100)
		require.NoError(t, p.AddHand(h))
		assert.Equal(t, 200.0, p.WinHand(h))
		assert.Equal(t, 1100.0, p.Money)
	})

	t.Run("natural pays three to two", func(t *testing.T) {
		p := NewPlayer("alice")
		h := NewHand(100)
		require.NoError(t, p.AddHand(h))
		p.gotBlackjack = true
		assert.Equal(t, 250.0, p.WinHand(h))
		assert.Equal(t, 1150.0, p.Money)
	})

	t.Run("push returns the stake", func(t *testing.T) {
		p := NewPlayer("alice")
		h := NewHand(100)
		require.NoError(t, p.AddHand(h))
		assert.Equal(t, 100.0, p.PushHand(h))
		assert.Equal(t, StartingMoney, p.Money)
	})
}

func TestPlayerIsActive(t *testing.T) {
	t.Parallel()

	p := NewPlayer("alice")
	assert.False(t, p.IsActive())

	require.NoError(t, p.AddHand(handOf(t, "Ks Qh 5d")))
	assert.False(t, p.IsActive())

	require.NoError(t, p.AddHand(handOf(t, "Ks 5d")))
	assert.True(t, p.IsActive())

	p.gotBlackjack = true
	assert.False(t, p.IsActive())

	p.Reset()
	assert.False(t, p.HasHands())
	assert.False(t, p.GotBlackjack())
}

func TestDealerCanHit(t *testing.T) {
	t.Parallel()
	tests := []struct {
		cards string
		want  bool
	}{
		{"10s 6h", true},
		{"Ah 6c", false},
		{"10s 7h", false},
		{"As 5d", true},
		{"As 5d 10h", true},
		{"10s 6h 2c", false},
	}

	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			d := NewDealer()
			d.hand = handOf(t, tt.cards)
			assert.Equal(t, tt.want, d.CanHit())
			assert.Equal(t, tt.want, d.CanAct())
		})
	}
}
