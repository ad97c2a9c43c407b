package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/game"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	assert.Zero(t, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Zero(t, stats.StdDev())
	assert.Zero(t, stats.StdError())
	assert.Zero(t, stats.Median())
	assert.Zero(t, stats.Percentile(0.5))
	assert.Zero(t, stats.Rate(game.Win))
	assert.Zero(t, stats.SeatMean(1))
	assert.Error(t, stats.Validate())
}

func TestStatistics_MultipleValues(t *testing.T) {
	stats := &Statistics{}

	results := []HandResult{
		{NetUnits: 1.0, Outcome: game.Win, Seat: 1},
		{NetUnits: -1.0, Outcome: game.Loss, Seat: 2},
		{NetUnits: 1.5, Outcome: game.Blackjack, Seat: 1},
		{NetUnits: 0.0, Outcome: game.Push, Seat: 2},
		{NetUnits: -2.0, Outcome: game.Bust, Seat: 1, Doubled: true},
	}
	for _, r := range results {
		stats.Add(r)
	}

	assert.Equal(t, 5, stats.Hands)
	assert.InDelta(t, (1.0-1.0+1.5+0.0-2.0)/5.0, stats.Mean(), 1e-9)
	assert.Equal(t, 0.0, stats.Median())
	assert.Equal(t, 1, stats.Outcomes[game.Blackjack])
	assert.InDelta(t, 0.2, stats.Rate(game.Win), 1e-9)
	assert.Equal(t, 1, stats.Doubles)
	assert.Equal(t, 3, stats.SeatResults[1].Hands)
	assert.InDelta(t, 0.5/3, stats.SeatMean(1), 1e-9)
	assert.True(t, stats.IsLedgerBalanced())
	require.NoError(t, stats.Validate())
}

func TestStatistics_Percentiles(t *testing.T) {
	stats := &Statistics{}
	for i := 1; i <= 5; i++ {
		stats.Add(HandResult{NetUnits: float64(i), Outcome: game.Win, Seat: 1})
	}

	tests := []struct {
		percentile float64
		expected   float64
	}{
		{0.0, 1.0},
		{0.25, 2.0},
		{0.5, 3.0},
		{0.75, 4.0},
		{1.0, 5.0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.expected, stats.Percentile(tt.percentile), 1e-9, "percentile %.2f", tt.percentile)
	}
}

func TestStatistics_ConfidenceInterval(t *testing.T) {
	stats := &Statistics{}
	for _, v := range []float64{1, -1, 1, 1, -1} {
		stats.Add(HandResult{NetUnits: v, Seat: 1})
	}

	low, high := stats.ConfidenceInterval95()
	assert.InDelta(t, stats.Mean(), (low+high)/2, 1e-9)
	assert.Greater(t, high-low, 0.0)
	assert.InDelta(t, 1.2, stats.Variance(), 1e-9)
}

func TestStatistics_AddRound(t *testing.T) {
	stats := &Statistics{}
	round := &game.RoundResult{
		Hands: []game.HandOutcome{
			{Player: "alice", HandIndex: 0, Bet: 10, Outcome: game.Blackjack, Payout: 25},
			{Player: "bob", HandIndex: 0, Bet: 20, Outcome: game.Win, Payout: 40},
			{Player: "carol", HandIndex: 0, Bet: 10, Outcome: game.Loss},
			{Player: "carol", HandIndex: 1, Bet: 10, Outcome: game.Push, Payout: 10},
			{Player: "dave", HandIndex: 0, Bet: 0, Outcome: game.Win},
		},
		Balances: []game.PlayerBalance{
			{Player: "alice"}, {Player: "bob"}, {Player: "carol"}, {Player: "dave"},
		},
	}
	stats.AddRound(round, 10)

	assert.Equal(t, 4, stats.Hands, "zero bets are skipped")
	assert.InDelta(t, 1.5+2-1+0, stats.SumUnits, 1e-9)
	assert.Equal(t, 1, stats.Doubles)
	assert.Equal(t, 2, stats.Splits)
	assert.Equal(t, 2, stats.SeatResults[3].Hands)
	assert.InDelta(t, 2.0, stats.SeatMean(2), 1e-9)
	require.NoError(t, stats.Validate())
}

func TestStatistics_Merge(t *testing.T) {
	a := &Statistics{}
	b := &Statistics{}
	all := &Statistics{}

	for i, v := range []float64{1, -1, 1.5, 0, -2, 1} {
		r := HandResult{NetUnits: v, Outcome: game.Outcome(i % 5), Seat: i%2 + 1}
		if i < 3 {
			a.Add(r)
		} else {
			b.Add(r)
		}
		all.Add(r)
	}

	merged := &Statistics{}
	merged.Merge(a)
	merged.Merge(b)

	assert.Equal(t, all.Hands, merged.Hands)
	assert.InDelta(t, all.Mean(), merged.Mean(), 1e-9)
	assert.InDelta(t, all.Variance(), merged.Variance(), 1e-9)
	assert.Equal(t, all.Outcomes, merged.Outcomes)
	assert.Equal(t, all.SeatResults[1].Hands, merged.SeatResults[1].Hands)
	assert.True(t, merged.IsLedgerBalanced())
}

func TestStatistics_ValidateCatchesBadData(t *testing.T) {
	stats := &Statistics{}
	stats.Add(HandResult{NetUnits: 1, Outcome: game.Win, Seat: 1})
	require.NoError(t, stats.Validate())

	stats.Values = nil
	assert.ErrorContains(t, stats.Validate(), "values array length")
}
