package game

import (
	"context"
	"errors"
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/randutil"
)

func newTestSession(t *testing.T, agent Agent, controller Controller, players int) *Session {
	t.Helper()
	g, err := NewGame(players, agent,
		WithRNG(randutil.New(42)),
		WithClock(quartz.NewMock(t)),
		WithLogger(testLogger()),
	)
	require.NoError(t, err)
	return NewSession(g, controller, testLogger())
}

func TestSessionRun(t *testing.T) {
	t.Parallel()

	t.Run("stops when the controller declines", func(t *testing.T) {
		limit := &roundLimit{rounds: 3}
		s := newTestSession(t, &thresholdAgent{bet: 25, standOn: 17}, limit, 2)

		summary, err := s.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 3, summary.Rounds)
		assert.Equal(t, s.Game().ID(), summary.GameID)
		assert.False(t, summary.Quit)
		require.Len(t, summary.Balances, 2)
		assert.Equal(t, limit.results[2].Balances, summary.Balances)
		assert.Equal(t, PhaseTerminated, s.Game().Phase())

		for i, r := range limit.results {
			assert.Equal(t, i+1, r.Round)
		}
	})

	t.Run("quitting is a clean exit", func(t *testing.T) {
		limit := &roundLimit{rounds: 10}
		s := newTestSession(t, &thresholdAgent{bet: 25, standOn: 17, quitRound: 2}, limit, 1)

		summary, err := s.Run(context.Background())
		require.NoError(t, err)

		assert.True(t, summary.Quit)
		assert.Equal(t, 1, summary.Rounds)
		assert.Len(t, limit.results, 1)
	})

	t.Run("controller can quit", func(t *testing.T) {
		limit := &roundLimit{rounds: 10, err: ErrSessionQuit}
		s := newTestSession(t, &thresholdAgent{bet: 25, standOn: 17}, limit, 1)

		summary, err := s.Run(context.Background())
		require.NoError(t, err)
		assert.True(t, summary.Quit)
		assert.Equal(t, 1, summary.Rounds)
	})

	t.Run("controller errors propagate", func(t *testing.T) {
		boom := errors.New("boom")
		s := newTestSession(t, &thresholdAgent{bet: 25, standOn: 17}, &roundLimit{rounds: 10, err: boom}, 1)

		_, err := s.Run(context.Background())
		require.ErrorIs(t, err, boom)
		assert.Equal(t, PhaseTerminated, s.Game().Phase())
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		s := newTestSession(t, &thresholdAgent{bet: 25, standOn: 17}, &roundLimit{rounds: 10}, 1)
		summary, err := s.Run(ctx)
		require.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, summary.Rounds)
		assert.Equal(t, StartingMoney, summary.Balances[0].Money)
	})
}
