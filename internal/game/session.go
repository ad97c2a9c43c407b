package game

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"
)

// Summary describes a finished session
type Summary struct {
	GameID   string
	Rounds   int
	Quit     bool
	Balances []PlayerBalance
}

// Session owns a game and keeps dealing rounds until the controller stops it
// or a player quits.
type Session struct {
	game       *Game
	controller Controller
	logger     *log.Logger
}

// NewSession creates a session around an existing game
func NewSession(game *Game, controller Controller, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{
		game:       game,
		controller: controller,
		logger:     logger.WithPrefix("session").With("game", game.ID()),
	}
}

// Game returns the session's game
func (s *Session) Game() *Game { return s.game }

// Run plays rounds until the controller declines another, a player quits, or
// an error occurs. Quitting is a normal end and returns a nil error.
func (s *Session) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{GameID: s.game.ID()}
	defer func() {
		s.game.Terminate()
		summary.Balances = s.game.balances()
	}()

	for {
		result, err := s.game.PlayRound(ctx)
		if err != nil {
			if errors.Is(err, ErrSessionQuit) {
				s.logger.Info("Session quit", "rounds", summary.Rounds)
				summary.Quit = true
				return summary, nil
			}
			return summary, err
		}
		summary.Rounds++

		again, err := s.controller.Continue(ctx, result)
		if err != nil {
			if errors.Is(err, ErrSessionQuit) {
				summary.Quit = true
				return summary, nil
			}
			return summary, err
		}
		if !again {
			s.logger.Info("Session finished", "rounds", summary.Rounds)
			return summary, nil
		}

		if err := s.game.Reset(); err != nil {
			return summary, err
		}
	}
}
