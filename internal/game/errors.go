package game

import "errors"

var (
	// ErrInvalidBet is returned for negative bets and bets above the balance.
	// The engine reports it and asks the same player again.
	ErrInvalidBet = errors.New("invalid bet")

	// ErrInvalidAction is returned for unknown actions and for doubles or
	// splits whose preconditions are not met. State is left untouched.
	ErrInvalidAction = errors.New("invalid action")

	// ErrSessionQuit signals that a user asked to leave the table. It is a
	// control signal rather than a fault: Session.Run returns nil for it.
	ErrSessionQuit = errors.New("session quit")

	// ErrInvalidPlayerCount is returned when a game is created without players.
	ErrInvalidPlayerCount = errors.New("at least one player required")
)
