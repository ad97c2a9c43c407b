package game

import (
	"time"

	"github.com/lox/blackjack/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypeRoundStart      EventType = "round_start"
	EventTypePhaseChange     EventType = "phase_change"
	EventTypeCardDealt       EventType = "card_dealt"
	EventTypeBlackjack       EventType = "blackjack"
	EventTypeDealerBlackjack EventType = "dealer_blackjack"
	EventTypePlayerAction    EventType = "player_action"
	EventTypeBust            EventType = "bust"
	EventTypeDealerReveal    EventType = "dealer_reveal"
	EventTypeHandSettled     EventType = "hand_settled"
	EventTypeRejected        EventType = "rejected"
	EventTypeRoundEnd        EventType = "round_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is anything that happens during a round that a presentation layer
// may want to show. Events are informational; no game state depends on them.
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// Observer receives game events in the order they happen
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface
type ObserverFunc func(Event)

func (f ObserverFunc) OnEvent(e Event) { f(e) }

// PlayerBalance pairs a player with their money at a point in time
type PlayerBalance struct {
	Player string
	Money  float64
}

// RoundStartEvent is published before bets are taken
type RoundStartEvent struct {
	Round    int
	Balances []PlayerBalance
	At       time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.At }

// PhaseChangeEvent is published whenever the engine moves to a new phase
type PhaseChangeEvent struct {
	Phase Phase
	At    time.Time
}

func (e PhaseChangeEvent) EventType() EventType { return EventTypePhaseChange }
func (e PhaseChangeEvent) Timestamp() time.Time { return e.At }

// CardDealtEvent is published for every card leaving the shoe. Card is zero
// when Hidden is set.
type CardDealtEvent struct {
	Participant string
	HandIndex   int
	Card        deck.Card
	Hidden      bool
	At          time.Time
}

func (e CardDealtEvent) EventType() EventType { return EventTypeCardDealt }
func (e CardDealtEvent) Timestamp() time.Time { return e.At }

// BlackjackEvent is published when a player is dealt a natural
type BlackjackEvent struct {
	Player string
	At     time.Time
}

func (e BlackjackEvent) EventType() EventType { return EventTypeBlackjack }
func (e BlackjackEvent) Timestamp() time.Time { return e.At }

// DealerBlackjackEvent is published when the dealer's first two cards make 21
type DealerBlackjackEvent struct {
	Cards []deck.Card
	At    time.Time
}

func (e DealerBlackjackEvent) EventType() EventType { return EventTypeDealerBlackjack }
func (e DealerBlackjackEvent) Timestamp() time.Time { return e.At }

// PlayerActionEvent is published when the engine accepts a player's action
type PlayerActionEvent struct {
	Player    string
	HandIndex int
	Action    Action
	At        time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.At }

// BustEvent is published when a player's hand or the dealer goes over 21
type BustEvent struct {
	Participant string
	HandIndex   int
	Value       int
	At          time.Time
}

func (e BustEvent) EventType() EventType { return EventTypeBust }
func (e BustEvent) Timestamp() time.Time { return e.At }

// DealerRevealEvent is published when the dealer turns over the hole card
type DealerRevealEvent struct {
	Cards []deck.Card
	Value int
	At    time.Time
}

func (e DealerRevealEvent) EventType() EventType { return EventTypeDealerReveal }
func (e DealerRevealEvent) Timestamp() time.Time { return e.At }

// HandSettledEvent is published once per hand when it is paid or taken
type HandSettledEvent struct {
	Outcome HandOutcome
	At      time.Time
}

func (e HandSettledEvent) EventType() EventType { return EventTypeHandSettled }
func (e HandSettledEvent) Timestamp() time.Time { return e.At }

// RejectedEvent is published when a bet or action is refused. The same
// player is asked again.
type RejectedEvent struct {
	Player string
	Err    error
	At     time.Time
}

func (e RejectedEvent) EventType() EventType { return EventTypeRejected }
func (e RejectedEvent) Timestamp() time.Time { return e.At }

// RoundEndEvent is published after settlement
type RoundEndEvent struct {
	Result *RoundResult
	At     time.Time
}

func (e RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }
func (e RoundEndEvent) Timestamp() time.Time { return e.At }
