package game

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/deck"
)

var errScriptExhausted = errors.New("script exhausted")

type betReply struct {
	bet float64
	err error
}

type actReply struct {
	action Action
	err    error
}

// scriptedAgent replays canned bets and actions and records what it was shown.
type scriptedAgent struct {
	bets       []betReply
	actions    []actReply
	betStates  []BetState
	turnStates []TurnState
}

func (a *scriptedAgent) Bet(_ context.Context, s BetState) (float64, error) {
	a.betStates = append(a.betStates, s)
	if len(a.bets) == 0 {
		return 0, errScriptExhausted
	}
	r := a.bets[0]
	a.bets = a.bets[1:]
	return r.bet, r.err
}

func (a *scriptedAgent) Act(_ context.Context, s TurnState) (Action, error) {
	a.turnStates = append(a.turnStates, s)
	if len(a.actions) == 0 {
		return Stand, errScriptExhausted
	}
	r := a.actions[0]
	a.actions = a.actions[1:]
	return r.action, r.err
}

func newScript(bets []float64, actions ...Action) *scriptedAgent {
	a := &scriptedAgent{}
	for _, b := range bets {
		a.bets = append(a.bets, betReply{bet: b})
	}
	for _, act := range actions {
		a.actions = append(a.actions, actReply{action: act})
	}
	return a
}

// eventRecorder collects every event it observes.
type eventRecorder struct {
	events []Event
}

func (r *eventRecorder) OnEvent(e Event) { r.events = append(r.events, e) }

func (r *eventRecorder) ofType(t EventType) []Event {
	var out []Event
	for _, e := range r.events {
		if e.EventType() == t {
			out = append(out, e)
		}
	}
	return out
}

// stackedShoes deals cards in order for the first shoe and records every deck
// count requested.
type stackedShoes struct {
	cards    string
	requests []int
}

func (s *stackedShoes) factory(numDecks int) (*deck.Shoe, error) {
	s.requests = append(s.requests, numDecks)
	if len(s.requests) == 1 {
		return deck.NewStackedShoe(deck.MustParseCards(s.cards)...), nil
	}
	return deck.NewShoe(numDecks, nil)
}

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// newStackedGame builds a game whose first shoe deals cards in order. Cards go
// dealer, dealer (hidden), then two per player, then to hits in turn order.
func newStackedGame(t *testing.T, players int, cards string, agent Agent, opts ...Option) (*Game, *eventRecorder) {
	t.Helper()
	rec := &eventRecorder{}
	shoes := &stackedShoes{cards: cards}
	base := []Option{
		WithShoeFactory(shoes.factory),
		WithClock(quartz.NewMock(t)),
		WithLogger(testLogger()),
		WithObserver(rec),
	}
	g, err := NewGame(players, agent, append(base, opts...)...)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g, rec
}

func handOf(t *testing.T, cards string) *Hand {
	t.Helper()
	h := NewHand(0)
	for _, c := range deck.MustParseCards(cards) {
		h.Add(c)
	}
	return h
}

// thresholdAgent bets a fixed amount and hits below a target total.
type thresholdAgent struct {
	bet       float64
	standOn   int
	quitRound int
}

func (a *thresholdAgent) Bet(_ context.Context, s BetState) (float64, error) {
	if a.quitRound > 0 && s.Round == a.quitRound {
		return 0, ErrSessionQuit
	}
	return min(a.bet, s.Money), nil
}

func (a *thresholdAgent) Act(_ context.Context, s TurnState) (Action, error) {
	if s.Hand().Value >= a.standOn {
		return Stand, nil
	}
	return Hit, nil
}

// roundLimit keeps a session going for a fixed number of rounds.
type roundLimit struct {
	rounds  int
	err     error
	results []*RoundResult
}

func (c *roundLimit) Continue(_ context.Context, r *RoundResult) (bool, error) {
	c.results = append(c.results, r)
	if c.err != nil {
		return false, c.err
	}
	return len(c.results) < c.rounds, nil
}
