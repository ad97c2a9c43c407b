package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/deck"
)

// MinDecks is the smallest shoe built when a game is created
const MinDecks = 6

// Game is the round engine. It owns the shoe, the dealer and the players and
// drives one round at a time through betting, dealing, the blackjack check,
// player turns, the dealer turn and settlement.
type Game struct {
	id        string
	players   []*Player
	dealer    *Dealer
	shoe      *deck.Shoe
	agent     Agent
	observers []Observer
	logger    *log.Logger
	clock     quartz.Clock
	shoes     ShoeFactory
	phase     Phase
	round     int
}

// NewGame seats numPlayers players against the dealer. The first shoe holds
// max(numPlayers, MinDecks) decks.
func NewGame(numPlayers int, agent Agent, opts ...Option) (*Game, error) {
	if numPlayers < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPlayerCount, numPlayers)
	}
	if agent == nil {
		return nil, errors.New("agent is required")
	}

	cfg := newGameConfig(opts)

	players := make([]*Player, numPlayers)
	for i := range players {
		name := fmt.Sprintf("player %d", i+1)
		if i < len(cfg.names) && cfg.names[i] != "" {
			name = cfg.names[i]
		}
		players[i] = NewPlayer(name)
	}

	shoe, err := cfg.shoes(max(numPlayers, MinDecks))
	if err != nil {
		return nil, fmt.Errorf("failed to build shoe: %w", err)
	}

	g := &Game{
		id:        cfg.id,
		players:   players,
		dealer:    NewDealer(),
		shoe:      shoe,
		agent:     agent,
		observers: cfg.observers,
		logger:    cfg.logger.WithPrefix("engine").With("game", cfg.id),
		clock:     cfg.clock,
		shoes:     cfg.shoes,
		phase:     PhaseBetting,
	}

	g.logger.Debug("Game created", "players", numPlayers, "decks", max(numPlayers, MinDecks), "cards", shoe.Remaining())
	return g, nil
}

// ID returns the game's identifier
func (g *Game) ID() string { return g.id }

// Players returns the seated players in turn order
func (g *Game) Players() []*Player { return g.players }

// Dealer returns the dealer
func (g *Game) Dealer() *Dealer { return g.dealer }

// Shoe returns the current shoe
func (g *Game) Shoe() *deck.Shoe { return g.shoe }

// Phase returns the engine's current phase
func (g *Game) Phase() Phase { return g.phase }

// Round returns the number of rounds started so far
func (g *Game) Round() int { return g.round }

// Participants returns every player followed by the dealer
func (g *Game) Participants() []Participant {
	ps := make([]Participant, 0, len(g.players)+1)
	for _, p := range g.players {
		ps = append(ps, p)
	}
	return append(ps, g.dealer)
}

// HasActivePlayers reports whether any player still has a live hand
func (g *Game) HasActivePlayers() bool {
	for _, p := range g.players {
		if p.IsActive() {
			return true
		}
	}
	return false
}

// PlayRound runs a complete round from betting to settlement. It returns
// ErrSessionQuit when a player quits, and a wrapped deck.ErrShoeExhausted if
// the shoe runs dry; either leaves the game terminated.
func (g *Game) PlayRound(ctx context.Context) (*RoundResult, error) {
	if g.phase != PhaseBetting {
		return nil, fmt.Errorf("cannot start a round in phase %s", g.phase)
	}

	g.round++
	start := g.clock.Now()
	result := &RoundResult{GameID: g.id, Round: g.round}

	g.logger.Info("Starting round", "round", g.round, "cards", g.shoe.Remaining())
	g.emit(RoundStartEvent{Round: g.round, Balances: g.balances(), At: start})

	if err := g.takeBets(ctx); err != nil {
		return nil, g.abort(err)
	}
	if err := g.deal(); err != nil {
		return nil, g.abort(err)
	}

	if g.checkBlackjack(result) {
		if err := g.playerTurns(ctx); err != nil {
			return nil, g.abort(err)
		}
		if g.HasActivePlayers() {
			if err := g.dealerTurn(); err != nil {
				return nil, g.abort(err)
			}
		}
		g.settle(result)
	}

	g.setPhase(PhaseRoundEnd)

	dealer := g.dealer.Hand()
	result.DealerCards = dealer.Cards()
	result.DealerValue = dealer.Value()
	result.DealerBust = dealer.IsBust()
	result.Balances = g.balances()
	result.Duration = g.clock.Since(start)

	g.logger.Info("Round complete", "round", g.round, "dealer", result.DealerValue, "duration", result.Duration)
	g.emit(RoundEndEvent{Result: result, At: g.clock.Now()})
	return result, nil
}

// Reset clears every hand and builds a new shuffled shoe with one deck per
// player, ready for the next round.
func (g *Game) Reset() error {
	if g.phase == PhaseTerminated {
		return errors.New("game is terminated")
	}

	g.dealer.Reset()
	for _, p := range g.players {
		p.Reset()
	}

	shoe, err := g.shoes(len(g.players))
	if err != nil {
		return fmt.Errorf("failed to build shoe: %w", err)
	}
	g.shoe = shoe
	g.phase = PhaseBetting

	g.logger.Debug("Game reset", "decks", len(g.players), "cards", shoe.Remaining())
	return nil
}

// Terminate ends the game; no further rounds can be played.
func (g *Game) Terminate() {
	g.setPhase(PhaseTerminated)
}

func (g *Game) takeBets(ctx context.Context) error {
	g.setPhase(PhaseBetting)

	for _, p := range g.players {
		for {
			if err := ctx.Err(); err != nil {
				return err
			}

			bet, err := g.agent.Bet(ctx, BetState{Player: p.Name(), Money: p.Money, Round: g.round})
			if err != nil {
				if errors.Is(err, ErrInvalidBet) {
					g.reject(p, err)
					continue
				}
				return err
			}

			if err := p.AddHand(NewHand(bet)); err != nil {
				g.reject(p, err)
				continue
			}

			g.logger.Info("Bet placed", "player", p.Name(), "bet", bet, "money", p.Money)
			break
		}
	}
	return nil
}

func (g *Game) deal() error {
	g.setPhase(PhaseDealing)

	dealer := g.dealer.Hand()
	if err := g.hit(g.dealer, 0, dealer, false); err != nil {
		return err
	}
	if err := g.hit(g.dealer, 0, dealer, true); err != nil {
		return err
	}

	for _, p := range g.players {
		h := p.hands[0]
		for range 2 {
			if err := g.hit(p, 0, h, false); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkBlackjack settles naturals and reports whether the round continues to
// player turns. A dealer natural ends the round for everyone.
func (g *Game) checkBlackjack(result *RoundResult) bool {
	g.setPhase(PhaseBlackjackCheck)

	dealerBlackjack := g.dealer.Hand().Value() == 21
	result.DealerBlackjack = dealerBlackjack

	for _, p := range g.players {
		if !p.IsActive() {
			continue
		}
		h := p.hands[0]
		if h.Value() != 21 {
			continue
		}

		p.gotBlackjack = true
		g.logger.Info("Blackjack", "player", p.Name(), "dealerBlackjack", dealerBlackjack)
		g.emit(BlackjackEvent{Player: p.Name(), At: g.clock.Now()})

		if dealerBlackjack {
			g.record(result, p, 0, Push, p.PushHand(h))
		} else {
			g.record(result, p, 0, Blackjack, p.WinHand(h))
		}
	}

	if dealerBlackjack {
		g.emit(DealerBlackjackEvent{Cards: g.dealer.Hand().Cards(), At: g.clock.Now()})
		for _, p := range g.players {
			if p.gotBlackjack {
				continue
			}
			for i := range p.hands {
				g.record(result, p, i, Loss, 0)
			}
		}
		return false
	}

	return g.HasActivePlayers()
}

func (g *Game) playerTurns(ctx context.Context) error {
	g.setPhase(PhasePlayerTurns)

	for _, p := range g.players {
		if !p.IsActive() {
			continue
		}
		// Split hands are appended to p.hands, so the bound is re-read.
		for i := 0; i < len(p.hands); i++ {
			if err := g.playHand(ctx, p, i); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Game) playHand(ctx context.Context, p *Player, i int) error {
	h := p.hands[i]

	for {
		if h.splitFromAce {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		action, err := g.agent.Act(ctx, g.turnState(p, i))
		if err != nil {
			if errors.Is(err, ErrInvalidAction) {
				g.reject(p, err)
				continue
			}
			return err
		}

		switch action {
		case Hit:
			g.accepted(p, i, action)
			if err := g.hit(p, i, h, false); err != nil {
				return err
			}
			if p.Bust(h) {
				g.busted(p, i, h)
				return nil
			}

		case Stand:
			g.accepted(p, i, action)
			return nil

		case Double:
			if err := p.Double(h); err != nil {
				g.reject(p, err)
				continue
			}
			g.accepted(p, i, action)
			if err := g.hit(p, i, h, false); err != nil {
				return err
			}
			if p.Bust(h) {
				g.busted(p, i, h)
			}
			return nil

		case Split:
			split, err := p.Split(h)
			if err != nil {
				g.reject(p, err)
				continue
			}
			g.accepted(p, i, action)
			if err := g.hit(p, i, h, false); err != nil {
				return err
			}
			if err := g.hit(p, len(p.hands)-1, split, false); err != nil {
				return err
			}

		case Quit:
			return ErrSessionQuit

		default:
			g.reject(p, fmt.Errorf("%w: %v", ErrInvalidAction, action))
		}
	}
}

func (g *Game) dealerTurn() error {
	g.setPhase(PhaseDealerTurn)

	h := g.dealer.Hand()
	g.emit(DealerRevealEvent{Cards: h.Cards(), Value: h.Value(), At: g.clock.Now()})

	for g.dealer.CanHit() {
		if err := g.hit(g.dealer, 0, h, false); err != nil {
			return err
		}
	}

	g.logger.Debug("Dealer stands", "value", h.Value(), "cards", h.String())
	if g.dealer.IsBust() {
		g.busted(g.dealer, 0, h)
	}
	return nil
}

func (g *Game) settle(result *RoundResult) {
	g.setPhase(PhaseSettlement)

	dealerBust := g.dealer.IsBust()
	dealerTotal := g.dealer.Hand().Value()

	for _, p := range g.players {
		if p.gotBlackjack {
			continue
		}
		for i, h := range p.hands {
			total := h.Value()
			switch {
			case h.IsBust():
				g.record(result, p, i, Bust, 0)
			case dealerBust || total > dealerTotal:
				g.record(result, p, i, Win, p.WinHand(h))
			case total == dealerTotal:
				g.record(result, p, i, Push, p.PushHand(h))
			default:
				g.record(result, p, i, Loss, 0)
			}
		}
	}
}

func (g *Game) hit(who Participant, idx int, h *Hand, hidden bool) error {
	card, err := g.shoe.Draw()
	if err != nil {
		return fmt.Errorf("dealing to %s: %w", who.Name(), err)
	}
	h.Add(card)

	ev := CardDealtEvent{Participant: who.Name(), HandIndex: idx, Hidden: hidden, At: g.clock.Now()}
	if !hidden {
		ev.Card = card
	}
	g.emit(ev)
	return nil
}

func (g *Game) turnState(p *Player, i int) TurnState {
	h := p.hands[i]
	hands := make([]HandView, len(p.hands))
	for j, hh := range p.hands {
		hands[j] = viewOf(hh)
	}

	var upcard deck.Card
	if cards := g.dealer.Hand().cards; len(cards) > 0 {
		upcard = cards[0]
	}

	return TurnState{
		Player:       p.Name(),
		Money:        p.Money,
		HandIndex:    i,
		Hands:        hands,
		DealerUpcard: upcard,
		CanDouble:    p.Money >= h.bet,
		CanSplit:     h.CanSplit() && len(p.hands) < MaxHands && p.Money >= h.bet,
	}
}

func (g *Game) record(result *RoundResult, p *Player, i int, outcome Outcome, payout float64) {
	h := p.hands[i]
	o := HandOutcome{
		Player:    p.Name(),
		HandIndex: i,
		Cards:     h.Cards(),
		Value:     h.Value(),
		Bet:       h.bet,
		Outcome:   outcome,
		Payout:    payout,
	}
	result.Hands = append(result.Hands, o)

	g.logger.Info("Hand settled", "player", o.Player, "hand", i+1, "outcome", outcome, "net", o.Net(), "money", p.Money)
	g.emit(HandSettledEvent{Outcome: o, At: g.clock.Now()})
}

func (g *Game) accepted(p *Player, i int, action Action) {
	g.logger.Debug("Action", "player", p.Name(), "hand", i+1, "action", action)
	g.emit(PlayerActionEvent{Player: p.Name(), HandIndex: i, Action: action, At: g.clock.Now()})
}

func (g *Game) busted(who Participant, i int, h *Hand) {
	g.logger.Debug("Bust", "participant", who.Name(), "hand", i+1, "value", h.Value())
	g.emit(BustEvent{Participant: who.Name(), HandIndex: i, Value: h.Value(), At: g.clock.Now()})
}

func (g *Game) reject(p *Player, err error) {
	g.logger.Debug("Rejected", "player", p.Name(), "error", err)
	g.emit(RejectedEvent{Player: p.Name(), Err: err, At: g.clock.Now()})
}

func (g *Game) abort(err error) error {
	if errors.Is(err, ErrSessionQuit) {
		g.logger.Info("Player quit", "round", g.round)
	} else {
		g.logger.Error("Round aborted", "round", g.round, "error", err)
	}
	g.Terminate()
	return err
}

func (g *Game) setPhase(phase Phase) {
	g.phase = phase
	g.emit(PhaseChangeEvent{Phase: phase, At: g.clock.Now()})
}

func (g *Game) balances() []PlayerBalance {
	balances := make([]PlayerBalance, len(g.players))
	for i, p := range g.players {
		balances[i] = PlayerBalance{Player: p.Name(), Money: p.Money}
	}
	return balances
}

func (g *Game) emit(e Event) {
	for _, o := range g.observers {
		o.OnEvent(e)
	}
}
