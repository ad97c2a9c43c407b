// Package console plays blackjack at a terminal. A Console is the agent for
// every seat, the session controller and an event observer at once, so one
// person can play any number of hands.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

const clearScreen = "\033[H\033[2J"

var (
	_ game.Agent      = (*Console)(nil)
	_ game.Controller = (*Console)(nil)
	_ game.Observer   = (*Console)(nil)
)

// Console handles human interaction over a reader and writer
type Console struct {
	in     io.Reader
	out    io.Writer
	styles *Styles
	logger *log.Logger
	plain  bool

	startOnce sync.Once
	lines     chan string

	dealer []string
}

// Option configures a Console
type Option func(*Console)

// WithPlain disables colour and screen clearing
func WithPlain() Option {
	return func(c *Console) { c.plain = true }
}

// WithLogger sets the logger. The console logs under the "console" prefix.
func WithLogger(logger *log.Logger) Option {
	return func(c *Console) { c.logger = logger }
}

// New creates a console reading answers from in and writing to out
func New(in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{in: in, out: out}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	c.logger = c.logger.WithPrefix("console")
	c.styles = NewStyles(NewRenderer(out, c.plain))
	return c
}

// Welcome prints the title banner
func (c *Console) Welcome() {
	c.clear()
	c.println(c.styles.Header.Render("♠ ♥ BLACKJACK ♦ ♣"))
	c.println(c.styles.Info.Render("Dealer stands on 17. Blackjack pays 3:2. Enter q at any prompt to quit."))
	c.println("")
}

// PlayerCount asks how many seats to deal in
func (c *Console) PlayerCount(ctx context.Context, maxPlayers int) (int, error) {
	for {
		line, err := c.ask(ctx, fmt.Sprintf("How many players (1-%d)? ", maxPlayers))
		if err != nil {
			return 0, err
		}
		if isQuit(line) {
			return 0, game.ErrSessionQuit
		}

		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > maxPlayers {
			c.println(c.styles.Error.Render(fmt.Sprintf("Please enter a number between 1 and %d.", maxPlayers)))
			continue
		}
		return n, nil
	}
}

// Bet asks the named player for a whole-number wager
func (c *Console) Bet(ctx context.Context, s game.BetState) (float64, error) {
	for {
		prompt := fmt.Sprintf("%s, you have %s. Your bet: ",
			c.styles.Player.Render(s.Player), c.money(s.Money))
		line, err := c.ask(ctx, prompt)
		if err != nil {
			return 0, err
		}

		if isQuit(line) {
			quit, err := c.confirmQuit(ctx)
			if err != nil {
				return 0, err
			}
			if quit {
				return 0, game.ErrSessionQuit
			}
			continue
		}

		bet, err := strconv.Atoi(line)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a whole number", game.ErrInvalidBet, line)
		}
		return float64(bet), nil
	}
}

// Act shows the hand in play and asks what to do with it
func (c *Console) Act(ctx context.Context, s game.TurnState) (game.Action, error) {
	c.showTurn(s)

	for {
		line, err := c.ask(ctx, c.actionPrompt(s))
		if err != nil {
			return game.Stand, err
		}

		switch strings.ToLower(line) {
		case "h", "hit":
			return game.Hit, nil
		case "s", "stand":
			return game.Stand, nil
		case "d", "double":
			return game.Double, nil
		case "sp", "split":
			return game.Split, nil
		case "q", "quit":
			quit, err := c.confirmQuit(ctx)
			if err != nil {
				return game.Stand, err
			}
			if quit {
				return game.Quit, nil
			}
		default:
			return game.Stand, fmt.Errorf("%w: %q", game.ErrInvalidAction, line)
		}
	}
}

// Continue asks whether to deal another round
func (c *Console) Continue(ctx context.Context, _ *game.RoundResult) (bool, error) {
	for {
		line, err := c.ask(ctx, "Play another round? (y/n) ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no", "q", "quit":
			return false, nil
		}
	}
}

// OnEvent renders game events as they happen
func (c *Console) OnEvent(e game.Event) {
	switch ev := e.(type) {
	case game.RoundStartEvent:
		c.dealer = nil
		c.clear()
		c.println(c.styles.Header.Render(fmt.Sprintf("Round %d", ev.Round)))
		for _, b := range ev.Balances {
			c.println(fmt.Sprintf("  %s %s", c.styles.Player.Render(b.Player), c.money(b.Money)))
		}
		c.println("")

	case game.CardDealtEvent:
		if ev.Participant != "Dealer" {
			return
		}
		if ev.Hidden {
			c.dealer = append(c.dealer, c.styles.Hidden.Render("??"))
		} else {
			c.dealer = append(c.dealer, c.card(ev.Card))
		}

	case game.PhaseChangeEvent:
		if ev.Phase == game.PhaseBlackjackCheck {
			c.println(fmt.Sprintf("Dealer: %s", strings.Join(c.dealer, " ")))
		}

	case game.BlackjackEvent:
		c.println(c.styles.Success.Render(fmt.Sprintf("%s has blackjack!", ev.Player)))

	case game.DealerBlackjackEvent:
		c.println(c.styles.Warning.Render(fmt.Sprintf("Dealer has blackjack: %s", c.cards(ev.Cards))))

	case game.BustEvent:
		c.println(c.styles.Error.Render(fmt.Sprintf("%s busts with %d.", ev.Participant, ev.Value)))

	case game.DealerRevealEvent:
		c.println(fmt.Sprintf("Dealer reveals %s (%d)", c.cards(ev.Cards), ev.Value))

	case game.RejectedEvent:
		c.println(c.styles.Error.Render(ev.Err.Error()))

	case game.RoundEndEvent:
		c.showResult(ev.Result)
	}
}

func (c *Console) showTurn(s game.TurnState) {
	h := s.Hand()
	label := s.Player
	if len(s.Hands) > 1 {
		label = fmt.Sprintf("%s (hand %d of %d)", s.Player, s.HandIndex+1, len(s.Hands))
	}

	c.println("")
	c.println(fmt.Sprintf("Dealer shows %s %s", c.card(s.DealerUpcard), c.styles.Hidden.Render("??")))
	c.println(fmt.Sprintf("%s: %s (%s)  bet %s",
		c.styles.Player.Render(label), c.cards(h.Cards), total(h.Value, h.Soft), c.money(h.Bet)))
}

func (c *Console) actionPrompt(s game.TurnState) string {
	opts := []string{"[h]it", "[s]tand"}
	if s.CanDouble {
		opts = append(opts, "[d]ouble")
	}
	if s.CanSplit {
		opts = append(opts, "[sp]lit")
	}
	opts = append(opts, "[q]uit")
	return strings.Join(opts, ", ") + ": "
}

func (c *Console) showResult(r *game.RoundResult) {
	c.println("")
	c.println(c.styles.SubHeader.Render("Results"))

	dealer := fmt.Sprintf("Dealer: %s (%d)", c.cards(r.DealerCards), r.DealerValue)
	if r.DealerBust {
		dealer += " bust"
	}
	c.println(dealer)

	for _, h := range r.Hands {
		style := c.styles.Info
		switch h.Outcome {
		case game.Win, game.Blackjack:
			style = c.styles.Success
		case game.Loss, game.Bust:
			style = c.styles.Error
		}
		c.println(fmt.Sprintf("  %s hand %d: %s (%d) %s %s",
			h.Player, h.HandIndex+1, c.cards(h.Cards), h.Value,
			style.Render(h.Outcome.String()), signed(h.Net())))
	}

	c.println(c.styles.Separator.Render(strings.Repeat("─", 40)))
	for _, b := range r.Balances {
		c.println(fmt.Sprintf("  %s %s", c.styles.Player.Render(b.Player), c.money(b.Money)))
	}
	c.println("")
}

func (c *Console) confirmQuit(ctx context.Context) (bool, error) {
	for {
		line, err := c.ask(ctx, c.styles.Warning.Render("Are you sure you want to quit? (y/n) "))
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			c.logger.Info("Player quit")
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}

// ask prints prompt and waits for a line of input. End of input is treated
// as the player quitting.
func (c *Console) ask(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(c.out, c.styles.Prompt.Render(prompt))

	c.startOnce.Do(c.startReader)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			c.println("")
			return "", game.ErrSessionQuit
		}
		c.logger.Debug("Input", "line", line)
		return line, nil
	}
}

func (c *Console) startReader() {
	c.lines = make(chan string)
	go func() {
		defer close(c.lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			c.lines <- strings.TrimSpace(scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			c.logger.Error("Failed to read input", "error", err)
		}
	}()
}

func (c *Console) clear() {
	if !c.plain {
		fmt.Fprint(c.out, clearScreen)
	}
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) card(card deck.Card) string {
	if card.IsRed() {
		return c.styles.CardRed.Render(card.String())
	}
	return c.styles.CardBlack.Render(card.String())
}

func (c *Console) cards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = c.card(card)
	}
	return strings.Join(parts, " ")
}

func (c *Console) money(m float64) string {
	return c.styles.Money.Render(fmt.Sprintf("$%.2f", m))
}

func total(value int, soft bool) string {
	if soft {
		return fmt.Sprintf("soft %d", value)
	}
	return strconv.Itoa(value)
}

func signed(net float64) string {
	return fmt.Sprintf("%+.2f", net)
}

func isQuit(line string) bool {
	l := strings.ToLower(line)
	return l == "q" || l == "quit"
}
