package game

import (
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/gameid"
	"github.com/lox/blackjack/internal/randutil"
)

// ShoeFactory builds a ready-to-deal shoe holding numDecks decks
type ShoeFactory func(numDecks int) (*deck.Shoe, error)

// Option configures a Game during creation.
type Option func(*gameConfig)

type gameConfig struct {
	id        string
	names     []string
	rng       *rand.Rand
	clock     quartz.Clock
	logger    *log.Logger
	observers []Observer
	shoes     ShoeFactory
}

// WithGameID sets the game's ID instead of generating one.
func WithGameID(id string) Option {
	return func(c *gameConfig) {
		c.id = id
	}
}

// WithPlayerNames names the seats in order. Seats without a name are called
// "player N".
func WithPlayerNames(names ...string) Option {
	return func(c *gameConfig) {
		c.names = names
	}
}

// WithRNG sets the random source used to shuffle shoes.
func WithRNG(rng *rand.Rand) Option {
	return func(c *gameConfig) {
		c.rng = rng
	}
}

// WithClock sets the clock used for event timestamps and round durations.
func WithClock(clock quartz.Clock) Option {
	return func(c *gameConfig) {
		c.clock = clock
	}
}

// WithLogger sets the logger. The engine logs under the "engine" prefix.
func WithLogger(logger *log.Logger) Option {
	return func(c *gameConfig) {
		c.logger = logger
	}
}

// WithObserver registers observers for game events.
func WithObserver(observers ...Observer) Option {
	return func(c *gameConfig) {
		c.observers = append(c.observers, observers...)
	}
}

// WithShoeFactory overrides how shoes are built. The factory must return a
// shoe that is already shuffled (or deliberately stacked).
func WithShoeFactory(f ShoeFactory) Option {
	return func(c *gameConfig) {
		c.shoes = f
	}
}

// ShuffledShoes returns the default factory: fresh decks shuffled with rng.
func ShuffledShoes(rng *rand.Rand) ShoeFactory {
	return func(numDecks int) (*deck.Shoe, error) {
		shoe, err := deck.NewShoe(numDecks, rng)
		if err != nil {
			return nil, err
		}
		shoe.Shuffle()
		return shoe, nil
	}
}

func newGameConfig(opts []Option) *gameConfig {
	cfg := &gameConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.clock == nil {
		cfg.clock = quartz.NewReal()
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.rng == nil {
		cfg.rng = randutil.New(randutil.Seed(0, cfg.clock))
	}
	if cfg.shoes == nil {
		cfg.shoes = ShuffledShoes(cfg.rng)
	}
	if cfg.id == "" {
		cfg.id = gameid.NewGenerator(cfg.clock, nil).Generate()
	}
	return cfg
}
