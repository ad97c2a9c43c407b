package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Sessions int
	Rounds   int // Rounds per session
	Players  int
	Workers  int
	Bet      float64
	Strategy string
	Seed     int64 // 0 picks a seed from the clock
	Timeout  time.Duration
	Clock    quartz.Clock
	Logger   *log.Logger
}

// Result is the aggregate of every simulated session
type Result struct {
	Stats    *statistics.Statistics
	Strategy string
	Players  int
	Bet      float64
	Seed     int64
	Sessions int
	Rounds   int
	Broke    int // Sessions that ended early because every player ran out of money
	Elapsed  time.Duration
}

// Simulator runs many independent bot-driven sessions
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.Strategy == "" {
		config.Strategy = bot.StrategyBasic
	}
	return &Simulator{config: config, logger: config.Logger.WithPrefix("simulator")}
}

func (s *Simulator) validate() error {
	c := s.config
	switch {
	case c.Sessions < 1:
		return fmt.Errorf("sessions must be positive, got %d", c.Sessions)
	case c.Rounds < 1:
		return fmt.Errorf("rounds must be positive, got %d", c.Rounds)
	case c.Players < 1:
		return fmt.Errorf("%w: got %d", game.ErrInvalidPlayerCount, c.Players)
	case c.Bet <= 0:
		return fmt.Errorf("bet must be positive, got %v", c.Bet)
	case !bot.IsStrategy(c.Strategy):
		return fmt.Errorf("unknown strategy %q", c.Strategy)
	}
	return nil
}

// Run executes every session, at most Workers at a time, and merges their
// statistics. Sessions are seeded from the base seed and their index, so a
// run is reproducible regardless of worker count.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	seed := randutil.Seed(s.config.Seed, s.config.Clock)
	start := s.config.Clock.Now()
	result := &Result{
		Stats:    &statistics.Statistics{},
		Strategy: s.config.Strategy,
		Players:  s.config.Players,
		Bet:      s.config.Bet,
		Seed:     seed,
		Sessions: s.config.Sessions,
	}

	s.logger.Info("Starting simulation",
		"sessions", s.config.Sessions,
		"rounds", s.config.Rounds,
		"players", s.config.Players,
		"strategy", s.config.Strategy,
		"workers", s.config.Workers,
		"seed", seed)

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := range s.config.Sessions {
		g.Go(func() error {
			out, err := s.runSession(ctx, seed, i)
			if err != nil {
				return fmt.Errorf("session %d: %w", i+1, err)
			}

			mu.Lock()
			defer mu.Unlock()
			result.Stats.Merge(out.stats)
			result.Rounds += out.rounds
			if out.broke {
				result.Broke++
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("simulation timed out after %v: %w", s.config.Timeout, err)
		}
		return nil, err
	}

	if err := result.Stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	result.Elapsed = s.config.Clock.Since(start)
	s.logger.Info("Simulation complete", "hands", result.Stats.Hands, "rounds", result.Rounds, "mean", result.Stats.Mean(), "elapsed", result.Elapsed)
	return result, nil
}

type sessionResult struct {
	stats  *statistics.Statistics
	rounds int
	broke  bool
}

func (s *Simulator) runSession(ctx context.Context, seed int64, index int) (*sessionResult, error) {
	rng := randutil.New(randutil.Derive(seed, index))

	agent, err := bot.New(s.config.Strategy, s.config.Bet, rng, s.config.Logger)
	if err != nil {
		return nil, err
	}

	g, err := game.NewGame(s.config.Players, agent,
		game.WithRNG(rng),
		game.WithClock(s.config.Clock),
		game.WithLogger(s.config.Logger),
	)
	if err != nil {
		return nil, err
	}

	rec := &recorder{limit: s.config.Rounds, unit: s.config.Bet, stats: &statistics.Statistics{}}
	summary, err := game.NewSession(g, rec, s.config.Logger).Run(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Session complete", "session", index+1, "rounds", summary.Rounds, "broke", rec.broke)
	return &sessionResult{stats: rec.stats, rounds: summary.Rounds, broke: rec.broke}, nil
}

// recorder is the session controller for simulations. It feeds every round
// into the statistics and stops after limit rounds or when nobody can bet.
type recorder struct {
	limit int
	unit  float64
	stats *statistics.Statistics
	seen  int
	broke bool
}

func (r *recorder) Continue(ctx context.Context, result *game.RoundResult) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.stats.AddRound(result, r.unit)
	r.seen++

	solvent := false
	for _, b := range result.Balances {
		if b.Money > 0 {
			solvent = true
			break
		}
	}
	if !solvent {
		r.broke = true
		return false, nil
	}
	return r.seen < r.limit, nil
}

// Report is the JSON form of a Result
type Report struct {
	Strategy  string             `json:"strategy"`
	Players   int                `json:"players"`
	Bet       float64            `json:"bet"`
	Seed      int64              `json:"seed"`
	Sessions  int                `json:"sessions"`
	Broke     int                `json:"broke"`
	Rounds    int                `json:"rounds"`
	Hands     int                `json:"hands"`
	Mean      float64            `json:"mean"`
	Median    float64            `json:"median"`
	StdDev    float64            `json:"std_dev"`
	StdError  float64            `json:"std_error"`
	CI95      [2]float64         `json:"ci95"`
	Outcomes  map[string]int     `json:"outcomes"`
	Units     map[string]float64 `json:"units"`
	Doubles   int                `json:"doubles"`
	Splits    int                `json:"splits"`
	ElapsedMS int64              `json:"elapsed_ms"`
}

// Report summarises the result for machine consumption
func (r *Result) Report() Report {
	stats := r.Stats
	low, high := stats.ConfidenceInterval95()

	outcomes := make(map[string]int, len(stats.Outcomes))
	for o, n := range stats.Outcomes {
		outcomes[o.String()] = n
	}
	units := make(map[string]float64, len(stats.OutcomeUnits))
	for o, u := range stats.OutcomeUnits {
		units[o.String()] = u
	}

	return Report{
		Strategy:  r.Strategy,
		Players:   r.Players,
		Bet:       r.Bet,
		Seed:      r.Seed,
		Sessions:  r.Sessions,
		Broke:     r.Broke,
		Rounds:    r.Rounds,
		Hands:     stats.Hands,
		Mean:      stats.Mean(),
		Median:    stats.Median(),
		StdDev:    stats.StdDev(),
		StdError:  stats.StdError(),
		CI95:      [2]float64{low, high},
		Outcomes:  outcomes,
		Units:     units,
		Doubles:   stats.Doubles,
		Splits:    stats.Splits,
		ElapsedMS: r.Elapsed.Milliseconds(),
	}
}

// PrintSummary writes a plain-text summary of simulation results
func PrintSummary(w io.Writer, res *Result) {
	stats := res.Stats
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "Sessions: %d (%d broke)  Rounds: %d  Hands: %d  Seed: %d\n",
		res.Sessions, res.Broke, res.Rounds, stats.Hands, res.Seed)

	fmt.Fprintf(w, "\nMean: %+.4f units/hand\n", stats.Mean())
	fmt.Fprintf(w, "Median: %+.4f units/hand\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.4f units\n", stats.StdDev())
	fmt.Fprintf(w, "Std Error: %.4f units\n", stats.StdError())
	fmt.Fprintf(w, "95%% CI: [%+.4f, %+.4f] units/hand\n", low, high)

	fmt.Fprintf(w, "\nOutcomes:\n")
	for _, o := range []game.Outcome{game.Win, game.Blackjack, game.Push, game.Loss, game.Bust} {
		fmt.Fprintf(w, "  %-9s %7d  %5.1f%%  %+10.2f units\n",
			o, stats.Outcomes[o], stats.Rate(o)*100, stats.OutcomeUnits[o])
	}
	fmt.Fprintf(w, "Doubled: %d  Split: %d\n", stats.Doubles, stats.Splits)

	fmt.Fprintf(w, "\nSeats:\n")
	for seat := 1; seat <= len(stats.SeatResults); seat++ {
		if ss, ok := stats.SeatResults[seat]; ok {
			fmt.Fprintf(w, "  Seat %d: %d hands, %+.4f units/hand\n", seat, ss.Hands, stats.SeatMean(seat))
		}
	}
}
