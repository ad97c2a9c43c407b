package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/blackjack/internal/game"
)

// HandResult represents the outcome of a single blackjack hand
type HandResult struct {
	NetUnits float64 // Net result in bet units (a 3:2 natural is +1.5)
	Outcome  game.Outcome
	Seat     int  // 1-based seat at the table
	Doubled  bool // Bet was doubled
	Split    bool // Hand came from a split
}

// SeatStats tracks statistics for a single seat
type SeatStats struct {
	Hands     int
	SumUnits  float64
	SumUnits2 float64
}

// Statistics tracks blackjack simulation results in bet units per hand
type Statistics struct {
	Hands     int
	SumUnits  float64
	SumUnits2 float64   // Sum of squares for variance calculation
	Values    []float64 // Store all values for median/percentile calculation

	Outcomes     map[game.Outcome]int     // Hands per outcome
	OutcomeUnits map[game.Outcome]float64 // Units won or lost per outcome
	AllUnits     float64                  // Total units for sanity check

	Doubles int
	Splits  int

	SeatResults map[int]*SeatStats
}

// Mean returns the arithmetic mean of all results in bet units per hand
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumUnits / float64(s.Hands)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumUnits2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a new hand result into the statistics
func (s *Statistics) Add(result HandResult) {
	s.init()

	net := result.NetUnits
	s.Hands++
	s.SumUnits += net
	s.SumUnits2 += net * net
	s.Values = append(s.Values, net)

	s.Outcomes[result.Outcome]++
	s.OutcomeUnits[result.Outcome] += net
	s.AllUnits += net

	if result.Doubled {
		s.Doubles++
	}
	if result.Split {
		s.Splits++
	}

	seat, ok := s.SeatResults[result.Seat]
	if !ok {
		seat = &SeatStats{}
		s.SeatResults[result.Seat] = seat
	}
	seat.Hands++
	seat.SumUnits += net
	seat.SumUnits2 += net * net
}

// AddRound adds every hand in a round. unit is the table's base bet, used to
// convert money into bet units and to spot doubled hands.
func (s *Statistics) AddRound(r *game.RoundResult, unit float64) {
	seats := make(map[string]int, len(r.Balances))
	for i, b := range r.Balances {
		seats[b.Player] = i + 1
	}

	// A split hand is any hand after the first for that player.
	handsPerPlayer := make(map[string]int)
	for _, h := range r.Hands {
		handsPerPlayer[h.Player]++
	}

	for _, h := range r.Hands {
		if h.Bet == 0 {
			continue
		}
		s.Add(HandResult{
			NetUnits: h.Net() / unit,
			Outcome:  h.Outcome,
			Seat:     seats[h.Player],
			Doubled:  h.Bet > unit,
			Split:    handsPerPlayer[h.Player] > 1,
		})
	}
}

// Merge folds other into s
func (s *Statistics) Merge(other *Statistics) {
	s.init()

	s.Hands += other.Hands
	s.SumUnits += other.SumUnits
	s.SumUnits2 += other.SumUnits2
	s.Values = append(s.Values, other.Values...)
	s.AllUnits += other.AllUnits
	s.Doubles += other.Doubles
	s.Splits += other.Splits

	for o, n := range other.Outcomes {
		s.Outcomes[o] += n
	}
	for o, u := range other.OutcomeUnits {
		s.OutcomeUnits[o] += u
	}
	for seat, os := range other.SeatResults {
		ss, ok := s.SeatResults[seat]
		if !ok {
			ss = &SeatStats{}
			s.SeatResults[seat] = ss
		}
		ss.Hands += os.Hands
		ss.SumUnits += os.SumUnits
		ss.SumUnits2 += os.SumUnits2
	}
}

func (s *Statistics) init() {
	if s.Outcomes == nil {
		s.Outcomes = make(map[game.Outcome]int)
	}
	if s.OutcomeUnits == nil {
		s.OutcomeUnits = make(map[game.Outcome]float64)
	}
	if s.SeatResults == nil {
		s.SeatResults = make(map[int]*SeatStats)
	}
}

// Rate returns the share of hands that ended with outcome
func (s *Statistics) Rate(outcome game.Outcome) float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Outcomes[outcome]) / float64(s.Hands)
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// SeatMean returns the mean result for a seat
func (s *Statistics) SeatMean(seat int) float64 {
	ss, ok := s.SeatResults[seat]
	if !ok || ss.Hands == 0 {
		return 0
	}
	return ss.SumUnits / float64(ss.Hands)
}

// IsLedgerBalanced checks if the accounting is consistent
func (s *Statistics) IsLedgerBalanced() bool {
	byOutcome := 0.0
	for _, u := range s.OutcomeUnits {
		byOutcome += u
	}
	return math.Abs(s.AllUnits-byOutcome) <= 1e-6
}

// Validate performs comprehensive validation of statistics data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: AllUnits=%.6f does not match per-outcome totals", s.AllUnits)
	}

	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}

	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)",
			len(s.Values), s.Hands)
	}

	counted := 0
	for o, n := range s.Outcomes {
		counted += n
		if n > 0 && o == game.Push && math.Abs(s.OutcomeUnits[o]) > 1e-6 {
			return fmt.Errorf("pushes moved %.6f units", s.OutcomeUnits[o])
		}
	}
	if counted != s.Hands {
		return fmt.Errorf("outcome total (%d) does not match total hands (%d)", counted, s.Hands)
	}

	seatHands := 0
	for _, ss := range s.SeatResults {
		seatHands += ss.Hands
	}
	if seatHands != s.Hands {
		return fmt.Errorf("seat hands total (%d) does not match total hands (%d)", seatHands, s.Hands)
	}

	return nil
}
