package game

// Action represents a decision for a single hand
type Action int

const (
	Hit Action = iota
	Stand
	Double
	Split
	Quit
)

func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case Double:
		return "double"
	case Split:
		return "split"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

// Phase is the round engine's position in the round lifecycle
type Phase int

const (
	PhaseBetting Phase = iota
	PhaseDealing
	PhaseBlackjackCheck
	PhasePlayerTurns
	PhaseDealerTurn
	PhaseSettlement
	PhaseRoundEnd
	PhaseTerminated
)

func (p Phase) String() string {
	return [...]string{
		"betting", "dealing", "blackjack check", "player turns",
		"dealer turn", "settlement", "round end", "terminated",
	}[p]
}

// Outcome is how a single hand was settled
type Outcome int

const (
	Loss Outcome = iota
	Win
	Push
	Blackjack
	Bust
)

func (o Outcome) String() string {
	return [...]string{"loss", "win", "push", "blackjack", "bust"}[o]
}
