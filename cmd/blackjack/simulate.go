package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lox/blackjack/internal/fileutil"
	"github.com/lox/blackjack/internal/simulator"
)

// SimulateCmd runs bot sessions and reports aggregate statistics
type SimulateCmd struct {
	Sessions int           `short:"s" help:"Number of independent sessions"`
	Rounds   int           `short:"r" help:"Rounds per session"`
	Players  int           `short:"p" help:"Players per table"`
	Workers  int           `short:"w" help:"Sessions run in parallel"`
	Bet      float64       `short:"b" help:"Flat bet per hand"`
	Strategy string        `help:"Bot strategy: basic, dealer, rand"`
	Seed     int64         `help:"RNG seed (0 for random)"`
	Timeout  time.Duration `help:"Give up after this long"`
	Output   string        `short:"o" help:"Also write a JSON report to this file" type:"path"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}

	sim := cfg.Simulation
	if c.Sessions > 0 {
		sim.Sessions = c.Sessions
	}
	if c.Rounds > 0 {
		sim.Rounds = c.Rounds
	}
	if c.Players > 0 {
		sim.Players = c.Players
	}
	if c.Workers > 0 {
		sim.Workers = c.Workers
	}
	if c.Bet > 0 {
		sim.Bet = c.Bet
	}
	if c.Strategy != "" {
		sim.Strategy = c.Strategy
	}
	if c.Timeout > 0 {
		sim.Timeout = c.Timeout.String()
	}
	seed := c.Seed
	if seed == 0 {
		seed = cfg.Table.Seed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	timeout, err := sim.TimeoutDuration()
	if err != nil {
		return err
	}

	logger, err := newLogger(os.Stderr, cfg.Log.Level)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	res, err := simulator.New(simulator.Config{
		Sessions: sim.Sessions,
		Rounds:   sim.Rounds,
		Players:  sim.Players,
		Workers:  sim.Workers,
		Bet:      sim.Bet,
		Strategy: sim.Strategy,
		Seed:     seed,
		Timeout:  timeout,
		Logger:   logger,
	}).Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf(" %s strategy, %d player(s), $%.2f flat bet ", sim.Strategy, sim.Players, sim.Bet)))
	fmt.Println()
	simulator.PrintSummary(os.Stdout, res)
	fmt.Printf("\nElapsed: %s\n", res.Elapsed.Round(time.Millisecond))

	if c.Output != "" {
		if err := fileutil.WriteJSON(c.Output, res.Report()); err != nil {
			return err
		}
		logger.Info("Wrote report", "path", c.Output)
	}
	return nil
}
