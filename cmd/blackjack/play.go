package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/console"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
)

// PlayCmd runs an interactive game at the terminal
type PlayCmd struct {
	Players int      `short:"p" help:"Number of players (asked for when omitted)"`
	Names   []string `short:"n" help:"Player names, in seat order"`
	Seed    int64    `help:"RNG seed (0 for random)"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	if c.Players > 0 {
		cfg.Table.Players = c.Players
	}
	if len(c.Names) > 0 {
		cfg.Table.Names = c.Names
	}
	if c.Seed != 0 {
		cfg.Table.Seed = c.Seed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := fileLogger(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := signalContext(logger)
	defer cancel()

	var opts []console.Option
	opts = append(opts, console.WithLogger(logger))
	if g.Plain {
		opts = append(opts, console.WithPlain())
	}
	con := console.New(os.Stdin, os.Stdout, opts...)
	con.Welcome()

	players := cfg.Table.Players
	if players == 0 {
		players, err = con.PlayerCount(ctx, config.MaxPlayers)
		if errors.Is(err, game.ErrSessionQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}

	seed := randutil.Seed(cfg.Table.Seed, quartz.NewReal())
	logger.Info("Starting game", "players", players, "seed", seed)

	table, err := game.NewGame(players, con,
		game.WithPlayerNames(cfg.Table.Names...),
		game.WithRNG(randutil.New(seed)),
		game.WithLogger(logger),
		game.WithObserver(con),
	)
	if err != nil {
		return err
	}

	summary, err := game.NewSession(table, con, logger).Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	printSummary(summary)
	return nil
}

func printSummary(s *game.Summary) {
	fmt.Println()
	fmt.Println(titleStyle.Render(fmt.Sprintf(" Thanks for playing: %d round(s) ", s.Rounds)))
	for _, b := range s.Balances {
		net := b.Money - game.StartingMoney
		fmt.Printf("  %-12s $%.2f (%+.2f)\n", b.Player, b.Money, net)
	}
}
