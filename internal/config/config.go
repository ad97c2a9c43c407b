package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjack/internal/bot"
)

// DefaultFile is the config file looked up when none is given
const DefaultFile = "blackjack.hcl"

// MaxPlayers is the largest table the CLI will seat
const MaxPlayers = 7

// Config represents the complete blackjack configuration
type Config struct {
	Table      *TableConfig      `hcl:"table,block"`
	Log        *LogConfig        `hcl:"log,block"`
	Simulation *SimulationConfig `hcl:"simulation,block"`
}

// TableConfig describes the seats at the table. Zero players means ask at
// the terminal.
type TableConfig struct {
	Players int      `hcl:"players,optional"`
	Names   []string `hcl:"names,optional"`
	Seed    int64    `hcl:"seed,optional"`
}

// LogConfig controls where and how much is logged
type LogConfig struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// SimulationConfig holds defaults for the simulate command
type SimulationConfig struct {
	Sessions int     `hcl:"sessions,optional"`
	Rounds   int     `hcl:"rounds,optional"`
	Players  int     `hcl:"players,optional"`
	Workers  int     `hcl:"workers,optional"`
	Bet      float64 `hcl:"bet,optional"`
	Strategy string  `hcl:"strategy,optional"`
	Timeout  string  `hcl:"timeout,optional"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Table: &TableConfig{},
		Log: &LogConfig{
			Level: "info",
			File:  "blackjack.log",
		},
		Simulation: &SimulationConfig{
			Sessions: 100,
			Rounds:   100,
			Players:  1,
			Workers:  4,
			Bet:      10,
			Strategy: bot.StrategyBasic,
			Timeout:  "5m",
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields Default().
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()

	if c.Table == nil {
		c.Table = def.Table
	}
	if c.Table.Players == 0 {
		c.Table.Players = len(c.Table.Names)
	}

	if c.Log == nil {
		c.Log = def.Log
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.File == "" {
		c.Log.File = def.Log.File
	}

	if c.Simulation == nil {
		c.Simulation = def.Simulation
	}
	s := c.Simulation
	if s.Sessions == 0 {
		s.Sessions = def.Simulation.Sessions
	}
	if s.Rounds == 0 {
		s.Rounds = def.Simulation.Rounds
	}
	if s.Players == 0 {
		s.Players = def.Simulation.Players
	}
	if s.Workers == 0 {
		s.Workers = def.Simulation.Workers
	}
	if s.Bet == 0 {
		s.Bet = def.Simulation.Bet
	}
	if s.Strategy == "" {
		s.Strategy = def.Simulation.Strategy
	}
	if s.Timeout == "" {
		s.Timeout = def.Simulation.Timeout
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Table.Players < 0 || c.Table.Players > MaxPlayers {
		return fmt.Errorf("table: players must be between 1 and %d, got %d", MaxPlayers, c.Table.Players)
	}
	if c.Table.Players > 0 && len(c.Table.Names) > c.Table.Players {
		return fmt.Errorf("table: %d names given for %d players", len(c.Table.Names), c.Table.Players)
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: invalid level %q", c.Log.Level)
	}

	s := c.Simulation
	if s.Sessions < 1 {
		return fmt.Errorf("simulation: sessions must be positive")
	}
	if s.Rounds < 1 {
		return fmt.Errorf("simulation: rounds must be positive")
	}
	if s.Players < 1 || s.Players > MaxPlayers {
		return fmt.Errorf("simulation: players must be between 1 and %d, got %d", MaxPlayers, s.Players)
	}
	if s.Workers < 1 {
		return fmt.Errorf("simulation: workers must be positive")
	}
	if s.Bet <= 0 {
		return fmt.Errorf("simulation: bet must be positive")
	}
	if !bot.IsStrategy(s.Strategy) {
		return fmt.Errorf("simulation: unknown strategy %q (want one of %v)", s.Strategy, bot.Strategies)
	}
	if _, err := s.TimeoutDuration(); err != nil {
		return fmt.Errorf("simulation: %w", err)
	}

	return nil
}

// TimeoutDuration parses the simulation timeout
func (s *SimulationConfig) TimeoutDuration() (time.Duration, error) {
	d, err := time.ParseDuration(s.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", s.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive, got %s", d)
	}
	return d, nil
}
