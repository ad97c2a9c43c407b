package main

import (
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

// version is set by ldflags during build
var version = "dev"

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#1B5E20")).
	Padding(0, 1).
	Bold(true)

// Globals are flags shared by every command
type Globals struct {
	Config   string `short:"c" help:"HCL config file" default:"blackjack.hcl" type:"path"`
	LogLevel string `help:"Log level (debug, info, warn, error)"`
	LogFile  string `help:"Log file for interactive play"`
	Plain    bool   `help:"Disable colour and screen clearing"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Play blackjack at the terminal"`
	Simulate SimulateCmd      `cmd:"" help:"Run bot sessions and report statistics"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Multi-player blackjack against the dealer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
