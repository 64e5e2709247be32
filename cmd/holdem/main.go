package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/config"
)

// version is set by ldflags during build
var version = "dev"

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Config   string           `short:"c" help:"Path to HCL configuration file" default:"holdem.hcl" type:"path"`
	LogLevel string           `help:"Override log_level from the configuration (debug, info, warn, error)"`

	Play     PlayCmd     `cmd:"" help:"Play one interactive hand against bots"`
	Simulate SimulateCmd `cmd:"" help:"Play many bot-vs-bot hands and report statistics"`
	Eval     EvalCmd     `cmd:"" help:"Evaluate hands and pick the winner"`
	History  HistoryCmd  `cmd:"" help:"Render a PHH hand history file"`
}

// Globals is shared by every command
type Globals struct {
	Config *config.Config
	Logger *log.Logger
	Stdout io.Writer
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem"),
		kong.Description("No-Limit Texas Hold'em hand engine"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	globals, err := cli.globals(os.Stdout, os.Stderr)
	ctx.FatalIfErrorf(err)

	err = ctx.Run(globals)
	ctx.FatalIfErrorf(err)
}

// globals loads the configuration and builds the logger
func (cli *CLI) globals(stdout, stderr io.Writer) (*Globals, error) {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return nil, err
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", cli.Config, err)
	}

	logger, err := newLogger(stderr, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return &Globals{Config: cfg, Logger: logger, Stdout: stdout}, nil
}
