// Package config loads the HCL configuration used by the holdem command.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/holdem-engine/internal/game"
)

// Config is the complete configuration file
type Config struct {
	LogLevel   string            `hcl:"log_level,optional"`
	HistoryDir string            `hcl:"history_dir,optional"`
	Table      *TableConfig      `hcl:"table,block"`
	Players    []PlayerConfig    `hcl:"player,block"`
	Simulation *SimulationConfig `hcl:"simulation,block"`
}

// TableConfig holds the hand parameters
type TableConfig struct {
	BigBlind int   `hcl:"big_blind,optional"`
	Seed     int64 `hcl:"seed,optional"` // 0 picks a random seed
}

// PlayerConfig defines one seat. Seats are filled in file order, so the
// first player posts the small blind.
type PlayerConfig struct {
	Name  string `hcl:"name,label"`
	ID    int    `hcl:"id,optional"`
	Stack int    `hcl:"stack,optional"`
	Human bool   `hcl:"human,optional"`
}

// SimulationConfig controls `holdem simulate`
type SimulationConfig struct {
	Hands    int    `hcl:"hands,optional"`
	Workers  int    `hcl:"workers,optional"`
	Strategy string `hcl:"strategy,optional"`
}

const (
	DefaultBigBlind = 20
	DefaultStack    = 1000
	DefaultHands    = 1000
	DefaultWorkers  = 4
	DefaultStrategy = "caller"
)

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{
		Players: []PlayerConfig{
			{Name: "You", Human: true},
			{Name: "Alice"},
			{Name: "Bob"},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from an HCL file. A missing file yields Default().
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return LoadBytes(data, filename)
}

// LoadBytes parses HCL source. filename is only used in diagnostics.
func LoadBytes(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if len(cfg.Players) == 0 {
		cfg.Players = Default().Players
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Table == nil {
		c.Table = &TableConfig{}
	}
	if c.Table.BigBlind == 0 {
		c.Table.BigBlind = DefaultBigBlind
	}

	for i := range c.Players {
		if c.Players[i].ID == 0 {
			c.Players[i].ID = i + 1
		}
		if c.Players[i].Stack == 0 {
			c.Players[i].Stack = DefaultStack
		}
	}

	if c.Simulation == nil {
		c.Simulation = &SimulationConfig{}
	}
	if c.Simulation.Hands == 0 {
		c.Simulation.Hands = DefaultHands
	}
	if c.Simulation.Workers == 0 {
		c.Simulation.Workers = DefaultWorkers
	}
	if c.Simulation.Strategy == "" {
		c.Simulation.Strategy = DefaultStrategy
	}
}

// Validate applies the same rules the engine enforces, so a bad file fails
// before any hand is dealt.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}

	bb := c.Table.BigBlind
	if bb <= 0 || bb%2 != 0 {
		return fmt.Errorf("table: big_blind must be a positive even number, got %d", bb)
	}

	if len(c.Players) < 2 {
		return fmt.Errorf("at least 2 players required, got %d", len(c.Players))
	}
	if len(c.Players) > game.MaxPlayers {
		return fmt.Errorf("at most %d players allowed, got %d", game.MaxPlayers, len(c.Players))
	}

	ids := make(map[int]string, len(c.Players))
	humans := 0
	for _, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("player with id %d has no name", p.ID)
		}
		if other, dup := ids[p.ID]; dup {
			return fmt.Errorf("players %q and %q share id %d", other, p.Name, p.ID)
		}
		ids[p.ID] = p.Name
		if p.Stack <= 0 {
			return fmt.Errorf("player %q: stack must be positive, got %d", p.Name, p.Stack)
		}
		if p.Human {
			humans++
		}
	}
	if humans > 1 {
		return fmt.Errorf("at most one human player allowed, got %d", humans)
	}

	if c.Simulation.Hands < 1 {
		return fmt.Errorf("simulation: hands must be positive, got %d", c.Simulation.Hands)
	}
	if c.Simulation.Workers < 1 {
		return fmt.Errorf("simulation: workers must be positive, got %d", c.Simulation.Workers)
	}
	return nil
}

// NewPlayers creates engine players for every configured seat
func (c *Config) NewPlayers() []*game.Player {
	players := make([]*game.Player, len(c.Players))
	for i, p := range c.Players {
		players[i] = game.NewPlayer(p.ID, p.Name, p.Stack)
	}
	return players
}

// HumanID returns the ID of the human seat, if there is one
func (c *Config) HumanID() (int, bool) {
	for _, p := range c.Players {
		if p.Human {
			return p.ID, true
		}
	}
	return 0, false
}
