// Package config loads experiment settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"liarspoker/agent"
	"liarspoker/game"

	"gopkg.in/yaml.v3"
)

type GameSettings struct {
	HandLength int `yaml:"hand_length"`
	NumDigits  int `yaml:"num_digits"`
	NumPlayers int `yaml:"num_players"`
}

type ExperimentSettings struct {
	Name      string `yaml:"name"`
	Rounds    int    `yaml:"rounds"`
	Matches   int    `yaml:"matches"`
	Workers   int    `yaml:"workers"`
	Seed      uint64 `yaml:"seed"` // 0 = random
	OutputDir string `yaml:"output_dir"`
	DryRun    bool   `yaml:"dry_run"` // skip CSV output
}

type Player struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type Config struct {
	Game       GameSettings       `yaml:"game"`
	Experiment ExperimentSettings `yaml:"experiment"`
	Players    []Player           `yaml:"players"`
}

// Default is a 3x3 three-player game between the two baseline variants and a random player.
func Default() *Config {
	return &Config{
		Game: GameSettings{HandLength: 3, NumDigits: 3, NumPlayers: 3},
		Experiment: ExperimentSettings{
			Name:      "baseline",
			Rounds:    1000,
			Matches:   1,
			Workers:   1,
			OutputDir: "play_output",
		},
		Players: []Player{
			{Name: "greedy", Type: agent.Baseline},
			{Name: "expected", Type: agent.BaselineEV},
			{Name: "random", Type: agent.Random},
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Params() (game.Params, error) {
	return game.NewParams(c.Game.HandLength, c.Game.NumDigits, c.Game.NumPlayers)
}

func (c *Config) Validate() error {
	if _, err := c.Params(); err != nil {
		return err
	}
	if len(c.Players) != c.Game.NumPlayers {
		return fmt.Errorf("got %d players for num_players %d", len(c.Players), c.Game.NumPlayers)
	}
	seen := make(map[string]bool, len(c.Players))
	for _, p := range c.Players {
		if p.Name == "" {
			return errors.New("player name must not be empty")
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate player name %q", p.Name)
		}
		seen[p.Name] = true
		switch p.Type {
		case agent.Baseline, agent.BaselineEV, agent.Random, agent.MCTS:
		default:
			return fmt.Errorf("player %q has unknown type %q", p.Name, p.Type)
		}
	}
	if c.Experiment.Rounds < 1 {
		return errors.New("experiment rounds must be > 0")
	}
	if c.Experiment.Matches < 1 {
		return errors.New("experiment matches must be > 0")
	}
	if c.Experiment.Workers < 0 {
		return errors.New("experiment workers must be >= 0")
	}
	if c.Experiment.Name == "" {
		return errors.New("experiment name must not be empty")
	}
	return nil
}
