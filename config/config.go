package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Games accepted by Experiment.Game.
const (
	Connect4    = "connect4"
	Poker       = "hlpoker"
	Minesweeper = "minesweeper"
)

type Config struct {
	LogLevel   string     `yaml:"log_level"`
	Search     Search     `yaml:"search"`
	Experiment Experiment `yaml:"experiment"`
}

// Search holds the knobs shared by every agent kind.
type Search struct {
	Depth         int           `yaml:"depth"`
	TimeBudget    time.Duration `yaml:"time_budget"`
	Simulations   int           `yaml:"simulations"`
	Exploration   float64       `yaml:"exploration"`
	Cutoff        int           `yaml:"cutoff"`
	Samples       int           `yaml:"samples"`
	SampleDepth   int           `yaml:"sample_depth"`
	CacheCapacity uint64        `yaml:"cache_capacity"` // 0 keeps an unbounded table
	Temperature   float64       `yaml:"temperature"`
	Seed          uint64        `yaml:"seed"` // 0 draws a random seed
}

type Experiment struct {
	Name      string   `yaml:"name"`
	Game      string   `yaml:"game"`
	Agents    []string `yaml:"agents"`
	Games     int      `yaml:"games"` // per matchup
	Parallel  int      `yaml:"parallel"`
	MaxMoves  int      `yaml:"max_moves"`
	OutputDir string   `yaml:"output_dir"`
	Board     Board    `yaml:"board"`
}

// Board sizes the minesweeper field.
type Board struct {
	Rows  int `yaml:"rows"`
	Cols  int `yaml:"cols"`
	Mines int `yaml:"mines"`
}

func Default() Config {
	return Config{
		LogLevel: "info",
		Search: Search{
			Depth:       4,
			TimeBudget:  time.Second,
			Simulations: 1000,
			Exploration: 1.4,
			Samples:     50,
			SampleDepth: 5,
			Temperature: 1,
		},
		Experiment: Experiment{
			Name:      "tournament",
			Game:      Connect4,
			Agents:    DefaultAgents(Connect4),
			Games:     10,
			Parallel:  4,
			MaxMoves:  500,
			OutputDir: "results",
			Board:     Board{Rows: 8, Cols: 8, Mines: 10},
		},
	}
}

// DefaultAgents lists the agent kinds that play gameName.
func DefaultAgents(gameName string) []string {
	switch gameName {
	case Poker:
		return []string{"mcts", "rules", "random"}
	case Minesweeper:
		return []string{"sampler", "greedy", "random"}
	default:
		return []string{"minimax", "mcts", "random"}
	}
}

// Load overlays the YAML file at path on Default. Keys missing from the file
// keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

var ErrInvalidConfig = errors.New("invalid config")

// Validate reports every bad value at once.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	s := c.Search
	if s.Depth < 1 {
		bad("search.depth %d must be at least 1", s.Depth)
	}
	if s.TimeBudget < 0 {
		bad("search.time_budget %v is negative", s.TimeBudget)
	}
	if s.Simulations < 1 {
		bad("search.simulations %d must be at least 1", s.Simulations)
	}
	if s.Exploration < 0 {
		bad("search.exploration %v is negative", s.Exploration)
	}
	if s.Cutoff < 0 {
		bad("search.cutoff %d is negative", s.Cutoff)
	}
	if s.Samples < 1 || s.SampleDepth < 0 {
		bad("search.samples %d / sample_depth %d", s.Samples, s.SampleDepth)
	}
	if s.Temperature <= 0 {
		bad("search.temperature %v must be positive", s.Temperature)
	}

	e := c.Experiment
	switch e.Game {
	case Connect4, Poker:
		if len(e.Agents) < 2 {
			bad("experiment.agents needs two or more agents for %s", e.Game)
		}
	case Minesweeper:
		if len(e.Agents) < 1 {
			bad("experiment.agents is empty")
		}
		b := e.Board
		if b.Rows < 1 || b.Cols < 1 || b.Mines < 0 || b.Mines >= b.Rows*b.Cols {
			bad("experiment.board %dx%d with %d mines", b.Rows, b.Cols, b.Mines)
		}
	default:
		bad("unknown experiment.game %q", e.Game)
	}
	if e.Games < 1 {
		bad("experiment.games %d must be at least 1", e.Games)
	}
	if e.Parallel < 1 {
		bad("experiment.parallel %d must be at least 1", e.Parallel)
	}
	if e.MaxMoves < 1 {
		bad("experiment.max_moves %d must be at least 1", e.MaxMoves)
	}
	if e.OutputDir == "" {
		bad("experiment.output_dir is empty")
	}
	return errors.Join(errs...)
}
