package config

import "strings"

type EngineConfig struct {
	GridSize  int             `yaml:"grid_size"`
	Placement PlacementConfig `yaml:"placement"`
	Hunt      HuntConfig      `yaml:"hunt"`
}

type PlacementConfig struct {
	// uniform | weighted
	Strategy    string `yaml:"strategy"`
	MaxAttempts int    `yaml:"max_attempts"`
	Note        string `yaml:"note"`
}

type HuntConfig struct {
	ParityShots    int    `yaml:"parity_shots"`
	RandomTieBreak bool   `yaml:"random_tie_break"`
	Note           string `yaml:"note"`
}

func DefaultEngine() EngineConfig {
	return EngineConfig{
		GridSize: 10,
		Placement: PlacementConfig{
			Strategy:    "weighted",
			MaxAttempts: 10000,
		},
		Hunt: HuntConfig{
			ParityShots: 7,
		},
	}
}

// strategyNames maps every accepted placement.strategy spelling, aliases
// included, to its canonical name. An empty value means weighted.
var strategyNames = map[string]string{
	"uniform":  "uniform",
	"simple":   "uniform",
	"weighted": "weighted",
	"expert":   "weighted",
	"":         "weighted",
}

// StrategyName resolves a placement.strategy value to "uniform" or "weighted".
func StrategyName(s string) (string, bool) {
	name, ok := strategyNames[strings.ToLower(strings.TrimSpace(s))]
	return name, ok
}
