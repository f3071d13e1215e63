package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// loadOptional overlays path onto out; a missing file keeps the defaults.
func loadOptional(path string, out any) error {
	err := loadYAML(path, out)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	return nil
}

// LoadAll reads fleet.yaml and engine.yaml from dir over the defaults and
// validates the result.
func LoadAll(dir string) (*FleetConfig, *EngineConfig, error) {
	fc := DefaultFleet()
	ec := DefaultEngine()
	if dir != "" {
		if err := loadOptional(filepath.Join(dir, "fleet.yaml"), &fc); err != nil {
			return nil, nil, err
		}
		if err := loadOptional(filepath.Join(dir, "engine.yaml"), &ec); err != nil {
			return nil, nil, err
		}
	}
	if err := Validate(&fc, &ec); err != nil {
		return nil, nil, err
	}
	return &fc, &ec, nil
}

func Validate(fc *FleetConfig, ec *EngineConfig) error {
	if ec.GridSize < 2 {
		return fmt.Errorf("%w: grid_size %d", ErrInvalidConfig, ec.GridSize)
	}
	if _, ok := StrategyName(ec.Placement.Strategy); !ok {
		return fmt.Errorf("%w: placement strategy %q", ErrInvalidConfig, ec.Placement.Strategy)
	}
	if ec.Placement.MaxAttempts <= 0 {
		return fmt.Errorf("%w: max_attempts %d", ErrInvalidConfig, ec.Placement.MaxAttempts)
	}
	if ec.Hunt.ParityShots < 0 {
		return fmt.Errorf("%w: parity_shots %d", ErrInvalidConfig, ec.Hunt.ParityShots)
	}
	if len(fc.Ships) == 0 {
		return fmt.Errorf("%w: fleet has no ships", ErrInvalidConfig)
	}
	total := 0
	names := make(map[string]bool, len(fc.Ships))
	for _, s := range fc.Ships {
		if names[s.Name] {
			return fmt.Errorf("%w: duplicate ship name %q", ErrInvalidConfig, s.Name)
		}
		names[s.Name] = true
		if s.Length < 2 || s.Length > ec.GridSize {
			return fmt.Errorf("%w: ship %q length %d outside [2,%d]", ErrInvalidConfig, s.Name, s.Length, ec.GridSize)
		}
		total += s.Length
	}
	if cells := ec.GridSize * ec.GridSize; total*2 > cells {
		return fmt.Errorf("%w: fleet covers %d of %d cells, limit is half the grid", ErrInvalidConfig, total, cells)
	}
	return nil
}
