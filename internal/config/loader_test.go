package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadAllDefaultsWhenMissing(t *testing.T) {
	fc, ec, err := LoadAll(t.TempDir())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if ec.GridSize != 10 || ec.Hunt.ParityShots != 7 || ec.Placement.Strategy != "weighted" {
		t.Fatalf("unexpected engine defaults: %+v", ec)
	}
	if len(fc.Ships) != 5 || fc.Ships[0].Length != 5 || fc.Ships[4].Length != 2 {
		t.Fatalf("unexpected fleet defaults: %+v", fc.Ships)
	}
}

func TestLoadAllOverlay(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "engine.yaml", "grid_size: 8\nplacement:\n  strategy: uniform\nhunt:\n  random_tie_break: true\n")
	writeFile(t, dir, "fleet.yaml", "ships:\n  - name: Frigate\n    length: 3\n  - name: Sloop\n    length: 2\n")

	fc, ec, err := LoadAll(dir)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if ec.GridSize != 8 || ec.Placement.Strategy != "uniform" || !ec.Hunt.RandomTieBreak {
		t.Fatalf("overlay not applied: %+v", ec)
	}
	if ec.Placement.MaxAttempts != 10000 || ec.Hunt.ParityShots != 7 {
		t.Fatalf("defaults lost under overlay: %+v", ec)
	}
	defs := fc.Defs()
	if len(defs) != 2 || defs[0].Name != "Frigate" || defs[1].Length != 2 {
		t.Fatalf("fleet overlay wrong: %+v", defs)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*FleetConfig, *EngineConfig)
	}{
		{"tiny grid", func(_ *FleetConfig, ec *EngineConfig) { ec.GridSize = 1 }},
		{"bad strategy", func(_ *FleetConfig, ec *EngineConfig) { ec.Placement.Strategy = "spiral" }},
		{"no attempts", func(_ *FleetConfig, ec *EngineConfig) { ec.Placement.MaxAttempts = 0 }},
		{"negative parity", func(_ *FleetConfig, ec *EngineConfig) { ec.Hunt.ParityShots = -1 }},
		{"empty fleet", func(fc *FleetConfig, _ *EngineConfig) { fc.Ships = nil }},
		{"short ship", func(fc *FleetConfig, _ *EngineConfig) { fc.Ships[0].Length = 1 }},
		{"ship longer than grid", func(fc *FleetConfig, _ *EngineConfig) { fc.Ships[0].Length = 11 }},
		{"too dense", func(fc *FleetConfig, ec *EngineConfig) { ec.GridSize = 5 }},
		{"duplicate ship name", func(fc *FleetConfig, _ *EngineConfig) { fc.Ships[3].Name = "Cruiser" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fc, ec := DefaultFleet(), DefaultEngine()
			tc.mutate(&fc, &ec)
			if err := Validate(&fc, &ec); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadAllBadYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "engine.yaml", "grid_size: [oops\n")
	if _, _, err := LoadAll(dir); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestValidateAcceptsStrategyAliases(t *testing.T) {
	cases := map[string]string{
		"uniform":    "uniform",
		"simple":     "uniform",
		" Weighted ": "weighted",
		"expert":     "weighted",
		"":           "weighted",
	}
	for in, want := range cases {
		fc, ec := DefaultFleet(), DefaultEngine()
		ec.Placement.Strategy = in
		if err := Validate(&fc, &ec); err != nil {
			t.Fatalf("Validate(strategy %q): %v", in, err)
		}
		if got, ok := StrategyName(in); !ok || got != want {
			t.Fatalf("StrategyName(%q) = %q, %v; want %q", in, got, ok, want)
		}
	}
}
