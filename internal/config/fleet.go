package config

import "salvo/internal/board"

type FleetConfig struct {
	Ships []ShipDef `yaml:"ships"`
}

type ShipDef struct {
	Name   string `yaml:"name"`
	Length int    `yaml:"length"`
	Note   string `yaml:"note"`
}

func DefaultFleet() FleetConfig {
	return FleetConfig{Ships: []ShipDef{
		{Name: "Carrier", Length: 5},
		{Name: "Battleship", Length: 4},
		{Name: "Cruiser", Length: 3},
		{Name: "Submarine", Length: 3},
		{Name: "Destroyer", Length: 2},
	}}
}

func (fc *FleetConfig) Defs() []board.TargetDef {
	out := make([]board.TargetDef, len(fc.Ships))
	for i, s := range fc.Ships {
		out[i] = board.TargetDef{Name: s.Name, Length: s.Length}
	}
	return out
}
