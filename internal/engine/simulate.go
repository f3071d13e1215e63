package engine

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"salvo/internal/board"
	"salvo/internal/config"
)

type Env struct {
	Rng *rand.Rand
	Log *logrus.Logger
}

type SimConfig struct {
	GridSize    int
	Placement   Strategy
	MaxAttempts int
	Hunt        HuntConfig
}

func SimConfigFrom(ec *config.EngineConfig) (SimConfig, error) {
	s, err := ParseStrategy(ec.Placement.Strategy)
	if err != nil {
		return SimConfig{}, err
	}
	return SimConfig{
		GridSize:    ec.GridSize,
		Placement:   s,
		MaxAttempts: ec.Placement.MaxAttempts,
		Hunt: HuntConfig{
			ParityShots:    ec.Hunt.ParityShots,
			RandomTieBreak: ec.Hunt.RandomTieBreak,
		},
	}, nil
}

type SimResult struct {
	GameID       string         `json:"game_id"`
	Win          bool           `json:"win"`
	Shots        int            `json:"shots"`
	Hits         int            `json:"hits"`
	Misses       int            `json:"misses"`
	ShotsByMode  map[string]int `json:"shots_by_mode"`
	EliminatedAt map[string]int `json:"eliminated_at"`
	Placement    string         `json:"placement"`
	Events       []Event        `json:"events,omitempty"`
	Meta         SimMeta        `json:"meta"`
}

type SimMeta struct {
	GridSize    int             `json:"grid_size"`
	Strategy    string          `json:"strategy"`
	ParityShots int             `json:"parity_shots"`
	Targets     []SimTargetMeta `json:"targets"`
}

type SimTargetMeta struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	Length      int           `json:"length"`
	Orientation string        `json:"orientation"`
	Cells       []board.Coord `json:"cells"`
}

// RunSingle plays one self-play game: place a fleet, then let a Hunter shoot
// at it until every target is eliminated. A cell fired twice aborts the game
// with ErrRepeatedShot.
func RunSingle(env *Env, defs []board.TargetDef, cfg SimConfig, record bool) (SimResult, error) {
	var events []Event
	emit := func(ev Event) {
		if record {
			events = append(events, ev)
		}
	}
	logLine := func(shot int, format string, args ...any) {
		if !record {
			return
		}
		emit(Event{Shot: shot, Type: EventLogLine, Payload: map[string]any{"text": fmt.Sprintf(format, args...)}})
	}
	log := env.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	res := SimResult{
		GameID:       uuid.New().String(),
		ShotsByMode:  map[string]int{},
		EliminatedAt: map[string]int{},
		Meta: SimMeta{
			GridSize:    cfg.GridSize,
			Strategy:    cfg.Placement.String(),
			ParityShots: cfg.Hunt.ParityShots,
		},
	}
	gameLog := log.WithField("game", res.GameID)

	// ---- Placement ----
	defender, err := board.NewFleet(defs)
	if err != nil {
		return res, err
	}
	placer := NewPlacer(cfg.Placement, cfg.MaxAttempts)
	placer.Log = log
	truth, err := placer.Place(env.Rng, defender, cfg.GridSize)
	if err != nil {
		return res, fmt.Errorf("place fleet: %w", err)
	}
	res.Placement = truth.String()
	for _, t := range defender.Targets {
		res.Meta.Targets = append(res.Meta.Targets, SimTargetMeta{
			ID: t.ID, Name: t.Name, Length: t.Length,
			Orientation: t.Orientation.String(), Cells: t.Cells,
		})
		emit(Event{Shot: 0, Type: EventPlace, Payload: map[string]any{
			"target": t.Name, "length": t.Length, "orientation": t.Orientation.String(),
			"start": t.Cells[0].String(),
		}})
	}

	// ---- Hunt ----
	hunter, err := NewHunter(defs, cfg.GridSize, cfg.Hunt, env.Rng)
	if err != nil {
		return res, err
	}
	hunter.Log = log

	fired := mapset.New[board.Coord]()
	limit := cfg.GridSize * cfg.GridSize
	for !hunter.Done() && res.Shots < limit {
		at, err := hunter.NextShot()
		if err != nil {
			return res, err
		}
		if fired.Has(at) {
			return res, fmt.Errorf("%w: %v on shot %d", ErrRepeatedShot, at, res.Shots+1)
		}
		fired.Put(at)
		mode := hunter.State.Mode

		out, err := Fire(truth, at)
		if err != nil {
			return res, fmt.Errorf("fire %v: %w", at, err)
		}
		if err := hunter.Resolve(at, out); err != nil {
			return res, fmt.Errorf("resolve %v: %w", at, err)
		}
		res.Shots++
		res.ShotsByMode[mode.String()]++
		emit(Event{Shot: res.Shots, Type: EventShot, Payload: map[string]any{
			"at": at.String(), "row": at.Row, "col": at.Col, "mode": mode.String(),
		}})

		if !out.IsHit() {
			res.Misses++
			emit(Event{Shot: res.Shots, Type: EventMiss, Payload: map[string]any{"at": at.String()}})
			continue
		}
		res.Hits++
		sunk, err := defender.RecordHit(out.Target, at)
		if err != nil {
			return res, err
		}
		t := &defender.Targets[out.Target]
		emit(Event{Shot: res.Shots, Type: EventHit, Payload: map[string]any{
			"at": at.String(), "target": t.Name, "remaining": t.Remaining(),
		}})
		if sunk {
			res.EliminatedAt[t.Name] = res.Shots
			emit(Event{Shot: res.Shots, Type: EventEliminated, Payload: map[string]any{"target": t.Name}})
			logLine(res.Shots, "Sunk, %s", t.Name)
			gameLog.WithFields(logrus.Fields{"target": t.Name, "shot": res.Shots}).Debug("target eliminated")
		} else {
			logLine(res.Shots, "Hit, %s", t.Name)
		}
	}

	res.Win = hunter.Done() && defender.AllEliminated()
	emit(Event{Shot: res.Shots, Type: EventGameOver, Payload: map[string]any{
		"win": res.Win, "shots": res.Shots,
	}})
	gameLog.WithFields(logrus.Fields{"shots": res.Shots, "win": res.Win}).Debug("game finished")
	if record {
		res.Events = events
	}
	return res, nil
}
