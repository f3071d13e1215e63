package engine

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"salvo/internal/board"
)

// Hunter owns one attacker's view of a game: the guessing grid, the fleet
// accounting built from reported outcomes, and the hunt state.
type Hunter struct {
	Grid   *board.Grid
	Fleet  *board.Fleet
	State  HuntState
	Config HuntConfig
	Rng    *rand.Rand
	Log    *logrus.Logger
}

func NewHunter(defs []board.TargetDef, size int, cfg HuntConfig, rng *rand.Rand) (*Hunter, error) {
	f, err := board.NewFleet(defs)
	if err != nil {
		return nil, err
	}
	return &Hunter{
		Grid:   board.NewGrid(size, board.Unknown),
		Fleet:  f,
		State:  NewHuntState(),
		Config: cfg,
		Rng:    rng,
		Log:    logrus.StandardLogger(),
	}, nil
}

func (h *Hunter) NextShot() (board.Coord, error) {
	at, st, err := NextShot(h.Grid, h.Fleet, h.State, h.Rng, h.Config)
	if err != nil {
		return at, err
	}
	h.State = st
	h.Log.WithFields(logrus.Fields{
		"shot": st.ShotsTaken + 1, "mode": st.Mode.String(), "at": at.String(), "focus": st.Focus,
	}).Debug("next shot")
	if st.Mode == ModeDensity && h.Log.IsLevelEnabled(logrus.TraceLevel) {
		h.Log.Trace("heat map\n" + Aggregate(h.Grid, h.Fleet).String())
	}
	return at, nil
}

// Resolve records the defender's answer for the last shot.
func (h *Hunter) Resolve(at board.Coord, out Outcome) error {
	st, err := ResolveShot(h.Grid, h.Fleet, h.State, at, out)
	if err != nil {
		return err
	}
	h.State = st
	if out.IsHit() {
		t := &h.Fleet.Targets[out.Target]
		h.Log.WithFields(logrus.Fields{
			"at": at.String(), "target": t.Name, "remaining": t.Remaining(),
		}).Debug("hit")
	}
	return nil
}

func (h *Hunter) Done() bool { return h.Fleet.AllEliminated() }
