package engine

import (
	"fmt"
	"math/rand"

	"salvo/internal/board"
)

type Mode int

const (
	ModeParity Mode = iota
	ModeDensity
	ModeTarget
)

func (m Mode) String() string {
	switch m {
	case ModeDensity:
		return "density"
	case ModeTarget:
		return "target"
	default:
		return "parity"
	}
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

type OutcomeKind int

const (
	Miss OutcomeKind = iota
	Hit
)

// Outcome is what the defender reports for a shot. Target is only meaningful
// for hits.
type Outcome struct {
	Kind   OutcomeKind `json:"kind"`
	Target int         `json:"target"`
}

func MissOutcome() Outcome      { return Outcome{Kind: Miss, Target: -1} }
func HitOutcome(id int) Outcome { return Outcome{Kind: Hit, Target: id} }
func (o Outcome) IsHit() bool   { return o.Kind == Hit }

// HuntState is the attacker's memory between turns. Focus is the damaged
// target being finished off, -1 when none.
type HuntState struct {
	Mode       Mode         `json:"mode"`
	LastHit    *board.Coord `json:"last_hit,omitempty"`
	ShotsTaken int          `json:"shots_taken"`
	Focus      int          `json:"focus"`
}

func NewHuntState() HuntState { return HuntState{Mode: ModeParity, Focus: -1} }

type HuntConfig struct {
	// ParityShots is how many opening shots use the parity filter.
	ParityShots    int
	RandomTieBreak bool
}

func DefaultHuntConfig() HuntConfig { return HuntConfig{ParityShots: 7} }

// NextShot picks the next cell to attack from the attacker's view g and its
// fleet accounting f. The returned state carries the mode that produced the
// shot; g and f are not modified.
func NextShot(g *board.Grid, f *board.Fleet, st HuntState, rng *rand.Rand, cfg HuntConfig) (board.Coord, HuntState, error) {
	if f.AllEliminated() {
		return board.Coord{}, st, ErrGameOver
	}
	if len(g.Unattacked()) == 0 {
		return board.Coord{}, st, fmt.Errorf("%w: no cell left to attack", ErrGameOver)
	}

	st.Mode = modeFor(f, st, cfg)
	switch st.Mode {
	case ModeTarget:
		st.Focus = focusOf(f, st)
		if c, ok := targetShot(g, &f.Targets[st.Focus]); ok {
			return c, st, nil
		}
	case ModeParity:
		if c, ok := parityShot(g, f, rng); ok {
			return c, st, nil
		}
		st.Mode = ModeDensity
	}
	c, _ := densityShot(g, f, rng, cfg.RandomTieBreak)
	return c, st, nil
}

func modeFor(f *board.Fleet, st HuntState, cfg HuntConfig) Mode {
	switch {
	case f.AnyDamaged():
		return ModeTarget
	case st.ShotsTaken < cfg.ParityShots:
		return ModeParity
	default:
		return ModeDensity
	}
}

// focusOf keeps the current focus while it is damaged, otherwise moves to the
// first damaged target in fleet order. Callers ensure one exists.
func focusOf(f *board.Fleet, st HuntState) int {
	if f.IsDamaged(st.Focus) {
		return st.Focus
	}
	id, _ := f.FirstDamaged()
	return id
}

// parityShot draws a random unattacked cell on the (row+col+1) mod m == 0
// lattice, m being the shortest target still afloat.
func parityShot(g *board.Grid, f *board.Fleet, rng *rand.Rand) (board.Coord, bool) {
	m := f.MinActiveLength()
	if m <= 0 {
		return board.Coord{}, false
	}
	var cand []board.Coord
	for _, c := range g.Unattacked() {
		if (c.Row+c.Col+1)%m == 0 {
			cand = append(cand, c)
		}
	}
	if len(cand) == 0 {
		return board.Coord{}, false
	}
	return cand[rng.Intn(len(cand))], true
}

// densityShot takes the unattacked cell with the highest aggregate weight.
// Ties keep the first in scan order unless randomTie is set.
func densityShot(g *board.Grid, f *board.Fleet, rng *rand.Rand, randomTie bool) (board.Coord, bool) {
	field := Aggregate(g, f)
	var best board.Coord
	bestW := -1.0
	ties := 0
	for r := 0; r < g.Size; r++ {
		for c := 0; c < g.Size; c++ {
			at := board.Coord{Row: r, Col: c}
			if g.IsAttacked(at) {
				continue
			}
			w := field.At(at)
			switch {
			case w > bestW:
				best, bestW, ties = at, w, 1
			case w == bestW && randomTie:
				ties++
				if rng.Intn(ties) == 0 {
					best = at
				}
			}
		}
	}
	return best, bestW >= 0
}

// targetShot follows up hits on a damaged target. With one known segment it
// probes up, left, down, right where the target could still lie along that
// axis. With two or more the axis is fixed and it extends the known run at
// either end, then fills gaps. Any open neighbour of a known segment is the
// last resort.
func targetShot(g *board.Grid, t *board.Target) (board.Coord, bool) {
	hits := t.Hits
	if len(hits) == 0 {
		hits = g.CellsOf(t.ID)
	}
	if len(hits) == 0 {
		return board.Coord{}, false
	}
	first, last := hits[0], hits[len(hits)-1]

	if first == last {
		canV := windowFits(g, t, first, board.Vertical)
		canH := windowFits(g, t, first, board.Horizontal)
		probes := []struct {
			at board.Coord
			ok bool
		}{
			{last.Up(), canV},
			{last.Left(), canH},
			{last.Down(), canV},
			{last.Right(), canH},
		}
		for _, p := range probes {
			if p.ok && g.IsOpen(p.at) {
				return p.at, true
			}
		}
	} else if first.Row == last.Row || first.Col == last.Col {
		o := board.Vertical
		if first.Row == last.Row {
			o = board.Horizontal
		}
		lo, hi := extremes(hits, o)
		ends := []board.Coord{lo.Up(), lo.Left(), hi.Down(), hi.Right()}
		for i, at := range ends {
			// up/down only for vertical runs, left/right only for horizontal
			if (i%2 == 0) != (o == board.Vertical) {
				continue
			}
			if g.IsOpen(at) {
				return at, true
			}
		}
		dr, dc := o.Step()
		for at := lo; at != hi; at = (board.Coord{Row: at.Row + dr, Col: at.Col + dc}) {
			if g.IsOpen(at) {
				return at, true
			}
		}
	}

	for _, h := range hits {
		for _, at := range []board.Coord{h.Up(), h.Left(), h.Down(), h.Right()} {
			if g.IsOpen(at) {
				return at, true
			}
		}
	}
	return board.Coord{}, false
}

// windowFits reports whether some run of the target's length along o covers
// at with every cell in bounds and either open or already known to be t.
func windowFits(g *board.Grid, t *board.Target, at board.Coord, o board.Orientation) bool {
	dr, dc := o.Step()
	for s := -(t.Length - 1); s <= 0; s++ {
		ok := true
		for k := 0; k < t.Length; k++ {
			c := board.Coord{Row: at.Row + dr*(s+k), Col: at.Col + dc*(s+k)}
			if g.IsOpen(c) {
				continue
			}
			if occ, err := g.OccupancyAt(c); err != nil || occ != board.Occupant(t.ID) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

func extremes(hits []board.Coord, o board.Orientation) (lo, hi board.Coord) {
	lo, hi = hits[0], hits[0]
	for _, h := range hits[1:] {
		if o == board.Horizontal {
			if h.Col < lo.Col {
				lo = h
			}
			if h.Col > hi.Col {
				hi = h
			}
		} else {
			if h.Row < lo.Row {
				lo = h
			}
			if h.Row > hi.Row {
				hi = h
			}
		}
	}
	return lo, hi
}

// ResolveShot applies the defender's answer for a shot at at. Every resolved
// shot counts toward ShotsTaken; mode changes take effect on the next NextShot.
func ResolveShot(g *board.Grid, f *board.Fleet, st HuntState, at board.Coord, out Outcome) (HuntState, error) {
	if out.IsHit() {
		t, err := f.Target(out.Target)
		if err != nil {
			return st, err
		}
		if t.Eliminated() {
			return st, fmt.Errorf("%w: %s hit at %v", board.ErrAlreadyEliminated, t.Name, at)
		}
	}
	if err := g.MarkAttacked(at); err != nil {
		return st, err
	}
	st.ShotsTaken++

	if !out.IsHit() {
		return st, g.Reveal(at, board.Water)
	}

	eliminated, err := f.RecordHit(out.Target, at)
	if err != nil {
		return st, err
	}
	if err := g.Reveal(at, board.Occupant(out.Target)); err != nil {
		return st, err
	}
	hit := at
	st.LastHit = &hit
	switch {
	case eliminated && st.Focus == out.Target:
		st.Focus = -1
		if id, ok := f.FirstDamaged(); ok {
			st.Focus = id
		}
	case !eliminated && !f.IsDamaged(st.Focus):
		st.Focus = out.Target
	}
	return st, nil
}

// Fire resolves a shot against the ground-truth grid.
func Fire(truth *board.Grid, at board.Coord) (Outcome, error) {
	occ, err := truth.OccupancyAt(at)
	if err != nil {
		return Outcome{}, err
	}
	if err := truth.MarkAttacked(at); err != nil {
		return Outcome{}, err
	}
	if occ.IsTarget() {
		return HitOutcome(int(occ)), nil
	}
	return MissOutcome(), nil
}
