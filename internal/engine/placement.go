package engine

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"salvo/internal/board"
	"salvo/internal/config"
	"salvo/internal/util"
)

type Strategy int

const (
	// Uniform samples start cells uniformly.
	Uniform Strategy = iota
	// Weighted favours cells a heat-map searcher would reach late.
	Weighted
)

func (s Strategy) String() string {
	if s == Weighted {
		return "weighted"
	}
	return "uniform"
}

// ParseStrategy accepts the same spellings as config validation.
func ParseStrategy(s string) (Strategy, error) {
	name, ok := config.StrategyName(s)
	if !ok {
		return Uniform, fmt.Errorf("unknown placement strategy %q", s)
	}
	if name == "uniform" {
		return Uniform, nil
	}
	return Weighted, nil
}

const DefaultMaxAttempts = 10000

type Placer struct {
	Strategy    Strategy
	MaxAttempts int
	Log         logrus.FieldLogger
}

func NewPlacer(s Strategy, maxAttempts int) *Placer {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Placer{Strategy: s, MaxAttempts: maxAttempts, Log: logrus.StandardLogger()}
}

// Place lays every target of the fleet on a fresh size x size water grid and
// records orientation and cells on the fleet. Each target's orientation is
// drawn once; start cells are resampled until one fits or the attempt budget
// runs out.
func (p *Placer) Place(rng *rand.Rand, fleet *board.Fleet, size int) (*board.Grid, error) {
	g := board.NewGrid(size, board.Water)

	var inv Field
	if p.Strategy == Weighted {
		inv = Aggregate(g, fleet).Inverted()
	}

	for i := range fleet.Targets {
		t := &fleet.Targets[i]
		if t.Length > size {
			return nil, fmt.Errorf("%w: %s (length %d) does not fit a %dx%d grid", ErrNoValidPlacement, t.Name, t.Length, size, size)
		}
		o := board.Horizontal
		if rng.Intn(2) == 1 {
			o = board.Vertical
		}

		var weights []float64
		if p.Strategy == Weighted {
			weights = startWeights(inv, o, t.Length)
		}

		placed := false
		for attempt := 0; attempt < p.MaxAttempts; attempt++ {
			var start board.Coord
			if p.Strategy == Weighted {
				idx := util.WeightedIndex(rng, weights)
				start = board.Coord{Row: idx / size, Col: idx % size}
			} else {
				start = uniformStart(rng, size, o, t.Length)
			}
			if !fits(g, start, o, t.Length) {
				continue
			}
			lay(g, t, start, o)
			placed = true
			p.Log.WithFields(logrus.Fields{
				"target": t.Name, "start": start.String(), "orientation": o.String(), "attempts": attempt + 1,
			}).Debug("target placed")
			break
		}
		if !placed {
			return nil, fmt.Errorf("%w: %s after %d attempts", ErrNoValidPlacement, t.Name, p.MaxAttempts)
		}
	}
	return g, nil
}

// Place uses the default attempt budget.
func Place(rng *rand.Rand, fleet *board.Fleet, size int, s Strategy) (*board.Grid, error) {
	return NewPlacer(s, DefaultMaxAttempts).Place(rng, fleet, size)
}

func uniformStart(rng *rand.Rand, size int, o board.Orientation, length int) board.Coord {
	along := rng.Intn(size - length + 1)
	across := rng.Intn(size)
	if o == board.Vertical {
		return board.Coord{Row: along, Col: across}
	}
	return board.Coord{Row: across, Col: along}
}

// startWeights keeps the inverted weight of every cell a run can start from.
func startWeights(inv Field, o board.Orientation, length int) []float64 {
	w := make([]float64, len(inv.W))
	for r := 0; r < inv.Size; r++ {
		for c := 0; c < inv.Size; c++ {
			if o == board.Horizontal && c+length > inv.Size {
				continue
			}
			if o == board.Vertical && r+length > inv.Size {
				continue
			}
			w[r*inv.Size+c] = inv.W[r*inv.Size+c]
		}
	}
	return w
}

func fits(g *board.Grid, start board.Coord, o board.Orientation, length int) bool {
	dr, dc := o.Step()
	for k := 0; k < length; k++ {
		c := board.Coord{Row: start.Row + dr*k, Col: start.Col + dc*k}
		if !g.InBounds(c) || g.Cells[c.Row*g.Size+c.Col].Occupant != board.Water {
			return false
		}
	}
	return true
}

func lay(g *board.Grid, t *board.Target, start board.Coord, o board.Orientation) {
	dr, dc := o.Step()
	t.Orientation = o
	t.Cells = t.Cells[:0]
	for k := 0; k < t.Length; k++ {
		c := board.Coord{Row: start.Row + dr*k, Col: start.Col + dc*k}
		_ = g.Reveal(c, board.Occupant(t.ID))
		t.Cells = append(t.Cells, c)
	}
}
