package engine

import (
	"fmt"
	"strings"

	"salvo/internal/board"
)

// Field is a per-cell weight map, row-major, recomputed whenever it is needed.
type Field struct {
	Size int
	W    []float64
}

func newField(size int) Field { return Field{Size: size, W: make([]float64, size*size)} }

func (f Field) At(c board.Coord) float64 { return f.W[c.Row*f.Size+c.Col] }

func (f Field) Sum() float64 {
	s := 0.0
	for _, w := range f.W {
		s += w
	}
	return s
}

func (f Field) add(o Field) {
	for i, w := range o.W {
		f.W[i] += w
	}
}

// Normalized returns a copy scaled to sum to 1. An all-zero field stays zero.
func (f Field) Normalized() Field {
	out := newField(f.Size)
	s := f.Sum()
	if s <= 0 {
		return out
	}
	for i, w := range f.W {
		out.W[i] = w / s
	}
	return out
}

// Inverted returns 1/w per cell; zero weights stay zero.
func (f Field) Inverted() Field {
	out := newField(f.Size)
	for i, w := range f.W {
		if w > 0 {
			out.W[i] = 1 / w
		}
	}
	return out
}

func (f Field) String() string {
	var sb strings.Builder
	for r := 0; r < f.Size; r++ {
		for c := 0; c < f.Size; c++ {
			fmt.Fprintf(&sb, "%.3f ", f.W[r*f.Size+c])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FieldFor counts every horizontal and vertical run of the given length made
// only of open cells, credits each covered cell, and normalizes by the total.
func FieldFor(g *board.Grid, length int) Field {
	f := newField(g.Size)
	if length <= 0 {
		return f
	}
	total := 0.0
	for r := 0; r < g.Size; r++ {
		for c := 0; c < g.Size; c++ {
			for _, o := range [...]board.Orientation{board.Horizontal, board.Vertical} {
				start := board.Coord{Row: r, Col: c}
				if !runOpen(g, start, o, length) {
					continue
				}
				dr, dc := o.Step()
				for k := 0; k < length; k++ {
					f.W[(r+dr*k)*g.Size+(c+dc*k)]++
					total++
				}
			}
		}
	}
	if total == 0 {
		return f
	}
	for i := range f.W {
		f.W[i] /= total
	}
	return f
}

func runOpen(g *board.Grid, start board.Coord, o board.Orientation, length int) bool {
	dr, dc := o.Step()
	for k := 0; k < length; k++ {
		if !g.IsOpen(board.Coord{Row: start.Row + dr*k, Col: start.Col + dc*k}) {
			return false
		}
	}
	return true
}

// Aggregate sums FieldFor over every target not yet eliminated.
func Aggregate(g *board.Grid, fleet *board.Fleet) Field {
	f := newField(g.Size)
	for i := range fleet.Targets {
		t := &fleet.Targets[i]
		if t.Remaining() <= 0 {
			continue
		}
		f.add(FieldFor(g, t.Length))
	}
	return f
}
