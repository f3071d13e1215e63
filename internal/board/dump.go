package board

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	waterSymbol   = '-'
	unknownSymbol = '?'
)

func symbol(o Occupant) byte {
	switch {
	case o == Water:
		return waterSymbol
	case o.IsTarget():
		return byte('A' + int(o))
	default:
		return unknownSymbol
	}
}

// WriteTo writes one line per row, cells separated by a space:
// '-' water, '?' unknown, 'A'.. the target occupying the cell.
func (g *Grid) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for r := 0; r < g.Size; r++ {
		for c := 0; c < g.Size; c++ {
			if c > 0 {
				bw.WriteByte(' ')
				n++
			}
			bw.WriteByte(symbol(g.Cells[r*g.Size+c].Occupant))
			n++
		}
		bw.WriteByte('\n')
		n++
	}
	return n, bw.Flush()
}

func (g *Grid) String() string {
	var sb strings.Builder
	_, _ = g.WriteTo(&sb)
	return sb.String()
}

// ParseDump reads a board written by WriteTo. Attack state is not part of the
// dump and comes back false.
func ParseDump(r io.Reader) (*Grid, error) {
	var rows [][]Occupant
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		row := make([]Occupant, len(fields))
		for i, f := range fields {
			if len(f) != 1 {
				return nil, fmt.Errorf("parse dump: row %d: bad symbol %q", len(rows), f)
			}
			switch ch := f[0]; {
			case ch == waterSymbol:
				row[i] = Water
			case ch == unknownSymbol:
				row[i] = Unknown
			case ch >= 'A' && ch <= 'Z':
				row[i] = Occupant(ch - 'A')
			default:
				return nil, fmt.Errorf("parse dump: row %d: bad symbol %q", len(rows), f)
			}
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	g := NewGrid(len(rows), Unknown)
	for r, row := range rows {
		if len(row) != len(rows) {
			return nil, fmt.Errorf("parse dump: row %d has %d cells, want %d", r, len(row), len(rows))
		}
		copy(g.Cells[r*g.Size:], cellsOf(row))
	}
	return g, nil
}

func cellsOf(row []Occupant) []Cell {
	out := make([]Cell, len(row))
	for i, o := range row {
		out[i].Occupant = o
	}
	return out
}
