package board

import "fmt"

// Coord identifies a cell on the grid. Row and Col are zero-based.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Coord) Up() Coord    { return Coord{c.Row - 1, c.Col} }
func (c Coord) Down() Coord  { return Coord{c.Row + 1, c.Col} }
func (c Coord) Left() Coord  { return Coord{c.Row, c.Col - 1} }
func (c Coord) Right() Coord { return Coord{c.Row, c.Col + 1} }

// String renders the coordinate the way players call shots: row letter, column number.
func (c Coord) String() string {
	return fmt.Sprintf("%c%d", 'A'+rune(c.Row), c.Col+1)
}

// Occupant is what a cell holds. Non-negative values are target ids.
type Occupant int

const (
	Unknown Occupant = -2
	Water   Occupant = -1
)

func (o Occupant) IsTarget() bool { return o >= 0 }

// Cell is one square of the grid. Attacked never goes back to false.
type Cell struct {
	Occupant Occupant `json:"occupant"`
	Attacked bool     `json:"attacked"`
}

// Grid is a Size x Size row-major matrix of cells. A ground-truth grid starts
// as Water and is populated by placement; a guessing grid starts as Unknown
// and is revealed shot by shot.
type Grid struct {
	Size  int    `json:"size"`
	Cells []Cell `json:"cells"`
}

func NewGrid(size int, fill Occupant) *Grid {
	g := &Grid{Size: size, Cells: make([]Cell, size*size)}
	for i := range g.Cells {
		g.Cells[i].Occupant = fill
	}
	return g
}

func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.Size && c.Col >= 0 && c.Col < g.Size
}

func (g *Grid) index(c Coord) int { return c.Row*g.Size + c.Col }

func (g *Grid) cell(c Coord) (*Cell, error) {
	if !g.InBounds(c) {
		return nil, fmt.Errorf("%w: %v on %dx%d grid", ErrOutOfBounds, c, g.Size, g.Size)
	}
	return &g.Cells[g.index(c)], nil
}

func (g *Grid) OccupancyAt(c Coord) (Occupant, error) {
	cl, err := g.cell(c)
	if err != nil {
		return Unknown, err
	}
	return cl.Occupant, nil
}

// MarkAttacked records a resolved shot. Attacking the same cell twice is a
// caller bug and is rejected.
func (g *Grid) MarkAttacked(c Coord) error {
	cl, err := g.cell(c)
	if err != nil {
		return err
	}
	if cl.Attacked {
		return fmt.Errorf("%w: %v", ErrAlreadyAttacked, c)
	}
	cl.Attacked = true
	return nil
}

// Reveal sets what a cell holds, either at placement or after a resolved shot.
func (g *Grid) Reveal(c Coord, occ Occupant) error {
	cl, err := g.cell(c)
	if err != nil {
		return err
	}
	cl.Occupant = occ
	return nil
}

// IsWater reports whether c is known water. Off-grid cells are not water.
func (g *Grid) IsWater(c Coord) bool {
	return g.InBounds(c) && g.Cells[g.index(c)].Occupant == Water
}

func (g *Grid) IsAttacked(c Coord) bool {
	return g.InBounds(c) && g.Cells[g.index(c)].Attacked
}

// IsOpen reports whether a target segment could still sit at c: in bounds,
// not yet attacked and not holding a known target.
func (g *Grid) IsOpen(c Coord) bool {
	if !g.InBounds(c) {
		return false
	}
	cl := g.Cells[g.index(c)]
	return !cl.Attacked && !cl.Occupant.IsTarget()
}

// Unattacked lists every cell not yet shot, in row-major order.
func (g *Grid) Unattacked() []Coord {
	out := make([]Coord, 0, len(g.Cells))
	for i, cl := range g.Cells {
		if !cl.Attacked {
			out = append(out, Coord{Row: i / g.Size, Col: i % g.Size})
		}
	}
	return out
}

// CellsOf lists the cells revealed as holding target id, in row-major order.
func (g *Grid) CellsOf(id int) []Coord {
	var out []Coord
	for i, cl := range g.Cells {
		if cl.Occupant == Occupant(id) {
			out = append(out, Coord{Row: i / g.Size, Col: i % g.Size})
		}
	}
	return out
}

func (g *Grid) Clone() *Grid {
	out := &Grid{Size: g.Size, Cells: make([]Cell, len(g.Cells))}
	copy(out.Cells, g.Cells)
	return out
}
