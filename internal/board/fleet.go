package board

import "fmt"

type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Step returns the unit offset along the orientation.
func (o Orientation) Step() (dr, dc int) {
	if o == Vertical {
		return 1, 0
	}
	return 0, 1
}

// TargetDef is the static description of a target before placement.
type TargetDef struct {
	Name   string `json:"name"`
	Length int    `json:"length"`
}

// Target is one ship of the fleet. HitCount only grows; Hits keeps the
// coordinates of resolved hits in the order they were discovered.
type Target struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Length      int         `json:"length"`
	Orientation Orientation `json:"orientation"`
	Cells       []Coord     `json:"cells,omitempty"`
	Hits        []Coord     `json:"hits,omitempty"`
	HitCount    int         `json:"hit_count"`
}

func (t *Target) Remaining() int   { return t.Length - t.HitCount }
func (t *Target) Eliminated() bool { return t.HitCount >= t.Length }
func (t *Target) Damaged() bool    { return t.HitCount > 0 && t.HitCount < t.Length }

// Letter is the dump symbol of the target.
func (t *Target) Letter() byte { return byte('A' + t.ID) }

type Fleet struct {
	Targets []Target `json:"targets"`
}

func NewFleet(defs []TargetDef) (*Fleet, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: no targets", ErrInvalidFleet)
	}
	if len(defs) > 26 {
		return nil, fmt.Errorf("%w: %d targets, at most 26 have a letter", ErrInvalidFleet, len(defs))
	}
	f := &Fleet{Targets: make([]Target, len(defs))}
	names := make(map[string]bool, len(defs))
	for i, d := range defs {
		if d.Length < 2 {
			return nil, fmt.Errorf("%w: %q has length %d, need at least 2", ErrInvalidFleet, d.Name, d.Length)
		}
		if names[d.Name] {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidFleet, d.Name)
		}
		names[d.Name] = true
		f.Targets[i] = Target{ID: i, Name: d.Name, Length: d.Length}
	}
	return f, nil
}

func (f *Fleet) Len() int { return len(f.Targets) }

func (f *Fleet) Target(id int) (*Target, error) {
	if id < 0 || id >= len(f.Targets) {
		return nil, fmt.Errorf("%w: id %d", ErrUnknownTarget, id)
	}
	return &f.Targets[id], nil
}

// RemainingLength is L - hitCount, or 0 for an unknown id.
func (f *Fleet) RemainingLength(id int) int {
	t, err := f.Target(id)
	if err != nil {
		return 0
	}
	return t.Remaining()
}

func (f *Fleet) IsEliminated(id int) bool {
	t, err := f.Target(id)
	return err == nil && t.Eliminated()
}

func (f *Fleet) IsDamaged(id int) bool {
	t, err := f.Target(id)
	return err == nil && t.Damaged()
}

// RecordHit counts a hit at c against target id and reports whether it
// eliminated the target. Hitting an eliminated target is a logic error.
func (f *Fleet) RecordHit(id int, c Coord) (bool, error) {
	t, err := f.Target(id)
	if err != nil {
		return false, err
	}
	if t.Eliminated() {
		return false, fmt.Errorf("%w: %s", ErrAlreadyEliminated, t.Name)
	}
	t.HitCount++
	t.Hits = append(t.Hits, c)
	return t.Eliminated(), nil
}

// AllEliminated is the game-over signal.
func (f *Fleet) AllEliminated() bool {
	for i := range f.Targets {
		if !f.Targets[i].Eliminated() {
			return false
		}
	}
	return true
}

func (f *Fleet) FirstDamaged() (int, bool) {
	for i := range f.Targets {
		if f.Targets[i].Damaged() {
			return i, true
		}
	}
	return -1, false
}

func (f *Fleet) AnyDamaged() bool {
	_, ok := f.FirstDamaged()
	return ok
}

// MinActiveLength is the shortest full length among targets still afloat, or 0
// when every target is eliminated.
func (f *Fleet) MinActiveLength() int {
	shortest := 0
	for i := range f.Targets {
		t := &f.Targets[i]
		if t.Eliminated() {
			continue
		}
		if shortest == 0 || t.Length < shortest {
			shortest = t.Length
		}
	}
	return shortest
}

func (f *Fleet) TotalLength() int {
	n := 0
	for i := range f.Targets {
		n += f.Targets[i].Length
	}
	return n
}

func (f *Fleet) Defs() []TargetDef {
	out := make([]TargetDef, len(f.Targets))
	for i, t := range f.Targets {
		out[i] = TargetDef{Name: t.Name, Length: t.Length}
	}
	return out
}

func (f *Fleet) Clone() *Fleet {
	out := &Fleet{Targets: make([]Target, len(f.Targets))}
	for i, t := range f.Targets {
		t.Cells = append([]Coord(nil), t.Cells...)
		t.Hits = append([]Coord(nil), t.Hits...)
		out.Targets[i] = t
	}
	return out
}
