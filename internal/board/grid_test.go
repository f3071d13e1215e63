package board

import (
	"errors"
	"strings"
	"testing"
)

func TestMarkAttacked(t *testing.T) {
	g := NewGrid(10, Unknown)
	cases := []struct {
		name string
		at   Coord
		want error
	}{
		{"in bounds", Coord{0, 0}, nil},
		{"last cell", Coord{9, 9}, nil},
		{"row too large", Coord{10, 0}, ErrOutOfBounds},
		{"negative col", Coord{3, -1}, ErrOutOfBounds},
		{"again", Coord{0, 0}, ErrAlreadyAttacked},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := g.MarkAttacked(tc.at)
			if !errors.Is(err, tc.want) {
				t.Fatalf("MarkAttacked(%v) = %v, want %v", tc.at, err, tc.want)
			}
		})
	}
	if !g.IsAttacked(Coord{0, 0}) {
		t.Fatalf("attack on (0,0) not recorded")
	}
	if got := len(g.Unattacked()); got != 98 {
		t.Fatalf("unattacked = %d, want 98", got)
	}
}

func TestIsOpen(t *testing.T) {
	g := NewGrid(4, Unknown)
	_ = g.MarkAttacked(Coord{0, 0})
	_ = g.Reveal(Coord{0, 0}, Water)
	_ = g.Reveal(Coord{1, 1}, Occupant(2))

	if g.IsOpen(Coord{0, 0}) {
		t.Fatalf("attacked water must not be open")
	}
	if g.IsOpen(Coord{1, 1}) {
		t.Fatalf("revealed target cell must not be open")
	}
	if !g.IsOpen(Coord{2, 2}) {
		t.Fatalf("untouched cell must be open")
	}
	if g.IsOpen(Coord{4, 0}) {
		t.Fatalf("off-grid cell must not be open")
	}
	if !g.IsWater(Coord{0, 0}) || g.IsWater(Coord{-1, 0}) {
		t.Fatalf("IsWater mismatch")
	}
}

func TestOccupancyAtOutOfBounds(t *testing.T) {
	g := NewGrid(3, Water)
	if _, err := g.OccupancyAt(Coord{3, 3}); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	if err := g.Reveal(Coord{-1, 0}, Water); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds from Reveal, got %v", err)
	}
}

func TestDumpRoundTrip(t *testing.T) {
	g := NewGrid(4, Water)
	for c := 0; c < 3; c++ {
		_ = g.Reveal(Coord{1, c}, Occupant(0))
	}
	_ = g.Reveal(Coord{3, 3}, Unknown)

	want := "- - - -\nA A A -\n- - - -\n- - - ?\n"
	if got := g.String(); got != want {
		t.Fatalf("dump mismatch:\n%s\nwant:\n%s", got, want)
	}
	back, err := ParseDump(strings.NewReader(want))
	if err != nil {
		t.Fatalf("ParseDump: %v", err)
	}
	if back.String() != want {
		t.Fatalf("round trip mismatch:\n%s", back.String())
	}
}

func TestParseDumpRejectsBadInput(t *testing.T) {
	for _, in := range []string{"- -\n-\n", "- x\n- -\n", "-- -\n- -\n"} {
		if _, err := ParseDump(strings.NewReader(in)); err == nil {
			t.Fatalf("ParseDump(%q) should fail", in)
		}
	}
}

func TestCoordString(t *testing.T) {
	if got := (Coord{Row: 2, Col: 9}).String(); got != "C10" {
		t.Fatalf("Coord.String() = %q, want C10", got)
	}
}
