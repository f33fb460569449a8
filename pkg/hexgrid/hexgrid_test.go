package hexgrid

import (
	"math"
	"testing"
)

const (
	testFlat      = 84.2
	testClearance = 1.0
)

func testGrid() Grid {
	return New(testFlat, testClearance, 2.0, 5.0)
}

func TestPitch(t *testing.T) {
	g := testGrid()
	dx, dy := g.Pitch()

	wantDY := testFlat + testClearance
	if math.Abs(dy-wantDY) > 1e-9 {
		t.Errorf("dy = %f, expected %f", dy, wantDY)
	}
	// Column pitch is sqrt(3)/2 of the row pitch; that equality is what
	// makes all six neighbor distances equal dy.
	if math.Abs(dx-dy*math.Sqrt(3)/2) > 1e-9 {
		t.Errorf("dx = %f, expected %f", dx, dy*math.Sqrt(3)/2)
	}
	if math.Abs(g.ColumnShift()-dy/2) > 1e-9 {
		t.Errorf("ColumnShift = %f, expected %f", g.ColumnShift(), dy/2)
	}
}

func TestPosition(t *testing.T) {
	g := testGrid()
	dx, dy := g.Pitch()

	tests := []struct {
		name          string
		row, col, dir int
		wantX, wantY  float64
	}{
		{"origin", 0, 0, +1, 0, 0},
		{"row grows downward", 1, 0, +1, 0, -dy},
		{"middle column shifted up", 0, 1, +1, dx, dy / 2},
		{"middle column shifted down", 0, 1, -1, dx, -dy / 2},
		{"even column ignores shift", 1, 2, -1, 2 * dx, -dy},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := g.Position(tc.row, tc.col, tc.dir)
			if math.Abs(pos.X-tc.wantX) > 1e-9 || math.Abs(pos.Y-tc.wantY) > 1e-9 {
				t.Errorf("Position(%d,%d,%d) = (%f, %f), expected (%f, %f)",
					tc.row, tc.col, tc.dir, pos.X, pos.Y, tc.wantX, tc.wantY)
			}
		})
	}

	// The two shift directions differ by exactly one row pitch.
	up := g.Position(1, 1, +1)
	down := g.Position(1, 1, -1)
	if math.Abs(up.Y-down.Y-2*g.ColumnShift()) > 1e-9 {
		t.Errorf("shift direction delta = %f, expected %f", up.Y-down.Y, 2*g.ColumnShift())
	}
}

func TestSideOpposite(t *testing.T) {
	pairs := map[Side]Side{
		SideN:  SideS,
		SideNE: SideSW,
		SideSE: SideNW,
	}
	for s, want := range pairs {
		if got := s.Opposite(); got != want {
			t.Errorf("%s.Opposite() = %s, expected %s", s, got, want)
		}
		if got := want.Opposite(); got != s {
			t.Errorf("%s.Opposite() = %s, expected %s", want, got, s)
		}
	}
}

// hubPositions lays the six slots out row-major on a 2x3 grid, with the
// middle column shifted by dir.
func hubPositions(g Grid, dir int) map[int]Vec {
	positions := make(map[int]Vec, 6)
	id := 1
	for row := 0; row < 2; row++ {
		for col := 0; col < 3; col++ {
			positions[id] = g.Position(row, col, dir)
			id++
		}
	}
	return positions
}

func edgeSet(edges []Edge) map[string]bool {
	set := make(map[string]bool, len(edges))
	for _, e := range edges {
		set[e.String()] = true
	}
	return set
}

func TestEdgesShiftUp(t *testing.T) {
	g := testGrid()
	edges := g.Edges(hubPositions(g, +1))
	if len(edges) != 9 {
		t.Fatalf("expected 9 edges, got %d: %v", len(edges), edges)
	}

	set := edgeSet(edges)
	want := []string{
		"1/NE-2/SW", "1/S-4/N", "1/SE-5/NW",
		"2/SE-3/NW", "2/S-5/N",
		"3/SW-5/NE", "3/S-6/N",
		"4/NE-5/SW", "5/SE-6/NW",
	}
	for _, e := range want {
		if !set[e] {
			t.Errorf("missing edge %s in %v", e, edges)
		}
	}
}

func TestEdgesShiftDown(t *testing.T) {
	g := testGrid()
	edges := g.Edges(hubPositions(g, -1))
	if len(edges) != 9 {
		t.Fatalf("expected 9 edges, got %d: %v", len(edges), edges)
	}

	set := edgeSet(edges)
	want := []string{
		"1/SE-2/NW", "1/S-4/N",
		"2/NE-3/SW", "2/SW-4/NE", "2/S-5/N", "2/SE-6/NW",
		"3/S-6/N",
		"4/SE-5/NW", "5/NE-6/SW",
	}
	for _, e := range want {
		if !set[e] {
			t.Errorf("missing edge %s in %v", e, edges)
		}
	}
}

func TestEdgesDistances(t *testing.T) {
	g := testGrid()
	_, dy := g.Pitch()
	positions := hubPositions(g, +1)
	for _, e := range g.Edges(positions) {
		d := positions[e.B].Sub(positions[e.A]).Length()
		if math.Abs(d-dy) > 2.0 {
			t.Errorf("edge %s spans %f, expected ~%f", e, d, dy)
		}
		if e.SideB != e.SideA.Opposite() {
			t.Errorf("edge %s: sides are not opposite", e)
		}
		if e.A >= e.B {
			t.Errorf("edge %s: not stored with A < B", e)
		}
	}
}

func TestEdgesRejectsMisaligned(t *testing.T) {
	g := testGrid()
	_, dy := g.Pitch()

	// Right pitch, wrong direction: no wall normal points east.
	positions := map[int]Vec{
		1: {X: 0, Y: 0},
		2: {X: dy, Y: 0},
	}
	if edges := g.Edges(positions); len(edges) != 0 {
		t.Errorf("expected no edges for misaligned positions, got %v", edges)
	}

	// Right direction, wrong pitch.
	positions[2] = Vec{X: 0, Y: -2 * dy}
	if edges := g.Edges(positions); len(edges) != 0 {
		t.Errorf("expected no edges for out-of-pitch positions, got %v", edges)
	}
}
