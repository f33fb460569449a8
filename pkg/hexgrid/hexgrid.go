// Package hexgrid implements the flat-top hexagonal grid math for the
// hub: slot placement, wall side indexing, and adjacency derivation.
package hexgrid

import (
	"fmt"
	"math"
	"sort"
)

// Vec is a position in the grid plane, in mm. Z is carried for the
// assembly transforms but the grid itself is planar.
type Vec struct {
	X, Y, Z float64
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Length returns the Euclidean length of v.
func (v Vec) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Side indexes the six walls of a slot hexagon, 1-based, clockwise from
// north. The hexagons are flat-top: walls face N, NE, SE, S, SW, NW and
// the vertices point east/west.
type Side int

const (
	SideN  Side = 1
	SideNE Side = 2
	SideSE Side = 3
	SideS  Side = 4
	SideSW Side = 5
	SideNW Side = 6
)

// sideAngles maps each side to the direction of its outward wall
// normal, in degrees counter-clockwise from +X.
var sideAngles = map[Side]float64{
	SideN:  90,
	SideNE: 30,
	SideSE: 330,
	SideS:  270,
	SideSW: 210,
	SideNW: 150,
}

// Angle returns the outward wall normal direction in degrees.
func (s Side) Angle() float64 {
	return sideAngles[s]
}

// Opposite returns the side facing s across the hexagon.
func (s Side) Opposite() Side {
	o := s + 3
	if o > 6 {
		o -= 6
	}
	return o
}

func (s Side) String() string {
	switch s {
	case SideN:
		return "N"
	case SideNE:
		return "NE"
	case SideSE:
		return "SE"
	case SideS:
		return "S"
	case SideSW:
		return "SW"
	case SideNW:
		return "NW"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// Grid computes slot positions and adjacency for the hub layout.
// The pitch derives from the shell's outer flat-to-flat span plus the
// inter-slot clearance: neighboring slot centers are always one
// flat-to-flat span apart, in any of the six directions.
type Grid struct {
	dx, dy      float64
	neighborTol float64
	angleTol    float64
}

// New returns a Grid for shells of the given outer flat-to-flat span,
// separated by clearance. neighborTol and angleTol are the adjacency
// detection tolerances in mm and degrees.
func New(outerFlatToFlat, clearance, neighborTol, angleTol float64) Grid {
	flat := outerFlatToFlat + clearance
	r := flat / math.Sqrt(3)
	return Grid{
		dx:          1.5 * r,
		dy:          flat,
		neighborTol: neighborTol,
		angleTol:    angleTol,
	}
}

// Pitch returns the column pitch (dx) and row pitch (dy).
func (g Grid) Pitch() (dx, dy float64) {
	return g.dx, g.dy
}

// ColumnShift returns the magnitude of the staggered-column offset.
func (g Grid) ColumnShift() float64 {
	return g.dy / 2
}

// Position returns the center of the slot at (row, col). Row 0 is the
// top row; rows grow downward (-Y). Odd columns (the middle column on
// the 2x3 hub) are shifted by half a row pitch: up for shiftDir +1,
// down for shiftDir -1.
func (g Grid) Position(row, col, shiftDir int) Vec {
	x := float64(col) * g.dx
	y := -float64(row) * g.dy
	if col%2 == 1 {
		y += float64(shiftDir) * g.ColumnShift()
	}
	return Vec{X: x, Y: y}
}

// Edge is an unordered adjacency between two slots, stored with A < B.
// SideA is the wall of slot A facing B; SideB the wall of B facing A.
type Edge struct {
	A, B         int
	SideA, SideB Side
}

func (e Edge) String() string {
	return fmt.Sprintf("%d/%s-%d/%s", e.A, e.SideA, e.B, e.SideB)
}

// Edges derives the adjacency relation from slot center positions: two
// slots are adjacent when their centers are one flat-to-flat pitch
// apart (within tolerance) along one of the six wall normals. The
// result is sorted by (A, B) and contains each pair once.
func (g Grid) Edges(positions map[int]Vec) []Edge {
	ids := make([]int, 0, len(positions))
	for id := range positions {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var edges []Edge
	for i, a := range ids {
		for _, b := range ids[i+1:] {
			diff := positions[b].Sub(positions[a])
			if math.Abs(diff.Length()-g.dy) > g.neighborTol {
				continue
			}
			angle := math.Atan2(diff.Y, diff.X) * 180 / math.Pi
			sideA, ok := g.sideForAngle(angle)
			if !ok {
				// Pitch matches but no wall faces the neighbor;
				// the positions are not grid-aligned.
				continue
			}
			edges = append(edges, Edge{A: a, B: b, SideA: sideA, SideB: sideA.Opposite()})
		}
	}
	return edges
}

// sideForAngle maps a direction (degrees) to the side whose wall normal
// points that way, within the angle tolerance.
func (g Grid) sideForAngle(angle float64) (Side, bool) {
	for s, sa := range sideAngles {
		d := math.Abs(math.Mod(angle-sa+540, 360) - 180)
		if d < g.angleTol {
			return s, true
		}
	}
	return 0, false
}
