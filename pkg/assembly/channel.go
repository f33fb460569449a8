package assembly

import (
	"math"

	"github.com/mhartig/hexhub/pkg/config"
	"github.com/mhartig/hexhub/pkg/hexgrid"
	"github.com/mhartig/hexhub/pkg/kernel"
)

// Synthesizer cuts one cable channel through every shared wall of the
// resolved grid. Cutouts are local to their shared wall and never
// overlap each other, so cutting edges in any order yields the same
// final bodies.
type Synthesizer struct {
	k    kernel.Kernel
	p    config.Params
	grid hexgrid.Grid
}

// NewSynthesizer returns a Synthesizer for the given grid.
func NewSynthesizer(k kernel.Kernel, p config.Params, grid hexgrid.Grid) *Synthesizer {
	return &Synthesizer{k: k, p: p, grid: grid}
}

// Cut derives the adjacency edges from the placements, generates one
// cutout per edge, and subtracts it from both adjacent bodies. A slot
// with no neighbor on some side simply receives no cutout there.
// Returns the edges that were cut.
func (s *Synthesizer) Cut(placements []*Placement) ([]hexgrid.Edge, error) {
	byID := make(map[int]*Placement, len(placements))
	positions := make(map[int]hexgrid.Vec, len(placements))
	for _, pl := range placements {
		byID[pl.Slot] = pl
		positions[pl.Slot] = pl.Position
	}

	edges := s.grid.Edges(positions)
	for _, e := range edges {
		if err := s.cutEdge(byID[e.A], byID[e.B], e); err != nil {
			return nil, err
		}
	}
	return edges, nil
}

// channelProfile is the cutout cross-section: a box with a 45-degree
// roof, printable without supports. Drawn with X across the channel
// and Y up from the floor surface.
func channelProfile(width, height float64) []kernel.Vec2 {
	half := width / 2
	sideHeight := height - half // roof rises half the width at 45 degrees
	return []kernel.Vec2{
		{X: -half, Y: 0},
		{X: half, Y: 0},
		{X: half, Y: sideHeight},
		{X: 0, Y: height},
		{X: -half, Y: sideHeight},
	}
}

// cutEdge generates the cutout spanning the shared wall between a and b
// and subtracts it from both bodies.
func (s *Synthesizer) cutEdge(a, b *Placement, e hexgrid.Edge) error {
	k := s.k
	ch := s.p.Channel
	hub := s.p.Hub

	diff := b.Position.Sub(a.Position)
	dist := diff.Length()
	dirX, dirY := diff.X/dist, diff.Y/dist
	// Tangent, 90 degrees counter-clockwise from the edge direction.
	tanX, tanY := -dirY, dirX

	// Length: through both walls and the clearance gap, plus overcut.
	length := dist - hub.InnerFlatToFlat() + 2*ch.Overcut

	// Build the cutter along +Z, swing it onto the edge axis, center
	// it on the shared wall, and shift it along the wall tangent to
	// clear the connector rails.
	cutter := k.Extrude(channelProfile(ch.Width, ch.Height), length)
	cutter = k.Rotate(cutter, 90, 0, 90)
	cutter = k.Translate(cutter, -length/2, 0, 0)
	angle := math.Atan2(dirY, dirX) * 180 / math.Pi
	cutter = k.Rotate(cutter, 0, 0, angle)

	mid := hexgrid.Vec{
		X: (a.Position.X + b.Position.X) / 2,
		Y: (a.Position.Y + b.Position.Y) / 2,
	}
	cutter = k.Translate(cutter,
		mid.X+tanX*ch.TangentOffset,
		mid.Y+tanY*ch.TangentOffset,
		hub.FloorHeight)

	// The cutout must reach the wall midplane of both slots;
	// otherwise the pitch and channel length are inconsistent.
	wallDist := hub.OuterFlatToFlat/2 - hub.WallThickness/2
	probeZ := hub.FloorHeight + 1
	for _, pl := range []*Placement{a, b} {
		sign := 1.0
		if pl == b {
			sign = -1.0
		}
		px := pl.Position.X + sign*dirX*wallDist + tanX*ch.TangentOffset
		py := pl.Position.Y + sign*dirY*wallDist + tanY*ch.TangentOffset
		if k.Evaluate(cutter, px, py, probeZ) > 0 {
			return &ChannelPlacementError{Edge: e}
		}
	}

	a.Body = k.Difference(a.Body, cutter)
	b.Body = k.Difference(b.Body, cutter)
	return nil
}
