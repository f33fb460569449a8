package slot

import (
	"fmt"
	"math"

	"github.com/mhartig/hexhub/pkg/kernel"
)

// rotateXY rotates a point around the origin by deg degrees.
func rotateXY(x, y, deg float64) (float64, float64) {
	rad := deg * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	return x*cos - y*sin, x*sin + y*cos
}

// unionAt unions copies of part translated to each (x, y) position.
func (l *Library) unionAt(base kernel.Solid, part kernel.Solid, positions [][2]float64) kernel.Solid {
	body := base
	for _, pos := range positions {
		placed := l.k.Translate(part, pos[0], pos[1], 0)
		if body == nil {
			body = placed
		} else {
			body = l.k.Union(body, placed)
		}
	}
	return body
}

// checkPositions validates that every position, grown by margin, stays
// inside the inner cavity.
func (l *Library) checkPositions(f Name, positions [][2]float64, margin float64) error {
	for _, pos := range positions {
		if !l.insideInnerHex(pos[0], pos[1], margin) {
			return &PlacementError{
				Feature: f,
				Detail: fmt.Sprintf("point (%.2f, %.2f) with radius %.2f exceeds the inner cavity (flat-to-flat %.2f)",
					pos[0], pos[1], margin, l.p.Hub.InnerFlatToFlat()),
			}
		}
	}
	return nil
}

// applyFloorHoles cuts the chamfered floor mounting holes, evenly
// spaced on a circle around the slot center.
func (l *Library) applyFloorHoles(body kernel.Solid) (kernel.Solid, error) {
	fh := l.p.FloorHoles
	positions := make([][2]float64, fh.Count)
	step := 360.0 / float64(fh.Count)
	for i := range positions {
		x, y := rotateXY(fh.Distance, 0, float64(i)*step)
		positions[i] = [2]float64{x, y}
	}
	if err := l.checkPositions(FloorHoles, positions, fh.Radius+fh.Chamfer); err != nil {
		return nil, err
	}

	// One hole: a through cylinder with a chamfer cone at the bottom.
	k := l.k
	hole := k.Union(
		k.Cylinder(l.p.Hub.FloorHeight+fh.Chamfer+1, fh.Radius),
		k.Cone(fh.Chamfer, fh.Radius+fh.Chamfer, fh.Radius),
	)
	cutters := l.unionAt(nil, hole, positions)
	return k.Difference(body, cutters), nil
}

// applyMagnetBosses adds four magnet pillars: one centered, three at
// the magnet distance pointing north and rotated ±60 degrees. Each
// pillar carries a retention rim for the magnet.
func (l *Library) applyMagnetBosses(body kernel.Solid) (kernel.Solid, error) {
	m := l.p.Magnet
	positions := [][2]float64{{0, 0}, {0, m.Distance}}
	for _, deg := range []float64{60, -60} {
		x, y := rotateXY(0, m.Distance, deg)
		positions = append(positions, [2]float64{x, y})
	}
	if err := l.checkPositions(MagnetBosses, positions, m.OuterRadius); err != nil {
		return nil, err
	}

	k := l.k
	floorZ := l.p.Hub.FloorHeight
	base := k.Translate(k.Cylinder(m.BaseHeight, m.OuterRadius), 0, 0, floorZ)
	rim := k.Difference(
		k.Cylinder(m.RimHeight, m.OuterRadius),
		k.Cylinder(m.RimHeight, m.InnerRadius),
	)
	rim = k.Translate(rim, 0, 0, floorZ+m.BaseHeight)
	pillar := k.Union(base, rim)

	return l.unionAt(body, pillar, positions), nil
}

// pogoPositions returns the four pogo boss centers on the north side.
func (l *Library) pogoPositions() [][2]float64 {
	pg := l.p.Pogo
	return [][2]float64{
		{pg.XLeft, pg.YRef + pg.YOffset},
		{pg.XLeft, pg.YRef - pg.YOffset},
		{pg.XRight, pg.YRef + pg.YOffset},
		{pg.XRight, pg.YRef - pg.YOffset},
	}
}

// applyPogoBosses adds the four pogo-pin pillars on the north side and
// drills their pin bores.
func (l *Library) applyPogoBosses(body kernel.Solid) (kernel.Solid, error) {
	pg := l.p.Pogo
	positions := l.pogoPositions()
	if err := l.checkPositions(PogoBosses, positions, pg.OuterRadius); err != nil {
		return nil, err
	}

	k := l.k
	floorZ := l.p.Hub.FloorHeight
	pillar := k.Translate(k.Cylinder(pg.Height, pg.OuterRadius), 0, 0, floorZ)
	body = l.unionAt(body, pillar, positions)

	bore := k.Translate(k.Cylinder(pg.Height+5, pg.HoleRadius), 0, 0, floorZ)
	bores := l.unionAt(nil, bore, positions)
	return k.Difference(body, bores), nil
}

// applyControllerBosses adds the controller-board mounting pillars at
// the board-specific coordinates, each with a screw bore.
func (l *Library) applyControllerBosses(body kernel.Solid) (kernel.Solid, error) {
	c := l.p.Controller
	positions := make([][2]float64, len(c.Positions))
	for i, pt := range c.Positions {
		positions[i] = [2]float64{pt.X, pt.Y}
	}
	if err := l.checkPositions(ControllerBosses, positions, c.Radius); err != nil {
		return nil, err
	}

	k := l.k
	floorZ := l.p.Hub.FloorHeight
	pillar := k.Translate(k.Cylinder(c.Height, c.Radius), 0, 0, floorZ)
	body = l.unionAt(body, pillar, positions)

	bore := k.Translate(k.Cylinder(c.Height+5, c.HoleRadius), 0, 0, floorZ)
	bores := l.unionAt(nil, bore, positions)
	return k.Difference(body, bores), nil
}

// usbBossPositions returns the four USB board boss centers: a square
// pattern against the inner south wall.
func (l *Library) usbBossPositions() [][2]float64 {
	u := l.p.USB
	ySouth := -l.p.Hub.InnerFlatToFlat()/2 + u.BossSouthInset
	yNorth := ySouth + u.BossSpanY
	return [][2]float64{
		{-u.BossXOffset, yNorth},
		{u.BossXOffset, yNorth},
		{-u.BossXOffset, ySouth},
		{u.BossXOffset, ySouth},
	}
}

// applyUSBBosses adds the four low USB board standoffs on the south
// side, with bores reaching into the floor.
func (l *Library) applyUSBBosses(body kernel.Solid) (kernel.Solid, error) {
	u := l.p.USB
	positions := l.usbBossPositions()
	if err := l.checkPositions(USBBosses, positions, u.BossOuterRadius); err != nil {
		return nil, err
	}

	k := l.k
	floorZ := l.p.Hub.FloorHeight
	standoff := k.Translate(k.Cylinder(u.BossHeight, u.BossOuterRadius), 0, 0, floorZ)
	body = l.unionAt(body, standoff, positions)

	// Bores start below the floor surface so screws bite into it.
	bore := k.Translate(k.Cylinder(u.BossHeight+10, u.BossHoleRadius), 0, 0, floorZ-1)
	bores := l.unionAt(nil, bore, positions)
	return k.Difference(body, bores), nil
}

// applyUSBCutout cuts the rectangular USB opening through the south
// wall, leaving the configured material above it.
func (l *Library) applyUSBCutout(body kernel.Solid) (kernel.Solid, error) {
	u := l.p.USB
	h := l.p.Hub

	top := h.SouthWallTop() - u.CutoutTopInset
	bottom := top - u.CutoutHeight
	if bottom < 0 {
		return nil, &PlacementError{
			Feature: USBCutout,
			Detail:  fmt.Sprintf("cutout bottom %.2f falls below the slot base", bottom),
		}
	}
	if u.CutoutWidth >= h.InnerFlatToFlat() {
		return nil, &PlacementError{
			Feature: USBCutout,
			Detail:  fmt.Sprintf("cutout width %.2f exceeds the south wall span", u.CutoutWidth),
		}
	}

	// Through-cut: from just outside the outer wall to just past the
	// inner wall face.
	yOuter := -h.OuterFlatToFlat / 2
	yStart := yOuter - 1.0
	yEnd := yOuter + h.WallThickness + 0.5
	depth := yEnd - yStart

	k := l.k
	box := k.Box(u.CutoutWidth, depth, u.CutoutHeight)
	box = k.Translate(box, 0, (yStart+yEnd)/2, bottom)
	return k.Difference(body, box), nil
}
