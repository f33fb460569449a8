package slot

import (
	"github.com/mhartig/hexhub/pkg/config"
	"github.com/mhartig/hexhub/pkg/kernel"
)

// clearCut is the extra height used by cutters that must clear the top
// of the shell.
const clearCut = 20.0

// hexProfile returns the flat-top hexagon profile for the given
// flat-to-flat span: vertices east/west, walls north/south.
func hexProfile(flatToFlat float64) []kernel.Vec2 {
	f := flatToFlat / 2
	r := flatToFlat / 1.7320508075688772 // circumradius, flat/sqrt(3)
	return []kernel.Vec2{
		{X: r, Y: 0},
		{X: r / 2, Y: f},
		{X: -r / 2, Y: f},
		{X: -r, Y: 0},
		{X: -r / 2, Y: -f},
		{X: r / 2, Y: -f},
	}
}

// hexPrism extrudes a flat-top hexagon from z=0 to z=height.
func (l *Library) hexPrism(flatToFlat, height float64) kernel.Solid {
	return l.k.Extrude(hexProfile(flatToFlat), height)
}

// prismYZ extrudes a profile drawn in the YZ plane along the X axis,
// centered on x=0. Profile points are (y, z) pairs.
func (l *Library) prismYZ(profile []kernel.Vec2, width float64) kernel.Solid {
	// Extrude builds the prism in XY extruded along Z; the rotation
	// maps profile X to world Y, profile Y to world Z, and the
	// extrusion axis to world X.
	s := l.k.Extrude(profile, width)
	s = l.k.Rotate(s, 90, 0, 90)
	return l.k.Translate(s, -width/2, 0, 0)
}

// slopeCutProfile returns the YZ profile of the prism that removes all
// material above the south slope line. zShift lowers the slope, which
// the sloped lid recess uses to carve a shelf below the surface.
func (l *Library) slopeCutProfile(zShift float64) []kernel.Vec2 {
	h := l.p.Hub
	ySouth := -h.OuterFlatToFlat / 2
	yNorth := ySouth + h.SlopeLength
	zTop := h.TopOfWall()
	zSouth := h.SouthWallTop()
	return []kernel.Vec2{
		{X: yNorth, Y: zTop - zShift},
		{X: ySouth, Y: zSouth - zShift},
		{X: ySouth, Y: zTop + clearCut},
		{X: yNorth, Y: zTop + clearCut},
	}
}

// applyBaseShell creates the slot body: hexagonal floor and wall ring,
// the south slope cut, the lid retention recesses, and the outer spacer
// rim. It ignores the input body.
func (l *Library) applyBaseShell(kernel.Solid) (kernel.Solid, error) {
	h := l.p.Hub
	k := l.k
	outer := h.OuterFlatToFlat
	inner := h.InnerFlatToFlat()

	// Floor and wall ring.
	floor := l.hexPrism(outer, h.FloorHeight)
	wallOuter := l.hexPrism(outer, h.WallHeight)
	wallInner := l.hexPrism(inner, h.WallHeight)
	wall := k.Translate(k.Difference(wallOuter, wallInner), 0, 0, h.FloorHeight)
	body := k.Union(floor, wall)

	// South slope cut.
	cutWidth := outer * 2
	body = k.Difference(body, l.prismYZ(l.slopeCutProfile(0), cutWidth))

	// Horizontal lid recess, cut down from the wall top.
	recessFlat := inner + 2*h.RecessWidth
	horiz := l.hexPrism(recessFlat, h.RecessDepth)
	horiz = k.Translate(horiz, 0, 0, h.TopOfWall()-h.RecessDepth)
	body = k.Difference(body, horiz)

	// Sloped lid recess: a shelf one recess depth below the slope
	// surface, confined to the recess ring between the inner cavity
	// and the recess hexagon.
	slopeLower := l.prismYZ(l.slopeCutProfile(h.RecessDepth), cutWidth)
	ringOuter := l.hexPrism(recessFlat, h.TopOfWall()+clearCut)
	ringInner := l.hexPrism(inner, h.TopOfWall()+clearCut)
	ring := k.Difference(ringOuter, ringInner)
	body = k.Difference(body, k.Intersection(slopeLower, ring))

	// Outer spacer rim.
	rimOuter := l.hexPrism(outer+2*h.RimThickness, h.RimHeight)
	rimInner := l.hexPrism(outer, h.RimHeight)
	body = k.Union(body, k.Difference(rimOuter, rimInner))

	return body, nil
}

// Modifier builds the print-modifier body for one slot: a thin hexagonal
// prism spanning the cavity floor, starting below the floor surface.
// It is exported alongside the slot body, never merged into it.
func Modifier(k kernel.Kernel, h config.HubParams) kernel.Solid {
	m := k.Extrude(hexProfile(h.InnerFlatToFlat()), h.ModifierHeight)
	return k.Translate(m, 0, 0, h.FloorHeight-h.ModifierUndercut)
}
