package slot

import (
	"math"

	"github.com/mhartig/hexhub/pkg/config"
	"github.com/mhartig/hexhub/pkg/hexgrid"
	"github.com/mhartig/hexhub/pkg/kernel"
)

// Gender distinguishes the two connector halves: a male rail protrudes
// from the wall, a female housing receives one from a neighboring hub.
type Gender int

const (
	Male Gender = iota
	Female
)

func (g Gender) String() string {
	if g == Male {
		return "male"
	}
	return "female"
}

// Connectors adds latch rails to finished slot bodies: slots are
// printed as individual pieces and slide together along these rails.
// A rail facing an empty side latches onto the next hub instead. Unlike
// the library features, rails are not part of a variant: the assembly
// applies them per slot and side, based on the assembly type's table.
type Connectors struct {
	k kernel.Kernel
	p config.Params
}

// NewConnectors returns a Connectors builder.
func NewConnectors(k kernel.Kernel, p config.Params) *Connectors {
	return &Connectors{k: k, p: p}
}

// railProfile returns the connector cross-section: a square of the
// given edge length rotated 45 degrees, dropped by shiftDown onto a
// short base so the rail roots into the wall top. Drawn in the XZ
// sense: X across the rail, Y up.
func railProfile(edge, shiftDown float64) []kernel.Vec2 {
	halfDiag := edge * math.Sqrt2 / 2
	centerY := halfDiag - shiftDown
	return []kernel.Vec2{
		{X: -shiftDown, Y: 0},
		{X: shiftDown, Y: 0},
		{X: halfDiag, Y: centerY},
		{X: 0, Y: centerY + halfDiag},
		{X: -halfDiag, Y: centerY},
	}
}

// orient builds a solid in the south-facing frame and rotates it to the
// target side. In the south frame the rail axis points -Y (outward
// through the south wall).
func (c *Connectors) orient(s kernel.Solid, side hexgrid.Side) kernel.Solid {
	return c.k.Rotate(s, 0, 0, side.Angle()-hexgrid.SideS.Angle())
}

// innerPrism is the inner cavity hexagon extruded tall enough to trim
// any rail geometry leaking into the cavity.
func (c *Connectors) innerPrism() kernel.Solid {
	p := c.k.Extrude(hexProfile(c.p.Hub.InnerFlatToFlat()), clearCut+10)
	return c.k.Translate(p, 0, 0, -5)
}

// outerPrism is the outer shell hexagon, used to trim female housings
// so they never protrude past the wall.
func (c *Connectors) outerPrism() kernel.Solid {
	p := c.k.Extrude(hexProfile(c.p.Hub.OuterFlatToFlat), clearCut+10)
	return c.k.Translate(p, 0, 0, -5)
}

// Add fuses (male) or cuts (female) one connector on the given side of
// the body and returns the updated body.
func (c *Connectors) Add(body kernel.Solid, side hexgrid.Side, gender Gender) kernel.Solid {
	if gender == Male {
		return c.addMale(body, side)
	}
	return c.addFemale(body, side)
}

// addMale fuses a rail that starts inside the wall and protrudes past
// it by the pin length minus the wall inset.
func (c *Connectors) addMale(body kernel.Solid, side hexgrid.Side) kernel.Solid {
	cn := c.p.Connector
	k := c.k
	apothem := c.p.Hub.OuterFlatToFlat / 2

	// Profile extruded along Z, rotated so the axis points -Y.
	rail := k.Extrude(railProfile(cn.EdgeLength, cn.ShiftDown), cn.PinLength)
	rail = k.Rotate(rail, 90, 0, 0)
	rail = k.Translate(rail, 0, -(apothem - cn.WallInset), 0)

	// Keep the cavity clear, then swing to the target side.
	rail = k.Difference(rail, c.innerPrism())
	return k.Union(body, c.orient(rail, side))
}

// addFemale fuses a housing block trimmed to the outer shell, then cuts
// the clearance-offset rail profile through wall and housing.
func (c *Connectors) addFemale(body kernel.Solid, side hexgrid.Side) kernel.Solid {
	cn := c.p.Connector
	k := c.k
	apothem := c.p.Hub.OuterFlatToFlat / 2

	housing := k.Box(cn.HousingWidth, cn.PinLength, cn.HousingHeight)
	housing = k.Translate(housing, 0, -(apothem - cn.WallInset), 0)
	housing = k.Intersection(c.orient(housing, side), c.outerPrism())
	body = k.Union(body, housing)

	// The female profile is the male one offset outward by the
	// clearance; the length spans well past wall and housing in both
	// directions.
	const cutLength = 40.0
	cut := k.Extrude(railProfile(cn.EdgeLength+2*cn.Clearance, cn.ShiftDown+cn.Clearance), cutLength)
	cut = k.Rotate(cut, 90, 0, 0)
	cut = k.Translate(cut, 0, cutLength/2, 0)
	cut = k.Translate(cut, 0, -(apothem - cn.WallInset), 0)
	return k.Difference(body, c.orient(cut, side))
}
