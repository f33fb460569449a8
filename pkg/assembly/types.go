// Package assembly places slot bodies on the 2x3 hub grid, cuts the
// cable channels between adjacent slots, and runs the whole generation
// pipeline. The Type A / Type B differences live in small static
// tables so the two configurations can be audited side by side.
package assembly

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mhartig/hexhub/pkg/hexgrid"
	"github.com/mhartig/hexhub/pkg/kernel"
	"github.com/mhartig/hexhub/pkg/slot"
)

// ErrUnknownType is returned for an assembly type with no definition.
var ErrUnknownType = errors.New("unknown assembly type")

// Type names a full-hub configuration: which variant occupies which of
// the six grid slots, and the middle column's shift direction.
type Type string

const (
	TypeA Type = "A"
	TypeB Type = "B"
)

// Types returns the defined assembly types.
func Types() []Type {
	return []Type{TypeA, TypeB}
}

// ParseType converts a user-supplied string to an assembly Type.
func ParseType(s string) (Type, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return TypeA, nil
	case "B":
		return TypeB, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// gridSlot fixes the slot numbering: 1..6 row-major, row 0 on top.
type gridSlot struct {
	id, row, col int
}

var slotGrid = []gridSlot{
	{1, 0, 0}, {2, 0, 1}, {3, 0, 2},
	{4, 1, 0}, {5, 1, 1}, {6, 1, 2},
}

// typeShift is the middle-column shift direction: Type A raises the
// middle column, Type B lowers it.
var typeShift = map[Type]int{
	TypeA: +1,
	TypeB: -1,
}

// typeVariants assigns non-Basic variants to slot numbers. Slots
// absent from the map are Basic.
var typeVariants = map[Type]map[int]slot.Variant{
	TypeA: {2: slot.Controller, 3: slot.USB},
	TypeB: {5: slot.Controller, 3: slot.USB},
}

// connectorSpec is one latch rail on one wall of one slot.
type connectorSpec struct {
	side   hexgrid.Side
	gender slot.Gender
}

// typeConnectors lists the diagonal latch rails per assembly type. The
// north-male / south-female rails every slot carries are unconditional
// and live in the resolver; only the staggered diagonals differ between
// types. Males and females pair up across shared walls by construction.
var typeConnectors = map[Type]map[int][]connectorSpec{
	TypeA: {
		5: {{hexgrid.SideNE, slot.Male}, {hexgrid.SideNW, slot.Male}},
		1: {{hexgrid.SideSE, slot.Female}},
		3: {{hexgrid.SideSW, slot.Female}},
	},
	TypeB: {
		4: {{hexgrid.SideNE, slot.Male}},
		6: {{hexgrid.SideNW, slot.Male}},
		2: {{hexgrid.SideSE, slot.Female}, {hexgrid.SideSW, slot.Female}},
	},
}

// Placement binds one grid slot to its variant, world position and
// solid body. Placements exist for the lifetime of one generation run.
type Placement struct {
	Slot     int
	Row, Col int
	Variant  slot.Variant
	Position hexgrid.Vec
	Body     kernel.Solid
	Modifier kernel.Solid
}

// Assembly is the result of one generation run.
type Assembly struct {
	Type       Type
	Placements []*Placement
	Edges      []hexgrid.Edge
}

// ChannelPlacementError reports a channel cutout that does not reach
// the walls of both adjacent slots. It indicates inconsistent grid or
// channel configuration, never a recoverable condition.
type ChannelPlacementError struct {
	Edge hexgrid.Edge
}

func (e *ChannelPlacementError) Error() string {
	return fmt.Sprintf("channel cutout for edge %s does not span both slot walls", e.Edge)
}
