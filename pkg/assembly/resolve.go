package assembly

import (
	"fmt"

	"github.com/mhartig/hexhub/pkg/config"
	"github.com/mhartig/hexhub/pkg/hexgrid"
	"github.com/mhartig/hexhub/pkg/kernel"
	"github.com/mhartig/hexhub/pkg/slot"
)

// Resolver maps an assembly type to placed slot bodies: it looks up the
// type's variant table, composes each distinct variant once, adds the
// per-slot connector rails, and applies each position's transform.
type Resolver struct {
	k     kernel.Kernel
	p     config.Params
	comp  *slot.Composer
	conns *slot.Connectors
	grid  hexgrid.Grid
}

// NewResolver returns a Resolver over the given composer.
func NewResolver(k kernel.Kernel, p config.Params, comp *slot.Composer) *Resolver {
	return &Resolver{
		k:     k,
		p:     p,
		comp:  comp,
		conns: slot.NewConnectors(k, p),
		grid:  hexgrid.New(p.Hub.OuterFlatToFlat, p.Grid.Clearance, p.Grid.NeighborTolerance, p.Grid.AngleTolerance),
	}
}

// Grid returns the resolver's hex grid.
func (r *Resolver) Grid() hexgrid.Grid {
	return r.grid
}

// Positions returns the slot center positions for an assembly type,
// keyed by slot number.
func (r *Resolver) Positions(t Type) (map[int]hexgrid.Vec, error) {
	shift, ok := typeShift[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	positions := make(map[int]hexgrid.Vec, len(slotGrid))
	for _, gs := range slotGrid {
		positions[gs.id] = r.grid.Position(gs.row, gs.col, shift)
	}
	return positions, nil
}

// Resolve returns the six placements for an assembly type, in slot
// order 1..6. Variant bodies are composed once per distinct variant and
// shared; connector rails and the position transform are applied per
// slot on top of the shared body.
func (r *Resolver) Resolve(t Type) ([]*Placement, error) {
	positions, err := r.Positions(t)
	if err != nil {
		return nil, err
	}
	variants := typeVariants[t]
	connectors := typeConnectors[t]

	placements := make([]*Placement, 0, len(slotGrid))
	for _, gs := range slotGrid {
		variant, ok := variants[gs.id]
		if !ok {
			variant = slot.Basic
		}
		body, err := r.comp.Compose(variant)
		if err != nil {
			return nil, fmt.Errorf("assembly type %s, slot %d: %w", t, gs.id, err)
		}

		body = r.addConnectors(body, variant, connectors[gs.id])

		pos := positions[gs.id]
		placements = append(placements, &Placement{
			Slot:     gs.id,
			Row:      gs.row,
			Col:      gs.col,
			Variant:  variant,
			Position: pos,
			Body:     r.k.Translate(body, pos.X, pos.Y, pos.Z),
			Modifier: r.k.Translate(slot.Modifier(r.k, r.p.Hub), pos.X, pos.Y, pos.Z),
		})
	}
	return placements, nil
}

// addConnectors fuses the unconditional north-male / south-female rails
// plus the type's diagonal rails, all in the slot-local frame. The USB
// slot skips the south rail: its wall opening occupies that region.
func (r *Resolver) addConnectors(body kernel.Solid, variant slot.Variant, specs []connectorSpec) kernel.Solid {
	body = r.conns.Add(body, hexgrid.SideN, slot.Male)
	if variant != slot.USB {
		body = r.conns.Add(body, hexgrid.SideS, slot.Female)
	}
	for _, spec := range specs {
		body = r.conns.Add(body, spec.side, spec.gender)
	}
	return body
}
