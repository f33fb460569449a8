// Package config holds the shared numeric configuration for hub
// generation. One immutable Params value is loaded at startup and passed
// explicitly into every component; nothing in the pipeline reads
// configuration ambiently.
package config

import (
	"fmt"
	"math"
	"os"

	"github.com/BurntSushi/toml"
)

// Point is a 2D coordinate on the slot floor, in mm.
type Point struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
}

// HubParams describes the base hexagonal shell.
type HubParams struct {
	OuterFlatToFlat  float64 `toml:"outer_flat_to_flat_mm"`
	WallThickness    float64 `toml:"wall_thickness_mm"`
	FloorHeight      float64 `toml:"floor_height_mm"`
	WallHeight       float64 `toml:"wall_height_mm"`
	SlopeLength      float64 `toml:"slope_length_mm"`  // Y extent of the south slope cut
	SlopeAngle       float64 `toml:"slope_angle_deg"`  // measured from vertical
	RecessDepth      float64 `toml:"recess_depth_mm"`  // lid retention groove
	RecessWidth      float64 `toml:"recess_width_mm"`
	RimThickness     float64 `toml:"rim_thickness_mm"` // outer spacer rim
	RimHeight        float64 `toml:"rim_height_mm"`
	ModifierHeight   float64 `toml:"modifier_height_mm"`
	ModifierUndercut float64 `toml:"modifier_undercut_mm"` // how far below the floor surface the modifier reaches
}

// InnerFlatToFlat is the flat-to-flat span of the inner cavity.
func (h HubParams) InnerFlatToFlat() float64 {
	return h.OuterFlatToFlat - 2*h.WallThickness
}

// TopOfWall is the Z of the wall top on the north side.
func (h HubParams) TopOfWall() float64 {
	return h.FloorHeight + h.WallHeight
}

// SouthWallTop is the Z of the wall top at the south edge, after the
// slope cut has lowered it.
func (h HubParams) SouthWallTop() float64 {
	drop := h.SlopeLength * math.Tan((90-h.SlopeAngle)*math.Pi/180)
	return h.TopOfWall() - drop
}

// Circumradius converts a hexagon flat-to-flat span to its circumradius.
func Circumradius(flatToFlat float64) float64 {
	return flatToFlat / math.Sqrt(3)
}

// GridParams describes the slot grid pitch and adjacency tolerances.
type GridParams struct {
	Clearance         float64 `toml:"clearance_mm"` // gap between adjacent slot shells
	NeighborTolerance float64 `toml:"neighbor_tolerance_mm"`
	AngleTolerance    float64 `toml:"angle_tolerance_deg"`
}

// FloorHoleParams describes the floor mounting hole pattern.
type FloorHoleParams struct {
	Count    int     `toml:"count"`
	Distance float64 `toml:"distance_mm"` // radial distance from slot center
	Radius   float64 `toml:"radius_mm"`
	Chamfer  float64 `toml:"chamfer_mm"`
}

// MagnetParams describes the magnet boss pattern: one boss centered,
// three at the magnet distance (north and ±60 degrees).
type MagnetParams struct {
	Distance    float64 `toml:"distance_mm"`
	OuterRadius float64 `toml:"outer_radius_mm"`
	InnerRadius float64 `toml:"inner_radius_mm"`
	BaseHeight  float64 `toml:"base_height_mm"`
	RimHeight   float64 `toml:"rim_height_mm"`
}

// PogoParams describes the four pogo-pin bosses on the north side.
type PogoParams struct {
	OuterRadius float64 `toml:"outer_radius_mm"`
	HoleRadius  float64 `toml:"hole_radius_mm"`
	Height      float64 `toml:"height_mm"`
	YRef        float64 `toml:"y_ref_mm"`
	YOffset     float64 `toml:"y_offset_mm"`
	XLeft       float64 `toml:"x_left_mm"`
	XRight      float64 `toml:"x_right_mm"`
}

// ControllerParams describes the controller-board mounting bosses.
type ControllerParams struct {
	Radius     float64 `toml:"radius_mm"`
	HoleRadius float64 `toml:"hole_radius_mm"`
	Height     float64 `toml:"height_mm"`
	Positions  []Point `toml:"positions"`
}

// USBParams describes the USB board bosses (south side, square pattern)
// and the south wall cutout.
type USBParams struct {
	BossXOffset     float64 `toml:"boss_x_offset_mm"`
	BossSouthInset  float64 `toml:"boss_south_inset_mm"` // south row distance from the inner south wall
	BossSpanY       float64 `toml:"boss_span_y_mm"`      // distance between south and north boss rows
	BossOuterRadius float64 `toml:"boss_outer_radius_mm"`
	BossHoleRadius  float64 `toml:"boss_hole_radius_mm"`
	BossHeight      float64 `toml:"boss_height_mm"`
	CutoutWidth     float64 `toml:"cutout_width_mm"`
	CutoutHeight    float64 `toml:"cutout_height_mm"`
	CutoutTopInset  float64 `toml:"cutout_top_inset_mm"` // material left above the cutout
}

// ChannelParams describes the cable channel profile cut between
// adjacent slots.
type ChannelParams struct {
	Width         float64 `toml:"width_mm"`
	Height        float64 `toml:"height_mm"`
	Overcut       float64 `toml:"overcut_mm"`        // extra length beyond the two walls
	TangentOffset float64 `toml:"tangent_offset_mm"` // shift along the shared wall, clearing the connector rails
}

// ConnectorParams describes the slot latch rails.
type ConnectorParams struct {
	EdgeLength    float64 `toml:"edge_length_mm"` // edge of the 45-degree square profile
	ShiftDown     float64 `toml:"shift_down_mm"`
	PinLength     float64 `toml:"pin_length_mm"`
	Clearance     float64 `toml:"clearance_mm"` // female profile clearance
	HousingWidth  float64 `toml:"housing_width_mm"`
	HousingHeight float64 `toml:"housing_height_mm"`
	WallInset     float64 `toml:"wall_inset_mm"` // profile center distance inward from the outer wall
}

// Params is the complete, immutable parameter set for a generation run.
type Params struct {
	Hub        HubParams        `toml:"hub"`
	Grid       GridParams       `toml:"grid"`
	FloorHoles FloorHoleParams  `toml:"floor_holes"`
	Magnet     MagnetParams     `toml:"magnet"`
	Pogo       PogoParams       `toml:"pogo"`
	Controller ControllerParams `toml:"controller"`
	USB        USBParams        `toml:"usb"`
	Channel    ChannelParams    `toml:"channel"`
	Connector  ConnectorParams  `toml:"connector"`
}

// Default returns the built-in parameter set.
func Default() Params {
	return Params{
		Hub: HubParams{
			OuterFlatToFlat:  84.2,
			WallThickness:    2.4,
			FloorHeight:      2.0,
			WallHeight:       14.0,
			SlopeLength:      29.0,
			SlopeAngle:       80.0,
			RecessDepth:      1.8,
			RecessWidth:      1.0,
			RimThickness:     0.5,
			RimHeight:        10.0,
			ModifierHeight:   1.5,
			ModifierUndercut: 1.0,
		},
		Grid: GridParams{
			Clearance:         1.0,
			NeighborTolerance: 2.0,
			AngleTolerance:    5.0,
		},
		FloorHoles: FloorHoleParams{
			Count:    6,
			Distance: 40.0,
			Radius:   1.2,
			Chamfer:  0.8,
		},
		Magnet: MagnetParams{
			Distance:    33.5,
			OuterRadius: 5.9,
			InnerRadius: 5.05,
			BaseHeight:  11.2,
			RimHeight:   2.0,
		},
		Pogo: PogoParams{
			OuterRadius: 2.5,
			HoleRadius:  1.0,
			Height:      9.7,
			YRef:        16.65,
			YOffset:     7.5,
			XLeft:       -6.0,
			XRight:      5.0,
		},
		Controller: ControllerParams{
			Radius:     2.5,
			HoleRadius: 1.0,
			Height:     5.0,
			Positions: []Point{
				{X: -16, Y: 28},
				{X: 16, Y: 28},
				{X: -32, Y: 0},
				{X: 32, Y: 0},
				{X: -17, Y: -26},
				{X: 17, Y: -26},
			},
		},
		USB: USBParams{
			BossXOffset:     7.0,
			BossSouthInset:  3.0,
			BossSpanY:       14.0,
			BossOuterRadius: 2.0,
			BossHoleRadius:  1.0,
			BossHeight:      1.0,
			CutoutWidth:     13.0,
			CutoutHeight:    7.0,
			CutoutTopInset:  2.0,
		},
		Channel: ChannelParams{
			Width:         10.0,
			Height:        7.0,
			Overcut:       1.0,
			TangentOffset: 10.0,
		},
		Connector: ConnectorParams{
			EdgeLength:    4.0,
			ShiftDown:     0.9,
			PinLength:     8.0,
			Clearance:     0.15,
			HousingWidth:  8.0,
			HousingHeight: 4.0,
			WallInset:     4.0,
		},
	}
}

// Load returns the default parameters overlaid with values from the
// given TOML file. Keys absent from the file keep their defaults.
func Load(path string) (Params, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, err
	}
	if err := toml.Unmarshal(data, &p); err != nil {
		return Params{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Params{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Validate checks the parameter set for configuration defects that would
// produce degenerate geometry. It runs once, before any geometry is built.
func (p Params) Validate() error {
	h := p.Hub
	switch {
	case h.OuterFlatToFlat <= 0:
		return fmt.Errorf("hub.outer_flat_to_flat_mm must be positive, got %v", h.OuterFlatToFlat)
	case h.WallThickness <= 0:
		return fmt.Errorf("hub.wall_thickness_mm must be positive, got %v", h.WallThickness)
	case h.InnerFlatToFlat() <= 0:
		return fmt.Errorf("wall thickness %v leaves no inner cavity in a %vmm hex", h.WallThickness, h.OuterFlatToFlat)
	case h.FloorHeight <= 0 || h.WallHeight <= 0:
		return fmt.Errorf("hub floor/wall heights must be positive")
	case h.SlopeAngle <= 0 || h.SlopeAngle >= 90:
		return fmt.Errorf("hub.slope_angle_deg must be in (0, 90), got %v", h.SlopeAngle)
	case h.SouthWallTop() <= h.FloorHeight:
		return fmt.Errorf("slope cut drops below the floor (south wall top %v)", h.SouthWallTop())
	}
	if p.Grid.Clearance < 0 {
		return fmt.Errorf("grid.clearance_mm must not be negative, got %v", p.Grid.Clearance)
	}
	if p.Grid.NeighborTolerance <= 0 {
		return fmt.Errorf("grid.neighbor_tolerance_mm must be positive, got %v", p.Grid.NeighborTolerance)
	}
	if p.FloorHoles.Count <= 0 {
		return fmt.Errorf("floor_holes.count must be positive, got %d", p.FloorHoles.Count)
	}
	if len(p.Controller.Positions) == 0 {
		return fmt.Errorf("controller.positions must not be empty")
	}
	if p.Channel.Width <= 0 || p.Channel.Height <= p.Channel.Width/2 {
		return fmt.Errorf("channel profile %vx%v is degenerate: height must exceed half the width", p.Channel.Width, p.Channel.Height)
	}
	return nil
}
