package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default parameters failed validation: %v", err)
	}
}

func TestDerivedDimensions(t *testing.T) {
	h := Default().Hub

	if got := h.InnerFlatToFlat(); math.Abs(got-79.4) > 1e-9 {
		t.Errorf("InnerFlatToFlat = %f, expected 79.4", got)
	}
	if got := h.TopOfWall(); math.Abs(got-16.0) > 1e-9 {
		t.Errorf("TopOfWall = %f, expected 16.0", got)
	}
	// 29mm slope at 80 degrees from vertical drops the south wall by
	// 29*tan(10deg).
	want := 16.0 - 29.0*math.Tan(10*math.Pi/180)
	if got := h.SouthWallTop(); math.Abs(got-want) > 1e-6 {
		t.Errorf("SouthWallTop = %f, expected %f", got, want)
	}

	if got := Circumradius(math.Sqrt(3)); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Circumradius(sqrt(3)) = %f, expected 1.0", got)
	}
}

func writeParamsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "params.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write params file: %v", err)
	}
	return path
}

func TestLoadOverlay(t *testing.T) {
	path := writeParamsFile(t, `
[hub]
wall_thickness_mm = 3.0

[channel]
width_mm = 8.0
`)
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if p.Hub.WallThickness != 3.0 {
		t.Errorf("WallThickness = %f, expected overlay value 3.0", p.Hub.WallThickness)
	}
	if p.Channel.Width != 8.0 {
		t.Errorf("Channel.Width = %f, expected overlay value 8.0", p.Channel.Width)
	}
	// Keys absent from the file keep their defaults.
	def := Default()
	if p.Hub.OuterFlatToFlat != def.Hub.OuterFlatToFlat {
		t.Errorf("OuterFlatToFlat = %f, expected default %f", p.Hub.OuterFlatToFlat, def.Hub.OuterFlatToFlat)
	}
	if p.Magnet.Distance != def.Magnet.Distance {
		t.Errorf("Magnet.Distance = %f, expected default %f", p.Magnet.Distance, def.Magnet.Distance)
	}
	if len(p.Controller.Positions) != len(def.Controller.Positions) {
		t.Errorf("Controller.Positions length = %d, expected default %d", len(p.Controller.Positions), len(def.Controller.Positions))
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLoadRejectsInvalidOverlay(t *testing.T) {
	// A shallow slope drops the south wall below the floor.
	path := writeParamsFile(t, `
[hub]
slope_angle_deg = 30.0
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation to reject a slope below the floor")
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := writeParamsFile(t, `[hub` + "\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero flat-to-flat", func(p *Params) { p.Hub.OuterFlatToFlat = 0 }},
		{"wall swallows cavity", func(p *Params) { p.Hub.WallThickness = 45 }},
		{"slope angle out of range", func(p *Params) { p.Hub.SlopeAngle = 90 }},
		{"negative clearance", func(p *Params) { p.Grid.Clearance = -1 }},
		{"zero neighbor tolerance", func(p *Params) { p.Grid.NeighborTolerance = 0 }},
		{"no floor holes", func(p *Params) { p.FloorHoles.Count = 0 }},
		{"no controller positions", func(p *Params) { p.Controller.Positions = nil }},
		{"flat channel roof", func(p *Params) { p.Channel.Width = 10; p.Channel.Height = 5 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Default()
			tc.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}
