package assembly

import (
	"errors"
	"math"
	"testing"

	"github.com/mhartig/hexhub/pkg/config"
	"github.com/mhartig/hexhub/pkg/hexgrid"
	"github.com/mhartig/hexhub/pkg/kernel"
	"github.com/mhartig/hexhub/pkg/kernel/sdfx"
	"github.com/mhartig/hexhub/pkg/slot"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want Type
		ok   bool
	}{
		{"A", TypeA, true},
		{"a", TypeA, true},
		{" b ", TypeB, true},
		{"B", TypeB, true},
		{"C", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		got, err := ParseType(tc.in)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Errorf("ParseType(%q) = %v, %v; expected %v", tc.in, got, err, tc.want)
			}
			continue
		}
		if !errors.Is(err, ErrUnknownType) {
			t.Errorf("ParseType(%q): expected ErrUnknownType, got %v", tc.in, err)
		}
	}
}

func newTestResolver(t *testing.T, k kernel.Kernel, p config.Params) *Resolver {
	t.Helper()
	return NewResolver(k, p, slot.NewComposer(slot.NewLibrary(k, p)))
}

func TestPositions(t *testing.T) {
	k := sdfx.New()
	p := config.Default()
	r := newTestResolver(t, k, p)
	_, dy := r.Grid().Pitch()

	posA, err := r.Positions(TypeA)
	if err != nil {
		t.Fatalf("Positions(TypeA) failed: %v", err)
	}
	posB, err := r.Positions(TypeB)
	if err != nil {
		t.Fatalf("Positions(TypeB) failed: %v", err)
	}
	if len(posA) != 6 || len(posB) != 6 {
		t.Fatalf("expected 6 positions per type, got %d and %d", len(posA), len(posB))
	}

	// The middle column (slots 2 and 5) is raised on Type A and
	// lowered on Type B; the outer columns are identical.
	if math.Abs(posA[5].Y-(-dy/2)) > 1e-9 {
		t.Errorf("Type A slot 5 Y = %f, expected %f", posA[5].Y, -dy/2)
	}
	if math.Abs(posB[5].Y-(-1.5*dy)) > 1e-9 {
		t.Errorf("Type B slot 5 Y = %f, expected %f", posB[5].Y, -1.5*dy)
	}
	for _, id := range []int{1, 3, 4, 6} {
		if posA[id] != posB[id] {
			t.Errorf("slot %d position differs between types: %v vs %v", id, posA[id], posB[id])
		}
	}

	if _, err := r.Positions(Type("C")); !errors.Is(err, ErrUnknownType) {
		t.Errorf("expected ErrUnknownType, got %v", err)
	}
}

func TestResolveVariantAssignment(t *testing.T) {
	k := sdfx.New()
	p := config.Default()
	r := newTestResolver(t, k, p)

	wantVariants := map[Type]map[int]slot.Variant{
		TypeA: {1: slot.Basic, 2: slot.Controller, 3: slot.USB, 4: slot.Basic, 5: slot.Basic, 6: slot.Basic},
		TypeB: {1: slot.Basic, 2: slot.Basic, 3: slot.USB, 4: slot.Basic, 5: slot.Controller, 6: slot.Basic},
	}
	for typ, want := range wantVariants {
		placements, err := r.Resolve(typ)
		if err != nil {
			t.Fatalf("Resolve(%s) failed: %v", typ, err)
		}
		if len(placements) != 6 {
			t.Fatalf("Resolve(%s): expected 6 placements, got %d", typ, len(placements))
		}
		var controllers, usbs int
		for i, pl := range placements {
			if pl.Slot != i+1 {
				t.Errorf("Resolve(%s): placement %d has slot %d, expected slot order 1..6", typ, i, pl.Slot)
			}
			if pl.Variant != want[pl.Slot] {
				t.Errorf("Resolve(%s): slot %d variant = %s, expected %s", typ, pl.Slot, pl.Variant, want[pl.Slot])
			}
			if pl.Body == nil || pl.Modifier == nil {
				t.Errorf("Resolve(%s): slot %d missing body or modifier", typ, pl.Slot)
			}
			switch pl.Variant {
			case slot.Controller:
				controllers++
			case slot.USB:
				usbs++
			}
		}
		if controllers != 1 || usbs != 1 {
			t.Errorf("Resolve(%s): %d controller and %d usb slots, expected one of each", typ, controllers, usbs)
		}
	}

	if _, err := r.Resolve(Type("X")); !errors.Is(err, ErrUnknownType) {
		t.Errorf("expected ErrUnknownType, got %v", err)
	}
}

func TestNewGeneratorRejectsInvalidParams(t *testing.T) {
	p := config.Default()
	p.Hub.WallThickness = 0
	if _, err := NewGenerator(sdfx.New(), p); err == nil {
		t.Fatal("expected invalid parameters to be rejected")
	}
}

func generate(t *testing.T, typ Type) (kernel.Kernel, config.Params, *Assembly) {
	t.Helper()
	k := sdfx.New()
	p := config.Default()
	g, err := NewGenerator(k, p)
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}
	a, err := g.Generate(typ)
	if err != nil {
		t.Fatalf("Generate(%s) failed: %v", typ, err)
	}
	return k, p, a
}

func edgeSet(edges []hexgrid.Edge) map[string]bool {
	set := make(map[string]bool, len(edges))
	for _, e := range edges {
		set[e.String()] = true
	}
	return set
}

func TestGenerateEdges(t *testing.T) {
	_, _, a := generate(t, TypeA)
	_, _, b := generate(t, TypeB)

	if len(a.Edges) != 9 || len(b.Edges) != 9 {
		t.Fatalf("expected 9 edges per type, got %d and %d", len(a.Edges), len(b.Edges))
	}

	setA, setB := edgeSet(a.Edges), edgeSet(b.Edges)
	// The diagonal adjacencies differ with the middle-column shift.
	for _, e := range []string{"1/SE-5/NW", "3/SW-5/NE"} {
		if !setA[e] {
			t.Errorf("Type A missing diagonal edge %s", e)
		}
		if setB[e] {
			t.Errorf("Type B should not have edge %s", e)
		}
	}
	for _, e := range []string{"2/SW-4/NE", "2/SE-6/NW"} {
		if !setB[e] {
			t.Errorf("Type B missing diagonal edge %s", e)
		}
		if setA[e] {
			t.Errorf("Type A should not have edge %s", e)
		}
	}
	// The vertical column adjacencies are shared.
	for _, e := range []string{"1/S-4/N", "2/S-5/N", "3/S-6/N"} {
		if !setA[e] || !setB[e] {
			t.Errorf("both types should have edge %s", e)
		}
	}
}

// wallProbe returns a point on a slot's wall midplane, sign*wallDist
// along the edge direction, offset along the edge tangent like the
// channel cutouts.
func wallProbe(p config.Params, pos hexgrid.Vec, dirX, dirY, sign float64) (x, y, z float64) {
	wallDist := p.Hub.OuterFlatToFlat/2 - p.Hub.WallThickness/2
	tanX, tanY := -dirY, dirX
	off := p.Channel.TangentOffset
	return pos.X + sign*dirX*wallDist + tanX*off, pos.Y + sign*dirY*wallDist + tanY*off, p.Hub.FloorHeight + 1
}

func TestGenerateCutsChannels(t *testing.T) {
	for _, typ := range Types() {
		k, p, a := generate(t, typ)

		byID := make(map[int]*Placement, len(a.Placements))
		for _, pl := range a.Placements {
			byID[pl.Slot] = pl
		}

		// Every edge leaves an opening through both adjacent walls.
		for _, e := range a.Edges {
			pa, pb := byID[e.A], byID[e.B]
			diff := pb.Position.Sub(pa.Position)
			dist := diff.Length()
			dirX, dirY := diff.X/dist, diff.Y/dist

			x, y, z := wallProbe(p, pa.Position, dirX, dirY, 1)
			if d := k.Evaluate(pa.Body, x, y, z); d <= 0 {
				t.Errorf("%s edge %s: slot %d wall not opened, distance %f", typ, e, e.A, d)
			}
			x, y, z = wallProbe(p, pb.Position, dirX, dirY, -1)
			if d := k.Evaluate(pb.Body, x, y, z); d <= 0 {
				t.Errorf("%s edge %s: slot %d wall not opened, distance %f", typ, e, e.B, d)
			}
		}

		// Slot 1 has no north neighbor; that wall stays closed.
		x, y, z := wallProbe(p, byID[1].Position, 0, 1, 1)
		if d := k.Evaluate(byID[1].Body, x, y, z); d >= 0 {
			t.Errorf("%s: slot 1 north wall should be intact, distance %f", typ, d)
		}
	}
}

func TestChannelOrderIndependence(t *testing.T) {
	k := sdfx.New()
	p := config.Default()
	r := newTestResolver(t, k, p)
	syn := NewSynthesizer(k, p, r.Grid())

	cutAll := func(reversed bool) []*Placement {
		placements, err := r.Resolve(TypeA)
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		byID := make(map[int]*Placement, len(placements))
		positions := make(map[int]hexgrid.Vec, len(placements))
		for _, pl := range placements {
			byID[pl.Slot] = pl
			positions[pl.Slot] = pl.Position
		}
		edges := r.Grid().Edges(positions)
		if reversed {
			for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
				edges[i], edges[j] = edges[j], edges[i]
			}
		}
		for _, e := range edges {
			if err := syn.cutEdge(byID[e.A], byID[e.B], e); err != nil {
				t.Fatalf("cutEdge(%s) failed: %v", e, err)
			}
		}
		return placements
	}

	forward := cutAll(false)
	backward := cutAll(true)

	// Sample the signed distance over a coarse lattice through each
	// body; identical fields mean identical geometry.
	for i := range forward {
		pos := forward[i].Position
		for dx := -45.0; dx <= 45; dx += 15 {
			for dy := -45.0; dy <= 45; dy += 15 {
				for _, z := range []float64{1, 3, 8, 15} {
					df := k.Evaluate(forward[i].Body, pos.X+dx, pos.Y+dy, z)
					db := k.Evaluate(backward[i].Body, pos.X+dx, pos.Y+dy, z)
					if math.Abs(df-db) > 1e-9 {
						t.Fatalf("slot %d differs at (%v, %v, %v): %f vs %f",
							forward[i].Slot, pos.X+dx, pos.Y+dy, z, df, db)
					}
				}
			}
		}
	}
}

func TestGenerateChannelPlacementError(t *testing.T) {
	p := config.Default()
	// A strongly negative overcut leaves the cutout too short to reach
	// either wall.
	p.Channel.Overcut = -2
	g, err := NewGenerator(sdfx.New(), p)
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}

	_, err = g.Generate(TypeA)
	var cpe *ChannelPlacementError
	if !errors.As(err, &cpe) {
		t.Fatalf("expected a ChannelPlacementError, got %v", err)
	}
	if cpe.Edge.A == 0 || cpe.Edge.B == 0 {
		t.Errorf("error should name the failing edge, got %v", cpe.Edge)
	}
}

func TestGenerateUnknownType(t *testing.T) {
	g, err := NewGenerator(sdfx.New(), config.Default())
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}
	if _, err := g.Generate(Type("C")); !errors.Is(err, ErrUnknownType) {
		t.Errorf("expected ErrUnknownType, got %v", err)
	}
}
